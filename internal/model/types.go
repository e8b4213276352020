package model

import "time"

// Status classifies the outcome of a change-detection pass for one
// (customer, month) key.
type Status string

const (
	StatusNew       Status = "NEW"
	StatusUpdated   Status = "UPDATED"
	StatusUnchanged Status = "UNCHANGED"
)

// Reading is one interval measurement. Timestamp keeps the original wire
// string; it is validated as parseable at ingest time.
type Reading struct {
	CustomerID              string  `json:"customerId"`
	CustomerName            string  `json:"customerName"`
	LocationID              string  `json:"locationId"`
	Address                 string  `json:"address"`
	City                    string  `json:"city"`
	State                   string  `json:"state"`
	PostalCode              string  `json:"postalCode"`
	Timestamp               string  `json:"timestamp"`
	KWh                     float64 `json:"kWh"`
	OutsideTemp             float64 `json:"outsideTemp"`
	ElectricVehicleCharging bool    `json:"electricVehicleCharging"`
	HotWaterHeater          bool    `json:"hotWaterHeater"`
	PoolPump                bool    `json:"poolPump"`
	HeatPump                bool    `json:"heatPump"`
}

// Location carries the denormalized location fields persisted alongside each
// summary and echoed in notifications.
type Location struct {
	LocationID string `json:"locationId"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
}

type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Averages.ByHour is a fixed 24-slot array indexed by hour of day, zero for
// hours without readings.
type Averages struct {
	Daily       float64     `json:"daily"`
	ByHour      [24]float64 `json:"byHour"`
	Temperature float64     `json:"temperature"`
}

// DeviceUsage counts readings with the respective flag set; one reading is
// one hour.
type DeviceUsage struct {
	EVChargingHours     int `json:"evChargingHours"`
	HotWaterHeaterHours int `json:"hotWaterHeaterHours"`
	PoolPumpHours       int `json:"poolPumpHours"`
	HeatPumpHours       int `json:"heatPumpHours"`
}

type PeakUsage struct {
	Value       float64 `json:"value"`
	Timestamp   string  `json:"timestamp"`
	Temperature float64 `json:"temperature"`
}

// MonthlySummary is the computed monthly usage summary for one
// customer/location/month batch.
type MonthlySummary struct {
	Period      Period      `json:"period"`
	TotalKwh    float64     `json:"totalKwh"`
	Averages    Averages    `json:"averages"`
	DeviceUsage DeviceUsage `json:"deviceUsage"`
	PeakUsage   PeakUsage   `json:"peakUsage"`
}

// StoredSummaryRecord is the persisted state for one (customerId, month) key.
// RawData keeps the serialized normalized batch for audit and replay.
type StoredSummaryRecord struct {
	CustomerID   string
	Month        string
	ComputedAt   time.Time
	CustomerName string
	Location     Location
	Summary      MonthlySummary
	RawData      []byte
}

// Notification is the structured change event handed to the notifier.
type Notification struct {
	Location Location       `json:"location"`
	Month    string         `json:"month"`
	Summary  MonthlySummary `json:"summary"`
	Status   Status         `json:"status"`
}

// TriggerLocator is the validated shape of an arrival event: the object the
// triggered stage must read.
type TriggerLocator struct {
	Bucket string
	Key    string
}
