package summary

import (
	"fmt"
	"testing"

	"energycoach/internal/model"
)

func hourlyReadings(n int, kwh float64) []model.Reading {
	readings := make([]model.Reading, 0, n)
	for i := 0; i < n; i++ {
		readings = append(readings, model.Reading{
			CustomerID:  "CUST-001",
			LocationID:  "LOC-001",
			Timestamp:   fmt.Sprintf("2024-01-%02d %02d:00", i/24+1, i%24),
			KWh:         kwh,
			OutsideTemp: 10,
		})
	}
	return readings
}

func TestAggregateEmptyFailsFast(t *testing.T) {
	if _, err := Aggregate(nil); err != ErrNoReadings {
		t.Fatalf("expected ErrNoReadings, got %v", err)
	}
}

func TestAggregatePeakTieBreak(t *testing.T) {
	readings := hourlyReadings(4, 0)
	for i, kwh := range []float64{3.0, 5.0, 5.0, 2.0} {
		readings[i].KWh = kwh
	}
	s, err := Aggregate(readings)
	if err != nil {
		t.Fatalf("aggregate error: %v", err)
	}
	if s.PeakUsage.Value != 5.0 {
		t.Fatalf("peak value: got %v", s.PeakUsage.Value)
	}
	if s.PeakUsage.Timestamp != readings[1].Timestamp {
		t.Fatalf("first reading at the maximum must win: got %q, want %q",
			s.PeakUsage.Timestamp, readings[1].Timestamp)
	}
}

func TestAggregateDailyAverageBoundary(t *testing.T) {
	s, err := Aggregate(hourlyReadings(24, 2.0))
	if err != nil {
		t.Fatalf("aggregate error: %v", err)
	}
	if s.TotalKwh != 48 || s.Averages.Daily != 48 {
		t.Fatalf("24 readings are one day: total=%v daily=%v", s.TotalKwh, s.Averages.Daily)
	}

	s, err = Aggregate(hourlyReadings(25, 1.92))
	if err != nil {
		t.Fatalf("aggregate error: %v", err)
	}
	if s.Averages.Daily != s.TotalKwh/2 {
		t.Fatalf("25 readings are two days: total=%v daily=%v", s.TotalKwh, s.Averages.Daily)
	}
}

func TestAggregateHourlyZeroFill(t *testing.T) {
	readings := hourlyReadings(4, 1.0)
	s, err := Aggregate(readings)
	if err != nil {
		t.Fatalf("aggregate error: %v", err)
	}
	for hour := 0; hour < 4; hour++ {
		if s.Averages.ByHour[hour] != 1.0 {
			t.Fatalf("hour %d: got %v", hour, s.Averages.ByHour[hour])
		}
	}
	for hour := 4; hour < 24; hour++ {
		if s.Averages.ByHour[hour] != 0 {
			t.Fatalf("hour %d must be zero-filled: got %v", hour, s.Averages.ByHour[hour])
		}
	}
}

func TestAggregateDeviceHoursAndTemperature(t *testing.T) {
	readings := hourlyReadings(4, 1.0)
	readings[0].ElectricVehicleCharging = true
	readings[1].ElectricVehicleCharging = true
	readings[2].HotWaterHeater = true
	readings[3].PoolPump = true
	readings[0].OutsideTemp = 4
	readings[1].OutsideTemp = 6
	readings[2].OutsideTemp = 8
	readings[3].OutsideTemp = 10

	s, err := Aggregate(readings)
	if err != nil {
		t.Fatalf("aggregate error: %v", err)
	}
	if s.DeviceUsage.EVChargingHours != 2 || s.DeviceUsage.HotWaterHeaterHours != 1 ||
		s.DeviceUsage.PoolPumpHours != 1 || s.DeviceUsage.HeatPumpHours != 0 {
		t.Fatalf("device usage: %+v", s.DeviceUsage)
	}
	if s.Averages.Temperature != 7 {
		t.Fatalf("temperature mean: got %v", s.Averages.Temperature)
	}
}

func TestAggregatePeriodFromInputOrder(t *testing.T) {
	readings := hourlyReadings(3, 1.0)
	s, err := Aggregate(readings)
	if err != nil {
		t.Fatalf("aggregate error: %v", err)
	}
	if s.Period.Start != readings[0].Timestamp || s.Period.End != readings[2].Timestamp {
		t.Fatalf("period: %+v", s.Period)
	}
}

func TestAggregateDeterministic(t *testing.T) {
	readings := hourlyReadings(48, 1.3)
	first, err := Aggregate(readings)
	if err != nil {
		t.Fatalf("aggregate error: %v", err)
	}
	second, err := Aggregate(readings)
	if err != nil {
		t.Fatalf("aggregate error: %v", err)
	}
	if !Equal(first, second) {
		t.Fatalf("aggregation must be repeatable bit-for-bit")
	}
}
