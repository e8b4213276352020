package summary

import (
	"errors"

	"energycoach/internal/ingest"
	"energycoach/internal/model"
)

// ErrNoReadings guards the aggregator against an empty batch, which should
// have been rejected at the parse stage.
var ErrNoReadings = errors.New("cannot summarize an empty reading sequence")

// Aggregate computes the monthly summary in exactly one pass over the
// readings, in input order. Period bounds come from the first and last
// reading as delivered; the input is never sorted.
func Aggregate(readings []model.Reading) (model.MonthlySummary, error) {
	if len(readings) == 0 {
		return model.MonthlySummary{}, ErrNoReadings
	}

	var s model.MonthlySummary
	s.Period.Start = readings[0].Timestamp
	s.Period.End = readings[len(readings)-1].Timestamp
	s.PeakUsage = model.PeakUsage{
		Value:       readings[0].KWh,
		Timestamp:   readings[0].Timestamp,
		Temperature: readings[0].OutsideTemp,
	}

	for _, r := range readings {
		s.TotalKwh += r.KWh
		s.Averages.Temperature += r.OutsideTemp

		t, err := ingest.ParseTimestamp(r.Timestamp)
		if err != nil {
			return model.MonthlySummary{}, err
		}
		s.Averages.ByHour[t.Hour()] += r.KWh

		// Strict > keeps the first reading that reaches the maximum.
		if r.KWh > s.PeakUsage.Value {
			s.PeakUsage = model.PeakUsage{
				Value:       r.KWh,
				Timestamp:   r.Timestamp,
				Temperature: r.OutsideTemp,
			}
		}

		if r.ElectricVehicleCharging {
			s.DeviceUsage.EVChargingHours++
		}
		if r.HotWaterHeater {
			s.DeviceUsage.HotWaterHeaterHours++
		}
		if r.PoolPump {
			s.DeviceUsage.PoolPumpHours++
		}
		if r.HeatPump {
			s.DeviceUsage.HeatPumpHours++
		}
	}

	// One reading per hour: days = ceil(count / 24).
	days := float64((len(readings) + 23) / 24)
	s.Averages.Daily = s.TotalKwh / days
	s.Averages.Temperature /= float64(len(readings))
	for i := range s.Averages.ByHour {
		s.Averages.ByHour[i] /= days
	}
	return s, nil
}
