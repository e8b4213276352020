package summary

import (
	"encoding/json"
	"testing"

	"energycoach/internal/model"
)

func TestEqualDetectsHourlySlotChange(t *testing.T) {
	a, err := Aggregate(hourlyReadings(24, 2.0))
	if err != nil {
		t.Fatalf("aggregate error: %v", err)
	}
	b := a
	if !Equal(a, b) {
		t.Fatalf("identical summaries must be equal")
	}
	b.Averages.ByHour[23] += 0.0001
	if Equal(a, b) {
		t.Fatalf("hourly slot drift must count as change")
	}
}

func TestEqualDetectsFloatDrift(t *testing.T) {
	a, err := Aggregate(hourlyReadings(24, 2.0))
	if err != nil {
		t.Fatalf("aggregate error: %v", err)
	}
	b := a
	b.TotalKwh += 1e-9
	if Equal(a, b) {
		t.Fatalf("floating-point drift must count as change")
	}
}

func TestEqualDetectsFieldChanges(t *testing.T) {
	a, err := Aggregate(hourlyReadings(24, 2.0))
	if err != nil {
		t.Fatalf("aggregate error: %v", err)
	}

	b := a
	b.Period.End = "2024-01-31 23:00"
	if Equal(a, b) {
		t.Fatalf("period change undetected")
	}

	b = a
	b.DeviceUsage.PoolPumpHours = 3
	if Equal(a, b) {
		t.Fatalf("device usage change undetected")
	}

	b = a
	b.PeakUsage.Temperature = -1
	if Equal(a, b) {
		t.Fatalf("peak usage change undetected")
	}
}

// A summary must survive a JSON round trip unchanged; stored summaries are
// compared against freshly computed ones after decoding.
func TestEqualAfterJSONRoundTrip(t *testing.T) {
	a, err := Aggregate(hourlyReadings(25, 1.37))
	if err != nil {
		t.Fatalf("aggregate error: %v", err)
	}
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	var b model.MonthlySummary
	if err := json.Unmarshal(data, &b); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if !Equal(a, b) {
		t.Fatalf("JSON round trip changed the summary")
	}
}
