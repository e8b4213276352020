package summary

import "energycoach/internal/model"

// Equal reports structural equality of two summaries over their known fixed
// shape: field by field, the 24-slot hourly array element by element in
// order. Floating-point values compare exactly; any drift counts as a change.
func Equal(a, b model.MonthlySummary) bool {
	if a.Period != b.Period {
		return false
	}
	if a.TotalKwh != b.TotalKwh {
		return false
	}
	if a.Averages.Daily != b.Averages.Daily || a.Averages.Temperature != b.Averages.Temperature {
		return false
	}
	for i := range a.Averages.ByHour {
		if a.Averages.ByHour[i] != b.Averages.ByHour[i] {
			return false
		}
	}
	if a.DeviceUsage != b.DeviceUsage {
		return false
	}
	return a.PeakUsage == b.PeakUsage
}
