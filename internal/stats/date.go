package stats

import "time"

// DateQuantiles is a 10/50/90 percentile triple of ISO-8601 timestamps.
type DateQuantiles struct {
	P10 string `json:"p10"`
	P50 string `json:"p50"`
	P90 string `json:"p90"`
}

const dateSpreadDays = 10

// ForecastDate centers a date quantile triple daysOut days after now with a
// fixed ±10 day spread.
func ForecastDate(now time.Time, daysOut int) DateQuantiles {
	center := now.AddDate(0, 0, daysOut)
	return DateQuantiles{
		P10: center.AddDate(0, 0, -dateSpreadDays).Format(time.RFC3339),
		P50: center.Format(time.RFC3339),
		P90: center.AddDate(0, 0, dateSpreadDays).Format(time.RFC3339),
	}
}
