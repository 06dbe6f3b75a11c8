package domain

import "math"

// Category is one of the five ordered PM2.5 severity buckets.
type Category struct {
	Name     string `json:"name"`
	Severity int    `json:"severity"` // 0 (Good) through 4 (Hazardous)
	Advisory string `json:"advisory"`
}

// categoryTable maps predicted concentrations to buckets. Upper bounds are
// exclusive and strictly increasing; the final bucket is unbounded so every
// float, including negatives, lands somewhere. Kept as data rather than a
// conditional chain so thresholds can be tuned and tested in one place.
var categoryTable = []struct {
	upper    float64
	category Category
}{
	{12, Category{
		Name:     "Good",
		Severity: 0,
		Advisory: "Air quality is excellent. Perfect for outdoor activities.",
	}},
	{35, Category{
		Name:     "Moderate",
		Severity: 1,
		Advisory: "Air quality is acceptable. Sensitive groups should consider reducing outdoor activity.",
	}},
	{55, Category{
		Name:     "Unhealthy for Sensitive Groups",
		Severity: 2,
		Advisory: "Children, elderly, and people with respiratory conditions should limit outdoor activity.",
	}},
	{150, Category{
		Name:     "Unhealthy",
		Severity: 3,
		Advisory: "Everyone may experience health effects. Limit outdoor activity.",
	}},
	{math.Inf(1), Category{
		Name:     "Hazardous",
		Severity: 4,
		Advisory: "Health warning of emergency conditions. Avoid all outdoor activity.",
	}},
}

// Categorize maps a predicted PM2.5 concentration (µg/m³) to its severity
// bucket. Total over the real line: NaN and +Inf fall through to Hazardous,
// everything below 12 (negatives included) is Good.
func Categorize(pm25 float64) Category {
	for _, row := range categoryTable {
		if pm25 < row.upper {
			return row.category
		}
	}
	return categoryTable[len(categoryTable)-1].category
}

// TimingTip returns outdoor-activity timing advice derived solely from the
// hour of day. Rush-hour traffic (10:00–18:00 inclusive) raises local
// pollution, so hours outside that window are favorable. Independent of the
// predicted concentration.
func TimingTip(hour int) string {
	if hour < 10 || hour > 18 {
		return "Current hour is good for outdoor activity (away from rush hours)."
	}
	return "Consider early morning or evening instead (less traffic pollution)."
}
