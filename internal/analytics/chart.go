package analytics

import "donations/internal/core"

// ChartType selects one pre-shaped view for a chart.
type ChartType string

const (
	CategoryPie   ChartType = "category-pie"
	UsageBarChart ChartType = "usage-bar"
	MonthlyLine   ChartType = "monthly-line"
	GenderPie     ChartType = "gender-pie"
	ChartOverview ChartType = "overview"
)

// ChartTypes returns the chart identifiers accepted by the API.
func ChartTypes() []ChartType {
	return []ChartType{CategoryPie, UsageBarChart, MonthlyLine, GenderPie, ChartOverview}
}

// ParseChartType reports whether s names a known chart type.
func ParseChartType(s string) (ChartType, bool) {
	for _, t := range ChartTypes() {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

func (t ChartType) String() string {
	return string(t)
}

// ChartData returns the data backing a chart. Any type other than the four
// chart-specific ones, including unknown values, returns the full Overview.
func (e *Engine) ChartData(t ChartType) any {
	switch t {
	case CategoryPie:
		return e.categorySlices()
	case UsageBarChart:
		return e.usageBars()
	case MonthlyLine:
		return e.DonationsOverTime()
	case GenderPie:
		return e.DonationsByGender()
	case ChartOverview:
		return e.Overview()
	default:
		return e.Overview()
	}
}

func (e *Engine) categorySlices() []CategorySlice {
	grand := sumInitial(e.ds.Donations())
	stats := e.Overview().CategoryStats
	out := make([]CategorySlice, 0, len(stats))
	for _, s := range stats {
		out = append(out, CategorySlice{
			Label:      s.Category,
			Value:      s.TotalInitial,
			Percentage: core.Percent(s.TotalInitial, grand),
		})
	}
	return out
}

func (e *Engine) usageBars() []UsageBar {
	stats := e.Overview().CategoryStats
	out := make([]UsageBar, 0, len(stats))
	for _, s := range stats {
		out = append(out, UsageBar{
			Category:        s.Category,
			Used:            s.TotalUsed,
			Available:       s.TotalCurrent,
			UsagePercentage: s.UsagePercentage,
		})
	}
	return out
}
