package analytics

import (
	"time"

	"donations/internal/core"
)

const (
	StatusHigh   = "High Usage"
	StatusMedium = "Medium Usage"
	StatusLow    = "Low Usage"

	// notAvailable labels a summary field with no data behind it.
	notAvailable = "N/A"
)

// Trends returns the monthly series with month-over-month growth of the
// donated quantity.
func (e *Engine) Trends() []Trend {
	months := e.DonationsOverTime()
	out := make([]Trend, 0, len(months))
	for i, m := range months {
		t := Trend{MonthlyTotals: m}
		if i > 0 {
			prev := months[i-1].TotalQuantity
			t.Growth = m.TotalQuantity - prev
			t.GrowthPercentage = core.Percent(t.Growth, prev)
		}
		out = append(out, t)
	}
	return out
}

// CategoryPerformance extends the overview stats with per-donation figures
// and a usage status.
func (e *Engine) CategoryPerformance() []CategoryPerformance {
	stats := e.Overview().CategoryStats
	categories := e.ds.Categories()

	counts := map[string]int{}
	for _, d := range e.ds.Donations() {
		counts[d.CategoryID]++
	}

	out := make([]CategoryPerformance, 0, len(stats))
	for i, s := range stats {
		n := counts[categories[i].ID]
		out = append(out, CategoryPerformance{
			CategoryStat:            s,
			DonationCount:           n,
			AverageUsagePerDonation: core.DivRound(s.TotalUsed, n),
			Status:                  usageStatus(s.UsagePercentage),
		})
	}
	return out
}

func usageStatus(pct int) string {
	switch {
	case pct > 70:
		return StatusHigh
	case pct > 40:
		return StatusMedium
	default:
		return StatusLow
	}
}

// Summary condenses the dataset into headline figures.
func (e *Engine) Summary(now time.Time) Summary {
	overview := e.Overview()

	topDonator := notAvailable
	if top := e.TopDonators(3); len(top) > 0 {
		topDonator = top[0].Name
	}

	topCategory := notAvailable
	if len(overview.CategoryStats) > 0 {
		best := overview.CategoryStats[0]
		for _, s := range overview.CategoryStats[1:] {
			if s.TotalInitial >= best.TotalInitial {
				best = s
			}
		}
		topCategory = best.Category
	}

	return Summary{
		TotalDonations:  overview.TotalDonations,
		TotalCategories: overview.TotalCategories,
		OverallUsage:    overview.OverallUsage,
		RunningLowCount: len(e.RunningLowDonations()),
		TopDonator:      topDonator,
		TopCategory:     topCategory,
		LastUpdated:     now,
	}
}

// Export bundles every view of the dataset.
func (e *Engine) Export(now time.Time) Export {
	return Export{
		Overview:           e.Overview(),
		Trends:             e.DonationsOverTime(),
		RunningLow:         e.RunningLowDonations(),
		TopDonators:        e.TopDonators(DefaultTopDonators),
		GenderDistribution: e.DonationsByGender(),
		Categories:         e.ListCategories(),
		Donations:          e.ListDonations(),
		ExportedAt:         now,
	}
}
