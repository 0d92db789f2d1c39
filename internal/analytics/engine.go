// Package analytics computes the aggregate views served by the API.
//
// Every query is a pure function of the dataset: nothing is cached or
// mutated here, and each call allocates its own result, so an Engine is safe
// for concurrent use.
package analytics

import (
	"sort"

	"donations/internal/core"
	"donations/internal/dataset"
)

// DefaultTopDonators is the ranking size used when no limit is given.
const DefaultTopDonators = 5

const monthLayout = "2006-01"

type Engine struct {
	ds *dataset.Dataset
}

func New(ds *dataset.Dataset) *Engine {
	return &Engine{ds: ds}
}

// ListDonations returns every donation in dataset order.
func (e *Engine) ListDonations() []core.Donation {
	return e.ds.Donations()
}

// ListCategories returns every category in dataset order.
func (e *Engine) ListCategories() []core.Category {
	return e.ds.Categories()
}

// DonationsByCategory returns the donations of one category. An unknown id
// yields an empty slice.
func (e *Engine) DonationsByCategory(categoryID string) []core.Donation {
	out := []core.Donation{}
	for _, d := range e.ds.Donations() {
		if d.CategoryID == categoryID {
			out = append(out, d)
		}
	}
	return out
}

// Overview returns per-category usage plus dataset-wide totals.
func (e *Engine) Overview() Overview {
	donations := e.ds.Donations()
	categories := e.ds.Categories()

	stats := make([]CategoryStat, 0, len(categories))
	for _, c := range categories {
		var u Usage
		for _, d := range donations {
			if d.CategoryID == c.ID {
				u.add(d)
			}
		}
		u.finish()
		stats = append(stats, CategoryStat{
			Category:        c.Name,
			TotalInitial:    u.TotalInitial,
			TotalCurrent:    u.TotalCurrent,
			TotalUsed:       u.TotalUsed,
			UsagePercentage: u.UsagePercentage,
			MeasureUnity:    c.MeasureUnity,
		})
	}

	return Overview{
		CategoryStats:   stats,
		TotalDonations:  len(donations),
		TotalCategories: len(categories),
		OverallUsage:    overallUsage(donations),
	}
}

// DonationsOverTime groups donations by creation month (UTC), oldest first.
// Months without donations are absent.
func (e *Engine) DonationsOverTime() []MonthlyTotals {
	byMonth := map[string]*MonthlyTotals{}
	for _, d := range e.ds.Donations() {
		month := d.CreatedAt.UTC().Format(monthLayout)
		m, ok := byMonth[month]
		if !ok {
			m = &MonthlyTotals{Month: month, Categories: map[string]int{}}
			byMonth[month] = m
		}
		m.TotalDonations++
		m.TotalQuantity += d.InitialQuantity
		m.Categories[d.Category.Name] += d.InitialQuantity
	}

	out := make([]MonthlyTotals, 0, len(byMonth))
	for _, m := range byMonth {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// RunningLowDonations returns donations with less than 20% of stock left.
func (e *Engine) RunningLowDonations() []core.Donation {
	out := []core.Donation{}
	for _, d := range e.ds.Donations() {
		if d.IsRunningLow() {
			out = append(out, d)
		}
	}
	return out
}

// DonationsByGender sums initial quantities per gender, in order of first
// appearance. Percentages are relative to the initial quantity of the whole
// dataset.
func (e *Engine) DonationsByGender() []GenderShare {
	donations := e.ds.Donations()
	grand := sumInitial(donations)

	index := map[string]int{}
	out := []GenderShare{}
	for _, d := range donations {
		g := d.GenderLabel()
		i, ok := index[g]
		if !ok {
			i = len(out)
			index[g] = i
			out = append(out, GenderShare{Gender: g})
		}
		out[i].Quantity += d.InitialQuantity
	}
	for i := range out {
		out[i].Percentage = core.Percent(out[i].Quantity, grand)
	}
	return out
}

// TopDonators ranks donators by donated quantity. Ties keep the order in which
// donators first appear. A non-positive limit selects DefaultTopDonators.
func (e *Engine) TopDonators(limit int) []DonatorTotal {
	if limit <= 0 {
		limit = DefaultTopDonators
	}

	index := map[string]int{}
	out := []DonatorTotal{}
	for _, d := range e.ds.Donations() {
		name := d.DonatorLabel()
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, DonatorTotal{Name: name})
		}
		out[i].TotalQuantity += d.InitialQuantity
		out[i].TotalDonations++
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalQuantity > out[j].TotalQuantity })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (u *Usage) add(d core.Donation) {
	u.TotalInitial += d.InitialQuantity
	u.TotalCurrent += d.CurrentQuantity
}

func (u *Usage) finish() {
	u.TotalUsed = u.TotalInitial - u.TotalCurrent
	u.UsagePercentage = core.Percent(u.TotalUsed, u.TotalInitial)
}

func overallUsage(donations []core.Donation) Usage {
	var u Usage
	for _, d := range donations {
		u.add(d)
	}
	u.finish()
	return u
}

func sumInitial(donations []core.Donation) int {
	total := 0
	for _, d := range donations {
		total += d.InitialQuantity
	}
	return total
}
