package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donations/internal/core"
)

func TestTrends(t *testing.T) {
	got := fixtureEngine().Trends()
	require.Len(t, got, 2)

	assert.Equal(t, "2024-01", got[0].Month)
	assert.Zero(t, got[0].Growth)
	assert.Zero(t, got[0].GrowthPercentage)

	assert.Equal(t, "2024-02", got[1].Month)
	assert.Equal(t, 325, got[1].Growth)
	assert.Equal(t, 141, got[1].GrowthPercentage)
}

func TestTrends_ZeroPreviousMonth(t *testing.T) {
	cats := []core.Category{{ID: "c", Name: "x"}}
	dons := []core.Donation{
		{ID: "a", CategoryID: "c", Name: "a", CreatedAt: now.AddDate(0, -1, 0)},
		{ID: "b", CategoryID: "c", Name: "b", InitialQuantity: 4, CreatedAt: now},
	}
	got := New(mustDataset(t, cats, dons)).Trends()

	require.Len(t, got, 2)
	assert.Equal(t, 4, got[1].Growth)
	assert.Zero(t, got[1].GrowthPercentage)
}

func TestCategoryPerformance(t *testing.T) {
	got := fixtureEngine().CategoryPerformance()
	require.Len(t, got, 5)

	tests := []struct {
		category string
		count    int
		average  int
		status   string
	}{
		{"Roupas", 2, 80, StatusMedium},
		{"Alimentos", 2, 120, StatusMedium},
		{"Brinquedos", 1, 45, StatusHigh},
		{"Livros", 1, 50, StatusMedium},
		{"Eletrônicos", 1, 20, StatusHigh},
	}
	for i, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, tt.category, got[i].Category)
			assert.Equal(t, tt.count, got[i].DonationCount)
			assert.Equal(t, tt.average, got[i].AverageUsagePerDonation)
			assert.Equal(t, tt.status, got[i].Status)
		})
	}
}

func TestUsageStatus(t *testing.T) {
	tests := []struct {
		pct  int
		want string
	}{
		{100, StatusHigh},
		{71, StatusHigh},
		{70, StatusMedium},
		{41, StatusMedium},
		{40, StatusLow},
		{0, StatusLow},
		{-30, StatusLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, usageStatus(tt.pct), "pct %d", tt.pct)
	}
}

func TestCategoryPerformance_NoDonations(t *testing.T) {
	ds := mustDataset(t, []core.Category{{ID: "c", Name: "Vazia"}}, nil)
	got := New(ds).CategoryPerformance()

	require.Len(t, got, 1)
	assert.Zero(t, got[0].DonationCount)
	assert.Zero(t, got[0].AverageUsagePerDonation)
	assert.Equal(t, StatusLow, got[0].Status)
}

func TestSummary(t *testing.T) {
	got := fixtureEngine().Summary(now)

	assert.Equal(t, 7, got.TotalDonations)
	assert.Equal(t, 5, got.TotalCategories)
	assert.Equal(t, 66, got.OverallUsage.UsagePercentage)
	assert.Zero(t, got.RunningLowCount)
	assert.Equal(t, "Padaria Central", got.TopDonator)
	assert.Equal(t, "Alimentos", got.TopCategory)
	assert.Equal(t, now, got.LastUpdated)
}

func TestSummary_TopCategoryTieGoesToLater(t *testing.T) {
	cats := []core.Category{{ID: "a", Name: "Primeira"}, {ID: "b", Name: "Segunda"}}
	dons := []core.Donation{
		{ID: "1", CategoryID: "a", Name: "x", InitialQuantity: 10},
		{ID: "2", CategoryID: "b", Name: "y", InitialQuantity: 10},
	}
	got := New(mustDataset(t, cats, dons)).Summary(now)
	assert.Equal(t, "Segunda", got.TopCategory)
}

func TestSummary_Empty(t *testing.T) {
	got := New(mustDataset(t, nil, nil)).Summary(now)
	assert.Equal(t, "N/A", got.TopDonator)
	assert.Equal(t, "N/A", got.TopCategory)
	assert.Zero(t, got.TotalDonations)
}

func TestExport(t *testing.T) {
	e := fixtureEngine()
	got := e.Export(now)

	assert.Equal(t, e.Overview(), got.Overview)
	assert.Equal(t, e.DonationsOverTime(), got.Trends)
	assert.Len(t, got.TopDonators, DefaultTopDonators)
	assert.Len(t, got.GenderDistribution, 3)
	assert.Len(t, got.Categories, 5)
	assert.Len(t, got.Donations, 7)
	assert.NotNil(t, got.RunningLow)
	assert.Equal(t, now, got.ExportedAt)
}
