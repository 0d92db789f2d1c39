package analytics

import (
	"time"

	"donations/internal/core"
)

// Usage totals a set of donations.
type Usage struct {
	TotalInitial    int `json:"totalInitial"`
	TotalCurrent    int `json:"totalCurrent"`
	TotalUsed       int `json:"totalUsed"`
	UsagePercentage int `json:"usagePercentage"`
}

// CategoryStat is the usage of one category.
type CategoryStat struct {
	Category        string `json:"category"`
	TotalInitial    int    `json:"totalInitial"`
	TotalCurrent    int    `json:"totalCurrent"`
	TotalUsed       int    `json:"totalUsed"`
	UsagePercentage int    `json:"usagePercentage"`
	MeasureUnity    string `json:"measureUnity"`
}

type Overview struct {
	CategoryStats   []CategoryStat `json:"categoryStats"`
	TotalDonations  int            `json:"totalDonations"`
	TotalCategories int            `json:"totalCategories"`
	OverallUsage    Usage          `json:"overallUsage"`
}

// MonthlyTotals groups the donations created in one month (YYYY-MM).
// Categories maps a category name to the initial quantity donated that month.
type MonthlyTotals struct {
	Month          string         `json:"month"`
	TotalDonations int            `json:"totalDonations"`
	TotalQuantity  int            `json:"totalQuantity"`
	Categories     map[string]int `json:"categories"`
}

type GenderShare struct {
	Gender     string `json:"gender"`
	Quantity   int    `json:"quantity"`
	Percentage int    `json:"percentage"`
}

type DonatorTotal struct {
	Name           string `json:"name"`
	TotalQuantity  int    `json:"totalQuantity"`
	TotalDonations int    `json:"totalDonations"`
}

// CategorySlice is one slice of the category pie chart.
type CategorySlice struct {
	Label      string `json:"label"`
	Value      int    `json:"value"`
	Percentage int    `json:"percentage"`
}

// UsageBar is one bar of the usage chart.
type UsageBar struct {
	Category        string `json:"category"`
	Used            int    `json:"used"`
	Available       int    `json:"available"`
	UsagePercentage int    `json:"usagePercentage"`
}

// Trend is a month of MonthlyTotals compared with the previous month present
// in the series.
type Trend struct {
	MonthlyTotals
	Growth           int `json:"growth"`
	GrowthPercentage int `json:"growthPercentage"`
}

type CategoryPerformance struct {
	CategoryStat
	DonationCount           int    `json:"donationCount"`
	AverageUsagePerDonation int    `json:"averageUsagePerDonation"`
	Status                  string `json:"status"`
}

type Summary struct {
	TotalDonations  int       `json:"totalDonations"`
	TotalCategories int       `json:"totalCategories"`
	OverallUsage    Usage     `json:"overallUsage"`
	RunningLowCount int       `json:"runningLowCount"`
	TopDonator      string    `json:"topDonator"`
	TopCategory     string    `json:"topCategory"`
	LastUpdated     time.Time `json:"lastUpdated"`
}

// Export bundles every view of the dataset into one payload.
type Export struct {
	Overview           Overview        `json:"overview"`
	Trends             []MonthlyTotals `json:"trends"`
	RunningLow         []core.Donation `json:"runningLow"`
	TopDonators        []DonatorTotal  `json:"topDonators"`
	GenderDistribution []GenderShare   `json:"genderDistribution"`
	Categories         []core.Category `json:"categories"`
	Donations          []core.Donation `json:"donations"`
	ExportedAt         time.Time       `json:"exportedAt"`
}
