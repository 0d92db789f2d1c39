package core

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// AnonymousDonator labels donations recorded without a donator name.
	AnonymousDonator = "Anônimo"
	// UnspecifiedGender labels donations recorded without a gender classification.
	UnspecifiedGender = "Não especificado"

	// MaxQuantity bounds a single record's quantities so that aggregate
	// percentages (sum*100) stay within int.
	MaxQuantity = 1_000_000_000

	runningLowRatio = 0.2
)

type (
	Category struct {
		ID           string    `json:"id" validate:"required"`
		Name         string    `json:"name" validate:"required"`
		MeasureUnity string    `json:"measure_unity"`
		CreatedAt    time.Time `json:"created_at"`
		Active       bool      `json:"active"`
	}

	Donation struct {
		ID              string    `json:"id" validate:"required"`
		CategoryID      string    `json:"category_id" validate:"required"`
		Name            string    `json:"name" validate:"required"`
		Description     string    `json:"description"`
		InitialQuantity int       `json:"initial_quantity" validate:"gte=0,lte=1000000000"`
		CurrentQuantity int       `json:"current_quantity" validate:"gte=0,lte=1000000000"`
		DonatorName     string    `json:"donator_name,omitempty"`
		Gender          string    `json:"gender,omitempty"`
		Size            string    `json:"size,omitempty"`
		Active          bool      `json:"active"`
		Available       bool      `json:"available"`
		CreatedAt       time.Time `json:"created_at"`
		UpdatedAt       time.Time `json:"updated_at"`

		// Category is a copy of the record referenced by CategoryID, set once
		// when the dataset is built.
		Category Category `json:"category" validate:"-"`
	}
)

var validate = validator.New()

func (c Category) Validate() error {
	return validate.Struct(c)
}

func (d Donation) Validate() error {
	return validate.Struct(d)
}

// UsedQuantity is the amount already distributed. It goes negative when the
// current quantity exceeds the initial one; that anomaly is reported as is.
func (d Donation) UsedQuantity() int {
	return d.InitialQuantity - d.CurrentQuantity
}

// UsagePercentage returns the used share of the initial quantity, rounded to
// the nearest integer. Zero when nothing was donated.
func (d Donation) UsagePercentage() int {
	return Percent(d.UsedQuantity(), d.InitialQuantity)
}

// IsRunningLow reports whether less than 20% of the initial quantity remains.
func (d Donation) IsRunningLow() bool {
	return float64(d.CurrentQuantity) < float64(d.InitialQuantity)*runningLowRatio
}

// DonatorLabel returns the donator name or AnonymousDonator.
func (d Donation) DonatorLabel() string {
	if d.DonatorName == "" {
		return AnonymousDonator
	}
	return d.DonatorName
}

// GenderLabel returns the gender or UnspecifiedGender.
func (d Donation) GenderLabel() string {
	if d.Gender == "" {
		return UnspecifiedGender
	}
	return d.Gender
}

// MarshalJSON writes the stored fields followed by the derived ones.
func (d Donation) MarshalJSON() ([]byte, error) {
	type donation Donation
	return json.Marshal(struct {
		donation
		UsedQuantity    int  `json:"used_quantity"`
		UsagePercentage int  `json:"usage_percentage"`
		IsRunningLow    bool `json:"is_running_low"`
	}{
		donation:        donation(d),
		UsedQuantity:    d.UsedQuantity(),
		UsagePercentage: d.UsagePercentage(),
		IsRunningLow:    d.IsRunningLow(),
	})
}
