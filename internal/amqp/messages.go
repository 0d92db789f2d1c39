package amqp

import (
	"encoding/json"
	"time"

	"donations/internal/core"
)

// RunningLowAlert announces a donation whose stock fell under a fifth of its
// initial quantity.
type RunningLowAlert struct {
	DonationID      string    `json:"donation_id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	MeasureUnity    string    `json:"measure_unity"`
	InitialQuantity int       `json:"initial_quantity"`
	CurrentQuantity int       `json:"current_quantity"`
	UsagePercentage int       `json:"usage_percentage"`
	Timestamp       time.Time `json:"timestamp"`
}

// NewRunningLowAlert builds the alert for d, stamped with at.
func NewRunningLowAlert(d core.Donation, at time.Time) *RunningLowAlert {
	return &RunningLowAlert{
		DonationID:      d.ID,
		Name:            d.Name,
		Category:        d.Category.Name,
		MeasureUnity:    d.Category.MeasureUnity,
		InitialQuantity: d.InitialQuantity,
		CurrentQuantity: d.CurrentQuantity,
		UsagePercentage: d.UsagePercentage(),
		Timestamp:       at.UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RunningLowAlert) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RunningLowAlertFromJSON decodes an alert body.
func RunningLowAlertFromJSON(data []byte) (*RunningLowAlert, error) {
	var msg RunningLowAlert
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
