// Package dataset builds the immutable collection of categories and
// donations that every analytics query reads.
package dataset

import (
	"errors"
	"fmt"

	"donations/internal/core"
)

var (
	ErrDuplicateID     = errors.New("duplicate id")
	ErrUnknownCategory = errors.New("unknown category")
)

// Dataset is built once and never mutated. Accessors return copies so callers
// cannot alter the shared records.
type Dataset struct {
	categories []core.Category
	donations  []core.Donation
	byID       map[string]int
}

// New validates the records, resolves each donation's category and returns
// the dataset. Input order is preserved.
func New(categories []core.Category, donations []core.Donation) (*Dataset, error) {
	ds := &Dataset{
		categories: make([]core.Category, 0, len(categories)),
		donations:  make([]core.Donation, 0, len(donations)),
		byID:       make(map[string]int, len(categories)),
	}

	for _, c := range categories {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("category %q: %w", c.ID, err)
		}
		if _, ok := ds.byID[c.ID]; ok {
			return nil, fmt.Errorf("category %q: %w", c.ID, ErrDuplicateID)
		}
		ds.byID[c.ID] = len(ds.categories)
		ds.categories = append(ds.categories, c)
	}

	seen := make(map[string]struct{}, len(donations))
	for _, d := range donations {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("donation %q: %w", d.ID, err)
		}
		if _, ok := seen[d.ID]; ok {
			return nil, fmt.Errorf("donation %q: %w", d.ID, ErrDuplicateID)
		}
		seen[d.ID] = struct{}{}

		idx, ok := ds.byID[d.CategoryID]
		if !ok {
			return nil, fmt.Errorf("donation %q references %q: %w", d.ID, d.CategoryID, ErrUnknownCategory)
		}
		d.Category = ds.categories[idx]
		ds.donations = append(ds.donations, d)
	}

	return ds, nil
}

// Categories returns all categories in insertion order.
func (ds *Dataset) Categories() []core.Category {
	return append([]core.Category(nil), ds.categories...)
}

// Donations returns all donations in insertion order.
func (ds *Dataset) Donations() []core.Donation {
	return append([]core.Donation(nil), ds.donations...)
}

// Category looks up a category by id.
func (ds *Dataset) Category(id string) (core.Category, bool) {
	idx, ok := ds.byID[id]
	if !ok {
		return core.Category{}, false
	}
	return ds.categories[idx], true
}

func (ds *Dataset) CategoryCount() int { return len(ds.categories) }

func (ds *Dataset) DonationCount() int { return len(ds.donations) }
