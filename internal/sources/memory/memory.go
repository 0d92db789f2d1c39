package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"donations/internal/core"
	"donations/internal/dataset"
	"donations/internal/sources"
)

const (
	CategoriesFile = "categories.json"
	DonationsFile  = "donations.json"
)

var _ sources.DatasetLoader = (*Loader)(nil)

// Loader serves records held in memory: the built-in fixture, or seed files
// read once from a directory.
type Loader struct {
	categories []core.Category
	donations  []core.Donation
}

func New(categories []core.Category, donations []core.Donation) *Loader {
	return &Loader{categories: categories, donations: donations}
}

// NewFixture returns a loader for the built-in records.
func NewFixture(now time.Time) *Loader {
	return New(dataset.FixtureCategories(now), dataset.FixtureDonations(now))
}

// NewFromFiles reads categories.json and donations.json from base. A missing
// file falls back to the built-in records of the same kind.
func NewFromFiles(base string, now time.Time) (*Loader, error) {
	cats, err := readCategories(filepath.Join(base, CategoriesFile), now)
	if err != nil {
		return nil, err
	}
	dons, err := readDonations(filepath.Join(base, DonationsFile), now)
	if err != nil {
		return nil, err
	}
	return New(cats, dons), nil
}

// Load builds the dataset. Records are validated on every call.
func (l *Loader) Load(_ context.Context) (*dataset.Dataset, error) {
	return dataset.New(l.categories, l.donations)
}

type categorySeed struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	MeasureUnity string     `json:"measure_unity"`
	Active       *bool      `json:"active"`
	CreatedAt    *time.Time `json:"created_at"`
}

type donationSeed struct {
	ID              string     `json:"id"`
	CategoryID      string     `json:"category_id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	InitialQuantity int        `json:"initial_quantity"`
	CurrentQuantity int        `json:"current_quantity"`
	DonatorName     string     `json:"donator_name"`
	Gender          string     `json:"gender"`
	Size            string     `json:"size"`
	Active          *bool      `json:"active"`
	Available       *bool      `json:"available"`
	CreatedAt       *time.Time `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}

func readCategories(path string, now time.Time) ([]core.Category, error) {
	var seeds []categorySeed
	found, err := readJSON(path, &seeds)
	if err != nil {
		return nil, err
	}
	if !found {
		return dataset.FixtureCategories(now), nil
	}

	out := make([]core.Category, 0, len(seeds))
	for _, s := range seeds {
		out = append(out, core.Category{
			ID:           s.ID,
			Name:         s.Name,
			MeasureUnity: s.MeasureUnity,
			Active:       boolOr(s.Active, true),
			CreatedAt:    timeOr(s.CreatedAt, now),
		})
	}
	return out, nil
}

func readDonations(path string, now time.Time) ([]core.Donation, error) {
	var seeds []donationSeed
	found, err := readJSON(path, &seeds)
	if err != nil {
		return nil, err
	}
	if !found {
		return dataset.FixtureDonations(now), nil
	}

	out := make([]core.Donation, 0, len(seeds))
	for _, s := range seeds {
		out = append(out, core.Donation{
			ID:              s.ID,
			CategoryID:      s.CategoryID,
			Name:            s.Name,
			Description:     s.Description,
			InitialQuantity: s.InitialQuantity,
			CurrentQuantity: s.CurrentQuantity,
			DonatorName:     s.DonatorName,
			Gender:          s.Gender,
			Size:            s.Size,
			Active:          boolOr(s.Active, true),
			Available:       boolOr(s.Available, true),
			CreatedAt:       timeOr(s.CreatedAt, now),
			UpdatedAt:       timeOr(s.UpdatedAt, now),
		})
	}
	return out, nil
}

// readJSON decodes path into v. found is false when the file does not exist.
func readJSON(path string, v any) (found bool, err error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", path, err)
	}
	return true, nil
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func timeOr(p *time.Time, def time.Time) time.Time {
	if p == nil {
		return def
	}
	return *p
}
