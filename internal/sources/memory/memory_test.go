package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"donations/internal/dataset"
)

var now = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func TestFixtureLoader(t *testing.T) {
	ds, err := NewFixture(now).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ds.CategoryCount() != 5 || ds.DonationCount() != 7 {
		t.Fatalf("unexpected sizes: %d categories, %d donations", ds.CategoryCount(), ds.DonationCount())
	}
}

func TestNewFromFilesSeedsAndDefaults(t *testing.T) {
	dir := t.TempDir()

	// No files -> built-in records
	l, err := NewFromFiles(dir, now)
	if err != nil {
		t.Fatalf("missing files should fall back: %v", err)
	}
	ds, err := l.Load(context.Background())
	if err != nil || ds.DonationCount() != 7 {
		t.Fatalf("expected fixture, got err=%v", err)
	}

	mustWrite := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	mustWrite(CategoriesFile, `[
		{"id": "c1", "name": "Cobertores", "measure_unity": "unidades"},
		{"id": "c2", "name": "Agasalhos", "measure_unity": "peças", "active": false}
	]`)
	mustWrite(DonationsFile, `[
		{"id": "d1", "category_id": "c1", "name": "Cobertor", "initial_quantity": 40, "current_quantity": 4,
		 "created_at": "2024-06-10T12:00:00Z"},
		{"id": "d2", "category_id": "c2", "name": "Casaco", "initial_quantity": 10, "current_quantity": 9,
		 "donator_name": "Ana", "gender": "Feminino", "available": false}
	]`)

	l, err = NewFromFiles(dir, now)
	if err != nil {
		t.Fatalf("seed load: %v", err)
	}
	ds, err = l.Load(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	cats := ds.Categories()
	if len(cats) != 2 || !cats[0].Active || cats[1].Active {
		t.Fatalf("unexpected categories: %+v", cats)
	}
	if !cats[0].CreatedAt.Equal(now) {
		t.Fatalf("created_at default: got %v", cats[0].CreatedAt)
	}

	dons := ds.Donations()
	if len(dons) != 2 {
		t.Fatalf("expected 2 donations, got %d", len(dons))
	}
	if dons[0].CreatedAt.Month() != time.June || !dons[0].Active || !dons[0].Available {
		t.Fatalf("unexpected first donation: %+v", dons[0])
	}
	if dons[1].Available || dons[1].Category.Name != "Agasalhos" {
		t.Fatalf("unexpected second donation: %+v", dons[1])
	}
	if !dons[0].IsRunningLow() {
		t.Fatalf("4 of 40 left should be running low")
	}
}

func TestNewFromFilesErrors(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, CategoriesFile), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFromFiles(dir, now); err == nil {
		t.Fatalf("expected decode error")
	}

	// Donations referencing a category absent from the seed file
	if err := os.WriteFile(filepath.Join(dir, CategoriesFile), []byte(`[{"id":"only","name":"Só"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	l, err := NewFromFiles(dir, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = l.Load(context.Background())
	if !errors.Is(err, dataset.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}
