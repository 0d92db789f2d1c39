package google

import (
	"strings"
	"testing"
	"time"
)

var loadedAt = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func TestParseCategories(t *testing.T) {
	values := [][]interface{}{
		{"ID", "Name", "Measure_Unity", "Active"},
		{"cat-1", "Roupas", "peças"},
		{"", "", ""},
		{"cat-2", "Alimentos", "kg", "FALSE"},
	}
	cats, err := parseCategories(values, loadedAt)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if len(cats) != 2 {
		t.Fatalf("expected 2 categories (blank row skipped), got %d", len(cats))
	}
	if cats[0].ID != "cat-1" || cats[0].MeasureUnity != "peças" || !cats[0].Active {
		t.Fatalf("unexpected first category: %+v", cats[0])
	}
	if cats[1].Active {
		t.Fatalf("expected cat-2 inactive")
	}
	if !cats[0].CreatedAt.Equal(loadedAt) {
		t.Fatalf("created_at should default to load time, got %v", cats[0].CreatedAt)
	}
}

func TestParseCategories_MissingHeader(t *testing.T) {
	_, err := parseCategories([][]interface{}{{"id", "label"}}, loadedAt)
	if err == nil || !strings.Contains(err.Error(), "missing name") {
		t.Fatalf("expected missing header error, got %v", err)
	}
}

func TestParseDonations(t *testing.T) {
	values := [][]interface{}{
		{"id", "category_id", "name", "description", "initial_quantity", "current_quantity", "donator_name", "gender", "size", "available", "created_at"},
		{"don-1", "cat-1", "Camisetas", "Camisetas em bom estado", 150.0, 45.0, "João Silva", "Unissex", "M/G", "", "2024-01-15"},
		{"don-7", "cat-5", "Smartphones", "", "25", "5", "", "", "", "não", "2024-02-20T10:00:00Z"},
	}
	dons, err := parseDonations(values, loadedAt)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if len(dons) != 2 {
		t.Fatalf("expected 2 donations, got %d", len(dons))
	}

	d := dons[0]
	if d.InitialQuantity != 150 || d.CurrentQuantity != 45 {
		t.Fatalf("quantities: got %d/%d", d.InitialQuantity, d.CurrentQuantity)
	}
	if d.Gender != "Unissex" || d.Size != "M/G" || !d.Available || !d.Active {
		t.Fatalf("unexpected fields: %+v", d)
	}
	if got := d.CreatedAt.Format("2006-01"); got != "2024-01" {
		t.Fatalf("created month: got %s", got)
	}
	if !d.UpdatedAt.Equal(loadedAt) {
		t.Fatalf("updated_at should default to load time")
	}

	if dons[1].DonatorName != "" || dons[1].Available {
		t.Fatalf("unexpected second donation: %+v", dons[1])
	}
}

func TestParseDonations_RowErrors(t *testing.T) {
	header := []interface{}{"id", "category_id", "name", "initial_quantity", "current_quantity", "created_at"}
	tests := []struct {
		name string
		row  []interface{}
		want string
	}{
		{"fractional quantity", []interface{}{"d", "c", "n", "10.5", "1"}, "initial_quantity"},
		{"text quantity", []interface{}{"d", "c", "n", "10", "muito"}, "current_quantity"},
		{"bad date", []interface{}{"d", "c", "n", "10", "1", "ontem"}, "created_at"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseDonations([][]interface{}{header, tt.row}, loadedAt)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "row 2") || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q should mention row 2 and %s", err, tt.want)
			}
		})
	}
}

func TestParseHelpers(t *testing.T) {
	if n, err := parseQuantity("1,0"); err != nil || n != 1 {
		t.Fatalf("parseQuantity(1,0) = %d, %v", n, err)
	}
	if n, err := parseQuantity(""); err != nil || n != 0 {
		t.Fatalf("parseQuantity(\"\") = %d, %v", n, err)
	}
	if _, err := parseBool("talvez", true); err == nil {
		t.Fatal("expected boolean error")
	}
	if b, _ := parseBool("Sim", false); !b {
		t.Fatal("Sim should parse as true")
	}
	got, err := parseTime("15/01/2024", loadedAt)
	if err != nil || got.Day() != 15 || got.Month() != time.January {
		t.Fatalf("parseTime dd/mm/yyyy: %v %v", got, err)
	}
}
