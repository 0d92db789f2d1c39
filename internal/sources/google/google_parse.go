package google

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"donations/internal/core"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02", "02/01/2006"}

// parseCategories converts a values matrix into categories. Required headers:
// id, name. Optional: measure_unity, active, created_at.
func parseCategories(values [][]interface{}, now time.Time) ([]core.Category, error) {
	if len(values) == 0 {
		return nil, nil
	}
	h := toStrings(values[0])
	col := columns(h, "id", "name", "measure_unity", "active", "created_at")
	if err := requireColumns(h, col, "id", "name"); err != nil {
		return nil, err
	}

	out := make([]core.Category, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		row := toStrings(values[i])
		if blankRow(row) {
			continue
		}
		active, err := parseBool(safeGet(row, col["active"]), true)
		if err != nil {
			return nil, fmt.Errorf("row %d: active: %w", i+1, err)
		}
		created, err := parseTime(safeGet(row, col["created_at"]), now)
		if err != nil {
			return nil, fmt.Errorf("row %d: created_at: %w", i+1, err)
		}
		out = append(out, core.Category{
			ID:           safeGet(row, col["id"]),
			Name:         safeGet(row, col["name"]),
			MeasureUnity: safeGet(row, col["measure_unity"]),
			Active:       active,
			CreatedAt:    created,
		})
	}
	return out, nil
}

// parseDonations converts a values matrix into donations. Required headers:
// id, category_id, name, initial_quantity, current_quantity.
func parseDonations(values [][]interface{}, now time.Time) ([]core.Donation, error) {
	if len(values) == 0 {
		return nil, nil
	}
	h := toStrings(values[0])
	col := columns(h,
		"id", "category_id", "name", "description",
		"initial_quantity", "current_quantity",
		"donator_name", "gender", "size",
		"active", "available", "created_at", "updated_at")
	if err := requireColumns(h, col, "id", "category_id", "name", "initial_quantity", "current_quantity"); err != nil {
		return nil, err
	}

	out := make([]core.Donation, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		row := toStrings(values[i])
		if blankRow(row) {
			continue
		}
		d := core.Donation{
			ID:          safeGet(row, col["id"]),
			CategoryID:  safeGet(row, col["category_id"]),
			Name:        safeGet(row, col["name"]),
			Description: safeGet(row, col["description"]),
			DonatorName: safeGet(row, col["donator_name"]),
			Gender:      safeGet(row, col["gender"]),
			Size:        safeGet(row, col["size"]),
		}

		var err error
		if d.InitialQuantity, err = parseQuantity(safeGet(row, col["initial_quantity"])); err != nil {
			return nil, fmt.Errorf("row %d: initial_quantity: %w", i+1, err)
		}
		if d.CurrentQuantity, err = parseQuantity(safeGet(row, col["current_quantity"])); err != nil {
			return nil, fmt.Errorf("row %d: current_quantity: %w", i+1, err)
		}
		if d.Active, err = parseBool(safeGet(row, col["active"]), true); err != nil {
			return nil, fmt.Errorf("row %d: active: %w", i+1, err)
		}
		if d.Available, err = parseBool(safeGet(row, col["available"]), true); err != nil {
			return nil, fmt.Errorf("row %d: available: %w", i+1, err)
		}
		if d.CreatedAt, err = parseTime(safeGet(row, col["created_at"]), now); err != nil {
			return nil, fmt.Errorf("row %d: created_at: %w", i+1, err)
		}
		if d.UpdatedAt, err = parseTime(safeGet(row, col["updated_at"]), now); err != nil {
			return nil, fmt.Errorf("row %d: updated_at: %w", i+1, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func columns(headers []string, names ...string) map[string]int {
	m := make(map[string]int, len(names))
	for _, n := range names {
		m[n] = indexOf(headers, n)
	}
	return m
}

func requireColumns(headers []string, col map[string]int, names ...string) error {
	var missing []string
	for _, n := range names {
		if col[n] == -1 {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("unexpected header: missing %s; got headers=%v", strings.Join(missing, ","), headers)
	}
	return nil
}

func parseQuantity(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	// Sheets may render whole numbers with a decimal part.
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("not a whole number: %q", s)
	}
	return int(f), nil
}

func parseBool(s string, def bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def, nil
	case "true", "1", "yes", "sim":
		return true, nil
	case "false", "0", "no", "não", "nao":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", s)
}

func parseTime(s string, def time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date: %q", s)
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func blankRow(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}

func indexOf(arr []string, target string) int {
	for i, v := range arr {
		if strings.EqualFold(strings.TrimSpace(v), strings.TrimSpace(target)) {
			return i
		}
	}
	return -1
}

func safeGet(arr []string, idx int) string {
	if idx < 0 || idx >= len(arr) {
		return ""
	}
	return arr[idx]
}
