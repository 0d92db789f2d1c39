package dataset

import (
	"time"

	"donations/internal/core"
)

// FixtureCategories returns the built-in category records.
func FixtureCategories(now time.Time) []core.Category {
	cat := func(id, name, unity string) core.Category {
		return core.Category{ID: id, Name: name, MeasureUnity: unity, CreatedAt: now, Active: true}
	}
	return []core.Category{
		cat("cat-1", "Roupas", "peças"),
		cat("cat-2", "Alimentos", "kg"),
		cat("cat-3", "Brinquedos", "unidades"),
		cat("cat-4", "Livros", "unidades"),
		cat("cat-5", "Eletrônicos", "unidades"),
	}
}

// FixtureDonations returns the built-in donation records. UpdatedAt is set to
// now, as the records have never been touched since loading.
func FixtureDonations(now time.Time) []core.Donation {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	don := func(id, categoryID, name, desc string, initial, current int, donator string, created time.Time) core.Donation {
		return core.Donation{
			ID:              id,
			CategoryID:      categoryID,
			Name:            name,
			Description:     desc,
			InitialQuantity: initial,
			CurrentQuantity: current,
			DonatorName:     donator,
			Active:          true,
			Available:       true,
			CreatedAt:       created,
			UpdatedAt:       now,
		}
	}

	shirts := don("don-1", "cat-1", "Camisetas", "Camisetas em bom estado", 150, 45, "João Silva", day(2024, 1, 15))
	shirts.Gender, shirts.Size = "Unissex", "M/G"
	trousers := don("don-2", "cat-1", "Calças", "Calças jeans e sociais", 80, 25, "Maria Santos", day(2024, 1, 20))
	trousers.Gender, trousers.Size = "Feminino", "36-42"

	return []core.Donation{
		shirts,
		trousers,
		don("don-3", "cat-2", "Arroz", "Arroz tipo 1", 200, 80, "Padaria Central", day(2024, 2, 1)),
		don("don-4", "cat-2", "Feijão", "Feijão carioca", 150, 30, "Supermercado ABC", day(2024, 2, 5)),
		don("don-5", "cat-3", "Brinquedos Educativos", "Brinquedos para crianças de 3-8 anos", 60, 15, "Loja de Brinquedos", day(2024, 2, 10)),
		don("don-6", "cat-4", "Livros Infantis", "Livros para crianças", 120, 70, "Biblioteca Municipal", day(2024, 2, 15)),
		don("don-7", "cat-5", "Smartphones", "Smartphones usados em bom estado", 25, 5, "Tech Store", day(2024, 2, 20)),
	}
}

// Fixture builds the dataset from the built-in records.
func Fixture(now time.Time) *Dataset {
	ds, err := New(FixtureCategories(now), FixtureDonations(now))
	if err != nil {
		panic("dataset: invalid built-in fixture: " + err.Error())
	}
	return ds
}
