package services

import (
	"cattery-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

type (
	KittenRepository  = Repository[models.Kitten, models.KittenFields]
	ParentRepository  = Repository[models.Parent, models.ParentFields]
	LeadRepository    = Repository[models.Lead, models.LeadFields]
	ProductRepository = Repository[models.Product, models.ProductFields]
)

func NewKittens(db *sqlx.DB) *KittenRepository {
	return &KittenRepository{
		DB:      db,
		Table:   "kittens",
		Columns: []string{"name", "birth_date", "color", "gender", "price", "description", "image_url", "available"},
		Noun:    "Kitten",
	}
}

func NewParents(db *sqlx.DB) *ParentRepository {
	return &ParentRepository{
		DB:      db,
		Table:   "parents",
		Columns: []string{"name", "gender", "color", "description", "image_url"},
		Noun:    "Parent",
	}
}

func NewLeads(db *sqlx.DB) *LeadRepository {
	return &LeadRepository{
		DB:      db,
		Table:   "waiting_list",
		Columns: []string{"name", "email", "phone", "preferences"},
		Noun:    "Entry",
	}
}

func NewProducts(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{
		DB:      db,
		Table:   "products",
		Columns: []string{"name", "description", "price", "category", "image_url", "stock_quantity", "available"},
		Noun:    "Product",
	}
}

// AvailableOnly filters to rows whose available flag is set.
func AvailableOnly() Predicate {
	return Predicate{Column: "available", Value: true}
}

func InCategory(category string) Predicate {
	return Predicate{Column: "category", Value: category}
}
