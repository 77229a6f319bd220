package models

import "time"

// KittenFields are the mutable columns of a kitten. Updates replace all of them.
// Keys without a `default` tag must be present in a payload.
type KittenFields struct {
	Name        string  `db:"name" json:"name"`
	BirthDate   string  `db:"birth_date" json:"birth_date"`
	Color       string  `db:"color" json:"color"`
	Gender      string  `db:"gender" json:"gender"`
	Price       float64 `db:"price" json:"price"`
	Description string  `db:"description" json:"description"`
	ImageURL    string  `db:"image_url" json:"image_url" default:""`
	Available   bool    `db:"available" json:"available" default:"true"`
}

func (f KittenFields) Args() []interface{} {
	return []interface{}{f.Name, f.BirthDate, f.Color, f.Gender, f.Price, f.Description, f.ImageURL, f.Available}
}

type Kitten struct {
	ID int64 `db:"id" json:"id"`
	KittenFields
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type ParentFields struct {
	Name        string `db:"name" json:"name"`
	Gender      string `db:"gender" json:"gender"`
	Color       string `db:"color" json:"color"`
	Description string `db:"description" json:"description"`
	ImageURL    string `db:"image_url" json:"image_url" default:""`
}

func (f ParentFields) Args() []interface{} {
	return []interface{}{f.Name, f.Gender, f.Color, f.Description, f.ImageURL}
}

type Parent struct {
	ID int64 `db:"id" json:"id"`
	ParentFields
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type LeadFields struct {
	Name        string `db:"name" json:"name"`
	Email       string `db:"email" json:"email" validate:"email"`
	Phone       string `db:"phone" json:"phone"`
	Preferences string `db:"preferences" json:"preferences" default:""`
}

func (f LeadFields) Args() []interface{} {
	return []interface{}{f.Name, f.Email, f.Phone, f.Preferences}
}

// Lead is a waiting-list entry.
type Lead struct {
	ID int64 `db:"id" json:"id"`
	LeadFields
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type ProductFields struct {
	Name          string  `db:"name" json:"name"`
	Description   string  `db:"description" json:"description"`
	Price         float64 `db:"price" json:"price"`
	Category      string  `db:"category" json:"category"`
	ImageURL      string  `db:"image_url" json:"image_url" default:""`
	StockQuantity int     `db:"stock_quantity" json:"stock_quantity" default:"0"`
	Available     bool    `db:"available" json:"available" default:"true"`
}

func (f ProductFields) Args() []interface{} {
	return []interface{}{f.Name, f.Description, f.Price, f.Category, f.ImageURL, f.StockQuantity, f.Available}
}

type Product struct {
	ID int64 `db:"id" json:"id"`
	ProductFields
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type PageContent struct {
	ID        int64     `db:"id" json:"id"`
	PageName  string    `db:"page_name" json:"page_name"`
	Content   string    `db:"content" json:"content"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type AdminSetting struct {
	ID           int64     `db:"id"`
	SettingKey   string    `db:"setting_key"`
	SettingValue string    `db:"setting_value"`
	UpdatedAt    time.Time `db:"updated_at"`
}
