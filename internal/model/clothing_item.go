package model

import (
	"strings"
	"time"
)

// Category is the closed set of clothing categories. Values are persisted
// as uppercase strings in the `clothing_items` table.
type Category string

const (
	CategoryShirt     Category = "SHIRT"
	CategoryPants     Category = "PANTS"
	CategoryShoes     Category = "SHOES"
	CategoryJacket    Category = "JACKET"
	CategoryAccessory Category = "ACCESSORY"
	CategoryOther     Category = "OTHER"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryShirt,
	CategoryPants,
	CategoryShoes,
	CategoryJacket,
	CategoryAccessory,
	CategoryOther,
}

// ParseCategory normalizes raw input (case-insensitive, surrounding spaces
// ignored) into a Category. The boolean is false for anything outside the
// closed set; unknown values are never coerced to OTHER.
func ParseCategory(raw string) (Category, bool) {
	c := Category(strings.ToUpper(strings.TrimSpace(raw)))
	switch c {
	case CategoryShirt, CategoryPants, CategoryShoes, CategoryJacket, CategoryAccessory, CategoryOther:
		return c, true
	}
	return "", false
}

// ClothingItem represents a row in the `clothing_items` table. Every item
// belongs to exactly one user; the owner_id column carries a foreign key
// with ON DELETE CASCADE so a deleted account takes its wardrobe with it.
//
// Brand and ImageURL are optional and map to nullable columns; the empty
// string means "not set".
type ClothingItem struct {
	ID        uint64    `json:"id"`
	OwnerID   uint64    `json:"-"`
	Name      string    `json:"name"`
	Category  Category  `json:"category"`
	Color     string    `json:"color"`
	Brand     string    `json:"brand,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
