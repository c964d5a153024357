package model

// MenuCategory matches the category column on menu_items
type MenuCategory string

const (
	CategoryRoastedMeat MenuCategory = "roasted_meat"
	CategorySides       MenuCategory = "sides"
	CategoryDrinks      MenuCategory = "drinks"
)

// MenuItem represents a row in the menu_items table.
// Price is in the smallest currency unit; no fractional subunits exist.
type MenuItem struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description *string      `json:"description,omitempty"`
	Category    MenuCategory `json:"category"`
	Price       int64        `json:"price"`
	ImageURL    *string      `json:"image_url,omitempty"`
	IsAvailable bool         `json:"is_available"`
}
