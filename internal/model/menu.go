package model

// MenuItem is a dish or drink on the menu.  Prices are whole currency
// units, so totals never need rounding.
type MenuItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int    `json:"price"`
	Image       string `json:"image"`
	Available   bool   `json:"available"`
	PrepTime    int    `json:"prep_time"` // minutes
	IsVeg       bool   `json:"is_veg"`
	Description string `json:"description"`
}

// SubCategory groups items inside a category (e.g. "Dosa Items").
type SubCategory struct {
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}

// Category is the top level of the menu (e.g. "Breakfast").
type Category struct {
	Name          string        `json:"name"`
	Icon          string        `json:"icon"`
	Subcategories []SubCategory `json:"subcategories"`
}

// CartLine is one menu item plus the quantity ordered.  Quantity is
// always at least 1 while the line exists.
type CartLine struct {
	MenuItem
	Quantity int `json:"quantity"`
}

// LineTotal is price times quantity.
func (l CartLine) LineTotal() int { return l.Price * l.Quantity }
