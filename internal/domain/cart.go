package domain

// CatalogItem is a product offered in the shopping cart exercise.
type CatalogItem struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// CartLine is a catalog item with a quantity.
type CartLine struct {
	CatalogItem
	Qty int `json:"qty" validate:"gte=1"`
}

// LineTotal is price times quantity.
func (l CartLine) LineTotal() float64 {
	return l.Price * float64(l.Qty)
}
