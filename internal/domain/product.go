package domain

// Product is a catalog entry keyed by a caller-chosen id such as "P001".
type Product struct {
	ID       string  `json:"id" validate:"notblank"`
	Name     string  `json:"name" validate:"notblank"`
	Category string  `json:"category" validate:"notblank"`
	Price    float64 `json:"price" validate:"gte=0"`
}

// ProductPatch carries the editable fields of a product.
// Nil fields are left unchanged.
type ProductPatch struct {
	Name     *string  `json:"name,omitempty"`
	Category *string  `json:"category,omitempty"`
	Price    *float64 `json:"price,omitempty"`
}

// Apply merges the patch into p; the id never changes.
func (pp ProductPatch) Apply(p Product) Product {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	return p
}
