package services

import (
	"fmt"
	"strings"

	"labkit/internal/domain"
	"labkit/internal/render"
	"labkit/internal/store"
	"labkit/internal/validation"
)

// ProductInput is the raw add/edit product form.
type ProductInput struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
}

// ProductRow is one rendered product card.
type ProductRow struct {
	domain.Product
	PriceText string `json:"priceText"`
}

// CatalogStats summarises every product, whatever the filter.
type CatalogStats struct {
	Products     int      `json:"products"`
	Categories   int      `json:"categories"`
	AveragePrice string   `json:"averagePrice"`
	TotalValue   string   `json:"totalValue"`
	Chips        []string `json:"chips"`
}

// CatalogView is the rendered product grid.
type CatalogView = render.View[ProductRow, CatalogStats]

var catalogSeed = []domain.Product{
	{ID: "P001", Name: "Laptop Pro", Category: "Electronics", Price: 1299.99},
	{ID: "P002", Name: "Wireless Earbuds", Category: "Audio", Price: 79.99},
	{ID: "P003", Name: "Standing Desk", Category: "Furniture", Price: 449.00},
	{ID: "P004", Name: "Mechanical Keyboard", Category: "Peripherals", Price: 129.99},
	{ID: "P005", Name: "USB-C Monitor", Category: "Displays", Price: 599.99},
}

// Catalog is the product catalog exercise, keyed by caller-chosen ids.
type Catalog struct {
	products  *store.Store[string, domain.Product]
	validator *validation.Validator
}

// NewCatalog creates the catalog with its five seed products.
func NewCatalog() *Catalog {
	c := &Catalog{
		products: store.New("product",
			func(p domain.Product) string { return p.ID },
			store.WithValidator[string](validateRecord[domain.Product]),
			store.WithDuplicateMessage[string, domain.Product]("Product ID already exists"),
		),
		validator: validation.NewValidator(),
	}
	for _, p := range catalogSeed {
		if _, err := c.products.Add(p); err != nil {
			panic(fmt.Sprintf("catalog seed %s: %v", p.ID, err))
		}
	}
	return c
}

func (c *Catalog) checkFields(in ProductInput, withID bool) error {
	var fields []validation.Field
	if withID {
		fields = append(fields, validation.Field{Name: "id", Value: in.ID, Rules: []validation.Rule{
			validation.Required("Product ID is required."),
		}})
	}
	fields = append(fields,
		validation.Field{Name: "name", Value: in.Name, Rules: []validation.Rule{
			validation.Required("Product name is required."),
		}},
		validation.Field{Name: "category", Value: in.Category, Rules: []validation.Rule{
			validation.Required("Category is required."),
		}},
		validation.Field{Name: "price", Value: in.Price, Rules: []validation.Rule{
			validation.Required("Price is required."),
			validation.Numeric("Price must be a number."),
			{Type: validation.ErrorTypeInvalidRange, Message: "Price cannot be negative.", Check: func(s string) bool {
				n, _ := c.validator.ParseNumber(s)
				return n >= 0
			}},
		}},
	)
	return validationFailure(validation.Check(fields...))
}

// Add validates the form and inserts a product. Existing ids are rejected.
func (c *Catalog) Add(in ProductInput) (Change[domain.Product], error) {
	if err := c.checkFields(in, true); err != nil {
		return Change[domain.Product]{}, err
	}
	price, _ := c.validator.ParseNumber(in.Price)
	added, err := c.products.Add(domain.Product{
		ID:       strings.TrimSpace(in.ID),
		Name:     strings.TrimSpace(in.Name),
		Category: strings.TrimSpace(in.Category),
		Price:    price,
	})
	if err != nil {
		return Change[domain.Product]{}, err
	}
	return Change[domain.Product]{Record: added, Notice: "Product added"}, nil
}

// Update edits product id. The id itself never changes; in.ID is ignored.
func (c *Catalog) Update(id string, in ProductInput) (Change[domain.Product], error) {
	if err := c.checkFields(in, false); err != nil {
		return Change[domain.Product]{}, err
	}
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	price, _ := c.validator.ParseNumber(in.Price)
	return c.Patch(id, domain.ProductPatch{Name: &name, Category: &category, Price: &price})
}

// Patch applies a partial update to product id.
func (c *Catalog) Patch(id string, patch domain.ProductPatch) (Change[domain.Product], error) {
	updated, err := c.products.Update(id, func(p domain.Product) (domain.Product, error) {
		return patch.Apply(p), nil
	})
	if err != nil {
		return Change[domain.Product]{}, err
	}
	return Change[domain.Product]{Record: updated, Notice: "Product updated"}, nil
}

// Remove deletes product id.
func (c *Catalog) Remove(id string) (Change[domain.Product], bool) {
	product, ok := c.products.Get(id)
	if !ok || !c.products.Remove(id) {
		return Change[domain.Product]{}, false
	}
	return Change[domain.Product]{Record: product, Notice: "Product deleted"}, true
}

// Get returns product id.
func (c *Catalog) Get(id string) (domain.Product, bool) {
	return c.products.Get(id)
}

// View renders products matching query (id, name or category) within category.
// An empty category or "all" shows every category.
func (c *Catalog) View(query, category string) CatalogView {
	filter := render.And(
		render.MatchAny(query,
			render.Text(func(p domain.Product) string { return p.ID }),
			render.Text(func(p domain.Product) string { return p.Name }),
			render.Text(func(p domain.Product) string { return p.Category }),
		),
		render.Equals(category, func(p domain.Product) string { return p.Category }),
	)
	return render.Project(c.products.All(), filter,
		func(p domain.Product) ProductRow {
			return ProductRow{Product: p, PriceText: render.Money(p.Price)}
		},
		catalogStats,
	)
}

func catalogStats(products []domain.Product) CatalogStats {
	categories := make([]string, 0, len(products))
	prices := make([]float64, 0, len(products))
	total := 0.0
	for _, p := range products {
		categories = append(categories, p.Category)
		prices = append(prices, p.Price)
		total += p.Price
	}
	distinct := render.Distinct(categories)

	return CatalogStats{
		Products:     len(products),
		Categories:   len(distinct),
		AveragePrice: render.WholeMoney(render.Average(prices)),
		TotalValue:   render.WholeMoney(total),
		Chips:        append([]string{"all"}, distinct...),
	}
}
