package services

import (
	"fmt"
	"strconv"

	"labkit/internal/domain"
	"labkit/internal/errors"
	"labkit/internal/logging"
	"labkit/internal/render"
	"labkit/internal/store"
)

// DefaultTaxRate is applied to the cart subtotal.
const DefaultTaxRate = 0.05

var cartCatalog = []domain.CatalogItem{
	{ID: 1, Name: "Wireless Mouse", Price: 29.99, Category: "Peripherals"},
	{ID: 2, Name: "Mechanical Keyboard", Price: 89.99, Category: "Peripherals"},
	{ID: 3, Name: "USB-C Hub", Price: 45.00, Category: "Accessories"},
	{ID: 4, Name: "Monitor Stand", Price: 34.50, Category: "Furniture"},
	{ID: 5, Name: "Webcam HD", Price: 59.99, Category: "Electronics"},
	{ID: 6, Name: "Desk Lamp", Price: 24.99, Category: "Furniture"},
	{ID: 7, Name: "Laptop Sleeve", Price: 19.99, Category: "Accessories"},
	{ID: 8, Name: "AirPods Pro", Price: 249.00, Category: "Audio"},
}

// ShelfRow is one product offered for sale.
type ShelfRow struct {
	domain.CatalogItem
	PriceText string `json:"priceText"`
}

// ShelfStats lists the category chips of the whole catalog.
type ShelfStats struct {
	Chips []string `json:"chips"`
}

// ShelfView is the rendered product grid of the shop.
type ShelfView struct {
	render.View[ShelfRow, ShelfStats]
	CountText string `json:"countText"`
}

// CartRow is one rendered cart line.
type CartRow struct {
	domain.CartLine
	Meta      string `json:"meta"`
	TotalText string `json:"totalText"`
}

// CartTotals are computed over every line.
type CartTotals struct {
	Items    int     `json:"items"`
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// CartView is the rendered cart.
type CartView = render.View[CartRow, CartTotals]

// Receipt is the result of a checkout.
type Receipt struct {
	Lines  []domain.CartLine `json:"lines"`
	Totals CartTotals        `json:"totals"`
	Notice string            `json:"notice"`
}

// Cart is the shopping cart exercise over a fixed catalog.
type Cart struct {
	catalog *store.Store[int64, domain.CatalogItem]
	lines   *store.Store[int64, domain.CartLine]
	taxRate float64
}

// NewCart creates an empty cart; taxRate applies to the subtotal.
func NewCart(taxRate float64) *Cart {
	c := &Cart{
		catalog: store.New("product", func(p domain.CatalogItem) int64 { return p.ID }),
		lines: store.New("cart item",
			func(l domain.CartLine) int64 { return l.ID },
			store.WithValidator[int64](validateRecord[domain.CartLine]),
		),
		taxRate: taxRate,
	}
	for _, item := range cartCatalog {
		if _, err := c.catalog.Add(item); err != nil {
			panic(fmt.Sprintf("cart catalog %d: %v", item.ID, err))
		}
	}
	return c
}

// Shelf renders the catalog within category ("" or "all" for everything).
func (c *Cart) Shelf(category string) ShelfView {
	view := render.Project(c.catalog.All(),
		render.Equals(category, func(p domain.CatalogItem) string { return p.Category }),
		func(p domain.CatalogItem) ShelfRow { return ShelfRow{CatalogItem: p, PriceText: render.Money(p.Price)} },
		func(all []domain.CatalogItem) ShelfStats {
			categories := make([]string, len(all))
			for i, p := range all {
				categories[i] = p.Category
			}
			return ShelfStats{Chips: append([]string{"all"}, render.Distinct(categories)...)}
		},
	)
	return ShelfView{View: view, CountText: render.Plural(view.Shown, "item", "items")}
}

// AddToCart adds one of each product, merging into existing lines. Unknown
// ids fail the whole call before anything is added.
func (c *Cart) AddToCart(ids ...int64) (Change[[]domain.CartLine], error) {
	if len(ids) == 0 {
		return Change[[]domain.CartLine]{}, errors.NewInvalidInputError("ids", ids, "Choose a product to add.")
	}
	items := make([]domain.CatalogItem, 0, len(ids))
	for _, id := range ids {
		item, ok := c.catalog.Get(id)
		if !ok {
			return Change[[]domain.CartLine]{}, errors.NewNotFoundError("product", strconv.FormatInt(id, 10))
		}
		items = append(items, item)
	}

	var changed []domain.CartLine
	for _, item := range items {
		line, err := c.lines.Upsert(item.ID,
			func() domain.CartLine { return domain.CartLine{CatalogItem: item, Qty: 1} },
			func(l domain.CartLine) (domain.CartLine, error) {
				l.Qty++
				return l, nil
			})
		if err != nil {
			return Change[[]domain.CartLine]{}, err
		}
		changed = append(changed, line)
	}
	logging.Debugf("cart: added %d item(s)\n", len(items))
	return Change[[]domain.CartLine]{Record: changed, Notice: "Added to cart"}, nil
}

// ChangeQty adjusts the quantity of line id by delta. A line that drops to
// zero or below is removed and returned with Qty 0.
func (c *Cart) ChangeQty(id int64, delta int) (domain.CartLine, error) {
	return c.lines.UpdateOrRemove(id, func(l domain.CartLine) (domain.CartLine, bool, error) {
		if l.Qty+delta <= 0 {
			l.Qty = 0
			return l, false, nil
		}
		l.Qty += delta
		return l, true, nil
	})
}

// Remove drops line id.
func (c *Cart) Remove(id int64) (Change[domain.CartLine], bool) {
	line, err := c.lines.UpdateOrRemove(id, func(l domain.CartLine) (domain.CartLine, bool, error) {
		return l, false, nil
	})
	if err != nil {
		return Change[domain.CartLine]{}, false
	}
	return Change[domain.CartLine]{Record: line, Notice: "Removed from cart"}, true
}

// Clear empties the cart and returns the notice.
func (c *Cart) Clear() string {
	c.lines.Clear()
	return "Cart cleared"
}

// Totals sums every line and applies tax.
func (c *Cart) Totals() CartTotals {
	return c.totals(c.lines.All())
}

func (c *Cart) totals(lines []domain.CartLine) CartTotals {
	t := CartTotals{}
	for _, l := range lines {
		t.Items += l.Qty
		t.Subtotal += l.LineTotal()
	}
	t.Tax = t.Subtotal * c.taxRate
	t.Total = t.Subtotal + t.Tax
	return t
}

// View renders the cart lines and totals.
func (c *Cart) View() CartView {
	return render.Project(c.lines.All(), render.All[domain.CartLine](),
		func(l domain.CartLine) CartRow {
			return CartRow{
				CartLine:  l,
				Meta:      fmt.Sprintf("%s × %d", render.Money(l.Price), l.Qty),
				TotalText: render.Money(l.LineTotal()),
			}
		},
		c.totals,
	)
}

// Checkout places the order and empties the cart.
func (c *Cart) Checkout() (*Receipt, error) {
	lines := c.lines.All()
	if len(lines) == 0 {
		return nil, errors.NewInvalidInputError("cart", 0, "Your cart is empty.")
	}
	totals := c.totals(lines)
	c.lines.Clear()
	logging.Debugf("cart: checkout of %d item(s), total %s\n", totals.Items, render.Money(totals.Total))
	return &Receipt{
		Lines:  lines,
		Totals: totals,
		Notice: "Order placed! Total: " + render.Money(totals.Total),
	}, nil
}
