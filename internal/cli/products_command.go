package cli

import (
	"context"
	"fmt"

	"labkit/internal/errors"
	"labkit/internal/services"
)

const productsUsage = "products [list [query] [category] | add <id> <name> <category> <price> | edit <id> <name> <category> <price> | rm <id>]"

// ProductsCommand drives the product catalog
type ProductsCommand struct {
	app     *App
	catalog *services.Catalog
}

// NewProductsCommand creates a new products command handler
func NewProductsCommand(app *App) *ProductsCommand {
	return &ProductsCommand{app: app, catalog: app.session.Catalog}
}

// Execute runs the products command
func (c *ProductsCommand) Execute(ctx context.Context, args []string) error {
	p := c.app.presenter
	action, rest := subcommand(args, "list")
	var query, category string

	switch action {
	case "list", "ls", "search":
		if len(rest) > 0 {
			query = rest[0]
		}
		if len(rest) > 1 {
			category = rest[1]
		}
	case "add":
		if err := needArgs(rest, 4, productsUsage); err != nil {
			return err
		}
		change, err := c.catalog.Add(services.ProductInput{ID: rest[0], Name: rest[1], Category: rest[2], Price: rest[3]})
		if err != nil {
			return err
		}
		p.OK(change.Notice + ": " + change.Record.ID)
	case "edit":
		if err := needArgs(rest, 4, productsUsage); err != nil {
			return err
		}
		change, err := c.catalog.Update(rest[0], services.ProductInput{Name: rest[1], Category: rest[2], Price: rest[3]})
		if err != nil {
			return err
		}
		p.OK(change.Notice + ": " + change.Record.ID)
	case "rm":
		if err := needArgs(rest, 1, productsUsage); err != nil {
			return err
		}
		change, ok := c.catalog.Remove(rest[0])
		if !ok {
			return errors.NewNotFoundError("product", rest[0])
		}
		p.OK(change.Notice + ": " + change.Record.ID)
	default:
		return unknownAction(action, productsUsage)
	}

	view := c.catalog.View(query, category)
	s := view.Stats
	p.Title(fmt.Sprintf("Products · %d items · %d categories · avg %s · value %s", s.Products, s.Categories, s.AveragePrice, s.TotalValue))
	if view.Empty {
		p.Muted("No products match.")
		return nil
	}
	for _, row := range view.Rows {
		p.Line(fmt.Sprintf("  %-5s %-22s %-12s %10s", row.ID, row.Name, row.Category, row.PriceText))
	}
	return nil
}
