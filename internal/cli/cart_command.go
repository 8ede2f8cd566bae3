package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"labkit/internal/errors"
	"labkit/internal/render"
	"labkit/internal/services"
)

const cartUsage = "cart [show | shelf [category] | add <id>... | qty <id> <delta> | rm <id> | clear | checkout]"

// CartCommand drives the shopping cart
type CartCommand struct {
	app  *App
	cart *services.Cart
}

// NewCartCommand creates a new cart command handler
func NewCartCommand(app *App) *CartCommand {
	return &CartCommand{app: app, cart: app.session.Cart}
}

// Execute runs the cart command
func (c *CartCommand) Execute(ctx context.Context, args []string) error {
	p := c.app.presenter
	action, rest := subcommand(args, "show")

	switch action {
	case "show":
	case "shelf":
		category := ""
		if len(rest) > 0 {
			category = rest[0]
		}
		c.shelf(category)
		return nil
	case "add":
		if err := needArgs(rest, 1, cartUsage); err != nil {
			return err
		}
		ids := make([]int64, 0, len(rest))
		for _, raw := range rest {
			id, err := argID(raw)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		change, err := c.cart.AddToCart(ids...)
		if err != nil {
			return err
		}
		p.OK(change.Notice)
	case "qty":
		if err := needArgs(rest, 2, cartUsage); err != nil {
			return err
		}
		id, err := argID(rest[0])
		if err != nil {
			return err
		}
		delta, err := strconv.Atoi(rest[1])
		if err != nil {
			return errors.NewInvalidInputError("delta", rest[1], "quantity change must be a whole number")
		}
		line, err := c.cart.ChangeQty(id, delta)
		if err != nil {
			return err
		}
		if line.Qty == 0 {
			p.OK(line.Name + " removed from cart")
		} else {
			p.OK(fmt.Sprintf("%s × %d", line.Name, line.Qty))
		}
	case "rm":
		if err := needArgs(rest, 1, cartUsage); err != nil {
			return err
		}
		id, err := argID(rest[0])
		if err != nil {
			return err
		}
		change, ok := c.cart.Remove(id)
		if !ok {
			return errors.NewNotFoundError("cart item", rest[0])
		}
		p.OK(change.Notice + ": " + change.Record.Name)
	case "clear":
		p.OK(c.cart.Clear())
	case "checkout":
		receipt, err := c.cart.Checkout()
		if err != nil {
			return err
		}
		p.OK(receipt.Notice)
		return nil
	default:
		return unknownAction(action, cartUsage)
	}

	c.show()
	return nil
}

func (c *CartCommand) shelf(category string) {
	p := c.app.presenter
	view := c.cart.Shelf(category)
	p.Title("Shop · " + view.CountText)
	p.Muted("categories: " + strings.Join(view.Stats.Chips, ", "))
	for _, row := range view.Rows {
		p.Line(fmt.Sprintf("%3d %-22s %-12s %9s", row.ID, row.Name, row.Category, row.PriceText))
	}
}

func (c *CartCommand) show() {
	p := c.app.presenter
	view := c.cart.View()
	if view.Empty {
		p.Muted("Your cart is empty.")
		return
	}
	lines := make([]string, 0, len(view.Rows)+4)
	for _, row := range view.Rows {
		lines = append(lines, fmt.Sprintf("%3d %-22s %-14s %9s", row.ID, row.Name, row.Meta, row.TotalText))
	}
	t := view.Stats
	lines = append(lines,
		"",
		fmt.Sprintf("Items     %d", t.Items),
		"Subtotal  "+render.Money(t.Subtotal),
		"Tax       "+render.Money(t.Tax),
		"Total     "+render.Money(t.Total),
	)
	p.Panel(lines)
}
