package services

import (
	"strings"

	"labkit/internal/domain"
	"labkit/internal/render"
	"labkit/internal/store"
	"labkit/internal/validation"
)

// ColorBoxStats summarises the generated boxes.
type ColorBoxStats struct {
	Count     int    `json:"count"`
	CountText string `json:"countText"`
}

// ColorBoxView is the rendered box grid.
type ColorBoxView = render.View[domain.ColorBox, ColorBoxStats]

// ColorBoxes is the colour box generator. The same colour may be added more than once.
type ColorBoxes struct {
	boxes *store.Store[int64, domain.ColorBox]
}

// NewColorBoxes creates an empty grid.
func NewColorBoxes() *ColorBoxes {
	return &ColorBoxes{
		boxes: store.New("color box",
			func(b domain.ColorBox) int64 { return b.ID },
			store.WithSequence[int64](func(b domain.ColorBox, id int64) domain.ColorBox {
				b.ID = id
				return b
			}),
			store.WithValidator[int64](validateRecord[domain.ColorBox]),
		),
	}
}

// Add validates a CSS colour and appends a box for it.
func (c *ColorBoxes) Add(input string) (domain.ColorBox, error) {
	color, err := validation.ValidateColorInput(input)
	if err != nil {
		return domain.ColorBox{}, validationFailure(err)
	}
	return c.boxes.Add(domain.ColorBox{
		Color:     strings.TrimSpace(input),
		Hex:       color.Hex,
		LabelTone: color.LabelTone(),
	})
}

// Remove deletes box id.
func (c *ColorBoxes) Remove(id int64) bool {
	return c.boxes.Remove(id)
}

// Clear removes every box.
func (c *ColorBoxes) Clear() {
	c.boxes.Clear()
}

// View renders the grid.
func (c *ColorBoxes) View() ColorBoxView {
	return render.Project(c.boxes.All(), render.All[domain.ColorBox](),
		func(b domain.ColorBox) domain.ColorBox { return b },
		func(boxes []domain.ColorBox) ColorBoxStats {
			return ColorBoxStats{
				Count:     len(boxes),
				CountText: render.Plural(len(boxes), "box", "boxes"),
			}
		},
	)
}
