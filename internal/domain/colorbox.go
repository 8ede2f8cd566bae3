package domain

// ColorBox is a generated swatch. Input is kept as typed; Hex is normalised.
type ColorBox struct {
	ID        int64  `json:"id"`
	Color     string `json:"color" validate:"notblank"`
	Hex       string `json:"hex"`
	LabelTone string `json:"labelTone" validate:"oneof=light dark"`
}
