package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color is a parsed CSS colour.
type Color struct {
	Input string
	Hex   string
	// Alpha is 1 unless the input carried an alpha channel.
	Alpha float64

	value colorful.Color
}

// LabelTone is the text tone readable on top of the colour: "dark" or "light".
func (c Color) LabelTone() string {
	if c.Alpha < 0.5 {
		return "dark"
	}
	l, _, _ := c.value.Lab()
	if l > 0.6 {
		return "dark"
	}
	return "light"
}

var (
	hexColorRegex = regexp.MustCompile(`^#([0-9a-f]{3,4}|[0-9a-f]{6}|[0-9a-f]{8})$`)
	rgbColorRegex = regexp.MustCompile(`^rgba?\(\s*([\d.]+%?)\s*[,\s]\s*([\d.]+%?)\s*[,\s]\s*([\d.]+%?)\s*(?:[,/]\s*([\d.]+%?)\s*)?\)$`)
	hslColorRegex = regexp.MustCompile(`^hsla?\(\s*(-?[\d.]+)(?:deg)?\s*[,\s]\s*([\d.]+)%\s*[,\s]\s*([\d.]+)%\s*(?:[,/]\s*([\d.]+%?)\s*)?\)$`)

	extraNamedColors = map[string]string{
		"rebeccapurple": "#663399",
	}
)

// ParseColor accepts hex, rgb(a), hsl(a), named colours and "transparent".
func ParseColor(input string) (Color, error) {
	raw := strings.TrimSpace(input)
	s := strings.ToLower(raw)
	if s == "" {
		return Color{}, fmt.Errorf("colour is empty")
	}

	if s == "transparent" {
		return Color{Input: raw, Hex: "#000000", Alpha: 0}, nil
	}

	if rgba, ok := colornames.Map[s]; ok {
		c, _ := colorful.MakeColor(rgba)
		return Color{Input: raw, Hex: c.Hex(), Alpha: 1, value: c}, nil
	}
	if hex, ok := extraNamedColors[s]; ok {
		c, _ := colorful.Hex(hex)
		return Color{Input: raw, Hex: c.Hex(), Alpha: 1, value: c}, nil
	}

	if m := hexColorRegex.FindStringSubmatch(s); m != nil {
		return parseHexColor(raw, m[1])
	}
	if m := rgbColorRegex.FindStringSubmatch(s); m != nil {
		return parseRGBColor(raw, m[1:])
	}
	if m := hslColorRegex.FindStringSubmatch(s); m != nil {
		return parseHSLColor(raw, m[1:])
	}

	return Color{}, fmt.Errorf("%q is not a valid CSS colour", raw)
}

// IsValidColor reports whether ParseColor accepts the input.
func IsValidColor(input string) bool {
	_, err := ParseColor(input)
	return err == nil
}

func parseHexColor(raw, digits string) (Color, error) {
	alpha := 1.0
	switch len(digits) {
	case 4:
		a, _ := strconv.ParseUint(strings.Repeat(digits[3:], 2), 16, 8)
		alpha = float64(a) / 255
		digits = digits[:3]
	case 8:
		a, _ := strconv.ParseUint(digits[6:], 16, 8)
		alpha = float64(a) / 255
		digits = digits[:6]
	}
	c, err := colorful.Hex("#" + digits)
	if err != nil {
		return Color{}, err
	}
	return Color{Input: raw, Hex: c.Hex(), Alpha: alpha, value: c}, nil
}

func parseRGBColor(raw string, parts []string) (Color, error) {
	channels := make([]float64, 3)
	for i := 0; i < 3; i++ {
		v, err := parseChannel(parts[i], 255)
		if err != nil {
			return Color{}, err
		}
		channels[i] = v
	}
	alpha, err := parseAlpha(parts[3])
	if err != nil {
		return Color{}, err
	}
	c := colorful.Color{R: channels[0], G: channels[1], B: channels[2]}.Clamped()
	return Color{Input: raw, Hex: c.Hex(), Alpha: alpha, value: c}, nil
}

func parseHSLColor(raw string, parts []string) (Color, error) {
	h, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Color{}, err
	}
	s, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Color{}, err
	}
	l, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return Color{}, err
	}
	alpha, err := parseAlpha(parts[3])
	if err != nil {
		return Color{}, err
	}
	h = mod360(h)
	c := colorful.Hsl(h, clampUnit(s/100), clampUnit(l/100)).Clamped()
	return Color{Input: raw, Hex: c.Hex(), Alpha: alpha, value: c}, nil
}

// parseChannel returns a channel in [0,1]; percentages are relative to 100.
func parseChannel(s string, max float64) (float64, error) {
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, err
		}
		return clampUnit(v / 100), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return clampUnit(v / max), nil
}

func parseAlpha(s string) (float64, error) {
	if s == "" {
		return 1, nil
	}
	return parseChannel(s, 1)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// mod360 wraps a hue of any magnitude into [0,360).
func mod360(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}
