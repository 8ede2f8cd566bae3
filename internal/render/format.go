package render

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Plural formats a count with the matching noun: "1 task", "3 tasks".
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// Money formats an amount with two decimals: "$29.99".
func Money(amount float64) string {
	return "$" + Fixed(amount, 2)
}

// WholeMoney formats an amount rounded to whole units: "$513".
func WholeMoney(amount float64) string {
	return "$" + Fixed(amount, 0)
}

// Fixed formats with exactly n decimals, rounding half away from zero.
func Fixed(v float64, n int) string {
	p := math.Pow(10, float64(n))
	r := math.Round(v*p) / p
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', n, 64)
}

// Seconds formats an elapsed duration as seconds with two decimals: "1.52s".
func Seconds(d time.Duration) string {
	return Fixed(d.Seconds(), 2) + "s"
}

// AvatarClass picks one of six avatar palettes by id.
func AvatarClass(id int64) string {
	return fmt.Sprintf("c%d", id%6)
}

// Average returns the mean, or 0 for no values.
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Distinct returns unique values in first-seen order.
func Distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
