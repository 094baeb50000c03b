package ui

import (
	"math"
	"strings"
)

// Stars renders a 0-10 rating as a five-star bar. Full stars are
// floor(r/2); a half star appears when the fractional part of r/2 reaches
// one half. Ratings outside [0,10] are clamped.
func Stars(rating float64) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 10 {
		rating = 10
	}

	scaled := rating / 2
	full := int(math.Floor(scaled))
	half := scaled-float64(full) >= 0.5

	var b strings.Builder
	b.WriteString(strings.Repeat("★", full))
	if half {
		b.WriteString("½")
	}

	empty := 5 - full
	if half {
		empty--
	}
	if empty > 0 {
		b.WriteString(strings.Repeat("☆", empty))
	}

	return b.String()
}
