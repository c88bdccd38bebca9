package document

import (
	"fmt"
	"math"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBA is an 8-bit-per-channel color with straight (non-premultiplied) alpha.
// Alpha 255 is fully opaque.
type RGBA struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Hex returns the color as "#RRGGBB" for terminal styling. Alpha is dropped;
// transparency only matters while compositing.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Over composites c over dst using the standard alpha-over operator.
func (c RGBA) Over(dst RGBA) RGBA {
	sa := float64(c.A) / 255
	da := float64(dst.A) / 255
	oa := sa + da*(1-sa)
	if oa == 0 {
		return RGBA{}
	}
	blend := func(s, d uint8) uint8 {
		sc := float64(s) / 255
		dc := float64(d) / 255
		return uint8(math.Round((sc*sa + dc*da*(1-sa)) / oa * 255))
	}
	return RGBA{
		R: blend(c.R, dst.R),
		G: blend(c.G, dst.G),
		B: blend(c.B, dst.B),
		A: uint8(math.Round(oa * 255)),
	}
}

// Luminance returns the perceived brightness using sRGB coefficients.
func (c RGBA) Luminance() float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// ReadableTextColor returns a grayscale color that stays legible against c
// used as a background.
func (c RGBA) ReadableTextColor() RGBA {
	if c.Luminance() > 150 {
		return RGBA{R: 30, G: 30, B: 30, A: 255}
	}
	return RGBA{R: 230, G: 230, B: 230, A: 255}
}

// ParseHex parses "#RRGGBB" or "#RRGGBBAA" into an RGBA. Missing alpha is
// treated as opaque.
func ParseHex(s string) (RGBA, error) {
	var c RGBA
	c.A = 255
	switch len(s) {
	case 7:
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
			return RGBA{}, fmt.Errorf("document: bad hex color %q: %w", s, err)
		}
	case 9:
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A); err != nil {
			return RGBA{}, fmt.Errorf("document: bad hex color %q: %w", s, err)
		}
	default:
		return RGBA{}, fmt.Errorf("document: bad hex color %q", s)
	}
	return c, nil
}

// RandomTagColor picks a color in HSL space so generated tags stay readable
// and perceptually spread out.
func RandomTagColor() RGBA {
	h := rand.Float64() * 360
	s := 0.5 + rand.Float64()*0.3
	l := 0.5 + rand.Float64()*0.2
	r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
	return RGBA{R: r, G: g, B: b, A: 255}
}
