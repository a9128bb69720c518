package main

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// transparentName is the serialized form of an empty cell.
const transparentName = "transparent"

// Color is a cell color. The zero value is the empty (transparent) cell;
// anything with A > 0 is a painted color.
type Color struct {
	R, G, B, A uint8
}

// Transparent is the empty cell.
var Transparent = Color{}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// IsEmpty reports whether c is the empty sentinel.
func (c Color) IsEmpty() bool {
	return c.A == 0
}

// WithAlpha returns c with its alpha scaled by opacity, the way a
// translucent layer tints its cells in the composite.
func (c Color) WithAlpha(opacity float64) Color {
	if c.IsEmpty() {
		return Transparent
	}
	a := math.Round(float64(c.A) * clampUnit(opacity))
	if a <= 0 {
		return Transparent
	}
	c.A = uint8(a)
	return c
}

// NRGBA converts c to a non-premultiplied standard color.
func (c Color) NRGBA() color.NRGBA {
	if c.IsEmpty() {
		return color.NRGBA{}
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FromColor converts any standard color. Fully transparent input becomes
// the empty sentinel.
func FromColor(src color.Color) Color {
	n := color.NRGBAModel.Convert(src).(color.NRGBA)
	if n.A == 0 {
		return Transparent
	}
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// String returns "transparent", "#RRGGBB" or "#RRGGBBAA".
func (c Color) String() string {
	switch {
	case c.IsEmpty():
		return transparentName
	case c.A == 255:
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	default:
		return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
	}
}

// Hex returns the six digit hex form regardless of alpha, used where a
// terminal or clipboard wants a plain RGB value.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// MarshalText implements encoding.TextMarshaler so grids serialize as
// arrays of color strings.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor accepts "transparent", "#RGB", "#RRGGBB", "#RRGGBBAA" (the
// leading '#' is optional) and "rgba(r, g, b, a)" with a in [0,1].
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, transparentName) {
		return Transparent, nil
	}
	if strings.HasPrefix(strings.ToLower(s), "rgba(") {
		return parseRGBAFunc(s)
	}
	hex := strings.TrimPrefix(s, "#")

	var digits [8]uint8
	for i := 0; i < len(hex) && i < len(digits); i++ {
		d, ok := hexDigit(hex[i])
		if !ok {
			return Transparent, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
		digits[i] = d
	}

	switch len(hex) {
	case 3:
		return RGB(digits[0]*17, digits[1]*17, digits[2]*17), nil
	case 6:
		return RGB(digits[0]<<4|digits[1], digits[2]<<4|digits[3], digits[4]<<4|digits[5]), nil
	case 8:
		c := Color{
			R: digits[0]<<4 | digits[1],
			G: digits[2]<<4 | digits[3],
			B: digits[4]<<4 | digits[5],
			A: digits[6]<<4 | digits[7],
		}
		if c.A == 0 {
			return Transparent, nil
		}
		return c, nil
	default:
		return Transparent, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
}

// MustParseColor is ParseColor for literals known to be valid.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseRGBAFunc(s string) (Color, error) {
	inner := strings.TrimSuffix(strings.TrimSpace(s[len("rgba("):]), ")")
	parts := strings.Split(inner, ",")
	if len(parts) != 4 {
		return Transparent, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return Transparent, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
		ch[i] = uint8(v)
	}
	alpha, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
	if err != nil || alpha < 0 || alpha > 1 {
		return Transparent, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	return RGB(ch[0], ch[1], ch[2]).WithAlpha(alpha), nil
}

func hexDigit(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

// lerpColor interpolates every channel linearly and rounds to the nearest
// integer, so t=0 and t=1 reproduce the endpoints exactly.
func lerpColor(a, b Color, t float64) Color {
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + t*(float64(y)-float64(x))))
	}
	c := Color{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
	if c.A == 0 {
		return Transparent
	}
	return c
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
