package main

// DefaultPalette is the swatch set offered when the config names none.
var DefaultPalette = []string{
	"#000000", "#FFFFFF", "#FF0000", "#00FF00", "#0000FF", "#FFFF00",
	"#00FFFF", "#FF00FF", "#C0C0C0", "#808080", "#800000", "#808000",
	"#008000", "#800080", "#008080", "#000080", "#FF8080", "#FFFF80",
	"#80FF80", "#80FFFF", "#8080FF", "#FF80FF", "#A52A2A", "#FFA500",
}

const maxRecentColors = 8

// Palette holds the fixed swatches and the recently used colors, newest
// first.
type Palette struct {
	swatches []Color
	recent   []Color
}

// NewPalette parses hex swatches, skipping invalid entries. A nil or empty
// list selects DefaultPalette.
func NewPalette(hex []string) *Palette {
	if len(hex) == 0 {
		hex = DefaultPalette
	}
	p := &Palette{}
	for _, h := range hex {
		c, err := ParseColor(h)
		if err != nil || c.IsEmpty() {
			continue
		}
		p.swatches = append(p.swatches, c)
	}
	return p
}

// Swatches returns the fixed colors.
func (p *Palette) Swatches() []Color { return p.swatches }

// Recent returns recently used colors, newest first.
func (p *Palette) Recent() []Color { return p.recent }

// Swatch returns swatch i, wrapping around in both directions.
func (p *Palette) Swatch(i int) Color {
	n := len(p.swatches)
	if n == 0 {
		return Transparent
	}
	return p.swatches[((i%n)+n)%n]
}

// Index returns the swatch index of c, or -1.
func (p *Palette) Index(c Color) int {
	for i, s := range p.swatches {
		if s == c {
			return i
		}
	}
	return -1
}

// Use records c as the most recently used color. A color already in the
// list is not added again.
func (p *Palette) Use(c Color) {
	if c.IsEmpty() {
		return
	}
	for _, r := range p.recent {
		if r == c {
			return
		}
	}
	p.recent = append([]Color{c}, p.recent...)
	if len(p.recent) > maxRecentColors {
		p.recent = p.recent[:maxRecentColors]
	}
}
