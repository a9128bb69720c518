package main

import "fmt"

// DefaultCanvasSize is the side length of a new document.
const DefaultCanvasSize = 64

// Grid is a square, row-major cell grid: g[y][x].
type Grid [][]Color

// NewGrid returns a size×size grid of empty cells.
func NewGrid(size int) Grid {
	cells := make([]Color, size*size)
	g := make(Grid, size)
	for y := range g {
		g[y] = cells[y*size : (y+1)*size : (y+1)*size]
	}
	return g
}

// Size returns the side length of g.
func (g Grid) Size() int {
	return len(g)
}

// InBounds reports whether (x, y) addresses a cell of g.
func (g Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && y < len(g) && x < len(g[y])
}

// At returns the cell at (x, y), or Transparent outside the grid.
func (g Grid) At(x, y int) Color {
	if !g.InBounds(x, y) {
		return Transparent
	}
	return g[y][x]
}

// Set writes the cell at (x, y); writes outside the grid are dropped.
func (g Grid) Set(x, y int, c Color) {
	if g.InBounds(x, y) {
		g[y][x] = c
	}
}

// Fill sets every cell to c.
func (g Grid) Fill(c Color) {
	for y := range g {
		for x := range g[y] {
			g[y][x] = c
		}
	}
}

// Clone returns a deep copy sharing no storage with g.
func (g Grid) Clone() Grid {
	out := NewGrid(len(g))
	for y := range g {
		copy(out[y], g[y])
	}
	return out
}

// Equal reports cell-wise equality.
func (g Grid) Equal(o Grid) bool {
	if len(g) != len(o) {
		return false
	}
	for y := range g {
		if len(g[y]) != len(o[y]) {
			return false
		}
		for x := range g[y] {
			if g[y][x] != o[y][x] {
				return false
			}
		}
	}
	return true
}

// Layer is one independently toggleable grid in the document stack.
type Layer struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Visible bool    `json:"visible"`
	Opacity float64 `json:"opacity"`
	Data    Grid    `json:"data"`
}

// NewLayer returns a visible, fully opaque, empty layer.
func NewLayer(id, name string, size int) *Layer {
	return &Layer{
		ID:      id,
		Name:    name,
		Visible: true,
		Opacity: 1,
		Data:    NewGrid(size),
	}
}

// Clone returns a deep copy of l.
func (l *Layer) Clone() *Layer {
	c := *l
	c.Data = l.Data.Clone()
	return &c
}

// Equal compares every field, including cell data.
func (l *Layer) Equal(o *Layer) bool {
	return l.ID == o.ID &&
		l.Name == o.Name &&
		l.Visible == o.Visible &&
		l.Opacity == o.Opacity &&
		l.Data.Equal(o.Data)
}

// Document is the ordered layer stack (bottom first) plus the index of the
// layer receiving edits. It always holds at least one layer.
type Document struct {
	size        int
	layers      []*Layer
	active      int
	layerSerial int

	composite Grid
	dirty     bool
}

// NewDocument returns a document with one empty layer.
func NewDocument(size int) *Document {
	if size < 1 {
		size = DefaultCanvasSize
	}
	d := &Document{size: size, dirty: true}
	d.layers = []*Layer{d.newLayer()}
	return d
}

func (d *Document) newLayer() *Layer {
	d.layerSerial++
	return NewLayer(fmt.Sprintf("layer-%d", d.layerSerial), fmt.Sprintf("Layer %d", d.layerSerial), d.size)
}

// Size returns the canvas side length N.
func (d *Document) Size() int { return d.size }

// Len returns the number of layers.
func (d *Document) Len() int { return len(d.layers) }

// Layer returns layer i or nil when i is out of range. The returned layer
// is owned by the document; callers mutating it must call Touch.
func (d *Document) Layer(i int) *Layer {
	if i < 0 || i >= len(d.layers) {
		return nil
	}
	return d.layers[i]
}

// Layers returns the layer stack, bottom first.
func (d *Document) Layers() []*Layer { return d.layers }

// ActiveIndex returns the index of the layer receiving edits.
func (d *Document) ActiveIndex() int { return d.active }

// Active returns the layer receiving edits.
func (d *Document) Active() *Layer { return d.layers[d.active] }

// Touch marks the composite stale after an in-place edit.
func (d *Document) Touch() { d.dirty = true }

// Composite returns the flattened image of the visible layers. The result
// is cached until the next mutation and must not be modified.
func (d *Document) Composite() Grid {
	if d.dirty || d.composite == nil {
		d.composite = Composite(d.layers, d.size)
		d.dirty = false
	}
	return d.composite
}

// Clone returns an independent deep copy of the document.
func (d *Document) Clone() *Document {
	c := &Document{
		size:        d.size,
		layers:      cloneLayers(d.layers),
		active:      d.active,
		layerSerial: d.layerSerial,
		dirty:       true,
	}
	return c
}

// Equal compares layer stacks and the active index.
func (d *Document) Equal(o *Document) bool {
	if d.size != o.size || d.active != o.active || len(d.layers) != len(o.layers) {
		return false
	}
	for i := range d.layers {
		if !d.layers[i].Equal(o.layers[i]) {
			return false
		}
	}
	return true
}

// restore replaces the document state with a deep copy of src.
func (d *Document) restore(src *Document) {
	d.size = src.size
	d.layers = cloneLayers(src.layers)
	d.active = src.active
	if src.layerSerial > d.layerSerial {
		d.layerSerial = src.layerSerial
	}
	d.dirty = true
}

func cloneLayers(layers []*Layer) []*Layer {
	out := make([]*Layer, len(layers))
	for i, l := range layers {
		out[i] = l.Clone()
	}
	return out
}

// SetActive selects the layer receiving edits.
func (d *Document) SetActive(i int) bool {
	if i < 0 || i >= len(d.layers) {
		return false
	}
	d.active = i
	return true
}

// AddLayer appends an empty layer on top and makes it active.
func (d *Document) AddLayer() *Layer {
	l := d.newLayer()
	d.layers = append(d.layers, l)
	d.active = len(d.layers) - 1
	d.dirty = true
	return l
}

// DuplicateLayer inserts a copy of layer i directly above it and makes the
// copy active.
func (d *Document) DuplicateLayer(i int) bool {
	src := d.Layer(i)
	if src == nil {
		return false
	}
	dup := src.Clone()
	d.layerSerial++
	dup.ID = fmt.Sprintf("layer-%d", d.layerSerial)
	dup.Name = src.Name + " copy"

	d.layers = append(d.layers, nil)
	copy(d.layers[i+2:], d.layers[i+1:])
	d.layers[i+1] = dup
	d.active = i + 1
	d.dirty = true
	return true
}

// CanRemove reports whether RemoveLayer(i) would change anything.
func (d *Document) CanRemove(i int) bool {
	return len(d.layers) > 1 && i >= 0 && i < len(d.layers)
}

// RemoveLayer deletes layer i unless it is the last one. If the active
// layer is removed the previous layer becomes active.
func (d *Document) RemoveLayer(i int) bool {
	if !d.CanRemove(i) {
		return false
	}
	d.layers = append(d.layers[:i], d.layers[i+1:]...)
	switch {
	case d.active >= len(d.layers):
		d.active = len(d.layers) - 1
	case d.active == i:
		d.active = max(0, i-1)
	case d.active > i:
		d.active--
	}
	d.dirty = true
	return true
}

// ToggleVisibility flips the visible flag of layer i.
func (d *Document) ToggleVisibility(i int) bool {
	l := d.Layer(i)
	if l == nil {
		return false
	}
	l.Visible = !l.Visible
	d.dirty = true
	return true
}

// SetOpacity sets layer i's opacity, clamped to [0,1].
func (d *Document) SetOpacity(i int, v float64) bool {
	l := d.Layer(i)
	if l == nil {
		return false
	}
	l.Opacity = clampUnit(v)
	d.dirty = true
	return true
}

// Rename sets layer i's display name.
func (d *Document) Rename(i int, name string) bool {
	l := d.Layer(i)
	if l == nil || name == "" {
		return false
	}
	l.Name = name
	return true
}

// CanMove reports whether MoveLayer(from, to) would change anything.
func (d *Document) CanMove(from, to int) bool {
	n := len(d.layers)
	return from != to && from >= 0 && to >= 0 && from < n && to < n
}

// MoveLayer takes the layer at from out of the stack and reinserts it at
// to. The active index follows the moved layer, and otherwise keeps
// pointing at the same layer it did before.
func (d *Document) MoveLayer(from, to int) bool {
	if !d.CanMove(from, to) {
		return false
	}
	moved := d.layers[from]
	d.layers = append(d.layers[:from], d.layers[from+1:]...)
	d.layers = append(d.layers, nil)
	copy(d.layers[to+1:], d.layers[to:])
	d.layers[to] = moved

	switch {
	case d.active == from:
		d.active = to
	case from < d.active && to >= d.active:
		d.active--
	case from > d.active && to <= d.active:
		d.active++
	}
	d.dirty = true
	return true
}
