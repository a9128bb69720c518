package main

import (
	"go.uber.org/zap"
)

// Tool is one of the editor's drawing tools.
type Tool int

const (
	ToolPencil Tool = iota
	ToolEraser
	ToolBucket
	ToolEyedropper
	ToolGradient
)

const (
	minBrushSize = 1
	maxBrushSize = 10
)

var toolNames = []string{"PENCIL", "ERASER", "BUCKET", "EYEDROPPER", "GRADIENT"}

func (t Tool) String() string {
	if int(t) >= 0 && int(t) < len(toolNames) {
		return toolNames[t]
	}
	return "UNKNOWN"
}

// continuous reports whether the tool repeats on every pointer move while
// the pointer is down.
func (t Tool) continuous() bool {
	return t == ToolPencil || t == ToolEraser
}

// Editor owns the document, its history and the tool state, and turns
// pointer events into document edits. All methods run synchronously and
// silently ignore invalid input.
type Editor struct {
	doc     *Document
	history *History
	palette *Palette
	log     *zap.Logger

	tool      Tool
	color     Color
	brushSize int
	drawing   bool
	gradient  *gradientAnchor
	modified  bool
}

// EditorOption configures a new Editor.
type EditorOption func(*Editor)

// WithLogger sets the logger used for edit events.
func WithLogger(l *zap.Logger) EditorOption {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithHistoryLimit bounds the number of undo snapshots (0 = unbounded).
func WithHistoryLimit(n int) EditorOption {
	return func(e *Editor) { e.history = NewHistory(n) }
}

// WithPalette replaces the default swatches.
func WithPalette(p *Palette) EditorOption {
	return func(e *Editor) {
		if p != nil {
			e.palette = p
		}
	}
}

// WithBrushSize sets the initial brush size.
func WithBrushSize(n int) EditorOption {
	return func(e *Editor) { e.SetBrushSize(n) }
}

// NewEditor returns an editor over a fresh size×size document with the
// pencil selected and black as the current color.
func NewEditor(size int, opts ...EditorOption) *Editor {
	e := &Editor{
		doc:       NewDocument(size),
		history:   NewHistory(0),
		palette:   NewPalette(nil),
		log:       zap.NewNop(),
		tool:      ToolPencil,
		color:     RGB(0, 0, 0),
		brushSize: minBrushSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Editor) Document() *Document { return e.doc }
func (e *Editor) History() *History   { return e.history }
func (e *Editor) Palette() *Palette   { return e.palette }
func (e *Editor) Tool() Tool          { return e.tool }
func (e *Editor) Color() Color        { return e.color }
func (e *Editor) BrushSize() int      { return e.brushSize }
func (e *Editor) Drawing() bool       { return e.drawing }

// Modified reports whether the document changed since the last save,
// load or new document.
func (e *Editor) Modified() bool { return e.modified }

// MarkSaved clears the modified flag.
func (e *Editor) MarkSaved() { e.modified = false }

// Composite returns the current flattened image.
func (e *Editor) Composite() Grid { return e.doc.Composite() }

// GradientStart returns the pending gradient start point, if any.
func (e *Editor) GradientStart() (x, y int, ok bool) {
	if e.gradient == nil {
		return 0, 0, false
	}
	return e.gradient.X, e.gradient.Y, true
}

// SetTool selects a tool. Switching tools drops a pending gradient start.
func (e *Editor) SetTool(t Tool) {
	if t < ToolPencil || t > ToolGradient {
		return
	}
	e.tool = t
	e.gradient = nil
	e.drawing = false
}

// CancelGradient forgets a pending gradient start point.
func (e *Editor) CancelGradient() {
	e.gradient = nil
}

// SetColor selects the drawing color and records it as recently used.
func (e *Editor) SetColor(c Color) {
	e.color = c
	e.palette.Use(c)
}

// SetBrushSize sets the brush side length, clamped to 1..10.
func (e *Editor) SetBrushSize(n int) {
	if n < minBrushSize {
		n = minBrushSize
	}
	if n > maxBrushSize {
		n = maxBrushSize
	}
	e.brushSize = n
}

// snapshot records the pre-mutation state.
func (e *Editor) snapshot(reason string) {
	if e.history.Snapshot(e.doc) {
		e.log.Debug("snapshot",
			zap.String("reason", reason),
			zap.Int("cursor", e.history.Cursor()),
			zap.Int("entries", e.history.Len()))
	}
}

func (e *Editor) changed() {
	e.doc.Touch()
	e.modified = true
}

// PointerDown starts a tool application at cell (x, y). Coordinates
// outside the canvas are ignored.
func (e *Editor) PointerDown(x, y int) {
	if !e.doc.Active().Data.InBounds(x, y) {
		return
	}

	if e.tool == ToolGradient {
		e.gradientClick(x, y)
		return
	}

	e.drawing = true
	e.snapshot(e.tool.String())

	switch e.tool {
	case ToolBucket:
		e.bucket(x, y)
	case ToolEyedropper:
		e.eyedropper(x, y)
	default:
		e.stamp(x, y)
	}
}

// PointerMove continues a stroke for tools that support it.
func (e *Editor) PointerMove(x, y int) {
	if !e.drawing || !e.tool.continuous() {
		return
	}
	e.stamp(x, y)
}

// PointerUp ends the current stroke.
func (e *Editor) PointerUp() {
	e.drawing = false
}

// Click is a pointer down immediately followed by a pointer up.
func (e *Editor) Click(x, y int) {
	e.PointerDown(x, y)
	e.PointerUp()
}

// brushOffsets returns the inclusive offset range of a square brush of
// side n centered on a cell: -floor(n/2) .. ceil(n/2)-1.
func brushOffsets(n int) (lo, hi int) {
	return -(n / 2), (n+1)/2 - 1
}

// stamp applies the pencil or eraser square at (x, y) on the active layer.
func (e *Editor) stamp(x, y int) {
	g := e.doc.Active().Data
	if !g.InBounds(x, y) {
		return
	}
	c := e.color
	if e.tool == ToolEraser {
		c = Transparent
	}
	lo, hi := brushOffsets(e.brushSize)
	for by := lo; by <= hi; by++ {
		for bx := lo; bx <= hi; bx++ {
			g.Set(x+bx, y+by, c)
		}
	}
	e.changed()
}

func (e *Editor) bucket(x, y int) {
	n := floodFill(e.doc.Active().Data, x, y, e.color)
	if n == 0 {
		return
	}
	e.log.Debug("flood fill", zap.Int("x", x), zap.Int("y", y), zap.Int("cells", n))
	e.changed()
}

// eyedropper picks the active layer's color at (x, y) and hands control
// back to the pencil.
func (e *Editor) eyedropper(x, y int) {
	if c := e.doc.Active().Data.At(x, y); !c.IsEmpty() {
		e.SetColor(c)
	}
	e.tool = ToolPencil
	e.drawing = false
}

// gradientClick records the start point on the first click and fills the
// active layer on the second.
func (e *Editor) gradientClick(x, y int) {
	if e.gradient == nil {
		e.gradient = &gradientAnchor{X: x, Y: y, Color: e.color}
		return
	}
	start := *e.gradient
	e.gradient = nil

	e.snapshot(ToolGradient.String())
	gradientFill(e.doc.Active().Data, start.X, start.Y, x, y, start.Color, e.color)
	e.log.Debug("gradient fill",
		zap.Int("x0", start.X), zap.Int("y0", start.Y),
		zap.Int("x1", x), zap.Int("y1", y),
		zap.Stringer("from", start.Color), zap.Stringer("to", e.color))
	e.changed()
}

// Undo steps back one snapshot.
func (e *Editor) Undo() bool {
	e.drawing = false
	if !e.history.Undo(e.doc) {
		return false
	}
	e.modified = true
	e.log.Debug("undo", zap.Int("cursor", e.history.Cursor()))
	return true
}

// Redo steps forward one snapshot.
func (e *Editor) Redo() bool {
	e.drawing = false
	if !e.history.Redo(e.doc) {
		return false
	}
	e.modified = true
	e.log.Debug("redo", zap.Int("cursor", e.history.Cursor()))
	return true
}

// AddLayer snapshots and appends a new active layer.
func (e *Editor) AddLayer() {
	e.snapshot("add layer")
	l := e.doc.AddLayer()
	e.modified = true
	e.log.Debug("add layer", zap.String("id", l.ID))
}

// RemoveLayer deletes layer i. Removing the only layer does nothing and
// takes no snapshot.
func (e *Editor) RemoveLayer(i int) {
	if !e.doc.CanRemove(i) {
		return
	}
	e.snapshot("remove layer")
	e.doc.RemoveLayer(i)
	e.modified = true
	e.log.Debug("remove layer", zap.Int("index", i), zap.Int("active", e.doc.ActiveIndex()))
}

// DuplicateLayer copies layer i above itself.
func (e *Editor) DuplicateLayer(i int) {
	if e.doc.Layer(i) == nil {
		return
	}
	e.snapshot("duplicate layer")
	e.doc.DuplicateLayer(i)
	e.modified = true
}

// ToggleVisibility flips layer i's visibility.
func (e *Editor) ToggleVisibility(i int) {
	if e.doc.Layer(i) == nil {
		return
	}
	e.snapshot("toggle visibility")
	e.doc.ToggleVisibility(i)
	e.modified = true
}

// SetOpacity adjusts layer i's opacity live, without a snapshot.
func (e *Editor) SetOpacity(i int, v float64) {
	if e.doc.SetOpacity(i, v) {
		e.modified = true
	}
}

// RenameLayer changes layer i's name.
func (e *Editor) RenameLayer(i int, name string) {
	l := e.doc.Layer(i)
	if l == nil || name == "" || l.Name == name {
		return
	}
	e.snapshot("rename layer")
	e.doc.Rename(i, name)
	e.modified = true
}

// MoveLayer reorders the stack.
func (e *Editor) MoveLayer(from, to int) {
	if !e.doc.CanMove(from, to) {
		return
	}
	e.snapshot("move layer")
	e.doc.MoveLayer(from, to)
	e.modified = true
	e.log.Debug("move layer", zap.Int("from", from), zap.Int("to", to))
}

// SelectLayer makes layer i the target of edits.
func (e *Editor) SelectLayer(i int) {
	e.doc.SetActive(i)
}

// ImportLayer snapshots and appends g (already canvas-sized) as a new layer
// named name.
func (e *Editor) ImportLayer(name string, g Grid) {
	if g.Size() != e.doc.Size() {
		return
	}
	e.snapshot("import layer")
	l := e.doc.AddLayer()
	l.Data = g.Clone()
	if name != "" {
		l.Name = name
	}
	e.changed()
}

// Reset replaces the document with a fresh one of the same size and drops
// history.
func (e *Editor) Reset() {
	e.ReplaceDocument(NewDocument(e.doc.Size()))
}

// ReplaceDocument installs doc (for example one loaded from disk) and
// drops history.
func (e *Editor) ReplaceDocument(doc *Document) {
	e.doc = doc
	e.doc.Touch()
	e.history.Reset()
	e.gradient = nil
	e.drawing = false
	e.modified = false
}
