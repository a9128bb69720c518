package main

func (m *model) handleNavigation(key string, speed int) {
	m.handleCursorMove(key, speed)
	if m.penDown {
		m.editor.PointerMove(m.cursorX, m.cursorY)
	}
}

func (m *model) handleCursorMove(key string, speed int) {
	switch key {
	case "h", "left", "H", "shift+left":
		m.cursorX -= speed
	case "l", "right", "L", "shift+right":
		m.cursorX += speed
	case "k", "up", "K", "shift+up":
		m.cursorY -= speed
	case "j", "down", "J", "shift+down":
		m.cursorY += speed
	}
	m.ensureCursorInBounds()
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 4
	default:
		return 1
	}
}

// cellSize returns how many terminal columns and rows one canvas cell
// occupies at the current zoom.
func (m *model) cellSize() (int, int) {
	return 2 * m.zoom, m.zoom
}

// viewportSize returns the canvas area in terminal cells.
func (m *model) viewportSize() (int, int) {
	w := m.width - layerPanelWidth
	h := m.height - 2 // palette strip and status line
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// visibleCells returns how many canvas cells fit in the viewport.
func (m *model) visibleCells() (int, int) {
	w, h := m.viewportSize()
	cw, ch := m.cellSize()
	cols, rows := w/cw, h/ch
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// screenToCanvas maps a terminal position inside the viewport to a canvas
// cell. ok is false outside the viewport.
func (m *model) screenToCanvas(sx, sy int) (x, y int, ok bool) {
	w, h := m.viewportSize()
	if sx < 0 || sy < 0 || sx >= w || sy >= h {
		return 0, 0, false
	}
	cw, ch := m.cellSize()
	return m.panX + sx/cw, m.panY + sy/ch, true
}

func (m *model) ensureCursorInBounds() {
	n := m.editor.Document().Size()
	m.cursorX = clampInt(m.cursorX, 0, n-1)
	m.cursorY = clampInt(m.cursorY, 0, n-1)
	m.scrollToCursor()
}

// scrollToCursor pans just enough to keep the cursor visible.
func (m *model) scrollToCursor() {
	cols, rows := m.visibleCells()
	if m.cursorX < m.panX {
		m.panX = m.cursorX
	}
	if m.cursorX >= m.panX+cols {
		m.panX = m.cursorX - cols + 1
	}
	if m.cursorY < m.panY {
		m.panY = m.cursorY
	}
	if m.cursorY >= m.panY+rows {
		m.panY = m.cursorY - rows + 1
	}
	n := m.editor.Document().Size()
	m.panX = clampInt(m.panX, 0, max(0, n-cols))
	m.panY = clampInt(m.panY, 0, max(0, n-rows))
}

func (m *model) setZoom(z int) {
	m.zoom = clampInt(z, minZoom, maxZoom)
	m.scrollToCursor()
}
