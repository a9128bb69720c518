package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	panelStyle   = lipgloss.NewStyle().Width(layerPanelWidth)
	headingStyle = lipgloss.NewStyle().Bold(true)
	activeStyle  = lipgloss.NewStyle().Reverse(true)
	hiddenStyle  = lipgloss.NewStyle().Faint(true)
	gridDotStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
	checkerDark  = lipgloss.Color("#262626")
	checkerLight = lipgloss.Color("#303030")
)

// termSurface collects a composite for the terminal view. Cells that are
// never painted stay transparent and show the checkerboard.
type termSurface struct {
	cells Grid
	grid  bool
}

func newTermSurface(size int) *termSurface {
	return &termSurface{cells: NewGrid(size)}
}

func (s *termSurface) PaintCell(x, y int, c Color) {
	s.cells.Set(x, y, c)
}

func (s *termSurface) PaintGrid(int) {
	s.grid = true
}

// cellStyles caches one style per color while a frame is rendered.
type cellStyles map[Color]lipgloss.Style

func (cs cellStyles) get(c Color) lipgloss.Style {
	if st, ok := cs[c]; ok {
		return st
	}
	st := lipgloss.NewStyle().Background(lipgloss.Color(c.Hex()))
	cs[c] = st
	return st
}

// contrast returns a foreground that stays readable on c.
func contrast(c Color) lipgloss.Color {
	if c.IsEmpty() {
		return lipgloss.Color("#ffffff")
	}
	luma := 299*int(c.R) + 587*int(c.G) + 114*int(c.B)
	if luma > 128*1000 {
		return lipgloss.Color("#000000")
	}
	return lipgloss.Color("#ffffff")
}

// cellText returns the text of one terminal row of a canvas cell.
// Row 0 carries the markers.
func (m model) cellText(row int, cursor, anchor, dot bool) string {
	cw, _ := m.cellSize()
	text := []rune(strings.Repeat(" ", cw))
	if row != 0 {
		return string(text)
	}
	switch {
	case cursor:
		text[0], text[cw-1] = '[', ']'
	case anchor:
		text[0] = '◆'
	case dot:
		text[0] = '·'
	}
	return string(text)
}

func (m model) canvasView(s *termSurface) string {
	w, h := m.viewportSize()
	cols, rows := m.visibleCells()
	_, ch := m.cellSize()
	n := s.cells.Size()
	gx, gy, hasAnchor := m.editor.GradientStart()
	styles := cellStyles{}

	lines := make([]string, 0, h)
	for cy := m.panY; cy < m.panY+rows && cy < n; cy++ {
		for row := 0; row < ch; row++ {
			var line strings.Builder
			for cx := m.panX; cx < m.panX+cols && cx < n; cx++ {
				c := s.cells.At(cx, cy)
				cursor := cx == m.cursorX && cy == m.cursorY
				anchor := hasAnchor && cx == gx && cy == gy
				text := m.cellText(row, cursor, anchor, s.grid && c.IsEmpty())

				var st lipgloss.Style
				if c.IsEmpty() {
					bg := checkerDark
					if (cx+cy)%2 == 1 {
						bg = checkerLight
					}
					st = gridDotStyle.Copy().Background(bg)
				} else {
					st = styles.get(c)
				}
				if cursor || anchor {
					st = st.Copy().Foreground(contrast(c)).Bold(true)
				}
				line.WriteString(st.Render(text))
			}
			lines = append(lines, line.String())
		}
	}
	return lipgloss.NewStyle().
		Width(w).Height(h).
		MaxWidth(w).MaxHeight(h).
		Render(strings.Join(lines, "\n"))
}

func swatchBlock(c Color, width int) string {
	if c.IsEmpty() {
		return hiddenStyle.Render(strings.Repeat("░", width))
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render(strings.Repeat(" ", width))
}

func (m model) panelView(height int) string {
	e := m.editor
	doc := e.Document()
	h := e.History()

	grid := "off"
	if m.showGrid {
		grid = "on"
	}
	pen := ""
	if m.penDown {
		pen = " PEN"
	}

	var recent strings.Builder
	for _, c := range e.Palette().Recent() {
		recent.WriteString(swatchBlock(c, 2))
	}

	lines := []string{
		fmt.Sprintf(" %s %s%s", headingStyle.Render("TOOL"), e.Tool(), pen),
		fmt.Sprintf(" %s %d", headingStyle.Render("SIZE"), e.BrushSize()),
		fmt.Sprintf(" %s %s %s", headingStyle.Render("COLOR"), swatchBlock(e.Color(), 2), e.Color()),
		fmt.Sprintf(" %s %s", headingStyle.Render("RECENT"), recent.String()),
		fmt.Sprintf(" ZOOM %dx  GRID %s", m.zoom, grid),
		fmt.Sprintf(" HISTORY %d/%d", h.Cursor()+1, h.Len()),
		" " + headingStyle.Render("LAYERS"),
	}

	nameWidth := layerPanelWidth - 14
	for i := doc.Len() - 1; i >= 0; i-- {
		l := doc.Layer(i)
		marker := " "
		if i == doc.ActiveIndex() {
			marker = ">"
		}
		eye := "[ ]"
		if l.Visible {
			eye = "[●]"
		}
		name := l.Name
		if r := []rune(name); len(r) > nameWidth {
			name = string(r[:nameWidth-1]) + "…"
		}
		row := fmt.Sprintf(" %s %s %-*s %3d%%", marker, eye, nameWidth, name, int(l.Opacity*100+0.5))
		switch {
		case i == doc.ActiveIndex():
			row = activeStyle.Render(row)
		case !l.Visible:
			row = hiddenStyle.Render(row)
		}
		lines = append(lines, row)
	}

	if len(lines) > height {
		lines = lines[:height]
	}
	return panelStyle.Copy().Height(height).MaxHeight(height).Render(strings.Join(lines, "\n"))
}

func (m model) paletteStrip() string {
	var b strings.Builder
	current := m.editor.Color()
	for _, c := range m.editor.Palette().Swatches() {
		mark := "   "
		if c == current {
			mark = " • "
		}
		b.WriteString(lipgloss.NewStyle().
			Background(lipgloss.Color(c.Hex())).
			Foreground(contrast(c)).
			Render(mark))
	}
	return lipgloss.NewStyle().MaxWidth(max(m.width, 1)).Render(b.String())
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	doc := m.editor.Document()
	s := newTermSurface(doc.Size())
	Render(s, m.editor.Composite(), m.showGrid)

	_, h := m.viewportSize()
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.canvasView(s), m.panelView(h))

	var result strings.Builder
	result.WriteString(body)
	result.WriteString("\n")
	result.WriteString(m.paletteStrip())
	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

func (m model) statusLine() string {
	switch m.mode {
	case ModeFileInput:
		hint := "Enter=confirm, Esc=cancel"
		if m.fileOp == FileOpOpen && len(m.fileList) > 0 {
			hint = fmt.Sprintf("↑/↓=navigate list (%d/%d), Type=enter name, Enter=confirm, Esc=cancel",
				m.selectedFileIndex+1, len(m.fileList))
		}
		if m.errorMessage != "" {
			return fmt.Sprintf("Mode: FILE | ERROR: %s | %s | %s", m.errorMessage, m.input.View(), hint)
		}
		return fmt.Sprintf("Mode: FILE | %s | %s", m.input.View(), hint)
	case ModeColorInput, ModeRenameLayer:
		hint := "Enter=confirm, Esc=cancel"
		if m.mode == ModeColorInput {
			hint = "#RRGGBB, #RRGGBBAA or rgba(r,g,b,a) | " + hint
		}
		if m.errorMessage != "" {
			return fmt.Sprintf("Mode: %s | ERROR: %s | %s | %s", m.modeString(), m.errorMessage, m.input.View(), hint)
		}
		return fmt.Sprintf("Mode: %s | %s | %s", m.modeString(), m.input.View(), hint)
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmRemoveLayer:
			name := ""
			if l := m.editor.Document().Layer(m.confirmLayer); l != nil {
				name = l.Name
			}
			message = fmt.Sprintf("Remove layer %q? (y/n)", name)
		case ConfirmQuit:
			message = "Quit? Unsaved changes will be lost. (y/n)"
		case ConfirmNewDocument:
			message = "Create new document? Unsaved changes will be lost. (y/n)"
		case ConfirmOverwriteFile:
			message = fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.pendingPath)
		}
		return fmt.Sprintf("Mode: CONFIRM | %s", message)
	}

	status := fmt.Sprintf("Mode: %s | Cursor: (%d,%d) | Tool: %s", m.modeString(), m.cursorX, m.cursorY, m.editor.Tool())
	if x, y, ok := m.editor.GradientStart(); ok {
		status += fmt.Sprintf(" | Gradient from (%d,%d)", x, y)
	}
	if m.editor.Modified() {
		status += " | [+]"
	}
	if m.successMessage != "" {
		status += fmt.Sprintf(" | %s", m.successMessage)
	}
	if m.errorMessage != "" {
		status += fmt.Sprintf(" | ERROR: %s", m.errorMessage)
	} else if m.successMessage == "" {
		status += " | ? for help | q to quit"
	}
	return status
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		if m.penDown {
			return "DRAW"
		}
		return "NORMAL"
	case ModeFileInput:
		return "FILE"
	case ModeColorInput:
		return "COLOR"
	case ModeRenameLayer:
		return "RENAME"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func (m model) helpView() string {
	helpLines := []string{
		"Pixed Help",
		"==========",
		"",
		"Navigation:",
		"-----------",
		"  h/j/k/l, arrows  Move cursor",
		"  H/J/K/L          Move cursor 4 cells",
		"  z / Z            Zoom in / out",
		"  #                Toggle grid",
		"  Mouse wheel      Scroll canvas",
		"",
		"Drawing:",
		"--------",
		"  Space/Enter      Apply tool at cursor",
		"  m                Pen down / up (moves draw a stroke)",
		"  Mouse drag       Draw",
		"  p                Pencil",
		"  e                Eraser",
		"  b                Bucket fill",
		"  i                Eyedropper",
		"  g                Gradient (click start, then end)",
		"  , / .            Brush size down / up",
		"  Esc              Cancel gradient / lift pen",
		"",
		"Colors:",
		"-------",
		"  [ / ]            Previous / next palette swatch",
		"  c                Enter a color",
		"  y                Copy color to clipboard",
		"  P                Paste color from clipboard",
		"",
		"Layers:",
		"-------",
		"  a                Add layer",
		"  x                Remove layer",
		"  d                Duplicate layer",
		"  r                Rename layer",
		"  v                Toggle visibility",
		"  + / -            Opacity up / down",
		"  < / >            Move layer down / up",
		"  Tab / Shift+Tab  Select layer above / below",
		"",
		"Files:",
		"------",
		"  Ctrl+S           Save document (JSON)",
		"  o                Open document",
		"  Ctrl+N           New document",
		"  E                Export PNG",
		"  W                Export zoomed preview PNG",
		"  T                Export terminal art",
		"  I                Import PNG as a layer",
		"  Y                Copy document JSON to clipboard",
		"",
		"General:",
		"--------",
		"  u / Ctrl+Z       Undo",
		"  U / Ctrl+R       Redo",
		"  ?                Toggle this help screen",
		"  q/Ctrl+C         Quit",
	}

	visibleHeight := m.height - 1
	if visibleHeight < 1 {
		visibleHeight = 1
	}

	startLine := m.helpScroll
	if maxStart := len(helpLines) - visibleHeight; startLine > maxStart {
		startLine = max(0, maxStart)
	}
	endLine := min(startLine+visibleHeight, len(helpLines))

	result := strings.Join(helpLines[startLine:endLine], "\n")
	statusLine := fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result + "\n" + statusLine
}
