package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorInBounds()
		return m, nil

	case tea.MouseMsg:
		if m.mode != ModeNormal || m.help {
			return m, nil
		}
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		if m.help {
			switch msg.String() {
			case "esc", "q", "?":
				m.help = false
				m.helpScroll = 0
			case "j", "down":
				m.helpScroll++
			case "k", "up":
				m.helpScroll = max(0, m.helpScroll-1)
			}
			return m, nil
		}

		switch m.mode {
		case ModeFileInput:
			return m.updateFileInput(msg)
		case ModeColorInput, ModeRenameLayer:
			return m.updateTextPrompt(msg)
		case ModeConfirm:
			return m.updateConfirm(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m *model) clearMessages() {
	m.errorMessage = ""
	m.successMessage = ""
}

func (m model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	m.clearMessages()
	e := m.editor
	doc := e.Document()

	switch key {
	case "q", "ctrl+c":
		if m.config.Confirmations && e.Modified() {
			m.startConfirm(ConfirmQuit)
			return m, nil
		}
		return m, tea.Quit
	case "?":
		m.help = true
	case "h", "j", "k", "l", "left", "right", "up", "down",
		"H", "J", "K", "L", "shift+left", "shift+right", "shift+up", "shift+down":
		m.handleNavigation(key, m.getMoveSpeed(key))
	case " ", "enter":
		if m.penDown {
			m.penDown = false
			e.PointerUp()
		} else {
			e.Click(m.cursorX, m.cursorY)
		}
	case "m":
		m.togglePen()
	case "esc":
		if m.penDown {
			m.penDown = false
			e.PointerUp()
		}
		e.CancelGradient()

	case "p":
		m.selectTool(ToolPencil)
	case "e":
		m.selectTool(ToolEraser)
	case "b":
		m.selectTool(ToolBucket)
	case "i":
		m.selectTool(ToolEyedropper)
	case "g":
		m.selectTool(ToolGradient)
	case ",":
		e.SetBrushSize(e.BrushSize() - 1)
	case ".":
		e.SetBrushSize(e.BrushSize() + 1)

	case "[":
		m.pickSwatch(m.swatch - 1)
	case "]":
		m.pickSwatch(m.swatch + 1)
	case "c":
		m.startTextPrompt(ModeColorInput, "Color: ", e.Color().String())
	case "y":
		if err := writeClipboardText(e.Color().String()); err != nil {
			m.log.Warn("clipboard write failed", zap.Error(err))
			m.errorMessage = fmt.Sprintf("Clipboard: %v", err)
		} else {
			m.successMessage = "Copied " + e.Color().String()
		}
	case "Y":
		m.copyDocument()
	case "P":
		m.pasteColor()

	case "u", "ctrl+z":
		m.undo()
	case "U", "ctrl+r", "ctrl+y":
		m.redo()

	case "a":
		e.AddLayer()
	case "x":
		i := doc.ActiveIndex()
		if !doc.CanRemove(i) {
			m.errorMessage = "Cannot remove the last layer"
			break
		}
		if m.config.Confirmations {
			m.confirmLayer = i
			m.startConfirm(ConfirmRemoveLayer)
			return m, nil
		}
		e.RemoveLayer(i)
	case "d":
		e.DuplicateLayer(doc.ActiveIndex())
	case "v":
		e.ToggleVisibility(doc.ActiveIndex())
	case "r":
		m.startTextPrompt(ModeRenameLayer, "Layer name: ", doc.Active().Name)
	case "+", "=":
		e.SetOpacity(doc.ActiveIndex(), doc.Active().Opacity+opacityStep)
	case "-", "_":
		e.SetOpacity(doc.ActiveIndex(), doc.Active().Opacity-opacityStep)
	case ">":
		e.MoveLayer(doc.ActiveIndex(), doc.ActiveIndex()+1)
	case "<":
		e.MoveLayer(doc.ActiveIndex(), doc.ActiveIndex()-1)
	case "tab":
		e.SelectLayer(doc.ActiveIndex() + 1)
	case "shift+tab":
		e.SelectLayer(doc.ActiveIndex() - 1)

	case "z":
		m.setZoom(m.zoom + 1)
	case "Z":
		m.setZoom(m.zoom - 1)
	case "#":
		m.showGrid = !m.showGrid

	case "ctrl+s":
		m.startFileInput(FileOpSave)
	case "o":
		m.startFileInput(FileOpOpen)
	case "ctrl+n":
		if m.config.Confirmations && e.Modified() {
			m.startConfirm(ConfirmNewDocument)
			return m, nil
		}
		m.newDocument()
	case "E":
		m.startFileInput(FileOpExportPNG)
	case "W":
		m.startFileInput(FileOpExportPreview)
	case "T":
		m.startFileInput(FileOpExportTerminal)
	case "I":
		m.startFileInput(FileOpImportImage)
	}
	return m, nil
}

func (m *model) selectTool(t Tool) {
	if m.penDown {
		m.penDown = false
		m.editor.PointerUp()
	}
	m.editor.SetTool(t)
}

// togglePen starts or ends a keyboard stroke at the cursor. While the pen
// is down every cursor move continues the stroke.
func (m *model) togglePen() {
	if m.penDown {
		m.penDown = false
		m.editor.PointerUp()
		return
	}
	m.editor.PointerDown(m.cursorX, m.cursorY)
	m.penDown = m.editor.Drawing() && m.editor.Tool().continuous()
	if !m.penDown {
		m.editor.PointerUp()
	}
}

func (m *model) pickSwatch(i int) {
	p := m.editor.Palette()
	n := len(p.Swatches())
	if n == 0 {
		return
	}
	m.swatch = ((i % n) + n) % n
	m.editor.SetColor(p.Swatch(m.swatch))
}

func (m *model) copyDocument() {
	text, err := documentJSON(m.editor.Document())
	if err == nil {
		err = writeClipboardText(text)
	}
	if err != nil {
		m.log.Warn("clipboard write failed", zap.Error(err))
		m.errorMessage = fmt.Sprintf("Clipboard: %v", err)
		return
	}
	m.successMessage = "Copied document JSON"
}

func (m *model) pasteColor() {
	text, err := readClipboardText()
	if err != nil {
		m.log.Warn("clipboard read failed", zap.Error(err))
		m.errorMessage = fmt.Sprintf("Clipboard: %v", err)
		return
	}
	c, ok := colorFromText(text)
	if !ok {
		m.errorMessage = "No color on clipboard"
		return
	}
	m.editor.SetColor(c)
	m.successMessage = "Color " + c.String()
}

func (m *model) newDocument() {
	m.editor.Reset()
	m.filename = ""
	m.cursorX, m.cursorY = 0, 0
	m.panX, m.panY = 0, 0
	m.successMessage = "New document"
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	w, h := m.viewportSize()

	switch {
	case msg.Y >= h:
		if msg.Y == h && msg.Type == tea.MouseLeft && !m.mouseDown {
			m.clickPalette(msg.X)
		}
		m.releasePointer()
		return
	case msg.X >= w:
		if msg.Type == tea.MouseLeft && !m.mouseDown {
			m.clickLayerPanel(msg.X-w, msg.Y)
		}
		m.releasePointer()
		return
	}

	x, y, ok := m.screenToCanvas(msg.X, msg.Y)
	if !ok {
		m.releasePointer()
		return
	}

	switch msg.Type {
	case tea.MouseLeft:
		m.cursorX, m.cursorY = x, y
		if m.mouseDown {
			m.editor.PointerMove(x, y)
			break
		}
		m.clearMessages()
		m.mouseDown = true
		m.editor.PointerDown(x, y)
	case tea.MouseMotion:
		if m.mouseDown {
			m.cursorX, m.cursorY = x, y
			m.editor.PointerMove(x, y)
		}
	case tea.MouseRelease:
		m.releasePointer()
	case tea.MouseWheelUp:
		m.panY = max(0, m.panY-1)
	case tea.MouseWheelDown:
		m.panY++
		m.clampPan()
	}
}

// clampPan keeps the pan offset inside the canvas without following the
// cursor.
func (m *model) clampPan() {
	cols, rows := m.visibleCells()
	n := m.editor.Document().Size()
	m.panX = clampInt(m.panX, 0, max(0, n-cols))
	m.panY = clampInt(m.panY, 0, max(0, n-rows))
}

func (m *model) releasePointer() {
	if m.mouseDown {
		m.mouseDown = false
		m.editor.PointerUp()
	}
}

// clickPalette selects the swatch under column x of the palette strip.
func (m *model) clickPalette(x int) {
	i := x / swatchWidth
	if i >= 0 && i < len(m.editor.Palette().Swatches()) {
		m.pickSwatch(i)
	}
}

// clickLayerPanel handles a click at panel-relative (x, y): the eye column
// toggles visibility, anywhere else on a layer row selects the layer.
func (m *model) clickLayerPanel(x, y int) {
	doc := m.editor.Document()
	row := y - layerListTop
	if row < 0 || row >= doc.Len() {
		return
	}
	i := doc.Len() - 1 - row
	if x >= eyeColumnStart && x < eyeColumnStart+3 {
		m.editor.ToggleVisibility(i)
		return
	}
	m.editor.SelectLayer(i)
}

func (m *model) undo() {
	if !m.editor.Undo() {
		m.errorMessage = "Nothing to undo"
	}
}

func (m *model) redo() {
	if !m.editor.Redo() {
		m.errorMessage = "Nothing to redo"
	}
}

func (m *model) startConfirm(action ConfirmAction) {
	m.confirmAction = action
	m.mode = ModeConfirm
}

func (m model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmRemoveLayer:
			m.editor.RemoveLayer(m.confirmLayer)
			m.confirmLayer = -1
		case ConfirmNewDocument:
			m.newDocument()
		case ConfirmOverwriteFile:
			m.runFileOp(m.pendingPath)
			m.pendingPath = ""
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
		m.confirmLayer = -1
		m.pendingPath = ""
	}
	return m, nil
}

func (m *model) startTextPrompt(mode Mode, prompt, value string) {
	m.mode = mode
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *model) closePrompt() {
	m.mode = ModeNormal
	m.input.Blur()
	m.input.SetValue("")
}

func (m model) updateTextPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePrompt()
		return m, nil
	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		switch m.mode {
		case ModeColorInput:
			c, err := ParseColor(value)
			if err != nil || c.IsEmpty() {
				m.errorMessage = fmt.Sprintf("Invalid color %q", value)
				return m, nil
			}
			m.editor.SetColor(c)
			if i := m.editor.Palette().Index(c); i >= 0 {
				m.swatch = i
			}
		case ModeRenameLayer:
			m.editor.RenameLayer(m.editor.Document().ActiveIndex(), value)
		}
		m.errorMessage = ""
		m.closePrompt()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) startFileInput(op FileOperation) {
	m.fileOp = op
	m.mode = ModeFileInput
	m.input.Prompt = fileOpLabel(op) + " filename: "
	m.input.SetValue(m.defaultFilename(op))
	m.fileList = nil
	m.selectedFileIndex = -1
	if op == FileOpOpen {
		m.scanDocumentFiles()
	}
	m.input.CursorEnd()
	m.input.Focus()
}

func fileOpLabel(op FileOperation) string {
	switch op {
	case FileOpSave:
		return "Save"
	case FileOpOpen:
		return "Open"
	case FileOpExportPNG:
		return "Export PNG"
	case FileOpExportPreview:
		return "Export preview"
	case FileOpExportTerminal:
		return "Export terminal art"
	case FileOpImportImage:
		return "Import image"
	}
	return ""
}

func fileOpExtension(op FileOperation) string {
	switch op {
	case FileOpSave, FileOpOpen:
		return ".json"
	case FileOpExportPNG, FileOpExportPreview, FileOpImportImage:
		return ".png"
	case FileOpExportTerminal:
		return ".txt"
	}
	return ""
}

func (m *model) defaultFilename(op FileOperation) string {
	base := "pixel-art"
	if m.filename != "" {
		base = strings.TrimSuffix(filepath.Base(m.filename), filepath.Ext(m.filename))
	}
	switch op {
	case FileOpSave:
		return base
	case FileOpExportPNG, FileOpExportTerminal:
		return base + fileOpExtension(op)
	case FileOpExportPreview:
		return base + "-preview.png"
	}
	return ""
}

func (m model) updateFileInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.errorMessage = ""
		m.closePrompt()
		return m, nil
	case tea.KeyUp, tea.KeyDown:
		if m.fileOp == FileOpOpen && len(m.fileList) > 0 {
			if msg.Type == tea.KeyUp {
				m.selectedFileIndex = max(0, m.selectedFileIndex-1)
			} else {
				m.selectedFileIndex = min(len(m.fileList)-1, m.selectedFileIndex+1)
			}
			m.input.SetValue(m.fileList[m.selectedFileIndex])
			m.input.CursorEnd()
		}
		return m, nil
	case tea.KeyEnter:
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			m.errorMessage = "Filename required"
			return m, nil
		}
		path := m.config.GetSavePath(withExtension(name, fileOpExtension(m.fileOp)))

		if m.writesFile() && m.config.Confirmations && path != m.filename {
			if _, err := os.Stat(path); err == nil {
				m.closePrompt()
				m.pendingPath = path
				m.startConfirm(ConfirmOverwriteFile)
				return m, nil
			}
		}
		if m.runFileOp(path) {
			m.closePrompt()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) writesFile() bool {
	return m.fileOp != FileOpOpen && m.fileOp != FileOpImportImage
}

// runFileOp performs the pending file operation on path. Failures are
// reported on the status line; it reports whether the operation succeeded.
func (m *model) runFileOp(path string) bool {
	e := m.editor
	var err error
	switch m.fileOp {
	case FileOpSave:
		if err = SaveDocument(path, e.Document()); err == nil {
			e.MarkSaved()
			m.filename = path
		}
	case FileOpOpen:
		err = m.openDocument(path)
	case FileOpExportPNG:
		err = ExportPNG(path, e.Composite(), m.config.ExportScale)
	case FileOpExportPreview:
		err = ExportPreview(path, e.Composite(), m.config.PreviewZoom, m.showGrid, m.caption())
	case FileOpExportTerminal:
		err = m.exportTerminalArt(path)
	case FileOpImportImage:
		var g Grid
		if g, err = ImportImage(path, e.Document().Size()); err == nil {
			e.ImportLayer(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), g)
		}
	}

	op := fileOpLabel(m.fileOp)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			m.errorMessage = fmt.Sprintf("%s: file not found", op)
		} else {
			m.errorMessage = fmt.Sprintf("%s: %v", op, err)
		}
		m.log.Warn("file operation failed", zap.String("op", op), zap.String("path", path), zap.Error(err))
		return false
	}
	m.log.Info("file operation", zap.String("op", op), zap.String("path", path))
	m.errorMessage = ""
	m.successMessage = fmt.Sprintf("%s: %s", op, filepath.Base(path))
	return true
}

func (m *model) openDocument(path string) error {
	d, err := LoadDocument(path)
	if err != nil {
		return err
	}
	m.editor.ReplaceDocument(d)
	m.filename = path
	m.cursorX, m.cursorY = 0, 0
	m.panX, m.panY = 0, 0
	return nil
}

func (m *model) caption() string {
	doc := m.editor.Document()
	name := "untitled"
	if m.filename != "" {
		name = filepath.Base(m.filename)
	}
	return fmt.Sprintf("%s  %dx%d  %d layers", name, doc.Size(), doc.Size(), doc.Len())
}
