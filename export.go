package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/muesli/termenv"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// documentVersion is written to every saved document.
const documentVersion = 1

var (
	ErrBadColor           = errors.New("invalid color")
	ErrUnsupportedVersion = errors.New("unsupported document version")
	ErrBadDimensions      = errors.New("layer grid does not match canvas size")
	ErrNoLayers           = errors.New("document has no layers")
)

// documentFile is the on-disk JSON shape of a document.
type documentFile struct {
	Version          int      `json:"version"`
	Size             int      `json:"size"`
	ActiveLayerIndex int      `json:"activeLayerIndex"`
	Layers           []*Layer `json:"layers"`
}

// WriteDocument serializes every layer, including its full cell grid.
func WriteDocument(w io.Writer, d *Document) error {
	f := documentFile{
		Version:          documentVersion,
		Size:             d.Size(),
		ActiveLayerIndex: d.ActiveIndex(),
		Layers:           d.Layers(),
	}
	enc := json.NewEncoder(w)
	if err := enc.Encode(&f); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}

// ReadDocument parses a document written by WriteDocument. Files without a
// version or size (a bare {"layers": [...]}) are accepted and sized from
// their first layer.
func ReadDocument(r io.Reader) (*Document, error) {
	var f documentFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if f.Version > documentVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, f.Version)
	}
	if len(f.Layers) == 0 {
		return nil, ErrNoLayers
	}
	size := f.Size
	if size == 0 {
		size = len(f.Layers[0].Data)
	}
	if size < 1 {
		return nil, fmt.Errorf("%w: size %d", ErrBadDimensions, size)
	}

	d := &Document{size: size, dirty: true}
	seen := make(map[string]bool)
	for i, l := range f.Layers {
		if l == nil {
			return nil, fmt.Errorf("layer %d: %w", i, ErrNoLayers)
		}
		if len(l.Data) != size {
			return nil, fmt.Errorf("layer %d has %d rows: %w", i, len(l.Data), ErrBadDimensions)
		}
		for y, row := range l.Data {
			if len(row) != size {
				return nil, fmt.Errorf("layer %d row %d has %d cells: %w", i, y, len(row), ErrBadDimensions)
			}
		}
		l.Opacity = clampUnit(l.Opacity)
		if n, ok := layerSerial(l.ID); ok && n > d.layerSerial {
			d.layerSerial = n
		}
		d.layers = append(d.layers, l)
	}
	for _, l := range d.layers {
		if l.ID == "" || seen[l.ID] {
			d.layerSerial++
			l.ID = fmt.Sprintf("layer-%d", d.layerSerial)
		}
		seen[l.ID] = true
		if l.Name == "" {
			l.Name = strings.Replace(l.ID, "layer-", "Layer ", 1)
		}
	}
	if !d.SetActive(f.ActiveLayerIndex) {
		d.active = 0
	}
	return d, nil
}

func layerSerial(id string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(id, "layer-"))
	if err != nil || !strings.HasPrefix(id, "layer-") {
		return 0, false
	}
	return n, true
}

// SaveDocument writes d to filename as JSON.
func SaveDocument(filename string, d *Document) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := WriteDocument(file, d); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// LoadDocument reads a JSON document from filename.
func LoadDocument(filename string) (*Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	d, err := ReadDocument(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return d, nil
}

// CompositeImage renders g at one pixel per cell. Empty cells become fully
// transparent pixels.
func CompositeImage(g Grid) *image.NRGBA {
	n := g.Size()
	img := image.NewNRGBA(image.Rect(0, 0, n, n))
	for y := range g {
		for x, c := range g[y] {
			img.SetNRGBA(x, y, c.NRGBA())
		}
	}
	return img
}

// ExportPNG writes g as a PNG, each cell scaled to scale×scale pixels.
func ExportPNG(filename string, g Grid, scale int) error {
	if g.Size() == 0 {
		return fmt.Errorf("nothing to export")
	}
	img := CompositeImage(g)
	if scale > 1 {
		n := g.Size() * scale
		scaled := image.NewNRGBA(image.Rect(0, 0, n, n))
		draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
		img = scaled
	}
	return gg.SavePNG(filename, img)
}

// ImportImage loads a PNG and resamples it to a size×size grid. Pixels with
// zero alpha become empty cells.
func ImportImage(filename string, size int) (Grid, error) {
	src, err := gg.LoadPNG(filename)
	if err != nil {
		return nil, err
	}
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	g := NewGrid(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			g[y][x] = FromColor(dst.NRGBAAt(x, y))
		}
	}
	return g, nil
}

// ggSurface paints a composite into a gg context at a fixed zoom.
type ggSurface struct {
	dc   *gg.Context
	zoom float64
}

func (s *ggSurface) PaintCell(x, y int, c Color) {
	s.dc.SetColor(c.NRGBA())
	s.dc.DrawRectangle(float64(x)*s.zoom, float64(y)*s.zoom, s.zoom, s.zoom)
	s.dc.Fill()
}

func (s *ggSurface) PaintGrid(size int) {
	extent := float64(size) * s.zoom
	s.dc.SetHexColor("#cccccc")
	s.dc.SetLineWidth(0.5)
	for i := 0; i <= size; i++ {
		p := float64(i) * s.zoom
		s.dc.DrawLine(p, 0, p, extent)
		s.dc.DrawLine(0, p, extent, p)
	}
	s.dc.Stroke()
}

// previewCaptionHeight is the strip below the canvas holding the caption.
const previewCaptionHeight = 20

// ExportPreview writes a zoomed PNG of g over a checkerboard, with grid
// lines at zoom >= 4 when showGrid is set and a caption line underneath.
func ExportPreview(filename string, g Grid, zoom int, showGrid bool, caption string) error {
	if zoom < 1 {
		zoom = 1
	}
	if zoom > 32 {
		zoom = 32
	}
	extent := g.Size() * zoom
	dc := gg.NewContext(extent, extent+previewCaptionHeight)
	dc.SetColor(color.White)
	dc.Clear()

	// Checkerboard behind transparent cells.
	tile := float64(max(zoom, 4))
	for y := 0.0; y < float64(extent); y += tile {
		for x := 0.0; x < float64(extent); x += tile {
			if int(x/tile+y/tile)%2 == 0 {
				dc.SetRGB255(230, 230, 230)
			} else {
				dc.SetRGB255(200, 200, 200)
			}
			dc.DrawRectangle(x, y, tile, tile)
			dc.Fill()
		}
	}

	Render(&ggSurface{dc: dc, zoom: float64(zoom)}, g, showGrid && zoom >= gridMinZoom)

	if caption != "" {
		ttfFont, err := truetype.Parse(gomono.TTF)
		if err != nil {
			return fmt.Errorf("failed to parse font: %v", err)
		}
		face := truetype.NewFace(ttfFont, &truetype.Options{
			Size:    12,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		dc.SetFontFace(face)
		dc.SetColor(color.Black)
		dc.DrawStringAnchored(caption, 4, float64(extent)+previewCaptionHeight/2, 0, 0.5)
	}

	return dc.SavePNG(filename)
}

// halfBlockLines renders g as text, two canvas rows per line: the upper
// cell is the foreground of '▀' and the lower cell its background.
func halfBlockLines(r *lipgloss.Renderer, g Grid) []string {
	n := g.Size()
	lines := make([]string, 0, (n+1)/2)
	for y := 0; y < n; y += 2 {
		var line strings.Builder
		for x := 0; x < n; x++ {
			top := g.At(x, y)
			bottom := g.At(x, y+1)
			switch {
			case top.IsEmpty() && bottom.IsEmpty():
				line.WriteString(" ")
			case top.IsEmpty():
				line.WriteString(r.NewStyle().Foreground(lipgloss.Color(bottom.Hex())).Render("▄"))
			case bottom.IsEmpty():
				line.WriteString(r.NewStyle().Foreground(lipgloss.Color(top.Hex())).Render("▀"))
			default:
				line.WriteString(r.NewStyle().
					Foreground(lipgloss.Color(top.Hex())).
					Background(lipgloss.Color(bottom.Hex())).
					Render("▀"))
			}
		}
		lines = append(lines, line.String())
	}
	return lines
}

// ExportTerminalArt writes g as 24-bit ANSI half-block text.
func ExportTerminalArt(w io.Writer, g Grid) error {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.TrueColor)
	for _, line := range halfBlockLines(r, g) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (m *model) exportTerminalArt(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return ExportTerminalArt(file, m.editor.Composite())
}
