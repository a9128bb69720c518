package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sampleDocument() *Document {
	d := NewDocument(4)
	d.Active().Data.Set(0, 0, RGB(255, 0, 0))
	d.Active().Data.Set(3, 3, Color{0, 255, 0, 128})
	top := d.AddLayer()
	top.Name = "Top"
	top.Opacity = 0.5
	top.Visible = false
	top.Data.Set(1, 2, RGB(0, 0, 255))
	d.SetActive(0)
	return d
}

func TestExportPNG(t *testing.T) {
	d := sampleDocument()
	path := filepath.Join(t.TempDir(), "out.png")

	if err := ExportPNG(path, d.Composite(), 1); err != nil {
		t.Fatalf("ExportPNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Fatalf("bounds = %v, want 4x4", b)
	}
	if got := FromColor(img.At(0, 0)); got != RGB(255, 0, 0) {
		t.Errorf("(0,0) = %v, want #FF0000", got)
	}
	if _, _, _, a := img.At(1, 1).RGBA(); a != 0 {
		t.Errorf("empty cell alpha = %d, want 0", a)
	}
	if _, _, _, a := img.At(1, 2).RGBA(); a != 0 {
		t.Errorf("hidden layer cell alpha = %d, want 0", a)
	}
	if got := FromColor(img.At(3, 3)); got != (Color{0, 255, 0, 128}) {
		t.Errorf("(3,3) = %v, want #00FF0080", got)
	}
}

func TestExportPNGScaled(t *testing.T) {
	g := NewGrid(2)
	g.Set(1, 0, RGB(9, 8, 7))
	path := filepath.Join(t.TempDir(), "scaled.png")

	if err := ExportPNG(path, g, 3); err != nil {
		t.Fatalf("ExportPNG: %v", err)
	}
	back, err := ImportImage(path, 6)
	if err != nil {
		t.Fatalf("ImportImage: %v", err)
	}
	for y := 0; y < 3; y++ {
		for x := 3; x < 6; x++ {
			if back.At(x, y) != RGB(9, 8, 7) {
				t.Errorf("(%d,%d) = %v", x, y, back.At(x, y))
			}
		}
	}
	if !back.At(0, 0).IsEmpty() {
		t.Errorf("(0,0) = %v, want empty", back.At(0, 0))
	}
}

func TestImportImageRoundTrip(t *testing.T) {
	d := sampleDocument()
	path := filepath.Join(t.TempDir(), "in.png")
	if err := ExportPNG(path, d.Composite(), 1); err != nil {
		t.Fatal(err)
	}

	g, err := ImportImage(path, 4)
	if err != nil {
		t.Fatalf("ImportImage: %v", err)
	}
	if !g.Equal(d.Composite()) {
		t.Errorf("imported grid differs from the exported composite")
	}

	if _, err := ImportImage(filepath.Join(t.TempDir(), "missing.png"), 4); err == nil {
		t.Error("importing a missing file succeeded")
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	d := sampleDocument()

	var buf bytes.Buffer
	if err := WriteDocument(&buf, d); err != nil {
		t.Fatalf("WriteDocument: %v", err)
	}
	for _, key := range []string{`"version":1`, `"activeLayerIndex":0`, `"opacity":0.5`, `"transparent"`, `"#FF0000"`} {
		if !strings.Contains(buf.String(), key) {
			t.Errorf("output missing %s", key)
		}
	}

	back, err := ReadDocument(&buf)
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if !back.Equal(d) {
		t.Error("document changed across a save and load")
	}
	if got := back.AddLayer().ID; got != "layer-3" {
		t.Errorf("next layer id = %s, want layer-3", got)
	}
}

func TestSaveLoadDocument(t *testing.T) {
	d := sampleDocument()
	path := filepath.Join(t.TempDir(), "doc.json")

	if err := SaveDocument(path, d); err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}
	back, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}
	if !back.Equal(d) {
		t.Error("loaded document differs")
	}
}

func TestReadDocumentErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"no layers", `{"version":1,"size":2,"layers":[]}`, ErrNoLayers},
		{"future version", `{"version":99,"size":2,"layers":[]}`, ErrUnsupportedVersion},
		{"short grid", `{"size":2,"layers":[{"id":"a","data":[["transparent","transparent"]]}]}`, ErrBadDimensions},
		{"ragged row", `{"size":2,"layers":[{"id":"a","data":[["transparent"],["transparent","transparent"]]}]}`, ErrBadDimensions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadDocument(strings.NewReader(tt.input))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := ReadDocument(strings.NewReader(`{"layers":[{"data":[["#zz"]]}]}`)); err == nil {
		t.Error("bad color accepted")
	}
	if _, err := ReadDocument(strings.NewReader(`not json`)); err == nil {
		t.Error("garbage accepted")
	}
}

func TestReadDocumentRepairs(t *testing.T) {
	input := `{"activeLayerIndex":7,"layers":[
		{"id":"layer-4","visible":true,"opacity":3,"data":[["#FF0000","transparent"],["transparent","transparent"]]},
		{"id":"layer-4","name":"dup","visible":true,"opacity":1,"data":[["transparent","transparent"],["transparent","transparent"]]}
	]}`
	d, err := ReadDocument(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if d.Size() != 2 {
		t.Errorf("size = %d, want 2", d.Size())
	}
	if d.ActiveIndex() != 0 {
		t.Errorf("active = %d, want 0", d.ActiveIndex())
	}
	if d.Layer(0).Opacity != 1 {
		t.Errorf("opacity = %v, want clamped to 1", d.Layer(0).Opacity)
	}
	if d.Layer(0).Name != "Layer 4" {
		t.Errorf("name = %q, want Layer 4", d.Layer(0).Name)
	}
	if d.Layer(1).ID != "layer-5" {
		t.Errorf("duplicate id became %q, want layer-5", d.Layer(1).ID)
	}
}

func TestExportPreview(t *testing.T) {
	d := sampleDocument()
	path := filepath.Join(t.TempDir(), "preview.png")

	if err := ExportPreview(path, d.Composite(), 8, true, "sample  4x4"); err != nil {
		t.Fatalf("ExportPreview: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != 32 || cfg.Height != 32+previewCaptionHeight {
		t.Errorf("size = %dx%d, want 32x%d", cfg.Width, cfg.Height, 32+previewCaptionHeight)
	}
}

func TestExportTerminalArt(t *testing.T) {
	g := NewGrid(2)
	g.Set(0, 0, RGB(255, 0, 0))
	g.Set(1, 1, RGB(0, 0, 255))

	var buf bytes.Buffer
	if err := ExportTerminalArt(&buf, g); err != nil {
		t.Fatalf("ExportTerminalArt: %v", err)
	}
	out := buf.String()
	if lines := strings.Count(out, "\n"); lines != 1 {
		t.Errorf("wrote %d lines, want 1", lines)
	}
	for _, want := range []string{"▀", "▄", "38;2;255;0;0", "38;2;0;0;255"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}
