package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	config, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	def := defaultConfig()
	if config.CanvasSize != def.CanvasSize || config.HistoryLimit != def.HistoryLimit || !config.Confirmations {
		t.Errorf("config = %+v, want defaults", config)
	}
	if len(config.Palette) != len(DefaultPalette) {
		t.Errorf("palette has %d colors, want %d", len(config.Palette), len(DefaultPalette))
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
canvas_size = 32
zoom = 9
preview_zoom = 0
brush_size = 3
history_limit = 20
show_grid = false
confirmations = false
palette = ["#112233", "#445566"]
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	tests := []struct {
		name      string
		got, want int
	}{
		{"canvas_size", config.CanvasSize, 32},
		{"zoom clamped", config.Zoom, maxZoom},
		{"preview_zoom clamped", config.PreviewZoom, 1},
		{"brush_size", config.BrushSize, 3},
		{"history_limit", config.HistoryLimit, 20},
		{"palette", len(config.Palette), 2},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
	if config.ShowGrid || config.Confirmations {
		t.Errorf("booleans not overridden: %+v", config)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("canvas_size = = 3"), 0644); err != nil {
		t.Fatal(err)
	}
	config, err := loadConfig(path)
	if err == nil {
		t.Fatal("malformed config accepted")
	}
	if config == nil || config.CanvasSize != DefaultCanvasSize {
		t.Errorf("config = %+v, want defaults", config)
	}
}

func TestInitializeConfigIfNot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pixed", "config.toml")

	created, err := initializeConfigIfNot(path)
	if err != nil || !created {
		t.Fatalf("first init = %v, %v", created, err)
	}
	created, err = initializeConfigIfNot(path)
	if err != nil || created {
		t.Fatalf("second init = %v, %v", created, err)
	}

	config, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if config.PreviewZoom != 8 || config.HistoryLimit != 100 {
		t.Errorf("written defaults read back as %+v", config)
	}
}

func TestGetSavePath(t *testing.T) {
	dir := t.TempDir()
	config := &Config{SaveDirectory: dir}

	if got := config.GetSavePath("art.json"); got != filepath.Join(dir, "art.json") {
		t.Errorf("GetSavePath = %q", got)
	}
	abs := filepath.Join(t.TempDir(), "x.png")
	if got := config.GetSavePath(abs); got != abs {
		t.Errorf("absolute path rewritten to %q", got)
	}
	if got := (&Config{}).GetSavePath("a.json"); got != "a.json" {
		t.Errorf("no save directory gave %q", got)
	}
}
