package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const configFile = "config.toml"

type Config struct {
	SaveDirectory string   `toml:"save_directory"`
	CanvasSize    int      `toml:"canvas_size"`
	Zoom          int      `toml:"zoom"`
	PreviewZoom   int      `toml:"preview_zoom"`
	ExportScale   int      `toml:"export_scale"`
	ShowGrid      bool     `toml:"show_grid"`
	BrushSize     int      `toml:"brush_size"`
	HistoryLimit  int      `toml:"history_limit"`
	Palette       []string `toml:"palette"`
	Confirmations bool     `toml:"confirmations"`
	LogFile       string   `toml:"log_file"`
}

func defaultConfig() *Config {
	return &Config{
		SaveDirectory: "",
		CanvasSize:    DefaultCanvasSize,
		Zoom:          1,
		PreviewZoom:   8,
		ExportScale:   1,
		ShowGrid:      true,
		BrushSize:     1,
		HistoryLimit:  100,
		Palette:       append([]string(nil), DefaultPalette...),
		Confirmations: true,
	}
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pixed")
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "pixed")
}

func defaultConfigPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, configFile)
}

// loadConfig reads path over the defaults. A missing file is not an error;
// a malformed one returns the defaults together with the decode error.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()
	if path == "" {
		return config, nil
	}

	if _, err := toml.DecodeFile(path, config); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return defaultConfig(), fmt.Errorf("read config %s: %w", path, err)
	}
	config.normalize()
	return config, nil
}

// normalize clamps numeric settings and expands the save directory.
func (c *Config) normalize() {
	c.CanvasSize = clampInt(c.CanvasSize, 1, 256)
	c.Zoom = clampInt(c.Zoom, minZoom, maxZoom)
	c.PreviewZoom = clampInt(c.PreviewZoom, 1, 32)
	c.ExportScale = clampInt(c.ExportScale, 1, 32)
	c.BrushSize = clampInt(c.BrushSize, minBrushSize, maxBrushSize)
	if c.HistoryLimit < 0 {
		c.HistoryLimit = 0
	}
	c.SaveDirectory = expandPath(c.SaveDirectory)
	c.LogFile = expandPath(c.LogFile)
}

func expandPath(value string) string {
	if value == "" {
		return value
	}
	if strings.HasPrefix(value, "~") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
		}
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

// writeConfig stores c at path, creating the directory if needed.
func writeConfig(path string, c *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	var buffer bytes.Buffer
	if err := toml.NewEncoder(&buffer).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, buffer.Bytes(), 0644)
}

// initializeConfigIfNot writes the defaults to path unless a file is
// already there. It reports whether a file was created.
func initializeConfigIfNot(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	return true, writeConfig(path, defaultConfig())
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
