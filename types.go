package main

import (
	"github.com/charmbracelet/bubbles/textinput"
	"go.uber.org/zap"
)

type model struct {
	width             int
	height            int
	cursorX           int
	cursorY           int
	panX              int
	panY              int
	zoom              int
	showGrid          bool
	penDown           bool
	mouseDown         bool
	editor            *Editor
	config            *Config
	log               *zap.Logger
	mode              Mode
	help              bool
	helpScroll        int
	filename          string
	input             textinput.Model
	fileList          []string
	selectedFileIndex int
	fileOp            FileOperation
	confirmAction     ConfirmAction
	confirmLayer      int
	pendingPath       string
	swatch            int
	errorMessage      string
	successMessage    string
}
