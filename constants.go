package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeFileInput
	ModeColorInput
	ModeRenameLayer
	ModeConfirm
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpOpen
	FileOpExportPNG
	FileOpExportPreview
	FileOpExportTerminal
	FileOpImportImage
)

type ConfirmAction int

const (
	ConfirmRemoveLayer ConfirmAction = iota
	ConfirmQuit
	ConfirmNewDocument
	ConfirmOverwriteFile
)

const (
	minZoom = 1
	maxZoom = 4

	opacityStep = 0.1

	// layerPanelWidth is the width of the right-hand side panel in columns.
	layerPanelWidth = 26

	// Panel layout: rows above the layer list, and the column of the
	// visibility toggle within a layer row.
	layerListTop   = 7
	eyeColumnStart = 3

	swatchWidth = 3
)
