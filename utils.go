package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
)

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func writeClipboardText(text string) error {
	return clipboard.WriteAll(text)
}

func isRTF(text string) bool {
	return strings.HasPrefix(text, "{\\rtf") || strings.Contains(text, "\\rtf1")
}

// cleanClipboardText drops RTF control words and control characters and
// normalizes line endings.
func cleanClipboardText(text string) string {
	if text == "" {
		return text
	}
	if isRTF(text) {
		text = stripRTF(text)
	}
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' || r >= 32 {
			result.WriteRune(r)
		}
	}
	normalized := result.String()
	normalized = strings.ReplaceAll(normalized, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return normalized
}

func stripRTF(text string) string {
	var result strings.Builder
	result.Grow(len(text))
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '{' || r == '}' {
			continue
		}
		if r == '\\' {
			if i+1 < len(runes) {
				next := runes[i+1]
				if (next >= 'a' && next <= 'z') || (next >= 'A' && next <= 'Z') {
					i++
					for i < len(runes) {
						if runes[i] == ' ' || runes[i] == '\\' || runes[i] == '{' || runes[i] == '}' {
							if runes[i] == ' ' {
								i++
							}
							break
						}
						i++
					}
					i--
					continue
				} else if next == '\\' || next == '{' || next == '}' {
					result.WriteRune(next)
					i++
					continue
				}
			}
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}

// colorFromText returns the first whitespace-separated token of text that
// parses as a painted color.
func colorFromText(text string) (Color, bool) {
	for _, field := range strings.Fields(cleanClipboardText(text)) {
		field = strings.Trim(field, `"',;`)
		if c, err := ParseColor(field); err == nil && !c.IsEmpty() {
			return c, true
		}
	}
	return Transparent, false
}

// documentJSON returns the document export as a string for the clipboard.
func documentJSON(d *Document) (string, error) {
	var buf bytes.Buffer
	if err := WriteDocument(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (m *model) scanDocumentFiles() {
	m.fileList = []string{}

	dir := m.config.SaveDirectory
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			m.selectedFileIndex = -1
			return
		}
		dir = wd
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		m.selectedFileIndex = -1
		return
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			m.fileList = append(m.fileList, entry.Name())
		}
	}

	sort.Strings(m.fileList)

	if len(m.fileList) > 0 {
		m.selectedFileIndex = 0
		m.input.SetValue(m.fileList[0])
	} else {
		m.selectedFileIndex = -1
	}
}

// withExtension appends ext to name unless it already ends with it.
func withExtension(name, ext string) string {
	if strings.EqualFold(filepath.Ext(name), ext) {
		return name
	}
	return name + ext
}
