package main

import (
	"os/exec"
	"runtime"
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

func isHTML(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "<") &&
		(strings.Contains(text, "<html") || strings.Contains(text, "<body") || strings.Contains(text, "<div"))
}

func extractTextFromHTML(html string) string {
	var result strings.Builder
	result.Grow(len(html))
	inTag := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			result.WriteRune(r)
		}
	}
	return strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
		"&quot;", "\"",
		"&#39;", "'",
		"&nbsp;", " ",
	).Replace(result.String())
}

// cleanClipboardText turns whatever the clipboard holds into a node title:
// RTF and HTML markup is dropped, control characters removed, line endings
// normalized and surrounding blank space trimmed.
func cleanClipboardText(text string) string {
	if text == "" {
		return text
	}
	text = stripRTF(text)
	if isHTML(text) {
		text = extractTextFromHTML(text)
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\t' {
			result.WriteRune(' ')
		} else if r == '\n' || r >= 32 {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}

func stripRTF(text string) string {
	if !strings.HasPrefix(text, "{\\rtf") && !strings.Contains(text, "\\rtf") {
		return text
	}
	var result strings.Builder
	result.Grow(len(text))
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '{' || r == '}' {
			continue
		}
		if r != '\\' {
			result.WriteRune(r)
			continue
		}
		if i+1 >= len(runes) {
			continue
		}
		next := runes[i+1]
		switch {
		case (next >= 'a' && next <= 'z') || (next >= 'A' && next <= 'Z'):
			// Control word: skip to its delimiter, swallowing one trailing space.
			start := i + 1
			i++
			for i < len(runes) && runes[i] != ' ' && runes[i] != '\\' && runes[i] != '{' && runes[i] != '}' {
				i++
			}
			if word := strings.TrimRight(string(runes[start:i]), "-0123456789"); word == "par" || word == "line" {
				result.WriteRune('\n')
			}
			if i >= len(runes) || runes[i] != ' ' {
				i--
			}
		case next == '\\' || next == '{' || next == '}' || next == '\n' || next == '\r' || next == '\t':
			result.WriteRune(next)
			i++
		}
	}
	return result.String()
}

func (m *model) copySelectedTitle() {
	id, ok := m.mapModel.Selected()
	if !ok {
		m.errorMessage = "Nothing selected"
		return
	}
	if err := clipboard.WriteAll(m.content.Title(id)); err != nil {
		m.errorMessage = "Copy failed: " + err.Error()
		return
	}
	m.successMessage = "Copied title"
}

// pasteAsChild adds a child to the selected node titled with the clipboard
// contents.
func (m *model) pasteAsChild() {
	text, err := readClipboardText()
	if err != nil {
		m.errorMessage = "Paste failed: " + err.Error()
		return
	}
	title := cleanClipboardText(text)
	if title == "" {
		m.errorMessage = "Clipboard is empty"
		return
	}
	parent := m.selectedOrCenter()
	m.view.lastCreated = 0
	if err := m.content.AddSubIdea(parent, title); err != nil {
		m.errorMessage = err.Error()
		return
	}
	if m.view.lastCreated != 0 {
		m.mapModel.SelectNode(m.view.lastCreated)
	}
	m.successMessage = "Pasted"
}
