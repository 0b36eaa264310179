package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand/v2"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"mapterm/internal/idea"
	"mapterm/internal/layout"
	"mapterm/internal/mapmodel"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

type app struct {
	title     string
	wordsFile string
	seed      uint64
	seeded    bool
	debugFile string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:          "mapterm",
		Short:        "Keyboard-driven mind maps in the terminal",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start a new map
  mapterm --title "Holiday plans"

  # Title new ideas from a word list, reproducibly
  mapterm --words ~/words.txt --seed 42`),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.seeded = cmd.Flags().Changed("seed")
			return runTUI(a)
		},
	}
	cmd.Flags().StringVar(&a.title, "title", "Central idea", "Title of the center node")
	cmd.Flags().StringVar(&a.wordsFile, "words", "", "File with one title per line for new ideas (overrides words in ~/.maptermrc)")
	cmd.Flags().Uint64Var(&a.seed, "seed", 0, "Seed for picking titles from the word list")
	cmd.Flags().StringVar(&a.debugFile, "debug", "", "Write debug logs to this file")
	return cmd
}

func runTUI(a *app) error {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if a.debugFile != "" {
		f, err := tea.LogToFile(a.debugFile, "mapterm")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	slog.SetDefault(logger)

	config := loadConfig()
	m, err := initialModel(a, config, logger)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func initialModel(a *app, config *Config, logger *slog.Logger) (model, error) {
	opts := []mapmodel.Option{mapmodel.WithLogger(logger)}

	wordsFile := a.wordsFile
	if wordsFile == "" {
		wordsFile = config.WordsFile
	}
	if wordsFile != "" {
		words, err := loadWords(wordsFile)
		if err != nil {
			return model{}, fmt.Errorf("load words: %w", err)
		}
		opts = append(opts, mapmodel.WithTitles(words))
	}
	if a.seeded {
		opts = append(opts, mapmodel.WithRandom(rand.New(rand.NewPCG(a.seed, a.seed)).Float64))
	}

	content := idea.New(&idea.Idea{ID: 1, Title: a.title})
	mm := mapmodel.New(func(tree mapmodel.IdeaTree) layout.Layout {
		return layout.Calculate(tree)
	}, opts...)
	view := newMapView(mm)
	mm.SetIdea(content)
	mm.SelectNode(content.RootID())

	return model{
		mode:     ModeNormal,
		content:  content,
		mapModel: mm,
		view:     view,
		config:   config,
	}, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureSelectionVisible()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.help {
			m.handleHelpKey(msg.String())
			return m, nil
		}
		switch m.mode {
		case ModeEditing:
			m.handleEditKey(msg)
			return m, nil
		case ModeConfirm:
			return m.handleConfirmKey(msg.String())
		default:
			return m.handleNormalKey(msg)
		}
	}
	return m, nil
}

func (m model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	m.errorMessage = ""
	m.successMessage = ""
	if !m.view.inputEnabled {
		return m, nil
	}

	switch key {
	case "q":
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	case "?":
		m.help = true
		m.helpScroll = 0
	case "h", "left", "H", "shift+left",
		"l", "right", "L", "shift+right",
		"k", "up", "K", "shift+up",
		"j", "down", "J", "shift+down":
		m.handleNavigation(key, m.getMoveSpeed(key))
	case "z":
		m.zPanMode = !m.zPanMode
	case "tab":
		m.addNode(m.mapModel.AddSubIdea)
	case "enter":
		m.addNode(m.mapModel.AddSiblingIdea)
	case "e":
		m.startEditing()
	case "d", "delete":
		id, ok := m.mapModel.Selected()
		if !ok {
			m.errorMessage = "Nothing selected"
			return m, nil
		}
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmRemoveNode
			m.confirmID = id
			return m, nil
		}
		m.removeSelected()
	case "+", "=":
		if m.view.zoom < maxZoom {
			m.mapModel.ScaleUp(keyboardSource)
		}
	case "-", "_":
		if m.view.zoom > minZoom {
			m.mapModel.ScaleDown(keyboardSource)
		}
	case "u":
		m.undo()
	case "U":
		m.redo()
	case "y":
		m.copySelectedTitle()
	case "p":
		m.pasteAsChild()
	case "S":
		m.export(ExportPNG)
	case "T":
		m.export(ExportVisualTXT)
	case "esc":
		m.zPanMode = false
	}
	return m, nil
}

// handleEditKey drives the inline title editor. Enter breaks the line,
// Ctrl+S commits and Esc abandons the edit.
func (m *model) handleEditKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEscape:
		m.finishEditing(false)
	case tea.KeyCtrlS:
		m.finishEditing(true)
	case tea.KeyLeft:
		if m.editCursorPos > 0 {
			m.editCursorPos--
		}
	case tea.KeyRight:
		if m.editCursorPos < len(m.editText) {
			m.editCursorPos++
		}
	case tea.KeyHome:
		m.editCursorPos = 0
	case tea.KeyEnd:
		m.editCursorPos = len(m.editText)
	case tea.KeyEnter:
		m.insertEditRunes([]rune{'\n'})
	case tea.KeySpace:
		m.insertEditRunes([]rune{' '})
	case tea.KeyBackspace:
		if m.editCursorPos > 0 {
			m.editText = append(m.editText[:m.editCursorPos-1], m.editText[m.editCursorPos:]...)
			m.editCursorPos--
		}
	case tea.KeyDelete:
		if m.editCursorPos < len(m.editText) {
			m.editText = append(m.editText[:m.editCursorPos], m.editText[m.editCursorPos+1:]...)
		}
	case tea.KeyRunes:
		m.insertEditRunes(msg.Runes)
	}
}

func (m *model) insertEditRunes(runes []rune) {
	text := make([]rune, 0, len(m.editText)+len(runes))
	text = append(text, m.editText[:m.editCursorPos]...)
	text = append(text, runes...)
	text = append(text, m.editText[m.editCursorPos:]...)
	m.editText = text
	m.editCursorPos += len(runes)
}

func (m model) handleConfirmKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmRemoveNode:
			if id, ok := m.mapModel.Selected(); ok && id == m.confirmID {
				m.removeSelected()
			}
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
	}
	return m, nil
}

func (m *model) handleHelpKey(key string) {
	switch key {
	case "esc", "q", "?":
		m.help = false
		m.helpScroll = 0
	case "j", "down":
		maxScroll := max(len(helpLines)-max(m.height-1, 1), 0)
		if m.helpScroll < maxScroll {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	}
}

var (
	modeStyle    = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	hintStyle    = lipgloss.NewStyle().Faint(true)
	helpTitle    = lipgloss.NewStyle().Bold(true).Underline(true)
)

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	state := noRenderState()
	if n, ok := m.view.selectedNode(); ok {
		state.selected = n.ID
	}
	if m.mode == ModeEditing {
		state.editID = m.editID
		state.editText = m.editText
		state.editCursor = m.editCursorPos
	}
	originX, originY := m.origin()
	lines := NewCanvas(m.view.nodes, m.view.zoom).Render(max(m.width, 1), max(m.height-1, 1), originX, originY, state)

	var result strings.Builder
	result.WriteString(strings.Join(lines, "\n"))
	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

func (m model) statusLine() string {
	status := modeStyle.Render(m.modeString())
	switch m.mode {
	case ModeEditing:
		return status + " " + hintStyle.Render("←/→=move cursor, Enter=newline, Ctrl+S=save, Esc=cancel")
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmRemoveNode:
			message = fmt.Sprintf("Remove %q and everything under it? (y/n)", m.content.Title(m.confirmID))
		case ConfirmQuit:
			message = "Quit? The map is not saved. (y/n)"
		}
		return status + " " + message
	}

	if n, ok := m.view.selectedNode(); ok {
		status += fmt.Sprintf(" Selected: %s", firstLine(n.Title))
	}
	if m.view.zoom != 0 {
		status += fmt.Sprintf(" | Zoom: %d%%", int(zoomFactor(m.view.zoom)*100))
	}
	switch {
	case m.errorMessage != "":
		status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
	case m.successMessage != "":
		status += " | " + successStyle.Render(m.successMessage)
	default:
		status += " | " + hintStyle.Render("? for help | q to quit")
	}
	return status
}

func (m model) modeString() string {
	switch {
	case m.mode == ModeEditing:
		return "EDIT"
	case m.mode == ModeConfirm:
		return "CONFIRM"
	case m.zPanMode:
		return "PAN"
	default:
		return "NORMAL"
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

var helpLines = []string{
	"mapterm Help",
	"============",
	"",
	"Navigation:",
	"-----------",
	"  h/←  l/→         Move the selection left / right",
	"  k/↑  j/↓         Select the previous / next sibling",
	"  z                Toggle pan mode (arrows move the view instead)",
	"  Shift+h/j/k/l    Pan faster in pan mode",
	"",
	"Ideas:",
	"------",
	"  Tab              Add a child to the selected idea",
	"  Enter            Add a sibling to the selected idea",
	"  e                Edit the selected title",
	"  d/Delete         Remove the selected idea and everything under it",
	"  y                Copy the selected title",
	"  p                Paste the clipboard as a new child",
	"",
	"Editing:",
	"--------",
	"  ←/→              Move cursor",
	"  Enter            New line",
	"  Ctrl+S           Save title",
	"  Esc              Cancel",
	"",
	"View:",
	"-----",
	"  +/-              Spread out / pull in the map",
	"  S                Export as PNG image",
	"  T                Export as text",
	"",
	"General:",
	"--------",
	"  u                Undo last change",
	"  U                Redo last undone change",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m model) helpView() string {
	visibleHeight := max(m.height-1, 1)
	startLine := min(m.helpScroll, max(len(helpLines)-visibleHeight, 0))
	endLine := min(startLine+visibleHeight, len(helpLines))

	visible := make([]string, 0, endLine-startLine)
	for i, line := range helpLines[startLine:endLine] {
		if startLine+i == 0 {
			line = helpTitle.Render(line)
		}
		visible = append(visible, line)
	}

	result := strings.Join(visible, "\n")
	result += "\n" + hintStyle.Render(fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines)))
	return result
}
