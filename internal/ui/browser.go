package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gubarz/snipmd/internal/document"
)

// ============================================================================
// Directive Browser
// ============================================================================

// entryItem is a list row with precomputed search text
type entryItem struct {
	entry      document.Entry
	label      string
	searchText string
}

func newEntryItem(e document.Entry) entryItem {
	d := e.Directive
	label := fmt.Sprintf("%4d  %-6s %s", e.Line, d.Flags.Transclusion.Mode(), d.TargetPath)
	return entryItem{
		entry:      e,
		label:      label,
		searchText: strings.ToLower(d.TargetPath + " " + d.RawOptions),
	}
}

// browserModel lists the directives of a document and previews the content
// of the one under the cursor. Content is loaded only when the cursor lands
// on an entry.
type browserModel struct {
	width     int
	height    int
	textInput textinput.Model
	preview   viewport.Model
	quitting  bool

	title    string
	entries  []entryItem
	filtered []entryItem
	cursor   int
	offset   int // list scroll offset

	// Entry currently shown in the preview, -1 when none
	previewLine    int
	previewContent string

	clipboard Clipboard
	status    string
}

// copiedMsg reports the outcome of a clipboard copy
type copiedMsg struct {
	err error
}

// copyPreview copies the previewed content off the UI goroutine
func (m browserModel) copyPreview() tea.Cmd {
	text, clip := m.previewContent, m.clipboard
	return func() tea.Msg {
		return copiedMsg{err: clip.Copy(text)}
	}
}

// newBrowserModel creates the browser for a document report
func newBrowserModel(report *document.Report) browserModel {
	ti := textinput.New()
	ti.Placeholder = "Type to filter by path or options..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	items := make([]entryItem, len(report.Entries))
	for i, e := range report.Entries {
		items[i] = newEntryItem(e)
	}

	m := browserModel{
		textInput:   ti,
		preview:     viewport.New(80, 10),
		title:       report.Document.Path,
		entries:     items,
		filtered:    items,
		previewLine: -1,
		clipboard:   systemClipboard{},
	}
	m.loadPreview()
	return m
}

// Init implements tea.Model
func (m browserModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 4
		m.resize()
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
		} else {
			m.status = "copied to clipboard"
		}
		return m, nil

	case tea.KeyMsg:
		m.status = ""
		switch msg.String() {
		case "ctrl+y":
			if m.previewLine < 0 {
				return m, nil
			}
			return m, m.copyPreview()
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "ctrl+p":
			m.moveCursor(-1)
			return m, nil
		case "down", "ctrl+n":
			m.moveCursor(1)
			return m, nil
		case "pgup", "pgdown", "ctrl+u", "ctrl+d":
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}
	}

	prevQuery := m.textInput.Value()
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	if m.textInput.Value() != prevQuery {
		m.filterEntries()
	}
	return m, cmd
}

// listHeight is the number of rows given to the directive list
func (m browserModel) listHeight() int {
	return max(min(len(m.filtered), max(m.height/3, 3)), 1)
}

func (m *browserModel) resize() {
	// title + divider + info + divider + input
	chrome := 5
	m.preview.Width = max(m.width, 20)
	m.preview.Height = max(m.height-m.listHeight()-chrome, 3)
}

// moveCursor moves the cursor by delta, clamping to valid range
func (m *browserModel) moveCursor(delta int) {
	m.cursor = clamp(m.cursor+delta, 0, max(0, len(m.filtered)-1))

	height := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+height {
		m.offset = m.cursor - height + 1
	}
	m.loadPreview()
}

// filterEntries keeps entries containing every word of the query
func (m *browserModel) filterEntries() {
	words := strings.Fields(strings.ToLower(m.textInput.Value()))

	m.filtered = m.filtered[:0:0]
	for _, item := range m.entries {
		if containsAll(item.searchText, words) {
			m.filtered = append(m.filtered, item)
		}
	}
	m.cursor, m.offset = 0, 0
	m.resize()
	m.loadPreview()
}

// loadPreview renders the entry under the cursor into the preview pane
func (m *browserModel) loadPreview() {
	if m.cursor >= len(m.filtered) {
		m.previewLine = -1
		m.previewContent = ""
		m.preview.SetContent(styles.Dim.Render("no directives"))
		return
	}

	item := m.filtered[m.cursor]
	if item.entry.Line == m.previewLine {
		return
	}
	m.previewLine = item.entry.Line

	token := item.entry.Render()
	m.previewContent = token.Content
	info := token.Info()
	if info == "" {
		info = "(no language)"
	}
	m.preview.SetContent(styles.PreviewInfo.Render(info) + "\n" + token.Content)
	m.preview.GotoTop()
}

// View implements tea.Model
func (m browserModel) View() string {
	if m.quitting {
		return ""
	}
	width := max(m.width, 40)

	var b strings.Builder
	b.WriteString(styles.PreviewHeader.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.renderList(width))
	b.WriteString(styles.Divider.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	b.WriteString(m.preview.View())
	b.WriteString("\n")
	b.WriteString(styles.Divider.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	footer := fmt.Sprintf("%d/%d  ↑↓ select  pgup/pgdown scroll  ctrl+y copy  esc quit",
		len(m.filtered), len(m.entries))
	if m.status != "" {
		footer += "  " + m.status
	}
	b.WriteString(styles.Dim.Render(footer))
	b.WriteString("\n")
	b.WriteString(m.textInput.View())
	return b.String()
}

// renderList renders the visible slice of the directive list
func (m browserModel) renderList(width int) string {
	var b strings.Builder
	end := min(m.offset+m.listHeight(), len(m.filtered))
	for i := m.offset; i < end; i++ {
		item := m.filtered[i]
		style := styles.Found
		if !item.entry.Directive.FileExists {
			style = styles.Missing
		}

		label := truncateString(item.label, width-2)
		if i == m.cursor {
			b.WriteString(styles.Cursor.Render("▶ "))
			b.WriteString(styles.WithSelection(style).Render(label))
		} else {
			b.WriteString("  ")
			b.WriteString(style.Render(label))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// ============================================================================
// Helpers
// ============================================================================

func containsAll(s string, words []string) bool {
	for _, w := range words {
		if !strings.Contains(s, w) {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// truncateString shortens s to n display cells, marking the cut with an ellipsis
func truncateString(s string, n int) string {
	if n <= 0 || lipgloss.Width(s) <= n {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > n {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// terminalIO picks the TUI's input and output. When stdout is redirected
// the browser talks to /dev/tty directly, falling back to stdin and stderr.
func terminalIO() (in, out *os.File, release func()) {
	if info, err := os.Stdout.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
		return os.Stdin, os.Stdout, func() {}
	}

	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		lipgloss.SetDefaultRenderer(lipgloss.NewRenderer(os.Stderr))
		return os.Stdin, os.Stderr, func() {}
	}
	lipgloss.SetDefaultRenderer(lipgloss.NewRenderer(tty))
	return tty, tty, func() { _ = tty.Close() }
}

// Browse opens the interactive directive browser for a document
func Browse(report *document.Report) error {
	if len(report.Entries) == 0 {
		return fmt.Errorf("no directives found in %s", report.Document.Path)
	}

	in, out, release := terminalIO()
	defer release()
	// Styles depend on the renderer chosen above
	RefreshStyles()

	p := tea.NewProgram(newBrowserModel(report), tea.WithAltScreen(), tea.WithInput(in), tea.WithOutput(out))
	_, err := p.Run()
	return err
}
