package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/turnkey/metadata"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	issueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type group struct {
	title string
	names []string
}

type inspectModel struct {
	filename  string
	groups    []group
	issues    []metadata.Issue
	hash      uint64
	filter    textinput.Model
	tab       int
	selected  int
	filtering bool
}

func newInspectModel(filename string, meta *metadata.Metadata) *inspectModel {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter"
	ti.Width = 40

	commands := meta.LoadCommands()
	for i, c := range commands {
		commands[i] = fmt.Sprintf("%d. %s", i+1, c)
	}

	return &inspectModel{
		filename: filename,
		groups: []group{
			{title: "Bundled", names: meta.BundledLibraries()},
			{title: "System", names: meta.SystemLibraries()},
			{title: "Load order", names: commands},
		},
		issues: meta.Check(),
		hash:   meta.Hash(),
		filter: ti,
	}
}

func (m *inspectModel) Init() tea.Cmd {
	return nil
}

// visible returns the names of the current group matching the filter.
func (m *inspectModel) visible() []string {
	names := m.groups[m.tab].names
	q := strings.ToLower(m.filter.Value())
	if q == "" {
		return names
	}
	var out []string
	for _, n := range names {
		if strings.Contains(strings.ToLower(n), q) {
			out = append(out, n)
		}
	}
	return out
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.filtering {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.filtering = false
			m.filter.Blur()
			m.filter.SetValue("")
		case "enter":
			m.filtering = false
			m.filter.Blur()
		default:
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.clampSelection()
			return m, cmd
		}
		m.clampSelection()
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "tab", "right", "l":
		m.tab = (m.tab + 1) % len(m.groups)
		m.selected = 0

	case "shift+tab", "left", "h":
		m.tab = (m.tab + len(m.groups) - 1) % len(m.groups)
		m.selected = 0

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.selected < len(m.visible())-1 {
			m.selected++
		}

	case "/":
		m.filtering = true
		return m, m.filter.Focus()

	case "esc":
		m.filter.SetValue("")
		m.clampSelection()
	}

	return m, nil
}

func (m *inspectModel) clampSelection() {
	if n := len(m.visible()); m.selected >= n {
		m.selected = max(n-1, 0)
	}
}

func (m *inspectModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("TurnKey Metadata"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString(helpStyle.Render(fmt.Sprintf("  hash %016x", m.hash)))
	b.WriteString("\n\n")

	for i, g := range m.groups {
		label := fmt.Sprintf("%s (%d)", g.title, len(g.names))
		if i == m.tab {
			b.WriteString(activeTabStyle.Render(label))
		} else {
			b.WriteString(tabStyle.Render(label))
		}
	}
	b.WriteString("\n\n")

	names := m.visible()
	if len(names) == 0 {
		b.WriteString(helpStyle.Render("  (none)"))
		b.WriteString("\n")
	}
	for i, n := range names {
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + n))
		} else {
			b.WriteString("  " + nameStyle.Render(n))
		}
		b.WriteString("\n")
	}

	if m.filtering || m.filter.Value() != "" {
		b.WriteString("\n")
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}

	if len(m.issues) > 0 {
		b.WriteString("\n")
		for _, issue := range m.issues {
			b.WriteString(issueStyle.Render("! " + issue.String()))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.filtering {
		b.WriteString(helpStyle.Render("enter apply • esc clear"))
	} else {
		b.WriteString(helpStyle.Render("tab/←/→ group • ↑/↓ select • / filter • q quit"))
	}

	return b.String()
}

func runInspector(filename string, meta *metadata.Metadata) error {
	p := tea.NewProgram(newInspectModel(filename, meta), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
