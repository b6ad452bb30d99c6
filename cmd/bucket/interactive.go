package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	wasmbucket "github.com/wippyai/wasm-bucket"
	"github.com/wippyai/wasm-bucket/bucket"
	"github.com/wippyai/wasm-bucket/inspect"
	"github.com/wippyai/wasm-bucket/manifest"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	moduleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	okStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateList modelState = iota
	stateInspect
)

type interactiveModel struct {
	err       error
	root      string
	inv       *bucket.Inventory
	statuses  map[string]manifest.Status
	report    *inspect.Report
	reportMod string
	reportErr error
	filter    textinput.Model
	filtering bool
	selected  int
	state     modelState
}

func newInteractiveModel(root string) *interactiveModel {
	filter := textinput.New()
	filter.Placeholder = "filter"
	filter.CharLimit = 64
	return &interactiveModel{
		root:   root,
		filter: filter,
		state:  stateList,
	}
}

type loadedMsg struct {
	err      error
	inv      *bucket.Inventory
	statuses map[string]manifest.Status
}

type reportMsg struct {
	err    error
	name   string
	report *inspect.Report
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadBucket
}

func (m *interactiveModel) loadBucket() tea.Msg {
	ctx := context.Background()

	b, err := bucket.Open(m.root)
	if err != nil {
		return loadedMsg{err: err}
	}
	inv, err := b.Scan(ctx)
	if err != nil {
		return loadedMsg{err: err}
	}

	// Sync status is best effort; a bucket without a manifest still lists.
	statuses := make(map[string]manifest.Status)
	if mf, err := manifest.Load(b.Root()); err == nil {
		if changes, err := mf.Diff(ctx, inv); err == nil {
			for _, c := range changes {
				statuses[c.Name] = c.Status
			}
		}
	}

	return loadedMsg{inv: inv, statuses: statuses}
}

func (m *interactiveModel) inspectModule(mod wasmbucket.Module) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(mod.Binary.Path)
		if err != nil {
			return reportMsg{err: err, name: mod.Name}
		}
		report, err := inspect.Inspect(data)
		return reportMsg{err: err, name: mod.Name, report: report}
	}
}

func (m *interactiveModel) visible() []wasmbucket.Module {
	if m.inv == nil {
		return nil
	}
	needle := strings.ToLower(m.filter.Value())
	if needle == "" {
		return m.inv.Modules
	}
	var out []wasmbucket.Module
	for _, mod := range m.inv.Modules {
		if strings.Contains(strings.ToLower(mod.Name), needle) {
			out = append(out, mod)
		}
	}
	return out
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.err = msg.err
		m.inv = msg.inv
		m.statuses = msg.statuses
		return m, nil

	case reportMsg:
		m.reportErr = msg.err
		m.report = msg.report
		m.reportMod = msg.name
		m.state = stateInspect
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			switch msg.String() {
			case "enter", "esc":
				m.filtering = false
				m.filter.Blur()
				m.selected = 0
				return m, nil
			default:
				var cmd tea.Cmd
				m.filter, cmd = m.filter.Update(msg)
				m.selected = 0
				return m, cmd
			}
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.state == stateInspect {
				m.state = stateList
				return m, nil
			}
			if m.filter.Value() != "" {
				m.filter.SetValue("")
				m.selected = 0
			}
			return m, nil

		case "up", "k":
			if m.state == stateList && m.selected > 0 {
				m.selected--
			}
			return m, nil

		case "down", "j":
			if m.state == stateList && m.selected < len(m.visible())-1 {
				m.selected++
			}
			return m, nil

		case "/":
			if m.state == stateList {
				m.filtering = true
				m.filter.Focus()
			}
			return m, nil

		case "r":
			if m.state == stateList {
				return m, m.loadBucket
			}
			return m, nil

		case "enter":
			if m.state == stateInspect {
				m.state = stateList
				return m, nil
			}
			mods := m.visible()
			if m.selected < len(mods) && mods[m.selected].Binary.Exists() {
				return m, m.inspectModule(mods[m.selected])
			}
			return m, nil
		}
	}

	return m, nil
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n" +
			helpStyle.Render("q: quit")
	}
	if m.inv == nil {
		return helpStyle.Render("loading bucket...")
	}
	if m.state == stateInspect {
		return m.viewInspect()
	}
	return m.viewList()
}

func (m *interactiveModel) viewList() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("wasm-bucket " + m.root))
	b.WriteString("\n\n")

	mods := m.visible()
	if len(mods) == 0 {
		b.WriteString(helpStyle.Render("no modules"))
		b.WriteString("\n")
	}

	for i, mod := range mods {
		line := fmt.Sprintf("%-24s %s", mod.Name, m.badge(mod))
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + moduleStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if len(m.inv.Issues) > 0 {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render(fmt.Sprintf("%d layout issue(s)", len(m.inv.Issues))))
		b.WriteString("\n")
		for _, issue := range m.inv.Issues {
			b.WriteString(warnStyle.Render("  " + issue.String()))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.filtering {
		b.WriteString(m.filter.View())
	} else {
		b.WriteString(helpStyle.Render("↑/↓: select • enter: inspect • /: filter • r: rescan • q: quit"))
	}
	return b.String()
}

func (m *interactiveModel) badge(mod wasmbucket.Module) string {
	if !mod.Complete() {
		return errorStyle.Render("incomplete")
	}
	if status, ok := m.statuses[mod.Name]; ok && status != manifest.StatusInSync {
		return warnStyle.Render(status.String())
	}
	return okStyle.Render("ok")
}

func (m *interactiveModel) viewInspect() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("module " + m.reportMod))
	b.WriteString("\n\n")

	if m.reportErr != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("inspect failed: %v", m.reportErr)))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("esc: back • q: quit"))
		return b.String()
	}

	r := m.report
	b.WriteString(detailStyle.Render(fmt.Sprintf("profile: %s", r.Profile())))
	b.WriteString("\n")

	if !r.Component {
		b.WriteString(detailStyle.Render(fmt.Sprintf("functions: %d", r.FuncCount)))
		b.WriteString("\n\n")

		if len(r.Imports) > 0 {
			b.WriteString("imports:\n")
			for _, imp := range r.Imports {
				b.WriteString(fmt.Sprintf("  %s %s.%s\n", imp.Kind, imp.Module, imp.Name))
			}
		}
		if len(r.Exports) > 0 {
			b.WriteString("exports:\n")
			for _, exp := range r.Exports {
				b.WriteString(fmt.Sprintf("  %s %s\n", exp.Kind, exp.Name))
			}
		}
		if len(r.Customs) > 0 {
			b.WriteString("custom sections: " + strings.Join(r.Customs, ", ") + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("esc: back • q: quit"))
	return b.String()
}

func runInteractive(root string) error {
	p := tea.NewProgram(newInteractiveModel(root), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
