// Package tui implements the interactive installer screen: a selectable
// option list, a status bar, and a modal that runs the install script
// while streaming its output.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DigitalPals/omarchy-cybex/internal/catalog"
	"github.com/DigitalPals/omarchy-cybex/internal/state"
)

const statusReady = "Ready - Select options to install"

var (
	categoryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	rowStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	cursorRowStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(lipgloss.Color("170")).
			Bold(true)

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	checkedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	installedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	installingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	failedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	rebootStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Padding(0, 1)

	warnStatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)
)

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	SelectAll   key.Binding
	DeselectAll key.Binding
	Install     key.Binding
	Uninstall   key.Binding
	Dismiss     key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "enter"),
	),
	SelectAll: key.NewBinding(
		key.WithKeys("a"),
	),
	DeselectAll: key.NewBinding(
		key.WithKeys("d"),
	),
	Install: key.NewBinding(
		key.WithKeys("i"),
	),
	Uninstall: key.NewBinding(
		key.WithKeys("u"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("enter", "esc", "q"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
	),
}

type model struct {
	scriptDir string
	cat       *catalog.Catalog
	store     *state.Store

	items  optionList
	cursor int

	status     string
	statusWarn bool

	modal        *runModal
	rebootNotice bool
	quitting     bool

	width  int
	height int
}

func newModel(scriptDir string, cat *catalog.Catalog, store *state.Store) model {
	return model{
		scriptDir: scriptDir,
		cat:       cat,
		store:     store,
		items:     newOptionList(cat, store.Load()),
		status:    statusReady,
	}
}

func (m model) Init() tea.Cmd {
	return tea.SetWindowTitle("Omarchy Cybex Installer")
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.modal != nil {
			m.modal.setSize(msg.Width, msg.Height)
		}
		return m, nil
	case runLineMsg, runDoneMsg:
		if m.modal != nil {
			next, cmd := m.modal.update(msg)
			m.modal = &next
			return m, cmd
		}
		return m, nil
	case tea.KeyMsg:
		if m.modal != nil {
			return m.updateModal(msg)
		}
		return m.updateMain(msg)
	default:
		// Spinner ticks and the like belong to the modal.
		if m.modal != nil {
			next, cmd := m.modal.update(msg)
			m.modal = &next
			return m, cmd
		}
	}
	return m, nil
}

// updateModal handles keys while the run modal is up. Input is ignored
// entirely while the run is in flight: the install script may be making
// non-idempotent system changes, so mid-run cancellation is disallowed.
func (m model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.modal.finished() {
		return m, nil
	}
	if key.Matches(msg, keys.Dismiss) {
		modal := m.modal
		m.modal = nil
		m.applyRunResult(modal.optionIDs, modal.uninstall, modal.succeeded())
	}
	return m, nil
}

// applyRunResult is the single place run outcomes reach persistent
// state. The run is treated as atomic: on success every requested ID is
// marked, on failure none are.
func (m *model) applyRunResult(ids []string, uninstall, success bool) {
	if !success {
		for _, id := range ids {
			m.items.setStatus(id, statusFailed)
		}
		if uninstall {
			m.setStatus("Uninstall failed", true)
		} else {
			m.setStatus("Installation failed", true)
		}
		return
	}

	var saveErr error
	for _, id := range ids {
		if uninstall {
			if err := m.store.MarkUninstalled(id); err != nil && saveErr == nil {
				saveErr = err
			}
			m.items.markUninstalled(id)
		} else {
			if err := m.store.MarkInstalled(id); err != nil && saveErr == nil {
				saveErr = err
			}
			m.items.markInstalled(id)
			if opt, ok := m.cat.ByID(id); ok && opt.RequiresReboot {
				m.rebootNotice = true
			}
		}
	}
	verb := "Installed"
	if uninstall {
		verb = "Uninstalled"
	}
	if saveErr != nil {
		m.setStatus(fmt.Sprintf("%s %d option(s), but saving state failed: %v", verb, len(ids), saveErr), true)
		return
	}
	m.setStatus(fmt.Sprintf("%s %d option(s)", verb, len(ids)), false)
}

func (m model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.items.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Toggle):
		m.items.toggle(m.items.items[m.cursor].opt.ID)
		m.refreshSelectionStatus()
	case key.Matches(msg, keys.SelectAll):
		m.items.selectAll(true)
		m.refreshSelectionStatus()
	case key.Matches(msg, keys.DeselectAll):
		m.items.deselectAll()
		m.refreshSelectionStatus()
	case key.Matches(msg, keys.Install):
		return m.startRun(false)
	case key.Matches(msg, keys.Uninstall):
		return m.startRun(true)
	}
	return m, nil
}

// startRun opens the run modal for the current selection. An empty
// selection never spawns a process.
func (m model) startRun(uninstall bool) (tea.Model, tea.Cmd) {
	ids := m.items.selectedIDs()
	if len(ids) == 0 {
		m.setStatus("No options selected", true)
		return m, nil
	}

	verb := "Installing"
	if uninstall {
		verb = "Uninstalling"
	}
	m.setStatus(fmt.Sprintf("%s %d option(s)...", verb, len(ids)), false)

	for _, id := range ids {
		m.items.setStatus(id, statusInstalling)
	}

	modal := newRunModal(m.scriptDir, ids, uninstall, m.width, m.height)
	m.modal = &modal
	return m, modal.start()
}

func (m *model) setStatus(text string, warn bool) {
	m.status = text
	m.statusWarn = warn
}

func (m *model) refreshSelectionStatus() {
	if n := m.items.selectedCount(); n > 0 {
		m.setStatus(fmt.Sprintf("%d option(s) selected", n), false)
	} else {
		m.setStatus(statusReady, false)
	}
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	if m.modal != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.modal.view())
	}

	var b strings.Builder
	b.WriteString(renderBanner())
	b.WriteString("\n\n")
	b.WriteString(m.viewOptions())
	b.WriteString("\n")

	statusStyle := statusBarStyle
	if m.statusWarn {
		statusStyle = warnStatusStyle
	}
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space toggle • a all • d none • i install • u uninstall • q quit"))
	return b.String()
}

func (m model) viewOptions() string {
	var b strings.Builder
	lastCategory := ""
	for i, item := range m.items.items {
		if item.opt.Category != lastCategory {
			if lastCategory != "" {
				b.WriteString("\n")
			}
			b.WriteString(categoryStyle.Render(item.opt.Category))
			b.WriteString("\n")
			lastCategory = item.opt.Category
		}
		b.WriteString(m.viewRow(i, item))
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) viewRow(i int, item optionItem) string {
	checkbox := "[ ]"
	if item.selected {
		checkbox = checkedStyle.Render("[x]")
	}

	var status string
	switch item.status {
	case statusInstalled:
		status = installedStyle.Render("OK")
	case statusInstalling:
		status = installingStyle.Render("...")
	case statusFailed:
		status = failedStyle.Render("FAIL")
	}

	reboot := ""
	if item.opt.RequiresReboot {
		reboot = " " + rebootStyle.Render("[reboot]")
	}

	line := fmt.Sprintf("%s %-18s %s%s  %s",
		checkbox, item.opt.Name, descStyle.Render(item.opt.Description), reboot, status)

	if i == m.cursor {
		return cursorRowStyle.Render("> " + line)
	}
	return rowStyle.Render("  " + line)
}

var program *tea.Program

// Run starts the installer UI and blocks until the user quits.
func Run(scriptDir string, cat *catalog.Catalog, store *state.Store) error {
	m := newModel(scriptDir, cat, store)
	p := tea.NewProgram(m, tea.WithAltScreen())
	program = p

	final, err := p.Run()
	if err != nil {
		return err
	}

	if fm, ok := final.(model); ok && fm.rebootNotice {
		fmt.Println()
		fmt.Println("\033[1;33m⚠\033[0m  Some installed options require a reboot to take effect.")
		fmt.Println()
	}
	return nil
}
