package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DigitalPals/omarchy-cybex/internal/installer"
)

type runState int

const (
	runRunning runState = iota
	runSucceeded
	runFailed
)

type runLineMsg struct {
	line string
}

type runDoneMsg struct {
	exitCode int
	err      error // set only when the process could not be spawned
}

var (
	modalFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	modalHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#cba6f7"))

	cmdStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	okStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("82"))

	errStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	modalHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// runModal owns one installer run from launch to dismissal. It is the
// only component that talks to the process runner; persistence is left
// to the caller, which receives the run's success on dismissal.
type runModal struct {
	scriptDir string
	optionIDs []string
	uninstall bool

	state    runState
	exitCode int

	lines []string
	vp    viewport.Model
	sp    spinner.Model

	width  int
	height int
}

func newRunModal(scriptDir string, optionIDs []string, uninstall bool, width, height int) runModal {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := runModal{
		scriptDir: scriptDir,
		optionIDs: optionIDs,
		uninstall: uninstall,
		sp:        sp,
		vp:        viewport.New(0, 0),
	}
	m.setSize(width, height)

	// Command preview, rendered before the process starts.
	argv := installer.BuildCommand(scriptDir, optionIDs, uninstall)
	m.appendLine(cmdStyle.Render("$ " + strings.Join(argv, " ")))
	m.appendLine("")
	return m
}

func (m *runModal) setSize(width, height int) {
	m.width = width
	m.height = height

	vpWidth := width - 6
	if vpWidth < 20 {
		vpWidth = 20
	}
	vpHeight := height - 8
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.vp.Width = vpWidth
	m.vp.Height = vpHeight
	m.refreshContent()
}

func (m *runModal) appendLine(line string) {
	m.lines = append(m.lines, line)
	m.refreshContent()
}

func (m *runModal) refreshContent() {
	m.vp.SetContent(strings.Join(m.lines, "\n"))
	m.vp.GotoBottom()
}

func (m runModal) finished() bool {
	return m.state != runRunning
}

func (m runModal) succeeded() bool {
	return m.state == runSucceeded
}

// start kicks off the spinner and the installer process.
func (m runModal) start() tea.Cmd {
	return tea.Batch(m.sp.Tick, runCmd(m.scriptDir, m.optionIDs, m.uninstall))
}

// runCmd executes the installer in the background, streaming each output
// line to the program as it arrives.
func runCmd(scriptDir string, optionIDs []string, uninstall bool) tea.Cmd {
	return func() tea.Msg {
		code, err := installer.Run(scriptDir, optionIDs, uninstall, func(line string) {
			if program != nil {
				program.Send(runLineMsg{line: line})
			}
		})
		return runDoneMsg{exitCode: code, err: err}
	}
}

func (m runModal) update(msg tea.Msg) (runModal, tea.Cmd) {
	switch msg := msg.(type) {
	case runLineMsg:
		m.appendLine(msg.line)
		return m, nil
	case runDoneMsg:
		return m.handleDone(msg), nil
	case spinner.TickMsg:
		if m.state != runRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.sp, cmd = m.sp.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m runModal) handleDone(msg runDoneMsg) runModal {
	m.appendLine("")
	switch {
	case msg.err != nil:
		m.state = runFailed
		m.exitCode = msg.exitCode
		m.appendLine(errStyle.Render(fmt.Sprintf("Error: %v", msg.err)))
	case msg.exitCode == 0:
		m.state = runSucceeded
		m.appendLine(okStyle.Render(m.verb() + " completed successfully!"))
	default:
		m.state = runFailed
		m.exitCode = msg.exitCode
		m.appendLine(errStyle.Render(fmt.Sprintf("%s failed (exit code: %d)", m.verb(), msg.exitCode)))
	}
	return m
}

func (m runModal) verb() string {
	if m.uninstall {
		return "Uninstall"
	}
	return "Installation"
}

func (m runModal) view() string {
	action := "Installing"
	if m.uninstall {
		action = "Uninstalling"
	}
	header := modalHeaderStyle.Render(fmt.Sprintf("%s: %s", action, strings.Join(m.optionIDs, ", ")))

	var footer string
	if m.state == runRunning {
		footer = m.sp.View() + modalHintStyle.Render(" running...")
	} else {
		footer = modalHintStyle.Render("press enter to close")
	}

	body := lipgloss.JoinVertical(lipgloss.Left, header, "", m.vp.View(), "", footer)
	return modalFrameStyle.Width(m.vp.Width + 2).Render(body)
}
