// Package tui provides a Bubble Tea terminal user interface for browsing
// the material sets of a texture library.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/pbrset/internal/config"
	"github.com/handiism/pbrset/internal/model"
	"github.com/handiism/pbrset/internal/naming"
	"github.com/handiism/pbrset/internal/scan"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))
)

// workflowStyles colours the workflow column of the set list.
var workflowStyles = map[model.Workflow]lipgloss.Style{
	model.WorkflowMetalness:  lipgloss.NewStyle().Foreground(lipgloss.Color("#C0C0C0")),
	model.WorkflowSpecular:   lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4")),
	model.WorkflowDielectric: lipgloss.NewStyle().Foreground(lipgloss.Color("#F8B500")),
}

// visibleSets is the number of set rows shown at once.
const visibleSets = 12

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateScanning
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   scan.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	sets      []*model.MaterialSet
	err       error

	root   string
	ctx    context.Context
	cancel context.CancelFunc

	manager *scan.Manager
	events  chan scan.ProgressEvent

	resolvedSets int32
	failedSets   int32
	totalSets    int32

	cursor int
	offset int

	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model. A nil settings uses the defaults.
func NewModel(settings *config.Settings) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	ti := textinput.New()
	ti.Placeholder = "/path/to/textures"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent when scan progress updates.
	ProgressMsg struct {
		Event scan.ProgressEvent
	}

	// ScanDoneMsg is sent when discovery and resolution complete.
	ScanDoneMsg struct {
		Sets     []*model.MaterialSet
		Resolved int32
		Failed   int32
		Total    int32
		Err      error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateScanning {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.textInput.Value()) != "" {
				m.root = strings.TrimSpace(m.textInput.Value())
				return m.startScan()
			}

		case "alt+a", "alt+d", "alt+s", "alt+v":
			if m.state == StateInput {
				m.toggle(strings.TrimPrefix(msg.String(), "alt+"))
				return m, nil
			}

		case "up", "k":
			if m.state == StateComplete && m.cursor > 0 {
				m.cursor--
				m.offset = min(m.offset, m.cursor)
			}

		case "down", "j":
			if m.state == StateComplete && m.cursor < len(m.sets)-1 {
				m.cursor++
				if m.cursor >= m.offset+visibleSets {
					m.offset = m.cursor - visibleSets + 1
				}
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				if m.root != "" && m.state == StateComplete {
					// Rescan the same root.
					return m.startScan()
				}
				m.reset()
				return m, textinput.Blink
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		if m.state == StateScanning {
			cmds = append(cmds, waitForEvent(m.events))
		}
		if msg.Event.Level == scan.LevelVerbose && !m.verbose {
			break
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		if len(m.logs) > 10 {
			m.logs = m.logs[len(m.logs)-10:]
		}

	case ScanDoneMsg:
		m.resolvedSets = msg.Resolved
		m.failedSets = msg.Failed
		m.totalSets = msg.Total
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.sets = msg.Sets
			m.cursor, m.offset = 0, 0
			m.state = StateComplete
		}

	case TickMsg:
		if m.manager != nil && m.state == StateScanning {
			resolved, failed, total := m.manager.GetProgress()
			m.resolvedSets, m.failedSets, m.totalSets = resolved, failed, total

			var percent float64
			if total > 0 {
				percent = float64(resolved+failed) / float64(total)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) toggle(key string) {
	switch key {
	case "a":
		m.settings.UseAO = !m.settings.UseAO
	case "d":
		m.settings.UseDisp = !m.settings.UseDisp
	case "s":
		m.settings.UseSixteenBit = !m.settings.UseSixteenBit
	case "v":
		m.verbose = !m.verbose
	}
}

func (m *Model) reset() {
	m.state = StateInput
	m.logs = nil
	m.sets = nil
	m.err = nil
	m.manager = nil
	m.resolvedSets, m.failedSets, m.totalSets = 0, 0, 0
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.textInput.SetValue("")
	m.textInput.Focus()
}

// startScan creates a fresh manager and runs discovery and resolution in
// the background.
func (m Model) startScan() (tea.Model, tea.Cmd) {
	if m.ctx.Err() != nil {
		m.ctx, m.cancel = context.WithCancel(context.Background())
	}
	m.state = StateScanning
	m.logs = nil
	m.sets = nil
	m.err = nil
	m.resolvedSets, m.failedSets, m.totalSets = 0, 0, 0

	events := make(chan scan.ProgressEvent, 64)
	m.events = events
	m.manager = scan.NewManager(m.settings, func(event scan.ProgressEvent) {
		select {
		case events <- event:
		default:
		}
	})

	return m, tea.Batch(
		runScan(m.ctx, m.manager, m.root, events),
		waitForEvent(events),
		m.spinner.Tick,
		m.tickProgress(),
	)
}

// runScan discovers and resolves every set under root. events is closed
// once the manager can no longer report progress.
func runScan(ctx context.Context, manager *scan.Manager, root string, events chan scan.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		defer close(events)
		if _, err := manager.Discover(ctx, root); err != nil {
			return ScanDoneMsg{Err: err}
		}
		err := manager.ResolveAll(ctx)
		resolved, failed, total := manager.GetProgress()
		return ScanDoneMsg{
			Sets:     manager.Results(),
			Resolved: resolved,
			Failed:   failed,
			Total:    total,
			Err:      err,
		}
	}
}

// waitForEvent delivers the next progress event as a ProgressMsg.
func waitForEvent(events <-chan scan.ProgressEvent) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: event}
	}
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("PBR Set Browser"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Resolve texture folders into material sets"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateScanning:
		b.WriteString(m.viewScanning())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[×]"
	}
	return "[ ]"
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter texture library folder:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Use ambient occlusion (alt+a)\n", checkbox(m.settings.UseAO)))
	b.WriteString(fmt.Sprintf("  %s Use displacement (alt+d)\n", checkbox(m.settings.UseDisp)))
	b.WriteString(fmt.Sprintf("  %s Prefer 16-bit maps (alt+s)\n", checkbox(m.settings.UseSixteenBit)))
	b.WriteString(fmt.Sprintf("  %s Verbose output (alt+v)\n", checkbox(m.verbose)))

	return b.String()
}

func (m Model) viewScanning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Scanning " + m.root))
	b.WriteString("\n\n")

	if m.totalSets > 0 {
		percent := float64(m.resolvedSets+m.failedSets) / float64(m.totalSets)
		b.WriteString(m.progress.ViewAs(percent))
		b.WriteString("\n")
		b.WriteString(infoStyle.Render(fmt.Sprintf("Sets: %d/%d | Failed: %d", m.resolvedSets, m.totalSets, m.failedSets)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	incomplete := 0
	for _, set := range m.sets {
		if len(set.MissingCritical()) > 0 {
			incomplete++
		}
	}

	b.WriteString(boxStyle.Render(fmt.Sprintf(
		"Scan Complete\n\nSets: %d\nIncomplete: %d\nFailed: %d",
		len(m.sets), incomplete, m.failedSets,
	)))
	b.WriteString("\n\n")

	if len(m.sets) == 0 {
		b.WriteString(warningStyle.Render("No material sets found."))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.offset+visibleSets, len(m.sets))
	for i := m.offset; i < end; i++ {
		b.WriteString(renderSet(m.sets[i], i == m.cursor))
		b.WriteString("\n")
	}

	if set := m.sets[m.cursor]; set != nil {
		b.WriteString("\n")
		b.WriteString(renderPasses(set))
	}

	return b.String()
}

// renderSet renders one row of the set list.
func renderSet(set *model.MaterialSet, selected bool) string {
	name := set.SetName
	cursor := "  "
	if selected {
		cursor = "› "
		name = selectedStyle.Render(name)
	}

	workflow := string(set.Workflow)
	if style, ok := workflowStyles[set.Workflow]; ok {
		workflow = style.Render(fmt.Sprintf("%-10s", workflow))
	}

	status := successStyle.Render("✓")
	if missing := set.MissingCritical(); len(missing) > 0 {
		status = warningStyle.Render("! missing " + strings.Join(missing, ", "))
	}

	return fmt.Sprintf("%s%-32s %s %-6s %s", cursor, name, workflow, set.Size, status)
}

// renderPasses lists the passes of the selected set in slot order under
// its display name.
func renderPasses(set *model.MaterialSet) string {
	var b strings.Builder
	title := set.SetName
	if words := naming.SplitMaterialName(set.SetName); len(words) > 0 {
		title = strings.Join(words, " ")
	}
	b.WriteString(selectedStyle.Render("  " + title))
	b.WriteString("\n")

	names := set.FileNames()
	for _, slot := range model.AllPassSlots() {
		file, ok := names[slot.String()]
		if !ok {
			continue
		}
		b.WriteString(infoStyle.Render(fmt.Sprintf("  %-13s", slot.DisplayName())))
		b.WriteString(dimStyle.Render(file))
		b.WriteString("\n")
	}
	if len(set.Unmatched) > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %d unmatched file(s)", len(set.Unmatched))))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case scan.LevelError:
			style = errorStyle
			prefix = "✗"
		case scan.LevelWarning:
			style = warningStyle
			prefix = "!"
		case scan.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case scan.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: scan • alt+a/d/s/v: toggle options • esc: quit"
	case StateScanning:
		return "esc: cancel"
	case StateComplete:
		return "↑/↓: select • r: rescan • q: quit"
	case StateError:
		return "r: new scan • q: quit"
	}
	return ""
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
