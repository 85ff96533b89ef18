// Package tui provides a Bubble Tea terminal user interface for csv2yt2mp3.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/samuelpedrajas/csv2yt2mp3/internal/config"
	"github.com/samuelpedrajas/csv2yt2mp3/internal/download"
	"github.com/samuelpedrajas/csv2yt2mp3/internal/event"
	ioutils "github.com/samuelpedrajas/csv2yt2mp3/internal/io"
	"github.com/samuelpedrajas/csv2yt2mp3/internal/model"
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

	recordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// maxLogs is how many log lines stay on screen.
const maxLogs = 10

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateInitializing
	StateDownloading
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   event.Level
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	err       error

	// Import context
	ctx    context.Context
	cancel context.CancelFunc

	manager *download.Manager
	records []model.SongRecord
	events  chan event.Event
	current string

	// Import progress
	done    int
	total   int
	summary download.Summary

	// Options
	playlist     bool
	includeAlbum bool
	verbose      bool

	width  int
	height int
}

// NewModel creates a new TUI model. A nil settings uses the defaults.
func NewModel(settings *config.Settings) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	ti := textinput.New()
	ti.Placeholder = "songs.csv"
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
		state:        StateInput,
		textInput:    ti,
		spinner:      sp,
		progress:     prog,
		settings:     settings,
		logs:         make([]LogEntry, 0),
		ctx:          ctx,
		cancel:       cancel,
		playlist:     settings.CreatePlaylist,
		includeAlbum: settings.QueryIncludeAlbum,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg carries one pipeline event.
	ProgressMsg struct {
		Event event.Event
	}

	// InitDoneMsg is sent when the CSV is read and the manager is ready.
	InitDoneMsg struct {
		Records []model.SongRecord
		Manager *download.Manager
		Err     error
	}

	// ImportDoneMsg is sent when every record has been processed.
	ImportDoneMsg struct {
		Summary download.Summary
		Err     error
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
			if m.state == StateDownloading || m.state == StateInitializing {
				m.cancel()
				m.state = StateError
				m.err = errors.New("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.textInput.Value()) != "" {
				m.state = StateInitializing
				m.events = make(chan event.Event, 256)
				return m, tea.Batch(m.initializeImport(), m.spinner.Tick)
			}

		case "ctrl+p":
			if m.state == StateInput {
				m.playlist = !m.playlist
			}

		case "ctrl+a":
			if m.state == StateInput {
				m.includeAlbum = !m.includeAlbum
			}

		case "ctrl+v":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				m = m.reset()
				return m, textinput.Blink
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		cmds = append(cmds, waitForEvent(m.ctx, m.events))
		if msg.Event.Kind == event.KindRecordStart {
			m.current = strings.TrimPrefix(msg.Event.Message, "Processing ")
		}
		if msg.Event.Level == event.LevelVerbose && !m.verbose {
			break
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		if len(m.logs) > maxLogs {
			m.logs = m.logs[len(m.logs)-maxLogs:]
		}

	case InitDoneMsg:
		if m.state != StateInitializing {
			break
		}
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
			m.cancel()
		} else {
			m.records = msg.Records
			m.manager = msg.Manager
			m.total = len(msg.Records)
			m.state = StateDownloading
			cmds = append(cmds, m.startImport(), m.tickProgress(), waitForEvent(m.ctx, m.events))
		}

	case ImportDoneMsg:
		m.summary = msg.Summary
		m.done = len(msg.Summary.Outcomes)
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = errors.New("cancelled by user")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}
		// Nothing writes to the event channel once the import returned.
		m.cancel()

	case TickMsg:
		if m.manager != nil && m.state == StateDownloading {
			m.done, m.total = m.manager.GetProgress()

			var percent float64
			if m.total > 0 {
				percent = float64(m.done) / float64(m.total)
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

func (m Model) reset() Model {
	m.state = StateInput
	m.logs = nil
	m.err = nil
	m.done = 0
	m.total = 0
	m.current = ""
	m.records = nil
	m.summary = download.Summary{}
	m.manager = nil
	m.events = nil
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.textInput.SetValue("")
	m.textInput.Focus()
	return m
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// waitForEvent delivers the next pipeline event. It returns nil once ctx
// is done, which happens when the run finishes or is cancelled.
func waitForEvent(ctx context.Context, events <-chan event.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-events:
			return ProgressMsg{Event: e}
		case <-ctx.Done():
			return nil
		}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("♪ csv2yt2mp3"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Turn a CSV of songs into a tagged MP3 library"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateInitializing:
		b.WriteString(m.viewInitializing())
	case StateDownloading:
		b.WriteString(m.viewDownloading())
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
		return "[x]"
	}
	return "[ ]"
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter CSV file path:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Create album playlists (ctrl+p)\n", checkbox(m.playlist)))
	b.WriteString(fmt.Sprintf("  %s Include album in search (ctrl+a)\n", checkbox(m.includeAlbum)))
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (ctrl+v)\n", checkbox(m.verbose)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Download path: %s", m.settings.DownloadDir)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewInitializing() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Reading songs..."))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewDownloading() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	if m.current != "" {
		b.WriteString(recordStyle.Render(m.current))
	} else {
		b.WriteString(subtitleStyle.Render("Starting..."))
	}
	b.WriteString("\n\n")

	var percent float64
	if m.total > 0 {
		percent = float64(m.done) / float64(m.total)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf("Songs: %d/%d", m.done, m.total)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	box := boxStyle.Render(fmt.Sprintf(
		"✓ Import Complete!\n\n"+
			"Songs:   %d\n"+
			"Placed:  %d\n"+
			"Skipped: %d\n"+
			"Failed:  %d",
		m.summary.Total,
		m.summary.Placed,
		m.summary.Skipped,
		m.summary.Failed,
	))
	return box + "\n" + m.renderLogs()
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
		case event.LevelError:
			style = errorStyle
			prefix = "✗"
		case event.LevelWarning:
			style = warningStyle
			prefix = "!"
		case event.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case event.LevelInfo:
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
		return "enter: start • ctrl+p: playlist • ctrl+a: album in query • ctrl+v: verbose • esc: quit"
	case StateInitializing, StateDownloading:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new import • q: quit"
	}
	return ""
}

// initializeImport reads the CSV and prepares the manager.
func (m Model) initializeImport() tea.Cmd {
	path := strings.TrimSpace(m.textInput.Value())
	settings := *m.settings
	settings.CreatePlaylist = m.playlist
	settings.QueryIncludeAlbum = m.includeAlbum
	ctx := m.ctx
	events := m.events

	return func() tea.Msg {
		records, err := ioutils.OpenSongRecords(path)
		if err != nil {
			return InitDoneMsg{Err: err}
		}

		manager, err := download.NewManager(ctx, &settings, download.Components{}, channelSink(ctx, events))
		if err != nil {
			return InitDoneMsg{Err: err}
		}
		if err := manager.Preflight(); err != nil {
			return InitDoneMsg{Err: err}
		}

		return InitDoneMsg{Records: records, Manager: manager}
	}
}

// startImport runs the import in the background.
func (m Model) startImport() tea.Cmd {
	manager := m.manager
	records := m.records
	ctx := m.ctx

	return func() tea.Msg {
		summary, err := manager.Import(ctx, records)
		return ImportDoneMsg{Summary: summary, Err: err}
	}
}

// channelSink forwards events to the UI. Events are dropped rather than
// blocking the pipeline when the UI falls behind.
func channelSink(ctx context.Context, events chan<- event.Event) event.Sink {
	return func(e event.Event) {
		select {
		case events <- e:
		case <-ctx.Done():
		default:
		}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
