// ABOUTME: Bubbletea model for the timecode reader TUI
// ABOUTME: Defines display state, key handling and status updates
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ltcsync/ltcsync-go/pkg/chase"
	"github.com/ltcsync/ltcsync-go/pkg/ltcsync"
)

const volumeStep = 5

// Model represents the TUI state
type Model struct {
	// Source
	source     string
	sampleRate int
	channels   int
	standard   string
	fps        float64

	// Latest frame
	timecode  string
	date      string
	userBits  uint32
	direction chase.Direction
	offStart  int64
	offEnd    int64
	delta     int64
	level     float64
	haveFrame bool

	// Lock
	lock  chase.Quality
	speed float64
	jumps uint64

	// Monitor
	monitor bool
	volume  int
	muted   bool

	// Stats
	frames    uint64
	dropped   uint64
	pending   int
	late      int64
	listeners int

	// Debug
	showDebug bool
	state     string

	controls *Controls
	styles   styles

	// Dimensions
	width  int
	height int
}

// StatusMsg updates reader state. Zero fields are left unchanged.
type StatusMsg struct {
	Source     string
	SampleRate int
	Channels   int
	Standard   string
	FPS        float64
	State      string
	Lock       *chase.Quality
	Monitor    *bool
	Volume     int
	Muted      *bool
}

// StatsMsg carries periodic counters
type StatsMsg struct {
	Stats     ltcsync.Stats
	Listeners int
}

// FrameMsg carries one decoded frame
type FrameMsg ltcsync.Event

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	case StatsMsg:
		m.applyStats(msg)
	case FrameMsg:
		m.applyFrame(ltcsync.Event(msg))
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString(m.renderTimecode())
	b.WriteString(m.renderLock())
	if m.monitor {
		b.WriteString(m.renderMonitor())
	}
	b.WriteString(m.renderStats())
	if m.showDebug {
		b.WriteString(m.renderDebug())
	}
	b.WriteString(m.styles.help.Render("↑/↓:Volume  m:Mute  d:Debug  q:Quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderHeader() string {
	title := m.styles.title.Render("LTCSync")
	src := m.source
	if src == "" {
		src = "no source"
	}
	info := fmt.Sprintf("%s  %d Hz  %s  %s @ %.2f fps", truncate(src, 32), m.sampleRate, channelName(m.channels), m.standard, m.fps)
	return title + " " + m.styles.dim.Render(info) + "\n\n"
}

func (m Model) renderTimecode() string {
	if !m.haveFrame {
		return m.styles.timecode.Render("--:--:--:--") + "\n" + m.styles.dim.Render("waiting for timecode") + "\n\n"
	}

	s := m.styles.timecode.Render(m.timecode)
	if m.date != "" {
		s += "  " + m.date
	}
	s += "\n"
	s += fmt.Sprintf("%s %s  %d..%d  Δ%d  %.1f dB\n\n",
		m.styles.label.Render("Frame:"), m.direction, m.offStart, m.offEnd, m.delta, m.level)
	return s
}

func (m Model) renderLock() string {
	var lock string
	switch m.lock {
	case chase.QualityGood:
		lock = m.styles.good.Render("✓ Good")
	case chase.QualityDegraded:
		lock = m.styles.warn.Render("⚠ Degraded")
	default:
		lock = m.styles.bad.Render("✗ Lost")
	}
	return fmt.Sprintf("%s %s  speed %.3fx  jumps %d\n", m.styles.label.Render("Lock:"), lock, m.speed, m.jumps)
}

func (m Model) renderMonitor() string {
	muteIcon := ""
	if m.muted {
		muteIcon = " 🔇"
	}
	return fmt.Sprintf("%s [%s] %d%%%s\n", m.styles.label.Render("Monitor:"), renderBar(m.volume, 100, 10), m.volume, muteIcon)
}

func (m Model) renderStats() string {
	s := fmt.Sprintf("%s frames %d  dropped %d  pending %d", m.styles.label.Render("Stats:"), m.frames, m.dropped, m.pending)
	if m.listeners > 0 {
		s += fmt.Sprintf("  listeners %d", m.listeners)
	}
	return s + "\n\n"
}

func (m Model) renderDebug() string {
	return m.styles.dim.Render(fmt.Sprintf("DEBUG: state=%s user_bits=%08x late=%d", m.state, m.userBits, m.late)) + "\n"
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.controls != nil {
			select {
			case m.controls.Quit <- QuitMsg{}:
			default:
			}
		}
		return m, tea.Quit
	case "up":
		m.volume = min(m.volume+volumeStep, 100)
		m.sendVolume()
	case "down":
		m.volume = max(m.volume-volumeStep, 0)
		m.sendVolume()
	case "m":
		m.muted = !m.muted
		m.sendVolume()
	case "d":
		m.showDebug = !m.showDebug
	}

	return m, nil
}

func (m Model) sendVolume() {
	if m.controls == nil {
		return
	}
	select {
	case m.controls.Changes <- VolumeChangeMsg{Volume: m.volume, Muted: m.muted}:
	default:
	}
}

// applyStatus updates model from status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Source != "" {
		m.source = msg.Source
		m.sampleRate = msg.SampleRate
		m.channels = msg.Channels
	}
	if msg.Standard != "" {
		m.standard = msg.Standard
	}
	if msg.FPS != 0 {
		m.fps = msg.FPS
	}
	if msg.State != "" {
		m.state = msg.State
	}
	if msg.Lock != nil {
		m.lock = *msg.Lock
	}
	if msg.Monitor != nil {
		m.monitor = *msg.Monitor
	}
	if msg.Volume != 0 {
		m.volume = msg.Volume
	}
	if msg.Muted != nil {
		m.muted = *msg.Muted
	}
}

func (m *Model) applyStats(msg StatsMsg) {
	m.frames = msg.Stats.Frames
	m.dropped = msg.Stats.Dropped
	m.pending = msg.Stats.Pending
	m.late = msg.Stats.Late
	m.lock = msg.Stats.Lock
	m.speed = msg.Stats.Speed
	m.jumps = msg.Stats.Jumps
	m.listeners = msg.Listeners
}

func (m *Model) applyFrame(ev ltcsync.Event) {
	m.haveFrame = true
	m.timecode = ev.Timecode.String()
	m.date = ""
	if ev.Timecode.HasDate {
		m.date = ev.Timecode.DateString()
	}
	m.userBits = ev.Frame.Frame.UserBits()
	m.direction = ev.Status.Direction
	m.offStart = ev.Frame.OffStart
	m.offEnd = ev.Frame.OffEnd
	m.delta = ev.Delta
	m.level = ev.Frame.Volume()
	m.lock = ev.Status.Quality
	m.speed = ev.Status.Speed
	m.jumps = ev.Status.Jumps
	m.frames = ev.Sequence
}

// Utility functions
func renderBar(value, max, width int) string {
	filled := (value * width) / max
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}

func channelName(channels int) string {
	switch channels {
	case 0:
		return "-"
	case 1:
		return "Mono"
	case 2:
		return "Stereo"
	default:
		return fmt.Sprintf("%dch", channels)
	}
}
