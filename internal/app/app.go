// ABOUTME: Reader application orchestration
// ABOUTME: Wires source, reader, monitor, broadcast, dump and TUI together
package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ltcsync/ltcsync-go/internal/config"
	"github.com/ltcsync/ltcsync-go/internal/ui"
	"github.com/ltcsync/ltcsync-go/pkg/audio/output"
	"github.com/ltcsync/ltcsync-go/pkg/audio/source"
	"github.com/ltcsync/ltcsync-go/pkg/broadcast"
	"github.com/ltcsync/ltcsync-go/pkg/chase"
	"github.com/ltcsync/ltcsync-go/pkg/ltcsync"
	"github.com/ltcsync/ltcsync-go/pkg/protocol"
)

const statsInterval = 500 * time.Millisecond

// Config holds application configuration
type Config struct {
	// Input is a file path, URL or "-" for stdin
	Input string

	// Settings are the merged config file and flag values
	Settings *config.Config

	// UseTUI shows the live TUI instead of printing frame lines
	UseTUI bool

	// DumpPath receives the decoded channel as unsigned 8-bit PCM
	DumpPath string

	// Out receives one line per frame when the TUI is off (default: stdout)
	Out io.Writer
}

// App represents the reader application
type App struct {
	config   Config
	settings *config.Config

	src     source.Source
	reader  *ltcsync.Reader
	server  *broadcast.Server
	tuiProg *tea.Program
	dump    *os.File

	serverDone chan error
	cancel     context.CancelFunc
}

// New creates the application and opens its input
func New(cfg Config) (*App, error) {
	if cfg.Settings == nil {
		cfg.Settings = config.Default()
	}
	if cfg.Input == "" {
		cfg.Input = "-"
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if err := cfg.Settings.Validate(); err != nil {
		return nil, err
	}

	a := &App{config: cfg, settings: cfg.Settings}

	in := cfg.Settings.Input
	src, err := source.Open(cfg.Input, source.Options{
		Format:     in.Format,
		SampleRate: in.SampleRate,
		Channels:   in.Channels,
		FFmpeg:     in.FFmpeg,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	a.src = src

	return a, nil
}

// Run decodes until the input ends, ctx is cancelled or the user quits
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.src.Close()
	a.cancel = cancel

	s := a.settings
	flags, err := s.Decoder.Flags()
	if err != nil {
		return err
	}

	var controls *ui.Controls
	if a.config.UseTUI {
		controls = ui.NewControls()
		if a.tuiProg, err = ui.Run(controls); err != nil {
			return fmt.Errorf("failed to start TUI: %w", err)
		}
		go func() {
			if _, err := a.tuiProg.Run(); err != nil {
				log.Printf("TUI error: %v", err)
			}
			cancel()
		}()
		defer a.tuiProg.Quit()
	}

	readerConfig := ltcsync.Config{
		Source:          a.src,
		FPS:             s.Decoder.FPS,
		Standard:        s.Decoder.Standard,
		SamplesPerFrame: s.Decoder.SamplesPerFrame,
		QueueSize:       s.Decoder.QueueSize,
		Channel:         s.Input.Channel,
		Flags:           flags,
		Realtime:        s.Input.Realtime,
		Volume:          s.Monitor.Volume,
		MonitorRate:     s.Monitor.SampleRate,
		OnFrame:         a.handleFrame,
		OnStateChange:   a.handleState,
		OnError: func(err error) {
			log.Printf("Reader error: %v", err)
		},
	}
	if s.Monitor.Enabled {
		readerConfig.Monitor = output.NewOto()
	}
	if a.config.DumpPath != "" {
		if a.dump, err = os.Create(a.config.DumpPath); err != nil {
			return fmt.Errorf("failed to create dump file: %w", err)
		}
		defer a.dump.Close()
		readerConfig.Dump = a.dump
	}

	a.reader, err = ltcsync.NewReader(readerConfig)
	if err != nil {
		return err
	}

	if s.Broadcast.Enabled {
		if err := a.startBroadcast(); err != nil {
			return err
		}
		defer a.stopBroadcast()
	}

	if controls != nil {
		go a.handleControls(ctx, controls)
		go a.statsLoop(ctx)
	}

	if err := a.reader.Run(ctx); err != nil {
		return err
	}

	if a.server != nil {
		a.server.EndStream("eof")
	}

	stats := a.reader.Stats()
	log.Printf("Decoded %d frames from %d samples (%d dropped, %d jumps)", stats.Frames, stats.Samples, stats.Dropped, stats.Jumps)

	// The TUI stays up after the input ends until the user quits
	if a.tuiProg != nil {
		a.sendTUI(ui.StatsMsg{Stats: stats, Listeners: a.listeners()})
		<-ctx.Done()
	}
	return nil
}

func (a *App) startBroadcast() error {
	b := a.settings.Broadcast
	srv, err := broadcast.NewServer(broadcast.Config{
		Port:       b.Port,
		Name:       b.Name,
		EnableMDNS: b.MDNS,
		Standard:   a.reader.Standard().String(),
		FPS:        a.settings.Decoder.FPS,
		SampleRate: a.src.SampleRate(),
		Source:     a.src.Name(),
	})
	if err != nil {
		return fmt.Errorf("failed to create broadcast: %w", err)
	}
	a.server = srv
	a.serverDone = make(chan error, 1)
	go func() {
		a.serverDone <- srv.Start()
	}()
	return nil
}

func (a *App) stopBroadcast() {
	a.server.Stop()
	if err := <-a.serverDone; err != nil {
		log.Printf("Broadcast error: %v", err)
	}
}

func (a *App) handleFrame(ev ltcsync.Event) {
	if a.server != nil {
		msg := protocol.NewTimecodeFrame(ev.Frame, ev.Timecode)
		msg.Lock = ev.Status.Quality.String()
		msg.Speed = ev.Status.Speed
		a.server.Publish(msg)
	}

	if a.tuiProg != nil {
		a.sendTUI(ui.FrameMsg(ev))
		return
	}
	fmt.Fprintln(a.config.Out, FormatLine(ev))
}

func (a *App) handleState(st ltcsync.State) {
	lock := st.Lock
	monitor := a.settings.Monitor.Enabled
	muted := st.Muted
	a.sendTUI(ui.StatusMsg{
		Source:     st.Source,
		SampleRate: st.SampleRate,
		Channels:   st.Channels,
		Standard:   st.Standard.String(),
		FPS:        st.FPS,
		State:      st.State,
		Lock:       &lock,
		Monitor:    &monitor,
		Volume:     st.Volume,
		Muted:      &muted,
	})
	if st.Lock == chase.QualityLost && st.State == ltcsync.StateReading && a.tuiProg == nil {
		log.Printf("No timecode")
	}
}

// handleControls applies volume changes from the TUI
func (a *App) handleControls(ctx context.Context, controls *ui.Controls) {
	for {
		select {
		case vol := <-controls.Changes:
			log.Printf("Volume change: %d%%, muted=%v", vol.Volume, vol.Muted)
			a.reader.SetVolume(vol.Volume)
			a.reader.SetMuted(vol.Muted)
		case <-controls.Quit:
			log.Printf("Received quit signal from TUI")
			a.cancel()
			return
		case <-ctx.Done():
			return
		}
	}
}

// statsLoop periodically updates the TUI with decoding statistics
func (a *App) statsLoop(ctx context.Context) {
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.sendTUI(ui.StatsMsg{Stats: a.reader.Stats(), Listeners: a.listeners()})
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) listeners() int {
	if a.server == nil {
		return 0
	}
	return len(a.server.Clients())
}

func (a *App) sendTUI(msg tea.Msg) {
	if a.tuiProg != nil {
		a.tuiProg.Send(msg)
	}
}

// FormatLine renders a frame the way the decoder tool prints it:
// optional date and time zone, the timecode, the sample range, the frame
// delta and R for frames read backwards.
func FormatLine(ev ltcsync.Event) string {
	var b strings.Builder
	if ev.Timecode.HasDate {
		fmt.Fprintf(&b, "%s %s ", ev.Timecode.DateString(), ev.Timecode.Timezone)
	}
	fmt.Fprintf(&b, "%s | %8d %8d %8d", ev.Timecode, ev.Frame.OffStart, ev.Frame.OffEnd, ev.Delta)
	if ev.Frame.Reverse {
		b.WriteString("  R")
	}
	return b.String()
}
