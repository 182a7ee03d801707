// ABOUTME: Tests for TUI model and state management
// ABOUTME: Tests status updates, frame display and key handling
package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ltcsync/ltcsync-go/pkg/chase"
	"github.com/ltcsync/ltcsync-go/pkg/ltc"
	"github.com/ltcsync/ltcsync-go/pkg/ltcsync"
)

func sized(m Model) Model {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func key(m Model, k string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch k {
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func TestNewModel(t *testing.T) {
	model := NewModel(nil)

	if model.volume != 100 {
		t.Errorf("expected default volume 100, got %d", model.volume)
	}
	if model.lock != chase.QualityLost {
		t.Errorf("expected lost lock initially, got %v", model.lock)
	}
	if model.showDebug || model.muted || model.haveFrame {
		t.Error("expected debug, mute and frame to be off initially")
	}
	if model.View() != "Loading..." {
		t.Errorf("expected loading view before size, got %q", model.View())
	}
}

func TestStatusMsgSource(t *testing.T) {
	model := NewModel(nil)
	monitor := true
	model.applyStatus(StatusMsg{
		Source:     "take1.wav",
		SampleRate: 48000,
		Channels:   2,
		Standard:   "625_50",
		FPS:        25,
		State:      ltcsync.StateReading,
		Monitor:    &monitor,
		Volume:     60,
	})

	if model.source != "take1.wav" || model.sampleRate != 48000 || model.channels != 2 {
		t.Errorf("source not applied: %+v", model)
	}
	if model.standard != "625_50" || model.fps != 25 || model.state != ltcsync.StateReading {
		t.Errorf("stream info not applied")
	}
	if !model.monitor || model.volume != 60 {
		t.Errorf("expected monitor at 60, got %v %d", model.monitor, model.volume)
	}

	view := sized(model).View()
	for _, want := range []string{"take1.wav", "48000 Hz", "Stereo", "Monitor:", "60%", "waiting for timecode"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestStatusMsgPartialUpdate(t *testing.T) {
	model := NewModel(nil)
	model.applyStatus(StatusMsg{Source: "a", SampleRate: 44100, Channels: 1, Volume: 40})

	good := chase.QualityGood
	model.applyStatus(StatusMsg{Lock: &good})

	if model.source != "a" || model.volume != 40 {
		t.Error("zero fields should leave state unchanged")
	}
	if model.lock != chase.QualityGood {
		t.Errorf("expected good lock, got %v", model.lock)
	}
}

func TestFrameMsg(t *testing.T) {
	tc := ltc.Timecode{Years: 24, Months: 6, Days: 15, HasDate: true, Timezone: "+0100", Hours: 10, Minutes: 20, Seconds: 30, Frame: 12}
	f := ltc.TimeToFrame(tc, ltc.TV625_50, ltc.UseDate)
	ev := ltcsync.Event{
		Frame:    ltc.FrameExt{Frame: f, OffStart: 1920, OffEnd: 3839, SampleMin: 28, SampleMax: 228},
		Timecode: ltc.FrameToTime(f, ltc.TV625_50, ltc.UseDate),
		Status:   chase.Status{Direction: chase.Forward, Quality: chase.QualityDegraded, Speed: 1},
		Sequence: 7,
		Delta:    12,
	}

	updated, _ := sized(NewModel(nil)).Update(FrameMsg(ev))
	model := updated.(Model)

	if !model.haveFrame || model.timecode != "10:20:30:12" || model.frames != 7 {
		t.Errorf("frame not applied: %q frames %d", model.timecode, model.frames)
	}
	if model.date == "" {
		t.Error("expected date to be shown")
	}
	if model.lock != chase.QualityDegraded {
		t.Errorf("expected degraded lock, got %v", model.lock)
	}

	view := model.View()
	for _, want := range []string{"10:20:30:12", "1920..3839", "Degraded", "forward"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestStatsMsg(t *testing.T) {
	model := NewModel(nil)
	updated, _ := model.Update(StatsMsg{
		Stats:     ltcsync.Stats{Frames: 100, Dropped: 2, Pending: 1, Lock: chase.QualityGood, Speed: 1.01, Jumps: 3},
		Listeners: 4,
	})
	model = updated.(Model)

	if model.frames != 100 || model.dropped != 2 || model.jumps != 3 || model.listeners != 4 {
		t.Errorf("stats not applied: %+v", model)
	}

	view := sized(model).View()
	if !strings.Contains(view, "listeners 4") || !strings.Contains(view, "Good") {
		t.Errorf("unexpected view:\n%s", view)
	}
}

func TestVolumeKeys(t *testing.T) {
	controls := NewControls()
	model := NewModel(controls)

	model, _ = key(model, "down")
	if model.volume != 95 {
		t.Errorf("expected volume 95, got %d", model.volume)
	}
	if got := <-controls.Changes; got.Volume != 95 || got.Muted {
		t.Errorf("unexpected change %+v", got)
	}

	model, _ = key(model, "up")
	model, _ = key(model, "up")
	if model.volume != 100 {
		t.Errorf("volume should clamp at 100, got %d", model.volume)
	}

	model.volume = 3
	model, _ = key(model, "down")
	if model.volume != 0 {
		t.Errorf("volume should clamp at 0, got %d", model.volume)
	}

	model, _ = key(model, "m")
	if !model.muted {
		t.Error("expected muted after m")
	}
}

func TestVolumeKeysWithoutControls(t *testing.T) {
	model := NewModel(nil)
	model, _ = key(model, "up")
	model, _ = key(model, "m")
	if !model.muted {
		t.Error("keys should work without controls")
	}
}

func TestDebugToggle(t *testing.T) {
	model := sized(NewModel(nil))

	model, _ = key(model, "d")
	if !model.showDebug {
		t.Fatal("expected debug on")
	}
	if !strings.Contains(model.View(), "DEBUG") {
		t.Error("expected debug section in view")
	}

	model, _ = key(model, "d")
	if model.showDebug {
		t.Error("expected debug off")
	}
}

func TestQuitKey(t *testing.T) {
	controls := NewControls()
	model := NewModel(controls)

	_, cmd := key(model, "q")
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}

	select {
	case <-controls.Quit:
	default:
		t.Error("expected quit on controls channel")
	}
}

func TestRenderBar(t *testing.T) {
	tests := []struct {
		value int
		want  string
	}{
		{0, "░░░░░░░░░░"},
		{50, "█████░░░░░"},
		{100, "██████████"},
	}
	for _, tt := range tests {
		if got := renderBar(tt.value, 100, 10); got != tt.want {
			t.Errorf("renderBar(%d) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestChannelName(t *testing.T) {
	tests := map[int]string{0: "-", 1: "Mono", 2: "Stereo", 6: "6ch"}
	for ch, want := range tests {
		if got := channelName(ch); got != want {
			t.Errorf("channelName(%d) = %q, want %q", ch, got, want)
		}
	}
}
