// ABOUTME: Tests for the reader application
// ABOUTME: Runs the full pipeline on a raw LTC file and checks the printed lines
package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ltcsync/ltcsync-go/internal/config"
	"github.com/ltcsync/ltcsync-go/internal/ltctest"
	"github.com/ltcsync/ltcsync-go/pkg/ltc"
	"github.com/ltcsync/ltcsync-go/pkg/ltcsync"
)

// writeLTC writes n 25fps frames from 10:00:00:00 as 48kHz u8 mono
func writeLTC(t *testing.T, n int, tc ltc.Timecode, flags ltc.Flags) string {
	t.Helper()
	raw := make([][ltc.FrameBytes]byte, n)
	for i := range raw {
		tc.Frame = i % 25
		tc.Seconds = i / 25
		raw[i] = ltc.TimeToFrame(tc, ltc.TV625_50, flags).Bytes()
	}
	path := filepath.Join(t.TempDir(), "ltc.raw")
	if err := os.WriteFile(path, ltctest.Biphase(raw, 1920/ltc.FrameBits), 0644); err != nil {
		t.Fatalf("write signal: %v", err)
	}
	return path
}

func testSettings() *config.Config {
	s := config.Default()
	s.Broadcast.Enabled = false
	s.Broadcast.MDNS = false
	return s
}

func runApp(t *testing.T, cfg Config) string {
	t.Helper()
	var out bytes.Buffer
	cfg.Out = &out

	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}

func TestAppPrintsFrames(t *testing.T) {
	path := writeLTC(t, 10, ltc.Timecode{Hours: 10}, 0)
	out := runApp(t, Config{Input: path, Settings: testSettings()})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) < 8 {
		t.Fatalf("got %d lines, want at least 8:\n%s", len(lines), out)
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "10:00:00:0") {
			t.Errorf("unexpected line %q", line)
		}
		if strings.HasSuffix(line, "R") {
			t.Errorf("forward frame flagged reverse: %q", line)
		}
	}
	if !strings.HasPrefix(lines[len(lines)-1], "10:00:00:09 | ") {
		t.Errorf("last line = %q, want 10:00:00:09", lines[len(lines)-1])
	}
}

func TestAppPrintsDate(t *testing.T) {
	tc := ltc.Timecode{Years: 24, Months: 6, Days: 15, Timezone: "+0100", HasDate: true, Hours: 10}
	path := writeLTC(t, 6, tc, ltc.UseDate)

	settings := testSettings()
	settings.Decoder.Date = "on"
	out := runApp(t, Config{Input: path, Settings: settings})

	if !strings.HasPrefix(out, "2024-06-15 +0100 10:00:00:0") {
		t.Errorf("output = %q, want dated lines", out)
	}
}

func TestAppDump(t *testing.T) {
	path := writeLTC(t, 4, ltc.Timecode{Hours: 10}, 0)
	dump := filepath.Join(t.TempDir(), "dump.u8")
	runApp(t, Config{Input: path, Settings: testSettings(), DumpPath: dump})

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(dump)
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("dump differs from input: %d vs %d bytes", len(got), len(want))
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New(Config{Input: filepath.Join(t.TempDir(), "missing.raw")}); err == nil {
		t.Error("expected error for missing input")
	}

	settings := testSettings()
	settings.Decoder.FPS = 0
	if _, err := New(Config{Input: "-", Settings: settings}); err == nil {
		t.Error("expected error for invalid settings")
	}
}

func TestRunRejectsDateMode(t *testing.T) {
	path := writeLTC(t, 1, ltc.Timecode{}, 0)
	settings := testSettings()
	a, err := New(Config{Input: path, Settings: settings})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	settings.Decoder.Date = "sometimes"
	if err := a.Run(context.Background()); err == nil {
		t.Error("expected error for unknown date mode")
	}
}

func TestFormatLine(t *testing.T) {
	ev := ltcsync.Event{
		Frame:    ltc.FrameExt{OffStart: 1920, OffEnd: 3839},
		Timecode: ltc.Timecode{Hours: 1, Minutes: 2, Seconds: 3, Frame: 4},
		Delta:    12,
	}
	if got, want := FormatLine(ev), "01:02:03:04 |     1920     3839       12"; got != want {
		t.Errorf("FormatLine = %q, want %q", got, want)
	}

	ev.Frame.Reverse = true
	ev.Timecode.HasDate = true
	ev.Timecode.Years, ev.Timecode.Months, ev.Timecode.Days = 99, 12, 31
	ev.Timecode.Timezone = "-0500"
	if got, want := FormatLine(ev), "1999-12-31 -0500 01:02:03:04 |     1920     3839       12  R"; got != want {
		t.Errorf("FormatLine = %q, want %q", got, want)
	}
}
