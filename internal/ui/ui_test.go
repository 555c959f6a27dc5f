package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gioui.org/io/key"

	"github.com/OpenTraceLab/bubbleproof/pkg/interaction"
)

func TestAppendLogTrimsToLimit(t *testing.T) {
	s := NewState()
	for i := 0; i < 250; i++ {
		s.AppendLog(fmt.Sprintf("entry %d", i))
	}
	snap := s.Snapshot()
	if len(snap.Logs) != 200 {
		t.Fatalf("got %d logs, want 200", len(snap.Logs))
	}
	if snap.Logs[0] != "entry 50" || snap.Logs[199] != "entry 249" {
		t.Fatalf("logs span %q..%q", snap.Logs[0], snap.Logs[199])
	}

	snap.Logs[0] = "changed"
	if s.Snapshot().Logs[0] != "entry 50" {
		t.Fatalf("snapshot shares the log slice")
	}
}

func TestSetPageClearsDirtyAndHint(t *testing.T) {
	s := NewState()
	s.SetDirty(true)
	s.SetHint("bubble must be at least 10x10")
	s.SetPage("/tmp/p.json")
	snap := s.Snapshot()
	if snap.Dirty || snap.Hint != "" || snap.PagePath != "/tmp/p.json" {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if !cfg.Sync || cfg.Tool != "select" {
		t.Fatalf("defaults = %+v", cfg)
	}

	cfg.Sync = false
	cfg.Tool = "draw"
	cfg.HandleSize = 12
	cfg.LastPage = "/pages/p001.json"
	if err := saveConfigFile(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	back, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *back != *cfg {
		t.Fatalf("got %+v, want %+v", back, cfg)
	}

	opts := back.Options()
	if opts.Sync || opts.Tool != interaction.ToolDraw || opts.Overlay.HandleSize != 12 {
		t.Fatalf("options = %+v", opts)
	}
}

func TestConfigRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfigFile(path); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLogHandlerAppendsToState(t *testing.T) {
	s := NewState()
	logger := slog.New(NewLogHandler(s, slog.LevelInfo, nil))
	logger.Debug("hidden")
	logger.With("viewport", "original").WithGroup("edit").Info("interaction: drag", "index", 2)

	logs := s.Snapshot().Logs
	if len(logs) != 1 {
		t.Fatalf("got %d entries, want 1: %q", len(logs), logs)
	}
	for _, want := range []string{"INFO interaction: drag", "viewport=original", "edit.index=2"} {
		if !strings.Contains(logs[0], want) {
			t.Fatalf("entry %q lacks %q", logs[0], want)
		}
	}
}

type countHandler struct {
	slog.Handler
	n *int
}

func (h countHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h countHandler) Handle(context.Context, slog.Record) error {
	*h.n++
	return nil
}

func TestLogHandlerForwards(t *testing.T) {
	s := NewState()
	n := 0
	h := NewLogHandler(s, slog.LevelWarn, countHandler{n: &n})
	logger := slog.New(h)
	logger.Debug("only next")
	logger.Error("both", "err", errors.New("boom"))

	if n != 2 {
		t.Fatalf("next handled %d records, want 2", n)
	}
	if logs := s.Snapshot().Logs; len(logs) != 1 || !strings.Contains(logs[0], "err=boom") {
		t.Fatalf("logs = %q", logs)
	}
}

func TestModifiers(t *testing.T) {
	tests := []struct {
		in   key.Modifiers
		want interaction.Modifiers
	}{
		{0, 0},
		{key.ModShift, interaction.ModShift},
		{key.ModCtrl | key.ModAlt, interaction.ModCtrl | interaction.ModAlt},
		{key.ModCommand, interaction.ModMeta},
		{key.ModSuper, interaction.ModMeta},
	}
	for _, tc := range tests {
		if got := modifiers(tc.in); got != tc.want {
			t.Fatalf("modifiers(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if !modifiers(key.ModCommand).Multi() {
		t.Fatalf("command should toggle multi-select")
	}
}

func TestWheelZoom(t *testing.T) {
	if got := wheelZoom(-3, 1.1); got != 1.1 {
		t.Fatalf("scroll up = %v, want 1.1", got)
	}
	if got := wheelZoom(2, 1.25); got != 0.8 {
		t.Fatalf("scroll down = %v, want 0.8", got)
	}
	if got := wheelZoom(0, 1.1); got != 1 {
		t.Fatalf("no scroll = %v, want 1", got)
	}
}
