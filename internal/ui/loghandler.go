package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// LogHandler is a slog.Handler that feeds the log pane. Records are also
// passed to next, when set, so a terminal handler keeps working.
type LogHandler struct {
	state *AppState
	level slog.Leveler
	next  slog.Handler

	prefix string // pre-formatted attrs from WithAttrs
	group  string
}

var _ slog.Handler = (*LogHandler)(nil)

// NewLogHandler returns a handler appending records at or above level to
// state. A nil level means slog.LevelInfo.
func NewLogHandler(state *AppState, level slog.Leveler, next slog.Handler) *LogHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &LogHandler{state: state, level: level, next: next}
}

func (h *LogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if level >= h.level.Level() {
		return true
	}
	return h.next != nil && h.next.Enabled(ctx, level)
}

func (h *LogHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.level.Level() && h.state != nil {
		h.state.AppendLog(h.format(r))
	}
	if h.next != nil && h.next.Enabled(ctx, r.Level) {
		return h.next.Handle(ctx, r)
	}
	return nil
}

func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	var b strings.Builder
	b.WriteString(h.prefix)
	for _, a := range attrs {
		writeAttr(&b, h.group, a)
	}
	clone.prefix = b.String()
	if h.next != nil {
		clone.next = h.next.WithAttrs(attrs)
	}
	return &clone
}

func (h *LogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.group = joinKey(h.group, name)
	if h.next != nil {
		clone.next = h.next.WithGroup(name)
	}
	return &clone
}

// format renders "[Jan _2 15:04:05] LEVEL message k=v ...".
func (h *LogHandler) format(r slog.Record) string {
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s %s", ts.Format(time.Stamp), r.Level, r.Message)
	b.WriteString(h.prefix)
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, h.group, a)
		return true
	})
	return b.String()
}

func writeAttr(b *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		sub := joinKey(group, a.Key)
		for _, ga := range a.Value.Group() {
			writeAttr(b, sub, ga)
		}
		return
	}
	fmt.Fprintf(b, " %s=%s", joinKey(group, a.Key), a.Value.String())
}

func joinKey(group, key string) string {
	switch {
	case group == "":
		return key
	case key == "":
		return group
	}
	return group + "." + key
}
