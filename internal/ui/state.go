package ui

import (
	"sync"
	"time"
)

// StateSnapshot captures a copy of the state data for rendering without
// requiring the UI to hold locks while laying out widgets.
type StateSnapshot struct {
	PagePath string
	Dirty    bool

	LastError error
	Status    string
	Hint      string

	AppVersion string

	Logs []string

	LastUpdated time.Time
}

// AppState tracks the mutable state shared between the Gio event loop,
// the log handler and background file dialogs.
type AppState struct {
	mu sync.RWMutex

	pagePath string
	dirty    bool

	lastError error
	status    string
	hint      string

	appVersion string

	logs     []string
	logLimit int

	lastUpdated time.Time
}

// NewState returns a baseline AppState with safe defaults.
func NewState() *AppState {
	return &AppState{
		logLimit:    200,
		status:      "No page",
		appVersion:  "dev",
		lastUpdated: time.Now(),
	}
}

// Snapshot returns a copy of the mutable state for rendering.
func (s *AppState) Snapshot() StateSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logCopy := make([]string, len(s.logs))
	copy(logCopy, s.logs)

	return StateSnapshot{
		PagePath:    s.pagePath,
		Dirty:       s.dirty,
		LastError:   s.lastError,
		Status:      s.status,
		Hint:        s.hint,
		AppVersion:  s.appVersion,
		Logs:        logCopy,
		LastUpdated: s.lastUpdated,
	}
}

// SetPage records the open page file.
func (s *AppState) SetPage(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pagePath = path
	s.dirty = false
	s.hint = ""
	s.lastUpdated = time.Now()
}

// SetDirty marks whether the page has unsaved edits.
func (s *AppState) SetDirty(dirty bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = dirty
	s.lastUpdated = time.Now()
}

// SetStatus updates the status line.
func (s *AppState) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.lastUpdated = time.Now()
}

// SetError records the last error; nil clears it.
func (s *AppState) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = err
	s.lastUpdated = time.Now()
}

// SetHint shows a short message about a rejected edit.
func (s *AppState) SetHint(hint string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hint = hint
	s.lastUpdated = time.Now()
}

// AppendLog appends a log message, trimming the oldest entries past the limit.
func (s *AppState) AppendLog(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logs = append(s.logs, msg)
	if s.logLimit > 0 && len(s.logs) > s.logLimit {
		offset := len(s.logs) - s.logLimit
		s.logs = append([]string(nil), s.logs[offset:]...)
	}
	s.lastUpdated = time.Now()
}

// SetAppVersion records the version shown in the status bar.
func (s *AppState) SetAppVersion(version string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if version == "" {
		version = "dev"
	}
	s.appVersion = version
}
