// Package ui is the Gio desktop host: two viewport panes over one page,
// a toolbar, a log pane and a status bar.
package ui

import (
	"log"
	"log/slog"
	"os"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/OpenTraceLab/bubbleproof/pkg/interaction"
)

// Run launches the Gio UI and blocks until the window closes. pagePath may
// be empty to start without a page; the last opened page is used then.
func Run(state *AppState, pagePath string) error {
	if state == nil {
		state = NewState()
	}
	cfg, err := LoadConfig()
	if err != nil {
		log.Printf("ui: load config: %v", err)
		cfg = DefaultConfig()
	}
	if pagePath == "" {
		pagePath = cfg.LastPage
	}

	// Keep whatever handler the caller installed and mirror records into
	// the log pane.
	interaction.SetLogger(slog.New(NewLogHandler(state, slog.LevelInfo, interaction.Logger().Handler())))

	go func() {
		w := new(app.Window)
		w.Option(app.Title("Bubbleproof"), app.Size(unit.Dp(1360), unit.Dp(860)))
		ui := New(w, state, cfg)
		if pagePath != "" {
			ui.Load(pagePath)
		}
		if err := ui.Run(); err != nil {
			log.Printf("ui: %v", err)
		}
		os.Exit(0)
	}()

	app.Main()
	return nil
}
