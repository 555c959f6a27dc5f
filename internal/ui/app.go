package ui

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"gioui.org/app"
	"gioui.org/gesture"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"github.com/oligo/gioview/menu"
	"github.com/oligo/gioview/theme"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/OpenTraceLab/bubbleproof/internal/session"
	"github.com/OpenTraceLab/bubbleproof/pkg/geometry"
	"github.com/OpenTraceLab/bubbleproof/pkg/interaction"
	"github.com/OpenTraceLab/bubbleproof/pkg/viewport"
)

type toolButton struct {
	click widget.Clickable
	icon  *widget.Icon
	desc  string
}

// App drives the Gio-based proofreading UI.
type App struct {
	Window *app.Window
	Theme  *material.Theme
	State  *AppState

	gvTheme  *theme.Theme
	config   *Config
	explorer *explorer.Explorer

	ops op.Ops

	sess   *session.Session
	panes  [2]*pane
	active *pane
	// pending receives page paths chosen in the file dialog goroutine.
	pending chan string

	openBtn    toolButton
	saveBtn    toolButton
	zoomInBtn  toolButton
	zoomOutBtn toolButton
	resetBtn   toolButton
	fitBtn     toolButton
	deleteBtn  toolButton

	syncSwitch widget.Bool
	drawSwitch widget.Bool

	viewMenu    *menu.DropdownMenu
	viewMenuBtn widget.Clickable

	logList       layout.List
	logPaneHeight float32
	logSplitter   gesture.Drag
	logSplitLastY float32
	logSplitDrag  bool
}

// New wires the Gio window, theme, and shared state together.
func New(window *app.Window, state *AppState, cfg *Config) *App {
	if state == nil {
		state = NewState()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	gv := theme.NewTheme("", nil, true)
	gv.WithPalette(theme.Palette{
		Bg:         color.NRGBA{R: 245, G: 246, B: 252, A: 255},
		Fg:         color.NRGBA{R: 34, G: 37, B: 49, A: 255},
		ContrastBg: color.NRGBA{R: 80, G: 120, B: 255, A: 255},
		ContrastFg: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Bg2:        color.NRGBA{R: 225, G: 230, B: 244, A: 255},
	})
	a := &App{
		Window:  window,
		Theme:   gv.Theme,
		State:   state,
		gvTheme: gv,
		config:  cfg,
		pending: make(chan string, 1),
		panes: [2]*pane{
			newPane(viewport.Original, "Original"),
			newPane(viewport.Translated, "Translated"),
		},
		logList: layout.List{Axis: layout.Vertical, ScrollToEnd: true},
	}
	a.active = a.panes[0]
	a.syncSwitch.Value = cfg.Sync
	a.drawSwitch.Value = cfg.Tool == interaction.ToolDraw.String()
	if window != nil {
		a.explorer = explorer.NewExplorer(window)
	}
	a.initToolbar()
	a.viewMenu = a.buildViewMenu()
	return a
}

// Run processes Gio events until the window is closed.
func (a *App) Run() error {
	for {
		e := a.Window.Event()
		if a.explorer != nil {
			a.explorer.ListenEvents(e)
		}
		switch ev := e.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&a.ops, ev)
			a.layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}

func (a *App) initToolbar() {
	makeIcon := func(data []byte, name string) *widget.Icon {
		icon, err := widget.NewIcon(data)
		if err != nil {
			log.Printf("ui: failed to load %s icon: %v", name, err)
			return nil
		}
		return icon
	}
	a.openBtn.icon, a.openBtn.desc = makeIcon(icons.FileFolderOpen, "open"), "Open page"
	a.saveBtn.icon, a.saveBtn.desc = makeIcon(icons.ContentSave, "save"), "Save page"
	a.zoomInBtn.icon, a.zoomInBtn.desc = makeIcon(icons.ActionZoomIn, "zoom in"), "Zoom in"
	a.zoomOutBtn.icon, a.zoomOutBtn.desc = makeIcon(icons.ActionZoomOut, "zoom out"), "Zoom out"
	a.resetBtn.icon, a.resetBtn.desc = makeIcon(icons.NavigationRefresh, "reset"), "Reset zoom"
	a.fitBtn.icon, a.fitBtn.desc = makeIcon(icons.NavigationFullscreen, "fit"), "Fit to screen"
	a.deleteBtn.icon, a.deleteBtn.desc = makeIcon(icons.ActionDelete, "delete"), "Delete selected"
}

func (a *App) buildViewMenu() *menu.DropdownMenu {
	type action struct {
		label string
		run   func()
	}
	actions := []action{
		{"Fit both panes", func() {
			for _, p := range a.panes {
				p.fitted = false
			}
		}},
		{"Reset both panes", func() {
			if a.sess != nil {
				a.sess.Pair.Original().ResetZoom()
				a.sess.Pair.Translated().ResetZoom()
			}
		}},
		{"Match other pane", func() {
			if a.sess == nil {
				return
			}
			if other := a.sess.Pair.Sibling(a.active.name); other != nil {
				a.sess.Pair.Get(a.active.name).SetTransform(other.Transform())
			}
		}},
		{"Clear selection", func() {
			if a.sess != nil {
				a.sess.Engine.ClearSelection()
			}
		}},
	}
	opts := make([]menu.MenuOption, 0, len(actions))
	for _, act := range actions {
		act := act
		opts = append(opts, menu.MenuOption{
			OnClicked: func() error {
				act.run()
				a.invalidate()
				return nil
			},
			Layout: func(gtx menu.C, th *theme.Theme) menu.D {
				lbl := material.Body1(th.Theme, act.label)
				return layout.Inset{Left: unit.Dp(4), Right: unit.Dp(4)}.Layout(gtx, lbl.Layout)
			},
		})
	}
	drop := menu.NewDropdownMenu([][]menu.MenuOption{opts})
	drop.MaxWidth = unit.Dp(220)
	return drop
}

// Load opens a page file and replaces the current session. It must run on
// the UI goroutine.
func (a *App) Load(path string) error {
	s, err := session.Open(path, a.config.Options(), a.handler())
	if err != nil {
		a.State.SetError(err)
		interaction.Logger().Error("ui: open page", "path", path, "err", err)
		return err
	}
	a.install(s)
	a.State.SetPage(path)
	a.State.SetError(nil)
	a.State.SetStatus(fmt.Sprintf("%d bubbles", s.Doc.Len()))
	interaction.Logger().Info("ui: page opened", "path", path, "bubbles", s.Doc.Len())

	a.config.LastPage = path
	a.saveConfig()
	return nil
}

// install makes s the edited session and hooks its change notifications
// to redraws.
func (a *App) install(s *session.Session) {
	a.sess = s
	for _, p := range a.panes {
		p.reset(s)
	}
	s.Engine.OnChange(a.invalidate)
	s.Pair.Original().OnChange(func(viewport.Transform) { a.invalidate() })
	s.Pair.Translated().OnChange(func(viewport.Transform) { a.invalidate() })
	s.Doc.OnChange(func() {
		a.State.SetDirty(s.Doc.Dirty())
		a.invalidate()
	})
	a.invalidate()
}

// handler receives finalized events after the document applied them.
func (a *App) handler() interaction.Handler {
	return interaction.Funcs{
		Select: func(index int) {
			a.State.SetHint("")
			if index < 0 {
				a.State.SetStatus("Selection cleared")
				return
			}
			a.State.SetStatus(fmt.Sprintf("Bubble %d selected", index))
		},
		MultiSelect: func(index int) {
			a.State.SetStatus(fmt.Sprintf("%d bubbles selected", a.sess.Sel.Len()))
		},
		DrawBubble: func(coords geometry.Rect) {
			a.State.SetStatus(fmt.Sprintf("Bubble added at %.0f,%.0f", coords.X1, coords.Y1))
		},
		Hint: func(msg string) {
			a.State.SetHint(msg)
		},
	}
}

func (a *App) openPage() {
	if a.explorer == nil {
		return
	}
	go func() {
		file, err := a.explorer.ChooseFile("json")
		if err != nil {
			if !errors.Is(err, explorer.ErrUserDecline) {
				interaction.Logger().Error("ui: page picker failed", "err", err)
			}
			return
		}
		defer file.Close()

		f, ok := file.(*os.File)
		if !ok {
			interaction.Logger().Error("ui: unable to get file path from picker")
			return
		}
		select {
		case a.pending <- f.Name():
		default:
		}
		a.invalidate()
	}()
}

func (a *App) savePage() {
	if a.sess == nil {
		return
	}
	if err := a.sess.Doc.Save(""); err != nil {
		a.State.SetError(err)
		interaction.Logger().Error("ui: save page", "err", err)
		return
	}
	a.State.SetDirty(false)
	a.State.SetError(nil)
	interaction.Logger().Info("ui: page saved", "path", a.sess.Doc.Path())
}

func (a *App) deleteSelected() {
	if a.sess == nil {
		return
	}
	n, err := a.sess.DeleteSelected()
	if err != nil {
		a.State.SetError(err)
		return
	}
	if n > 0 {
		interaction.Logger().Info("ui: bubbles deleted", "count", n)
		a.State.SetStatus(fmt.Sprintf("%d bubbles deleted", n))
	}
}

func (a *App) saveConfig() {
	if err := SaveConfig(a.config); err != nil {
		interaction.Logger().Warn("ui: save config", "err", err)
	}
}

// activeController is the controller the toolbar and keys act on.
func (a *App) activeController() *viewport.Controller {
	if a.sess == nil {
		return nil
	}
	return a.sess.Pair.Get(a.active.name)
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	select {
	case path := <-a.pending:
		a.Load(path)
	default:
	}
	a.handleKeys(gtx)
	a.handleToolbar(gtx)
	state := a.State.Snapshot()

	paint.FillShape(gtx.Ops, color.NRGBA{R: 238, G: 241, B: 251, A: 255}, clip.Rect{Max: gtx.Constraints.Max}.Op())

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.layoutTopBar(gtx, state)
		}),
		layout.Flexed(1, a.layoutPanes),
		layout.Rigid(a.layoutLogSplitter),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.layoutLogPane(gtx, state)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.layoutStatus(gtx, state)
		}),
	)
}

func (a *App) handleKeys(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(
			key.Filter{Name: "+", Optional: key.ModShift},
			key.Filter{Name: "-"},
			key.Filter{Name: "R"},
			key.Filter{Name: "F"},
			key.Filter{Name: key.NameEscape},
			key.Filter{Name: key.NameDeleteForward},
			key.Filter{Name: key.NameDeleteBackward},
			key.Filter{Name: "S", Required: key.ModShortcut},
			key.Filter{Name: "O", Required: key.ModShortcut},
		)
		if !ok {
			break
		}
		e, ok := ev.(key.Event)
		if !ok || e.State != key.Press {
			continue
		}
		ctrl := a.activeController()
		switch e.Name {
		case "+":
			if ctrl != nil {
				ctrl.ZoomIn()
			}
		case "-":
			if ctrl != nil {
				ctrl.ZoomOut()
			}
		case "R":
			if ctrl != nil {
				ctrl.ResetZoom()
			}
		case "F":
			a.active.fitted = false
		case key.NameEscape:
			if a.sess != nil {
				a.sess.Engine.ClearSelection()
			}
		case key.NameDeleteForward, key.NameDeleteBackward:
			a.deleteSelected()
		case "S":
			a.savePage()
		case "O":
			a.openPage()
		}
		gtx.Execute(op.InvalidateCmd{})
	}
}

func (a *App) handleToolbar(gtx layout.Context) {
	if a.openBtn.click.Clicked(gtx) {
		a.openPage()
	}
	if a.saveBtn.click.Clicked(gtx) {
		a.savePage()
	}
	if a.deleteBtn.click.Clicked(gtx) {
		a.deleteSelected()
	}
	if ctrl := a.activeController(); ctrl != nil {
		if a.zoomInBtn.click.Clicked(gtx) {
			ctrl.ZoomIn()
		}
		if a.zoomOutBtn.click.Clicked(gtx) {
			ctrl.ZoomOut()
		}
		if a.resetBtn.click.Clicked(gtx) {
			ctrl.ResetZoom()
		}
	}
	if a.fitBtn.click.Clicked(gtx) {
		a.active.fitted = false
	}
	if a.syncSwitch.Update(gtx) {
		a.config.Sync = a.syncSwitch.Value
		if a.sess != nil {
			a.sess.Pair.SetSync(a.syncSwitch.Value)
		}
		interaction.Logger().Info("ui: sync", "on", a.syncSwitch.Value)
		a.saveConfig()
	}
	if a.drawSwitch.Update(gtx) {
		tool := interaction.ToolSelect
		if a.drawSwitch.Value {
			tool = interaction.ToolDraw
		}
		a.config.Tool = tool.String()
		if a.sess != nil {
			a.sess.Engine.SetTool(tool)
		}
		a.saveConfig()
	}
	if a.viewMenuBtn.Clicked(gtx) {
		a.viewMenu.ToggleVisibility(gtx)
	}
}

func (a *App) layoutTopBar(gtx layout.Context, state StateSnapshot) layout.Dimensions {
	title := "Bubbleproof"
	if state.PagePath != "" {
		title = filepath.Base(state.PagePath)
		if state.Dirty {
			title += " *"
		}
	}
	iconBtn := func(b *toolButton) layout.FlexChild {
		return layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if b.icon == nil {
				return material.Button(a.Theme, &b.click, b.desc).Layout(gtx)
			}
			btn := material.IconButton(a.Theme, &b.click, b.icon, b.desc)
			btn.Size = unit.Dp(20)
			btn.Inset = layout.UniformInset(unit.Dp(6))
			return layout.Inset{Right: unit.Dp(4)}.Layout(gtx, btn.Layout)
		})
	}
	return layout.Inset{
		Top: unit.Dp(8), Bottom: unit.Dp(8), Left: unit.Dp(16), Right: unit.Dp(16),
	}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(material.H6(a.Theme, title).Layout),
			layout.Rigid(layout.Spacer{Width: unit.Dp(24)}.Layout),
			iconBtn(&a.openBtn),
			iconBtn(&a.saveBtn),
			layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
			iconBtn(&a.zoomInBtn),
			iconBtn(&a.zoomOutBtn),
			iconBtn(&a.resetBtn),
			iconBtn(&a.fitBtn),
			layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
			iconBtn(&a.deleteBtn),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{}
			}),
			layout.Rigid(material.Switch(a.Theme, &a.syncSwitch, "Sync viewports").Layout),
			layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
			layout.Rigid(material.Body2(a.Theme, "Sync").Layout),
			layout.Rigid(layout.Spacer{Width: unit.Dp(16)}.Layout),
			layout.Rigid(material.Switch(a.Theme, &a.drawSwitch, "Draw tool").Layout),
			layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
			layout.Rigid(material.Body2(a.Theme, "Draw").Layout),
			layout.Rigid(layout.Spacer{Width: unit.Dp(16)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				btn := material.Button(a.Theme, &a.viewMenuBtn, "View")
				btn.Inset = layout.UniformInset(unit.Dp(6))
				dims := btn.Layout(gtx)
				// Layout menu after button so it appears on top
				a.viewMenu.Layout(gtx, a.gvTheme)
				return dims
			}),
		)
	})
}

func (a *App) layoutPanes(gtx layout.Context) layout.Dimensions {
	gap := gtx.Dp(unit.Dp(4))
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return a.panes[0].Layout(gtx, a)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Dimensions{Size: image.Pt(gap, gtx.Constraints.Max.Y)}
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return a.panes[1].Layout(gtx, a)
		}),
	)
}

func (a *App) layoutLogPane(gtx layout.Context, state StateSnapshot) layout.Dimensions {
	a.ensureLogPaneHeight(gtx)
	height := int(a.logPaneHeight)
	if h := gtx.Constraints.Max.Y; h > 0 && height > h {
		height = h
	}
	gtx.Constraints.Min.Y = height
	gtx.Constraints.Max.Y = height
	return layout.Inset{
		Left: unit.Dp(16), Right: unit.Dp(16), Top: unit.Dp(6), Bottom: unit.Dp(6),
	}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return a.layoutLogs(gtx, state)
	})
}

func (a *App) layoutLogSplitter(gtx layout.Context) layout.Dimensions {
	height := gtx.Dp(unit.Dp(10))
	if height < 4 {
		height = 4
	}
	size := image.Pt(gtx.Constraints.Max.X, height)
	if size.X == 0 {
		size.X = gtx.Dp(unit.Dp(400))
	}
	rect := clip.Rect{Max: size}
	paint.FillShape(gtx.Ops, color.NRGBA{R: 210, G: 214, B: 228, A: 255}, rect.Op())

	stack := rect.Push(gtx.Ops)
	a.logSplitter.Add(gtx.Ops)
	stack.Pop()

	if ev, ok := a.logSplitter.Update(gtx.Metric, gtx.Source, gesture.Vertical); ok {
		switch ev.Kind {
		case pointer.Press:
			a.logSplitDrag = true
			a.logSplitLastY = ev.Position.Y
		case pointer.Drag:
			if a.logSplitDrag {
				dy := ev.Position.Y - a.logSplitLastY
				a.logSplitLastY = ev.Position.Y
				a.logPaneHeight -= dy
				a.clampLogPaneHeight(gtx)
				a.invalidate()
			}
		case pointer.Release, pointer.Cancel:
			a.logSplitDrag = false
		}
	}
	return layout.Dimensions{Size: size}
}

func (a *App) ensureLogPaneHeight(gtx layout.Context) {
	if a.logPaneHeight > 0 {
		return
	}
	a.logPaneHeight = float32(gtx.Dp(unit.Dp(140)))
	a.clampLogPaneHeight(gtx)
}

func (a *App) clampLogPaneHeight(gtx layout.Context) {
	lo := float32(gtx.Dp(unit.Dp(60)))
	hi := float32(gtx.Dp(unit.Dp(400)))
	if a.logPaneHeight < lo {
		a.logPaneHeight = lo
	}
	if a.logPaneHeight > hi {
		a.logPaneHeight = hi
	}
}

func (a *App) layoutLogs(gtx layout.Context, state StateSnapshot) layout.Dimensions {
	if len(state.Logs) == 0 {
		lbl := material.Caption(a.Theme, "Logs will appear here.")
		return lbl.Layout(gtx)
	}
	return a.logList.Layout(gtx, len(state.Logs), func(gtx layout.Context, idx int) layout.Dimensions {
		if idx >= len(state.Logs) {
			return layout.Dimensions{}
		}
		lbl := material.Caption(a.Theme, state.Logs[idx])
		lbl.Color = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
		return lbl.Layout(gtx)
	})
}

func (a *App) layoutStatus(gtx layout.Context, state StateSnapshot) layout.Dimensions {
	labels := []string{fmt.Sprintf("Version: %s", state.AppVersion)}
	if s := a.sess; s != nil {
		mode := s.State.Mode().String()
		zoom := s.Pair.Get(a.active.name).Transform().Scale * 100
		sync := "off"
		if s.Pair.Synced() {
			sync = "on"
		}
		labels = append(labels,
			fmt.Sprintf("Bubbles: %d", s.Doc.Len()),
			fmt.Sprintf("Selected: %d", s.Sel.Len()),
			fmt.Sprintf("Mode: %s", mode),
			fmt.Sprintf("Zoom: %.0f%%", zoom),
			fmt.Sprintf("Sync: %s", sync),
		)
	}
	status := fmt.Sprintf("Status: %s", state.Status)
	if state.LastError != nil {
		status = fmt.Sprintf("Error: %v", state.LastError)
	}

	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			paint.FillShape(gtx.Ops, color.NRGBA{R: 230, G: 234, B: 244, A: 255}, clip.Rect{Max: gtx.Constraints.Max}.Op())
			return layout.Dimensions{Size: gtx.Constraints.Max}
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			inset := layout.Inset{Left: unit.Dp(16), Right: unit.Dp(16), Top: unit.Dp(8), Bottom: unit.Dp(8)}
			return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				children := make([]layout.FlexChild, 0, len(labels)*2+4)
				for _, l := range labels {
					children = append(children,
						layout.Rigid(material.Body2(a.Theme, l).Layout),
						layout.Rigid(layout.Spacer{Width: unit.Dp(18)}.Layout),
					)
				}
				children = append(children, layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return layout.Dimensions{}
				}))
				if state.Hint != "" {
					hint := material.Body2(a.Theme, state.Hint)
					hint.Color = primaryColor
					children = append(children,
						layout.Rigid(hint.Layout),
						layout.Rigid(layout.Spacer{Width: unit.Dp(18)}.Layout),
					)
				}
				children = append(children, layout.Rigid(material.Body2(a.Theme, status).Layout))
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
			})
		}),
	)
}

// invalidate requests a new frame.
func (a *App) invalidate() {
	if a.Window != nil {
		a.Window.Invalidate()
	}
}
