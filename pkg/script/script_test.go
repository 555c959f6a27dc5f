package script

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/OpenTraceLab/bubbleproof/pkg/bubble"
	"github.com/OpenTraceLab/bubbleproof/pkg/geometry"
	"github.com/OpenTraceLab/bubbleproof/pkg/interaction"
	"github.com/OpenTraceLab/bubbleproof/pkg/overlay"
	"github.com/OpenTraceLab/bubbleproof/pkg/selection"
	"github.com/OpenTraceLab/bubbleproof/pkg/viewport"
)

type page struct{ bubbles []bubble.Bubble }

func (p *page) Bubbles() []bubble.Bubble { return p.bubbles }
func (p *page) ImageSize() geometry.Size { return geometry.Size{} }

type session struct {
	rec *interaction.Recorder
	sel *selection.Model
	eng *interaction.Engine
}

func newSession(rects ...geometry.Rect) *session {
	doc := &page{}
	for _, r := range rects {
		doc.bubbles = append(doc.bubbles, bubble.New(r))
	}
	state := interaction.NewState()
	sel := selection.New()
	pair := viewport.NewPair(viewport.DefaultConfig())
	rec := &interaction.Recorder{}
	r := overlay.NewRenderer(doc, state, sel, pair, overlay.DefaultConfig())
	eng := interaction.NewEngine(state, sel, pair, doc, rec, r, interaction.DefaultConfig())
	return &session{rec: rec, sel: sel, eng: eng}
}

func (s *session) play(t *testing.T, src string) {
	t.Helper()
	if err := Play(s.eng, src); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
}

func TestParseStatements(t *testing.T) {
	p, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}
	src := `# set up
sync on
tool draw

zoom translated at 400 300 by 1.1
zoom original reset
fit original 800 600
pan original from 10 10 to 60 40
down original 200.5 -3 with ctrl+shift
move 260 210
up
up 1 2 with meta
`
	s, err := p.ParseString(src)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	if len(s.Statements) != 10 {
		t.Fatalf("got %d statements, want 10", len(s.Statements))
	}
	z := s.Statements[2].Zoom
	if z == nil || z.View != "translated" || z.At == nil || z.At.X != 400 || z.Factor != 1.1 {
		t.Fatalf("zoom = %+v", z)
	}
	d := s.Statements[6].Down
	if d == nil || d.At.X != 200.5 || d.At.Y != -3 || !reflect.DeepEqual(d.Mods.Names, []string{"ctrl", "shift"}) {
		t.Fatalf("down = %+v", d)
	}
	if u := s.Statements[8].Up; u == nil || u.At != nil {
		t.Fatalf("bare up = %+v", u)
	}
	if s.Statements[6].Pos.Line != 9 {
		t.Fatalf("down on line %d, want 9", s.Statements[6].Pos.Line)
	}
}

func TestParseError(t *testing.T) {
	p, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}
	if _, err := p.ParseString("zoom original sideways\n"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestRunRejectsUnknownViewport(t *testing.T) {
	s := newSession()
	err := Play(s.eng, "sync on\nzoom left in\n")
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("err = %v, want line 2 error", err)
	}
}

func TestReplayResizeScenario(t *testing.T) {
	s := newSession(geometry.R(100, 100, 200, 150))
	s.play(t, `
down original 150 125
up
down original 200 150
move 260 210
up
`)
	want := []interaction.Event{
		{Kind: interaction.EventSelect, Index: 0},
		{Kind: interaction.EventResizeEnd, Index: 0, Coords: geometry.R(100, 100, 260, 210)},
	}
	if !reflect.DeepEqual(s.rec.Events, want) {
		t.Fatalf("events = %+v, want %+v", s.rec.Events, want)
	}
}

func TestReplaySyncZoom(t *testing.T) {
	s := newSession()
	s.play(t, "sync on\nzoom translated at 400 300 by 1.1\n")
	pair := s.eng.Pair()
	if pair.Original().Transform() != pair.Translated().Transform() {
		t.Fatalf("original %+v != translated %+v", pair.Original().Transform(), pair.Translated().Transform())
	}
	got := pair.Original().Transform()
	if math.Abs(got.Scale-1.1) > 1e-9 || math.Abs(got.TranslateX+40) > 1e-9 || math.Abs(got.TranslateY+30) > 1e-9 {
		t.Fatalf("transform = %+v", got)
	}
}

func TestReplayMultiSelect(t *testing.T) {
	s := newSession(geometry.R(0, 0, 50, 50), geometry.R(100, 0, 150, 50), geometry.R(200, 0, 250, 50))
	s.play(t, `
down original 25 25
up
down original 225 25 with ctrl
up
down original 25 25 with ctrl
up
`)
	if got := s.sel.Indices(); !reflect.DeepEqual(got, []int{2}) || s.sel.Selected() != 2 {
		t.Fatalf("selection = %v primary %d, want [2] primary 2", got, s.sel.Selected())
	}
}

func TestReplayRotateSnap(t *testing.T) {
	// Rotate handle sits 24px above the top edge center (150,100); the
	// move is 7 degrees clockwise around the center (150,125).
	src := `
down original 150 125
up
down original 150 76
move 155.9716 76.3652 with shift
`
	s := newSession(geometry.R(100, 100, 200, 150))
	s.play(t, src)
	rot, ok := s.eng.State().Current().(interaction.Rotating)
	if !ok {
		t.Fatalf("state = %s, want rotating", s.eng.State().Mode())
	}
	if rot.Angle != 0 {
		t.Fatalf("snapped angle = %v, want 0", rot.Angle)
	}
	s.play(t, "move 155.9716 76.3652\n")
	rot = s.eng.State().Current().(interaction.Rotating)
	if math.Abs(rot.Angle-7) > 0.01 {
		t.Fatalf("free angle = %v, want ~7", rot.Angle)
	}
}

func TestReplayDrawDiscard(t *testing.T) {
	s := newSession()
	s.play(t, "tool draw\ndown original 50 50\nmove 55 53\nup\n")
	if len(s.rec.Events) != 0 {
		t.Fatalf("events = %+v, want none", s.rec.Events)
	}
	if s.eng.State().Active() {
		t.Fatalf("state not idle")
	}
}

func TestReplayFitAndPan(t *testing.T) {
	s := newSession()
	s.play(t, "fit original 800 600\npan original from 10 10 to 60 40\n")
	got := s.eng.Pair().Original().Transform()
	scale := 0.3 * 0.95
	if math.Abs(got.Scale-scale) > 1e-9 {
		t.Fatalf("scale = %v, want %v", got.Scale, scale)
	}
	if math.Abs(got.TranslateX-((800-2000*scale)/2+50)) > 1e-9 || math.Abs(got.TranslateY-((600-2000*scale)/2+30)) > 1e-9 {
		t.Fatalf("transform = %+v", got)
	}
}
