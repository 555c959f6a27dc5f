package overlay

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/OpenTraceLab/bubbleproof/pkg/bubble"
	"github.com/OpenTraceLab/bubbleproof/pkg/geometry"
	"github.com/OpenTraceLab/bubbleproof/pkg/interaction"
	"github.com/OpenTraceLab/bubbleproof/pkg/selection"
	"github.com/OpenTraceLab/bubbleproof/pkg/viewport"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func selected(i ...int) *selection.Model {
	m := selection.New()
	for k, idx := range i {
		if k == 0 {
			m.Select(idx)
			continue
		}
		m.Toggle(idx)
	}
	return m
}

func TestHandlesKeepScreenSize(t *testing.T) {
	bubbles := []bubble.Bubble{bubble.New(geometry.R(100, 100, 200, 150))}
	cfg := DefaultConfig()
	for _, scale := range []float64{0.25, 1, 2.5, 8} {
		tr := viewport.Transform{Scale: scale, TranslateX: 10, TranslateY: 20}
		frame := Compute(bubbles, interaction.Idle{}, selected(0), tr, cfg)
		st := frame.Styles[0]
		if len(st.Handles) != 8 {
			t.Fatalf("scale %v: %d handles, want 8", scale, len(st.Handles))
		}
		for _, hm := range st.Handles {
			if !near(hm.Box.Width(), cfg.HandleSize) || !near(hm.Box.Height(), cfg.HandleSize) {
				t.Fatalf("scale %v: handle %s is %vx%v px", scale, hm.Handle, hm.Box.Width(), hm.Box.Height())
			}
		}
		if d := geometry.Distance(st.Connector[0], st.Connector[1]); !near(d, cfg.RotateOffset) {
			t.Fatalf("scale %v: rotate handle %v px from top edge, want %v", scale, d, cfg.RotateOffset)
		}
	}
}

func TestHandlePositions(t *testing.T) {
	bubbles := []bubble.Bubble{bubble.New(geometry.R(100, 100, 200, 150))}
	frame := Compute(bubbles, interaction.Idle{}, selected(0), viewport.Identity(), DefaultConfig())
	want := map[geometry.Handle]geometry.Point{
		geometry.HandleNW: {X: 100, Y: 100},
		geometry.HandleSE: {X: 200, Y: 150},
		geometry.HandleN:  {X: 150, Y: 100},
		geometry.HandleW:  {X: 100, Y: 125},
	}
	for _, hm := range frame.Styles[0].Handles {
		if p, ok := want[hm.Handle]; ok && geometry.Distance(p, hm.Center) > 1e-9 {
			t.Fatalf("handle %s at %+v, want %+v", hm.Handle, hm.Center, p)
		}
	}
	if r := frame.Styles[0].Rotate; geometry.Distance(r, geometry.Pt(150, 76)) > 1e-9 {
		t.Fatalf("rotate handle at %+v", r)
	}
}

func TestLiveGeometryFromInteraction(t *testing.T) {
	bubbles := []bubble.Bubble{
		bubble.New(geometry.R(100, 100, 200, 150)),
		bubble.New(geometry.R(300, 300, 350, 350)),
	}
	live := geometry.R(100, 100, 260, 210)
	in := interaction.Resizing{Index: 0, Handle: geometry.HandleSE, Start: bubbles[0].Coords, Live: live}
	tr := viewport.Transform{Scale: 2}

	frame := Compute(bubbles, in, selected(0), tr, DefaultConfig())
	if st := frame.Styles[0]; !st.Live || st.Box != tr.RectToScreen(live) {
		t.Fatalf("style 0 = %+v, want live box %+v", st.Box, tr.RectToScreen(live))
	}
	if frame.Styles[1].Live {
		t.Fatalf("style 1 should not be live")
	}

	rot := interaction.Rotating{Index: 1, Angle: 45}
	frame = Compute(bubbles, rot, selected(0), tr, DefaultConfig())
	if got := frame.Styles[1].Angle; got != 45 {
		t.Fatalf("angle = %v, want 45", got)
	}
}

func TestKinds(t *testing.T) {
	bubbles := []bubble.Bubble{
		bubble.New(geometry.R(0, 0, 20, 20)),
		bubble.New(geometry.R(40, 0, 60, 20)),
		bubble.New(geometry.R(80, 0, 100, 20)),
	}
	frame := Compute(bubbles, nil, selected(2, 0), viewport.Identity(), DefaultConfig())
	want := []Kind{KindMulti, KindPlain, KindPrimary}
	for i, st := range frame.Styles {
		if st.Kind != want[i] {
			t.Fatalf("style %d kind = %s, want %s", i, st.Kind, want[i])
		}
		if (len(st.Handles) > 0) != (st.Kind == KindPrimary) {
			t.Fatalf("style %d has %d handles", i, len(st.Handles))
		}
	}
}

func TestDraftBox(t *testing.T) {
	in := interaction.DrawingBox{StartImage: geometry.Pt(10, 10), Live: geometry.R(10, 10, 40, 30)}
	frame := Compute(nil, in, nil, viewport.Transform{Scale: 0.5, TranslateX: 5}, DefaultConfig())
	if frame.Draft == nil {
		t.Fatalf("missing draft")
	}
	if want := geometry.R(10, 5, 25, 15); *frame.Draft != want {
		t.Fatalf("draft = %+v, want %+v", *frame.Draft, want)
	}
}

func TestHitTestOrder(t *testing.T) {
	bubbles := []bubble.Bubble{
		bubble.New(geometry.R(100, 100, 200, 150)),
		bubble.New(geometry.R(180, 130, 260, 200)),
	}
	cfg := DefaultConfig()
	frame := Compute(bubbles, interaction.Idle{}, selected(0), viewport.Identity(), cfg)

	tests := []struct {
		name string
		p    geometry.Point
		want interaction.Target
	}{
		{"se handle over body", geometry.Pt(201, 151), interaction.Target{Kind: interaction.TargetHandle, Index: 0, Handle: geometry.HandleSE}},
		{"rotate", geometry.Pt(150, 77), interaction.Target{Kind: interaction.TargetRotate, Index: 0}},
		{"top-most body", geometry.Pt(190, 140), interaction.Target{Kind: interaction.TargetBody, Index: 1}},
		{"lower body", geometry.Pt(130, 125), interaction.Target{Kind: interaction.TargetBody, Index: 0}},
		{"empty", geometry.Pt(500, 500), interaction.Target{}},
	}
	for _, tc := range tests {
		if got := HitTest(frame, tc.p, cfg); got != tc.want {
			t.Fatalf("%s: got %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestHitTestRotatedBody(t *testing.T) {
	b := bubble.New(geometry.R(0, 0, 100, 20))
	b.RotationAngle = 90
	frame := Compute([]bubble.Bubble{b}, nil, nil, viewport.Identity(), DefaultConfig())
	if got := HitTest(frame, geometry.Pt(50, -30), DefaultConfig()); got.Kind != interaction.TargetBody {
		t.Fatalf("rotated body not hit: %+v", got)
	}
	if got := HitTest(frame, geometry.Pt(5, 10), DefaultConfig()); got.Kind != interaction.TargetNone {
		t.Fatalf("unrotated extent still hit: %+v", got)
	}
}

func TestRasterizeStrokesOutline(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 160, 120))
	bubbles := []bubble.Bubble{bubble.New(geometry.R(20, 20, 120, 80))}
	cfg := DefaultConfig()
	frame := Compute(bubbles, nil, nil, viewport.Identity(), cfg)

	img, err := Rasterize(base, frame, cfg)
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}
	if img.Bounds() != base.Bounds() {
		t.Fatalf("bounds = %v, want %v", img.Bounds(), base.Bounds())
	}
	edge := color.RGBAModel.Convert(img.At(70, 20)).(color.RGBA)
	if edge.A == 0 {
		t.Fatalf("outline pixel is empty")
	}
	inside := color.RGBAModel.Convert(img.At(70, 50)).(color.RGBA)
	if inside.A != 0 {
		t.Fatalf("interior pixel painted: %+v", inside)
	}
}

func TestRendererPicksThroughViewport(t *testing.T) {
	doc := docStub{bubbles: []bubble.Bubble{bubble.New(geometry.R(100, 100, 200, 150))}}
	pair := viewport.NewPair(viewport.DefaultConfig())
	pair.Translated().SetTransform(viewport.Transform{Scale: 2, TranslateX: -100})
	r := NewRenderer(doc, interaction.NewState(), selection.New(), pair, DefaultConfig())

	// (300,250) in the translated pane is image (200,125), outside in the original pane.
	if got := r.Pick(viewport.Translated, geometry.Pt(300, 250)); got.Kind != interaction.TargetBody {
		t.Fatalf("translated pick = %+v", got)
	}
	if got := r.Pick(viewport.Original, geometry.Pt(300, 250)); got.Kind != interaction.TargetNone {
		t.Fatalf("original pick = %+v", got)
	}
	if f := r.Render(viewport.Translated); f.Viewport != viewport.Translated {
		t.Fatalf("frame viewport = %q", f.Viewport)
	}
}

type docStub struct{ bubbles []bubble.Bubble }

func (d docStub) Bubbles() []bubble.Bubble { return d.bubbles }
func (d docStub) ImageSize() geometry.Size { return geometry.Size{} }
