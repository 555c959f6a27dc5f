package document

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/OpenTraceLab/bubbleproof/pkg/bubble"
	"github.com/OpenTraceLab/bubbleproof/pkg/geometry"
)

func newDoc() *Document {
	return FromPage(&bubble.Page{
		Image:  "page.png",
		Width:  800,
		Height: 600,
		Bubbles: []bubble.Bubble{
			bubble.New(geometry.R(10, 10, 60, 40)),
			bubble.New(geometry.R(100, 100, 200, 150)),
		},
	})
}

func TestApplyFinalizedEdits(t *testing.T) {
	d := newDoc()
	changes := 0
	d.OnChange(func() { changes++ })

	d.OnDragEnd(0, geometry.R(20, 20, 70, 50))
	d.OnResizeEnd(1, geometry.R(100, 100, 260, 210))
	d.OnRotateEnd(1, -30)
	d.OnDrawBubble(geometry.R(300, 300, 340, 330))

	got := d.Bubbles()
	if len(got) != 3 {
		t.Fatalf("got %d bubbles, want 3", len(got))
	}
	if got[0].Coords != geometry.R(20, 20, 70, 50) {
		t.Fatalf("bubble 0 = %+v", got[0].Coords)
	}
	if got[1].Coords != geometry.R(100, 100, 260, 210) || got[1].RotationAngle != -30 {
		t.Fatalf("bubble 1 = %+v", got[1])
	}
	if got[2].Coords != geometry.R(300, 300, 340, 330) {
		t.Fatalf("bubble 2 = %+v", got[2].Coords)
	}
	if changes != 4 {
		t.Fatalf("change callbacks = %d, want 4", changes)
	}

	journal := d.Journal()
	kinds := []ChangeKind{ChangeMove, ChangeResize, ChangeRotate, ChangeCreate}
	if len(journal) != len(kinds) {
		t.Fatalf("journal has %d entries, want %d", len(journal), len(kinds))
	}
	for i, k := range kinds {
		if journal[i].Kind != k || journal[i].Seq != i+1 {
			t.Fatalf("journal[%d] = %s seq %d, want %s seq %d", i, journal[i].Kind, journal[i].Seq, k, i+1)
		}
	}
	if journal[0].Before.Coords != geometry.R(10, 10, 60, 40) {
		t.Fatalf("move before = %+v", journal[0].Before.Coords)
	}
	if !d.Dirty() {
		t.Fatalf("document should be dirty")
	}
}

func TestEditOnMissingBubbleIsIgnored(t *testing.T) {
	d := newDoc()
	d.OnDragEnd(5, geometry.R(0, 0, 20, 20))
	if len(d.Journal()) != 0 {
		t.Fatalf("journal should be empty")
	}
}

func TestDelete(t *testing.T) {
	d := newDoc()
	if err := d.Delete(0); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if d.Len() != 1 || d.Bubbles()[0].Coords != geometry.R(100, 100, 200, 150) {
		t.Fatalf("bubbles = %+v", d.Bubbles())
	}
	if err := d.Delete(3); err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestOnEditReportsChangesBeforeReturning(t *testing.T) {
	d := newDoc()
	var got []Change
	order := ""
	d.OnEdit(func(c Change) {
		got = append(got, c)
		order += "e"
	})
	d.OnChange(func() { order += "c" })

	if err := d.Delete(0); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(got) != 1 || got[0].Kind != ChangeDelete || got[0].Index != 0 {
		t.Fatalf("changes after Delete = %+v", got)
	}
	d.SetImageSize(1024, 768)
	d.Replace(nil)
	d.OnDragEnd(5, geometry.R(0, 0, 20, 20))

	if len(got) != 2 || got[1].Kind != ChangeReplace || got[1].Index != -1 {
		t.Fatalf("changes = %+v", got)
	}
	if order != "eccec" {
		t.Fatalf("listener order = %q", order)
	}
}

func TestImageSize(t *testing.T) {
	d := New()
	if !d.ImageSize().Empty() {
		t.Fatalf("unknown size should be empty")
	}
	d.SetImageSize(1024, 768)
	if got := d.ImageSize(); got != geometry.Sz(1024, 768) {
		t.Fatalf("size = %+v", got)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.json")
	d := newDoc()
	d.OnRotateEnd(0, 45)
	if err := d.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if d.Dirty() {
		t.Fatalf("saved document should be clean")
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if back.Path() != path || back.Image() != "page.png" {
		t.Fatalf("path %q image %q", back.Path(), back.Image())
	}
	if got := back.Bubbles(); len(got) != 2 || got[0].RotationAngle != 45 {
		t.Fatalf("bubbles = %+v", got)
	}
}

func TestSaveWithoutPath(t *testing.T) {
	if err := New().Save(""); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestConcurrentReplace(t *testing.T) {
	d := newDoc()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				d.Replace([]bubble.Bubble{bubble.New(geometry.R(0, 0, float64(10+n), 10))})
				_ = d.Bubbles()
			}
		}(i)
	}
	wg.Wait()
	if d.Len() != 1 {
		t.Fatalf("got %d bubbles, want 1", d.Len())
	}
}
