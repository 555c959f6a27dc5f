// Package document holds the page being proofread and applies finalized
// edits coming from the interaction engine.
package document

import (
	"fmt"
	"sync"
	"time"

	"github.com/OpenTraceLab/bubbleproof/pkg/bubble"
	"github.com/OpenTraceLab/bubbleproof/pkg/geometry"
	"github.com/OpenTraceLab/bubbleproof/pkg/interaction"
)

// ChangeKind names a journal entry.
type ChangeKind string

const (
	ChangeMove    ChangeKind = "move"
	ChangeResize  ChangeKind = "resize"
	ChangeRotate  ChangeKind = "rotate"
	ChangeCreate  ChangeKind = "create"
	ChangeDelete  ChangeKind = "delete"
	ChangeReplace ChangeKind = "replace"
)

// Change is one applied edit. Before is empty for creations and After for
// deletions, so an external undo layer can invert any entry.
type Change struct {
	Seq    int
	Kind   ChangeKind
	Index  int
	Before bubble.Bubble
	After  bubble.Bubble
	Time   time.Time
}

// Document is the page with its bubbles. It is safe for concurrent use:
// detection results may be installed from a background goroutine while the
// UI reads.
type Document struct {
	mu sync.RWMutex

	path    string
	page    bubble.Page
	journal []Change
	dirty   bool

	listeners []func()
	edits     []func(Change)
}

var _ interaction.Document = (*Document)(nil)
var _ interaction.Handler = (*Document)(nil)

// New returns an empty document.
func New() *Document {
	return &Document{}
}

// FromPage wraps an already decoded page.
func FromPage(page *bubble.Page) *Document {
	d := New()
	if page != nil {
		d.page = clonePage(*page)
	}
	return d
}

// Load reads a page document from path.
func Load(path string) (*Document, error) {
	page, err := bubble.LoadPage(path)
	if err != nil {
		return nil, fmt.Errorf("document: read %s: %w", path, err)
	}
	d := FromPage(page)
	d.path = path
	return d, nil
}

// Save writes the page to path, or to the path it was loaded from when
// path is empty.
func (d *Document) Save(path string) error {
	d.mu.Lock()
	if path == "" {
		path = d.path
	}
	if path == "" {
		d.mu.Unlock()
		return fmt.Errorf("document: no path to save to")
	}
	page := clonePage(d.page)
	d.mu.Unlock()

	if err := bubble.SavePage(path, &page); err != nil {
		return fmt.Errorf("document: write %s: %w", path, err)
	}

	d.mu.Lock()
	d.path = path
	d.dirty = false
	d.mu.Unlock()
	return nil
}

// Path returns the file the document was loaded from or last saved to.
func (d *Document) Path() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.path
}

// Dirty reports whether there are unsaved changes.
func (d *Document) Dirty() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.dirty
}

// Page returns a copy of the page.
func (d *Document) Page() bubble.Page {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return clonePage(d.page)
}

// Image returns the page image path.
func (d *Document) Image() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.page.Image
}

// Bubbles returns a copy of the bubble list.
func (d *Document) Bubbles() []bubble.Bubble {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]bubble.Bubble, len(d.page.Bubbles))
	copy(out, d.page.Bubbles)
	return out
}

// Len returns the number of bubbles.
func (d *Document) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.page.Bubbles)
}

// ImageSize returns the page image size, or an empty size if unknown.
func (d *Document) ImageSize() geometry.Size {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.page.Width <= 0 || d.page.Height <= 0 {
		return geometry.Size{}
	}
	return geometry.Sz(float64(d.page.Width), float64(d.page.Height))
}

// SetImageSize records the decoded image dimensions.
func (d *Document) SetImageSize(width, height int) {
	d.mu.Lock()
	d.page.Width, d.page.Height = width, height
	d.mu.Unlock()
	d.notify(nil)
}

// OnChange registers fn to run after every mutation, outside the lock.
// Listeners run synchronously on the goroutine that mutated the document.
func (d *Document) OnChange(fn func()) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	d.listeners = append(d.listeners, fn)
	d.mu.Unlock()
}

// OnEdit registers fn to run with every journaled change, before the
// OnChange listeners. Like them it runs on the mutating goroutine.
func (d *Document) OnEdit(fn func(Change)) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	d.edits = append(d.edits, fn)
	d.mu.Unlock()
}

func (d *Document) notify(c *Change) {
	d.mu.RLock()
	fns := make([]func(), len(d.listeners))
	copy(fns, d.listeners)
	edits := make([]func(Change), len(d.edits))
	copy(edits, d.edits)
	d.mu.RUnlock()
	if c != nil {
		for _, fn := range edits {
			fn(*c)
		}
	}
	for _, fn := range fns {
		fn()
	}
}

// Journal returns a copy of the applied changes, oldest first.
func (d *Document) Journal() []Change {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Change, len(d.journal))
	copy(out, d.journal)
	return out
}

// record appends a journal entry. Callers hold the write lock.
func (d *Document) record(kind ChangeKind, index int, before, after bubble.Bubble) Change {
	c := Change{
		Seq:    len(d.journal) + 1,
		Kind:   kind,
		Index:  index,
		Before: before,
		After:  after,
		Time:   time.Now(),
	}
	d.journal = append(d.journal, c)
	d.dirty = true
	return c
}

// Add appends a bubble and returns its index.
func (d *Document) Add(b bubble.Bubble) int {
	d.mu.Lock()
	d.page.Bubbles = append(d.page.Bubbles, b)
	idx := len(d.page.Bubbles) - 1
	c := d.record(ChangeCreate, idx, bubble.Bubble{}, b)
	d.mu.Unlock()
	d.notify(&c)
	return idx
}

// Delete removes the bubble at index.
func (d *Document) Delete(index int) error {
	d.mu.Lock()
	if index < 0 || index >= len(d.page.Bubbles) {
		n := len(d.page.Bubbles)
		d.mu.Unlock()
		return fmt.Errorf("document: delete bubble %d: out of range [0,%d)", index, n)
	}
	before := d.page.Bubbles[index]
	d.page.Bubbles = append(d.page.Bubbles[:index], d.page.Bubbles[index+1:]...)
	c := d.record(ChangeDelete, index, before, bubble.Bubble{})
	d.mu.Unlock()
	d.notify(&c)
	return nil
}

// Replace installs a new bubble list, for example fresh detection results.
func (d *Document) Replace(bubbles []bubble.Bubble) {
	d.mu.Lock()
	d.page.Bubbles = append([]bubble.Bubble(nil), bubbles...)
	c := d.record(ChangeReplace, -1, bubble.Bubble{}, bubble.Bubble{})
	d.mu.Unlock()
	d.notify(&c)
}

func (d *Document) update(kind ChangeKind, index int, fn func(b *bubble.Bubble)) {
	d.mu.Lock()
	if index < 0 || index >= len(d.page.Bubbles) {
		d.mu.Unlock()
		interaction.Logger().Debug("document: edit on missing bubble", "kind", kind, "index", index)
		return
	}
	before := d.page.Bubbles[index]
	fn(&d.page.Bubbles[index])
	c := d.record(kind, index, before, d.page.Bubbles[index])
	d.mu.Unlock()
	d.notify(&c)
}

// OnSelect is a no-op; selection lives in the selection model.
func (d *Document) OnSelect(int) {}

// OnMultiSelect is a no-op; selection lives in the selection model.
func (d *Document) OnMultiSelect(int) {}

// OnDragEnd applies a finalized move.
func (d *Document) OnDragEnd(index int, coords geometry.Rect) {
	d.update(ChangeMove, index, func(b *bubble.Bubble) { b.Coords = coords })
}

// OnResizeEnd applies a finalized resize.
func (d *Document) OnResizeEnd(index int, coords geometry.Rect) {
	d.update(ChangeResize, index, func(b *bubble.Bubble) { b.Coords = coords })
}

// OnRotateEnd applies a finalized rotation.
func (d *Document) OnRotateEnd(index int, angle float64) {
	d.update(ChangeRotate, index, func(b *bubble.Bubble) { b.RotationAngle = angle })
}

// OnDrawBubble appends a drawn bubble.
func (d *Document) OnDrawBubble(coords geometry.Rect) {
	d.Add(bubble.New(coords))
}

func clonePage(p bubble.Page) bubble.Page {
	out := p
	out.Bubbles = make([]bubble.Bubble, len(p.Bubbles))
	copy(out.Bubbles, p.Bubbles)
	return out
}
