package viewport

import "fmt"

// Name identifies one of the two comparison panes.
type Name string

const (
	Original   Name = "original"
	Translated Name = "translated"
)

// ParseName converts a pane name from scripts or flags.
func ParseName(s string) (Name, error) {
	switch Name(s) {
	case Original, Translated:
		return Name(s), nil
	}
	return "", fmt.Errorf("viewport: unknown viewport %q", s)
}

// Pair owns the original and translated controllers. With sync enabled every
// transform change on one controller is copied wholesale onto the other once
// the operation completes; the copy itself never propagates back.
type Pair struct {
	original   *Controller
	translated *Controller
	sync       bool
}

// NewPair creates both controllers with the same configuration.
func NewPair(cfg Config) *Pair {
	p := &Pair{
		original:   NewController(Original, cfg),
		translated: NewController(Translated, cfg),
	}
	p.original.mirror = p.mirror
	p.translated.mirror = p.mirror
	return p
}

// Original returns the controller of the original-image pane.
func (p *Pair) Original() *Controller { return p.original }

// Translated returns the controller of the translated-image pane.
func (p *Pair) Translated() *Controller { return p.translated }

// Get returns the controller for name, or nil if the name is unknown.
func (p *Pair) Get(name Name) *Controller {
	switch name {
	case Original:
		return p.original
	case Translated:
		return p.translated
	}
	return nil
}

// Sibling returns the controller of the other pane.
func (p *Pair) Sibling(name Name) *Controller {
	switch name {
	case Original:
		return p.translated
	case Translated:
		return p.original
	}
	return nil
}

// SetSync enables or disables mirroring. Enabling does not copy anything by
// itself; the panes converge on the next transform change.
func (p *Pair) SetSync(on bool) { p.sync = on }

// Synced reports whether mirroring is enabled.
func (p *Pair) Synced() bool { return p.sync }

func (p *Pair) mirror(from *Controller) {
	if !p.sync {
		return
	}
	if to := p.Sibling(from.name); to != nil {
		to.assign(from.t)
	}
}
