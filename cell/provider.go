package cell

import (
	"git.sr.ht/~whereswaldon/acchart/grid"
)

// Provider hands out the scopes of a solved layout.
type Provider struct {
	layout grid.Layout
	parent *Scope
	scopes map[string]*Scope
}

// NewProvider returns a provider for a top-level layout.
func NewProvider(l grid.Layout) *Provider {
	return &Provider{layout: l, scopes: map[string]*Scope{}}
}

// NewNestedProvider returns a provider for a layout solved inside parent's
// Container.
func NewNestedProvider(parent *Scope, l grid.Layout) *Provider {
	return &Provider{layout: l, parent: parent, scopes: map[string]*Scope{}}
}

// Layout returns the layout the provider serves.
func (p *Provider) Layout() grid.Layout {
	return p.layout
}

// Scope returns the scope of the named cell. Unknown names fail with
// grid.ErrUnknownCell.
func (p *Provider) Scope(name string) (*Scope, error) {
	if s, ok := p.scopes[name]; ok {
		return s, nil
	}
	r, err := p.layout.Cell(name)
	if err != nil {
		return nil, err
	}
	s := &Scope{parent: p.parent, name: name, rect: r}
	p.scopes[name] = s
	return s, nil
}
