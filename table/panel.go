package table

type PanelState int

const (
	PanelClosed PanelState = iota
	PanelOpenClean
	PanelOpenDirty
)

func (s PanelState) String() string {
	switch s {
	case PanelClosed:
		return "closed"
	case PanelOpenClean:
		return "open"
	case PanelOpenDirty:
		return "pending"
	}
	return "unknown"
}

// Panel holds the filters being edited (pending) apart from the ones in
// effect (applied). The zero value is a closed panel without filters.
type Panel struct {
	open    bool
	pending Filters
	applied Filters
}

func (p *Panel) State() PanelState {
	if !p.open {
		return PanelClosed
	}
	if p.pending.Equal(p.applied) {
		return PanelOpenClean
	}
	return PanelOpenDirty
}

// Toggle opens or closes the panel. Closing drops uncommitted edits, applied
// filters survive.
func (p *Panel) Toggle() PanelState {
	p.open = !p.open
	p.pending = p.applied.Clone()
	return p.State()
}

// Edit changes a pending filter. It is ignored while the panel is closed.
func (p *Panel) Edit(key string, f Filter) bool {
	if !p.open {
		return false
	}
	if p.pending == nil {
		p.pending = Filters{}
	}
	p.pending[key] = f
	return true
}

// Apply commits the pending filters. It reports false when there is nothing
// to commit from, that is, the panel is closed.
func (p *Panel) Apply() bool {
	if !p.open {
		return false
	}
	p.applied = p.pending.Active()
	p.pending = p.applied.Clone()
	return true
}

func (p *Panel) Clear() {
	p.pending = Filters{}
	p.applied = Filters{}
}

// Remove drops one filter from both phases without touching the panel
// visibility.
func (p *Panel) Remove(key string) bool {
	_, wasApplied := p.applied[key]
	delete(p.applied, key)
	delete(p.pending, key)
	return wasApplied
}

func (p *Panel) Applied() Filters {
	return p.applied.Clone()
}

func (p *Panel) Pending() Filters {
	return p.pending.Clone()
}
