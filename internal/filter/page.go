package filter

// Page is an in-memory View holding what a rendered grid would show.
type Page struct {
	order      []string
	visible    map[string]bool
	Count      int
	EmptyShown bool
	ResetShown bool
}

// NewPage returns a Page in its unfiltered state: every item visible,
// the counter at len(items), no reset control.
func NewPage(items []Item) *Page {
	p := &Page{
		order:      make([]string, 0, len(items)),
		visible:    make(map[string]bool, len(items)),
		Count:      len(items),
		EmptyShown: len(items) == 0,
	}
	for _, item := range items {
		p.order = append(p.order, item.ID)
		p.visible[item.ID] = true
	}
	return p
}

// SetVisible shows or hides the card with id. Unknown ids are ignored.
func (p *Page) SetVisible(id string, visible bool) {
	if _, ok := p.visible[id]; ok {
		p.visible[id] = visible
	}
}

// SetCount sets the results counter.
func (p *Page) SetCount(n int) { p.Count = n }

// SetEmptyState shows or hides the empty-state block.
func (p *Page) SetEmptyState(shown bool) { p.EmptyShown = shown }

// SetResetControl swaps the primary search control for the reset
// control when shown is true.
func (p *Page) SetResetControl(shown bool) { p.ResetShown = shown }

// IsVisible reports whether the card with id is displayed.
func (p *Page) IsVisible(id string) bool { return p.visible[id] }

// VisibleIDs returns the displayed card ids in grid order.
func (p *Page) VisibleIDs() []string {
	var ids []string
	for _, id := range p.order {
		if p.visible[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

// SearchShown reports whether the primary search control is displayed.
func (p *Page) SearchShown() bool { return !p.ResetShown }
