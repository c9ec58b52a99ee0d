package filter

// View receives the rendering side effects of a filter run. It mirrors
// the card grid contract: per-card visibility, the results counter, the
// empty-state block, and the transient reset control that replaces the
// primary search button while a filter is applied.
type View interface {
	SetVisible(id string, visible bool)
	SetCount(n int)
	SetEmptyState(shown bool)
	// SetResetControl shows the reset control and hides the primary
	// search control when shown is true, and the reverse when false.
	SetResetControl(shown bool)
}

// Field identifies the control that produced a key event.
type Field string

const (
	FieldQuery    Field = "search-input"
	FieldCategory Field = "categoria-filter"
)

// KeyEnter is the key name that submits the search.
const KeyEnter = "Enter"

// Controller owns the search control values for one grid and applies
// them on explicit user action only. Typing does not filter.
type Controller struct {
	items []Item
	view  View
	state State
}

// NewController binds items to view. A nil view means the grid is not
// on the page; every operation is then a no-op.
func NewController(items []Item, view View) *Controller {
	return &Controller{items: items, view: view}
}

// State returns the current control values.
func (c *Controller) State() State { return c.state }

// SetQuery updates the query field without filtering.
func (c *Controller) SetQuery(q string) { c.state.Query = q }

// SetCategory updates the category selector without filtering.
func (c *Controller) SetCategory(category string) { c.state.Category = category }

// Submit applies the current state, as when the search button is
// activated.
func (c *Controller) Submit() Result {
	if c.view == nil {
		return Result{}
	}
	res := Apply(c.items, c.state)
	for _, item := range c.items {
		c.view.SetVisible(item.ID, res.Visible[item.ID])
	}
	c.view.SetCount(res.Count)
	c.view.SetEmptyState(res.Count == 0)
	c.view.SetResetControl(true)
	return res
}

// KeyDown handles a key press in one of the search controls. Only Enter
// in the query field or category selector submits. It reports whether a
// filter run happened.
func (c *Controller) KeyDown(field Field, key string) bool {
	if key != KeyEnter || (field != FieldQuery && field != FieldCategory) {
		return false
	}
	if c.view == nil {
		return false
	}
	c.Submit()
	return true
}

// Reset clears both controls, shows every item, hides the empty state
// and restores the primary search control.
func (c *Controller) Reset() Result {
	c.state = State{}
	if c.view == nil {
		return Result{}
	}
	res := Result{Visible: make(map[string]bool, len(c.items))}
	for _, item := range c.items {
		c.view.SetVisible(item.ID, true)
		res.Visible[item.ID] = true
		res.Count++
	}
	c.view.SetCount(res.Count)
	c.view.SetEmptyState(false)
	c.view.SetResetControl(false)
	return res
}
