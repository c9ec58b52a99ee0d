// Package filter narrows a fixed collection of listing cards by a free
// text query and an optional category.
//
// The predicates are pure functions over an explicit State. Rendering
// side effects live behind the View interface so the same logic drives
// the server-rendered list page, the search command and the MCP tools.
package filter

import "strings"

// Item is the searchable part of a rendered listing card.
type Item struct {
	ID          string
	Name        string
	Description string
	OwnerName   string
	Category    string
}

// State is the current value of the search controls. An empty Category
// matches any category; an empty Query matches any text.
type State struct {
	Query    string
	Category string
}

// Normalize trims the query and category the way the search form does.
func (s State) Normalize() State {
	return State{
		Query:    strings.TrimSpace(s.Query),
		Category: strings.TrimSpace(s.Category),
	}
}

// IsZero reports whether no filter is active.
func (s State) IsZero() bool {
	n := s.Normalize()
	return n.Query == "" && n.Category == ""
}

// MatchCategory reports whether item belongs to category. Category
// comparison is exact.
func MatchCategory(item Item, category string) bool {
	return category == "" || item.Category == category
}

// MatchText reports whether query is a case-insensitive substring of the
// item's name, description or owner name.
func MatchText(item Item, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(item.Name), q) ||
		strings.Contains(strings.ToLower(item.Description), q) ||
		strings.Contains(strings.ToLower(item.OwnerName), q)
}

// Match reports whether item is visible under state.
func Match(item Item, state State) bool {
	state = state.Normalize()
	return MatchCategory(item, state.Category) && MatchText(item, state.Query)
}

// Result is the outcome of applying a State to a collection.
type Result struct {
	Visible map[string]bool
	Count   int
}

// IsVisible reports whether the item with the given id passed the filter.
func (r Result) IsVisible(id string) bool { return r.Visible[id] }

// Empty reports whether nothing matched.
func (r Result) Empty() bool { return r.Count == 0 }

// Apply evaluates state against every item.
func Apply(items []Item, state State) Result {
	state = state.Normalize()
	res := Result{Visible: make(map[string]bool, len(items))}
	for _, item := range items {
		if MatchCategory(item, state.Category) && MatchText(item, state.Query) {
			res.Visible[item.ID] = true
			res.Count++
		}
	}
	return res
}

// Select returns the items visible under state, in their original order.
func Select(items []Item, state State) []Item {
	state = state.Normalize()
	var out []Item
	for _, item := range items {
		if MatchCategory(item, state.Category) && MatchText(item, state.Query) {
			out = append(out, item)
		}
	}
	return out
}
