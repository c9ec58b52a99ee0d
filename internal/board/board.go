// Package board renders the three summary counters as a terminal panel.
// Its counters satisfy stats.Counter so a stats.Poller can animate them.
package board

import (
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/emprendelab/vitrina/internal/stats"
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 2).
			Align(lipgloss.Center)
	numberStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
)

// Counter is one displayed number. It is safe for concurrent use.
type Counter struct {
	label string
	board *Board

	mu    sync.Mutex
	value int
}

// Value returns the displayed number.
func (c *Counter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set changes the displayed number and notifies the board's change hook.
func (c *Counter) Set(v int) {
	c.mu.Lock()
	c.value = v
	c.mu.Unlock()
	c.board.changed()
}

// Label returns the caption shown under the number.
func (c *Counter) Label() string { return c.label }

// Board holds the total, category and student counters.
type Board struct {
	Title      string
	Total      *Counter
	Categories *Counter
	Students   *Counter

	mu       sync.Mutex
	onChange func()
}

// New returns a board with all counters at zero.
func New(title string) *Board {
	b := &Board{Title: title}
	b.Total = &Counter{label: "emprendimientos", board: b}
	b.Categories = &Counter{label: "categorías", board: b}
	b.Students = &Counter{label: "estudiantes", board: b}
	return b
}

// Counters returns the board's counters in the shape a poller drives.
func (b *Board) Counters() stats.Counters {
	return stats.Counters{Total: b.Total, Categories: b.Categories, Students: b.Students}
}

// OnChange registers fn to run after every counter update. fn runs on
// the updating goroutine.
func (b *Board) OnChange(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onChange = fn
}

func (b *Board) changed() {
	b.mu.Lock()
	fn := b.onChange
	b.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Render draws the panel.
func (b *Board) Render() string {
	boxes := make([]string, 0, 3)
	for _, c := range []*Counter{b.Total, b.Categories, b.Students} {
		body := lipgloss.JoinVertical(lipgloss.Center,
			numberStyle.Render(strconv.Itoa(c.Value())),
			labelStyle.Render(c.label),
		)
		boxes = append(boxes, boxStyle.Render(body))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
	if b.Title == "" {
		return row
	}
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(b.Title), row)
}
