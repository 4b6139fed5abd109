package autocomplete

import (
	"sort"
	"sync"
)

// Rect is a screen region in terminal cells.
type Rect struct {
	X, Y int
	W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Dismissable is anything that closes when the user clicks outside of it.
type Dismissable interface {
	Contains(x, y int) bool
	Dismiss()
}

// Dispatcher routes clicks to every registered widget so that widgets whose
// host does not contain the click are dismissed. One dispatcher serves the
// whole program; widgets register on creation and unregister on Close.
type Dispatcher struct {
	mu      sync.Mutex
	nextID  int
	entries map[int]Dismissable
}

// DefaultDispatcher is used by widgets that are not given one explicitly.
var DefaultDispatcher = NewDispatcher()

// NewDispatcher creates an empty dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{entries: make(map[int]Dismissable)}
}

// Register adds w and returns a function that removes it again.
// The returned function may be called more than once.
func (d *Dispatcher) Register(w Dismissable) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	id := d.nextID
	d.entries[id] = w

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			delete(d.entries, id)
		})
	}
}

// Click dismisses every registered widget that does not contain (x, y).
// It returns how many widgets were dismissed.
func (d *Dispatcher) Click(x, y int) int {
	d.mu.Lock()
	ids := make([]int, 0, len(d.entries))
	for id := range d.entries {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	targets := make([]Dismissable, 0, len(ids))
	for _, id := range ids {
		targets = append(targets, d.entries[id])
	}
	d.mu.Unlock()

	// Dismiss runs without the lock so widgets may unregister from it.
	dismissed := 0
	for _, w := range targets {
		if !w.Contains(x, y) {
			w.Dismiss()
			dismissed++
		}
	}
	return dismissed
}

// Len returns the number of registered widgets.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}
