package compare

import (
	"moviecompare/internal/domain"
)

// Pair holds the summary of each side. Either slot may be empty.
type Pair struct {
	slots [2]*Summary
}

// Set stores the summary of one side, replacing what was there.
func (p *Pair) Set(side domain.Side, s Summary) {
	p.slots[side] = &s
}

// Clear empties one side.
func (p *Pair) Clear(side domain.Side) {
	p.slots[side] = nil
}

// Get returns the summary of one side, if present.
func (p *Pair) Get(side domain.Side) (Summary, bool) {
	if s := p.slots[side]; s != nil {
		return *s, true
	}
	return Summary{}, false
}

// Ready reports whether both sides are filled.
func (p *Pair) Ready() bool {
	return p.slots[domain.Left] != nil && p.slots[domain.Right] != nil
}

// Outcome names the side that did better on one stat
type Outcome struct {
	Label  string
	Winner domain.Side
}

// Loser returns the side that did worse
func (o Outcome) Loser() domain.Side {
	return o.Winner.Other()
}

// Compare returns one outcome per stat, or nil until both sides are filled.
// The right side wins only when its value is strictly greater, so ties and
// stats without a number on either side go to the left.
func (p *Pair) Compare() []Outcome {
	if !p.Ready() {
		return nil
	}
	left, right := p.slots[domain.Left].Stats, p.slots[domain.Right].Stats
	n := min(len(left), len(right))

	out := make([]Outcome, n)
	for i := 0; i < n; i++ {
		winner := domain.Left
		// NaN compares false, like a missing figure.
		if right[i].Value > left[i].Value {
			winner = domain.Right
		}
		out[i] = Outcome{Label: left[i].Label, Winner: winner}
	}
	return out
}
