package game

import (
	"github.com/bits-and-blooms/bitset"
)

// Availability is the per-side set of champions still selectable. Values are
// never mutated once built; Rules.Apply returns a fresh copy.
type Availability struct {
	data *GameData
	blue *bitset.BitSet
	red  *bitset.BitSet
}

func newAvailability(data *GameData) Availability {
	n := uint(data.Size())
	a := Availability{data: data, blue: bitset.New(n), red: bitset.New(n)}
	for i := uint(0); i < n; i++ {
		a.blue.Set(i)
		a.red.Set(i)
	}
	return a
}

func (a Availability) set(side Side) *bitset.BitSet {
	if side == Blue {
		return a.blue
	}
	return a.red
}

func (a Availability) clone() Availability {
	return Availability{data: a.data, blue: a.blue.Clone(), red: a.red.Clone()}
}

// Champions lists the side's selectable champions in roster order.
func (a Availability) Champions(side Side) []Champion {
	s := a.set(side)
	out := make([]Champion, 0, s.Count())
	for i, ok := s.NextSet(0); ok; i, ok = s.NextSet(i + 1) {
		out = append(out, a.data.champions[i])
	}
	return out
}

func (a Availability) Contains(side Side, champion Champion) bool {
	i, ok := a.data.index[champion]
	if !ok {
		return false
	}
	return a.set(side).Test(uint(i))
}

func (a Availability) Count(side Side) int {
	return int(a.set(side).Count())
}

// Nth returns the k-th selectable champion of a side in roster order.
func (a Availability) Nth(side Side, k int) Champion {
	s := a.set(side)
	i, ok := s.NextSet(0)
	for ; ok && k > 0; k-- {
		i, ok = s.NextSet(i + 1)
	}
	if !ok {
		Invariant("no available champion at position %d for %s side", k, side)
	}
	return a.data.champions[i]
}

func (a Availability) Equal(other Availability) bool {
	return a.blue.Equal(other.blue) && a.red.Equal(other.red)
}
