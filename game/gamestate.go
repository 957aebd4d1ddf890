package game

import (
	"fmt"

	"github.com/kozlovskia/Draft-Simulator/utils"
)

// Draft is the ordered pick sequence; insertion order is pick order.
type Draft []Champion

func (d Draft) Clone() Draft {
	out := make(Draft, len(d), DraftSize)
	copy(out, d)
	return out
}

func (d Draft) Contains(champion Champion) bool {
	return utils.FindIndex(d, champion) >= 0
}

func (d Draft) Terminal() bool {
	return len(d) == DraftSize
}

// Next returns the side making the next pick. Panics on a terminal draft.
func (d Draft) Next() Side {
	return PickingSide(len(d))
}

// Teams splits the picks by the fixed schedule into blue and red rosters.
func (d Draft) Teams() (blue, red []Champion) {
	blue = make([]Champion, 0, TeamSize)
	red = make([]Champion, 0, TeamSize)
	for i, champion := range d {
		if PickingSide(i) == Blue {
			blue = append(blue, champion)
		} else {
			red = append(red, champion)
		}
	}
	return blue, red
}

// Roster returns the picks owned by one side.
func (d Draft) Roster(side Side) []Champion {
	blue, red := d.Teams()
	if side == Blue {
		return blue
	}
	return red
}

// Sides returns the allied and opposing rosters from one side's point of view.
func (d Draft) Sides(side Side) (allies, opponents []Champion) {
	blue, red := d.Teams()
	if side == Blue {
		return blue, red
	}
	return red, blue
}

func (d Draft) String() string {
	return fmt.Sprint([]Champion(d))
}
