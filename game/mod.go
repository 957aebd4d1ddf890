package game

import "fmt"

const (
	TeamSize  = 5
	DraftSize = 2 * TeamSize
)

// Side is one of the two drafting teams. Blue picks first.
type Side int

const (
	Blue Side = 1
	Red  Side = -1
)

// blueSlots are the pick indices owned by the blue side, the rest belong to red
var blueSlots = [DraftSize]bool{0: true, 3: true, 4: true, 7: true, 8: true}

// PickingSide returns the side making the pick at the given draft length.
// The schedule is fixed: blue owns picks 0, 3, 4, 7 and 8.
func PickingSide(draftLength int) Side {
	if draftLength < 0 || draftLength >= DraftSize {
		panic(fmt.Sprintf("no pick at draft length %d", draftLength))
	}
	if blueSlots[draftLength] {
		return Blue
	}
	return Red
}

func (s Side) Opponent() Side {
	return -s
}

func (s Side) Valid() bool {
	return s == Blue || s == Red
}

func (s Side) String() string {
	switch s {
	case Blue:
		return "blue"
	case Red:
		return "red"
	default:
		return fmt.Sprintf("side(%d)", int(s))
	}
}

// ParseSide accepts "blue"/"red" and the single letters "a"/"b".
func ParseSide(value string) (Side, error) {
	switch value {
	case "blue", "Blue", "a", "A":
		return Blue, nil
	case "red", "Red", "b", "B":
		return Red, nil
	}
	return 0, fmt.Errorf("unknown side %q", value)
}

// Outcome is the binary result of a completed draft from one side's point of view.
type Outcome int

const (
	Loss Outcome = iota
	Win
)

func (o Outcome) String() string {
	if o == Win {
		return "win"
	}
	return "loss"
}
