package game

import "fmt"

// Rules is the draft legality model: which champions and roles each side may
// still pick, given the fixed turn order and the one-champion-per-role limit.
type Rules struct {
	data *GameData
}

func NewRules(data *GameData) *Rules {
	return &Rules{data: data}
}

func (r *Rules) Data() *GameData {
	return r.data
}

// Initial returns the availability of an empty draft: every champion for both sides.
func (r *Rules) Initial() Availability {
	return newAvailability(r.data)
}

// Apply returns the availability after the picking side takes champion. The
// champion leaves both sides' sets and every other champion of its role leaves
// the picking side's set. The given index is left untouched.
func (r *Rules) Apply(index Availability, draft Draft, champion Champion) (Availability, error) {
	if draft.Terminal() {
		return Availability{}, &IllegalPickError{Champion: champion, Reason: "draft is complete"}
	}
	side := PickingSide(len(draft))
	ci, ok := r.data.index[champion]
	if !ok {
		return Availability{}, &IllegalPickError{Champion: champion, Side: side, Reason: "not in roster"}
	}
	if draft.Contains(champion) {
		return Availability{}, &IllegalPickError{Champion: champion, Side: side, Reason: "already picked"}
	}
	if !index.set(side).Test(uint(ci)) {
		return Availability{}, &IllegalPickError{Champion: champion, Side: side, Reason: "not available"}
	}

	next := index.clone()
	next.blue.Clear(uint(ci))
	next.red.Clear(uint(ci))
	own := next.set(side)
	for _, other := range r.data.byRole[r.data.roles[ci]] {
		own.Clear(uint(other))
	}

	r.checkPools(next, len(draft)+1)
	return next, nil
}

// checkPools panics if a side still has picks to make but nothing to pick from.
func (r *Rules) checkPools(a Availability, length int) {
	for _, side := range []Side{Blue, Red} {
		remaining := 0
		for i := length; i < DraftSize; i++ {
			if PickingSide(i) == side {
				remaining++
			}
		}
		if remaining > 0 && a.Count(side) == 0 {
			Invariant("%s side has %d picks left and an empty pool", side, remaining)
		}
	}
}

// Replay rebuilds the availability of a draft from the empty state.
func (r *Rules) Replay(draft Draft) (Availability, error) {
	if len(draft) > DraftSize {
		return Availability{}, &InvalidDraftError{Draft: draft, Reason: fmt.Sprintf("%d picks, at most %d allowed", len(draft), DraftSize)}
	}
	a := r.Initial()
	for i, champion := range draft {
		next, err := r.Apply(a, draft[:i], champion)
		if err != nil {
			return Availability{}, &InvalidDraftError{Draft: draft, Reason: fmt.Sprintf("pick %d: %v", i, err)}
		}
		a = next
	}
	return a, nil
}

// Validate reports whether draft is a reachable intermediate or final state.
func (r *Rules) Validate(draft Draft) error {
	_, err := r.Replay(draft)
	return err
}

// AvailableFor lists the champions side may pick next in draft.
func (r *Rules) AvailableFor(side Side, draft Draft) ([]Champion, error) {
	a, err := r.Replay(draft)
	if err != nil {
		return nil, err
	}
	return a.Champions(side), nil
}

// AvailableRoles lists, per side, the roles that side has not filled yet.
func (r *Rules) AvailableRoles(draft Draft) (map[Side][]Role, error) {
	if err := r.Validate(draft); err != nil {
		return nil, err
	}
	taken := map[Side]map[Role]bool{Blue: {}, Red: {}}
	for i, champion := range draft {
		taken[PickingSide(i)][r.data.roles[r.data.index[champion]]] = true
	}
	out := make(map[Side][]Role, 2)
	for _, side := range []Side{Blue, Red} {
		out[side] = []Role{}
		for _, role := range Roles {
			if !taken[side][role] {
				out[side] = append(out[side], role)
			}
		}
	}
	return out, nil
}
