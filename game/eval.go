package game

// Oracle scores completed drafts with the static pairwise table. It is a pure
// function of its GameData.
type Oracle struct {
	data *GameData
}

func NewOracle(data *GameData) *Oracle {
	return &Oracle{data: data}
}

// CompositeScore is the mean of the synergy scores over every unordered ally
// pair and the counter scores over every ally-opponent pair. For full rosters
// that is 10 + 25 = 35 terms. No clamping: the result follows the table's scale.
func (o *Oracle) CompositeScore(allies, opponents []Champion) (float64, error) {
	a, err := o.indices(allies)
	if err != nil {
		return 0, err
	}
	b, err := o.indices(opponents)
	if err != nil {
		return 0, err
	}

	sum := 0.0
	terms := 0
	for i := 0; i < len(a); i++ {
		for j := i + 1; j < len(a); j++ {
			if a[i] == a[j] {
				return 0, &UnknownChampionError{Champion: allies[i], Other: allies[j]}
			}
			sum += o.data.synergy[a[i]][a[j]]
			terms++
		}
	}
	for i := range a {
		for j := range b {
			if a[i] == b[j] {
				return 0, &UnknownChampionError{Champion: allies[i], Other: opponents[j]}
			}
			sum += o.data.counter[a[i]][b[j]]
			terms++
		}
	}
	if terms == 0 {
		return 0, nil
	}
	return sum / float64(terms), nil
}

// Advantage reports whether allies outscore opponents. Both scores are computed
// with the same formula and the roles swapped, so Advantage(x, y) and
// Advantage(y, x) are not complements: both can be false on a tie.
func (o *Oracle) Advantage(allies, opponents []Champion) (bool, error) {
	ours, err := o.CompositeScore(allies, opponents)
	if err != nil {
		return false, err
	}
	theirs, err := o.CompositeScore(opponents, allies)
	if err != nil {
		return false, err
	}
	return ours > theirs, nil
}

// Outcome resolves a completed draft from side's point of view.
func (o *Oracle) Outcome(draft Draft, side Side) (Outcome, error) {
	if !draft.Terminal() {
		return Loss, &InvalidDraftError{Draft: draft, Reason: "draft is not complete"}
	}
	allies, opponents := draft.Sides(side)
	won, err := o.Advantage(allies, opponents)
	if err != nil {
		return Loss, err
	}
	if won {
		return Win, nil
	}
	return Loss, nil
}

// ChampionImpact is the equally weighted sum of a champion's synergy with its
// allies and its counters against the opponents, plus its solo impact when
// withSolo is set.
func (o *Oracle) ChampionImpact(champion Champion, allies, opponents []Champion, withSolo bool) (float64, error) {
	total := 0.0
	for _, ally := range allies {
		if ally == champion {
			continue
		}
		s, err := o.data.Synergy(champion, ally)
		if err != nil {
			return 0, err
		}
		total += s
	}
	for _, opponent := range opponents {
		c, err := o.data.Counter(champion, opponent)
		if err != nil {
			return 0, err
		}
		total += c
	}
	if withSolo {
		solo, err := o.data.SoloImpact(champion)
		if err != nil {
			return 0, err
		}
		total += solo
	}
	return total, nil
}

func (o *Oracle) indices(champions []Champion) ([]int, error) {
	out := make([]int, len(champions))
	for k, champion := range champions {
		i, ok := o.data.index[champion]
		if !ok {
			return nil, &UnknownChampionError{Champion: champion}
		}
		out[k] = i
	}
	return out, nil
}
