package agent

import (
	"fmt"
	"sort"

	"github.com/kozlovskia/Draft-Simulator/experiments/metrics"
	"github.com/kozlovskia/Draft-Simulator/game"
	"github.com/kozlovskia/Draft-Simulator/searcher"
)

// Strategy selects the statistic a naive drafter ranks champions by.
type Strategy int

const (
	ByWinRate Strategy = iota
	ByPopularity
	Mixed // Draws one of the two rankings per pick
)

var Strategies = []Strategy{ByWinRate, ByPopularity, Mixed}

func (s Strategy) String() string {
	switch s {
	case ByWinRate:
		return "winrate"
	case ByPopularity:
		return "popularity"
	case Mixed:
		return "mixed"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

func ParseStrategy(value string) (Strategy, error) {
	for _, s := range Strategies {
		if s.String() == value {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q, expected winrate, popularity or mixed", value)
}

// Ranking orders the available champions of one role, best first.
type Ranking func(available []game.Champion, role game.Role) []game.Champion

func rankBy(data *game.GameData, stat func(game.Champion) (float64, error)) Ranking {
	return func(available []game.Champion, role game.Role) []game.Champion {
		ranked := []game.Champion{}
		scores := map[game.Champion]float64{}
		for _, champion := range available {
			if r, err := data.Role(champion); err != nil || r != role {
				continue
			}
			score, err := stat(champion)
			if err != nil {
				continue
			}
			ranked = append(ranked, champion)
			scores[champion] = score
		}
		sort.SliceStable(ranked, func(i, j int) bool { return scores[ranked[i]] > scores[ranked[j]] })
		return ranked
	}
}

func PopularityRanking(data *game.GameData) Ranking {
	return rankBy(data, data.Popularity)
}

func WinRateRanking(data *game.GameData) Ranking {
	return rankBy(data, data.SoloImpact)
}

// Ranking returns the ranking used for one pick. Mixed draws it from rng.
func (s Strategy) Ranking(data *game.GameData, rng searcher.Rand) Ranking {
	switch s {
	case ByPopularity:
		return PopularityRanking(data)
	case ByWinRate:
		return WinRateRanking(data)
	case Mixed:
		if rng.Intn(2) == 0 {
			return PopularityRanking(data)
		}
		return WinRateRanking(data)
	default:
		panic(fmt.Sprintf("unknown strategy %d", int(s)))
	}
}

type naiveAgent struct {
	rules    *game.Rules
	strategy Strategy
	rng      searcher.Rand
}

// NewNaiveAgent returns an agent that fills a random open role with the best
// ranked champion by its strategy, without searching.
func NewNaiveAgent(rules *game.Rules, strategy Strategy, rng searcher.Rand) Agent {
	return naiveAgent{rules: rules, strategy: strategy, rng: rng}
}

func (a naiveAgent) FindPick(draft game.Draft, side game.Side) (game.Champion, metrics.SearchMetric, error) {
	index, err := a.rules.Replay(draft)
	if err != nil {
		return "", metrics.SearchMetric{}, err
	}
	roles, err := a.rules.AvailableRoles(draft)
	if err != nil {
		return "", metrics.SearchMetric{}, err
	}
	open := roles[side]
	if len(open) == 0 {
		return "", metrics.SearchMetric{}, fmt.Errorf("%s side has no open role in %v", side, draft)
	}

	role := open[a.rng.Intn(len(open))]
	ranked := a.strategy.Ranking(a.rules.Data(), a.rng)(index.Champions(side), role)
	if len(ranked) == 0 {
		game.Invariant("%s side has no available %s champion in %v", side, role, draft)
	}
	return ranked[0], metrics.SearchMetric{}, nil
}
