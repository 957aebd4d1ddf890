// Package gametest builds small, complete rosters and scoring tables for tests.
package gametest

import (
	"fmt"
	"testing"

	"github.com/kozlovskia/Draft-Simulator/game"

	"github.com/stretchr/testify/require"
)

// Table returns the synergy and counter score of champion a towards b.
type Table func(a, b game.Champion) (synergy, counter float64)

// Flat scores every pair zero, so every matchup is a tie.
func Flat(a, b game.Champion) (float64, float64) {
	return 0, 0
}

// Ranked favours champions with a higher number suffix: "top2" counters "top1".
// Synergy is zero so only counters decide.
func Ranked(a, b game.Champion) (float64, float64) {
	return 0, float64(rank(a)-rank(b)) / 10
}

func rank(c game.Champion) int {
	n := 0
	for _, r := range c {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
		}
	}
	return n
}

// Name is the fixture name of the k-th (1-based) champion of a role, e.g. "mid2".
func Name(role game.Role, k int) game.Champion {
	return game.Champion(fmt.Sprintf("%s%d", role, k))
}

// Stats builds perRole champions for every role scored by table.
func Stats(perRole int, table Table) map[game.Champion]game.ChampionStats {
	var all []game.Champion
	roles := map[game.Champion]game.Role{}
	for _, role := range game.Roles {
		for k := 1; k <= perRole; k++ {
			c := Name(role, k)
			all = append(all, c)
			roles[c] = role
		}
	}

	out := make(map[game.Champion]game.ChampionStats, len(all))
	for i, c := range all {
		s := game.ChampionStats{
			Role:           roles[c],
			Popularity:     float64(len(all)-i) / float64(len(all)),
			WinProbability: 0.5 + float64(rank(c))/100,
			Synergies:      map[game.Champion]float64{},
			Counters:       map[game.Champion]float64{},
		}
		for _, other := range all {
			if other == c {
				continue
			}
			syn, ctr := table(c, other)
			s.Synergies[other] = syn
			s.Counters[other] = ctr
		}
		out[c] = s
	}
	return out
}

// Data builds validated GameData, failing the test on error.
func Data(t testing.TB, perRole int, table Table) *game.GameData {
	t.Helper()
	data, err := game.NewGameData(Stats(perRole, table))
	require.NoError(t, err)
	return data
}

// Complete returns a legal full draft: blue takes the *1 champions, red the *2
// ones, filling roles in the order top, jungle, mid, bot, support.
func Complete() game.Draft {
	var blue, red []game.Champion
	for _, role := range game.Roles {
		blue = append(blue, Name(role, 1))
		red = append(red, Name(role, 2))
	}
	draft := make(game.Draft, 0, game.DraftSize)
	for i := 0; i < game.DraftSize; i++ {
		if game.PickingSide(i) == game.Blue {
			draft = append(draft, blue[0])
			blue = blue[1:]
		} else {
			draft = append(draft, red[0])
			red = red[1:]
		}
	}
	return draft
}
