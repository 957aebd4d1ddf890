package game_test

import (
	"testing"

	"github.com/kozlovskia/Draft-Simulator/game"
	"github.com/kozlovskia/Draft-Simulator/game/gametest"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestPickingSide(t *testing.T) {
	expected := []game.Side{
		game.Blue, game.Red, game.Red, game.Blue, game.Blue,
		game.Red, game.Red, game.Blue, game.Blue, game.Red,
	}
	for i, side := range expected {
		require.Equal(t, side, game.PickingSide(i), "pick %d", i)
	}
	require.Panics(t, func() { game.PickingSide(game.DraftSize) }, "Terminal draft has no picking side")
}

func TestRulesApply(t *testing.T) {
	data := gametest.Data(t, 2, gametest.Ranked)
	rules := game.NewRules(data)

	t.Run("removing a pick from both sides and its role from the picking side", func(t *testing.T) {
		index := rules.Initial()

		got, err := rules.Apply(index, game.Draft{}, "top1")

		require.NoError(t, err)
		require.False(t, got.Contains(game.Blue, "top1"), "Pick should leave the picking side")
		require.False(t, got.Contains(game.Red, "top1"), "Pick should leave the opposing side")
		require.False(t, got.Contains(game.Blue, "top2"), "Picking side should lose the rest of the role")
		require.True(t, got.Contains(game.Red, "top2"), "Opposing side should keep the rest of the role")
		require.Equal(t, 8, got.Count(game.Blue))
		require.Equal(t, 9, got.Count(game.Red))
		require.Equal(t, 10, index.Count(game.Blue), "Input index should not change")
	})

	t.Run("rejecting a champion already in the draft", func(t *testing.T) {
		draft := game.Draft{"top1"}
		index, err := rules.Replay(draft)
		require.NoError(t, err)
		before := index.Champions(game.Red)

		_, err = rules.Apply(index, draft, "top1")

		var illegal *game.IllegalPickError
		require.ErrorAs(t, err, &illegal)
		require.Equal(t, game.Champion("top1"), illegal.Champion)
		require.Equal(t, game.Red, illegal.Side)
		require.Contains(t, err.Error(), "for red side")
		require.Equal(t, before, index.Champions(game.Red), "Index should not change on a failed pick")
	})

	t.Run("rejecting a champion of a role the side already filled", func(t *testing.T) {
		draft := game.Draft{"top1", "mid1", "jungle1"}
		index, err := rules.Replay(draft)
		require.NoError(t, err)

		_, err = rules.Apply(index, draft, "top2")

		var illegal *game.IllegalPickError
		require.ErrorAs(t, err, &illegal)
		require.Equal(t, game.Blue, illegal.Side)
	})

	t.Run("rejecting an unknown champion", func(t *testing.T) {
		_, err := rules.Apply(rules.Initial(), game.Draft{}, "nobody")

		var illegal *game.IllegalPickError
		require.ErrorAs(t, err, &illegal)
	})

	t.Run("rejecting a pick on a complete draft", func(t *testing.T) {
		draft := gametest.Complete()
		index, err := rules.Replay(draft)
		require.NoError(t, err)

		_, err = rules.Apply(index, draft, "top1")

		var illegal *game.IllegalPickError
		require.ErrorAs(t, err, &illegal)
		require.Equal(t, `illegal pick "top1": draft is complete`, err.Error(), "A complete draft has no picking side to name")
	})
}

func TestRulesReplay(t *testing.T) {
	rules := game.NewRules(gametest.Data(t, 2, gametest.Ranked))

	t.Run("replaying a complete draft empties both pools", func(t *testing.T) {
		index, err := rules.Replay(gametest.Complete())

		require.NoError(t, err)
		require.Equal(t, 0, index.Count(game.Blue))
		require.Equal(t, 0, index.Count(game.Red))
	})

	invalid := map[string]game.Draft{
		"duplicate pick":                {"top1", "top1"},
		"too many picks":                append(gametest.Complete(), "top1"),
		"unknown champion":              {"nobody"},
		"role picked twice by one side": {"top1", "mid1", "jungle1", "top2"},
	}
	for name, draft := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := rules.Replay(draft)

			var invalid *game.InvalidDraftError
			require.ErrorAs(t, err, &invalid)
		})
	}
}

func TestAvailableForNeverOffersTakenChampionsOrRoles(t *testing.T) {
	data := gametest.Data(t, 3, gametest.Ranked)
	rules := game.NewRules(data)
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 50; trial++ {
		draft := game.Draft{}
		index := rules.Initial()
		for len(draft) < game.DraftSize {
			for _, side := range []game.Side{game.Blue, game.Red} {
				available, err := rules.AvailableFor(side, draft)
				require.NoError(t, err)
				require.Equal(t, index.Champions(side), available, "Cached index should match replay")

				filled := map[game.Role]bool{}
				for _, picked := range draft.Roster(side) {
					role, err := data.Role(picked)
					require.NoError(t, err)
					filled[role] = true
				}
				for _, champion := range available {
					require.False(t, draft.Contains(champion), "%s already picked in %v", champion, draft)
					role, err := data.Role(champion)
					require.NoError(t, err)
					require.False(t, filled[role], "%s side already filled %s in %v", side, role, draft)
				}
			}

			side := draft.Next()
			pick := index.Nth(side, rng.Intn(index.Count(side)))
			next, err := rules.Apply(index, draft, pick)
			require.NoError(t, err)
			index = next
			draft = append(draft, pick)
		}
	}
}

func TestDraftTeams(t *testing.T) {
	draft := gametest.Complete()

	blue, red := draft.Teams()

	require.Len(t, blue, game.TeamSize)
	require.Len(t, red, game.TeamSize)
	seen := map[game.Champion]int{}
	for _, c := range append(append([]game.Champion{}, blue...), red...) {
		seen[c]++
	}
	require.Len(t, seen, game.DraftSize, "Rosters should cover every pick")
	for c, n := range seen {
		require.Equal(t, 1, n, "%s should appear in exactly one roster", c)
	}
	require.Equal(t, []game.Champion{draft[0], draft[3], draft[4], draft[7], draft[8]}, blue)
}

func TestAvailableRoles(t *testing.T) {
	rules := game.NewRules(gametest.Data(t, 2, gametest.Ranked))

	roles, err := rules.AvailableRoles(game.Draft{"top1", "mid2", "bot1"})

	require.NoError(t, err)
	require.Equal(t, []game.Role{game.Jungle, game.Mid, game.Bot, game.Support}, roles[game.Blue])
	require.Equal(t, []game.Role{game.Top, game.Jungle, game.Support}, roles[game.Red])
}
