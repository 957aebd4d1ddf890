package gamedata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kozlovskia/Draft-Simulator/game"
	"github.com/kozlovskia/Draft-Simulator/game/gametest"

	"github.com/stretchr/testify/require"
)

func TestLoadChampionsJSON(t *testing.T) {
	t.Run("decoding scores", func(t *testing.T) {
		body := `{
			"Ahri": {"key": "103", "popularity": 0.12, "win_probability": 0.51,
				"synergies": {"Lee Sin": {"score": 0.53, "popularity": 0.01}},
				"counters": {"Lee Sin": {"score": 0.47, "popularity": 0.02}}}
		}`

		got, err := LoadChampionsJSON(strings.NewReader(body))

		require.NoError(t, err)
		require.Equal(t, 0.51, got["Ahri"].WinProbability)
		require.Equal(t, 0.12, got["Ahri"].Popularity)
		require.Equal(t, 0.53, got["Ahri"].Synergies["Lee Sin"].Score)
		require.Equal(t, 0.47, got["Ahri"].Counters["Lee Sin"].Score)
	})

	t.Run("rejecting malformed input", func(t *testing.T) {
		_, err := LoadChampionsJSON(strings.NewReader(`{"Ahri": [`))

		require.Error(t, err)
	})

	t.Run("rejecting an empty table", func(t *testing.T) {
		_, err := LoadChampionsJSON(strings.NewReader(`{}`))

		require.Error(t, err)
	})
}

func TestLoadRolesCSV(t *testing.T) {
	t.Run("reading roles by header", func(t *testing.T) {
		body := "role,champ_name\nmid,Ahri\njungle,Lee Sin\nadc,Jinx\n"

		got, err := LoadRolesCSV(strings.NewReader(body))

		require.NoError(t, err)
		require.Equal(t, map[game.Champion]game.Role{
			"Ahri":    game.Mid,
			"Lee Sin": game.Jungle,
			"Jinx":    game.Bot,
		}, got)
	})

	t.Run("rejecting an unknown role", func(t *testing.T) {
		_, err := LoadRolesCSV(strings.NewReader("champ_name,role\nAhri,roam\n"))

		require.ErrorContains(t, err, "line 2")
	})

	t.Run("rejecting a champion with two roles", func(t *testing.T) {
		_, err := LoadRolesCSV(strings.NewReader("champ_name,role\nAhri,mid\nAhri,top\n"))

		require.Error(t, err)
	})

	t.Run("rejecting a missing column", func(t *testing.T) {
		_, err := LoadRolesCSV(strings.NewReader("name,role\nAhri,mid\n"))

		require.Error(t, err)
	})
}

func TestMerge(t *testing.T) {
	champions := map[string]ChampionJSON{
		"Ahri": {Popularity: 0.1, WinProbability: 0.5,
			Synergies: map[string]PairJSON{"Jinx": {Score: 0.4}},
			Counters:  map[string]PairJSON{"Jinx": {Score: 0.6}}},
		"Jinx": {Popularity: 0.2, WinProbability: 0.49},
	}

	got := Merge(champions, map[game.Champion]game.Role{"Ahri": game.Mid, "Zed": game.Mid})

	require.Len(t, got, 1, "Champions without a role should be left out")
	require.Equal(t, game.ChampionStats{
		Role:           game.Mid,
		Popularity:     0.1,
		WinProbability: 0.5,
		Synergies:      map[game.Champion]float64{"Jinx": 0.4},
		Counters:       map[game.Champion]float64{"Jinx": 0.6},
	}, got["Ahri"])
}

func TestLoadDir(t *testing.T) {
	t.Run("reading back written data", func(t *testing.T) {
		dir := t.TempDir()
		data := gametest.Data(t, 2, gametest.Ranked)
		require.NoError(t, WriteDir(dir, data))

		got, err := LoadDir(dir)

		require.NoError(t, err)
		require.Equal(t, data.Champions(), got.Champions())
		require.Equal(t, data.Stats(), got.Stats())
	})

	t.Run("rejecting an incomplete scoring table", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, WriteDir(dir, gametest.Data(t, 2, gametest.Ranked)))
		// Give a third mid champion no scores against the rest
		f, err := os.OpenFile(filepath.Join(dir, RolesFile), os.O_APPEND|os.O_WRONLY, 0644)
		require.NoError(t, err)
		_, err = f.WriteString("mid3,mid\n")
		require.NoError(t, err)
		require.NoError(t, f.Close())
		body, err := os.ReadFile(filepath.Join(dir, ChampionsFile))
		require.NoError(t, err)
		patched := strings.Replace(string(body), "{", `{"mid3": {"popularity": 0.1, "win_probability": 0.5},`, 1)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ChampionsFile), []byte(patched), 0644))

		_, err = LoadDir(dir)

		var unknown *game.UnknownChampionError
		require.ErrorAs(t, err, &unknown)
	})

	t.Run("failing on a missing directory", func(t *testing.T) {
		_, err := LoadDir(filepath.Join(t.TempDir(), "missing"))

		require.Error(t, err)
	})
}
