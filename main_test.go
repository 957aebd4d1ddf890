package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kozlovskia/Draft-Simulator/config"
	"github.com/kozlovskia/Draft-Simulator/game"
	"github.com/kozlovskia/Draft-Simulator/game/gametest"
	"github.com/kozlovskia/Draft-Simulator/gamedata"

	"github.com/stretchr/testify/require"
)

func newTestConfig(t *testing.T) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Data.Dir = t.TempDir()
	require.NoError(t, gamedata.WriteDir(cfg.Data.Dir, gametest.Data(t, 2, gametest.Ranked)))
	return cfg
}

func joined(draft game.Draft) string {
	picks := make([]string, len(draft))
	for i, c := range draft {
		picks[i] = string(c)
	}
	return strings.Join(picks, ",")
}

func TestParseDraft(t *testing.T) {
	require.Equal(t, game.Draft{}, parseDraft(""))
	require.Equal(t, game.Draft{"top1", "Lee Sin"}, parseDraft(" top1, Lee Sin ,"))
}

func TestRunRecommend(t *testing.T) {
	t.Run("recommending the last pick", func(t *testing.T) {
		cfg := newTestConfig(t)
		var out bytes.Buffer

		err := runRecommend(cfg, []string{"-draft", joined(gametest.Complete()[:9]), "-episodes", "20", "-seed", "3"}, &out)

		require.NoError(t, err)
		require.Contains(t, out.String(), "red side should pick support2")
		require.Contains(t, out.String(), "impact")
	})

	t.Run("recommending for the requested side", func(t *testing.T) {
		cfg := newTestConfig(t)
		var out bytes.Buffer

		err := runRecommend(cfg, []string{"-draft", "top1", "-side", "blue", "-episodes", "30", "-seed", "1"}, &out)

		require.NoError(t, err)
		require.True(t, strings.HasPrefix(out.String(), "blue side should pick"))
	})

	t.Run("rejecting an overlong draft", func(t *testing.T) {
		cfg := newTestConfig(t)
		draft := append(gametest.Complete(), "top1")

		err := runRecommend(cfg, []string{"-draft", joined(draft)}, &bytes.Buffer{})

		var invalid *game.InvalidDraftError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("sampling the pick at a temperature", func(t *testing.T) {
		cfg := newTestConfig(t)
		var out bytes.Buffer

		err := runRecommend(cfg, []string{"-draft", joined(gametest.Complete()[:9]), "-episodes", "20", "-seed", "3", "-temperature", "0.5"}, &out)

		require.NoError(t, err)
		require.Contains(t, out.String(), "sampled support2 at temperature 0.5")
		require.Contains(t, out.String(), "20 episodes at exploration 1.41")
	})

	t.Run("rejecting a zero budget", func(t *testing.T) {
		cfg := newTestConfig(t)

		err := runRecommend(cfg, []string{"-draft", "top1", "-episodes", "0"}, &bytes.Buffer{})

		require.ErrorContains(t, err, "episodes must be positive")
	})

	t.Run("rejecting a complete draft", func(t *testing.T) {
		cfg := newTestConfig(t)

		err := runRecommend(cfg, []string{"-draft", joined(gametest.Complete())}, &bytes.Buffer{})

		require.Error(t, err)
	})

	t.Run("rejecting an illegal draft", func(t *testing.T) {
		cfg := newTestConfig(t)

		err := runRecommend(cfg, []string{"-draft", "top1,top1"}, &bytes.Buffer{})

		var invalid *game.InvalidDraftError
		require.ErrorAs(t, err, &invalid)
	})
}

func TestMCTSFactory(t *testing.T) {
	data := gametest.Data(t, 2, gametest.Ranked)
	search := config.DefaultConfig().Search
	search.Episodes = 40
	factory := mctsFactory(data, search, 100)

	require.Equal(t, 40, factory(0).Episodes(), "Requests without a budget get the configured one")
	require.Equal(t, 70, factory(70).Episodes())
	require.Equal(t, 100, factory(1_000_000).Episodes(), "Requests are capped")
	require.Equal(t, search.Exploration, factory(70).Exploration())
}

func TestRunImport(t *testing.T) {
	cfg := newTestConfig(t)
	path := filepath.Join(t.TempDir(), "draft.db")

	require.NoError(t, runImport(cfg, []string{"-to", path}))

	cfg.Data.Store = path
	cfg.Data.Dir = ""
	data, err := loadData(cfg)
	require.NoError(t, err)
	require.Equal(t, 10, data.Size())

	store, err := gamedata.OpenStore(path)
	require.NoError(t, err)
	defer store.Close()
	count, err := store.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 10, count)
}
