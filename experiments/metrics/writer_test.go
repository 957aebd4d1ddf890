package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	writer, err := NewWriter(root, "strategy")
	require.NoError(t, err)

	_, err = uuid.Parse(writer.RunID())
	require.NoError(t, err, "Run directory should be named by a uuid")
	require.Equal(t, filepath.Join(root, "strategy", writer.RunID()), writer.Dir())

	t.Run("writing agent configs", func(t *testing.T) {
		err := writer.WriteAgentConfigs([]AgentConfig{
			{ID: 1, Episodes: 100, Exploration: 0.33, Side: "blue", Opponent: "winrate"},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(writer.Dir(), "agent_configs.csv"))
		require.Equal(t, [][]string{
			{"id", "episodes", "exploration", "side", "opponent"},
			{"1", "100", "0.33", "blue", "winrate"},
		}, rows)
	})

	t.Run("writing game records", func(t *testing.T) {
		start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		err := writer.WriteGameRecords([]GameRecord{{
			ID:    3,
			Agent: 1,
			Seed:  44,
			GameMetric: GameMetric{
				StartingLength: 2,
				Draft:          []string{"top1", "mid2"},
				Score:          -0.25,
				Advantage:      true,
				StartTime:      start,
				EndTime:        start.Add(time.Second),
				Duration:       time.Second,
			},
		}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(writer.Dir(), "game_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"3", "1", "44", "2", "top1 mid2", "-0.25", "true",
			"2024-05-01T12:00:00Z", "2024-05-01T12:00:01Z", "1s"}, rows[1])
	})

	t.Run("writing move records", func(t *testing.T) {
		err := writer.WriteMoveRecords([]MoveRecord{
			{Game: 3, MoveMetric: MoveMetric{Step: 4, Side: "blue", Champion: "bot1",
				SearchMetric: SearchMetric{Episodes: 50, Iterations: 50, Rollouts: 61, TreeSize: 70}}},
			{Game: 3, MoveMetric: MoveMetric{Step: 5, Side: "red", Champion: "bot2"}},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(writer.Dir(), "move_records.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, []string{"3", "4", "blue", "bot1", "0s", "50", "50", "61", "70"}, rows[1])
	})
}

func TestNewWriterFailsOnFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "taken")
	require.NoError(t, os.WriteFile(root, nil, 0644))

	_, err := NewWriter(root, "budget")

	require.Error(t, err)
}
