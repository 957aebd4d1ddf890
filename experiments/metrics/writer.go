package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AgentConfig describes the search agent of one experiment cell and the naive opponent it faces.
type AgentConfig struct {
	ID          int
	Episodes    int
	Exploration float64
	Side        string // Side played by the search agent
	Opponent    string // Naive strategy of the other side
}

type GameRecord struct {
	ID    int
	Agent int // AgentConfig.ID
	Seed  uint64
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	runID   string
	baseDir string
}

// NewWriter creates <root>/<name>/<run id> for the CSV files of one experiment run.
func NewWriter(root, name string) (*Writer, error) {
	runID := uuid.NewString()
	baseDir := filepath.Join(root, name, runID)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		runID:   runID,
		baseDir: baseDir,
	}, nil
}

func (w *Writer) RunID() string {
	return w.runID
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "episodes", "exploration", "side", "opponent"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.Episodes),
			strconv.FormatFloat(config.Exploration, 'f', -1, 64),
			config.Side,
			config.Opponent,
		})
	}
	return w.write("agent_configs.csv", "agent config", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent", "seed", "starting_length", "draft", "score", "advantage", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent),
			strconv.FormatUint(record.Seed, 10),
			strconv.Itoa(record.StartingLength),
			strings.Join(record.Draft, " "),
			strconv.FormatFloat(record.Score, 'f', -1, 64),
			strconv.FormatBool(record.Advantage),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.write("game_records.csv", "game record", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "side", "champion", "duration", "episodes", "iterations", "rollouts", "tree_size"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Side,
			record.Champion,
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.Iterations),
			strconv.Itoa(record.Rollouts),
			strconv.Itoa(record.TreeSize),
		})
	}
	return w.write("move_records.csv", "move record", header, rows)
}

func (w *Writer) write(file, kind string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s file: %w", kind, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", kind, err)
	}
	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", kind, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s file: %w", kind, err)
	}
	return nil
}
