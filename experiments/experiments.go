package experiments

import (
	"fmt"
	"sync"

	"github.com/kozlovskia/Draft-Simulator/engine"
	"github.com/kozlovskia/Draft-Simulator/experiments/metrics"
	"github.com/kozlovskia/Draft-Simulator/game"
	"github.com/kozlovskia/Draft-Simulator/searcher"
	"github.com/kozlovskia/Draft-Simulator/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const (
	NumGames = 20 // Per agent config
	BaseSeed = 1
)

// Explorations are the UCT constants compared by the strategy experiment.
var Explorations = []float64{0, 0.33, 0.66, 1.0, 1.33, 1.66, 2.0}

// Setup holds what every experiment shares.
type Setup struct {
	Data      *game.GameData
	Games     int    // Games per agent config
	Workers   int    // Games played at once
	BaseSeed  uint64 // Game i is seeded with BaseSeed + i
	Initial   game.Draft
	OutputDir string // CSV files are skipped when empty
}

func (s Setup) withDefaults() Setup {
	if s.Games <= 0 {
		s.Games = NumGames
	}
	if s.Workers <= 0 {
		s.Workers = 1
	}
	return s
}

// Result is the outcome of an experiment, with the average advantage of the search agent per config.
type Result struct {
	RunID     string
	Configs   []metrics.AgentConfig
	Games     []metrics.GameRecord
	Moves     []metrics.MoveRecord
	Advantage map[int]float64 // AgentConfig.ID to share of games where the search agent outscored its opponent
}

// RunStrategyExperiment pits the search agent against every naive strategy, on both
// sides, for each exploration constant.
func RunStrategyExperiment(setup Setup, episodes int) (Result, error) {
	return runExperiment("strategy", setup, grid([]int{episodes}, Explorations))
}

// grid lists one config per episodes x exploration x side x strategy.
func grid(budgets []int, explorations []float64) []metrics.AgentConfig {
	configs := []metrics.AgentConfig{}
	for _, episodes := range budgets {
		for _, c := range explorations {
			for _, side := range []game.Side{game.Blue, game.Red} {
				for _, strategy := range agent.Strategies {
					configs = append(configs, metrics.AgentConfig{
						ID:          len(configs) + 1,
						Episodes:    episodes,
						Exploration: c,
						Side:        side.String(),
						Opponent:    strategy.String(),
					})
				}
			}
		}
	}
	return configs
}

type job struct {
	game   int // Index into the record slice
	config metrics.AgentConfig
}

func runExperiment(name string, setup Setup, configs []metrics.AgentConfig) (Result, error) {
	setup = setup.withDefaults()
	if setup.Data == nil {
		return Result{}, fmt.Errorf("%s experiment needs game data", name)
	}
	if err := game.NewRules(setup.Data).Validate(setup.Initial); err != nil {
		return Result{}, err
	}

	jobs := []job{}
	for _, config := range configs {
		for i := 0; i < setup.Games; i++ {
			jobs = append(jobs, job{game: len(jobs), config: config})
		}
	}

	log.Info().Msgf("starting %s experiment with %d configs and %d games...", name, len(configs), len(jobs))

	// Each game writes only its own slot
	gameRecords := make([]metrics.GameRecord, len(jobs))
	moveMetrics := make([][]metrics.MoveMetric, len(jobs))
	errs := make([]error, len(jobs))

	var wg sync.WaitGroup
	sem := make(chan struct{}, setup.Workers)
	for _, j := range jobs {
		wg.Add(1)
		go func(j job) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			seed := setup.BaseSeed + uint64(j.game)
			gameMetric, moves, err := runGame(setup.Data, setup.Initial, j.config, seed)
			if err != nil {
				errs[j.game] = fmt.Errorf("game %d with agent %d: %w", j.game+1, j.config.ID, err)
				return
			}
			gameRecords[j.game] = metrics.GameRecord{
				ID:         j.game + 1,
				Agent:      j.config.ID,
				Seed:       seed,
				GameMetric: gameMetric,
			}
			moveMetrics[j.game] = moves
			log.Debug().Msgf("completed game %d of %d with agent %d, advantage: %t", j.game+1, len(jobs), j.config.ID, gameMetric.Advantage)
		}(j)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return Result{}, err
		}
	}

	result := Result{
		Configs:   configs,
		Games:     gameRecords,
		Advantage: averageAdvantage(configs, gameRecords),
	}
	for i, moves := range moveMetrics {
		for _, mm := range moves {
			result.Moves = append(result.Moves, metrics.MoveRecord{Game: i + 1, MoveMetric: mm})
		}
	}
	for _, config := range configs {
		log.Info().Msgf("agent %d %+v: average advantage %.3f", config.ID, config, result.Advantage[config.ID])
	}
	log.Info().Msgf("completed %s experiment", name)

	if setup.OutputDir == "" {
		return result, nil
	}
	runID, err := store(name, setup.OutputDir, result)
	if err != nil {
		return result, err
	}
	result.RunID = runID
	return result, nil
}

func averageAdvantage(configs []metrics.AgentConfig, records []metrics.GameRecord) map[int]float64 {
	wins := map[int]int{}
	games := map[int]int{}
	for _, record := range records {
		games[record.Agent]++
		if record.Advantage {
			wins[record.Agent]++
		}
	}
	averages := make(map[int]float64, len(configs))
	for _, config := range configs {
		if games[config.ID] > 0 {
			averages[config.ID] = float64(wins[config.ID]) / float64(games[config.ID])
		}
	}
	return averages
}

func store(name, root string, result Result) (string, error) {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(result.Configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(result.Games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(result.Moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored %s experiment results in %s", name, writer.Dir())
	return writer.RunID(), nil
}

// runGame plays one draft between a search agent and a naive agent. Both own
// their random sources, so games never share state.
func runGame(data *game.GameData, initial game.Draft, config metrics.AgentConfig, seed uint64) (metrics.GameMetric, []metrics.MoveMetric, error) {
	side, err := game.ParseSide(config.Side)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	strategy, err := agent.ParseStrategy(config.Opponent)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}

	rules := game.NewRules(data)
	oracle := game.NewOracle(data)
	mcts := searcher.NewMCTS(rules, oracle,
		searcher.WithEpisodes(config.Episodes),
		searcher.WithExploration(config.Exploration),
		searcher.WithSeed(seed),
		searcher.WithMetrics(),
	)
	searchAgent := agent.NewEvaluationAgent(mcts)
	naiveAgent := agent.NewNaiveAgent(rules, strategy, rand.New(rand.NewSource(seed)))

	blue, red := searchAgent, naiveAgent
	if side == game.Red {
		blue, red = naiveAgent, searchAgent
	}
	e, err := engine.NewLocalEngine(rules, oracle, blue, red, initial)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	return e.Run(side)
}
