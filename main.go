package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/kozlovskia/Draft-Simulator/config"
	"github.com/kozlovskia/Draft-Simulator/engine"
	"github.com/kozlovskia/Draft-Simulator/experiments"
	"github.com/kozlovskia/Draft-Simulator/game"
	"github.com/kozlovskia/Draft-Simulator/gamedata"
	"github.com/kozlovskia/Draft-Simulator/meta"
	"github.com/kozlovskia/Draft-Simulator/searcher"
	"github.com/kozlovskia/Draft-Simulator/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const usage = `usage: draft [-config path] <command> [flags]

commands:
  recommend   recommend the next pick for a draft
  serve       serve recommendations over HTTP
  experiment  play the search agent against naive drafters
  import      copy champions.json and roles.csv into a sqlite store
`

func main() {
	configPath := flag.String("config", meta.CONFIG_FILE, "Path to the TOML configuration")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	command, args := flag.Arg(0), flag.Args()[1:]

	switch command {
	case "recommend":
		err = runRecommend(cfg, args, os.Stdout)
	case "serve":
		err = runServe(cfg, args)
	case "experiment":
		err = runExperiment(cfg, args)
	case "import":
		err = runImport(cfg, args)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", command)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if env := config.LoadEnvFile(".env"); env != "" {
		log.Debug().Msgf("loaded environment from %s", env)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, _ := cfg.LogLevel()
	zerolog.SetGlobalLevel(level)
	return cfg, nil
}

// loadData reads the game data from the sqlite store when one is configured,
// otherwise from the data directory.
func loadData(cfg *config.Config) (*game.GameData, error) {
	if cfg.Data.Store == "" {
		return gamedata.LoadDir(cfg.Data.Dir)
	}
	store, err := gamedata.OpenStore(cfg.Data.Store)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Load(context.Background())
}

func newMCTS(data *game.GameData, cfg config.SearchConfig) *searcher.MCTS {
	options := []searcher.Option{
		searcher.WithEpisodes(cfg.Episodes),
		searcher.WithExploration(cfg.Exploration),
		searcher.WithMetrics(),
	}
	if cfg.Seed != 0 {
		options = append(options, searcher.WithSeed(cfg.Seed))
	}
	return searcher.NewMCTS(game.NewRules(data), game.NewOracle(data), options...)
}

// parseDraft reads a comma separated pick list.
func parseDraft(value string) game.Draft {
	draft := game.Draft{}
	for _, pick := range strings.Split(value, ",") {
		if pick = strings.TrimSpace(pick); pick != "" {
			draft = append(draft, game.Champion(pick))
		}
	}
	return draft
}

func runRecommend(cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("recommend", flag.ContinueOnError)
	draftFlag := fs.String("draft", "", "Comma separated picks so far")
	sideFlag := fs.String("side", "", "Side to recommend for, defaults to the picking side")
	fs.IntVar(&cfg.Search.Episodes, "episodes", cfg.Search.Episodes, "Search iterations")
	fs.Float64Var(&cfg.Search.Exploration, "exploration", cfg.Search.Exploration, "UCT exploration constant")
	fs.Uint64Var(&cfg.Search.Seed, "seed", cfg.Search.Seed, "Random seed, 0 seeds from the clock")
	temperature := fs.Float64("temperature", 0, "Sample the pick from visit counts at this temperature instead of taking the most visited")
	remote := fs.String("remote", "", "Ask the recommendation server at this URL instead of searching locally")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cfg.Search.Episodes <= 0 {
		return fmt.Errorf("episodes must be positive: %d", cfg.Search.Episodes)
	}
	if *temperature < 0 {
		return fmt.Errorf("temperature cannot be negative: %g", *temperature)
	}

	draft := parseDraft(*draftFlag)
	if len(draft) > game.DraftSize {
		return &game.InvalidDraftError{Draft: draft, Reason: fmt.Sprintf("%d picks, at most %d allowed", len(draft), game.DraftSize)}
	}
	if draft.Terminal() {
		return errors.New("draft is already complete")
	}
	side := draft.Next()
	if *sideFlag != "" {
		var err error
		if side, err = game.ParseSide(*sideFlag); err != nil {
			return err
		}
	}

	if *remote != "" {
		pick, metric, err := engine.NewRemoteAgent(*remote, cfg.Search.Episodes).FindPick(draft, side)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s side should pick %s (%s)\n", side, pick, metric.Duration.Round(time.Millisecond))
		return nil
	}

	data, err := loadData(cfg)
	if err != nil {
		return err
	}
	mcts := newMCTS(data, cfg.Search)
	tree, metric, err := mcts.Search(draft, side)
	if err != nil {
		return err
	}
	choice, err := searcher.MakeChoice(tree)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s side should pick %s: win ratio %.3f over %d visits\n", side, choice.Champion, choice.WinRatio, choice.Visits)
	if *temperature > 0 {
		seed := cfg.Search.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		sampled, err := agent.SampleChoice(tree, *temperature, rand.New(rand.NewSource(seed)))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "sampled %s at temperature %g\n", sampled, *temperature)
	}
	fmt.Fprintf(out, "%d episodes at exploration %.2f: ", mcts.Episodes(), mcts.Exploration())
	fmt.Fprintf(out, "%d iterations, %d rollouts, %d nodes in %s\n\n", metric.Iterations, metric.Rollouts, metric.TreeSize, metric.Duration.Round(time.Millisecond))
	return printChildren(out, game.NewOracle(data), draft, side, tree.Children())
}

// printChildren lists every candidate by visits with its impact on the current draft.
func printChildren(out io.Writer, oracle *game.Oracle, draft game.Draft, side game.Side, children []searcher.NodeStats) error {
	sort.SliceStable(children, func(i, j int) bool { return children[i].Visits > children[j].Visits })
	allies, opponents := draft.Sides(side)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "champion\tvisits\twin ratio\timpact")
	for _, child := range children {
		impact, err := oracle.ChampionImpact(child.Champion, allies, opponents, true)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%.3f\t%.3f\n", child.Champion, child.Visits, child.WinRatio(), impact)
	}
	return w.Flush()
}

func runServe(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.StringVar(&cfg.Server.Addr, "addr", cfg.Server.Addr, "Listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := loadData(cfg)
	if err != nil {
		return err
	}
	return agent.StartAgentServer(cfg.Server.Addr, mctsFactory(data, cfg.Search, cfg.Server.MaxEpisodes))
}

// mctsFactory builds one search per request. Requests without a budget get the
// configured one, and no request may run more than maxEpisodes.
func mctsFactory(data *game.GameData, search config.SearchConfig, maxEpisodes int) agent.MCTSFactory {
	return func(episodes int) *searcher.MCTS {
		request := search
		if episodes > 0 {
			request.Episodes = min(episodes, maxEpisodes)
		}
		if episodes > maxEpisodes {
			log.Warn().Msgf("capping requested %d episodes at %d", episodes, maxEpisodes)
		}
		return newMCTS(data, request)
	}
}

func runExperiment(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("experiment", flag.ContinueOnError)
	kind := fs.String("kind", "strategy", "Experiment to run: strategy or budget")
	draftFlag := fs.String("draft", "", "Comma separated picks every game starts from")
	fs.IntVar(&cfg.Search.Episodes, "episodes", cfg.Search.Episodes, "Search iterations in the strategy experiment")
	fs.IntVar(&cfg.Experiment.Games, "games", cfg.Experiment.Games, "Games per agent config")
	fs.IntVar(&cfg.Experiment.Workers, "workers", cfg.Experiment.Workers, "Games played at once")
	fs.StringVar(&cfg.Experiment.OutputDir, "out", cfg.Experiment.OutputDir, "Directory for CSV results")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := loadData(cfg)
	if err != nil {
		return err
	}
	setup := experiments.Setup{
		Data:      data,
		Games:     cfg.Experiment.Games,
		Workers:   cfg.Experiment.Workers,
		BaseSeed:  cfg.Experiment.BaseSeed,
		Initial:   parseDraft(*draftFlag),
		OutputDir: cfg.Experiment.OutputDir,
	}

	var result experiments.Result
	switch *kind {
	case "strategy":
		result, err = experiments.RunStrategyExperiment(setup, cfg.Search.Episodes)
	case "budget":
		result, err = experiments.RunBudgetExperiment(setup, experiments.Budgets)
	default:
		return fmt.Errorf("unknown experiment %q", *kind)
	}
	if err != nil {
		return err
	}
	log.Info().Msgf("experiment run %s played %d games", result.RunID, len(result.Games))
	return nil
}

func runImport(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	from := fs.String("from", cfg.Data.Dir, "Directory with champions.json and roles.csv")
	to := fs.String("to", cfg.Data.Store, "sqlite store to write")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *to == "" {
		return errors.New("import needs a store path")
	}

	data, err := gamedata.LoadDir(*from)
	if err != nil {
		return err
	}
	store, err := gamedata.OpenStore(*to)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Save(context.Background(), data); err != nil {
		return err
	}
	log.Info().Msgf("imported %d champions into %s", data.Size(), *to)
	return nil
}
