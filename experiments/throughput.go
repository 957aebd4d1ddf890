package experiments

import "github.com/kozlovskia/Draft-Simulator/searcher"

// Budgets are the episode budgets compared by the budget experiment.
var Budgets = []int{50, 100, 250, 400}

// RunBudgetExperiment repeats the strategy grid at the default exploration
// constant for every episode budget, showing what extra search buys.
func RunBudgetExperiment(setup Setup, budgets []int) (Result, error) {
	if len(budgets) == 0 {
		budgets = Budgets
	}
	return runExperiment("budget", setup, grid(budgets, []float64{searcher.DefaultExploration}))
}
