package searcher

import "math"

// Hyperparameters for MCTS

const DefaultExploration = math.Sqrt2 // Exploration constant C

const DefaultEpisodes = 500 // Iterations per decision
