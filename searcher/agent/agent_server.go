package agent

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kozlovskia/Draft-Simulator/game"
	"github.com/kozlovskia/Draft-Simulator/searcher"

	"github.com/rs/zerolog/log"
)

// MCTSFactory builds a fresh search for one request. Requests never share a tree or an RNG.
type MCTSFactory func(episodes int) *searcher.MCTS

type recommendRequest struct {
	Draft    []game.Champion `json:"draft"`
	Side     string          `json:"side"`
	Episodes int             `json:"episodes,omitempty"`
}

type childResponse struct {
	Champion game.Champion `json:"champion"`
	Wins     int           `json:"wins"`
	Visits   int           `json:"visits"`
}

type recommendResponse struct {
	Champion game.Champion   `json:"champion"`
	WinRatio float64         `json:"winRatio"`
	Visits   int             `json:"visits"`
	Children []childResponse `json:"children"`
}

// NewAgentHandler serves POST /recommend.
func NewAgentHandler(factory MCTSFactory) http.Handler {
	// Create a local mux rather than using the global DefaultServeMux
	mux := http.NewServeMux()
	mux.HandleFunc("/recommend", func(w http.ResponseWriter, r *http.Request) {
		handleRecommend(w, r, factory)
	})
	return mux
}

// StartAgentServer starts an agent HTTP server on the given address.
func StartAgentServer(addr string, factory MCTSFactory) error {
	log.Info().Msgf("starting agent server on %s ...", addr)
	return http.ListenAndServe(addr, NewAgentHandler(factory))
}

func handleRecommend(w http.ResponseWriter, r *http.Request, factory MCTSFactory) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	side, err := game.ParseSide(payload.Side)
	if err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	mcts := factory(payload.Episodes)
	tree, _, err := mcts.Search(game.Draft(payload.Draft), side)
	if err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	choice, err := searcher.MakeChoice(tree)
	if errors.Is(err, searcher.ErrNoChildren) {
		http.Error(w, "draft is complete", http.StatusUnprocessableEntity)
		return
	}

	response := recommendResponse{
		Champion: choice.Champion,
		WinRatio: choice.WinRatio,
		Visits:   choice.Visits,
	}
	for _, child := range tree.Children() {
		response.Children = append(response.Children, childResponse{
			Champion: child.Champion,
			Wins:     child.Wins,
			Visits:   child.Visits,
		})
	}
	log.Debug().Msgf("recommended %s for %s side at %v", choice.Champion, side, payload.Draft)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error().Err(err).Msg("failed to encode recommendation")
	}
}
