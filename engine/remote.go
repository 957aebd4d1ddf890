package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kozlovskia/Draft-Simulator/experiments/metrics"
	"github.com/kozlovskia/Draft-Simulator/game"
)

// RemoteAgent asks an agent server for its picks over HTTP.
type RemoteAgent struct {
	URL      string
	Episodes int
	Client   *http.Client
}

func NewRemoteAgent(url string, episodes int) *RemoteAgent {
	return &RemoteAgent{
		URL:      url,
		Episodes: episodes,
		Client:   &http.Client{Timeout: time.Minute},
	}
}

// FindPick encodes the current draft in JSON and posts it to /recommend on the agent side.
func (a *RemoteAgent) FindPick(draft game.Draft, side game.Side) (game.Champion, metrics.SearchMetric, error) {
	payload := struct {
		Draft    game.Draft `json:"draft"`
		Side     string     `json:"side"`
		Episodes int        `json:"episodes,omitempty"`
	}{
		Draft:    draft,
		Side:     side.String(),
		Episodes: a.Episodes,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", metrics.SearchMetric{}, fmt.Errorf("failed to encode request: %w", err)
	}

	start := time.Now()
	resp, err := a.Client.Post(a.URL+"/recommend", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", metrics.SearchMetric{}, fmt.Errorf("failed to reach agent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return "", metrics.SearchMetric{}, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, bytes.TrimSpace(out))
	}

	var recommendation struct {
		Champion game.Champion `json:"champion"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&recommendation); err != nil {
		return "", metrics.SearchMetric{}, fmt.Errorf("failed to decode recommendation: %w", err)
	}
	return recommendation.Champion, metrics.SearchMetric{Episodes: a.Episodes, Duration: time.Since(start)}, nil
}
