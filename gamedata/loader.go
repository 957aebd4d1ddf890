package gamedata

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kozlovskia/Draft-Simulator/game"

	"github.com/rs/zerolog/log"
)

const (
	ChampionsFile = "champions.json"
	RolesFile     = "roles.csv"
)

// PairJSON is one synergy or counter entry of champions.json.
type PairJSON struct {
	Score      float64 `json:"score"`
	Popularity float64 `json:"popularity,omitempty"`
}

// ChampionJSON is one champion of champions.json.
type ChampionJSON struct {
	Key            string              `json:"key,omitempty"`
	Popularity     float64             `json:"popularity"`
	WinProbability float64             `json:"win_probability"`
	Synergies      map[string]PairJSON `json:"synergies"`
	Counters       map[string]PairJSON `json:"counters"`
}

// LoadChampionsJSON decodes champions.json, keyed by champion name.
func LoadChampionsJSON(r io.Reader) (map[string]ChampionJSON, error) {
	var champions map[string]ChampionJSON
	if err := json.NewDecoder(r).Decode(&champions); err != nil {
		return nil, fmt.Errorf("failed to decode champions: %w", err)
	}
	if len(champions) == 0 {
		return nil, errors.New("no champions in champion data")
	}
	return champions, nil
}

// LoadRolesCSV reads the champ_name,role table.
func LoadRolesCSV(r io.Reader) (map[game.Champion]game.Role, error) {
	reader := csv.NewReader(r)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read roles: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("roles table is empty")
	}

	nameCol, roleCol := -1, -1
	for i, column := range rows[0] {
		switch strings.TrimSpace(column) {
		case "champ_name":
			nameCol = i
		case "role":
			roleCol = i
		}
	}
	if nameCol < 0 || roleCol < 0 {
		return nil, fmt.Errorf("roles header %v needs champ_name and role columns", rows[0])
	}

	roles := make(map[game.Champion]game.Role, len(rows)-1)
	for line, row := range rows[1:] {
		role, err := game.ParseRole(row[roleCol])
		if err != nil {
			return nil, fmt.Errorf("roles line %d: %w", line+2, err)
		}
		champion := game.Champion(strings.TrimSpace(row[nameCol]))
		if previous, ok := roles[champion]; ok && previous != role {
			return nil, fmt.Errorf("roles line %d: %s is listed as %s and %s", line+2, champion, previous, role)
		}
		roles[champion] = role
	}
	return roles, nil
}

// Merge joins the champion table with the roles. Champions without a role are left out of the roster.
func Merge(champions map[string]ChampionJSON, roles map[game.Champion]game.Role) map[game.Champion]game.ChampionStats {
	stats := make(map[game.Champion]game.ChampionStats, len(roles))
	for name, c := range champions {
		champion := game.Champion(name)
		role, ok := roles[champion]
		if !ok {
			log.Warn().Msgf("champion %s has no role, leaving it out", champion)
			continue
		}
		stats[champion] = game.ChampionStats{
			Role:           role,
			Popularity:     c.Popularity,
			WinProbability: c.WinProbability,
			Synergies:      scores(c.Synergies),
			Counters:       scores(c.Counters),
		}
	}
	for champion := range roles {
		if _, ok := champions[string(champion)]; !ok {
			log.Warn().Msgf("role given for %s without champion data, ignoring it", champion)
		}
	}
	return stats
}

func scores(pairs map[string]PairJSON) map[game.Champion]float64 {
	out := make(map[game.Champion]float64, len(pairs))
	for other, pair := range pairs {
		out[game.Champion(other)] = pair.Score
	}
	return out
}

// LoadDir builds the game data from champions.json and roles.csv in dir.
func LoadDir(dir string) (*game.GameData, error) {
	championsFile, err := os.Open(filepath.Join(dir, ChampionsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to open champion data: %w", err)
	}
	defer championsFile.Close()
	champions, err := LoadChampionsJSON(championsFile)
	if err != nil {
		return nil, err
	}

	rolesFile, err := os.Open(filepath.Join(dir, RolesFile))
	if err != nil {
		return nil, fmt.Errorf("failed to open roles: %w", err)
	}
	defer rolesFile.Close()
	roles, err := LoadRolesCSV(rolesFile)
	if err != nil {
		return nil, err
	}

	data, err := game.NewGameData(Merge(champions, roles))
	if err != nil {
		return nil, fmt.Errorf("invalid game data in %s: %w", dir, err)
	}
	log.Info().Msgf("loaded %d champions from %s", data.Size(), dir)
	return data, nil
}

// WriteDir writes data back out as champions.json and roles.csv.
func WriteDir(dir string, data *game.GameData) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	champions := map[string]ChampionJSON{}
	rows := [][]string{{"champ_name", "role"}}
	stats := data.Stats()
	for _, champion := range data.Champions() {
		s := stats[champion]
		c := ChampionJSON{
			Popularity:     s.Popularity,
			WinProbability: s.WinProbability,
			Synergies:      map[string]PairJSON{},
			Counters:       map[string]PairJSON{},
		}
		for other, score := range s.Synergies {
			c.Synergies[string(other)] = PairJSON{Score: score}
		}
		for other, score := range s.Counters {
			c.Counters[string(other)] = PairJSON{Score: score}
		}
		champions[string(champion)] = c
		rows = append(rows, []string{string(champion), string(s.Role)})
	}

	body, err := json.MarshalIndent(champions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode champions: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ChampionsFile), body, 0644); err != nil {
		return fmt.Errorf("failed to write champion data: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, RolesFile))
	if err != nil {
		return fmt.Errorf("failed to create roles file: %w", err)
	}
	defer f.Close()
	writer := csv.NewWriter(f)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write roles: %w", err)
	}
	return nil
}

