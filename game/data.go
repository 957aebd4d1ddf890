package game

import (
	"fmt"
	"sort"
)

// ChampionStats holds the external per-champion data the core consumes.
type ChampionStats struct {
	Role           Role
	Popularity     float64
	WinProbability float64              // Solo impact
	Synergies      map[Champion]float64 // Score of this champion paired with an ally
	Counters       map[Champion]float64 // Score of this champion facing an opponent
}

// GameData is the immutable roster and scoring table shared by the legality
// model and the oracle. Build it once per process with NewGameData.
type GameData struct {
	champions []Champion // Sorted, position is the champion index
	index     map[Champion]int
	roles     []Role
	byRole    map[Role][]int
	solo      []float64
	pop       []float64
	synergy   [][]float64
	counter   [][]float64
}

// NewGameData validates and indexes the roster and scoring table. Every role
// needs at least two champions so that neither side can run out of a role, and
// every ordered pair of distinct champions needs a synergy and a counter score.
func NewGameData(stats map[Champion]ChampionStats) (*GameData, error) {
	champions := make([]Champion, 0, len(stats))
	for champion := range stats {
		champions = append(champions, champion)
	}
	sort.Slice(champions, func(i, j int) bool { return champions[i] < champions[j] })

	n := len(champions)
	d := &GameData{
		champions: champions,
		index:     make(map[Champion]int, n),
		roles:     make([]Role, n),
		byRole:    make(map[Role][]int, len(Roles)),
		solo:      make([]float64, n),
		pop:       make([]float64, n),
		synergy:   make([][]float64, n),
		counter:   make([][]float64, n),
	}
	for i, champion := range champions {
		d.index[champion] = i
	}

	for i, champion := range champions {
		s := stats[champion]
		role, err := ParseRole(string(s.Role))
		if err != nil {
			return nil, fmt.Errorf("champion %q: %w", champion, err)
		}
		d.roles[i] = role
		d.byRole[role] = append(d.byRole[role], i)
		d.solo[i] = s.WinProbability
		d.pop[i] = s.Popularity

		d.synergy[i] = make([]float64, n)
		d.counter[i] = make([]float64, n)
		for j, other := range champions {
			if i == j {
				continue
			}
			syn, ok := s.Synergies[other]
			if !ok {
				return nil, &UnknownChampionError{Champion: champion, Other: other}
			}
			ctr, ok := s.Counters[other]
			if !ok {
				return nil, &UnknownChampionError{Champion: champion, Other: other}
			}
			d.synergy[i][j] = syn
			d.counter[i][j] = ctr
		}
	}

	for _, role := range Roles {
		if got := len(d.byRole[role]); got < 2 {
			return nil, fmt.Errorf("role %s has %d champions, need at least 2", role, got)
		}
	}
	return d, nil
}

// Champions returns the roster in index order.
func (d *GameData) Champions() []Champion {
	out := make([]Champion, len(d.champions))
	copy(out, d.champions)
	return out
}

func (d *GameData) Size() int {
	return len(d.champions)
}

func (d *GameData) Role(champion Champion) (Role, error) {
	i, err := d.indexOf(champion)
	if err != nil {
		return "", err
	}
	return d.roles[i], nil
}

// ChampionsOf returns every champion of a role, in index order.
func (d *GameData) ChampionsOf(role Role) []Champion {
	members := d.byRole[role]
	out := make([]Champion, len(members))
	for k, i := range members {
		out[k] = d.champions[i]
	}
	return out
}

func (d *GameData) SoloImpact(champion Champion) (float64, error) {
	i, err := d.indexOf(champion)
	if err != nil {
		return 0, err
	}
	return d.solo[i], nil
}

func (d *GameData) Popularity(champion Champion) (float64, error) {
	i, err := d.indexOf(champion)
	if err != nil {
		return 0, err
	}
	return d.pop[i], nil
}

func (d *GameData) Synergy(champion, ally Champion) (float64, error) {
	i, j, err := d.pair(champion, ally)
	if err != nil {
		return 0, err
	}
	return d.synergy[i][j], nil
}

func (d *GameData) Counter(champion, opponent Champion) (float64, error) {
	i, j, err := d.pair(champion, opponent)
	if err != nil {
		return 0, err
	}
	return d.counter[i][j], nil
}

// Stats rebuilds the per-champion view, the inverse of NewGameData.
func (d *GameData) Stats() map[Champion]ChampionStats {
	out := make(map[Champion]ChampionStats, len(d.champions))
	for i, champion := range d.champions {
		s := ChampionStats{
			Role:           d.roles[i],
			Popularity:     d.pop[i],
			WinProbability: d.solo[i],
			Synergies:      make(map[Champion]float64, len(d.champions)-1),
			Counters:       make(map[Champion]float64, len(d.champions)-1),
		}
		for j, other := range d.champions {
			if i == j {
				continue
			}
			s.Synergies[other] = d.synergy[i][j]
			s.Counters[other] = d.counter[i][j]
		}
		out[champion] = s
	}
	return out
}

func (d *GameData) indexOf(champion Champion) (int, error) {
	i, ok := d.index[champion]
	if !ok {
		return 0, &UnknownChampionError{Champion: champion}
	}
	return i, nil
}

func (d *GameData) pair(a, b Champion) (int, int, error) {
	i, ok := d.index[a]
	if !ok {
		return 0, 0, &UnknownChampionError{Champion: a, Other: b}
	}
	j, ok := d.index[b]
	if !ok || i == j {
		return 0, 0, &UnknownChampionError{Champion: a, Other: b}
	}
	return i, j, nil
}
