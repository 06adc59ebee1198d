package catalog

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleBatsman      Role = "Batsman"
	RoleBowler       Role = "Bowler"
	RoleAllRounder   Role = "All-Rounder"
	RoleWicketkeeper Role = "Wicketkeeper"
)

var Roles = []Role{RoleBatsman, RoleBowler, RoleAllRounder, RoleWicketkeeper}

func (r Role) Valid() bool {
	switch r {
	case RoleBatsman, RoleBowler, RoleAllRounder, RoleWicketkeeper:
		return true
	}
	return false
}

// Player is a draftable record. Values are never mutated after the catalog is
// loaded; teams and the auction log refer to players by ID.
type Player struct {
	ID          int             `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Role        Role            `json:"role" yaml:"role"`
	Nationality string          `json:"nationality" yaml:"nationality"`
	Age         int             `json:"age" yaml:"age"`
	Matches     int             `json:"matches" yaml:"matches"`
	BasePrice   decimal.Decimal `json:"base_price" yaml:"base_price"`
	Rating      int             `json:"rating" yaml:"rating"`
	Capped      bool            `json:"capped" yaml:"capped"`
	Stats       Stats           `json:"stats" yaml:"stats"`
}

// Stats are career figures. Which fields are set depends on the role:
// batting figures for batsmen and keepers, bowling figures for bowlers, both
// for all-rounders.
type Stats struct {
	Runs              int     `json:"runs" yaml:"runs"`
	HighestScore      int     `json:"highest_score" yaml:"highest_score"`
	Wickets           int     `json:"wickets" yaml:"wickets"`
	BestBowling       string  `json:"best_bowling,omitempty" yaml:"best_bowling,omitempty"` // "wickets/runs"
	BattingAverage    float64 `json:"batting_average" yaml:"batting_average"`
	BattingStrikeRate float64 `json:"batting_strike_rate" yaml:"batting_strike_rate"`
	BowlingAverage    float64 `json:"bowling_average" yaml:"bowling_average"`
	BowlingEconomy    float64 `json:"bowling_economy" yaml:"bowling_economy"`
	BowlingStrikeRate float64 `json:"bowling_strike_rate" yaml:"bowling_strike_rate"`
}

func (p Player) IsOverseas(domestic string) bool {
	return p.Nationality != domestic
}

type Team struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Catalog is the frozen input to an auction: players in auction order, the
// competing teams, and what each team held last season.
type Catalog struct {
	Players  []Player      `json:"players" yaml:"players"`
	Teams    []Team        `json:"teams" yaml:"teams"`
	Previous map[int][]int `json:"previous" yaml:"previous"` // team ID -> player IDs
}

var (
	ErrEmptyCatalog    = errors.New("catalog has no players")
	ErrDuplicatePlayer = errors.New("duplicate player id")
	ErrInvalidPlayer   = errors.New("invalid player")
	ErrInvalidTeam     = errors.New("invalid team")
)

func (c Catalog) Validate() error {
	if len(c.Players) == 0 {
		return ErrEmptyCatalog
	}
	seen := make(map[int]bool, len(c.Players))
	for _, p := range c.Players {
		if seen[p.ID] {
			return fmt.Errorf("%w: %d", ErrDuplicatePlayer, p.ID)
		}
		seen[p.ID] = true
		if !p.Role.Valid() {
			return fmt.Errorf("%w: player %d has role %q", ErrInvalidPlayer, p.ID, p.Role)
		}
		if p.BasePrice.IsNegative() {
			return fmt.Errorf("%w: player %d has negative base price", ErrInvalidPlayer, p.ID)
		}
	}

	if len(c.Teams) < 2 {
		return fmt.Errorf("%w: need at least two teams, got %d", ErrInvalidTeam, len(c.Teams))
	}
	teamIDs := make(map[int]bool, len(c.Teams))
	for _, t := range c.Teams {
		if t.ID <= 0 || teamIDs[t.ID] {
			return fmt.Errorf("%w: bad or duplicate id %d", ErrInvalidTeam, t.ID)
		}
		teamIDs[t.ID] = true
	}

	for teamID, ids := range c.Previous {
		if !teamIDs[teamID] {
			return fmt.Errorf("%w: previous roster for unknown team %d", ErrInvalidTeam, teamID)
		}
		for _, id := range ids {
			if !seen[id] {
				return fmt.Errorf("%w: previous roster of team %d lists unknown player %d", ErrInvalidPlayer, teamID, id)
			}
		}
	}
	return nil
}

// PlayerByID is a linear scan; catalogs are a few hundred entries.
func (c Catalog) PlayerByID(id int) (Player, bool) {
	for _, p := range c.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// PreviousPlayers returns the retention candidates for a team in catalog order.
func (c Catalog) PreviousPlayers(teamID int) []Player {
	ids := c.Previous[teamID]
	if len(ids) == 0 {
		return nil
	}
	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]Player, 0, len(ids))
	for _, p := range c.Players {
		if want[p.ID] {
			out = append(out, p)
		}
	}
	return out
}
