package policy

import (
	"github.com/DoyleJ11/cricket-auction/internal/engine"
)

const (
	RoleSaturation     = 8
	OverseasSaturation = 8
	SaturationPenalty  = 50.0
	StarRating         = 90
	StarBonus          = 20.0
	PassChance         = 0.2
)

type Kind string

const (
	KindNone    Kind = "none"
	KindBid     Kind = "bid"
	KindPass    Kind = "pass"
	KindResolve Kind = "resolve"
)

// Decision is what the AI side wants to do on the current tick.
type Decision struct {
	Kind   Kind
	TeamID int
	Score  float64
}

// Command converts d into the engine command that carries it out.
func (d Decision) Command() (engine.Command, bool) {
	switch d.Kind {
	case KindBid:
		return engine.Command{Type: engine.CmdBid, TeamID: d.TeamID}, true
	case KindPass:
		return engine.Command{Type: engine.CmdPass, TeamID: d.TeamID}, true
	case KindResolve:
		return engine.Command{Type: engine.CmdResolve}, true
	}
	return engine.Command{}, false
}

// Eligible lists the AI teams that could raise the current lot.
func Eligible(s engine.State) []engine.Team {
	if s.Phase != engine.PhaseBidding {
		return nil
	}
	next := engine.NextBid(s.CurrentBid)

	var out []engine.Team
	for _, t := range s.Teams {
		switch {
		case t.ID == s.HumanTeamID,
			t.ID == s.LeaderID,
			s.Withdrawn[t.ID],
			len(t.Roster) >= s.Rules.RosterCeiling,
			t.Budget.LessThan(next):
			continue
		}
		out = append(out, t)
	}
	return out
}

// Score rates how keen team t is on the current player before jitter.
func Score(s engine.State, t engine.Team) float64 {
	p, ok := s.CurrentPlayer()
	if !ok {
		return 0
	}
	score := t.Budget.InexactFloat64()
	if t.RoleCount(p.Role) >= RoleSaturation {
		score -= SaturationPenalty
	}
	if p.IsOverseas(s.Rules.Domestic) && t.OverseasCount(s.Rules.Domestic) >= OverseasSaturation {
		score -= SaturationPenalty
	}
	if p.Rating >= StarRating {
		score += StarBonus
	}
	return score
}

// Decide picks the AI action for one tick. One jitter draw is taken per
// eligible team in team order, then one draw for the pass roll.
func Decide(s engine.State, rng engine.RandSource) Decision {
	if s.Phase != engine.PhaseBidding {
		return Decision{Kind: KindNone}
	}
	if rng == nil {
		rng = engine.DefaultRandSource()
	}

	teams := Eligible(s)
	if len(teams) == 0 {
		return Decision{Kind: KindResolve}
	}

	best := Decision{Kind: KindBid, TeamID: teams[0].ID}
	for i, t := range teams {
		score := Score(s, t) * (0.9 + 0.2*rng.Float64())
		if i == 0 || score > best.Score {
			best.TeamID = t.ID
			best.Score = score
		}
	}

	if rng.Float64() < PassChance {
		best.Kind = KindPass
	}
	return best
}
