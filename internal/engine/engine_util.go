package engine

import (
	"fmt"
	"maps"
	"slices"

	"github.com/DoyleJ11/cricket-auction/internal/catalog"
	"github.com/shopspring/decimal"
)

// NewState builds the opening state for cat with humanTeamID controlled by a
// person. When retention is enabled and the human team has previous players
// the auction waits in PhaseRetention, otherwise the first lot is opened.
func NewState(cat catalog.Catalog, rules Rules, humanTeamID int) (State, error) {
	if err := cat.Validate(); err != nil {
		return State{}, err
	}

	s := State{
		Rules:       rules,
		Players:     cat.Players,
		Teams:       make([]Team, 0, len(cat.Teams)),
		HumanTeamID: humanTeamID,
		Withdrawn:   map[int]bool{},
		Log:         make([]LogEntry, 0, len(cat.Players)),
	}

	for _, t := range cat.Teams {
		s.Teams = append(s.Teams, Team{ID: t.ID, Name: t.Name, Budget: rules.Purse, Roster: []RosterSlot{}})
	}
	if s.teamIndex(humanTeamID) < 0 {
		return State{}, fmt.Errorf("%w: human team %d", ErrUnknownTeam, humanTeamID)
	}

	for _, p := range cat.Players {
		s.Log = append(s.Log, LogEntry{
			PlayerID:   p.ID,
			BasePrice:  p.BasePrice,
			FinalPrice: decimal.Zero,
			SoldTo:     Unsold,
			Status:     LogPending,
		})
	}

	if rules.RetentionEnabled {
		s.Eligible = cat.PreviousPlayers(humanTeamID)
	}
	if len(s.Eligible) > 0 {
		s.Phase = PhaseRetention
		s.CurrentBid = cat.Players[0].BasePrice
		return s, nil
	}

	s.Phase = PhaseBidding
	startBidding(&s)
	return s, nil
}

// Clone deep-copies everything Apply may mutate. Players and Eligible are
// never mutated and stay shared.
func (s State) Clone() State {
	c := s
	c.Teams = make([]Team, len(s.Teams))
	for i, t := range s.Teams {
		t.Roster = slices.Clone(t.Roster)
		c.Teams[i] = t
	}
	c.Withdrawn = maps.Clone(s.Withdrawn)
	if c.Withdrawn == nil {
		c.Withdrawn = map[int]bool{}
	}
	c.RecentBidders = slices.Clone(s.RecentBidders)
	c.Log = slices.Clone(s.Log)
	return c
}

// CurrentPlayer is the player under the hammer, if any.
func (s State) CurrentPlayer() (catalog.Player, bool) {
	if s.Phase != PhaseBidding || s.Cursor < 0 || s.Cursor >= len(s.Players) {
		return catalog.Player{}, false
	}
	return s.Players[s.Cursor], true
}

func (s State) Team(id int) (Team, bool) {
	if i := s.teamIndex(id); i >= 0 {
		return s.Teams[i], true
	}
	return Team{}, false
}

func (s State) teamIndex(id int) int {
	return slices.IndexFunc(s.Teams, func(t Team) bool { return t.ID == id })
}

func (s State) TotalRostered() int {
	n := 0
	for _, t := range s.Teams {
		n += len(t.Roster)
	}
	return n
}

// ActiveTeams are the teams that may still act on the current lot: not
// withdrawn and not the current leader.
func (s State) ActiveTeams() []int {
	var out []int
	for _, t := range s.Teams {
		if t.ID == s.LeaderID || s.Withdrawn[t.ID] {
			continue
		}
		out = append(out, t.ID)
	}
	return out
}

// Remaining counts lots still waiting to be auctioned, the current one included.
func (s State) Remaining() int {
	n := 0
	for _, e := range s.Log {
		if e.Status == LogPending {
			n++
		}
	}
	return n
}

func (s *State) pushBidder(teamID int) {
	s.RecentBidders = append([]int{teamID}, s.RecentBidders...)
	if len(s.RecentBidders) > 2 {
		s.RecentBidders = s.RecentBidders[:2]
	}
}

func (t Team) OverseasCount(domestic string) int {
	n := 0
	for _, slot := range t.Roster {
		if slot.Player.IsOverseas(domestic) {
			n++
		}
	}
	return n
}

func (t Team) RoleCount(role catalog.Role) int {
	n := 0
	for _, slot := range t.Roster {
		if slot.Player.Role == role {
			n++
		}
	}
	return n
}

func (t Team) RoleDistribution() map[catalog.Role]int {
	out := make(map[catalog.Role]int)
	for _, slot := range t.Roster {
		out[slot.Player.Role]++
	}
	return out
}

// Spent is what the team has paid out of purse so far.
func (t Team) Spent(purse decimal.Decimal) decimal.Decimal {
	return purse.Sub(t.Budget)
}

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}
