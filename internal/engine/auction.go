package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CanBid reports whether teamID may raise the current lot, and why not.
func CanBid(s State, teamID int) error {
	if s.Phase != PhaseBidding {
		return ErrWrongPhase
	}
	i := s.teamIndex(teamID)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownTeam, teamID)
	}
	team := s.Teams[i]

	if s.LeaderID == teamID {
		return ErrAlreadyLeading
	}
	if s.Withdrawn[teamID] {
		return ErrTeamWithdrawn
	}
	if team.Budget.LessThan(NextBid(s.CurrentBid)) {
		return ErrInsufficientBudget
	}

	// Squad limits only guard the human bid button; AI teams manage squad
	// shape through the policy's penalties.
	if teamID == s.HumanTeamID {
		if len(team.Roster) >= s.Rules.RosterCeiling {
			return ErrRosterFull
		}
		p := s.Players[s.Cursor]
		if p.IsOverseas(s.Rules.Domestic) && team.OverseasCount(s.Rules.Domestic) >= s.Rules.OverseasCeiling {
			return ErrOverseasLimit
		}
	}
	return nil
}

func bid(s *State, teamID int) ([]Event, error) {
	if err := CanBid(*s, teamID); err != nil {
		return nil, err
	}

	s.CurrentBid = NextBid(s.CurrentBid)
	s.LeaderID = teamID
	s.pushBidder(teamID)

	return []Event{{
		Type:     EvtBidPlaced,
		TeamID:   teamID,
		PlayerID: s.Players[s.Cursor].ID,
		Amount:   s.CurrentBid,
		Human:    teamID == s.HumanTeamID,
	}}, nil
}

func pass(s *State, teamID int, rng RandSource) ([]Event, error) {
	if s.Phase != PhaseBidding {
		return nil, ErrWrongPhase
	}
	if s.teamIndex(teamID) < 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTeam, teamID)
	}
	if s.Withdrawn[teamID] || s.LeaderID == teamID {
		return nil, ErrNotActive
	}

	s.Withdrawn[teamID] = true
	s.pushBidder(teamID)
	events := []Event{{
		Type:     EvtTeamPassed,
		TeamID:   teamID,
		PlayerID: s.Players[s.Cursor].ID,
		Human:    teamID == s.HumanTeamID,
	}}

	if len(s.ActiveTeams()) > 0 {
		return events, nil
	}

	more, err := resolve(s, rng)
	if err != nil {
		return nil, err
	}
	return append(events, more...), nil
}

func resolve(s *State, rng RandSource) ([]Event, error) {
	switch s.Phase {
	case PhaseAwaitingRoster:
		return finish(s), nil
	case PhaseBidding:
	default:
		return nil, ErrWrongPhase
	}

	p := s.Players[s.Cursor]
	var events []Event

	capacity := len(s.Teams) * s.Rules.RosterCeiling
	switch {
	case s.TotalRostered() >= capacity && !IsImportant(p) && rng.Float64() < s.Rules.CapacityUnsoldChance:
		s.markUnsold(s.Cursor)
		events = append(events, Event{Type: EvtPlayerUnsold, PlayerID: p.ID, Amount: decimal.Zero, Reason: ReasonCapacity})

	case s.LeaderID != 0:
		i := s.teamIndex(s.LeaderID)
		if i < 0 {
			return nil, fmt.Errorf("%w: leader %d", ErrUnknownTeam, s.LeaderID)
		}
		team := &s.Teams[i]
		if team.Budget.LessThan(s.CurrentBid) {
			return nil, ErrInsufficientBudget
		}
		team.Budget = team.Budget.Sub(s.CurrentBid)
		team.Roster = append(team.Roster, RosterSlot{Player: p, Price: s.CurrentBid})
		s.Log[s.Cursor].FinalPrice = s.CurrentBid
		s.Log[s.Cursor].SoldTo = team.Name
		s.Log[s.Cursor].Status = LogSold
		events = append(events, Event{
			Type:     EvtPlayerSold,
			TeamID:   team.ID,
			PlayerID: p.ID,
			Amount:   s.CurrentBid,
			Human:    team.ID == s.HumanTeamID,
		})

	default:
		s.markUnsold(s.Cursor)
		events = append(events, Event{Type: EvtPlayerUnsold, PlayerID: p.ID, Amount: decimal.Zero, Reason: ReasonNoBids})
	}

	return append(events, advance(s, s.Cursor+1)...), nil
}

func (s *State) markUnsold(i int) {
	s.Log[i].FinalPrice = decimal.Zero
	s.Log[i].SoldTo = Unsold
	s.Log[i].Status = LogUnsold
}

// advance opens the first still-pending lot at or after from. Lots already
// settled through retention are skipped.
func advance(s *State, from int) []Event {
	s.LeaderID = 0
	s.Withdrawn = map[int]bool{}
	s.RecentBidders = nil

	for i := from; i < len(s.Players); i++ {
		if s.Log[i].Status != LogPending {
			continue
		}
		s.Cursor = i
		s.CurrentBid = s.Players[i].BasePrice
		return []Event{{Type: EvtLotOpened, PlayerID: s.Players[i].ID, Amount: s.CurrentBid}}
	}

	s.Cursor = len(s.Players)
	s.CurrentBid = decimal.Zero
	return finish(s)
}

func startBidding(s *State) []Event {
	s.Phase = PhaseBidding
	return advance(s, 0)
}

// finish closes the auction once the catalog is exhausted, unless a team is
// still below the roster floor.
func finish(s *State) []Event {
	var events []Event
	for _, t := range s.Teams {
		if len(t.Roster) < s.Rules.RosterFloor {
			events = append(events, Event{Type: EvtRosterIncomplete, TeamID: t.ID, Count: len(t.Roster)})
		}
	}
	if len(events) > 0 {
		s.Phase = PhaseAwaitingRoster
		return events
	}
	s.Phase = PhaseEnded
	return []Event{{Type: EvtAuctionEnded}}
}

func forceEnd(s *State) ([]Event, error) {
	if s.Phase != PhaseAwaitingRoster {
		return nil, ErrWrongPhase
	}
	s.Phase = PhaseEnded
	return []Event{{Type: EvtAuctionEnded, Reason: ReasonForced}}, nil
}
