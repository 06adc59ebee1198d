package engine

import (
	"fmt"
	"slices"

	"github.com/DoyleJ11/cricket-auction/internal/catalog"
	"github.com/DoyleJ11/cricket-auction/internal/retention"
)

func confirmRetention(s *State, cmd Command) ([]Event, error) {
	if s.Phase != PhaseRetention {
		return nil, ErrWrongPhase
	}
	if cmd.TeamID != s.HumanTeamID {
		return nil, ErrNotHumanTeam
	}
	if len(cmd.PlayerIDs) == 0 {
		return nil, ErrEmptyRetention
	}

	prices, err := retention.Price(s.Eligible, cmd.PlayerIDs)
	if err != nil {
		return nil, err
	}
	if cmd.Prices != nil {
		if len(cmd.Prices) != len(prices) {
			return nil, ErrRetentionPriceMismatch
		}
		for id, want := range prices {
			if got, ok := cmd.Prices[id]; !ok || !got.Equal(want) {
				return nil, fmt.Errorf("%w: player %d", ErrRetentionPriceMismatch, id)
			}
		}
	}

	team := &s.Teams[s.teamIndex(cmd.TeamID)]
	total := retention.Sum(prices)
	if team.Budget.LessThan(total) {
		return nil, ErrInsufficientBudget
	}
	team.Budget = team.Budget.Sub(total)

	events := make([]Event, 0, len(cmd.PlayerIDs)+2)
	for _, id := range cmd.PlayerIDs {
		i := slices.IndexFunc(s.Players, func(p catalog.Player) bool { return p.ID == id })
		if i < 0 {
			return nil, fmt.Errorf("%w: %d", retention.ErrUnknownCandidate, id)
		}
		price := prices[id]
		team.Roster = append(team.Roster, RosterSlot{Player: s.Players[i], Price: price, Retained: true})
		s.Log[i].FinalPrice = price
		s.Log[i].SoldTo = team.Name
		s.Log[i].Status = LogRetained
		events = append(events, Event{Type: EvtPlayerRetained, TeamID: team.ID, PlayerID: id, Amount: price, Human: true})
	}
	events = append(events, Event{Type: EvtRetentionConfirmed, TeamID: team.ID, Amount: total, Count: len(cmd.PlayerIDs), Human: true})

	return append(events, startBidding(s)...), nil
}

func skipRetention(s *State, teamID int) ([]Event, error) {
	if s.Phase != PhaseRetention {
		return nil, ErrWrongPhase
	}
	if teamID != s.HumanTeamID {
		return nil, ErrNotHumanTeam
	}
	return startBidding(s), nil
}

// reorder moves one roster slot within or across teams. Budgets and the set
// of rostered players are unchanged.
func reorder(s *State, cmd Command) ([]Event, error) {
	if s.Phase == PhaseRetention {
		return nil, ErrWrongPhase
	}
	src := s.teamIndex(cmd.SourceTeamID)
	dst := s.teamIndex(cmd.DestTeamID)
	if src < 0 || dst < 0 {
		return nil, fmt.Errorf("%w: unknown team", ErrBadReorder)
	}
	if cmd.SourceIndex < 0 || cmd.SourceIndex >= len(s.Teams[src].Roster) {
		return nil, fmt.Errorf("%w: source index %d", ErrBadReorder, cmd.SourceIndex)
	}

	slot := s.Teams[src].Roster[cmd.SourceIndex]
	s.Teams[src].Roster = slices.Delete(s.Teams[src].Roster, cmd.SourceIndex, cmd.SourceIndex+1)

	if cmd.DestIndex < 0 || cmd.DestIndex > len(s.Teams[dst].Roster) {
		return nil, fmt.Errorf("%w: destination index %d", ErrBadReorder, cmd.DestIndex)
	}
	s.Teams[dst].Roster = slices.Insert(s.Teams[dst].Roster, cmd.DestIndex, slot)

	return []Event{{
		Type:     EvtRosterReordered,
		TeamID:   cmd.DestTeamID,
		PlayerID: slot.Player.ID,
		Count:    cmd.DestIndex,
	}}, nil
}
