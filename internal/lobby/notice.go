package lobby

import (
	"fmt"

	"github.com/DoyleJ11/cricket-auction/internal/engine"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
)

// Notice is a human-readable line for the UI's toast area.
type Notice struct {
	Level  Level         `json:"level"`
	Text   string        `json:"text"`
	TeamID int           `json:"team_id,omitempty"`
	Event  *engine.Event `json:"event,omitempty"`
}

// Notices renders events against the state they produced.
func Notices(s engine.State, events []engine.Event) []Notice {
	out := make([]Notice, 0, len(events))
	for i := range events {
		e := events[i]
		n := Notice{Level: LevelInfo, TeamID: e.TeamID, Event: &e}
		team, _ := s.Team(e.TeamID)
		player := playerName(s, e.PlayerID)

		switch e.Type {
		case engine.EvtBidPlaced:
			n.Text = fmt.Sprintf("%s bids ₹%sCr", team.Name, e.Amount.StringFixed(2))
		case engine.EvtTeamPassed:
			n.Level = LevelWarning
			n.Text = fmt.Sprintf("%s passed!", team.Name)
		case engine.EvtPlayerSold:
			n.Level = LevelSuccess
			n.Text = fmt.Sprintf("%s sold to %s for ₹%sCr", player, team.Name, e.Amount.StringFixed(2))
		case engine.EvtPlayerUnsold:
			n.Level = LevelWarning
			n.Text = fmt.Sprintf("%s goes unsold", player)
		case engine.EvtLotOpened:
			n.Text = fmt.Sprintf("Next up: %s, base ₹%sCr", player, e.Amount.StringFixed(2))
		case engine.EvtPlayerRetained:
			n.Level = LevelSuccess
			n.Text = fmt.Sprintf("%s retained for ₹%sCr", player, e.Amount.StringFixed(2))
		case engine.EvtRetentionConfirmed:
			n.Level = LevelSuccess
			n.Text = fmt.Sprintf("%s retained %d players for ₹%sCr", team.Name, e.Count, e.Amount.StringFixed(2))
		case engine.EvtRosterIncomplete:
			n.Level = LevelWarning
			n.Text = fmt.Sprintf("%s has only %d players, needs %d", team.Name, e.Count, s.Rules.RosterFloor)
		case engine.EvtAuctionEnded:
			n.Level = LevelSuccess
			n.Text = "Auction complete"
			if e.Reason == engine.ReasonForced {
				n.Text = "Auction ended with incomplete rosters"
			}
		case engine.EvtRosterReordered:
			n.Text = fmt.Sprintf("%s moved to %s", player, team.Name)
		default:
			continue
		}
		out = append(out, n)
	}
	return out
}

func playerName(s engine.State, id int) string {
	for _, p := range s.Players {
		if p.ID == id {
			return p.Name
		}
	}
	return fmt.Sprintf("player %d", id)
}
