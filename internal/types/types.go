package types

import (
	"github.com/DoyleJ11/cricket-auction/internal/catalog"
	"github.com/DoyleJ11/cricket-auction/internal/engine"
	"github.com/DoyleJ11/cricket-auction/internal/lobby"
	"github.com/DoyleJ11/cricket-auction/pkg/protocol"
	"github.com/shopspring/decimal"
)

type ClientMessage struct {
	Type      string                  `json:"type"`
	PlayerID  int                     `json:"player_id,omitempty"`
	PlayerIDs []int                   `json:"player_ids,omitempty"`
	Prices    map[int]decimal.Decimal `json:"prices,omitempty"`

	SourceTeamID int `json:"source_team_id,omitempty"`
	SourceIndex  int `json:"source_index,omitempty"`
	DestTeamID   int `json:"dest_team_id,omitempty"`
	DestIndex    int `json:"dest_index,omitempty"`
}

type ServerMessage struct {
	Type      string               `json:"type"` // "StateSnapshot" | "Notice" | "Error"
	Version   int                  `json:"version,omitempty"`
	State     *StateView           `json:"state,omitempty"`
	Retention *lobby.RetentionView `json:"retention,omitempty"`
	Notices   []lobby.Notice       `json:"notices,omitempty"`
	Error     string               `json:"error,omitempty"`
	Kind      engine.ErrorKind     `json:"kind,omitempty"`
}

type TeamView struct {
	ID       int                 `json:"id"`
	Name     string              `json:"name"`
	Budget   decimal.Decimal     `json:"budget"`
	Spent    decimal.Decimal     `json:"spent"`
	Overseas int                 `json:"overseas"`
	Human    bool                `json:"human,omitempty"`
	Roster   []engine.RosterSlot `json:"roster"`
}

// StateView is the client-facing projection of engine.State.
type StateView struct {
	Phase         engine.Phase     `json:"phase"`
	HumanTeamID   int              `json:"human_team_id"`
	CurrentPlayer *catalog.Player  `json:"current_player,omitempty"`
	CurrentBid    decimal.Decimal  `json:"current_bid"`
	NextBid       decimal.Decimal  `json:"next_bid"`
	LeaderID      int              `json:"leader_id,omitempty"`
	Withdrawn     []int            `json:"withdrawn"`
	RecentBidders []int            `json:"recent_bidders"`
	Remaining     int              `json:"remaining"`
	Total         int              `json:"total"`
	Teams         []TeamView       `json:"teams"`
	Eligible      []catalog.Player `json:"eligible,omitempty"`
	CanBid        bool             `json:"can_bid"`
	BidBlocked    string           `json:"bid_blocked,omitempty"`
	Rules         engine.Rules     `json:"rules"`
}

func NewStateView(s engine.State) *StateView {
	v := &StateView{
		Phase:         s.Phase,
		HumanTeamID:   s.HumanTeamID,
		CurrentBid:    s.CurrentBid,
		NextBid:       engine.NextBid(s.CurrentBid),
		LeaderID:      s.LeaderID,
		Withdrawn:     []int{},
		RecentBidders: append([]int{}, s.RecentBidders...),
		Remaining:     s.Remaining(),
		Total:         len(s.Players),
		Teams:         make([]TeamView, 0, len(s.Teams)),
		Rules:         s.Rules,
	}
	if p, ok := s.CurrentPlayer(); ok {
		v.CurrentPlayer = &p
	}
	if s.Phase == engine.PhaseRetention {
		v.Eligible = s.Eligible
	}
	for _, t := range s.Teams {
		if s.Withdrawn[t.ID] {
			v.Withdrawn = append(v.Withdrawn, t.ID)
		}
		v.Teams = append(v.Teams, TeamView{
			ID:       t.ID,
			Name:     t.Name,
			Budget:   t.Budget,
			Spent:    t.Spent(s.Rules.Purse),
			Overseas: t.OverseasCount(s.Rules.Domestic),
			Human:    t.ID == s.HumanTeamID,
			Roster:   t.Roster,
		})
	}

	if err := engine.CanBid(s, s.HumanTeamID); err != nil {
		v.BidBlocked = err.Error()
	} else {
		v.CanBid = true
	}
	return v
}

func SnapshotMessage(snap lobby.Snapshot) ServerMessage {
	return ServerMessage{
		Type:      protocol.StateSnapshot,
		Version:   snap.Version,
		State:     NewStateView(snap.State),
		Retention: snap.Retention,
		Notices:   snap.Notices,
	}
}

// ViewMessage is the snapshot served to HTTP clients, without notices.
func ViewMessage(v lobby.View) ServerMessage {
	return ServerMessage{
		Type:      protocol.StateSnapshot,
		Version:   v.Version,
		State:     NewStateView(v.State),
		Retention: v.Retention,
	}
}

func ErrorMessage(err error) ServerMessage {
	return ServerMessage{Type: protocol.Error, Error: err.Error(), Kind: engine.Kind(err)}
}
