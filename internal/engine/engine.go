package engine

import (
	"errors"

	"github.com/DoyleJ11/cricket-auction/internal/catalog"
	"github.com/DoyleJ11/cricket-auction/internal/retention"
	"github.com/DoyleJ11/cricket-auction/pkg/protocol"
	"github.com/shopspring/decimal"
)

// Rule violations: the action breaks a league limit.
var (
	ErrInsufficientBudget     = errors.New("insufficient budget")
	ErrRosterFull             = errors.New("roster is full")
	ErrOverseasLimit          = errors.New("overseas limit reached")
	ErrEmptyRetention         = errors.New("select at least one player to retain")
	ErrRetentionPriceMismatch = errors.New("retention prices do not match tiers")
)

// Ineligible actions: the caller is not allowed to act right now.
var (
	ErrWrongPhase     = errors.New("command not allowed in current phase")
	ErrUnknownTeam    = errors.New("unknown team")
	ErrNotHumanTeam   = errors.New("only the human team may do this")
	ErrAlreadyLeading = errors.New("team already holds the highest bid")
	ErrTeamWithdrawn  = errors.New("team has withdrawn from this player")
	ErrNotActive      = errors.New("team is not an active bidder")
	ErrBadReorder     = errors.New("invalid roster move")
)

var (
	ErrAuctionEnded       = errors.New("auction already ended")
	ErrUnsupportedCommand = errors.New("unsupported command")
)

type ErrorKind string

const (
	KindRuleViolation ErrorKind = "rule_violation"
	KindIneligible    ErrorKind = "ineligible_action"
	KindTerminal      ErrorKind = "auction_ended"
	KindUnknown       ErrorKind = "unknown"
)

// Kind classifies a rejected command. Every kind leaves state untouched.
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInsufficientBudget),
		errors.Is(err, ErrRosterFull),
		errors.Is(err, ErrOverseasLimit),
		errors.Is(err, ErrEmptyRetention),
		errors.Is(err, ErrRetentionPriceMismatch),
		errors.Is(err, retention.ErrLimitExceeded),
		errors.Is(err, retention.ErrDuplicate):
		return KindRuleViolation
	case errors.Is(err, ErrWrongPhase),
		errors.Is(err, ErrUnknownTeam),
		errors.Is(err, ErrNotHumanTeam),
		errors.Is(err, ErrAlreadyLeading),
		errors.Is(err, ErrTeamWithdrawn),
		errors.Is(err, ErrNotActive),
		errors.Is(err, ErrBadReorder),
		errors.Is(err, retention.ErrUnknownCandidate):
		return KindIneligible
	case errors.Is(err, ErrAuctionEnded):
		return KindTerminal
	}
	return KindUnknown
}

type Phase string

const (
	PhaseRetention      Phase = "retention"
	PhaseBidding        Phase = "bidding"
	PhaseAwaitingRoster Phase = "awaiting_roster"
	PhaseEnded          Phase = "ended"
)

type RosterSlot struct {
	Player   catalog.Player  `json:"player"`
	Price    decimal.Decimal `json:"price"`
	Retained bool            `json:"retained,omitempty"`
}

type Team struct {
	ID     int             `json:"id"`
	Name   string          `json:"name"`
	Budget decimal.Decimal `json:"budget"`
	Roster []RosterSlot    `json:"roster"`
}

type LogStatus string

const (
	LogPending  LogStatus = "pending"
	LogSold     LogStatus = "sold"
	LogUnsold   LogStatus = "unsold"
	LogRetained LogStatus = "retained"
)

const Unsold = "Unsold"

// LogEntry is the auction sheet row for one catalog player. It starts pending
// and is overwritten once when the player is resolved.
type LogEntry struct {
	PlayerID   int             `json:"player_id"`
	BasePrice  decimal.Decimal `json:"base_price"`
	FinalPrice decimal.Decimal `json:"final_price"`
	SoldTo     string          `json:"sold_to"`
	Status     LogStatus       `json:"status"`
}

type State struct {
	Phase       Phase            `json:"phase"`
	Rules       Rules            `json:"rules"`
	Players     []catalog.Player `json:"-"` // frozen catalog, shared between copies
	Teams       []Team           `json:"teams"`
	HumanTeamID int              `json:"human_team_id"`
	Eligible    []catalog.Player `json:"eligible,omitempty"` // human team's retention candidates

	Cursor        int             `json:"cursor"`
	CurrentBid    decimal.Decimal `json:"current_bid"`
	LeaderID      int             `json:"leader_id"` // 0 when nobody has bid
	Withdrawn     map[int]bool    `json:"withdrawn"`
	RecentBidders []int           `json:"recent_bidders"`

	Log []LogEntry `json:"-"`
}

type CommandType string

const (
	CmdBid              CommandType = protocol.Bid
	CmdPass             CommandType = protocol.Pass
	CmdResolve          CommandType = protocol.Resolve
	CmdConfirmRetention CommandType = protocol.ConfirmRetention
	CmdSkipRetention    CommandType = protocol.SkipRetention
	CmdReorder          CommandType = protocol.Reorder
	CmdForceEnd         CommandType = protocol.ForceEnd
)

/*
	CmdBid              -> EvtBidPlaced
	CmdPass             -> EvtTeamPassed [-> resolve chain when nobody is left]
	CmdResolve          -> EvtPlayerSold | EvtPlayerUnsold -> EvtLotOpened | EvtRosterIncomplete... | EvtAuctionEnded
	CmdConfirmRetention -> EvtPlayerRetained... -> EvtRetentionConfirmed -> EvtLotOpened
	CmdSkipRetention    -> EvtLotOpened
	CmdReorder          -> EvtRosterReordered
	CmdForceEnd         -> EvtAuctionEnded
*/

type Command struct {
	Type   CommandType
	TeamID int

	// retention
	PlayerIDs []int
	Prices    map[int]decimal.Decimal // optional, checked against the tiers

	// reorder
	SourceTeamID int
	SourceIndex  int
	DestTeamID   int
	DestIndex    int
}

type EventType string

const (
	EvtBidPlaced          EventType = "BidPlaced"
	EvtTeamPassed         EventType = "TeamPassed"
	EvtPlayerSold         EventType = "PlayerSold"
	EvtPlayerUnsold       EventType = "PlayerUnsold"
	EvtLotOpened          EventType = "LotOpened"
	EvtPlayerRetained     EventType = "PlayerRetained"
	EvtRetentionConfirmed EventType = "RetentionConfirmed"
	EvtRosterIncomplete   EventType = "RosterIncomplete"
	EvtAuctionEnded       EventType = "AuctionEnded"
	EvtRosterReordered    EventType = "RosterReordered"
)

const (
	ReasonNoBids   = "no_bids"
	ReasonCapacity = "capacity"
	ReasonForced   = "forced"
)

type Event struct {
	Type     EventType       `json:"type"`
	TeamID   int             `json:"team_id,omitempty"`
	PlayerID int             `json:"player_id,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	Count    int             `json:"count,omitempty"`
	Reason   string          `json:"reason,omitempty"`
	Human    bool            `json:"human,omitempty"`
}

// Apply runs one command against s. On success it returns the events and the
// new state; on error s is returned unchanged. rng is only consulted by the
// capacity rule when resolving a lot; nil uses the process-wide source.
// Once the auction has ended only Reorder is accepted.
func Apply(s State, cmd Command, rng RandSource) ([]Event, State, error) {
	if s.Phase == PhaseEnded && cmd.Type != CmdReorder {
		return nil, s, ErrAuctionEnded
	}
	if rng == nil {
		rng = defaultRandSource
	}

	newState := s.Clone()
	var (
		events []Event
		err    error
	)

	switch cmd.Type {
	case CmdBid:
		events, err = bid(&newState, cmd.TeamID)
	case CmdPass:
		events, err = pass(&newState, cmd.TeamID, rng)
	case CmdResolve:
		events, err = resolve(&newState, rng)
	case CmdConfirmRetention:
		events, err = confirmRetention(&newState, cmd)
	case CmdSkipRetention:
		events, err = skipRetention(&newState, cmd.TeamID)
	case CmdReorder:
		events, err = reorder(&newState, cmd)
	case CmdForceEnd:
		events, err = forceEnd(&newState)
	default:
		return nil, s, ErrUnsupportedCommand
	}

	if err != nil {
		return nil, s, err
	}
	return events, newState, nil
}
