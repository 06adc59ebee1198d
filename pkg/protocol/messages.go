// Package protocol names the JSON messages exchanged over /ws and
// POST /auctions/{code}/commands. Every message is an object with a "type".
//
// Client -> Server
//
//	Bid:              {}                      raise the current lot by one increment
//	Pass:             {}                      withdraw from the current lot
//	Resolve:          {}                      close the current lot now
//	ToggleRetention:  player_id               add or drop a retention pick
//	ConfirmRetention: player_ids?, prices?    keep players; empty uses the toggled picks
//	SkipRetention:    {}
//	Reorder:          source_team_id, source_index, dest_team_id, dest_index
//	ForceEnd:         {}                      end with short rosters
//
// Server -> Client
//
//	StateSnapshot: version, state, retention?, notices?
//	Notice:        version, notices           warnings for an unchanged state
//	Error:         error, kind                only sent to the client that caused it
//
// Prices are decimal strings in crores, e.g. "1.50".
package protocol

const (
	Bid              = "Bid"
	Pass             = "Pass"
	Resolve          = "Resolve"
	ToggleRetention  = "ToggleRetention"
	ConfirmRetention = "ConfirmRetention"
	SkipRetention    = "SkipRetention"
	Reorder          = "Reorder"
	ForceEnd         = "ForceEnd"
)

const (
	StateSnapshot = "StateSnapshot"
	Notice        = "Notice"
	Error         = "Error"
)
