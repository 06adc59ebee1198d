package sim

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/DoyleJ11/cricket-auction/internal/catalog"
	"github.com/DoyleJ11/cricket-auction/internal/engine"
	"github.com/DoyleJ11/cricket-auction/internal/policy"
	"github.com/DoyleJ11/cricket-auction/internal/retention"
	"go.uber.org/zap"
)

var ErrStalled = errors.New("simulation made no progress")

// Options control a headless auction. The human team is played by a simple
// rule: bid on players rated at least HumanMinRating, never on anyone else.
type Options struct {
	Catalog        catalog.Catalog
	Rules          engine.Rules
	HumanTeamID    int
	Seed           uint64
	Retain         int // how many previous players the human keeps, best rated first
	HumanMinRating int
	MaxSteps       int
	OnEvent        func(engine.State, engine.Event)
	Logger         *zap.Logger
}

type Result struct {
	State  engine.State
	Steps  int
	Forced bool // ended with a short roster
}

// Run drives the auction to PhaseEnded. Timers are replaced by a loop: every
// step is one AI tick, with lots resolving once no AI team can raise.
func Run(ctx context.Context, opts Options) (Result, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = 200_000
	}
	rng := engine.NewRandSource(opts.Seed)

	s, err := engine.NewState(opts.Catalog, opts.Rules, opts.HumanTeamID)
	if err != nil {
		return Result{}, err
	}

	res := Result{}
	apply := func(cmd engine.Command) error {
		events, next, err := engine.Apply(s, cmd, rng)
		if err != nil {
			return fmt.Errorf("%s: %w", cmd.Type, err)
		}
		s = next
		for _, e := range events {
			if e.Type == engine.EvtAuctionEnded && e.Reason == engine.ReasonForced {
				res.Forced = true
			}
			if opts.OnEvent != nil {
				opts.OnEvent(s, e)
			}
		}
		return nil
	}

	for s.Phase != engine.PhaseEnded {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if res.Steps >= opts.MaxSteps {
			return res, fmt.Errorf("%w after %d steps", ErrStalled, res.Steps)
		}
		res.Steps++

		switch s.Phase {
		case engine.PhaseRetention:
			ids := PickRetention(s.Eligible, opts.Retain)
			if len(ids) == 0 {
				err = apply(engine.Command{Type: engine.CmdSkipRetention, TeamID: s.HumanTeamID})
			} else {
				err = apply(engine.Command{Type: engine.CmdConfirmRetention, TeamID: s.HumanTeamID, PlayerIDs: ids})
			}

		case engine.PhaseAwaitingRoster:
			opts.Logger.Warn("rosters incomplete, ending auction")
			err = apply(engine.Command{Type: engine.CmdForceEnd})

		case engine.PhaseBidding:
			if humanWants(s, opts.HumanMinRating) {
				err = apply(engine.Command{Type: engine.CmdBid, TeamID: s.HumanTeamID})
				break
			}
			cmd, ok := policy.Decide(s, rng).Command()
			if !ok {
				return res, fmt.Errorf("%w: no decision in %s", ErrStalled, s.Phase)
			}
			err = apply(cmd)
		}
		if err != nil {
			return res, err
		}
	}

	res.State = s
	opts.Logger.Info("simulation finished", zap.Int("steps", res.Steps), zap.Bool("forced", res.Forced))
	return res, nil
}

func humanWants(s engine.State, minRating int) bool {
	p, ok := s.CurrentPlayer()
	if !ok || minRating <= 0 || p.Rating < minRating {
		return false
	}
	return engine.CanBid(s, s.HumanTeamID) == nil
}

// PickRetention keeps up to n candidates, best rated first, skipping any that
// would break the retention limits.
func PickRetention(candidates []catalog.Player, n int) []int {
	if n <= 0 {
		return nil
	}
	ranked := slices.Clone(candidates)
	slices.SortStableFunc(ranked, func(a, b catalog.Player) int { return b.Rating - a.Rating })

	sel := retention.NewSelection(candidates)
	for _, p := range ranked {
		if len(sel.Selected()) == n {
			break
		}
		_ = sel.Toggle(p.ID) // over the limit: skip
	}
	return sel.Selected()
}
