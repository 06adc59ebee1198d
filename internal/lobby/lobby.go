package lobby

import (
	"context"
	"errors"
	"time"

	"github.com/DoyleJ11/cricket-auction/internal/engine"
	"github.com/DoyleJ11/cricket-auction/internal/policy"
	"github.com/DoyleJ11/cricket-auction/internal/retention"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrClosed = errors.New("lobby closed")

type Msg interface{ isLobbyMsg() }

// FromClient carries a command from one connection. Reply, when set, gets
// exactly one value: nil on success or the engine's rejection.
type FromClient struct {
	ClientID string
	Cmd      engine.Command
	Reply    chan error
}

func (FromClient) isLobbyMsg() {}

// ToggleRetention flips one candidate in the human team's pending retention
// selection. Nothing is charged until ConfirmRetention.
type ToggleRetention struct {
	PlayerID int
	Reply    chan error
}

func (ToggleRetention) isLobbyMsg() {}

type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this client wants to receive snapshots
}

func (Join) isLobbyMsg() {}

type Leave struct{ ClientID string }

func (Leave) isLobbyMsg() {}

type Shutdown struct{}

func (Shutdown) isLobbyMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isLobbyMsg() {}

type timerKind string

const (
	timerAITick       timerKind = "ai_tick"
	timerFairWarning  timerKind = "fair_warning"
	timerFinalWarning timerKind = "final_warning"
	timerAutoResolve  timerKind = "auto_resolve"
)

type timerFired struct {
	kind timerKind
	gen  uint64
}

func (timerFired) isLobbyMsg() {}

// Timings drive the lobby's clock. A zero duration disables that timer.
type Timings struct {
	AITick       time.Duration
	FairWarning  time.Duration
	FinalWarning time.Duration
	AutoResolve  time.Duration
}

func DefaultTimings() Timings {
	return Timings{
		AITick:       3500 * time.Millisecond,
		FairWarning:  5 * time.Second,
		FinalWarning: 15 * time.Second,
		AutoResolve:  25 * time.Second,
	}
}

type Config struct {
	Code    string
	Timings Timings
	Rand    engine.RandSource
	Logger  *zap.Logger
}

// Snapshot is what every joined client receives after each change. Warnings
// are delivered as a snapshot with an unchanged Version.
type Snapshot struct {
	Version   int
	State     engine.State
	Notices   []Notice
	Retention *RetentionView
}

type RetentionView struct {
	Selected  []int                   `json:"selected"`
	Prices    map[int]decimal.Decimal `json:"prices"`
	Total     decimal.Decimal         `json:"total"`
	Remaining decimal.Decimal         `json:"remaining"`
	Capped    int                     `json:"capped"`
	Uncapped  int                     `json:"uncapped"`
}

type View struct {
	Version    int
	NumClients int
	State      engine.State
	Retention  *RetentionView
}

type Lobby struct {
	code    string
	inbox   chan Msg
	state   engine.State
	version int
	clients map[string]chan Snapshot
	ctx     context.Context
	cancel  context.CancelFunc
	log     *zap.Logger
	rng     engine.RandSource

	timings   Timings
	timers    map[timerKind]*time.Timer
	tickGen   uint64 // bumped on every accepted change
	chainGen  uint64 // bumped when the lot or the price moves
	chainKey  chainKey
	selection *retention.Selection
}

type chainKey struct {
	phase  engine.Phase
	cursor int
	bid    string
}

func NewLobby(parent context.Context, initial engine.State, cfg Config) *Lobby {
	ctx, cancel := context.WithCancel(parent)
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Rand == nil {
		cfg.Rand = engine.DefaultRandSource()
	}

	l := &Lobby{
		code:    cfg.Code,
		inbox:   make(chan Msg, 64), // Small buffer
		state:   initial,
		version: 0,
		clients: make(map[string]chan Snapshot),
		ctx:     ctx,
		cancel:  cancel,
		log:     cfg.Logger.With(zap.String("lobby", cfg.Code)),
		rng:     cfg.Rand,
		timings: cfg.Timings,
		timers:  make(map[timerKind]*time.Timer),
	}
	if initial.Phase == engine.PhaseRetention {
		l.selection = retention.NewSelection(initial.Eligible)
	}

	l.rearm(false)
	go l.loop()
	return l
}

func (l *Lobby) loop() {
	for {
		select {
		case <-l.ctx.Done():
			l.shutdown()
			return

		case m := <-l.inbox:
			switch msg := m.(type) {
			case Join:
				// Register client + send current snapshot immediately
				l.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- l.snapshot(nil)
				l.log.Debug("client joined", zap.String("client", msg.ClientID))

			case Leave:
				delete(l.clients, msg.ClientID)

			case FromClient:
				err := l.handle(l.asHuman(msg.Cmd))
				if err != nil {
					l.log.Debug("command rejected",
						zap.String("client", msg.ClientID),
						zap.String("cmd", string(msg.Cmd.Type)),
						zap.Error(err))
				}
				if msg.Reply != nil {
					msg.Reply <- err
				}

			case ToggleRetention:
				err := l.toggle(msg.PlayerID)
				if msg.Reply != nil {
					msg.Reply <- err
				}

			case timerFired:
				l.onTimer(msg)

			case GetState:
				msg.Reply <- View{
					Version:    l.version,
					NumClients: len(l.clients),
					State:      l.state,
					Retention:  l.retentionView(),
				}

			case Shutdown:
				l.shutdown()
				return
			}
		}
	}
}

// handle applies cmd and, on success, bumps the version, re-arms the clock
// and broadcasts.
func (l *Lobby) handle(cmd engine.Command) error {
	if cmd.Type == engine.CmdConfirmRetention && len(cmd.PlayerIDs) == 0 && l.selection != nil {
		cmd.PlayerIDs = l.selection.Selected()
		cmd.Prices = l.selection.Prices()
	}

	events, next, err := engine.Apply(l.state, cmd, l.rng)
	if err != nil {
		return err
	}

	l.state = next
	l.version++
	if l.state.Phase != engine.PhaseRetention {
		l.selection = nil
	}
	for _, e := range events {
		l.logEvent(e)
	}

	l.rearm(cmd.Type == engine.CmdBid || cmd.Type == engine.CmdPass)
	l.broadcast(l.snapshot(Notices(l.state, events)))
	return nil
}

// asHuman fills in the human team for team-scoped commands sent without one.
func (l *Lobby) asHuman(cmd engine.Command) engine.Command {
	switch cmd.Type {
	case engine.CmdBid, engine.CmdPass, engine.CmdConfirmRetention, engine.CmdSkipRetention:
		if cmd.TeamID == 0 {
			cmd.TeamID = l.state.HumanTeamID
		}
	}
	return cmd
}

func (l *Lobby) toggle(playerID int) error {
	if l.selection == nil || l.state.Phase != engine.PhaseRetention {
		return engine.ErrWrongPhase
	}
	if err := l.selection.Toggle(playerID); err != nil {
		return err
	}
	l.version++
	l.broadcast(l.snapshot(nil))
	return nil
}

func (l *Lobby) onTimer(msg timerFired) {
	gen := l.chainGen
	if msg.kind == timerAITick {
		gen = l.tickGen
	}
	if msg.gen != gen {
		l.log.Debug("dropping stale timer", zap.String("timer", string(msg.kind)), zap.Uint64("gen", msg.gen))
		return
	}
	delete(l.timers, msg.kind)

	switch msg.kind {
	case timerAITick:
		cmd, ok := policy.Decide(l.state, l.rng).Command()
		if !ok {
			return
		}
		if err := l.handle(cmd); err != nil {
			l.log.Warn("ai command rejected", zap.String("cmd", string(cmd.Type)), zap.Error(err))
			l.arm(timerAITick, l.timings.AITick, l.tickGen)
		}

	case timerFairWarning:
		l.broadcast(l.snapshot([]Notice{{Level: LevelWarning, Text: "Any more bids? Fair warning!"}}))

	case timerFinalWarning:
		l.broadcast(l.snapshot([]Notice{{Level: LevelWarning, Text: "Last chance for bidding! Make it count!"}}))

	case timerAutoResolve:
		if err := l.handle(engine.Command{Type: engine.CmdResolve}); err != nil {
			l.log.Warn("auto resolve rejected", zap.Error(err))
		}
	}
}

// rearm restarts the AI tick after every change. The warning chain restarts
// when the lot moved or restart is set; every bid or pass restarts it.
func (l *Lobby) rearm(restart bool) {
	l.tickGen++
	l.stop(timerAITick)

	if l.state.Phase != engine.PhaseBidding {
		l.chainGen++
		l.chainKey = chainKey{}
		l.stopAll()
		return
	}

	l.arm(timerAITick, l.timings.AITick, l.tickGen)

	key := chainKey{phase: l.state.Phase, cursor: l.state.Cursor, bid: l.state.CurrentBid.String()}
	if key == l.chainKey && !restart {
		return
	}
	l.chainKey = key
	l.chainGen++
	l.stop(timerFairWarning)
	l.stop(timerFinalWarning)
	l.stop(timerAutoResolve)
	l.arm(timerFairWarning, l.timings.FairWarning, l.chainGen)
	l.arm(timerFinalWarning, l.timings.FinalWarning, l.chainGen)
	l.arm(timerAutoResolve, l.timings.AutoResolve, l.chainGen)
}

func (l *Lobby) arm(kind timerKind, after time.Duration, gen uint64) {
	if after <= 0 {
		return
	}
	l.timers[kind] = time.AfterFunc(after, func() {
		select {
		case l.inbox <- timerFired{kind: kind, gen: gen}:
		case <-l.ctx.Done():
		}
	})
}

func (l *Lobby) stop(kind timerKind) {
	if t := l.timers[kind]; t != nil {
		t.Stop()
		delete(l.timers, kind)
	}
}

func (l *Lobby) stopAll() {
	for kind := range l.timers {
		l.stop(kind)
	}
}

func (l *Lobby) shutdown() {
	l.cancel()
	l.stopAll()
	l.tickGen++
	l.chainGen++
	for id, ch := range l.clients {
		close(ch) // Tell client no more snapshots
		delete(l.clients, id)
	}
}

func (l *Lobby) snapshot(notices []Notice) Snapshot {
	return Snapshot{
		Version:   l.version,
		State:     l.state,
		Notices:   notices,
		Retention: l.retentionView(),
	}
}

func (l *Lobby) retentionView() *RetentionView {
	if l.selection == nil {
		return nil
	}
	c := l.selection.Counts()
	purse := l.state.Rules.Purse
	if human, ok := l.state.Team(l.state.HumanTeamID); ok {
		purse = human.Budget
	}
	return &RetentionView{
		Selected:  l.selection.Selected(),
		Prices:    l.selection.Prices(),
		Total:     l.selection.Total(),
		Remaining: l.selection.Remaining(purse),
		Capped:    c.Capped,
		Uncapped:  c.Uncapped,
	}
}

func (l *Lobby) broadcast(snap Snapshot) {
	for id, ch := range l.clients {
		select {
		case ch <- snap:
			//ok
		default:
			// Client is slow/full - drop them.
			close(ch)
			delete(l.clients, id)
			l.log.Info("dropped slow client", zap.String("client", id))
		}
	}
}

func (l *Lobby) logEvent(e engine.Event) {
	switch e.Type {
	case engine.EvtPlayerSold, engine.EvtPlayerUnsold, engine.EvtRetentionConfirmed,
		engine.EvtRosterIncomplete, engine.EvtAuctionEnded:
		l.log.Info("auction event",
			zap.String("event", string(e.Type)),
			zap.Int("team", e.TeamID),
			zap.Int("player", e.PlayerID),
			zap.String("amount", e.Amount.StringFixed(2)),
			zap.String("reason", e.Reason))
	default:
		l.log.Debug("auction event", zap.String("event", string(e.Type)), zap.Int("team", e.TeamID))
	}
}

// Expose the inbox so tests or WS layer can send messages.
func (l *Lobby) Inbox() chan<- Msg { return l.inbox }

// Send delivers m unless the lobby has already shut down.
func (l *Lobby) Send(m Msg) error {
	if l.ctx.Err() != nil {
		return ErrClosed
	}
	select {
	case l.inbox <- m:
		return nil
	case <-l.ctx.Done():
		return ErrClosed
	}
}

func (l *Lobby) Done() <-chan struct{} { return l.ctx.Done() }

func (l *Lobby) Code() string { return l.code }
