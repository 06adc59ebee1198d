package hub

import (
	"context"

	"github.com/DoyleJ11/cricket-auction/internal/engine"
	"github.com/DoyleJ11/cricket-auction/internal/lobby"
	"go.uber.org/zap"
)

type HubMsg interface{ isHubMsg() }

// CreateLobby starts an auction under Code. Reply gets nil when the code is
// already taken.
type CreateLobby struct {
	Code  string
	State engine.State
	Rand  engine.RandSource // nil uses the process-wide source
	Reply chan *lobby.Lobby
}

type GetLobby struct {
	Code  string
	Reply chan *lobby.Lobby
}

type RemoveLobby struct {
	Code string
}

type CountLobbies struct {
	Reply chan int
}

type Hub struct {
	inbox   chan HubMsg
	lobbies map[string]*lobby.Lobby
	ctx     context.Context
	cancel  context.CancelFunc
	log     *zap.Logger
	timings lobby.Timings
}

type ShutdownHub struct{}

func (CreateLobby) isHubMsg()  {}
func (GetLobby) isHubMsg()     {}
func (RemoveLobby) isHubMsg()  {}
func (CountLobbies) isHubMsg() {}
func (ShutdownHub) isHubMsg()  {}

func NewHub(parent context.Context, log *zap.Logger, timings lobby.Timings) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:   make(chan HubMsg, 64),
		lobbies: make(map[string]*lobby.Lobby),
		ctx:     ctx,
		cancel:  cancel,
		log:     log,
		timings: timings,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) Done() <-chan struct{} { return h.ctx.Done() }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateLobby:
				if h.lobbies[msg.Code] != nil {
					msg.Reply <- nil
					break
				}
				lb := lobby.NewLobby(h.ctx, msg.State, lobby.Config{
					Code:    msg.Code,
					Timings: h.timings,
					Rand:    msg.Rand,
					Logger:  h.log,
				})
				h.lobbies[msg.Code] = lb
				go h.reap(msg.Code, lb)
				h.log.Info("lobby created", zap.String("lobby", msg.Code), zap.Int("human_team", msg.State.HumanTeamID))
				msg.Reply <- lb

			case GetLobby:
				msg.Reply <- h.lobbies[msg.Code] // May be nil

			case RemoveLobby:
				delete(h.lobbies, msg.Code)

			case CountLobbies:
				msg.Reply <- len(h.lobbies)

			case ShutdownHub:
				h.shutdown()
				return
			}
		}
	}
}

// reap forgets a lobby once its actor has stopped.
func (h *Hub) reap(code string, lb *lobby.Lobby) {
	select {
	case <-lb.Done():
	case <-h.ctx.Done():
		return
	}
	select {
	case h.inbox <- RemoveLobby{Code: code}:
	case <-h.ctx.Done():
	}
}

func (h *Hub) shutdown() {
	for code, lb := range h.lobbies {
		_ = lb.Send(lobby.Shutdown{})
		delete(h.lobbies, code)
	}
	h.cancel()
}
