package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/DoyleJ11/cricket-auction/internal/engine"
	"github.com/DoyleJ11/cricket-auction/internal/hub"
	"github.com/DoyleJ11/cricket-auction/internal/lobby"
	"github.com/DoyleJ11/cricket-auction/internal/types"
	"github.com/DoyleJ11/cricket-auction/pkg/protocol"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
)

var (
	ErrUnknownMessage = errors.New("unknown message type")
	ErrBadJSON        = errors.New("bad json")
)

const (
	readTimeout  = 60 * time.Second
	writeTimeout = 3 * time.Second
)

func Handler(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		reply := make(chan *lobby.Lobby, 1)
		h.Inbox() <- hub.GetLobby{Code: code, Reply: reply}
		lb := <-reply
		if lb == nil {
			http.Error(w, "lobby not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// In dev ONLY, you can loosen origin checks:
			// OriginPatterns: []string{"http://localhost:*", "http://127.0.0.1:*"},
		})
		if err != nil {
			log.Debug("websocket accept failed", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		clientID := uuid.NewString()
		log := log.With(zap.String("lobby", code), zap.String("client", clientID))

		out := make(chan lobby.Snapshot, 8)
		if err := lb.Send(lobby.Join{ClientID: clientID, Outbox: out}); err != nil {
			conn.Close(websocket.StatusGoingAway, "auction closed")
			return
		}
		defer func() { _ = lb.Send(lobby.Leave{ClientID: clientID}) }()
		log.Info("client connected")

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()

		direct := make(chan types.ServerMessage, 4)
		push := func(m types.ServerMessage) {
			select {
			case direct <- m:
			case <-writeCtx.Done():
			}
		}
		go func() {
			defer writeCancel()
			lastVersion := -1
			for {
				var msg types.ServerMessage
				select {
				case snap, ok := <-out:
					if !ok {
						// lobby dropped us or shut down
						conn.Close(websocket.StatusGoingAway, "lobby closed")
						return
					}
					if snap.Version == lastVersion && len(snap.Notices) > 0 {
						msg = types.ServerMessage{Type: protocol.Notice, Version: snap.Version, Notices: snap.Notices}
					} else {
						msg = types.SnapshotMessage(snap)
					}
					lastVersion = snap.Version
				case msg = <-direct:
				case <-writeCtx.Done():
					return
				}
				if err := write(writeCtx, conn, msg); err != nil {
					log.Debug("write failed", zap.Error(err))
					return
				}
			}
		}()

		// Reader loop
		for {
			ctx, cancel := context.WithTimeout(writeCtx, readTimeout)
			_, data, err := conn.Read(ctx)
			cancel()
			if err != nil {
				// Treat clean close/going-away as normal:
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					log.Info("client disconnected")
					return
				}
				log.Debug("read failed", zap.Error(err))
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				push(types.ErrorMessage(ErrBadJSON))
				continue
			}

			msg, errc, err := ToLobbyMsg(cm, clientID)
			if err != nil {
				push(types.ErrorMessage(err))
				continue
			}
			if err := lb.Send(msg); err != nil {
				return
			}
			select {
			case err := <-errc:
				if err != nil {
					push(types.ErrorMessage(err))
				}
			case <-lb.Done():
				return
			}
		}
	}
}

func write(ctx context.Context, conn *websocket.Conn, msg types.ServerMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, payload)
}

// ToLobbyMsg maps a client message onto the lobby inbox. The returned channel
// receives the outcome once the lobby has processed it. Team-scoped commands
// carry no team: the lobby acts for its human team.
func ToLobbyMsg(m types.ClientMessage, clientID string) (lobby.Msg, chan error, error) {
	reply := make(chan error, 1)

	if m.Type == protocol.ToggleRetention {
		return lobby.ToggleRetention{PlayerID: m.PlayerID, Reply: reply}, reply, nil
	}

	cmd, err := toEngineCommand(m)
	if err != nil {
		return nil, nil, err
	}
	return lobby.FromClient{ClientID: clientID, Cmd: cmd, Reply: reply}, reply, nil
}

func toEngineCommand(m types.ClientMessage) (engine.Command, error) {
	switch engine.CommandType(m.Type) {
	case engine.CmdBid:
		return engine.Command{Type: engine.CmdBid}, nil
	case engine.CmdPass:
		return engine.Command{Type: engine.CmdPass}, nil
	case engine.CmdResolve:
		return engine.Command{Type: engine.CmdResolve}, nil
	case engine.CmdConfirmRetention:
		return engine.Command{Type: engine.CmdConfirmRetention, PlayerIDs: m.PlayerIDs, Prices: m.Prices}, nil
	case engine.CmdSkipRetention:
		return engine.Command{Type: engine.CmdSkipRetention}, nil
	case engine.CmdReorder:
		return engine.Command{
			Type:         engine.CmdReorder,
			SourceTeamID: m.SourceTeamID,
			SourceIndex:  m.SourceIndex,
			DestTeamID:   m.DestTeamID,
			DestIndex:    m.DestIndex,
		}, nil
	case engine.CmdForceEnd:
		return engine.Command{Type: engine.CmdForceEnd}, nil
	default:
		return engine.Command{}, fmt.Errorf("%w: %q", ErrUnknownMessage, m.Type)
	}
}
