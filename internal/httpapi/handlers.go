package httpapi

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"

	"github.com/DoyleJ11/cricket-auction/internal/catalog"
	"github.com/DoyleJ11/cricket-auction/internal/engine"
	"github.com/DoyleJ11/cricket-auction/internal/hub"
	"github.com/DoyleJ11/cricket-auction/internal/lobby"
	"github.com/DoyleJ11/cricket-auction/internal/report"
	"github.com/DoyleJ11/cricket-auction/internal/types"
	"github.com/DoyleJ11/cricket-auction/internal/ws"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxCodeAttempts = 10

// Deps are what the handlers need. Catalog is shared by every auction.
type Deps struct {
	Hub     *hub.Hub
	Catalog catalog.Catalog
	Rules   engine.Rules
	Log     *zap.Logger
}

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

type createAuctionRequest struct {
	HumanTeamID int     `json:"human_team_id"`
	Seed        *uint64 `json:"seed,omitempty"`
}

type createAuctionResponse struct {
	Code  string          `json:"code"`
	State types.StateView `json:"state"`
}

func CreateAuction(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAuctionRequest
		if err := DecodeJSON(r, &req); err != nil {
			RespondError(w, err)
			return
		}

		state, err := engine.NewState(d.Catalog, d.Rules, req.HumanTeamID)
		if err != nil {
			RespondError(w, errors.Join(ErrBadRequest, err))
			return
		}
		var rng engine.RandSource
		if req.Seed != nil {
			rng = engine.NewRandSource(*req.Seed)
		}

		for range maxCodeAttempts {
			code, err := GenerateCode()
			if err != nil {
				RespondError(w, fmt.Errorf("generate code: %w", err))
				return
			}
			reply := make(chan *lobby.Lobby, 1)
			d.Hub.Inbox() <- hub.CreateLobby{Code: code, State: state, Rand: rng, Reply: reply}
			if <-reply == nil {
				d.Log.Debug("collision on code, regenerating", zap.String("code", code))
				continue
			}
			RespondJSON(w, http.StatusCreated, createAuctionResponse{Code: code, State: *types.NewStateView(state)})
			return
		}
		RespondError(w, errors.New("failed to allocate auction code"))
	}
}

// lookup fetches the lobby named in the URL and asks it for a view.
func lookup(d Deps, r *http.Request) (lobby.View, error) {
	code := chi.URLParam(r, "code")
	reply := make(chan *lobby.Lobby, 1)
	d.Hub.Inbox() <- hub.GetLobby{Code: code, Reply: reply}
	lb := <-reply
	if lb == nil {
		return lobby.View{}, fmt.Errorf("%w: %s", ErrNotFound, code)
	}

	views := make(chan lobby.View, 1)
	if err := lb.Send(lobby.GetState{Reply: views}); err != nil {
		return lobby.View{}, fmt.Errorf("%w: %s", ErrNotFound, code)
	}
	select {
	case v := <-views:
		return v, nil
	case <-lb.Done():
		return lobby.View{}, fmt.Errorf("%w: %s", ErrNotFound, code)
	case <-r.Context().Done():
		return lobby.View{}, r.Context().Err()
	}
}

func GetAuction(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := lookup(d, r)
		if err != nil {
			RespondError(w, err)
			return
		}
		RespondJSON(w, http.StatusOK, types.ViewMessage(v))
	}
}

// PostCommand lets plain HTTP clients drive an auction the same way the
// websocket does.
func PostCommand(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cm types.ClientMessage
		if err := DecodeJSON(r, &cm); err != nil {
			RespondError(w, err)
			return
		}
		msg, errc, err := ws.ToLobbyMsg(cm, "http:"+GetRequestID(r.Context()))
		if err != nil {
			RespondError(w, errors.Join(ErrBadRequest, err))
			return
		}

		code := chi.URLParam(r, "code")
		reply := make(chan *lobby.Lobby, 1)
		d.Hub.Inbox() <- hub.GetLobby{Code: code, Reply: reply}
		lb := <-reply
		if lb == nil || lb.Send(msg) != nil {
			RespondError(w, fmt.Errorf("%w: %s", ErrNotFound, code))
			return
		}
		select {
		case err := <-errc:
			if err != nil {
				RespondError(w, err)
				return
			}
		case <-lb.Done():
			RespondError(w, fmt.Errorf("%w: %s", ErrNotFound, code))
			return
		}

		v, err := lookup(d, r)
		if err != nil {
			RespondError(w, err)
			return
		}
		RespondJSON(w, http.StatusOK, types.ViewMessage(v))
	}
}

func GetReport(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := lookup(d, r)
		if err != nil {
			RespondError(w, err)
			return
		}
		rep := report.Build(v.State)

		if r.URL.Query().Get("format") == "csv" {
			w.Header().Set("Content-Type", "text/csv")
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "auction-"+chi.URLParam(r, "code")+".csv"))
			if err := report.WriteCSV(w, rep.Rows); err != nil {
				d.Log.Warn("csv export failed", zap.Error(err))
			}
			return
		}
		RespondJSON(w, http.StatusOK, rep)
	}
}

func ListTeams(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondJSON(w, http.StatusOK, d.Catalog.Teams)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
