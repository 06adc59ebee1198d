package httpapi

import (
	"net/http"

	"github.com/DoyleJ11/cricket-auction/internal/ws"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func SetupRoutes(d Deps) http.Handler {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(Recovery(d.Log))
	r.Use(RequestID)
	r.Use(RequestLogger(d.Log))
	r.Use(CORS)

	// Public routes
	r.Get("/healthz", Healthz)
	r.Get("/teams", ListTeams(d))
	r.Route("/auctions", func(r chi.Router) {
		r.Post("/", CreateAuction(d))
		r.Get("/{code}", GetAuction(d))
		r.Post("/{code}/commands", PostCommand(d))
		r.Get("/{code}/report", GetReport(d))
	})
	r.Get("/ws", ws.Handler(d.Hub, d.Log))
	return r
}
