// Package api exposes the aggregation services over a small JSON REST API.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	"go.uber.org/zap"
)

// NewRouter builds the chi router with middleware and every route.
func NewRouter(h *Handler, allowedOrigins []string, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(accessLog(logger))

	c := corslib.New(corslib.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/tds", func(r chi.Router) {
			r.Get("/college/conferences/{gender}/{division}", h.ListConferences)
			r.Get("/college/conference/{gender}/{division}/{name}", h.GetConference)
			r.Get("/college/conference/commits/{gender}/{division}/{name}/{year}", h.GetConferenceCommits)
			r.Get("/college/conference/commits/chart/{gender}/{division}/{name}/{year}", h.GetConferenceLeagueBreakdown)
			r.Get("/college/commits/club/{gender}/{year}", h.GetCommitmentsByClub)
			r.Get("/player/details", h.GetPlayerDetails)
			r.Get("/player/details/{name}/{pid}", h.GetPlayerDetails)
			r.Post("/players", h.SearchPlayers)
		})

		r.Get("/ecnl/clubs", h.ECNLClubs)
		r.Get("/ga/clubs", h.GAClubs)
		r.Get("/ga/conferences", h.GAConferences)
		r.Post("/club/league/lookup", h.LookupLeagues)

		r.Route("/ncaa", func(r chi.Router) {
			r.Get("/rankings/rpi", h.RPIRankings)
			r.Get("/rankings/coaches/di", h.CoachesDIRankings)
			r.Get("/rankings/coaches/dii", h.CoachesDIIRankings)
			r.Get("/schools/{division}", h.NCAASchools)
		})
	})

	return r
}

func accessLog(logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Debug("HTTP request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		})
	}
}
