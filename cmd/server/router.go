package main

import (
	"context"
	"net/http"
	"time"

	"github.com/duetdiary/duet-api/internal/api"
	apimiddleware "github.com/duetdiary/duet-api/internal/api/middleware"
	"github.com/duetdiary/duet-api/internal/api/shared"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const requestTimeout = 90 * time.Second

// setupRouter registers every route and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(apimiddleware.Trace(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	auth := apimiddleware.NewAuthMiddleware(app.config.Auth.JWTSecret)
	entries := api.NewEntryHandler(app.entryService)
	insights := api.NewInsightHandler(app.insightService, app.config.Analytics.TimezoneOffsetHours)
	text := api.NewTextHandler(app.textAnalyzer)

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Post("/entries", entries.CreateEntry)
		r.Get("/entries", entries.ListEntries)

		r.Get("/insights/weekly", insights.WeeklyReport)
		r.Post("/insights/weekly/narrative", insights.Narrative)

		r.Post("/analyze/text", text.AnalyzeText)
	})

	r.Get("/health", app.health)

	return r
}

func (app *application) health(w http.ResponseWriter, r *http.Request) {
	if app.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := app.db.PingContext(ctx); err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, "Database unavailable", err)
			return
		}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
