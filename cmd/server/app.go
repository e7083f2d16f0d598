package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/duetdiary/duet-api/internal/api"
	"github.com/duetdiary/duet-api/internal/config"
	"github.com/duetdiary/duet-api/internal/domain/textsignal"
	"github.com/duetdiary/duet-api/internal/generation"
	"github.com/duetdiary/duet-api/internal/platform/gemini"
	"github.com/duetdiary/duet-api/internal/platform/openai"
	"github.com/duetdiary/duet-api/internal/platform/postgres"
	"github.com/duetdiary/duet-api/internal/rules"
	"github.com/duetdiary/duet-api/internal/service"
)

// application holds the wired dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	entryService   service.EntryService
	insightService service.InsightService
	textAnalyzer   api.TextAnalyzer
}

// newApplication builds stores, analyzers and services on top of an open
// database connection.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	tables, err := rules.Load(cfg.Analytics.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}
	logger.Info("rule tables loaded", slog.String("path", cfg.Analytics.RulesPath))

	diaryStore := postgres.NewPostgresDiaryStore(db, logger)
	profileStore := postgres.NewPostgresProfileStore(db, logger)
	extractor := textsignal.NewExtractor(tables)

	analyzers, err := service.NewAnalyzers(tables, cfg.Analytics.TimezoneOffsetHours)
	if err != nil {
		return nil, fmt.Errorf("failed to build analyzers: %w", err)
	}

	narrator, err := newNarrator(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize narrator: %w", err)
	}

	app := &application{config: cfg, logger: logger, db: db}

	app.entryService, err = service.NewEntryService(
		db, diaryStore, profileStore, extractor,
		cfg.Analytics.TimezoneOffsetHours, nil, logger)
	if err != nil {
		return nil, err
	}

	app.insightService, err = service.NewInsightService(
		diaryStore, profileStore, analyzers, narrator,
		service.InsightSettings{
			OffsetHours:  cfg.Analytics.TimezoneOffsetHours,
			HistoryWeeks: cfg.Analytics.ReliabilityHistoryWeeks,
		},
		logger)
	if err != nil {
		return nil, err
	}

	app.textAnalyzer = service.NewTextService(extractor, analyzers.Conflict)

	logger.Info("application initialized")
	return app, nil
}

// newNarrator selects the narrative provider.
func newNarrator(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (generation.Narrator, error) {
	switch cfg.Provider {
	case "gemini":
		return gemini.NewNarrator(ctx, cfg, logger)
	case "openai":
		return openai.NewNarrator(cfg, logger)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", generation.ErrInvalidConfig, cfg.Provider)
	}
}

// Run serves HTTP until ctx is cancelled, then releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}
