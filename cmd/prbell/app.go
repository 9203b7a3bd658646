package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cli/browser"

	githubadapter "github.com/ericfisherdev/prbell/internal/adapter/driven/github"
	"github.com/ericfisherdev/prbell/internal/adapter/driven/notify"
	sqliteadapter "github.com/ericfisherdev/prbell/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/prbell/internal/adapter/driving/http"
	"github.com/ericfisherdev/prbell/internal/application"
	"github.com/ericfisherdev/prbell/internal/config"
	"github.com/ericfisherdev/prbell/internal/domain/port/driven"
)

// app is the composition root shared by the serve and once commands.
type app struct {
	cfg          *config.Config
	logger       *slog.Logger
	db           *sqliteadapter.DB
	orchestrator *application.CycleOrchestrator
	handler      http.Handler
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)
	logger.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"poll_interval", cfg.PollInterval,
		"api_url", cfg.GitHubAPIURL,
		"open_browser", cfg.OpenBrowser,
	)

	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}

	version, err := sqliteadapter.RunMigrations(db.Writer)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Info("database ready", "path", cfg.DBPath, "schema_version", version)

	stateStore := sqliteadapter.NewStateRepo(db)
	muteStore := sqliteadapter.NewMuteRepo(db)
	badge := sqliteadapter.NewBadgeRepo(db)
	inbox := sqliteadapter.NewNotificationRepo(db)

	notifier := notify.NewSanitizing(notify.NewMulti(inbox, notify.NewLog(logger)))

	source, err := newSource(cfg, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	orchestrator := application.NewCycleOrchestrator(
		source,
		stateStore,
		notifier,
		badge,
		application.NewMuteSuppressor(muteStore, logger),
		cfg.PollInterval,
		logger,
	)

	var open httphandler.OpenFunc
	if cfg.OpenBrowser {
		open = browser.OpenURL
	}

	h := httphandler.NewHandler(orchestrator, stateStore, badge, inbox, muteStore, open, logger)

	return &app{
		cfg:          cfg,
		logger:       logger,
		db:           db,
		orchestrator: orchestrator,
		handler:      httphandler.NewServeMux(h, logger),
	}, nil
}

// newSource returns nil when no token is configured, so every cycle records
// a "no token" error instead of the process refusing to start.
func newSource(cfg *config.Config, logger *slog.Logger) (driven.PullRequestSource, error) {
	if !cfg.HasGitHubToken() {
		logger.Warn("no GitHub token configured, cycles will fail until PRBELL_GITHUB_TOKEN is set")
		return nil, nil
	}

	client, err := githubadapter.NewClient(cfg.GitHubToken, cfg.GitHubAPIURL,
		githubadapter.WithRetry(3, 2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create github client: %w", err)
	}
	return client, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("error closing database", "error", err)
	}
}
