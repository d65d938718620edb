package cli

import (
	"fmt"
	"log/slog"

	"github.com/milkchain/milkchain/internal/api"
	"github.com/milkchain/milkchain/internal/config"
	"github.com/milkchain/milkchain/internal/credstore"
	"github.com/milkchain/milkchain/internal/lifecycle"
	"github.com/milkchain/milkchain/internal/logging"
	"github.com/milkchain/milkchain/internal/pingate"
	"github.com/milkchain/milkchain/internal/session"
)

// app is the composition root: it owns the credential store, the shared API
// client, the session manager, the PIN gate, and the lifecycle observer, and
// wires them together the one correct way.
type app struct {
	cfg       config.Client
	logger    *slog.Logger
	store     credstore.Store
	client    *api.Client
	sessions  *session.Manager
	gate      *pingate.Gate
	lifecycle *lifecycle.Observer
	relock    *lifecycle.Subscription
}

func newApp(opts *RootOptions) (*app, error) {
	cfg, err := config.LoadClient(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if opts.Verbose {
		level = "debug"
	}
	logger := logging.NewText(level)

	store, err := credstore.Open(cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}

	client := api.New(api.Config{BaseURL: cfg.APIBaseURL, Timeout: cfg.RequestTimeout, Logger: logger})
	sessions := session.NewManager(store, client, logger)
	gate := pingate.New(client, logger)
	sessions.AddHook(gate)

	observer := lifecycle.NewObserver()
	relock := lifecycle.WatchForeground(observer, sessions.Authenticated, gate.Lock)

	return &app{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		client:    client,
		sessions:  sessions,
		gate:      gate,
		lifecycle: observer,
		relock:    relock,
	}, nil
}

func (a *app) close() {
	a.relock.Cancel()
	if err := a.store.Close(); err != nil {
		a.logger.Warn("close credential store", "error", err)
	}
}
