package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/whotakesshowers/wts/internal/api"
	"github.com/whotakesshowers/wts/internal/app"
	"github.com/whotakesshowers/wts/internal/config"
	"github.com/whotakesshowers/wts/internal/logging"
	"github.com/whotakesshowers/wts/internal/resolver"
	"github.com/whotakesshowers/wts/internal/store"
)

// env bundles what every command that talks to the backend needs.
type env struct {
	cfgPath  string
	cfg      config.Config
	logger   *zap.Logger
	store    *store.Store
	client   *api.Client
	resolver resolver.Resolver
}

// loadConfig reads the config file the flags point at.
func loadConfig(cmd *cobra.Command) (string, config.Config, error) {
	path := resolveConfigPath(cmd)
	cfg, err := config.Load(path)
	if err != nil {
		return path, cfg, fmt.Errorf("load config: %w", err)
	}
	return path, cfg, nil
}

// setup loads config, opens the logger and the outcome log, and builds the
// API client and the resolver chain.
func setup(cmd *cobra.Command) (*env, error) {
	path, cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logging disabled:", err)
		logger = logging.Nop()
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	client := newClient(cfg)

	return &env{
		cfgPath:  path,
		cfg:      cfg,
		logger:   logger,
		store:    st,
		client:   client,
		resolver: newResolver(cfg, client, st.OutcomeRepo(), logger),
	}, nil
}

func newClient(cfg config.Config) *api.Client {
	return api.NewClient(cfg.API.BaseURL,
		api.WithToken(cfg.API.Token),
		api.WithTimeout(cfg.API.Timeout),
	)
}

// newResolver stacks timeout, retry and logging around the HTTP resolver.
// The timeout bounds each attempt; the logging layer sees the final result.
func newResolver(cfg config.Config, client resolver.Randomizer, repo store.OutcomeRepo, logger *zap.Logger) resolver.Resolver {
	rc := resolver.DefaultRetryConfig()
	rc.MaxAttempts = cfg.Spin.RetryAttempts

	var r resolver.Resolver = resolver.NewHTTP(client)
	r = resolver.WithTimeout(r, cfg.API.Timeout)
	r = resolver.WithRetry(r, rc)
	return resolver.WithLogging(r, repo, logger)
}

func (e *env) Close() {
	_ = e.logger.Sync()
	e.store.Close()
}

// runApp builds dependencies and launches the TUI, optionally straight on
// the spin screen for projectID.
func runApp(cmd *cobra.Command, projectID string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()
	return runTUI(e, projectID)
}

func runTUI(e *env, projectID string) error {
	watcher, err := config.Watch(e.cfgPath, func(err error) {
		e.logger.Warn("config reload failed", zap.String("path", e.cfgPath), zap.Error(err))
	})
	if err != nil {
		e.logger.Warn("config watch disabled", zap.String("path", e.cfgPath), zap.Error(err))
		watcher = nil
	} else {
		defer watcher.Close()
	}

	e.logger.Info("starting",
		zap.String("version", version),
		zap.String("api", e.client.BaseURL()),
		zap.String("variant", e.cfg.Spin.Variant),
	)

	return app.Run(app.Options{
		Config:     e.cfg,
		ConfigPath: e.cfgPath,
		Watcher:    watcher,
		Backend:    e.client,
		Resolver:   e.resolver,
		Outcomes:   e.store.OutcomeRepo(),
		Logger:     e.logger,
		ProjectID:  projectID,
	})
}
