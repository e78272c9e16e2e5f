package app

import (
	"context"
	"fmt"

	"github.com/rosterhq/roster/internal/api"
	"github.com/rosterhq/roster/internal/config"
	"github.com/rosterhq/roster/internal/logging"
	"github.com/rosterhq/roster/internal/prefs"
	"github.com/rosterhq/roster/internal/state"
	"github.com/rosterhq/roster/internal/ui"
	"github.com/rosterhq/roster/internal/user"
)

// Options configure the roster application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/roster/prefs.toml
}

// Run boots the roster TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, closeLog, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closeLog() }()

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	client, err := api.NewClient(cfg.APIBase, log)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	store := state.NewStore(state.Codec[user.User]{
		Fresh:    user.New,
		FromData: user.FromData,
	})
	go store.Run(ctx)

	dispatcher := NewDispatcher(store, client, log)

	// Restore an existing session before the UI starts; anonymous visits
	// fail this silently.
	dispatcher.HydrateApp(ctx, "")

	StartSessionRefresher(ctx, store, dispatcher, cfg.SessionRefresh)

	uiOpts := ui.Options{
		Context:    ctx,
		Store:      store,
		Dispatcher: dispatcher,
		Config:     &cfg,
		ThemeName:  userPrefs.Theme,
		Username:   userPrefs.Username,
		PrefsPath:  opts.PrefsPath,
	}
	log.Info().Str("api_base", cfg.APIBase).Msg("starting ui")
	return ui.Run(uiOpts)
}
