package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"artgrip/internal/artic"
	"artgrip/internal/config"
	"artgrip/internal/details"
	"artgrip/internal/eventbus"
	"artgrip/internal/favorites"
	"artgrip/internal/logging"
	"artgrip/internal/pagination"
	"artgrip/internal/ui"
)

const userAgent = "artgrip (https://github.com/artgrip/artgrip)"

func main() {
	var (
		configPath string
		search     string
		page       int
	)
	flag.StringVar(&configPath, "config", "", "Path to the config file")
	flag.StringVar(&search, "search", "", "Open search results for this term")
	flag.StringVar(&search, "s", "", "Open search results for this term (shorthand)")
	flag.IntVar(&page, "page", 1, "Starting page for -search")
	flag.Parse()

	if search == "" && flag.NArg() > 0 {
		search = flag.Arg(0)
	}

	configSvc := config.NewConfigService(configPath)
	cfg, err := configSvc.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logOpts := logging.DefaultOptions(cfg.Storage.DataDir)
	logOpts.Level = cfg.Log.Level
	logger, logCloser, err := logging.Setup(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
		logger = zerolog.Nop()
	} else {
		defer logCloser.Close()
	}
	logger.Info().Str("config", configSvc.Path()).Msg("starting")

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	bus := eventbus.New(logger)
	defer bus.Close()

	client := artic.NewClient(cfg.API.BaseURL,
		artic.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout()}),
		artic.WithImageBaseURL(cfg.API.ImageBaseURL),
		artic.WithRateLimit(cfg.API.RequestsPerSecond, cfg.API.Burst),
		artic.WithUserAgent(userAgent),
		artic.WithLogger(logger),
	)

	store := favorites.NewStore(cfg.Storage.DataDir, bus, logger)
	if err := store.Load(); err != nil {
		logger.Error().Err(err).Str("path", store.Path()).Msg("could not load favorites")
		fmt.Fprintf(os.Stderr, "Error loading favorites: %v\n", err)
		os.Exit(1)
	}
	go func() {
		if err := store.Watch(ctx); err != nil {
			logger.Warn().Err(err).Msg("favorites watcher stopped")
		}
	}()

	loader, err := details.NewLoader(client, details.DefaultCacheSize, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not create detail loader")
	}

	model := ui.NewModel(ctx, ui.Deps{
		Config:    cfg,
		Bus:       bus,
		Fetcher:   pagination.NewCatalogFetcher(client),
		Details:   loader,
		Previews:  client,
		Favorites: store,
		Images:    client,
		Logger:    logger,
		Search:    search,
		Page:      page,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	model.SetProgram(p)

	// Set up event forwarding to UI
	forward := func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventFavoriteAdded,
		eventbus.EventFavoriteRemoved,
		eventbus.EventFavoritesReloaded,
		eventbus.EventPageFetchFailed,
		eventbus.EventError,
	} {
		unsubscribe := bus.Subscribe(t, forward)
		defer unsubscribe()
	}

	// Remember the last root screen
	bus.Subscribe(eventbus.EventConfigChanged, func(e eventbus.DomainEvent) {
		event, ok := e.(eventbus.ConfigChangedEvent)
		if !ok || event.StartScreen == "" {
			return
		}
		cfg.UISettings.StartScreen = event.StartScreen
		if err := configSvc.Save(cfg); err != nil {
			logger.Error().Err(err).Msg("failed to save config")
			return
		}
		logger.Debug().Str("start_screen", event.StartScreen).Msg("config saved")
	})

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		logger.Error().Err(err).Msg("program exited with error")
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	logger.Info().Msg("exited normally")
}
