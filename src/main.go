package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/contre95/songstats/src/features/catalog"
	"github.com/contre95/songstats/src/features/charts"
	"github.com/contre95/songstats/src/features/config"
	"github.com/contre95/songstats/src/features/generating"
	"github.com/contre95/songstats/src/features/hosting"
	"github.com/contre95/songstats/src/features/logging"
	"github.com/contre95/songstats/src/features/metrics"
	"github.com/contre95/songstats/src/infra/dataset"
	"github.com/contre95/songstats/src/infra/watcher"
	"github.com/contre95/songstats/src/music"
	"github.com/schollz/progressbar/v3"
)

const usage = `Usage: songstats [-config path] <command> [flags]

Commands:
  serve      start the web server (default)
  generate   generate a synthetic dataset
  charts     render every chart to the output directory
`

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	// Load configuration
	cfgManager, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Setup default logger with slog
	logger := logging.SetupLogger(cfgManager)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command, args := "serve", []string{}
	if flag.NArg() > 0 {
		command, args = flag.Arg(0), flag.Args()[1:]
	}

	switch command {
	case "serve":
		err = serve(ctx, cfgManager)
	case "generate":
		err = generate(ctx, cfgManager, args)
	case "charts":
		err = renderCharts(ctx, cfgManager)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		slog.Error("Command failed", "command", command, "error", err)
		os.Exit(1)
	}
}

func newStore(cfg *config.Config) *catalog.Store {
	return catalog.NewStore(dataset.ForPath(cfg.Dataset.Path, cfg.YearWindow()), cfg.Dataset.Path)
}

func newBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(
		total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetTheme(progressbar.ThemeASCII),
		progressbar.OptionFullWidth(),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription(description),
	)
}

func generate(ctx context.Context, cfgManager *config.Manager, args []string) error {
	cfg := cfgManager.Get()

	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	songs := fs.Int("n", cfg.Generator.Songs, "number of songs")
	seed := fs.Uint64("seed", cfg.Generator.Seed, "random seed")
	out := fs.String("out", cfg.Dataset.Path, "output file (.csv, or .db for SQLite)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	window := cfg.YearWindow()
	var mirror music.DatasetWriter
	if cfg.Generator.SQLitePath != "" {
		mirror = dataset.NewSQLiteStore(window)
	}
	service := generating.NewService(dataset.ForPath(*out, window), mirror)

	bar := newBar(*songs, "Generating songs")
	ds, err := service.Run(ctx, generating.Options{Songs: *songs, Seed: *seed, Window: window}, *out, cfg.Generator.SQLitePath, func() {
		bar.Add(1)
	})
	bar.Finish()
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}

	fmt.Printf("Dataset saved to %s\n", *out)
	if mirror != nil {
		fmt.Printf("SQLite mirror saved to %s\n", cfg.Generator.SQLitePath)
	}
	generating.BasicStatistics(ds).Print(os.Stdout)
	return nil
}

func renderCharts(ctx context.Context, cfgManager *config.Manager) error {
	cfg := cfgManager.Get()
	store := newStore(cfg)
	if err := store.Load(ctx); err != nil {
		return err
	}
	service := charts.NewService(store, cfgManager)

	bar := newBar(len(charts.Names()), "Rendering charts")
	rendered, err := service.RenderAll(ctx, func(string) { bar.Add(1) })
	bar.Finish()
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}
	for _, c := range rendered {
		fmt.Println(c.Path())
	}
	return nil
}

func serve(ctx context.Context, cfgManager *config.Manager) error {
	cfg := cfgManager.Get()

	// Explicit initial load; an absent dataset still lets the server start
	store := newStore(cfg)
	if err := store.Load(ctx); err != nil {
		slog.Warn("Starting without a dataset", "path", cfg.Dataset.Path, "error", err)
	}

	catalogService := catalog.NewService(store, cfgManager)
	metricsService := metrics.NewService(store, cfg.API.TopArtists)
	chartsService := charts.NewService(store, cfgManager)

	render := func(ctx context.Context, _ *music.Dataset) {
		if _, err := chartsService.RenderAll(ctx, nil); err != nil {
			slog.Warn("Chart render skipped", "error", err)
		}
	}
	if cfg.Charts.RenderOnStart && store.Dataset() != nil {
		go render(ctx, nil)
	}

	// Reload the dataset when its file changes
	if cfg.Dataset.Watch {
		events := make(chan watcher.FileEvent, 1)
		fileWatcher, err := watcher.NewWatcher(events, cfg.Debounce())
		if err != nil {
			return fmt.Errorf("failed to create file watcher: %w", err)
		}
		if err := fileWatcher.Start(ctx, cfg.Dataset.Path); err != nil {
			return fmt.Errorf("failed to watch dataset: %w", err)
		}
		defer fileWatcher.Stop()

		var after func(context.Context, *music.Dataset)
		if cfg.Charts.RenderOnStart {
			after = render
		}
		go store.ReloadOnChange(ctx, events, after)
	}

	// Create and start the Telegram bot if enabled
	var telegramBot *hosting.TelegramBot
	if cfg.Telegram.Enabled {
		var err error
		telegramBot, err = hosting.NewTelegramBot(cfgManager, catalogService, chartsService)
		if err != nil {
			slog.Error("Failed to initialize Telegram bot", "error", err)
		} else {
			go telegramBot.Start()
			slog.Info("Telegram bot started")
		}
	}

	// Create and start the HTTP server
	server := hosting.NewServer(cfgManager, catalogService, metricsService, chartsService)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()
	slog.Info("Server started. Press Ctrl+C to shut down.", "port", cfg.Server.Port)

	// Wait for a shutdown signal
	select {
	case err := <-serverErr:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}
	slog.Info("Shutting down server...")

	if telegramBot != nil {
		telegramBot.Stop()
		slog.Info("Telegram bot stopped")
	}

	if err := server.Shutdown(); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	slog.Info("Server gracefully shut down.")
	return nil
}
