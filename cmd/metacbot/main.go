package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"metacbot/internal/config"
	"metacbot/internal/execution"
	"metacbot/internal/llm"
	"metacbot/internal/platform"
	"metacbot/internal/scheduler"
	"metacbot/internal/search"
)

func main() {
	// Parse CLI flags.
	configPath := flag.String("config", "config.toml", "Path to TOML config file")
	live := flag.Bool("live", false, "Force live mode (transmit real submissions)")
	maxQuestions := flag.Int("max-questions", 0, "Override max questions per run")
	interval := flag.Duration("interval", 0, "Rerun the pass on this interval (0 = run once)")
	flag.Parse()

	// Set up structured logging.
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	slog.Info("metacbot starting")

	// Load configuration: .env files, TOML defaults, env overrides.
	config.LoadEnv()
	if p := os.Getenv("METACBOT_CONFIG_PATH"); p != "" {
		*configPath = p
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(execution.ExitError)
	}
	if *live {
		cfg.LiveMode = true
	}
	if *maxQuestions > 0 {
		cfg.MaxQuestions = *maxQuestions
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	})))

	// Graceful shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	runner := execution.NewRunner(
		cfg,
		platform.NewClient(cfg),
		search.NewClient(cfg),
		llm.NewClient(cfg),
	)

	var code int
	if *interval > 0 {
		code = scheduler.New(*interval, runner.Run).Run(ctx)
	} else {
		code = runner.Run(ctx)
	}

	slog.Info("metacbot stopped", "exit_code", code)
	os.Exit(code)
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
