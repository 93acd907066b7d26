package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"wallboard/app/cache"
	"wallboard/app/config"
	"wallboard/app/logging"
	"wallboard/app/metrics"
	"wallboard/app/repositories"
	"wallboard/app/routes"
	"wallboard/app/services"
	"wallboard/generator"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("wallboard version %s\n", cliVersion)
	case "serve":
		serve()
	case "generate":
		generate()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: wallboard <command> [options]
Commands:
  help                           Display this help message.
  version                        Show version information.
  serve                          Run the wall API server (configured via environment).
  generate                       Run the synthetic traffic generator against a wall API.
`
	fmt.Println(helpText)
}

// serve wires configuration, persistence, cache, metrics and routes, then
// runs the HTTP server until interrupted.
func serve() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := repositories.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := repositories.EnsureSchema(ctx, pool); err != nil {
		slog.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}

	feedCache, err := cache.New(cfg.CacheURL)
	if err != nil {
		slog.Error("failed to open cache", "cache_url", cfg.CacheURL, "error", err)
		os.Exit(1)
	}
	defer feedCache.Close()

	m := metrics.New(cfg.MetricsNamespace)

	postRepo := repositories.NewPgPostRepository(pool)
	commentRepo := repositories.NewPgCommentRepository(pool)
	userRepo := repositories.NewPgUserRepository(pool)

	router := routes.SetupRoutes(routes.Deps{
		Posts:           services.NewPostService(postRepo, feedCache, m, cfg.FeedCacheTTL, cfg.MaxPageSize),
		Comments:        services.NewCommentService(postRepo, commentRepo, feedCache, m),
		Auth:            services.NewAuthService(userRepo, m, cfg.JWTSecret, cfg.JWTTTL),
		Library:         services.NewLibraryService(feedCache, m, cfg.LibraryCacheTTL),
		Metrics:         m,
		DefaultPageSize: cfg.DefaultPageSize,
	})

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	go func() {
		slog.Info("wall API listening", "addr", cfg.Addr, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// generate runs the synthetic traffic generator until interrupted.
func generate() {
	logging.InitLogger(slog.LevelInfo)

	baseURL := strings.TrimRight(getenv("API_BASE", "http://localhost:8000"), "/")
	author := getenv("AUTHOR_NAME", "load-bot")
	interval, err := time.ParseDuration(getenv("INTERVAL", "750ms"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid INTERVAL: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := generator.New(baseURL, author).Run(ctx, interval); err != nil {
		slog.Error("generator error", "error", err)
		os.Exit(1)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
