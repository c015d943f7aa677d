// Command tmtd serves the translation management HTTP API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ZaguanLabs/tmt"
	"github.com/ZaguanLabs/tmt/cache"
	"github.com/ZaguanLabs/tmt/config"
	"github.com/ZaguanLabs/tmt/provider"
	"github.com/ZaguanLabs/tmt/server"
	"github.com/ZaguanLabs/tmt/store"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = tmt.Version
	commit    = tmt.GitCommit
	buildDate = tmt.BuildDate
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("tmtd", flag.ContinueOnError)
	fs.SetOutput(stderr)

	addr := fs.String("addr", "", "Listen address (default: TMT_ADDR or :5000)")
	showVersion := fs.Bool("version", false, "Show version")
	quiet := fs.Bool("quiet", false, "Suppress access log output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", tmt.Name, version)
		if commit != "unknown" && commit != "" {
			fmt.Fprintf(stdout, "  commit:  %s\n", commit)
		}
		if buildDate != "unknown" && buildDate != "" {
			fmt.Fprintf(stdout, "  built:   %s\n", buildDate)
		}
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	logger := newLogger(stderr, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	st, err := store.NewMongoStore(connectCtx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return fmt.Errorf("connecting to store: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = st.Close(closeCtx)
	}()

	p, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	translationCache, err := buildCache(cfg)
	if err != nil {
		return err
	}

	notifier := tmt.NewNotifierWithBuffer(cfg.SubscriberBuffer)
	defer notifier.Close()

	orc := tmt.NewOrchestrator(st, p,
		tmt.WithNotifier(notifier),
		tmt.WithLogger(logger),
		tmt.WithCache(translationCache),
		tmt.WithProviderTimeout(cfg.ProviderTimeout),
	)

	if err := orc.EnsureDefaultLanguages(ctx); err != nil {
		return fmt.Errorf("seeding languages: %w", err)
	}

	var accessLog io.Writer
	if !*quiet {
		accessLog = stdout
	}

	srv := server.New(server.Config{
		Orchestrator:   orc,
		Notifier:       notifier,
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
		AccessLog:      accessLog,
	})

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr, "provider", cfg.Provider, "version", tmt.FullVersion())
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}

	return nil
}

func newLogger(w io.Writer, format string) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, nil))
	}
	return slog.New(slog.NewTextHandler(w, nil))
}

// buildProvider assembles the provider chain: the configured backend wrapped
// with rate limiting, then retries. The translation cache wraps the whole
// chain inside the orchestrator.
func buildProvider(cfg *config.Config) (tmt.Provider, error) {
	var p tmt.Provider
	switch cfg.Provider {
	case config.ProviderOpenAI:
		p = provider.NewOpenAIProvider(provider.OpenAIConfig{
			APIKey: cfg.OpenAIKey,
			Model:  cfg.OpenAIModel,
		})
	case config.ProviderHuggingFace:
		p = provider.NewHuggingFaceProvider(provider.HuggingFaceConfig{
			APIKey:  cfg.HFKey,
			ModelID: cfg.HFModelID,
			Timeout: cfg.ProviderTimeout,
		})
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}

	p = tmt.NewRateLimitedProvider(p, tmt.RateLimitConfig{
		RequestsPerMinute: cfg.ProviderRPM,
	})

	retryCfg := tmt.DefaultRetryConfig()
	retryCfg.MaxRetries = cfg.ProviderRetries
	p = tmt.NewRetryableProvider(p, retryCfg)

	return p, nil
}

func buildCache(cfg *config.Config) (tmt.TranslationCache, error) {
	if cfg.CacheTTL <= 0 {
		return nil, nil
	}
	if cfg.RedisURL != "" {
		c, err := cache.NewRedisCache(cache.RedisConfig{
			URL: cfg.RedisURL,
			TTL: cfg.CacheTTL,
		})
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return c, nil
	}
	return cache.NewInMemoryCache(cfg.CacheTTL), nil
}
