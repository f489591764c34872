// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tripgen/internal/config"
	httptransport "tripgen/internal/http"
	"tripgen/internal/http/handlers"
	"tripgen/internal/infra"
	"tripgen/internal/llm"
	"tripgen/internal/modules/geocode"
	"tripgen/internal/modules/planner"
	"tripgen/internal/modules/usage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	completer, cleanup, err := newCompleter(ctx, cfg.LLM)
	if err != nil {
		log.Fatalf("llm init: %v", err)
	}
	defer cleanup()

	plannerSvc := planner.NewService(completer)

	// Optional collaborators: each degrades to a disabled feature when
	// unconfigured.
	var usageSvc *usage.Service
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatalf("db init: %v", err)
		}
		defer dbPool.Close()
		usageSvc = usage.NewService(usage.NewStore(dbPool))
	}

	var geoSvc *geocode.Service
	if cfg.Maps.APIKey != "" {
		geoSvc, err = geocode.NewService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("geocode init: %v", err)
		}
	}

	deps := httptransport.RouterDeps{
		Plan:           handlers.NewPlanHandler(plannerSvc, usageSvc, geoSvc),
		Debug:          cfg.Debug,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	}
	if cfg.Redis.Addr != "" {
		deps.Redis = infra.NewRedis(cfg.Redis.Addr)
		deps.RateLimitRequests = cfg.RateLimit.Requests
		deps.RateLimitWindow = time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
	}

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: httptransport.NewRouter(deps)}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("tripgen listening on %s (provider=%s)", cfg.HTTP.Addr, cfg.LLM.Provider)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

// newCompleter builds the configured completion provider. The returned
// cleanup is a no-op for providers without client resources.
func newCompleter(ctx context.Context, cfg config.LLMConfig) (planner.Completer, func(), error) {
	opts := llm.Options{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		Temperature: float32(cfg.Temperature),
		MaxTokens:   cfg.MaxTokens,
	}
	switch cfg.Provider {
	case "gemini":
		client, err := llm.NewGeminiClient(ctx, opts)
		if err != nil {
			return nil, nil, err
		}
		return client, client.Close, nil
	default:
		return llm.NewKimiClient(opts), func() {}, nil
	}
}
