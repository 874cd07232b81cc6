package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"github.com/Santiii02/GoalStatsPro/internal/cache"
	"github.com/Santiii02/GoalStatsPro/internal/config"
	"github.com/Santiii02/GoalStatsPro/internal/handlers"
	"github.com/Santiii02/GoalStatsPro/internal/hub"
	"github.com/Santiii02/GoalStatsPro/internal/poller"
	"github.com/Santiii02/GoalStatsPro/internal/providers/flashscore"
	"github.com/Santiii02/GoalStatsPro/internal/providers/sportsdb"
	"github.com/Santiii02/GoalStatsPro/internal/retry"
	"github.com/Santiii02/GoalStatsPro/internal/sportdata"
)

func main() {
	fmt.Println("=== GoalStats Service ===")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Select cache backend
	backend, cleanup, err := newCacheBackend(cfg)
	if err != nil {
		fmt.Printf("❌ Failed to initialize %s cache: %v\n", cfg.Cache.Backend, err)
		os.Exit(1)
	}
	defer cleanup()
	fmt.Printf("✓ Cache backend ready (%s)\n", cfg.Cache.Backend)

	// Wire the data service
	flashClient := flashscore.NewClient(
		cfg.Flashscore.BaseURL,
		cfg.Flashscore.APIKey,
		cfg.Flashscore.CountrySegment,
		cfg.Flashscore.LeagueSegment,
	)
	sdbClient := sportsdb.NewClient(cfg.SportsDB.BaseURL)
	policy := retry.NewPolicy(cfg.Retry.MaxAttempts, cfg.Retry.BaseDelay)
	store := cache.New(backend)

	data := sportdata.New(
		flashClient,
		sdbClient,
		store,
		policy,
		cfg.Flashscore.Season,
		cfg.Cache.TTLLive,
		cfg.Cache.TTLStatic,
	)
	fmt.Printf("✓ Data service ready (season %s)\n", data.Season())

	// Root context bounds the hub, poller, and client pumps
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Live feed hub and poller
	liveHub := hub.NewHub()
	go liveHub.Run(ctx)

	if cfg.PollInterval > 0 {
		p := poller.New(data, liveHub, cfg.PollInterval)
		go p.Run(ctx)
		fmt.Printf("✓ Live poller running (every %s)\n", cfg.PollInterval)
	}

	// Initialize handlers
	handler := handlers.NewHandler(data)
	wsHandler := handlers.NewWSHandler(liveHub, ctx)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Data-Outcome"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Routes
	r.Get("/health", handler.HealthCheck)
	r.Get("/ws/live", wsHandler.HandleLiveFeed)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Matches
		r.Get("/matches/live", handler.GetLiveMatches)
		r.Get("/matches/upcoming", handler.GetUpcomingMatches)

		// Standings
		r.Get("/standings", handler.GetStandings)

		// Teams
		r.Get("/teams/search", handler.SearchTeams)
		r.Get("/teams/{teamID}/players", handler.GetTeamPlayers)
		r.Get("/teams/detail/{name}", handler.GetTeamDetail)
	})

	// Start server
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	serverErrors := make(chan error, 1)
	go func() {
		fmt.Printf("✓ GoalStats service listening on %s\n", cfg.Addr)
		fmt.Println("  Endpoints:")
		fmt.Println("    GET  /health")
		fmt.Println("    GET  /api/v1/matches/live")
		fmt.Println("    GET  /api/v1/matches/upcoming")
		fmt.Println("    GET  /api/v1/standings")
		fmt.Println("    GET  /api/v1/teams/search")
		fmt.Println("    GET  /api/v1/teams/{teamID}/players")
		fmt.Println("    GET  /api/v1/teams/detail/{name}")
		fmt.Println("    GET  /ws/live")

		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		fmt.Printf("❌ Server error: %v\n", err)
		os.Exit(1)

	case sig := <-shutdown:
		fmt.Printf("\n⚠️  Received signal: %v\n", sig)

		// Stop the poller and hub first so no broadcasts race shutdown
		cancel()

		// Give outstanding requests a deadline for completion
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("⚠️  Graceful shutdown failed: %v\n", err)
			if err := srv.Close(); err != nil {
				fmt.Printf("❌ Could not stop server: %v\n", err)
			}
		}
	}

	fmt.Println("✓ Shutdown complete")
}

// newCacheBackend builds the configured cache backend. The cleanup
// function closes whatever connection the backend holds.
func newCacheBackend(cfg *config.Config) (cache.Backend, func(), error) {
	switch cfg.Cache.Backend {
	case "redis":
		opts, err := redis.ParseURL(cfg.Cache.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		client := redis.NewClient(opts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}

		return cache.NewRedisBackend(client), func() { client.Close() }, nil

	case "postgres":
		backend, err := cache.NewPostgresBackend(cfg.Cache.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}

		// Postgres has no native key expiry; sweep dead rows in the background
		stop := make(chan struct{})
		go func() {
			ticker := time.NewTicker(time.Hour)
			defer ticker.Stop()
			for {
				select {
				case <-stop:
					return
				case <-ticker.C:
					ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
					if n, err := backend.Cleanup(ctx); err != nil {
						fmt.Printf("⚠️  Cache cleanup failed: %v\n", err)
					} else if n > 0 {
						fmt.Printf("✓ Cache cleanup removed %d expired rows\n", n)
					}
					cancel()
				}
			}
		}()

		return backend, func() { close(stop); backend.Close() }, nil

	default:
		return cache.NewMemoryBackend(), func() {}, nil
	}
}
