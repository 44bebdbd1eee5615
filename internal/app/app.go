package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/leaguedesk/standings-api/external/apifootball"
	"github.com/leaguedesk/standings-api/internal/config"
	"github.com/leaguedesk/standings-api/internal/domain/league"
	"github.com/leaguedesk/standings-api/internal/domain/standings"
	"github.com/leaguedesk/standings-api/internal/infrastructure/jobqueue"
	cacherepo "github.com/leaguedesk/standings-api/internal/infrastructure/repository/cache"
	"github.com/leaguedesk/standings-api/internal/infrastructure/repository/memory"
	"github.com/leaguedesk/standings-api/internal/infrastructure/repository/postgres"
	"github.com/leaguedesk/standings-api/internal/interfaces/httpapi"
	basecache "github.com/leaguedesk/standings-api/internal/platform/cache"
	idgen "github.com/leaguedesk/standings-api/internal/platform/id"
	"github.com/leaguedesk/standings-api/internal/platform/logging"
	"github.com/leaguedesk/standings-api/internal/platform/resilience"
	"github.com/leaguedesk/standings-api/internal/usecase"
)

// App holds the wired service graph for one process.
type App struct {
	Server    *http.Server
	Scheduler *usecase.RefreshScheduler

	db *sqlx.DB
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		db           *sqlx.DB
		leagueRepo   league.Repository
		standingRepo standings.Repository
	)
	if cfg.DBURL != "" {
		opened, err := openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		db = opened
		leagueRepo = postgres.NewLeagueRepository(db)
		standingRepo = postgres.NewStandingRepository(db)
		logger.Info("using postgres repositories", "db_name", dbNameFromURL(cfg.DBURL))
	} else {
		leagueRepo = memory.NewLeagueRepository(memory.SeedLeagues())
		standingRepo = memory.NewStandingRepository(memory.SeedStandings())
		logger.Info("using in-memory repositories", "reason", "DB_URL empty")
	}

	var invalidator usecase.CacheInvalidator
	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		leagueRepo = cacherepo.NewLeagueRepository(leagueRepo, store)
		standingRepo = cacherepo.NewStandingRepository(standingRepo, store)
		invalidator = cacherepo.NewInvalidator(store)
		logger.Info("repository cache enabled", "ttl", cfg.CacheTTL.String())
	}

	leagueSvc := usecase.NewLeagueService(leagueRepo)
	standingsSvc := usecase.NewStandingsService(leagueRepo, standingRepo)

	var refreshSvc *usecase.RefreshService
	if cfg.ProviderEnabled {
		provider := apifootball.NewClient(apifootball.ClientConfig{
			BaseURL:    cfg.ProviderBaseURL,
			APIKey:     cfg.ProviderAPIKey,
			Timeout:    cfg.ProviderTimeout,
			MaxRetries: cfg.ProviderMaxRetries,
			Logger:     logging.Default(),
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.ProviderCircuitEnabled,
				FailureThreshold: cfg.ProviderCircuitFailureCount,
				OpenTimeout:      cfg.ProviderCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.ProviderCircuitHalfOpenMaxReq,
			},
		})
		refreshSvc = usecase.NewRefreshService(
			usecase.RefreshConfig{
				Enabled:    true,
				MaxWorkers: cfg.RefreshMaxWorkers,
			},
			provider,
			leagueRepo,
			standingRepo,
			invalidator,
			idgen.NewRandomGenerator(),
		)
	} else {
		logger.Info("standings provider disabled", "reason", "PROVIDER_ENABLED=false")
	}

	var publisher usecase.JobPublisher
	if cfg.QueueEnabled {
		publisher = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QueueBaseURL,
			Token:            cfg.QueueToken,
			TargetBaseURL:    cfg.QueueTargetBaseURL,
			Retries:          cfg.QueueRetries,
			InternalJobToken: cfg.InternalJobToken,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.QueueCircuitEnabled,
				FailureThreshold: cfg.QueueCircuitFailureCount,
				OpenTimeout:      cfg.QueueCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.QueueCircuitHalfOpenMaxReq,
			},
		}, logging.Default())
	}

	scheduler := usecase.NewRefreshScheduler(
		usecase.SchedulerConfig{
			Enabled:  cfg.ProviderEnabled && cfg.RefreshInterval > 0,
			Interval: cfg.RefreshInterval,
		},
		refreshSvc,
		publisher,
		logging.Default(),
	)

	handler := httpapi.NewHandler(leagueSvc, standingsSvc, refreshSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server:    server,
		Scheduler: scheduler,
		db:        db,
	}, nil
}

// Close releases resources that outlive the HTTP server.
func (a *App) Close() error {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
