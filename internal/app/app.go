// Package app assembles the service from its parts: storage, caching,
// the portrait directory client, the auction services and the HTTP
// router, all driven by config.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/stumpline/cricket-auction/external/portraits"
	"github.com/stumpline/cricket-auction/internal/config"
	"github.com/stumpline/cricket-auction/internal/domain/auction"
	"github.com/stumpline/cricket-auction/internal/domain/player"
	"github.com/stumpline/cricket-auction/internal/domain/team"
	cachedrepo "github.com/stumpline/cricket-auction/internal/infrastructure/repository/cache"
	"github.com/stumpline/cricket-auction/internal/infrastructure/repository/memory"
	"github.com/stumpline/cricket-auction/internal/infrastructure/repository/postgres"
	"github.com/stumpline/cricket-auction/internal/interfaces/httpapi"
	basecache "github.com/stumpline/cricket-auction/internal/platform/cache"
	idgen "github.com/stumpline/cricket-auction/internal/platform/id"
	"github.com/stumpline/cricket-auction/internal/platform/logging"
	"github.com/stumpline/cricket-auction/internal/platform/resilience"
	"github.com/stumpline/cricket-auction/internal/usecase"
)

// NewHTTPServer builds the API server. The returned cleanup closes the
// database handle (a no-op for the memory driver) and must run after
// the server has shut down.
func NewHTTPServer(
	ctx context.Context,
	cfg config.Config,
	logger *logging.Logger,
	accessLogger *slog.Logger,
) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	playerRepo, teamRepo, ledger, cleanup, err := buildStorage(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		playerRepo = cachedrepo.NewPlayerRepository(playerRepo, store)
		teamRepo = cachedrepo.NewTeamRepository(teamRepo, store)
		ledger = cachedrepo.NewLedger(ledger, store)
		logger.Info("repository cache enabled", "ttl", cfg.CacheTTL)
	}

	gen := idgen.NewRandomGenerator()

	auctionSvc := usecase.NewAuctionService(playerRepo, teamRepo, ledger, gen, logger)
	if err := auctionSvc.Load(ctx); err != nil {
		_ = cleanup()
		return nil, nil, fmt.Errorf("load auction state: %w", err)
	}

	playerSvc := usecase.NewPlayerService(playerRepo, auctionSvc, gen)
	teamSvc := usecase.NewTeamService(teamRepo, playerRepo, auctionSvc, gen)

	var lookup usecase.PortraitLookup
	if cfg.PortraitsEnabled {
		lookup = portraits.NewClient(portraits.ClientConfig{
			BaseURL:    cfg.PortraitsBaseURL,
			Token:      cfg.PortraitsToken,
			Timeout:    cfg.PortraitsTimeout,
			MaxRetries: cfg.PortraitsMaxRetries,
			BatchSize:  cfg.PortraitsBatchSize,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.PortraitsCircuitEnabled,
				FailureThreshold: cfg.PortraitsCircuitFailureCount,
				OpenTimeout:      cfg.PortraitsCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.PortraitsCircuitHalfOpenMaxReq,
			},
		})
		logger.Info("portrait directory enabled", "base_url", cfg.PortraitsBaseURL)
	}

	rosterSvc := usecase.NewRosterSheetService(auctionSvc, playerSvc, lookup, logger)

	handler := httpapi.NewHandler(auctionSvc, playerSvc, teamSvc, rosterSvc, lookup, logger)
	router := httpapi.NewRouter(handler, accessLogger, cfg.CORSAllowedOrigins, cfg.AdminToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func buildStorage(cfg config.Config, logger *logging.Logger) (
	player.Repository,
	team.Repository,
	auction.Ledger,
	func() error,
	error,
) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		players := memory.NewPlayerRepository(memory.SeedPlayers())
		teams := memory.NewTeamRepository(memory.SeedTeams())
		ledger := memory.NewLedger(players, teams)
		logger.Info("storage driver selected", "driver", config.StorageMemory)
		return players, teams, ledger, func() error { return nil }, nil

	case config.StoragePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		logger.Info("storage driver selected",
			"driver", config.StoragePostgres,
			"database", dbNameFromURL(cfg.DBURL),
		)
		return postgres.NewPlayerRepository(db),
			postgres.NewTeamRepository(db),
			postgres.NewLedger(db),
			db.Close,
			nil

	default:
		return nil, nil, nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}
