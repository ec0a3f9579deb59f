package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/football-portal/external/footballdata"
	"github.com/riskibarqy/football-portal/internal/config"
	"github.com/riskibarqy/football-portal/internal/domain/league"
	"github.com/riskibarqy/football-portal/internal/domain/team"
	"github.com/riskibarqy/football-portal/internal/infrastructure/broadcast"
	cacherepo "github.com/riskibarqy/football-portal/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/football-portal/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/football-portal/internal/interfaces/httpapi"
	"github.com/riskibarqy/football-portal/internal/platform/cache"
	"github.com/riskibarqy/football-portal/internal/platform/database"
	"github.com/riskibarqy/football-portal/internal/platform/id"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
	"github.com/riskibarqy/football-portal/internal/usecase"
)

// App is the wired API process: the HTTP server plus the background loops
// that keep the upstream cache healthy.
type App struct {
	Server *http.Server

	cfg         config.Config
	gateway     *database.Gateway
	football    *footballdata.Client
	maintenance *usecase.CacheMaintenanceService
	logger      *logging.Logger
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	gateway := database.NewGateway(cfg.DatabaseConfig(), logger.Named("database"))
	if err := gateway.Open(ctx); err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	created, err := postgres.BootstrapAdmin(ctx, gateway, postgres.AdminSeed{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	})
	if err != nil {
		_ = gateway.Close()
		return nil, err
	}
	if created {
		logger.InfoContext(ctx, "seed admin created", "email", cfg.AdminEmail)
	}

	a := &App{cfg: cfg, gateway: gateway, logger: logger}
	if err := a.wire(); err != nil {
		_ = gateway.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) wire() error {
	cfg, logger := a.cfg, a.logger

	articles := postgres.NewArticleRepository(a.gateway)
	categories := postgres.NewCategoryRepository(a.gateway)
	players := postgres.NewPlayerRepository(a.gateway)
	matches := postgres.NewMatchRepository(a.gateway)
	users := postgres.NewUserRepository(a.gateway)
	apiCache := postgres.NewAPICacheRepository(a.gateway)

	var (
		leagues  league.Repository = postgres.NewLeagueRepository(a.gateway)
		teams    team.Repository   = postgres.NewTeamRepository(a.gateway)
		hotCache *cache.Store
	)
	if cfg.CacheEnabled {
		hotCache = cache.NewStore(cfg.CacheTTL)
		leagues = cacherepo.NewLeagueRepository(leagues, hotCache)
		teams = cacherepo.NewTeamRepository(teams, hotCache)
	}
	sessions := cache.NewStore(cfg.SessionTTL)

	var (
		football    usecase.FootballData
		fixtureFeed usecase.FixtureSource
		sweeper     usecase.APICacheSweeper = apiCacheSweeper{store: apiCache}
	)
	if cfg.FootballAPIEnabled {
		client, err := footballdata.NewClient(footballdata.ClientConfig{
			BaseURL:        cfg.FootballAPIBaseURL,
			APIKey:         cfg.FootballAPIKey,
			KeyHeader:      cfg.FootballAPIKeyHeader,
			Timeout:        cfg.FootballAPITimeout,
			MaxRetries:     cfg.FootballAPIMaxRetries,
			TTL:            cfg.FootballAPITTL,
			CircuitBreaker: cfg.FootballAPICircuit,
			Logger:         logger,
		}, apiCache)
		if err != nil {
			return fmt.Errorf("build football data client: %w", err)
		}
		a.football = client
		football, fixtureFeed, sweeper = client, client, client
	}

	publisher, err := newPublisher(cfg, logger)
	if err != nil {
		return err
	}

	validate := usecase.NewValidator()
	publicSvc := usecase.NewPublicService(usecase.PublicRepositories{
		Articles:   articles,
		Categories: categories,
		Leagues:    leagues,
		Teams:      teams,
		Players:    players,
		Matches:    matches,
	}, football, hotCache, logger.Named("public"))
	authSvc := usecase.NewAuthService(users, sessions, id.NewUUIDGenerator(), cfg.SessionTTL, validate, logger.Named("auth"))

	adminLogger := logger.Named("admin")
	admin := httpapi.AdminServices{
		Articles:   usecase.NewArticleAdminService(articles, publisher, validate, adminLogger),
		Categories: usecase.NewCategoryAdminService(categories, publicSvc, validate, adminLogger),
		Leagues:    usecase.NewLeagueAdminService(leagues, validate, adminLogger),
		Teams:      usecase.NewTeamAdminService(teams, validate, adminLogger),
		Players:    usecase.NewPlayerAdminService(players, validate, adminLogger),
		Matches:    usecase.NewMatchAdminService(matches, publisher, validate, adminLogger),
		Users:      usecase.NewUserAdminService(users, validate, adminLogger),
	}
	syncSvc := usecase.NewMatchSyncService(fixtureFeed, postgres.NewMatchImporter(a.gateway), publisher, validate, logger.Named("sync"))
	a.maintenance = usecase.NewCacheMaintenanceService(sweeper, logger.Named("maintenance"), hotCache, sessions)

	handler := httpapi.NewHandler(publicSvc, authSvc, admin, syncSvc, a.maintenance, logger)
	router := httpapi.NewRouter(handler, authSvc, logger, httpapi.RouterConfig{
		ServiceName:        cfg.ServiceName,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return nil
}

func newPublisher(cfg config.Config, logger *logging.Logger) (usecase.Publisher, error) {
	if !cfg.RelayEnabled {
		return broadcast.NopPublisher{}, nil
	}
	publisher, err := broadcast.NewRelayPublisher(broadcast.RelayPublisherConfig{
		PublishURL:     cfg.RelayPublishURL,
		Token:          cfg.RelayPublishToken,
		Timeout:        cfg.RelayTimeout,
		CircuitBreaker: cfg.RelayCircuit,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("build relay publisher: %w", err)
	}
	return publisher, nil
}

// RunBackground starts the periodic cache sweep and the upstream warm-up.
// Both stop when ctx is done.
func (a *App) RunBackground(ctx context.Context) {
	go a.maintenance.Run(ctx, a.cfg.CacheSweepInterval)

	if a.football == nil || len(a.cfg.FootballAPIWarmTargets) == 0 {
		return
	}
	go func() {
		report, err := a.football.Warm(ctx, a.cfg.FootballAPIWarmTargets, a.cfg.FootballAPIWarmWorkers)
		if err != nil {
			a.logger.WarnContext(ctx, "football data warm-up failed", "error", err)
			return
		}
		a.logger.InfoContext(ctx, "football data warmed", "requests", report.Requests, "failed", report.Failed)
	}()
}

func (a *App) Close() error {
	return a.gateway.Close()
}

// apiCacheSweeper expires stored upstream responses when the provider
// client itself is disabled.
type apiCacheSweeper struct {
	store footballdata.CacheStore
}

func (s apiCacheSweeper) Sweep(ctx context.Context) (int64, error) {
	return s.store.Sweep(ctx, time.Now())
}
