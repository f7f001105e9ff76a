package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/milistaderegalos/payouts/internal/config"
	"github.com/milistaderegalos/payouts/internal/events"
	"github.com/milistaderegalos/payouts/internal/gateway"
	"github.com/milistaderegalos/payouts/internal/handlers"
	"github.com/milistaderegalos/payouts/internal/pg"
	"github.com/milistaderegalos/payouts/internal/repo"
	"github.com/milistaderegalos/payouts/internal/service"
	"github.com/milistaderegalos/payouts/internal/service/balanceservice"
	"github.com/milistaderegalos/payouts/internal/settlement"
	"github.com/milistaderegalos/payouts/pkg/auth"
	"github.com/milistaderegalos/payouts/pkg/clients"
	"github.com/milistaderegalos/payouts/pkg/logger"
)

const eventQueueSize = 256

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg        *config.Config
	api        *handlers.Handlers
	srv        *service.Services
	repo       *repo.Repositories
	dispatcher *events.Dispatcher
	runner     *settlement.Service

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}
	auth.SetSecret(cfg.JWTSecret)

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)
	conn := pg.New(pool)

	cache := balanceservice.NewRedisCache(redis.NewClient(&redis.Options{
		Addr: cfg.Redis,
	}), cfg.BalanceCacheTTL)

	a.dispatcher = events.NewDispatcher(eventQueueSize)
	a.dispatcher.Subscribe(logEvent)
	a.dispatcher.Start(ctx)

	gw := gateway.NewClient(cfg, clients.NewHTTPClient())

	a.cfg = cfg
	a.repo = repo.New(conn)
	a.srv = service.New(a.repo, txManager, cache, gw, a.dispatcher, cfg)
	a.api = handlers.New(a.srv)
	a.runner = settlement.New(cfg, a.srv.PayoutService)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.runner.Start(ctx)

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
		a.dispatcher.Drain(context.Background())
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}

func logEvent(ctx context.Context, event events.Event) {
	zap.L().Info("event published", zap.String("event", event.Name()))
}
