package app

import (
	"casino_engine/internal/config"
	"casino_engine/internal/repository/migrate"
	"casino_engine/internal/repository/migrations"
	"casino_engine/pkg/token"
	"context"
	"errors"
	"net/http"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 15 * time.Second
)

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	// .env необязателен, переменные могут прийти из окружения
	envErr := config.Load(".env")
	s.ServiceProvider = newServiceProvider()
	if envErr != nil {
		s.ServiceProvider.Logger().WithError(envErr).Debug("no .env loaded")
	}
}

// Run поднимает HTTP-сервер и ждёт отмены ctx. При остановке живые сессии рассчитываются
func (s *App) Run(ctx context.Context) error {
	s.initServiceProvider()
	sp := s.ServiceProvider
	log := sp.Logger()

	srv := &http.Server{
		Addr:              sp.HTTPCfg().Address(),
		Handler:           sp.Router(ctx),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("addr", srv.Addr).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info("shutting down")
		err := srv.Shutdown(shutdownCtx)
		sp.SessionService(ctx).Shutdown(shutdownCtx)
		return errors.Join(err, sp.Close())
	})
	return g.Wait()
}

// Migrate применяет встроенные миграции выбранного хранилища
func (s *App) Migrate(ctx context.Context) ([]string, error) {
	s.initServiceProvider()
	sp := s.ServiceProvider
	defer sp.Close()

	if sp.usesSQLite() {
		// sqlite.Open применяет миграции сам
		sp.SQLiteStore(ctx)
		return nil, nil
	}

	db := stdlib.OpenDBFromPool(sp.DBClient(ctx))
	defer db.Close()
	return migrate.Apply(ctx, db, migrations.Postgres(), sq.Dollar)
}

// Token выпускает токен диспетчера для счёта
func (s *App) Token(accountID int64, name string, ttl time.Duration) (string, error) {
	s.initServiceProvider()
	cfg := s.ServiceProvider.JWTCfg()
	if ttl <= 0 {
		ttl = cfg.AccessTokenDuration()
	}
	return token.GenerateAccessToken(accountID, name, cfg.AccessTokenSecretKey(), ttl)
}
