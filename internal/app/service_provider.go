package app

import (
	"casino_engine/internal/api"
	"casino_engine/internal/config"
	"casino_engine/internal/config/env"
	"casino_engine/internal/events"
	"casino_engine/internal/game/rng"
	"casino_engine/internal/logger"
	"casino_engine/internal/repository"
	"casino_engine/internal/repository/account_repo"
	"casino_engine/internal/repository/achievement_repo"
	"casino_engine/internal/repository/outcome_repo"
	"casino_engine/internal/repository/rtp_repo"
	"casino_engine/internal/repository/sqlite"
	"casino_engine/internal/repository/transaction_repo"
	"casino_engine/internal/service"
	"casino_engine/internal/service/achievement"
	"casino_engine/internal/service/bet"
	"casino_engine/internal/service/game"
	"casino_engine/internal/service/ledger"
	"casino_engine/internal/service/session"
	"context"
	"errors"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

type ServiceProvider struct {
	// Configs
	logCfg     config.LogConfig
	httpCfg    config.HTTPConfig
	pgConfig   config.PGConfig
	storageCfg config.StorageConfig
	jwtCfg     config.JWTConfig
	amqpCfg    config.AMQPConfig
	economyCfg config.EconomyConfig

	log *logrus.Logger

	// Storage
	dbClient    *pgxpool.Pool
	sqliteStore *sqlite.Store
	txManager   trm.Manager

	accountRepo     repository.AccountRepository
	transactionRepo repository.TransactionRepository
	outcomeRepo     repository.OutcomeRepository
	achievementRepo repository.AchievementRepository
	rtpRepo         repository.RTPRepository

	publisher events.Publisher

	// Services
	ledgerServ      service.LedgerService
	betServ         service.BetService
	achievementServ service.AchievementService
	gameServ        service.GameService
	sessionServ     service.SessionService

	router chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		sp.logCfg = env.NewLogConfig()
	}
	return sp.logCfg
}

func (sp *ServiceProvider) Logger() *logrus.Logger {
	if sp.log == nil {
		sp.log = logger.New(sp.LogCfg().Level())
	}
	return sp.log
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}
	return sp.httpCfg
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) StorageCfg() config.StorageConfig {
	if sp.storageCfg == nil {
		cfg, err := env.NewStorageConfig()
		if err != nil {
			panic("failed to get storage config: " + err.Error())
		}
		sp.storageCfg = cfg
	}
	return sp.storageCfg
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) AMQPCfg() config.AMQPConfig {
	if sp.amqpCfg == nil {
		cfg, err := env.NewAMQPConfig()
		if err != nil {
			panic("failed to get amqp config: " + err.Error())
		}
		sp.amqpCfg = cfg
	}
	return sp.amqpCfg
}

func (sp *ServiceProvider) EconomyCfg() config.EconomyConfig {
	if sp.economyCfg == nil {
		cfg, err := env.NewEconomyConfigFromYAML("config.yaml")
		if err != nil {
			panic("failed to get economy config: " + err.Error())
		}
		sp.economyCfg = cfg
	}
	return sp.economyCfg
}

func (sp *ServiceProvider) usesSQLite() bool {
	return sp.StorageCfg().Driver() == env.DriverSQLite
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		poolCfg, err := pgxpool.ParseConfig(sp.PgConfig().DSN())
		if err != nil {
			panic("failed to parse pg dsn: " + err.Error())
		}
		poolCfg.MaxConns = sp.PgConfig().MaxConns()

		dbc, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

// SQLiteStore открывает файл БД и применяет миграции
func (sp *ServiceProvider) SQLiteStore(ctx context.Context) *sqlite.Store {
	if sp.sqliteStore == nil {
		store, err := sqlite.Open(ctx, sp.StorageCfg().SQLitePath())
		if err != nil {
			panic("failed to open sqlite store: " + err.Error())
		}
		sp.sqliteStore = store
	}
	return sp.sqliteStore
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		if sp.usesSQLite() {
			sp.txManager = sp.SQLiteStore(ctx).TxManager()
			return sp.txManager
		}

		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}
		sp.txManager = m
	}
	return sp.txManager
}

func (sp *ServiceProvider) AccountRepo(ctx context.Context) repository.AccountRepository {
	if sp.accountRepo == nil {
		if sp.usesSQLite() {
			sp.accountRepo = sp.SQLiteStore(ctx).Accounts()
		} else {
			sp.accountRepo = account_repo.NewAccountRepository(sp.DBClient(ctx))
		}
	}
	return sp.accountRepo
}

func (sp *ServiceProvider) TransactionRepo(ctx context.Context) repository.TransactionRepository {
	if sp.transactionRepo == nil {
		if sp.usesSQLite() {
			sp.transactionRepo = sp.SQLiteStore(ctx).Transactions()
		} else {
			sp.transactionRepo = transaction_repo.NewTransactionRepository(sp.DBClient(ctx))
		}
	}
	return sp.transactionRepo
}

func (sp *ServiceProvider) OutcomeRepo(ctx context.Context) repository.OutcomeRepository {
	if sp.outcomeRepo == nil {
		if sp.usesSQLite() {
			sp.outcomeRepo = sp.SQLiteStore(ctx).Outcomes()
		} else {
			sp.outcomeRepo = outcome_repo.NewOutcomeRepository(sp.DBClient(ctx))
		}
	}
	return sp.outcomeRepo
}

func (sp *ServiceProvider) AchievementRepo(ctx context.Context) repository.AchievementRepository {
	if sp.achievementRepo == nil {
		if sp.usesSQLite() {
			sp.achievementRepo = sp.SQLiteStore(ctx).Achievements()
		} else {
			sp.achievementRepo = achievement_repo.NewAchievementRepository(sp.DBClient(ctx))
		}
	}
	return sp.achievementRepo
}

func (sp *ServiceProvider) RTPRepo() repository.RTPRepository {
	if sp.rtpRepo == nil {
		sp.rtpRepo = rtp_repo.NewRTPRepository(rtp_repo.DefaultWindowSize)
	}
	return sp.rtpRepo
}

// Publisher - AMQP, если задан AMQP_URL, иначе события никуда не уходят
func (sp *ServiceProvider) Publisher() events.Publisher {
	if sp.publisher == nil {
		cfg := sp.AMQPCfg()
		if cfg.URL() == "" {
			sp.publisher = events.Nop()
			return sp.publisher
		}
		p, err := events.NewAMQPPublisher(cfg.URL(), cfg.Exchange())
		if err != nil {
			panic("failed to connect to amqp: " + err.Error())
		}
		sp.publisher = p
	}
	return sp.publisher
}

func (sp *ServiceProvider) LedgerService(ctx context.Context) service.LedgerService {
	if sp.ledgerServ == nil {
		sp.ledgerServ = ledger.NewLedgerService(
			sp.AccountRepo(ctx),
			sp.TransactionRepo(ctx),
			sp.OutcomeRepo(ctx),
			sp.TXManager(ctx),
			sp.Logger(),
			sp.EconomyCfg().StartingBalance(),
		)
	}
	return sp.ledgerServ
}

func (sp *ServiceProvider) AchievementService(ctx context.Context) service.AchievementService {
	if sp.achievementServ == nil {
		sp.achievementServ = achievement.NewAchievementService(sp.LedgerService(ctx), sp.AchievementRepo(ctx), sp.Publisher(), sp.Logger())
	}
	return sp.achievementServ
}

func (sp *ServiceProvider) BetService(ctx context.Context) service.BetService {
	if sp.betServ == nil {
		sp.betServ = bet.NewBetService(
			sp.LedgerService(ctx),
			sp.AchievementService(ctx),
			sp.RTPRepo(),
			sp.Publisher(),
			sp.EconomyCfg(),
			sp.Logger(),
		)
	}
	return sp.betServ
}

func (sp *ServiceProvider) GameService(ctx context.Context) service.GameService {
	if sp.gameServ == nil {
		sp.gameServ = game.NewGameService(sp.BetService(ctx), rng.Default(), sp.Logger())
	}
	return sp.gameServ
}

func (sp *ServiceProvider) SessionService(ctx context.Context) service.SessionService {
	if sp.sessionServ == nil {
		sp.sessionServ = session.NewSessionService(
			sp.BetService(ctx),
			session.NewFactory(rng.Default()),
			sp.Publisher(),
			sp.Logger(),
			sp.EconomyCfg().SessionTimeout(),
		)
	}
	return sp.sessionServ
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		sp.router = api.NewRouter(api.RouterDeps{
			Ledger:       sp.LedgerService(ctx),
			Bets:         sp.BetService(ctx),
			Achievements: sp.AchievementService(ctx),
			Games:        sp.GameService(ctx),
			Sessions:     sp.SessionService(ctx),
			RTP:          sp.RTPRepo(),
			SecretKey:    sp.JWTCfg().AccessTokenSecretKey(),
			HistoryLimit: sp.EconomyCfg().HistoryLimit(),
			Log:          sp.Logger(),
		})
	}
	return sp.router
}

// Close освобождает соединения, которые успели открыться
func (sp *ServiceProvider) Close() error {
	var errs []error
	if sp.publisher != nil {
		errs = append(errs, sp.publisher.Close())
	}
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
	if sp.sqliteStore != nil {
		errs = append(errs, sp.sqliteStore.Close())
	}
	return errors.Join(errs...)
}
