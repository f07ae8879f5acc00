// Package daemon opens the database, prepares the session storage and
// builds the web service.
package daemon

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/config"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/db/dsn"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/db/models"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/logger/adapter/stdlogger"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/web"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/web/session"
)

const sessionTable = "sessions"

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	webService *web.Service
}

// Start starts the Daemon's web service and blocks until it stops.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(":" + strconv.Itoa(d.cfg.Webserver.Port))
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	if err = db.AutoMigrate(
		&models.User{},
		&models.Preference{},
	); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	if err = seed(cfg, db); err != nil {
		return nil, err
	}

	storage, err := sessionStorage(cfg)
	if err != nil {
		return nil, err
	}

	session.Init(storage)

	return &Daemon{
		cfg:        cfg,
		db:         db,
		webService: web.New(cfg, db),
	}, nil
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dsn.Dialector(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := gormlogger.Warn
	if cfg.DevMode {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(stdlogger.New("gorm"), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect %s database", cfg.DB.GormEngine)
	}

	return db, nil
}

// sessionStorage keeps sessions next to the users table. SQLite setups
// keep them in memory.
func sessionStorage(cfg *config.Config) (fiber.Storage, error) {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         sessionTable,
		}), nil
	case config.EnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.PostgresURI(cfg),
			Table:         sessionTable,
		}), nil
	case config.EngineSQLite:
		log.Warn().Msg("sqlite engine: sessions are kept in memory")

		return nil, nil
	default:
		return nil, errors.Wrap(dsn.ErrUnknownEngine, cfg.DB.GormEngine)
	}
}
