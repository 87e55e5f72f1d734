package database_client

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/init-pkg/sheet-loader/internal/config"
	"github.com/init-pkg/sheet-loader/internal/errs"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Registry resolves logical database names to lazily opened gorm pools.
type Registry struct {
	databases   map[string]config.DatabaseConfig
	defaultName string
	log         *slog.Logger
	gormLogger  logger.Interface

	mu    sync.Mutex
	conns map[string]*gorm.DB
}

func New(cfg *config.Config, log *slog.Logger) *Registry {
	level := logger.Silent
	if cfg.Log.Level == "debug" {
		level = logger.Info
	}

	return &Registry{
		databases:   cfg.Databases,
		defaultName: cfg.DefaultDatabase,
		log:         log,
		gormLogger: logger.New(slogWriter{log}, logger.Config{
			SlowThreshold:             2 * time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
		conns: make(map[string]*gorm.DB),
	}
}

// Resolve maps a logical name to a configured database. Empty and unknown
// names fall back to the default database.
func (this *Registry) Resolve(name string) (string, config.DatabaseConfig, error) {
	const op = "database.resolve"

	if name != "" {
		if db, ok := this.databases[name]; ok {
			return name, db, nil
		}
	}
	if this.defaultName == "" {
		msg := "no connection configured for database " + name
		if name == "" {
			msg = "no database given and no default_database configured"
		}
		return "", config.DatabaseConfig{}, errs.New(errs.KindConfiguration, op, msg)
	}
	db, ok := this.databases[this.defaultName]
	if !ok {
		return "", config.DatabaseConfig{}, errs.New(errs.KindConfiguration, op, "default database "+this.defaultName+" is not configured")
	}
	if name != "" {
		this.log.Warn("unknown database, using default", "database", name, "default", this.defaultName)
	}
	return this.defaultName, db, nil
}

// DB returns the pool for the logical database name, opening and pinging it
// on first use.
func (this *Registry) DB(ctx context.Context, name string) (*gorm.DB, string, error) {
	const op = "database.connect"

	resolved, dbCfg, err := this.Resolve(name)
	if err != nil {
		return nil, "", err
	}

	this.mu.Lock()
	defer this.mu.Unlock()

	if db, ok := this.conns[resolved]; ok {
		return db.WithContext(ctx), resolved, nil
	}

	dialector, err := Dialector(dbCfg)
	if err != nil {
		return nil, "", err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 this.gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, "", errs.Wrap(errs.KindConnection, op, err, "cannot open database "+resolved)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, "", errs.Wrap(errs.KindConnection, op, err, "cannot open database "+resolved)
	}
	if dbCfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(dbCfg.MaxOpenConns)
	}
	if dbCfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(dbCfg.MaxIdleConns)
	}
	if dbCfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, "", errs.Wrap(errs.KindConnection, op, err, "cannot reach database "+resolved)
	}

	this.log.Info("database connected", "database", resolved, "driver", dbCfg.Driver)
	this.conns[resolved] = db
	return db.WithContext(ctx), resolved, nil
}

func (this *Registry) Close() error {
	this.mu.Lock()
	defer this.mu.Unlock()

	var firstErr error
	for name, db := range this.conns {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Close()
		}
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close database %s: %w", name, err)
		}
		delete(this.conns, name)
	}
	return firstErr
}

func Dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverPostgres, "postgresql", "pgx":
		return postgres.Open(cfg.DSN), nil
	case DriverMySQL:
		return mysql.Open(cfg.DSN), nil
	case DriverSQLite, "sqlite3":
		return sqlite.Open(cfg.DSN), nil
	}
	return nil, errs.New(errs.KindConfiguration, "database.dialector", "unsupported driver "+cfg.Driver)
}

type slogWriter struct {
	log *slog.Logger
}

func (w slogWriter) Printf(format string, args ...interface{}) {
	w.log.Info(fmt.Sprintf(format, args...), "component", "gorm")
}
