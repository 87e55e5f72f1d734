package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/init-pkg/sheet-loader/internal/app/audit/migrations"
	"github.com/init-pkg/sheet-loader/internal/bootstrap"
	"github.com/init-pkg/sheet-loader/internal/config"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

type gooseLogger struct {
	log *slog.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info(fmt.Sprintf(format, v...), "component", "goose")
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Error(fmt.Sprintf(format, v...), "component", "goose")
	os.Exit(1)
}

// Usage: migrate [-database name] [up|down|status|version|redo|reset] [args]
func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	var (
		cfg = config.MustLoad()
		log = bootstrap.NewLogger(cfg)
	)

	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	database := fs.String("database", "", "logical database to migrate (defaults to audit.database, then default_database)")
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	command := "up"
	args := fs.Args()
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	name := *database
	if name == "" {
		name = cfg.Audit.Database
	}
	if name == "" {
		name = cfg.DefaultDatabase
	}
	dbCfg, ok := cfg.Databases[name]
	if !ok {
		log.Error("unknown database", "database", name)
		return 1
	}
	switch dbCfg.Driver {
	case "postgres", "postgresql", "pgx":
	default:
		log.Error("audit migrations only support postgres", "database", name, "driver", dbCfg.Driver)
		return 1
	}

	db, err := sql.Open("postgres", dbCfg.DSN)
	if err != nil {
		log.Error("cannot open database", "database", name, "error", err)
		return 1
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(gooseLogger{log})
	if err := goose.SetDialect("postgres"); err != nil {
		log.Error("goose dialect", "error", err)
		return 1
	}

	if err := goose.RunContext(context.Background(), command, db, ".", args...); err != nil {
		log.Error("migration failed", "command", command, "database", name, "error", err)
		return 1
	}
	log.Info("migration finished", "command", command, "database", name)
	return 0
}
