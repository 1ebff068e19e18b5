package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cohaus/backend/internal/infrastructure/config"
	"github.com/cohaus/backend/internal/infrastructure/logger"
	"github.com/cohaus/backend/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

func main() {
	var (
		migrationsPath string
		logLevel       string
	)
	flag.StringVar(&migrationsPath, "path", defaultMigrationsPath, "Path to migrations directory")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	absPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		log.Fatal("Failed to resolve migrations path", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	migrator, err := migration.New(db, absPath, log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer func() { _ = migrator.Close() }()

	if err := run(migrator, log, command, args[1:]); err != nil {
		log.Fatal("Migration command failed", zap.Error(err))
	}
}

func run(migrator *migration.Migrator, log *zap.Logger, command string, args []string) error {
	switch command {
	case "up":
		return migrator.Up()
	case "down":
		return migrator.Down()
	case "steps":
		if len(args) < 1 {
			return fmt.Errorf("steps requires a count, e.g. migrate steps -1")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid step count %q: %w", args[0], err)
		}
		return migrator.Steps(n)
	case "version":
		version, dirty, err := migrator.Version()
		if err != nil {
			return err
		}
		log.Info("Current migration version",
			zap.Uint("version", version),
			zap.Bool("dirty", dirty),
		)
		return nil
	case "force":
		if len(args) < 1 {
			return fmt.Errorf("force requires a version, e.g. migrate force 3")
		}
		version, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[0], err)
		}
		return migrator.Force(version)
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func printUsage() {
	fmt.Println(`Usage: migrate [flags] <command>

Commands:
  up              Apply all pending migrations
  down            Roll back all migrations
  steps <n>       Apply n migrations (negative rolls back)
  version         Print the current migration version
  force <v>       Force the version without running migrations

Flags:
  -path           Path to migrations directory (default: ./migrations)
  -log-level      Log level (default: info)`)
}
