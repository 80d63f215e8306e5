// Package app wires configuration to the process-level dependencies shared
// by the binaries under cmd/.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/madar-hris/hrms-backend-go/internal/config"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/database"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/storage"
	"github.com/madar-hris/hrms-backend-go/internal/repository/postgresql"
)

// OpenBlobStore returns the backend selected by STORAGE_TYPE and a func
// releasing it.
func OpenBlobStore(ctx context.Context, cfg *config.Config) (storage.BlobStore, func(), error) {
	switch cfg.Storage.Type {
	case config.StorageLocal:
		local, err := storage.NewLocalStorage(cfg.Storage.BasePath)
		if err != nil {
			return nil, nil, fmt.Errorf("local storage: %w", err)
		}
		return local, func() {}, nil

	case config.StorageMemory:
		slog.Warn("Using in-memory storage, data is lost on exit")
		return storage.NewMemoryStorage(), func() {}, nil

	case config.StoragePostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), cfg.Database.MaxConns)
		if err != nil {
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}
		repo := postgresql.NewStateRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return repo, db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported storage type %q", cfg.Storage.Type)
	}
}

// ParseLevel maps LOG_LEVEL to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetupLogger installs the JSON default logger used outside request scope.
func SetupLogger(cfg *config.Config) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: ParseLevel(cfg.App.LogLevel),
	})).With(slog.String("env", cfg.App.Env))
	slog.SetDefault(logger)
}
