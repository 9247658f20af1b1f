package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/foxseedlab/edittime/internal/config"
	"github.com/foxseedlab/edittime/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (repository.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return openPostgresRepository(cfg.DatabaseURL, cfg.DatabaseInitTimeout())
	})
}

// openPostgresRepository connects, checks the connection and brings the
// report tables up to date before any report is saved.
func openPostgresRepository(databaseURL string, initTimeout time.Duration) (repository.Repository, error) {
	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	p, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect report database: %w", err)
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to ping report database: %w", err)
	}
	slog.Info("startup: migrating report tables", "statements", len(migrationStatements), "timeout", initTimeout)
	if err := RunMigration(ctx, p); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to migrate report tables: %w", err)
	}
	slog.Info("startup: report database ready")
	return NewPostgresRepository(p), nil
}
