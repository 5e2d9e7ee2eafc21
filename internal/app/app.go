// Package app wires configuration, storage and services into a running
// ledger core. The chat-platform layer is injected through Capabilities;
// the core itself never speaks to a chat platform directly.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/vouchd/internal/adapter/postgres"
	accountrepo "github.com/heartmarshall/vouchd/internal/adapter/postgres/account"
	approvalrepo "github.com/heartmarshall/vouchd/internal/adapter/postgres/approval"
	attestationrepo "github.com/heartmarshall/vouchd/internal/adapter/postgres/attestation"
	cooldownrepo "github.com/heartmarshall/vouchd/internal/adapter/postgres/cooldown"
	"github.com/heartmarshall/vouchd/internal/config"
	"github.com/heartmarshall/vouchd/internal/label"
	"github.com/heartmarshall/vouchd/internal/platform"
	"github.com/heartmarshall/vouchd/internal/ratelimit"
	"github.com/heartmarshall/vouchd/internal/service/approval"
	"github.com/heartmarshall/vouchd/internal/service/ledger"
	"github.com/heartmarshall/vouchd/internal/service/reconcile"
	"github.com/heartmarshall/vouchd/internal/service/verify"
	"github.com/heartmarshall/vouchd/migrations"
)

// Capabilities are the chat-platform callbacks the ledger core consumes.
// An embedding bot provides real implementations; platform.Headless serves
// for maintenance binaries that run without a frontend.
type Capabilities struct {
	Renamer  platform.Renamer
	Notifier platform.Notifier
	Roles    platform.RoleResolver
}

// App is a fully wired ledger core. The embedding chat layer calls the
// exposed services from its command and reaction handlers.
type App struct {
	Ledger    *ledger.Service
	Reconcile *reconcile.Service
	Verify    *verify.Service
	Approvals *approval.Service

	pool *pgxpool.Pool
	log  *slog.Logger
}

// New connects to the database, applies pending migrations, and wires the
// repositories and services together.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger, caps Capabilities) (*App, error) {
	if err := postgres.Migrate(ctx, cfg.Database.DSN, migrations.FS); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	txm := postgres.NewTxManager(pool)
	accounts := accountrepo.New(pool)
	attestations := attestationrepo.New(pool)
	cooldowns := cooldownrepo.New(pool)
	approvals := approvalrepo.New(pool)

	limiter := ratelimit.New(cooldowns, cfg.Ledger)
	labels := label.NewRenderer(cfg.Ledger.LabelMaxLen)

	ledgerSvc := ledger.NewService(log, accounts, attestations, cooldowns, limiter, caps.Renamer, txm, labels)
	reconcileSvc := reconcile.NewService(log, accounts, attestations, cfg.Verify.ReconcileConcurrency)
	verifySvc := verify.NewService(log, accounts, attestations, approvals, caps.Renamer, caps.Roles, caps.Notifier, cfg.Verify)
	approvalSvc := approval.NewService(log, approvals, ledgerSvc, cfg.Verify)

	return &App{
		Ledger:    ledgerSvc,
		Reconcile: reconcileSvc,
		Verify:    verifySvc,
		Approvals: approvalSvc,
		pool:      pool,
		log:       log,
	}, nil
}

// Run starts the background approval sweeper and blocks until ctx is
// cancelled, then releases the database pool.
func (a *App) Run(ctx context.Context) error {
	a.log.Info("ledger core started", slog.String("version", BuildVersion()))

	a.Approvals.RunSweeper(ctx)

	a.pool.Close()
	a.log.Info("ledger core stopped")
	return nil
}

// Close releases the database pool. Callers that never invoke Run use it
// for cleanup.
func (a *App) Close() {
	a.pool.Close()
}
