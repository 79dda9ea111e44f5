package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/irvanshandika/PUSCOM-sub000/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
	// activitiesInTx false cuando el feed vive fuera de PostgreSQL (DynamoDB).
	activitiesInTx bool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, activitiesInTx bool) *TxRunner {
	return &TxRunner{pool: pool, activitiesInTx: activitiesInTx}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(tx ports.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := ports.TxRepos{ServiceRequests: NewServiceRequestRepository(tx)}
	if r.activitiesInTx {
		repos.Activities = NewActivityRepository(tx)
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
