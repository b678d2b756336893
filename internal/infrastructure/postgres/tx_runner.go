package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
	"github.com/jhoicas/Encuestas-api/internal/domain/survey"
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool  *pgxpool.Pool
	links survey.LinkBuilder
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, links survey.LinkBuilder) *TxRunner {
	return &TxRunner{pool: pool, links: links}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Las escrituras compuestas de los repos (encuesta, respuesta) usan savepoints dentro de la tx.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(NewRepositories(tx, r.links))
	})
}
