package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/menuqr/menuqr-api/internal/application/auth"
	"github.com/menuqr/menuqr-api/internal/domain/repository"
)

var _ auth.TxRunner = (*TxRunner)(nil)

// MenuRepoFactory construye el repositorio de menús sobre un Querier
// (pool o tx). Permite elegir la variante relacional o documental sin que
// el runner conozca cuál está activa.
type MenuRepoFactory func(q Querier) repository.MenuRepository

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool     *pgxpool.Pool
	menuRepo MenuRepoFactory
}

// NewTxRunner construye el runner con el pool y la fábrica del repo de menús.
func NewTxRunner(pool *pgxpool.Pool, menuRepo MenuRepoFactory) *TxRunner {
	return &TxRunner{pool: pool, menuRepo: menuRepo}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	users repository.UserRepository,
	menus repository.MenuRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUserRepository(tx), r.menuRepo(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
