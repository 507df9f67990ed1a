package postgres_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menuqr/menuqr-api/internal/infrastructure/postgres"
)

// menuRow entrega una fila de menus con el ID fijo; el resto queda en cero.
type menuRow struct{}

func (menuRow) Scan(dest ...any) error {
	if p, ok := dest[0].(*string); ok {
		*p = "menu-1"
	}
	return nil
}

// emptyRows cubre el recorrido de filas sin entregar ninguna.
type emptyRows struct{ pgx.Rows }

func (emptyRows) Next() bool { return false }
func (emptyRows) Err() error { return nil }
func (emptyRows) Close()     {}

// queryRecorder captura el SQL de cada consulta de conjunto.
type queryRecorder struct {
	queries []string
}

func (q *queryRecorder) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (q *queryRecorder) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	q.queries = append(q.queries, sql)
	return emptyRows{}, nil
}

func (q *queryRecorder) QueryRow(context.Context, string, ...any) pgx.Row { return menuRow{} }

// Las posiciones repetidas se desempatan por orden de inserción (columna seq),
// nunca por el id aleatorio.
func TestGetByID_DesempataPorOrdenDeInsercion(t *testing.T) {
	rec := &queryRecorder{}
	repo := postgres.NewMenuRepository(rec)

	_, err := repo.GetByID("menu-1")
	require.NoError(t, err)

	require.Len(t, rec.queries, 2, "carga categorías e items")
	for _, sql := range rec.queries {
		assert.Contains(t, sql, "ORDER BY position, seq")
	}
}
