package docstore_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menuqr/menuqr-api/internal/domain"
	"github.com/menuqr/menuqr-api/internal/domain/entity"
	"github.com/menuqr/menuqr-api/internal/infrastructure/docstore"
)

// docRow entrega el JSON almacenado a Scan, igual que lo haría el codec JSONB.
type docRow struct {
	data []byte
	err  error
}

func (r docRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return json.Unmarshal(r.data, dest[0])
}

// docTable simula la tabla menu_documents (una sola fila) y registra el
// orden de las operaciones que le llegan.
type docTable struct {
	doc    []byte
	events []string
}

func (t *docTable) record(ev string) { t.events = append(t.events, ev) }

func (t *docTable) selectDoc() pgx.Row {
	t.record("select")
	if t.doc == nil {
		return docRow{err: pgx.ErrNoRows}
	}
	return docRow{data: t.doc}
}

// storeDoc serializa el documento recibido como argumento de INSERT/UPDATE.
func (t *docTable) storeDoc(ev string, args []any) (pgconn.CommandTag, error) {
	t.record(ev)
	raw, err := json.Marshal(args[4])
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	t.doc = raw
	return pgconn.CommandTag{}, nil
}

// fakeConn es un Querier plano, sin soporte de transacciones.
type fakeConn struct {
	table *docTable
}

func (c *fakeConn) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	return c.table.storeDoc("exec", args)
}

func (c *fakeConn) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, nil }

func (c *fakeConn) QueryRow(context.Context, string, ...any) pgx.Row { return c.table.selectDoc() }

// fakePool agrega Begin sobre fakeConn, como hace *pgxpool.Pool.
type fakePool struct {
	fakeConn
}

func (p *fakePool) Begin(context.Context) (pgx.Tx, error) {
	p.table.record("begin")
	return &fakeTx{table: p.table}, nil
}

// fakeTx cubre los métodos de pgx.Tx que usa el repositorio; el resto
// queda en la interfaz embebida.
type fakeTx struct {
	pgx.Tx
	table *docTable
	done  bool
}

func (t *fakeTx) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	return t.table.storeDoc("update", args)
}

func (t *fakeTx) QueryRow(context.Context, string, ...any) pgx.Row { return t.table.selectDoc() }

func (t *fakeTx) Commit(context.Context) error {
	if !t.done {
		t.done = true
		t.table.record("commit")
	}
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if !t.done {
		t.done = true
		t.table.record("rollback")
	}
	return nil
}

func seedDoc(t *testing.T, repo *docstore.MenuRepo) *entity.Menu {
	t.Helper()
	now := time.Now()
	menu := &entity.Menu{
		ID:             "menu-1",
		RestaurantID:   "tacos-paco",
		RestaurantName: "Tacos Paco",
		OwnerID:        "user-1",
		IsActive:       true,
		Categories: []entity.Category{
			{ID: "cat-1", Name: "Entradas", IsActive: true, Position: 0},
		},
		Items: []entity.MenuItem{
			{ID: "item-1", CategoryID: "cat-1", Name: "Guacamole", Price: decimal.NewFromInt(80), IsAvailable: true},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Create(menu))
	return menu
}

func TestMutate_CorreDentroDeUnaTransaccion(t *testing.T) {
	table := &docTable{}
	repo := docstore.NewMenuRepository(&fakePool{fakeConn{table: table}})
	seedDoc(t, repo)
	table.events = nil

	err := repo.AddItem("menu-1", &entity.MenuItem{
		ID:         "item-2",
		CategoryID: "cat-1",
		Name:       "Sopa azteca",
		Price:      decimal.NewFromInt(95),
	})
	require.NoError(t, err)

	// La lectura y la escritura deben quedar entre begin y commit.
	assert.Equal(t, []string{"begin", "select", "update", "commit"}, table.events)

	stored, err := repo.GetByID("menu-1")
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, "Sopa azteca", stored.Items[1].Name)
}

func TestMutate_SinSoporteDeTransacciones(t *testing.T) {
	table := &docTable{}
	repo := docstore.NewMenuRepository(&fakeConn{table: table})
	seedDoc(t, repo)
	table.events = nil

	err := repo.UpdateCategory("menu-1", &entity.Category{ID: "cat-1", Name: "Antojitos", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"select", "exec"}, table.events)

	stored, err := repo.GetByID("menu-1")
	require.NoError(t, err)
	assert.Equal(t, "Antojitos", stored.Categories[0].Name)
}

func TestMutate_RevierteCuandoFallaLaMutacion(t *testing.T) {
	table := &docTable{}
	repo := docstore.NewMenuRepository(&fakePool{fakeConn{table: table}})
	seedDoc(t, repo)
	before := string(table.doc)
	table.events = nil

	err := repo.UpdateItem("menu-1", &entity.MenuItem{ID: "no-existe", CategoryID: "cat-1", Name: "Fantasma"})
	require.ErrorIs(t, err, domain.ErrItemNotFound)

	assert.Equal(t, []string{"begin", "select", "rollback"}, table.events)
	assert.Equal(t, before, string(table.doc))
}

func TestMutate_MenuInexistente(t *testing.T) {
	table := &docTable{}
	repo := docstore.NewMenuRepository(&fakePool{fakeConn{table: table}})

	err := repo.AddCategory("menu-x", &entity.Category{ID: "cat-9", Name: "Postres"})
	require.ErrorIs(t, err, domain.ErrMenuNotFound)
	assert.Equal(t, []string{"begin", "select", "rollback"}, table.events)
}
