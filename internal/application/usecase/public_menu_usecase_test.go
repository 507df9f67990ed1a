package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menuqr/menuqr-api/internal/application/usecase"
	"github.com/menuqr/menuqr-api/internal/domain"
	"github.com/menuqr/menuqr-api/internal/domain/entity"
)

// fakeUserRepo solo resuelve dueños por ID; el resto no se usa en la vista pública.
type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(u *entity.User) error { return nil }

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(string) (*entity.User, error)   { return nil, nil }
func (r *fakeUserRepo) ExistsByRestaurantID(string) (bool, error) { return false, nil }
func (r *fakeUserRepo) Update(*entity.User) error                 { return nil }
func (r *fakeUserRepo) UpdateLastLogin(string, time.Time) error   { return nil }

func buildPublicUseCase(t *testing.T) (*usecase.PublicMenuUseCase, *fakeMenuRepo) {
	t.Helper()
	repo := newFakeMenuRepo()
	users := &fakeUserRepo{users: map[string]*entity.User{
		"user-1": {
			ID:             "user-1",
			Name:           "Paco",
			Email:          "paco@example.com",
			PasswordHash:   "$2a$12$secreto",
			RestaurantID:   "tacos-paco",
			RestaurantName: "Tacos Paco",
		},
	}}
	return usecase.NewPublicMenuUseCase(repo, users), repo
}

func seedPublicMenu(t *testing.T, repo *fakeMenuRepo) *entity.Menu {
	t.Helper()
	menu := seedMenu(t, repo)
	stored := repo.menus[menu.ID]
	stored.Categories = []entity.Category{
		{ID: "cat-2", Name: "Principales", IsActive: true, Position: 1},
		{ID: "cat-1", Name: "Entradas", IsActive: true, Position: 0},
		{ID: "cat-3", Name: "Borradores", IsActive: false, Position: 2},
	}
	stored.Items = []entity.MenuItem{
		{ID: "item-2", CategoryID: "cat-1", Name: "Guacamole", Price: decimal.NewFromInt(5), IsAvailable: true, Position: 1},
		{ID: "item-1", CategoryID: "cat-1", Name: "Sopa", Price: decimal.NewFromInt(3), IsAvailable: true, IsPopular: true, Position: 0},
		{ID: "item-3", CategoryID: "cat-1", Name: "Agotado", Price: decimal.NewFromInt(4), IsAvailable: false, Position: 2},
		{ID: "item-4", CategoryID: "cat-3", Name: "Oculto", Price: decimal.NewFromInt(9), IsAvailable: true, Position: 0},
	}
	return menu
}

// Un menú desactivado es indistinguible de uno inexistente.
func TestPublicGetByRestaurantID_InactivoEsNotFound(t *testing.T) {
	uc, repo := buildPublicUseCase(t)
	menu := seedPublicMenu(t, repo)
	repo.menus[menu.ID].IsActive = false

	_, err := uc.GetByRestaurantID("tacos-paco")
	assert.ErrorIs(t, err, domain.ErrMenuNotFound)

	_, err = uc.GetByID(menu.ID)
	assert.ErrorIs(t, err, domain.ErrMenuNotFound)
}

func TestPublicGetByRestaurantID_Inexistente(t *testing.T) {
	uc, _ := buildPublicUseCase(t)

	_, err := uc.GetByRestaurantID("fantasma")
	assert.ErrorIs(t, err, domain.ErrMenuNotFound)
}

// La vista pública filtra lo inactivo y ordena por posición.
func TestPublicGetByRestaurantID_FiltraYOrdena(t *testing.T) {
	uc, repo := buildPublicUseCase(t)
	seedPublicMenu(t, repo)

	out, err := uc.GetByRestaurantID("tacos-paco")
	require.NoError(t, err)

	require.Len(t, out.Menu.Categories, 2)
	assert.Equal(t, "Entradas", out.Menu.Categories[0].Name)
	assert.Equal(t, "Principales", out.Menu.Categories[1].Name)

	items := out.Menu.Categories[0].Items
	require.Len(t, items, 2)
	assert.Equal(t, "Sopa", items[0].Name)
	assert.Equal(t, "Guacamole", items[1].Name)
}

// Las estadísticas se calculan sobre el contenido completo, no el filtrado.
func TestPublicGetByRestaurantID_StatsSobreTodo(t *testing.T) {
	uc, repo := buildPublicUseCase(t)
	seedPublicMenu(t, repo)

	out, err := uc.GetByRestaurantID("tacos-paco")
	require.NoError(t, err)

	require.NotNil(t, out.Menu.Stats)
	assert.Equal(t, entity.Stats{
		TotalItems:       4,
		AvailableItems:   3,
		TotalCategories:  3,
		ActiveCategories: 2,
		PopularItems:     1,
	}, *out.Menu.Stats)
}

// El resumen del dueño expone solo nombres, jamás credenciales.
func TestPublicGetByRestaurantID_DuenoSinCredenciales(t *testing.T) {
	uc, repo := buildPublicUseCase(t)
	seedPublicMenu(t, repo)

	out, err := uc.GetByRestaurantID("tacos-paco")
	require.NoError(t, err)

	require.NotNil(t, out.Menu.Owner)
	assert.Equal(t, "Paco", out.Menu.Owner.Name)
	assert.Equal(t, "Tacos Paco", out.Menu.Owner.RestaurantName)
}

// El listado de categorías públicas omite los items embebidos.
func TestPublicGetCategories_SinItems(t *testing.T) {
	uc, repo := buildPublicUseCase(t)
	menu := seedPublicMenu(t, repo)

	out, err := uc.GetCategories(menu.ID)
	require.NoError(t, err)

	require.Len(t, out.Categories, 2)
	for _, c := range out.Categories {
		assert.Nil(t, c.Items)
	}
}
