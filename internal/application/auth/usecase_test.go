package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/menuqr/menuqr-api/internal/application/auth"
	"github.com/menuqr/menuqr-api/internal/application/dto"
	"github.com/menuqr/menuqr-api/internal/domain"
	"github.com/menuqr/menuqr-api/internal/domain/entity"
	"github.com/menuqr/menuqr-api/internal/domain/repository"
	"github.com/menuqr/menuqr-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User // por ID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ExistsByRestaurantID(restaurantID string) (bool, error) {
	for _, u := range r.users {
		if u.RestaurantID == restaurantID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(id string, at time.Time) error {
	if u, ok := r.users[id]; ok {
		t := at
		u.LastLoginAt = &t
	}
	return nil
}

type fakeMenuRepo struct {
	menus map[string]*entity.Menu // por ID
}

func newFakeMenuRepo() *fakeMenuRepo {
	return &fakeMenuRepo{menus: map[string]*entity.Menu{}}
}

func (r *fakeMenuRepo) Create(m *entity.Menu) error {
	for _, existing := range r.menus {
		if existing.RestaurantID == m.RestaurantID {
			return domain.ErrMenuAlreadyExists
		}
	}
	cp := *m
	r.menus[m.ID] = &cp
	return nil
}

func (r *fakeMenuRepo) GetByID(id string) (*entity.Menu, error) {
	if m, ok := r.menus[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeMenuRepo) GetByRestaurantID(restaurantID string) (*entity.Menu, error) {
	for _, m := range r.menus {
		if m.RestaurantID == restaurantID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMenuRepo) ExistsByRestaurantID(restaurantID string) (bool, error) {
	m, _ := r.GetByRestaurantID(restaurantID)
	return m != nil, nil
}

func (r *fakeMenuRepo) Update(m *entity.Menu) error {
	stored, ok := r.menus[m.ID]
	if !ok {
		return domain.ErrMenuNotFound
	}
	cp := *m
	cp.Categories = stored.Categories
	cp.Items = stored.Items
	r.menus[m.ID] = &cp
	return nil
}

func (r *fakeMenuRepo) Delete(id string) error {
	if _, ok := r.menus[id]; !ok {
		return domain.ErrMenuNotFound
	}
	delete(r.menus, id)
	return nil
}

func (r *fakeMenuRepo) AddCategory(menuID string, c *entity.Category) error {
	m, ok := r.menus[menuID]
	if !ok {
		return domain.ErrMenuNotFound
	}
	m.Categories = append(m.Categories, *c)
	return nil
}

func (r *fakeMenuRepo) UpdateCategory(menuID string, c *entity.Category) error {
	m, ok := r.menus[menuID]
	if !ok {
		return domain.ErrMenuNotFound
	}
	for i := range m.Categories {
		if m.Categories[i].ID == c.ID {
			m.Categories[i] = *c
			return nil
		}
	}
	return domain.ErrCategoryNotFound
}

func (r *fakeMenuRepo) DeleteCategory(menuID, categoryID string) error {
	m, ok := r.menus[menuID]
	if !ok {
		return domain.ErrMenuNotFound
	}
	for i := range m.Categories {
		if m.Categories[i].ID == categoryID {
			m.Categories = append(m.Categories[:i], m.Categories[i+1:]...)
			return nil
		}
	}
	return domain.ErrCategoryNotFound
}

func (r *fakeMenuRepo) AddItem(menuID string, it *entity.MenuItem) error {
	m, ok := r.menus[menuID]
	if !ok {
		return domain.ErrMenuNotFound
	}
	m.Items = append(m.Items, *it)
	return nil
}

func (r *fakeMenuRepo) UpdateItem(menuID string, it *entity.MenuItem) error {
	m, ok := r.menus[menuID]
	if !ok {
		return domain.ErrMenuNotFound
	}
	for i := range m.Items {
		if m.Items[i].ID == it.ID {
			m.Items[i] = *it
			return nil
		}
	}
	return domain.ErrItemNotFound
}

func (r *fakeMenuRepo) DeleteItem(menuID, itemID string) error {
	m, ok := r.menus[menuID]
	if !ok {
		return domain.ErrMenuNotFound
	}
	for i := range m.Items {
		if m.Items[i].ID == itemID {
			m.Items = append(m.Items[:i], m.Items[i+1:]...)
			return nil
		}
	}
	return domain.ErrItemNotFound
}

// fakeTxRunner ejecuta el callback directamente con los repos dados.
type fakeTxRunner struct {
	users repository.UserRepository
	menus repository.MenuRepository
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(repository.UserRepository, repository.MenuRepository) error) error {
	return fn(r.users, r.menus)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const testBaseURL = "https://menu.example.com"

func buildUseCase(t *testing.T) (*auth.AuthUseCase, *fakeUserRepo, *fakeMenuRepo) {
	t.Helper()
	users := newFakeUserRepo()
	menus := newFakeMenuRepo()
	tx := &fakeTxRunner{users: users, menus: menus}
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	uc := auth.NewAuthUseCase(users, menus, tx, auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "menuqr-test",
	}, testBaseURL, log)
	return uc, users, menus
}

func registerInput(email string) dto.RegisterRequest {
	return dto.RegisterRequest{
		Name:           "Ana",
		Email:          email,
		Password:       "secreto123",
		RestaurantName: "La Bella Italia",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

// El registro crea usuario + menú con slug derivado del nombre, categorías
// por defecto y token utilizable.
func TestRegister_CreaUsuarioYMenu(t *testing.T) {
	uc, users, menus := buildUseCase(t)

	out, err := uc.Register(context.Background(), registerInput("Ana@Example.com"))
	require.NoError(t, err)

	assert.Equal(t, "Usuario registrado exitosamente", out.Message)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "la-bella-italia", out.User.RestaurantID)
	assert.Equal(t, testBaseURL+"/la-bella-italia", out.Menu.URL)

	// El email se normaliza a minúsculas.
	stored, err := users.GetByEmail("ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.RoleAdmin, stored.Role)
	assert.True(t, stored.IsActive)

	menu, err := menus.GetByRestaurantID("la-bella-italia")
	require.NoError(t, err)
	require.NotNil(t, menu)
	assert.Equal(t, stored.ID, menu.OwnerID)
	require.Len(t, menu.Categories, 4)
	assert.Equal(t, "Entradas", menu.Categories[0].Name)
	assert.Equal(t, "Bebidas", menu.Categories[3].Name)
	assert.Equal(t, 3, menu.Categories[3].Position)
}

// Un email ya registrado se rechaza sin crear nada.
func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _, _ := buildUseCase(t)

	_, err := uc.Register(context.Background(), registerInput("ana@example.com"))
	require.NoError(t, err)

	in := registerInput("ana@example.com")
	in.RestaurantName = "Otro Restaurante"
	_, err = uc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// Nombres que colisionan reciben sufijos numéricos crecientes.
func TestRegister_SlugConSufijos(t *testing.T) {
	uc, _, _ := buildUseCase(t)

	first, err := uc.Register(context.Background(), registerInput("a@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "la-bella-italia", first.User.RestaurantID)

	second, err := uc.Register(context.Background(), registerInput("b@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "la-bella-italia-1", second.User.RestaurantID)

	third, err := uc.Register(context.Background(), registerInput("c@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "la-bella-italia-2", third.User.RestaurantID)
}

// Un slug personalizado se respeta literal como primer candidato.
func TestRegister_SlugPersonalizado(t *testing.T) {
	uc, _, _ := buildUseCase(t)

	in := registerInput("ana@example.com")
	in.RestaurantID = "mi-resto"
	out, err := uc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "mi-resto", out.User.RestaurantID)
}

// alwaysTakenUserRepo simula un namespace de slugs completamente ocupado.
type alwaysTakenUserRepo struct{ *fakeUserRepo }

func (r alwaysTakenUserRepo) ExistsByRestaurantID(string) (bool, error) { return true, nil }

// Con todos los candidatos ocupados el sondeo se agota y responde conflicto.
func TestRegister_SlugAgotado(t *testing.T) {
	users := newFakeUserRepo()
	menus := newFakeMenuRepo()
	taken := alwaysTakenUserRepo{users}
	tx := &fakeTxRunner{users: taken, menus: menus}
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	uc := auth.NewAuthUseCase(taken, menus, tx, auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "menuqr-test",
	}, testBaseURL, log)

	_, err := uc.Register(context.Background(), registerInput("ana@example.com"))
	assert.ErrorIs(t, err, domain.ErrSlugExhausted)
}

// Un nombre sin caracteres utilizables no produce slug.
func TestRegister_NombreSinSlug(t *testing.T) {
	uc, _, _ := buildUseCase(t)

	in := registerInput("ana@example.com")
	in.RestaurantName = "!!!"
	_, err := uc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func seedUser(t *testing.T, users *fakeUserRepo, email, password string, active bool) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{
		ID:             "user-" + email,
		Name:           "Ana",
		Email:          email,
		PasswordHash:   string(hash),
		Role:           entity.RoleAdmin,
		RestaurantID:   "resto",
		RestaurantName: "Resto",
		IsActive:       active,
	}
	require.NoError(t, users.Create(u))
	return u
}

// Credenciales correctas devuelven token y registran el último login.
func TestLogin_Exitoso(t *testing.T) {
	uc, users, _ := buildUseCase(t)
	seedUser(t, users, "ana@example.com", "secreto123", true)

	out, err := uc.Login(dto.LoginRequest{Email: "Ana@Example.com", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, "Inicio de sesión exitoso", out.Message)
	assert.NotEmpty(t, out.Token)

	stored, _ := users.GetByEmail("ana@example.com")
	assert.NotNil(t, stored.LastLoginAt)
}

// Usuario inexistente y contraseña incorrecta responden igual: no autorizado.
func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, users, _ := buildUseCase(t)
	seedUser(t, users, "ana@example.com", "secreto123", true)

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@example.com", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Una cuenta desactivada no puede iniciar sesión aunque la contraseña sea válida.
func TestLogin_CuentaDesactivada(t *testing.T) {
	uc, users, _ := buildUseCase(t)
	seedUser(t, users, "ana@example.com", "secreto123", false)

	_, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)

	// El estado de la cuenta se evalúa antes que la contraseña.
	_, err = uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)
}

// ──────────────────────────────────────────────────────────────────────────────
// Perfil y contraseña
// ──────────────────────────────────────────────────────────────────────────────

// Renombrar el restaurante en el perfil se refleja en el menú del tenant.
func TestUpdateProfile_RenombraMenu(t *testing.T) {
	uc, _, menus := buildUseCase(t)

	out, err := uc.Register(context.Background(), registerInput("ana@example.com"))
	require.NoError(t, err)

	newName := "Trattoria Nueva"
	_, err = uc.UpdateProfile(out.User.ID, dto.UpdateProfileRequest{RestaurantName: &newName})
	require.NoError(t, err)

	menu, err := menus.GetByRestaurantID(out.User.RestaurantID)
	require.NoError(t, err)
	assert.Equal(t, newName, menu.RestaurantName)
}

// Cambiar contraseña exige la actual; luego el login funciona con la nueva.
func TestChangePassword(t *testing.T) {
	uc, users, _ := buildUseCase(t)
	u := seedUser(t, users, "ana@example.com", "secreto123", true)

	err := uc.ChangePassword(u.ID, dto.ChangePasswordRequest{
		CurrentPassword: "incorrecta",
		NewPassword:     "nueva456",
	})
	assert.ErrorIs(t, err, domain.ErrWrongPassword)

	err = uc.ChangePassword(u.ID, dto.ChangePasswordRequest{
		CurrentPassword: "secreto123",
		NewPassword:     "nueva456",
	})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "nueva456"})
	assert.NoError(t, err)
}
