package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menuqr/menuqr-api/internal/domain/entity"
	httpapi "github.com/menuqr/menuqr-api/internal/interfaces/http"
	"github.com/menuqr/menuqr-api/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

// fakeUserRepo resuelve identidades por ID para el middleware.
type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(*entity.User) error { return nil }

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

func testUser(id, role string, active bool) *entity.User {
	return &entity.User{
		ID:           id,
		Name:         "Ana",
		Email:        id + "@example.com",
		Role:         role,
		RestaurantID: "tacos-paco",
		IsActive:     active,
	}
}

// buildApp monta una ruta protegida que responde el ID del usuario autenticado.
func buildApp(t *testing.T, repo *fakeUserRepo, extra ...fiber.Handler) *fiber.App {
	t.Helper()
	app := fiber.New()
	handlers := append([]fiber.Handler{httpapi.AuthMiddleware(testSecret, repo)}, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		user := httpapi.GetAuthUser(c)
		require.NotNil(t, user)
		return c.JSON(fiber.Map{"id": user.ID})
	})
	app.Get("/protegida", handlers...)
	app.Get("/restaurantes/:restaurantId",
		append(append([]fiber.Handler{httpapi.AuthMiddleware(testSecret, repo)}, extra...),
			func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })...)
	return app
}

func doRequest(t *testing.T, app *fiber.App, path, token string, header map[string]string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func errorBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Error
}

func validToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, userID, "menuqr-test", 60)
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware_SinToken(t *testing.T) {
	app := buildApp(t, &fakeUserRepo{users: map[string]*entity.User{}})

	resp := doRequest(t, app, "/protegida", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Token de autorización requerido", errorBody(t, resp))
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := buildApp(t, &fakeUserRepo{users: map[string]*entity.User{}})

	req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
	req.Header.Set("Authorization", "Basic abc123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Formato de token inválido: Bearer <token>", errorBody(t, resp))
}

func TestAuthMiddleware_TokenInvalido(t *testing.T) {
	app := buildApp(t, &fakeUserRepo{users: map[string]*entity.User{}})

	resp := doRequest(t, app, "/protegida", "no-es-un-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Token inválido", errorBody(t, resp))
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	app := buildApp(t, &fakeUserRepo{users: map[string]*entity.User{}})

	token, err := jwt.Generate(testSecret, "user-1", "menuqr-test", -1)
	require.NoError(t, err)
	resp := doRequest(t, app, "/protegida", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Token expirado", errorBody(t, resp))
}

// Un token válido de una identidad inexistente se rechaza como inválido.
func TestAuthMiddleware_UsuarioInexistente(t *testing.T) {
	app := buildApp(t, &fakeUserRepo{users: map[string]*entity.User{}})

	resp := doRequest(t, app, "/protegida", validToken(t, "fantasma"), nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Token inválido", errorBody(t, resp))
}

func TestAuthMiddleware_CuentaDesactivada(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*entity.User{
		"user-1": testUser("user-1", entity.RoleAdmin, false),
	}}
	app := buildApp(t, repo)

	resp := doRequest(t, app, "/protegida", validToken(t, "user-1"), nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Cuenta desactivada", errorBody(t, resp))
}

func TestAuthMiddleware_TokenValido(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*entity.User{
		"user-1": testUser("user-1", entity.RoleAdmin, true),
	}}
	app := buildApp(t, repo)

	resp := doRequest(t, app, "/protegida", validToken(t, "user-1"), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "user-1", body.ID)
}

// El rol user no administra; admin y owner sí.
func TestAdminOnly_Roles(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*entity.User{
		"comensal": testUser("comensal", "user", true),
		"admin":    testUser("admin", entity.RoleAdmin, true),
		"root":     testUser("root", entity.RoleOwner, true),
	}}
	app := buildApp(t, repo, httpapi.AdminOnly())

	resp := doRequest(t, app, "/protegida", validToken(t, "comensal"), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Se requiere rol de administrador", errorBody(t, resp))

	resp = doRequest(t, app, "/protegida", validToken(t, "admin"), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "/protegida", validToken(t, "root"), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOwnerOnly_RechazaAdmin(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*entity.User{
		"admin": testUser("admin", entity.RoleAdmin, true),
		"root":  testUser("root", entity.RoleOwner, true),
	}}
	app := fiber.New()
	app.Get("/plataforma", httpapi.AuthMiddleware(testSecret, repo), httpapi.OwnerOnly(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp := doRequest(t, app, "/plataforma", validToken(t, "admin"), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doRequest(t, app, "/plataforma", validToken(t, "root"), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// El tenant solo accede a su propio restaurante; el owner pasa siempre.
func TestRestaurantAccess(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*entity.User{
		"admin": testUser("admin", entity.RoleAdmin, true),
		"root":  testUser("root", entity.RoleOwner, true),
	}}
	app := buildApp(t, repo, httpapi.RestaurantAccess())

	// Por parámetro de ruta.
	resp := doRequest(t, app, "/restaurantes/tacos-paco", validToken(t, "admin"), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "/restaurantes/otro-resto", validToken(t, "admin"), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "No tienes permiso para acceder a este restaurante", errorBody(t, resp))

	// Por cabecera.
	resp = doRequest(t, app, "/protegida", validToken(t, "admin"), map[string]string{"X-Restaurant-ID": "otro-resto"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doRequest(t, app, "/protegida", validToken(t, "admin"), map[string]string{"X-Restaurant-ID": "tacos-paco"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// El owner accede a cualquier tenant.
	resp = doRequest(t, app, "/restaurantes/otro-resto", validToken(t, "root"), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Sin restaurante referido la petición es inválida, para cualquier rol.
	resp = doRequest(t, app, "/protegida", validToken(t, "admin"), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "ID de restaurante requerido", errorBody(t, resp))

	resp = doRequest(t, app, "/protegida", validToken(t, "root"), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
