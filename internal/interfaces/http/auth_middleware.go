package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/menuqr/menuqr-api/internal/application/dto"
	"github.com/menuqr/menuqr-api/internal/application/usecase"
	"github.com/menuqr/menuqr-api/internal/domain/entity"
	"github.com/menuqr/menuqr-api/internal/domain/repository"
	"github.com/menuqr/menuqr-api/pkg/jwt"
)

// Local key del usuario autenticado en Fiber.
const LocalAuthUser = "auth_user"

// AuthMiddleware valida el Bearer Token, carga la identidad desde el
// repositorio y la deja en c.Locals. Un token válido de una cuenta
// desactivada o inexistente se rechaza igual que uno inválido.
func AuthMiddleware(jwtSecret string, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Token de autorización requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Formato de token inválido: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Token de autorización requerido"})
		}

		userID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Token expirado"})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Token inválido"})
		}

		user, err := users.GetByID(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Error interno del servidor"})
		}
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Token inválido"})
		}
		if !user.IsActive {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Cuenta desactivada"})
		}

		c.Locals(LocalAuthUser, user)
		return c.Next()
	}
}

// GetAuthUser devuelve el usuario autenticado (después del middleware de auth).
func GetAuthUser(c *fiber.Ctx) *entity.User {
	v := c.Locals(LocalAuthUser)
	if v == nil {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}

// actorFrom proyecta la identidad autenticada al actor de los casos de uso.
func actorFrom(u *entity.User) usecase.Actor {
	return usecase.Actor{ID: u.ID, Role: u.Role, RestaurantID: u.RestaurantID}
}

// AdminOnly exige rol admin u owner.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetAuthUser(c)
		if user == nil || !user.CanAdminister() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "Se requiere rol de administrador"})
		}
		return c.Next()
	}
}

// OwnerOnly exige rol owner (operador de la plataforma).
func OwnerOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetAuthUser(c)
		if user == nil || user.Role != entity.RoleOwner {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "Se requiere rol de propietario de plataforma"})
		}
		return c.Next()
	}
}

// RestaurantAccess verifica que el restaurante referido por la ruta, el body
// o la cabecera X-Restaurant-ID sea el del usuario. Sin restaurante referido
// la petición es inválida. El rol owner pasa con cualquier restaurante.
func RestaurantAccess() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetAuthUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Token inválido"})
		}

		requested := c.Params("restaurantId")
		if requested == "" {
			requested = c.Get("X-Restaurant-ID")
		}
		if requested == "" {
			var body struct {
				RestaurantID string `json:"restaurantId"`
			}
			if err := c.BodyParser(&body); err == nil {
				requested = body.RestaurantID
			}
		}
		if requested == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "ID de restaurante requerido"})
		}
		if user.Role == entity.RoleOwner {
			return c.Next()
		}
		if requested != user.RestaurantID {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "No tienes permiso para acceder a este restaurante"})
		}
		return c.Next()
	}
}
