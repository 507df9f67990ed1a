package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/menuqr/menuqr-api/internal/application/auth"
	"github.com/menuqr/menuqr-api/internal/application/dto"
)

// AuthHandler maneja registro, login y perfil.
type AuthHandler struct {
	uc      *auth.AuthUseCase
	respond *ErrorResponder
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, respond *ErrorResponder) *AuthHandler {
	return &AuthHandler{uc: uc, respond: respond}
}

// Register godoc
// @Summary      Registrar restaurante
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "name, email, password, restaurantName"
// @Success      201   {object}  dto.RegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return h.respond.BadRequest(c, "Cuerpo inválido")
	}
	if details := validateStruct(in); details != nil {
		return h.respond.BadRequest(c, "Datos de registro inválidos", details...)
	}
	out, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return h.respond.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return h.respond.BadRequest(c, "Cuerpo inválido")
	}
	if details := validateStruct(in); details != nil {
		return h.respond.BadRequest(c, "Credenciales incompletas", details...)
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return h.respond.Respond(c, err)
	}
	return c.JSON(out)
}

// GetProfile godoc
// @Summary      Perfil del usuario autenticado
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ProfileResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/profile [get]
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	user := GetAuthUser(c)
	out, err := h.uc.GetProfile(user.ID)
	if err != nil {
		return h.respond.Respond(c, err)
	}
	return c.JSON(out)
}

// UpdateProfile godoc
// @Summary      Actualizar perfil
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.UpdateProfileRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.ProfileResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return h.respond.BadRequest(c, "Cuerpo inválido")
	}
	if details := validateStruct(in); details != nil {
		return h.respond.BadRequest(c, "Datos de perfil inválidos", details...)
	}
	user := GetAuthUser(c)
	out, err := h.uc.UpdateProfile(user.ID, in)
	if err != nil {
		return h.respond.Respond(c, err)
	}
	return c.JSON(out)
}

// ChangePassword godoc
// @Summary      Cambiar contraseña
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ChangePasswordRequest  true  "contraseña actual y nueva"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/change-password [put]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return h.respond.BadRequest(c, "Cuerpo inválido")
	}
	if details := validateStruct(in); details != nil {
		return h.respond.BadRequest(c, "Datos inválidos", details...)
	}
	user := GetAuthUser(c)
	if err := h.uc.ChangePassword(user.ID, in); err != nil {
		return h.respond.Respond(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Contraseña actualizada exitosamente"})
}
