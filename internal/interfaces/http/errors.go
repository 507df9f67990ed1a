package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/menuqr/menuqr-api/internal/application/dto"
	"github.com/menuqr/menuqr-api/internal/domain"
	"github.com/menuqr/menuqr-api/pkg/logger"
)

// ErrorResponder centraliza el mapeo de errores de dominio a respuestas HTTP.
// En desarrollo los errores internos exponen su detalle; en producción no.
type ErrorResponder struct {
	log   *logger.Logger
	isDev bool
}

// NewErrorResponder construye el responder.
func NewErrorResponder(log *logger.Logger, isDev bool) *ErrorResponder {
	return &ErrorResponder{log: log, isDev: isDev}
}

// Respond traduce el error a su status y envelope {"error": ...}.
func (r *ErrorResponder) Respond(c *fiber.Ctx, err error) error {
	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: upstream.Error()})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrEmailAlreadyExists),
		errors.Is(err, domain.ErrMenuAlreadyExists),
		errors.Is(err, domain.ErrWrongPassword),
		errors.Is(err, domain.ErrWhatsAppNotConfigured):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Credenciales inválidas"})
	case errors.Is(err, domain.ErrAccountDisabled):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "No tienes permiso para acceder a este recurso"})

	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrMenuNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrItemNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrSlugAlreadyExists),
		errors.Is(err, domain.ErrSlugExhausted),
		errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	r.log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
	resp := dto.ErrorResponse{Error: "Error interno del servidor"}
	if r.isDev {
		resp.Details = []string{err.Error()}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(resp)
}

// BadRequest responde 400 con el mensaje dado y detalles opcionales.
func (r *ErrorResponder) BadRequest(c *fiber.Ctx, msg string, details ...string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg, Details: details})
}
