package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/menuqr/menuqr-api/internal/application/usecase"
)

// PublicMenuHandler expone el menú a comensales, sin autenticación.
type PublicMenuHandler struct {
	uc      *usecase.PublicMenuUseCase
	respond *ErrorResponder
}

// NewPublicMenuHandler construye el handler público.
func NewPublicMenuHandler(uc *usecase.PublicMenuUseCase, respond *ErrorResponder) *PublicMenuHandler {
	return &PublicMenuHandler{uc: uc, respond: respond}
}

// GetByRestaurantID godoc
// @Summary      Menú público por slug de restaurante
// @Tags         public
// @Produce      json
// @Param        restaurantId  path  string  true  "slug del restaurante"
// @Success      200  {object}  dto.MenuEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menus/restaurant/{restaurantId} [get]
func (h *PublicMenuHandler) GetByRestaurantID(c *fiber.Ctx) error {
	out, err := h.uc.GetByRestaurantID(c.Params("restaurantId"))
	if err != nil {
		return h.respond.Respond(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Menú público por ID
// @Tags         public
// @Produce      json
// @Param        id  path  string  true  "ID del menú"
// @Success      200  {object}  dto.MenuEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menus/{id} [get]
func (h *PublicMenuHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return h.respond.Respond(c, err)
	}
	return c.JSON(out)
}

// GetCategories godoc
// @Summary      Categorías activas del menú público
// @Tags         public
// @Produce      json
// @Param        id  path  string  true  "ID del menú"
// @Success      200  {object}  dto.CategoriesEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menus/{id}/categories [get]
func (h *PublicMenuHandler) GetCategories(c *fiber.Ctx) error {
	out, err := h.uc.GetCategories(c.Params("id"))
	if err != nil {
		return h.respond.Respond(c, err)
	}
	return c.JSON(out)
}
