package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/menuqr/menuqr-api/internal/application/dto"
	"github.com/menuqr/menuqr-api/internal/application/usecase"
	"github.com/menuqr/menuqr-api/internal/domain/entity"
	"github.com/menuqr/menuqr-api/pkg/config"
)

// MenuHandler maneja la administración del menú del tenant.
// Las mutaciones aceptan JSON o multipart/form-data (campos + imagen).
type MenuHandler struct {
	uc        *usecase.MenuUseCase
	uploadCfg config.UploadConfig
	respond   *ErrorResponder
}

// NewMenuHandler construye el handler de administración de menús.
func NewMenuHandler(uc *usecase.MenuUseCase, uploadCfg config.UploadConfig, respond *ErrorResponder) *MenuHandler {
	return &MenuHandler{uc: uc, uploadCfg: uploadCfg, respond: respond}
}

// GetMyMenu godoc
// @Summary      Menú del tenant (panel de administración)
// @Tags         menus
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.MenuEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menus/my-menu [get]
func (h *MenuHandler) GetMyMenu(c *fiber.Ctx) error {
	out, err := h.uc.GetMyMenu(actorFrom(GetAuthUser(c)))
	if err != nil {
		return h.respond.Respond(c, err)
	}
	return c.JSON(out)
}

// GetAdminMenu godoc
// @Summary      Menú sin filtrar de un restaurante (panel de administración)
// @Tags         menus
// @Produce      json
// @Security     BearerAuth
// @Param        restaurantId  path  string  true  "slug del restaurante"
// @Success      200  {object}  dto.MenuEnvelope
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menus/restaurant/{restaurantId}/admin [get]
func (h *MenuHandler) GetAdminMenu(c *fiber.Ctx) error {
	out, err := h.uc.GetAdminMenu(c.Params("restaurantId"))
	if err != nil {
		return h.respond.Respond(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear el menú del restaurante
// @Tags         menus
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateMenuRequest  true  "datos del menú"
// @Success      201   {object}  dto.MenuEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/menus [post]
func (h *MenuHandler) Create(c *fiber.Ctx) error {
	in, logo, err := h.parseCreateMenu(c)
	if err != nil {
		return h.respond.BadRequest(c, err.Error())
	}
	if details := validateStruct(in); details != nil {
		return h.respond.BadRequest(c, "Datos del menú inválidos", details...)
	}
	out, err := h.uc.CreateMenu(c.Context(), actorFrom(GetAuthUser(c)), in, logo)
	if err != nil {
		return h.respond.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar el menú
// @Tags         menus
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "ID del menú"
// @Param        body  body  dto.UpdateMenuRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.MenuEnvelope
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/menus/{id} [put]
func (h *MenuHandler) Update(c *fiber.Ctx) error {
	in, logo, err := h.parseUpdateMenu(c)
	if err != nil {
		return h.respond.BadRequest(c, err.Error())
	}
	if details := validateStruct(in); details != nil {
		return h.respond.BadRequest(c, "Datos del menú inválidos", details...)
	}
	out, err := h.uc.UpdateMenu(c.Context(), actorFrom(GetAuthUser(c)), c.Params("id"), in, logo)
	if err != nil {
		return h.respond.Respond(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar el menú
// @Tags         menus
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del menú"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menus/{id} [delete]
func (h *MenuHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteMenu(c.Context(), actorFrom(GetAuthUser(c)), c.Params("id")); err != nil {
		return h.respond.Respond(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Menú eliminado exitosamente"})
}

// QRPoster godoc
// @Summary      Afiche PDF con el QR del menú
// @Tags         menus
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del menú"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menus/{id}/qr.pdf [get]
func (h *MenuHandler) QRPoster(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.QRPoster(actorFrom(GetAuthUser(c)), c.Params("id"))
	if err != nil {
		return h.respond.Respond(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="menu-qr.pdf"`)
	return c.Send(pdfBytes)
}

// AddCategory godoc
// @Summary      Agregar categoría
// @Tags         menus
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "ID del menú"
// @Param        body  body  dto.CategoryRequest  true  "datos de la categoría"
// @Success      201   {object}  dto.CategoryEnvelope
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/menus/{id}/categories [post]
func (h *MenuHandler) AddCategory(c *fiber.Ctx) error {
	in, image, err := h.parseCategory(c)
	if err != nil {
		return h.respond.BadRequest(c, err.Error())
	}
	if details := validateStruct(in); details != nil {
		return h.respond.BadRequest(c, "Datos de categoría inválidos", details...)
	}
	out, err := h.uc.AddCategory(c.Context(), actorFrom(GetAuthUser(c)), c.Params("id"), in, image)
	if err != nil {
		return h.respond.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateCategory godoc
// @Summary      Actualizar categoría
// @Tags         menus
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id          path  string  true  "ID del menú"
// @Param        categoryId  path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menus/{id}/categories/{categoryId} [put]
func (h *MenuHandler) UpdateCategory(c *fiber.Ctx) error {
	in, image, err := h.parseUpdateCategory(c)
	if err != nil {
		return h.respond.BadRequest(c, err.Error())
	}
	if details := validateStruct(in); details != nil {
		return h.respond.BadRequest(c, "Datos de categoría inválidos", details...)
	}
	out, err := h.uc.UpdateCategory(c.Context(), actorFrom(GetAuthUser(c)), c.Params("id"), c.Params("categoryId"), in, image)
	if err != nil {
		return h.respond.Respond(c, err)
	}
	return c.JSON(out)
}

// DeleteCategory godoc
// @Summary      Eliminar categoría (y sus items)
// @Tags         menus
// @Produce      json
// @Security     BearerAuth
// @Param        id          path  string  true  "ID del menú"
// @Param        categoryId  path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menus/{id}/categories/{categoryId} [delete]
func (h *MenuHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.uc.DeleteCategory(c.Context(), actorFrom(GetAuthUser(c)), c.Params("id"), c.Params("categoryId")); err != nil {
		return h.respond.Respond(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Categoría eliminada exitosamente"})
}

// AddItem godoc
// @Summary      Agregar item
// @Tags         menus
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "ID del menú"
// @Param        body  body  dto.ItemRequest  true  "datos del item"
// @Success      201   {object}  dto.ItemEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/menus/{id}/items [post]
func (h *MenuHandler) AddItem(c *fiber.Ctx) error {
	in, image, err := h.parseItem(c)
	if err != nil {
		return h.respond.BadRequest(c, err.Error())
	}
	if details := validateStruct(in); details != nil {
		return h.respond.BadRequest(c, "Datos del item inválidos", details...)
	}
	out, err := h.uc.AddItem(c.Context(), actorFrom(GetAuthUser(c)), c.Params("id"), in, image)
	if err != nil {
		return h.respond.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateItem godoc
// @Summary      Actualizar item
// @Tags         menus
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path  string  true  "ID del menú"
// @Param        itemId  path  string  true  "ID del item"
// @Success      200  {object}  dto.ItemEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menus/{id}/items/{itemId} [put]
func (h *MenuHandler) UpdateItem(c *fiber.Ctx) error {
	in, image, err := h.parseUpdateItem(c)
	if err != nil {
		return h.respond.BadRequest(c, err.Error())
	}
	if details := validateStruct(in); details != nil {
		return h.respond.BadRequest(c, "Datos del item inválidos", details...)
	}
	out, err := h.uc.UpdateItem(c.Context(), actorFrom(GetAuthUser(c)), c.Params("id"), c.Params("itemId"), in, image)
	if err != nil {
		return h.respond.Respond(c, err)
	}
	return c.JSON(out)
}

// DeleteItem godoc
// @Summary      Eliminar item
// @Tags         menus
// @Produce      json
// @Security     BearerAuth
// @Param        id      path  string  true  "ID del menú"
// @Param        itemId  path  string  true  "ID del item"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menus/{id}/items/{itemId} [delete]
func (h *MenuHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.uc.DeleteItem(c.Context(), actorFrom(GetAuthUser(c)), c.Params("id"), c.Params("itemId")); err != nil {
		return h.respond.Respond(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Item eliminado exitosamente"})
}

// ── Parseo de requests (JSON o multipart) ─────────────────────────────────────

func (h *MenuHandler) parseCreateMenu(c *fiber.Ctx) (dto.CreateMenuRequest, *usecase.ImageUpload, error) {
	var in dto.CreateMenuRequest
	if !isMultipart(c) {
		return in, nil, c.BodyParser(&in)
	}
	f, err := newFormReader(c)
	if err != nil {
		return in, nil, err
	}
	in.RestaurantName, _ = f.str("restaurantName")
	in.Description, _ = f.str("description")
	if err := parseMenuJSONFields(f, &in.Theme, &in.Contact, &in.Settings); err != nil {
		return in, nil, err
	}
	logo, err := imageFromForm(c, "logo", h.uploadCfg)
	return in, logo, err
}

func (h *MenuHandler) parseUpdateMenu(c *fiber.Ctx) (dto.UpdateMenuRequest, *usecase.ImageUpload, error) {
	var in dto.UpdateMenuRequest
	if !isMultipart(c) {
		return in, nil, c.BodyParser(&in)
	}
	f, err := newFormReader(c)
	if err != nil {
		return in, nil, err
	}
	in.RestaurantName = f.strPtr("restaurantName")
	in.Description = f.strPtr("description")
	if in.IsActive, err = f.boolPtr("isActive"); err != nil {
		return in, nil, err
	}
	if err := parseMenuJSONFields(f, &in.Theme, &in.Contact, &in.Settings); err != nil {
		return in, nil, err
	}
	logo, err := imageFromForm(c, "logo", h.uploadCfg)
	return in, logo, err
}

// parseMenuJSONFields lee theme, contact y settings como JSON embebido.
func parseMenuJSONFields(f *formReader, theme **entity.Theme, contact **entity.Contact, settings **dto.SettingsPatch) error {
	var t entity.Theme
	if ok, err := f.jsonInto("theme", &t); err != nil {
		return err
	} else if ok {
		*theme = &t
	}
	var ct entity.Contact
	if ok, err := f.jsonInto("contact", &ct); err != nil {
		return err
	} else if ok {
		*contact = &ct
	}
	var s dto.SettingsPatch
	if ok, err := f.jsonInto("settings", &s); err != nil {
		return err
	} else if ok {
		*settings = &s
	}
	return nil
}

func (h *MenuHandler) parseCategory(c *fiber.Ctx) (dto.CategoryRequest, *usecase.ImageUpload, error) {
	var in dto.CategoryRequest
	if !isMultipart(c) {
		return in, nil, c.BodyParser(&in)
	}
	f, err := newFormReader(c)
	if err != nil {
		return in, nil, err
	}
	in.Name, _ = f.str("name")
	in.Description, _ = f.str("description")
	if in.Position, err = f.intPtr("position"); err != nil {
		return in, nil, err
	}
	image, err := imageFromForm(c, "image", h.uploadCfg)
	return in, image, err
}

func (h *MenuHandler) parseUpdateCategory(c *fiber.Ctx) (dto.UpdateCategoryRequest, *usecase.ImageUpload, error) {
	var in dto.UpdateCategoryRequest
	if !isMultipart(c) {
		return in, nil, c.BodyParser(&in)
	}
	f, err := newFormReader(c)
	if err != nil {
		return in, nil, err
	}
	in.Name = f.strPtr("name")
	in.Description = f.strPtr("description")
	if in.IsActive, err = f.boolPtr("isActive"); err != nil {
		return in, nil, err
	}
	if in.Position, err = f.intPtr("position"); err != nil {
		return in, nil, err
	}
	image, err := imageFromForm(c, "image", h.uploadCfg)
	return in, image, err
}

func (h *MenuHandler) parseItem(c *fiber.Ctx) (dto.ItemRequest, *usecase.ImageUpload, error) {
	var in dto.ItemRequest
	if !isMultipart(c) {
		return in, nil, c.BodyParser(&in)
	}
	f, err := newFormReader(c)
	if err != nil {
		return in, nil, err
	}
	in.Name, _ = f.str("name")
	in.Description, _ = f.str("description")
	in.CategoryID, _ = f.str("categoryId")
	price, err := f.decimalPtr("price")
	if err != nil {
		return in, nil, err
	}
	if price != nil {
		in.Price = *price
	}
	if in.OriginalPrice, err = f.decimalPtr("originalPrice"); err != nil {
		return in, nil, err
	}
	if in.IsAvailable, err = f.boolPtr("isAvailable"); err != nil {
		return in, nil, err
	}
	flags := []struct {
		key string
		dst *bool
	}{
		{"isPopular", &in.IsPopular},
		{"isVegetarian", &in.IsVegetarian},
		{"isVegan", &in.IsVegan},
		{"isGlutenFree", &in.IsGlutenFree},
	}
	for _, fl := range flags {
		v, err := f.boolPtr(fl.key)
		if err != nil {
			return in, nil, err
		}
		if v != nil {
			*fl.dst = *v
		}
	}
	if spicy, err := f.intPtr("spicyLevel"); err != nil {
		return in, nil, err
	} else if spicy != nil {
		in.SpicyLevel = *spicy
	}
	if in.Allergens, err = f.strSlice("allergens"); err != nil {
		return in, nil, err
	}
	if in.Tags, err = f.strSlice("tags"); err != nil {
		return in, nil, err
	}
	var ni entity.NutritionalInfo
	if ok, err := f.jsonInto("nutritionalInfo", &ni); err != nil {
		return in, nil, err
	} else if ok {
		in.NutritionalInfo = &ni
	}
	if in.PreparationTime, err = f.intPtr("preparationTime"); err != nil {
		return in, nil, err
	}
	if in.Position, err = f.intPtr("position"); err != nil {
		return in, nil, err
	}
	image, err := imageFromForm(c, "image", h.uploadCfg)
	return in, image, err
}

func (h *MenuHandler) parseUpdateItem(c *fiber.Ctx) (dto.UpdateItemRequest, *usecase.ImageUpload, error) {
	var in dto.UpdateItemRequest
	if !isMultipart(c) {
		return in, nil, c.BodyParser(&in)
	}
	f, err := newFormReader(c)
	if err != nil {
		return in, nil, err
	}
	in.Name = f.strPtr("name")
	in.Description = f.strPtr("description")
	in.CategoryID = f.strPtr("categoryId")
	if in.Price, err = f.decimalPtr("price"); err != nil {
		return in, nil, err
	}
	if in.OriginalPrice, err = f.decimalPtr("originalPrice"); err != nil {
		return in, nil, err
	}
	boolFields := []struct {
		key string
		dst **bool
	}{
		{"isAvailable", &in.IsAvailable},
		{"isPopular", &in.IsPopular},
		{"isVegetarian", &in.IsVegetarian},
		{"isVegan", &in.IsVegan},
		{"isGlutenFree", &in.IsGlutenFree},
	}
	for _, fl := range boolFields {
		if *fl.dst, err = f.boolPtr(fl.key); err != nil {
			return in, nil, err
		}
	}
	if in.SpicyLevel, err = f.intPtr("spicyLevel"); err != nil {
		return in, nil, err
	}
	if in.Allergens, err = f.strSlice("allergens"); err != nil {
		return in, nil, err
	}
	if in.Tags, err = f.strSlice("tags"); err != nil {
		return in, nil, err
	}
	var ni entity.NutritionalInfo
	if ok, err := f.jsonInto("nutritionalInfo", &ni); err != nil {
		return in, nil, err
	} else if ok {
		in.NutritionalInfo = &ni
	}
	if in.PreparationTime, err = f.intPtr("preparationTime"); err != nil {
		return in, nil, err
	}
	if in.Position, err = f.intPtr("position"); err != nil {
		return in, nil, err
	}
	image, err := imageFromForm(c, "image", h.uploadCfg)
	return in, image, err
}
