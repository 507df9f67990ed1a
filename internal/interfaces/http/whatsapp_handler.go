package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/menuqr/menuqr-api/internal/application/dto"
	"github.com/menuqr/menuqr-api/internal/application/usecase"
	"github.com/menuqr/menuqr-api/pkg/config"
	"github.com/menuqr/menuqr-api/pkg/logger"
)

// WhatsAppHandler maneja la configuración y operaciones del puente de WhatsApp,
// más el webhook de verificación y eventos de Meta.
type WhatsAppHandler struct {
	uc          *usecase.WhatsAppUseCase
	uploadCfg   config.UploadConfig
	verifyToken string
	respond     *ErrorResponder
	log         *logger.Logger
}

// NewWhatsAppHandler construye el handler de WhatsApp.
func NewWhatsAppHandler(uc *usecase.WhatsAppUseCase, uploadCfg config.UploadConfig, verifyToken string, respond *ErrorResponder, log *logger.Logger) *WhatsAppHandler {
	return &WhatsAppHandler{uc: uc, uploadCfg: uploadCfg, verifyToken: verifyToken, respond: respond, log: log}
}

// GetConfig godoc
// @Summary      Configuración de WhatsApp del tenant
// @Tags         whatsapp
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.WhatsAppConfigEnvelope
// @Router       /api/whatsapp/config [get]
func (h *WhatsAppHandler) GetConfig(c *fiber.Ctx) error {
	out, err := h.uc.GetConfig(GetAuthUser(c).ID)
	if err != nil {
		return h.respond.Respond(c, err)
	}
	return c.JSON(out)
}

// UpdateConfig godoc
// @Summary      Actualizar configuración de WhatsApp
// @Tags         whatsapp
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.UpdateWhatsAppConfigRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.WhatsAppConfigEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/whatsapp/config [put]
func (h *WhatsAppHandler) UpdateConfig(c *fiber.Ctx) error {
	var in dto.UpdateWhatsAppConfigRequest
	if err := c.BodyParser(&in); err != nil {
		return h.respond.BadRequest(c, "Cuerpo inválido")
	}
	out, err := h.uc.UpdateConfig(GetAuthUser(c).ID, in)
	if err != nil {
		return h.respond.Respond(c, err)
	}
	return c.JSON(out)
}

// SendMenuLink godoc
// @Summary      Enviar el link del menú por WhatsApp
// @Tags         whatsapp
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.SendMenuLinkRequest  true  "número destino y mensaje opcional"
// @Success      200   {object}  dto.SendMenuLinkResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/whatsapp/send-menu-link [post]
func (h *WhatsAppHandler) SendMenuLink(c *fiber.Ctx) error {
	var in dto.SendMenuLinkRequest
	if err := c.BodyParser(&in); err != nil {
		return h.respond.BadRequest(c, "Cuerpo inválido")
	}
	if details := validateStruct(in); details != nil {
		return h.respond.BadRequest(c, "Datos de envío inválidos", details...)
	}
	out, err := h.uc.SendMenuLink(c.Context(), GetAuthUser(c).ID, in)
	if err != nil {
		return h.respond.Respond(c, err)
	}
	return c.JSON(out)
}

// UploadStatus godoc
// @Summary      Publicar una imagen en el estado de WhatsApp
// @Tags         whatsapp
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image    formData  file    true   "imagen a publicar"
// @Param        caption  formData  string  false  "texto del estado"
// @Success      200  {object}  dto.UploadStatusResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/whatsapp/upload-status [post]
func (h *WhatsAppHandler) UploadStatus(c *fiber.Ctx) error {
	image, err := imageFromForm(c, "image", h.uploadCfg)
	if err != nil {
		return h.respond.BadRequest(c, err.Error())
	}
	if image == nil {
		return h.respond.BadRequest(c, "La imagen es requerida")
	}
	caption := c.FormValue("caption")
	out, err := h.uc.UploadStatus(c.Context(), GetAuthUser(c).ID, image, caption)
	if err != nil {
		return h.respond.Respond(c, err)
	}
	return c.JSON(out)
}

// VerifyWebhook atiende el handshake de verificación de Meta:
// GET con hub.mode=subscribe y hub.verify_token correcto responde el challenge.
func (h *WhatsAppHandler) VerifyWebhook(c *fiber.Ctx) error {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token != "" && token == h.verifyToken {
		h.log.Info().Msg("webhook de WhatsApp verificado")
		return c.SendString(challenge)
	}
	return c.SendStatus(fiber.StatusForbidden)
}

// ReceiveWebhook recibe eventos entrantes de Meta. Un payload sin el campo
// object no es un evento del API de WhatsApp y responde 404; el resto se
// confirma con EVENT_RECEIVED y solo se loguea.
func (h *WhatsAppHandler) ReceiveWebhook(c *fiber.Ctx) error {
	var event struct {
		Object string `json:"object"`
	}
	if err := c.BodyParser(&event); err != nil || event.Object == "" {
		return c.SendStatus(fiber.StatusNotFound)
	}
	h.log.Debug().Str("object", event.Object).Bytes("payload", c.Body()).Msg("evento de webhook de WhatsApp")
	return c.SendString("EVENT_RECEIVED")
}
