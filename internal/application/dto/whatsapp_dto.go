package dto

// WhatsAppConfigResponse vista enmascarada de la configuración: los tokens
// jamás se devuelven, solo la señal de que existen.
type WhatsAppConfigResponse struct {
	PhoneNumber string `json:"phoneNumber"`
	IsEnabled   bool   `json:"isEnabled"`
	HasTokens   bool   `json:"hasTokens"`
}

// UpdateWhatsAppConfigRequest patch de la configuración de WhatsApp del tenant.
type UpdateWhatsAppConfigRequest struct {
	PhoneNumber   *string `json:"phoneNumber"`
	AccessToken   *string `json:"accessToken"`
	PhoneNumberID *string `json:"phoneNumberId"`
	IsEnabled     *bool   `json:"isEnabled"`
}

// WhatsAppConfigEnvelope respuesta con la configuración bajo su clave estándar.
type WhatsAppConfigEnvelope struct {
	Message string                 `json:"message,omitempty"`
	Config  WhatsAppConfigResponse `json:"config"`
}

// SendMenuLinkRequest envío del link del menú por WhatsApp.
type SendMenuLinkRequest struct {
	PhoneNumber   string `json:"phoneNumber" validate:"required"`
	CustomMessage string `json:"customMessage"`
}

// SendMenuLinkResponse resultado del envío.
type SendMenuLinkResponse struct {
	Message string `json:"message"`
	Data    struct {
		MessageID string `json:"messageId"`
		To        string `json:"to"`
	} `json:"data"`
}

// UploadStatusResponse resultado de publicar una imagen en el estado.
type UploadStatusResponse struct {
	Message string `json:"message"`
	Data    struct {
		MediaID  string `json:"mediaId"`
		StatusID string `json:"statusId"`
		ImageURL string `json:"imageUrl"`
	} `json:"data"`
}
