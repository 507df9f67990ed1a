package ports

import "context"

// MessagingCredentials credenciales por tenant para la plataforma de mensajería.
type MessagingCredentials struct {
	PhoneNumberID string
	AccessToken   string
}

// StatusResult identificadores devueltos al publicar una imagen en el estado.
type StatusResult struct {
	MediaID  string
	StatusID string
}

// MessagingService puerto hacia la plataforma de mensajería (WhatsApp Business).
// Toda falla 4xx/5xx del proveedor se devuelve como *domain.UpstreamError con el
// detalle extraído del envelope de error; nunca se reintenta.
type MessagingService interface {
	// SendText envía un mensaje de texto y devuelve el ID del mensaje.
	SendText(ctx context.Context, creds MessagingCredentials, to, body string) (string, error)
	// UploadStatusImage sube la imagen (por URL pública) y la publica en el estado.
	UploadStatusImage(ctx context.Context, creds MessagingCredentials, imageURL, caption string) (*StatusResult, error)
}
