package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrMenuNotFound       = errors.New("menú no encontrado")
	ErrItemNotFound       = errors.New("item no encontrado")
	ErrCategoryNotFound   = errors.New("categoría no encontrada")
	ErrEmailAlreadyExists = errors.New("ya existe un usuario con este email")
	ErrMenuAlreadyExists  = errors.New("ya existe un menú para este restaurante")
	ErrSlugAlreadyExists  = errors.New("el identificador de restaurante ya está en uso")
	ErrSlugExhausted      = errors.New("no se pudo generar un identificador único para el restaurante")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidCategory    = errors.New("categoría inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrWrongPassword      = errors.New("contraseña actual incorrecta")
	ErrAccountDisabled    = errors.New("cuenta desactivada")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	ErrWhatsAppNotConfigured = errors.New("whatsapp no está configurado para esta cuenta")
)

// UpstreamError representa una falla de un servicio externo (Cloudinary, WhatsApp).
// Message es el detalle extraído del envelope de error del proveedor cuando existe.
type UpstreamError struct {
	Provider string
	Message  string
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Provider + ": " + e.Message
	}
	return e.Provider + ": error del proveedor externo"
}

// Unwrap permite errors.Is/As sobre la causa.
func (e *UpstreamError) Unwrap() error { return e.Err }

// NewUpstreamError construye un error de proveedor externo.
func NewUpstreamError(provider, message string, err error) *UpstreamError {
	return &UpstreamError{Provider: provider, Message: message, Err: err}
}
