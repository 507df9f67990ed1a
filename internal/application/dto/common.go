package dto

// ErrorResponse cuerpo de error HTTP estándar: mensaje legible más detalles
// de validación campo a campo cuando existen.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// MessageResponse respuesta de operaciones sin recurso (ej. delete).
type MessageResponse struct {
	Message string `json:"message"`
}
