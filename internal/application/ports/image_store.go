package ports

import (
	"context"
	"io"
)

// UploadedImage resultado de subir una imagen al almacenamiento externo.
// PublicID es el handle que permite eliminarla después.
type UploadedImage struct {
	URL      string
	PublicID string
}

// ImageStore puerto hacia el proveedor externo de imágenes (Cloudinary).
// La implementación vive en infrastructure; los casos de uso solo conocen
// subir y eliminar por handle.
type ImageStore interface {
	Upload(ctx context.Context, filename string, content io.Reader) (*UploadedImage, error)
	Delete(ctx context.Context, publicID string) error
}
