package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/menuqr/menuqr-api/internal/application/usecase"
	"github.com/menuqr/menuqr-api/pkg/config"
)

// isMultipart indica si el request trae multipart/form-data (campos + imagen).
func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), "multipart/form-data")
}

// imageFromForm extrae y valida la imagen del campo dado. Devuelve nil sin
// error si el campo no viene. El contenido se lee completo a memoria
// (el límite de tamaño ya lo acota).
func imageFromForm(c *fiber.Ctx, field string, cfg config.UploadConfig) (*usecase.ImageUpload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	if fh.Size > cfg.MaxSizeBytes() {
		return nil, fmt.Errorf("el archivo excede el tamaño máximo de %d MB", cfg.MaxSizeMB)
	}
	contentType := fh.Header.Get("Content-Type")
	allowed := false
	for _, t := range cfg.AllowedTypes {
		if t == contentType {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("tipo de archivo no permitido: %s", contentType)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("abrir archivo: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("leer archivo: %w", err)
	}
	return &usecase.ImageUpload{Filename: fh.Filename, Content: bytes.NewReader(data)}, nil
}

// formReader lee campos tipados de un formulario multipart. Los campos
// compuestos (theme, contact, settings) viajan como JSON embebido.
type formReader struct {
	form *multipart.Form
}

func newFormReader(c *fiber.Ctx) (*formReader, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("formulario inválido: %w", err)
	}
	return &formReader{form: form}, nil
}

func (f *formReader) str(key string) (string, bool) {
	vs := f.form.Value[key]
	if len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

func (f *formReader) strPtr(key string) *string {
	if v, ok := f.str(key); ok {
		return &v
	}
	return nil
}

func (f *formReader) boolPtr(key string) (*bool, error) {
	v, ok := f.str(key)
	if !ok {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, fmt.Errorf("%s: valor booleano inválido", key)
	}
	return &b, nil
}

func (f *formReader) intPtr(key string) (*int, error) {
	v, ok := f.str(key)
	if !ok {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%s: valor numérico inválido", key)
	}
	return &n, nil
}

func (f *formReader) decimalPtr(key string) (*decimal.Decimal, error) {
	v, ok := f.str(key)
	if !ok {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, fmt.Errorf("%s: valor decimal inválido", key)
	}
	return &d, nil
}

// strSlice acepta el campo repetido o un único valor con un array JSON.
func (f *formReader) strSlice(key string) ([]string, error) {
	vs := f.form.Value[key]
	if len(vs) == 0 {
		return nil, nil
	}
	if len(vs) == 1 && strings.HasPrefix(strings.TrimSpace(vs[0]), "[") {
		var out []string
		if err := json.Unmarshal([]byte(vs[0]), &out); err != nil {
			return nil, fmt.Errorf("%s: array JSON inválido", key)
		}
		return out, nil
	}
	return vs, nil
}

// jsonInto deserializa un campo JSON embebido en dst. Devuelve false si el
// campo no viene.
func (f *formReader) jsonInto(key string, dst any) (bool, error) {
	v, ok := f.str(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(v), dst); err != nil {
		return false, fmt.Errorf("%s: JSON inválido", key)
	}
	return true, nil
}
