// Package cloudinary implementa el puerto ImageStore contra la API REST de
// Cloudinary con subidas firmadas. No requiere el SDK oficial.
package cloudinary

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/menuqr/menuqr-api/internal/application/ports"
	"github.com/menuqr/menuqr-api/internal/domain"
	"github.com/menuqr/menuqr-api/pkg/config"
)

// Verificar en tiempo de compilación que Client implementa ImageStore.
var _ ports.ImageStore = (*Client)(nil)

const baseURL = "https://api.cloudinary.com/v1_1"

// Client adaptador de almacenamiento de imágenes sobre Cloudinary.
type Client struct {
	cloudName  string
	apiKey     string
	apiSecret  string
	folder     string
	httpClient *http.Client
}

// NewClient construye el adaptador con las credenciales de la configuración.
func NewClient(cfg config.CloudinaryConfig) *Client {
	return &Client{
		cloudName: cfg.CloudName,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		folder:    cfg.Folder,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type destroyResponse struct {
	Result string `json:"result"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// sign calcula la firma de la petición: SHA-1 de los parámetros ordenados
// alfabéticamente, concatenados con el api secret.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.apiSecret))
	return hex.EncodeToString(sum[:])
}

// Upload sube una imagen firmada y devuelve su URL pública y public_id.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (*ports.UploadedImage, error) {
	if c.cloudName == "" || c.apiKey == "" || c.apiSecret == "" {
		return nil, domain.NewUpstreamError("cloudinary", "credenciales no configuradas", nil)
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	params := map[string]string{"timestamp": timestamp}
	if c.folder != "" {
		params["folder"] = c.folder
	}
	signature := c.sign(params)

	var body strings.Builder
	writer := multipart.NewWriter(&body)
	for k, v := range params {
		if err := writer.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if err := writer.WriteField("api_key", c.apiKey); err != nil {
		return nil, fmt.Errorf("write field api_key: %w", err)
	}
	if err := writer.WriteField("signature", signature); err != nil {
		return nil, fmt.Errorf("write field signature: %w", err)
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("copy file content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/image/upload", baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body.String()))
	if err != nil {
		return nil, fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewUpstreamError("cloudinary", "", err)
	}
	defer resp.Body.Close()

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, domain.NewUpstreamError("cloudinary", "respuesta ilegible", err)
	}
	if resp.StatusCode != http.StatusOK || out.Error != nil {
		msg := ""
		if out.Error != nil {
			msg = out.Error.Message
		}
		return nil, domain.NewUpstreamError("cloudinary", msg, nil)
	}
	return &ports.UploadedImage{URL: out.SecureURL, PublicID: out.PublicID}, nil
}

// Delete elimina una imagen por su public_id.
func (c *Client) Delete(ctx context.Context, publicID string) error {
	if c.cloudName == "" || c.apiKey == "" || c.apiSecret == "" {
		return domain.NewUpstreamError("cloudinary", "credenciales no configuradas", nil)
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	params := map[string]string{
		"public_id": publicID,
		"timestamp": timestamp,
	}
	signature := c.sign(params)

	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}
	form.Set("api_key", c.apiKey)
	form.Set("signature", signature)

	endpoint := fmt.Sprintf("%s/%s/image/destroy", baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create destroy request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.NewUpstreamError("cloudinary", "", err)
	}
	defer resp.Body.Close()

	var out destroyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.NewUpstreamError("cloudinary", "respuesta ilegible", err)
	}
	if out.Error != nil {
		return domain.NewUpstreamError("cloudinary", out.Error.Message, nil)
	}
	// "not found" se trata como borrado: la imagen ya no existe en el proveedor.
	if out.Result != "ok" && out.Result != "not found" {
		return domain.NewUpstreamError("cloudinary", "destroy result: "+out.Result, nil)
	}
	return nil
}
