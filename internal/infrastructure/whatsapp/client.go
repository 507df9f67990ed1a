// Package whatsapp implementa el puerto MessagingService contra la
// Graph API de WhatsApp Business (Cloud API).
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/menuqr/menuqr-api/internal/application/ports"
	"github.com/menuqr/menuqr-api/internal/domain"
)

// Verificar en tiempo de compilación que Client implementa MessagingService.
var _ ports.MessagingService = (*Client)(nil)

const (
	graphBaseURL = "https://graph.facebook.com"
	graphVersion = "v18.0"

	// Destinatario especial para publicar en el estado de la cuenta.
	statusBroadcast = "status@broadcast"
)

// Client adaptador de mensajería sobre la Cloud API de WhatsApp.
// Las credenciales llegan por llamada: cada tenant tiene las suyas.
type Client struct {
	httpClient *http.Client
}

// NewClient construye el adaptador.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ── Estructuras del protocolo Graph API ───────────────────────────────────────

type textMessage struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		Body string `json:"body"`
	} `json:"text"`
}

type imageMessage struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Image            struct {
		ID      string `json:"id"`
		Caption string `json:"caption,omitempty"`
	} `json:"image"`
}

type graphResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	ID    string      `json:"id"` // respuesta del endpoint /media
	Error *graphError `json:"error"`
}

type graphError struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorUserMsg string `json:"error_user_msg"`
}

// detail prefiere el mensaje orientado al usuario cuando el proveedor lo da.
func (e *graphError) detail() string {
	if e.ErrorUserMsg != "" {
		return e.ErrorUserMsg
	}
	return e.Message
}

func (c *Client) endpoint(phoneNumberID, path string) string {
	return fmt.Sprintf("%s/%s/%s/%s", graphBaseURL, graphVersion, phoneNumberID, path)
}

func (c *Client) do(req *http.Request, accessToken string) (*graphResponse, error) {
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewUpstreamError("whatsapp", "", err)
	}
	defer resp.Body.Close()

	var out graphResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, domain.NewUpstreamError("whatsapp", "respuesta ilegible", err)
	}
	if out.Error != nil {
		return nil, domain.NewUpstreamError("whatsapp", out.Error.detail(), nil)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.NewUpstreamError("whatsapp", resp.Status, nil)
	}
	return &out, nil
}

// SendText envía un mensaje de texto y devuelve el ID del mensaje.
func (c *Client) SendText(ctx context.Context, creds ports.MessagingCredentials, to, body string) (string, error) {
	msg := textMessage{MessagingProduct: "whatsapp", To: to, Type: "text"}
	msg.Text.Body = body

	payload, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("marshal text message: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(creds.PhoneNumberID, "messages"), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create message request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	out, err := c.do(req, creds.AccessToken)
	if err != nil {
		return "", err
	}
	if len(out.Messages) == 0 {
		return "", domain.NewUpstreamError("whatsapp", "respuesta sin ID de mensaje", nil)
	}
	return out.Messages[0].ID, nil
}

// UploadStatusImage descarga la imagen alojada, la sube como media y la
// publica en el estado de la cuenta. Devuelve los IDs de media y estado.
func (c *Client) UploadStatusImage(ctx context.Context, creds ports.MessagingCredentials, imageURL, caption string) (*ports.StatusResult, error) {
	mediaID, err := c.uploadMedia(ctx, creds, imageURL)
	if err != nil {
		return nil, err
	}

	msg := imageMessage{MessagingProduct: "whatsapp", To: statusBroadcast, Type: "image"}
	msg.Image.ID = mediaID
	msg.Image.Caption = caption

	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal image message: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(creds.PhoneNumberID, "messages"), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create status request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	out, err := c.do(req, creds.AccessToken)
	if err != nil {
		return nil, err
	}
	if len(out.Messages) == 0 {
		return nil, domain.NewUpstreamError("whatsapp", "respuesta sin ID de estado", nil)
	}
	return &ports.StatusResult{MediaID: mediaID, StatusID: out.Messages[0].ID}, nil
}

// uploadMedia sube el binario de la imagen al endpoint /media del tenant.
func (c *Client) uploadMedia(ctx context.Context, creds ports.MessagingCredentials, imageURL string) (string, error) {
	imgReq, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("create image fetch request: %w", err)
	}
	imgResp, err := c.httpClient.Do(imgReq)
	if err != nil {
		return "", domain.NewUpstreamError("whatsapp", "no se pudo descargar la imagen alojada", err)
	}
	defer imgResp.Body.Close()
	if imgResp.StatusCode != http.StatusOK {
		return "", domain.NewUpstreamError("whatsapp", "no se pudo descargar la imagen alojada: "+imgResp.Status, nil)
	}
	contentType := imgResp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("messaging_product", "whatsapp"); err != nil {
		return "", fmt.Errorf("write field messaging_product: %w", err)
	}
	if err := writer.WriteField("type", contentType); err != nil {
		return "", fmt.Errorf("write field type: %w", err)
	}
	part, err := writer.CreateFormFile("file", "status-image")
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, imgResp.Body); err != nil {
		return "", fmt.Errorf("copy image content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(creds.PhoneNumberID, "media"), &body)
	if err != nil {
		return "", fmt.Errorf("create media request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	out, err := c.do(req, creds.AccessToken)
	if err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", domain.NewUpstreamError("whatsapp", "respuesta sin ID de media", nil)
	}
	return out.ID, nil
}
