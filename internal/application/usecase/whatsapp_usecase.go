package usecase

import (
	"context"
	"time"

	"github.com/menuqr/menuqr-api/internal/application/dto"
	"github.com/menuqr/menuqr-api/internal/application/ports"
	"github.com/menuqr/menuqr-api/internal/domain"
	"github.com/menuqr/menuqr-api/internal/domain/entity"
	"github.com/menuqr/menuqr-api/internal/domain/repository"
	"github.com/menuqr/menuqr-api/pkg/logger"
)

// WhatsAppUseCase puente con WhatsApp Business: configuración por tenant,
// envío del link del menú y publicación de imágenes en el estado.
type WhatsAppUseCase struct {
	userRepo      repository.UserRepository
	messaging     ports.MessagingService
	images        ports.ImageStore
	publicBaseURL string
	log           *logger.Logger
}

// NewWhatsAppUseCase construye el caso de uso de WhatsApp.
func NewWhatsAppUseCase(userRepo repository.UserRepository, messaging ports.MessagingService, images ports.ImageStore, publicBaseURL string, log *logger.Logger) *WhatsAppUseCase {
	return &WhatsAppUseCase{
		userRepo:      userRepo,
		messaging:     messaging,
		images:        images,
		publicBaseURL: publicBaseURL,
		log:           log,
	}
}

func maskConfig(cfg entity.WhatsAppConfig) dto.WhatsAppConfigResponse {
	return dto.WhatsAppConfigResponse{
		PhoneNumber: cfg.PhoneNumber,
		IsEnabled:   cfg.IsEnabled,
		HasTokens:   cfg.HasTokens(),
	}
}

func (uc *WhatsAppUseCase) loadUser(userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// credentials valida que la cuenta tenga WhatsApp habilitado y con tokens.
func (uc *WhatsAppUseCase) credentials(user *entity.User) (ports.MessagingCredentials, error) {
	if !user.WhatsApp.IsEnabled || !user.WhatsApp.HasTokens() {
		return ports.MessagingCredentials{}, domain.ErrWhatsAppNotConfigured
	}
	return ports.MessagingCredentials{
		PhoneNumberID: user.WhatsApp.PhoneNumberID,
		AccessToken:   user.WhatsApp.AccessToken,
	}, nil
}

// GetConfig devuelve la configuración enmascarada del tenant.
func (uc *WhatsAppUseCase) GetConfig(userID string) (*dto.WhatsAppConfigEnvelope, error) {
	user, err := uc.loadUser(userID)
	if err != nil {
		return nil, err
	}
	return &dto.WhatsAppConfigEnvelope{Config: maskConfig(user.WhatsApp)}, nil
}

// UpdateConfig aplica el patch de configuración. Los tokens se aceptan en la
// entrada pero la respuesta siempre vuelve enmascarada.
func (uc *WhatsAppUseCase) UpdateConfig(userID string, in dto.UpdateWhatsAppConfigRequest) (*dto.WhatsAppConfigEnvelope, error) {
	user, err := uc.loadUser(userID)
	if err != nil {
		return nil, err
	}

	if in.PhoneNumber != nil {
		user.WhatsApp.PhoneNumber = *in.PhoneNumber
	}
	if in.AccessToken != nil {
		user.WhatsApp.AccessToken = *in.AccessToken
	}
	if in.PhoneNumberID != nil {
		user.WhatsApp.PhoneNumberID = *in.PhoneNumberID
	}
	if in.IsEnabled != nil {
		user.WhatsApp.IsEnabled = *in.IsEnabled
	}
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return &dto.WhatsAppConfigEnvelope{
		Message: "Configuración de WhatsApp actualizada",
		Config:  maskConfig(user.WhatsApp),
	}, nil
}

// SendMenuLink envía el link público del menú al número indicado. Sin mensaje
// custom se usa el texto por defecto con el nombre del restaurante.
func (uc *WhatsAppUseCase) SendMenuLink(ctx context.Context, userID string, in dto.SendMenuLinkRequest) (*dto.SendMenuLinkResponse, error) {
	user, err := uc.loadUser(userID)
	if err != nil {
		return nil, err
	}
	creds, err := uc.credentials(user)
	if err != nil {
		return nil, err
	}

	menuURL := uc.publicBaseURL + "/" + user.RestaurantID
	body := in.CustomMessage
	if body == "" {
		body = "¡Hola! Te comparto el menú de " + user.RestaurantName + ": " + menuURL
	}

	messageID, err := uc.messaging.SendText(ctx, creds, in.PhoneNumber, body)
	if err != nil {
		return nil, err
	}

	resp := &dto.SendMenuLinkResponse{Message: "Mensaje enviado exitosamente"}
	resp.Data.MessageID = messageID
	resp.Data.To = in.PhoneNumber
	return resp, nil
}

// UploadStatus publica una imagen en el estado de WhatsApp. La imagen se aloja
// primero en el almacenamiento externo; si el proveedor de mensajería falla,
// la imagen alojada se conserva.
func (uc *WhatsAppUseCase) UploadStatus(ctx context.Context, userID string, image *ImageUpload, caption string) (*dto.UploadStatusResponse, error) {
	user, err := uc.loadUser(userID)
	if err != nil {
		return nil, err
	}
	creds, err := uc.credentials(user)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, domain.ErrInvalidInput
	}

	uploaded, err := uc.images.Upload(ctx, image.Filename, image.Content)
	if err != nil {
		return nil, err
	}

	result, err := uc.messaging.UploadStatusImage(ctx, creds, uploaded.URL, caption)
	if err != nil {
		uc.log.Tenant(user.RestaurantID).Warn().Err(err).Str("public_id", uploaded.PublicID).Msg("falló la publicación del estado, la imagen alojada se conserva")
		return nil, err
	}

	resp := &dto.UploadStatusResponse{Message: "Estado publicado exitosamente"}
	resp.Data.MediaID = result.MediaID
	resp.Data.StatusID = result.StatusID
	resp.Data.ImageURL = uploaded.URL
	return resp, nil
}
