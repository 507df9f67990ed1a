package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/menuqr/menuqr-api/internal/application/dto"
	"github.com/menuqr/menuqr-api/internal/domain"
	"github.com/menuqr/menuqr-api/internal/domain/entity"
	"github.com/menuqr/menuqr-api/internal/domain/repository"
	"github.com/menuqr/menuqr-api/internal/domain/slug"
	"github.com/menuqr/menuqr-api/pkg/jwt"
	"github.com/menuqr/menuqr-api/pkg/logger"
)

// passwordCost costo bcrypt fijo; idéntico en registro y cambio de contraseña.
const passwordCost = 12

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TxRunner ejecuta el alta de identidad + menú dentro de una transacción,
// con repos atados a la misma tx. La implementación vive en infrastructure.
type TxRunner interface {
	Run(ctx context.Context, fn func(users repository.UserRepository, menus repository.MenuRepository) error) error
}

// AuthUseCase casos de uso de identidad: registro, login, perfil y contraseña.
type AuthUseCase struct {
	userRepo      repository.UserRepository
	menuRepo      repository.MenuRepository
	txRunner      TxRunner
	jwtCfg        JWTConfig
	publicBaseURL string
	log           *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, menuRepo repository.MenuRepository, txRunner TxRunner, jwtCfg JWTConfig, publicBaseURL string, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{
		userRepo:      userRepo,
		menuRepo:      menuRepo,
		txRunner:      txRunner,
		jwtCfg:        jwtCfg,
		publicBaseURL: publicBaseURL,
		log:           log,
	}
}

// MenuURL construye la URL pública de un menú a partir de su slug.
func (uc *AuthUseCase) MenuURL(restaurantID string) string {
	return uc.publicBaseURL + "/" + restaurantID
}

// Register crea identidad + menú del tenant en una transacción.
// El slug se resuelve antes del commit sondeando ambos namespaces; la ventana
// entre sondeo y commit es una limitación conocida, cubierta además por los
// constraints únicos de la DB.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	existing, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	restaurantID, err := uc.allocateSlug(in.RestaurantName, in.RestaurantID)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), passwordCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Email:          email,
		PasswordHash:   string(hash),
		Role:           entity.RoleAdmin,
		RestaurantID:   restaurantID,
		RestaurantName: in.RestaurantName,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	menu := &entity.Menu{
		ID:             uuid.New().String(),
		RestaurantID:   restaurantID,
		RestaurantName: in.RestaurantName,
		Theme:          entity.DefaultTheme(),
		Settings:       entity.DefaultSettings(),
		IsActive:       true,
		OwnerID:        user.ID,
		Categories:     defaultCategories(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.txRunner.Run(ctx, func(users repository.UserRepository, menus repository.MenuRepository) error {
		if err := users.Create(user); err != nil {
			return err
		}
		return menus.Create(menu)
	})
	if err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{
		Message: "Usuario registrado exitosamente",
		Token:   token,
		User:    dto.ToUserResponse(user, false),
		Menu: dto.RegisteredMenu{
			ID:           menu.ID,
			RestaurantID: restaurantID,
			URL:          uc.MenuURL(restaurantID),
		},
	}, nil
}

// allocateSlug resuelve el identificador único del tenant. Un slug
// personalizado se usa literal como primer candidato; si no, la base se
// deriva del nombre. Cada candidato debe estar libre en AMBOS namespaces.
func (uc *AuthUseCase) allocateSlug(restaurantName, custom string) (string, error) {
	base := custom
	if base == "" {
		base = slug.Normalize(restaurantName)
	}
	if base == "" {
		return "", domain.ErrInvalidInput
	}

	for i := 0; i < slug.MaxAttempts; i++ {
		candidate := slug.Candidate(base, i)
		taken, err := uc.slugTaken(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", domain.ErrSlugExhausted
}

func (uc *AuthUseCase) slugTaken(candidate string) (bool, error) {
	inUsers, err := uc.userRepo.ExistsByRestaurantID(candidate)
	if err != nil {
		return false, err
	}
	if inUsers {
		return true, nil
	}
	return uc.menuRepo.ExistsByRestaurantID(candidate)
}

// defaultCategories estructura inicial de todo menú recién registrado.
func defaultCategories() []entity.Category {
	names := []struct{ name, desc string }{
		{"Entradas", "Aperitivos y entradas"},
		{"Principales", "Platos principales"},
		{"Postres", "Postres y dulces"},
		{"Bebidas", "Bebidas y refrescos"},
	}
	out := make([]entity.Category, 0, len(names))
	for i, n := range names {
		out = append(out, entity.Category{
			ID:          uuid.New().String(),
			Name:        n.name,
			Description: n.desc,
			IsActive:    true,
			Position:    i,
		})
	}
	return out
}

// Login verifica credenciales, rechaza cuentas desactivadas y emite el token.
// La actualización de último login es best-effort: su falla solo se loguea.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	// Cuenta desactivada: se responde antes de comparar la contraseña.
	if !user.IsActive {
		return nil, domain.ErrAccountDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now()
	if err := uc.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("no se pudo actualizar el último login")
	} else {
		user.LastLoginAt = &now
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Message: "Inicio de sesión exitoso",
		Token:   token,
		User:    dto.ToUserResponse(user, false),
	}, nil
}

// GetProfile devuelve el perfil del usuario autenticado (con vista enmascarada de WhatsApp).
func (uc *AuthUseCase) GetProfile(userID string) (*dto.ProfileResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := dto.ToUserResponse(user, true)
	return &dto.ProfileResponse{User: resp}, nil
}

// UpdateProfile aplica el patch del perfil. Si cambia el nombre del
// restaurante, se refleja también en el menú del tenant.
func (uc *AuthUseCase) UpdateProfile(userID string, in dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	renamed := false
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.RestaurantName != nil && *in.RestaurantName != user.RestaurantName {
		user.RestaurantName = *in.RestaurantName
		renamed = true
	}
	if in.Avatar != nil {
		user.Avatar = *in.Avatar
	}
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}

	if renamed {
		menu, err := uc.menuRepo.GetByRestaurantID(user.RestaurantID)
		if err != nil {
			return nil, err
		}
		if menu != nil {
			menu.RestaurantName = user.RestaurantName
			menu.UpdatedAt = time.Now()
			if err := uc.menuRepo.Update(menu); err != nil {
				return nil, err
			}
		}
	}

	return &dto.ProfileResponse{
		Message: "Perfil actualizado exitosamente",
		User:    dto.ToUserResponse(user, false),
	}, nil
}

// ChangePassword verifica la contraseña actual y persiste el hash de la nueva
// con el mismo costo que en el registro.
func (uc *AuthUseCase) ChangePassword(userID string, in dto.ChangePasswordRequest) error {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), passwordCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(user)
}
