package dto

import (
	"time"

	"github.com/menuqr/menuqr-api/internal/domain/entity"
)

// RegisterRequest entrada de registro: crea identidad + menú en una transacción.
// RestaurantID permite reservar un slug personalizado; si falta se deriva del nombre.
type RegisterRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=100"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	RestaurantName string `json:"restaurantName" validate:"required,min=2,max=100"`
	RestaurantID   string `json:"restaurantId" validate:"omitempty,min=2,max=100"`
}

// LoginRequest entrada de login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest patch del perfil: campo ausente = sin cambio.
type UpdateProfileRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=2,max=100"`
	RestaurantName *string `json:"restaurantName" validate:"omitempty,min=2,max=100"`
	Avatar         *string `json:"avatar"`
}

// ChangePasswordRequest cambio de contraseña del propio usuario.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// UserResponse proyección pública de la identidad: nunca incluye el hash de
// contraseña ni los tokens de WhatsApp.
type UserResponse struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name"`
	Email          string                  `json:"email"`
	Role           string                  `json:"role"`
	RestaurantID   string                  `json:"restaurantId"`
	RestaurantName string                  `json:"restaurantName"`
	Avatar         string                  `json:"avatar,omitempty"`
	IsActive       bool                    `json:"isActive"`
	LastLogin      *time.Time              `json:"lastLogin,omitempty"`
	WhatsAppConfig *WhatsAppConfigResponse `json:"whatsappConfig,omitempty"`
	CreatedAt      time.Time               `json:"createdAt"`
	UpdatedAt      time.Time               `json:"updatedAt"`
}

// RegisteredMenu resumen del menú recién creado en el registro.
type RegisteredMenu struct {
	ID           string `json:"id"`
	RestaurantID string `json:"restaurantId"`
	URL          string `json:"url"`
}

// RegisterResponse salida del registro: token + usuario + menú con su URL pública.
type RegisterResponse struct {
	Message string         `json:"message"`
	Token   string         `json:"token"`
	User    UserResponse   `json:"user"`
	Menu    RegisteredMenu `json:"menu"`
}

// LoginResponse salida del login.
type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// ProfileResponse envuelve al usuario bajo su clave estándar.
type ProfileResponse struct {
	Message string       `json:"message,omitempty"`
	User    UserResponse `json:"user"`
}

// ToUserResponse proyecta la entidad al DTO. withWhatsApp controla si se
// incluye la vista enmascarada de la configuración de WhatsApp (solo perfil).
func ToUserResponse(u *entity.User, withWhatsApp bool) UserResponse {
	out := UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role,
		RestaurantID:   u.RestaurantID,
		RestaurantName: u.RestaurantName,
		Avatar:         u.Avatar,
		IsActive:       u.IsActive,
		LastLogin:      u.LastLoginAt,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
	if withWhatsApp {
		out.WhatsAppConfig = &WhatsAppConfigResponse{
			PhoneNumber: u.WhatsApp.PhoneNumber,
			IsEnabled:   u.WhatsApp.IsEnabled,
			HasTokens:   u.WhatsApp.HasTokens(),
		}
	}
	return out
}
