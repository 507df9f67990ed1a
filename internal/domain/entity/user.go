package entity

import "time"

// Roles válidos para User. "admin" es el rol por defecto de un dueño de
// restaurante auto-registrado; "owner" es superusuario y salta los chequeos
// de propiedad; "user" existe por compatibilidad pero no administra nada.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleOwner = "owner"
)

// User representa la identidad autenticable de un tenant (el administrador del restaurante).
type User struct {
	ID             string
	Name           string
	Email          string
	PasswordHash   string // bcrypt hash, nunca plano en dominio después de persistir
	Role           string // user, admin, owner
	RestaurantID   string // slug único del tenant, inmutable después del registro
	RestaurantName string
	Avatar         string // URL opcional
	IsActive       bool
	LastLoginAt    *time.Time // nil hasta el primer login; actualización best-effort
	WhatsApp       WhatsAppConfig
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// WhatsAppConfig credenciales de WhatsApp Business del tenant.
// AccessToken y PhoneNumberID nunca se serializan hacia afuera.
type WhatsAppConfig struct {
	PhoneNumber   string
	AccessToken   string
	PhoneNumberID string
	IsEnabled     bool
}

// HasTokens indica si la configuración tiene credenciales completas.
func (c WhatsAppConfig) HasTokens() bool {
	return c.AccessToken != "" && c.PhoneNumberID != ""
}

// CanAdminister indica si el rol puede acceder al panel de administración.
func (u *User) CanAdminister() bool {
	return u.Role == RoleAdmin || u.Role == RoleOwner
}

// CanManageMenu aplica la regla de propiedad: el owner salta el chequeo,
// el resto solo administra el menú del que es dueño.
func (u *User) CanManageMenu(menuOwnerID string) bool {
	return u.Role == RoleOwner || u.ID == menuOwnerID
}
