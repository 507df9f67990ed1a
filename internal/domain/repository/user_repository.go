package repository

import (
	"time"

	"github.com/menuqr/menuqr-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// La implementación vive en infrastructure.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// ExistsByRestaurantID sondea el namespace de slugs del lado identidad.
	ExistsByRestaurantID(restaurantID string) (bool, error)
	Update(user *entity.User) error
	// UpdateLastLogin actualiza solo la marca de último login (best-effort en el caller).
	UpdateLastLogin(id string, at time.Time) error
}
