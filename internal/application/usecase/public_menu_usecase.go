package usecase

import (
	"github.com/menuqr/menuqr-api/internal/application/dto"
	"github.com/menuqr/menuqr-api/internal/domain"
	"github.com/menuqr/menuqr-api/internal/domain/entity"
	"github.com/menuqr/menuqr-api/internal/domain/repository"
)

// PublicMenuUseCase proyección de solo lectura para comensales: filtra
// contenido inactivo y nunca expone credenciales del dueño.
type PublicMenuUseCase struct {
	menuRepo repository.MenuRepository
	userRepo repository.UserRepository
}

// NewPublicMenuUseCase construye el caso de uso público.
func NewPublicMenuUseCase(menuRepo repository.MenuRepository, userRepo repository.UserRepository) *PublicMenuUseCase {
	return &PublicMenuUseCase{menuRepo: menuRepo, userRepo: userRepo}
}

// project arma la vista pública: solo categorías activas con items
// disponibles, ordenadas por posición, más estadísticas y dueño resumido.
func (uc *PublicMenuUseCase) project(menu *entity.Menu) (*dto.MenuEnvelope, error) {
	stats := menu.ComputeStats()

	var owner *dto.OwnerSummary
	user, err := uc.userRepo.GetByID(menu.OwnerID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		owner = &dto.OwnerSummary{Name: user.Name, RestaurantName: user.RestaurantName}
	}

	resp := toMenuResponse(menu, menuProjection{
		onlyActive: true,
		stats:      &stats,
		owner:      owner,
	})
	return &dto.MenuEnvelope{Menu: resp}, nil
}

// GetByRestaurantID devuelve el menú público por slug. Un menú desactivado
// es indistinguible de uno inexistente para el comensal.
func (uc *PublicMenuUseCase) GetByRestaurantID(restaurantID string) (*dto.MenuEnvelope, error) {
	menu, err := uc.menuRepo.GetByRestaurantID(restaurantID)
	if err != nil {
		return nil, err
	}
	if menu == nil || !menu.IsActive {
		return nil, domain.ErrMenuNotFound
	}
	return uc.project(menu)
}

// GetByID devuelve el menú público por id interno.
func (uc *PublicMenuUseCase) GetByID(menuID string) (*dto.MenuEnvelope, error) {
	menu, err := uc.menuRepo.GetByID(menuID)
	if err != nil {
		return nil, err
	}
	if menu == nil || !menu.IsActive {
		return nil, domain.ErrMenuNotFound
	}
	return uc.project(menu)
}

// GetCategories devuelve solo las categorías activas del menú, sin items.
func (uc *PublicMenuUseCase) GetCategories(menuID string) (*dto.CategoriesEnvelope, error) {
	envelope, err := uc.GetByID(menuID)
	if err != nil {
		return nil, err
	}
	categories := make([]dto.CategoryResponse, 0, len(envelope.Menu.Categories))
	for _, c := range envelope.Menu.Categories {
		c.Items = nil
		categories = append(categories, c)
	}
	return &dto.CategoriesEnvelope{Categories: categories}, nil
}
