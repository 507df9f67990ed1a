package repository

import "github.com/menuqr/menuqr-api/internal/domain/entity"

// MenuRepository define el puerto de persistencia para Menu y sus colecciones.
// Existen dos adaptadores intercambiables elegidos por configuración:
// el relacional (tablas menus/categories/menu_items) y el documental
// (una fila JSONB por menú con categorías e items embebidos).
// GetByID y GetByRestaurantID devuelven el agregado completo.
type MenuRepository interface {
	Create(menu *entity.Menu) error
	GetByID(id string) (*entity.Menu, error)
	GetByRestaurantID(restaurantID string) (*entity.Menu, error)
	// ExistsByRestaurantID sondea el namespace de slugs del lado menú.
	ExistsByRestaurantID(restaurantID string) (bool, error)
	// Update persiste solo los campos propios del menú (no categorías ni items).
	Update(menu *entity.Menu) error
	// Delete elimina el menú con sus categorías e items (cascada).
	Delete(id string) error

	AddCategory(menuID string, category *entity.Category) error
	UpdateCategory(menuID string, category *entity.Category) error
	DeleteCategory(menuID, categoryID string) error

	AddItem(menuID string, item *entity.MenuItem) error
	UpdateItem(menuID string, item *entity.MenuItem) error
	DeleteItem(menuID, itemID string) error
}
