package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/menuqr/menuqr-api/internal/domain"
	"github.com/menuqr/menuqr-api/internal/domain/entity"
	"github.com/menuqr/menuqr-api/internal/domain/repository"
)

var _ repository.MenuRepository = (*MenuRepo)(nil)

// MenuRepo implementación relacional del puerto MenuRepository: tablas
// normalizadas menus, categories y menu_items. Theme, contact y settings
// viajan como JSONB dentro de la fila del menú.
type MenuRepo struct {
	q Querier
}

// NewMenuRepository construye el adaptador relacional de menús. Pasar pool o tx (Querier).
func NewMenuRepository(q Querier) *MenuRepo {
	return &MenuRepo{q: q}
}

// Create persiste el menú completo: fila del menú, categorías e items.
func (r *MenuRepo) Create(menu *entity.Menu) error {
	ctx := context.Background()
	query := `
		INSERT INTO menus (id, restaurant_id, restaurant_name, description,
			logo_url, logo_public_id, theme, contact, settings, is_active, owner_id,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		menu.ID, menu.RestaurantID, menu.RestaurantName, menu.Description,
		menu.Logo.URL, menu.Logo.PublicID, menu.Theme, menu.Contact, menu.Settings,
		menu.IsActive, menu.OwnerID, menu.CreatedAt, menu.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrMenuAlreadyExists
		}
		return fmt.Errorf("insert menu: %w", err)
	}
	for i := range menu.Categories {
		if err := r.AddCategory(menu.ID, &menu.Categories[i]); err != nil {
			return err
		}
	}
	for i := range menu.Items {
		if err := r.AddItem(menu.ID, &menu.Items[i]); err != nil {
			return err
		}
	}
	return nil
}

// GetByID obtiene el menú completo por ID. Devuelve nil sin error si no existe.
func (r *MenuRepo) GetByID(id string) (*entity.Menu, error) {
	return r.getBy(`WHERE id = $1`, id)
}

// GetByRestaurantID obtiene el menú completo por slug de restaurante.
func (r *MenuRepo) GetByRestaurantID(restaurantID string) (*entity.Menu, error) {
	return r.getBy(`WHERE restaurant_id = $1`, restaurantID)
}

// ExistsByRestaurantID verifica si el slug ya tiene menú.
func (r *MenuRepo) ExistsByRestaurantID(restaurantID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM menus WHERE restaurant_id = $1)`, restaurantID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists menu by restaurant id: %w", err)
	}
	return exists, nil
}

// Update actualiza solo los campos propios del menú (no categorías ni items).
func (r *MenuRepo) Update(menu *entity.Menu) error {
	query := `
		UPDATE menus SET
			restaurant_name = $2, description = $3,
			logo_url = $4, logo_public_id = $5,
			theme = $6, contact = $7, settings = $8, is_active = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		menu.ID, menu.RestaurantName, menu.Description,
		menu.Logo.URL, menu.Logo.PublicID,
		menu.Theme, menu.Contact, menu.Settings, menu.IsActive, menu.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update menu: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMenuNotFound
	}
	return nil
}

// Delete elimina el menú; categorías e items caen por FK ON DELETE CASCADE.
func (r *MenuRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM menus WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete menu: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMenuNotFound
	}
	return nil
}

// AddCategory inserta una categoría del menú.
func (r *MenuRepo) AddCategory(menuID string, c *entity.Category) error {
	query := `
		INSERT INTO categories (id, menu_id, name, description, image_url, image_public_id, is_active, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, menuID, c.Name, c.Description, c.Image.URL, c.Image.PublicID, c.IsActive, c.Position,
	)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// UpdateCategory actualiza una categoría del menú.
func (r *MenuRepo) UpdateCategory(menuID string, c *entity.Category) error {
	query := `
		UPDATE categories SET
			name = $3, description = $4, image_url = $5, image_public_id = $6, is_active = $7, position = $8
		WHERE id = $1 AND menu_id = $2`
	tag, err := r.q.Exec(context.Background(), query,
		c.ID, menuID, c.Name, c.Description, c.Image.URL, c.Image.PublicID, c.IsActive, c.Position,
	)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// DeleteCategory elimina la categoría; sus items caen por FK ON DELETE CASCADE.
func (r *MenuRepo) DeleteCategory(menuID, categoryID string) error {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM categories WHERE id = $1 AND menu_id = $2`, categoryID, menuID,
	)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// AddItem inserta un item del menú.
func (r *MenuRepo) AddItem(menuID string, it *entity.MenuItem) error {
	query := `
		INSERT INTO menu_items (id, menu_id, category_id, name, description,
			price, original_price, image_url, image_public_id,
			is_available, is_popular, is_vegetarian, is_vegan, is_gluten_free,
			spicy_level, allergens, nutritional_info, preparation_time, tags, position,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err := r.q.Exec(context.Background(), query,
		it.ID, menuID, it.CategoryID, it.Name, it.Description,
		it.Price, it.OriginalPrice, it.Image.URL, it.Image.PublicID,
		it.IsAvailable, it.IsPopular, it.IsVegetarian, it.IsVegan, it.IsGlutenFree,
		it.SpicyLevel, it.Allergens, it.NutritionalInfo, it.PreparationTime, it.Tags, it.Position,
		it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// UpdateItem actualiza un item del menú.
func (r *MenuRepo) UpdateItem(menuID string, it *entity.MenuItem) error {
	query := `
		UPDATE menu_items SET
			category_id = $3, name = $4, description = $5,
			price = $6, original_price = $7, image_url = $8, image_public_id = $9,
			is_available = $10, is_popular = $11, is_vegetarian = $12, is_vegan = $13, is_gluten_free = $14,
			spicy_level = $15, allergens = $16, nutritional_info = $17, preparation_time = $18,
			tags = $19, position = $20, updated_at = $21
		WHERE id = $1 AND menu_id = $2`
	tag, err := r.q.Exec(context.Background(), query,
		it.ID, menuID, it.CategoryID, it.Name, it.Description,
		it.Price, it.OriginalPrice, it.Image.URL, it.Image.PublicID,
		it.IsAvailable, it.IsPopular, it.IsVegetarian, it.IsVegan, it.IsGlutenFree,
		it.SpicyLevel, it.Allergens, it.NutritionalInfo, it.PreparationTime, it.Tags, it.Position,
		it.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// DeleteItem elimina un item del menú.
func (r *MenuRepo) DeleteItem(menuID, itemID string) error {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM menu_items WHERE id = $1 AND menu_id = $2`, itemID, menuID,
	)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *MenuRepo) getBy(where string, arg any) (*entity.Menu, error) {
	ctx := context.Background()
	query := `
		SELECT id, restaurant_id, restaurant_name, description,
			logo_url, logo_public_id, theme, contact, settings, is_active, owner_id,
			created_at, updated_at
		FROM menus ` + where
	var m entity.Menu
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&m.ID, &m.RestaurantID, &m.RestaurantName, &m.Description,
		&m.Logo.URL, &m.Logo.PublicID, &m.Theme, &m.Contact, &m.Settings,
		&m.IsActive, &m.OwnerID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get menu: %w", err)
	}

	if m.Categories, err = r.loadCategories(ctx, m.ID); err != nil {
		return nil, err
	}
	if m.Items, err = r.loadItems(ctx, m.ID); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MenuRepo) loadCategories(ctx context.Context, menuID string) ([]entity.Category, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, description, image_url, image_public_id, is_active, position
		FROM categories WHERE menu_id = $1
		ORDER BY position, seq`, menuID)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Image.URL, &c.Image.PublicID, &c.IsActive, &c.Position); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *MenuRepo) loadItems(ctx context.Context, menuID string) ([]entity.MenuItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, category_id, name, description, price, original_price,
			image_url, image_public_id,
			is_available, is_popular, is_vegetarian, is_vegan, is_gluten_free,
			spicy_level, allergens, nutritional_info, preparation_time, tags, position,
			created_at, updated_at
		FROM menu_items WHERE menu_id = $1
		ORDER BY position, seq`, menuID)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var out []entity.MenuItem
	for rows.Next() {
		var it entity.MenuItem
		if err := rows.Scan(
			&it.ID, &it.CategoryID, &it.Name, &it.Description, &it.Price, &it.OriginalPrice,
			&it.Image.URL, &it.Image.PublicID,
			&it.IsAvailable, &it.IsPopular, &it.IsVegetarian, &it.IsVegan, &it.IsGlutenFree,
			&it.SpicyLevel, &it.Allergens, &it.NutritionalInfo, &it.PreparationTime, &it.Tags, &it.Position,
			&it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
