// Package docstore implementa el repositorio de menús como documento:
// una fila JSONB por menú en la tabla menu_documents. Es la alternativa
// a la variante relacional, seleccionable con STORAGE_DRIVER=document.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/menuqr/menuqr-api/internal/domain"
	"github.com/menuqr/menuqr-api/internal/domain/entity"
	"github.com/menuqr/menuqr-api/internal/domain/repository"
	"github.com/menuqr/menuqr-api/internal/infrastructure/postgres"
)

var _ repository.MenuRepository = (*MenuRepo)(nil)

// MenuRepo repositorio documental de menús sobre PostgreSQL (JSONB).
type MenuRepo struct {
	q postgres.Querier
}

// NewMenuRepository construye el adaptador documental. Pasar pool o tx (Querier).
func NewMenuRepository(q postgres.Querier) *MenuRepo {
	return &MenuRepo{q: q}
}

// menuDoc es la forma serializada del agregado dentro de la columna doc.
// Las columnas id, restaurant_id, owner_id e is_active se duplican fuera
// del documento para poder indexar y filtrar sin deserializar.
type menuDoc struct {
	ID             string          `json:"id"`
	RestaurantID   string          `json:"restaurantId"`
	RestaurantName string          `json:"restaurantName"`
	Description    string          `json:"description,omitempty"`
	Logo           entity.Image    `json:"logo"`
	Theme          entity.Theme    `json:"theme"`
	Contact        entity.Contact  `json:"contact"`
	Settings       entity.Settings `json:"settings"`
	IsActive       bool            `json:"isActive"`
	OwnerID        string          `json:"ownerId"`
	Categories     []categoryDoc   `json:"categories"`
	Items          []itemDoc       `json:"items"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type categoryDoc struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Image       entity.Image `json:"image"`
	IsActive    bool         `json:"isActive"`
	Position    int          `json:"position"`
}

type itemDoc struct {
	ID              string                 `json:"id"`
	CategoryID      string                 `json:"categoryId"`
	Name            string                 `json:"name"`
	Description     string                 `json:"description,omitempty"`
	Price           decimal.Decimal        `json:"price"`
	OriginalPrice   *decimal.Decimal       `json:"originalPrice,omitempty"`
	Image           entity.Image           `json:"image"`
	IsAvailable     bool                   `json:"isAvailable"`
	IsPopular       bool                   `json:"isPopular"`
	IsVegetarian    bool                   `json:"isVegetarian"`
	IsVegan         bool                   `json:"isVegan"`
	IsGlutenFree    bool                   `json:"isGlutenFree"`
	SpicyLevel      int                    `json:"spicyLevel"`
	Allergens       []string               `json:"allergens,omitempty"`
	NutritionalInfo entity.NutritionalInfo `json:"nutritionalInfo"`
	PreparationTime *int                   `json:"preparationTime,omitempty"`
	Tags            []string               `json:"tags,omitempty"`
	Position        int                    `json:"position"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

func toDoc(m *entity.Menu) menuDoc {
	doc := menuDoc{
		ID:             m.ID,
		RestaurantID:   m.RestaurantID,
		RestaurantName: m.RestaurantName,
		Description:    m.Description,
		Logo:           m.Logo,
		Theme:          m.Theme,
		Contact:        m.Contact,
		Settings:       m.Settings,
		IsActive:       m.IsActive,
		OwnerID:        m.OwnerID,
		Categories:     make([]categoryDoc, 0, len(m.Categories)),
		Items:          make([]itemDoc, 0, len(m.Items)),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	for _, c := range m.Categories {
		doc.Categories = append(doc.Categories, categoryDoc(c))
	}
	for _, it := range m.Items {
		doc.Items = append(doc.Items, itemDoc(it))
	}
	return doc
}

func fromDoc(doc menuDoc) *entity.Menu {
	m := &entity.Menu{
		ID:             doc.ID,
		RestaurantID:   doc.RestaurantID,
		RestaurantName: doc.RestaurantName,
		Description:    doc.Description,
		Logo:           doc.Logo,
		Theme:          doc.Theme,
		Contact:        doc.Contact,
		Settings:       doc.Settings,
		IsActive:       doc.IsActive,
		OwnerID:        doc.OwnerID,
		Categories:     make([]entity.Category, 0, len(doc.Categories)),
		Items:          make([]entity.MenuItem, 0, len(doc.Items)),
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
	for _, c := range doc.Categories {
		m.Categories = append(m.Categories, entity.Category(c))
	}
	for _, it := range doc.Items {
		m.Items = append(m.Items, entity.MenuItem(it))
	}
	return m
}

// Create inserta el documento completo del menú.
func (r *MenuRepo) Create(menu *entity.Menu) error {
	query := `
		INSERT INTO menu_documents (id, restaurant_id, owner_id, is_active, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		menu.ID, menu.RestaurantID, menu.OwnerID, menu.IsActive, toDoc(menu),
		menu.CreatedAt, menu.UpdatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return domain.ErrMenuAlreadyExists
		}
		return fmt.Errorf("insert menu document: %w", err)
	}
	return nil
}

// GetByID obtiene el menú por ID. Devuelve nil sin error si no existe.
func (r *MenuRepo) GetByID(id string) (*entity.Menu, error) {
	return r.getBy(`WHERE id = $1`, id)
}

// GetByRestaurantID obtiene el menú por slug de restaurante.
func (r *MenuRepo) GetByRestaurantID(restaurantID string) (*entity.Menu, error) {
	return r.getBy(`WHERE restaurant_id = $1`, restaurantID)
}

// ExistsByRestaurantID verifica si el slug ya tiene menú.
func (r *MenuRepo) ExistsByRestaurantID(restaurantID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM menu_documents WHERE restaurant_id = $1)`, restaurantID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists menu document: %w", err)
	}
	return exists, nil
}

// Update reemplaza los campos propios del menú dentro del documento,
// conservando categorías e items tal como están almacenados.
func (r *MenuRepo) Update(menu *entity.Menu) error {
	return r.mutate(menu.ID, func(doc *menuDoc) error {
		doc.RestaurantName = menu.RestaurantName
		doc.Description = menu.Description
		doc.Logo = menu.Logo
		doc.Theme = menu.Theme
		doc.Contact = menu.Contact
		doc.Settings = menu.Settings
		doc.IsActive = menu.IsActive
		return nil
	})
}

// Delete elimina el documento completo.
func (r *MenuRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM menu_documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete menu document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMenuNotFound
	}
	return nil
}

// AddCategory agrega la categoría al documento.
func (r *MenuRepo) AddCategory(menuID string, c *entity.Category) error {
	return r.mutate(menuID, func(doc *menuDoc) error {
		doc.Categories = append(doc.Categories, categoryDoc(*c))
		return nil
	})
}

// UpdateCategory reemplaza la categoría dentro del documento.
func (r *MenuRepo) UpdateCategory(menuID string, c *entity.Category) error {
	return r.mutate(menuID, func(doc *menuDoc) error {
		for i := range doc.Categories {
			if doc.Categories[i].ID == c.ID {
				doc.Categories[i] = categoryDoc(*c)
				return nil
			}
		}
		return domain.ErrCategoryNotFound
	})
}

// DeleteCategory quita la categoría y sus items del documento.
func (r *MenuRepo) DeleteCategory(menuID, categoryID string) error {
	return r.mutate(menuID, func(doc *menuDoc) error {
		idx := -1
		for i := range doc.Categories {
			if doc.Categories[i].ID == categoryID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return domain.ErrCategoryNotFound
		}
		doc.Categories = append(doc.Categories[:idx], doc.Categories[idx+1:]...)

		kept := doc.Items[:0]
		for _, it := range doc.Items {
			if it.CategoryID != categoryID {
				kept = append(kept, it)
			}
		}
		doc.Items = kept
		return nil
	})
}

// AddItem agrega el item al documento.
func (r *MenuRepo) AddItem(menuID string, it *entity.MenuItem) error {
	return r.mutate(menuID, func(doc *menuDoc) error {
		doc.Items = append(doc.Items, itemDoc(*it))
		return nil
	})
}

// UpdateItem reemplaza el item dentro del documento.
func (r *MenuRepo) UpdateItem(menuID string, it *entity.MenuItem) error {
	return r.mutate(menuID, func(doc *menuDoc) error {
		for i := range doc.Items {
			if doc.Items[i].ID == it.ID {
				doc.Items[i] = itemDoc(*it)
				return nil
			}
		}
		return domain.ErrItemNotFound
	})
}

// DeleteItem quita el item del documento.
func (r *MenuRepo) DeleteItem(menuID, itemID string) error {
	return r.mutate(menuID, func(doc *menuDoc) error {
		for i := range doc.Items {
			if doc.Items[i].ID == itemID {
				doc.Items = append(doc.Items[:i], doc.Items[i+1:]...)
				return nil
			}
		}
		return domain.ErrItemNotFound
	})
}

func (r *MenuRepo) getBy(where string, arg any) (*entity.Menu, error) {
	var doc menuDoc
	err := r.q.QueryRow(context.Background(),
		`SELECT doc FROM menu_documents `+where, arg,
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get menu document: %w", err)
	}
	return fromDoc(doc), nil
}

// beginner abre una transacción sobre el Querier subyacente. Lo satisfacen
// *pgxpool.Pool y pgx.Tx (en transacción se anida como savepoint).
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// mutate lee el documento con FOR UPDATE, aplica fn y lo reescribe junto con
// las columnas duplicadas. La lectura y la escritura corren dentro de una
// misma transacción para que el candado de fila cubra toda la mutación.
func (r *MenuRepo) mutate(menuID string, fn func(doc *menuDoc) error) error {
	ctx := context.Background()

	b, ok := r.q.(beginner)
	if !ok {
		return r.mutateOn(ctx, r.q, menuID, fn)
	}

	tx, err := b.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin menu mutation: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := r.mutateOn(ctx, tx, menuID, fn); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit menu mutation: %w", err)
	}
	return nil
}

func (r *MenuRepo) mutateOn(ctx context.Context, q postgres.Querier, menuID string, fn func(doc *menuDoc) error) error {
	var doc menuDoc
	err := q.QueryRow(ctx,
		`SELECT doc FROM menu_documents WHERE id = $1 FOR UPDATE`, menuID,
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrMenuNotFound
		}
		return fmt.Errorf("load menu document: %w", err)
	}

	if err := fn(&doc); err != nil {
		return err
	}
	doc.UpdatedAt = time.Now()

	_, err = q.Exec(ctx, `
		UPDATE menu_documents SET
			restaurant_id = $2, owner_id = $3, is_active = $4, doc = $5, updated_at = $6
		WHERE id = $1`,
		menuID, doc.RestaurantID, doc.OwnerID, doc.IsActive, doc, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("store menu document: %w", err)
	}
	return nil
}
