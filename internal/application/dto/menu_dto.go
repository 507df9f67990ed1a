package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/menuqr/menuqr-api/internal/domain/entity"
)

// CreateMenuRequest entrada para crear el menú del tenant (uno por restaurante).
// Theme/Contact/Settings ausentes toman los valores por defecto.
type CreateMenuRequest struct {
	RestaurantName string          `json:"restaurantName" form:"restaurantName" validate:"required,min=2,max=100"`
	Description    string          `json:"description" form:"description" validate:"max=500"`
	Theme          *entity.Theme   `json:"theme"`
	Contact        *entity.Contact `json:"contact"`
	Settings       *SettingsPatch  `json:"settings"`
}

// UpdateMenuRequest patch del menú: campo ausente = sin cambio.
type UpdateMenuRequest struct {
	RestaurantName *string         `json:"restaurantName" form:"restaurantName" validate:"omitempty,min=2,max=100"`
	Description    *string         `json:"description" form:"description" validate:"omitempty,max=500"`
	IsActive       *bool           `json:"isActive"`
	Theme          *entity.Theme   `json:"theme"`
	Contact        *entity.Contact `json:"contact"`
	Settings       *SettingsPatch  `json:"settings"`
}

// SettingsPatch merge campo a campo de la configuración de presentación.
type SettingsPatch struct {
	ShowPrices          *bool   `json:"showPrices"`
	ShowImages          *bool   `json:"showImages"`
	ShowDescriptions    *bool   `json:"showDescriptions"`
	ShowNutritionalInfo *bool   `json:"showNutritionalInfo"`
	AllowOrdering       *bool   `json:"allowOrdering"`
	Currency            *string `json:"currency"`
	Language            *string `json:"language"`
}

// CategoryRequest alta de categoría.
type CategoryRequest struct {
	Name        string `json:"name" form:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" form:"description" validate:"max=500"`
	Position    *int   `json:"position" validate:"omitempty,min=0"`
}

// UpdateCategoryRequest patch de categoría.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" form:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" form:"description" validate:"omitempty,max=500"`
	IsActive    *bool   `json:"isActive"`
	Position    *int    `json:"position" validate:"omitempty,min=0"`
}

// ItemRequest alta de item del menú.
type ItemRequest struct {
	Name            string                  `json:"name" form:"name" validate:"required,min=1,max=100"`
	Description     string                  `json:"description" form:"description" validate:"max=500"`
	Price           decimal.Decimal         `json:"price"`
	OriginalPrice   *decimal.Decimal        `json:"originalPrice"`
	CategoryID      string                  `json:"categoryId" form:"categoryId" validate:"required"`
	IsAvailable     *bool                   `json:"isAvailable"`
	IsPopular       bool                    `json:"isPopular"`
	IsVegetarian    bool                    `json:"isVegetarian"`
	IsVegan         bool                    `json:"isVegan"`
	IsGlutenFree    bool                    `json:"isGlutenFree"`
	SpicyLevel      int                     `json:"spicyLevel" validate:"min=0,max=3"`
	Allergens       []string                `json:"allergens" validate:"dive,oneof=gluten lactose nuts eggs soy shellfish fish"`
	NutritionalInfo *entity.NutritionalInfo `json:"nutritionalInfo"`
	PreparationTime *int                    `json:"preparationTime" validate:"omitempty,min=0"`
	Tags            []string                `json:"tags"`
	Position        *int                    `json:"position" validate:"omitempty,min=0"`
}

// UpdateItemRequest patch de item: campo ausente = sin cambio.
type UpdateItemRequest struct {
	Name            *string                 `json:"name" form:"name" validate:"omitempty,min=1,max=100"`
	Description     *string                 `json:"description" form:"description" validate:"omitempty,max=500"`
	Price           *decimal.Decimal        `json:"price"`
	OriginalPrice   *decimal.Decimal        `json:"originalPrice"`
	CategoryID      *string                 `json:"categoryId" form:"categoryId"`
	IsAvailable     *bool                   `json:"isAvailable"`
	IsPopular       *bool                   `json:"isPopular"`
	IsVegetarian    *bool                   `json:"isVegetarian"`
	IsVegan         *bool                   `json:"isVegan"`
	IsGlutenFree    *bool                   `json:"isGlutenFree"`
	SpicyLevel      *int                    `json:"spicyLevel" validate:"omitempty,min=0,max=3"`
	Allergens       []string                `json:"allergens" validate:"dive,oneof=gluten lactose nuts eggs soy shellfish fish"`
	NutritionalInfo *entity.NutritionalInfo `json:"nutritionalInfo"`
	PreparationTime *int                    `json:"preparationTime" validate:"omitempty,min=0"`
	Tags            []string                `json:"tags"`
	Position        *int                    `json:"position" validate:"omitempty,min=0"`
}

// OwnerSummary proyección mínima del dueño para el menú público:
// solo nombres, jamás credenciales.
type OwnerSummary struct {
	Name           string `json:"name"`
	RestaurantName string `json:"restaurantName"`
}

// CategoryResponse salida de una categoría (con o sin items embebidos).
type CategoryResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Image       *entity.Image  `json:"image,omitempty"`
	IsActive    bool           `json:"isActive"`
	Position    int            `json:"position"`
	Items       []ItemResponse `json:"items,omitempty"`
}

// ItemResponse salida de un item del menú.
type ItemResponse struct {
	ID              string                  `json:"id"`
	CategoryID      string                  `json:"categoryId"`
	Name            string                  `json:"name"`
	Description     string                  `json:"description,omitempty"`
	Price           decimal.Decimal         `json:"price"`
	OriginalPrice   *decimal.Decimal        `json:"originalPrice,omitempty"`
	Image           *entity.Image           `json:"image,omitempty"`
	IsAvailable     bool                    `json:"isAvailable"`
	IsPopular       bool                    `json:"isPopular"`
	IsVegetarian    bool                    `json:"isVegetarian"`
	IsVegan         bool                    `json:"isVegan"`
	IsGlutenFree    bool                    `json:"isGlutenFree"`
	SpicyLevel      int                     `json:"spicyLevel"`
	Allergens       []string                `json:"allergens,omitempty"`
	NutritionalInfo *entity.NutritionalInfo `json:"nutritionalInfo,omitempty"`
	PreparationTime *int                    `json:"preparationTime,omitempty"`
	Tags            []string                `json:"tags,omitempty"`
	Position        int                     `json:"position"`
}

// MenuResponse salida completa del menú (admin o público según el filtrado
// que aplique el caso de uso que la construye).
type MenuResponse struct {
	ID             string             `json:"id"`
	RestaurantID   string             `json:"restaurantId"`
	RestaurantName string             `json:"restaurantName"`
	Description    string             `json:"description,omitempty"`
	Logo           *entity.Image      `json:"logo,omitempty"`
	Theme          entity.Theme       `json:"theme"`
	Contact        entity.Contact     `json:"contact"`
	Settings       entity.Settings    `json:"settings"`
	IsActive       bool               `json:"isActive"`
	Owner          *OwnerSummary      `json:"owner,omitempty"`
	Categories     []CategoryResponse `json:"categories"`
	Stats          *entity.Stats      `json:"stats,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

// MenuEnvelope respuesta con el menú bajo su clave estándar.
type MenuEnvelope struct {
	Message string       `json:"message,omitempty"`
	Menu    MenuResponse `json:"menu"`
}

// CategoryEnvelope respuesta con la categoría bajo su clave estándar.
type CategoryEnvelope struct {
	Message  string           `json:"message,omitempty"`
	Category CategoryResponse `json:"category"`
}

// ItemEnvelope respuesta con el item bajo su clave estándar.
type ItemEnvelope struct {
	Message string       `json:"message,omitempty"`
	Item    ItemResponse `json:"item"`
}

// CategoriesEnvelope respuesta de listado de categorías.
type CategoriesEnvelope struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToItemResponse proyecta un item al DTO.
func ToItemResponse(it *entity.MenuItem) ItemResponse {
	out := ItemResponse{
		ID:              it.ID,
		CategoryID:      it.CategoryID,
		Name:            it.Name,
		Description:     it.Description,
		Price:           it.Price,
		OriginalPrice:   it.OriginalPrice,
		IsAvailable:     it.IsAvailable,
		IsPopular:       it.IsPopular,
		IsVegetarian:    it.IsVegetarian,
		IsVegan:         it.IsVegan,
		IsGlutenFree:    it.IsGlutenFree,
		SpicyLevel:      it.SpicyLevel,
		Allergens:       it.Allergens,
		PreparationTime: it.PreparationTime,
		Tags:            it.Tags,
		Position:        it.Position,
	}
	if !it.Image.IsZero() {
		img := it.Image
		out.Image = &img
	}
	if it.NutritionalInfo != (entity.NutritionalInfo{}) {
		ni := it.NutritionalInfo
		out.NutritionalInfo = &ni
	}
	return out
}

// ToCategoryResponse proyecta una categoría al DTO, con items opcionales.
func ToCategoryResponse(c *entity.Category, items []ItemResponse) CategoryResponse {
	out := CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
		Position:    c.Position,
		Items:       items,
	}
	if !c.Image.IsZero() {
		img := c.Image
		out.Image = &img
	}
	return out
}
