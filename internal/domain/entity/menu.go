package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Alérgenos admitidos en MenuItem.Allergens (vocabulario cerrado).
var Allergens = []string{"gluten", "lactose", "nuts", "eggs", "soy", "shellfish", "fish"}

// IsValidAllergen verifica pertenencia al vocabulario de alérgenos.
func IsValidAllergen(a string) bool {
	for _, v := range Allergens {
		if v == a {
			return true
		}
	}
	return false
}

// Niveles de picante admitidos: 0 = no picante ... 3 = muy picante.
const (
	SpicyLevelMin = 0
	SpicyLevelMax = 3
)

// Image referencia a una imagen en el almacenamiento externo.
// PublicID es el handle que permite eliminarla.
type Image struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// IsZero indica si no hay imagen asociada.
func (i Image) IsZero() bool { return i.URL == "" && i.PublicID == "" }

// Theme configuración visual del menú público.
type Theme struct {
	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
	FontFamily      string `json:"fontFamily"`
}

// DefaultTheme valores por defecto del tema.
func DefaultTheme() Theme {
	return Theme{
		PrimaryColor:    "#2563eb",
		SecondaryColor:  "#64748b",
		BackgroundColor: "#ffffff",
		TextColor:       "#1f2937",
		FontFamily:      "Inter",
	}
}

// Contact datos de contacto del restaurante.
type Contact struct {
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Website   string `json:"website"`
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
}

// Settings opciones de presentación del menú público.
type Settings struct {
	ShowPrices          bool   `json:"showPrices"`
	ShowImages          bool   `json:"showImages"`
	ShowDescriptions    bool   `json:"showDescriptions"`
	ShowNutritionalInfo bool   `json:"showNutritionalInfo"`
	AllowOrdering       bool   `json:"allowOrdering"`
	Currency            string `json:"currency"`
	Language            string `json:"language"`
}

// DefaultSettings valores por defecto de presentación.
func DefaultSettings() Settings {
	return Settings{
		ShowPrices:       true,
		ShowImages:       true,
		ShowDescriptions: true,
		Currency:         "$",
		Language:         "es",
	}
}

// NutritionalInfo información nutricional opcional (nil = no informada).
type NutritionalInfo struct {
	Calories *int `json:"calories,omitempty"`
	Protein  *int `json:"protein,omitempty"`
	Carbs    *int `json:"carbs,omitempty"`
	Fat      *int `json:"fat,omitempty"`
}

// Menu es el agregado raíz por tenant: exactamente un menú por restaurantId.
type Menu struct {
	ID             string
	RestaurantID   string // slug del tenant, único
	RestaurantName string
	Description    string
	Logo           Image
	Theme          Theme
	Contact        Contact
	Settings       Settings
	IsActive       bool
	OwnerID        string
	Categories     []Category
	Items          []MenuItem
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Category agrupa items; Position define el orden de despliegue
// (empates se resuelven por orden de inserción).
type Category struct {
	ID          string
	Name        string
	Description string
	Image       Image
	IsActive    bool
	Position    int
}

// MenuItem plato u opción del menú. Los items referencian su categoría por ID
// en ambas variantes de almacenamiento.
type MenuItem struct {
	ID              string
	CategoryID      string
	Name            string
	Description     string
	Price           decimal.Decimal
	OriginalPrice   *decimal.Decimal // precio tachado para mostrar descuento
	Image           Image
	IsAvailable     bool
	IsPopular       bool
	IsVegetarian    bool
	IsVegan         bool
	IsGlutenFree    bool
	SpicyLevel      int // 0..3
	Allergens       []string
	NutritionalInfo NutritionalInfo
	PreparationTime *int // minutos
	Tags            []string
	Position        int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Stats estadísticas resumidas del menú.
type Stats struct {
	TotalItems       int `json:"totalItems"`
	AvailableItems   int `json:"availableItems"`
	TotalCategories  int `json:"totalCategories"`
	ActiveCategories int `json:"activeCategories"`
	PopularItems     int `json:"popularItems"`
}

// ComputeStats calcula las estadísticas sobre el contenido completo del menú.
func (m *Menu) ComputeStats() Stats {
	s := Stats{
		TotalItems:      len(m.Items),
		TotalCategories: len(m.Categories),
	}
	for _, it := range m.Items {
		if it.IsAvailable {
			s.AvailableItems++
		}
		if it.IsPopular {
			s.PopularItems++
		}
	}
	for _, c := range m.Categories {
		if c.IsActive {
			s.ActiveCategories++
		}
	}
	return s
}

// CategoryByID busca una categoría del menú; nil si no pertenece.
func (m *Menu) CategoryByID(id string) *Category {
	for i := range m.Categories {
		if m.Categories[i].ID == id {
			return &m.Categories[i]
		}
	}
	return nil
}

// ItemByID busca un item del menú; nil si no pertenece.
func (m *Menu) ItemByID(id string) *MenuItem {
	for i := range m.Items {
		if m.Items[i].ID == id {
			return &m.Items[i]
		}
	}
	return nil
}

// NextCategoryPosition devuelve max(position)+1, o 0 si no hay categorías.
func (m *Menu) NextCategoryPosition() int {
	if len(m.Categories) == 0 {
		return 0
	}
	max := m.Categories[0].Position
	for _, c := range m.Categories[1:] {
		if c.Position > max {
			max = c.Position
		}
	}
	return max + 1
}

// NextItemPosition devuelve max(position)+1 entre los items de la categoría, o 0 si está vacía.
func (m *Menu) NextItemPosition(categoryID string) int {
	max, found := 0, false
	for _, it := range m.Items {
		if it.CategoryID != categoryID {
			continue
		}
		if !found || it.Position > max {
			max = it.Position
			found = true
		}
	}
	if !found {
		return 0
	}
	return max + 1
}

// ImagePublicIDs recolecta todos los handles de imágenes del menú
// (logo, categorías e items) para la limpieza posterior al borrado.
func (m *Menu) ImagePublicIDs() []string {
	var ids []string
	if m.Logo.PublicID != "" {
		ids = append(ids, m.Logo.PublicID)
	}
	for _, c := range m.Categories {
		if c.Image.PublicID != "" {
			ids = append(ids, c.Image.PublicID)
		}
	}
	for _, it := range m.Items {
		if it.Image.PublicID != "" {
			ids = append(ids, it.Image.PublicID)
		}
	}
	return ids
}
