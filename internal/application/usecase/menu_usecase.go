package usecase

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/menuqr/menuqr-api/internal/application/dto"
	"github.com/menuqr/menuqr-api/internal/application/ports"
	"github.com/menuqr/menuqr-api/internal/domain"
	"github.com/menuqr/menuqr-api/internal/domain/entity"
	"github.com/menuqr/menuqr-api/internal/domain/repository"
	"github.com/menuqr/menuqr-api/pkg/logger"
)

// Actor identidad autenticada que ejecuta la operación (viene del middleware).
type Actor struct {
	ID           string
	Role         string
	RestaurantID string
}

// canManage aplica la regla de propiedad: owner salta el chequeo.
func (a Actor) canManage(menuOwnerID string) bool {
	return a.Role == entity.RoleOwner || a.ID == menuOwnerID
}

// ImageUpload contenido de una imagen recibida por multipart.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// MenuUseCase administración del menú del tenant: CRUD de menú, categorías e
// items, con chequeo de propiedad y disciplina de limpieza de imágenes
// (reemplazo borra la anterior; falla posterior a una subida borra la nueva).
type MenuUseCase struct {
	menuRepo      repository.MenuRepository
	images        ports.ImageStore
	poster        ports.PosterGenerator
	publicBaseURL string
	log           *logger.Logger
}

// NewMenuUseCase construye el caso de uso de administración de menús.
func NewMenuUseCase(menuRepo repository.MenuRepository, images ports.ImageStore, poster ports.PosterGenerator, publicBaseURL string, log *logger.Logger) *MenuUseCase {
	return &MenuUseCase{
		menuRepo:      menuRepo,
		images:        images,
		poster:        poster,
		publicBaseURL: publicBaseURL,
		log:           log,
	}
}

// loadOwnedMenu carga el menú y aplica el gate de propiedad.
// La inexistencia (404) tiene precedencia sobre el chequeo de permisos.
func (uc *MenuUseCase) loadOwnedMenu(menuID string, actor Actor) (*entity.Menu, error) {
	menu, err := uc.menuRepo.GetByID(menuID)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, domain.ErrMenuNotFound
	}
	if !actor.canManage(menu.OwnerID) {
		return nil, domain.ErrForbidden
	}
	return menu, nil
}

// uploadImage sube la imagen al almacenamiento externo si hay archivo.
func (uc *MenuUseCase) uploadImage(ctx context.Context, up *ImageUpload) (*ports.UploadedImage, error) {
	if up == nil {
		return nil, nil
	}
	return uc.images.Upload(ctx, up.Filename, up.Content)
}

// cleanupImage borra una imagen subida; best-effort, solo se loguea la falla.
func (uc *MenuUseCase) cleanupImage(ctx context.Context, publicID string) {
	if publicID == "" {
		return
	}
	if err := uc.images.Delete(ctx, publicID); err != nil {
		uc.log.Warn().Err(err).Str("public_id", publicID).Msg("no se pudo eliminar la imagen externa")
	}
}

// CreateMenu crea el menú del tenant. Rechaza si el tenant ya tiene uno.
func (uc *MenuUseCase) CreateMenu(ctx context.Context, actor Actor, in dto.CreateMenuRequest, logo *ImageUpload) (*dto.MenuEnvelope, error) {
	exists, err := uc.menuRepo.ExistsByRestaurantID(actor.RestaurantID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrMenuAlreadyExists
	}

	now := time.Now()
	menu := &entity.Menu{
		ID:             uuid.New().String(),
		RestaurantID:   actor.RestaurantID,
		RestaurantName: in.RestaurantName,
		Description:    in.Description,
		Theme:          entity.DefaultTheme(),
		Settings:       entity.DefaultSettings(),
		IsActive:       true,
		OwnerID:        actor.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.Theme != nil {
		menu.Theme = *in.Theme
	}
	if in.Contact != nil {
		menu.Contact = *in.Contact
	}
	if in.Settings != nil {
		if err := applySettingsPatch(&menu.Settings, in.Settings); err != nil {
			return nil, err
		}
	}

	uploaded, err := uc.uploadImage(ctx, logo)
	if err != nil {
		return nil, err
	}
	if uploaded != nil {
		menu.Logo = entity.Image{URL: uploaded.URL, PublicID: uploaded.PublicID}
	}

	if err := uc.menuRepo.Create(menu); err != nil {
		if uploaded != nil {
			uc.cleanupImage(ctx, uploaded.PublicID)
		}
		return nil, err
	}

	resp := toMenuResponse(menu, menuProjection{})
	return &dto.MenuEnvelope{Message: "Menú creado exitosamente", Menu: resp}, nil
}

// UpdateMenu aplica el patch del menú. El reemplazo de logo borra el anterior
// después de persistir; si la persistencia falla se borra el recién subido.
func (uc *MenuUseCase) UpdateMenu(ctx context.Context, actor Actor, menuID string, in dto.UpdateMenuRequest, logo *ImageUpload) (*dto.MenuEnvelope, error) {
	menu, err := uc.loadOwnedMenu(menuID, actor)
	if err != nil {
		return nil, err
	}

	if in.RestaurantName != nil {
		menu.RestaurantName = *in.RestaurantName
	}
	if in.Description != nil {
		menu.Description = *in.Description
	}
	if in.IsActive != nil {
		menu.IsActive = *in.IsActive
	}
	if in.Theme != nil {
		menu.Theme = *in.Theme
	}
	if in.Contact != nil {
		menu.Contact = *in.Contact
	}
	if in.Settings != nil {
		if err := applySettingsPatch(&menu.Settings, in.Settings); err != nil {
			return nil, err
		}
	}

	oldLogo := menu.Logo
	uploaded, err := uc.uploadImage(ctx, logo)
	if err != nil {
		return nil, err
	}
	if uploaded != nil {
		menu.Logo = entity.Image{URL: uploaded.URL, PublicID: uploaded.PublicID}
	}
	menu.UpdatedAt = time.Now()

	if err := uc.menuRepo.Update(menu); err != nil {
		if uploaded != nil {
			uc.cleanupImage(ctx, uploaded.PublicID)
		}
		return nil, err
	}
	if uploaded != nil {
		uc.cleanupImage(ctx, oldLogo.PublicID)
	}

	resp := toMenuResponse(menu, menuProjection{})
	return &dto.MenuEnvelope{Message: "Menú actualizado exitosamente", Menu: resp}, nil
}

// DeleteMenu elimina el menú (cascada a categorías e items) y después borra
// cada imagen externa; una falla individual se loguea y no afecta el resultado.
func (uc *MenuUseCase) DeleteMenu(ctx context.Context, actor Actor, menuID string) error {
	menu, err := uc.loadOwnedMenu(menuID, actor)
	if err != nil {
		return err
	}

	publicIDs := menu.ImagePublicIDs()

	if err := uc.menuRepo.Delete(menu.ID); err != nil {
		return err
	}
	for _, id := range publicIDs {
		uc.cleanupImage(ctx, id)
	}
	return nil
}

// QRPoster genera el afiche PDF con el QR de la URL pública del menú.
func (uc *MenuUseCase) QRPoster(actor Actor, menuID string) ([]byte, error) {
	menu, err := uc.loadOwnedMenu(menuID, actor)
	if err != nil {
		return nil, err
	}
	url := uc.publicBaseURL + "/" + menu.RestaurantID
	return uc.poster.GenerateQRPoster(menu.RestaurantName, url)
}

// GetMyMenu devuelve el menú del propio tenant para el panel de administración.
func (uc *MenuUseCase) GetMyMenu(actor Actor) (*dto.MenuEnvelope, error) {
	return uc.GetAdminMenu(actor.RestaurantID)
}

// GetAdminMenu devuelve el menú del restaurante indicado sin filtrar
// (incluye lo inactivo) con estadísticas. El acceso por tenant se valida
// en el middleware de la ruta.
func (uc *MenuUseCase) GetAdminMenu(restaurantID string) (*dto.MenuEnvelope, error) {
	menu, err := uc.menuRepo.GetByRestaurantID(restaurantID)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, domain.ErrMenuNotFound
	}
	stats := menu.ComputeStats()
	resp := toMenuResponse(menu, menuProjection{stats: &stats})
	return &dto.MenuEnvelope{Menu: resp}, nil
}

// ── Categorías ────────────────────────────────────────────────────────────────

// AddCategory agrega una categoría; sin posición explícita va al final.
func (uc *MenuUseCase) AddCategory(ctx context.Context, actor Actor, menuID string, in dto.CategoryRequest, image *ImageUpload) (*dto.CategoryEnvelope, error) {
	menu, err := uc.loadOwnedMenu(menuID, actor)
	if err != nil {
		return nil, err
	}

	position := menu.NextCategoryPosition()
	if in.Position != nil {
		position = *in.Position
	}
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		IsActive:    true,
		Position:    position,
	}

	uploaded, err := uc.uploadImage(ctx, image)
	if err != nil {
		return nil, err
	}
	if uploaded != nil {
		category.Image = entity.Image{URL: uploaded.URL, PublicID: uploaded.PublicID}
	}

	if err := uc.menuRepo.AddCategory(menu.ID, category); err != nil {
		if uploaded != nil {
			uc.cleanupImage(ctx, uploaded.PublicID)
		}
		return nil, err
	}

	resp := dto.ToCategoryResponse(category, nil)
	return &dto.CategoryEnvelope{Message: "Categoría agregada exitosamente", Category: resp}, nil
}

// UpdateCategory aplica el patch de una categoría del menú.
func (uc *MenuUseCase) UpdateCategory(ctx context.Context, actor Actor, menuID, categoryID string, in dto.UpdateCategoryRequest, image *ImageUpload) (*dto.CategoryEnvelope, error) {
	menu, err := uc.loadOwnedMenu(menuID, actor)
	if err != nil {
		return nil, err
	}
	category := menu.CategoryByID(categoryID)
	if category == nil {
		return nil, domain.ErrCategoryNotFound
	}

	if in.Name != nil {
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}
	if in.Position != nil {
		category.Position = *in.Position
	}

	oldImage := category.Image
	uploaded, err := uc.uploadImage(ctx, image)
	if err != nil {
		return nil, err
	}
	if uploaded != nil {
		category.Image = entity.Image{URL: uploaded.URL, PublicID: uploaded.PublicID}
	}

	if err := uc.menuRepo.UpdateCategory(menu.ID, category); err != nil {
		if uploaded != nil {
			uc.cleanupImage(ctx, uploaded.PublicID)
		}
		return nil, err
	}
	if uploaded != nil {
		uc.cleanupImage(ctx, oldImage.PublicID)
	}

	resp := dto.ToCategoryResponse(category, nil)
	return &dto.CategoryEnvelope{Message: "Categoría actualizada exitosamente", Category: resp}, nil
}

// DeleteCategory elimina la categoría y sus items (cascada en el repo);
// las imágenes asociadas se borran después, best-effort.
func (uc *MenuUseCase) DeleteCategory(ctx context.Context, actor Actor, menuID, categoryID string) error {
	menu, err := uc.loadOwnedMenu(menuID, actor)
	if err != nil {
		return err
	}
	category := menu.CategoryByID(categoryID)
	if category == nil {
		return domain.ErrCategoryNotFound
	}

	var publicIDs []string
	if category.Image.PublicID != "" {
		publicIDs = append(publicIDs, category.Image.PublicID)
	}
	for _, it := range menu.Items {
		if it.CategoryID == categoryID && it.Image.PublicID != "" {
			publicIDs = append(publicIDs, it.Image.PublicID)
		}
	}

	if err := uc.menuRepo.DeleteCategory(menu.ID, categoryID); err != nil {
		return err
	}
	for _, id := range publicIDs {
		uc.cleanupImage(ctx, id)
	}
	return nil
}

// ── Items ─────────────────────────────────────────────────────────────────────

// AddItem agrega un item validando que la categoría pertenezca al menú.
// Sin posición explícita, el item va al final de su categoría.
func (uc *MenuUseCase) AddItem(ctx context.Context, actor Actor, menuID string, in dto.ItemRequest, image *ImageUpload) (*dto.ItemEnvelope, error) {
	menu, err := uc.loadOwnedMenu(menuID, actor)
	if err != nil {
		return nil, err
	}
	if menu.CategoryByID(in.CategoryID) == nil {
		return nil, domain.ErrInvalidCategory
	}
	if in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.OriginalPrice != nil && in.OriginalPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	position := menu.NextItemPosition(in.CategoryID)
	if in.Position != nil {
		position = *in.Position
	}
	now := time.Now()
	item := &entity.MenuItem{
		ID:              uuid.New().String(),
		CategoryID:      in.CategoryID,
		Name:            in.Name,
		Description:     in.Description,
		Price:           in.Price,
		OriginalPrice:   in.OriginalPrice,
		IsAvailable:     true,
		IsPopular:       in.IsPopular,
		IsVegetarian:    in.IsVegetarian,
		IsVegan:         in.IsVegan,
		IsGlutenFree:    in.IsGlutenFree,
		SpicyLevel:      in.SpicyLevel,
		Allergens:       in.Allergens,
		PreparationTime: in.PreparationTime,
		Tags:            in.Tags,
		Position:        position,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}
	if in.NutritionalInfo != nil {
		item.NutritionalInfo = *in.NutritionalInfo
	}

	uploaded, err := uc.uploadImage(ctx, image)
	if err != nil {
		return nil, err
	}
	if uploaded != nil {
		item.Image = entity.Image{URL: uploaded.URL, PublicID: uploaded.PublicID}
	}

	if err := uc.menuRepo.AddItem(menu.ID, item); err != nil {
		if uploaded != nil {
			uc.cleanupImage(ctx, uploaded.PublicID)
		}
		return nil, err
	}

	resp := dto.ToItemResponse(item)
	return &dto.ItemEnvelope{Message: "Item agregado exitosamente", Item: resp}, nil
}

// UpdateItem aplica el patch de un item, con la misma disciplina de imágenes
// que el resto de mutaciones.
func (uc *MenuUseCase) UpdateItem(ctx context.Context, actor Actor, menuID, itemID string, in dto.UpdateItemRequest, image *ImageUpload) (*dto.ItemEnvelope, error) {
	menu, err := uc.loadOwnedMenu(menuID, actor)
	if err != nil {
		return nil, err
	}
	item := menu.ItemByID(itemID)
	if item == nil {
		return nil, domain.ErrItemNotFound
	}

	if in.CategoryID != nil {
		if menu.CategoryByID(*in.CategoryID) == nil {
			return nil, domain.ErrInvalidCategory
		}
		item.CategoryID = *in.CategoryID
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.Price = *in.Price
	}
	if in.OriginalPrice != nil {
		if in.OriginalPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.OriginalPrice = in.OriginalPrice
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}
	if in.IsPopular != nil {
		item.IsPopular = *in.IsPopular
	}
	if in.IsVegetarian != nil {
		item.IsVegetarian = *in.IsVegetarian
	}
	if in.IsVegan != nil {
		item.IsVegan = *in.IsVegan
	}
	if in.IsGlutenFree != nil {
		item.IsGlutenFree = *in.IsGlutenFree
	}
	if in.SpicyLevel != nil {
		item.SpicyLevel = *in.SpicyLevel
	}
	if in.Allergens != nil {
		item.Allergens = in.Allergens
	}
	if in.NutritionalInfo != nil {
		item.NutritionalInfo = *in.NutritionalInfo
	}
	if in.PreparationTime != nil {
		item.PreparationTime = in.PreparationTime
	}
	if in.Tags != nil {
		item.Tags = in.Tags
	}
	if in.Position != nil {
		item.Position = *in.Position
	}

	oldImage := item.Image
	uploaded, err := uc.uploadImage(ctx, image)
	if err != nil {
		return nil, err
	}
	if uploaded != nil {
		item.Image = entity.Image{URL: uploaded.URL, PublicID: uploaded.PublicID}
	}
	item.UpdatedAt = time.Now()

	if err := uc.menuRepo.UpdateItem(menu.ID, item); err != nil {
		if uploaded != nil {
			uc.cleanupImage(ctx, uploaded.PublicID)
		}
		return nil, err
	}
	if uploaded != nil {
		uc.cleanupImage(ctx, oldImage.PublicID)
	}

	resp := dto.ToItemResponse(item)
	return &dto.ItemEnvelope{Message: "Item actualizado exitosamente", Item: resp}, nil
}

// DeleteItem elimina el item y después su imagen externa, best-effort.
func (uc *MenuUseCase) DeleteItem(ctx context.Context, actor Actor, menuID, itemID string) error {
	menu, err := uc.loadOwnedMenu(menuID, actor)
	if err != nil {
		return err
	}
	item := menu.ItemByID(itemID)
	if item == nil {
		return domain.ErrItemNotFound
	}

	publicID := item.Image.PublicID
	if err := uc.menuRepo.DeleteItem(menu.ID, itemID); err != nil {
		return err
	}
	uc.cleanupImage(ctx, publicID)
	return nil
}

// ── Helpers compartidos ───────────────────────────────────────────────────────

// applySettingsPatch hace el merge campo a campo de la configuración.
// El idioma se canonicaliza como tag BCP 47 (ej. "es", "en-US").
func applySettingsPatch(s *entity.Settings, p *dto.SettingsPatch) error {
	if p.ShowPrices != nil {
		s.ShowPrices = *p.ShowPrices
	}
	if p.ShowImages != nil {
		s.ShowImages = *p.ShowImages
	}
	if p.ShowDescriptions != nil {
		s.ShowDescriptions = *p.ShowDescriptions
	}
	if p.ShowNutritionalInfo != nil {
		s.ShowNutritionalInfo = *p.ShowNutritionalInfo
	}
	if p.AllowOrdering != nil {
		s.AllowOrdering = *p.AllowOrdering
	}
	if p.Currency != nil {
		s.Currency = *p.Currency
	}
	if p.Language != nil {
		tag, err := language.Parse(*p.Language)
		if err != nil {
			return domain.ErrInvalidInput
		}
		s.Language = tag.String()
	}
	return nil
}

// menuProjection controla qué se incluye al proyectar un menú a DTO.
type menuProjection struct {
	onlyActive bool          // filtra categorías inactivas e items no disponibles
	stats      *entity.Stats // adjunta estadísticas si no es nil
	owner      *dto.OwnerSummary
}

// toMenuResponse proyecta el agregado al DTO, agrupando items por categoría y
// ordenando por posición (orden estable: empates conservan inserción).
func toMenuResponse(m *entity.Menu, proj menuProjection) dto.MenuResponse {
	categories := make([]entity.Category, len(m.Categories))
	copy(categories, m.Categories)
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Position < categories[j].Position
	})

	itemsByCategory := make(map[string][]entity.MenuItem)
	for _, it := range m.Items {
		if proj.onlyActive && !it.IsAvailable {
			continue
		}
		itemsByCategory[it.CategoryID] = append(itemsByCategory[it.CategoryID], it)
	}
	for id := range itemsByCategory {
		items := itemsByCategory[id]
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Position < items[j].Position
		})
		itemsByCategory[id] = items
	}

	catDTOs := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		c := categories[i]
		if proj.onlyActive && !c.IsActive {
			continue
		}
		items := itemsByCategory[c.ID]
		itemDTOs := make([]dto.ItemResponse, 0, len(items))
		for j := range items {
			itemDTOs = append(itemDTOs, dto.ToItemResponse(&items[j]))
		}
		catDTOs = append(catDTOs, dto.ToCategoryResponse(&c, itemDTOs))
	}

	out := dto.MenuResponse{
		ID:             m.ID,
		RestaurantID:   m.RestaurantID,
		RestaurantName: m.RestaurantName,
		Description:    m.Description,
		Theme:          m.Theme,
		Contact:        m.Contact,
		Settings:       m.Settings,
		IsActive:       m.IsActive,
		Owner:          proj.owner,
		Categories:     catDTOs,
		Stats:          proj.stats,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if !m.Logo.IsZero() {
		logo := m.Logo
		out.Logo = &logo
	}
	return out
}
