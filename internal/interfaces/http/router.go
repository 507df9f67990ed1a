package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/menuqr/menuqr-api/internal/application/auth"
	"github.com/menuqr/menuqr-api/internal/application/dto"
	"github.com/menuqr/menuqr-api/internal/application/usecase"
	"github.com/menuqr/menuqr-api/internal/domain/repository"
	"github.com/menuqr/menuqr-api/pkg/config"
	"github.com/menuqr/menuqr-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	MenuUC       *usecase.MenuUseCase
	PublicMenuUC *usecase.PublicMenuUseCase
	WhatsAppUC   *usecase.WhatsAppUseCase
	UserRepo     repository.UserRepository
	Config       *config.Config
	Log          *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	respond := NewErrorResponder(deps.Log, deps.Config.App.IsDevelopment())

	api := app.Group("/api")

	// Rate limit por IP sobre toda la API.
	api.Use(limiter.New(limiter.Config{
		Max:        deps.Config.RateLimit.Max,
		Expiration: time.Duration(deps.Config.RateLimit.WindowMinutes) * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Error: "Demasiadas peticiones, intenta de nuevo más tarde",
			})
		},
	}))

	authRequired := AuthMiddleware(deps.Config.JWT.Secret, deps.UserRepo)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, respond)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/profile", authRequired, authHandler.GetProfile)
	authGroup.Put("/profile", authRequired, authHandler.UpdateProfile)
	authGroup.Put("/change-password", authRequired, authHandler.ChangePassword)

	// Menús: GETs públicos y mutaciones con rol admin conviven bajo el mismo
	// prefijo, por eso el gate va por ruta y no en el grupo. my-menu se
	// registra antes que el comodín :id para ganar el match.
	publicHandler := NewPublicMenuHandler(deps.PublicMenuUC, respond)
	menuHandler := NewMenuHandler(deps.MenuUC, deps.Config.Upload, respond)
	menus := api.Group("/menus")
	menus.Get("/restaurant/:restaurantId", publicHandler.GetByRestaurantID)
	menus.Get("/restaurant/:restaurantId/admin", authRequired, AdminOnly(), RestaurantAccess(), menuHandler.GetAdminMenu)
	menus.Get("/my-menu", authRequired, AdminOnly(), menuHandler.GetMyMenu)
	menus.Post("/", authRequired, AdminOnly(), menuHandler.Create)
	menus.Put("/:id", authRequired, AdminOnly(), menuHandler.Update)
	menus.Delete("/:id", authRequired, AdminOnly(), menuHandler.Delete)
	menus.Get("/:id/qr.pdf", authRequired, AdminOnly(), menuHandler.QRPoster)
	menus.Post("/:id/categories", authRequired, AdminOnly(), menuHandler.AddCategory)
	menus.Put("/:id/categories/:categoryId", authRequired, AdminOnly(), menuHandler.UpdateCategory)
	menus.Delete("/:id/categories/:categoryId", authRequired, AdminOnly(), menuHandler.DeleteCategory)
	menus.Post("/:id/items", authRequired, AdminOnly(), menuHandler.AddItem)
	menus.Put("/:id/items/:itemId", authRequired, AdminOnly(), menuHandler.UpdateItem)
	menus.Delete("/:id/items/:itemId", authRequired, AdminOnly(), menuHandler.DeleteItem)
	menus.Get("/:id", publicHandler.GetByID)
	menus.Get("/:id/categories", publicHandler.GetCategories)

	// Puente de WhatsApp
	whatsappHandler := NewWhatsAppHandler(deps.WhatsAppUC, deps.Config.Upload, deps.Config.WhatsApp.VerifyToken, respond, deps.Log)
	whatsapp := api.Group("/whatsapp")
	whatsapp.Get("/webhook", whatsappHandler.VerifyWebhook)
	whatsapp.Post("/webhook", whatsappHandler.ReceiveWebhook)
	whatsapp.Get("/config", authRequired, whatsappHandler.GetConfig)
	whatsapp.Put("/config", authRequired, whatsappHandler.UpdateConfig)
	whatsapp.Post("/send-menu-link", authRequired, AdminOnly(), whatsappHandler.SendMenuLink)
	whatsapp.Post("/upload-status", authRequired, AdminOnly(), whatsappHandler.UploadStatus)
}
