package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/menuqr/menuqr-api/docs"
	"github.com/menuqr/menuqr-api/internal/application/auth"
	"github.com/menuqr/menuqr-api/internal/application/usecase"
	"github.com/menuqr/menuqr-api/internal/domain/repository"
	infracloudinary "github.com/menuqr/menuqr-api/internal/infrastructure/cloudinary"
	"github.com/menuqr/menuqr-api/internal/infrastructure/docstore"
	infrapdf "github.com/menuqr/menuqr-api/internal/infrastructure/pdf"
	"github.com/menuqr/menuqr-api/internal/infrastructure/postgres"
	infrawhatsapp "github.com/menuqr/menuqr-api/internal/infrastructure/whatsapp"
	httpRouter "github.com/menuqr/menuqr-api/internal/interfaces/http"
	"github.com/menuqr/menuqr-api/pkg/config"
	"github.com/menuqr/menuqr-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.DB.StorageDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Variante de almacenamiento de menús: relacional o documental.
	var menuRepoFactory postgres.MenuRepoFactory
	if cfg.DB.StorageDriver == "document" {
		menuRepoFactory = func(q postgres.Querier) repository.MenuRepository {
			return docstore.NewMenuRepository(q)
		}
	} else {
		menuRepoFactory = func(q postgres.Querier) repository.MenuRepository {
			return postgres.NewMenuRepository(q)
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	menuRepo := menuRepoFactory(pool)
	txRunner := postgres.NewTxRunner(pool, menuRepoFactory)

	imageStore := infracloudinary.NewClient(cfg.Cloudinary)
	messaging := infrawhatsapp.NewClient()
	posterGen := infrapdf.NewQRPosterGenerator()

	authUC := auth.NewAuthUseCase(userRepo, menuRepo, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.App.PublicBaseURL, log.Component("auth"))
	menuUC := usecase.NewMenuUseCase(menuRepo, imageStore, posterGen, cfg.App.PublicBaseURL, log.Component("menus"))
	publicMenuUC := usecase.NewPublicMenuUseCase(menuRepo, userRepo)
	whatsappUC := usecase.NewWhatsAppUseCase(userRepo, messaging, imageStore, cfg.App.PublicBaseURL, log.Component("whatsapp"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    int(cfg.Upload.MaxSizeBytes()) + 1024*1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "MenuQR API",
	}))

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		MenuUC:       menuUC,
		PublicMenuUC: publicMenuUC,
		WhatsAppUC:   whatsappUC,
		UserRepo:     userRepo,
		Config:       cfg,
		Log:          log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
