package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hero-forge/internal/config"
	"hero-forge/internal/domain"
	"hero-forge/internal/handler"
	"hero-forge/internal/middleware"
	"hero-forge/internal/repository"
	"hero-forge/internal/service"
	"hero-forge/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	appLogger := logger.New(cfg.LogLevel, cfg.Environment)

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := config.RunMigrations(db, cfg); err != nil {
		appLogger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		appLogger.Warn().Err(err).Msg("Failed to connect to MinIO, portrait upload will not work")
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, minioClient, cfg, appLogger)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    10 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	appLogger.Info().Str("port", cfg.Port).Msg("Server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		appLogger.Fatal().Err(err).Msg("Failed to start server")
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService service.AuthService) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/api/v1")

	public := v1.Group("/public")
	public.Get("/gallery", h.Public.Gallery)
	public.Get("/gallery/:characterId", h.Public.GalleryCharacter)

	auth := v1.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.RefreshToken)

	protected := v1.Group("", middleware.AuthRequired(authService))

	protected.Get("/auth/me", h.Auth.Me)

	catalog := protected.Group("/catalog")
	catalog.Get("/classes", h.Catalog.ListClasses)
	catalog.Get("/slots", h.Catalog.ListSlots)
	catalog.Get("/types", h.Catalog.ListTypes)
	catalog.Get("/items", h.Catalog.SearchItems)

	characters := protected.Group("/characters")
	characters.Post("/", h.Character.Create)
	characters.Get("/", h.Character.List)
	characters.Get("/:characterId", h.Character.Get)
	characters.Put("/:characterId", h.Character.Update)
	characters.Delete("/:characterId", h.Character.Delete)
	characters.Post("/:characterId/submit", h.Character.Submit)
	characters.Post("/:characterId/duplicate", h.Character.Duplicate)
	characters.Post("/:characterId/share", h.Character.ToggleShare)
	characters.Put("/:characterId/portrait", h.Character.UploadPortrait)
	characters.Delete("/:characterId/portrait", h.Character.RemovePortrait)
	characters.Post("/:characterId/comments", h.Character.CreateComment)
	characters.Get("/:characterId/comments", h.Character.ListComments)
	characters.Get("/:characterId/comments/me", h.Character.MyComment)

	comments := protected.Group("/comments")
	comments.Delete("/:commentId", h.Comment.Delete)

	moderation := protected.Group("/moderation", middleware.RequireCapability(domain.CapModerateContent))
	moderation.Get("/characters", h.Moderation.PendingCharacters)
	moderation.Get("/comments", h.Moderation.PendingComments)
	moderation.Post("/characters/:characterId/approve", h.Moderation.ApproveCharacter)
	moderation.Post("/characters/:characterId/reject", h.Moderation.RejectCharacter)
	moderation.Post("/comments/:commentId/approve", h.Moderation.ApproveComment)
	moderation.Post("/comments/:commentId/reject", h.Moderation.RejectComment)

	admin := v1.Group("/admin", middleware.AuthRequired(authService))
	admin.Get("/users", middleware.RequireCapability(domain.CapManageAccounts), h.Admin.ListUsers)
	admin.Post("/users/:userId/suspend", middleware.RequireCapability(domain.CapManageAccounts), h.Admin.SuspendUser)
	admin.Post("/users/:userId/reactivate", middleware.RequireCapability(domain.CapManageAccounts), h.Admin.ReactivateUser)
	admin.Delete("/users/:userId", middleware.RequireCapability(domain.CapManageAccounts), h.Admin.DeleteUser)
	admin.Get("/audit", middleware.RequireCapability(domain.CapViewAuditLog), h.Admin.RecentActivity)
	admin.Get("/audit/:targetType/:targetId", middleware.RequireCapability(domain.CapViewAuditLog), h.Admin.TargetActivity)
}
