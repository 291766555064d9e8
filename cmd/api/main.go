package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/celebra-app/celebra-backend/internal/config"
	"github.com/celebra-app/celebra-backend/internal/handler"
	"github.com/celebra-app/celebra-backend/internal/middleware"
	"github.com/celebra-app/celebra-backend/internal/models"
	"github.com/celebra-app/celebra-backend/internal/repository"
	"github.com/celebra-app/celebra-backend/internal/service"
	"github.com/celebra-app/celebra-backend/pkg/database"
	"github.com/celebra-app/celebra-backend/pkg/document"
	"github.com/celebra-app/celebra-backend/pkg/email"
	jwtPkg "github.com/celebra-app/celebra-backend/pkg/jwt"
	"github.com/celebra-app/celebra-backend/pkg/storage"
	"github.com/celebra-app/celebra-backend/pkg/utils"
)

func main() {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	// .env is optional outside local development.
	if err := godotenv.Load(); err != nil {
		logger.Debugw("no .env file loaded", "error", err)
	}

	cfg := config.LoadConfig()

	db, err := database.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalw("failed to initialize database", "error", err)
	}
	store := document.NewPostgresStore(db)

	// Repositories, one per collection
	userRepo := repository.New[models.User](store, "users")
	eventRepo := repository.New[models.Event](store, "events")
	guestRepo := repository.New[models.Guest](store, "guests")
	tableRepo := repository.New[models.Table](store, "tables")
	likeRepo := repository.New[models.Like](store, "likes")
	passRepo := repository.New[models.Pass](store, "passes")
	matchRepo := repository.New[models.Match](store, "matches")
	chatRepo := repository.New[models.Conversation](store, "chats")
	messageRepo := repository.New[models.Message](store, "messages")
	photoRepo := repository.New[models.GalleryPhoto](store, "gallery")

	// Blob storage backend, selected once at startup
	var blobs storage.BlobStorage
	switch cfg.StorageProvider {
	case storage.ProviderCDN:
		blobs = storage.NewImageCDNStorage(cfg.Images)
	default:
		blobs, err = storage.NewBucketStorage(cfg.Bucket)
		if err != nil {
			logger.Fatalw("failed to initialize bucket storage", "error", err)
		}
	}

	// Email service
	emailService := email.NewEmailService(cfg.Email, logger)

	// Token manager; the secret is read once from config.
	tokens := jwtPkg.NewManager(cfg.SecretKey)

	// Services
	authService := service.NewAuthService(userRepo, emailService, tokens, cfg.FrontendURL, logger)
	eventService := service.NewEventService(eventRepo, guestRepo, tableRepo, emailService, cfg.FrontendURL)
	chatService := service.NewChatService(chatRepo, messageRepo)
	matchService := service.NewMatchService(userRepo, likeRepo, passRepo, matchRepo, chatService)
	galleryService := service.NewGalleryService(photoRepo, blobs, logger)

	validator := utils.NewValidator()

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validator)
	eventHandler := handler.NewEventHandler(eventService, validator)
	matchHandler := handler.NewMatchHandler(matchService, validator)
	chatHandler := handler.NewChatHandler(chatService, validator)
	galleryHandler := handler.NewGalleryHandler(galleryService)

	policy := middleware.Policy{Bypass: cfg.QAMode}
	if cfg.QAMode {
		logger.Warnw("QA mode enabled, authentication is bypassed")
	}

	// Body limit above the gallery's own size check, so oversize uploads get
	// the application error instead of a bare 413.
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE",
	}))
	app.Use(fiberLogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	api := app.Group("/api")

	// Public routes (must come before the auth middleware)
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ForgotPassword)
	auth.Post("/reset-password/confirm", authHandler.ResetPassword)

	// Protected routes
	api.Use(middleware.Authenticate(tokens, policy))

	auth.Post("/logout", authHandler.Logout)
	auth.Get("/me", authHandler.Me)

	events := api.Group("/events")
	events.Get("/", eventHandler.GetUserEvents)
	events.Post("/", eventHandler.CreateEvent)
	events.Get("/:eventId", eventHandler.GetEvent)
	events.Get("/:eventId/tables", eventHandler.GetTables)
	events.Post("/:eventId/tables", middleware.RequireAdmin(policy), eventHandler.CreateTable)
	events.Get("/:eventId/guests", eventHandler.GetGuests)
	events.Post("/:eventId/guests", middleware.RequireAdmin(policy), eventHandler.InviteGuest)

	matches := api.Group("/matches")
	matches.Get("/:eventId/potential", matchHandler.GetPotentialMatches)
	matches.Post("/:eventId/like", matchHandler.Like)
	matches.Post("/:eventId/pass", matchHandler.Pass)
	matches.Get("/:eventId", matchHandler.GetMatches)

	chat := api.Group("/chat")
	chat.Get("/conversations", chatHandler.GetConversations)
	chat.Post("/create", chatHandler.CreateChat)
	chat.Get("/:chatId/messages", chatHandler.GetMessages)
	chat.Post("/:chatId/messages", chatHandler.SendMessage)
	chat.Post("/:chatId/read", chatHandler.MarkAsRead)

	gallery := api.Group("/gallery")
	gallery.Post("/upload", galleryHandler.UploadPhoto)
	gallery.Get("/event/:eventId", galleryHandler.GetEventPhotos)
	gallery.Delete("/photos/:photoId", galleryHandler.DeletePhoto)
	gallery.Post("/photos/:photoId/like", galleryHandler.LikePhoto)

	logger.Infow("starting server", "port", cfg.Port, "storageProvider", cfg.StorageProvider)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatalw("server stopped", "error", err)
	}
}
