package bootstrap

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"fiberise-be/internal/config"
	"fiberise-be/internal/controller"
	"fiberise-be/internal/identity"
	"fiberise-be/internal/pkg/logger"
	"fiberise-be/internal/pkg/serverutils"
	"fiberise-be/internal/pkg/token"
	"fiberise-be/internal/repository/contract"
	"fiberise-be/internal/repository/implementation"
	"fiberise-be/internal/repository/memory"
	redisrepo "fiberise-be/internal/repository/redis"
	"fiberise-be/internal/service"
	"fiberise-be/pkg/genai/gemini"
)

type Container struct {
	// Controllers
	AuthController controller.IAuthController
	ChatController controller.IChatController

	// Shared middleware and infrastructure
	AuthRequired fiber.Handler
	Logger       logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Transcript store: in-memory by default, redis when configured
	var transcripts contract.TranscriptRepository
	if cfg.App.SessionStore == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Fatalf("[FATAL] SESSION_STORE=redis but Redis is unreachable: %v", err)
		}
		transcripts = redisrepo.NewTranscriptRepository(rdb)
		log.Println("[INFO] Using Session Store: REDIS")
	} else {
		transcripts = memory.NewTranscriptRepository()
		log.Println("[INFO] Using Session Store: MEMORY")
	}

	// Identity provider bridge
	verifier, err := identity.NewFirebaseVerifier(context.Background(), cfg.Firebase)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Firebase Admin SDK: %v", err)
	}

	// Session tokens
	tokens := token.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)

	// Repositories & services
	userRepo := implementation.NewUserRepository(db)
	authService := service.NewAuthService(verifier, userRepo, tokens, sysLogger)

	provider := gemini.NewProvider(cfg.Ai.GeminiAPIKey)
	chatService := service.NewChatService(provider, transcripts, cfg.Ai.Models, nil, sysLogger)

	return &Container{
		AuthController: controller.NewAuthController(authService),
		ChatController: controller.NewChatController(chatService),
		AuthRequired:   serverutils.JwtMiddleware(tokens),
		Logger:         sysLogger,
	}
}
