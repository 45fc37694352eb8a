package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog/log"

	"github.com/Victormarshall911/NexTalk/internal/cache"
	"github.com/Victormarshall911/NexTalk/internal/config"
	"github.com/Victormarshall911/NexTalk/internal/handlers"
	"github.com/Victormarshall911/NexTalk/internal/handlers/ws"
	"github.com/Victormarshall911/NexTalk/internal/logx"
	"github.com/Victormarshall911/NexTalk/internal/middleware"
	"github.com/Victormarshall911/NexTalk/internal/prefs"
	"github.com/Victormarshall911/NexTalk/internal/push"
	"github.com/Victormarshall911/NexTalk/internal/repository"
	"github.com/Victormarshall911/NexTalk/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logx.Init(cfg.Env)

	app := fiber.New(fiber.Config{
		AppName: "NexTalk Backend",
	})

	app.Use(requestid.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	db, err := repository.InitDB(cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Redis is optional: without it the profile cache and presence set
	// degrade to no-ops and every lookup hits Postgres.
	redisCache := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := redisCache.Ping(); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, running without cache")
		redisCache = nil
	} else {
		log.Info().Str("addr", cfg.RedisAddr).Msg("redis connected")
		defer redisCache.Close()
	}
	profileCache := cache.NewProfileCache(redisCache)
	presenceCache := cache.NewPresenceCache(redisCache, ws.PongTimeout)

	prefStore, err := prefs.Open(cfg.PrefsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open preference store")
	}
	defer prefStore.Close()

	relay := push.NewRelay(cfg.PushRelayURL)

	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userService := service.NewUserService(userRepo, profileCache, presenceCache)
	messageService := service.NewMessageService(messageRepo)
	conversationService := service.NewConversationService(messageRepo, userService)

	wsHandler := handlers.NewWebSocketHandler(userService, presenceCache)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	messageHandler := handlers.NewMessageHandler(messageService, conversationService, userService, wsHandler.GetHub(), relay)
	preferenceHandler := handlers.NewPreferenceHandler(prefStore)

	api := app.Group("/api")

	auth := api.Group("/auth", limiter.New(limiter.Config{
		Max:        20,
		Expiration: time.Minute,
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)

	protected := api.Group("/", middleware.AuthRequired(cfg.JWTSecret))
	protected.Post("/auth/logout-all", authHandler.LogoutAll)
	protected.Get("/users/me", userHandler.GetCurrentUser)
	protected.Put("/users/me", userHandler.UpdateProfile)
	protected.Put("/users/me/push-token", userHandler.RegisterPushToken)
	protected.Delete("/users/me/push-token", userHandler.UnregisterPushToken)
	protected.Get("/users/search", userHandler.SearchUsers)
	protected.Get("/users", userHandler.ListUsers)
	protected.Get("/conversations", messageHandler.GetConversations)
	protected.Post("/conversations/:peer_id/read", messageHandler.MarkConversationRead)
	protected.Get("/messages", messageHandler.GetMessages)
	protected.Post("/messages", messageHandler.SendMessage)
	protected.Get("/preferences/theme", preferenceHandler.GetTheme)
	protected.Put("/preferences/theme", preferenceHandler.SetTheme)

	app.Use(
		"/ws",
		middleware.AuthRequired(cfg.JWTSecret),
		func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		},
	)
	app.Get("/ws", websocket.New(wsHandler.HandleWebSocket))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "NexTalk is running",
		})
	})

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
