package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devfolio/internal/clients"
	"devfolio/internal/config"
	"devfolio/internal/handlers"
	"devfolio/internal/middleware"
	"devfolio/internal/repository"
	"devfolio/internal/service"
	"devfolio/internal/worker"
	"devfolio/pkg/database"
	"devfolio/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

func main() {
	// Загрузка .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	log.Println("=== Devfolio Backend Starting ===")

	// Загрузка конфигурации
	cfg := config.Load()

	// Подключение к PostgreSQL
	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	// Подключение к Redis
	redisClient, err := redis.Connect(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Автомиграция моделей
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Инициализация репозиториев
	projectRepo := repository.NewProjectRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	contactRepo := repository.NewContactRepository(db)
	chatRepo := repository.NewChatRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient)

	// Клиенты внешних API
	githubClient := clients.NewGitHubClient(clients.GitHubConfig{
		Username: cfg.GitHub.Username,
		Token:    cfg.GitHub.Token,
		BaseURL:  cfg.GitHub.BaseURL,
	})
	steamClient := clients.NewSteamClient(clients.SteamConfig{
		APIKey:       cfg.Steam.APIKey,
		SteamID:      cfg.Steam.SteamID,
		APIBaseURL:   cfg.Steam.APIBaseURL,
		CommunityURL: cfg.Steam.CommunityURL,
	})
	geminiClient := clients.NewGeminiClient(clients.GeminiConfig{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
	})
	minecraftClient := clients.NewMinecraftClient(10 * time.Second)
	zomboidClient := clients.NewZomboidClient(8 * time.Second)
	discordClient := clients.NewDiscordClient()

	// Инициализация сервисов
	projectService := service.NewProjectService(projectRepo, cacheRepo, githubClient)
	articleService := service.NewArticleService(articleRepo)
	chatService := service.NewChatService(chatRepo, geminiClient)
	steamService := service.NewSteamService(steamClient, cacheRepo, service.SteamServiceConfig{
		Configured:   cfg.Steam.APIKey != "" && cfg.Steam.SteamID != "",
		CacheTTL:     cfg.Steam.CacheTTL,
		SnapshotFile: cfg.Steam.SnapshotFile,
	})
	statusService := service.NewStatusService(minecraftClient, zomboidClient, discordClient, service.StatusConfig{
		MinecraftAddress:     cfg.Minecraft.Address,
		MinecraftDisplayName: cfg.Minecraft.DisplayName,
		ZomboidAddress:       cfg.Zomboid.Address,
		ZomboidDisplayName:   cfg.Zomboid.DisplayName,
		DiscordGuildID:       cfg.Discord.GuildID,
		DiscordInviteURL:     cfg.Discord.InviteURL,
	})
	authService := service.NewAuthService(service.AuthConfig{
		Username:     cfg.Admin.Username,
		PasswordHash: cfg.Admin.PasswordHash,
		JWTSecret:    cfg.Admin.JWTSecret,
	})

	// Фоновые задачи
	scheduler := worker.NewScheduler()

	if cfg.Workers.SyncEnabled {
		scheduler.AddWorker(worker.NewProjectWorker(projectService, cfg.Workers.SyncInterval))
		log.Printf("Project sync worker enabled (interval: %v)", cfg.Workers.SyncInterval)
	}

	go scheduler.Start()
	defer scheduler.Stop()

	// Инициализация Gin
	if cfg.App.Debug {
		gin.SetMode(gin.DebugMode)
		log.Println("Running in DEBUG mode")
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// CORS для React фронтенда
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", cfg.App.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Rate limiting (только для продакшена)
	if !cfg.App.Debug {
		limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
		r.Use(middleware.RateLimitMiddleware(limiter))
		log.Printf("Rate limiting enabled: %d req/sec, burst: %d",
			cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// Хендлеры
	statusHandler := handlers.NewStatusHandler(statusService, db)
	steamHandler := handlers.NewSteamHandler(steamService)
	projectHandler := handlers.NewProjectHandler(projectService)
	blogHandler := handlers.NewBlogHandler(articleService)
	contactHandler := handlers.NewContactHandler(contactRepo)
	chatHandler := handlers.NewChatHandler(chatService)
	adminHandler := handlers.NewAdminHandler(authService, articleService, chatService, contactRepo)
	sitemapHandler := handlers.NewSitemapHandler(projectService, articleService, cfg.App.BaseURL)

	r.GET("/sitemap.xml", sitemapHandler.Get)

	// Группа API v1
	api := r.Group("/api/v1")
	{
		api.GET("/servers", statusHandler.GetServers)
		api.GET("/status", statusHandler.GetStatus)
		api.GET("/steam", steamHandler.GetProfile)

		api.GET("/projects", projectHandler.List)
		api.GET("/projects/:name", projectHandler.Detail)

		api.GET("/blog", blogHandler.List)
		api.GET("/blog/:slug", blogHandler.GetBySlug)

		api.POST("/contact", contactHandler.Submit)

		api.GET("/chat/history", chatHandler.History)
		api.POST("/chat/send", chatHandler.Send)
		api.POST("/chat/reply", chatHandler.Reply)

		api.POST("/admin/login", adminHandler.Login)
	}

	// Админка под JWT
	admin := api.Group("/admin")
	admin.Use(middleware.JWTAuth([]byte(cfg.Admin.JWTSecret)))
	{
		admin.POST("/projects/sync", projectHandler.Sync)
		admin.GET("/messages", adminHandler.ListContactMessages)
		admin.GET("/messages/export", adminHandler.ExportContactMessages)
		admin.GET("/chats", adminHandler.ListChatSessions)
		admin.GET("/chats/:id", adminHandler.GetChatSession)
		admin.GET("/articles", adminHandler.ListArticles)
		admin.POST("/articles", adminHandler.CreateArticle)
		admin.PUT("/articles/:id", adminHandler.UpdateArticle)
		admin.DELETE("/articles/:id", adminHandler.DeleteArticle)
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%s", cfg.App.Port)
		log.Printf("API available at http://localhost:%s/api/v1", cfg.App.Port)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start:", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited properly")
}
