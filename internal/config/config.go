package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	App struct {
		Port        string
		Debug       bool
		FrontendURL string
		BaseURL     string
	}
	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
		DB       int
	}
	GitHub struct {
		Username string
		Token    string
		BaseURL  string
	}
	Steam struct {
		APIKey       string
		SteamID      string
		APIBaseURL   string
		CommunityURL string
		CacheTTL     time.Duration
		SnapshotFile string
	}
	Gemini struct {
		APIKey  string
		Model   string
		BaseURL string
	}
	Minecraft struct {
		Address     string
		DisplayName string
	}
	Zomboid struct {
		Address     string
		DisplayName string
	}
	Discord struct {
		GuildID   string
		InviteURL string
	}
	Admin struct {
		Username     string
		PasswordHash string
		JWTSecret    string
	}
	Workers struct {
		SyncEnabled  bool
		SyncInterval time.Duration
	}
	RateLimit struct {
		RequestsPerSecond int
		Burst             int
	}
}

func Load() *Config {
	cfg := &Config{}

	// App
	cfg.App.Port = getEnv("PORT", "8080")
	cfg.App.Debug = getEnvAsBool("DEBUG", false)
	cfg.App.FrontendURL = getEnv("FRONTEND_URL", "http://localhost:3000")
	cfg.App.BaseURL = getEnv("BASE_URL", "http://localhost:8080")

	// DB
	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.DB.DBName = getEnv("DB_NAME", "devfolio")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	// Redis
	cfg.Redis.Host = getEnv("REDIS_HOST", "localhost")
	cfg.Redis.Port = getEnv("REDIS_PORT", "6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", 0)

	// GitHub
	cfg.GitHub.Username = getEnv("GITHUB_USERNAME", "Dorminha")
	cfg.GitHub.Token = getEnv("GITHUB_TOKEN", "")
	cfg.GitHub.BaseURL = getEnv("GITHUB_BASE_URL", "https://api.github.com")

	// Steam
	cfg.Steam.APIKey = getEnv("STEAM_API_KEY", "")
	cfg.Steam.SteamID = getEnv("STEAM_ID", "")
	cfg.Steam.APIBaseURL = getEnv("STEAM_API_URL", "http://api.steampowered.com")
	cfg.Steam.CommunityURL = getEnv("STEAM_COMMUNITY_URL", "https://steamcommunity.com")
	cfg.Steam.CacheTTL = getEnvAsDuration("STEAM_CACHE_TTL", 15*time.Minute)
	cfg.Steam.SnapshotFile = getEnv("STEAM_SNAPSHOT_FILE", "./data/steam_cache.json")

	// Gemini
	cfg.Gemini.APIKey = getEnv("GEMINI_API_KEY", "")
	cfg.Gemini.Model = getEnv("GEMINI_MODEL", "gemini-1.5-flash")
	cfg.Gemini.BaseURL = getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta")

	// Game servers
	cfg.Minecraft.Address = getEnv("MINECRAFT_SERVER", "localhost")
	cfg.Minecraft.DisplayName = getEnv("MINECRAFT_DISPLAY_NAME", "")
	cfg.Zomboid.Address = getEnv("ZOMBOID_SERVER", "localhost:16261")
	cfg.Zomboid.DisplayName = getEnv("ZOMBOID_DISPLAY_NAME", "")

	// Discord
	cfg.Discord.GuildID = getEnv("DISCORD_GUILD_ID", "")
	cfg.Discord.InviteURL = getEnv("DISCORD_INVITE_URL", "")

	// Admin
	cfg.Admin.Username = getEnv("ADMIN_USER", "admin")
	cfg.Admin.PasswordHash = getEnv("ADMIN_PASSWORD_HASH", "")
	cfg.Admin.JWTSecret = getEnv("JWT_SECRET", "change_this_in_production")

	// Workers
	cfg.Workers.SyncEnabled = getEnvAsBool("SYNC_ENABLED", true)
	cfg.Workers.SyncInterval = getEnvAsDuration("SYNC_INTERVAL", 6*time.Hour)

	// Rate Limit
	cfg.RateLimit.RequestsPerSecond = getEnvAsInt("RATE_LIMIT_RPS", 10)
	cfg.RateLimit.Burst = getEnvAsInt("RATE_LIMIT_BURST", 20)

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if dur, err := time.ParseDuration(value); err == nil {
			return dur
		}
	}
	return defaultValue
}
