package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"devfolio/internal/clients"
	"devfolio/internal/models"
	"devfolio/internal/repository"
)

const steamProfileCacheKey = "steam:profile"

type SteamService interface {
	// GetProfile отдает снимок профиля: свежий из кэша, живой из API
	// или последний удачный из файла-снапшота - в этом порядке
	GetProfile(ctx context.Context) models.SteamProfile
}

type SteamServiceConfig struct {
	Configured   bool
	CacheTTL     time.Duration
	SnapshotFile string
}

type steamService struct {
	client    clients.SteamClient
	cacheRepo repository.CacheRepository
	cfg       SteamServiceConfig
}

func NewSteamService(
	client clients.SteamClient,
	cacheRepo repository.CacheRepository,
	cfg SteamServiceConfig,
) SteamService {
	return &steamService{
		client:    client,
		cacheRepo: cacheRepo,
		cfg:       cfg,
	}
}

func (s *steamService) GetProfile(ctx context.Context) models.SteamProfile {
	// 1. Быстрый слой: запись моложе TTL отдается без сетевых вызовов
	var cached models.SteamProfile
	if err := s.cacheRepo.GetJSON(ctx, steamProfileCacheKey, &cached); err == nil && cached.Online {
		return cached
	}

	if !s.cfg.Configured {
		return models.SteamProfile{Online: false, Error: "Steam credentials not configured"}
	}

	// 2. Живой фетч
	profile, err := s.fetchLive(ctx)
	if err == nil {
		if cacheErr := s.cacheRepo.SetJSON(ctx, steamProfileCacheKey, profile, s.cfg.CacheTTL); cacheErr != nil {
			log.Printf("Failed to cache Steam profile: %v", cacheErr)
		}
		s.saveSnapshot(profile)
		return *profile
	}

	log.Printf("Steam API failed: %v. Trying snapshot fallback.", err)

	// 3. Долговечный слой: последний удачный снимок с диска
	if snapshot, loadErr := s.loadSnapshot(); loadErr == nil {
		return *snapshot
	}

	return models.SteamProfile{Online: false, Error: "Steam unreachable and no cache found"}
}

func (s *steamService) fetchLive(ctx context.Context) (*models.SteamProfile, error) {
	player, err := s.client.GetPlayerSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("player summary: %w", err)
	}

	// Уровень и игры деградируют независимо: их сбой не валит профиль
	level, err := s.client.GetLevel(ctx)
	if err != nil {
		log.Printf("Steam level fetch failed: %v", err)
		level = 0
	}

	games := make([]models.SteamGame, 0, 3)
	recent, err := s.client.GetRecentGames(ctx, 3)
	if err != nil {
		log.Printf("Steam recent games fetch failed: %v", err)
	}
	for _, game := range recent {
		ach := s.client.GetAchievements(ctx, game.AppID)

		games = append(games, models.SteamGame{
			Name:           game.Name,
			AppID:          game.AppID,
			Playtime2Weeks: roundHours(game.Playtime2Weeks),
			PlaytimeTotal:  roundHours(game.PlaytimeTotal),
			IconURL: fmt.Sprintf(
				"http://media.steampowered.com/steamcommunity/public/images/apps/%d/%s.jpg",
				game.AppID, game.ImgIconURL),
			Achievements: models.SteamAchievements{
				Total:      ach.Total,
				Achieved:   ach.Achieved,
				Percentage: ach.Percentage,
			},
		})
	}

	screenshots := make([]models.Screenshot, 0, 4)
	shots, err := s.client.GetScreenshots(ctx, 4)
	if err != nil {
		log.Printf("Steam screenshots fetch failed: %v", err)
	}
	for _, shot := range shots {
		screenshots = append(screenshots, models.Screenshot{
			Title:    shot.Title,
			Link:     shot.Link,
			ImageURL: shot.ImageURL,
		})
	}

	return &models.SteamProfile{
		Online:      true,
		Username:    player.Username,
		AvatarURL:   player.AvatarURL,
		ProfileURL:  player.ProfileURL,
		Level:       level,
		Status:      player.PersonaState,
		RecentGames: games,
		Screenshots: screenshots,
	}, nil
}

// saveSnapshot перезаписывает файл-снапшот целиком через rename,
// чтобы гонка двух записей не оставила битый JSON. Сбой записи не
// фатален для запроса.
func (s *steamService) saveSnapshot(profile *models.SteamProfile) {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		log.Printf("Failed to marshal Steam snapshot: %v", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.cfg.SnapshotFile), 0o755); err != nil {
		log.Printf("Failed to create snapshot dir: %v", err)
		return
	}

	tmp := s.cfg.SnapshotFile + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		log.Printf("Failed to write Steam snapshot: %v", err)
		return
	}
	if err := os.Rename(tmp, s.cfg.SnapshotFile); err != nil {
		log.Printf("Failed to replace Steam snapshot: %v", err)
	}
}

func (s *steamService) loadSnapshot() (*models.SteamProfile, error) {
	data, err := os.ReadFile(s.cfg.SnapshotFile)
	if err != nil {
		return nil, err
	}

	var profile models.SteamProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}

	return &profile, nil
}

// roundHours переводит минуты в часы с одним знаком после запятой
func roundHours(minutes int) float64 {
	return float64(minutes*10/60) / 10
}
