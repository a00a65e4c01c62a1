package service

import (
	"context"
	"log"
	"regexp"
	"sync"

	"devfolio/internal/clients"
)

// MinecraftPayload всегда структурно валиден: при любой ошибке опроса
// виджет получает детерминированный офлайн-вариант, а не исключение
type MinecraftPayload struct {
	Online     bool    `json:"online"`
	Game       string  `json:"game"`
	Players    int     `json:"players"`
	MaxPlayers int     `json:"max_players"`
	Latency    float64 `json:"latency,omitempty"`
	Version    string  `json:"version"`
	MOTD       string  `json:"motd"`
}

type ZomboidPayload struct {
	Online     bool    `json:"online"`
	Game       string  `json:"game"`
	ServerName string  `json:"server_name"`
	Players    int     `json:"players"`
	MaxPlayers int     `json:"max_players"`
	Latency    float64 `json:"latency,omitempty"`
	Map        string  `json:"map"`
}

type DiscordPayload struct {
	Online        bool                    `json:"online"`
	Game          string                  `json:"game,omitempty"`
	Name          string                  `json:"name,omitempty"`
	InstantInvite string                  `json:"instant_invite,omitempty"`
	PresenceCount int                     `json:"presence_count"`
	IconURL       string                  `json:"icon_url,omitempty"`
	Members       []clients.DiscordMember `json:"members"`
	Error         string                  `json:"error,omitempty"`
}

type ServerStatuses struct {
	Minecraft MinecraftPayload `json:"minecraft"`
	Zomboid   ZomboidPayload   `json:"zomboid"`
	Discord   DiscordPayload   `json:"discord"`
}

type StatusConfig struct {
	MinecraftAddress     string
	MinecraftDisplayName string
	ZomboidAddress       string
	ZomboidDisplayName   string
	DiscordGuildID       string
	DiscordInviteURL     string
}

type StatusService interface {
	GetServers(ctx context.Context) ServerStatuses
}

type statusService struct {
	minecraft clients.MinecraftClient
	zomboid   clients.ZomboidClient
	discord   clients.DiscordClient
	cfg       StatusConfig
}

func NewStatusService(
	minecraft clients.MinecraftClient,
	zomboid clients.ZomboidClient,
	discord clients.DiscordClient,
	cfg StatusConfig,
) StatusService {
	return &statusService{
		minecraft: minecraft,
		zomboid:   zomboid,
		discord:   discord,
		cfg:       cfg,
	}
}

var motdColorCodes = regexp.MustCompile(`§[0-9a-fk-or]`)

// GetServers опрашивает три провайдера параллельно. Провайдеры
// независимы: сбой одного не влияет на ответ остальных, у каждого
// свой таймаут внутри клиента.
func (s *statusService) GetServers(ctx context.Context) ServerStatuses {
	var statuses ServerStatuses

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		statuses.Minecraft = s.minecraftStatus()
	}()

	go func() {
		defer wg.Done()
		statuses.Zomboid = s.zomboidStatus()
	}()

	go func() {
		defer wg.Done()
		statuses.Discord = s.discordStatus(ctx)
	}()

	wg.Wait()

	// Переопределения отображаемых имен из конфигурации
	if s.cfg.MinecraftDisplayName != "" {
		statuses.Minecraft.MOTD = s.cfg.MinecraftDisplayName
	}
	if s.cfg.ZomboidDisplayName != "" {
		statuses.Zomboid.ServerName = s.cfg.ZomboidDisplayName
	}

	return statuses
}

func (s *statusService) minecraftStatus() MinecraftPayload {
	status, err := s.minecraft.Status(s.cfg.MinecraftAddress)
	if err != nil {
		log.Printf("Minecraft query failed: %v", err)
		return MinecraftPayload{
			Online:  false,
			Game:    "Minecraft",
			MOTD:    "Offline",
			Version: "Unknown",
		}
	}

	// Облачные хостинги отвечают max_players=0, когда сервер усыплен -
	// для виджета это офлайн, но версия известна
	if status.MaxPlayers == 0 {
		return MinecraftPayload{
			Online:  false,
			Game:    "Minecraft",
			MOTD:    "Offline (Sleeping)",
			Version: status.Version,
		}
	}

	return MinecraftPayload{
		Online:     true,
		Game:       "Minecraft",
		Players:    status.Players,
		MaxPlayers: status.MaxPlayers,
		Latency:    roundMs(status.Latency.Seconds() * 1000),
		Version:    status.Version,
		MOTD:       motdColorCodes.ReplaceAllString(status.MOTD, ""),
	}
}

func (s *statusService) zomboidStatus() ZomboidPayload {
	status, err := s.zomboid.Status(s.cfg.ZomboidAddress)
	if err != nil {
		log.Printf("Zomboid query failed: %v", err)
		return ZomboidPayload{
			Online:     false,
			Game:       "Project Zomboid",
			ServerName: "Offline",
			Map:        "Unknown",
		}
	}

	return ZomboidPayload{
		Online:     true,
		Game:       "Project Zomboid",
		ServerName: status.ServerName,
		Players:    status.Players,
		MaxPlayers: status.MaxPlayers,
		Latency:    roundMs(status.Latency.Seconds() * 1000),
		Map:        status.Map,
	}
}

// discordStatus - двухступенчатая стратегия: сначала widget (богаче:
// список участников), при сбое invite API (только счетчики). Если не
// настроено ни то ни другое - явный "disabled" вариант.
func (s *statusService) discordStatus(ctx context.Context) DiscordPayload {
	if s.cfg.DiscordGuildID != "" {
		guild, err := s.discord.GetWidget(ctx, s.cfg.DiscordGuildID)
		if err == nil {
			return DiscordPayload{
				Online:        true,
				Game:          "Discord",
				Name:          guild.Name,
				InstantInvite: guild.InviteURL,
				PresenceCount: guild.PresenceCount,
				Members:       guild.Members,
			}
		}
		log.Printf("Discord widget failed: %v", err)
	}

	if s.cfg.DiscordInviteURL == "" {
		return DiscordPayload{Online: false, Error: "Widget Disabled & No Invite URL"}
	}

	code := clients.InviteCodeFromURL(s.cfg.DiscordInviteURL)
	guild, err := s.discord.GetInvite(ctx, code)
	if err != nil {
		log.Printf("Discord invite lookup failed: %v", err)
		return DiscordPayload{Online: false, Error: "Connection Failed"}
	}

	return DiscordPayload{
		Online:        true,
		Game:          "Discord",
		Name:          guild.Name,
		InstantInvite: s.cfg.DiscordInviteURL,
		PresenceCount: guild.PresenceCount,
		IconURL:       guild.IconURL,
		Members:       []clients.DiscordMember{},
	}
}

func roundMs(ms float64) float64 {
	return float64(int(ms*100)) / 100
}
