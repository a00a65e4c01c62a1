package clients

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type SteamPlayer struct {
	Username     string
	AvatarURL    string
	ProfileURL   string
	PersonaState int
}

type SteamRecentGame struct {
	AppID          int    `json:"appid"`
	Name           string `json:"name"`
	Playtime2Weeks int    `json:"playtime_2weeks"`
	PlaytimeTotal  int    `json:"playtime_forever"`
	ImgIconURL     string `json:"img_icon_url"`
}

type SteamAchievementSummary struct {
	Total      int
	Achieved   int
	Percentage int
}

type SteamScreenshot struct {
	Title    string
	Link     string
	ImageURL string
}

type SteamClient interface {
	GetPlayerSummary(ctx context.Context) (*SteamPlayer, error)
	GetLevel(ctx context.Context) (int, error)
	GetRecentGames(ctx context.Context, count int) ([]SteamRecentGame, error)
	// GetAchievements деградирует до нулевой сводки при любой ошибке
	GetAchievements(ctx context.Context, appID int) SteamAchievementSummary
	GetScreenshots(ctx context.Context, max int) ([]SteamScreenshot, error)
}

type SteamConfig struct {
	APIKey       string
	SteamID      string
	APIBaseURL   string
	CommunityURL string
}

type steamClient struct {
	apiKey       string
	steamID      string
	apiBaseURL   string
	communityURL string
	httpClient   *http.Client
}

func NewSteamClient(config SteamConfig) SteamClient {
	return &steamClient{
		apiKey:       config.APIKey,
		steamID:      config.SteamID,
		apiBaseURL:   config.APIBaseURL,
		communityURL: config.CommunityURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *steamClient) getJSON(ctx context.Context, url string, timeout time.Duration, dest interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Steam API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode JSON: %w", err)
	}

	return nil
}

func (c *steamClient) GetPlayerSummary(ctx context.Context) (*SteamPlayer, error) {
	url := fmt.Sprintf("%s/ISteamUser/GetPlayerSummaries/v0002/?key=%s&steamids=%s",
		c.apiBaseURL, c.apiKey, c.steamID)

	var data struct {
		Response struct {
			Players []struct {
				PersonaName  string `json:"personaname"`
				AvatarFull   string `json:"avatarfull"`
				ProfileURL   string `json:"profileurl"`
				PersonaState int    `json:"personastate"`
			} `json:"players"`
		} `json:"response"`
	}

	if err := c.getJSON(ctx, url, 5*time.Second, &data); err != nil {
		return nil, err
	}

	if len(data.Response.Players) == 0 {
		return nil, fmt.Errorf("invalid Steam API response: no players")
	}

	p := data.Response.Players[0]
	return &SteamPlayer{
		Username:     p.PersonaName,
		AvatarURL:    p.AvatarFull,
		ProfileURL:   p.ProfileURL,
		PersonaState: p.PersonaState,
	}, nil
}

func (c *steamClient) GetLevel(ctx context.Context) (int, error) {
	url := fmt.Sprintf("%s/IPlayerService/GetSteamLevel/v1/?key=%s&steamid=%s",
		c.apiBaseURL, c.apiKey, c.steamID)

	var data struct {
		Response struct {
			PlayerLevel int `json:"player_level"`
		} `json:"response"`
	}

	if err := c.getJSON(ctx, url, 5*time.Second, &data); err != nil {
		return 0, err
	}

	return data.Response.PlayerLevel, nil
}

func (c *steamClient) GetRecentGames(ctx context.Context, count int) ([]SteamRecentGame, error) {
	url := fmt.Sprintf("%s/IPlayerService/GetRecentlyPlayedGames/v0001/?key=%s&steamid=%s&count=%d",
		c.apiBaseURL, c.apiKey, c.steamID, count)

	var data struct {
		Response struct {
			Games []SteamRecentGame `json:"games"`
		} `json:"response"`
	}

	if err := c.getJSON(ctx, url, 5*time.Second, &data); err != nil {
		return nil, err
	}

	return data.Response.Games, nil
}

func (c *steamClient) GetAchievements(ctx context.Context, appID int) SteamAchievementSummary {
	url := fmt.Sprintf("%s/ISteamUserStats/GetPlayerAchievements/v0001/?appid=%d&key=%s&steamid=%s",
		c.apiBaseURL, appID, c.apiKey, c.steamID)

	var data struct {
		PlayerStats struct {
			Achievements []struct {
				Achieved int `json:"achieved"`
			} `json:"achievements"`
		} `json:"playerstats"`
	}

	// Игры без достижений отвечают 400 - для виджета это нулевая сводка
	if err := c.getJSON(ctx, url, 2*time.Second, &data); err != nil {
		return SteamAchievementSummary{}
	}

	total := len(data.PlayerStats.Achievements)
	if total == 0 {
		return SteamAchievementSummary{}
	}

	achieved := 0
	for _, a := range data.PlayerStats.Achievements {
		if a.Achieved == 1 {
			achieved++
		}
	}

	return SteamAchievementSummary{
		Total:      total,
		Achieved:   achieved,
		Percentage: achieved * 100 / total,
	}
}

type screenshotRSS struct {
	Channel struct {
		Items []struct {
			Title       string `xml:"title"`
			Link        string `xml:"link"`
			Description string `xml:"description"`
		} `xml:"item"`
	} `xml:"channel"`
}

func (c *steamClient) GetScreenshots(ctx context.Context, max int) ([]SteamScreenshot, error) {
	url := fmt.Sprintf("%s/profiles/%s/screenshots/rss", c.communityURL, c.steamID)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("screenshot feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read feed body: %w", err)
	}

	var feed screenshotRSS
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("parse feed XML: %w", err)
	}

	var screenshots []SteamScreenshot
	for _, item := range feed.Channel.Items {
		if len(screenshots) >= max {
			break
		}

		imgURL := extractImageSrc(item.Description)
		if imgURL == "" {
			continue
		}

		title := item.Title
		if title == "" {
			title = "Screenshot"
		}

		screenshots = append(screenshots, SteamScreenshot{
			Title:    title,
			Link:     item.Link,
			ImageURL: imgURL,
		})
	}

	return screenshots, nil
}

// extractImageSrc вытаскивает URL картинки из HTML внутри description
func extractImageSrc(description string) string {
	start := strings.Index(description, `src="`)
	if start < 0 {
		return ""
	}
	start += len(`src="`)

	end := strings.Index(description[start:], `"`)
	if end < 0 {
		return ""
	}

	return description[start : start+end]
}
