package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type DiscordMember struct {
	Username  string `json:"username"`
	Status    string `json:"status"`
	AvatarURL string `json:"avatar_url"`
}

// DiscordGuild - общий результат двух источников: widget дает список
// участников, invite - только приблизительные счетчики
type DiscordGuild struct {
	Name          string
	InviteURL     string
	PresenceCount int
	IconURL       string
	Members       []DiscordMember
}

type DiscordClient interface {
	GetWidget(ctx context.Context, guildID string) (*DiscordGuild, error)
	GetInvite(ctx context.Context, inviteCode string) (*DiscordGuild, error)
}

type discordClient struct {
	baseURL    string
	cdnURL     string
	httpClient *http.Client
}

func NewDiscordClient() DiscordClient {
	return NewDiscordClientWithURLs("https://discord.com/api", "https://cdn.discordapp.com")
}

func NewDiscordClientWithURLs(baseURL, cdnURL string) DiscordClient {
	return &discordClient{
		baseURL: baseURL,
		cdnURL:  cdnURL,
		httpClient: &http.Client{
			Timeout: 3 * time.Second,
		},
	}
}

func (c *discordClient) GetWidget(ctx context.Context, guildID string) (*DiscordGuild, error) {
	reqURL := fmt.Sprintf("%s/guilds/%s/widget.json", c.baseURL, guildID)

	var data struct {
		Name          string          `json:"name"`
		InstantInvite string          `json:"instant_invite"`
		PresenceCount int             `json:"presence_count"`
		Members       []DiscordMember `json:"members"`
	}

	if err := c.getJSON(ctx, reqURL, &data); err != nil {
		return nil, err
	}

	return &DiscordGuild{
		Name:          data.Name,
		InviteURL:     data.InstantInvite,
		PresenceCount: data.PresenceCount,
		Members:       data.Members,
	}, nil
}

func (c *discordClient) GetInvite(ctx context.Context, inviteCode string) (*DiscordGuild, error) {
	reqURL := fmt.Sprintf("%s/v9/invites/%s?with_counts=true", c.baseURL, inviteCode)

	var data struct {
		ApproximatePresenceCount int `json:"approximate_presence_count"`
		Guild                    struct {
			ID   string `json:"id"`
			Name string `json:"name"`
			Icon string `json:"icon"`
		} `json:"guild"`
	}

	if err := c.getJSON(ctx, reqURL, &data); err != nil {
		return nil, err
	}

	iconURL := ""
	if data.Guild.Icon != "" && data.Guild.ID != "" {
		iconURL = fmt.Sprintf("%s/icons/%s/%s.png", c.cdnURL, data.Guild.ID, data.Guild.Icon)
	}

	return &DiscordGuild{
		Name:          data.Guild.Name,
		PresenceCount: data.ApproximatePresenceCount,
		IconURL:       iconURL,
	}, nil
}

func (c *discordClient) getJSON(ctx context.Context, url string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Discord API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode JSON: %w", err)
	}

	return nil
}

// InviteCodeFromURL - код приглашения из полной ссылки discord.gg/...
func InviteCodeFromURL(inviteURL string) string {
	trimmed := strings.TrimRight(inviteURL, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return trimmed
	}
	return trimmed[idx+1:]
}
