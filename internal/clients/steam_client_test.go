package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSteamClient(apiURL, communityURL string) SteamClient {
	return NewSteamClient(SteamConfig{
		APIKey:       "k",
		SteamID:      "76561198000000000",
		APIBaseURL:   apiURL,
		CommunityURL: communityURL,
	})
}

func TestSteamGetPlayerSummary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ISteamUser/GetPlayerSummaries/v0002/", r.URL.Path)
		w.Write([]byte(`{"response": {"players": [{
			"personaname": "dorminha",
			"avatarfull": "https://avatars.example.com/full.jpg",
			"profileurl": "https://steamcommunity.com/id/dorminha",
			"personastate": 1
		}]}}`))
	}))
	defer server.Close()

	client := newTestSteamClient(server.URL, server.URL)

	player, err := client.GetPlayerSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "dorminha", player.Username)
	assert.Equal(t, "https://avatars.example.com/full.jpg", player.AvatarURL)
	assert.Equal(t, 1, player.PersonaState)
}

func TestSteamGetPlayerSummary_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": {"players": []}}`))
	}))
	defer server.Close()

	client := newTestSteamClient(server.URL, server.URL)

	_, err := client.GetPlayerSummary(context.Background())
	require.Error(t, err)
}

func TestSteamGetAchievements(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"playerstats": {"achievements": [
			{"achieved": 1}, {"achieved": 1}, {"achieved": 0}, {"achieved": 0}
		]}}`))
	}))
	defer server.Close()

	client := newTestSteamClient(server.URL, server.URL)

	summary := client.GetAchievements(context.Background(), 108600)

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2, summary.Achieved)
	assert.Equal(t, 50, summary.Percentage)
}

func TestSteamGetAchievements_DegradesToZero(t *testing.T) {
	// Игры без достижений отвечают 400 Bad Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"playerstats": {"error": "Requested app has no stats"}}`))
	}))
	defer server.Close()

	client := newTestSteamClient(server.URL, server.URL)

	summary := client.GetAchievements(context.Background(), 999999)

	assert.Zero(t, summary.Total)
	assert.Zero(t, summary.Achieved)
	assert.Zero(t, summary.Percentage)
}

func TestSteamGetScreenshots(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/profiles/76561198000000000/screenshots/rss", r.URL.Path)
		w.Header().Set("Content-Type", "text/xml")
		w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Steam Community :: Screenshots</title>
    <item>
      <title>Night raid</title>
      <link>https://steamcommunity.com/sharedfiles/filedetails/?id=1</link>
      <description>&lt;img src="https://images.example.com/1.jpg" /&gt;</description>
    </item>
    <item>
      <title></title>
      <link>https://steamcommunity.com/sharedfiles/filedetails/?id=2</link>
      <description>&lt;img src="https://images.example.com/2.jpg" /&gt;</description>
    </item>
    <item>
      <title>No image here</title>
      <link>https://steamcommunity.com/sharedfiles/filedetails/?id=3</link>
      <description>plain text</description>
    </item>
    <item>
      <title>Overflow</title>
      <link>https://steamcommunity.com/sharedfiles/filedetails/?id=4</link>
      <description>&lt;img src="https://images.example.com/4.jpg" /&gt;</description>
    </item>
  </channel>
</rss>`))
	}))
	defer server.Close()

	client := newTestSteamClient(server.URL, server.URL)

	shots, err := client.GetScreenshots(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, shots, 2, "items without images are skipped, max is honored")

	assert.Equal(t, "Night raid", shots[0].Title)
	assert.Equal(t, "https://images.example.com/1.jpg", shots[0].ImageURL)
	assert.Equal(t, "Screenshot", shots[1].Title, "empty titles get a placeholder")
	assert.Equal(t, "https://images.example.com/2.jpg", shots[1].ImageURL)
}

func TestExtractImageSrc(t *testing.T) {
	assert.Equal(t, "https://x/1.jpg", extractImageSrc(`<img src="https://x/1.jpg" alt="s"/>`))
	assert.Empty(t, extractImageSrc("no image markup"))
	assert.Empty(t, extractImageSrc(`src="unterminated`))
}
