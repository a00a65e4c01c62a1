package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscordGetWidget(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/guilds/12345/widget.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"name": "Dev Lounge",
			"instant_invite": "https://discord.gg/widget-invite",
			"presence_count": 5,
			"members": [
				{"username": "alice", "status": "online", "avatar_url": "https://cdn.example.com/a.png"},
				{"username": "bob", "status": "idle", "avatar_url": "https://cdn.example.com/b.png"}
			]
		}`))
	}))
	defer server.Close()

	client := NewDiscordClientWithURLs(server.URL, "https://cdn.example.com")

	guild, err := client.GetWidget(context.Background(), "12345")
	require.NoError(t, err)

	assert.Equal(t, "Dev Lounge", guild.Name)
	assert.Equal(t, "https://discord.gg/widget-invite", guild.InviteURL)
	assert.Equal(t, 5, guild.PresenceCount)
	require.Len(t, guild.Members, 2)
	assert.Equal(t, "alice", guild.Members[0].Username)
}

func TestDiscordGetWidget_DisabledWidget(t *testing.T) {
	// Выключенный виджет отвечает 403
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewDiscordClientWithURLs(server.URL, "https://cdn.example.com")

	_, err := client.GetWidget(context.Background(), "12345")
	require.Error(t, err)
}

func TestDiscordGetInvite(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v9/invites/abc123", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("with_counts"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"approximate_presence_count": 9,
			"guild": {"id": "12345", "name": "Dev Lounge", "icon": "deadbeef"}
		}`))
	}))
	defer server.Close()

	client := NewDiscordClientWithURLs(server.URL, "https://cdn.example.com")

	guild, err := client.GetInvite(context.Background(), "abc123")
	require.NoError(t, err)

	assert.Equal(t, "Dev Lounge", guild.Name)
	assert.Equal(t, 9, guild.PresenceCount)
	assert.Equal(t, "https://cdn.example.com/icons/12345/deadbeef.png", guild.IconURL)
}

func TestDiscordGetInvite_NoIcon(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"approximate_presence_count": 2, "guild": {"id": "12345", "name": "Dev Lounge", "icon": ""}}`))
	}))
	defer server.Close()

	client := NewDiscordClientWithURLs(server.URL, "https://cdn.example.com")

	guild, err := client.GetInvite(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Empty(t, guild.IconURL)
}

func TestInviteCodeFromURL(t *testing.T) {
	cases := map[string]string{
		"https://discord.gg/abc123":          "abc123",
		"https://discord.gg/abc123/":         "abc123",
		"https://discord.com/invite/xyz":     "xyz",
		"plaincode":                          "plaincode",
	}

	for input, want := range cases {
		assert.Equal(t, want, InviteCodeFromURL(input), "input: %s", input)
	}
}
