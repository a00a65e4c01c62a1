package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"devfolio/internal/clients"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMinecraftClient struct {
	status *clients.MinecraftStatus
	err    error
}

func (f *fakeMinecraftClient) Status(address string) (*clients.MinecraftStatus, error) {
	return f.status, f.err
}

type fakeZomboidClient struct {
	status *clients.ZomboidStatus
	err    error
}

func (f *fakeZomboidClient) Status(address string) (*clients.ZomboidStatus, error) {
	return f.status, f.err
}

type fakeDiscordClient struct {
	widget    *clients.DiscordGuild
	widgetErr error
	invite    *clients.DiscordGuild
	inviteErr error

	lastInviteCode string
}

func (f *fakeDiscordClient) GetWidget(ctx context.Context, guildID string) (*clients.DiscordGuild, error) {
	return f.widget, f.widgetErr
}

func (f *fakeDiscordClient) GetInvite(ctx context.Context, inviteCode string) (*clients.DiscordGuild, error) {
	f.lastInviteCode = inviteCode
	return f.invite, f.inviteErr
}

func newStatusService(mc *fakeMinecraftClient, zb *fakeZomboidClient, dc *fakeDiscordClient, cfg StatusConfig) StatusService {
	return NewStatusService(mc, zb, dc, cfg)
}

func TestGetServers_AllProvidersDown(t *testing.T) {
	svc := newStatusService(
		&fakeMinecraftClient{err: errors.New("dial tcp: timeout")},
		&fakeZomboidClient{err: errors.New("udp timeout")},
		&fakeDiscordClient{widgetErr: errors.New("403")},
		StatusConfig{MinecraftAddress: "mc.example.com", ZomboidAddress: "pz.example.com:16261"},
	)

	statuses := svc.GetServers(context.Background())

	assert.False(t, statuses.Minecraft.Online)
	assert.Equal(t, "Offline", statuses.Minecraft.MOTD)
	assert.Equal(t, "Unknown", statuses.Minecraft.Version)

	assert.False(t, statuses.Zomboid.Online)
	assert.Equal(t, "Offline", statuses.Zomboid.ServerName)
	assert.Equal(t, "Unknown", statuses.Zomboid.Map)

	assert.False(t, statuses.Discord.Online)
	assert.Equal(t, "Widget Disabled & No Invite URL", statuses.Discord.Error)
}

func TestGetServers_MinecraftSleeping(t *testing.T) {
	svc := newStatusService(
		&fakeMinecraftClient{status: &clients.MinecraftStatus{
			Players:    0,
			MaxPlayers: 0,
			Version:    "1.20.4",
			MOTD:       "A Minecraft Server",
		}},
		&fakeZomboidClient{err: errors.New("down")},
		&fakeDiscordClient{widgetErr: errors.New("down")},
		StatusConfig{MinecraftAddress: "mc.example.com"},
	)

	mc := svc.GetServers(context.Background()).Minecraft

	assert.False(t, mc.Online)
	assert.Equal(t, "Offline (Sleeping)", mc.MOTD)
	assert.Equal(t, "1.20.4", mc.Version)
}

func TestGetServers_MinecraftStripsColorCodes(t *testing.T) {
	svc := newStatusService(
		&fakeMinecraftClient{status: &clients.MinecraftStatus{
			Players:    3,
			MaxPlayers: 20,
			Version:    "1.20.4",
			MOTD:       "§6Golden §lServer§r of §kFriends",
			Latency:    42 * time.Millisecond,
		}},
		&fakeZomboidClient{err: errors.New("down")},
		&fakeDiscordClient{widgetErr: errors.New("down")},
		StatusConfig{MinecraftAddress: "mc.example.com"},
	)

	mc := svc.GetServers(context.Background()).Minecraft

	require.True(t, mc.Online)
	assert.Equal(t, "Golden Server of Friends", mc.MOTD)
	assert.Equal(t, 3, mc.Players)
	assert.Equal(t, 20, mc.MaxPlayers)
	assert.InDelta(t, 42.0, mc.Latency, 1.0)
}

func TestGetServers_DisplayNameOverrides(t *testing.T) {
	svc := newStatusService(
		&fakeMinecraftClient{status: &clients.MinecraftStatus{
			Players: 1, MaxPlayers: 10, Version: "1.20.4", MOTD: "raw motd",
		}},
		&fakeZomboidClient{status: &clients.ZomboidStatus{
			ServerName: "raw name", Players: 2, MaxPlayers: 16, Map: "Muldraugh, KY",
		}},
		&fakeDiscordClient{widgetErr: errors.New("down")},
		StatusConfig{
			MinecraftAddress:     "mc.example.com",
			MinecraftDisplayName: "Friends SMP",
			ZomboidAddress:       "pz.example.com:16261",
			ZomboidDisplayName:   "Zomboid Nights",
		},
	)

	statuses := svc.GetServers(context.Background())

	assert.Equal(t, "Friends SMP", statuses.Minecraft.MOTD)
	assert.Equal(t, "Zomboid Nights", statuses.Zomboid.ServerName)
	assert.Equal(t, "Muldraugh, KY", statuses.Zomboid.Map)
}

func TestGetServers_DiscordWidgetPreferred(t *testing.T) {
	dc := &fakeDiscordClient{
		widget: &clients.DiscordGuild{
			Name:          "Dev Lounge",
			InviteURL:     "https://discord.gg/widget-invite",
			PresenceCount: 7,
			Members:       []clients.DiscordMember{{Username: "alice", Status: "online"}},
		},
	}
	svc := newStatusService(
		&fakeMinecraftClient{err: errors.New("down")},
		&fakeZomboidClient{err: errors.New("down")},
		dc,
		StatusConfig{DiscordGuildID: "123", DiscordInviteURL: "https://discord.gg/fallback"},
	)

	discord := svc.GetServers(context.Background()).Discord

	require.True(t, discord.Online)
	assert.Equal(t, "Dev Lounge", discord.Name)
	assert.Equal(t, "https://discord.gg/widget-invite", discord.InstantInvite)
	assert.Equal(t, 7, discord.PresenceCount)
	assert.Len(t, discord.Members, 1)
}

func TestGetServers_DiscordInviteFallback(t *testing.T) {
	dc := &fakeDiscordClient{
		widgetErr: errors.New("widget disabled"),
		invite: &clients.DiscordGuild{
			Name:          "Dev Lounge",
			PresenceCount: 4,
			IconURL:       "https://cdn.example.com/icon.png",
		},
	}
	svc := newStatusService(
		&fakeMinecraftClient{err: errors.New("down")},
		&fakeZomboidClient{err: errors.New("down")},
		dc,
		StatusConfig{DiscordGuildID: "123", DiscordInviteURL: "https://discord.gg/abc123"},
	)

	discord := svc.GetServers(context.Background()).Discord

	require.True(t, discord.Online)
	assert.Equal(t, "abc123", dc.lastInviteCode)
	assert.Equal(t, "https://discord.gg/abc123", discord.InstantInvite)
	assert.Equal(t, 4, discord.PresenceCount)
	assert.NotNil(t, discord.Members)
	assert.Empty(t, discord.Members)
}

func TestGetServers_DiscordConnectionFailed(t *testing.T) {
	dc := &fakeDiscordClient{
		widgetErr: errors.New("widget disabled"),
		inviteErr: errors.New("network down"),
	}
	svc := newStatusService(
		&fakeMinecraftClient{err: errors.New("down")},
		&fakeZomboidClient{err: errors.New("down")},
		dc,
		StatusConfig{DiscordGuildID: "123", DiscordInviteURL: "https://discord.gg/abc123"},
	)

	discord := svc.GetServers(context.Background()).Discord

	assert.False(t, discord.Online)
	assert.Equal(t, "Connection Failed", discord.Error)
}
