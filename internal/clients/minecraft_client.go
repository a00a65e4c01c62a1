package clients

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dreamscached/minequery/v2"
)

type MinecraftStatus struct {
	Players    int
	MaxPlayers int
	Version    string
	MOTD       string
	Latency    time.Duration
}

type MinecraftClient interface {
	Status(address string) (*MinecraftStatus, error)
}

type minecraftClient struct {
	pinger *minequery.Pinger
}

func NewMinecraftClient(timeout time.Duration) MinecraftClient {
	return &minecraftClient{
		pinger: minequery.NewPinger(minequery.WithTimeout(timeout)),
	}
}

func (c *minecraftClient) Status(address string) (*MinecraftStatus, error) {
	host, port, err := splitHostPort(address, 25565)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	status, err := c.pinger.Ping17(host, port)
	if err != nil {
		return nil, fmt.Errorf("ping %s: %w", address, err)
	}
	latency := time.Since(start)

	return &MinecraftStatus{
		Players:    status.OnlinePlayers,
		MaxPlayers: status.MaxPlayers,
		Version:    status.VersionName,
		MOTD:       fmt.Sprint(status.Description),
		Latency:    latency,
	}, nil
}

func splitHostPort(address string, defaultPort int) (string, int, error) {
	host, portStr, found := strings.Cut(address, ":")
	if !found {
		return address, defaultPort, nil
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid port in %q: %w", address, err)
	}

	return host, port, nil
}
