package clients

import (
	"fmt"
	"time"

	a2s "github.com/rumblefrog/go-a2s"
)

type ZomboidStatus struct {
	ServerName string
	Players    int
	MaxPlayers int
	Map        string
	Latency    time.Duration
}

type ZomboidClient interface {
	Status(address string) (*ZomboidStatus, error)
}

type zomboidClient struct {
	timeout time.Duration
}

// NewZomboidClient опрашивает сервер по протоколу A2S_INFO.
// Щедрый таймаут нужен против ложных "офлайнов" от медленных UDP-серверов.
func NewZomboidClient(timeout time.Duration) ZomboidClient {
	return &zomboidClient{timeout: timeout}
}

func (c *zomboidClient) Status(address string) (*ZomboidStatus, error) {
	client, err := a2s.NewClient(address, a2s.TimeoutOption(c.timeout))
	if err != nil {
		return nil, fmt.Errorf("create A2S client for %s: %w", address, err)
	}
	defer client.Close()

	start := time.Now()
	info, err := client.QueryInfo()
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", address, err)
	}
	latency := time.Since(start)

	return &ZomboidStatus{
		ServerName: info.Name,
		Players:    int(info.Players),
		MaxPlayers: int(info.MaxPlayers),
		Map:        info.Map,
		Latency:    latency,
	}, nil
}
