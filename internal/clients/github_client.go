package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GitHubRepo - репозиторий из листинга API, до фильтрации
type GitHubRepo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"html_url"`
	Stars       int    `json:"stargazers_count"`
	Language    string `json:"language"`
	IsFork      bool   `json:"fork"`
}

type GitHubClient interface {
	ListRepositories(ctx context.Context) ([]GitHubRepo, error)
	// FetchReadme возвращает сырой README. Отсутствие README (404) -
	// нормальный исход: пустая строка без ошибки.
	FetchReadme(ctx context.Context, repoName string) (string, error)
}

type GitHubConfig struct {
	Username string
	Token    string
	BaseURL  string
}

type githubClient struct {
	baseURL    string
	username   string
	token      string
	httpClient *http.Client
}

func NewGitHubClient(config GitHubConfig) GitHubClient {
	return &githubClient{
		baseURL:  config.BaseURL,
		username: config.Username,
		token:    config.Token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *githubClient) ListRepositories(ctx context.Context) ([]GitHubRepo, error) {
	reqURL := fmt.Sprintf("%s/users/%s/repos?sort=updated&per_page=100&type=owner", c.baseURL, c.username)

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	c.setHeaders(req, "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("GitHub API returned status %d: %s", resp.StatusCode, string(body))
	}

	var repos []GitHubRepo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}

	return repos, nil
}

func (c *githubClient) FetchReadme(ctx context.Context, repoName string) (string, error) {
	reqURL := fmt.Sprintf("%s/repos/%s/%s/readme", c.baseURL, c.username, repoName)

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	// raw-вариант вместо JSON с base64
	c.setHeaders(req, "application/vnd.github.v3.raw")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GitHub API returned status %d for README of %s", resp.StatusCode, repoName)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read README body: %w", err)
	}

	return string(body), nil
}

func (c *githubClient) setHeaders(req *http.Request, accept string) {
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", "DevFolio-SyncService/1.0")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}
}
