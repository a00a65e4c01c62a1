package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitHubListRepositories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/dorminha/repos", r.URL.Path)
		assert.Equal(t, "updated", r.URL.Query().Get("sort"))
		assert.Equal(t, "owner", r.URL.Query().Get("type"))
		assert.Equal(t, "token secret-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"name": "devfolio", "description": "Personal site", "html_url": "https://github.com/dorminha/devfolio", "stargazers_count": 7, "language": "Go", "fork": false},
			{"name": "forked-lib", "description": "", "html_url": "https://github.com/dorminha/forked-lib", "stargazers_count": 0, "language": null, "fork": true}
		]`))
	}))
	defer server.Close()

	client := NewGitHubClient(GitHubConfig{Username: "dorminha", Token: "secret-token", BaseURL: server.URL})

	repos, err := client.ListRepositories(context.Background())
	require.NoError(t, err)
	require.Len(t, repos, 2)

	assert.Equal(t, "devfolio", repos[0].Name)
	assert.Equal(t, "https://github.com/dorminha/devfolio", repos[0].URL)
	assert.Equal(t, 7, repos[0].Stars)
	assert.Equal(t, "Go", repos[0].Language)
	assert.False(t, repos[0].IsFork)
	assert.True(t, repos[1].IsFork)
}

func TestGitHubListRepositories_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message": "rate limit exceeded"}`))
	}))
	defer server.Close()

	client := NewGitHubClient(GitHubConfig{Username: "dorminha", BaseURL: server.URL})

	_, err := client.ListRepositories(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestGitHubFetchReadme_Raw(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/dorminha/devfolio/readme", r.URL.Path)
		assert.Equal(t, "application/vnd.github.v3.raw", r.Header.Get("Accept"))
		w.Write([]byte("# devfolio\n\nMy personal site."))
	}))
	defer server.Close()

	client := NewGitHubClient(GitHubConfig{Username: "dorminha", BaseURL: server.URL})

	readme, err := client.FetchReadme(context.Background(), "devfolio")
	require.NoError(t, err)
	assert.Equal(t, "# devfolio\n\nMy personal site.", readme)
}

func TestGitHubFetchReadme_MissingIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewGitHubClient(GitHubConfig{Username: "dorminha", BaseURL: server.URL})

	readme, err := client.FetchReadme(context.Background(), "no-readme-repo")
	require.NoError(t, err)
	assert.Empty(t, readme)
}

func TestGitHubFetchReadme_ServerErrorBubblesUp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewGitHubClient(GitHubConfig{Username: "dorminha", BaseURL: server.URL})

	_, err := client.FetchReadme(context.Background(), "devfolio")
	require.Error(t, err)
}
