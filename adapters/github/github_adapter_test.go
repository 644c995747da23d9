package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirraaggggg/github-roaster/internal/application/service"
	"github.com/chirraaggggg/github-roaster/internal/config"
	"github.com/chirraaggggg/github-roaster/internal/domain/profile"
	"github.com/chirraaggggg/github-roaster/pkg/apperror"
	"github.com/chirraaggggg/github-roaster/pkg/logger"
)

const userJSON = `{
	"login": "octocat",
	"name": "The Octocat",
	"avatar_url": "https://avatars.githubusercontent.com/u/583231",
	"bio": null,
	"company": null,
	"location": "San Francisco",
	"blog": "",
	"public_repos": 8,
	"followers": 9000,
	"following": 9,
	"created_at": "2011-01-25T18:44:36Z"
}`

const reposJSON = `[
	{"name": "mega", "stargazers_count": 50, "forks_count": 5, "language": "Go", "html_url": "https://github.com/octocat/mega", "description": "big"},
	{"name": "tiny", "stargazers_count": 1, "forks_count": 0, "language": null, "html_url": "https://github.com/octocat/tiny", "description": null},
	{"name": "mid-a", "stargazers_count": 10, "forks_count": 2, "language": "Go", "html_url": "https://github.com/octocat/mid-a", "description": "a"},
	{"name": "mid-b", "stargazers_count": 10, "forks_count": 1, "language": "Python", "html_url": "https://github.com/octocat/mid-b", "description": "b"},
	{"name": "small", "stargazers_count": 3, "forks_count": 0, "language": "Python", "html_url": "https://github.com/octocat/small", "description": "c"},
	{"name": "smaller", "stargazers_count": 2, "forks_count": 0, "language": "Go", "html_url": "https://github.com/octocat/smaller", "description": "d"}
]`

type stubServer struct {
	*httptest.Server
	userCalls int
	repoCalls int
}

// newStubServer serves /users/{name} and /users/{name}/repos with the given
// status/body pairs, counting calls to each.
func newStubServer(t *testing.T, userStatus int, userBody string, repoStatus int, repoBody string) *stubServer {
	t.Helper()
	s := &stubServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
		switch r.URL.Path {
		case "/users/octocat/repos":
			s.repoCalls++
			assert.Equal(t, "100", r.URL.Query().Get("per_page"))
			assert.Equal(t, "stars", r.URL.Query().Get("sort"))
			assert.Equal(t, "desc", r.URL.Query().Get("direction"))
			w.WriteHeader(repoStatus)
			fmt.Fprint(w, repoBody)
		case "/users/octocat":
			s.userCalls++
			w.WriteHeader(userStatus)
			fmt.Fprint(w, userBody)
		default:
			t.Errorf("unexpected request path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(s.Close)
	return s
}

func newTestAdapter(baseURL string) service.GitHubService {
	var cfg config.Config
	cfg.GitHub.APIBase = baseURL
	cfg.GitHub.RepoLimit = 100
	cfg.GitHub.Timeout = 5 * time.Second
	return NewGitHubAdapter(cfg, nil, logger.NewNop())
}

func TestFetchProfile_MapsAndNormalizes(t *testing.T) {
	server := newStubServer(t, http.StatusOK, userJSON, http.StatusOK, reposJSON)
	adapter := newTestAdapter(server.URL)

	p, err := adapter.FetchProfile(context.Background(), "octocat")

	require.NoError(t, err)
	assert.Equal(t, "octocat", p.Username)
	assert.Equal(t, "The Octocat", p.DisplayName)
	assert.Equal(t, profile.FallbackBio, p.Bio)
	assert.Equal(t, profile.FallbackCompany, p.Company)
	assert.Equal(t, profile.FallbackWebsite, p.Website)
	assert.Equal(t, "San Francisco", p.Location)
	assert.Equal(t, 8, p.PublicRepoCount)
	assert.Equal(t, 9000, p.FollowerCount)
	assert.GreaterOrEqual(t, p.YearsActive, 15)

	// Top 5 of 6 repos, ordered by stars, equal counts keeping listing order.
	require.Len(t, p.TopRepos, 5)
	assert.Equal(t, "mega", p.TopRepos[0].Name)
	assert.Equal(t, "mid-a", p.TopRepos[1].Name)
	assert.Equal(t, "mid-b", p.TopRepos[2].Name)
	assert.Equal(t, "small", p.TopRepos[3].Name)
	assert.Equal(t, "smaller", p.TopRepos[4].Name)

	assert.Equal(t, []profile.LanguageCount{
		{Language: "Go", Count: 3},
		{Language: "Python", Count: 2},
	}, p.TopLanguages)
	assert.Equal(t, 76, p.TotalStars)
	assert.Equal(t, 8, p.TotalForks)
}

func TestFetchProfile_NullRepoFieldsGetFallbacks(t *testing.T) {
	repos := `[{"name": "tiny", "stargazers_count": 1, "forks_count": 0, "language": null, "html_url": "u", "description": null}]`
	server := newStubServer(t, http.StatusOK, userJSON, http.StatusOK, repos)
	adapter := newTestAdapter(server.URL)

	p, err := adapter.FetchProfile(context.Background(), "octocat")

	require.NoError(t, err)
	require.Len(t, p.TopRepos, 1)
	assert.Equal(t, "Unknown", p.TopRepos[0].PrimaryLanguage)
	assert.Equal(t, "No description", p.TopRepos[0].Description)
	assert.Empty(t, p.TopLanguages, "null languages are not counted")
}

func TestFetchProfile_NotFound(t *testing.T) {
	server := newStubServer(t, http.StatusNotFound, `{"message":"Not Found"}`, http.StatusOK, reposJSON)
	adapter := newTestAdapter(server.URL)

	_, err := adapter.FetchProfile(context.Background(), "octocat")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Contains(t, err.Error(), "octocat")
	assert.Zero(t, server.repoCalls, "no repo call after a failed user lookup")
}

func TestFetchProfile_RateLimited(t *testing.T) {
	server := newStubServer(t, http.StatusForbidden, `{"message":"rate limit exceeded"}`, http.StatusOK, reposJSON)
	adapter := newTestAdapter(server.URL)

	_, err := adapter.FetchProfile(context.Background(), "octocat")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrRateLimited)
}

func TestFetchProfile_ServerErrorIsUpstream(t *testing.T) {
	server := newStubServer(t, http.StatusInternalServerError, "boom", http.StatusOK, reposJSON)
	adapter := newTestAdapter(server.URL)

	_, err := adapter.FetchProfile(context.Background(), "octocat")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrUpstream)
}

func TestFetchProfile_MalformedUserPayloadIsUpstream(t *testing.T) {
	server := newStubServer(t, http.StatusOK, "{not json", http.StatusOK, reposJSON)
	adapter := newTestAdapter(server.URL)

	_, err := adapter.FetchProfile(context.Background(), "octocat")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrUpstream)
}

func TestFetchProfile_RepoFailureDegradesToEmpty(t *testing.T) {
	server := newStubServer(t, http.StatusOK, userJSON, http.StatusInternalServerError, "boom")
	adapter := newTestAdapter(server.URL)

	p, err := adapter.FetchProfile(context.Background(), "octocat")

	require.NoError(t, err, "repo failures are non-fatal")
	assert.Equal(t, "octocat", p.Username)
	assert.Empty(t, p.TopRepos)
	assert.Empty(t, p.TopLanguages)
	assert.Zero(t, p.TotalStars)
	assert.Equal(t, 1, server.userCalls)
	assert.Equal(t, 1, server.repoCalls)
}

func TestFetchProfile_InvalidUsernameNeverCallsNetwork(t *testing.T) {
	server := newStubServer(t, http.StatusOK, userJSON, http.StatusOK, reposJSON)
	adapter := newTestAdapter(server.URL)

	_, err := adapter.FetchProfile(context.Background(), "-invalid-")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Zero(t, server.userCalls)
	assert.Zero(t, server.repoCalls)
}

func TestFetchProfile_Timeout(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, userJSON)
	}))
	t.Cleanup(slow.Close)

	var cfg config.Config
	cfg.GitHub.APIBase = slow.URL
	cfg.GitHub.RepoLimit = 100
	cfg.GitHub.Timeout = 20 * time.Millisecond
	adapter := NewGitHubAdapter(cfg, nil, logger.NewNop())

	_, err := adapter.FetchProfile(context.Background(), "octocat")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrTimeout)
}

func TestFetchProfile_TokenHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/users/octocat" {
			gotAuth = r.Header.Get("Authorization")
			fmt.Fprint(w, userJSON)
			return
		}
		fmt.Fprint(w, "[]")
	}))
	t.Cleanup(server.Close)

	var cfg config.Config
	cfg.GitHub.APIBase = server.URL
	cfg.GitHub.Token = "secret-token"
	cfg.GitHub.RepoLimit = 100
	cfg.GitHub.Timeout = 5 * time.Second
	adapter := NewGitHubAdapter(cfg, nil, logger.NewNop())

	_, err := adapter.FetchProfile(context.Background(), "octocat")

	require.NoError(t, err)
	assert.Equal(t, "token secret-token", gotAuth)
}
