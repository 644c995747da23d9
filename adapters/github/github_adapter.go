package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/chirraaggggg/github-roaster/internal/application/service"
	"github.com/chirraaggggg/github-roaster/internal/config"
	"github.com/chirraaggggg/github-roaster/internal/domain/profile"
	"github.com/chirraaggggg/github-roaster/pkg/apperror"
	"github.com/chirraaggggg/github-roaster/pkg/logger"
)

const userAgent = "github-roaster"

// HTTPClient is the transport seam, satisfied by *http.Client and by test
// doubles.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type githubAdapter struct {
	baseURL    string
	token      string
	repoLimit  int
	timeout    time.Duration
	httpClient HTTPClient
	log        logger.Logger
	now        func() time.Time
}

// NewGitHubAdapter builds a GitHubService against the REST API configured in
// cfg. Passing a nil httpClient selects a default client with the configured
// timeout.
func NewGitHubAdapter(cfg config.Config, httpClient HTTPClient, log logger.Logger) service.GitHubService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.GitHub.Timeout}
	}
	return &githubAdapter{
		baseURL:    cfg.GitHub.APIBase,
		token:      cfg.GitHub.Token,
		repoLimit:  cfg.GitHub.RepoLimit,
		timeout:    cfg.GitHub.Timeout,
		httpClient: httpClient,
		log:        log,
		now:        time.Now,
	}
}

// GitHub API response types.
type githubUser struct {
	Login       string    `json:"login"`
	Name        string    `json:"name"`
	AvatarURL   string    `json:"avatar_url"`
	Bio         string    `json:"bio"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Blog        string    `json:"blog"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	CreatedAt   time.Time `json:"created_at"`
}

type githubRepo struct {
	Name            string `json:"name"`
	StargazersCount int    `json:"stargazers_count"`
	ForksCount      int    `json:"forks_count"`
	Language        string `json:"language"`
	HTMLURL         string `json:"html_url"`
	Description     string `json:"description"`
}

func (a *githubAdapter) FetchProfile(ctx context.Context, username string) (*profile.Profile, error) {
	if !profile.IsValidUsername(username) {
		return nil, apperror.NewInvalidUsername(username)
	}

	user, err := a.fetchUser(ctx, username)
	if err != nil {
		return nil, err
	}

	p := normalizeUser(user, username)
	p.YearsActive = profile.YearsSince(p.AccountCreatedAt, a.now())

	// Repository enrichment is non-fatal: on any failure the profile keeps
	// empty top_repos/top_languages instead of failing the fetch.
	repos, err := a.fetchRepos(ctx, username)
	if err != nil {
		a.log.Warn("repository listing failed, serving profile without repo stats",
			zap.String("username", username), zap.Error(err))
		return p, nil
	}
	enrichWithRepos(p, repos)

	return p, nil
}

func (a *githubAdapter) fetchUser(ctx context.Context, username string) (*githubUser, error) {
	endpoint := fmt.Sprintf("%s/users/%s", a.baseURL, url.PathEscape(username))

	var user githubUser
	status, err := a.doRequest(ctx, endpoint, &user)
	if err != nil {
		if isTimeout(err) {
			return nil, apperror.NewTimeout("GitHub profile lookup", err)
		}
		switch status {
		case http.StatusNotFound:
			return nil, apperror.NewNotFound("GitHub user", username)
		case http.StatusForbidden:
			return nil, apperror.NewRateLimited("GitHub API")
		case 0:
			return nil, apperror.NewUpstream(fmt.Sprintf("failed to reach GitHub for user '%s'", username), err)
		default:
			return nil, apperror.NewUpstream(fmt.Sprintf("GitHub returned status %d for user '%s'", status, username), err)
		}
	}
	return &user, nil
}

func (a *githubAdapter) fetchRepos(ctx context.Context, username string) ([]githubRepo, error) {
	perPage := a.repoLimit
	if perPage > 100 {
		perPage = 100
	}
	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=%d&sort=stars&direction=desc",
		a.baseURL, url.PathEscape(username), perPage)

	var repos []githubRepo
	if status, err := a.doRequest(ctx, endpoint, &repos); err != nil {
		return nil, fmt.Errorf("repo listing returned status %d: %w", status, err)
	}
	if len(repos) > a.repoLimit {
		repos = repos[:a.repoLimit]
	}
	return repos, nil
}

// doRequest performs a GET against the GitHub API, decoding a 2xx body into
// result. It returns the HTTP status code when one was received.
func (a *githubAdapter) doRequest(ctx context.Context, endpoint string, result any) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", userAgent)
	if a.token != "" {
		req.Header.Set("Authorization", "token "+a.token)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return resp.StatusCode, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return resp.StatusCode, apperror.NewUpstream("failed to decode GitHub response", err)
	}
	return resp.StatusCode, nil
}

// normalizeUser maps the raw user payload onto a Profile, substituting the
// documented fallback for every optional field GitHub left empty. This is
// the single boundary where missing data is handled; everything downstream
// sees fully populated strings.
func normalizeUser(user *githubUser, requested string) *profile.Profile {
	p := &profile.Profile{
		Username:         user.Login,
		DisplayName:      user.Name,
		AvatarURL:        user.AvatarURL,
		Bio:              user.Bio,
		Company:          user.Company,
		Location:         user.Location,
		Website:          user.Blog,
		PublicRepoCount:  user.PublicRepos,
		FollowerCount:    user.Followers,
		FollowingCount:   user.Following,
		AccountCreatedAt: user.CreatedAt,
		TopRepos:         []profile.RepoSummary{},
		TopLanguages:     []profile.LanguageCount{},
	}
	if p.Username == "" {
		p.Username = requested
	}
	if p.DisplayName == "" {
		p.DisplayName = p.Username
	}
	if p.Bio == "" {
		p.Bio = profile.FallbackBio
	}
	if p.Company == "" {
		p.Company = profile.FallbackCompany
	}
	if p.Location == "" {
		p.Location = profile.FallbackLocation
	}
	if p.Website == "" {
		p.Website = profile.FallbackWebsite
	}
	return p
}

func enrichWithRepos(p *profile.Profile, repos []githubRepo) {
	languages := make([]string, 0, len(repos))
	for _, r := range repos {
		p.TotalStars += r.StargazersCount
		p.TotalForks += r.ForksCount
		languages = append(languages, r.Language)
	}
	p.TopLanguages = profile.CountLanguages(languages, profile.MaxTopLanguages)

	top := topByStars(repos, profile.MaxTopRepos)
	for _, r := range top {
		summary := profile.RepoSummary{
			Name:            r.Name,
			Stars:           r.StargazersCount,
			Forks:           r.ForksCount,
			PrimaryLanguage: r.Language,
			URL:             r.HTMLURL,
			Description:     r.Description,
		}
		if summary.PrimaryLanguage == "" {
			summary.PrimaryLanguage = "Unknown"
		}
		if summary.Description == "" {
			summary.Description = "No description"
		}
		p.TopRepos = append(p.TopRepos, summary)
	}
}

// topByStars returns the limit highest-starred repos, preserving listing
// order for equal star counts. The API already sorts by stars, but the
// ordering is re-established locally rather than trusted.
func topByStars(repos []githubRepo, limit int) []githubRepo {
	sorted := make([]githubRepo, len(repos))
	copy(sorted, repos)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].StargazersCount > sorted[j-1].StargazersCount; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
