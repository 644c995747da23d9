package profile

import (
	"regexp"
	"time"
)

// Fallback text substituted for optional fields GitHub reports as empty.
// The rest of the pipeline relies on every string field being populated.
const (
	FallbackBio      = "No bio."
	FallbackCompany  = "Not specified"
	FallbackLocation = "Planet Earth"
	FallbackWebsite  = "No blog"
)

const (
	MaxTopRepos     = 5
	MaxTopLanguages = 3
)

// GitHub username rules: 1-39 alphanumeric characters or hyphens, where a
// hyphen can be neither the first nor the last character.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]{0,38}[A-Za-z0-9])?$`)

// IsValidUsername reports whether username is syntactically valid. It never
// touches the network and never panics.
func IsValidUsername(username string) bool {
	if username == "" || len(username) > 39 {
		return false
	}
	return usernamePattern.MatchString(username)
}

type RepoSummary struct {
	Name            string `json:"name"`
	Stars           int    `json:"stars"`
	Forks           int    `json:"forks"`
	PrimaryLanguage string `json:"primary_language"`
	URL             string `json:"url"`
	Description     string `json:"description"`
}

type LanguageCount struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// Profile is the normalized view of a GitHub user plus derived repository
// statistics. It is immutable once constructed by the fetcher.
type Profile struct {
	Username         string          `json:"username"`
	DisplayName      string          `json:"display_name"`
	AvatarURL        string          `json:"avatar_url"`
	Bio              string          `json:"bio"`
	Company          string          `json:"company"`
	Location         string          `json:"location"`
	Website          string          `json:"website"`
	PublicRepoCount  int             `json:"public_repo_count"`
	FollowerCount    int             `json:"follower_count"`
	FollowingCount   int             `json:"following_count"`
	AccountCreatedAt time.Time       `json:"account_created_at"`
	YearsActive      int             `json:"years_active"`
	TopRepos         []RepoSummary   `json:"top_repos"`
	TopLanguages     []LanguageCount `json:"top_languages"`
	TotalStars       int             `json:"total_stars"`
	TotalForks       int             `json:"total_forks"`
}

// YearsSince returns full years elapsed between createdAt and now, clamped
// to zero. A year is counted as 365 days.
func YearsSince(createdAt, now time.Time) int {
	days := int(now.Sub(createdAt).Hours() / 24)
	years := days / 365
	if years < 0 {
		return 0
	}
	return years
}

// CountLanguages tallies language names and returns the limit most
// frequent, ties broken by first-encountered order. Empty names (repos
// GitHub reports without a primary language) are skipped.
func CountLanguages(languages []string, limit int) []LanguageCount {
	counts := make(map[string]int)
	var order []string
	for _, lang := range languages {
		if lang == "" {
			continue
		}
		if _, seen := counts[lang]; !seen {
			order = append(order, lang)
		}
		counts[lang]++
	}

	ranked := make([]LanguageCount, 0, len(order))
	for _, lang := range order {
		ranked = append(ranked, LanguageCount{Language: lang, Count: counts[lang]})
	}
	// Insertion sort keeps the tally stable for equal counts.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].Count > ranked[j-1].Count; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
