package http

import (
	"time"

	"github.com/chirraaggggg/github-roaster/internal/domain/profile"
)

type RoastRequest struct {
	Username string `json:"username" binding:"required"`
}

type RepoSummaryDTO struct {
	Name            string `json:"name"`
	Stars           int    `json:"stars"`
	Forks           int    `json:"forks"`
	PrimaryLanguage string `json:"primary_language"`
	URL             string `json:"url"`
	Description     string `json:"description"`
}

type LanguageCountDTO struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

type ProfileDTO struct {
	Username         string             `json:"username"`
	DisplayName      string             `json:"display_name"`
	AvatarURL        string             `json:"avatar_url"`
	Bio              string             `json:"bio"`
	Company          string             `json:"company"`
	Location         string             `json:"location"`
	Website          string             `json:"website"`
	PublicRepoCount  int                `json:"public_repo_count"`
	FollowerCount    int                `json:"follower_count"`
	FollowingCount   int                `json:"following_count"`
	AccountCreatedAt time.Time          `json:"account_created_at"`
	YearsActive      int                `json:"years_active"`
	TopRepos         []RepoSummaryDTO   `json:"top_repos"`
	TopLanguages     []LanguageCountDTO `json:"top_languages"`
	TotalStars       int                `json:"total_stars"`
	TotalForks       int                `json:"total_forks"`
}

type RoastResponse struct {
	Profile  ProfileDTO `json:"profile"`
	Roast    string     `json:"roast"`
	CacheHit bool       `json:"cache_hit"`
}

type NewRoastResponse struct {
	Roast string `json:"roast"`
}

func ToProfileDTO(p *profile.Profile) ProfileDTO {
	dto := ProfileDTO{
		Username:         p.Username,
		DisplayName:      p.DisplayName,
		AvatarURL:        p.AvatarURL,
		Bio:              p.Bio,
		Company:          p.Company,
		Location:         p.Location,
		Website:          p.Website,
		PublicRepoCount:  p.PublicRepoCount,
		FollowerCount:    p.FollowerCount,
		FollowingCount:   p.FollowingCount,
		AccountCreatedAt: p.AccountCreatedAt,
		YearsActive:      p.YearsActive,
		TotalStars:       p.TotalStars,
		TotalForks:       p.TotalForks,
	}
	dto.TopRepos = make([]RepoSummaryDTO, len(p.TopRepos))
	for i, r := range p.TopRepos {
		dto.TopRepos[i] = RepoSummaryDTO(r)
	}
	dto.TopLanguages = make([]LanguageCountDTO, len(p.TopLanguages))
	for i, l := range p.TopLanguages {
		dto.TopLanguages[i] = LanguageCountDTO(l)
	}
	return dto
}
