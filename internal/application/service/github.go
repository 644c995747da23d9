package service

import (
	"context"

	"github.com/chirraaggggg/github-roaster/internal/domain/profile"
)

// GitHubService fetches a normalized profile for a username. Implementations
// classify failures with the pkg/apperror taxonomy.
type GitHubService interface {
	FetchProfile(ctx context.Context, username string) (*profile.Profile, error)
}
