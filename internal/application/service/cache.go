package service

import (
	"context"

	"github.com/chirraaggggg/github-roaster/internal/domain/profile"
)

// ProfileCache is a per-session, single-slot profile store with a freshness
// window. A slot is valid when its username matches case-insensitively and
// it was fetched less than the TTL ago.
type ProfileCache interface {
	// GetOrFetch returns the session's cached profile on a fresh hit for
	// username; on a miss it runs fetch and overwrites the slot with the
	// result. Check-then-fetch-then-store is atomic per session, so two
	// concurrent requests for the same stale slot perform one fetch.
	GetOrFetch(ctx context.Context, sessionID, username string, fetch func(ctx context.Context) (*profile.Profile, error)) (p *profile.Profile, hit bool, err error)

	// CachedProfile returns the session's profile when the slot is still
	// fresh, regardless of which username it holds.
	CachedProfile(sessionID string) (*profile.Profile, bool)

	// StoreRoast attaches the latest roast to the session's slot. A roast
	// for a slot that no longer exists is dropped.
	StoreRoast(sessionID, roast string)
}
