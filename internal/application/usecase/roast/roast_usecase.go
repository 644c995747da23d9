package roast

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/chirraaggggg/github-roaster/internal/application/service"
	"github.com/chirraaggggg/github-roaster/internal/domain/profile"
	"github.com/chirraaggggg/github-roaster/pkg/apperror"
	"github.com/chirraaggggg/github-roaster/pkg/logger"
)

// RoastUseCase runs the pipeline: validate username, check the session
// cache, fetch the profile, format it, and ask the LLM for a word-limited
// roast.
type RoastUseCase struct {
	github    service.GitHubService
	llm       service.LLMService
	cache     service.ProfileCache
	wordLimit int
	logger    logger.Logger
}

func NewRoastUseCase(
	gh service.GitHubService,
	llm service.LLMService,
	cache service.ProfileCache,
	wordLimit int,
	log logger.Logger,
) *RoastUseCase {
	return &RoastUseCase{
		github:    gh,
		llm:       llm,
		cache:     cache,
		wordLimit: wordLimit,
		logger:    log,
	}
}

type RoastInput struct {
	SessionID string
	Username  string
}

type RoastOutput struct {
	Profile  *profile.Profile
	Roast    string
	CacheHit bool
}

// GetRoast produces a roast for the requested username, reusing the
// session's cached profile when it is still fresh. A new roast is generated
// on every call; roast freshness is independent of profile freshness.
func (uc *RoastUseCase) GetRoast(ctx context.Context, input RoastInput) (*RoastOutput, error) {
	username := strings.TrimSpace(input.Username)
	if !profile.IsValidUsername(username) {
		return nil, apperror.NewInvalidUsername(username)
	}

	l := uc.logger.With(zap.String("username", username))

	p, hit, err := uc.cache.GetOrFetch(ctx, input.SessionID, username, func(ctx context.Context) (*profile.Profile, error) {
		l.Info("Fetching GitHub profile")
		return uc.github.FetchProfile(ctx, username)
	})
	if err != nil {
		l.Error("Failed to fetch GitHub profile", err)
		return nil, err
	}
	if hit {
		l.Info("Serving profile from session cache")
	}

	roast, err := uc.generateRoast(ctx, p)
	if err != nil {
		l.Error("Failed to generate roast", err)
		return nil, err
	}
	uc.cache.StoreRoast(input.SessionID, roast)

	l.Info("Roast generated", zap.Int("words", len(strings.Fields(roast))))
	return &RoastOutput{Profile: p, Roast: roast, CacheHit: hit}, nil
}

// GetNewRoast generates another roast from the session's cached profile
// without refetching it. It fails when no fresh profile is cached.
func (uc *RoastUseCase) GetNewRoast(ctx context.Context, sessionID string) (string, error) {
	p, ok := uc.cache.CachedProfile(sessionID)
	if !ok {
		return "", apperror.NewAppError(apperror.ErrNotFound,
			"No profile to roast", "fetch a profile before requesting another roast", nil)
	}

	roast, err := uc.generateRoast(ctx, p)
	if err != nil {
		uc.logger.Error("Failed to generate new roast", err, zap.String("username", p.Username))
		return "", err
	}
	uc.cache.StoreRoast(sessionID, roast)
	return roast, nil
}

func (uc *RoastUseCase) generateRoast(ctx context.Context, p *profile.Profile) (string, error) {
	profileText := FormatProfileForPrompt(p)
	systemPrompt := buildSystemPrompt(uc.wordLimit)
	userPrompt := buildUserPrompt(profileText)

	raw, err := uc.llm.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", err
	}

	roast := enforceWordLimit(raw, uc.wordLimit)
	if roast == "" {
		return "", apperror.NewMalformedResponse("LLM returned empty roast text")
	}
	return roast, nil
}
