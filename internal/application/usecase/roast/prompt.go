package roast

import (
	"fmt"
	"strings"

	"github.com/chirraaggggg/github-roaster/internal/domain/profile"
)

const (
	noReposLine     = "None worth mentioning"
	noLanguagesLine = "Mystery languages"
	maxPromptBioLen = 100
)

// FormatProfileForPrompt renders a profile as the fixed text block the LLM
// prompt embeds. Pure and deterministic; every field is already populated
// by the fetcher, so the output never contains gaps.
func FormatProfileForPrompt(p *profile.Profile) string {
	bio := p.Bio
	if len(bio) > maxPromptBioLen {
		bio = bio[:maxPromptBioLen]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Username: @%s\n", p.Username)
	fmt.Fprintf(&b, "Name: %s\n", p.DisplayName)
	fmt.Fprintf(&b, "Bio: %s\n", bio)
	fmt.Fprintf(&b, "Location: %s\n", p.Location)
	fmt.Fprintf(&b, "Company: %s\n", p.Company)
	fmt.Fprintf(&b, "Public repos: %d\n", p.PublicRepoCount)
	fmt.Fprintf(&b, "Followers: %d\n", p.FollowerCount)
	fmt.Fprintf(&b, "Following: %d\n", p.FollowingCount)
	fmt.Fprintf(&b, "Years on GitHub: %d\n", p.YearsActive)
	fmt.Fprintf(&b, "Total stars: %d\n", p.TotalStars)
	fmt.Fprintf(&b, "Total forks: %d\n", p.TotalForks)

	b.WriteString("\nTop repos:\n")
	if len(p.TopRepos) == 0 {
		b.WriteString(noReposLine + "\n")
	} else {
		for _, r := range p.TopRepos {
			fmt.Fprintf(&b, "- %s | stars=%d, forks=%d, lang=%s, desc=%s\n",
				r.Name, r.Stars, r.Forks, r.PrimaryLanguage, r.Description)
		}
	}

	b.WriteString("\nLanguages:\n")
	if len(p.TopLanguages) == 0 {
		b.WriteString(noLanguagesLine + "\n")
	} else {
		for _, l := range p.TopLanguages {
			fmt.Fprintf(&b, "- %s (%d)\n", l.Language, l.Count)
		}
	}

	return b.String()
}

func buildSystemPrompt(wordLimit int) string {
	return fmt.Sprintf(
		"You are a sarcastic but playful GitHub roast bot. "+
			"Given details about a developer's GitHub profile and repositories, "+
			"write a short, humorous roast about their coding style, activity, and habits. "+
			"Stay light-hearted, avoid anything offensive or personal beyond the data provided. "+
			"Keep the roast to exactly %d words.", wordLimit)
}

func buildUserPrompt(profileText string) string {
	var b strings.Builder
	b.WriteString("Here is the GitHub user data:\n\n")
	b.WriteString(profileText)
	b.WriteString("\nWrite the roast now.")
	return b.String()
}

// enforceWordLimit truncates text to its first limit whitespace-delimited
// words. This local guarantee holds regardless of how well the model obeyed
// the prompt.
func enforceWordLimit(text string, limit int) string {
	words := strings.Fields(text)
	if len(words) > limit {
		words = words[:limit]
	}
	return strings.Join(words, " ")
}
