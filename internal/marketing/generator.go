// Package marketing implements promotional content generation: a generative
// path producing a full campaign package from a project brief, and a static
// template fallback used when the backend is unavailable.
package marketing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nollyprod/stagehand-api/internal/domain"
	"github.com/nollyprod/stagehand-api/internal/generation"
)

const systemPrompt = "You are a professional film marketing expert. " +
	"Create comprehensive marketing content that resonates with target audiences " +
	"and maximizes commercial potential."

// Generator produces marketing campaign packages from project briefs. A nil
// generator disables the generative path entirely.
type Generator struct {
	generator generation.TextGenerator
	logger    *slog.Logger
}

// NewGenerator creates a Generator. generator may be nil, in which case
// every call takes the fallback path.
func NewGenerator(generator generation.TextGenerator, logger *slog.Logger) *Generator {
	return &Generator{
		generator: generator,
		logger:    logger.With("component", "marketing_generator"),
	}
}

// Generate produces a marketing package for the brief. It never returns an
// error: backend problems are absorbed by the fallback path and recorded in
// the outcome's provenance.
func (g *Generator) Generate(ctx context.Context, brief domain.MarketingBrief) *domain.MarketingOutcome {
	if g.generator == nil {
		return &domain.MarketingOutcome{
			Content:    fallbackContent(),
			Provenance: domain.Fallback("generative backend not configured"),
		}
	}

	content, err := g.generateContent(ctx, brief)
	if err != nil {
		g.logger.Warn("generative marketing content failed, using fallback",
			"error", err,
			"project_title", brief.ProjectTitle)
		return &domain.MarketingOutcome{
			Content:    fallbackContent(),
			Provenance: domain.Fallback(err.Error()),
		}
	}

	return &domain.MarketingOutcome{
		Content:    *content,
		Provenance: domain.Generative(),
	}
}

func (g *Generator) generateContent(ctx context.Context, brief domain.MarketingBrief) (*domain.MarketingContent, error) {
	raw, err := g.generator.GenerateJSON(ctx, systemPrompt, buildPrompt(brief))
	if err != nil {
		return nil, err
	}

	var content domain.MarketingContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrMalformedResponse, err)
	}

	if content.Tagline == "" {
		return nil, fmt.Errorf("%w: backend returned no tagline", generation.ErrMalformedResponse)
	}

	content.Normalize()
	return &content, nil
}

func buildPrompt(brief domain.MarketingBrief) string {
	return fmt.Sprintf(`Generate comprehensive marketing content for this film project:

Title: %s
Genre: %s
Synopsis: %s
Target Audience: %s
Budget: %s
Director: %s

Return JSON with:
{
  "tagline": "Compelling one-liner",
  "posterDescription": "Detailed poster concept",
  "trailerScript": "Trailer script with timing",
  "socialMediaPosts": ["Post 1", "Post 2", "Post 3"],
  "pressKit": {
    "logline": "One sentence summary",
    "themes": ["Theme 1", "Theme 2"],
    "visualStyle": "Visual description",
    "keyCast": ["Actor 1", "Actor 2"],
    "crewHighlights": ["Crew member 1", "Crew member 2"]
  },
  "distributionStrategy": {
    "platforms": ["Platform 1", "Platform 2"],
    "releaseTiming": "Release timing strategy",
    "promotionalTactics": ["Tactic 1", "Tactic 2"]
  }
}`,
		brief.ProjectTitle,
		brief.Genre,
		brief.Synopsis,
		brief.TargetAudience,
		brief.Budget,
		brief.Director,
	)
}

// fallbackContent is the static campaign template used when no backend is
// reachable. Generic by necessity; callers see the fallback provenance and
// can regenerate later.
func fallbackContent() domain.MarketingContent {
	return domain.MarketingContent{
		Tagline:           "An epic story that will change everything",
		PosterDescription: "Dramatic poster with main character in center",
		TrailerScript:     "Fade in... dramatic music... character introduction...",
		SocialMediaPosts:  []string{"Check out our new project!", "Coming soon to theaters"},
		PressKit: domain.PressKit{
			Logline:        "A compelling story of human drama",
			Themes:         []string{"Love", "Conflict", "Redemption"},
			VisualStyle:    "Cinematic and visually striking",
			KeyCast:        []string{"Lead Actor", "Supporting Actor"},
			CrewHighlights: []string{"Acclaimed Director", "Award-winning Cinematographer"},
		},
		Distribution: domain.DistributionStrategy{
			Platforms:          []string{"Theatrical", "Streaming"},
			ReleaseTiming:      "Q3 2025",
			PromotionalTactics: []string{"Film Festivals", "Social Media Campaign"},
		},
	}
}
