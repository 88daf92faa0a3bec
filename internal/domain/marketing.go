package domain

// MarketingBrief is the project summary a marketing-content task works from.
type MarketingBrief struct {
	ProjectTitle   string `json:"projectTitle"`
	Genre          string `json:"genre"`
	Synopsis       string `json:"synopsis"`
	TargetAudience string `json:"targetAudience"`
	Budget         string `json:"budget,omitempty"`
	Director       string `json:"director,omitempty"`
}

// PressKit is supplementary press material for a project.
type PressKit struct {
	Logline        string   `json:"logline"`
	Themes         []string `json:"themes"`
	VisualStyle    string   `json:"visualStyle"`
	KeyCast        []string `json:"keyCast"`
	CrewHighlights []string `json:"crewHighlights"`
}

// DistributionStrategy outlines how and where to release a project.
type DistributionStrategy struct {
	Platforms          []string `json:"platforms"`
	ReleaseTiming      string   `json:"releaseTiming"`
	PromotionalTactics []string `json:"promotionalTactics"`
}

// MarketingContent is the generated promotional package for a project.
type MarketingContent struct {
	Tagline           string               `json:"tagline"`
	PosterDescription string               `json:"posterDescription"`
	TrailerScript     string               `json:"trailerScript"`
	SocialMediaPosts  []string             `json:"socialMediaPosts"`
	PressKit          PressKit             `json:"pressKit"`
	Distribution      DistributionStrategy `json:"distributionStrategy"`
}

// Normalize fills nil collections with empty values.
func (m *MarketingContent) Normalize() {
	if m.SocialMediaPosts == nil {
		m.SocialMediaPosts = []string{}
	}
	if m.PressKit.Themes == nil {
		m.PressKit.Themes = []string{}
	}
	if m.PressKit.KeyCast == nil {
		m.PressKit.KeyCast = []string{}
	}
	if m.PressKit.CrewHighlights == nil {
		m.PressKit.CrewHighlights = []string{}
	}
	if m.Distribution.Platforms == nil {
		m.Distribution.Platforms = []string{}
	}
	if m.Distribution.PromotionalTactics == nil {
		m.Distribution.PromotionalTactics = []string{}
	}
}
