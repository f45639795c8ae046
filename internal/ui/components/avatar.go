package components

import (
	"charm.land/lipgloss/v2"

	"github.com/whotakesshowers/wts/internal/config"
	"github.com/whotakesshowers/wts/internal/roster"
	"github.com/whotakesshowers/wts/internal/ui/theme"
)

// PhotoMarker stands in for a candidate photo, which a terminal cannot show.
const PhotoMarker = "📷"

// Avatar renders the badge shown next to a candidate name.
func Avatar(c roster.Candidate, a config.Avatar) string {
	if c.HasPhoto() {
		return lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Render(PhotoMarker)
	}
	style := lipgloss.NewStyle()
	if a.Color != "" {
		style = style.Background(lipgloss.Color(a.Color))
	}
	return style.Render(a.Emoji)
}

// AvatarSet assigns one placeholder avatar per candidate for the lifetime
// of a roster, so random avatars do not flicker between frames.
type AvatarSet struct {
	avatars map[string]config.Avatar
}

// NewAvatarSet picks avatars for every candidate in snap.
func NewAvatarSet(snap roster.Snapshot, d config.DisplayConfig) AvatarSet {
	set := AvatarSet{avatars: make(map[string]config.Avatar, snap.Len())}
	for _, c := range snap.All() {
		set.avatars[c.ID] = d.Avatar(nil)
	}
	return set
}

// Render renders c's avatar.
func (s AvatarSet) Render(c roster.Candidate) string {
	return Avatar(c, s.avatars[c.ID])
}
