package config

import (
	"fmt"
	"math/rand/v2"
)

// MaxQuickOptions caps the number of preset candidate terms.
const MaxQuickOptions = 8

// AvatarEmojis is the pool random avatars are drawn from.
var AvatarEmojis = []string{"😀", "😎", "🥳", "😊", "🤩", "😄"}

// AvatarColors is the pool random avatar backgrounds are drawn from.
var AvatarColors = []string{"#E8E4FF", "#D4FFEA", "#FFE8D4", "#00D4FF", "#FF2E93"}

// DisplayConfig controls how candidates are presented.
type DisplayConfig struct {
	CandidateTerm string   `yaml:"candidate_term"`
	DefaultColor  string   `yaml:"default_color"`
	DefaultEmoji  string   `yaml:"default_emoji"`
	RandomAvatar  bool     `yaml:"random_avatar"`
	QuickOptions  []string `yaml:"quick_options"`
}

// DefaultDisplay returns the stock display settings.
func DefaultDisplay() DisplayConfig {
	return DisplayConfig{
		CandidateTerm: "候选人",
		DefaultColor:  "#E8E4FF",
		DefaultEmoji:  "😀",
		QuickOptions:  []string{"候选人", "机灵鬼", "小伙伴", "幸运儿", "勇士", "挑战者"},
	}
}

// Avatar is the placeholder shown for a candidate without a photo.
type Avatar struct {
	Emoji string
	Color string
}

// Avatar picks the placeholder avatar for a candidate. With RandomAvatar set,
// rng chooses from the pools; rng may be nil to use the global source.
func (d DisplayConfig) Avatar(rng *rand.Rand) Avatar {
	if !d.RandomAvatar {
		return Avatar{Emoji: d.DefaultEmoji, Color: d.DefaultColor}
	}
	intn := rand.IntN
	if rng != nil {
		intn = rng.IntN
	}
	return Avatar{
		Emoji: AvatarEmojis[intn(len(AvatarEmojis))],
		Color: AvatarColors[intn(len(AvatarColors))],
	}
}

func (d DisplayConfig) validate() error {
	if d.CandidateTerm == "" {
		return fmt.Errorf("%w: display.candidate_term is required", ErrInvalid)
	}
	if len(d.QuickOptions) > MaxQuickOptions {
		return fmt.Errorf("%w: display.quick_options allows at most %d entries", ErrInvalid, MaxQuickOptions)
	}
	return nil
}
