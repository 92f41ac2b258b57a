// Package palette derives and normalizes the three-color palettes that feed
// [mark.LogoSpec].
//
// Colors travel through the generator as canonical lowercase "#rrggbb"
// tokens. [Normalize] is the only way user input becomes such a token and it
// never fails: anything it cannot read maps to [Fallback].
package palette

import (
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/brandmark/pkg/errors"
	"github.com/matzehuels/brandmark/pkg/mark"
)

// Fallback is substituted for unreadable color input.
const Fallback = "#6366f1"

// Palette is a primary/secondary/accent triple of normalized colors.
type Palette struct {
	Primary   string `json:"primary" toml:"primary"`
	Secondary string `json:"secondary" toml:"secondary"`
	Accent    string `json:"accent" toml:"accent"`
}

// Normalize returns text as a lowercase "#rrggbb" token. It accepts "#rgb",
// "#rrggbb" and the same forms without the leading '#'. Normalize is
// idempotent.
func Normalize(text string) string {
	c, err := Parse(text)
	if err != nil {
		return Fallback
	}
	return c.Hex()
}

// Parse reads a hex color in any form [Normalize] accepts.
func Parse(text string) (colorful.Color, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 || strings.Trim(s, "0123456789abcdef") != "" {
		return colorful.Color{}, errors.New(errors.ErrCodeInvalidColor, "invalid color: %q", text)
	}
	c, err := colorful.Hex("#" + s)
	if err != nil {
		return colorful.Color{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid color: %q", text)
	}
	return c, nil
}

// FromSeed derives a palette from text. The base hue is Hash(text) mod 360;
// the secondary sits 35° around the wheel and the accent opposite the base.
func FromSeed(text string) Palette {
	h := float64(mark.Hash(text) % 360)
	return Palette{
		Primary:   hsl(h, 0.70, 0.55),
		Secondary: hsl(h+35, 0.65, 0.45),
		Accent:    hsl(h+180, 0.80, 0.60),
	}
}

// Normalized returns p with every color passed through [Normalize]. Empty
// fields are filled from def.
func (p Palette) Normalized(def Palette) Palette {
	return Palette{
		Primary:   Normalize(or(p.Primary, def.Primary)),
		Secondary: Normalize(or(p.Secondary, def.Secondary)),
		Accent:    Normalize(or(p.Accent, def.Accent)),
	}
}

// IsZero reports whether no color is set.
func (p Palette) IsZero() bool {
	return p.Primary == "" && p.Secondary == "" && p.Accent == ""
}

func hsl(h, s, l float64) string {
	return colorful.Hsl(math.Mod(h, 360), s, l).Clamped().Hex()
}

func or(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
