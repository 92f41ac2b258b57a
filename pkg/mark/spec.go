package mark

import (
	"strings"

	"github.com/matzehuels/brandmark/pkg/errors"
)

// Style selects the visual family of a mark.
type Style string

// Supported styles.
const (
	StyleMinimalist Style = "Minimalist"
	StylePlayful    Style = "Playful"
	StyleCorporate  Style = "Corporate"
	StyleFuturistic Style = "Futuristic"
)

// Styles lists every supported style in display order.
var Styles = []Style{StyleMinimalist, StylePlayful, StyleCorporate, StyleFuturistic}

// Valid reports whether s is one of the supported styles.
func (s Style) Valid() bool {
	switch s {
	case StyleMinimalist, StylePlayful, StyleCorporate, StyleFuturistic:
		return true
	}
	return false
}

// ParseStyle returns the style named by s. Matching ignores case but the
// returned value is always the canonical spelling, which is what gets hashed
// into the seed composite.
func ParseStyle(s string) (Style, error) {
	for _, st := range Styles {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidStyle, "unsupported style: %q (must be one of: Minimalist, Playful, Corporate, Futuristic)", s)
}

// Aspect is the output aspect ratio.
type Aspect string

// Supported aspect ratios.
const (
	Aspect1x1  Aspect = "1:1"
	Aspect4x5  Aspect = "4:5"
	Aspect9x16 Aspect = "9:16"
)

// Aspects lists every supported aspect ratio.
var Aspects = []Aspect{Aspect1x1, Aspect4x5, Aspect9x16}

// Valid reports whether a is one of the supported aspect ratios.
func (a Aspect) Valid() bool {
	switch a {
	case Aspect1x1, Aspect4x5, Aspect9x16:
		return true
	}
	return false
}

// ParseAspect returns the aspect ratio named by s.
func ParseAspect(s string) (Aspect, error) {
	a := Aspect(strings.TrimSpace(s))
	if !a.Valid() {
		return "", errors.New(errors.ErrCodeInvalidAspect, "unsupported aspect: %q (must be one of: 1:1, 4:5, 9:16)", s)
	}
	return a, nil
}

// LogoSpec is an immutable generation request.
//
// Colors must already be normalized tokens (see the palette package); the
// generator copies them into the gradient stops verbatim.
type LogoSpec struct {
	CampaignName string `json:"campaignName"`
	Tagline      string `json:"tagline"`
	Primary      string `json:"primary"`
	Secondary    string `json:"secondary"`
	Accent       string `json:"accent"`
	Style        Style  `json:"style"`
	Seed         string `json:"seed"`
	Aspect       Aspect `json:"aspect"`
}

// Validate checks the enum fields. Text fields are never invalid.
func (s LogoSpec) Validate() error {
	if !s.Style.Valid() {
		return errors.New(errors.ErrCodeInvalidStyle, "unsupported style: %q", s.Style)
	}
	if !s.Aspect.Valid() {
		return errors.New(errors.ErrCodeInvalidAspect, "unsupported aspect: %q", s.Aspect)
	}
	return nil
}

// SeedComposite returns the text the stream is seeded from. Binding the
// campaign name and style into it makes two campaigns sharing a seed produce
// different marks.
func (s LogoSpec) SeedComposite() string {
	return s.Seed + s.CampaignName + string(s.Style)
}
