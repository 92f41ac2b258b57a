package mark

import (
	"strings"

	"github.com/matzehuels/brandmark/pkg/errors"
)

// FontTable maps each style to an ordered font fallback chain. It is
// configuration data: pass a custom table with [WithFonts].
type FontTable map[Style][]string

// DefaultFonts returns the built-in font table.
func DefaultFonts() FontTable {
	return FontTable{
		StyleCorporate:  {"Inter", "ui-sans-serif", "system-ui", "-apple-system", "Segoe UI", "Roboto", "Arial"},
		StyleFuturistic: {"Rajdhani", "Orbitron", "Inter", "ui-sans-serif", "system-ui"},
		StylePlayful:    {"Poppins", "Quicksand", "Inter", "ui-sans-serif", "system-ui"},
		StyleMinimalist: {"Inter", "ui-sans-serif", "system-ui"},
	}
}

// Validate reports an error if any style lacks a non-empty chain.
func (t FontTable) Validate() error {
	for _, s := range Styles {
		if len(t[s]) == 0 {
			return errors.New(errors.ErrCodeInvalidInput, "font table has no fonts for style %s", s)
		}
	}
	return nil
}

// Family returns the CSS font-family value for style.
func (t FontTable) Family(style Style) string {
	return strings.Join(t[style], ", ")
}

// Merge returns a copy of t with the chains in override replacing its own.
func (t FontTable) Merge(override FontTable) FontTable {
	out := make(FontTable, len(t))
	for s, fonts := range t {
		out[s] = append([]string(nil), fonts...)
	}
	for s, fonts := range override {
		if len(fonts) > 0 {
			out[s] = append([]string(nil), fonts...)
		}
	}
	return out
}
