package render

import (
	"encoding/json"

	"github.com/matzehuels/brandmark/pkg/mark"
)

// RenderJSON returns the scene as indented JSON.
func RenderJSON(scene mark.Scene) ([]byte, error) {
	return json.MarshalIndent(scene, "", "  ")
}
