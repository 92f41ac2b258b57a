package pipeline

import (
	"fmt"

	"github.com/matzehuels/brandmark/pkg/mark"
	"github.com/matzehuels/brandmark/pkg/render"
)

// Render produces the requested formats for one scene.
func Render(scene mark.Scene, formats []string, pixelRatio float64) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		data, err := RenderFormat(scene, format, pixelRatio)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat produces a single format for one scene.
func RenderFormat(scene mark.Scene, format string, pixelRatio float64) ([]byte, error) {
	var data []byte
	var err error

	switch format {
	case render.FormatSVG:
		data = render.RenderSVG(scene)
	case render.FormatPNG:
		data, err = render.RenderPNG(scene, pixelRatio)
	case render.FormatPDF:
		data, err = render.ToPDF(render.RenderSVG(scene))
	case render.FormatJSON:
		data, err = render.RenderJSON(scene)
	default:
		return nil, render.ValidateFormat(format)
	}

	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}
