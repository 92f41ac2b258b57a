package render

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/brandmark/pkg/mark"
)

// DefaultThumbnailSide is the longest side of a preview image in pixels.
const DefaultThumbnailSide = 320

// RenderThumbnail rasterizes the scene at 1x and scales it down so its
// longest side is at most maxSide pixels. maxSide <= 0 means
// [DefaultThumbnailSide].
func RenderThumbnail(scene mark.Scene, maxSide int) ([]byte, error) {
	if maxSide <= 0 {
		maxSide = DefaultThumbnailSide
	}
	img, err := Rasterize(scene, 1)
	if err != nil {
		return nil, err
	}
	thumb := imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
