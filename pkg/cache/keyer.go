package cache

import "strconv"

// Keyer builds cache keys.
type Keyer interface {
	// SceneKey returns the key for the scene generated from a spec hash.
	SceneKey(specHash string) string

	// ArtifactKey returns the key for an artifact rendered from a scene.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds the render options that change artifact bytes.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	PixelRatio float64 `json:"pixel_ratio,omitempty"`
	IDSuffix   string  `json:"id_suffix,omitempty"`
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SceneKey returns "scene:<specHash>".
func (DefaultKeyer) SceneKey(specHash string) string {
	return "scene:" + specHash
}

// ArtifactKey returns "artifact:<format>:<hash>" where the hash covers the
// scene hash and every option.
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, sceneHash, opts.Format, strconv.FormatFloat(opts.PixelRatio, 'f', -1, 64), opts.IDSuffix)
}

var _ Keyer = DefaultKeyer{}
