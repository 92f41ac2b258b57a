// Package config loads brandmark configuration.
//
// Two sources are supported:
//
//   - A TOML file for the CLI, by default at
//     $XDG_CONFIG_HOME/brandmark/config.toml. It sets generation defaults,
//     per-style font overrides and the cache backend.
//   - Environment variables for the API server, prefixed BRANDMARK_.
//
// Example file:
//
//	[defaults]
//	style = "Playful"
//	aspect = "4:5"
//	count = 4
//	formats = ["svg", "png"]
//
//	[defaults.palette]
//	primary = "#0ea5e9"
//
//	[fonts]
//	Playful = ["Baloo 2", "Poppins"]
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/brandmark/pkg/errors"
	"github.com/matzehuels/brandmark/pkg/mark"
	"github.com/matzehuels/brandmark/pkg/palette"
	"github.com/matzehuels/brandmark/pkg/pipeline"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// File is the parsed config file.
type File struct {
	Defaults Defaults            `toml:"defaults"`
	Fonts    map[string][]string `toml:"fonts"`
	Cache    Cache               `toml:"cache"`

	// Path is where the file was read from; empty when no file exists.
	Path string `toml:"-"`
}

// Defaults override the pipeline defaults. Zero values leave them alone.
type Defaults struct {
	Style      string          `toml:"style"`
	Aspect     string          `toml:"aspect"`
	Count      int             `toml:"count"`
	Formats    []string        `toml:"formats"`
	PixelRatio float64         `toml:"pixel_ratio"`
	Palette    palette.Palette `toml:"palette"`
}

// Cache selects the CLI cache backend.
type Cache struct {
	Backend   string `toml:"backend"` // file (default), redis or none
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
}

// DefaultPath returns $XDG_CONFIG_HOME/brandmark/config.toml (or the
// platform equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "brandmark", "config.toml"), nil
}

// Load reads the config file at path. An empty path means [DefaultPath],
// and a missing default file yields an empty config. A missing explicit
// path is an error.
func Load(path string) (*File, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return &File{}, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) && !explicit {
		return &File{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	return Parse(data, path)
}

// Parse decodes TOML config data. path is only used in messages.
func Parse(data []byte, path string) (*File, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	f.Path = path
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks enum values and colors.
func (f *File) Validate() error {
	if f.Defaults.Style != "" {
		if _, err := mark.ParseStyle(f.Defaults.Style); err != nil {
			return err
		}
	}
	if f.Defaults.Aspect != "" {
		if _, err := mark.ParseAspect(f.Defaults.Aspect); err != nil {
			return err
		}
	}
	for _, c := range []string{f.Defaults.Palette.Primary, f.Defaults.Palette.Secondary, f.Defaults.Palette.Accent} {
		if c == "" {
			continue
		}
		if _, err := palette.Parse(c); err != nil {
			return err
		}
	}
	if _, err := f.FontTable(); err != nil {
		return err
	}
	switch f.Cache.Backend {
	case "", CacheFile, CacheRedis, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (must be one of: file, redis, none)", f.Cache.Backend)
	}
	if f.Cache.Backend == CacheRedis && f.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache backend redis needs redis_addr")
	}
	return nil
}

// FontTable returns the font overrides keyed by canonical style, or nil
// when there are none.
func (f *File) FontTable() (mark.FontTable, error) {
	if len(f.Fonts) == 0 {
		return nil, nil
	}
	table := make(mark.FontTable, len(f.Fonts))
	for name, fonts := range f.Fonts {
		style, err := mark.ParseStyle(name)
		if err != nil {
			return nil, err
		}
		table[style] = fonts
	}
	return table, nil
}

// Apply fills unset pipeline options from the file.
func (f *File) Apply(opts *pipeline.Options) {
	d := f.Defaults
	if opts.Style == "" {
		opts.Style = d.Style
	}
	if opts.Aspect == "" {
		opts.Aspect = d.Aspect
	}
	if opts.Count == 0 {
		opts.Count = d.Count
	}
	if len(opts.Formats) == 0 && len(d.Formats) > 0 {
		opts.Formats = append([]string(nil), d.Formats...)
	}
	if opts.PixelRatio == 0 {
		opts.PixelRatio = d.PixelRatio
	}
	if opts.Primary == "" {
		opts.Primary = d.Palette.Primary
	}
	if opts.Secondary == "" {
		opts.Secondary = d.Palette.Secondary
	}
	if opts.Accent == "" {
		opts.Accent = d.Palette.Accent
	}
	if opts.Fonts == nil {
		opts.Fonts, _ = f.FontTable()
	}
}
