// Package cli implements the brandmark command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/brandmark/pkg/cache"
	"github.com/matzehuels/brandmark/pkg/config"
	"github.com/matzehuels/brandmark/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "brandmark"

	// cachePrefix scopes CLI entries in a shared redis.
	cachePrefix = "brandmark:cli:"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     *config.File
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the config file once.
func (c *CLI) loadConfig() (*config.File, error) {
	if c.config != nil {
		return c.config, nil
	}
	f, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if f.Path != "" {
		c.Logger.Debug("loaded config", "path", f.Path)
	}
	c.config = f
	return f, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	cc, keyer, err := newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

func newCache(ctx context.Context, cfg config.Cache, noCache bool) (cache.Cache, cache.Keyer, error) {
	if noCache || cfg.Backend == config.CacheNone {
		return cache.NewNullCache(), nil, nil
	}
	if cfg.Backend == config.CacheRedis {
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{Addr: cfg.RedisAddr})
		if err != nil {
			return nil, nil, err
		}
		return rc, cache.NewScopedKeyer(cache.NewDefaultKeyer(), cachePrefix), nil
	}
	dir := cfg.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil, nil
		}
		dir = d
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, nil, err
	}
	return fc, nil, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/brandmark/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// applyConfig fills unset options from the config file.
func (c *CLI) applyConfig(opts *pipeline.Options) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	cfg.Apply(opts)
	opts.Logger = c.Logger
	return nil
}

// parseFormats parses a comma-separated format string into a slice.
// An empty string yields nil so that config and pipeline defaults apply.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return parts
}

// baseName is the download name stem: the campaign name, or "logo".
func baseName(campaign string) string {
	name := strings.TrimSpace(campaign)
	name = strings.Join(strings.Fields(name), "-")
	name = strings.NewReplacer("/", "-", `\`, "-").Replace(name)
	if name == "" {
		return "logo"
	}
	return name
}

// outputPath names the file for one variation. A single variation keeps the
// plain "<name>.<format>"; several get the seed appended.
func outputPath(dir, campaign, seed, format string, single bool) string {
	name := baseName(campaign)
	if !single {
		name += "-" + seed
	}
	return filepath.Join(dir, name+"."+format)
}

