// Package config loads blockbind settings from defaults, an optional
// .blockbind.yaml in the module root and BLOCKBIND_* environment variables,
// in that order of precedence (later wins). Command-line flags are applied
// on top by the cli package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/roach88/blockbind/internal/binding"
	"github.com/roach88/blockbind/internal/manifest"
)

const (
	// FileName is the per-module configuration file.
	FileName = ".blockbind.yaml"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "BLOCKBIND_"

	// DefaultManifest is the build manifest name in every directory.
	DefaultManifest = "CMakeLists.txt"
)

type Config struct {
	// Dir is the absolute module root. It is set by Load, not read from sources.
	Dir string `koanf:"-"`

	Module     string           `koanf:"module"`
	Layout     LayoutConfig     `koanf:"layout"`
	Manifest   string           `koanf:"manifest"`
	Descriptor DescriptorConfig `koanf:"descriptor"`
	Yes        bool             `koanf:"yes"`
	KeepGoing  bool             `koanf:"keep_going"`
	Journal    JournalConfig    `koanf:"journal"`
	Log        LogConfig        `koanf:"log"`
}

// LayoutConfig names the subdirectories, relative to Dir, that hold each
// kind of file. An empty Include defaults to include/<module>.
type LayoutConfig struct {
	Lib     string `koanf:"lib"`
	Include string `koanf:"include"`
	Python  string `koanf:"python"`
	GRC     string `koanf:"grc"`
}

type DescriptorConfig struct {
	Format string `koanf:"format"` // yaml, xml
	Glob   string `koanf:"glob"`
}

type JournalConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn, error
}

// LoadOptions selects where configuration is read from.
type LoadOptions struct {
	// Dir is the module root. Empty means the working directory.
	Dir string
	// File overrides the config file. It must exist when set.
	File string
}

// underscoreKeys are config keys whose names contain an underscore, so the
// env mapping must not split them into nested keys.
var underscoreKeys = []string{"keep_going"}

// Load builds a Config. When no module name is configured it is detected
// from the project() statement of the top-level manifest; if that fails the
// name stays empty and Validate reports it.
func Load(opts LoadOptions) (*Config, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve module dir %s: %w", dir, err)
	}

	if err := loadDotEnv(filepath.Join(abs, ".env")); err != nil {
		return nil, err
	}

	k := koanf.New(".")
	setDefaults(k)

	path := opts.File
	if path == "" {
		if candidate := filepath.Join(abs, FileName); fileExists(candidate) {
			path = candidate
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	// BLOCKBIND_LAYOUT_GRC -> layout.grc, BLOCKBIND_KEEP_GOING -> keep_going
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Dir = abs

	if cfg.Module == "" {
		cfg.Module, _ = DetectModule(cfg.Path(cfg.Manifest))
	}
	if cfg.Layout.Include == "" && cfg.Module != "" {
		cfg.Layout.Include = filepath.Join("include", cfg.Module)
	}
	return &cfg, nil
}

func setDefaults(k *koanf.Koanf) {
	k.Set("manifest", DefaultManifest)
	k.Set("layout.lib", "lib")
	k.Set("layout.python", "python")
	k.Set("layout.grc", "grc")
	k.Set("descriptor.format", string(binding.FormatYAML))
	k.Set("descriptor.glob", "*_impl.cc")
	k.Set("yes", false)
	k.Set("keep_going", false)
	k.Set("journal.enabled", true)
	k.Set("journal.path", filepath.Join(".blockbind", "journal.db"))
	k.Set("log.level", "info")
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, u := range underscoreKeys {
		if key == u {
			return key
		}
	}
	return strings.ReplaceAll(key, "_", ".")
}

// loadDotEnv exports variables from a .env file without overriding the
// existing environment. A missing file is not an error.
func loadDotEnv(path string) error {
	if !fileExists(path) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ErrNoProject is returned when the manifest has no usable project() statement.
var ErrNoProject = errors.New("no gr-<name> project() statement")

// DetectModule reads the module name from the first "project(gr-<name> ...)"
// statement in the manifest at path.
func DetectModule(path string) (string, error) {
	buf, err := manifest.Load(path)
	if err != nil {
		return "", err
	}
	for _, body := range buf.StatementBodies("project") {
		fields := strings.Fields(body)
		if len(fields) == 0 {
			continue
		}
		if name, ok := strings.CutPrefix(fields[0], "gr-"); ok && name != "" {
			return name, nil
		}
	}
	return "", fmt.Errorf("%s: %w", path, ErrNoProject)
}

var moduleName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate reports settings the scaffolding commands cannot work with.
func (c *Config) Validate() error {
	if c.Module == "" {
		return fmt.Errorf("module name unknown: set %q in %s or %sMODULE, or run inside a gr-<name> tree", "module", FileName, EnvPrefix)
	}
	if !moduleName.MatchString(c.Module) {
		return fmt.Errorf("module name %q is not an identifier", c.Module)
	}
	if _, err := binding.ParseFormat(c.Descriptor.Format); err != nil {
		return err
	}
	if strings.TrimSpace(c.Descriptor.Glob) == "" {
		return errors.New("descriptor.glob must not be empty")
	}
	if !logLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

// Format returns the parsed descriptor format.
func (c *Config) Format() binding.Format {
	f, err := binding.ParseFormat(c.Descriptor.Format)
	if err != nil {
		return binding.FormatYAML
	}
	return f
}

// Path joins elements onto the module root.
func (c *Config) Path(elem ...string) string {
	return filepath.Join(append([]string{c.Dir}, elem...)...)
}

// SubdirManifest returns the manifest path inside a layout subdirectory.
func (c *Config) SubdirManifest(subdir string) string {
	return c.Path(subdir, c.Manifest)
}

// JournalPath returns the absolute journal database path.
func (c *Config) JournalPath() string {
	if filepath.IsAbs(c.Journal.Path) {
		return c.Journal.Path
	}
	return c.Path(c.Journal.Path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
