package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

// Default layout, matching the conventional project tree:
//
//	src/content/            markdown documents and one level of collections
//	src/content/.assets/    static files copied verbatim
//	src/templating/         content.html, list.html, *.js, *.css
const (
	DefaultContentDir   = "src/content"
	DefaultAssetDir     = ".assets"
	DefaultMarkupExt    = ".md"
	DefaultIndexName    = "index"
	DefaultHomeLabel    = "Home"
	DefaultTemplateDir  = "src/templating"
	DefaultPageTemplate = "content.html"
	DefaultListTemplate = "list.html"
	DefaultOutputDir    = "."
	DefaultOutputExt    = ".html"
	DefaultSeparator    = "."
	DefaultConfigFile   = "sitegen.yaml"
)

// DefaultStaticExtensions lists the template-directory files copied to the output root.
var DefaultStaticExtensions = []string{".js", ".css"}

// Config is the explicit build configuration threaded through every component.
type Config struct {
	Content   ContentConfig   `yaml:"content"`
	Templates TemplatesConfig `yaml:"templates"`
	Output    OutputConfig    `yaml:"output"`
	Markdown  MarkdownConfig  `yaml:"markdown"`
	Build     BuildConfig     `yaml:"build"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ContentConfig describes the content root and how its entries are named.
type ContentConfig struct {
	Directory string `yaml:"directory"`
	AssetDir  string `yaml:"asset_dir"`  // asset subtree name inside Directory
	Extension string `yaml:"extension"`  // markup extension
	IndexName string `yaml:"index_name"` // canonical index document name (without extension)
	HomeLabel string `yaml:"home_label"` // navigation label for the index document
}

// TemplatesConfig describes the template directory.
type TemplatesConfig struct {
	Directory        string   `yaml:"directory"`
	Page             string   `yaml:"page"`
	List             string   `yaml:"list"`
	StaticExtensions []string `yaml:"static_extensions,omitempty"`
}

// OutputConfig describes the output root and flattening rules.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Extension string `yaml:"extension"`
	Separator string `yaml:"separator"` // joins flattened path segments
}

// MarkdownConfig toggles goldmark features.
type MarkdownConfig struct {
	GFM        bool `yaml:"gfm"`
	HeadingIDs bool `yaml:"heading_ids"`
	HardWraps  bool `yaml:"hard_wraps"`
	EscapeHTML bool `yaml:"escape_html"` // raw HTML passes through unless set
}

// BuildConfig holds optional post-processing knobs.
type BuildConfig struct {
	VerifyLinks bool   `yaml:"verify_links,omitempty"`
	MetricsFile string `yaml:"metrics_file,omitempty"`
}

// LoggingConfig selects the log level and handler format.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Default returns the zero-configuration layout.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configPath, expands environment variables and applies defaults.
func Load(configPath string) (*Config, error) {
	loadEnvFile()

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ferrors.NotFoundError("configuration file not found").
				WithCause(err).WithContext("path", configPath).Build()
		}
		return nil, ferrors.ConfigError("failed to read config file").WithCause(err).
			WithContext("path", configPath).Build()
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, ferrors.ConfigError("failed to unmarshal config").WithCause(err).
			WithContext("path", configPath).Build()
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault behaves like Load but falls back to Default when configPath does not exist.
func LoadOrDefault(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		slog.Debug("No configuration file, using defaults", slog.String("path", configPath))
		loadEnvFile()
		return Default(), nil
	}
	return Load(configPath)
}

func (c *Config) applyDefaults() {
	setDefault(&c.Content.Directory, DefaultContentDir)
	setDefault(&c.Content.AssetDir, DefaultAssetDir)
	setDefault(&c.Content.Extension, DefaultMarkupExt)
	setDefault(&c.Content.IndexName, DefaultIndexName)
	setDefault(&c.Content.HomeLabel, DefaultHomeLabel)
	setDefault(&c.Templates.Directory, DefaultTemplateDir)
	setDefault(&c.Templates.Page, DefaultPageTemplate)
	setDefault(&c.Templates.List, DefaultListTemplate)
	if len(c.Templates.StaticExtensions) == 0 {
		c.Templates.StaticExtensions = append([]string(nil), DefaultStaticExtensions...)
	}
	setDefault(&c.Output.Directory, DefaultOutputDir)
	setDefault(&c.Output.Extension, DefaultOutputExt)
	setDefault(&c.Output.Separator, DefaultSeparator)
	c.Logging.Level = string(NormalizeLogLevel(c.Logging.Level))
	c.Logging.Format = string(NormalizeLogFormat(c.Logging.Format))
}

func setDefault(field *string, value string) {
	if strings.TrimSpace(*field) == "" {
		*field = value
	}
}

// Validate checks the invariants the build relies on.
func (c *Config) Validate() error {
	for name, ext := range map[string]string{
		"content.extension": c.Content.Extension,
		"output.extension":  c.Output.Extension,
	} {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return ferrors.ValidationError("extension must start with a dot").
				WithContext("field", name).WithContext("value", ext).Build()
		}
	}
	for _, ext := range c.Templates.StaticExtensions {
		if !strings.HasPrefix(ext, ".") {
			return ferrors.ValidationError("static extension must start with a dot").
				WithContext("value", ext).Build()
		}
	}
	if strings.ContainsAny(c.Output.Separator, `/\`) {
		return ferrors.ValidationError("output.separator must not contain a path separator").
			WithContext("value", c.Output.Separator).Build()
	}
	if strings.ContainsAny(c.Content.AssetDir, `/\`) || c.Content.AssetDir == ".." {
		return ferrors.ValidationError("content.asset_dir must be a single directory name").
			WithContext("value", c.Content.AssetDir).Build()
	}
	out := absPath(c.Output.Directory)
	for name, dir := range map[string]string{
		"templates.directory": c.Templates.Directory,
		"content.directory":   c.Content.Directory,
	} {
		if absPath(dir) == out {
			return ferrors.ValidationError("output.directory must not be a source directory").
				WithContext("field", name).WithContext("value", dir).Build()
		}
	}
	if c.Templates.Page == c.Templates.List {
		return ferrors.ValidationError("templates.page and templates.list must differ").
			WithContext("value", c.Templates.Page).Build()
	}
	return nil
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// AssetSource is the asset subtree inside the content root.
func (c *Config) AssetSource() string {
	return filepath.Join(c.Content.Directory, c.Content.AssetDir)
}

// AssetTarget is the asset subtree inside the output root.
func (c *Config) AssetTarget() string {
	return filepath.Join(c.Output.Directory, c.Content.AssetDir)
}

// GeneratedExtensions lists the extensions the output cleaner removes.
func (c *Config) GeneratedExtensions() []string {
	return append([]string{c.Output.Extension}, c.Templates.StaticExtensions...)
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).Build()
	}

	example := Default()
	example.Markdown = MarkdownConfig{GFM: true, HeadingIDs: true}
	example.Build.VerifyLinks = true

	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return ferrors.FileSystemError("failed to write config file").WithCause(err).
			WithContext("path", configPath).Build()
	}
	return nil
}
