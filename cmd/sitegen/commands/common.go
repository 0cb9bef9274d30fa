// Package commands implements the sitegen command line.
package commands

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitegen/internal/config"
)

// envLogLevel overrides the log level when -v is not given.
const envLogLevel = "SITEGEN_LOG_LEVEL"

// Global is passed to every command's Run.
type Global struct {
	Logger *slog.Logger
}

// CLI is the root command. Running sitegen without a command builds the site.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (optional unless changed from the default)" default:"sitegen.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" default:"withargs" help:"Build the site (default command)"`
	Watch WatchCmd `cmd:"" help:"Build the site, then rebuild whenever sources change"`
	Init  InitCmd  `cmd:"" help:"Write an example configuration file"`
}

// AfterApply runs after flag parsing and sets up logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	setupLogging(os.Stderr, c.logLevel(""), config.LogFormatText)
	return nil
}

// logLevel picks the effective level: -v, then SITEGEN_LOG_LEVEL, then the
// config file value.
func (c *CLI) logLevel(fromConfig string) slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	if env := strings.TrimSpace(os.Getenv(envLogLevel)); env != "" {
		return config.NormalizeLogLevel(env).SlogLevel()
	}
	return config.NormalizeLogLevel(fromConfig).SlogLevel()
}

// loadConfig reads the configuration file. A missing file is only an error when
// the path was changed from the default.
func (c *CLI) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if c.Config == config.DefaultConfigFile {
		cfg, err = config.LoadOrDefault(c.Config)
	} else {
		cfg, err = config.Load(c.Config)
	}
	if err != nil {
		return nil, err
	}
	setupLogging(os.Stderr, c.logLevel(cfg.Logging.Level), config.NormalizeLogFormat(cfg.Logging.Format))
	return cfg, nil
}

func setupLogging(w io.Writer, level slog.Level, format config.LogFormat) {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewTextHandler(w, opts)
	if format == config.LogFormatJSON {
		h = slog.NewJSONHandler(w, opts)
	}
	slog.SetDefault(slog.New(h))
}

// SourceFlags override the configured directories.
type SourceFlags struct {
	Content   string `help:"Content root (overrides content.directory)" type:"path"`
	Templates string `help:"Template directory (overrides templates.directory)" type:"path"`
	Output    string `short:"o" help:"Output root (overrides output.directory)" type:"path"`
}

// Apply copies the non-empty flags into cfg and revalidates it.
func (s SourceFlags) Apply(cfg *config.Config) error {
	if s.Content != "" {
		cfg.Content.Directory = s.Content
	}
	if s.Templates != "" {
		cfg.Templates.Directory = s.Templates
	}
	if s.Output != "" {
		cfg.Output.Directory = s.Output
	}
	return cfg.Validate()
}
