package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	SourceFlags `embed:""`
	VerifyLinks bool   `name:"verify-links" help:"Check local links in the generated pages"`
	MetricsFile string `name:"metrics-file" help:"Write build metrics in Prometheus text format to this file" type:"path"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if err := b.apply(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, err = RunBuild(ctx, cfg, os.Stdout)
	return err
}

func (b *BuildCmd) apply(cfg *config.Config) error {
	if b.VerifyLinks {
		cfg.Build.VerifyLinks = true
	}
	if b.MetricsFile != "" {
		cfg.Build.MetricsFile = b.MetricsFile
	}
	return b.SourceFlags.Apply(cfg)
}

// RunBuild builds the site once, printing processed sources to progress. When
// cfg.Build.MetricsFile is set, metrics are written there whether or not the
// build succeeds.
func RunBuild(ctx context.Context, cfg *config.Config, progress io.Writer) (*site.Report, error) {
	opts := []site.Option{site.WithProgress(progress)}

	var prom *metrics.PrometheusRecorder
	if cfg.Build.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		opts = append(opts, site.WithRecorder(prom))
	}

	report, err := site.NewBuilder(cfg, opts...).Build(ctx)

	if prom != nil {
		if werr := prom.WriteTextfile(cfg.Build.MetricsFile); werr != nil {
			slog.Warn("Failed to write metrics file", logfields.Path(cfg.Build.MetricsFile), logfields.Error(werr))
		}
	}
	if err != nil {
		return report, err
	}

	slog.Info("Build summary", slog.String("summary", report.Summary()))
	if n := len(report.BrokenLinks); n > 0 {
		slog.Warn(fmt.Sprintf("%d broken link(s) found", n))
	}
	return report, nil
}
