// Package site runs the build pipeline: clean the output root, discover content,
// build the navigation index, render pages and collection listings, then copy
// static files.
package site

import (
	"context"
	"fmt"
	"io"
	"os"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/markdown"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/observability"
	"git.home.luguber.info/inful/sitegen/internal/templates"
)

// Builder produces a site from a Config.
type Builder struct {
	cfg      *config.Config
	renderer markdown.Renderer
	recorder metrics.Recorder
	progress io.Writer
}

// Option customises a Builder.
type Option func(*Builder)

// WithRenderer replaces the goldmark renderer derived from the config.
func WithRenderer(r markdown.Renderer) Option {
	return func(b *Builder) { b.renderer = r }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(b *Builder) { b.recorder = r }
}

// WithProgress sets where processed source paths are printed. Defaults to stdout.
func WithProgress(w io.Writer) Option {
	return func(b *Builder) { b.progress = w }
}

// NewBuilder returns a Builder for cfg.
func NewBuilder(cfg *config.Config, opts ...Option) *Builder {
	b := &Builder{
		cfg:      cfg,
		recorder: metrics.NoopRecorder{},
		progress: os.Stdout,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.renderer == nil {
		b.renderer = markdown.NewRenderer(markdown.OptionsFromConfig(cfg))
	}
	return b
}

// BuildState is the mutable state shared by the stages of one build.
type BuildState struct {
	cfg      *config.Config
	rules    content.Rules
	renderer markdown.Renderer
	recorder metrics.Recorder
	progress io.Writer

	Tree       *content.Tree
	Engine     *templates.Engine
	Navigation *content.Navigation
	navMap     map[string]string
	navEntries []content.NavEntry
	// Emitted holds the output-root relative names of the HTML files written.
	Emitted []string

	Report *Report
}

func (b *Builder) newBuildState(buildID string) *BuildState {
	return &BuildState{
		cfg:      b.cfg,
		rules:    content.RulesFromConfig(b.cfg),
		renderer: b.renderer,
		recorder: b.recorder,
		progress: b.progress,
		Report:   NewReport(buildID),
	}
}

func (bs *BuildState) printProgress(path string) {
	if bs.progress == nil {
		return
	}
	_, _ = fmt.Fprintln(bs.progress, path)
}

// Pipeline returns the ordered stages for the builder's config.
func (b *Builder) Pipeline() []StageDef {
	return NewPipeline().
		Add(StageClean, stageClean).
		Add(StageDiscover, stageDiscover).
		Add(StageNavigation, stageNavigation).
		Add(StagePages, stagePages).
		Add(StageListings, stageListings).
		Add(StageAssets, stageAssets).
		AddIf(b.cfg.Build.VerifyLinks, StageVerifyLinks, stageVerifyLinks).
		Build()
}

// Build runs the pipeline once. The report is returned even when the build fails.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	buildID := observability.NewBuildID()
	ctx = observability.WithBuildID(ctx, buildID)
	bs := b.newBuildState(buildID)

	observability.InfoContext(ctx, "Build started",
		logfields.Path(b.cfg.Content.Directory),
		logfields.Output(b.cfg.Output.Directory))

	err := RunStages(ctx, bs, b.Pipeline())

	bs.Report.Finish()
	b.recorder.ObserveBuildDuration(bs.Report.Duration())
	b.recorder.IncBuildOutcome(outcomeMetric(bs.Report.Outcome))

	if err != nil {
		observability.ErrorContext(ctx, "Build failed", logfields.Error(err))
		return bs.Report, err
	}
	observability.InfoContext(ctx, "Build complete",
		logfields.DurationMS(bs.Report.Duration()),
		logfields.Count(bs.Report.Pages+bs.Report.Listings))
	return bs.Report, nil
}
