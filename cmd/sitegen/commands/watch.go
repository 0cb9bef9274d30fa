package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	SourceFlags `embed:""`
	VerifyLinks bool          `name:"verify-links" help:"Check local links after every build"`
	Debounce    time.Duration `help:"Quiet period before a rebuild starts" default:"300ms"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if w.VerifyLinks {
		cfg.Build.VerifyLinks = true
	}
	if err := w.SourceFlags.Apply(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return RunWatch(ctx, cfg, w.Debounce)
}

// RunWatch performs an initial build and then rebuilds on every settled change
// under the content and template directories until ctx is done. Build failures
// are logged and do not stop watching.
func RunWatch(ctx context.Context, cfg *config.Config, debounce time.Duration) error {
	rebuild := func(ctx context.Context) error {
		_, err := RunBuild(ctx, cfg, os.Stdout)
		return err
	}
	if err := rebuild(ctx); err != nil {
		slog.Error("Initial build failed", logfields.Error(err))
	}

	w := watch.New(
		[]string{cfg.Content.Directory, cfg.Templates.Directory},
		rebuild,
		watch.WithDebounce(debounce),
		watch.WithIgnore(cfg.Output.Directory),
	)
	return w.Run(ctx)
}
