package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/config"
	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, body := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	}
}

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Exit(func(int) { t.Fatal("unexpected exit") }), kong.Vars{"version": "test"})
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, ctx
}

func TestCLI_DefaultCommandIsBuild(t *testing.T) {
	_, ctx := parse(t)
	assert.Equal(t, "build", ctx.Command())
}

func TestCLI_BuildFlags(t *testing.T) {
	cli, ctx := parse(t, "build", "--content", "c", "--templates", "tpl", "-o", "out", "--verify-links", "--metrics-file", "m.prom")
	assert.Equal(t, "build", ctx.Command())
	assert.True(t, cli.Build.VerifyLinks)
	assert.True(t, filepath.IsAbs(cli.Build.Content))
	assert.Equal(t, "out", filepath.Base(cli.Build.Output))
	assert.Equal(t, "m.prom", filepath.Base(cli.Build.MetricsFile))
}

func TestCLI_WatchDefaults(t *testing.T) {
	cli, ctx := parse(t, "watch")
	assert.Equal(t, "watch", ctx.Command())
	assert.Equal(t, "300ms", cli.Watch.Debounce.String())
}

func TestRunBuild_WritesSiteAndMetrics(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"content/index.md":      "# Home\n",
		"content/blog/first.md": "# First\n",
		"tpl/content.html":      `{{range $l, $p := .Nav}}<a href="{{$p}}">{{$l}}</a>{{end}}{{.Content}}`,
		"tpl/list.html":         `{{.Title}}{{range .Links}}<a href="{{.Path}}">{{.Label}}</a>{{end}}`,
	})

	cfg := config.Default()
	flags := SourceFlags{
		Content:   filepath.Join(root, "content"),
		Templates: filepath.Join(root, "tpl"),
		Output:    filepath.Join(root, "out"),
	}
	require.NoError(t, flags.Apply(cfg))
	cfg.Build.MetricsFile = filepath.Join(root, "sitegen.prom")

	var progress bytes.Buffer
	report, err := RunBuild(context.Background(), cfg, &progress)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Pages)
	assert.Equal(t, 1, report.Listings)

	assert.FileExists(t, filepath.Join(root, "out", "index.html"))
	assert.FileExists(t, filepath.Join(root, "out", "blog.first.html"))
	assert.FileExists(t, filepath.Join(root, "out", "blog.html"))
	assert.Equal(t, 3, strings.Count(progress.String(), "\n"))

	prom, err := os.ReadFile(cfg.Build.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `sitegen_build_outcomes_total{outcome="success"} 1`)
	assert.Contains(t, string(prom), `sitegen_emitted_files_total{kind="page"} 2`)
}

func TestRunBuild_FailureStillWritesMetrics(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	cfg.Content.Directory = filepath.Join(root, "missing")
	cfg.Templates.Directory = filepath.Join(root, "tpl")
	cfg.Output.Directory = filepath.Join(root, "out")
	cfg.Build.MetricsFile = filepath.Join(root, "sitegen.prom")

	_, err := RunBuild(context.Background(), cfg, &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, 3, ferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))

	prom, err := os.ReadFile(cfg.Build.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `sitegen_build_outcomes_total{outcome="failed"} 1`)
}

func TestLoadConfig_ExplicitMissingFileFails(t *testing.T) {
	cli := &CLI{Config: filepath.Join(t.TempDir(), "custom.yaml")}
	_, err := cli.loadConfig()
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}

func TestLoadConfig_DefaultPathMayBeAbsent(t *testing.T) {
	t.Chdir(t.TempDir())
	cli := &CLI{Config: config.DefaultConfigFile}
	cfg, err := cli.loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultContentDir, cfg.Content.Directory)
}

func TestSourceFlags_RejectOutputOverTemplates(t *testing.T) {
	cfg := config.Default()
	err := SourceFlags{Output: cfg.Templates.Directory}.Apply(cfg)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
}

func TestRunInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitegen.yaml")
	var out bytes.Buffer

	require.NoError(t, RunInit(&out, path, false))
	assert.Contains(t, out.String(), "Initialized successfully")
	assert.FileExists(t, path)

	out.Reset()
	require.Error(t, RunInit(&out, path, false))
	assert.Contains(t, out.String(), "Initialization failed")

	require.NoError(t, RunInit(&out, path, true))
}

func TestLogLevel(t *testing.T) {
	t.Setenv(envLogLevel, "")
	assert.Equal(t, "DEBUG", (&CLI{Verbose: true}).logLevel("error").String())
	assert.Equal(t, "ERROR", (&CLI{}).logLevel("error").String())

	t.Setenv(envLogLevel, "warn")
	assert.Equal(t, "WARN", (&CLI{}).logLevel("error").String())
}
