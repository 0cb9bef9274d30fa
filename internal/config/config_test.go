package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "src/content", cfg.Content.Directory)
	assert.Equal(t, ".assets", cfg.Content.AssetDir)
	assert.Equal(t, ".md", cfg.Content.Extension)
	assert.Equal(t, "index", cfg.Content.IndexName)
	assert.Equal(t, "Home", cfg.Content.HomeLabel)
	assert.Equal(t, "src/templating", cfg.Templates.Directory)
	assert.Equal(t, "content.html", cfg.Templates.Page)
	assert.Equal(t, "list.html", cfg.Templates.List)
	assert.Equal(t, []string{".js", ".css"}, cfg.Templates.StaticExtensions)
	assert.Equal(t, ".", cfg.Output.Directory)
	assert.Equal(t, ".html", cfg.Output.Extension)
	assert.Equal(t, ".", cfg.Output.Separator)
	assert.Equal(t, string(LogLevelInfo), cfg.Logging.Level)
	assert.Equal(t, string(LogFormatText), cfg.Logging.Format)
	require.NoError(t, cfg.Validate())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
content:
  directory: site/pages
output:
  directory: public
markdown:
  gfm: true
logging:
  level: DEBUG
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "site/pages", cfg.Content.Directory)
	assert.Equal(t, "public", cfg.Output.Directory)
	assert.True(t, cfg.Markdown.GFM)
	assert.Equal(t, "content.html", cfg.Templates.Page)
	assert.Equal(t, string(LogLevelDebug), cfg.Logging.Level)
	assert.Equal(t, filepath.Join("site/pages", ".assets"), cfg.AssetSource())
	assert.Equal(t, filepath.Join("public", ".assets"), cfg.AssetTarget())
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("SITEGEN_TEST_OUT", "dist")
	path := writeConfig(t, "output:\n  directory: ${SITEGEN_TEST_OUT}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dist", cfg.Output.Directory)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "content: [unclosed"))
		require.Error(t, err)
		assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
	})

	t.Run("invalid separator", func(t *testing.T) {
		_, err := Load(writeConfig(t, "output:\n  separator: \"/\"\n"))
		require.Error(t, err)
		assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
	})

	t.Run("output is the template directory", func(t *testing.T) {
		_, err := Load(writeConfig(t, "templates:\n  directory: web\noutput:\n  directory: ./web/\n"))
		require.Error(t, err)
		assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
	})

	t.Run("extension without dot", func(t *testing.T) {
		_, err := Load(writeConfig(t, "content:\n  extension: md\n"))
		require.Error(t, err)
		assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
	})
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestGeneratedExtensions(t *testing.T) {
	assert.Equal(t, []string{".html", ".js", ".css"}, Default().GeneratedExtensions())
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFile)

	require.NoError(t, Init(path, false))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Markdown.GFM)
	assert.True(t, cfg.Build.VerifyLinks)

	err = Init(path, false)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))

	require.NoError(t, Init(path, true))
}

func TestNormalizeLogging(t *testing.T) {
	assert.Equal(t, LogLevelWarn, NormalizeLogLevel(" Warning "))
	assert.Equal(t, LogLevelInfo, NormalizeLogLevel("verbose"))
	assert.Equal(t, LogFormatJSON, NormalizeLogFormat("JSON"))
	assert.Equal(t, LogFormatText, NormalizeLogFormat(""))
}
