package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/create-webapp/internal/errors"
)

// chdir switches to dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("package-manager", DefaultPackageManager, "")
	fs.Bool("skip-install", false, "")
	fs.String("templates-dir", "", "")
	fs.Bool("yes", false, "")
	return fs
}

func TestNew(t *testing.T) {
	cfg := New()
	assert.Equal(t, DefaultPackageManager, cfg.PackageManager)
	assert.False(t, cfg.SkipInstall)
	assert.Empty(t, cfg.Path())
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, "npm", cfg.PackageManager)
	assert.False(t, cfg.SkipInstall)
	assert.Empty(t, cfg.TemplatesDir)
	assert.Empty(t, cfg.Path())
}

func TestLoad_ConfigFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	yaml := "package_manager: pnpm\nskip_install: true\ntemplates_s3: s3://bucket/webapp\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "create-webapp.yaml"), []byte(yaml), 0644))

	cfg, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, "pnpm", cfg.PackageManager)
	assert.True(t, cfg.SkipInstall)
	assert.Equal(t, "s3://bucket/webapp", cfg.TemplatesS3)
	assert.Equal(t, "create-webapp.yaml", filepath.Base(cfg.Path()))
}

func TestLoad_ExplicitFile(t *testing.T) {
	chdir(t, t.TempDir())
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("package_manager: yarn\n"), 0644))

	cfg, err := Load(nil, path)
	require.NoError(t, err)
	assert.Equal(t, "yarn", cfg.PackageManager)
	assert.Equal(t, path, cfg.Path())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(nil, filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, "E140"))
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("package_manager: [unterminated\n"), 0644))

	_, err := Load(nil, path)
	assert.True(t, errors.HasCode(err, "E140"))
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "create-webapp.yaml"), []byte("package_manager: pnpm\n"), 0644))
	t.Setenv("CREATE_WEBAPP_PACKAGE_MANAGER", "bun")
	t.Setenv("CREATE_WEBAPP_SKIP_INSTALL", "true")

	cfg, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, "bun", cfg.PackageManager)
	assert.True(t, cfg.SkipInstall)
}

func TestLoad_ChangedFlagsWin(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CREATE_WEBAPP_PACKAGE_MANAGER", "bun")
	t.Setenv("CREATE_WEBAPP_TEMPLATES_DIR", "/from/env")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--package-manager", "yarn", "--yes"}))

	cfg, err := Load(flags, "")
	require.NoError(t, err)
	assert.Equal(t, "yarn", cfg.PackageManager)
	assert.True(t, cfg.Yes)
	// Unset flags do not shadow the environment.
	assert.Equal(t, "/from/env", cfg.TemplatesDir)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		code string
	}{
		{"valid", Config{PackageManager: "npm"}, ""},
		{"empty package manager", Config{PackageManager: " "}, "E140"},
		{"package manager path", Config{PackageManager: "/usr/bin/npm"}, "E140"},
		{"bad s3 url", Config{PackageManager: "npm", TemplatesS3: "https://bucket"}, "E141"},
		{"good s3 url", Config{PackageManager: "npm", TemplatesS3: "s3://bucket/p"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.HasCode(err, tt.code), "got %v", err)
		})
	}
}
