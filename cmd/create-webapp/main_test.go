package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/create-webapp/internal/errors"
	"github.com/vango-dev/create-webapp/internal/manifest"
	"github.com/vango-dev/create-webapp/internal/provision"
)

// fakeRunner records commands and returns scripted exit codes by executable name.
type fakeRunner struct {
	calls []provision.Command
	codes map[string]int
}

func (f *fakeRunner) Run(_ context.Context, c provision.Command) (provision.ExitStatus, error) {
	f.calls = append(f.calls, c)
	return provision.ExitStatus{Code: f.codes[c.Name]}, nil
}

type fakeS3 struct {
	objects map[string]string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

type testApp struct {
	*app
	out    *bytes.Buffer
	errOut *bytes.Buffer
	runner *fakeRunner

	confirmed []string
	answer    bool
	tty       bool
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	// Keep a config file or environment of the developer out of the tests.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	ta := &testApp{
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
		runner: &fakeRunner{codes: map[string]int{}},
	}
	ta.app = &app{
		stdout:      ta.out,
		stderr:      ta.errOut,
		runner:      ta.runner,
		interactive: func() bool { return ta.tty },
		animate:     func() bool { return false },
		confirm: func(msg string) (bool, error) {
			ta.confirmed = append(ta.confirmed, msg)
			return ta.answer, nil
		},
	}
	return ta
}

func (ta *testApp) run(args ...string) error {
	cmd := ta.rootCmd()
	cmd.SetArgs(append(args, "--no-color"))
	cmd.SetOut(ta.out)
	cmd.SetErr(ta.errOut)
	return cmd.Execute()
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestCreate_EndToEnd(t *testing.T) {
	ta := newTestApp(t)
	target := filepath.Join(t.TempDir(), "demo")

	require.NoError(t, ta.run("demo", "--directory", target))

	for _, dir := range manifest.Folders {
		info, err := os.Stat(filepath.Join(target, filepath.FromSlash(dir)))
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
	}
	for _, file := range manifest.Files {
		assert.FileExists(t, filepath.Join(target, filepath.FromSlash(file)))
	}

	assert.Contains(t, readFile(t, filepath.Join(target, "index.html")), "<title>demo</title>")
	assert.Contains(t, readFile(t, filepath.Join(target, ".env")), "VITE_APP_NAME=demo")
	assert.Contains(t, readFile(t, filepath.Join(target, "package.json")), `"name": "demo"`)

	require.Len(t, ta.runner.calls, 2)
	assert.Equal(t, provision.Command{Name: "npm", Args: []string{"install"}, Dir: target}, ta.runner.calls[0])
	assert.Equal(t, provision.Command{Name: "npx", Args: []string{"tailwindcss", "init", "-p"}, Dir: target}, ta.runner.calls[1])

	out := ta.out.String()
	assert.Contains(t, out, "✓ Wrote project files")
	assert.Contains(t, out, "✓ Created demo")
	assert.Contains(t, out, "npm run dev")
	assert.NotContains(t, out, "npm install\n")
}

func TestCreate_DefaultDirectoryIsProjectName(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.run("demo", "--skip-install"))

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(wd, "demo", "package.json"))
	assert.Contains(t, ta.out.String(), "cd demo")
}

func TestCreate_DirectoryKeepsProjectName(t *testing.T) {
	ta := newTestApp(t)
	target := filepath.Join(t.TempDir(), "elsewhere")

	require.NoError(t, ta.run("acme-app", "-d", target, "--skip-install"))

	assert.Contains(t, readFile(t, filepath.Join(target, "index.html")), "<title>acme-app</title>")
	assert.True(t, strings.HasPrefix(readFile(t, filepath.Join(target, "README.md")), "# acme-app"))
}

func TestCreate_InstallFailure(t *testing.T) {
	ta := newTestApp(t)
	ta.runner.codes["npm"] = 1
	target := filepath.Join(t.TempDir(), "demo")

	err := ta.run("demo", "-d", target)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, "E130"))

	// Generated files stay in place.
	assert.FileExists(t, filepath.Join(target, "package.json"))
	assert.Len(t, ta.runner.calls, 1)
	assert.Contains(t, ta.errOut.String(), "install failed")
}

func TestCreate_TailwindFailureIsNotFatal(t *testing.T) {
	ta := newTestApp(t)
	ta.runner.codes["npx"] = 1

	require.NoError(t, ta.run("demo", "-d", filepath.Join(t.TempDir(), "demo")))
	assert.Contains(t, ta.errOut.String(), "Skipped tailwind")
	assert.Contains(t, ta.out.String(), "✓ Created demo")
}

func TestCreate_SkipInstall(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.run("demo", "-d", filepath.Join(t.TempDir(), "demo"), "--skip-install"))
	assert.Empty(t, ta.runner.calls)
	assert.Contains(t, ta.out.String(), "npm install")
	assert.Empty(t, ta.errOut.String())
}

func TestCreate_PackageManager(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.run("demo", "-d", filepath.Join(t.TempDir(), "demo"), "--package-manager", "pnpm"))
	require.Len(t, ta.runner.calls, 2)
	assert.Equal(t, "pnpm", ta.runner.calls[0].Name)
	assert.Equal(t, []string{"exec", "tailwindcss", "init", "-p"}, ta.runner.calls[1].Args)
	assert.Contains(t, ta.out.String(), "pnpm run dev")
}

func TestCreate_InvalidName(t *testing.T) {
	names := []string{"", "My-App", "my app", "1app", ".hidden", "_private", "a/b", `a\b`, "app!", strings.Repeat("a", 215)}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			ta := newTestApp(t)
			err := ta.run(name, "-d", filepath.Join(t.TempDir(), "x"))
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, "E100"))
			assert.Empty(t, ta.runner.calls)
		})
	}
}

func TestValidateProjectName(t *testing.T) {
	for _, name := range []string{"demo", "acme-app", "a.b", "my_app", "x~y", "app2"} {
		assert.NoError(t, validateProjectName(name), name)
	}
}

func TestCreate_NonEmptyTarget(t *testing.T) {
	seed := func(t *testing.T) string {
		dir := filepath.Join(t.TempDir(), "demo")
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("old"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep"), 0644))
		return dir
	}

	t.Run("declined", func(t *testing.T) {
		ta := newTestApp(t)
		ta.tty = true
		dir := seed(t)

		err := ta.run("demo", "-d", dir, "--skip-install")
		assert.True(t, errors.HasCode(err, "E101"))
		assert.Len(t, ta.confirmed, 1)
		assert.Equal(t, "old", readFile(t, filepath.Join(dir, "index.html")))
		assert.NoFileExists(t, filepath.Join(dir, "package.json"))
	})

	t.Run("accepted", func(t *testing.T) {
		ta := newTestApp(t)
		ta.tty = true
		ta.answer = true
		dir := seed(t)

		require.NoError(t, ta.run("demo", "-d", dir, "--skip-install"))
		assert.Contains(t, readFile(t, filepath.Join(dir, "index.html")), "<title>demo</title>")
		assert.Equal(t, "keep", readFile(t, filepath.Join(dir, "notes.txt")))
	})

	t.Run("yes flag", func(t *testing.T) {
		ta := newTestApp(t)
		ta.tty = true
		dir := seed(t)

		require.NoError(t, ta.run("demo", "-d", dir, "--skip-install", "--yes"))
		assert.Empty(t, ta.confirmed)
		assert.Contains(t, ta.errOut.String(), "is not empty")
	})

	t.Run("non-interactive", func(t *testing.T) {
		ta := newTestApp(t)
		dir := seed(t)

		require.NoError(t, ta.run("demo", "-d", dir, "--skip-install"))
		assert.Empty(t, ta.confirmed)
		assert.Contains(t, ta.errOut.String(), "is not empty")
		assert.Contains(t, readFile(t, filepath.Join(dir, "index.html")), "<title>demo</title>")
	})
}

func TestCreate_TemplatesDir(t *testing.T) {
	ta := newTestApp(t)
	overlay := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(overlay, "index.html"), []byte("<custom/>"), 0644))
	target := filepath.Join(t.TempDir(), "demo")

	require.NoError(t, ta.run("demo", "-d", target, "--templates-dir", overlay, "--skip-install"))
	assert.Equal(t, "<custom/>", readFile(t, filepath.Join(target, "index.html")))
}

func TestCreate_TemplatesDirMissing(t *testing.T) {
	ta := newTestApp(t)

	err := ta.run("demo", "-d", filepath.Join(t.TempDir(), "demo"), "--templates-dir", filepath.Join(t.TempDir(), "nope"))
	assert.True(t, errors.HasCode(err, "E141"))
}

func TestCreate_TemplatesS3(t *testing.T) {
	ta := newTestApp(t)
	ta.s3Client = &fakeS3{objects: map[string]string{"webapp/src/App.tsx": "export default 1\n"}}
	target := filepath.Join(t.TempDir(), "demo")

	require.NoError(t, ta.run("demo", "-d", target, "--templates-s3", "s3://bucket/webapp", "--skip-install"))
	assert.Equal(t, "export default 1\n", readFile(t, filepath.Join(target, "src", "App.tsx")))
}

func TestCreate_MetricsFile(t *testing.T) {
	ta := newTestApp(t)
	metricsFile := filepath.Join(t.TempDir(), "run.prom")

	require.NoError(t, ta.run("demo", "-d", filepath.Join(t.TempDir(), "demo"), "--metrics-file", metricsFile))

	data := readFile(t, metricsFile)
	assert.Contains(t, data, `create_webapp_files_written_total{package_manager="npm",source="bundled"}`)
	assert.Contains(t, data, `create_webapp_files_written_total{package_manager="npm",source="synthetic"} 12`)
	assert.Contains(t, data, `create_webapp_provision_steps_total{package_manager="npm",status="ok",step="install"} 1`)
}

func TestCreate_ConfigFile(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, os.WriteFile("create-webapp.yaml", []byte("package_manager: yarn\n"), 0644))

	require.NoError(t, ta.run("demo", "-d", filepath.Join(t.TempDir(), "demo")))
	require.NotEmpty(t, ta.runner.calls)
	assert.Equal(t, "yarn", ta.runner.calls[0].Name)
}

func TestFilesCommand(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.run("files"))

	lines := strings.Split(strings.TrimSpace(ta.out.String()), "\n")
	assert.Len(t, lines, len(manifest.Folders)+len(manifest.Files))

	out := ta.out.String()
	assert.Contains(t, out, "folder     src/components/ui/")
	assert.Regexp(t, `synthetic\s+package\.json\s+generator`, out)
	assert.Regexp(t, `bundled\s+src/App\.tsx\s+embedded`, out)
}

func TestFilesCommand_FoldersOnly(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.run("files", "--folders"))
	lines := strings.Split(strings.TrimSpace(ta.out.String()), "\n")
	assert.Len(t, lines, len(manifest.Folders))
}

func TestVersionCommand(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.run("version", "--short"))
	assert.Equal(t, "dev\n", ta.out.String())

	ta = newTestApp(t)
	require.NoError(t, ta.run("version"))
	out := ta.out.String()
	assert.True(t, strings.HasPrefix(out, "create-webapp dev (none, built unknown)\n"), out)
	assert.Contains(t, out, "Template: 13 folders, 31 files (19 bundled, 12 generated)")
}

func TestRoot_RequiresProjectName(t *testing.T) {
	ta := newTestApp(t)
	assert.Error(t, ta.run())
}
