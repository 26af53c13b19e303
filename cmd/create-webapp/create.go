package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vango-dev/create-webapp/internal/config"
	"github.com/vango-dev/create-webapp/internal/errors"
	"github.com/vango-dev/create-webapp/internal/manifest"
	"github.com/vango-dev/create-webapp/internal/metrics"
	"github.com/vango-dev/create-webapp/internal/provision"
	"github.com/vango-dev/create-webapp/internal/scaffold"
	"github.com/vango-dev/create-webapp/internal/templates"
	"github.com/vango-dev/create-webapp/internal/ui"
)

// maxNameLength is the npm package name limit.
const maxNameLength = 214

type createOptions struct {
	directory string
}

var stageMessages = map[string][2]string{
	scaffold.StageRoot:        {"Creating project directory", "Created project directory"},
	scaffold.StageFolders:     {"Creating folder structure", "Created folder structure"},
	scaffold.StageMaterialize: {"Writing project files", "Wrote project files"},
}

func (a *app) runCreate(cmd *cobra.Command, name string, opts *createOptions) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	defer func() { _ = logger.Sync() }()

	p := ui.New(a.stdout, a.stderr, cfg.NoColor)

	if err := validateProjectName(name); err != nil {
		return err
	}

	target := opts.directory
	if target == "" {
		target = name
	}
	projectDir, err := filepath.Abs(target)
	if err != nil {
		return errors.New("E110").WithPath(target).Wrap(err)
	}

	if err := a.checkTarget(p, projectDir, cfg.Yes); err != nil {
		return err
	}

	resolver, err := a.newResolver(cfg)
	if err != nil {
		return err
	}

	rec := metrics.New(metrics.WithConstLabels(prometheus.Labels{"package_manager": cfg.PackageManager}))
	if cfg.MetricsFile != "" {
		defer func() {
			if err := rec.WriteTextfile(cfg.MetricsFile); err != nil {
				p.Warnf("Could not write metrics to %s: %v", cfg.MetricsFile, err)
			}
		}()
	}

	meta := templates.Metadata{ProjectName: name, TargetDir: projectDir}
	logger.Debug("creating project",
		zap.String("name", meta.ProjectName),
		zap.String("dir", meta.TargetDir),
		zap.String("config", cfg.Path()),
	)

	p.Title(fmt.Sprintf("Creating %s in %s", name, projectDir))

	materializer := scaffold.NewMaterializer(resolver,
		scaffold.WithLogger(logger),
		scaffold.WithMetrics(rec),
		scaffold.WithObserver(func(e scaffold.Event) {
			if cfg.Verbose {
				p.Generatef("%s (%s)", e.Path, e.Source)
			}
		}),
	)

	scaffolder := scaffold.New(scaffold.Config{
		Folders:      manifest.Folders,
		Files:        manifest.Files,
		Materializer: materializer,
		Logger:       logger,
		Metrics:      rec,
		OnStage:      a.stageProgress(p),
	})

	ctx := cmd.Context()
	if err := scaffolder.Run(ctx, meta); err != nil {
		return err
	}

	driver := provision.NewDriver(provision.Options{
		PackageManager: cfg.PackageManager,
		Skip:           cfg.SkipInstall,
		Runner:         a.runner,
		Logger:         logger,
		Metrics:        rec,
		BeforeStep: func(s provision.Step) {
			p.Infof("%s (%s)...", s.Description, s.Command)
		},
		AfterStep: func(r provision.StepResult) {
			reportStep(p, r, cfg.SkipInstall)
		},
	})

	if _, err := driver.Provision(ctx, projectDir); err != nil {
		return err
	}

	printNextSteps(p, name, projectDir, cfg)
	return nil
}

// stageProgress shows a spinner around each scaffold stage.
func (a *app) stageProgress(p *ui.Printer) func(string, func() error) error {
	animate := a.animate != nil && a.animate()
	return func(stage string, run func() error) error {
		msg := stageMessages[stage]
		s := p.Spinner(msg[0], animate)
		s.Start()
		if err := run(); err != nil {
			s.Fail(msg[0])
			return err
		}
		s.Success(msg[1])
		return nil
	}
}

func reportStep(p *ui.Printer, r provision.StepResult, skipInstall bool) {
	switch r.Status {
	case provision.StatusOK:
		p.Successf("Finished %s", r.Name)
	case provision.StatusSkipped:
		if skipInstall {
			return
		}
		p.Warnf("Skipped %s: %v", r.Name, r.Err)
	case provision.StatusFailed:
		p.Errorf("%s failed: %v", r.Name, r.Err)
	}
}

// checkTarget decides what to do when the project directory already has content.
// Existing files that are part of the manifest are overwritten; the user is
// asked first when a terminal is attached.
func (a *app) checkTarget(p *ui.Printer, dir string, yes bool) error {
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) == 0 {
		// Missing directories are created; anything else is reported by the builder.
		return nil
	}

	switch {
	case yes:
		p.Warnf("%s is not empty; existing project files will be overwritten", dir)
		return nil
	case a.interactive != nil && a.interactive():
		ok, err := a.confirm(fmt.Sprintf("%s is not empty. Overwrite existing project files?", dir))
		if err != nil {
			return errors.New("E101").WithPath(dir).Wrap(err)
		}
		if !ok {
			return errors.New("E101").WithPath(dir)
		}
		return nil
	default:
		p.Warnf("%s is not empty; existing project files will be overwritten", dir)
		return nil
	}
}

// validateProjectName checks that name is usable as an npm package name and a directory name.
func validateProjectName(name string) error {
	invalid := func(detail string) error {
		return errors.New("E100").WithPath(name).WithDetail(detail)
	}

	if name == "" {
		return invalid("Project name must not be empty")
	}
	if len(name) > maxNameLength {
		return invalid(fmt.Sprintf("Project name must be at most %d characters", maxNameLength))
	}

	for i, r := range name {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '/' || r == '\\':
			return invalid("Project name must not contain whitespace or path separators")
		case i == 0 && r >= '0' && r <= '9':
			return invalid("Project name must not start with a number")
		case i == 0 && (r == '.' || r == '_'):
			return invalid("Project name must not start with '.' or '_'")
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', strings.ContainsRune("-._~", r):
		default:
			return invalid(fmt.Sprintf("Project name contains invalid character %q", r))
		}
	}
	return nil
}

func printNextSteps(p *ui.Printer, name, projectDir string, cfg *config.Config) {
	fmt.Fprintln(p.Out())
	p.Successf("Created %s", name)

	p.Title("To get started:")
	p.Command("cd " + displayPath(projectDir))
	if cfg.SkipInstall {
		p.Command(cfg.PackageManager + " install")
	}
	p.Command(cfg.PackageManager + " run dev")
	fmt.Fprintln(p.Out())
}

// displayPath returns dir relative to the working directory when it is below it.
func displayPath(dir string) string {
	wd, err := os.Getwd()
	if err != nil {
		return dir
	}
	rel, err := filepath.Rel(wd, dir)
	if err != nil || strings.HasPrefix(rel, "..") {
		return dir
	}
	return rel
}
