package main

import (
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/vango-dev/create-webapp/internal/config"
	"github.com/vango-dev/create-webapp/internal/errors"
	"github.com/vango-dev/create-webapp/internal/provision"
	"github.com/vango-dev/create-webapp/internal/templates"
)

// app holds the process-level capabilities the commands use.
// Tests replace them to run the CLI without a terminal or Node.js.
type app struct {
	stdout io.Writer
	stderr io.Writer

	// runner executes provisioning commands.
	runner provision.Runner

	// interactive reports whether the user can answer prompts.
	interactive func() bool

	// animate reports whether spinners may redraw the output line.
	animate func() bool

	// confirm asks a yes/no question.
	confirm func(message string) (bool, error)

	// s3Client fetches template overlays; nil builds one from config.
	s3Client templates.ObjectGetter

	// configFile is bound to --config.
	configFile string
}

func newApp() *app {
	return &app{
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		runner:      provision.NewExecRunner(),
		interactive: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
		animate:     func() bool { return term.IsTerminal(int(os.Stdout.Fd())) },
		confirm:     surveyConfirm,
	}
}

func surveyConfirm(message string) (bool, error) {
	ok := false
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}
	if err := survey.AskOne(prompt, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (a *app) rootCmd() *cobra.Command {
	opts := &createOptions{}

	cmd := &cobra.Command{
		Use:   "create-webapp <project-name>",
		Short: "Create a React + TypeScript + Vite web application",
		Long: `create-webapp generates a ready-to-run web application skeleton.

The generated project uses React, TypeScript, Vite, Tailwind CSS, Zustand,
React Router, and i18next. After the files are written, dependencies are
installed and Tailwind CSS is initialized.

Examples:
  create-webapp my-app
  create-webapp my-app --directory ./apps/web
  create-webapp my-app --package-manager pnpm --skip-install`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCreate(cmd, args[0], opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "Config file (default: ./create-webapp.yaml)")
	pf.String("templates-dir", "", "Directory of templates consulted before the bundled ones")
	pf.String("templates-s3", "", "S3 location of templates, as s3://bucket/prefix")
	pf.String("s3-region", "", "Region of the templates bucket")
	pf.String("s3-endpoint", "", "Custom S3 endpoint URL")
	pf.Bool("no-color", false, "Disable colored output")
	pf.BoolP("verbose", "v", false, "Log diagnostics to stderr")

	f := cmd.Flags()
	f.StringVarP(&opts.directory, "directory", "d", "", "Directory to create the project in (default: ./<project-name>)")
	f.String("package-manager", config.DefaultPackageManager, "Package manager used to install dependencies")
	f.Bool("skip-install", false, "Do not install dependencies or initialize Tailwind CSS")
	f.String("metrics-file", "", "Write generation metrics to this file in Prometheus text format")
	f.BoolP("yes", "y", false, "Overwrite a non-empty target directory without asking")

	cmd.AddCommand(
		a.filesCmd(),
		a.versionCmd(),
	)

	return cmd
}

// loadConfig reads the layered configuration and applies the global output settings.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.Flags(), a.configFile)
	if err != nil {
		return nil, err
	}
	if cfg.NoColor {
		errors.DisableColors()
	}
	return cfg, nil
}

// newLogger returns the diagnostic logger for cfg.
func newLogger(cfg *config.Config) *zap.Logger {
	if !cfg.Verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// newResolver builds the content resolver with the configured overlays.
// The directory overlay is consulted before the S3 overlay.
func (a *app) newResolver(cfg *config.Config) (*templates.Resolver, error) {
	var opts []templates.Option

	if cfg.TemplatesDir != "" {
		info, err := os.Stat(cfg.TemplatesDir)
		if err != nil || !info.IsDir() {
			return nil, errors.New("E141").
				WithPath(cfg.TemplatesDir).
				WithSuggestion("Pass an existing directory to --templates-dir")
		}
		opts = append(opts, templates.WithOverlay(templates.DirSource(cfg.TemplatesDir)))
	}

	if cfg.TemplatesS3 != "" {
		bucket, prefix, err := templates.ParseS3URL(cfg.TemplatesS3)
		if err != nil {
			return nil, err
		}
		client := a.s3Client
		if client == nil {
			client = templates.NewS3Client(cfg.S3Region, cfg.S3Endpoint)
		}
		opts = append(opts, templates.WithOverlay(templates.NewS3Source(client, bucket, prefix)))
	}

	return templates.NewResolver(opts...), nil
}
