package provision

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/vango-dev/create-webapp/internal/errors"
	"github.com/vango-dev/create-webapp/internal/metrics"
)

const tracerName = "github.com/vango-dev/create-webapp/internal/provision"

// DefaultPackageManager is used when none is configured.
const DefaultPackageManager = "npm"

// Step names.
const (
	StepInstall  = "install"
	StepTailwind = "tailwind"
)

// Status is the outcome of a step.
type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Step is one provisioning command.
type Step struct {
	// Name identifies the step in reports.
	Name string

	// Description is shown to the user while the step runs.
	Description string

	// Command is run with the project root as working directory.
	Command Command

	// Required steps abort provisioning when they fail.
	// Optional steps are skipped with a warning instead.
	Required bool
}

// StepResult is the outcome of one step.
type StepResult struct {
	Name   string
	Status Status
	Exit   ExitStatus

	// Err is the failure cause for failed and skipped steps.
	Err error

	Duration time.Duration
}

// Report lists the outcome of every step in order.
type Report struct {
	Steps []StepResult
}

// Step returns the result of the named step.
func (r *Report) Step(name string) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return StepResult{}, false
}

// Failed reports whether any step failed.
func (r *Report) Failed() bool {
	for _, s := range r.Steps {
		if s.Status == StatusFailed {
			return true
		}
	}
	return false
}

// Options configures a Driver.
type Options struct {
	// PackageManager is the executable used to install dependencies (npm, pnpm, yarn, bun).
	PackageManager string

	// Skip marks every step skipped without running anything.
	Skip bool

	// Runner executes commands. Defaults to NewExecRunner().
	Runner Runner

	// Logger receives diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger

	// Metrics records step outcomes. May be nil.
	Metrics *metrics.Recorder

	// BeforeStep is called before a step runs.
	BeforeStep func(Step)

	// AfterStep is called with every step result, including skipped steps.
	AfterStep func(StepResult)
}

// Driver runs the provisioning steps.
type Driver struct {
	opts   Options
	tracer trace.Tracer
}

// NewDriver creates a Driver.
func NewDriver(opts Options) *Driver {
	if opts.PackageManager == "" {
		opts.PackageManager = DefaultPackageManager
	}
	if opts.Runner == nil {
		opts.Runner = NewExecRunner()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Driver{
		opts:   opts,
		tracer: otel.Tracer(tracerName),
	}
}

// Steps returns the steps the driver runs, in order.
func (d *Driver) Steps() []Step {
	return []Step{
		{
			Name:        StepInstall,
			Description: "Installing dependencies",
			Command:     Command{Name: d.opts.PackageManager, Args: []string{"install"}},
			Required:    true,
		},
		{
			Name:        StepTailwind,
			Description: "Setting up Tailwind CSS",
			Command:     tailwindInit(d.opts.PackageManager),
			Required:    false,
		},
	}
}

// tailwindInit returns the Tailwind initializer for a package manager.
func tailwindInit(pm string) Command {
	args := []string{"tailwindcss", "init", "-p"}
	switch pm {
	case "pnpm":
		return Command{Name: "pnpm", Args: append([]string{"exec"}, args...)}
	case "yarn":
		return Command{Name: "yarn", Args: args}
	case "bun":
		return Command{Name: "bunx", Args: args}
	default:
		return Command{Name: "npx", Args: args}
	}
}

// Provision runs every step against root.
// The returned error is non-nil only when a required step failed; the report
// is returned in every case.
func (d *Driver) Provision(ctx context.Context, root string) (*Report, error) {
	ctx, span := d.tracer.Start(ctx, "provision.Provision", trace.WithAttributes(
		attribute.String("project.dir", root),
		attribute.String("package_manager", d.opts.PackageManager),
	))
	defer span.End()

	report := &Report{}
	for _, step := range d.Steps() {
		step.Command.Dir = root

		if d.opts.Skip {
			d.finish(report, StepResult{Name: step.Name, Status: StatusSkipped})
			continue
		}

		result := d.runStep(ctx, step)
		d.finish(report, result)

		if result.Status == StatusFailed {
			err := errors.New("E130").
				WithPath(root).
				WithDetail(fmt.Sprintf("Run '%s' in %s to see the full error.", step.Command, root)).
				Wrap(result.Err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return report, err
		}
	}

	span.SetStatus(codes.Ok, "")
	return report, nil
}

func (d *Driver) runStep(ctx context.Context, step Step) StepResult {
	ctx, span := d.tracer.Start(ctx, "provision."+step.Name, trace.WithAttributes(
		attribute.String("command", step.Command.String()),
		attribute.Bool("required", step.Required),
	))
	defer span.End()

	if d.opts.BeforeStep != nil {
		d.opts.BeforeStep(step)
	}

	start := time.Now()
	exit, err := d.opts.Runner.Run(ctx, step.Command)
	result := StepResult{
		Name:     step.Name,
		Exit:     exit,
		Duration: time.Since(start),
	}

	switch {
	case err == nil && exit.Success():
		result.Status = StatusOK
		span.SetStatus(codes.Ok, "")
		return result
	case err == nil:
		err = fmt.Errorf("%s exited with code %d", step.Command, exit.Code)
	}

	result.Err = err
	result.Status = StatusSkipped
	if step.Required {
		result.Status = StatusFailed
	}
	span.RecordError(err)
	span.SetAttributes(attribute.Int("exit_code", exit.Code))
	return result
}

func (d *Driver) finish(report *Report, result StepResult) {
	report.Steps = append(report.Steps, result)
	d.opts.Metrics.StepFinished(result.Name, string(result.Status))
	d.opts.Logger.Debug("provision step finished",
		zap.String("step", result.Name),
		zap.String("status", string(result.Status)),
		zap.Int("exit_code", result.Exit.Code),
		zap.Duration("elapsed", result.Duration),
		zap.Error(result.Err),
	)
	if d.opts.AfterStep != nil {
		d.opts.AfterStep(result)
	}
}
