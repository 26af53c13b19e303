package scaffold

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/vango-dev/create-webapp/internal/errors"
	"github.com/vango-dev/create-webapp/internal/metrics"
	"github.com/vango-dev/create-webapp/internal/templates"
)

const tracerName = "github.com/vango-dev/create-webapp/internal/scaffold"

// Stage names used for spans, metrics, and progress hooks.
const (
	StageRoot        = "root"
	StageFolders     = "folders"
	StageMaterialize = "materialize"
)

// Config configures a Scaffolder.
type Config struct {
	// Folders is the folder skeleton to create.
	Folders []string

	// Files is the file manifest to materialize.
	Files []string

	// Materializer writes the files.
	Materializer *Materializer

	// Logger receives diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger

	// Metrics records stage durations. May be nil.
	Metrics *metrics.Recorder

	// OnStage, if set, wraps each stage; it must call run exactly once and
	// return its error. The CLI uses it to drive a spinner.
	OnStage func(stage string, run func() error) error
}

// Scaffolder creates the project root, the folder skeleton, and the files.
type Scaffolder struct {
	cfg    Config
	tracer trace.Tracer
}

// New creates a Scaffolder.
func New(cfg Config) *Scaffolder {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.OnStage == nil {
		cfg.OnStage = func(_ string, run func() error) error { return run() }
	}
	return &Scaffolder{
		cfg:    cfg,
		tracer: otel.Tracer(tracerName),
	}
}

// Run generates the project described by meta under meta.TargetDir.
func (s *Scaffolder) Run(ctx context.Context, meta templates.Metadata) error {
	ctx, span := s.tracer.Start(ctx, "scaffold.Run", trace.WithAttributes(
		attribute.String("project.name", meta.ProjectName),
		attribute.String("project.dir", meta.TargetDir),
	))
	defer span.End()

	stages := []struct {
		name string
		run  func(context.Context) error
	}{
		{StageRoot, func(context.Context) error {
			return EnsureFolders(meta.TargetDir, []string{"."})
		}},
		{StageFolders, func(context.Context) error {
			if err := EnsureFolders(meta.TargetDir, s.cfg.Folders); err != nil {
				return err
			}
			s.cfg.Metrics.FoldersEnsured(len(s.cfg.Folders))
			return nil
		}},
		{StageMaterialize, func(ctx context.Context) error {
			return s.cfg.Materializer.Materialize(ctx, meta.TargetDir, s.cfg.Files, meta)
		}},
	}

	for _, stage := range stages {
		if err := s.runStage(ctx, stage.name, stage.run); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

func (s *Scaffolder) runStage(ctx context.Context, name string, run func(context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, "scaffold."+name)
	defer span.End()

	start := time.Now()
	err := s.cfg.OnStage(name, func() error { return run(ctx) })
	elapsed := time.Since(start)

	s.cfg.Metrics.ObserveStage(name, elapsed)
	s.cfg.Logger.Debug("stage finished",
		zap.String("stage", name),
		zap.Duration("elapsed", elapsed),
		zap.Error(err),
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if ce, ok := errors.As(err); ok {
			span.SetAttributes(attribute.String("error.code", ce.Code))
		}
	}
	return err
}
