package scaffold

import (
	"context"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/vango-dev/create-webapp/internal/errors"
	"github.com/vango-dev/create-webapp/internal/metrics"
	"github.com/vango-dev/create-webapp/internal/templates"
)

// Resolver resolves manifest entries to content.
type Resolver interface {
	// ResolveAll resolves every entry in order, stopping at the first error.
	ResolveAll(ctx context.Context, entries []string, meta templates.Metadata) ([]*templates.Content, error)
}

// Event describes one completed unit of work.
type Event struct {
	// Path is the slash-separated path relative to the project root.
	Path string

	// Source is the content source for files; zero for folders.
	Source templates.Source

	// Size is the number of bytes written for files.
	Size int
}

// Observer is called after each file is written.
type Observer func(Event)

// Materializer writes manifest entries under a project root.
type Materializer struct {
	resolver Resolver
	logger   *zap.Logger
	metrics  *metrics.Recorder
	observer Observer
}

// MaterializerOption configures a Materializer.
type MaterializerOption func(*Materializer)

// WithLogger sets the diagnostic logger.
func WithLogger(l *zap.Logger) MaterializerOption {
	return func(m *Materializer) {
		m.logger = l
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(r *metrics.Recorder) MaterializerOption {
	return func(m *Materializer) {
		m.metrics = r
	}
}

// WithObserver sets a callback invoked after each written file.
func WithObserver(o Observer) MaterializerOption {
	return func(m *Materializer) {
		m.observer = o
	}
}

// NewMaterializer creates a Materializer using resolver for content.
func NewMaterializer(resolver Resolver, opts ...MaterializerOption) *Materializer {
	m := &Materializer{
		resolver: resolver,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Materialize writes every entry of files under root.
//
// All entries are resolved before the first write, so an unresolvable entry
// fails the run without touching the disk. Writes then happen in manifest
// order and stop at the first failure.
func (m *Materializer) Materialize(ctx context.Context, root string, files []string, meta templates.Metadata) error {
	contents, err := m.resolver.ResolveAll(ctx, files, meta)
	if err != nil {
		return err
	}
	for _, c := range contents {
		m.logger.Debug("resolved entry",
			zap.String("entry", c.Path),
			zap.Stringer("source", c.Source),
			zap.String("origin", c.Origin),
		)
	}

	for _, c := range contents {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := m.write(root, c); err != nil {
			return err
		}
	}
	return nil
}

// write stores one resolved entry, replacing whatever is at its path.
func (m *Materializer) write(root string, c *templates.Content) error {
	if dir := path.Dir(c.Path); dir != "." {
		if err := ensureDir(root, dir); err != nil {
			return err
		}
	}

	dest := filepath.Join(root, filepath.FromSlash(c.Path))
	if err := os.WriteFile(dest, c.Data, filePerm); err != nil {
		return errors.New("E111").WithPath(dest).Wrap(err)
	}

	m.logger.Debug("wrote file", zap.String("path", dest), zap.Int("bytes", len(c.Data)))
	m.metrics.FileWritten(c.Source.String(), len(c.Data))
	if m.observer != nil {
		m.observer(Event{Path: c.Path, Source: c.Source, Size: len(c.Data)})
	}
	return nil
}
