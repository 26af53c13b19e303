package templates

import (
	"context"
	stderrors "errors"
	"io/fs"

	"github.com/vango-dev/create-webapp/internal/errors"
)

// DefaultAPIURL is the backend URL written into generated environment files.
const DefaultAPIURL = "http://localhost:3001"

// Metadata describes the project being generated.
type Metadata struct {
	// ProjectName is embedded into generated content (package name, page title, env file).
	ProjectName string

	// TargetDir is the directory the project is written to.
	TargetDir string
}

// Source identifies where resolved content came from.
type Source int

const (
	// SourceBundled means the content was copied from a bundled asset.
	SourceBundled Source = iota + 1

	// SourceSynthetic means the content was produced by a generator.
	SourceSynthetic
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceBundled:
		return "bundled"
	case SourceSynthetic:
		return "synthetic"
	default:
		return "unknown"
	}
}

// Content is the resolved content of one manifest entry.
type Content struct {
	// Path is the slash-separated manifest entry.
	Path string

	// Data is the file content.
	Data []byte

	// Source is the variant that produced Data.
	Source Source

	// Origin names the asset source or "generator".
	Origin string
}

// Resolver maps manifest entries to file content.
type Resolver struct {
	assets     []AssetSource
	generators map[string]Generator
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithOverlay adds an asset source that is consulted before the embedded assets.
// Overlays are consulted in the order they are added.
func WithOverlay(src AssetSource) Option {
	return func(r *Resolver) {
		r.assets = append(r.assets, src)
	}
}

// WithGenerators replaces the generator table.
func WithGenerators(g map[string]Generator) Option {
	return func(r *Resolver) {
		r.generators = g
	}
}

// NewResolver creates a Resolver backed by the embedded assets and the builtin generators.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		generators: Generators(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.assets = append(r.assets, Embedded())
	return r
}

// Resolve returns the content for entry.
// Bundled assets take precedence over generators.
func (r *Resolver) Resolve(ctx context.Context, entry string, meta Metadata) (*Content, error) {
	for _, src := range r.assets {
		data, err := src.ReadAsset(ctx, entry)
		if err == nil {
			return &Content{Path: entry, Data: data, Source: SourceBundled, Origin: src.String()}, nil
		}
		if !stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.New("E121").
				WithPath(entry).
				WithDetail("Template source: " + src.String()).
				Wrap(err)
		}
	}

	gen, ok := r.generators[entry]
	if !ok {
		return nil, errors.New("E120").WithPath(entry)
	}

	data, err := gen(meta)
	if err != nil {
		return nil, errors.New("E122").WithPath(entry).Wrap(err)
	}
	return &Content{Path: entry, Data: data, Source: SourceSynthetic, Origin: "generator"}, nil
}

// ResolveAll resolves every entry, stopping at the first error.
func (r *Resolver) ResolveAll(ctx context.Context, entries []string, meta Metadata) ([]*Content, error) {
	contents := make([]*Content, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c, err := r.Resolve(ctx, entry, meta)
		if err != nil {
			return nil, err
		}
		contents = append(contents, c)
	}
	return contents, nil
}

// Lookup reports which variant serves entry and its origin without running
// generators. Asset sources are read, so remote overlays are consulted.
func (r *Resolver) Lookup(ctx context.Context, entry string) (Source, string, error) {
	for _, src := range r.assets {
		_, err := src.ReadAsset(ctx, entry)
		if err == nil {
			return SourceBundled, src.String(), nil
		}
		if !stderrors.Is(err, fs.ErrNotExist) {
			return 0, "", errors.New("E121").WithPath(entry).Wrap(err)
		}
	}
	if _, ok := r.generators[entry]; ok {
		return SourceSynthetic, "generator", nil
	}
	return 0, "", errors.New("E120").WithPath(entry)
}

// Check verifies that every entry is resolvable.
func (r *Resolver) Check(ctx context.Context, entries []string) error {
	for _, entry := range entries {
		if _, _, err := r.Lookup(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}
