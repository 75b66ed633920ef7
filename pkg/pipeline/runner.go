package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nugraph/nugraph/pkg/cache"
	"github.com/nugraph/nugraph/pkg/deps"
	"github.com/nugraph/nugraph/pkg/deps/repofile"
	"github.com/nugraph/nugraph/pkg/graph"
	"github.com/nugraph/nugraph/pkg/integrations/nuget"
	"github.com/nugraph/nugraph/pkg/observability"
)

// Runner executes resolutions. It holds the resources shared across runs:
// the document cache backend and a logger. A single Runner serves any number
// of Resolve calls; the CLI creates one per invocation, the API server one
// per process.
type Runner struct {
	// Cache is the document cache backend for registry fetches.
	Cache cache.Cache

	// Logger is the fallback logger for runs whose Options carry none.
	Logger *log.Logger
}

// NewRunner creates a Runner. A nil backend disables caching and a nil
// logger falls back to the package default.
func NewRunner(backend cache.Cache, logger *log.Logger) *Runner {
	if backend == nil {
		backend = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: backend, Logger: logger}
}

// Resolve runs one resolution according to opts. The access mode selects
// the metadata source; see the package documentation for what each mode
// produces.
func (r *Runner) Resolve(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		Root:    opts.Package,
		Version: opts.Version,
		Mode:    opts.Mode,
	}

	observability.Resolution().OnResolveStart(ctx, opts.Mode.String(), opts.Package)
	start := time.Now()
	var resolveErr error
	switch opts.Mode {
	case ModeTest:
		resolveErr = r.resolveTest(opts, result)
	case ModeOnline:
		resolveErr = r.resolveOnline(ctx, opts, result)
	case ModeOffline:
		opts.Logger.Warn("offline mode is not implemented; returning empty result")
		result.Graph = graph.New()
	}
	result.Stats.ResolveTime = time.Since(start)

	if resolveErr != nil {
		observability.Resolution().OnResolveComplete(ctx, opts.Mode.String(), opts.Package, 0, result.Stats.ResolveTime, resolveErr)
		return nil, resolveErr
	}

	if result.Graph != nil {
		result.Stats.NodeCount = result.Graph.Len()
		result.Stats.EdgeCount = result.Graph.EdgeCount()
	} else {
		result.Stats.EdgeCount = len(result.Direct)
	}
	observability.Resolution().OnResolveComplete(ctx, opts.Mode.String(), opts.Package, result.Stats.NodeCount, result.Stats.ResolveTime, nil)

	opts.Logger.Info("resolution complete",
		"package", opts.Package,
		"mode", opts.Mode,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.ResolveTime)

	return result, nil
}

// resolveTest loads the repository file and walks the transitive graph.
// No context parameter: the source is in memory once loaded and the
// traversal does not block.
func (r *Runner) resolveTest(opts Options, result *Result) error {
	repo, err := repofile.Load(opts.Repo)
	if err != nil {
		return err
	}
	opts.Logger.Debug("repository loaded", "path", opts.Repo, "packages", repo.Len())

	built := deps.Build(opts.Package, repo, deps.Options{
		Logger: func(format string, args ...any) {
			opts.Logger.Debugf(format, args...)
		},
	})
	result.Graph = built.Graph
	result.Cycles = built.Cycles
	return nil
}

// resolveOnline fetches the root's direct dependencies from the registry.
// Single-level: registry documents declare version ranges, not pinned
// versions, so descending further would require a range resolver.
func (r *Runner) resolveOnline(ctx context.Context, opts Options, result *Result) error {
	client := nuget.NewClient(r.Cache, opts.CacheTTL)
	direct, err := client.FetchDependencies(ctx, opts.Package, opts.Version, opts.Repo, opts.Refresh)
	if err != nil {
		return err
	}
	result.Direct = direct
	return nil
}

// applyLogger fills in the runner's logger for runs that carry none, so
// per-run loggers (the CLI's verbose flag) still win.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// Close releases the runner's cache backend.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
