// Package pipeline provides the core resolution pipeline for nugraph.
//
// This package implements the mode dispatch → metadata source → graph
// builder flow shared by the CLI and the HTTP API. By centralizing this
// logic, both entry points behave identically for the same inputs.
//
// # Access Modes
//
// A resolution runs in one of three modes:
//
//   - online: one registry fetch returning the root's direct dependencies
//   - test: full transitive resolution against a repository file
//   - offline: reserved; currently yields an empty result
//
// # Usage
//
// Create a Runner and execute a resolution:
//
//	runner := pipeline.NewRunner(backend, logger)
//	opts := pipeline.Options{
//	    Package: "A",
//	    Version: "1.0.0",
//	    Mode:    pipeline.ModeTest,
//	    Repo:    "testdata/repo.txt",
//	}
//	result, err := runner.Resolve(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, pkg := range result.Graph.Packages() {
//	    ...
//	}
package pipeline

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nugraph/nugraph/pkg/cache"
	"github.com/nugraph/nugraph/pkg/errors"
	"github.com/nugraph/nugraph/pkg/graph"
	"github.com/nugraph/nugraph/pkg/integrations/nuget"
)

// =============================================================================
// Access Mode
// =============================================================================

// Mode selects how package metadata is obtained during a resolution.
// The zero value is ModeOnline.
type Mode int

const (
	// ModeOnline fetches the root's direct dependencies from a registry
	// endpoint. Single-level only: registry results are not resolved
	// transitively because version ranges would need resolving first.
	ModeOnline Mode = iota

	// ModeOffline is reserved for resolution against a local package store.
	// It is accepted and yields an empty result.
	ModeOffline

	// ModeTest resolves the full transitive graph from a repository file.
	ModeTest
)

// ParseMode converts a mode flag value into a Mode. The match is
// case-insensitive and ignores surrounding whitespace.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "online":
		return ModeOnline, nil
	case "offline":
		return ModeOffline, nil
	case "test":
		return ModeTest, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidMode, "mode must be one of: online, offline, test")
}

// String returns the flag spelling of the mode.
func (m Mode) String() string {
	switch m {
	case ModeOnline:
		return "online"
	case ModeOffline:
		return "offline"
	case ModeTest:
		return "test"
	}
	return "unknown"
}

// MarshalJSON encodes the mode as its flag spelling.
func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes a mode from its flag spelling.
func (m *Mode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// =============================================================================
// Options - Resolution Configuration
// =============================================================================

// Options contains all configuration for one resolution.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Package is the root package identifier to resolve.
	Package string `json:"package"`

	// Version is the package version; required in online mode, where it
	// selects the metadata document to fetch.
	Version string `json:"version,omitempty"`

	// Repo is the registry endpoint URL (online mode, empty for the
	// public registry) or the repository file path (test mode).
	Repo string `json:"repo,omitempty"`

	// Mode selects the metadata source.
	Mode Mode `json:"mode"`

	// Refresh bypasses the document cache for registry fetches.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	CacheTTL time.Duration `json:"-"`
	Logger   *log.Logger   `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	o.Package = strings.TrimSpace(o.Package)
	o.Version = strings.TrimSpace(o.Version)
	o.Repo = strings.TrimSpace(o.Repo)

	if err := errors.ValidatePackageName(o.Package); err != nil {
		return err
	}

	switch o.Mode {
	case ModeOnline:
		if err := errors.ValidateVersion(o.Version); err != nil {
			return err
		}
		if o.Repo != "" {
			if err := errors.ValidateEndpointURL(o.Repo); err != nil {
				return err
			}
		}
	case ModeTest:
		if o.Repo == "" {
			return errors.New(errors.ErrCodeInvalidRepo, "repository file path cannot be empty in test mode")
		}
	case ModeOffline:
		// Nothing to resolve against; no further requirements.
	default:
		return errors.New(errors.ErrCodeInvalidMode, "mode must be one of: online, offline, test")
	}

	if o.CacheTTL == 0 {
		o.CacheTTL = cache.TTLDocument
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of one resolution.
type Result struct {
	// Root is the requested package identifier.
	Root string

	// Version is the requested version (online mode only).
	Version string

	// Mode is the access mode the resolution ran under.
	Mode Mode

	// Graph is the transitive dependency graph. Populated in test mode;
	// empty (never nil) in offline mode; nil in online mode.
	Graph *graph.Graph

	// Cycles lists dependency cycles in detection order (test mode).
	Cycles []graph.Cycle

	// Direct lists the root's direct dependencies with their version
	// constraints (online mode).
	Direct []nuget.Dependency

	// Stats contains timing and size information.
	Stats Stats
}

// AsGraph returns the resolution as an adjacency graph. Test and offline
// runs return their graph directly; online runs synthesize a single-level
// graph holding the root and its direct dependencies. Exporters and
// renderers use this so every mode produces the same document shape.
func (r *Result) AsGraph() *graph.Graph {
	if r.Graph != nil {
		return r.Graph
	}
	ids := make([]string, len(r.Direct))
	for i, d := range r.Direct {
		ids[i] = d.ID
	}
	g := graph.New()
	g.Record(r.Root, ids)
	return g
}

// Stats contains resolution statistics.
type Stats struct {
	NodeCount   int
	EdgeCount   int
	ResolveTime time.Duration
}
