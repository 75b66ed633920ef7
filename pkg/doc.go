// Package pkg provides the core libraries for nugraph dependency resolution.
//
// # Overview
//
// nugraph resolves package dependency graphs from a NuGet feed or a local
// repository file and renders them as diagrams or machine-readable
// documents. The pkg directory is organized into five main areas:
//
//  1. [deps] - Domain logic (graph building, repository files)
//  2. [graph] - The dependency graph structure and cycle type
//  3. [integrations] - External API clients (NuGet flat-container feeds)
//  4. [pipeline] - Orchestration (validate → resolve → collect)
//  5. [render] / [io] - Output (DOT, SVG, PDF, PNG, JSON documents)
//
// # Architecture
//
// The typical data flow through nugraph:
//
//	NuGet Feed / Repository File
//	         ↓
//	    [deps] package (traverse direct dependencies)
//	         ↓
//	    [graph] package (adjacency + cycles)
//	         ↓
//	    [render] or [io] package (diagram or document)
//
// # Quick Start
//
// Resolve a repository file and render the graph:
//
//	import (
//	    "context"
//	    "github.com/nugraph/nugraph/pkg/pipeline"
//	    "github.com/nugraph/nugraph/pkg/render"
//	)
//
//	runner := pipeline.NewRunner(nil, nil)
//	result, _ := runner.Resolve(context.Background(), pipeline.Options{
//	    Package: "A",
//	    Repo:    "repo.txt",
//	    Mode:    pipeline.ModeTest,
//	})
//	dot := render.ToDOT(result, render.Options{})
//	svg, _ := render.RenderSVG(dot)
//
// # Main Packages
//
// [deps] - Deterministic transitive graph building over any direct-dependency
// source, with cycle detection. [deps/repofile] parses the line-oriented
// repository file format used in test mode.
//
// [graph] - The package-to-dependencies adjacency structure shared by every
// resolution mode, plus the Cycle path type.
//
// [integrations] - Shared HTTP client with caching, retry, and fetch hooks.
// [integrations/nuget] speaks the NuGet v3 flat-container protocol and
// parses nuspec documents.
//
// [pipeline] - Mode dispatch and option validation; the single entry point
// used by the CLI and the HTTP API.
//
// [render] - DOT generation and Graphviz-based rendering to SVG, PNG, JPG,
// and PDF. [io] - The exported JSON graph document format.
//
// [cache] - File, Redis, and null cache backends for registry documents.
// [errors] - The coded error taxonomy shared across all packages.
// [httputil] - Transport-level retry with exponential backoff.
// [observability] - Pluggable hooks for resolutions, fetches, and caching.
// [buildinfo] - Version metadata stamped at build time.
//
// [deps]: https://pkg.go.dev/github.com/nugraph/nugraph/pkg/deps
// [deps/repofile]: https://pkg.go.dev/github.com/nugraph/nugraph/pkg/deps/repofile
// [graph]: https://pkg.go.dev/github.com/nugraph/nugraph/pkg/graph
// [integrations]: https://pkg.go.dev/github.com/nugraph/nugraph/pkg/integrations
// [integrations/nuget]: https://pkg.go.dev/github.com/nugraph/nugraph/pkg/integrations/nuget
// [pipeline]: https://pkg.go.dev/github.com/nugraph/nugraph/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/nugraph/nugraph/pkg/render
// [io]: https://pkg.go.dev/github.com/nugraph/nugraph/pkg/io
// [cache]: https://pkg.go.dev/github.com/nugraph/nugraph/pkg/cache
// [errors]: https://pkg.go.dev/github.com/nugraph/nugraph/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/nugraph/nugraph/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/nugraph/nugraph/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/nugraph/nugraph/pkg/buildinfo
package pkg
