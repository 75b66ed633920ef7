// Package integrations provides HTTP clients for package registry APIs.
//
// # Overview
//
// This package contains low-level API clients for fetching package metadata
// from package registries. Each registry has its own subpackage:
//
//   - [nuget]: NuGet Gallery / flat-container endpoints
//
// # Client Pattern
//
// Registry clients follow a consistent pattern:
//
//	client := nuget.NewClient(backend, 24*time.Hour)  // Cache TTL
//	deps, err := client.FetchDependencies(ctx, "serilog", "4.0.0", "", false)
//
// Clients handle:
//   - HTTP requests with a bounded timeout
//   - Response caching (pluggable backend, configurable TTL)
//   - API-specific parsing and normalization
//
// Transient failures (transport errors, 5xx and 429 responses) are retried
// with exponential backoff before an error surfaces; hard failures like 404
// return immediately. Once a fetch error surfaces, the resolution aborts.
//
// # Shared Infrastructure
//
// The [Client] type provides shared HTTP functionality used by registry
// clients, including response caching via [cache.Cache].
//
// # Adding a New Registry
//
// To add support for a new package registry:
//
//  1. Create a subpackage: pkg/integrations/<registry>/
//  2. Define response structs matching the API schema
//  3. Implement a Client with a Fetch method
//  4. Use [NewClient] for HTTP with caching
//
// [nuget]: github.com/nugraph/nugraph/pkg/integrations/nuget
// [cache.Cache]: github.com/nugraph/nugraph/pkg/cache.Cache
package integrations
