// Package nuget provides an HTTP client for NuGet registry metadata.
//
// # Overview
//
// This package fetches package dependency declarations from a NuGet
// flat-container endpoint (https://api.nuget.org by default), the document
// store behind the official NuGet Gallery.
//
// # Usage
//
//	client := nuget.NewClient(backend, 24*time.Hour)  // Cache TTL
//
//	deps, err := client.FetchDependencies(ctx, "serilog", "4.0.0", "", false)  // false = use cache
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, d := range deps {
//	    fmt.Println(d.ID, d.Version)
//	}
//
// # Document URLs
//
// Metadata lives in per-version nuspec documents at
//
//	{endpoint}/{id}/{version}/{id}.nuspec
//
// with the package id lowercased and both id and version percent-encoded.
// When the endpoint host is the public registry (nuget.org or its api/www
// subdomains), the canonical flat-container base is substituted for
// whatever path the user supplied.
//
// # Dependency Extraction
//
// Every dependency element in the nuspec namespace is extracted in document
// order, whether declared flat or inside framework groups. Elements without
// an id attribute are skipped; a missing version constraint defaults to "*".
// Constraints are opaque strings and are never resolved to concrete versions.
//
// # Caching
//
// Responses are cached under the document URL to reduce registry load.
// The cache TTL is set when creating the client. Pass refresh=true to
// [FetchDependencies] to bypass the cache. Errors are never cached:
// transient fetch failures are retried at the transport level, and whatever
// error finally surfaces leaves the cache untouched.
package nuget
