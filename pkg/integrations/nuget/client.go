package nuget

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/nugraph/nugraph/pkg/cache"
	apperrors "github.com/nugraph/nugraph/pkg/errors"
	"github.com/nugraph/nugraph/pkg/integrations"
)

// DefaultEndpoint is the flat-container base URL of the public NuGet registry.
const DefaultEndpoint = "https://api.nuget.org/v3-flatcontainer"

// nuspecNamespace is the XML namespace of nuspec dependency declarations.
const nuspecNamespace = "http://schemas.microsoft.com/packaging/2013/05/nuspec.xsd"

// knownHosts are the public registry hosts for which the canonical
// flat-container endpoint replaces the user-supplied base URL.
var knownHosts = map[string]bool{
	"nuget.org":     true,
	"www.nuget.org": true,
	"api.nuget.org": true,
}

// Dependency is one direct dependency declared by a package: the dependency
// id and an opaque version-constraint string. Constraints are carried through
// for display and are never resolved to concrete versions.
type Dependency struct {
	ID      string `json:"id"`
	Version string `json:"version"`
}

// Client provides access to NuGet package metadata documents.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
}

// NewClient creates a NuGet client with the given cache backend.
//
// Parameters:
//   - backend: Cache backend for document caching (nil disables caching)
//   - cacheTTL: How long documents are cached (typical: 1-24 hours)
//
// The returned Client is safe for concurrent use.
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	return &Client{
		Client: integrations.NewClient(backend, "nuget:", cacheTTL, nil),
	}
}

// FetchDependencies retrieves the direct dependencies declared by one
// package version. The endpoint selects the registry base URL; an empty
// endpoint means the public registry. This is a single-level lookup: the
// returned dependencies are not resolved further.
//
// If refresh is true, the cache is bypassed and a fresh fetch is made.
//
// Returns:
//   - the declared dependencies in document order (possibly empty) on success
//   - a PACKAGE_NOT_FOUND error if the package or version doesn't exist
//   - a NETWORK_ERROR when transport fails or the feed keeps responding
//     with server errors after the retry budget is spent
//   - a MALFORMED_DOCUMENT error if the response is not a parseable nuspec
//
// This method is safe for concurrent use.
func (c *Client) FetchDependencies(ctx context.Context, pkg, version, endpoint string, refresh bool) ([]Dependency, error) {
	docURL := DocumentURL(pkg, version, endpoint)

	var deps []Dependency
	err := c.Cached(ctx, docURL, refresh, &deps, func() error {
		return c.fetch(ctx, docURL, pkg, version, &deps)
	})
	if err != nil {
		return nil, err
	}
	if deps == nil {
		deps = []Dependency{}
	}
	return deps, nil
}

func (c *Client) fetch(ctx context.Context, docURL, pkg, version string, deps *[]Dependency) error {
	body, err := c.GetText(ctx, docURL)
	if err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return apperrors.Wrap(apperrors.ErrCodePackageNotFound, err,
				"package or version not found: %s %s", pkg, version)
		}
		return apperrors.Wrap(apperrors.ErrCodeNetwork, err, "fetching %s", docURL)
	}

	parsed, err := parseNuspec([]byte(body))
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeMalformedDocument, err,
			"parsing nuspec for %s %s", pkg, version)
	}
	*deps = parsed
	return nil
}

// DocumentURL returns the nuspec document URL for a package id and version.
// The id is lowercased per flat-container convention and both id and version
// are percent-encoded. Recognized public registry hosts are redirected to
// [DefaultEndpoint] regardless of the path the user supplied.
func DocumentURL(pkg, version, endpoint string) string {
	base := strings.TrimSuffix(strings.TrimSpace(endpoint), "/")
	if base == "" || isKnownHost(base) {
		base = DefaultEndpoint
	}
	id := url.PathEscape(strings.ToLower(strings.TrimSpace(pkg)))
	ver := url.PathEscape(strings.TrimSpace(version))
	return fmt.Sprintf("%s/%s/%s/%s.nuspec", base, id, ver, id)
}

func isKnownHost(base string) bool {
	u, err := url.Parse(base)
	if err != nil {
		return false
	}
	return knownHosts[strings.ToLower(u.Hostname())]
}

// parseNuspec extracts dependency declarations from a nuspec document.
// The token stream is walked directly so both the flat <dependencies> form
// and the framework <group> form are handled without modeling the full
// document schema. Document order is preserved.
func parseNuspec(data []byte) ([]Dependency, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	deps := []Dependency{}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "dependency" || start.Name.Space != nuspecNamespace {
			continue
		}

		var id, version string
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "id":
				id = attr.Value
			case "version":
				version = attr.Value
			}
		}
		if id == "" {
			// The id attribute is required; skip declarations without one.
			continue
		}
		if version == "" {
			version = "*"
		}
		deps = append(deps, Dependency{ID: id, Version: version})
	}
	return deps, nil
}
