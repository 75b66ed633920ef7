// Package repofile implements the file-backed metadata source: a flat
// adjacency-list format used by test-mode resolutions.
//
// The format is line oriented, UTF-8:
//
//	# comment
//	A: B C
//	B: C
//	C:
//
// Blank lines and lines whose first non-space character is '#' are
// skipped. Every other line declares one package as IDENTIFIER ":"
// followed by whitespace-separated dependency tokens. Identifiers consist
// solely of uppercase Latin letters. Any violation on a retained line
// fails the whole load; no partial repository is ever returned.
package repofile

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/nugraph/nugraph/pkg/errors"
)

// ID is a validated package identifier: one or more uppercase Latin
// letters. Construct it with ParseID; the zero value is not a valid ID.
type ID string

// ParseID validates s against the identifier character class and returns
// it as an ID. The constructor is the only place the class is checked;
// everything downstream trusts the type.
func ParseID(s string) (ID, error) {
	if s == "" {
		return "", errors.New(errors.ErrCodeInvalidPackage, "identifier is empty")
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return "", errors.New(errors.ErrCodeInvalidPackage,
				"identifier %q must consist of uppercase letters A-Z", s)
		}
	}
	return ID(s), nil
}

// String returns the identifier text.
func (id ID) String() string { return string(id) }

// Repository is the parsed, immutable form of a repository file: each
// declared package mapped to its direct dependencies in declaration order.
type Repository struct {
	deps map[ID][]ID
}

// Load reads and parses the repository file at path. The whole file is
// validated before anything is returned: a missing file yields a
// FILE_NOT_FOUND error, any malformed retained line a MALFORMED_REPOSITORY
// error carrying the 1-based line number (recoverable via errors.As with
// *errors.LineError).
func Load(path string) (*Repository, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "repository file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot open repository file %s", path)
	}
	defer f.Close()

	repo, err := Parse(f)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "malformed repository file %s", path)
	}
	return repo, nil
}

// Parse reads repository declarations from r. See Load for the failure
// contract; Parse reports the same MALFORMED_REPOSITORY errors with line
// numbers. A duplicate declaration replaces the earlier one.
func Parse(r io.Reader) (*Repository, error) {
	deps := make(map[ID][]ID)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		pkg, pkgDeps, err := parseLine(line)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedRepository,
				&errors.LineError{Line: lineNo, Reason: err.Error()},
				"invalid declaration on line %d", lineNo)
		}
		deps[pkg] = pkgDeps
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedRepository, err, "reading repository")
	}

	return &Repository{deps: deps}, nil
}

// parseLine splits one retained declaration line into its package and
// dependency list. The returned error text becomes the LineError reason.
func parseLine(line string) (ID, []ID, error) {
	name, rest, found := strings.Cut(line, ":")
	if !found {
		return "", nil, fmt.Errorf("missing ':' separator")
	}

	pkg, err := ParseID(strings.TrimSpace(name))
	if err != nil {
		return "", nil, fmt.Errorf("bad package identifier: %s", errors.UserMessage(err))
	}

	fields := strings.Fields(rest)
	pkgDeps := make([]ID, 0, len(fields))
	for _, tok := range fields {
		dep, err := ParseID(tok)
		if err != nil {
			return "", nil, fmt.Errorf("bad dependency identifier: %s", errors.UserMessage(err))
		}
		pkgDeps = append(pkgDeps, dep)
	}

	return pkg, pkgDeps, nil
}

// DirectDependenciesOf returns id's declared dependencies in declaration
// order and whether id is declared at all. Absence is a valid result, not
// an error; the graph builder treats undeclared packages as leaves.
func (r *Repository) DirectDependenciesOf(id ID) ([]ID, bool) {
	deps, ok := r.deps[id]
	return deps, ok
}

// DirectDependencies implements the metadata-source lookup used by the
// graph builder. A string that fails the identifier rule is simply absent
// from this repository; the character class was enforced at load time and
// is never re-validated for declared packages.
func (r *Repository) DirectDependencies(pkg string) ([]string, bool) {
	id, err := ParseID(pkg)
	if err != nil {
		return nil, false
	}
	deps, ok := r.deps[id]
	if !ok {
		return nil, false
	}
	out := make([]string, len(deps))
	for i, d := range deps {
		out[i] = string(d)
	}
	return out, true
}

// Packages returns every declared identifier in sorted order.
func (r *Repository) Packages() []ID {
	return slices.Sorted(maps.Keys(r.deps))
}

// Len returns the number of declared packages.
func (r *Repository) Len() int { return len(r.deps) }
