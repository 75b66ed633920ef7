package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nugraph/nugraph/pkg/deps/repofile"
	"github.com/nugraph/nugraph/pkg/errors"
)

func TestListPackages(t *testing.T) {
	repo, err := repofile.Parse(strings.NewReader("B: A\nA:\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	var buf bytes.Buffer
	listPackages(&buf, repo)

	// Names come out sorted regardless of declaration order.
	if got, want := buf.String(), "A\nB\n"; got != want {
		t.Errorf("listPackages() = %q, want %q", got, want)
	}
}

func TestPackagesCommandPipedList(t *testing.T) {
	c := newTestCLI(t)
	repo := writeRepoFile(t, "B: A\nA:\n")

	root := c.RootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"packages", repo})
	if err := root.Execute(); err != nil {
		t.Fatalf("packages: %v", err)
	}

	// Under go test stdout is not a terminal, so the plain listing is used.
	if got, want := buf.String(), "A\nB\n"; got != want {
		t.Errorf("packages output = %q, want %q", got, want)
	}
}

func TestPackagesCommandMissingFile(t *testing.T) {
	c := newTestCLI(t)

	root := c.RootCommand()
	root.SetArgs([]string{"packages", "absent-repo.txt"})
	err := root.Execute()
	if err == nil {
		t.Fatal("packages should fail for a missing repository file")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestPackagesCommandMalformedFile(t *testing.T) {
	c := newTestCLI(t)
	repo := writeRepoFile(t, "A B C\n")

	root := c.RootCommand()
	root.SetArgs([]string{"packages", repo})
	err := root.Execute()
	if err == nil {
		t.Fatal("packages should fail for a malformed repository file")
	}
	if !errors.Is(err, errors.ErrCodeMalformedRepository) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeMalformedRepository)
	}
}
