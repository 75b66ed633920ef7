package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/nugraph/nugraph/pkg/deps/repofile"
	"github.com/nugraph/nugraph/pkg/pipeline"
)

// packagesCommand creates the packages command for listing a repository file.
func (c *CLI) packagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "packages <repo-file>",
		Short: "List the packages declared in a repository file",
		Long: `List the packages declared in a repository file.

On a terminal an interactive picker is shown; selecting a package resolves
its dependency graph in test mode. When output is piped, the sorted package
names are printed one per line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPackages(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}
}

// runPackages loads the repository and either lists or picks from it.
func (c *CLI) runPackages(ctx context.Context, w io.Writer, path string) error {
	repo, err := repofile.Load(path)
	if err != nil {
		return err
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		listPackages(w, repo)
		return nil
	}

	selected, err := pickPackage(repo)
	if err != nil {
		return fmt.Errorf("package picker: %w", err)
	}
	if selected == "" {
		return nil
	}
	return c.resolveSelection(ctx, selected, path)
}

// listPackages writes the sorted package names, one per line.
func listPackages(w io.Writer, repo *repofile.Repository) {
	for _, id := range repo.Packages() {
		fmt.Fprintln(w, id)
	}
}

// resolveSelection runs a test-mode resolution for the picked package and
// prints it the way resolve does.
func (c *CLI) resolveSelection(ctx context.Context, pkg repofile.ID, path string) error {
	runner := pipeline.NewRunner(nil, c.Logger)
	defer runner.Close()

	result, err := runner.Resolve(ctx, pipeline.Options{
		Package: pkg.String(),
		Repo:    path,
		Mode:    pipeline.ModeTest,
		Logger:  c.Logger,
	})
	if err != nil {
		return err
	}

	printSuccess("Resolved %s", StyleHighlight.Render(result.Root))
	printResolution(result)
	return nil
}
