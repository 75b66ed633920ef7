package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nugraph/nugraph/pkg/integrations/nuget"
	"github.com/nugraph/nugraph/pkg/pipeline"
)

// resolveOpts holds the command-line flags for the resolve command.
type resolveOpts struct {
	version string  // package version (online mode)
	mode    string  // resolution mode: online, offline, test
	repo    string  // endpoint URL (online) or repository file (test)
	output  string  // output file path (no export if empty)
	refresh bool    // bypass cached registry documents
	noCache bool    // disable caching entirely
	scale   float64 // raster scale factor for PNG/JPG output
}

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	opts := resolveOpts{mode: "online", scale: 2.0}

	cmd := &cobra.Command{
		Use:   "resolve <package>",
		Short: "Resolve a package's dependency graph",
		Long: `Resolve a package's dependency graph and print it.

Modes:
  online   fetch the package's direct dependencies from a NuGet feed
  offline  reserved; prints an empty graph
  test     resolve the full transitive graph from a repository file

Examples:
  nugraph resolve Serilog --version 3.1.1                  # public registry
  nugraph resolve A --mode test --repo repo.txt            # repository file
  nugraph resolve Serilog --version 3.1.1 -o graph.json    # export for rendering`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			applyConfig(cmd, cfg, &opts)
			return c.runResolve(cmd.Context(), args[0], &opts, cfg)
		},
	}

	cmd.Flags().StringVar(&opts.version, "version", "", "package version (required in online mode)")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", opts.mode, "resolution mode: online, offline, test")
	cmd.Flags().StringVarP(&opts.repo, "repo", "r", "", "feed endpoint URL (online) or repository file (test)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the graph to a file (.png, .svg, .pdf, .jpg, .jpeg, .dot, .json)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached registry documents")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "raster scale factor for PNG/JPG output")

	return cmd
}

// applyConfig layers config file values under unset flags. Explicit flags
// always win; the configured endpoint only applies to online resolutions.
func applyConfig(cmd *cobra.Command, cfg *config, opts *resolveOpts) {
	flags := cmd.Flags()
	if !flags.Changed("mode") && cfg.Mode != "" {
		opts.mode = cfg.Mode
	}
	if !flags.Changed("repo") && cfg.Endpoint != "" && strings.EqualFold(opts.mode, "online") {
		opts.repo = cfg.Endpoint
	}
	if !flags.Changed("scale") && cfg.Scale > 0 {
		opts.scale = cfg.Scale
	}
}

// runResolve validates flags, runs the resolution, and prints the graph.
func (c *CLI) runResolve(ctx context.Context, pkg string, opts *resolveOpts, cfg *config) error {
	mode, err := pipeline.ParseMode(opts.mode)
	if err != nil {
		return err
	}
	if err := validateOutputPath(opts.output); err != nil {
		return err
	}

	popts := pipeline.Options{
		Package:  pkg,
		Version:  opts.version,
		Repo:     opts.repo,
		Mode:     mode,
		Refresh:  opts.refresh,
		CacheTTL: cfg.Cache.ttl(),
		Logger:   c.Logger,
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	if c.Logger.GetLevel() <= LogDebug {
		printConfiguration(popts, opts.output)
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var result *pipeline.Result
	if mode == pipeline.ModeOnline {
		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Resolving %s %s...", popts.Package, popts.Version))
		spinner.Start()
		result, err = runner.Resolve(ctx, popts)
		if err != nil {
			spinner.StopWithError("Resolution failed")
			return err
		}
		spinner.Stop()
	} else {
		result, err = runner.Resolve(ctx, popts)
		if err != nil {
			return err
		}
	}

	printSuccess("Resolved %s", StyleHighlight.Render(result.Root))
	printResolution(result)

	if opts.output != "" {
		if err := writeOutput(result, opts.output, false, opts.scale); err != nil {
			return err
		}
		printNewline()
		printFile(opts.output)
		if strings.EqualFold(filepath.Ext(opts.output), ".json") {
			printNextStep("Render it", fmt.Sprintf("%s render %s", appName, opts.output))
		}
	}

	return nil
}

// printConfiguration echoes the effective options as a detail block.
func printConfiguration(opts pipeline.Options, output string) {
	printInfo("Configuration")
	printKeyValue("package", opts.Package)
	if opts.Version != "" {
		printKeyValue("version", opts.Version)
	}
	printKeyValue("mode", opts.Mode.String())
	repo := opts.Repo
	if opts.Mode == pipeline.ModeOnline && repo == "" {
		repo = nuget.DefaultEndpoint
	}
	if repo != "" {
		printKeyValue("repo", repo)
	}
	if output != "" {
		printKeyValue("output", output)
	}
	printNewline()
}

// printResolution prints the statistics line, the adjacency listing, and
// any cycles found.
func printResolution(result *pipeline.Result) {
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.Stats.ResolveTime)
	printNewline()

	for _, line := range graphLines(result) {
		fmt.Println(line)
	}

	if len(result.Cycles) > 0 {
		printNewline()
		printWarning("Found %d dependency cycles", len(result.Cycles))
		for _, cycle := range result.Cycles {
			printDetail("%s", cycle.String())
		}
	}
}

// graphLines formats the adjacency printout, one line per package in
// sorted order. Leaves read "PKG (leaf)", everything else "PKG -> DEPS".
func graphLines(result *pipeline.Result) []string {
	g := result.AsGraph()
	lines := make([]string, 0, g.Len())
	for _, pkg := range g.Packages() {
		deps, _ := g.Deps(pkg)
		if len(deps) == 0 {
			lines = append(lines, fmt.Sprintf("%s %s", StyleValue.Render(pkg), StyleDim.Render("(leaf)")))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			StyleValue.Render(pkg), StyleDim.Render("->"), strings.Join(deps, ", ")))
	}
	return lines
}
