package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	pkgio "github.com/nugraph/nugraph/pkg/io"
)

// renderCommand creates the render command for re-rendering exported graphs.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output   string
		scale    float64 = 2.0
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "render <graph.json>",
		Short: "Render an exported graph document",
		Long: `Render an exported graph document without re-resolving.

The render command takes a graph.json file (produced by 'resolve --output')
and renders it to the format implied by the --output extension. With no
--output the input name is reused with an .svg extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("scale") && cfg.Scale > 0 {
				scale = cfg.Scale
			}
			return c.runRender(args[0], output, detailed, scale)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (input name with .svg extension if empty)")
	cmd.Flags().Float64Var(&scale, "scale", scale, "raster scale factor for PNG/JPG output")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "annotate nodes with dependency counts")

	return cmd
}

// runRender loads the graph document and renders it to output.
func (c *CLI) runRender(input, output string, detailed bool, scale float64) error {
	if output == "" {
		output = outputForInput(input)
	}
	if err := validateOutputPath(output); err != nil {
		return err
	}

	result, err := pkgio.ImportJSON(input)
	if err != nil {
		return err
	}
	c.Logger.Debug("graph document loaded", "path", input, "root", result.Root)

	prog := newProgress(c.Logger)
	if err := writeOutput(result, output, detailed, scale); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s", output))

	printSuccess("Rendered %s", StyleHighlight.Render(result.Root))
	printFile(output)
	return nil
}

// outputForInput derives the default output path from the input file name
// by swapping its extension for .svg.
func outputForInput(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".svg"
}
