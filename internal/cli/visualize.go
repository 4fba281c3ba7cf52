package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/godswood/pkg/core/render/nodelink"
	"github.com/matzehuels/godswood/pkg/graph"
	"github.com/matzehuels/godswood/pkg/pipeline"
)

// renderFlags are the flags shared by commands that draw scenes.
type renderFlags struct {
	formats string
}

// register adds the render flags to cmd, binding them to opts.
func (f *renderFlags) register(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), json, dot, png, pdf (comma-separated)")
	cmd.Flags().StringVar(&opts.Wood, "wood", "", "wood to draw (default: the first)")
	cmd.Flags().StringVar(&opts.Projection, "projection", "", "drawing plane: front (default), top, side")
	cmd.Flags().Float64Var(&opts.Unit, "unit", 0, "points per scene unit (default 10)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "label nodes with path and depth")
	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletions(formatCompletions()...))
	_ = cmd.RegisterFlagCompletionFunc("projection", fixedCompletions(
		string(nodelink.ProjectionFront), string(nodelink.ProjectionTop), string(nodelink.ProjectionSide)))
}

// visualizeCommand creates the visualize command for drawing a scene.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		flags   renderFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "visualize [scene.json]",
		Short: "Draw a computed scene",
		Long: `Draw a computed scene.

The visualize command takes a scene.json file (produced by 'layout') and draws
one of its woods projected onto a plane as DOT, SVG, PNG or PDF. The scene
contains all positioning information, so this step is purely about drawing.

Use 'render' as a shortcut to go directly from tree documents to drawings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(flags.formats)
			return c.runVisualize(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.register(cmd, &opts)

	return cmd
}

// runVisualize loads the scene and draws it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	s, err := graph.ReadSceneFile(input)
	if err != nil {
		return fmt.Errorf("load scene %s: %w", input, err)
	}
	opts.Logger = loggerFromContext(ctx)
	c.Config.Apply(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, s, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  cacheHit,
	})
}
