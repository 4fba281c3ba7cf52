package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/godswood/pkg/core/layout"
	"github.com/matzehuels/godswood/pkg/graph"
	"github.com/matzehuels/godswood/pkg/pipeline"
)

// layoutFlags are the flags shared by every command that lays out trees.
type layoutFlags struct {
	origin []float64
	sample bool
}

// register adds the layout flags to cmd, binding them to opts.
func (f *layoutFlags) register(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().Float64Var(&opts.BaseScale, "base-scale", 0, "radius unit multiplied by each level's scale (default 4)")
	cmd.Flags().Float64Var(&opts.BaseGap, "base-gap", 0, "vertical distance between levels (default 20)")
	cmd.Flags().Float64SliceVar(&f.origin, "origin", nil, "root position x,y,z (default 0,0,-10)")
	cmd.Flags().StringVar(&opts.Primitive, "primitive", "", "entity shape: sphere (default), cube")
	cmd.Flags().Float64Var(&opts.PrimitiveSize, "size", 0, "sphere radius or cube edge (default 2)")
	cmd.Flags().StringVar(&opts.Fill, "fill", "", "entity fill color")
	cmd.Flags().StringVar(&opts.Stroke, "stroke", "", "entity stroke color")
	cmd.Flags().BoolVar(&f.sample, "sample", false, "include the built-in sample application tree")
	_ = cmd.RegisterFlagCompletionFunc("primitive", fixedCompletions(layout.ShapeSphere, layout.ShapeCube))
}

// apply copies slice-typed flags into opts.
func (f *layoutFlags) apply(opts *pipeline.Options) error {
	switch len(f.origin) {
	case 0:
	case 3:
		opts.Origin = &[3]float64{f.origin[0], f.origin[1], f.origin[2]}
	default:
		return fmt.Errorf("--origin needs 3 values, got %d", len(f.origin))
	}
	return nil
}

// layoutCommand creates the layout command for computing scenes.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
		flags   layoutFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [tree.json...]",
		Short: "Lay out application trees as a 3-D scene",
		Long: `Lay out application trees as a 3-D scene.

Each input is a tree document: {"name": ..., "display_name": ..., "children": {...}}.
Every document becomes one wood. The output is a scene.json (same format as
'render -f json') that can be drawn with the 'visualize' command.

Results are cached locally for faster subsequent runs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(&opts); err != nil {
				return err
			}
			opts.Refresh = refresh
			return c.runLayout(cmd.Context(), args, flags.sample, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.scene.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")
	flags.register(cmd, &opts)

	return cmd
}

// runLayout builds and lays out the documents and writes the scene.
func (c *CLI) runLayout(ctx context.Context, inputs []string, sample bool, opts pipeline.Options, output string, noCache bool) error {
	docs, err := readDocuments(inputs, sample)
	if err != nil {
		return err
	}
	opts.Documents = docs
	opts.Logger = loggerFromContext(ctx)
	c.Config.Apply(&opts)

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(opts.Logger)
	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	s, cacheHit, err := runner.GenerateSceneWithCacheInfo(ctx, opts)
	if err != nil && len(s.Woods) == 0 {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done(fmt.Sprintf("Laid out %d woods", len(s.Woods)))

	outputPath := output
	if outputPath == "" {
		outputPath = defaultBase(inputs) + ".scene.json"
	}

	if err := graph.WriteSceneFile(s, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(s.Woods), s.NodeCount(), edgeCount(s), cacheHit)
	if err != nil {
		printWarnings(splitErrors(err))
	}
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}

func edgeCount(s graph.Scene) int {
	n := 0
	for _, w := range s.Woods {
		n += len(w.Edges)
	}
	return n
}
