package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/godswood/pkg/pipeline"
)

// renderCommand creates the render command: layout and visualize in one step.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
		lflags  layoutFlags
		rflags  renderFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [tree.json...]",
		Short: "Lay out application trees and draw them",
		Long: `Lay out application trees and draw them.

This is a shortcut for 'layout' followed by 'visualize'. JSON output carries
every wood; the drawn formats show the wood chosen with --wood, or the first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := lflags.apply(&opts); err != nil {
				return err
			}
			opts.Formats = parseFormats(rflags.formats)
			opts.Refresh = refresh
			return c.runRender(cmd.Context(), args, lflags.sample, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")
	lflags.register(cmd, &opts)
	rflags.register(cmd, &opts)

	return cmd
}

// runRender executes the full pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, inputs []string, sample bool, opts pipeline.Options, output string, noCache bool) error {
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

	spinner := newSpinnerWithContext(ctx, "Laying out and rendering...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	printWarnings(result.Warnings)
	base := defaultBase(inputs)
	if len(inputs) == 0 && len(result.Scene.Woods) > 0 {
		base = result.Scene.Woods[0].Name
	}
	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     base,
		output:    output,
		cacheHit:  result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
		woods:     result.Stats.Woods,
		nodes:     result.Stats.NodeCount,
		edges:     result.Stats.EdgeCount,
	})
}

// =============================================================================
// Artifact Output
// =============================================================================

// artifactWriteParams describes a set of rendered artifacts to write.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string // write order
	input     string   // input path, used to derive output names
	output    string   // explicit output (single format) or base path
	cacheHit  bool

	woods, nodes, edges int
}

// writeArtifacts writes each artifact to its own file and reports the paths.
func writeArtifacts(p artifactWriteParams) error {
	formats := p.formats
	if len(formats) == 0 {
		formats = []string{pipeline.FormatSVG}
	}

	var paths []string
	for _, format := range formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := outputPath(p.output, p.input, format, len(formats) > 1)
		if err := writeFile(path, data); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	printSuccess("Rendered %s", strings.Join(formats, ", "))
	for _, path := range paths {
		printFile(path)
	}
	printStats(p.woods, p.nodes, p.edges, p.cacheHit)
	return nil
}

// outputPath picks the file for one format. A single format with an explicit
// output is written exactly there; otherwise the format is the extension.
func outputPath(output, input, format string, multiple bool) string {
	if output != "" && !multiple {
		return output
	}
	return basePath(output, input) + "." + format
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input (and a trailing
// ".scene" so scene.json inputs don't produce x.scene.svg).
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return strings.TrimSuffix(base, ".scene")
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeFile writes data to path, or to stdout when path is "-".
func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// openOutput opens path for writing, creating parent directories.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// splitErrors splits a joined error into one line per failure.
func splitErrors(err error) []string {
	if err == nil {
		return nil
	}
	return strings.Split(err.Error(), "\n")
}
