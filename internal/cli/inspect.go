package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/godswood/pkg/core/node"
	"github.com/matzehuels/godswood/pkg/core/wood"
	"github.com/matzehuels/godswood/pkg/errors"
	"github.com/matzehuels/godswood/pkg/graph"
	"github.com/matzehuels/godswood/pkg/pipeline"
)

// inspectCommand creates the inspect command for printing wood metadata.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		path  string
		flags layoutFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "inspect [tree.json...]",
		Short: "Print depth tables or node details",
		Long: `Print depth tables or node details.

Without --path, prints one table per wood listing, for every depth, the number
of nodes, the widest fan-out, the compounded scale and the ring radius.

With --path, prints the node at that dotted path (e.g. .app.service1). The
first path segment selects the wood.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(&opts); err != nil {
				return err
			}
			return c.runInspect(cmd.Context(), args, flags.sample, opts, path)
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "dotted node path to show")
	flags.register(cmd, &opts)

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, inputs []string, sample bool, opts pipeline.Options, path string) error {
	if path != "" {
		if err := errors.ValidateNodePath(path); err != nil {
			return err
		}
	}

	coll, s, err := c.buildScene(ctx, inputs, sample, opts)
	if coll == nil {
		return err
	}
	defer coll.Close()
	if err != nil {
		printWarnings(splitErrors(err))
	}

	if path != "" {
		return printNode(coll, s, path)
	}
	for i, w := range coll.Woods() {
		if i > 0 {
			printNewline()
		}
		fmt.Fprintln(stdout, StyleTitle.Render(w.Name())+" "+StyleDim.Render(fmt.Sprintf("%d nodes, %d collisions", w.NodeCount(), w.Collisions)))
		fmt.Fprintln(stdout, depthTable(w))
	}
	return nil
}

// buildScene builds and lays out the inputs without caching. It returns the
// collection so callers can resolve paths; the caller closes it.
func (c *CLI) buildScene(ctx context.Context, inputs []string, sample bool, opts pipeline.Options) (*wood.Collection, graph.Scene, error) {
	docs, err := readDocuments(inputs, sample)
	if err != nil {
		return nil, graph.Scene{}, err
	}
	opts.Logger = loggerFromContext(ctx)
	c.Config.Apply(&opts)

	coll, buildErr := pipeline.Build(ctx, docs, opts)
	if coll == nil {
		return nil, graph.Scene{}, buildErr
	}
	s, layoutErr := pipeline.Layout(ctx, coll, opts)
	return coll, s, errors.Join(buildErr, layoutErr)
}

// depthTable renders the per-depth metadata of w.
func depthTable(w *wood.Wood) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	numStyle := cellStyle.Foreground(colorCyan).Align(lipgloss.Right)

	rows := make([][]string, 0, w.MaxDepth)
	for d := 1; d <= w.MaxDepth; d++ {
		rows = append(rows, []string{
			strconv.Itoa(d),
			strconv.Itoa(len(w.ByDepth[d])),
			strconv.Itoa(w.MaxFanOut(d)),
			strconv.FormatFloat(w.Scales[d], 'f', 4, 64),
			strconv.FormatFloat(w.Radius(d), 'f', 4, 64),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Depth", "Nodes", "Fan-out", "Scale", "Radius").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return cellStyle.Foreground(colorGray)
			}
			return numStyle
		})
	return t.Render()
}

// printNode prints the node at path, with its laid-out position.
func printNode(coll *wood.Collection, s graph.Scene, path string) error {
	w, n, ok := coll.Lookup(path)
	if !ok {
		if w == nil {
			app, _ := node.AppName(path)
			return errors.New(errors.ErrCodeNotFound, "no wood named %q", app)
		}
		return errors.New(errors.ErrCodeNodeNotFound, "no node at %s", path)
	}
	p, _ := w.PathOf(n)

	name := StyleValue.Render(n.Name)
	if n.Kind == node.KindRoot {
		name = StyleRoot.Render(n.Name)
	}
	fmt.Fprintln(stdout, StyleTitle.Render(path))
	printKeyValue("Name", name)
	printKeyValue("Display", n.DisplayName)
	printKeyValue("Kind", n.Kind.String())
	printKeyValue("Depth", strconv.Itoa(p.Depth()))
	printKeyValue("Ring radius", strconv.FormatFloat(w.Radius(p.Depth()), 'f', 4, 64))

	if gw, ok := s.Find(w.Name()); ok {
		if gn, ok := gw.Node(path); ok {
			pos := gn.Position
			printKeyValue("Position", fmt.Sprintf("(%.3f, %.3f, %.3f)", pos.X, pos.Y, pos.Z))
			printKeyValue("Entity", gn.Entity)
		}
	}

	kids := make([]string, 0, len(n.Children))
	for _, id := range n.Children {
		if kid, ok := w.Store().Resolve(id); ok {
			kids = append(kids, kid.Name)
		}
	}
	if len(kids) == 0 {
		printKeyValue("Children", StyleDim.Render("none"))
	} else {
		printKeyValue("Children", strings.Join(kids, ", "))
	}
	return nil
}
