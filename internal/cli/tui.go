package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/godswood/pkg/graph"
	"github.com/matzehuels/godswood/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command for walking a laid-out wood.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		woodName string
		flags    layoutFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "browse [tree.json...]",
		Short: "Interactively walk a laid-out wood",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(&opts); err != nil {
				return err
			}
			return c.runBrowse(cmd.Context(), args, flags.sample, opts, woodName)
		},
	}

	cmd.Flags().StringVar(&woodName, "wood", "", "wood to browse (default: the first)")
	flags.register(cmd, &opts)

	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, inputs []string, sample bool, opts pipeline.Options, woodName string) error {
	coll, s, err := c.buildScene(ctx, inputs, sample, opts)
	if coll == nil {
		return err
	}
	coll.Close()
	if err != nil {
		printWarnings(splitErrors(err))
	}

	w, err := pipeline.SelectWood(s, woodName)
	if err != nil {
		return err
	}

	m, err := tea.NewProgram(NewWoodBrowserModel(w), tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	if final, ok := m.(WoodBrowserModel); ok && final.Selected != "" {
		fmt.Fprintln(stdout, final.Selected)
	}
	return nil
}

// =============================================================================
// WoodBrowserModel - Interactive level-by-level navigation
// =============================================================================

// level is one step of the navigation history.
type level struct {
	parent string
	cursor int
	offset int
}

// WoodBrowserModel is the bubbletea model for walking a wood. It shows the
// children of one node at a time; right descends into the selected node and
// left returns to its parent.
type WoodBrowserModel struct {
	Wood     graph.Wood
	Parent   string   // node whose children are listed; "" lists the root
	Items    []string // node IDs on the current level
	Cursor   int
	Height   int
	Offset   int
	Selected string // set when the user confirms a leaf with enter

	history []level
}

// NewWoodBrowserModel creates a browser positioned on the root of w.
func NewWoodBrowserModel(w graph.Wood) WoodBrowserModel {
	m := WoodBrowserModel{Wood: w, Height: 15}
	if root, ok := w.Root(); ok {
		m.Items = []string{root.ID}
	}
	return m
}

func (m WoodBrowserModel) Init() tea.Cmd {
	return nil
}

func (m WoodBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "right", "l":
			m = m.descend()
		case "left", "h", "backspace":
			m = m.ascend()
		case "enter":
			if len(m.Items) == 0 {
				return m, nil
			}
			id := m.Items[m.Cursor]
			if len(m.Wood.Children(id)) > 0 {
				return m.descend(), nil
			}
			m.Selected = id
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m WoodBrowserModel) descend() WoodBrowserModel {
	if len(m.Items) == 0 {
		return m
	}
	id := m.Items[m.Cursor]
	kids := m.Wood.Children(id)
	if len(kids) == 0 {
		return m
	}
	m.history = append(m.history, level{parent: m.Parent, cursor: m.Cursor, offset: m.Offset})
	m.Parent, m.Items, m.Cursor, m.Offset = id, kids, 0, 0
	return m
}

func (m WoodBrowserModel) ascend() WoodBrowserModel {
	if len(m.history) == 0 {
		return m
	}
	prev := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	m.Parent, m.Cursor, m.Offset = prev.parent, prev.cursor, prev.offset
	if prev.parent == "" {
		m.Items = nil
		if root, ok := m.Wood.Root(); ok {
			m.Items = []string{root.ID}
		}
	} else {
		m.Items = m.Wood.Children(prev.parent)
	}
	return m
}

func (m WoodBrowserModel) View() string {
	var b strings.Builder

	title := m.Wood.Name
	if m.Parent != "" {
		title = m.Parent
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  → open  ← back  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Items) {
		end = len(m.Items)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n, ok := m.Wood.Node(m.Items[i])
		if !ok {
			continue
		}
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		p := n.Position
		rows = append(rows, []string{
			cursor,
			n.Name,
			n.Label(),
			strconv.Itoa(n.Depth),
			strconv.Itoa(len(m.Wood.Children(n.ID))),
			fmt.Sprintf("%.2f, %.2f, %.2f", p.X, p.Y, p.Z),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "Display", "Depth", "Children", "Position").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col >= 3 {
				return listDimStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	if len(m.Items) > 0 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Items))))
	}

	return b.String()
}
