package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"taskgrapher/geometry"
	"taskgrapher/logging"
	"taskgrapher/task"
)

var (
	outlineLabel = color.New(color.FgHiGreen, color.Bold)
	outlineID    = color.New(color.FgHiBlack)
	outlineDue   = color.New(color.FgYellow)
	outlinePos   = color.New(color.FgCyan)
)

func outlineCmd(opts *rootOptions) *cobra.Command {
	var showPos bool
	cmd := &cobra.Command{
		Use:   "outline",
		Short: "Print the seed task tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			logger := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())

			s, err := newSession(cfg, logger)
			if err != nil {
				return err
			}
			var pos map[task.ID]geometry.Point
			if showPos {
				pos = s.placer.Place(s.graph, s.root)
			}
			printOutline(cmd.OutOrStdout(), s.graph, s.root, pos)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&showPos, "positions", "p", false, "show suggested positions")
	return cmd
}

// printOutline writes the tree under root with box-drawing branches. A
// task reachable along several paths is expanded only the first time.
func printOutline(w io.Writer, g *task.Graph, root *task.Node, pos map[task.ID]geometry.Point) {
	seen := make(map[task.ID]bool)
	var walk func(n *task.Node, prefix, branch string)
	walk = func(n *task.Node, prefix, branch string) {
		fmt.Fprintf(w, "%s%s %s", prefix+branch, outlineLabel.Sprint(n.Value()), outlineID.Sprintf("#%d", n.ID()))
		if due := dueText(n); due != "" {
			fmt.Fprintf(w, "  %s", outlineDue.Sprint("due "+due))
		}
		if p, ok := pos[n.ID()]; ok {
			fmt.Fprintf(w, "  %s", outlinePos.Sprintf("@ (%.0f, %.0f)", p.X, p.Y))
		}
		if seen[n.ID()] {
			fmt.Fprintln(w, "  (shared)")
			return
		}
		fmt.Fprintln(w)
		seen[n.ID()] = true

		children := g.Children(n)
		childPrefix := prefix
		switch branch {
		case "├── ":
			childPrefix += "│   "
		case "└── ":
			childPrefix += "    "
		}
		for i, c := range children {
			b := "├── "
			if i == len(children)-1 {
				b = "└── "
			}
			walk(c, childPrefix, b)
		}
	}
	walk(root, "", "")
}

func dueText(n *task.Node) string {
	d, hasDate := n.DueDate()
	t, hasTime := n.DueTime()
	switch {
	case hasDate && hasTime:
		return d.String() + " " + t.String()
	case hasDate:
		return d.String()
	case hasTime:
		return t.String()
	default:
		return ""
	}
}
