package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mbolaris/tankview/pkg/tree"
)

// inspectCommand creates the inspect command for printing a snapshot's tree
// directly to the terminal (debug tool).
func (c *CLI) inspectCommand() *cobra.Command {
	var depth int
	var noCache bool

	cmd := &cobra.Command{
		Use:   "inspect <records.json>",
		Short: "Print a snapshot's lineage tree to the terminal (debug tool)",
		Long: `Inspect builds the tree for a snapshot and prints it as indented text
instead of JSON, for eyeballing lineage structure without a renderer.

Pass "-" to read the snapshot from stdin.`,
		Example: `  # Full tree
  tankview inspect tank.json

  # Only the first three generations
  tankview inspect tank.json --depth 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := c.newRunner(cmd.Context(), noCache)
			defer runner.Close()

			result, err := c.runSnapshot(cmd, runner, args[0], false)
			if err != nil {
				return err
			}
			if result.Tree == nil {
				printInfo("Snapshot is empty, nothing to show")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTreeText(result.Tree, depth))
			printStats(result.Stats.Records, result.Stats.Roots, result.Stats.CyclesSevered, result.CacheInfo.TreeHit)
			return nil
		},
	}

	cmd.Flags().IntVar(&depth, "depth", 0, "max generations to show (0 for all)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}

// renderTreeText renders a tree as box-drawn indented text. maxDepth limits
// the number of generations shown; 0 means unlimited. An explicit work
// stack keeps arbitrarily deep lineages off the call stack, matching the
// traversals in the tree package.
func renderTreeText(root *tree.Node, maxDepth int) string {
	type frame struct {
		node   *tree.Node
		prefix string
		last   bool
		depth  int
	}

	var b strings.Builder
	b.WriteString(nodeLabel(root))

	var stack []frame
	pushChildren := func(parent *tree.Node, prefix string, depth int) {
		for i := len(parent.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{
				node:   parent.Children[i],
				prefix: prefix,
				last:   i == len(parent.Children)-1,
				depth:  depth,
			})
		}
	}
	pushChildren(root, "", 1)

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		branch, next := "├── ", "│   "
		if f.last {
			branch, next = "└── ", "    "
		}
		fmt.Fprintf(&b, "\n%s%s%s", f.prefix, StyleDim.Render(branch), nodeLabel(f.node))

		childPrefix := f.prefix + next
		if maxDepth > 0 && f.depth+1 > maxDepth {
			if len(f.node.Children) > 0 {
				fmt.Fprintf(&b, "\n%s%s", childPrefix,
					StyleDim.Render(fmt.Sprintf("└── … %d more", tree.Count(f.node)-1)))
			}
			continue
		}
		pushChildren(f.node, childPrefix, f.depth+1)
	}
	return b.String()
}

// nodeLabel formats one node: id, tinted swatch, and the algorithm label.
func nodeLabel(n *tree.Node) string {
	if n.IsSuperRoot() {
		return StyleDim.Render("(forest)")
	}
	label := StyleValue.Render(n.ID)
	if n.Color != "" {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(n.Color)).Render("●")
		label += " " + swatch
	}
	if algo := n.Algo(); algo != "" {
		label += " " + StyleDim.Render(algo)
	}
	return label
}
