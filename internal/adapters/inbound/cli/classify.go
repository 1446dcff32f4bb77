package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/openkraft/rulegate/internal/adapters/outbound/tui"
	"github.com/openkraft/rulegate/internal/domain"
)

func newClassifyCmd() *cobra.Command {
	var (
		projectPath string
		jsonOut     bool
	)

	cmd := &cobra.Command{
		Use:   "classify <target>",
		Short: "Explain how an import target is classified",
		Long:  "Classify an import specifier with the project's alias and external package list and show the decision row that matched.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := newServices(cmd, projectPath)
			target := args[0]

			class, row, err := svc.Imports.Classify(projectPath, target)
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"target":    target,
					"class":     class,
					"row":       row,
					"forbidden": class.Forbidden(),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderClassification(target, class, row))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", ".", "Project root")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}

func newInventoryCmd() *cobra.Command {
	var (
		projectPath string
		jsonOut     bool
	)

	cmd := &cobra.Command{
		Use:   "inventory [path]",
		Short: "List the files rulegate sees and their categories",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				projectPath = args[0]
			}
			svc := newServices(cmd, projectPath)

			p, err := svc.Loader.Load(projectPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(p.Inventory)
			}

			counts := map[domain.Category]int{}
			for _, f := range p.Inventory.Files {
				counts[f.Category]++
			}
			categories := make([]string, 0, len(counts))
			for c := range counts {
				categories = append(categories, string(c))
			}
			sort.Strings(categories)

			fmt.Fprintf(out, "%s: %d files in %d directories\n", p.Path, len(p.Inventory.Files), len(p.Inventory.Dirs))
			for _, c := range categories {
				fmt.Fprintf(out, "  %-10s %d\n", c, counts[domain.Category(c)])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", ".", "Project root")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output the inventory as JSON")

	return cmd
}
