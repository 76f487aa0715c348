package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var categoriesJSON bool

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show the category hierarchy",
	Long:  `Fetches the provider's category hierarchy, falling back to the built-in root categories.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		cats := appInstance.AnalysisService.CategoryHierarchy(cmd.Context())
		out := cmd.OutOrStdout()
		if categoriesJSON {
			return printJSON(out, cats)
		}
		table := newTable(out, "ID", "Name", "Parent", "Children")
		for _, c := range cats {
			table.Append([]string{c.ID, c.Name, c.Parent, strings.Join(c.Children, ", ")})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
	categoriesCmd.Flags().BoolVar(&categoriesJSON, "json", false, "Print the hierarchy as JSON")
}
