package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"semcat/internal/clix"
	"semcat/internal/models"
	"semcat/internal/services"
)

var (
	categorizeTitle       string
	categorizeDescription string
	categorizeAsync       bool
	categorizeJSON        bool
)

// categorizeCmd categorizes one content item into narratives and themes.
var categorizeCmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a content item into narratives and themes",
	Long: `Analyzes title, description and tags of a content item and reports its
primary category, narratives, overall confidence and themes. With --async the
work is queued for the background worker instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		content, err := services.ValidateContent(models.ContentInput{
			Title:       categorizeTitle,
			Description: categorizeDescription,
			Tags:        clix.ParseTags(cmd.Flags()),
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if categorizeAsync {
			taskID, err := appInstance.JobClient.EnqueueCategorize(cmd.Context(), content)
			if err != nil {
				return fmt.Errorf("failed to enqueue categorization: %w", err)
			}
			fmt.Fprintf(out, "Enqueued categorization task %s\n", taskID)
			return nil
		}

		result := appInstance.AnalysisService.CategorizeNarrative(cmd.Context(), content)
		if categorizeJSON {
			return printJSON(out, result)
		}
		renderCategorizations(out, []string{content.Title}, []models.CategorizationResult{result})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categorizeCmd)

	categorizeCmd.Flags().StringVarP(&categorizeTitle, "title", "t", "", "Content title")
	categorizeCmd.Flags().StringVarP(&categorizeDescription, "description", "d", "", "Content description")
	categorizeCmd.Flags().StringP("tags", "T", "", "Comma-separated list of tags")
	categorizeCmd.Flags().BoolVar(&categorizeAsync, "async", false, "Queue the categorization for the background worker")
	categorizeCmd.Flags().BoolVar(&categorizeJSON, "json", false, "Print the result as JSON")
}
