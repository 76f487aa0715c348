package cmd

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"semcat/internal/clix"
	"semcat/internal/services"
)

var trendingJSON bool

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Show trending narratives, categories and source sentiment",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		sources := clix.ParseList(cmd.Flags(), "sources")
		if len(sources) == 0 {
			sources = services.DefaultSources
		}
		snap := appInstance.AnalysisService.TrackRealtimeData(cmd.Context(), sources)

		out := cmd.OutOrStdout()
		if trendingJSON {
			return printJSON(out, snap)
		}

		narratives := newTable(out, "Narrative", "Mindshare", "Momentum")
		for _, n := range snap.Narratives {
			narratives.Append([]string{n.Name, fmt.Sprintf("%.1f", n.Mindshare), signed(n.Momentum)})
		}
		narratives.Render()

		categories := newTable(out, "Category", "Mentions", "Change %")
		for _, c := range snap.Categories {
			categories.Append([]string{c.Name, strconv.Itoa(c.Mentions), signed(c.Change)})
		}
		categories.Render()

		sentiment := newTable(out, "Source", "Score", "Trend")
		for _, s := range snap.Sentiment {
			sentiment.Append([]string{s.Source, fmt.Sprintf("%.2f", s.Score), signed(s.Trend)})
		}
		sentiment.Render()
		return nil
	},
}

func signed(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if v > 0 {
		return color.GreenString("+" + s)
	}
	if v < 0 {
		return color.RedString(s)
	}
	return s
}

func init() {
	rootCmd.AddCommand(trendingCmd)
	trendingCmd.Flags().String("sources", "", "Comma-separated sources (default twitter,news,research)")
	trendingCmd.Flags().BoolVar(&trendingJSON, "json", false, "Print the snapshot as JSON")
}
