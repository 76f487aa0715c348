package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"semcat/internal/models"
)

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(true)
	table.SetAutoWrapText(false)
	return table
}

func colorSentiment(label string) string {
	switch label {
	case models.SentimentPositive:
		return color.GreenString(label)
	case models.SentimentNegative:
		return color.RedString(label)
	default:
		return color.YellowString(label)
	}
}

func confidence(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func renderAnalysis(w io.Writer, a models.SemanticAnalysis) {
	fmt.Fprintf(w, "Sentiment: %s (score %.2f, confidence %.2f)\n",
		colorSentiment(a.Sentiment.Label), a.Sentiment.Score, a.Sentiment.Confidence)

	cats := newTable(w, "Category", "Name", "Confidence")
	for _, c := range a.Categories {
		cats.Append([]string{c.ID, c.Name, confidence(c.Confidence)})
	}
	cats.Render()

	if len(a.Keywords) > 0 {
		kws := newTable(w, "Keyword", "Importance", "Category")
		for _, k := range a.Keywords {
			kws.Append([]string{k.Word, confidence(k.Importance), k.Category})
		}
		kws.Render()
	}

	if len(a.Entities) > 0 {
		ents := newTable(w, "Entity", "Type", "Confidence")
		for _, e := range a.Entities {
			ents.Append([]string{e.Name, e.Type, confidence(e.Confidence)})
		}
		ents.Render()
	}
}

func renderCategorizations(w io.Writer, titles []string, results []models.CategorizationResult) {
	table := newTable(w, "#", "Title", "Primary", "Narratives", "Confidence", "Themes")
	table.SetRowLine(true)
	for i, r := range results {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			titles[i],
			r.PrimaryCategory,
			strings.Join(r.Narratives, ", "),
			confidence(r.Confidence),
			strings.Join(r.Themes, ", "),
		})
	}
	table.Render()
}
