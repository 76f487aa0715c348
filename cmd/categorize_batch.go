package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"semcat/internal/models"
	"semcat/internal/services"
)

var categorizeBatchJSON bool

// categorizeBatchCmd represents the batch command
var categorizeBatchCmd = &cobra.Command{
	Use:   "batch <file.jsonl>",
	Short: "Categorize many content items from a JSON Lines file",
	Long: `Reads one {"title","description","tags"} object per line ("-" for stdin)
and categorizes all items concurrently. Results keep the input order.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		var r io.Reader = os.Stdin
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open '%s': %w", args[0], err)
			}
			defer f.Close()
			r = f
		}
		contents, err := readContents(r)
		if err != nil {
			return err
		}
		if len(contents) == 0 {
			return fmt.Errorf("no content items found in %s", args[0])
		}

		log.Infof("Categorizing %d content items...", len(contents))
		results := appInstance.AnalysisService.CategorizeBatch(cmd.Context(), contents)

		out := cmd.OutOrStdout()
		if categorizeBatchJSON {
			return printJSON(out, results)
		}
		titles := make([]string, len(contents))
		for i, c := range contents {
			titles[i] = c.Title
			if titles[i] == "" {
				titles[i] = snippet(c.Description, 40)
			}
		}
		renderCategorizations(out, titles, results)
		return nil
	},
}

// readContents decodes and validates one content item per non-blank line.
func readContents(r io.Reader) ([]models.ContentInput, error) {
	var contents []models.ContentInput
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var c models.ContentInput
		if err := json.Unmarshal([]byte(line), &c); err != nil {
			return nil, fmt.Errorf("line %d: invalid JSON: %w", lineNo, err)
		}
		c, err := services.ValidateContent(c)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		contents = append(contents, c)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read content items: %w", err)
	}
	return contents, nil
}

func init() {
	categorizeCmd.AddCommand(categorizeBatchCmd)
	categorizeBatchCmd.Flags().BoolVar(&categorizeBatchJSON, "json", false, "Print results as JSON")
}
