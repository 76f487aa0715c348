package cmd

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"semcat/internal/fileingest"
	"semcat/internal/inputprocessor"
)

var (
	analyzeFile  string
	analyzeBatch string
	analyzeDir   string
	analyzeJSON  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text | path | url | -]",
	Short: "Analyze text for categories, sentiment and keywords",
	Long: `Runs a semantic analysis on a single text, a file, a URL or stdin ("-").
With --batch, every non-blank line of the given file is analyzed concurrently;
with --dir, every .txt and .md file below the directory is.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		if analyzeBatch != "" || analyzeDir != "" {
			var texts, labels []string
			if analyzeBatch != "" {
				texts, err = readBatchLines(analyzeBatch)
				labels = texts
			} else {
				texts, labels, err = readDir(ctx, analyzeDir)
			}
			if err != nil {
				return err
			}
			results := appInstance.AnalysisService.AnalyzeBatch(ctx, texts)
			if analyzeJSON {
				return printJSON(out, results)
			}
			for i, a := range results {
				fmt.Fprintf(out, "[%d] %s\n", i+1, snippet(labels[i], 60))
				renderAnalysis(out, a)
			}
			return nil
		}

		var text string
		switch {
		case analyzeFile != "":
			text, err = inputprocessor.ReadFile(analyzeFile)
		case len(args) == 1:
			var res inputprocessor.Result
			res, err = appInstance.InputProcessor.Process(ctx, args[0])
			text = res.Text
		default:
			return fmt.Errorf("provide text, --file, --batch or --dir")
		}
		if err != nil {
			return err
		}

		a := appInstance.AnalysisService.AnalyzeText(ctx, text)
		if analyzeJSON {
			return printJSON(out, a)
		}
		renderAnalysis(out, a)
		return nil
	},
}

func readBatchLines(path string) ([]string, error) {
	if path == "-" {
		return inputprocessor.ReadLines(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch file '%s': %w", path, err)
	}
	defer f.Close()
	return inputprocessor.ReadLines(f)
}

// readDir loads every text file below root, labelled by path.
func readDir(ctx context.Context, root string) (texts, paths []string, err error) {
	files, err := fileingest.Discover(ctx, root, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan '%s': %w", root, err)
	}
	for _, f := range files {
		text, err := inputprocessor.ReadFile(f.Path)
		if err != nil {
			log.Warnf("Skipping %s: %v", f.Path, err)
			continue
		}
		texts = append(texts, text)
		paths = append(paths, f.Path)
	}
	if len(texts) == 0 {
		return nil, nil, fmt.Errorf("no text files found in '%s'", root)
	}
	return texts, paths, nil
}

func snippet(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Read the text to analyze from a file")
	analyzeCmd.Flags().StringVarP(&analyzeBatch, "batch", "b", "", "Analyze each line of a file (\"-\" for stdin)")
	analyzeCmd.Flags().StringVar(&analyzeDir, "dir", "", "Analyze every .txt and .md file below a directory")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print results as JSON")
}
