package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesolver/internal/analysis"
)

var (
	analyzeSrc    cubeSource
	analyzeID     string
	analyzeLast   bool
	analyzeFormat string
	analyzeMaxN   int
	analyzeTop    int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [cube-file]",
	Short: "Show statistics for a solution",
	Long: `Break a solution down by phase, count the layers it turns, list moves
that cancel or fold, and find the move sequences it repeats.

Examples:
  cubesolver analyze --sample
  cubesolver analyze --last --format json
  cubesolver analyze cube.json --max-n 6 --top 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	f := analyzeCmd.Flags()
	f.BoolVar(&analyzeSrc.sample, "sample", false, "Analyze the solution of the built-in sample scramble")
	f.StringVar(&analyzeSrc.scramble, "scramble", "", "Analyze the solution of the cube reached by this move sequence")
	f.StringVar(&analyzeID, "id", "", "Analyze a recorded solve")
	f.BoolVar(&analyzeLast, "last", false, "Analyze the last recorded solve")
	f.StringVarP(&analyzeFormat, "format", "f", "text", "Output format (text, json)")
	f.IntVar(&analyzeMaxN, "max-n", analysis.DefaultOptions.MaxN, "Longest repeated sequence to look for (0 disables)")
	f.IntVar(&analyzeTop, "top", analysis.DefaultOptions.TopK, "Repeated sequences to show per length")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	_, sol, err := solutionSource(cmd, &analyzeSrc, analyzeID, analyzeLast, args)
	if err != nil {
		return err
	}

	opts := analysis.Options{MinN: analysis.DefaultOptions.MinN, MaxN: analyzeMaxN, TopK: analyzeTop}
	report := analysis.Analyze(sol, opts)

	out := cmd.OutOrStdout()
	switch analyzeFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "text":
		return writeReport(out, report)
	default:
		return fmt.Errorf("unknown format: %s (use text or json)", analyzeFormat)
	}
}

func writeReport(w io.Writer, r *analysis.Report) error {
	fmt.Fprintf(w, "Moves:        %d\n", r.TotalMoves)
	fmt.Fprintf(w, "Compacted:    %d steps (%.0f%%)\n", r.CompactSteps, r.Efficiency*100)
	if r.MostUsedLayer != "" {
		fmt.Fprintf(w, "Most turned:  %s (%d)\n", r.MostUsedLayer, r.LayerCounts[r.MostUsedLayer])
	}
	fmt.Fprintf(w, "Cancellations: %d  Merges: %d\n\n", len(r.Cancellations), len(r.Merges))

	table := tablewriter.NewWriter(w)
	table.Header("Phase", "Moves", "Share")
	for _, ps := range r.Phases {
		if err := table.Append([]string{
			ps.DisplayName,
			fmt.Sprint(ps.MoveCount),
			fmt.Sprintf("%.1f%%", ps.Share*100),
		}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	if len(r.NGrams) == 0 {
		return nil
	}
	lengths := make([]int, 0, len(r.NGrams))
	for n := range r.NGrams {
		lengths = append(lengths, n)
	}
	sort.Ints(lengths)

	fmt.Fprintln(w)
	grams := tablewriter.NewWriter(w)
	grams.Header("Length", "Sequence", "Count")
	for _, n := range lengths {
		for _, g := range r.NGrams[n] {
			if err := grams.Append([]string{
				fmt.Sprint(n),
				strings.Join(g.Sequence, " "),
				fmt.Sprint(g.Count),
			}); err != nil {
				return err
			}
		}
	}
	return grams.Render()
}
