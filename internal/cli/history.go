package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesolver"
	"github.com/SeamusWaldron/cubesolver/internal/input"
	"github.com/SeamusWaldron/cubesolver/internal/printer"
	"github.com/SeamusWaldron/cubesolver/internal/storage"
)

var (
	historyLimit int
	historyLast  bool
	exportFormat string
	exportOutput string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse recorded solves",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent solves",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [solve-id]",
	Short: "Show a recorded solve",
	Long: `Show the cube, moves and phases of a recorded solve.

Examples:
  cubesolver history show --last
  cubesolver history show <solve_id>`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistoryShow,
}

var historyExportCmd = &cobra.Command{
	Use:   "export [solve-id]",
	Short: "Export the moves of a recorded solve",
	Long: `Export the move sequence from a solve in text, JSON or cube format.

Examples:
  cubesolver history export --last
  cubesolver history export <solve_id> --format json
  cubesolver history export <solve_id> --format cube -o cube.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistoryExport,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyExportCmd)

	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of solves to list")
	historyShowCmd.Flags().BoolVar(&historyLast, "last", false, "Show the last solve")
	historyExportCmd.Flags().BoolVar(&historyLast, "last", false, "Export the last solve")
	historyExportCmd.Flags().StringVar(&exportFormat, "format", "txt", "Export format (txt, json, cube)")
	historyExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

// withStore opens the history store for the duration of fn.
func withStore(cmd *cobra.Command, fn func(storage.Store) error) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	if st == nil {
		return printer.Error("History is disabled", "The storage driver is set to none.", []string{
			"Use --storage sqlite or set storage.driver in the config file",
		})
	}
	defer st.Close()
	return fn(st)
}

// lookupSolve returns the solve named by args or --last.
func lookupSolve(cmd *cobra.Command, st storage.Store, args []string) (*storage.SolveRecord, error) {
	switch {
	case historyLast && len(args) == 0:
		return st.LastSolve(cmd.Context())
	case !historyLast && len(args) == 1:
		return st.GetSolve(cmd.Context(), args[0])
	default:
		return nil, fmt.Errorf("specify a solve ID or --last")
	}
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(st storage.Store) error {
		solves, err := st.ListSolves(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if len(solves) == 0 {
			printer.Info("No solves recorded yet. Try: cubesolver solve --sample\n")
			return nil
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.Header("ID", "Created", "Moves", "Time", "Source")
		for _, s := range solves {
			if err := table.Append([]string{
				s.SolveID,
				s.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				fmt.Sprint(s.MoveCount),
				s.Duration.Round(time.Microsecond).String(),
				s.Source,
			}); err != nil {
				return err
			}
		}
		return table.Render()
	})
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(st storage.Store) error {
		rec, err := lookupSolve(cmd, st, args)
		if err != nil {
			return err
		}
		sol, err := rec.Solution()
		if err != nil {
			return err
		}
		c, err := cubesolver.FromGrid(rec.Grid)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Solve:   %s\n", rec.SolveID)
		fmt.Fprintf(out, "Created: %s\n", rec.CreatedAt.Local().Format(time.RFC3339))
		fmt.Fprintf(out, "Source:  %s\n", rec.Source)
		fmt.Fprintf(out, "Moves:   %d in %s\n\n", rec.MoveCount, rec.Duration)
		fmt.Fprintln(out, c.String())
		return renderSegments(out, sol)
	})
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(st storage.Store) error {
		rec, err := lookupSolve(cmd, st, args)
		if err != nil {
			return err
		}

		var buf strings.Builder
		if err := exportSolve(&buf, rec, exportFormat); err != nil {
			return err
		}

		if exportOutput == "" {
			_, err := io.WriteString(cmd.OutOrStdout(), buf.String())
			return err
		}

		dir := filepath.Dir(exportOutput)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		if err := os.WriteFile(exportOutput, []byte(buf.String()), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		printer.Success("Exported %d moves to %s\n", len(rec.Moves), exportOutput)
		return nil
	})
}

func exportSolve(w io.Writer, rec *storage.SolveRecord, format string) error {
	switch strings.ToLower(format) {
	case "txt":
		_, err := fmt.Fprintln(w, strings.Join(rec.Moves, " "))
		return err

	case "json":
		type moveJSON struct {
			MoveIndex int    `json:"move_index"`
			Notation  string `json:"notation"`
			Phase     string `json:"phase"`
		}
		moves := make([]moveJSON, len(rec.Moves))
		for i, n := range rec.Moves {
			moves[i] = moveJSON{MoveIndex: i, Notation: n}
		}
		for _, seg := range rec.Segments {
			for i := seg.StartIndex; i < seg.EndIndex && i < len(moves); i++ {
				moves[i].Phase = seg.PhaseKey
			}
		}
		data, err := json.MarshalIndent(moves, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case "cube":
		return input.Write(w, rec.Grid, input.FormatYAML)

	default:
		return fmt.Errorf("unknown format: %s (use txt, json or cube)", format)
	}
}
