package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/cubesolver"
	"github.com/SeamusWaldron/cubesolver/internal/notation"
	"github.com/SeamusWaldron/cubesolver/internal/printer"
	"github.com/SeamusWaldron/cubesolver/internal/storage"
)

var (
	solveSrc     cubeSource
	solveFormat  string
	solveKeymap  string
	solveCompact bool
	solvePhases  bool
	solveNoSave  bool
)

var solveCmd = &cobra.Command{
	Use:   "solve [cube-file]",
	Short: "Solve a scrambled cube",
	Long: `Solve a cube given as a JSON or YAML file of 54 color codes, as a move
sequence applied to the solved cube, or the built-in sample.

Color codes: 1=blue 2=yellow 3=green 4=white 5=orange 6=red.
Faces are listed Back, Top, Front, Bottom, Left, Right.

Examples:
  cubesolver solve cube.json
  cubesolver solve --sample --phases
  cubesolver solve --scramble "R U R' F2 D" --format keys
  cat cube.yaml | cubesolver solve -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)
	f := solveCmd.Flags()
	f.BoolVar(&solveSrc.sample, "sample", false, "Solve the built-in sample scramble")
	f.StringVar(&solveSrc.scramble, "scramble", "", "Solve the cube reached by this move sequence")
	f.StringVarP(&solveFormat, "format", "f", "text", "Output format (text, json, keys, spoken)")
	f.StringVar(&solveKeymap, "keymap", "", "YAML keymap for --format keys (default: built-in game keys)")
	f.BoolVar(&solveCompact, "compact", false, "Fold repeated turns (U U -> U2) in text output")
	f.BoolVar(&solvePhases, "phases", false, "Show the moves of each phase")
	f.BoolVar(&solveNoSave, "no-save", false, "Do not record the solve in the history")
}

func runSolve(cmd *cobra.Command, args []string) error {
	g, err := solveSrc.grid(args)
	if err != nil {
		return printer.Error("Could not read the cube", err.Error(), []string{
			"Pass a cube file, --sample, or --scramble \"R U R'\"",
		})
	}

	start := time.Now()
	sol, err := cubesolver.Solve(g, solverOptions()...)
	elapsed := time.Since(start)
	if err != nil {
		return solveError(err)
	}
	logger.Debug("solved", zap.Int("moves", len(sol.Moves)), zap.Duration("elapsed", elapsed))

	out := cmd.OutOrStdout()
	if err := writeSolution(out, sol, solveFormat, solveKeymap, solveCompact); err != nil {
		return err
	}
	if solvePhases && solveFormat == "text" {
		fmt.Fprintln(out)
		if err := renderSegments(out, sol); err != nil {
			return err
		}
	}

	if !solveNoSave {
		saveSolve(cmd, g, sol, elapsed)
	}
	return nil
}

func solveError(err error) error {
	var pe *cubesolver.PhaseError
	switch {
	case errors.Is(err, cubesolver.ErrInvalidCubeState):
		return printer.Error("Invalid cube state", err.Error(), []string{
			"Check that every color appears 9 times",
			"Check that the centers form the pairs blue/green, yellow/white, orange/red",
			"Check that no sticker was swapped when the cube was read",
		})
	case errors.As(err, &pe):
		return printer.Error(
			fmt.Sprintf("Solver stopped during %s", pe.Phase.DisplayName()),
			err.Error(),
			[]string{"Raise the limit with --max-rotations if the cube is valid"},
		)
	default:
		return err
	}
}

type solutionJSON struct {
	Moves     []string      `json:"moves"`
	MoveCount int           `json:"move_count"`
	Compact   string        `json:"compact"`
	Segments  []segmentJSON `json:"segments"`
}

type segmentJSON struct {
	Phase string   `json:"phase"`
	Moves []string `json:"moves"`
}

func writeSolution(w io.Writer, sol *cubesolver.Solution, format, keymapPath string, compact bool) error {
	switch format {
	case "text":
		line := sol.String()
		if compact {
			line = notation.CompactString(sol.Moves)
		}
		_, err := fmt.Fprintln(w, line)
		return err

	case "json":
		doc := solutionJSON{
			Moves:     sol.Notation(),
			MoveCount: len(sol.Moves),
			Compact:   notation.CompactString(sol.Moves),
			Segments:  make([]segmentJSON, len(sol.Segments)),
		}
		for i, seg := range sol.Segments {
			doc.Segments[i] = segmentJSON{
				Phase: seg.Phase.String(),
				Moves: cubesolver.Notations(sol.Moves[seg.Start:seg.End]),
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)

	case "keys":
		km, err := loadKeymap(keymapPath)
		if err != nil {
			return err
		}
		keys, err := notation.Remap(sol.Moves, km)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, strings.Join(keys, " "))
		return err

	case "spoken":
		for _, s := range notation.SpokenSequence(sol.Moves) {
			if _, err := fmt.Fprintln(w, s); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("unknown format: %s (use text, json, keys or spoken)", format)
	}
}

// renderSegments prints one table row per phase.
func renderSegments(w io.Writer, sol *cubesolver.Solution) error {
	table := tablewriter.NewWriter(w)
	table.Header("Phase", "Moves", "Sequence")
	for _, seg := range sol.Segments {
		moves := sol.Moves[seg.Start:seg.End]
		if err := table.Append([]string{
			seg.Phase.DisplayName(),
			fmt.Sprint(len(moves)),
			notation.CompactString(moves),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

// saveSolve records the solve; history problems never fail the command.
func saveSolve(cmd *cobra.Command, g cubesolver.Grid, sol *cubesolver.Solution, elapsed time.Duration) {
	st, err := openStore(cmd.Context())
	if err != nil {
		printer.Warning("History unavailable: %v\n", err)
		return
	}
	if st == nil {
		return
	}
	defer st.Close()

	rec := storage.NewRecord(g, sol, elapsed, "cli")
	if err := st.SaveSolve(cmd.Context(), rec); err != nil {
		printer.Warning("Could not save solve: %v\n", err)
		return
	}
	printer.Success("Saved solve %s (%d moves)\n", rec.SolveID, rec.MoveCount)
}
