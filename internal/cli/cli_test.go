package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubesolver"
	"github.com/SeamusWaldron/cubesolver/internal/analysis"
	"github.com/SeamusWaldron/cubesolver/internal/input"
	"github.com/SeamusWaldron/cubesolver/internal/notation"
	"github.com/SeamusWaldron/cubesolver/internal/printer"
	"github.com/SeamusWaldron/cubesolver/internal/storage"
)

// resetFlags puts every flag back to its default so commands can run more
// than once in a test binary.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// sandbox points HOME and the working directory at a temp dir and returns
// a database path inside it.
func sandbox(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return filepath.Join(dir, "history.db")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)

	prev := printer.SetOutput(io.Discard)
	defer printer.SetOutput(prev)

	err := rootCmd.Execute()
	return out.String(), err
}

func sampleSolution(t *testing.T) *cubesolver.Solution {
	t.Helper()
	sol, err := cubesolver.Solve(cubesolver.SampleGrid())
	require.NoError(t, err)
	return sol
}

func TestCommandPresence(t *testing.T) {
	for _, name := range []string{"solve", "scramble", "replay", "analyze", "history", "serve", "status"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := rootCmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestSolveSampleText(t *testing.T) {
	db := sandbox(t)
	want := sampleSolution(t)

	out, err := execute(t, "solve", "--sample", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, want.String()+"\n", out)

	// The solve was recorded.
	out, err = execute(t, "history", "export", "--last", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, want.String()+"\n", out)
}

func TestSolveJSON(t *testing.T) {
	db := sandbox(t)
	want := sampleSolution(t)

	out, err := execute(t, "solve", "--sample", "--format", "json", "--no-save", "--db", db)
	require.NoError(t, err)

	var doc solutionJSON
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, want.Notation(), doc.Moves)
	assert.Equal(t, len(want.Moves), doc.MoveCount)
	assert.Equal(t, notation.CompactString(want.Moves), doc.Compact)
	require.Len(t, doc.Segments, 6)
	assert.Equal(t, "cross_edges", doc.Segments[0].Phase)

	// --no-save left the history empty.
	_, err = execute(t, "history", "export", "--last", "--db", db)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSolveFromFile(t *testing.T) {
	db := sandbox(t)
	path := filepath.Join(t.TempDir(), "cube.yaml")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, input.Write(f, cubesolver.SampleGrid(), input.FormatYAML))
	require.NoError(t, f.Close())

	out, err := execute(t, "solve", path, "--no-save", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, sampleSolution(t).String()+"\n", out)
}

func TestSolveKeys(t *testing.T) {
	db := sandbox(t)
	out, err := execute(t, "solve", "--scramble", "R U F'", "--format", "keys", "--no-save", "--db", db)
	require.NoError(t, err)

	keys := map[string]bool{}
	for _, k := range notation.DefaultKeymap() {
		keys[k] = true
	}
	fields := strings.Fields(out)
	require.NotEmpty(t, fields)
	for _, k := range fields {
		assert.True(t, keys[k], "unexpected key %q", k)
	}
}

func TestSolveSpokenAndPhases(t *testing.T) {
	db := sandbox(t)
	out, err := execute(t, "solve", "--sample", "--format", "spoken", "--no-save", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, notation.SpokenSequence(sampleSolution(t).Moves), strings.Split(strings.TrimSpace(out), "\n"))

	out, err = execute(t, "solve", "--sample", "--phases", "--no-save", "--db", db)
	require.NoError(t, err)
	for _, p := range cubesolver.Phases()[:6] {
		assert.Contains(t, out, p.DisplayName())
	}
}

func TestSolveSourceErrors(t *testing.T) {
	db := sandbox(t)

	_, err := execute(t, "solve", "--db", db)
	assert.Error(t, err, "no source")

	_, err = execute(t, "solve", "cube.json", "--sample", "--db", db)
	assert.Error(t, err, "two sources")

	_, err = execute(t, "solve", "--scramble", "R X", "--db", db)
	assert.Error(t, err, "bad notation")

	_, err = execute(t, "solve", "--sample", "--format", "xml", "--no-save", "--db", db)
	assert.ErrorContains(t, err, "unknown format")
}

func TestSolveInvalidCube(t *testing.T) {
	db := sandbox(t)
	g := cubesolver.SolvedGrid()
	g[cubesolver.Front][0][0] = g[cubesolver.Back][0][0]

	path := filepath.Join(t.TempDir(), "bad.json")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, input.Write(f, g, input.FormatJSON))
	require.NoError(t, f.Close())

	_, err = execute(t, "solve", path, "--db", db)
	assert.EqualError(t, err, "Invalid cube state")
}

func TestSolveRotationLimit(t *testing.T) {
	db := sandbox(t)
	_, err := execute(t, "solve", "--sample", "--max-rotations", "10", "--db", db)
	assert.ErrorContains(t, err, "Solver stopped during")
}

func TestScrambleDeterministic(t *testing.T) {
	sandbox(t)
	a, err := execute(t, "scramble", "--seed", "42", "--format", "moves")
	require.NoError(t, err)
	b, err := execute(t, "scramble", "--seed", "42", "--format", "moves")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, cubesolver.FormatMoves(cubesolver.Scramble(42, 25))+"\n", a)

	out, err := execute(t, "scramble", "--seed", "7", "-n", "30")
	require.NoError(t, err)
	g, err := input.Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, cubesolver.ScrambledGrid(7, 30), g)

	_, err = execute(t, "scramble", "--length", "0")
	assert.Error(t, err)
}

func TestHistoryCommands(t *testing.T) {
	db := sandbox(t)
	_, err := execute(t, "solve", "--sample", "--db", db)
	require.NoError(t, err)
	_, err = execute(t, "solve", "--scramble", "R U R'", "--db", db)
	require.NoError(t, err)

	out, err := execute(t, "history", "list", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "cli"), out)

	out, err = execute(t, "history", "show", "--last", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Solve:")
	assert.Contains(t, out, "Second Layer Edges")

	out, err = execute(t, "history", "export", "--last", "--format", "cube", "--db", db)
	require.NoError(t, err)
	g, err := input.Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, cubesolver.FromMoves([]cubesolver.Move{cubesolver.R, cubesolver.U, cubesolver.RPrime}).Grid(), g)

	path := filepath.Join(t.TempDir(), "out", "moves.json")
	_, err = execute(t, "history", "export", "--last", "--format", "json", "-o", path, "--db", db)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var moves []struct {
		MoveIndex int    `json:"move_index"`
		Notation  string `json:"notation"`
		Phase     string `json:"phase"`
	}
	require.NoError(t, json.Unmarshal(data, &moves))
	require.NotEmpty(t, moves)
	assert.Equal(t, "cross_edges", moves[0].Phase)

	_, err = execute(t, "history", "show", "--db", db)
	assert.ErrorContains(t, err, "specify a solve ID or --last")

	_, err = execute(t, "history", "show", "no-such-solve", "--db", db)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestHistoryDisabled(t *testing.T) {
	sandbox(t)
	_, err := execute(t, "history", "list", "--storage", "none")
	assert.EqualError(t, err, "History is disabled")
}

func TestStatus(t *testing.T) {
	db := sandbox(t)
	out, err := execute(t, "status", "--db", db, "--max-rotations", "321")
	require.NoError(t, err)
	assert.Contains(t, out, "Rotation limit: 321")
	assert.Contains(t, out, "Database:       "+db)
	assert.Contains(t, out, "Total solves:   0")
	assert.Contains(t, out, "Cache:          disabled")
}

func TestConfigFileAndFlagPrecedence(t *testing.T) {
	db := sandbox(t)
	require.NoError(t, os.WriteFile("cubesolver.yaml", []byte("solver:\n  max_rotations: 10\n"), 0644))

	// The file limit stops the solve.
	_, err := execute(t, "solve", "--sample", "--no-save", "--db", db)
	assert.Error(t, err)

	// A flag overrides the file.
	_, err = execute(t, "solve", "--sample", "--no-save", "--db", db, "--max-rotations", "500")
	assert.NoError(t, err)
}

func TestAnalyze(t *testing.T) {
	db := sandbox(t)
	out, err := execute(t, "analyze", "--sample", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, fmt.Sprintf("Moves:        %d", len(sampleSolution(t).Moves)))
	assert.Contains(t, out, "R' D' R D")

	out, err = execute(t, "analyze", "--sample", "--format", "json", "--max-n", "0", "--db", db)
	require.NoError(t, err)
	var report analysis.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Len(t, report.Phases, 6)
	assert.Empty(t, report.NGrams)

	// A recorded solve analyzes the same as solving again.
	_, err = execute(t, "solve", "--sample", "--db", db)
	require.NoError(t, err)
	last, err := execute(t, "analyze", "--last", "--format", "json", "--db", db)
	require.NoError(t, err)
	fresh, err := execute(t, "analyze", "--sample", "--format", "json", "--db", db)
	require.NoError(t, err)
	assert.JSONEq(t, fresh, last)

	_, err = execute(t, "analyze", "--last", "--sample", "--db", db)
	assert.ErrorContains(t, err, "cannot be combined")
}
