package notation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubesolver"
)

func mustParse(t *testing.T, s string) []cubesolver.Move {
	t.Helper()
	moves, err := cubesolver.ParseMoves(s)
	require.NoError(t, err)
	return moves
}

func TestNormalizeTurn(t *testing.T) {
	tests := map[int]int{-3: 1, -2: 2, -1: -1, 0: 0, 1: 1, 2: 2, 3: -1, 4: 0, 5: 1}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeTurn(in), "turn %d", in)
	}
}

func TestCompact(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"U U", "U2"},
		{"U U'", ""},
		{"U U U", "U'"},
		{"U U U U", ""},
		{"R U R' U'", "R U R' U'"},
		{"U R R' U", "U2"},
		{"F F' F' R", "F' R"},
		{"M M E", "M2 E"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CompactString(mustParse(t, tt.in)), "input %q", tt.in)
	}
}

func TestCompactPreservesState(t *testing.T) {
	sol, err := cubesolver.Solve(cubesolver.SampleGrid())
	require.NoError(t, err)

	steps := Compact(sol.Moves)
	assert.Less(t, len(steps), len(sol.Moves))

	c, err := cubesolver.FromGrid(cubesolver.SampleGrid())
	require.NoError(t, err)
	c.Apply(Expand(steps)...)
	assert.True(t, c.IsSolved())
}

func TestSpoken(t *testing.T) {
	got := SpokenSequence(mustParse(t, "R R U' F B' D D L M"))
	assert.Equal(t, []string{
		"R up x 2",
		"T rotate left",
		"F rotate clockwise",
		"Back rotate anti-clockwise",
		"B rotate right x 2",
		"L down",
		"M down",
	}, got)
}

func TestRemapDefaultKeymap(t *testing.T) {
	got, err := Remap(mustParse(t, "L D R U F B L' D' R' U' F' B'"), DefaultKeymap())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "s", "d", "w", "q", "e", "p", "o", "i", "l", "k", "j"}, got)

	_, err = Remap(mustParse(t, "R M"), DefaultKeymap())
	assert.True(t, errors.Is(err, ErrUnmapped))
}

func TestRemapSolutionUsesOnlyOuterLayers(t *testing.T) {
	sol, err := cubesolver.Solve(cubesolver.ScrambledGrid(12, 25))
	require.NoError(t, err)
	keys, err := Remap(sol.Moves, DefaultKeymap())
	require.NoError(t, err)
	assert.Len(t, keys, len(sol.Moves))
}

func TestLoadKeymap(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "keys.yaml")
	require.NoError(t, os.WriteFile(good, []byte("R: right\n\"R'\": right-back\n"), 0o644))

	km, err := LoadKeymap(good)
	require.NoError(t, err)
	assert.Equal(t, Keymap{"R": "right", "R'": "right-back"}, km)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("X: nope\n"), 0o644))
	_, err = LoadKeymap(bad)
	assert.True(t, errors.Is(err, cubesolver.ErrInvalidNotation))
}
