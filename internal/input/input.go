// Package input reads and writes cube states as JSON or YAML documents.
//
// A document is either a bare 6x3x3 array of color codes in
// Back, Top, Front, Bottom, Left, Right order, or a mapping:
//
//	scrambled_cube: [[[...]]]
//
// or
//
//	scramble: "R U R' U'"
//
// The mapping form matches the body of POST /solve_cube.
package input

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/cubesolver"
)

// ErrMalformed marks input that cannot be read as a cube document.
var ErrMalformed = errors.New("input: malformed cube document")

// Document is the mapping form of a cube file.
type Document struct {
	ScrambledCube [][][]int `json:"scrambled_cube,omitempty" yaml:"scrambled_cube,omitempty"`
	Scramble      string    `json:"scramble,omitempty" yaml:"scramble,omitempty"`
}

// Grid converts the document into a grid. Exactly one of ScrambledCube
// and Scramble must be set.
func (d *Document) Grid() (cubesolver.Grid, error) {
	switch {
	case d.ScrambledCube != nil && d.Scramble != "":
		return cubesolver.Grid{}, fmt.Errorf("%w: both scrambled_cube and scramble set", ErrMalformed)
	case d.ScrambledCube != nil:
		return ToGrid(d.ScrambledCube)
	case d.Scramble != "":
		moves, err := cubesolver.ParseMoves(d.Scramble)
		if err != nil {
			return cubesolver.Grid{}, err
		}
		return cubesolver.FromMoves(moves).Grid(), nil
	default:
		return cubesolver.Grid{}, fmt.Errorf("%w: no cube given", ErrMalformed)
	}
}

// ToGrid checks the shape of raw and converts it. Color codes are range
// checked later by cubesolver.Validate.
func ToGrid(raw [][][]int) (cubesolver.Grid, error) {
	var g cubesolver.Grid
	if len(raw) != 6 {
		return g, fmt.Errorf("%w: want 6 faces, got %d", ErrMalformed, len(raw))
	}
	for f, face := range raw {
		if len(face) != 3 {
			return g, fmt.Errorf("%w: face %s has %d rows", ErrMalformed, cubesolver.Face(f), len(face))
		}
		for r, row := range face {
			if len(row) != 3 {
				return g, fmt.Errorf("%w: face %s row %d has %d cells", ErrMalformed, cubesolver.Face(f), r, len(row))
			}
			for c, v := range row {
				if v < 0 || v > 255 {
					return g, fmt.Errorf("%w: color code %d out of range", cubesolver.ErrInvalidCubeState, v)
				}
				g[f][r][c] = cubesolver.Color(v)
			}
		}
	}
	return g, nil
}

// FromGrid converts g into the nested array form.
func FromGrid(g cubesolver.Grid) [][][]int {
	out := make([][][]int, 6)
	for f := range g {
		out[f] = make([][]int, 3)
		for r := range g[f] {
			out[f][r] = make([]int, 3)
			for c := range g[f][r] {
				out[f][r][c] = int(g[f][r][c])
			}
		}
	}
	return out
}

// Parse reads a document from data. JSON input is accepted as YAML.
func Parse(data []byte) (cubesolver.Grid, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return cubesolver.Grid{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return cubesolver.Grid{}, fmt.Errorf("%w: empty document", ErrMalformed)
	}

	node := root.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		var raw [][][]int
		if err := node.Decode(&raw); err != nil {
			return cubesolver.Grid{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return ToGrid(raw)
	case yaml.MappingNode:
		var doc Document
		if err := node.Decode(&doc); err != nil {
			return cubesolver.Grid{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return doc.Grid()
	default:
		return cubesolver.Grid{}, fmt.Errorf("%w: expected a sequence or mapping", ErrMalformed)
	}
}

// Read parses a document from r.
func Read(r io.Reader) (cubesolver.Grid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return cubesolver.Grid{}, fmt.Errorf("failed to read cube: %w", err)
	}
	return Parse(data)
}

// ReadFile parses the document at path; "-" reads stdin.
func ReadFile(path string) (cubesolver.Grid, error) {
	if path == "-" {
		return Read(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cubesolver.Grid{}, fmt.Errorf("failed to read cube file: %w", err)
	}
	return Parse(data)
}

// Format selects the encoding used by Write.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Write encodes g as a Document in the given format.
func Write(w io.Writer, g cubesolver.Grid, format Format) error {
	doc := Document{ScrambledCube: FromGrid(g)}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		return enc.Encode(doc)
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(yamlDocument(g)); err != nil {
			return fmt.Errorf("failed to encode cube: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode cube: %w", err)
		}
		_, err := w.Write(buf.Bytes())
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// yamlDocument lays g out with one flow sequence per face row.
func yamlDocument(g cubesolver.Grid) *yaml.Node {
	faces := &yaml.Node{Kind: yaml.SequenceNode}
	for f := range g {
		face := &yaml.Node{Kind: yaml.SequenceNode}
		for r := range g[f] {
			row := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
			for c := range g[f][r] {
				row.Content = append(row.Content, &yaml.Node{
					Kind:  yaml.ScalarNode,
					Tag:   "!!int",
					Value: fmt.Sprint(int(g[f][r][c])),
				})
			}
			face.Content = append(face.Content, row)
		}
		faces.Content = append(faces.Content, face)
	}
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: "scrambled_cube"},
			faces,
		},
	}
}
