package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/cubesolver"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	phaseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	currentMoveStyle = lipgloss.NewStyle().
				Bold(true).
				Reverse(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// stickerColors maps palette codes to terminal colors.
var stickerColors = map[cubesolver.Color]lipgloss.Color{
	cubesolver.Blue:   lipgloss.Color("27"),
	cubesolver.Yellow: lipgloss.Color("226"),
	cubesolver.Green:  lipgloss.Color("34"),
	cubesolver.White:  lipgloss.Color("255"),
	cubesolver.Orange: lipgloss.Color("208"),
	cubesolver.Red:    lipgloss.Color("196"),
}

func sticker(c cubesolver.Color) string {
	col, ok := stickerColors[c]
	if !ok {
		return "??"
	}
	return lipgloss.NewStyle().Background(col).Render("  ")
}

// renderNet draws g as a colored net in the layout of Cube.String.
func renderNet(g cubesolver.Grid) string {
	var b strings.Builder
	pad := strings.Repeat(" ", 7)

	row := func(f cubesolver.Face, r int) {
		for c := 0; c < 3; c++ {
			b.WriteString(sticker(g[f][r][c]))
		}
		b.WriteByte(' ')
	}

	for _, f := range []cubesolver.Face{cubesolver.Back, cubesolver.Top} {
		for r := 0; r < 3; r++ {
			b.WriteString(pad)
			row(f, r)
			b.WriteByte('\n')
		}
	}
	for r := 0; r < 3; r++ {
		for _, f := range []cubesolver.Face{cubesolver.Left, cubesolver.Front, cubesolver.Right} {
			row(f, r)
		}
		b.WriteByte('\n')
	}
	for r := 0; r < 3; r++ {
		b.WriteString(pad)
		row(cubesolver.Bottom, r)
		b.WriteByte('\n')
	}
	return b.String()
}
