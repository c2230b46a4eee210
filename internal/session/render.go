package session

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper-cli/internal/mines"
)

// Render writes the visible state of g with row and column numbers. Opened
// cells with no mined neighbours are drawn as ".".
func Render(w io.Writer, g *mines.Grid) {
	width := len(strconv.Itoa(g.Size() - 1))
	cell := func(s string) string {
		return fmt.Sprintf("%*s ", width, s)
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", width+2))
	for col := range g.Size() {
		b.WriteString(cell(strconv.Itoa(col)))
	}
	b.WriteString("\n")

	for row := range g.Size() {
		fmt.Fprintf(&b, "%*d: ", width, row)
		for col := range g.Size() {
			m := g.Mark(row, col)
			if m == 0 {
				b.WriteString(cell("."))
			} else {
				b.WriteString(cell(m.String()))
			}
		}
		b.WriteString("\n")
	}
	io.WriteString(w, b.String())
}
