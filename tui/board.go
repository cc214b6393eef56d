// Package tui renders game snapshots for the terminal frontends.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/brensch/gridsnake/game"
)

const (
	glyphEmpty = ' '
	glyphBody  = '#'
	glyphHead  = '@'
	glyphFood  = '*'
)

var (
	headStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	bodyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	foodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	borderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// BoardRows returns the unstyled board as one string per row, one rune
// per cell. Split out from View so layout is testable without caring
// about ANSI styling.
func BoardRows(snap game.Snapshot) []string {
	grid := make([][]rune, snap.Rows)
	for y := range grid {
		row := make([]rune, snap.Cols)
		for x := range row {
			row[x] = glyphEmpty
		}
		grid[y] = row
	}

	set := func(p game.Point, r rune) {
		if p.Y >= 0 && p.Y < snap.Rows && p.X >= 0 && p.X < snap.Cols {
			grid[p.Y][p.X] = r
		}
	}

	set(snap.Food, glyphFood)
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		g := glyphBody
		if i == 0 {
			g = glyphHead
		}
		set(snap.Snake[i], g)
	}

	rows := make([]string, len(grid))
	for y, row := range grid {
		rows[y] = string(row)
	}
	return rows
}

// View renders the bordered, colored board.
func View(snap game.Snapshot) string {
	var b strings.Builder
	for y, row := range BoardRows(snap) {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, r := range row {
			switch r {
			case glyphHead:
				b.WriteString(headStyle.Render(string(r)))
			case glyphBody:
				b.WriteString(bodyStyle.Render(string(r)))
			case glyphFood:
				b.WriteString(foodStyle.Render(string(r)))
			default:
				b.WriteRune(r)
			}
		}
	}
	return borderStyle.Render(b.String())
}

// Status renders the one-line score/speed summary under the board.
func Status(text string) string { return statusStyle.Render(text) }

// Banner renders an attention line (pause, game over).
func Banner(text string) string { return bannerStyle.Render(text) }
