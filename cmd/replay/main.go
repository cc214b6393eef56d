// Command replay plays back a recorded session file in the terminal.
//
// Playback follows the tick interval recorded on each row, so the game
// replays at the speed it was actually played; -fps overrides that
// with a fixed cadence.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/gridsnake/replay"
	"github.com/brensch/gridsnake/tui"
)

type stepMsg struct{}

func stepCmd(d time.Duration) tea.Cmd {
	if d <= 0 {
		d = time.Millisecond
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return stepMsg{}
	})
}

type model struct {
	rows    []replay.TickRow
	idx     int
	playing bool
	fps     int
}

// delay returns how long to wait before showing the next row.
func (m model) delay() time.Duration {
	if m.fps > 0 {
		return time.Second / time.Duration(m.fps)
	}
	return time.Duration(m.rows[m.idx].SpeedMs) * time.Millisecond
}

func (m model) Init() tea.Cmd {
	return stepCmd(m.delay())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case " ", "p":
			m.playing = !m.playing
		case "left", "h":
			m.playing = false
			if m.idx > 0 {
				m.idx--
			}
		case "right", "l":
			m.playing = false
			if m.idx < len(m.rows)-1 {
				m.idx++
			}
		case "home", "g":
			m.playing = false
			m.idx = 0
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil

	case stepMsg:
		if m.playing && m.idx < len(m.rows)-1 {
			m.idx++
		}
		return m, stepCmd(m.delay())
	}
	return m, nil
}

func (m model) View() string {
	row := m.rows[m.idx]
	snap := row.Snapshot()

	view := tui.View(snap) + "\n"
	view += tui.Status(fmt.Sprintf(" %s   tick %d/%d   score %d", row.SessionID, m.idx+1, len(m.rows), row.Score)) + "\n"
	if row.Collided {
		view += tui.Banner(" collision") + "\n"
	} else if !m.playing {
		view += tui.Banner(" paused — space to play") + "\n"
	}
	view += tui.Status(" space play/pause · left/right step · g start · q quit")
	return view
}

func main() {
	file := flag.String("file", "", "Session parquet file to play back")
	fps := flag.Int("fps", 0, "Fixed playback rate in ticks per second (0 = recorded speed)")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: replay -file <session.parquet> [-fps n]")
		os.Exit(1)
	}

	rows, err := replay.Read(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if len(rows) == 0 {
		fmt.Fprintf(os.Stderr, "%s contains no ticks\n", *file)
		os.Exit(1)
	}

	m := model{rows: rows, playing: true, fps: *fps}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "run: %v\n", err)
		os.Exit(1)
	}
}
