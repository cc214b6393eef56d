// Command snake is the interactive terminal frontend for the game
// engine. It owns the three collaborators the engine expects: a frame
// timer that calls Advance, key handling that feeds the input
// operations, and a renderer for the board.
//
// Optional flags record the session to a Parquet replay file and serve
// live snapshots to websocket spectators.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/gridsnake/engine"
	"github.com/brensch/gridsnake/game"
	"github.com/brensch/gridsnake/replay"
	"github.com/brensch/gridsnake/stream"
	"github.com/brensch/gridsnake/tui"
)

// frameInterval is the cadence at which we offer timestamps to the
// engine. The engine's own speed gate decides which frames become
// ticks, so this only needs to be faster than the fastest game speed.
const frameInterval = time.Second / 60

type frameMsg time.Time

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

type model struct {
	eng       *engine.Engine
	rec       *replay.Recorder
	hub       *stream.Hub
	sessionID string
	recErr    error
}

func (m model) Init() tea.Cmd {
	return frameCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "w", "k":
			m.eng.SetDirection(0, -1)
		case "down", "s", "j":
			m.eng.SetDirection(0, 1)
		case "left", "a", "h":
			m.eng.SetDirection(-1, 0)
		case "right", "d", "l":
			m.eng.SetDirection(1, 0)
		case " ", "p":
			m.eng.TogglePause()
		case "r":
			m.eng.Reset()
		case "q", "ctrl+c":
			m.eng.Stop()
			return m, tea.Quit
		}
		return m, nil

	case frameMsg:
		res := m.eng.Advance(time.Time(msg))
		if res.Outcome != engine.Skipped {
			m.publish(res, time.Time(msg))
		}
		return m, frameCmd()
	}
	return m, nil
}

// publish fans an applied tick out to the recorder and spectators.
func (m *model) publish(res engine.TickResult, now time.Time) {
	snap := m.eng.Snapshot()
	if m.hub != nil {
		m.hub.Broadcast(snap)
	}
	if m.rec != nil && m.recErr == nil {
		row := replay.NewRow(m.sessionID, snap, m.eng.Direction(), res.Ate, res.Outcome == engine.Collided, now)
		if err := m.rec.Record(row); err != nil {
			// Keep playing; just stop recording.
			m.recErr = err
			log.Printf("recording stopped: %v", err)
		}
	}
}

func (m model) View() string {
	snap := m.eng.Snapshot()

	view := tui.View(snap) + "\n"
	view += tui.Status(fmt.Sprintf(" score %d   speed %dms   length %d", snap.Score, snap.SpeedMs, len(snap.Snake))) + "\n"

	switch m.eng.State() {
	case game.PhasePaused:
		view += tui.Banner(" paused — space to resume") + "\n"
	case game.PhaseGameOver:
		view += tui.Banner(fmt.Sprintf(" game over — final score %d — r to restart, q to quit", snap.Score)) + "\n"
	default:
		if m.eng.Direction().IsZero() {
			view += tui.Banner(" press an arrow key to move") + "\n"
		}
	}
	view += tui.Status(" arrows/wasd move · space pause · r reset · q quit")
	return view
}

func main() {
	rows := flag.Int("rows", 17, "Board height in cells")
	cols := flag.Int("cols", 17, "Board width in cells")
	speed := flag.Int("speed", 70, "Initial tick interval in milliseconds")
	wrap := flag.Bool("wrap", false, "Wrap at board edges instead of dying")
	seed := flag.Int64("seed", 0, "Food RNG seed (0 = random)")
	record := flag.String("record", "", "Directory to record the session to (empty = no recording)")
	listen := flag.String("listen", "", "Address to serve websocket spectators on, e.g. :8080 (empty = disabled)")
	logFile := flag.String("log", "", "Debug log file (empty = no logging)")
	flag.Parse()

	if *logFile != "" {
		f, err := tea.LogToFile(*logFile, "snake")
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	cfg := engine.DefaultConfig()
	cfg.Rows = *rows
	cfg.Cols = *cols
	cfg.InitialSpeed = time.Duration(*speed) * time.Millisecond
	cfg.DieFromWalls = !*wrap
	if *seed != 0 {
		cfg.Rand = rand.New(rand.NewSource(*seed))
	}

	eng, err := engine.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	m := model{eng: eng, sessionID: replay.NewSessionID()}

	if *record != "" {
		rec, err := replay.NewRecorder(*record, m.sessionID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open recorder: %v\n", err)
			os.Exit(1)
		}
		m.rec = rec
	}

	var srv *http.Server
	if *listen != "" {
		m.hub = stream.NewHub()
		mux := http.NewServeMux()
		mux.Handle("/watch", m.hub)
		srv = &http.Server{Addr: *listen, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("spectator server: %v", err)
			}
		}()
	}

	eng.Start()

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "run: %v\n", err)
		os.Exit(1)
	}

	if m.hub != nil {
		m.hub.Close()
		_ = srv.Close()
	}
	if m.rec != nil {
		outPath, rowCount, err := m.rec.Finalize()
		if err != nil {
			fmt.Fprintf(os.Stderr, "finalize recording: %v\n", err)
			os.Exit(1)
		}
		if outPath != "" {
			fmt.Printf("recorded %d ticks to %s\n", rowCount, outPath)
		}
	}
}
