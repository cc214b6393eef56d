package replay

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// Recorder streams tick rows for one session into a Parquet file.
//
// Rows are written into outDir/tmp and the file is renamed into outDir
// on Finalize, so readers never observe a partially-written session.
// A session that recorded no rows leaves nothing behind.
type Recorder struct {
	outDir  string
	tmpDir  string
	tmpPath string
	outPath string

	file   *os.File
	writer *parquet.GenericWriter[TickRow]

	bufferedRows int
}

// NewRecorder opens a recorder writing session files named
// <sessionID>.parquet under outDir.
func NewRecorder(outDir, sessionID string) (*Recorder, error) {
	if outDir == "" {
		return nil, fmt.Errorf("outDir is required")
	}
	if sessionID == "" {
		return nil, fmt.Errorf("sessionID is required")
	}

	absOut, err := filepath.Abs(outDir)
	if err != nil {
		absOut = outDir
	}
	tmpDir := filepath.Join(absOut, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return nil, fmt.Errorf("create tmp dir: %w", err)
	}

	name := sessionID + ".parquet"
	tmpPath := filepath.Join(tmpDir, name)
	outPath := filepath.Join(absOut, name)

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open tmp parquet: %w", err)
	}

	w := parquet.NewGenericWriter[TickRow](
		f,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
	)
	w.SetKeyValueMetadata("schema", "tick_row_v1")

	return &Recorder{
		outDir:  absOut,
		tmpDir:  tmpDir,
		tmpPath: tmpPath,
		outPath: outPath,
		file:    f,
		writer:  w,
	}, nil
}

func (r *Recorder) OutPath() string   { return r.outPath }
func (r *Recorder) BufferedRows() int { return r.bufferedRows }

// Record appends one tick row.
func (r *Recorder) Record(row TickRow) error {
	if r.writer == nil || r.file == nil {
		return fmt.Errorf("recorder is closed")
	}
	if _, err := r.writer.Write([]TickRow{row}); err != nil {
		return err
	}
	r.bufferedRows++
	return nil
}

// Finalize closes the writer and moves the session file into outDir.
// If no rows were recorded, the tmp file is removed and outPath is
// returned empty.
func (r *Recorder) Finalize() (outPath string, rows int, err error) {
	if r.writer == nil && r.file == nil {
		return "", 0, nil
	}

	rows = r.bufferedRows
	outPath = r.outPath

	var closeErr error
	if r.writer != nil {
		closeErr = r.writer.Close()
		r.writer = nil
	}
	var fileErr error
	if r.file != nil {
		_ = r.file.Sync()
		fileErr = r.file.Close()
		r.file = nil
	}
	if closeErr != nil {
		return "", 0, fmt.Errorf("close parquet writer: %w", closeErr)
	}
	if fileErr != nil {
		return "", 0, fmt.Errorf("close parquet file: %w", fileErr)
	}

	if rows == 0 {
		_ = os.Remove(r.tmpPath)
		return "", 0, nil
	}
	if err := os.Rename(r.tmpPath, r.outPath); err != nil {
		return "", 0, fmt.Errorf("rename parquet: %w", err)
	}
	return outPath, rows, nil
}

// NewSessionID returns a unique session identifier based on the start
// time, e.g. "session_1756424461000123456".
func NewSessionID() string {
	return fmt.Sprintf("session_%d", time.Now().UnixNano())
}
