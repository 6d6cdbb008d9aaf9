package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Recorder captures TUI state changes and renders for debugging.
type Recorder struct {
	logFile  *os.File
	frameDir string
	frameNum int
}

// NewRecorder creates a recorder writing into a fresh directory under dir.
func NewRecorder(dir string) (*Recorder, error) {
	recordDir := filepath.Join(dir, fmt.Sprintf("vegboard-record-%d", time.Now().Unix()))
	if err := os.MkdirAll(recordDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create recording directory: %w", err)
	}

	logPath := filepath.Join(recordDir, "tui.log")
	logFile, err := os.Create(filepath.Clean(logPath)) // #nosec G304 -- safe constructed path
	if err != nil {
		return nil, fmt.Errorf("failed to create recording log: %w", err)
	}

	r := &Recorder{
		logFile:  logFile,
		frameDir: recordDir,
	}
	r.Log("TUI Recorder started at %s", recordDir)
	return r, nil
}

// Dir returns the directory frames are written to.
func (r *Recorder) Dir() string {
	return r.frameDir
}

// Frames returns the number of frames captured so far.
func (r *Recorder) Frames() int {
	return r.frameNum
}

// RecordState captures the model after it handled msg.
func (r *Recorder) RecordState(m Model, msg tea.Msg) {
	r.frameNum++

	r.Log("\n=== Frame %d ===", r.frameNum)
	r.Log("Time: %s", time.Now().Format("15:04:05.000"))
	r.Log("Message Type: %T", msg)
	r.Log("Page: %s", m.page)
	r.Log("Modal: %d (id %d)", m.modal, m.modalID)
	r.Log("Loading: %d", m.loading)
	r.Log("Board rows: %d, own rows: %d", m.boardTable.Len(), m.dashTable.Len())

	view := m.View()
	framePath := filepath.Join(r.frameDir, fmt.Sprintf("frame-%04d.txt", r.frameNum))
	if err := os.WriteFile(framePath, []byte(view), 0600); err != nil {
		r.Log("Error saving frame: %v", err)
	}
}

// Log writes to the log file.
func (r *Recorder) Log(format string, args ...any) {
	if r.logFile == nil {
		return
	}
	if _, err := fmt.Fprintf(r.logFile, format+"\n", args...); err != nil {
		return
	}
	_ = r.logFile.Sync()
}

// Close closes the recorder.
func (r *Recorder) Close() {
	if r.logFile != nil {
		r.Log("Recording complete. %d frames captured.", r.frameNum)
		_ = r.logFile.Close() // Best effort close
		r.logFile = nil
	}
}

// recordingModel records every update of the wrapped model.
type recordingModel struct {
	recorder *Recorder
	inner    Model
}

func (r recordingModel) Init() tea.Cmd {
	return r.inner.Init()
}

func (r recordingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := r.inner.Update(msg)
	if m, ok := next.(Model); ok {
		r.inner = m
		r.recorder.RecordState(m, msg)
	}
	return r, cmd
}

func (r recordingModel) View() string {
	return r.inner.View()
}
