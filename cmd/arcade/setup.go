package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/minigames/internal/audio"
	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/platform/tui"
	"github.com/vovakirdan/minigames/internal/registry"
	"github.com/vovakirdan/minigames/internal/storage"
)

// Flags shared by play and menu.
var (
	flagConfig     string
	flagDifficulty string
	flagMute       bool
)

// session bundles everything a local game run needs.
type session struct {
	cfg     core.RuntimeConfig
	opts    registry.Options
	store   *storage.Store
	sink    audio.Sink
	logger  *log.Logger
	closers []func()
}

// openSession reads the shared flags and opens storage, audio and the log.
// Storage and audio are optional; the game still works without them.
func openSession() (*session, error) {
	preset, err := parseDifficulty(flagDifficulty)
	if err != nil {
		return nil, err
	}

	s := &session{}
	s.logger, err = newLogger(flagLogPath, &s.closers)
	if err != nil {
		return nil, err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	s.cfg = core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	s.opts = registry.Options{
		ConfigPath: flagConfig,
		Difficulty: preset,
		Logger:     s.logger,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		s.logger.Warn("storage disabled", "err", err)
	} else {
		s.store = store
		s.closers = append(s.closers, func() { store.Close() })
	}

	sink, closeAudio, err := audio.Open(flagMute)
	if err != nil {
		s.logger.Warn("audio disabled", "err", err)
	}
	s.sink = sink
	s.closers = append(s.closers, closeAudio)

	return s, nil
}

// gameOptions returns the collaborators for a tui.GameModel.
func (s *session) gameOptions() tui.GameOptions {
	return tui.GameOptions{
		Store:  s.store,
		Sink:   s.sink,
		Logger: s.logger,
	}
}

// Close releases resources in reverse order of acquisition.
func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// parseDifficulty validates the --difficulty flag. Empty keeps the config as loaded.
func parseDifficulty(s string) (config.DifficultyPreset, error) {
	if s == "" {
		return "", nil
	}
	return config.ParsePreset(s)
}

// newLogger writes debug logs to path, or discards them when path is empty.
// The terminal belongs to the game, so nothing is logged to stderr.
func newLogger(path string, closers *[]func()) (*log.Logger, error) {
	if path == "" {
		return log.New(io.Discard), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	*closers = append(*closers, func() { f.Close() })
	return log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "arcade",
	}), nil
}
