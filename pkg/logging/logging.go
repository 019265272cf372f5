// Package logging sets up the slog backend shared by every subsystem, with
// optional rotated log files.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"
)

// LogConfig configures a LogBackend.
type LogConfig struct {
	// LogFile is the path of the rotated log file. Empty logs to stdout only.
	LogFile string

	// DebugLevel is either a single level ("info") applied to every
	// subsystem, or a comma separated list of SUBSYS=level pairs optionally
	// led by a default level ("info,LUT=debug").
	DebugLevel string

	// MaxLogFiles is the number of rolled files kept next to LogFile.
	MaxLogFiles int

	// Stdout receives a copy of every line. Nil means os.Stdout.
	Stdout io.Writer
}

// LogBackend hands out subsystem loggers that share one output.
type LogBackend struct {
	backend  *slog.Backend
	rotator  *rotator.Rotator
	defLevel slog.Level
	levels   map[string]slog.Level

	mtx     sync.Mutex
	loggers map[string]slog.Logger
}

// NewLogBackend creates the backend described by cfg.
func NewLogBackend(cfg LogConfig) (*LogBackend, error) {
	defLevel, levels, err := parseDebugLevel(cfg.DebugLevel)
	if err != nil {
		return nil, err
	}

	out := cfg.Stdout
	if out == nil {
		out = os.Stdout
	}

	var r *rotator.Rotator
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0700); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %v", err)
		}
		maxRolls := cfg.MaxLogFiles
		if maxRolls <= 0 {
			maxRolls = 3
		}
		r, err = rotator.New(cfg.LogFile, 10*1024, false, maxRolls)
		if err != nil {
			return nil, fmt.Errorf("failed to create file rotator: %v", err)
		}
		out = io.MultiWriter(out, r)
	}

	return &LogBackend{
		backend:  slog.NewBackend(out),
		rotator:  r,
		defLevel: defLevel,
		levels:   levels,
		loggers:  make(map[string]slog.Logger),
	}, nil
}

// Logger returns the logger for subsys, creating it on first use.
func (lb *LogBackend) Logger(subsys string) slog.Logger {
	lb.mtx.Lock()
	defer lb.mtx.Unlock()

	if l, ok := lb.loggers[subsys]; ok {
		return l
	}
	l := lb.backend.Logger(subsys)
	level, ok := lb.levels[subsys]
	if !ok {
		level = lb.defLevel
	}
	l.SetLevel(level)
	lb.loggers[subsys] = l
	return l
}

// Close flushes and closes the log file, if any.
func (lb *LogBackend) Close() error {
	if lb.rotator == nil {
		return nil
	}
	return lb.rotator.Close()
}

func parseDebugLevel(s string) (slog.Level, map[string]slog.Level, error) {
	def := slog.LevelInfo
	levels := make(map[string]slog.Level)
	if strings.TrimSpace(s) == "" {
		return def, levels, nil
	}

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		subsys, lvl, pair := strings.Cut(part, "=")
		if !pair {
			lvl = subsys
		}
		level, ok := slog.LevelFromString(strings.ToLower(lvl))
		if !ok {
			return 0, nil, fmt.Errorf("invalid debug level %q", lvl)
		}
		if pair {
			levels[subsys] = level
		} else {
			def = level
		}
	}
	return def, levels, nil
}
