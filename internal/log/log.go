// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

// InitLogger sets up Apex with a custom handler and a log level from the
// HEROCTL_LOG env variable. HEROCTL_LOG_FILE sends entries to a file instead
// of stderr, which is the only way to see them while the TUI owns the screen.
func InitLogger() {
	level := strings.ToUpper(os.Getenv("HEROCTL_LOG"))
	if level == "" {
		level = "ERROR"
	}

	var w io.Writer = os.Stderr
	if path := os.Getenv("HEROCTL_LOG_FILE"); path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); err == nil { //nolint:mnd
			w = f
		} else {
			fmt.Fprintf(os.Stderr, "failed to open log file %s: %v\n", path, err)
		}
	}

	log.SetHandler(NewCustomHandler(w))

	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid HEROCTL_LOG %q, using error\n", level)
		lvl = log.ErrorLevel
	}
	log.SetLevel(lvl)
}

// CustomHandler formats log messages as single lines.
type CustomHandler struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// NewCustomHandler returns a handler writing to w.
func NewCustomHandler(w io.Writer) *CustomHandler {
	return &CustomHandler{w: w, now: time.Now}
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	timestamp := h.now().Format("2006-01-02 15:04:05")
	level := strings.ToUpper(e.Level.String())

	line := fmt.Sprintf("%s %.1s %s", timestamp, level, e.Message)

	// Fields are sorted so output is stable.
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		line += fmt.Sprintf(" %s=%v", name, e.Fields[name])
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.w, line)
	return err
}
