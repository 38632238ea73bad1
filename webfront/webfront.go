// Copyright 2026 The VHF Scan Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package webfront launches and stops the external visualization
// front-end as a child process, the one external collaborator the
// Main Control Loop owns directly.
package webfront

import (
	"errors"
	"fmt"
	"os/exec"
	"sync"
)

// Launcher starts and stops a single "npm start" child process rooted
// at a given working directory. It is not safe for concurrent Start
// calls; Stop may be called from any goroutine once Start returns.
type Launcher struct {
	mu  sync.Mutex
	cmd *exec.Cmd
}

// Start launches "npm start" with its working directory set to dir.
// It returns an error if a process is already running or the command
// could not be started.
func (l *Launcher) Start(dir string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cmd != nil {
		return fmt.Errorf("webfront: already running with pid %d", l.cmd.Process.Pid)
	}

	cmd := exec.Command("npm", "start")
	cmd.Dir = dir
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("webfront: start npm start: %w", err)
	}
	l.cmd = cmd
	return nil
}

// Stop sends SIGTERM to the child process and waits for it to exit.
// It is a no-op if no process is running.
func (l *Launcher) Stop() error {
	l.mu.Lock()
	cmd := l.cmd
	l.mu.Unlock()

	if cmd == nil {
		return nil
	}

	if err := cmd.Process.Signal(signalTerminate); err != nil {
		// The process may already be gone; still wait to reap it.
		_ = err
	}

	err := cmd.Wait()

	l.mu.Lock()
	l.cmd = nil
	l.mu.Unlock()

	// A process we just signaled to terminate is expected to exit
	// with a non-zero or signal-terminated status; only report
	// failures to even reap the process.
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return fmt.Errorf("webfront: wait for exit: %w", err)
	}
	return nil
}

// Running reports whether a child process is currently tracked.
func (l *Launcher) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cmd != nil
}
