// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"context"
	"slices"
	"sync"

	"github.com/gamelaunch/game/internal/runtime"
)

type (
	// RecordingExecutor is a runtime.Executor that records every invocation
	// and answers with Code and Err without starting a process.
	RecordingExecutor struct {
		Code runtime.ExitCode
		Err  error

		mu    sync.Mutex
		calls []runtime.Invocation
	}

	// FixedRand always picks index int(f) modulo n.
	FixedRand int
)

// Run records inv and returns the configured result.
func (e *RecordingExecutor) Run(_ context.Context, inv runtime.Invocation) (runtime.ExitCode, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, inv.Clone())
	return e.Code, e.Err
}

// Calls returns the invocations seen so far, oldest first.
func (e *RecordingExecutor) Calls() []runtime.Invocation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.calls)
}

// IntN implements catalog.Rand.
func (f FixedRand) IntN(n int) int { return int(f) % n }
