// SPDX-License-Identifier: MPL-2.0

// Package runtime runs a resolved game invocation as a foreground child
// process.
//
// An Invocation is the fully built command: program, arguments, environment
// overlay and working directory. ProcessExecutor lays the overlay over the
// inherited environment, attaches the launcher's standard streams, waits for
// the child and reports its ExitCode. Spawn failures are classified as
// ErrExecutableNotFound or ErrPermissionDenied so the CLI can explain them.
//
// Cancelling the context does not kill the child: the executor forwards an
// interrupt instead and keeps waiting, so games get the chance to shut down
// on their own.
package runtime
