// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers shared by the launcher's tests: writing
// catalogs to temporary directories, pointing the home directory somewhere
// safe, and an Executor that records invocations instead of running them.
package testutil
