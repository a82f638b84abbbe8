// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/gamelaunch/game/internal/runtime"
	"github.com/gamelaunch/game/internal/testutil"
)

const testCatalog = `
[games.quake]
name = "Quake"
cmd = "quake -fullscreen"
tags = ["fps", "retro"]

[games.morrowind]
name = "Morrowind"
cmd = "openmw"
tags = ["rpg", "fantasy"]

[games.witcher]
wine_exe = "witcher.exe"
use_vk = false
env = { DXVK_HUD = "1" }
tags = ["rpg"]

[games.monkey]
scummvm_id = "monkey"
installed = false
tags = ["adventure"]
`

type cliResult struct {
	code   int
	stdout string
	stderr string
}

func newTestApp(t *testing.T, exec runtime.Executor, env map[string]string) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{
		Executor:  exec,
		Rand:      testutil.FixedRand(0),
		Getenv:    func(name string) string { return env[name] },
		Stdout:    &stdout,
		Stderr:    &stderr,
		ConfigDir: t.TempDir(),
	})
	return app, &stdout, &stderr
}

// runCLI runs args against testCatalog with a recording executor.
func runCLI(t *testing.T, exec *testutil.RecordingExecutor, args ...string) cliResult {
	t.Helper()

	app, stdout, stderr := newTestApp(t, exec, nil)
	args = append([]string{"--catalog", testutil.WriteCatalog(t, testCatalog)}, args...)
	code := run(context.Background(), app, args)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestListCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"all installed", []string{"list"}, []string{"morrowind - Morrowind", "quake - Quake", "witcher - witcher"}},
		{"single tag", []string{"list", "rpg"}, []string{"morrowind - Morrowind", "witcher - witcher"}},
		{"alternatives", []string{"list", "fps", "fantasy"}, []string{"morrowind - Morrowind", "quake - Quake"}},
		{"negation", []string{"list", "rpg,!fantasy"}, []string{"witcher - witcher"}},
		{"id as tag", []string{"list", "quake"}, []string{"quake - Quake"}},
		{"id and tag in one group", []string{"list", "quake,fps"}, nil},
		{"negated id", []string{"list", "fps,!quake"}, []string{"quake - Quake"}},
		{"include uninstalled", []string{"list", "--all", "adventure"}, []string{"monkey - monkey"}},
		{"uninstalled hidden", []string{"list", "adventure"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := runCLI(t, &testutil.RecordingExecutor{}, tt.args...)
			if res.code != 0 {
				t.Fatalf("exit code = %d, stderr = %s", res.code, res.stderr)
			}
			var got []string
			if out := strings.TrimSpace(res.stdout); out != "" {
				got = strings.Split(out, "\n")
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("list output = %q, want %q", res.stdout, tt.want)
			}
		})
	}
}

func TestListLong(t *testing.T) {
	t.Parallel()

	res := runCLI(t, &testutil.RecordingExecutor{}, "list", "--long", "--all")
	if res.code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", res.code, res.stderr)
	}
	for _, want := range []string{"ID", "Backend", "Installed", "quake", "wine", "scummvm", "fantasy, rpg"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("list --long output missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestListInvalidQuery(t *testing.T) {
	t.Parallel()

	res := runCLI(t, &testutil.RecordingExecutor{}, "list", "rpg,,fps")
	if res.code != int(runtime.ExitFailure) {
		t.Errorf("exit code = %d, want %d", res.code, runtime.ExitFailure)
	}
	if !strings.Contains(res.stderr, "parse tag query") {
		t.Errorf("stderr = %q, want parse error", res.stderr)
	}
}

func TestTagsCommand(t *testing.T) {
	t.Parallel()

	res := runCLI(t, &testutil.RecordingExecutor{}, "tags")
	if res.code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", res.code, res.stderr)
	}
	want := []string{"adventure", "fantasy", "fps", "retro", "rpg"}
	if got := strings.Fields(res.stdout); !slices.Equal(got, want) {
		t.Errorf("tags = %q, want %q", got, want)
	}
}

func TestPlayCommand(t *testing.T) {
	t.Parallel()

	exec := &testutil.RecordingExecutor{}
	res := runCLI(t, exec, "play", "witcher")
	if res.code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", res.code, res.stderr)
	}
	if len(exec.Calls()) != 1 {
		t.Fatalf("executor ran %d times, want 1", len(exec.Calls()))
	}

	inv := exec.Calls()[0]
	if want := []string{"mangohud", "wine", "witcher.exe"}; !slices.Equal(inv.Argv(), want) {
		t.Errorf("argv = %q, want %q", inv.Argv(), want)
	}
	if inv.Env["WINEDLLOVERRIDES"] == "" {
		t.Error("WINEDLLOVERRIDES not set for use_vk = false")
	}
	if inv.Env["DXVK_HUD"] != "1" {
		t.Errorf("DXVK_HUD = %q, want 1", inv.Env["DXVK_HUD"])
	}
}

func TestPlayForwardsExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		code      runtime.ExitCode
		want      int
		wantQuiet bool
	}{
		{name: "failure", code: 3, want: 3, wantQuiet: true},
		{name: "killed by signal", code: 130, want: 130, wantQuiet: true},
		{name: "above 255", code: 300, want: 1},
		{name: "negative", code: -1, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := runCLI(t, &testutil.RecordingExecutor{Code: tt.code}, "play", "quake")
			if res.code != tt.want {
				t.Errorf("exit code = %d, want %d", res.code, tt.want)
			}
			if tt.wantQuiet && res.stderr != "" {
				t.Errorf("stderr = %q, want nothing for a game's own failure", res.stderr)
			}
		})
	}
}

func TestPlayErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		exec       *testutil.RecordingExecutor
		args       []string
		wantStderr string
		wantRuns   int
	}{
		{"unknown id", &testutil.RecordingExecutor{}, []string{"play", "halflife"}, "halflife", 0},
		{"not installed", &testutil.RecordingExecutor{}, []string{"play", "monkey"}, "--force", 0},
		{"missing argument", &testutil.RecordingExecutor{}, []string{"play"}, "accepts 1 arg", 0},
		{
			"spawn failure",
			&testutil.RecordingExecutor{
				Code: runtime.ExitFailure,
				Err:  &runtime.SpawnError{Program: "quake", Kind: runtime.ErrExecutableNotFound, Err: os.ErrNotExist},
			},
			[]string{"play", "quake"},
			"Install quake",
			1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := runCLI(t, tt.exec, tt.args...)
			if res.code != int(runtime.ExitFailure) {
				t.Errorf("exit code = %d, want %d", res.code, runtime.ExitFailure)
			}
			if !strings.Contains(res.stderr, tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", res.stderr, tt.wantStderr)
			}
			if len(tt.exec.Calls()) != tt.wantRuns {
				t.Errorf("executor ran %d times, want %d", len(tt.exec.Calls()), tt.wantRuns)
			}
		})
	}
}

func TestPlayForceUninstalled(t *testing.T) {
	t.Parallel()

	exec := &testutil.RecordingExecutor{}
	res := runCLI(t, exec, "play", "--force", "monkey")
	if res.code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", res.code, res.stderr)
	}
	if len(exec.Calls()) != 1 || exec.Calls()[0].Program != "scummvm" {
		t.Errorf("runs = %+v, want one scummvm invocation", exec.Calls())
	}
}

func TestPlayDryRun(t *testing.T) {
	t.Parallel()

	exec := &testutil.RecordingExecutor{}
	res := runCLI(t, exec, "play", "--dry-run", "witcher")
	if res.code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", res.code, res.stderr)
	}
	if len(exec.Calls()) != 0 {
		t.Errorf("dry run executed %d invocations", len(exec.Calls()))
	}
	for _, want := range []string{"Dry Run", "witcher - witcher", "mangohud wine witcher.exe", "DXVK_HUD=1"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("dry run output missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestPlayRandom(t *testing.T) {
	t.Parallel()

	exec := &testutil.RecordingExecutor{}
	res := runCLI(t, exec, "play-random", "rpg,!fantasy")
	if res.code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", res.code, res.stderr)
	}
	if len(exec.Calls()) != 1 || exec.Calls()[0].Program != "mangohud" {
		t.Fatalf("runs = %+v, want the witcher invocation", exec.Calls())
	}
	if !strings.Contains(res.stderr, "witcher") {
		t.Errorf("stderr = %q, want the picked game", res.stderr)
	}
}

func TestPlayRandomNoMatch(t *testing.T) {
	t.Parallel()

	exec := &testutil.RecordingExecutor{}
	res := runCLI(t, exec, "play-random", "adventure")
	if res.code != int(runtime.ExitFailure) {
		t.Errorf("exit code = %d, want %d", res.code, runtime.ExitFailure)
	}
	if len(exec.Calls()) != 0 {
		t.Errorf("executor ran %d times, want 0", len(exec.Calls()))
	}
	if !strings.Contains(res.stderr, "no matching games") {
		t.Errorf("stderr = %q", res.stderr)
	}
}

func TestMissingCatalog(t *testing.T) {
	t.Parallel()

	app, _, stderr := newTestApp(t, &testutil.RecordingExecutor{}, nil)
	missing := filepath.Join(t.TempDir(), "nope.toml")
	code := run(context.Background(), app, []string{"--catalog", missing, "list"})
	if code != int(runtime.ExitFailure) {
		t.Errorf("exit code = %d, want %d", code, runtime.ExitFailure)
	}
	if !strings.Contains(stderr.String(), "load catalog") {
		t.Errorf("stderr = %q, want load catalog error", stderr.String())
	}
}

func TestEditCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		env      map[string]string
		wantArgv []string
		wantCode int
	}{
		{"visual wins", map[string]string{"VISUAL": "code --wait", "EDITOR": "vi"}, []string{"code", "--wait"}, 0},
		{"editor fallback", map[string]string{"EDITOR": "vi"}, []string{"vi"}, 0},
		{"no editor", nil, nil, int(runtime.ExitFailure)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			exec := &testutil.RecordingExecutor{}
			app, _, stderr := newTestApp(t, exec, tt.env)
			path := testutil.WriteCatalog(t, testCatalog)

			code := run(context.Background(), app, []string{"--catalog", path, "edit"})
			if code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d (stderr %q)", code, tt.wantCode, stderr.String())
			}
			if tt.wantArgv == nil {
				if len(exec.Calls()) != 0 {
					t.Errorf("executor ran without an editor")
				}
				return
			}
			want := slices.Concat(tt.wantArgv, []string{path})
			if len(exec.Calls()) != 1 || !slices.Equal(exec.Calls()[0].Argv(), want) {
				t.Errorf("runs = %+v, want argv %q", exec.Calls(), want)
			}
		})
	}
}

func TestConfigInitAndPath(t *testing.T) {
	t.Parallel()

	app, stdout, stderr := newTestApp(t, &testutil.RecordingExecutor{}, nil)
	if code := run(context.Background(), app, []string{"config", "init"}); code != 0 {
		t.Fatalf("config init exit code = %d, stderr = %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Created") {
		t.Errorf("config init output = %q", stdout.String())
	}
	if _, err := os.Stat(filepath.Join(app.configDir, "config.cue")); err != nil {
		t.Errorf("config file not written: %v", err)
	}

	app2, stdout2, _ := newTestApp(t, &testutil.RecordingExecutor{}, nil)
	app2.configDir = app.configDir
	if code := run(context.Background(), app2, []string{"config", "init"}); code != 0 {
		t.Fatalf("second config init exit code = %d", code)
	}
	if !strings.Contains(stdout2.String(), "already exists") {
		t.Errorf("second config init output = %q", stdout2.String())
	}

	app3, stdout3, _ := newTestApp(t, &testutil.RecordingExecutor{}, nil)
	app3.configDir = app.configDir
	if code := run(context.Background(), app3, []string{"config", "path"}); code != 0 {
		t.Fatalf("config path exit code = %d", code)
	}
	if want := filepath.Join(app.configDir, "games.toml"); !strings.Contains(stdout3.String(), want) {
		t.Errorf("config path output = %q, want catalog %s", stdout3.String(), want)
	}
}

func TestConfigShow(t *testing.T) {
	t.Parallel()

	app, stdout, _ := newTestApp(t, &testutil.RecordingExecutor{}, nil)
	if code := run(context.Background(), app, []string{"config", "show"}); code != 0 {
		t.Fatalf("config show exit code = %d", code)
	}
	for _, want := range []string{"(using defaults)", `color_scheme: "auto"`, "max_backups: 3"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("config show output missing %q:\n%s", want, stdout.String())
		}
	}
}

func TestExitErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := &ExitError{Code: 2, Err: cause}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(ExitError, cause) = false")
	}
	if got := (&ExitError{Code: 4}).Error(); got != "exit status 4" {
		t.Errorf("Error() = %q", got)
	}
}
