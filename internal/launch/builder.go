// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"maps"
	"strconv"

	"github.com/gamelaunch/game/internal/runtime"
	"github.com/gamelaunch/game/pkg/catalog"
)

const (
	// Backend and wrapper programs, looked up in PATH.
	ProgramWine      = "wine"
	ProgramDOSBox    = "dosbox"
	ProgramScummVM   = "scummvm"
	ProgramMangoHUD  = "mangohud"
	ProgramGamescope = "gamescope"

	// EnvWineDLLOverrides is set when use_vk = false.
	EnvWineDLLOverrides = "WINEDLLOVERRIDES"
	// EnvMangoHUDConfig carries the frame limit to mangohud.
	EnvMangoHUDConfig = "MANGOHUD_CONFIG"

	// builtinDirect3D makes Wine use its own Direct3D DLLs instead of the
	// DXVK/VKD3D ones installed in the prefix.
	builtinDirect3D = "*d3d9,*d3d10,*d3d10_1,*d3d10core,*d3d11,*dxgi=b"
)

// Builder produces invocations from games. It holds only immutable inputs
// and may be shared.
type Builder struct {
	settings catalog.Settings
	dirs     catalog.DirectoryTable
}

// NewBuilder returns a builder for the given settings and directory table.
func NewBuilder(settings catalog.Settings, dirs catalog.DirectoryTable) *Builder {
	return &Builder{settings: settings, dirs: maps.Clone(dirs)}
}

// NewCatalogBuilder returns a builder using the catalog's settings and
// directories.
func NewCatalogBuilder(cat *catalog.Catalog) *Builder {
	return &Builder{settings: cat.Settings(), dirs: cat.Directories()}
}

// Build resolves g into an invocation. It fails with
// catalog.ErrUnknownDirectoryKey for a dangling prefix_dir and
// catalog.ErrNoBackendConfigured when the selected backend lacks its fields.
func (b *Builder) Build(g *catalog.Game) (runtime.Invocation, error) {
	// The catalog already guarantees this; games built by hand may not.
	if !g.HasBackendFields() {
		return runtime.Invocation{}, &catalog.ConfigError{GameID: g.ID, Err: catalog.ErrNoBackendConfigured}
	}

	workDir, err := ResolveWorkDir(g, b.dirs)
	if err != nil {
		return runtime.Invocation{}, err
	}

	argv := baseCommand(g)
	env := make(map[string]string)

	if g.Backend == catalog.BackendWine && !g.VKEnabled() {
		env[EnvWineDLLOverrides] = builtinDirect3D
	}

	if g.MangoHUDEnabled() {
		argv = append([]string{ProgramMangoHUD}, argv...)
		if g.FPSLimit > 0 {
			env[EnvMangoHUDConfig] = "fps_limit=" + strconv.Itoa(g.FPSLimit)
		}
	}

	if b.settings.UseGamescope {
		argv = b.gamescope(g, argv)
	}

	// Game keys win over the markers above.
	maps.Copy(env, g.Env)

	return runtime.Invocation{
		Program: argv[0],
		Args:    argv[1:],
		Env:     env,
		WorkDir: workDir,
	}, nil
}

// baseCommand returns the backend's own argv.
func baseCommand(g *catalog.Game) []string {
	switch g.Backend {
	case catalog.BackendNative:
		return append([]string(nil), g.Cmd...)
	case catalog.BackendWine:
		return append([]string{ProgramWine}, g.WineExe...)
	case catalog.BackendDOSBox:
		return []string{ProgramDOSBox, "-conf", g.DOSBoxConfig}
	default:
		return []string{ProgramScummVM, g.ScummVMID}
	}
}

func (b *Builder) gamescope(g *catalog.Game, inner []string) []string {
	argv := []string{
		ProgramGamescope,
		"-w", strconv.Itoa(b.settings.Width),
		"-h", strconv.Itoa(b.settings.Height),
	}
	if g.FPSLimit > 0 {
		argv = append(argv, "-r", strconv.Itoa(g.FPSLimit))
	}
	argv = append(argv, "--")
	return append(argv, inner...)
}
