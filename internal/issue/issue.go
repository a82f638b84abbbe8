// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"errors"

	"github.com/gamelaunch/game/internal/runtime"
	"github.com/gamelaunch/game/pkg/catalog"
	"github.com/gamelaunch/game/pkg/tagquery"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	CatalogNotFoundId Id = iota + 1
	CatalogInvalidId
	ConfigLoadFailedId
	UnknownGameId
	NotInstalledId
	NoMatchingGamesId
	InvalidQueryId
	ExecutableNotFoundId
	PermissionDeniedId
	WorkDirNotFoundId
	EditorNotSetId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	catalogNotFoundIssue = &Issue{
		id: CatalogNotFoundId,
		mdMsg: `
# No game catalog found!

The launcher reads your games from a ` + "`games.toml`" + ` file, but none exists
at the expected location.

## Things you can try:
- Print where the launcher looks:
~~~
$ game config path
~~~

- Point it at an existing catalog:
~~~
$ game --catalog ~/games.toml list
~~~

- Create a minimal catalog:
~~~toml
[games.quake]
name = "Quake"
cmd = "vkquake"
tags = ["fps"]
~~~`,
	}

	catalogInvalidIssue = &Issue{
		id: CatalogInvalidId,
		mdMsg: `
# Your game catalog has errors!

Every problem found in ` + "`games.toml`" + ` is listed above, prefixed with the
game and key it belongs to.

## Common issues:
- A game without any of ` + "`cmd`, `wine_exe`, `dosbox_config` or `scummvm_id`" + `
- ` + "`prefix_dir`" + ` naming a key missing from ` + "`[directories]`" + `
- Misspelled keys (unknown keys are rejected)
- Tags containing commas or spaces, or starting with ` + "`!`" + `
- The same tag listed twice

## Things you can try:
- Open the catalog in your editor:
~~~
$ game edit
~~~`,
		extLinks: []HttpLink{"https://toml.io/en/v1.0.0"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load the launcher configuration!

The configuration file could not be read or does not match the schema.

## Things you can try:
- Show the effective configuration and where it comes from:
~~~
$ game config show
~~~

- Regenerate a default configuration:
~~~
$ game config init --force
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	unknownGameIssue = &Issue{
		id: UnknownGameId,
		mdMsg: `
# Game not found!

No game with this ID is configured in your catalog. IDs are the
` + "`[games.<id>]`" + ` table names and are case-sensitive.

## Things you can try:
- List every configured game, including uninstalled ones:
~~~
$ game list --all
~~~`,
	}

	notInstalledIssue = &Issue{
		id: NotInstalledId,
		mdMsg: `
# Game is marked as not installed!

The catalog sets ` + "`installed = false`" + ` for this game.

## Things you can try:
- Launch it anyway:
~~~
$ game play --force <game_id>
~~~

- Remove the ` + "`installed = false`" + ` line once the game is installed`,
	}

	noMatchingGamesIssue = &Issue{
		id: NoMatchingGamesId,
		mdMsg: `
# No installed game matches!

## Things you can try:
- See which tags exist:
~~~
$ game tags
~~~

- Check the query: spaces separate alternatives, commas require all tags,
  and ` + "`!tag`" + ` excludes a tag
- Include uninstalled games in the listing:
~~~
$ game list --all <query>
~~~`,
	}

	invalidQueryIssue = &Issue{
		id: InvalidQueryId,
		mdMsg: `
# Invalid tag query!

## Query syntax:
- ` + "`rpg fps`" + ` matches games tagged rpg **or** fps
- ` + "`rpg,fantasy`" + ` matches games tagged rpg **and** fantasy
- ` + "`rpg,!fantasy`" + ` matches rpg games **not** tagged fantasy

Empty terms (` + "`a,,b`" + `, a trailing comma, doubled spaces) and a lone
` + "`!`" + ` are rejected.`,
	}

	executableNotFoundIssue = &Issue{
		id: ExecutableNotFoundId,
		mdMsg: `
# Launcher program not found!

The program this game starts with is not installed or not in your PATH.

## Things you can try:
- Install the backend or wrapper named above (wine, dosbox, scummvm,
  mangohud, gamescope)
- Use an absolute path in ` + "`cmd`" + `
- Inspect the full command line without running it:
~~~
$ game play --dry-run <game_id>
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

The game's program exists but cannot be executed.

## Things you can try:
- Make the file executable:
~~~
$ chmod +x <path>
~~~

- Check that the game directory is not on a ` + "`noexec`" + ` mount`,
	}

	workDirNotFoundIssue = &Issue{
		id: WorkDirNotFoundId,
		mdMsg: `
# Game directory not found!

The working directory built from ` + "`prefix_dir`" + ` and ` + "`dir`" + ` does not exist.

## Things you can try:
- Check the paths in ` + "`[directories]`" + ` and the game's ` + "`dir`" + `
- Inspect the resolved directory:
~~~
$ game play --dry-run <game_id>
~~~`,
	}

	editorNotSetIssue = &Issue{
		id: EditorNotSetId,
		mdMsg: `
# No editor configured!

## Things you can try:
- Set the ` + "`EDITOR`" + ` environment variable:
~~~
$ export EDITOR=vim
~~~

- Or set ` + "`editor`" + ` in the launcher configuration:
~~~cue
editor: "code --wait"
~~~`,
	}

	issues = map[Id]*Issue{
		catalogNotFoundIssue.Id():    catalogNotFoundIssue,
		catalogInvalidIssue.Id():     catalogInvalidIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		unknownGameIssue.Id():        unknownGameIssue,
		notInstalledIssue.Id():       notInstalledIssue,
		noMatchingGamesIssue.Id():    noMatchingGamesIssue,
		invalidQueryIssue.Id():       invalidQueryIssue,
		executableNotFoundIssue.Id(): executableNotFoundIssue,
		permissionDeniedIssue.Id():   permissionDeniedIssue,
		workDirNotFoundIssue.Id():    workDirNotFoundIssue,
		editorNotSetIssue.Id():       editorNotSetIssue,
	}

	// errorIssues maps sentinel errors to the issue explaining them, most
	// specific first.
	errorIssues = []struct {
		err error
		id  Id
	}{
		{runtime.ErrExecutableNotFound, ExecutableNotFoundId},
		{runtime.ErrPermissionDenied, PermissionDeniedId},
		{runtime.ErrWorkDirNotFound, WorkDirNotFoundId},
		{catalog.ErrUnknownGameID, UnknownGameId},
		{catalog.ErrNotInstalled, NotInstalledId},
		{catalog.ErrNoMatchingGames, NoMatchingGamesId},
		{tagquery.ErrEmptyTerm, InvalidQueryId},
		{tagquery.ErrBareNegation, InvalidQueryId},
	}
)

// Values returns every known issue ordered by ID.
func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}

// ForError returns the issue explaining err, or nil when none applies.
// A *catalog.LoadError maps to CatalogInvalidId.
func ForError(err error) *Issue {
	if err == nil {
		return nil
	}
	for _, e := range errorIssues {
		if errors.Is(err, e.err) {
			return issues[e.id]
		}
	}
	var le *catalog.LoadError
	if errors.As(err, &le) {
		return issues[CatalogInvalidId]
	}
	return nil
}
