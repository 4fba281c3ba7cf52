// Package cli implements the godswood command-line interface.
//
// Every command reads tree documents ({"name", "display_name", "children"})
// from files, stdin ("-") or the built-in sample (--sample), runs them through
// [pipeline] and reports the result with lipgloss-styled output:
//
//	layout     tree documents → <base>.scene.json
//	visualize  scene.json → DOT, SVG, PNG or PDF of one wood
//	render     layout and visualize in one step
//	inspect    per-depth tables, or one node by dotted path
//	browse     walk a laid-out wood in the terminal
//	serve      the HTTP API (see internal/api)
//	cache      clear the cache or print its directory
//	version    print build information
//
// Defaults come from $XDG_CONFIG_HOME/godswood/config.toml (or --config);
// flags win over the file. Results are cached under $XDG_CACHE_HOME/godswood
// unless the config selects the redis or none backend.
//
// Loggers travel in the command context; --verbose switches to debug level.
package cli
