package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"templatehub/internal/catalog"
	"templatehub/internal/config"
)

// Env carries what every command needs. Nil writers default to the
// process stdout and stderr.
type Env struct {
	Config *config.Config
	Store  *catalog.Store
	Stdout io.Writer
	Stderr io.Writer
}

func (e Env) stdout() io.Writer {
	if e.Stdout == nil {
		return os.Stdout
	}
	return e.Stdout
}

func (e Env) stderr() io.Writer {
	if e.Stderr == nil {
		return os.Stderr
	}
	return e.Stderr
}

// Run dispatches a subcommand and returns the process exit code. With no
// arguments it opens the terminal browser.
func Run(ctx context.Context, args []string, env Env) int {
	if len(args) == 0 {
		return runBrowse(ctx, env)
	}

	switch args[0] {
	case "serve":
		return runServe(ctx, args[1:], env)
	case "browse":
		return runBrowse(ctx, env)
	case "list", "ls":
		return runList(args[1:], env)
	case "show":
		return runShow(args[1:], env)
	case "tags":
		return runTags(env)
	case "help", "-h", "--help":
		printUsage(env.stdout())
		return 0
	default:
		fmt.Fprintf(env.stderr(), "Unknown command: %s\n", args[0])
		printUsage(env.stderr())
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: templatehub [flags] [command]

Commands:
  browse                     Browse the catalog in the terminal (default)
  serve [-addr ADDR]         Serve the catalog pages and JSON API
  list [-tag ID]... [-q Q]   List templates, optionally filtered
       [-json]
  show [-html] <slug>        Print one template
  tags                       List the tag registry with usage counts
  help                       Show this help

Flags:
  -content DIR     Content directory (env TEMPLATEHUB_CONTENT_DIR)
  -public DIR      Static files served for unmatched paths
  -addr ADDR       Listen address for serve (default :8080)
  -log-level LVL   debug, info, warn or error
  -log-format FMT  pretty, json or text
  -strict          Fail the load on the first malformed template
  -watch           Reload content when files change
`)
}
