package cli

import (
	"context"
	"flag"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"templatehub/internal/catalog"
	"templatehub/internal/logs"
	"templatehub/internal/tui"
	"templatehub/internal/web"
)

func runServe(ctx context.Context, args []string, env Env) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(env.stderr())
	addr := fs.String("addr", env.Config.Addr, "Listen address")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	srv, err := web.NewServer(env.Store, web.Options{
		PublicDir: env.Config.PublicDir,
		APIRate:   env.Config.APIRate,
		APIBurst:  env.Config.APIBurst,
		Logger:    logs.Logger,
	})
	if err != nil {
		fmt.Fprintf(env.stderr(), "Error: %v\n", err)
		return 1
	}
	defer srv.Close()

	startWatch(ctx, env)

	if err := srv.Run(ctx, *addr); err != nil {
		logs.Logger.Error("server stopped", "error", err)
		return 1
	}
	return 0
}

func runBrowse(ctx context.Context, env Env) int {
	startWatch(ctx, env)

	logs.Logger.Info("starting terminal browser", "root", env.Store.Root())
	p := tea.NewProgram(tui.NewAppModel(env.Store), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(env.stderr(), "Error running program:", err)
		return 1
	}
	return 0
}

// startWatch keeps the store fresh while ctx lives. A watcher that fails
// to start is logged and the command carries on without it.
func startWatch(ctx context.Context, env Env) {
	if !env.Config.Watch {
		return
	}
	if err := env.Store.Watch(ctx, catalog.DefaultDebounce); err != nil {
		logs.Logger.Warn("content watch disabled", "root", env.Store.Root(), "error", err)
	}
}
