/*
Headless testbed: loads anima.toml (if present), builds the world and runs
the fixed-step loop until interrupted.
*/
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/anima-spatial/engine"
	"github.com/spaghettifunk/anima-spatial/engine/core"
	"github.com/spaghettifunk/anima-spatial/testbed"
)

func main() {
	configPath := flag.String("config", engine.DefaultConfigFile, "path to the TOML config file")
	flag.Parse()

	config, err := engine.LoadApplicationConfig(*configPath)
	if err != nil {
		core.LogFatal("failed to load config: %s", err)
	}

	tb := testbed.NewTestGame(config)

	e, err := engine.New(tb.Game)
	if err != nil {
		core.LogFatal("failed to create engine: %s", err)
	}

	if err := e.Initialize(); err != nil {
		_ = e.Shutdown()
		core.LogFatal("failed to initialize engine: %s", err)
	}

	// signal channel to capture system calls
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	// run engine
	if err := e.Run(ctx); err != nil {
		core.LogError("engine stopped: %s", err)
		os.Exit(1)
	}
}
