package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/milk9111/raidercore/level"
	"github.com/milk9111/raidercore/levels"
	"github.com/milk9111/raidercore/logging"
	"github.com/milk9111/raidercore/metrics"
	"github.com/milk9111/raidercore/prefabs"
	"github.com/milk9111/raidercore/viewer"
)

func main() {
	levelName := flag.String("level", "demo.yaml", "level fixture in levels/")
	logLevel := flag.String("log", "info", "log level")
	watch := flag.Bool("watch", true, "hot reload prefabs/ and levels/ from disk")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	lg := logging.New(*logLevel, os.Stderr)

	spec, err := prefabs.LoadViewerSpec()
	if err != nil {
		lg.WithError(err).Warn("viewer spec unavailable, using defaults")
		spec = nil
	}

	var watcher *prefabs.Watcher
	if *watch {
		watcher, err = prefabs.NewWatcher("prefabs", "prefabs/scripts", "prefabs/animations", "levels")
		if err != nil {
			lg.WithError(err).Warn("hot reload disabled")
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	load := func() (*level.Level, error) { return levels.LoadAndBuild(*levelName) }
	game, err := viewer.NewGame(spec, load, watcher, metrics.New(prometheus.NewRegistry()), lg)
	if err != nil {
		log.Fatal(err)
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(game.Width, game.Height)
	ebiten.SetWindowTitle("raiderview")
	ebiten.SetTPS(30)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
