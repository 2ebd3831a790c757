package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/stealth/common"
	"github.com/milk9111/stealth/logger"
	"github.com/milk9111/stealth/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "show the input debug panel (F3 toggles)")
	script := flag.String("script", "", "drive the player from prefabs/scripts/<name>.tengo instead of the keyboard")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	logFormat := flag.String("log-format", "console", "console, text or json")
	prefabDir := flag.String("prefabs", prefabs.Dir, "directory checked for prefab overrides and watched for changes")
	flag.Parse()

	log := logger.Init(logger.Config{Level: *logLevel, Format: *logFormat})
	prefabs.Dir = *prefabDir

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("stealth")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(*script, *debug)
	if err != nil {
		log.Error("start", "err", err)
		os.Exit(1)
	}

	err = ebiten.RunGame(game)
	if cerr := game.Close(); cerr != nil {
		log.Warn("close watcher", "err", cerr)
	}
	if err != nil {
		log.Error("run", "err", err)
		os.Exit(1)
	}
}
