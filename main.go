// main.go - Main entry point for the VidWall holding-screen renderer

/*
██╗   ██╗██╗██████╗ ██╗    ██╗ █████╗ ██╗     ██╗
██║   ██║██║██╔══██╗██║    ██║██╔══██╗██║     ██║
██║   ██║██║██║  ██║██║ █╗ ██║███████║██║     ██║
╚██╗ ██╔╝██║██║  ██║██║███╗██║██╔══██║██║     ██║
 ╚████╔╝ ██║██████╔╝╚███╔███╔╝██║  ██║███████╗███████╗
  ╚═══╝  ╚═╝╚═════╝  ╚═══╝╚═══╝╚═╝  ╚═╝╚══════╝╚══════╝

(c) 2025 - 2026 The VidWall Authors
https://github.com/vidwall/vidwall
License: GPLv3 or later
*/

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"
)

var bannerLines = []string{
	`██╗   ██╗██╗██████╗ ██╗    ██╗ █████╗ ██╗     ██╗`,
	`██║   ██║██║██╔══██╗██║    ██║██╔══██╗██║     ██║`,
	`██║   ██║██║██║  ██║██║ █╗ ██║███████║██║     ██║`,
	`╚██╗ ██╔╝██║██║  ██║██║███╗██║██╔══██║██║     ██║`,
	` ╚████╔╝ ██║██████╔╝╚███╔███╔╝██║  ██║███████╗███████╗`,
	`  ╚═══╝  ╚═╝╚═════╝  ╚═══╝╚═══╝╚═╝  ╚═╝╚══════╝╚══════╝`,
}

func boilerPlate() {
	colored := term.IsTerminal(int(os.Stdout.Fd()))
	for _, line := range bannerLines {
		if colored {
			fmt.Printf("\033[38;2;80;200;255m%s\033[0m\n", line)
		} else {
			fmt.Println(line)
		}
	}
	fmt.Println("\nShader-tiled holding-screen renderer for looping brand clips.")
	fmt.Println("(c) 2025 - 2026 The VidWall Authors")
	fmt.Println("https://github.com/vidwall/vidwall")
	fmt.Println("License: GPLv3 or later")
}

// validateResolutionOverride accepts a window size override only when
// both dimensions are given and positive.
func validateResolutionOverride(width, height int) (int, int, bool) {
	if width > 0 && height > 0 {
		return width, height, true
	}
	return 0, 0, false
}

func main() {
	boilerPlate()

	var (
		configPath string
		basePath   string
		headless   bool
		fullscreen bool
		watch      bool
		width      int
		height     int
	)

	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&configPath, "config", "vidwall.toml", "Path to the TOML configuration")
	flagSet.StringVar(&basePath, "base-path", "", "Override the asset base path")
	flagSet.BoolVar(&headless, "headless", false, "Run without a display (smoke runs)")
	flagSet.BoolVar(&fullscreen, "fullscreen", false, "Force fullscreen regardless of configuration")
	flagSet.BoolVar(&watch, "watch", true, "Reload presentation tuning on config change")
	flagSet.IntVar(&width, "width", 0, "Override window width (requires -height)")
	flagSet.IntVar(&height, "height", 0, "Override window height (requires -width)")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: ./vidwall [-config vidwall.toml] [-base-path prefix] [-width W -height H] [-headless] [-fullscreen]")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		flagSet.Usage()
		os.Exit(2)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Configuration error: %v\n", err)
		os.Exit(1)
	}
	if basePath != "" {
		cfg.BasePath = basePath
	}
	if fullscreen {
		cfg.Fullscreen = true
	}
	if w, h, ok := validateResolutionOverride(width, height); ok {
		cfg.Width = w
		cfg.Height = h
	} else if width != 0 || height != 0 {
		fmt.Println("Both -width and -height are required to override the window size")
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Configuration error: %v\n", err)
		os.Exit(1)
	}
	variant, err := cfg.Variant()
	if err != nil {
		fmt.Printf("Configuration error: %v\n", err)
		os.Exit(1)
	}

	bus := NewBus()

	backend := SURFACE_BACKEND_EBITEN
	if headless {
		backend = SURFACE_BACKEND_HEADLESS
	}
	surface, err := NewRenderSurface(backend, bus)
	if err != nil {
		fmt.Printf("Failed to initialize surface: %v\n", err)
		os.Exit(1)
	}

	var probe CapabilityProbe
	if headless || cfg.CapabilityProfile != "auto" {
		probe = ProfileProbe{Profile: cfg.CapabilityProfile}
	} else {
		probe = DecodeProbe{Variant: variant}
	}

	controller := NewWallController(variant, surface, bus, probe, cfg.WallOptions())
	if err := controller.Mount(); err != nil {
		fmt.Printf("Failed to mount controller: %v\n", err)
		os.Exit(1)
	}

	if watch {
		watcher := NewConfigWatcher(configPath, func(c Config) {
			controller.SetTuning(c.PaddingPercent, c.FlipY)
			log.Printf("presentation tuning reloaded")
		})
		if err := watcher.Start(); err != nil {
			log.Printf("config watcher unavailable: %v", err)
		} else {
			defer watcher.Stop()
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		controller.Dispose()
	}()

	if err := controller.Run(); err != nil {
		log.Printf("refresh loop: %v", err)
	}
	controller.Dispose()
}
