// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the language statistics server and CLI [DBG] application.

ctstats scores texts against n-gram frequency tables of natural languages and
looks words up in prefix tree dictionaries. It can operate as a MessagePack
IPC server for integration with cryptanalysis tools, or as a CLI application
for testing and debugging.

Statistics tables are loaded lazily and kept in a bounded LRU cache, so a
long-running server only holds the languages and gram orders it was asked for.

# Usage

Start the server with default settings:

	ctstats

Use a custom statistics directory and enable debug mode:

	ctstats -data /path/to/statistics -d

Run in CLI mode for interactive scoring:

	ctstats -c -lang de -order 3

The data directory holds gzip compressed tables named like en-4gram-nocs.gz
(en-4gram-nocs-sp.gz with the space symbol) and dictionaries named like
Dictionary_en.dic.

# Configuration

Runtime configuration is read from a TOML file, then overridden by
LANGSTATS_* environment variables:

	[stats]
	directory = "data/"
	language = "en"
	orders = [3, 4]
	normalize_max = 1000000.0

	[dict]
	enabled = true
	complete_limit = 10

	[server]
	max_text_length = 65536
	metrics_addr = "127.0.0.1:9464"

The config file is created with defaults if it doesn't exist. Use
-rebuild-config to reset it.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Each request names
an action and is answered by exactly one frame:

	{"id": "r1", "action": "cost", "text": "attack at dawn", "n": 4}
	{"id": "r1", "c": 1043.27, "n": 4, "s": 12, "t": 38}

See the server package for every action and its fields.

# Command Line Flags

	-data string
	    Directory containing the statistics files
	-config string
	    Path of the TOML config file
	-lang string
	    Language code (overrides the config)
	-order int
	    Gram order used by the CLI
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-rebuild-config
	    Write a fresh default config file and exit
	-diag
	    Print path diagnostics and exit

Logs always go to stderr; stdout carries only IPC frames.
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/bastiangx/langstats/internal/cli"
	"github.com/bastiangx/langstats/internal/logger"
	"github.com/bastiangx/langstats/internal/utils"
	"github.com/bastiangx/langstats/pkg/config"
	"github.com/bastiangx/langstats/pkg/grams"
	"github.com/bastiangx/langstats/pkg/langstats"
	"github.com/bastiangx/langstats/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0-beta"
	AppName = "ctstats"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, cache and the chosen front end together.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	configFile := flag.String("config", "", "Path of the TOML config file")
	dataDir := flag.String("data", "", "Directory containing the statistics files (default from config)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	language := flag.String("lang", "", "Language code, e.g. en or de (default from config)")
	order := flag.Int("order", 0, "Gram order used by the CLI (default from config)")
	rebuild := flag.Bool("rebuild-config", false, "Write a fresh default config file and exit")
	diag := flag.Bool("diag", false, "Print path diagnostics and exit")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.Setup(*debugMode)

	if *rebuild {
		path, err := config.RebuildConfigFile()
		if err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		log.Printf("Wrote default config to %s", path)
		os.Exit(0)
	}

	cfg, configPath, err := config.LoadConfigWithPriority(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(configPath))

	configDir, err := config.GetConfigDir()
	if err != nil {
		log.Warnf("No config directory: %v", err)
	}
	pathResolver, err := utils.NewPathResolver(configDir)
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	if *language != "" {
		cfg.Stats.Language = *language
	}
	if _, err := langstats.LanguageID(cfg.Stats.Language); err != nil {
		log.Fatalf("Invalid language: %v", err)
	}

	dir := cfg.Stats.Directory
	if *dataDir != "" {
		dir = *dataDir
	}
	if *diag {
		printDiagnostics(os.Stderr, pathResolver.DiagnosePathIssues(dir), cfg.Stats.Language, configPath)
		os.Exit(0)
	}
	resolvedDataDir, err := pathResolver.GetDataDir(dir)
	if err != nil {
		log.Fatalf("Failed to resolve data dir: (%v)", err)
	}
	log.Debugf("Using data dir at: %s", resolvedDataDir)

	cache, err := langstats.NewCache(resolvedDataDir, cfg.Stats.CacheSize, cfg.Stats.NormalizeMax)
	if err != nil {
		log.Fatalf("Failed to create model cache: %v", err)
	}

	orders := make([]grams.Order, 0, len(cfg.Stats.Orders))
	for _, n := range cfg.Stats.Orders {
		o, err := grams.OrderFromSize(n)
		if err != nil {
			log.Fatalf("Invalid preload order: %v", err)
		}
		orders = append(orders, o)
	}
	// Missing tables are not fatal: requests for them get a 404 reply.
	if err := cache.Preload(context.Background(), cfg.Stats.Language, cfg.Stats.UseSpaces, orders); err != nil {
		log.Warnf("Preload incomplete: %v", err)
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		cliOrder := cfg.CLI.DefaultOrder
		if *order != 0 {
			cliOrder = *order
		}
		o, err := grams.OrderFromSize(cliOrder)
		if err != nil {
			log.Fatalf("Invalid order: %v", err)
		}
		log.Debug("Input info:", "lang", cfg.Stats.Language, "order", o, "spaces", cfg.Stats.UseSpaces)

		inputHandler := cli.NewInputHandler(cache, cli.Options{
			Language:      cfg.Stats.Language,
			UseSpaces:     cfg.Stats.UseSpaces,
			Order:         o,
			ShowWords:     cfg.CLI.ShowWords,
			DictEnabled:   cfg.Dict.Enabled,
			CompleteLimit: cfg.Dict.CompleteLimit,
		}, os.Stdin, os.Stdout)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	metrics := server.NewMetrics()
	if cfg.Server.MetricsAddr != "" {
		go serveMetrics(cfg.Server.MetricsAddr, metrics)
	}

	defaultOrder := grams.Tetragrams
	if len(orders) > 0 {
		defaultOrder = orders[len(orders)-1]
	}
	srv := server.NewServer(cache, server.Options{
		Language:      cfg.Stats.Language,
		UseSpaces:     cfg.Stats.UseSpaces,
		DefaultOrder:  defaultOrder,
		MaxTextLength: cfg.Server.MaxTextLength,
		MaxLimit:      cfg.Server.MaxLimit,
		CompleteLimit: cfg.Dict.CompleteLimit,
		DictEnabled:   cfg.Dict.Enabled,
	}, metrics)

	showStartupInfo(resolvedDataDir, cfg.Stats.Language, cache.Loaded(cfg.Stats.Language, cfg.Stats.UseSpaces))

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// serveMetrics exposes the request metrics until the process exits.
func serveMetrics(addr string, metrics *server.Metrics) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	hs := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Debugf("Serving metrics on %s/metrics", addr)
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Errorf("Metrics endpoint failed: %v", err)
	}
}

func printVersion() {
	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	l := logger.Banner(os.Stderr, styles)

	l.Print("")
	l.Print("[ ctstats ] Scores texts against language statistics")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
}

// printDiagnostics shows where data was looked for and which tables of
// language the resolved directory holds.
func printDiagnostics(w io.Writer, report utils.DataDirReport, language, configPath string) {
	fmt.Fprintf(w, "config:    %s\n", config.GetActiveConfigPath(configPath))
	fmt.Fprintf(w, "data dir:  %q resolved to %s (found: %t)\n", report.Requested, report.Resolved, report.Found)
	for _, c := range report.Candidates {
		fmt.Fprintf(w, "  %-50s dir=%-5t files=%d\n", c.Path, c.IsDir, len(c.Files))
	}

	avail := langstats.Inventory(report.Resolved, language)
	fmt.Fprintf(w, "language:  %s\n", avail.Language)
	fmt.Fprintf(w, "orders:    %v\n", avail.Orders)
	fmt.Fprintf(w, "space:     %v\n", avail.SpaceOrders)
	fmt.Fprintf(w, "dictionary: %t\n", avail.Dictionary)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dataDir, language string, loaded []grams.Order) {
	l := logger.New(AppName)
	l.SetLevel(log.InfoLevel)

	sizes := make([]int, 0, len(loaded))
	for _, o := range loaded {
		sizes = append(sizes, int(o))
	}
	sort.Ints(sizes)

	l.Infof("Version: %s", Version)
	l.Infof("Process ID: [ %d ]", os.Getpid())
	l.Infof("data dir: ( %s )", dataDir)
	l.Infof("language: %s, preloaded orders: %v", language, sizes)
	l.Info("status: ready")
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to exit")
}
