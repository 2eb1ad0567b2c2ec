// Copyright 2025 The AnagramServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the anagram server and CLI [DBG] application.

Note: This is a BETA release. APIs and functionality may rapidly change.

AnagramServe finds every dictionary word that can be spelled from a subset of
a set of letters. The dictionary is indexed by canonical key (the word's letters
sorted), so solving a query is one map lookup per letter combination. It can
operate as a MessagePack IPC server for integration with games and editors, or
as a CLI application for testing and debugging.

# Usage

Start the server with default settings:

	anagramserve

Use a custom word list and enable debug mode:

	anagramserve -dict /path/to/words.txt -d

Run in CLI mode for interactive testing:

	anagramserve -c -min 2 -max 7 -limit 20

Pack a word list into binary chunk files:

	anagramserve -dict words.txt -pack data/

The dictionary may be a newline separated text file, a single dict_0001.bin
chunk, or a directory of chunks. Chunks are loaded in ID order.

# Configuration

Runtime configuration is read from a TOML file, created with defaults if missing:

	[solver]
	min_word_length = 3
	max_word_length = 8
	unique = false
	prune = false
	workers = 1

	[dict]
	path = "data/words_alpha.txt"
	chunk_size = 10000

	[server]
	max_query_length = 20
	max_results = 0
	solve_timeout_ms = 5000

Every [solver], [dict] and [server] key can be overridden with an ANAGRAMS_*
environment variable, and flags override both.

# Server Mode

The default mode starts a MessagePack IPC server on stdin/stdout; see package
server for the protocol.

	srv := server.NewServer(solver, config)
	err := srv.Start()

# CLI Mode

CLI mode reads one query per line from stdin and prints the words found.

	inputHandler := cli.NewInputHandler(solver, maxQuery, limit, noFilter)
	err := inputHandler.Start()

# Command Line Flags

	-dict string
	    Word list file or chunk directory
	-min int
	    Minimum word length
	-max int
	    Maximum word length
	-unique
	    Drop repeated words from results
	-prune
	    Skip letter combinations no dictionary key starts with
	-workers int
	    Solve word lengths in parallel
	-limit int
	    Number of words to print in CLI mode
	-no-filter
	    Do not warn about non-letter queries
	-config string
	    Path to a custom config file
	-pack string
	    Write the dictionary as chunk files into this directory and exit
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
*/
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/anagramserve/internal/cli"
	"github.com/bastiangx/anagramserve/internal/utils"
	"github.com/bastiangx/anagramserve/pkg/config"
	"github.com/bastiangx/anagramserve/pkg/dictionary"
	"github.com/bastiangx/anagramserve/pkg/server"
	"github.com/bastiangx/anagramserve/pkg/solver"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0-beta"
	AppName = "anagramserve"
	gh      = "https://github.com/bastiangx/anagramserve"
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

// main loads config, builds the solver and hands it to the server or the CLI.
func main() {
	sigHandler()
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	configPath := flag.String("config", "", "Path to a custom config file")
	dictPath := flag.String("dict", defaults.Dict.Path, "Word list file, chunk file or chunk directory")
	packDir := flag.String("pack", "", "Write the dictionary as binary chunks into this directory and exit")
	minLength := flag.Int("min", defaults.Solver.MinWordLength, "Minimum word length")
	maxLength := flag.Int("max", defaults.Solver.MaxWordLength, "Maximum word length")
	unique := flag.Bool("unique", defaults.Solver.Unique, "Drop repeated words from results")
	prune := flag.Bool("prune", defaults.Solver.Prune, "Skip letter combinations that no dictionary key starts with")
	workers := flag.Int("workers", defaults.Solver.Workers, "Number of word lengths solved in parallel")
	limit := flag.Int("limit", defaults.CLI.DefaultLimit, "Number of words to print in CLI mode (0 for all)")
	noFilter := flag.Bool("no-filter", defaults.CLI.DefaultNoFilter, "Do not warn about queries with non-letters (DBG only)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, usedConfigPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(usedConfigPath))

	// flags only win when given explicitly
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dict":
			appConfig.Dict.Path = *dictPath
		case "min":
			appConfig.Solver.MinWordLength = *minLength
		case "max":
			appConfig.Solver.MaxWordLength = *maxLength
		case "unique":
			appConfig.Solver.Unique = *unique
		case "prune":
			appConfig.Solver.Prune = *prune
		case "workers":
			appConfig.Solver.Workers = *workers
		case "limit":
			appConfig.CLI.DefaultLimit = *limit
		case "no-filter":
			appConfig.CLI.DefaultNoFilter = *noFilter
		}
	})

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Print("Either env is not set or system is not supported")
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}
	resolvedDict := pathResolver.GetDictPath(appConfig.Dict.Path)
	log.Debugf("Using dictionary at: %s", resolvedDict)

	if *packDir != "" {
		if err := pack(resolvedDict, *packDir, appConfig.Dict.ChunkSize); err != nil {
			log.Fatalf("Failed to pack dictionary: %v", err)
		}
		return
	}

	if !appConfig.Solver.BoundsValid() {
		log.Warnf("Word length bounds [%d, %d] admit no words; every query will come back empty",
			appConfig.Solver.MinWordLength, appConfig.Solver.MaxWordLength)
	}

	opts := []solver.Option{solver.WithWorkers(appConfig.Solver.Workers)}
	if appConfig.Solver.Unique {
		opts = append(opts, solver.WithUnique())
	}
	if appConfig.Solver.Prune {
		opts = append(opts, solver.WithPrefixPruning())
	}

	s, err := solver.Load(resolvedDict, appConfig.Solver.MinWordLength, appConfig.Solver.MaxWordLength, opts...)
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	stats := s.Stats()
	log.Debug("Solver init done", "words", stats.Words, "keys", stats.Keys, "largest", stats.LargestBucket)

	// CLI would be mainly used for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"limit", appConfig.CLI.DefaultLimit,
			"noFilter", appConfig.CLI.DefaultNoFilter,
			"maxQuery", appConfig.Server.MaxQueryLength)

		inputHandler := cli.NewInputHandler(s, appConfig.Server.MaxQueryLength, appConfig.CLI.DefaultLimit, appConfig.CLI.DefaultNoFilter)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(s, appConfig)

	showStartupInfo(resolvedDict, stats)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// pack converts a text word list into binary chunks
func pack(src, dir string, chunkSize int) error {
	file, err := os.Open(src)
	if err != nil {
		return err
	}
	defer file.Close()

	chunks, err := dictionary.WriteChunks(dir, bufio.NewScanner(file), chunkSize)
	if err != nil {
		return err
	}
	log.Infof("Wrote %d chunk files to %s", chunks, dir)
	return nil
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ AnagramServe ] Every word hiding in your letters")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
// Everything goes to stderr; stdout belongs to IPC.
func showStartupInfo(dictPath string, stats dictionary.Stats) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	fmt.Fprintln(os.Stderr, "==============")
	fmt.Fprintln(os.Stderr, " AnagramServe ")
	fmt.Fprintln(os.Stderr, "==============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("dictionary: ( %s )", dictPath)
	log.Infof("words: %d in %d keys, lengths [%d, %d]", stats.Words, stats.Keys, stats.MinLength, stats.MaxLength)
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "==============")
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
