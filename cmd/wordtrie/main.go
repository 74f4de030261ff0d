/*
Package main implements the wordtrie completion server and CLI [DBG] application.

wordtrie loads a word list into a prefix tree and answers "every word starting with X"
requests, in lexicographic order, for autocomplete front ends. It can run as a MessagePack IPC
server for editors and other processes, or as an interactive CLI for testing.

# Usage

Start the server with the word list from the config file:

	wordtrie

Use a specific word list and enable debug logging:

	wordtrie -dict /usr/share/dict/words -d

Run in CLI mode for interactive testing:

	wordtrie -c -limit 10

Write the loaded dictionary out as binary chunks and exit:

	wordtrie -dict words.txt -export data/

# Word lists

A word list is either a text file with one word per line, or a directory holding text files
and/or binary chunk files named dict_0001.bin, dict_0002.bin, ... Words are trimmed and
lower-cased on load; blank lines are skipped.

# Configuration

Runtime configuration lives in a TOML file, created with defaults under
~/.config/wordtrie/config.toml when missing:

	[server]
	max_limit = 64
	default_limit = 10
	min_prefix = 1
	max_prefix = 60
	enable_filter = true

	[dict]
	path = "words.txt"

	[history]
	capacity = 5
	path = ""

	[cli]
	default_limit = 24

Flags given on the command line win over the file.

# Recent searches

The server and the CLI keep the last few picked words, most recent first. With an empty
history path they live in memory; otherwise they are stored in a msgpack file and survive
restarts.

# Command Line Flags

	-config string
	    Path to a config file
	-dict string
	    Word list file or directory (default from config)
	-history string
	    File for recent searches (default from config, empty for memory)
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of suggestions to return in CLI mode
	-prmin int
	    Minimum prefix length for suggestions
	-prmax int
	    Maximum prefix length for suggestions
	-no-filter
	    Disable input filtering for debugging
	-init-config
	    Overwrite the default config file with built-in defaults and exit
	-export string
	    Write the dictionary as binary chunks into this directory and exit
	-version
	    Show current version
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordtrie/internal/cli"
	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/history"
	"github.com/bastiangx/wordtrie/pkg/server"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0"
	AppName = "wordtrie"
	gh      = "https://github.com/bastiangx/wordtrie"
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

// main wires config, dictionary and history together and hands off to the server or the CLI.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to a config file")
	dictPath := flag.String("dict", defaultConfig.Dict.Path, "Word list file or directory")
	historyPath := flag.String("history", defaultConfig.History.Path, "File for recent searches (empty keeps them in memory)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of suggestions to return in CLI mode (0 for all)")
	minPrefix := flag.Int("prmin", defaultConfig.CLI.DefaultMinLen, "Minimum prefix length for suggestions (1 < n <= prmax)")
	maxPrefix := flag.Int("prmax", defaultConfig.CLI.DefaultMaxLen, "Maximum prefix length for suggestions")
	noFilter := flag.Bool("no-filter", defaultConfig.CLI.DefaultNoFilter, "Disable input filtering (DBG only) - completes numbers, symbols, etc")
	initConfig := flag.Bool("init-config", false, "Overwrite the default config file with built-in defaults and exit")
	exportDir := flag.String("export", "", "Write the loaded dictionary as binary chunks into this directory and exit")

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
	// stdout carries the IPC stream
	log.SetOutput(os.Stderr)

	if *initConfig {
		if err := config.RebuildConfigFile(); err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote default config to %s\n", config.GetActiveConfigPath(""))
		os.Exit(0)
	}

	appConfig, usedConfigPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(usedConfigPath))

	// explicit flags win over the config file
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["dict"] {
		*dictPath = appConfig.Dict.Path
	}
	if !set["history"] {
		*historyPath = appConfig.History.Path
	}
	if !set["limit"] {
		*limit = appConfig.CLI.DefaultLimit
	}
	if !set["prmin"] {
		*minPrefix = appConfig.CLI.DefaultMinLen
	}
	if !set["prmax"] {
		*maxPrefix = appConfig.CLI.DefaultMaxLen
	}
	if !set["no-filter"] {
		*noFilter = appConfig.CLI.DefaultNoFilter
	}

	var store history.Store = history.NewMemoryStore()
	if *historyPath != "" {
		store = history.NewFileStore(*historyPath)
		log.Debugf("Keeping recent searches in: %s", *historyPath)
	}

	filter := appConfig.Server.EnableFilter
	if *cliMode {
		filter = !*noFilter
	}
	completer := suggest.NewCompleter(
		suggest.WithHistory(history.New(store, appConfig.History.Capacity)),
		suggest.WithInputFilter(filter),
	)

	resolvedDict := *dictPath
	if resolvedDict != "" {
		configDir, _ := config.GetConfigDir()
		if pathResolver, err := utils.NewPathResolver(configDir); err == nil {
			resolvedDict = pathResolver.ResolveDictPath(resolvedDict)
		} else {
			log.Warnf("Failed to initialize path resolver: %v", err)
		}

		log.Debugf("Loading dictionary from: %s", resolvedDict)
		stats, err := completer.Load(resolvedDict)
		if err != nil {
			log.Fatalf("Failed to load dictionary: %v", err)
		}
		log.Debugf("Dictionary ready: %s words (%d lines skipped)",
			utils.FormatWithCommas(stats.Inserted), stats.Skipped)
	} else {
		log.Warn("No dictionary specified, running with empty dict...")
	}

	if *exportDir != "" {
		files, err := dictionary.ExportChunks(*exportDir, completer.Words(), dictionary.DefaultChunkSize)
		if err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Exported %d chunk file(s) to %s\n", files, *exportDir)
		return
	}

	// CLI would be mainly used for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"minPrefix", *minPrefix,
			"maxPrefix", *maxPrefix,
			"limit", *limit,
			"noFilter", *noFilter)

		inputHandler := cli.NewInputHandler(completer, *minPrefix, *maxPrefix, *limit)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(completer, appConfig)

	showStartupInfo(resolvedDict, completer.Stats()["totalWords"])

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// printVersion shows the styled version banner.
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
	logger.Print("[ wordtrie ] prefix completions from a word list")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(dictPath string, words int) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	fmt.Fprintln(os.Stderr, "==========")
	fmt.Fprintln(os.Stderr, " "+AppName+" ")
	fmt.Fprintln(os.Stderr, "==========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("dictionary: ( %s ) %s words", dictPath, utils.FormatWithCommas(words))
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "==========")
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
