package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/decred/slog"

	"github.com/vctt94/pokerlut/pkg/logging"
	"github.com/vctt94/pokerlut/pkg/utils"
)

const appName = "pokerlut"

// config holds the global flags shared by every subcommand.
type config struct {
	dataDir      string
	dbPath       string
	debugLevel   string
	workers      int
	skipMemCheck bool
}

type command struct {
	usage string
	help  string
	run   func(ctx context.Context, env *env, args []string) error
}

// env is what a subcommand runs with.
type env struct {
	cfg        config
	logBackend *logging.LogBackend
	log        slog.Logger
}

var commands = map[string]command{
	"eval": {
		usage: "eval [-lut] <cards>",
		help:  "Evaluate a seven-card hand",
		run:   runEval,
	},
	"build": {
		usage: "build [-deck <cards>] [-nosave]",
		help:  "Build the lookup table and save it to the database",
		run:   runBuild,
	},
	"verify": {
		usage: "verify [-n N] [-seed S]",
		help:  "Cross-check evaluator, stored table and reference evaluator",
		run:   runVerify,
	},
	"compare": {
		usage: "compare <cards> <cards>",
		help:  "Decide which of two seven-card hands wins",
		run:   runCompare,
	},
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + appName
	}
	return filepath.Join(home, "."+appName)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <command> [args]\n\nCommands:\n", appName)
	for _, name := range []string{"eval", "build", "verify", "compare"} {
		c := commands[name]
		fmt.Fprintf(os.Stderr, "  %-28s %s\n", c.usage, c.help)
	}
	fmt.Fprintf(os.Stderr, "\nFlags:\n")
	flag.PrintDefaults()
}

func main() {
	var cfg config
	flag.StringVar(&cfg.dataDir, "datadir", defaultDataDir(), "Directory for the database and logs")
	flag.StringVar(&cfg.dbPath, "db", "", "Path to SQLite database file (default <datadir>/lut.sqlite)")
	flag.StringVar(&cfg.debugLevel, "debuglevel", "info", "Logging level: trace, debug, info, warn, error, or SUBSYS=level pairs")
	flag.IntVar(&cfg.workers, "workers", runtime.NumCPU(), "Number of partitions built concurrently (1 = sequential)")
	flag.BoolVar(&cfg.skipMemCheck, "skipmemcheck", false, "Build even if the table looks larger than system memory")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	cmd, ok := commands[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", flag.Arg(0))
		usage()
		os.Exit(2)
	}

	cfg.dataDir = utils.CleanAndExpandPath(cfg.dataDir)
	if err := utils.EnsureDataDirExists(cfg.dataDir); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if cfg.dbPath == "" {
		cfg.dbPath = filepath.Join(cfg.dataDir, "lut.sqlite")
	}
	cfg.dbPath = utils.CleanAndExpandPath(cfg.dbPath)

	// Logging backend
	logBackend, err := logging.NewLogBackend(logging.LogConfig{
		LogFile:     filepath.Join(cfg.dataDir, "logs", appName+".log"),
		DebugLevel:  cfg.debugLevel,
		MaxLogFiles: 10,
		Stdout:      os.Stderr,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	e := &env{cfg: cfg, logBackend: logBackend, log: logBackend.Logger("CMD")}
	err = cmd.run(ctx, e, flag.Args()[1:])
	stop()
	logBackend.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", flag.Arg(0), err)
		os.Exit(1)
	}
}

// joinArgs lets a hand be given as one argument or spread over several.
func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
