package main

import (
	"bufio"
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/stlalpha/nilo/internal/config"
	"github.com/stlalpha/nilo/internal/editor"
	"github.com/stlalpha/nilo/internal/logging"
	"github.com/stlalpha/nilo/internal/terminal"
)

// options holds the parsed command line. Empty strings and false mean the
// flag was not given and the config file value stands.
type options struct {
	configPath  string
	logFile     string
	encoding    string
	debug       bool
	showVersion bool
	file        string
}

func main() {
	os.Exit(run(os.Args[1:], os.Getenv, os.Stdin, os.Stdout, os.Stderr))
}

// run is the whole program. stdin and stdout must be the controlling
// terminal; the exit code is 0 on quit, 1 on failure and 2 on bad flags.
func run(args []string, getenv func(string) string, stdin, stdout *os.File, stderr io.Writer) int {
	opts, err := parseOptions(args, getenv, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "nilo version %s\n", config.Version)
		return 0
	}

	// Hold startup log lines until the log destination is known.
	var early bytes.Buffer
	logFlags := log.Flags()
	log.SetFlags(0)
	log.SetOutput(&early)
	cfg, err := resolveConfig(opts)
	log.SetFlags(logFlags)
	if err != nil {
		fmt.Fprintf(stderr, "nilo: %v\n", err)
		return 1
	}
	logging.DebugEnabled = cfg.Debug

	logCloser, err := logging.Setup(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(stderr, "nilo: %v\n", err)
		return 1
	}
	defer logCloser.Close()
	replayLog(&early)

	buf := editor.NewTextBuffer(cfg.TabStop)
	if opts.file != "" {
		if err := editor.LoadFile(buf, opts.file, cfg.Encoding); err != nil {
			log.Printf("ERROR: %v", err)
			fmt.Fprintf(stderr, "nilo: %v\n", err)
			return 1
		}
		log.Printf("INFO: Loaded %s (%d rows, %s)", opts.file, buf.RowCount(), cfg.Encoding)
	}

	inFd := int(stdin.Fd())
	guard, err := terminal.Acquire(inFd)
	if err != nil {
		log.Printf("ERROR: %v", err)
		fmt.Fprintf(stderr, "nilo: %v\n", err)
		return 1
	}
	defer guard.Release()

	// A terminating signal skips deferred calls, so restore the terminal here.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGHUP)
	defer func() {
		signal.Stop(sigCh)
		close(sigCh)
	}()
	go func() {
		sig, ok := <-sigCh
		if !ok {
			return
		}
		log.Printf("INFO: Received %v, exiting", sig)
		guard.Release()
		io.WriteString(stdout, terminal.ClearScreen+terminal.CursorHome)
		os.Exit(1)
	}()

	fail := func(err error) int {
		log.Printf("ERROR: %v", err)
		guard.Release()
		io.WriteString(stdout, terminal.ClearScreen+terminal.CursorHome)
		fmt.Fprintf(stderr, "nilo: %v\n", err)
		return 1
	}

	in := terminal.NewInput(inFd)
	rows, cols, err := terminal.QuerySize(int(stdout.Fd()), in, stdout)
	if err != nil {
		return fail(err)
	}
	log.Printf("INFO: Screen is %dx%d", cols, rows)

	ed := editor.New(buf, in, stdout, editor.Size{Rows: rows, Cols: cols}, cfg)
	if opts.configPath != "" {
		watcher, err := config.NewWatcher(opts.configPath)
		if err != nil {
			log.Printf("WARN: Config hot reload disabled: %v", err)
		} else {
			defer watcher.Stop()
			ed.WatchConfig(watcher.Updates())
		}
	}

	if err := ed.Run(); err != nil {
		return fail(err)
	}
	log.Printf("INFO: Session %s ended", logging.SessionID)
	return 0
}

// replayLog sends buffered startup lines through the configured logger so
// they carry its prefix.
func replayLog(r io.Reader) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		log.Print(sc.Text())
	}
}

// parseOptions reads the command line. NILO_CONFIG names the config file
// when -config is absent, and DEBUG=1 turns on debug logging.
func parseOptions(args []string, getenv func(string) string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("nilo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: nilo [flags] [file]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.configPath, "config", "", "Path to the JSON config file (default $NILO_CONFIG)")
	fs.StringVar(&opts.logFile, "log", "", "Append log output to this file")
	fs.StringVar(&opts.encoding, "encoding", "", "Source file encoding: utf8, cp437 or latin1")
	fs.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&opts.showVersion, "version", false, "Print the version and exit")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 1 {
		fmt.Fprintf(stderr, "nilo: only one file can be opened\n")
		fs.Usage()
		return opts, fmt.Errorf("too many arguments: %d", fs.NArg())
	}
	opts.file = fs.Arg(0)

	if opts.configPath == "" {
		opts.configPath = getenv("NILO_CONFIG")
	}
	if getenv("DEBUG") == "1" {
		opts.debug = true
	}
	return opts, nil
}

// resolveConfig loads the config file and applies command line overrides.
func resolveConfig(opts options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}
	if opts.logFile != "" {
		cfg.LogFile = opts.logFile
	}
	if opts.encoding != "" {
		cfg.Encoding = config.NormalizeEncoding(opts.encoding)
	}
	if opts.debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
