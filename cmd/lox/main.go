package main

import (
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"gopkg.in/yaml.v3"

	lox "github.com/KimNorgaard/go-lox"
	"github.com/KimNorgaard/go-lox/errors"
	"github.com/KimNorgaard/go-lox/internal/config"
)

// Exit codes follow sysexits.h.
const (
	exitOK       = 0
	exitUsage    = 64
	exitDataErr  = 65
	exitNoInput  = 66
	exitSoftware = 70
	exitConfig   = 78
)

const helpText = `REPL commands:
  :env     Show the global variables
  :help    Show this help
  :quit    Exit the REPL
An empty line also exits.`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "lox: ", 0)

	flags := flag.NewFlagSet("lox", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "path to a YAML config file (default $HOME/"+config.FileName+")")
	traceTokens := flags.Bool("tokens", false, "print every scanned token")
	printAST := flags.Bool("ast", false, "print the parsed program before running it")
	noColor := flags.Bool("no-color", false, "disable colored diagnostics in the REPL")
	flags.Usage = func() {
		fmt.Fprintln(stderr, "Usage: lox [flags] [script]")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if stderrors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if flags.NArg() > 1 {
		fmt.Fprintln(stderr, "Usage: lox [flags] [script]")
		return exitUsage
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Print(err)
		return exitConfig
	}
	if *traceTokens {
		cfg.TraceTokens = true
	}
	if *printAST {
		cfg.PrintAST = true
	}
	if *noColor {
		cfg.Color = false
	}

	if flags.NArg() == 1 {
		return runFile(flags.Arg(0), cfg, stdout, stderr, logger)
	}
	return runPrompt(cfg, stdout, stderr, logger)
}

// loadConfig reads the config file named on the command line, which must
// exist, or else the one in the home directory, which may be absent.
func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	path = config.DefaultPath()
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func newRunner(cfg config.Config, stdout, stderr io.Writer, color bool) (*lox.Runner, error) {
	opts := []lox.Option{
		lox.WithOutput(stdout),
		lox.WithTraceOutput(stdout),
		lox.WithReporter(lox.NewStreamReporter(stderr, color)),
		lox.MaxDepth(cfg.MaxDepth),
	}
	if cfg.TraceTokens {
		opts = append(opts, lox.TraceTokens())
	}
	if cfg.PrintAST {
		opts = append(opts, lox.PrintAST())
	}
	return lox.New(opts...)
}

func runFile(path string, cfg config.Config, stdout, stderr io.Writer, logger *log.Logger) int {
	src, err := os.ReadFile(path)
	if err != nil {
		logger.Print(err)
		return exitNoInput
	}

	r, err := newRunner(cfg, stdout, stderr, false)
	if err != nil {
		logger.Print(err)
		return exitConfig
	}
	return exitCode(r.Run(string(src)))
}

// exitCode maps the result of a run to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var diags errors.Diagnostics
	if stderrors.As(err, &diags) {
		return exitDataErr
	}
	return exitSoftware
}

func runPrompt(cfg config.Config, stdout, stderr io.Writer, logger *log.Logger) int {
	r, err := newRunner(cfg, stdout, stderr, cfg.Color)
	if err != nil {
		logger.Print(err)
		return exitConfig
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := cfg.HistoryPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	for {
		line, err := ln.Prompt(cfg.Prompt)
		if stderrors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(stdout)
			return exitOK
		}

		input := strings.TrimSpace(line)
		if input == "" {
			return exitOK
		}
		ln.AppendHistory(line)

		if strings.HasPrefix(input, ":") {
			if quit := replCommand(input, r, stdout); quit {
				return exitOK
			}
			continue
		}

		// Diagnostics have already been reported; each input starts afresh.
		_ = r.Run(line)
	}
}

// replCommand executes a ':' command and reports whether the REPL should
// exit.
func replCommand(cmd string, r *lox.Runner, w io.Writer) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprintln(w, helpText)
	case ":env":
		globals := r.Globals()
		if len(globals) == 0 {
			fmt.Fprintln(w, "no variables defined")
			return false
		}
		out, err := yaml.Marshal(globals)
		if err != nil {
			fmt.Fprintf(w, "cannot show variables: %v\n", err)
			return false
		}
		fmt.Fprint(w, string(out))
	default:
		fmt.Fprintf(w, "unknown command %s. Type :help for help.\n", cmd)
	}
	return false
}
