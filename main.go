//
// Teo
//
// A small dynamically-typed scripting language: a Pratt parser producing an AST, and a
// tree-walking evaluator that runs it.
//

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/teolang/teo/source/console"
	"github.com/teolang/teo/source/database"
	"github.com/teolang/teo/source/evaluator"
	"github.com/teolang/teo/source/hub"
	"github.com/teolang/teo/source/parser"
	"github.com/teolang/teo/source/settings"
	"github.com/teolang/teo/source/text"
	"github.com/teolang/teo/source/values"
)

const (
	EXIT_OK          = 0
	EXIT_EVAL_ERROR  = 1
	EXIT_PARSE_ERROR = 2 // Also for bad command lines and config files.
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	configPath string
	outPath    string
	driver     string
	dsn        string
	verbose    bool
	help       bool
}

func run(args []string, stdin *os.File, stdout, stderr io.Writer) int {
	opts, optind, err := getopt.Getopts(args, "c:d:ho:t:v")
	if err != nil {
		fmt.Fprintln(stderr, "teo: "+err.Error())
		fmt.Fprint(stderr, text.HELP)
		return EXIT_PARSE_ERROR
	}
	o := options{}
	for _, opt := range opts {
		switch opt.Option {
		case 'c':
			o.configPath = opt.Value
		case 'd':
			o.driver = opt.Value
		case 'h':
			o.help = true
		case 'o':
			o.outPath = opt.Value
		case 't':
			o.dsn = opt.Value
		case 'v':
			o.verbose = true
		}
	}
	if o.help {
		fmt.Fprint(stdout, text.Logo()+text.HELP)
		return EXIT_OK
	}
	cfg, err := loadConfig(o)
	if err != nil {
		text.ReportError(stderr, err)
		return EXIT_PARSE_ERROR
	}
	log := cfg.Logger(stderr)

	files := args[optind:]
	switch len(files) {
	case 0:
		return runRepl(cfg, stdin, stdout)
	case 1:
		return runFile(cfg, o.outPath, files[0], stdin, stdout, stderr, log)
	}
	fmt.Fprint(stderr, text.HELP)
	return EXIT_PARSE_ERROR
}

// Flags override the config file, which overrides the defaults.
func loadConfig(o options) (*settings.Config, error) {
	cfg := settings.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = settings.LoadFile(o.configPath); err != nil {
			return nil, err
		}
	}
	if o.driver != "" {
		cfg.Transcript.Driver = o.driver
	}
	if o.dsn != "" {
		cfg.Transcript.DSN = o.dsn
	}
	if o.verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, cfg.Validate()
}

func runRepl(cfg *settings.Config, stdin *os.File, stdout io.Writer) int {
	fmt.Fprint(stdout, text.Logo())
	log := cfg.Logger(stdout)
	ev := evaluator.New(cfg, stdout)
	ev.Echo = nil // The sink is the terminal already.
	ev.Input = console.Auto(stdin, "")
	ev.Log = log
	rline, err := hub.NewLineReader(stdout)
	if err != nil {
		text.ReportError(stdout, errors.Wrap(err, "teo: starting the REPL"))
		return EXIT_EVAL_ERROR
	}
	return hub.StartHub(hub.New(ev, stdout, log), rline)
}

func runFile(cfg *settings.Config, outPath, path string, stdin *os.File, stdout, stderr io.Writer, log *logrus.Logger) int {
	source, err := os.ReadFile(path)
	if err != nil {
		text.ReportError(stderr, errors.Wrap(err, "teo"))
		return EXIT_EVAL_ERROR
	}
	statements, err := parser.ParseWithLogger(path, string(source), log)
	if err != nil {
		text.ReportError(stderr, err)
		return EXIT_PARSE_ERROR
	}

	// Where the output goes. Printing to a file also echoes to the terminal, unless the config says
	// not to.
	var sink io.Writer = stdout
	var echo io.Writer
	if outPath != "" {
		file, err := os.Create(outPath)
		if err != nil {
			text.ReportError(stderr, errors.Wrap(err, "teo"))
			return EXIT_EVAL_ERROR
		}
		defer file.Close()
		sink = file
		if cfg.Echo {
			echo = stdout
		}
	}
	buffered := bufio.NewWriter(sink)
	var transcript *database.Transcript
	if cfg.Transcript.Driver != "" {
		db, err := database.GetdB(cfg.Transcript.Driver, cfg.Transcript.DSN)
		if err != nil {
			text.ReportError(stderr, err)
			return EXIT_EVAL_ERROR
		}
		defer db.Close()
		if transcript, err = database.NewTranscript(db, cfg.Transcript.Driver, path, source); err != nil {
			text.ReportError(stderr, err)
			return EXIT_EVAL_ERROR
		}
	}

	ev := evaluator.New(cfg, buffered)
	if transcript != nil {
		ev.Out = io.MultiWriter(buffered, transcript)
	}
	ev.Echo = echo
	ev.Input = console.Auto(stdin, "")
	ev.Log = log
	outcome := ev.Run(statements, values.NewEnvironment(), evaluator.NewRegistry())

	exitCode := EXIT_OK
	switch outcome.Status {
	case evaluator.RETURNED:
		exitCode = outcome.ExitCode
	case evaluator.FAILED:
		exitCode = EXIT_EVAL_ERROR
	}
	if err := buffered.Flush(); err != nil {
		text.ReportError(stderr, errors.Wrap(err, "teo: writing output"))
		exitCode = EXIT_EVAL_ERROR
	}
	if outcome.Status == evaluator.FAILED {
		text.ReportError(stderr, outcome.Err)
	}
	if transcript != nil {
		if _, err := transcript.Close(exitCode); err != nil {
			text.ReportError(stderr, err)
		}
	}
	return exitCode
}
