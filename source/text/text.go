package text

// Text utilities for the things the `teo` command and the REPL say to the user: the logo, the help
// message, and error reports.

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/teolang/teo/source/report"
	"github.com/teolang/teo/source/token"
)

const (
	VERSION        = "0.1.0"
	BULLET         = "  ▪ "
	BULLET_SPACING = "    " // I.e. whitespace the same width as BULLET.
	PROMPT         = "→ "
	CONTINUE       = "… "
	REPL_SOURCE    = "REPL input"
)

var (
	red    = color.New(color.FgRed).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

// Turns colour off, e.g. when we're writing somewhere that isn't a terminal.
func SetColor(on bool) {
	color.NoColor = !on
}

func Red(s string) string    { return red(s) }
func Green(s string) string  { return green(s) }
func Cyan(s string) string   { return cyan(s) }
func Yellow(s string) string { return yellow(s) }

func Emph(s string) string {
	return "'" + s + "'"
}

func ExtractFileName(s string) string {
	if strings.LastIndex(s, ".") >= 0 {
		s = s[:strings.LastIndex(s, ".")]
	}
	if strings.LastIndex(s, "/") >= 0 {
		s = s[strings.LastIndex(s, "/")+1:]
	}
	return s
}

func Logo() string {
	var padding string
	if len(VERSION)%2 == 1 {
		padding = ","
	}
	titleText := " Teo" + padding + " version " + VERSION + " "
	star := Yellow("★")
	leftMargin := "  "
	bar := strings.Repeat("═", len(titleText)/2)
	return "\n" +
		leftMargin + "╔" + bar + star + bar + "╗\n" +
		leftMargin + "║" + titleText + "║\n" +
		leftMargin + "╚" + bar + star + bar + "╝\n\n"
}

const HELP = "\nUsage: teo [-h] [-v] [-c config.yaml] [-o outfile] [-d driver -t dsn] [file]\n\n" +
	"Runs the Teo script in <file>, or starts the REPL if no file is given.\n\n" +
	"  -c  Reads settings from a YAML file.\n" +
	"  -o  Writes the program's output to a file rather than to the terminal.\n" +
	"  -d  The SQL driver to record a transcript of the run with.\n" +
	"  -t  The data source name of the transcript database.\n" +
	"  -v  Logs what the lexer, parser and evaluator are doing.\n" +
	"  -h  Shows this message.\n\n"

// Like report.DescribePos but for the user's eyes: REPL input isn't quoted like a filename.
func DescribePos(tok *token.Token) string {
	if tok == nil {
		return ""
	}
	prettySource := tok.Source
	if prettySource != "" && prettySource != REPL_SOURCE {
		prettySource = "'" + prettySource + "'"
	}
	if tok.Line > 0 {
		result := " at line " + strconv.Itoa(tok.Line) + ":" + strconv.Itoa(tok.ChStart)
		if tok.ChEnd > tok.ChStart+1 {
			result = result + "-" + strconv.Itoa(tok.ChEnd)
		}
		if prettySource != "" {
			result = result + " of " + prettySource
		}
		return result
	}
	if prettySource == "" {
		return ""
	}
	return " in " + prettySource
}

// Describes an error with its kind, its position, and the chain of calls it unwound through.
func DescribeError(e *report.Error) string {
	kind := Red("[" + e.Kind.String() + "]")
	result := kind + " " + e.Message + DescribePos(e.Token)
	for _, tok := range e.Trace {
		result = result + "\n" + BULLET + "called from " + Emph(tok.Literal) + DescribePos(tok)
	}
	return result + "\n"
}

// Writes the report for an error of any sort. Our own errors get the full treatment; anything else
// is an error from the host, e.g. a file we couldn't open.
func ReportError(w io.Writer, err error) {
	if e, ok := err.(*report.Error); ok {
		fmt.Fprint(w, DescribeError(e))
		return
	}
	fmt.Fprintln(w, Red("Error: ")+err.Error())
}
