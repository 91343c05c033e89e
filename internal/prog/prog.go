// Package prog provides the entry point to needle. The subprograms live in
// their own packages and are put together by the main package.
package prog

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"needle/internal/config"
	"needle/internal/logutil"
)

// Flags keeps command-line flags.
type Flags struct {
	Config, Rules, Format, DB, Log string

	MaxAlternatives int

	Help, Alternated, Tree, Serve, ListCache, Forget bool
}

func newFlagSet(f *Flags) *flag.FlagSet {
	fs := flag.NewFlagSet("needle", flag.ContinueOnError)
	// Error and usage will be printed explicitly.
	fs.SetOutput(io.Discard)

	fs.StringVar(&f.Config, "config", "", "path to a TOML configuration file")
	fs.StringVar(&f.Rules, "rules", "", "path to a YAML rule file")
	fs.StringVar(&f.Format, "format", "", "output format: text, json or yaml (default text on a terminal, json otherwise)")
	fs.StringVar(&f.DB, "db", "", "path to the result cache")
	fs.StringVar(&f.Log, "log", "", "a file to write debug log to")

	fs.IntVar(&f.MaxAlternatives, "max-alternatives", 0, "row limit for alternated substrings; 0 for the default, negative for none")

	fs.BoolVar(&f.Help, "help", false, "show usage help and quit")
	fs.BoolVar(&f.Alternated, "alternated", false, "also show alternated substrings")
	fs.BoolVar(&f.Tree, "tree", false, "also show the syntax tree")
	fs.BoolVar(&f.Serve, "serve", false, "serve JSON-RPC on stdin and stdout")
	fs.BoolVar(&f.ListCache, "list-cache", false, "list the results in the cache given by -db")
	fs.BoolVar(&f.Forget, "forget", false, "remove the results for the given expressions from the cache")

	return fs
}

func usage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "Usage: needle [flags] [expr...]")
	fmt.Fprintln(out, "Supported flags:")
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// Run parses command-line flags and runs the first applicable subprogram. It
// returns the exit status of the program.
func Run(fds [3]*os.File, args []string, p Program) int {
	f := &Flags{}
	fs := newFlagSet(f)
	err := fs.Parse(args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			// -h is not defined, only -help is.
			fmt.Fprintln(fds[2], "flag provided but not defined: -h")
		} else {
			fmt.Fprintln(fds[2], err)
		}
		usage(fds[2], fs)
		return 2
	}

	if f.Help {
		usage(fds[1], fs)
		return 0
	}

	if err := applyConfig(f, fs); err != nil {
		fmt.Fprintln(fds[2], err)
		usage(fds[2], fs)
		return 2
	}

	if f.Log != "" {
		err = logutil.SetOutputFile(f.Log)
		if err != nil {
			fmt.Fprintln(fds[2], err)
		}
	}

	err = p.Run(fds, f, fs.Args())
	if err == nil {
		return 0
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	switch err := err.(type) {
	case badUsageError:
		usage(fds[2], fs)
	case exitError:
		return err.exit
	}
	return 2
}

// applyConfig fills the flags that were not given on the command line from
// the configuration file, and validates the result.
func applyConfig(f *Flags, fs *flag.FlagSet) error {
	c := config.Default()
	if f.Config != "" {
		var err error
		c, err = config.Load(f.Config)
		if err != nil {
			return err
		}
	}
	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	if !set["max-alternatives"] {
		f.MaxAlternatives = c.MaxAlternatives
	}
	if !set["format"] {
		f.Format = c.Format
	}
	if !set["db"] {
		f.DB = c.DB
	}
	if !set["log"] {
		f.Log = c.Log
	}
	return config.Config{Format: f.Format}.Validate()
}

// Composite returns a Program that tries each of the given programs,
// terminating at the first one that doesn't return ErrNotSuitable.
func Composite(programs ...Program) Program {
	return compositeProgram(programs)
}

type compositeProgram []Program

func (cp compositeProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	for _, p := range cp {
		err := p.Run(fds, f, args)
		if err != ErrNotSuitable {
			return err
		}
	}
	return ErrNotSuitable
}

// ErrNotSuitable is a special error that may be returned by Program.Run, to
// signify that this Program should not be run. It is useful when a Program is
// used in Composite.
var ErrNotSuitable = errors.New("internal error: no suitable subprogram")

// BadUsage returns a special error that may be returned by Program.Run. It
// causes the main function to print out a message, the usage information and
// exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns a special error that may be returned by Program.Run. It causes
// the main function to exit with the given code without printing any error
// messages. Exit(0) returns nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }

// Program represents a subprogram.
type Program interface {
	// Run runs the subprogram.
	Run(fds [3]*os.File, f *Flags, args []string) error
}
