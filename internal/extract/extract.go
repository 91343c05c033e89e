// Package extract is the subprogram that reports the substrings of
// expressions given on the command line or in a rule file.
package extract

import (
	"errors"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"needle"
	"needle/internal/config"
	"needle/internal/logutil"
	"needle/internal/prog"
	"needle/internal/rules"
	"needle/internal/store"
)

var logger = logutil.GetLogger("[extract] ")

// Program is the extraction subprogram.
type Program struct{}

func (Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	var rs []rules.Rule
	if f.Rules != "" {
		var err error
		rs, err = rules.LoadFile(f.Rules)
		if err != nil {
			return err
		}
	}
	for _, arg := range args {
		rs = append(rs, rules.Rule{Regex: arg})
	}
	if len(rs) == 0 {
		return prog.BadUsage("no expressions given")
	}

	format := f.Format
	if format == "" {
		format = DefaultFormat(fds[1])
	}

	e := &Extractor{
		Disassembler: &needle.Disassembler{MaxAlternatives: f.MaxAlternatives},
		Alternated:   f.Alternated,
		Tree:         f.Tree,
	}
	if f.DB != "" {
		st, err := store.Open(f.DB)
		if err != nil {
			return err
		}
		defer st.Close()
		e.Store = st
	}

	report := rules.Analyze(rs, e.Extract)
	if err := rules.Encode(fds[1], format, report); err != nil {
		return err
	}
	return prog.Exit(min(report.Failed(), 1))
}

// DefaultFormat returns the output format used when none is configured: text
// on a terminal and JSON otherwise.
func DefaultFormat(out *os.File) string {
	fd := out.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return config.FormatText
	}
	return config.FormatJSON
}

// Extractor computes results for single expressions, consulting a Store when
// there is one.
type Extractor struct {
	Disassembler *needle.Disassembler
	// Whether results include the alternated substrings and the syntax tree.
	Alternated, Tree bool
	// Optional.
	Store *store.Store
}

// Extract implements rules.Extractor.
func (e *Extractor) Extract(expr string) (rules.Result, error) {
	entry, ok := e.cached(expr)
	var tree string
	if !ok || e.Tree {
		re, err := needle.Compile(expr)
		if err != nil {
			return rules.Result{}, err
		}
		if !ok {
			entry = e.compute(re)
		}
		if e.Tree {
			var sb strings.Builder
			needle.Dump(&sb, re.Tree())
			tree = sb.String()
		}
	}
	res := rules.Result{Substrings: entry.Substrings, Tree: tree}
	if e.Alternated {
		res.Alternatives = entry.Alternated
	}
	return res, nil
}

func (e *Extractor) cached(expr string) (store.Entry, bool) {
	if e.Store == nil {
		return store.Entry{}, false
	}
	entry, err := e.Store.Get(expr)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.Printf("lookup %q: %v", expr, err)
		}
		return store.Entry{}, false
	}
	if entry.MaxAlternatives != e.Disassembler.MaxAlternatives {
		return store.Entry{}, false
	}
	return entry, true
}

func (e *Extractor) compute(re *needle.Regexp) store.Entry {
	entry := store.Entry{
		Expr:            re.String(),
		Substrings:      e.Disassembler.Substrings(re.Tree()),
		Alternated:      e.Disassembler.AlternatedSubstrings(re.Tree()),
		MaxAlternatives: e.Disassembler.MaxAlternatives,
	}
	if e.Store != nil {
		if err := e.Store.Put(entry); err != nil {
			logger.Printf("store %q: %v", entry.Expr, err)
		}
	}
	return entry
}
