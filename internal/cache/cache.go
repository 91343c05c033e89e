// Package cache is the subprogram that inspects and prunes the result cache.
package cache

import (
	"os"

	"needle/internal/extract"
	"needle/internal/prog"
	"needle/internal/rules"
	"needle/internal/store"
)

// Program is the cache subprogram. It runs when -list-cache or -forget is
// given.
type Program struct{}

func (Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if !f.ListCache && !f.Forget {
		return prog.ErrNotSuitable
	}
	if f.ListCache && f.Forget {
		return prog.BadUsage("-list-cache and -forget are mutually exclusive")
	}
	if f.DB == "" {
		return prog.BadUsage("no cache given; use -db or the db key of the configuration")
	}

	if f.Forget {
		if len(args) == 0 {
			return prog.BadUsage("-forget needs expressions")
		}
		st, err := store.Open(f.DB)
		if err != nil {
			return err
		}
		defer st.Close()
		for _, expr := range args {
			if err := st.Delete(expr); err != nil {
				return err
			}
		}
		return nil
	}

	if len(args) > 0 {
		return prog.BadUsage("-list-cache takes no arguments")
	}
	st, err := store.Open(f.DB)
	if err != nil {
		return err
	}
	defer st.Close()
	entries, err := st.Entries()
	if err != nil {
		return err
	}
	format := f.Format
	if format == "" {
		format = extract.DefaultFormat(fds[1])
	}
	return rules.Encode(fds[1], format, Report(entries))
}

// Report converts cache entries to a report, one result per entry.
func Report(entries []store.Entry) rules.Report {
	report := make(rules.Report, len(entries))
	for i, e := range entries {
		report[i] = rules.Result{
			Expr:         e.Expr,
			Substrings:   e.Substrings,
			Alternatives: e.Alternated,
		}
	}
	return report
}
