package rules

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"needle/internal/config"
)

// Encode writes r to w in the named format, one of config.Formats.
func Encode(w io.Writer, format string, r Report) error {
	switch format {
	case config.FormatText:
		return encodeText(w, r)
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q", format)
}

func encodeText(w io.Writer, r Report) error {
	bw := bufio.NewWriter(w)
	for _, res := range r {
		if res.ID != "" {
			fmt.Fprintf(bw, "%s\n  expr: %s\n", res.ID, res.Expr)
		} else {
			fmt.Fprintf(bw, "%s\n", res.Expr)
		}
		if res.Error != "" {
			fmt.Fprintf(bw, "  error: %s\n", res.Error)
			continue
		}
		fmt.Fprintf(bw, "  substrings: %s\n", quoteAll(res.Substrings))
		if res.Alternatives != nil {
			fmt.Fprintf(bw, "  alternatives:\n")
			for _, alt := range res.Alternatives {
				fmt.Fprintf(bw, "    %s\n", quoteAll(alt))
			}
		}
		if res.Tree != "" {
			fmt.Fprintf(bw, "  tree:\n")
			for _, line := range strings.SplitAfter(strings.TrimSuffix(res.Tree, "\n"), "\n") {
				fmt.Fprintf(bw, "    %s", line)
			}
			fmt.Fprintln(bw)
		}
	}
	return bw.Flush()
}

func quoteAll(subs []string) string {
	if len(subs) == 0 {
		return "(none)"
	}
	quoted := make([]string, len(subs))
	for i, s := range subs {
		quoted[i] = strconv.Quote(s)
	}
	return strings.Join(quoted, " ")
}
