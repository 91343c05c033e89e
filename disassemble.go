package needle

import (
	"iter"

	"needle/internal/logutil"
)

var logger = logutil.GetLogger("[needle] ")

// DefaultMaxAlternatives is the row limit used by a Disassembler whose
// MaxAlternatives is zero.
const DefaultMaxAlternatives = 1024

// Disassembler extracts mandatory substrings from syntax trees. The zero value
// is ready to use, and a Disassembler may be shared between goroutines.
type Disassembler struct {
	// MaxAlternatives bounds the number of rows AlternatedSubstrings expands
	// an expression into. When the expansion is larger, the result falls back
	// to the single row of Substrings. Zero means DefaultMaxAlternatives and a
	// negative value means no limit.
	MaxAlternatives int
}

var defaultDisassembler Disassembler

// Substrings returns the substrings that occur in every string matched by n,
// treating alternation as opaque. It panics with a *TreeError if n is not a
// well-formed tree; see Validate.
func Substrings(n Node) []string {
	return defaultDisassembler.Substrings(n)
}

// AlternatedSubstrings expands alternation in n and returns one substring list
// per branch combination, in branch order. Every string matched by n contains
// all substrings of at least one of the lists. It panics with a *TreeError if
// n is not a well-formed tree; see Validate.
func AlternatedSubstrings(n Node) [][]string {
	return defaultDisassembler.AlternatedSubstrings(n)
}

// Substrings is like the package-level Substrings.
func (d *Disassembler) Substrings(n Node) []string {
	mustValidate(n)
	return conjunctive(n).result()
}

// AlternatedSubstrings is like the package-level AlternatedSubstrings, with
// the row limit of d.
func (d *Disassembler) AlternatedSubstrings(n Node) [][]string {
	mustValidate(n)
	limit := d.MaxAlternatives
	if limit == 0 {
		limit = DefaultMaxAlternatives
	}
	var out [][]string
	for f := range disjunctive(n) {
		if limit > 0 && len(out) == limit {
			logger.Printf("more than %d alternatives, using conjunctive substrings", limit)
			return [][]string{conjunctive(n).result()}
		}
		out = append(out, f.result())
	}
	return out
}

func mustValidate(n Node) {
	if err := Validate(n); err != nil {
		panic(err)
	}
}

// Validate checks that n satisfies the input contract of the disassembler: no
// nil nodes, every alternation has a branch and every quantifier has
// 0 <= Min <= Max (or an unbounded Max). The returned error is a *TreeError.
func Validate(n Node) error {
	switch n := n.(type) {
	case nil:
		return treeErrorf(nil, "nil node")
	case *Literal, *CharClass, *MetaClass, *PosixClass, *Wildcard,
		*Backreference, *SubexpCall:
		return nil
	case *Anchor:
		if n.Body != nil {
			return Validate(n.Body)
		}
		return nil
	case *Group:
		if n.Body == nil {
			return treeErrorf(n, "group without body")
		}
		return Validate(n.Body)
	case *Quantifier:
		if n.Min < 0 {
			return treeErrorf(n, "negative minimum %d", n.Min)
		}
		if n.Max >= 0 && n.Max < n.Min {
			return treeErrorf(n, "maximum %d below minimum %d", n.Max, n.Min)
		}
		if n.Body == nil {
			return treeErrorf(n, "quantifier without body")
		}
		return Validate(n.Body)
	case *Concat:
		return validateAll(n.Nodes)
	case *Alternate:
		if len(n.Nodes) == 0 {
			return treeErrorf(n, "alternation without branches")
		}
		return validateAll(n.Nodes)
	}
	return treeErrorf(n, "unsupported node type %T", n)
}

func validateAll(nodes []Node) error {
	for _, c := range nodes {
		if err := Validate(c); err != nil {
			return err
		}
	}
	return nil
}

// conjunctive computes the fragment of n with alternation left opaque.
func conjunctive(n Node) fragment {
	switch n := n.(type) {
	case *Literal:
		return literalFragment(n)
	case *CharClass, *MetaClass, *PosixClass, *Wildcard:
		return opaque
	case *Anchor:
		return transparent
	case *Backreference, *SubexpCall:
		return opaque
	case *Group:
		return conjunctive(n.Body)
	case *Quantifier:
		return repeat(conjunctive(n.Body), n.Min, n.Max)
	case *Concat:
		var j joiner
		for _, c := range n.Nodes {
			j.add(conjunctive(c))
		}
		return j.fragment()
	case *Alternate:
		return opaque
	}
	panic(treeErrorf(n, "unsupported node type %T", n))
}

// rows is a lazily generated alternative-row-set.
type rows = iter.Seq[fragment]

func single(f fragment) rows {
	return func(yield func(fragment) bool) { yield(f) }
}

// disjunctive computes the rows of n with alternation expanded. Rows are
// produced on demand so a consumer can stop early on large expansions.
func disjunctive(n Node) rows {
	switch n := n.(type) {
	case *Group:
		return disjunctive(n.Body)
	case *Quantifier:
		if n.Min == 0 {
			return single(opaque)
		}
		body := disjunctive(n.Body)
		min, max := n.Min, n.Max
		if min > 1 && countRows(body, 2) > 1 {
			// Each iteration may pick a different row, so only the first
			// one is known to be the row at hand.
			min, max = 1, -1
		}
		return func(yield func(fragment) bool) {
			for f := range body {
				if !yield(repeat(f, min, max)) {
					return
				}
			}
		}
	case *Concat:
		sets := make([]rows, len(n.Nodes))
		for i, c := range n.Nodes {
			sets[i] = disjunctive(c)
		}
		return product(sets)
	case *Alternate:
		branches := make([]rows, len(n.Nodes))
		for i, c := range n.Nodes {
			branches[i] = disjunctive(c)
		}
		return func(yield func(fragment) bool) {
			for _, b := range branches {
				for f := range b {
					if !yield(f) {
						return
					}
				}
			}
		}
	}
	return single(conjunctive(n))
}

// countRows counts the rows of r, stopping at limit.
func countRows(r rows, limit int) int {
	n := 0
	for range r {
		n++
		if n == limit {
			break
		}
	}
	return n
}

// product yields the fold of every combination of one row from each set, with
// the first set varying slowest.
func product(sets []rows) rows {
	return func(yield func(fragment) bool) {
		combo := make([]fragment, len(sets))
		var walk func(i int) bool
		walk = func(i int) bool {
			if i == len(sets) {
				return yield(join(combo...))
			}
			for f := range sets[i] {
				combo[i] = f
				if !walk(i + 1) {
					return false
				}
			}
			return true
		}
		walk(0)
	}
}
