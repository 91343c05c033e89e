// Package needle extracts, from a regular expression, the literal substrings
// that occur in every string the expression matches. The substrings are
// meant for pre-filtering: a text that lacks one of them cannot match, so a
// plain substring search can reject it before the expression is run.
//
// Substrings treats alternation as opaque and returns one list that must be
// present in full. AlternatedSubstrings expands alternation and returns a
// list of alternatives, at least one of which must be present in full:
//
//	re := needle.MustCompile(`ab(c|d|e)fg`)
//	re.Substrings()           // [ab fg]
//	re.AlternatedSubstrings() // [[abcfg] [abdfg] [abefg]]
//
// The results are only necessary conditions. They are conservative: a
// substring may be shorter than it could be, but is never wrong.
package needle

import (
	"fmt"
)

// Regexp is a parsed regular expression. It is safe for concurrent use.
type Regexp struct {
	expr        string
	tree        Node
	subexpNames []string
}

// Compile parses a regular expression.
func Compile(expr string) (*Regexp, error) {
	parser := NewParser(expr)
	node, err := parser.Parse()
	if err != nil {
		return nil, err
	}

	// Build subexp names from parser
	names := make([]string, parser.captures+1)
	for name, idx := range parser.names {
		if idx < len(names) {
			names[idx] = name
		}
	}

	return &Regexp{
		expr:        expr,
		tree:        node,
		subexpNames: names,
	}, nil
}

// MustCompile is like Compile but panics if the expression cannot be parsed.
func MustCompile(expr string) *Regexp {
	re, err := Compile(expr)
	if err != nil {
		panic(fmt.Sprintf("needle: Compile(%q): %v", expr, err))
	}
	return re
}

// NumSubexp returns the number of parenthesized subexpressions in this Regexp.
func (re *Regexp) NumSubexp() int {
	return len(re.subexpNames) - 1
}

// SubexpNames returns the names of the parenthesized subexpressions
// in this Regexp. The first element is the full match (unnamed).
func (re *Regexp) SubexpNames() []string {
	return re.subexpNames
}

// SubexpIndex returns the index of the first subexpression with the given name,
// or -1 if there is no subexpression with that name.
func (re *Regexp) SubexpIndex(name string) int {
	if name == "" {
		return -1
	}
	for i, n := range re.subexpNames {
		if n == name {
			return i
		}
	}
	return -1
}

// String returns the source text used to compile the regular expression.
func (re *Regexp) String() string {
	return re.expr
}

// Tree returns the syntax tree. It must not be modified.
func (re *Regexp) Tree() Node {
	return re.tree
}

// Substrings returns the substrings every match contains, with alternation
// treated as opaque.
func (re *Regexp) Substrings() []string {
	return Substrings(re.tree)
}

// AlternatedSubstrings returns one substring list per combination of
// alternation branches, using the default row limit.
func (re *Regexp) AlternatedSubstrings() [][]string {
	return AlternatedSubstrings(re.tree)
}

// LiteralPrefix returns a literal string that must begin any match
// of the regular expression re. It returns the boolean true if the
// literal string comprises the entire regular expression.
func (re *Regexp) LiteralPrefix() (prefix string, complete bool) {
	f := conjunctive(re.tree)
	if !f.leftExact || len(f.subs) == 0 || f.subs[0] == "" {
		return "", false
	}
	complete = f.pure()
	Walk(re.tree, func(n Node) bool {
		if _, ok := n.(*Anchor); ok {
			complete = false
		}
		return complete
	})
	return f.subs[0], complete
}
