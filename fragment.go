package needle

import (
	"strings"
	"unicode"
)

// fragment is the partial result for one subtree: the substrings every match
// of the subtree contains, in order, and whether the first and last of them
// touch whatever precedes and follows the subtree.
//
// An empty entry is kept only at an exact edge, where it marks the spot that
// neighbouring text merges into. A fragment is never mutated once built.
type fragment struct {
	subs       []string
	leftExact  bool
	rightExact bool
}

var (
	// opaque is the fragment of anything of unknown content: a class, a
	// wildcard, a back-reference or an unexpanded alternation.
	opaque = fragment{}
	// transparent is the fragment of a zero-width node.
	transparent = fragment{leftExact: true, rightExact: true}
)

func textFragment(s string) fragment {
	if s == "" {
		return transparent
	}
	return fragment{subs: []string{s}, leftExact: true, rightExact: true}
}

// literalFragment handles case folding: a rune that has other case forms is
// not known exactly and breaks the literal like a one-character class.
func literalFragment(n *Literal) fragment {
	if !n.FoldCase {
		return textFragment(string(n.Runes))
	}
	var j joiner
	start := 0
	for i, r := range n.Runes {
		if unicode.SimpleFold(r) == r {
			continue
		}
		if start < i {
			j.add(textFragment(string(n.Runes[start:i])))
		}
		j.add(opaque)
		start = i + 1
	}
	if start < len(n.Runes) {
		j.add(textFragment(string(n.Runes[start:])))
	}
	return j.fragment()
}

func (f fragment) pure() bool {
	return len(f.subs) == 1 && f.leftExact && f.rightExact
}

// normalize drops empty entries that carry no position. A lone empty entry
// is the same as no entry at all.
func normalize(f fragment) fragment {
	last := len(f.subs) - 1
	subs := make([]string, 0, len(f.subs))
	for i, s := range f.subs {
		if s == "" && !(i == 0 && f.leftExact) && !(i == last && f.rightExact) {
			continue
		}
		subs = append(subs, s)
	}
	if len(subs) == 0 || (len(subs) == 1 && subs[0] == "") {
		subs = nil
	}
	return fragment{subs: subs, leftExact: f.leftExact, rightExact: f.rightExact}
}

// result returns the non-empty substrings of f. It never returns nil.
func (f fragment) result() []string {
	out := make([]string, 0, len(f.subs))
	for _, s := range f.subs {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// joiner folds a sequence of fragments left to right. The zero value is an
// empty sequence.
type joiner struct {
	out     []string
	buf     strings.Builder
	started bool
	left    bool
	right   bool
}

func (j *joiner) add(f fragment) {
	if !j.started {
		j.started = true
		j.left = f.leftExact
		j.right = true
	}
	if !j.right || !f.leftExact {
		j.flush()
	}
	for i, s := range f.subs {
		if i > 0 {
			j.flush()
		}
		j.buf.WriteString(s)
	}
	j.right = f.rightExact
}

func (j *joiner) flush() {
	j.out = append(j.out, j.buf.String())
	j.buf.Reset()
}

// fragment returns the fold of everything added so far. An empty sequence
// matches the empty string and is transparent.
func (j *joiner) fragment() fragment {
	if !j.started {
		return transparent
	}
	j.flush()
	return normalize(fragment{subs: j.out, leftExact: j.left, rightExact: j.right})
}

func join(frags ...fragment) fragment {
	var j joiner
	for _, f := range frags {
		j.add(f)
	}
	return j.fragment()
}

// repeatClass partitions quantified fragments by how their repetitions can be
// reasoned about.
type repeatClass int

const (
	// The body may be absent altogether.
	repeatOptional repeatClass = iota
	// A pure literal repeated a fixed number of times.
	repeatFixedLiteral
	// A pure literal repeated at least min times.
	repeatOpenLiteral
	// Anything else, repeated at least once.
	repeatVariable
)

type keepMode int

const (
	keepNothing keepMode = iota
	keepMinCopies        // The literal, repeated min times.
	keepOneCopy          // The body's substrings, once.
)

type edgeMode int

const (
	edgeOpen edgeMode = iota
	edgeExact
	edgeInherit // Same as the body's edge.
)

func (e edgeMode) resolve(body bool) bool {
	switch e {
	case edgeExact:
		return true
	case edgeInherit:
		return body
	}
	return false
}

type repeatRule struct {
	keep        keepMode
	left, right edgeMode
}

var repeatRules = [...]repeatRule{
	repeatOptional:     {keepNothing, edgeOpen, edgeOpen},
	repeatFixedLiteral: {keepMinCopies, edgeExact, edgeExact},
	repeatOpenLiteral:  {keepMinCopies, edgeExact, edgeOpen},
	repeatVariable:     {keepOneCopy, edgeInherit, edgeOpen},
}

// maxRepeatLen caps the length of a literal expanded by keepMinCopies. A
// capped literal loses its exact right edge.
const maxRepeatLen = 1 << 16

func classifyRepeat(f fragment, min, max int) repeatClass {
	switch {
	case min == 0:
		return repeatOptional
	case !f.pure():
		return repeatVariable
	case min == max:
		return repeatFixedLiteral
	default:
		return repeatOpenLiteral
	}
}

// repeat applies a {min,max} quantifier to f. A negative max is unbounded.
func repeat(f fragment, min, max int) fragment {
	rule := repeatRules[classifyRepeat(f, min, max)]
	out := fragment{
		leftExact:  rule.left.resolve(f.leftExact),
		rightExact: rule.right.resolve(f.rightExact),
	}
	switch rule.keep {
	case keepMinCopies:
		s, n := f.subs[0], min
		if len(s)*n > maxRepeatLen {
			n = maxRepeatLen / len(s)
			if n < 1 {
				n = 1
			}
			out.rightExact = false
		}
		out.subs = []string{strings.Repeat(s, n)}
	case keepOneCopy:
		out.subs = f.subs
	}
	return normalize(out)
}
