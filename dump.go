package needle

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Walk calls fn for n and then, in order, for every node below it. Children
// of a node are skipped when fn returns false for it.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range children(n) {
		Walk(c, fn)
	}
}

func children(n Node) []Node {
	switch n := n.(type) {
	case *Concat:
		return n.Nodes
	case *Alternate:
		return n.Nodes
	case *Quantifier:
		return []Node{n.Body}
	case *Group:
		return []Node{n.Body}
	case *Anchor:
		if n.Body != nil {
			return []Node{n.Body}
		}
	}
	return nil
}

// Dump writes an indented outline of the tree rooted at n, one node per line.
func Dump(w io.Writer, n Node) error {
	var err error
	var dump func(n Node, depth int)
	dump = func(n Node, depth int) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), Describe(n))
		for _, c := range children(n) {
			dump(c, depth+1)
		}
	}
	dump(n, 0)
	return err
}

// Describe returns a one-line description of n, without its children.
func Describe(n Node) string {
	switch n := n.(type) {
	case nil:
		return "<nil>"
	case *Literal:
		if n.FoldCase {
			return fmt.Sprintf("literal %q (?i)", string(n.Runes))
		}
		return fmt.Sprintf("literal %q", string(n.Runes))
	case *Concat:
		return "concat"
	case *Alternate:
		return fmt.Sprintf("alternate %d", len(n.Nodes))
	case *Quantifier:
		return "quantifier " + repeatString(n)
	case *Group:
		switch n.Kind {
		case GroupCapture:
			return fmt.Sprintf("group #%d", n.Index)
		case GroupNamed:
			return fmt.Sprintf("group #%d <%s>", n.Index, n.Name)
		case GroupAtomic:
			return "group atomic"
		}
		return "group"
	case *Anchor:
		if n.Kind < 0 || int(n.Kind) >= len(anchorStrings) {
			return "anchor ?"
		}
		return "anchor " + anchorStrings[n.Kind]
	case *CharClass:
		return "class " + classString(n)
	case *MetaClass:
		class := n.Class
		if n.Negated {
			class -= 'a' - 'A'
		}
		return `meta \` + string(class)
	case *PosixClass:
		if n.Negated {
			return "posix ^" + n.Name
		}
		return "posix " + n.Name
	case *Wildcard:
		return "wildcard"
	case *Backreference:
		if n.Name != "" {
			return `backref \k<` + n.Name + ">"
		}
		return `backref \` + strconv.Itoa(n.Index)
	case *SubexpCall:
		if n.Name != "" {
			return `call \g<` + n.Name + ">"
		}
		return `call \g<` + strconv.Itoa(n.Index) + ">"
	}
	return "?"
}

var anchorStrings = [...]string{
	AnchorStartLine:       "^",
	AnchorEndLine:         "$",
	AnchorWordBoundary:    `\b`,
	AnchorNotWordBoundary: `\B`,
	AnchorStartText:       `\A`,
	AnchorEndText:         `\z`,
	AnchorEndTextNewline:  `\Z`,
	AnchorMatchStart:      `\G`,
	AnchorKeep:            `\K`,
	AnchorLookahead:       "(?=)",
	AnchorNegLookahead:    "(?!)",
	AnchorLookbehind:      "(?<=)",
	AnchorNegLookbehind:   "(?<!)",
}

func repeatString(q *Quantifier) string {
	var s string
	switch {
	case q.Min == 0 && q.Max == -1:
		s = "*"
	case q.Min == 1 && q.Max == -1:
		s = "+"
	case q.Min == 0 && q.Max == 1:
		s = "?"
	case q.Max == -1:
		s = fmt.Sprintf("{%d,}", q.Min)
	case q.Min == q.Max:
		s = fmt.Sprintf("{%d}", q.Min)
	default:
		s = fmt.Sprintf("{%d,%d}", q.Min, q.Max)
	}
	switch q.Mode {
	case Lazy:
		s += "?"
	case Possessive:
		s += "+"
	}
	return s
}

func classString(c *CharClass) string {
	var sb strings.Builder
	sb.WriteByte('[')
	if c.Negated {
		sb.WriteByte('^')
	}
	for _, r := range c.Ranges {
		sb.WriteRune(r.Lo)
		if r.Hi != r.Lo {
			sb.WriteByte('-')
			sb.WriteRune(r.Hi)
		}
	}
	for _, name := range c.Posix {
		if strings.HasPrefix(name, `\`) {
			sb.WriteString(name)
		} else {
			sb.WriteString("[:" + name + ":]")
		}
	}
	sb.WriteByte(']')
	return sb.String()
}
