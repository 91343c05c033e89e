package needle

import "fmt"

// SyntaxError reports a malformed regular expression.
type SyntaxError struct {
	Expr   string
	Offset int // Byte offset in Expr where the problem was detected
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("needle: bad expression %q at %d: %s", e.Expr, e.Offset, e.Msg)
}

// TreeError reports a syntax tree that breaks the input contract of the
// disassembler, e.g. an alternation without branches. The traversal panics
// with a *TreeError; Validate returns one.
type TreeError struct {
	Node Node
	Msg  string
}

func (e *TreeError) Error() string {
	if e.Node == nil {
		return "needle: invalid tree: " + e.Msg
	}
	return fmt.Sprintf("needle: invalid tree at %s node: %s", e.Node.Type(), e.Msg)
}

func treeErrorf(n Node, format string, args ...any) *TreeError {
	return &TreeError{Node: n, Msg: fmt.Sprintf(format, args...)}
}
