package needle

// NodeType identifies the type of AST node.
type NodeType int

const (
	NodeLiteral NodeType = iota
	NodeConcat
	NodeAlternate
	NodeQuantifier
	NodeGroup
	NodeAnchor
	NodeCharClass
	NodeMetaClass
	NodePosixClass
	NodeWildcard
	NodeBackreference
	NodeSubexpCall
)

var nodeTypeNames = [...]string{
	NodeLiteral:       "literal",
	NodeConcat:        "concat",
	NodeAlternate:     "alternate",
	NodeQuantifier:    "quantifier",
	NodeGroup:         "group",
	NodeAnchor:        "anchor",
	NodeCharClass:     "class",
	NodeMetaClass:     "meta",
	NodePosixClass:    "posix",
	NodeWildcard:      "wildcard",
	NodeBackreference: "backref",
	NodeSubexpCall:    "call",
}

func (t NodeType) String() string {
	if t >= 0 && int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return "unknown"
}

// Node is the base interface for AST nodes. The set of implementations is
// closed: only the types in this file satisfy it.
type Node interface {
	Type() NodeType
	node()
}

// Literal matches a sequence of runes.
type Literal struct {
	Runes    []rune
	FoldCase bool // Case-insensitive matching
}

func (n *Literal) Type() NodeType { return NodeLiteral }

// Concat matches a sequence of nodes.
type Concat struct {
	Nodes []Node
}

func (n *Concat) Type() NodeType { return NodeConcat }

// Alternate matches one of several branches.
type Alternate struct {
	Nodes []Node
}

func (n *Alternate) Type() NodeType { return NodeAlternate }

// RepeatMode selects how a quantifier consumes input.
type RepeatMode int

const (
	Greedy RepeatMode = iota
	Lazy
	Possessive
)

// Quantifier matches a node repeated min..max times.
type Quantifier struct {
	Body Node
	Min  int
	Max  int // -1 for infinity
	Mode RepeatMode
}

func (n *Quantifier) Type() NodeType { return NodeQuantifier }

// Unbounded reports whether the quantifier has no upper limit.
func (n *Quantifier) Unbounded() bool { return n.Max < 0 }

// GroupKind distinguishes the flavours of parenthesized groups.
type GroupKind int

const (
	GroupCapture GroupKind = iota // (...)
	GroupNamed                    // (?<name>...)
	GroupNonCapture               // (?:...)
	GroupAtomic                   // (?>...)
)

// Group wraps exactly one child node.
type Group struct {
	Kind  GroupKind
	Body  Node
	Index int    // 1-based capture index, 0 for non-capturing groups
	Name  string // Optional name
}

func (n *Group) Type() NodeType { return NodeGroup }

// AnchorKind identifies a zero-width assertion.
type AnchorKind int

const (
	AnchorStartLine       AnchorKind = iota // ^
	AnchorEndLine                           // $
	AnchorWordBoundary                      // \b
	AnchorNotWordBoundary                   // \B
	AnchorStartText                         // \A
	AnchorEndText                           // \z
	AnchorEndTextNewline                    // \Z
	AnchorMatchStart                        // \G
	AnchorKeep                              // \K
	AnchorLookahead                         // (?=...)
	AnchorNegLookahead                      // (?!...)
	AnchorLookbehind                        // (?<=...)
	AnchorNegLookbehind                     // (?<!...)
)

// Anchor matches a position without consuming characters. Lookarounds keep
// their pattern in Body; Body is nil for all other kinds.
type Anchor struct {
	Kind AnchorKind
	Body Node
}

func (n *Anchor) Type() NodeType { return NodeAnchor }

// CharClass represents [a-z0-9] or [^a-z].
type CharClass struct {
	Ranges  []RuneRange
	Posix   []string // Nested [:name:] items
	Negated bool
}

type RuneRange struct {
	Lo, Hi rune
}

func (n *CharClass) Type() NodeType { return NodeCharClass }

// MetaClass is a shorthand class such as \d, \W or \N. Class holds the
// escape letter, in lower case for the negatable classes.
type MetaClass struct {
	Class   rune
	Negated bool
}

func (n *MetaClass) Type() NodeType { return NodeMetaClass }

// PosixClass is a named class: \p{Alpha}, \P{Digit} or a bracket expression
// made of a single [:name:] item.
type PosixClass struct {
	Name    string
	Negated bool
}

func (n *PosixClass) Type() NodeType { return NodePosixClass }

// Wildcard is the dot.
type Wildcard struct{}

func (n *Wildcard) Type() NodeType { return NodeWildcard }

// Backreference refers to a previously captured group, by index or by name.
type Backreference struct {
	Index int
	Name  string
}

func (n *Backreference) Type() NodeType { return NodeBackreference }

// SubexpCall re-runs the pattern of a group: \g<name> or \g<1>.
type SubexpCall struct {
	Index int
	Name  string
}

func (n *SubexpCall) Type() NodeType { return NodeSubexpCall }

func (*Literal) node()       {}
func (*Concat) node()        {}
func (*Alternate) node()     {}
func (*Quantifier) node()    {}
func (*Group) node()         {}
func (*Anchor) node()        {}
func (*CharClass) node()     {}
func (*MetaClass) node()     {}
func (*PosixClass) node()    {}
func (*Wildcard) node()      {}
func (*Backreference) node() {}
func (*SubexpCall) node()    {}
