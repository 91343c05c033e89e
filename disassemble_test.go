package needle

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSubstrings(t *testing.T) {
	tests := []struct {
		pattern string
		want    []string
	}{
		// Literals and breaks
		{"abcdef", []string{"abcdef"}},
		{"abc[0-9]def", []string{"abc", "def"}},
		{"abc.def", []string{"abc", "def"}},
		{`abc\d{3}def`, []string{"abc", "def"}},
		{`[[:alpha:]]abc\p{Greek}def`, []string{"abc", "def"}},
		{"", []string{}},
		{".", []string{}},
		{"[a-z]+", []string{}},

		// Alternation is opaque but not optional
		{"ab(c|d|e)fg", []string{"ab", "fg"}},
		{"(a|b)", []string{}},
		{"foo|bar", []string{}},

		// Quantified literals
		{"abc{3}", []string{"abccc"}},
		{"a{3}", []string{"aaa"}},
		{"abc*def", []string{"ab", "def"}},
		{"abc?def", []string{"ab", "def"}},
		{"abc+def", []string{"abc", "def"}},
		{"abc{2,}def", []string{"abcc", "def"}},
		{"ab(cd)+ef", []string{"abcd", "ef"}},
		{"(ab){2,3}c", []string{"abab", "c"}},
		{"(abc){0}def", []string{"def"}},
		{"foo(bar)?baz", []string{"foo", "baz"}},
		{"a((bc){2}d){2}e", []string{"abcbcdbcbcde"}},

		// Quantified non-literals keep one copy and break on the right
		{"(a.c){2}x", []string{"a", "c", "x"}},
		{"x(ab+){2}y", []string{"xab", "y"}},
		{"x(a|b){3}y", []string{"x", "y"}},

		// Zero-width nodes are transparent
		{"^abc$", []string{"abc"}},
		{`\Aabc\z`, []string{"abc"}},
		{`foo\bbar`, []string{"foobar"}},
		{"foo(?=bar)bar", []string{"foobar"}},
		{"a(?:)b", []string{"ab"}},

		// References have unknown content
		{`(\w+)\s+\1`, []string{}},
		{`(?<x>ab)c\k<x>d`, []string{"abc", "d"}},
		{`(?<x>ab)c\g<x>d`, []string{"abc", "d"}},

		// Case folding
		{"(?i)abc", []string{}},
		{"(?i)a1b", []string{"1"}},
		{"x(?i:a)y", []string{"x", "y"}},
		{"(?i)1-2(?-i)ab", []string{"1-2ab"}},
	}

	for _, tt := range tests {
		re := MustCompile(tt.pattern)
		got := re.Substrings()
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Substrings(%q) (-want +got):\n%s", tt.pattern, diff)
		}
	}
}

func TestAlternatedSubstrings(t *testing.T) {
	tests := []struct {
		pattern string
		want    [][]string
	}{
		{"ab(c|d|e)fg", [][]string{{"abcfg"}, {"abdfg"}, {"abefg"}}},
		{"abcdef", [][]string{{"abcdef"}}},
		{"foo|bar", [][]string{{"foo"}, {"bar"}}},
		// The first alternation varies slowest.
		{"(a|b)(c|d)", [][]string{{"ac"}, {"ad"}, {"bc"}, {"bd"}}},
		// Nested alternation is flattened in place.
		{"x(a|(b|c))y", [][]string{{"xay"}, {"xby"}, {"xcy"}}},
		{"(a|b|(c|(d|e)))", [][]string{{"a"}, {"b"}, {"c"}, {"d"}, {"e"}}},
		// Optional alternation collapses to a single break.
		{"(a|b)?c", [][]string{{"c"}}},
		{"x(a|b)*y", [][]string{{"x", "y"}}},
		// Repeated alternation
		{"(ab|cd)+e", [][]string{{"ab", "e"}, {"cd", "e"}}},
		{"(ab|cd){2}e", [][]string{{"ab", "e"}, {"cd", "e"}}},
		{"x(ab|cd){1}e", [][]string{{"xabe"}, {"xcde"}}},
		// Branches keep their own breaks.
		{"(abc*def|x)", [][]string{{"ab", "def"}, {"x"}}},
		{"(a.b|c)d", [][]string{{"a", "bd"}, {"cd"}}},
		// An empty branch needs nothing beyond its neighbours.
		{"(a|)b", [][]string{{"ab"}, {"b"}}},
		{"(?:foo|)", [][]string{{"foo"}, {}}},
	}

	for _, tt := range tests {
		re := MustCompile(tt.pattern)
		got := re.AlternatedSubstrings()
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("AlternatedSubstrings(%q) (-want +got):\n%s", tt.pattern, diff)
		}
	}
}

// TestAlternationFreeAgreement checks that both modes agree when there is
// nothing to expand.
func TestAlternationFreeAgreement(t *testing.T) {
	patterns := []string{
		"",
		"abcdef",
		"abc[0-9]def",
		"abc{3}",
		"abc*def",
		"(a.c){2}x",
		"x(ab+){2}y",
		"a((bc){2}d){2}e",
		`^\d+-foo\b`,
		"(?i)a1b",
		"(abc){0}def",
	}
	for _, pattern := range patterns {
		re := MustCompile(pattern)
		want := [][]string{re.Substrings()}
		if diff := cmp.Diff(want, re.AlternatedSubstrings()); diff != "" {
			t.Errorf("%q: AlternatedSubstrings differs from [Substrings] (-want +got):\n%s", pattern, diff)
		}
	}
}

func TestIdempotence(t *testing.T) {
	re := MustCompile("a(b|c)+d[0-9]{2}e(f|g)")
	first, firstAlt := re.Substrings(), re.AlternatedSubstrings()
	for i := 0; i < 3; i++ {
		if diff := cmp.Diff(first, re.Substrings()); diff != "" {
			t.Errorf("Substrings changed between calls:\n%s", diff)
		}
		if diff := cmp.Diff(firstAlt, re.AlternatedSubstrings()); diff != "" {
			t.Errorf("AlternatedSubstrings changed between calls:\n%s", diff)
		}
	}
}

// TestHandBuiltTree runs the disassembler on trees that did not come from the
// parser.
func TestHandBuiltTree(t *testing.T) {
	lit := func(s string) *Literal { return &Literal{Runes: []rune(s)} }

	tree := &Concat{Nodes: []Node{
		lit("ab"),
		&Quantifier{Body: lit("c"), Min: 3, Max: 3},
	}}
	if diff := cmp.Diff([]string{"abccc"}, Substrings(tree)); diff != "" {
		t.Errorf("Substrings (-want +got):\n%s", diff)
	}

	// A literal split over several nodes merges back together.
	tree = &Concat{Nodes: []Node{lit("a"), lit("b"), &Anchor{Kind: AnchorWordBoundary}, lit("c")}}
	if diff := cmp.Diff([]string{"abc"}, Substrings(tree)); diff != "" {
		t.Errorf("Substrings (-want +got):\n%s", diff)
	}

	// Nested containers without groups in between.
	tree = &Concat{Nodes: []Node{
		lit("x"),
		&Concat{Nodes: []Node{lit("y"), &Alternate{Nodes: []Node{lit("1"), lit("2")}}}},
		lit("z"),
	}}
	if diff := cmp.Diff([]string{"xy", "z"}, Substrings(tree)); diff != "" {
		t.Errorf("Substrings (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]string{{"xy1z"}, {"xy2z"}}, AlternatedSubstrings(tree)); diff != "" {
		t.Errorf("AlternatedSubstrings (-want +got):\n%s", diff)
	}
}

func TestMaxAlternatives(t *testing.T) {
	re := MustCompile("x(a|b)(c|d)y")

	limited := &Disassembler{MaxAlternatives: 3}
	want := [][]string{{"x", "y"}}
	if diff := cmp.Diff(want, limited.AlternatedSubstrings(re.Tree())); diff != "" {
		t.Errorf("over the limit (-want +got):\n%s", diff)
	}

	exact := &Disassembler{MaxAlternatives: 4}
	want = [][]string{{"xacy"}, {"xady"}, {"xbcy"}, {"xbdy"}}
	if diff := cmp.Diff(want, exact.AlternatedSubstrings(re.Tree())); diff != "" {
		t.Errorf("at the limit (-want +got):\n%s", diff)
	}

	unlimited := &Disassembler{MaxAlternatives: -1}
	if got := len(unlimited.AlternatedSubstrings(re.Tree())); got != 4 {
		t.Errorf("unlimited: got %d rows; want 4", got)
	}
}

func TestValidate(t *testing.T) {
	lit := &Literal{Runes: []rune("a")}
	tests := []struct {
		name string
		node Node
		ok   bool
	}{
		{"literal", lit, true},
		{"empty concat", &Concat{}, true},
		{"nil", nil, false},
		{"empty alternation", &Alternate{}, false},
		{"nested empty alternation", &Concat{Nodes: []Node{lit, &Group{Body: &Alternate{}}}}, false},
		{"nil child", &Concat{Nodes: []Node{lit, nil}}, false},
		{"group without body", &Group{}, false},
		{"negative min", &Quantifier{Body: lit, Min: -1, Max: 2}, false},
		{"max below min", &Quantifier{Body: lit, Min: 3, Max: 2}, false},
		{"unbounded", &Quantifier{Body: lit, Min: 3, Max: -1}, true},
		{"quantifier without body", &Quantifier{Min: 1, Max: 1}, false},
		{"lookahead body", &Anchor{Kind: AnchorLookahead, Body: &Alternate{}}, false},
	}
	for _, tt := range tests {
		err := Validate(tt.node)
		if tt.ok {
			if err != nil {
				t.Errorf("%s: Validate = %v; want nil", tt.name, err)
			}
			continue
		}
		var treeErr *TreeError
		if !errors.As(err, &treeErr) {
			t.Errorf("%s: Validate = %v; want a *TreeError", tt.name, err)
		}
	}
}

// TestContractViolationPanics checks that malformed trees fail fast instead
// of producing a result.
func TestContractViolationPanics(t *testing.T) {
	trees := []Node{
		&Alternate{},
		&Concat{Nodes: []Node{&Literal{Runes: []rune("a")}, &Alternate{}}},
		&Quantifier{Body: &Literal{Runes: []rune("a")}, Min: 2, Max: 1},
	}
	for _, tree := range trees {
		for _, mode := range []string{"Substrings", "AlternatedSubstrings"} {
			func() {
				defer func() {
					r := recover()
					if _, ok := r.(*TreeError); !ok {
						t.Errorf("%s(%s): recovered %v; want a *TreeError panic", mode, Describe(tree), r)
					}
				}()
				if mode == "Substrings" {
					Substrings(tree)
				} else {
					AlternatedSubstrings(tree)
				}
			}()
		}
	}
}
