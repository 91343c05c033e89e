package needle

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestInvalidPatterns tests that invalid regex patterns produce errors
func TestInvalidPatterns(t *testing.T) {
	invalidPatterns := []struct {
		pattern string
		desc    string
	}{
		{"(", "unclosed group"},
		{")", "unmatched closing paren"},
		{"ab)", "unmatched closing paren"},
		{"[", "unclosed character class"},
		{"[z-a]", "invalid range"},
		{`[a-\d]`, "range ending in a class"},
		{"(?P<>abc)", "empty capture name"},
		{"(?P<123>abc)", "invalid capture name (starts with digit)"},
		{"(?P<name>a)(?P<name>b)", "duplicate capture name"},
		{"*", "quantifier without target"},
		{"+", "quantifier without target"},
		{"?", "quantifier without target"},
		{"{3}", "quantifier without target"},
		{"a|*", "quantifier without target"},
		{"(?i)*", "quantifier after flag group"},
		{"(?", "incomplete group"},
		{"(?P", "incomplete named group"},
		{"(?P<name)", "incomplete named group"},
		{"(?z)", "unknown flag"},
		{"(?#comment", "unclosed comment"},
		{"\\", "trailing backslash"},
		{"[\\", "unclosed escape in class"},
		{"a{", "unclosed quantifier"},
		{"a{,}", "quantifier without numbers"},
		{"a{3,2}", "invalid range (min > max)"},
		{"a{1000000}", "count too large"},
		{`\1`, "reference to missing group"},
		{`(a)\2`, "reference to missing group"},
		{`\k<x>`, "reference to undefined name"},
		{`(?P=x)`, "reference to undefined name"},
		{`\k`, "reference without name"},
		{`\x`, "hex escape without digits"},
		{`\u12`, "short unicode escape"},
		{`\x{110000}`, "code point out of range"},
		{`\p{}`, "empty property name"},
		{"a\xffb", "invalid UTF-8"},
		{"(?#\x80)", "invalid UTF-8 in a comment"},
		{`\y`, "unknown escape"},
		{`a\Lb`, "unknown escape"},
		{`\8`, "reference to missing group"},
		{`[\y]`, "unknown escape in class"},
		{`[\Qa\E]`, "quoting in class"},
		{`[\9]`, "digit escape in class"},
		{"\\é", "non-ASCII escape"},
		{`\c`, "control escape without character"},
		{"\\c\x01", "control escape of a control character"},
		{`\o101`, "octal escape without braces"},
		{`\o{8}`, "bad octal digit"},
		{`\N{U+41}`, "named character"},
		{`\Qab\E*`, "quantifier after end of quote"},
		{`\E+`, "quantifier after stray end of quote"},
	}

	for _, tt := range invalidPatterns {
		_, err := Compile(tt.pattern)
		if err == nil {
			t.Errorf("Compile(%q) should fail (%s), but succeeded", tt.pattern, tt.desc)
			continue
		}
		var syntaxErr *SyntaxError
		if !errors.As(err, &syntaxErr) {
			t.Errorf("Compile(%q) error %v is not a *SyntaxError", tt.pattern, err)
		}
	}
}

func TestSyntaxErrorPosition(t *testing.T) {
	tests := []struct {
		pattern string
		offset  int
		msg     string
	}{
		{"ab)", 2, `needle: bad expression "ab)" at 2: unmatched ')'`},
		{"x(ab", 1, `needle: bad expression "x(ab" at 1: missing closing )`},
		{"ab[cd", 2, `needle: bad expression "ab[cd" at 2: unclosed character class`},
		{`a\k<x>`, 1, `needle: bad expression "a\\k<x>" at 1: undefined group name "x"`},
		{`ab\yc`, 2, `needle: bad expression "ab\\yc" at 2: invalid escape sequence \y`},
		{"a\xffb", 1, `needle: bad expression "a\xffb" at 1: invalid UTF-8`},
	}
	for _, tt := range tests {
		_, err := Compile(tt.pattern)
		var syntaxErr *SyntaxError
		if !errors.As(err, &syntaxErr) {
			t.Errorf("Compile(%q) = %v; want a *SyntaxError", tt.pattern, err)
			continue
		}
		if syntaxErr.Offset != tt.offset {
			t.Errorf("Compile(%q) offset = %d; want %d", tt.pattern, syntaxErr.Offset, tt.offset)
		}
		if err.Error() != tt.msg {
			t.Errorf("Compile(%q) error = %q; want %q", tt.pattern, err.Error(), tt.msg)
		}
	}
}

// TestValidEdgeCasePatterns tests valid patterns that might seem unusual
func TestValidEdgeCasePatterns(t *testing.T) {
	validPatterns := []struct {
		pattern string
		want    []string
	}{
		{"", []string{}},
		{"(?:)", []string{}},
		{"()", []string{}},
		{"a{0}", []string{}},
		{"a{0,0}", []string{}},
		{"a{0}b", []string{"b"}},
		{"x{1,1}", []string{"x"}},
		{"(?i:a)", []string{}},
		{"(?i)", []string{}},
		{"a|", []string{}},
		{"[]a]", []string{}},
		{"[a-]", []string{}},
		{"a(?#note)b", []string{"ab"}},
		{`\x41B\x{43}\0`, []string{"ABC\x00"}},
		{"a{,3}b", []string{"b"}},
		{`(?<n>a)(?P>n)b`, []string{"a", "b"}},
		// Escapes from other flavours
		{`a\cAb`, []string{"a\x01b"}},
		{`a\cab`, []string{"a\x01b"}},
		{`[\c@]x`, []string{"x"}},
		{`a\o{101}b`, []string{"aAb"}},
		{`x\Qa.b\Ey`, []string{"xa.by"}},
		{`\Qab*\E`, []string{"ab*"}},
		{`\Qa|b)`, []string{"a|b)"}},
		{"(?x)\\Qa b\\E c", []string{"a bc"}},
		{`ab\N`, []string{"ab"}},
		{`a\N+b`, []string{"a", "b"}},
		{`a\-b\_c\.`, []string{"a-b_c."}},
		{`a\u00e9b`, []string{"aéb"}},
		{`a\x{FFFD}b`, []string{"a\uFFFDb"}},
	}

	for _, tt := range validPatterns {
		re, err := Compile(tt.pattern)
		if err != nil {
			t.Errorf("Compile(%q) should succeed, but failed: %v", tt.pattern, err)
			continue
		}
		if diff := cmp.Diff(tt.want, re.Substrings()); diff != "" {
			t.Errorf("Substrings(%q) (-want +got):\n%s", tt.pattern, diff)
		}
	}
}

func lits(s string) *Literal { return &Literal{Runes: []rune(s)} }

func TestParseTree(t *testing.T) {
	tests := []struct {
		pattern string
		want    Node
	}{
		{"abc", lits("abc")},
		{"ab*", &Concat{Nodes: []Node{lits("a"), &Quantifier{Body: lits("b"), Min: 0, Max: -1}}}},
		{"a+?", &Quantifier{Body: lits("a"), Min: 1, Max: -1, Mode: Lazy}},
		{"a{2,}+", &Quantifier{Body: lits("a"), Min: 2, Max: -1, Mode: Possessive}},
		{"a{2,5}", &Quantifier{Body: lits("a"), Min: 2, Max: 5}},
		{"a{,5}", &Quantifier{Body: lits("a"), Min: 0, Max: 5}},
		{"(?:ab|c)", &Group{Kind: GroupNonCapture, Body: &Alternate{Nodes: []Node{lits("ab"), lits("c")}}}},
		{"(?>a)", &Group{Kind: GroupAtomic, Body: lits("a")}},
		{"a|b|", &Alternate{Nodes: []Node{lits("a"), lits("b"), &Concat{}}}},
		{
			`(?<n>x)\k<n>`,
			&Concat{Nodes: []Node{
				&Group{Kind: GroupNamed, Body: lits("x"), Index: 1, Name: "n"},
				&Backreference{Name: "n"},
			}},
		},
		{
			`(x)\g<1>\1`,
			&Concat{Nodes: []Node{
				&Group{Kind: GroupCapture, Body: lits("x"), Index: 1},
				&SubexpCall{Index: 1},
				&Backreference{Index: 1},
			}},
		},
		{
			`[^a-c\d[:alpha:]]`,
			&CharClass{Ranges: []RuneRange{{'a', 'c'}}, Posix: []string{`\d`, "alpha"}, Negated: true},
		},
		{"[[:^digit:]]", &PosixClass{Name: "digit", Negated: true}},
		{"[^[:digit:]]", &PosixClass{Name: "digit", Negated: true}},
		{"[^[:^digit:]]", &PosixClass{Name: "digit"}},
		{`\D`, &MetaClass{Class: 'd', Negated: true}},
		{`\R`, &MetaClass{Class: 'R'}},
		{`\pL`, &PosixClass{Name: "L"}},
		{`\P{^Greek}`, &PosixClass{Name: "Greek"}},
		{".", &Wildcard{}},
		{"^$", &Concat{Nodes: []Node{&Anchor{Kind: AnchorStartLine}, &Anchor{Kind: AnchorEndLine}}}},
		{"(?=ab)", &Anchor{Kind: AnchorLookahead, Body: lits("ab")}},
		{"(?<!a)", &Anchor{Kind: AnchorNegLookbehind, Body: lits("a")}},
		{`\x41B\t`, lits("AB\t")},
		{`\N`, &MetaClass{Class: 'N'}},
		{`\Qa+\E`, lits("a+")},
		{`a\Qb\E`, lits("ab")},
	}

	for _, tt := range tests {
		got, err := Parse(tt.pattern)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tt.pattern, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Parse(%q) (-want +got):\n%s", tt.pattern, diff)
		}
	}
}

// TestParseFlags tests inline flag groups
func TestParseFlags(t *testing.T) {
	fold := func(s string) *Literal { return &Literal{Runes: []rune(s), FoldCase: true} }
	tests := []struct {
		pattern string
		want    Node
	}{
		{"(?i)ab", fold("ab")},
		{"a(?i)b", &Concat{Nodes: []Node{lits("a"), fold("b")}}},
		{"(?i)a(?-i)b", &Concat{Nodes: []Node{fold("a"), lits("b")}}},
		{"(?i:a)b", &Concat{Nodes: []Node{&Group{Kind: GroupNonCapture, Body: fold("a")}, lits("b")}}},
		// Flags set inside a group end with it.
		{"((?i)a)b", &Concat{Nodes: []Node{&Group{Kind: GroupCapture, Body: fold("a"), Index: 1}, lits("b")}}},
		{"(?x) a b # comment\n c", lits("abc")},
		{"(?x)a\\ b", lits("a b")},
		{"(?im-x)a", fold("a")},
	}

	for _, tt := range tests {
		got, err := Parse(tt.pattern)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tt.pattern, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Parse(%q) (-want +got):\n%s", tt.pattern, diff)
		}
	}
}

// TestSubexpNames tests named capture group names
func TestSubexpNames(t *testing.T) {
	re := MustCompile(`(?P<first>\w+)\s+(\w+)\s+(?P<last>\w+)`)
	// Index 0 is the whole match.
	want := []string{"", "first", "", "last"}
	if diff := cmp.Diff(want, re.SubexpNames()); diff != "" {
		t.Errorf("SubexpNames (-want +got):\n%s", diff)
	}
	if got := re.NumSubexp(); got != 3 {
		t.Errorf("NumSubexp = %d; want 3", got)
	}
	for name, want := range map[string]int{"first": 1, "last": 3, "": -1, "middle": -1} {
		if got := re.SubexpIndex(name); got != want {
			t.Errorf("SubexpIndex(%q) = %d; want %d", name, got, want)
		}
	}
}

// TestNonCapturingGroups tests that only capturing groups are counted
func TestNonCapturingGroups(t *testing.T) {
	tests := []struct {
		pattern string
		want    int
	}{
		{`(?:foo|bar)(\d+)`, 1},
		{`(?:a(?:b|c))(d)`, 1},
		{`((a)(b))`, 3},
		{`(a(b)c)(d(e))`, 4},
		{`(?<x>a)(?'y'b)(?P<z>c)`, 3},
		{`(?=(a))(?i:b)(?>c)`, 1},
	}
	for _, tt := range tests {
		re := MustCompile(tt.pattern)
		if got := re.NumSubexp(); got != tt.want {
			t.Errorf("NumSubexp(%q) = %d; want %d", tt.pattern, got, tt.want)
		}
	}
}
