package needle

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxRepeat is the largest count accepted in a {n,m} quantifier.
const maxRepeat = 100000

// Parser parses a regex string into an AST.
type Parser struct {
	input string
	pos   int
	// State for capturing groups
	captures int
	names    map[string]int
	refs     []groupRef
	flags    parseFlags
	// Inside \Q...\E.
	quoting bool
}

type parseFlags struct {
	caseInsensitive bool
	multiline       bool
	extended        bool
}

// groupRef is a back-reference or subexpression call, checked against the
// groups once the whole expression has been read.
type groupRef struct {
	pos   int
	index int
	name  string
	call  bool
}

func NewParser(input string) *Parser {
	return &Parser{
		input: input,
		names: make(map[string]int),
	}
}

// Parse parses expr with a new Parser.
func Parse(expr string) (Node, error) {
	return NewParser(expr).Parse()
}

func (p *Parser) Parse() (Node, error) {
	if err := p.checkUTF8(); err != nil {
		return nil, err
	}
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.input) {
		return nil, p.errorf("unmatched ')'")
	}
	for _, ref := range p.refs {
		if err := p.checkRef(ref); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// checkUTF8 reports the first byte of the input that is not valid UTF-8.
func (p *Parser) checkUTF8() error {
	for i, r := range p.input {
		if r == utf8.RuneError {
			if _, w := utf8.DecodeRuneInString(p.input[i:]); w == 1 {
				return p.errorAt(i, "invalid UTF-8")
			}
		}
	}
	return nil
}

func (p *Parser) checkRef(ref groupRef) error {
	if ref.name != "" {
		if _, ok := p.names[ref.name]; !ok {
			return p.errorAt(ref.pos, "undefined group name %q", ref.name)
		}
		return nil
	}
	if ref.index > p.captures || (ref.index == 0 && !ref.call) {
		return p.errorAt(ref.pos, "invalid group number %d", ref.index)
	}
	return nil
}

// parseExpr handles alternation: term | term
func (p *Parser) parseExpr() (Node, error) {
	var branches []Node
	for {
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		branches = append(branches, term)
		if p.pos < len(p.input) && p.peek() == '|' {
			p.consume() // eat |
			continue
		}
		break
	}
	if len(branches) == 1 {
		return branches[0], nil
	}
	return &Alternate{Nodes: branches}, nil
}

// parseTerm handles concatenation: factor factor. Adjacent literals are merged
// into one run.
func (p *Parser) parseTerm() (Node, error) {
	var nodes []Node
	for {
		if !p.quoting {
			p.skipExtended()
		}
		if p.pos >= len(p.input) || (!p.quoting && (p.peek() == '|' || p.peek() == ')')) {
			break
		}
		node, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		if node == nil {
			// Comment or flag group.
			continue
		}
		if lit, ok := node.(*Literal); ok && len(nodes) > 0 {
			if prev, ok := nodes[len(nodes)-1].(*Literal); ok && prev.FoldCase == lit.FoldCase {
				prev.Runes = append(prev.Runes, lit.Runes...)
				continue
			}
		}
		nodes = append(nodes, node)
	}
	if len(nodes) == 1 {
		return nodes[0], nil
	}
	return &Concat{Nodes: nodes}, nil
}

// parseFactor handles quantifiers: atom*, atom+, atom?, atom{n,m}, each with
// an optional lazy (?) or possessive (+) suffix.
func (p *Parser) parseFactor() (Node, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.quoting {
		return atom, nil
	}
	p.skipExtended()
	if p.pos >= len(p.input) {
		return atom, nil
	}

	start := p.pos
	min, max, ok, err := p.parseRepeat()
	if err != nil {
		return nil, err
	}
	if !ok {
		return atom, nil
	}
	if atom == nil {
		return nil, p.errorAt(start, "missing argument to repetition operator")
	}

	q := &Quantifier{Body: atom, Min: min, Max: max}
	if p.pos < len(p.input) {
		switch p.peek() {
		case '?':
			p.consume()
			q.Mode = Lazy
		case '+':
			p.consume()
			q.Mode = Possessive
		}
	}
	return q, nil
}

// parseRepeat reads a quantifier if there is one at the current position.
func (p *Parser) parseRepeat() (min, max int, ok bool, err error) {
	switch p.peek() {
	case '*':
		p.consume()
		return 0, -1, true, nil
	case '+':
		p.consume()
		return 1, -1, true, nil
	case '?':
		p.consume()
		return 0, 1, true, nil
	case '{':
		p.consume() // eat {
	default:
		return 0, 0, false, nil
	}

	min, hasMin, err := p.parseCount()
	if err != nil {
		return 0, 0, false, err
	}
	max = min // Default: exactly n

	if p.pos < len(p.input) && p.peek() == ',' {
		p.consume() // eat ,
		hi, hasMax, err := p.parseCount()
		if err != nil {
			return 0, 0, false, err
		}
		if !hasMin && !hasMax {
			return 0, 0, false, p.errorf("invalid quantifier: missing number")
		}
		if hasMax {
			// {n,m} means n to m, {,m} means at most m
			max = hi
		} else {
			// {n,} means n or more
			max = -1
		}
	} else if !hasMin {
		return 0, 0, false, p.errorf("invalid quantifier: missing number")
	}

	if p.pos >= len(p.input) || p.consume() != '}' {
		return 0, 0, false, p.errorf("unclosed quantifier")
	}
	if max >= 0 && min > max {
		return 0, 0, false, p.errorf("invalid quantifier: {%d,%d}", min, max)
	}
	return min, max, true, nil
}

func (p *Parser) parseCount() (int, bool, error) {
	start := p.pos
	for p.pos < len(p.input) && isDigit(p.peek()) {
		p.consume()
	}
	if start == p.pos {
		return 0, false, nil
	}
	n, err := strconv.Atoi(p.input[start:p.pos])
	if err != nil || n > maxRepeat {
		return 0, false, p.errorAt(start, "invalid quantifier: count %s too large", p.input[start:p.pos])
	}
	return n, true, nil
}

// parseAtom handles literals, groups, char classes. It returns a nil Node for
// comments, flag groups and the ends of quoted runs.
func (p *Parser) parseAtom() (Node, error) {
	if p.quoting {
		return p.parseQuoted(), nil
	}
	ch := p.peek()
	switch ch {
	case '(':
		p.consume()
		return p.parseGroup()
	case '[':
		p.consume()
		return p.parseCharClass()
	case '.':
		p.consume()
		return &Wildcard{}, nil
	case '\\':
		p.consume() // eat \
		return p.parseEscape()
	case '^':
		p.consume()
		return &Anchor{Kind: AnchorStartLine}, nil
	case '$':
		p.consume()
		return &Anchor{Kind: AnchorEndLine}, nil
	case '*', '+', '?', '{':
		return nil, p.errorf("missing argument to repetition operator: %q", ch)
	case '|', ')':
		return nil, p.errorf("unexpected meta char: %c", ch)
	default:
		p.consume()
		return p.literal(ch), nil
	}
}

// parseQuoted reads one character of a \Q...\E run, or the closing \E. A
// run without \E extends to the end of the input.
func (p *Parser) parseQuoted() Node {
	if strings.HasPrefix(p.input[p.pos:], `\E`) {
		p.pos += 2
		p.quoting = false
		return nil
	}
	return p.literal(p.consume())
}

func (p *Parser) literal(r rune) *Literal {
	return &Literal{Runes: []rune{r}, FoldCase: p.flags.caseInsensitive}
}

func (p *Parser) parseEscape() (Node, error) {
	if p.pos >= len(p.input) {
		return nil, p.errorf("trailing backslash")
	}
	start := p.pos - 1
	esc := p.consume()
	switch esc {
	// Character classes
	case 'd', 'w', 's', 'h':
		return &MetaClass{Class: esc}, nil
	case 'D', 'W', 'S', 'H':
		return &MetaClass{Class: unicode.ToLower(esc), Negated: true}, nil
	case 'R', 'X', 'N':
		return &MetaClass{Class: esc}, nil
	case 'p', 'P':
		name, negated, err := p.parseProperty(esc)
		if err != nil {
			return nil, err
		}
		return &PosixClass{Name: name, Negated: negated}, nil

	// Assertions (no fold)
	case 'b':
		return &Anchor{Kind: AnchorWordBoundary}, nil
	case 'B':
		return &Anchor{Kind: AnchorNotWordBoundary}, nil
	case 'A':
		return &Anchor{Kind: AnchorStartText}, nil
	case 'z':
		return &Anchor{Kind: AnchorEndText}, nil
	case 'Z':
		return &Anchor{Kind: AnchorEndTextNewline}, nil
	case 'G':
		return &Anchor{Kind: AnchorMatchStart}, nil
	case 'K':
		return &Anchor{Kind: AnchorKeep}, nil

	// Group references
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		n := int(esc - '0')
		for p.pos < len(p.input) && isDigit(p.peek()) && n < 1000 {
			n = n*10 + int(p.consume()-'0')
		}
		p.refs = append(p.refs, groupRef{pos: start, index: n})
		return &Backreference{Index: n}, nil
	case 'k', 'g':
		index, name, err := p.parseRefName(esc)
		if err != nil {
			return nil, err
		}
		p.refs = append(p.refs, groupRef{pos: start, index: index, name: name, call: esc == 'g'})
		if esc == 'g' {
			return &SubexpCall{Index: index, Name: name}, nil
		}
		return &Backreference{Index: index, Name: name}, nil

	// Quoting
	case 'Q':
		p.quoting = true
		return nil, nil
	case 'E':
		return nil, nil
	}

	r, err := p.parseCharEscape(esc)
	if err != nil {
		return nil, err
	}
	return p.literal(r), nil
}

// parseCharEscape decodes an escape that stands for a single character. esc
// has already been consumed. Escaped ASCII punctuation stands for itself; any
// other unknown escape is an error.
func (p *Parser) parseCharEscape(esc rune) (rune, error) {
	switch esc {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case 'f':
		return '\f', nil
	case 'v':
		return '\v', nil
	case 'a':
		return '\a', nil
	case 'e':
		return 0x1b, nil
	case '0':
		return p.parseNumber(8, 2, 0)
	case 'x':
		if p.pos < len(p.input) && p.peek() == '{' {
			return p.parseBracedNumber(16)
		}
		return p.parseNumber(16, 2, -1)
	case 'u':
		if p.pos < len(p.input) && p.peek() == '{' {
			return p.parseBracedNumber(16)
		}
		return p.parseNumber(16, 4, 4)
	case 'o':
		if p.pos >= len(p.input) || p.peek() != '{' {
			return 0, p.errorf("missing { after \\o")
		}
		return p.parseBracedNumber(8)
	case 'c':
		if p.pos >= len(p.input) {
			return 0, p.errorf("missing control character after \\c")
		}
		c := p.peek()
		if c < ' ' || c > '~' {
			return 0, p.errorf("invalid control character %q", c)
		}
		p.consume()
		return unicode.ToUpper(c) ^ 0x40, nil
	}
	if esc < utf8.RuneSelf && !isAlnum(esc) {
		return esc, nil
	}
	return 0, p.errorAt(p.pos-1-utf8.RuneLen(esc), "invalid escape sequence \\%c", esc)
}

// parseNumber reads up to maxDigits digits in base. exact, when positive, is
// the number of digits required; a negative exact requires at least one.
func (p *Parser) parseNumber(base, maxDigits, exact int) (rune, error) {
	start := p.pos
	for p.pos-start < maxDigits && p.pos < len(p.input) && digitValue(p.peek()) < base {
		p.consume()
	}
	digits := p.input[start:p.pos]
	if (exact > 0 && len(digits) != exact) || (exact < 0 && digits == "") {
		return 0, p.errorAt(start, "invalid escape: too few digits")
	}
	if digits == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, p.errorAt(start, "invalid escape: %v", err)
	}
	return rune(n), nil
}

// parseBracedNumber reads the {digits} part of \x{...}, \u{...} and \o{...}.
func (p *Parser) parseBracedNumber(base int) (rune, error) {
	p.consume() // eat {
	end := strings.IndexByte(p.input[p.pos:], '}')
	if end == -1 {
		return 0, p.errorf("unclosed escape")
	}
	digits := p.input[p.pos : p.pos+end]
	n, err := strconv.ParseUint(digits, base, 32)
	if err != nil || n > unicode.MaxRune {
		return 0, p.errorf("invalid code point %q", digits)
	}
	p.pos += end + 1
	return rune(n), nil
}

// parseProperty reads the name of a \p{...} or \P{...} escape.
func (p *Parser) parseProperty(esc rune) (string, bool, error) {
	negated := esc == 'P'
	if p.pos >= len(p.input) {
		return "", false, p.errorf("missing property name")
	}
	if p.peek() != '{' {
		// One-letter form, as in \pL.
		return string(p.consume()), negated, nil
	}
	p.consume()
	end := strings.IndexByte(p.input[p.pos:], '}')
	if end == -1 {
		return "", false, p.errorf("unclosed property name")
	}
	name := p.input[p.pos : p.pos+end]
	p.pos += end + 1
	if strings.HasPrefix(name, "^") {
		name = name[1:]
		negated = !negated
	}
	if name == "" {
		return "", false, p.errorf("empty property name")
	}
	return name, negated, nil
}

// parseRefName reads the <name>, 'name' or <n> part of \k and \g.
func (p *Parser) parseRefName(esc rune) (int, string, error) {
	if p.pos >= len(p.input) {
		return 0, "", p.errorf("invalid \\%c reference", esc)
	}
	var close rune
	switch p.consume() {
	case '<':
		close = '>'
	case '\'':
		close = '\''
	default:
		return 0, "", p.errorf("invalid \\%c reference", esc)
	}
	end := strings.IndexRune(p.input[p.pos:], close)
	if end == -1 {
		return 0, "", p.errorf("unclosed \\%c reference", esc)
	}
	ref := p.input[p.pos : p.pos+end]
	p.pos += end + 1
	if ref == "" {
		return 0, "", p.errorf("empty \\%c reference", esc)
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 0 {
		return n, "", nil
	}
	if !validName(ref) {
		return 0, "", p.errorf("invalid group name %q", ref)
	}
	return 0, ref, nil
}

func (p *Parser) parseCharClass() (Node, error) {
	// Already consumed [
	start := p.pos - 1
	cc := &CharClass{}
	if p.peek() == '^' {
		p.consume()
		cc.Negated = true
	}

	// If ] is the first char (after optional ^), it's a literal ]
	if p.peek() == ']' {
		p.consume()
		cc.Ranges = append(cc.Ranges, RuneRange{Lo: ']', Hi: ']'})
	}

	for {
		if p.pos >= len(p.input) {
			return nil, p.errorAt(start, "unclosed character class")
		}
		if p.peek() == ']' {
			p.consume()
			break
		}
		if strings.HasPrefix(p.input[p.pos:], "[:") {
			if name, ok := p.parsePosixItem(); ok {
				cc.Posix = append(cc.Posix, name)
				continue
			}
		}

		lo, set, err := p.parseClassChar()
		if err != nil {
			return nil, err
		}
		if set != "" {
			cc.Posix = append(cc.Posix, set)
			continue
		}

		// Check for range a-z
		if p.peek() == '-' && p.pos+1 < len(p.input) && p.input[p.pos+1] != ']' {
			p.consume() // eat -
			hi, set, err := p.parseClassChar()
			if err != nil {
				return nil, err
			}
			if set != "" {
				return nil, p.errorf("invalid character class range: ends in %s", set)
			}
			if hi < lo {
				return nil, p.errorf("invalid character class range: %c-%c", lo, hi)
			}
			cc.Ranges = append(cc.Ranges, RuneRange{Lo: lo, Hi: hi})
			continue
		}
		cc.Ranges = append(cc.Ranges, RuneRange{Lo: lo, Hi: lo})
	}

	if len(cc.Ranges) == 0 && len(cc.Posix) == 1 && !strings.HasPrefix(cc.Posix[0], `\`) {
		name, negated := strings.CutPrefix(cc.Posix[0], "^")
		return &PosixClass{Name: name, Negated: negated != cc.Negated}, nil
	}
	return cc, nil
}

// parsePosixItem reads a [:name:] or [:^name:] item inside a bracket
// expression. It consumes nothing and returns false if the text is not one.
func (p *Parser) parsePosixItem() (string, bool) {
	rest := p.input[p.pos+2:]
	end := strings.Index(rest, ":]")
	if end == -1 {
		return "", false
	}
	name := rest[:end]
	if !validName(strings.TrimPrefix(name, "^")) {
		return "", false
	}
	p.pos += 2 + end + 2
	return name, true
}

// parseClassChar reads one member of a bracket expression. A shorthand class
// such as \d is returned as set instead of as a rune.
func (p *Parser) parseClassChar() (r rune, set string, err error) {
	if p.peek() != '\\' {
		return p.consume(), "", nil
	}
	p.consume()
	if p.pos >= len(p.input) {
		return 0, "", p.errorf("trailing backslash")
	}
	start := p.pos - 1
	esc := p.consume()
	switch esc {
	case 'd', 'D', 'w', 'W', 's', 'S', 'h', 'H':
		return 0, p.input[start:p.pos], nil
	case 'p', 'P':
		if _, _, err := p.parseProperty(esc); err != nil {
			return 0, "", err
		}
		return 0, p.input[start:p.pos], nil
	case 'b':
		return '\b', "", nil
	}
	r, err = p.parseCharEscape(esc)
	return r, "", err
}

func (p *Parser) parseGroup() (Node, error) {
	// Already consumed (
	start := p.pos - 1
	if p.peek() != '?' {
		// Normal capturing group
		p.captures++
		idx := p.captures
		body, err := p.parseGroupBody(start)
		if err != nil {
			return nil, err
		}
		return &Group{Kind: GroupCapture, Body: body, Index: idx}, nil
	}
	p.consume() // eat ?

	if p.pos >= len(p.input) {
		return nil, p.errorAt(start, "incomplete group")
	}

	switch c := p.peek(); c {
	case '#': // (?#comment)
		end := strings.IndexByte(p.input[p.pos:], ')')
		if end == -1 {
			return nil, p.errorAt(start, "unclosed comment")
		}
		p.pos += end + 1
		return nil, nil

	case ':': // (?: non-capturing
		p.consume()
		return p.wrapGroup(start, GroupNonCapture)

	case '>': // (?> atomic
		p.consume()
		return p.wrapGroup(start, GroupAtomic)

	case '=': // (?= lookahead)
		p.consume()
		return p.parseLookaround(start, AnchorLookahead)

	case '!': // (?! neg lookahead)
		p.consume()
		return p.parseLookaround(start, AnchorNegLookahead)

	case '<': // (?<= lookbehind), (?<! neg lookbehind) or (?<name>
		p.consume()
		switch p.peek() {
		case '=':
			p.consume()
			return p.parseLookaround(start, AnchorLookbehind)
		case '!':
			p.consume()
			return p.parseLookaround(start, AnchorNegLookbehind)
		}
		return p.parseNamedGroup(start, '>')

	case '\'': // (?'name'
		p.consume()
		return p.parseNamedGroup(start, '\'')

	case 'P': // (?P<name>, (?P=name) or (?P>name)
		p.consume()
		switch p.consume() {
		case '<':
			return p.parseNamedGroup(start, '>')
		case '=':
			return p.parseNamedRef(start, false)
		case '>':
			return p.parseNamedRef(start, true)
		}
		return nil, p.errorAt(start, "invalid named group syntax")

	default:
		if c == '-' || isFlag(c) {
			return p.parseFlags(start)
		}
		return nil, p.errorAt(start, "invalid group extension: ?%c", c)
	}
}

// parseFlags handles (?imx-imx) and (?imx-imx:...).
func (p *Parser) parseFlags(start int) (Node, error) {
	originalFlags := p.flags // Save flags before modification
	turnOn := true
	for p.pos < len(p.input) {
		c := p.consume()
		switch {
		case c == '-' && turnOn:
			turnOn = false
		case c == 'i':
			p.flags.caseInsensitive = turnOn
		case c == 'm':
			p.flags.multiline = turnOn
		case c == 'x':
			p.flags.extended = turnOn
		case c == ')':
			// This was just a flag setting group; the flags stay in effect
			// until the end of the enclosing group.
			return nil, nil
		case c == ':':
			body, err := p.parseGroupBody(start)
			p.flags = originalFlags // Restore flags after group
			if err != nil {
				return nil, err
			}
			return &Group{Kind: GroupNonCapture, Body: body}, nil
		default:
			return nil, p.errorAt(start, "invalid flag syntax")
		}
	}
	return nil, p.errorAt(start, "incomplete group")
}

func (p *Parser) parseNamedGroup(start int, close rune) (Node, error) {
	nameEnd := strings.IndexRune(p.input[p.pos:], close)
	if nameEnd == -1 {
		return nil, p.errorAt(start, "unclosed group name")
	}
	name := p.input[p.pos : p.pos+nameEnd]
	if !validName(name) {
		return nil, p.errorAt(start, "invalid group name %q", name)
	}
	if _, dup := p.names[name]; dup {
		return nil, p.errorAt(start, "duplicate group name %q", name)
	}
	p.pos += nameEnd + 1 // skip name and terminator

	p.captures++
	idx := p.captures
	p.names[name] = idx

	body, err := p.parseGroupBody(start)
	if err != nil {
		return nil, err
	}
	return &Group{Kind: GroupNamed, Body: body, Index: idx, Name: name}, nil
}

// parseNamedRef handles the (?P=name) back-reference and the (?P>name) call.
func (p *Parser) parseNamedRef(start int, call bool) (Node, error) {
	end := strings.IndexByte(p.input[p.pos:], ')')
	if end == -1 {
		return nil, p.errorAt(start, "unclosed group reference")
	}
	name := p.input[p.pos : p.pos+end]
	if !validName(name) {
		return nil, p.errorAt(start, "invalid group name %q", name)
	}
	p.pos += end + 1
	p.refs = append(p.refs, groupRef{pos: start, name: name, call: call})
	if call {
		return &SubexpCall{Name: name}, nil
	}
	return &Backreference{Name: name}, nil
}

func (p *Parser) wrapGroup(start int, kind GroupKind) (Node, error) {
	body, err := p.parseGroupBody(start)
	if err != nil {
		return nil, err
	}
	return &Group{Kind: kind, Body: body}, nil
}

func (p *Parser) parseLookaround(start int, kind AnchorKind) (Node, error) {
	body, err := p.parseGroupBody(start)
	if err != nil {
		return nil, err
	}
	return &Anchor{Kind: kind, Body: body}, nil
}

// parseGroupBody parses up to and including the closing parenthesis. Flags set
// inside the group do not leak out of it.
func (p *Parser) parseGroupBody(start int) (Node, error) {
	saved := p.flags
	body, err := p.parseExpr()
	p.flags = saved
	if err != nil {
		return nil, err
	}
	if p.pos >= len(p.input) || p.consume() != ')' {
		return nil, p.errorAt(start, "missing closing )")
	}
	return body, nil
}

// skipExtended skips whitespace and # comments in extended mode.
func (p *Parser) skipExtended() {
	if !p.flags.extended {
		return
	}
	for p.pos < len(p.input) {
		switch c := p.peek(); {
		case c == '#':
			end := strings.IndexByte(p.input[p.pos:], '\n')
			if end == -1 {
				p.pos = len(p.input)
				return
			}
			p.pos += end + 1
		case unicode.IsSpace(c):
			p.consume()
		default:
			return
		}
	}
}

func (p *Parser) errorf(format string, args ...any) error {
	return p.errorAt(p.pos, format, args...)
}

func (p *Parser) errorAt(pos int, format string, args ...any) error {
	return &SyntaxError{Expr: p.input, Offset: pos, Msg: fmt.Sprintf(format, args...)}
}

// Helpers

func (p *Parser) peek() rune {
	if p.pos >= len(p.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(p.input[p.pos:])
	return r
}

func (p *Parser) consume() rune {
	if p.pos >= len(p.input) {
		return 0
	}
	r, w := utf8.DecodeRuneInString(p.input[p.pos:])
	p.pos += w
	return r
}

func isFlag(c rune) bool {
	return c == 'i' || c == 'm' || c == 'x'
}

func isAlnum(c rune) bool {
	return isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func digitValue(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return 16
}

// validName reports whether s can name a group: word characters, not starting
// with a digit.
func validName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}
