package hyphen

import (
	"strings"
	"unicode"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	patternLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `%[^\n]*`},
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Command", Pattern: `\\[A-Za-z]+`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
		{Name: "Word", Pattern: `[^\s{}%\\]+`},
	})

	fileParser = participle.MustBuild[File](
		participle.Lexer(patternLexer),
		participle.Elide("Whitespace", "Comment"),
	)
)

// File is the root AST node of a hyphenation source. Two layouts are accepted:
// TeX style `\patterns{...}` / `\hyphenation{...}` groups, and a bare
// whitespace separated pattern list as shipped in hyph-utf8 `.pat.txt` files.
type File struct {
	Pos     lexer.Position `parser:""`
	Entries []*Entry       `parser:"@@*"`
}

// Entry is either a command group or a bare pattern.
type Entry struct {
	Group   *Group `parser:"  @@"`
	Pattern *Token `parser:"| @@"`
}

// Group captures `\command{ word word ... }`.
type Group struct {
	Pos     lexer.Position `parser:""`
	Command string         `parser:"@Command"`
	Words   []*Token       `parser:"'{' @@* '}'"`
}

// Token is a single word together with its source position.
type Token struct {
	Pos   lexer.Position `parser:""`
	Value string         `parser:"@Word"`
}

// ParseString parses a pattern source from a string.
func ParseString(input string) (*File, error) {
	return fileParser.ParseString("", input)
}

// Patterns returns every Liang pattern in source order.
func (f *File) Patterns() []*Token {
	var out []*Token
	for _, e := range f.Entries {
		switch {
		case e.Pattern != nil:
			out = append(out, e.Pattern)
		case e.Group != nil && e.Group.Command == `\patterns`:
			out = append(out, e.Group.Words...)
		}
	}
	return out
}

// Exceptions returns the hyphenated exception words (`ta-ble`).
func (f *File) Exceptions() []*Token {
	var out []*Token
	for _, e := range f.Entries {
		if e.Group != nil && e.Group.Command == `\hyphenation` {
			out = append(out, e.Group.Words...)
		}
	}
	return out
}

// validate reports the first group with an unsupported command or the first
// malformed pattern.
func (f *File) validate() *Token {
	for _, e := range f.Entries {
		if g := e.Group; g != nil && g.Command != `\patterns` && g.Command != `\hyphenation` {
			return &Token{Pos: g.Pos, Value: g.Command}
		}
	}
	for _, p := range f.Patterns() {
		if !validPattern(p.Value) {
			return p
		}
	}
	for _, x := range f.Exceptions() {
		if _, ok := parseException(x.Value); !ok {
			return x
		}
	}
	return nil
}

// validPattern checks the Liang pattern shape: letters with single digit
// priorities between them and optional `.` anchors at either end.
func validPattern(p string) bool {
	p = strings.TrimPrefix(p, ".")
	p = strings.TrimSuffix(p, ".")
	letters, digit := 0, false
	for _, r := range p {
		switch {
		case r >= '0' && r <= '9':
			if digit {
				return false
			}
			digit = true
		case r == '.' || unicode.IsSpace(r):
			return false
		default:
			letters++
			digit = false
		}
	}
	return letters > 0
}

// parseException turns `ta-ble` into the lower-case word and its break
// positions counted in runes.
func parseException(x string) (exception, bool) {
	var (
		sb   strings.Builder
		pos  []int
		n    int
		prev = '-'
	)
	for _, r := range x {
		if r == '-' {
			if prev == '-' {
				return exception{}, false
			}
			pos = append(pos, n)
		} else {
			sb.WriteRune(unicode.ToLower(r))
			n++
		}
		prev = r
	}
	if n == 0 || prev == '-' {
		return exception{}, false
	}
	return exception{word: sb.String(), breaks: pos}, true
}

type exception struct {
	word   string
	breaks []int
}
