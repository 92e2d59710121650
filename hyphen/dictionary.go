// Package hyphen loads Liang hyphenation dictionaries and answers where a word
// may be broken. A Dictionary is immutable after loading and safe for
// concurrent use.
package hyphen

import (
	"bytes"
	"io"
	"os"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"
	"github.com/speedata/hyphenation"
	"golang.org/x/text/language"
)

// Default minimum number of characters kept before the first and after the
// last break.
const (
	DefaultLeftMin  = 2
	DefaultRightMin = 2
)

// Dictionary implements the layout.Dictionary capability.
type Dictionary struct {
	lang       language.Tag
	engine     *hyphenation.Lang
	exceptions map[string][]int
	leftMin    int
	rightMin   int
	patterns   int
}

// Option customises Load.
type Option func(*Dictionary)

// WithMinimums overrides the left/right minimum fragment lengths.
func WithMinimums(left, right int) Option {
	return func(d *Dictionary) {
		d.leftMin = max(left, 1)
		d.rightMin = max(right, 1)
	}
}

// Load reads a pattern source for lang from r.
func Load(lang language.Tag, r io.Reader, opts ...Option) (*Dictionary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Kind: ErrRead, Lang: lang, Err: errors.Wrap(err, "read patterns")}
	}

	file, err := fileParser.ParseBytes("", data)
	if err != nil {
		le := &LoadError{Kind: ErrMalformed, Lang: lang, Err: errors.Wrap(err, "parse patterns")}
		var perr participle.Error
		if errors.As(err, &perr) {
			le.Pos = perr.Position()
		}
		return nil, le
	}
	if bad := file.validate(); bad != nil {
		return nil, &LoadError{Kind: ErrMalformed, Lang: lang, Pos: bad.Pos, Err: errors.Errorf("invalid entry %q", bad.Value)}
	}

	d := &Dictionary{
		lang:       lang,
		exceptions: make(map[string][]int),
		leftMin:    DefaultLeftMin,
		rightMin:   DefaultRightMin,
	}
	for _, opt := range opts {
		opt(d)
	}
	for _, x := range file.Exceptions() {
		ex, _ := parseException(x.Value)
		d.exceptions[ex.word] = ex.breaks
	}

	patterns := file.Patterns()
	if len(patterns) == 0 && len(d.exceptions) == 0 {
		return nil, &LoadError{Kind: ErrMalformed, Lang: lang, Err: errors.New("no patterns or exceptions")}
	}
	if len(patterns) > 0 {
		var buf bytes.Buffer
		for _, p := range patterns {
			buf.WriteString(p.Value)
			buf.WriteByte('\n')
		}
		engine, err := hyphenation.New(&buf)
		if err != nil {
			return nil, &LoadError{Kind: ErrMalformed, Lang: lang, Err: errors.Wrap(err, "build pattern trie")}
		}
		d.engine = engine
		d.patterns = len(patterns)
	}
	return d, nil
}

// LoadFile opens path and loads it with Load.
func LoadFile(lang language.Tag, path string, opts ...Option) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Kind: ErrRead, Lang: lang, Err: errors.WithStack(err)}
	}
	defer f.Close()
	return Load(lang, f, opts...)
}

// Language returns the language the dictionary was loaded for.
func (d *Dictionary) Language() language.Tag { return d.lang }

// Size reports the number of patterns and exceptions.
func (d *Dictionary) Size() (patterns, exceptions int) { return d.patterns, len(d.exceptions) }

// FindBreaks returns ascending byte offsets inside word where a hyphen may be
// inserted. Each maximal run of letters is hyphenated on its own, so
// punctuation and existing hyphens are never part of a lookup.
func (d *Dictionary) FindBreaks(word string) []int {
	var out []int
	start := -1
	for i, r := range word {
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = d.appendBreaks(out, word[start:i], start)
			start = -1
		}
	}
	if start >= 0 {
		out = d.appendBreaks(out, word[start:], start)
	}
	return out
}

func (d *Dictionary) appendBreaks(out []int, run string, base int) []int {
	n := utf8.RuneCountInString(run)
	if n < d.leftMin+d.rightMin {
		return out
	}
	lower := strings.ToLower(run)
	if utf8.RuneCountInString(lower) != n {
		// Case mapping changed the rune count; rune positions would not line up.
		return out
	}

	positions, ok := d.exceptions[lower]
	if !ok && d.engine != nil {
		positions = d.engine.Hyphenate(lower)
	}
	if len(positions) == 0 {
		return out
	}

	// rune index -> byte offset within run
	offsets := make([]int, 0, n+1)
	for i := range run {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(run))

	positions = slices.Clone(positions)
	slices.Sort(positions)
	for _, p := range slices.Compact(positions) {
		if p < d.leftMin || p > n-d.rightMin {
			continue
		}
		out = append(out, base+offsets[p])
	}
	return out
}
