package layout

import (
	"iter"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// WordSeparator 把一段文本切分为有序的片段序列。
// 返回的序列只做一次前向遍历，片段的 Text 均引用输入文本。
type WordSeparator interface {
	Separate(text string) iter.Seq[Fragment]
	String() string
}

// AsciiSpace 只在空格、制表符与换行处断开；其它字节（包括所有非 ASCII 字节）都属于单词。
type AsciiSpace struct{}

func (AsciiSpace) String() string { return "ascii-space" }

// Separate 实现 WordSeparator。
func (AsciiSpace) Separate(text string) iter.Seq[Fragment] {
	return func(yield func(Fragment) bool) {
		i := 0
		for i < len(text) {
			c := text[i]
			switch {
			case c == '\n':
				if !yield(Fragment{Kind: Whitespace, Text: text[i : i+1], Offset: i, Forced: true}) {
					return
				}
				i++
			case c == ' ' || c == '\t':
				j := i + 1
				for j < len(text) && (text[j] == ' ' || text[j] == '\t') {
					j++
				}
				if !yield(Fragment{Kind: Whitespace, Text: text[i:j], Offset: i, Width: 1}) {
					return
				}
				i = j
			default:
				j := i + 1
				for j < len(text) && !isASCIISpace(text[j]) {
					j++
				}
				if !yield(Fragment{Kind: Word, Text: text[i:j], Offset: i, Width: displayWidth(text[i:j]), Splittable: true}) {
					return
				}
				i = j
			}
		}
	}
}

func isASCIISpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' }

// BreakClass 是相邻两个字符之间的断行类别。
type BreakClass int

const (
	NoBreak BreakClass = iota
	CanBreak
	MustBreak
)

func (c BreakClass) String() string {
	switch c {
	case CanBreak:
		return "can-break"
	case MustBreak:
		return "must-break"
	default:
		return "no-break"
	}
}

// Classifier 判断 prev 与 next 之间的断行类别（Unicode 行断属性分类器）。
type Classifier func(prev, next rune) BreakClass

// UnicodeBreakProperties 依据 UAX #14 断行属性切分文本，能够正确处理无空格的 CJK 文本与标点附近的断点。
// Classifier 为空时使用 uniseg 的完整状态机；否则逐对调用注入的分类器。
type UnicodeBreakProperties struct {
	Classifier Classifier
}

func (UnicodeBreakProperties) String() string { return "unicode-break-properties" }

// Separate 实现 WordSeparator。
func (u UnicodeBreakProperties) Separate(text string) iter.Seq[Fragment] {
	if u.Classifier != nil {
		return separatePairwise(text, u.Classifier)
	}
	return func(yield func(Fragment) bool) {
		rest, offset, state := text, 0, -1
		for len(rest) > 0 {
			var segment string
			var must bool
			segment, rest, must, state = uniseg.FirstLineSegmentInString(rest, state)
			// 文本末尾的强制断点（LB3）不是真正的换行。
			if !emitSegment(segment, offset, must && len(rest) > 0, yield) {
				return
			}
			offset += len(segment)
		}
	}
}

func separatePairwise(text string, classify Classifier) iter.Seq[Fragment] {
	return func(yield func(Fragment) bool) {
		start := 0
		prev, size := utf8.DecodeRuneInString(text)
		for i := size; i < len(text); {
			next, n := utf8.DecodeRuneInString(text[i:])
			if class := classify(prev, next); class != NoBreak {
				if !emitSegment(text[start:i], start, class == MustBreak, yield) {
					return
				}
				start = i
			}
			prev = next
			i += n
		}
		if start < len(text) {
			emitSegment(text[start:], start, false, yield)
		}
	}
}

// UAX14Pair 是基于 uniseg 的逐对分类器，只看两个字符本身，不携带更长的上下文。
func UAX14Pair(prev, next rune) BreakClass {
	var buf [2 * utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], prev)
	first := n
	n += utf8.EncodeRune(buf[n:], next)
	segment, _, must, _ := uniseg.FirstLineSegment(buf[:n], -1)
	if len(segment) != first {
		return NoBreak
	}
	if must {
		return MustBreak
	}
	return CanBreak
}

// emitSegment 把一个以断行机会结尾的片段拆成单词与其后的空白。
func emitSegment(seg string, offset int, mustBreak bool, yield func(Fragment) bool) bool {
	var buf [4]Fragment
	frags := buf[:0]

	end := len(seg)
	for end > 0 {
		r, size := utf8.DecodeLastRuneInString(seg[:end])
		if !isBreakingSpace(r) {
			break
		}
		end -= size
	}
	if end > 0 {
		frags = append(frags, Fragment{Kind: Word, Text: seg[:end], Offset: offset, Width: displayWidth(seg[:end]), Splittable: true})
	}

	forced := false
	for i := end; i < len(seg); {
		r, size := utf8.DecodeRuneInString(seg[i:])
		j := i + size
		if isLineBreak(r) {
			if r == '\r' && j < len(seg) && seg[j] == '\n' {
				j++
			}
			frags = append(frags, Fragment{Kind: Whitespace, Text: seg[i:j], Offset: offset + i, Forced: true})
			forced = true
			i = j
			continue
		}
		for j < len(seg) {
			r, n := utf8.DecodeRuneInString(seg[j:])
			if isLineBreak(r) {
				break
			}
			j += n
		}
		frags = append(frags, Fragment{Kind: Whitespace, Text: seg[i:j], Offset: offset + i, Width: 1})
		i = j
	}
	if mustBreak && !forced && len(frags) > 0 {
		frags[len(frags)-1].Forced = true
	}

	for _, f := range frags {
		if !yield(f) {
			return false
		}
	}
	return true
}

// isBreakingSpace 报告 r 是否为可折叠的空白；不换行空格属于单词。
func isBreakingSpace(r rune) bool {
	switch r {
	case '\u00a0', '\u2007', '\u202f', '\ufeff':
		return false
	}
	return unicode.IsSpace(r)
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// DisplayWidth 返回 s 在等宽终端下占用的列数，与片段宽度的计法一致。
func DisplayWidth(s string) int { return displayWidth(s) }

// displayWidth 返回等宽终端下的显示宽度，纯可打印 ASCII 直接按字节计。
func displayWidth(s string) int {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= utf8.RuneSelf || c < 0x20 || c == 0x7f {
			return runewidth.StringWidth(s)
		}
	}
	return len(s)
}
