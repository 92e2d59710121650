package layout

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(s WordSeparator, text string) []Fragment {
	return slices.Collect(s.Separate(text))
}

func joinText(frags []Fragment) string {
	var sb strings.Builder
	for _, f := range frags {
		sb.WriteString(f.Text)
	}
	return sb.String()
}

// TestAsciiSpaceFragments 验证 AsciiSpace 的切分结果、空白宽度归一与强制换行标记。
func TestAsciiSpaceFragments(t *testing.T) {
	text := "The  quick\tbrown\nfox"
	frags := collect(AsciiSpace{}, text)
	want := []Fragment{
		{Kind: Word, Text: "The", Offset: 0, Width: 3, Splittable: true},
		{Kind: Whitespace, Text: "  ", Offset: 3, Width: 1},
		{Kind: Word, Text: "quick", Offset: 5, Width: 5, Splittable: true},
		{Kind: Whitespace, Text: "\t", Offset: 10, Width: 1},
		{Kind: Word, Text: "brown", Offset: 11, Width: 5, Splittable: true},
		{Kind: Whitespace, Text: "\n", Offset: 16, Forced: true},
		{Kind: Word, Text: "fox", Offset: 17, Width: 3, Splittable: true},
	}
	require.Equal(t, want, frags)
	assert.Equal(t, text, joinText(frags))
}

func TestAsciiSpaceEdgeCases(t *testing.T) {
	if frags := collect(AsciiSpace{}, ""); len(frags) != 0 {
		t.Fatalf("空输入应当没有片段，实际 %d 个", len(frags))
	}
	frags := collect(AsciiSpace{}, "\u00fcberl\u00e4nge")
	if len(frags) != 1 || frags[0].Kind != Word || frags[0].Width != 9 {
		t.Fatalf("无断点文本应当产生单个单词片段: %+v", frags)
	}
}

func TestAsciiSpaceStopsEarly(t *testing.T) {
	n := 0
	for range (AsciiSpace{}).Separate("a b c d") {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

// TestUnicodeSeparatorCJK 验证 CJK 文本在没有空格时也能在字与字之间断开。
func TestUnicodeSeparatorCJK(t *testing.T) {
	text := "你好世界"
	frags := collect(UnicodeBreakProperties{}, text)
	require.Len(t, frags, 4)
	for _, f := range frags {
		assert.Equal(t, Word, f.Kind)
		assert.Equal(t, 2, f.Width, "CJK 字符宽度为 2")
	}
	assert.Equal(t, text, joinText(frags))

	// AsciiSpace 找不到任何断点。
	assert.Len(t, collect(AsciiSpace{}, text), 1)
}

func TestUnicodeSeparatorSpacesAndForcedBreaks(t *testing.T) {
	text := "hello world\u2028next"
	frags := collect(UnicodeBreakProperties{}, text)
	want := []Fragment{
		{Kind: Word, Text: "hello", Offset: 0, Width: 5, Splittable: true},
		{Kind: Whitespace, Text: " ", Offset: 5, Width: 1},
		{Kind: Word, Text: "world", Offset: 6, Width: 5, Splittable: true},
		{Kind: Whitespace, Text: "\u2028", Offset: 11, Forced: true},
		{Kind: Word, Text: "next", Offset: 14, Width: 4, Splittable: true},
	}
	require.Equal(t, want, frags)
	assert.Equal(t, text, joinText(frags))
}

func TestUnicodeSeparatorCRLF(t *testing.T) {
	frags := collect(UnicodeBreakProperties{}, "a\r\nb")
	require.Len(t, frags, 3)
	assert.Equal(t, "\r\n", frags[1].Text)
	assert.True(t, frags[1].Forced)
}

func TestUnicodeSeparatorEdgeCases(t *testing.T) {
	assert.Empty(t, collect(UnicodeBreakProperties{}, ""))
	frags := collect(UnicodeBreakProperties{}, "word")
	require.Len(t, frags, 1)
	assert.False(t, frags[0].Forced, "文本末尾不是强制断行")
	// 不换行空格属于单词。
	assert.Len(t, collect(UnicodeBreakProperties{}, "10\u00a0km"), 1)
}

// TestInjectedClassifier 验证注入的逐对分类器决定断点。
func TestInjectedClassifier(t *testing.T) {
	everywhere := func(prev, next rune) BreakClass {
		if next == '|' {
			return MustBreak
		}
		return CanBreak
	}
	frags := collect(UnicodeBreakProperties{Classifier: everywhere}, "ab|c")
	require.Len(t, frags, 4)
	assert.Equal(t, []string{"a", "b", "|", "c"}, []string{frags[0].Text, frags[1].Text, frags[2].Text, frags[3].Text})
	assert.True(t, frags[1].Forced)

	never := func(rune, rune) BreakClass { return NoBreak }
	frags = collect(UnicodeBreakProperties{Classifier: never}, "no breaks here")
	require.Len(t, frags, 1)
	assert.Equal(t, Word, frags[0].Kind)
}

func TestUAX14Pair(t *testing.T) {
	cases := []struct {
		prev, next rune
		want       BreakClass
	}{
		{'a', 'b', NoBreak},
		{'a', ' ', NoBreak},
		{' ', 'b', CanBreak},
		{'\n', 'b', MustBreak},
		{'你', '好', CanBreak},
	}
	for _, c := range cases {
		if got := UAX14Pair(c.prev, c.next); got != c.want {
			t.Fatalf("UAX14Pair(%q, %q) = %s, 期望 %s", c.prev, c.next, got, c.want)
		}
	}

	text := "hello world again"
	assert.Equal(t,
		collect(UnicodeBreakProperties{}, text),
		collect(UnicodeBreakProperties{Classifier: UAX14Pair}, text))
}
