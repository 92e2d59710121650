package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapDictionary 是测试用的固定词典。
type mapDictionary map[string][]int

func (d mapDictionary) FindBreaks(word string) []int { return d[word] }

var testDict = mapDictionary{"extraordinary": {2, 5, 7, 9}}

func word(text string) Fragment {
	return Fragment{Kind: Word, Text: text, Width: displayWidth(text), Splittable: true}
}

func TestNoSplit(t *testing.T) {
	assert.Empty(t, NoSplit{}.ProposeSplits(word("extraordinary"), 100))
}

// TestHyphenationBestFitFirst 验证候选按占用宽度从大到小排序，且前缀加连字符不超过预算。
func TestHyphenationBestFitFirst(t *testing.T) {
	h := Hyphenation{Dictionary: testDict}
	got := h.ProposeSplits(word("extraordinary"), 6)
	assert.Equal(t, []Split{{Offset: 5, Glyph: "-"}, {Offset: 2, Glyph: "-"}}, got)

	got = h.ProposeSplits(word("extraordinary"), 100)
	assert.Equal(t, []int{9, 7, 5, 2}, offsets(got))

	assert.Empty(t, h.ProposeSplits(word("extraordinary"), 2), "没有候选能放下时等同于 NoSplit")
}

func TestHyphenationExistingHyphen(t *testing.T) {
	h := Hyphenation{}
	got := h.ProposeSplits(word("well-known"), 5)
	assert.Equal(t, []Split{{Offset: 5, Glyph: ""}}, got)
	assert.Empty(t, h.ProposeSplits(word("-leading"), 10))
}

func TestHyphenationIgnoresUnsplittable(t *testing.T) {
	w := word("extraordinary")
	w.Splittable = false
	assert.Empty(t, Hyphenation{Dictionary: testDict}.ProposeSplits(w, 100))
}

// TestSplitRoundTrip 验证去掉插入字形后两段拼接还原原词。
func TestSplitRoundTrip(t *testing.T) {
	w := word("extraordinary")
	w.Offset = 7
	for _, s := range (Hyphenation{Dictionary: testDict}).ProposeSplits(w, 100) {
		head, tail := applySplit(w, s)
		require.Equal(t, s.Glyph, head.Penalty)
		assert.Equal(t, w.Text, head.Text+tail.Text)
		assert.Equal(t, w.Offset+s.Offset, tail.Offset)
		assert.Equal(t, w.Width, head.Width+tail.Width)
	}
}

func TestBreakAt(t *testing.T) {
	assert.Equal(t, 4, breakAt("abcdef", 4))
	assert.Equal(t, 6, breakAt("abcdef", 10))
	assert.Equal(t, 3, breakAt("你好", 1), "至少保留一个字素簇")
	assert.Equal(t, 6, breakAt("你好世界", 5))
	// e + 组合重音符属于同一个字素簇。
	assert.Equal(t, len("e\u0301"), breakAt("e\u0301x", 1))
}

func offsets(splits []Split) []int {
	out := make([]int, len(splits))
	for i, s := range splits {
		out[i] = s.Offset
	}
	return out
}
