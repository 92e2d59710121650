package layout

import (
	"cmp"
	"slices"

	"github.com/rivo/uniseg"
)

// WordSplitter 为放不下的单词提出词内候选断点。
// 只有当单词宽度超过它在候选行中可用的宽度时才会被调用。
type WordSplitter interface {
	// ProposeSplits 返回前缀（含插入字形）宽度不超过 budget 的候选断点，最贴合 budget 的排在最前。
	ProposeSplits(word Fragment, budget int) []Split
	String() string
}

// Dictionary 是外部注入的连字词典能力，返回单词内允许断开的字节偏移（升序）。
type Dictionary interface {
	FindBreaks(word string) []int
}

// NoSplit 从不拆词，过宽的单词原样溢出。
type NoSplit struct{}

func (NoSplit) String() string { return "no-split" }

// ProposeSplits 实现 WordSplitter。
func (NoSplit) ProposeSplits(Fragment, int) []Split { return nil }

// HyphenGlyph 是拆词时插入的字形。
const HyphenGlyph = "-"

// Hyphenation 依据词典给出的音节边界拆词，并在单词自带的连字符之后提供不插入字形的断点。
type Hyphenation struct {
	Dictionary Dictionary
}

func (Hyphenation) String() string { return "hyphenation" }

// ProposeSplits 实现 WordSplitter。
func (h Hyphenation) ProposeSplits(word Fragment, budget int) []Split {
	if word.Kind != Word || !word.Splittable || len(word.Text) < 2 {
		return nil
	}
	text := word.Text

	var offsets []int
	for i := 0; i < len(text)-1; i++ {
		if text[i] == '-' && i > 0 {
			offsets = append(offsets, i+1)
		}
	}
	if h.Dictionary != nil {
		for _, off := range h.Dictionary.FindBreaks(text) {
			if off > 0 && off < len(text) {
				offsets = append(offsets, off)
			}
		}
	}
	if len(offsets) == 0 {
		return nil
	}
	slices.Sort(offsets)
	offsets = slices.Compact(offsets)

	type candidate struct {
		split Split
		width int
	}
	cands := make([]candidate, 0, len(offsets))
	for _, off := range offsets {
		glyph := HyphenGlyph
		if text[off-1] == '-' {
			glyph = ""
		}
		w := displayWidth(text[:off]) + displayWidth(glyph)
		if w > budget {
			continue
		}
		cands = append(cands, candidate{split: Split{Offset: off, Glyph: glyph}, width: w})
	}
	slices.SortStableFunc(cands, func(a, b candidate) int {
		if c := cmp.Compare(b.width, a.width); c != 0 {
			return c
		}
		return cmp.Compare(b.split.Offset, a.split.Offset)
	})
	out := make([]Split, len(cands))
	for i, c := range cands {
		out[i] = c.split
	}
	return out
}

// applySplit 把 word 在 split 处拆成两个片段；前半段携带插入字形，后半段保留原字形。
func applySplit(word Fragment, split Split) (Fragment, Fragment) {
	head := word
	head.Text = word.Text[:split.Offset]
	head.Width = displayWidth(head.Text)
	head.Penalty = split.Glyph
	head.Splittable = false
	head.Forced = false

	tail := word
	tail.Text = word.Text[split.Offset:]
	tail.Offset = word.Offset + split.Offset
	tail.Width = displayWidth(tail.Text)
	return head, tail
}

// breakAt 返回 text 中宽度不超过 limit 的最长字素簇前缀的字节长度；至少包含一个字素簇。
func breakAt(text string, limit int) int {
	n, width := 0, 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if n > 0 && width+w > limit {
			break
		}
		n += len(cluster)
		width += w
	}
	return n
}
