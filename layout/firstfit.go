package layout

import "iter"

// WrapAlgorithm 决定在哪些片段之后断行。
// 实现集合是封闭的：FirstFit 与 OptimalFit。
type WrapAlgorithm interface {
	String() string
	// wrap 返回处理拆词之后的片段序列，以及覆盖整个序列的行。
	wrap(frags iter.Seq[Fragment], widths Widths, splitter WordSplitter, breakWords bool) ([]Fragment, []Line)
}

// BreakLines 使用 opts 中的算法、拆词器与 break-words 设置对片段序列断行。
// 返回的 Line 下标指向第一个返回值。
func BreakLines(frags iter.Seq[Fragment], widths Widths, opts Options) ([]Fragment, []Line) {
	opts = opts.orDefault()
	return opts.algorithm.wrap(frags, widths, opts.splitter, opts.breakWords)
}

// FirstFit 是贪心断行：能放下就放在当前行，放不下就换行。时间 O(n)。
type FirstFit struct{}

func (FirstFit) String() string { return "first-fit" }

func (FirstFit) wrap(frags iter.Seq[Fragment], widths Widths, splitter WordSplitter, breakWords bool) ([]Fragment, []Line) {
	b := &greedy{widths: widths, splitter: splitter, breakWords: breakWords}
	for f := range frags {
		if f.Kind == Whitespace {
			b.space(f)
		} else {
			b.word(f)
		}
	}
	b.finish()
	return b.out, b.lines
}

// greedy 保存 First-Fit 的行状态。
type greedy struct {
	widths     Widths
	splitter   WordSplitter
	breakWords bool

	out   []Fragment
	lines []Line

	start   int // 当前行第一个片段在 out 中的下标
	width   int // 当前行已放入内容的宽度，不含行尾空白与字形
	penalty int // 当前行最后一个单词的字形宽度
	pending int // 最后一个单词之后的空白宽度
	words   bool
}

func (b *greedy) target() int { return b.widths.At(len(b.lines)) }

func (b *greedy) closeLine() {
	b.lines = append(b.lines, Line{Start: b.start, End: len(b.out), Width: b.width + b.penalty})
	b.start = len(b.out)
	b.width, b.penalty, b.pending = 0, 0, 0
	b.words = false
}

func (b *greedy) space(f Fragment) {
	b.out = append(b.out, f)
	if f.Forced {
		b.closeLine()
		return
	}
	// 行首空白被丢弃，不计入宽度。
	if b.words {
		b.pending = max(b.pending, f.Width)
	}
}

func (b *greedy) place(w Fragment) {
	b.out = append(b.out, w)
	if b.words {
		b.width += b.pending
	}
	b.width += w.Width
	b.penalty = w.PenaltyWidth()
	b.pending = 0
	b.words = true
}

func (b *greedy) word(w Fragment) {
	if b.words && b.width+b.pending+w.Width+w.PenaltyWidth() > b.target() {
		b.closeLine()
	}
	if !b.words && w.Width+w.PenaltyWidth() > b.target() {
		w = b.splitOverWide(w)
	}
	b.place(w)
	if w.Forced {
		b.closeLine()
	}
}

// splitOverWide 在空行上切下放得下的前缀并各自成行，返回剩余部分。
// 剩余部分仍可能过宽，此时允许溢出。
func (b *greedy) splitOverWide(word Fragment) Fragment {
	rest := word
	consumed, consumedWidth := 0, 0
	for rest.Width+rest.PenaltyWidth() > b.target() {
		target := b.target()
		var (
			split Split
			found bool
		)
		if word.Splittable {
			for _, s := range b.splitter.ProposeSplits(word, consumedWidth+target) {
				if s.Offset > consumed {
					split, found = Split{Offset: s.Offset - consumed, Glyph: s.Glyph}, true
					break
				}
			}
		}
		if !found && b.breakWords {
			if n := breakAt(rest.Text, target); n < len(rest.Text) {
				split, found = Split{Offset: n}, true
			}
		}
		if !found {
			break
		}
		head, tail := applySplit(rest, split)
		b.place(head)
		b.closeLine()
		consumed += split.Offset
		consumedWidth = displayWidth(word.Text[:consumed])
		rest = tail
	}
	return rest
}

func (b *greedy) finish() {
	switch {
	case b.start == len(b.out):
	case b.words || len(b.lines) == 0:
		b.closeLine()
	default:
		// 强制断行之后只剩空白：并入上一行。
		b.lines[len(b.lines)-1].End = len(b.out)
		b.start = len(b.out)
	}
}
