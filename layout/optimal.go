package layout

import (
	"iter"
	"math"
	"slices"
)

// Penalties 是 Optimal-Fit 的代价参数。
type Penalties struct {
	NLine    int64 `json:"nline"`    // 每行固定代价，倾向更少的行
	Overflow int64 `json:"overflow"` // 每溢出一列的代价
	Hyphen   int64 `json:"hyphen"`   // 行尾为拆开单词时的附加代价
}

// DefaultPenalties 返回默认代价参数。
func DefaultPenalties() Penalties {
	return Penalties{NLine: 1000, Overflow: 2500, Hyphen: 25}
}

// Badness 计算单行代价：溢出按列线性计价，否则按剩余宽度的平方计价；段落（强制断行段）的最后一行不计剩余宽度。
func (p Penalties) Badness(width, target int, last, hyphenated bool) int64 {
	b := p.NLine
	switch gap := int64(target - width); {
	case gap < 0:
		b += -gap * p.Overflow
	case !last:
		b += gap * gap
	}
	if hyphenated {
		b += p.Hyphen
	}
	return b
}

// OptimalFit 在每个强制断行段内最小化所有行的代价之和。
// 使用在线单调矩阵列最小值搜索，摊还 O(n)。
type OptimalFit struct {
	Penalties Penalties
}

// NewOptimalFit 以给定代价参数创建 OptimalFit；零值 OptimalFit 使用 DefaultPenalties。
func NewOptimalFit(p Penalties) OptimalFit { return OptimalFit{Penalties: p} }

func (OptimalFit) String() string { return "optimal-fit" }

func (o OptimalFit) penalties() Penalties {
	if o.Penalties == (Penalties{}) {
		return DefaultPenalties()
	}
	return o.Penalties
}

func (o OptimalFit) wrap(frags iter.Seq[Fragment], widths Widths, splitter WordSplitter, breakWords bool) ([]Fragment, []Line) {
	out := expandOverWide(frags, widths.Min(), splitter, breakWords)
	p := o.penalties()

	var (
		lines []Line
		bx    boxes
	)
	start := 0
	for i, f := range out {
		if f.Forced {
			lines = bx.solve(out, start, i+1, widths, p, lines)
			start = i + 1
		}
	}
	if start < len(out) {
		lines = bx.solve(out, start, len(out), widths, p, lines)
	}
	return out, lines
}

// expandOverWide 把比最窄目标宽度还宽的单词在所有候选断点处预先拆开，供全局搜索选择。
func expandOverWide(frags iter.Seq[Fragment], narrowest int, splitter WordSplitter, breakWords bool) []Fragment {
	var out []Fragment
	for f := range frags {
		if f.Kind != Word || !f.Splittable || f.Width+f.PenaltyWidth() <= narrowest {
			out = append(out, f)
			continue
		}
		splits := splitter.ProposeSplits(f, math.MaxInt)
		slices.SortFunc(splits, func(a, b Split) int { return a.Offset - b.Offset })
		rest, consumed := f, 0
		for _, s := range splits {
			if s.Offset <= consumed || s.Offset >= len(f.Text) {
				continue
			}
			var head Fragment
			head, rest = applySplit(rest, Split{Offset: s.Offset - consumed, Glyph: s.Glyph})
			out = appendChunks(out, head, narrowest, breakWords)
			consumed = s.Offset
		}
		out = appendChunks(out, rest, narrowest, breakWords)
	}
	return out
}

// appendChunks 在 break-words 开启时把仍然过宽的片段按字素簇切成不超过 limit 的块。
func appendChunks(out []Fragment, f Fragment, limit int, breakWords bool) []Fragment {
	if !breakWords {
		return append(out, f)
	}
	for f.Width+f.PenaltyWidth() > limit {
		n := breakAt(f.Text, limit)
		if n >= len(f.Text) {
			break
		}
		var head Fragment
		head, f = applySplit(f, Split{Offset: n})
		out = append(out, head)
	}
	return append(out, f)
}

// boxes 是一个强制断行段的盒子表：一个单词连同其后的空白。
// 复用底层数组以减少分配。
type boxes struct {
	first   []int   // 盒子的第一个片段下标，末尾多一个哨兵
	prefix  []int64 // (单词宽度 + 其后空白宽度) 的前缀和
	glue    []int64
	penalty []int64
	lineNo  []int // 以第 k 个盒子开头的行在本段中的行号
}

// build 为片段区间 [start, end) 建盒子，返回盒子个数。
// 段首的空白并入第一个盒子，不计宽度。
func (bx *boxes) build(frags []Fragment, start, end int) int {
	bx.first = bx.first[:0]
	bx.prefix = append(bx.prefix[:0], 0)
	bx.glue = bx.glue[:0]
	bx.penalty = bx.penalty[:0]
	bx.lineNo = append(bx.lineNo[:0], 0)

	for i := start; i < end; i++ {
		f := frags[i]
		if f.Kind == Whitespace {
			if k := len(bx.glue) - 1; k >= 0 {
				bx.glue[k] = max(bx.glue[k], int64(f.Width))
			}
			continue
		}
		if len(bx.first) == 0 {
			bx.first = append(bx.first, start)
		} else {
			bx.first = append(bx.first, i)
		}
		bx.prefix = append(bx.prefix, int64(f.Width))
		bx.glue = append(bx.glue, 0)
		bx.penalty = append(bx.penalty, int64(f.PenaltyWidth()))
	}
	bx.first = append(bx.first, end)
	for k := range bx.glue {
		bx.prefix[k+1] += bx.prefix[k] + bx.glue[k]
	}
	return len(bx.glue)
}

// width 返回盒子区间 [i, j) 排成一行后的显示宽度：行尾空白不计，行尾字形计入。
func (bx *boxes) width(i, j int) int64 {
	return bx.prefix[j] - bx.prefix[i] - bx.glue[j-1] + bx.penalty[j-1]
}

// solve 对片段区间 [start, end) 求最优断行，并把结果追加到 lines。
// 行号从 len(lines) 继续，使宽度表跨强制断行段连续。
func (bx *boxes) solve(frags []Fragment, start, end int, widths Widths, p Penalties, lines []Line) []Line {
	n := bx.build(frags, start, end)
	if n == 0 {
		if frags[end-1].Forced || len(lines) == 0 {
			return append(lines, Line{Start: start, End: end})
		}
		// 强制断行之后只剩空白：并入上一行。
		lines[len(lines)-1].End = end
		return lines
	}

	offset := len(lines)
	// 已完成列的最小值不再变化，行号可以按需向前推导。
	lineOf := func(minima []minimum, i int) int {
		for k := len(bx.lineNo); k <= i; k++ {
			bx.lineNo = append(bx.lineNo, bx.lineNo[minima[k].row]+1)
		}
		return bx.lineNo[i]
	}
	minima := onlineColumnMinima(0, n+1, func(minima []minimum, i, j int) int64 {
		target := widths.At(offset + lineOf(minima, i))
		return minima[i].cost + p.Badness(int(bx.width(i, j)), target, j == n, bx.penalty[j-1] > 0)
	})

	cuts := []int{n}
	for j := n; j > 0; {
		j = minima[j].row
		cuts = append(cuts, j)
	}
	slices.Reverse(cuts)
	for k := 1; k < len(cuts); k++ {
		i, j := cuts[k-1], cuts[k]
		lines = append(lines, Line{Start: bx.first[i], End: bx.first[j], Width: int(bx.width(i, j))})
	}
	return lines
}
