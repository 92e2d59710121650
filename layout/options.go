package layout

import "slices"

// LineEnding 决定 Fill 输出时行与行之间的分隔符。
type LineEnding int

const (
	LF LineEnding = iota
	CRLF
)

func (e LineEnding) String() string {
	if e == CRLF {
		return "\r\n"
	}
	return "\n"
}

// Options 汇总一次折行所需的全部配置。
// Options 是不可变值：With* 方法总是返回修改后的副本，因此同一个 Options 可以被多个 goroutine 共享。
type Options struct {
	widths           Widths
	separator        WordSeparator
	splitter         WordSplitter
	algorithm        WrapAlgorithm
	breakWords       bool
	initialIndent    string
	subsequentIndent string
	lineEnding       LineEnding
}

// NewOptions 以单一宽度创建默认配置：AsciiSpace 分词、不拆词、First-Fit。
func NewOptions(width int) Options {
	return NewOptionsWidths(width)
}

// NewOptionsWidths 以宽度序列创建配置，第 i 行使用 widths[min(i, len-1)]。
func NewOptionsWidths(widths ...int) Options {
	if len(widths) == 0 {
		widths = []int{1}
	}
	return Options{
		widths:    slices.Clone(widths),
		separator: AsciiSpace{},
		splitter:  NoSplit{},
		algorithm: FirstFit{},
	}
}

// WithWidths 返回替换宽度序列后的副本。
func (o Options) WithWidths(widths ...int) Options {
	if len(widths) == 0 {
		return o
	}
	o.widths = slices.Clone(widths)
	return o
}

// WithSeparator 返回替换分词策略后的副本。
func (o Options) WithSeparator(s WordSeparator) Options {
	if s != nil {
		o.separator = s
	}
	return o
}

// WithSplitter 返回替换拆词策略后的副本。
func (o Options) WithSplitter(s WordSplitter) Options {
	if s != nil {
		o.splitter = s
	}
	return o
}

// WithAlgorithm 返回替换折行算法后的副本。
func (o Options) WithAlgorithm(a WrapAlgorithm) Options {
	if a != nil {
		o.algorithm = a
	}
	return o
}

// WithBreakWords 控制在拆词器无可用断点时是否按字素簇强制截断过宽单词。
func (o Options) WithBreakWords(enabled bool) Options {
	o.breakWords = enabled
	return o
}

// WithInitialIndent 设置首行前缀，其宽度从首行目标宽度中扣除。
func (o Options) WithInitialIndent(indent string) Options {
	o.initialIndent = indent
	return o
}

// WithSubsequentIndent 设置其余行的前缀。
func (o Options) WithSubsequentIndent(indent string) Options {
	o.subsequentIndent = indent
	return o
}

// WithLineEnding 设置 Fill 使用的换行符。
func (o Options) WithLineEnding(e LineEnding) Options {
	o.lineEnding = e
	return o
}

// Widths 返回宽度序列的副本。
func (o Options) Widths() []int { return slices.Clone(o.widths) }

func (o Options) Separator() WordSeparator { return o.orDefault().separator }
func (o Options) Splitter() WordSplitter   { return o.orDefault().splitter }
func (o Options) Algorithm() WrapAlgorithm { return o.orDefault().algorithm }
func (o Options) BreakWords() bool         { return o.breakWords }
func (o Options) InitialIndent() string    { return o.initialIndent }
func (o Options) SubsequentIndent() string { return o.subsequentIndent }
func (o Options) LineEnding() LineEnding   { return o.lineEnding }

// orDefault 为零值 Options 补齐默认策略，使 Options{} 也能安全使用。
func (o Options) orDefault() Options {
	if len(o.widths) == 0 {
		o.widths = Widths{1}
	}
	if o.separator == nil {
		o.separator = AsciiSpace{}
	}
	if o.splitter == nil {
		o.splitter = NoSplit{}
	}
	if o.algorithm == nil {
		o.algorithm = FirstFit{}
	}
	return o
}

// lineWidths 返回第 paragraph 段使用的宽度表，已扣除缩进宽度。
func (o Options) lineWidths(paragraph int) Widths {
	first := o.subsequentIndent
	if paragraph == 0 {
		first = o.initialIndent
	}
	firstW, restW := displayWidth(first), displayWidth(o.subsequentIndent)
	if firstW == 0 && restW == 0 {
		return o.widths
	}
	n := len(o.widths)
	if n < 2 {
		n = 2
	}
	out := make(Widths, n)
	for i := range out {
		indent := restW
		if i == 0 {
			indent = firstW
		}
		out[i] = o.widths.At(i) - indent
	}
	return out
}

// Widths 是逐行目标宽度表；超出长度的行重复使用最后一个值。
type Widths []int

// At 返回第 line 行的目标宽度，最小为 1。
func (w Widths) At(line int) int {
	if len(w) == 0 {
		return 1
	}
	if line >= len(w) {
		line = len(w) - 1
	}
	if w[line] < 1 {
		return 1
	}
	return w[line]
}

// Min 返回宽度表中的最小目标宽度。
func (w Widths) Min() int {
	if len(w) == 0 {
		return 1
	}
	m := w.At(0)
	for i := 1; i < len(w); i++ {
		m = min(m, w.At(i))
	}
	return m
}
