package layout

import "strings"

// Layout 把 text 按换行拆成段落，逐段折行，返回结构化结果。
// 宽度表在每个段落开始时重新计数；缩进宽度从对应行的目标宽度中扣除。
func Layout(text string, opts Options) *Result {
	opts = opts.orDefault()
	res := &Result{Meta: ResultMeta{
		Algorithm: opts.algorithm.String(),
		Separator: opts.separator.String(),
		Splitter:  opts.splitter.String(),
		Widths:    opts.Widths(),
	}}

	first := true
	for i, src := range splitParagraphs(text) {
		widths := opts.lineWidths(i)
		frags, lines := BreakLines(opts.separator.Separate(src), widths, opts)
		if len(lines) == 0 {
			lines = []Line{{}}
		}

		p := Paragraph{Source: src, Fragments: frags, Lines: make([]TextLine, 0, len(lines))}
		for n, l := range lines {
			content, hyphenated := renderLine(frags[l.Start:l.End])
			tl := TextLine{
				Content:    content,
				Indent:     opts.subsequentIndent,
				Width:      displayWidth(content),
				Target:     widths.At(n),
				Hyphenated: hyphenated,
				Span:       l,
			}
			if first {
				tl.Indent = opts.initialIndent
				first = false
			}
			tl.Overflow = tl.Width > tl.Target
			p.Lines = append(p.Lines, tl)
		}
		res.Paragraphs = append(res.Paragraphs, p)
	}
	return res
}

// Wrap 返回折行后的各行文本（含缩进）。
func Wrap(text string, opts Options) []string {
	lines := Layout(text, opts).Lines()
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out
}

// Fill 返回折行后的整段文本，行之间使用配置的换行符。空输入返回空串。
func Fill(text string, opts Options) string {
	if text == "" {
		return ""
	}
	return strings.Join(Wrap(text, opts), opts.LineEnding().String())
}

// splitParagraphs 按 \n 拆分段落并去掉行尾的 \r。
func splitParagraphs(text string) []string {
	paras := strings.Split(text, "\n")
	for i, p := range paras {
		paras[i] = strings.TrimSuffix(p, "\r")
	}
	return paras
}

// renderLine 拼接一行中的单词：原文有空白处补一个空格，否则直接相连；行首行尾空白丢弃。
// 行尾单词若带有拆词字形则追加该字形。
func renderLine(frags []Fragment) (string, bool) {
	var (
		sb    strings.Builder
		space bool
		last  *Fragment
	)
	for i := range frags {
		f := &frags[i]
		if f.Kind == Whitespace {
			space = last != nil
			continue
		}
		if space {
			sb.WriteByte(' ')
			space = false
		}
		sb.WriteString(f.Text)
		last = f
	}
	if last == nil || last.Penalty == "" {
		return sb.String(), false
	}
	sb.WriteString(last.Penalty)
	return sb.String(), true
}
