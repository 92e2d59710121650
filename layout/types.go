package layout

// 该文件定义折行引擎的数据模型：片段、候选拆分、行以及供渲染与调试 JSON 共用的结果结构。

// Kind 区分片段是单词还是空白。
type Kind int

const (
	Word Kind = iota
	Whitespace
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "word"
	case Whitespace:
		return "whitespace"
	default:
		return "unknown"
	}
}

// Fragment 是分词器产出的最小排版单元，Text 直接引用原文子串（零拷贝）。
type Fragment struct {
	Kind       Kind   `json:"kind"`
	Text       string `json:"text"`
	Offset     int    `json:"offset"`            // Text 在段落中的字节偏移
	Width      int    `json:"width"`             // 显示宽度；空白按渲染后的单个空格计 1
	Penalty    string `json:"penalty,omitempty"` // 行在此片段后断开时追加的字形（连字符）
	Splittable bool   `json:"splittable"`
	Forced     bool   `json:"forced,omitempty"` // 此片段之后必须断行
}

// PenaltyWidth 返回行尾追加字形的宽度。
func (f Fragment) PenaltyWidth() int {
	if f.Penalty == "" {
		return 0
	}
	return displayWidth(f.Penalty)
}

// Split 描述单词内部的一个候选断点：在 Offset 处拆开并在前半段末尾插入 Glyph。
type Split struct {
	Offset int    `json:"offset"`
	Glyph  string `json:"glyph"`
}

// Line 是折行算法的输出，[Start, End) 为片段下标区间。
type Line struct {
	Start int `json:"start"`
	End   int `json:"end"`
	Width int `json:"width"`
}

// Len 返回行内片段个数。
func (l Line) Len() int { return l.End - l.Start }

// Result 保存一次 Layout 调用的结构化结果。
type Result struct {
	Paragraphs []Paragraph `json:"paragraphs"`
	Meta       ResultMeta  `json:"meta"`
}

// Paragraph 对应输入中以换行分隔的一段文本。
type Paragraph struct {
	Source    string     `json:"source"`
	Fragments []Fragment `json:"fragments,omitempty"`
	Lines     []TextLine `json:"lines"`
}

// TextLine 表示渲染后的一行文本及其宽度信息。
type TextLine struct {
	Content    string `json:"content"`
	Indent     string `json:"indent,omitempty"`
	Width      int    `json:"width"`
	Target     int    `json:"target"`
	Overflow   bool   `json:"overflow,omitempty"`   // 行宽超出目标宽度（单个过宽且无法拆分的词）
	Hyphenated bool   `json:"hyphenated,omitempty"` // 行尾是被拆开的单词
	Span       Line   `json:"span"`
}

// String 返回带缩进的整行文本。
func (l TextLine) String() string { return l.Indent + l.Content }

// ResultMeta 记录生成结果时使用的配置摘要。
type ResultMeta struct {
	Algorithm string `json:"algorithm"`
	Separator string `json:"separator"`
	Splitter  string `json:"splitter"`
	Widths    []int  `json:"widths"`
}

// Lines 按顺序展开所有段落的行。
func (r *Result) Lines() []TextLine {
	if r == nil {
		return nil
	}
	var out []TextLine
	for _, p := range r.Paragraphs {
		out = append(out, p.Lines...)
	}
	return out
}
