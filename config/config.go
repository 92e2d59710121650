package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"github.com/ByLCY/linewrap/hyphen"
	"github.com/ByLCY/linewrap/layout"
	canvasrenderer "github.com/ByLCY/linewrap/renderer/canvas"
)

// Config 是折行配置文件的结构，字段与 layout.Options 一一对应。
type Config struct {
	Widths           []int       `toml:"widths"`
	Algorithm        string      `toml:"algorithm"`
	Separator        string      `toml:"separator"`
	BreakWords       bool        `toml:"break_words"`
	InitialIndent    string      `toml:"initial_indent"`
	SubsequentIndent string      `toml:"subsequent_indent"`
	LineEnding       string      `toml:"line_ending"`
	Penalties        Penalties   `toml:"penalties"`
	Hyphenation      Hyphenation `toml:"hyphenation"`
	Proof            Proof       `toml:"proof"`
	Source           string      `toml:"-"`
}

// Penalties 覆盖 Optimal-Fit 的代价参数，零值字段沿用默认值。
type Penalties struct {
	NLine    int64 `toml:"nline"`
	Overflow int64 `toml:"overflow"`
	Hyphen   int64 `toml:"hyphen"`
}

// Proof 配置 PDF 校样；长度写作 "15mm"、"10pt" 等，行距还可写作 "1.2x"。
type Proof struct {
	Font       string `toml:"font"`
	FontSize   string `toml:"font_size"`
	Margin     string `toml:"margin"`
	LineHeight string `toml:"line_height"`
	Title      string `toml:"title"`
}

// RendererOptions 解析校样尺寸，空字段使用渲染器默认值。
func (p Proof) RendererOptions() (canvasrenderer.Options, error) {
	size, err := canvasrenderer.ParseLength(p.FontSize)
	if err != nil {
		return canvasrenderer.Options{}, fmt.Errorf("proof.font_size: %w", err)
	}
	margin, err := canvasrenderer.ParseLength(p.Margin)
	if err != nil {
		return canvasrenderer.Options{}, fmt.Errorf("proof.margin: %w", err)
	}
	var lh canvasrenderer.LineHeight
	if p.LineHeight != "" {
		if lh, err = canvasrenderer.ParseLineHeight(p.LineHeight); err != nil {
			return canvasrenderer.Options{}, fmt.Errorf("proof.line_height: %w", err)
		}
	}
	fontSize := size.PT()
	if size.Unit == canvasrenderer.UnitNone {
		fontSize = size.Value // 无单位的字号按 pt 解释
	}
	return canvasrenderer.Options{
		FontSrc:    p.Font,
		FontSize:   fontSize,
		Margin:     margin.MM(),
		LineHeight: lh,
		Title:      p.Title,
	}, nil
}

// Hyphenation 指定断字模式文件；Patterns 为空表示不拆词。
// 相对路径以配置文件所在目录为基准。
type Hyphenation struct {
	Patterns string `toml:"patterns"`
	Language string `toml:"language"`
}

func Default() Config {
	return Config{
		Widths:     []int{72},
		Algorithm:  layout.FirstFit{}.String(),
		Separator:  layout.AsciiSpace{}.String(),
		LineEnding: "lf",
		Hyphenation: Hyphenation{
			Language: "en-US",
		},
	}
}

// Load 读取 TOML 配置文件，未出现的字段保留 Default 的值。
func Load(path string) (Config, error) {
	cfg := Default()
	content, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
	}
	if err := toml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
	}
	cfg.Source = path
	for _, p := range []*string{&cfg.Hyphenation.Patterns, &cfg.Proof.Font} {
		if *p != "" && !filepath.IsAbs(*p) && !strings.HasPrefix(*p, "embed:") {
			*p = filepath.Join(filepath.Dir(path), *p)
		}
	}
	return cfg, nil
}

// Options 把配置转换为 layout.Options；配置了断字模式时会加载对应词典。
func (c Config) Options() (layout.Options, error) {
	widths := c.Widths
	if len(widths) == 0 {
		widths = Default().Widths
	}
	for _, w := range widths {
		if w < 1 {
			return layout.Options{}, fmt.Errorf("宽度必须为正数: %d", w)
		}
	}
	opts := layout.NewOptionsWidths(widths...).
		WithBreakWords(c.BreakWords).
		WithInitialIndent(c.InitialIndent).
		WithSubsequentIndent(c.SubsequentIndent)

	algo, err := c.algorithm()
	if err != nil {
		return layout.Options{}, err
	}
	sep, err := ParseSeparator(c.Separator)
	if err != nil {
		return layout.Options{}, err
	}
	ending, err := ParseLineEnding(c.LineEnding)
	if err != nil {
		return layout.Options{}, err
	}
	opts = opts.WithAlgorithm(algo).WithSeparator(sep).WithLineEnding(ending)

	if c.Hyphenation.Patterns != "" {
		dict, err := c.Hyphenation.Load()
		if err != nil {
			return layout.Options{}, err
		}
		opts = opts.WithSplitter(layout.Hyphenation{Dictionary: dict})
	}
	return opts, nil
}

func (c Config) algorithm() (layout.WrapAlgorithm, error) {
	algo, err := ParseAlgorithm(c.Algorithm)
	if err != nil {
		return nil, err
	}
	if _, ok := algo.(layout.OptimalFit); !ok {
		return algo, nil
	}
	p := layout.DefaultPenalties()
	if c.Penalties.NLine != 0 {
		p.NLine = c.Penalties.NLine
	}
	if c.Penalties.Overflow != 0 {
		p.Overflow = c.Penalties.Overflow
	}
	if c.Penalties.Hyphen != 0 {
		p.Hyphen = c.Penalties.Hyphen
	}
	return layout.NewOptimalFit(p), nil
}

// Load 按配置的语言标签加载断字词典。
func (h Hyphenation) Load() (*hyphen.Dictionary, error) {
	tag := language.Und
	if h.Language != "" {
		t, err := language.Parse(h.Language)
		if err != nil {
			return nil, fmt.Errorf("无效的语言标签 %q: %w", h.Language, err)
		}
		tag = t
	}
	dict, err := hyphen.LoadFile(tag, h.Patterns)
	if err != nil {
		return nil, fmt.Errorf("加载断字词典失败: %w", err)
	}
	return dict, nil
}

// ParseAlgorithm 按名称返回折行算法，名称不区分大小写。
func ParseAlgorithm(name string) (layout.WrapAlgorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "first-fit", "firstfit":
		return layout.FirstFit{}, nil
	case "optimal-fit", "optimalfit", "optimal":
		return layout.OptimalFit{}, nil
	}
	return nil, fmt.Errorf("未知的折行算法: %q", name)
}

// ParseSeparator 按名称返回分词策略。
func ParseSeparator(name string) (layout.WordSeparator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "ascii-space", "ascii":
		return layout.AsciiSpace{}, nil
	case "unicode-break-properties", "unicode":
		return layout.UnicodeBreakProperties{}, nil
	}
	return nil, fmt.Errorf("未知的分词策略: %q", name)
}

// ParseLineEnding 解析 "lf" 或 "crlf"。
func ParseLineEnding(name string) (layout.LineEnding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "lf":
		return layout.LF, nil
	case "crlf":
		return layout.CRLF, nil
	}
	return layout.LF, fmt.Errorf("未知的换行符: %q", name)
}
