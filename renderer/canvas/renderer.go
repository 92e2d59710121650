package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/linewrap/fonts"
	"github.com/ByLCY/linewrap/layout"
	"github.com/ByLCY/linewrap/renderer"
)

const (
	a4Width  = 210.0
	a4Height = 297.0

	guideWidth = 0.15
)

var (
	textColor     = canvas.RGBA(30/255.0, 30/255.0, 30/255.0, 1.0)
	overflowColor = canvas.RGBA(200/255.0, 30/255.0, 30/255.0, 1.0)
	guideColor    = canvas.RGBA(120/255.0, 160/255.0, 220/255.0, 1.0)
	ruleColor     = canvas.RGBA(200/255.0, 200/255.0, 200/255.0, 1.0)
)

// Renderer 把折行结果画成 PDF 校样：等宽字体逐行排列，
// 每行在目标列处画一条参考线，溢出的行用红色标出。
type Renderer struct {
	opts Options

	fontMu sync.Mutex
	family *canvas.FontFamily
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options 配置校样渲染器。长度单位为 mm，字号单位为 pt。
type Options struct {
	FontSrc    string     // 空串使用内置等宽字体
	FontSize   float64    // 默认 10pt
	Margin     float64    // 默认 15mm
	LineHeight LineHeight // 零值使用字体行高
	Title      string
}

// NewRenderer 创建校样渲染器，零值字段使用默认值。
func NewRenderer(opts Options) *Renderer {
	if opts.FontSize <= 0 {
		opts.FontSize = 10
	}
	if opts.Margin <= 0 {
		opts.Margin = 15
	}
	if opts.Title == "" {
		opts.Title = "linewrap proof"
	}
	return &Renderer{opts: opts}
}

// Render 实现 renderer.Renderer。
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	family, err := r.ensureFontFamily()
	if err != nil {
		return nil, err
	}
	face := family.Face(r.opts.FontSize, textColor, canvas.FontRegular, canvas.FontNormal)
	red := family.Face(r.opts.FontSize, overflowColor, canvas.FontRegular, canvas.FontNormal)

	metrics := face.Metrics()
	lineHeight := r.opts.LineHeight.Resolve(r.opts.FontSize, metrics.LineHeight)
	advance := face.TextWidth("M")
	lines := result.Lines()

	columns := 0
	for _, l := range lines {
		columns = max(columns, l.Target+layout.DisplayWidth(l.Indent), layout.DisplayWidth(l.String()))
	}
	pageW := math.Max(a4Width, 2*r.opts.Margin+float64(columns+1)*advance)
	pageH := a4Height
	perPage := max(int((pageH-2*r.opts.Margin)/lineHeight), 1)
	pages := paginate(len(lines), perPage)

	var buf bytes.Buffer
	writer := pdf.New(&buf, pageW, pageH, nil)
	r.applyMeta(writer, result.Meta)
	for i, pg := range pages {
		if i > 0 {
			writer.NewPage(pageW, pageH)
		}
		c := canvas.New(pageW, pageH)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 左上角为原点，与行序一致

		cursorY := r.opts.Margin
		for _, l := range lines[pg.start:pg.end] {
			x := r.opts.Margin
			guideX := x + float64(layout.DisplayWidth(l.Indent)+l.Target)*advance
			r.drawGuide(ctx, guideX, cursorY, lineHeight)

			f := face
			if l.Overflow {
				f = red
			}
			ctx.DrawText(x, cursorY+metrics.Ascent, canvas.NewTextLine(f, l.String(), canvas.Left))
			cursorY += lineHeight
		}
		r.drawRule(ctx, r.opts.Margin, cursorY, pageW-2*r.opts.Margin)
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) applyMeta(writer *pdf.PDF, meta layout.ResultMeta) {
	if writer == nil {
		return
	}
	subject := strings.Join([]string{meta.Algorithm, meta.Separator, meta.Splitter}, " / ")
	keywords := strings.Trim(fmt.Sprint(meta.Widths), "[]")
	writer.SetInfo(r.opts.Title, subject, keywords, "", "linewrap")
}

// drawGuide 在目标列处画一段竖线，覆盖当前行的高度。
func (r *Renderer) drawGuide(ctx *canvas.Context, x, y, height float64) {
	ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	ctx.SetStrokeColor(guideColor)
	ctx.SetStrokeWidth(guideWidth)
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(0, height)
	ctx.DrawPath(x, y, p)
}

func (r *Renderer) drawRule(ctx *canvas.Context, x, y, width float64) {
	ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	ctx.SetStrokeColor(ruleColor)
	ctx.SetStrokeWidth(guideWidth)
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(width, 0)
	ctx.DrawPath(x, y, p)
}

func (r *Renderer) ensureFontFamily() (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if r.family != nil {
		return r.family, nil
	}
	data, err := fonts.Load(r.opts.FontSrc)
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily("linewrap-mono")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载字体失败: %w", err)
	}
	r.family = family
	return family, nil
}

type pageRange struct{ start, end int }

// paginate 把 n 行按每页 perPage 行分页；没有行时也返回一页空白校样。
func paginate(n, perPage int) []pageRange {
	if n == 0 {
		return []pageRange{{}}
	}
	var out []pageRange
	for start := 0; start < n; start += perPage {
		out = append(out, pageRange{start: start, end: min(start+perPage, n)})
	}
	return out
}
