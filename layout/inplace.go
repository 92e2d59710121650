package layout

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// ErrInplaceUnsupported 表示 FillInplaceOptions 收到了原地折行无法满足的配置。
var ErrInplaceUnsupported = errors.New("layout: option not supported by in-place fill")

// FillInplace 以单一宽度对 buf 做 First-Fit 原地折行：断行处的空白串被替换为一个 \n，其后的内容前移。
// 只在空格与制表符处断开，从不拆词；段首缩进原样保留并计入宽度，行内空白按字节计宽。
// 返回 buf[:n]，n 不超过 len(buf)。
func FillInplace(buf []byte, width int) []byte {
	width = max(width, 1)
	n, r := 0, 0
	for r < len(buf) {
		lineWidth := 0
		for r < len(buf) && isBlank(buf[r]) {
			buf[n] = buf[r]
			n++
			r++
			lineWidth++
		}

		words := false
		for r < len(buf) && buf[r] != '\n' {
			ws := r
			for r < len(buf) && isBlank(buf[r]) {
				r++
			}
			if r == len(buf) || buf[r] == '\n' {
				n += copy(buf[n:], buf[ws:r])
				break
			}
			start := r
			for r < len(buf) && !isASCIISpace(buf[r]) {
				r++
			}
			w := bytesWidth(buf[start:r])
			if words && lineWidth+(start-ws)+w > width {
				buf[n] = '\n'
				n++
				lineWidth = 0
			} else {
				n += copy(buf[n:], buf[ws:start])
				lineWidth += start - ws
			}
			n += copy(buf[n:], buf[start:r])
			lineWidth += w
			words = true
		}

		if r < len(buf) {
			buf[n] = '\n'
			n++
			r++
		}
	}
	return buf[:n]
}

// FillInplaceOptions 与 FillInplace 相同，但先检查 opts：任何需要插入字符或改变断行语义的配置都返回 ErrInplaceUnsupported。
func FillInplaceOptions(buf []byte, opts Options) ([]byte, error) {
	opts = opts.orDefault()
	switch {
	case len(opts.widths) > 1:
		return nil, fmt.Errorf("%w: width schedule %v", ErrInplaceUnsupported, opts.widths)
	case opts.algorithm.String() != (FirstFit{}).String():
		return nil, fmt.Errorf("%w: algorithm %s", ErrInplaceUnsupported, opts.algorithm)
	case opts.splitter.String() != (NoSplit{}).String():
		return nil, fmt.Errorf("%w: splitter %s", ErrInplaceUnsupported, opts.splitter)
	case opts.separator.String() != (AsciiSpace{}).String():
		return nil, fmt.Errorf("%w: separator %s", ErrInplaceUnsupported, opts.separator)
	case opts.breakWords:
		return nil, fmt.Errorf("%w: break-words", ErrInplaceUnsupported)
	case opts.initialIndent != "" || opts.subsequentIndent != "":
		return nil, fmt.Errorf("%w: indent", ErrInplaceUnsupported)
	case opts.lineEnding != LF:
		return nil, fmt.Errorf("%w: line ending %q", ErrInplaceUnsupported, opts.lineEnding.String())
	}
	return FillInplace(buf, opts.widths.At(0)), nil
}

func isBlank(c byte) bool { return c == ' ' || c == '\t' }

func bytesWidth(b []byte) int {
	w := 0
	for len(b) > 0 {
		if c := b[0]; c >= 0x20 && c < utf8.RuneSelf && c != 0x7f {
			w++
			b = b[1:]
			continue
		}
		r, size := utf8.DecodeRune(b)
		w += runewidth.RuneWidth(r)
		b = b[size:]
	}
	return w
}
