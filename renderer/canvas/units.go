package canvasrenderer

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit 是校样尺寸的书写单位。
type Unit int

const (
	UnitNone Unit = iota // 无单位，按 mm 解释
	UnitMM
	UnitCM
	UnitIN
	UnitPT
)

// pt 与 mm 的换算系数。
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

func (u Unit) String() string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	}
	return ""
}

// Length 保留数值与原始单位，如 "15mm"、"10pt"。
type Length struct {
	Value float64
	Unit  Unit
}

// MM 返回以毫米表示的长度；无单位视为毫米。
func (l Length) MM() float64 {
	switch l.Unit {
	case UnitCM:
		return l.Value * 10
	case UnitIN:
		return l.Value * 25.4
	case UnitPT:
		return l.Value * PtToMm
	}
	return l.Value
}

// PT 返回以磅表示的长度。
func (l Length) PT() float64 {
	if l.Unit == UnitPT {
		return l.Value
	}
	return l.MM() * MmToPt
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'g', -1, 64) + l.Unit.String()
}

var unitSuffixes = []struct {
	s string
	u Unit
}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}}

// ParseLength 解析带单位的长度。空串返回零值；负数与无法解析的数值返回错误。
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, nil
	}
	unit, num := UnitNone, v
	for _, suf := range unitSuffixes {
		if rest, ok := strings.CutSuffix(v, suf.s); ok {
			unit, num = suf.u, strings.TrimSpace(rest)
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("无效的长度 %q: %w", value, err)
	}
	if f < 0 {
		return Length{}, fmt.Errorf("长度不能为负: %q", value)
	}
	return Length{Value: f, Unit: unit}, nil
}

// LineHeight 是行距：字号的倍数（"1.2x"）或绝对长度（"14pt"）。零值使用字体自身的行高。
type LineHeight struct {
	Factor float64
	Len    Length
}

// ParseLineHeight 解析 "1.2x" 形式的倍数或带单位的绝对长度。
func ParseLineHeight(value string) (LineHeight, error) {
	v := strings.TrimSpace(value)
	if rest, ok := strings.CutSuffix(strings.ToLower(v), "x"); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
		if err != nil || f <= 0 {
			return LineHeight{}, fmt.Errorf("无效的行距倍数 %q", value)
		}
		return LineHeight{Factor: f}, nil
	}
	l, err := ParseLength(v)
	if err != nil {
		return LineHeight{}, err
	}
	return LineHeight{Len: l}, nil
}

// Resolve 以字号（pt）计算行距（mm）；fallback 是字体度量给出的行高。
func (h LineHeight) Resolve(fontSizePT, fallback float64) float64 {
	switch {
	case h.Factor > 0:
		return fontSizePT * h.Factor * PtToMm
	case h.Len.Value > 0:
		return h.Len.MM()
	}
	return fallback
}
