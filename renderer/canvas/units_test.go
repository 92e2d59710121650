package canvasrenderer

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度。
func TestPtMmRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 0.001, 1, 12, 14.4, 72, 1000} {
		if back := v * PtToMm * MmToPt; math.Abs(back-v) > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%g back=%g", v, back)
		}
	}
}

func TestParseLength(t *testing.T) {
	cases := []struct {
		in     string
		wantMM float64
	}{
		{"15mm", 15},
		{" 2.54 CM ", 25.4},
		{"1in", 25.4},
		{"72pt", 72 * PtToMm},
		{"8", 8},
		{"", 0},
	}
	for _, tc := range cases {
		l, err := ParseLength(tc.in)
		if err != nil {
			t.Fatalf("ParseLength(%q) 失败: %v", tc.in, err)
		}
		if math.Abs(l.MM()-tc.wantMM) > 1e-9 {
			t.Fatalf("ParseLength(%q).MM() = %g，期望 %g", tc.in, l.MM(), tc.wantMM)
		}
	}
	for _, bad := range []string{"abc", "-3mm", "mm"} {
		if _, err := ParseLength(bad); err == nil {
			t.Fatalf("ParseLength(%q) 期望失败", bad)
		}
	}
	if got := (Length{Value: 10, Unit: UnitPT}).String(); got != "10pt" {
		t.Fatalf("String() = %q", got)
	}
}

// TestLineHeightResolve 覆盖倍数、绝对值与回退三种行距。
func TestLineHeightResolve(t *testing.T) {
	factor, err := ParseLineHeight("1.2x")
	if err != nil {
		t.Fatalf("解析倍数失败: %v", err)
	}
	if got, want := factor.Resolve(12, 99), 12*1.2*PtToMm; math.Abs(got-want) > 1e-9 {
		t.Fatalf("1.2x = %g，期望 %g", got, want)
	}
	abs, err := ParseLineHeight("6mm")
	if err != nil {
		t.Fatalf("解析绝对行距失败: %v", err)
	}
	if got := abs.Resolve(12, 99); got != 6 {
		t.Fatalf("6mm = %g", got)
	}
	var zero LineHeight
	if got := zero.Resolve(12, 4.5); got != 4.5 {
		t.Fatalf("零值应回退到字体行高，得到 %g", got)
	}
	if _, err := ParseLineHeight("0x"); err == nil {
		t.Fatalf("0x 期望失败")
	}
}
