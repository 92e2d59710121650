package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestOptionsImmutable 验证 With* 返回副本，原值不受影响。
func TestOptionsImmutable(t *testing.T) {
	base := NewOptions(10)
	widths := []int{5, 6}
	changed := base.WithWidths(widths...).WithAlgorithm(OptimalFit{}).WithBreakWords(true)
	widths[0] = 99

	assert.Equal(t, []int{10}, base.Widths())
	assert.Equal(t, "first-fit", base.Algorithm().String())
	assert.False(t, base.BreakWords())

	assert.Equal(t, []int{5, 6}, changed.Widths())
	assert.Equal(t, "optimal-fit", changed.Algorithm().String())
	assert.True(t, changed.BreakWords())

	got := changed.Widths()
	got[0] = 1
	assert.Equal(t, []int{5, 6}, changed.Widths(), "Widths 返回副本")
}

func TestOptionsZeroValue(t *testing.T) {
	var o Options
	assert.Equal(t, "ascii-space", o.Separator().String())
	assert.Equal(t, "no-split", o.Splitter().String())
	assert.Equal(t, "first-fit", o.Algorithm().String())
	assert.Equal(t, []string{"a", "b"}, Wrap("a b", o))
}

func TestOptionsNilPolicyKeepsDefault(t *testing.T) {
	o := NewOptions(10).WithSeparator(nil).WithSplitter(nil).WithAlgorithm(nil)
	assert.Equal(t, "ascii-space", o.Separator().String())
	assert.Equal(t, "no-split", o.Splitter().String())
	assert.Equal(t, "first-fit", o.Algorithm().String())
}

func TestWidthsAt(t *testing.T) {
	w := Widths{4, 8}
	assert.Equal(t, 4, w.At(0))
	assert.Equal(t, 8, w.At(1))
	assert.Equal(t, 8, w.At(7), "超出长度时重复最后一个值")
	assert.Equal(t, 1, Widths{0, -3}.At(1), "小于 1 的宽度按 1 处理")
	assert.Equal(t, 1, Widths(nil).At(3))
	assert.Equal(t, 4, Widths{9, 4, 6}.Min())
}

func TestLineWidthsSubtractIndent(t *testing.T) {
	o := NewOptions(10).WithInitialIndent("> ").WithSubsequentIndent("    ")
	assert.Equal(t, Widths{8, 6}, o.lineWidths(0))
	assert.Equal(t, Widths{6, 6}, o.lineWidths(1), "后续段落首行使用后续缩进")
	assert.Equal(t, Widths{10}, NewOptions(10).lineWidths(3))
}
