package layout

import (
	"fmt"
	"testing"

	"github.com/ByLCY/linewrap/internal/lorem"
)

// 基准覆盖 200 到 6400 个字符、宽度 60；n 翻倍时耗时应大致翻倍。
var benchSizes = []int{200, 400, 800, 1600, 3200, 6400}

const benchWidth = 60

func benchmarkFill(b *testing.B, opts Options) {
	for _, n := range benchSizes {
		text := lorem.Text(n)
		b.Run(fmt.Sprintf("%04d", n), func(b *testing.B) {
			b.SetBytes(int64(n))
			for b.Loop() {
				Fill(text, opts)
			}
		})
	}
}

func BenchmarkFirstFit(b *testing.B) {
	benchmarkFill(b, NewOptions(benchWidth))
}

func BenchmarkOptimalFit(b *testing.B) {
	benchmarkFill(b, NewOptions(benchWidth).WithAlgorithm(OptimalFit{}))
}

func BenchmarkOptimalFitUnicode(b *testing.B) {
	benchmarkFill(b, NewOptions(benchWidth).WithAlgorithm(OptimalFit{}).WithSeparator(UnicodeBreakProperties{}))
}

func BenchmarkFillInplace(b *testing.B) {
	for _, n := range benchSizes {
		text := []byte(lorem.Text(n))
		buf := make([]byte, len(text))
		b.Run(fmt.Sprintf("%04d", n), func(b *testing.B) {
			b.SetBytes(int64(n))
			for b.Loop() {
				copy(buf, text)
				FillInplace(buf, benchWidth)
			}
		})
	}
}
