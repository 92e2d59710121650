// Package lorem 生成确定性的示例文本，用于基准测试与 CLI 的 bench 命令。
package lorem

import (
	"math/rand/v2"
	"strings"
)

var words = strings.Fields(`lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod tempor
incididunt ut labore et dolore magna aliqua enim ad minim veniam quis nostrud exercitation ullamco laboris
nisi aliquip ex ea commodo consequat duis aute irure in reprehenderit voluptate velit esse cillum eu fugiat
nulla pariatur excepteur sint occaecat cupidatat non proident sunt culpa qui officia deserunt mollit anim id
est laborum`)

// DefaultSeed 是 Text 使用的固定种子。
const DefaultSeed = 0x5eed

// Text 返回长度恰为 n 字节的文本（n <= 0 时为空串）。
func Text(n int) string { return Generate(n, DefaultSeed) }

// Generate 使用 seed 生成长度恰为 n 字节、以单个空格分隔的小写单词序列；末尾不会是空格。
func Generate(n int, seed uint64) string {
	if n <= 0 {
		return ""
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	var sb strings.Builder
	sb.Grow(n + 16)
	for sb.Len() < n {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(words[rng.IntN(len(words))])
	}
	s := sb.String()[:n]
	if s[len(s)-1] == ' ' {
		s = s[:len(s)-1] + "x"
	}
	return s
}

// Words 返回 n 个随机单词，主要用于构造测试输入。
func Words(n int, seed uint64) []string {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]string, n)
	for i := range out {
		out[i] = words[rng.IntN(len(words))]
	}
	return out
}
