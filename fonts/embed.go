package fonts

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-fonts/latin-modern/lmmono10regular"
)

// MonoName 是内置等宽字体的名字，可写为 "embed:lmmono10-regular"。
const MonoName = "lmmono10-regular"

// Mono 返回内置的 Latin Modern Mono 10 Regular 字体数据。
// 折行以等宽列计宽，校样必须使用等宽字体才能与列数对齐。
func Mono() []byte { return lmmono10regular.TTF }

// Load 返回字体数据：src 为空或为 "embed:lmmono10-regular" 时返回内置字体，否则按文件路径读取。
func Load(src string) ([]byte, error) {
	name, embedded := strings.CutPrefix(src, "embed:")
	switch {
	case src == "" || (embedded && name == MonoName):
		return Mono(), nil
	case embedded:
		return nil, fmt.Errorf("未知的内置字体 %s", name)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", src, err)
	}
	return data, nil
}
