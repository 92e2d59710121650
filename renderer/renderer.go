package renderer

import "github.com/ByLCY/linewrap/layout"

// Renderer 把折行结果画成可以对照检查的校样。
// 实现应当逐行体现 TextLine 的目标宽度与溢出标记，使断行是否合理一目了然；
// 返回值是完整的输出文件内容，例如 PDF 字节。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}
