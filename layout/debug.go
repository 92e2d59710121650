package layout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// EncodeDebugJSON 将折行结果（段落、片段、行跨度与宽度）以缩进 JSON 写入 w。
func EncodeDebugJSON(w io.Writer, res *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(res)
}

// WriteDebugJSON 将折行结果输出到 path，便于调试或可视化断点选择。
func WriteDebugJSON(res *Result, path string) error {
	if res == nil {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create debug json: %w", err)
	}
	if err := EncodeDebugJSON(f, res); err != nil {
		f.Close()
		return fmt.Errorf("encode debug json: %w", err)
	}
	return f.Close()
}
