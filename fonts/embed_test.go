package fonts

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbedded(t *testing.T) {
	for _, src := range []string{"", "embed:" + MonoName} {
		data, err := Load(src)
		if err != nil {
			t.Fatalf("Load(%q) 失败: %v", src, err)
		}
		if len(data) == 0 || !bytes.Equal(data, Mono()) {
			t.Fatalf("Load(%q) 应返回内置字体", src)
		}
	}
	if _, err := Load("embed:missing"); err == nil {
		t.Fatalf("未知内置字体应报错")
	}
}

func TestLoadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "font.ttf")
	if err := os.WriteFile(path, []byte("fake"), 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := Load(path)
	if err != nil || string(data) != "fake" {
		t.Fatalf("按路径读取失败: %q %v", data, err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "nope.ttf")); err == nil {
		t.Fatalf("缺失文件应报错")
	}
}
