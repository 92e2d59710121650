package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errw bytes.Buffer
	err := run(append([]string{appName}, args...), strings.NewReader(stdin), &out, &errw)
	return out.String(), errw.String(), err
}

func TestFillStdin(t *testing.T) {
	cases := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			name:  "first fit",
			stdin: "Memory safety without garbage collection.",
			args:  []string{"fill", "-w", "15"},
			want:  "Memory safety\nwithout garbage\ncollection.",
		},
		{
			name:  "optimal fit",
			stdin: "aaa bb cc ddddd",
			args:  []string{"fill", "-w", "6", "-a", "optimal-fit"},
			want:  "aaa\nbb cc\nddddd",
		},
		{
			name:  "indent and crlf",
			stdin: "one two three",
			args:  []string{"fill", "-w", "7", "--initial-indent", "* ", "--subsequent-indent", "  ", "--crlf"},
			want:  "* one\r\n  two\r\n  three",
		},
		{
			name:  "inplace",
			stdin: "aaa bbb ccc\n",
			args:  []string{"fill", "-w", "7", "--inplace"},
			want:  "aaa bbb\nccc\n",
		},
		{
			name:  "empty",
			stdin: "",
			args:  []string{"fill"},
			want:  "",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, _, err := runCLI(t, tc.stdin, tc.args...)
			if err != nil {
				t.Fatalf("fill 失败: %v", err)
			}
			if out != tc.want {
				t.Fatalf("输出 = %q，期望 %q", out, tc.want)
			}
		})
	}
}

func TestFillHyphenate(t *testing.T) {
	out, _, err := runCLI(t, "table", "fill", "-w", "4", "--hyphenate", filepath.Join("hyphen", "testdata", "sample.tex"), "--lang", "en")
	require.NoError(t, err)
	assert.Equal(t, "ta-\nble", out)
}

func TestFillFilesAndArtifacts(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(in, []byte("the quick brown fox jumps over the lazy dog"), 0o644))
	cfgPath := filepath.Join(dir, "linewrap.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("widths = [40]\nalgorithm = \"optimal-fit\"\n"), 0o644))

	outPath := filepath.Join(dir, "out", "wrapped.txt")
	pdfPath := filepath.Join(dir, "out", "proof.pdf")
	debugPath := filepath.Join(dir, "out", "layout.json")
	_, logs, err := runCLI(t, "", "-v", "fill", "-c", cfgPath, "-w", "12",
		"-o", outPath, "--pdf", pdfPath, "--debug", debugPath, in)
	require.NoError(t, err)

	wrapped, err := os.ReadFile(outPath)
	require.NoError(t, err)
	for _, line := range strings.Split(string(wrapped), "\n") {
		assert.LessOrEqual(t, len(line), 12, "line %q", line)
	}

	pdf, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "not a PDF")

	debug, err := os.ReadFile(debugPath)
	require.NoError(t, err)
	assert.Contains(t, string(debug), `"optimal-fit"`)
	assert.Contains(t, logs, "component=fill")
}

func TestFillErrors(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{name: "unknown algorithm", args: []string{"fill", "-a", "knuth"}},
		{name: "unknown separator", args: []string{"fill", "-s", "tabs"}},
		{name: "missing input", args: []string{"fill", filepath.Join(t.TempDir(), "nope.txt")}},
		{name: "missing config", args: []string{"fill", "-c", filepath.Join(t.TempDir(), "nope.toml")}},
		{name: "inplace with schedule", args: []string{"fill", "--inplace", "-w", "5", "-w", "7"}},
		{name: "too many inputs", args: []string{"fill", "a", "b"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := runCLI(t, "some text", tc.args...); err == nil {
				t.Fatalf("期望 %v 返回错误", tc.args)
			}
		})
	}
}

func TestBench(t *testing.T) {
	out, _, err := runCLI(t, "", "bench", "--size", "100", "--size", "200", "--rounds", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "ns/op")
	assert.Contains(t, out, "first-fit")
	assert.Contains(t, out, "optimal-fit")
	assert.Contains(t, out, "width 60")

	for _, args := range [][]string{
		{"bench", "-a", "knuth"},
		{"bench", "-s", "tabs"},
		{"bench", "--hyphenate", filepath.Join(t.TempDir(), "missing.tex")},
	} {
		_, _, err = runCLI(t, "", args...)
		assert.Error(t, err, "%v", args)
	}
}

func TestBenchVariants(t *testing.T) {
	out, _, err := runCLI(t, "", "bench", "--size", "300", "--rounds", "1",
		"-a", "optimal-fit", "-s", "unicode",
		"--hyphenate", filepath.Join("hyphen", "testdata", "sample.pat.txt"), "--lang", "en",
		"--inplace")
	require.NoError(t, err)
	assert.Contains(t, out, "optimal-fit/unicode-break-properties/hyphenation")
	assert.Contains(t, out, "fill-inplace")
	assert.NotContains(t, out, "first-fit/")
}
