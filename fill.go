package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/ByLCY/linewrap/config"
	"github.com/ByLCY/linewrap/layout"
	canvasrenderer "github.com/ByLCY/linewrap/renderer/canvas"
)

func fillFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "TOML 配置文件"},
		&cli.IntSliceFlag{Name: "width", Aliases: []string{"w"}, Usage: "逐行目标宽度，可重复；最后一个值用于其余行"},
		&cli.StringFlag{Name: "algorithm", Aliases: []string{"a"}, Usage: "first-fit 或 optimal-fit"},
		&cli.StringFlag{Name: "separator", Aliases: []string{"s"}, Usage: "ascii-space 或 unicode"},
		&cli.StringFlag{Name: "hyphenate", Usage: "TeX 断字模式文件，启用拆词"},
		&cli.StringFlag{Name: "lang", Usage: "断字词典的语言标签", Value: "en-US"},
		&cli.BoolFlag{Name: "break-words", Usage: "无断点时按字素簇截断过宽单词"},
		&cli.StringFlag{Name: "initial-indent", Usage: "首行前缀"},
		&cli.StringFlag{Name: "subsequent-indent", Usage: "其余行前缀"},
		&cli.BoolFlag{Name: "crlf", Usage: "使用 \\r\\n 作为换行符"},
		&cli.BoolFlag{Name: "inplace", Usage: "在输入缓冲区上原地折行（仅支持单一宽度的默认配置）"},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "输出文件，默认标准输出"},
		&cli.StringFlag{Name: "pdf", Usage: "额外输出 PDF 校样"},
		&cli.StringFlag{Name: "font", Usage: "PDF 校样字体文件，默认内置等宽字体"},
		&cli.StringFlag{Name: "debug", Usage: "布局调试 JSON 输出路径"},
	}
}

func (a App) fill(c *cli.Context) error {
	if c.NArg() > 1 {
		return fmt.Errorf("最多只能指定一个输入文件: %s", strings.Join(c.Args().Slice(), " "))
	}
	log := a.component("fill")

	cfg, err := a.loadConfig(c)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return fmt.Errorf("配置无效: %w", err)
	}
	log.WithFields(logrus.Fields{
		"widths":    opts.Widths(),
		"algorithm": opts.Algorithm(),
		"separator": opts.Separator(),
		"splitter":  opts.Splitter(),
	}).Debug("折行配置")

	input := c.Args().First()
	data, err := a.readInput(input)
	if err != nil {
		return err
	}
	text := string(data)

	var output []byte
	if c.Bool("inplace") {
		output, err = layout.FillInplaceOptions(data, opts)
		if err != nil {
			return err
		}
	} else {
		output = []byte(layout.Fill(text, opts))
	}
	if err := a.writeOutput(c.String("output"), output); err != nil {
		return err
	}

	if c.String("pdf") == "" && c.String("debug") == "" {
		return nil
	}
	// 原地折行会改写 data，校样基于读入时保留的副本。
	result := layout.Layout(text, opts)
	log.WithField("lines", len(result.Lines())).Debug("布局完成")

	if path := c.String("debug"); path != "" {
		if err := writeDebug(result, path); err != nil {
			return err
		}
		log.WithField("path", path).Info("已输出调试 JSON")
	}
	if path := c.String("pdf"); path != "" {
		proof, err := cfg.Proof.RendererOptions()
		if err != nil {
			return fmt.Errorf("校样配置无效: %w", err)
		}
		if proof.Title == "" && input != "" && input != "-" {
			proof.Title = filepath.Base(input)
		}
		pdfBytes, err := canvasrenderer.NewRenderer(proof).Render(result)
		if err != nil {
			return fmt.Errorf("渲染 PDF 失败: %w", err)
		}
		if err := writeFile(path, pdfBytes); err != nil {
			return err
		}
		log.WithField("path", path).Info("已生成 PDF")
	}
	return nil
}

// loadConfig 读取配置文件（若有），再用命令行参数覆盖。
func (a App) loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
		a.component("config").WithField("path", path).Debug("已加载配置")
	}
	if c.IsSet("width") {
		cfg.Widths = c.IntSlice("width")
	}
	if c.IsSet("algorithm") {
		cfg.Algorithm = c.String("algorithm")
	}
	if c.IsSet("separator") {
		cfg.Separator = c.String("separator")
	}
	if c.IsSet("hyphenate") {
		cfg.Hyphenation.Patterns = c.String("hyphenate")
	}
	if c.IsSet("lang") {
		cfg.Hyphenation.Language = c.String("lang")
	}
	if c.IsSet("break-words") {
		cfg.BreakWords = c.Bool("break-words")
	}
	if c.IsSet("initial-indent") {
		cfg.InitialIndent = c.String("initial-indent")
	}
	if c.IsSet("subsequent-indent") {
		cfg.SubsequentIndent = c.String("subsequent-indent")
	}
	if c.IsSet("font") {
		cfg.Proof.Font = c.String("font")
	}
	if c.IsSet("crlf") && c.Bool("crlf") {
		cfg.LineEnding = "crlf"
	}
	return cfg, nil
}

func (a App) readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(a.in)
		if err != nil {
			return nil, fmt.Errorf("读取标准输入失败: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取输入文件 %s: %w", path, err)
	}
	return data, nil
}

func (a App) writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := a.outWriter.Write(data)
		return err
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入文件 %s 失败: %w", path, err)
	}
	return nil
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
