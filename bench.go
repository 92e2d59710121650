package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/ByLCY/linewrap/config"
	"github.com/ByLCY/linewrap/internal/lorem"
	"github.com/ByLCY/linewrap/layout"
)

var defaultBenchSizes = []int{200, 400, 800, 1600, 3200, 6400}

func benchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "width", Aliases: []string{"w"}, Usage: "目标宽度", Value: 60},
		&cli.IntSliceFlag{Name: "size", Usage: "输入长度（字符数），可重复", Value: cli.NewIntSlice(defaultBenchSizes...)},
		&cli.StringSliceFlag{Name: "algorithm", Aliases: []string{"a"}, Usage: "参与测量的算法", Value: cli.NewStringSlice("first-fit", "optimal-fit")},
		&cli.StringFlag{Name: "separator", Aliases: []string{"s"}, Usage: "ascii-space 或 unicode"},
		&cli.StringFlag{Name: "hyphenate", Usage: "TeX 断字模式文件，测量带拆词的折行"},
		&cli.StringFlag{Name: "lang", Usage: "断字词典的语言标签", Value: "en-US"},
		&cli.BoolFlag{Name: "inplace", Usage: "额外测量原地折行"},
		&cli.IntFlag{Name: "rounds", Usage: "每个长度重复的次数", Value: 50},
		&cli.Uint64Flag{Name: "seed", Usage: "样例文本的随机种子", Value: lorem.DefaultSeed},
	}
}

type benchRow struct {
	variant string
	size    int
	lines   int
	nsPerOp int64
	growth  float64 // 相对上一长度的耗时比，首行为 0
}

// benchCase 是一种被测量的折行方式：run 返回输出的行数。
type benchCase struct {
	name string
	run  func(sample string) int
}

func (a App) bench(c *cli.Context) error {
	if c.NArg() > 0 {
		return fmt.Errorf("bench 不接受参数: %s", strings.Join(c.Args().Slice(), " "))
	}
	width := c.Int("width")
	if width < 1 {
		return fmt.Errorf("宽度必须为正数: %d", width)
	}
	rounds := max(c.Int("rounds"), 1)
	sizes := c.IntSlice("size")
	for _, n := range sizes {
		if n < 0 {
			return fmt.Errorf("输入长度不能为负: %d", n)
		}
	}

	cases, err := benchCases(c, width)
	if err != nil {
		return err
	}
	var rows []benchRow
	for _, bc := range cases {
		rows = append(rows, measure(bc, sizes, rounds, c.Uint64("seed"), a.component("bench"))...)
	}
	fmt.Fprintln(a.outWriter, formatBench(rows, width))
	return nil
}

// benchCases 按命令行组合出各个测量项：每个算法一项，--inplace 再加一项原地折行。
func benchCases(c *cli.Context, width int) ([]benchCase, error) {
	sep, err := config.ParseSeparator(c.String("separator"))
	if err != nil {
		return nil, err
	}
	base := layout.NewOptions(width).WithSeparator(sep)
	if path := c.String("hyphenate"); path != "" {
		dict, err := config.Hyphenation{Patterns: path, Language: c.String("lang")}.Load()
		if err != nil {
			return nil, err
		}
		base = base.WithSplitter(layout.Hyphenation{Dictionary: dict})
	}

	var cases []benchCase
	for _, name := range c.StringSlice("algorithm") {
		algo, err := config.ParseAlgorithm(name)
		if err != nil {
			return nil, err
		}
		opts := base.WithAlgorithm(algo)
		cases = append(cases, benchCase{
			name: strings.Join([]string{algo.String(), sep.String(), opts.Splitter().String()}, "/"),
			run:  func(sample string) int { return len(layout.Wrap(sample, opts)) },
		})
	}
	if c.Bool("inplace") {
		var buf []byte
		cases = append(cases, benchCase{
			name: "fill-inplace",
			run: func(sample string) int {
				buf = append(buf[:0], sample...)
				return strings.Count(string(layout.FillInplace(buf, width)), "\n") + 1
			},
		})
	}
	return cases, nil
}

// measure 对每个长度生成样例文本并计时 rounds 次折行，返回平均耗时。
func measure(bc benchCase, sizes []int, rounds int, seed uint64, log *logrus.Entry) []benchRow {
	rows := make([]benchRow, 0, len(sizes))
	for i, n := range sizes {
		sample := lorem.Generate(n, seed)
		lines := bc.run(sample)
		start := time.Now()
		for range rounds {
			bc.run(sample)
		}
		row := benchRow{
			variant: bc.name,
			size:    n,
			lines:   lines,
			nsPerOp: time.Since(start).Nanoseconds() / int64(rounds),
		}
		if i > 0 && rows[i-1].nsPerOp > 0 {
			row.growth = float64(row.nsPerOp) / float64(rows[i-1].nsPerOp)
		}
		log.WithFields(logrus.Fields{
			"variant": row.variant,
			"size":    n,
			"ns/op":   row.nsPerOp,
		}).Debug("测量完成")
		rows = append(rows, row)
	}
	return rows
}

func formatBench(rows []benchRow, width int) string {
	tbl := table.NewWriter()
	tbl.SetTitle(fmt.Sprintf("width %d", width))
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	tbl.AppendHeader(table.Row{"variant", "chars", "lines", "ns/op", "growth"})
	for _, r := range rows {
		growth := "-"
		if r.growth > 0 {
			growth = fmt.Sprintf("%.2fx", r.growth)
		}
		tbl.AppendRow(table.Row{r.variant, r.size, r.lines, r.nsPerOp, growth})
	}
	tbl.SetStyle(table.StyleLight)
	return tbl.Render()
}
