package main

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const appName = "linewrap"

type App struct {
	in        io.Reader
	outWriter io.Writer
	errWriter io.Writer
	log       *logrus.Logger
}

func newApp(in io.Reader, outWriter, errWriter io.Writer) App {
	l := logrus.New()
	l.SetOutput(errWriter)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return App{
		in:        in,
		outWriter: outWriter,
		errWriter: errWriter,
		log:       l,
	}
}

func (a App) Run(args []string) error {
	cliApp := &cli.App{
		Name:      appName,
		Usage:     "把文本折成固定或逐行变化的宽度",
		Writer:    a.outWriter,
		ErrWriter: a.errWriter,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "输出调试日志",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				a.log.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "fill",
				Usage:     "折行输入文本（默认读取标准输入）",
				ArgsUsage: "[file]",
				Flags:     fillFlags(),
				Action:    a.fill,
			},
			{
				Name:   "bench",
				Usage:  "测量两种算法随输入长度的耗时",
				Flags:  benchFlags(),
				Action: a.bench,
			},
		},
		HideHelpCommand: true,
		ExitErrHandler:  func(*cli.Context, error) {},
	}
	return cliApp.Run(args)
}

// component 返回带组件字段的日志条目。
func (a App) component(name string) *logrus.Entry {
	return logrus.NewEntry(a.log).WithField("component", name)
}
