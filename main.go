package main

import (
	"fmt"
	"io"
	"os"
)

var osExiter = os.Exit

func main() {
	if err := run(os.Args, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		osExiter(1)
	}
}

// run 串联命令行解析与各子命令，便于测试注入输入输出。
func run(args []string, in io.Reader, out, errWriter io.Writer) error {
	return newApp(in, out, errWriter).Run(args)
}
