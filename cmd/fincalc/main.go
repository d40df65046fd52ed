// Command fincalc evaluates financial-calculator functions over JSON tasks.
//
// Each subcommand reads one JSON object or an array of them from --input or
// stdin and writes one result per task to stdout. The exit status is 0 when
// every task succeeded, 1 when any task failed, and 2 on usage errors.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errFailed):
		return 1
	default:
		fmt.Fprintf(stderr, "fincalc: %v\n", err)
		return 2
	}
}
