// Package main provides the entry point for the stack CLI.
//
// stack searches Stack Exchange sites from the terminal and pages through
// questions and their answers with single key presses.
//
// Usage:
//
//	stack                       interactive shell
//	stack search <query> -t go  one search, then exit
//	stack open <question-id>
//
// See --help for all available options.
package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/glabrego/stack-cli/internal/config"
	"github.com/glabrego/stack-cli/internal/style"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			resetStyling()
			rule := strings.Repeat("~", 80)
			fmt.Fprintf(os.Stderr, "\n\nstack: an unexpected error occurred\n\n%s\n%v\n\n%s%s\n", rule, r, debug.Stack(), rule)
			os.Exit(1)
		}
	}()
	os.Exit(Execute())
}

// resetStyling leaves the terminal with default attributes.
func resetStyling() {
	fmt.Fprint(os.Stdout, style.New(config.ColorAuto, os.Stdout).Reset())
}
