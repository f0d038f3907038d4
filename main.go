// ABOUTME: Entry point for the amabakery staff console
// ABOUTME: Command-line tool for running a bakery POS from the terminal

package main

import (
	"fmt"
	"os"

	"github.com/Acrsahil/AmaBakeryPos/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
