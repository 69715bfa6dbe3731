// Command partslink is the terminal client for the PartsLink field CRM.
package main

import (
	"fmt"
	"os"

	"github.com/chiruit2077/partslink/cmd/partslink/cli"
)

func main() {
	app, err := cli.BuildApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "partslink:", err)
		os.Exit(1)
	}
	if err := cli.NewRootCommand(app).Execute(); err != nil {
		os.Exit(1)
	}
}
