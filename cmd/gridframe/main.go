// Command gridframe flattens the tables of a spreadsheet into one record set.
package main

import (
	"os"

	"github.com/tsawler/gridframe/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
