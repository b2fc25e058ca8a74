// Command matamazon runs a command log against the inventory/order ledger.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/matamazon/internal/cli"
	"github.com/roach88/matamazon/internal/config"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(cli.Main(os.Args[1:], os.Stdout, os.Stderr))
}
