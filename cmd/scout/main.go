package main

import (
	"os"

	"github.com/scoutapm/scout-cli/internal/cli"
)

func main() {
	os.Exit(cli.Main())
}
