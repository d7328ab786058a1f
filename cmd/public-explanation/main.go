package main

import (
	"os"

	"github.com/sstitle/public-explanation/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
