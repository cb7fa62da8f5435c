package main

import (
	"os"

	"github.com/julesjewels-ai/chronolog-memory-augmentation/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
