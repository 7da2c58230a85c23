package main

import (
	"os"

	"github.com/froggen/ascii-frog/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(cli.Execute(version))
}
