package main

import (
	"github.com/veritas-labs/itemforge-cli/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
