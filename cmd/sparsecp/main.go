package main

import (
	"github.com/sparsetools/sparsecp/cmd/sparsecp/cmd"
)

func main() {
	cmd.Execute(cmd.InitializeCommands())
}
