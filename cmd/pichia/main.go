package main

import (
	"os"

	"github.com/liserjrqlxue/pichia/cmd/pichia/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
