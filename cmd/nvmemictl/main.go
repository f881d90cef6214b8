package main

import (
	"github.com/pmarks/mctp/pkg/commands"
)

func main() {
	commands.Execute()
}
