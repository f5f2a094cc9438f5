package main

import (
	"github.com/livp123/mongolog/cmd/mongolog/commands"
)

func main() {
	commands.Execute()
}
