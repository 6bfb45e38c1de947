package main

import (
	"github.com/plexforge/kometa-studio/pkg/cli/cmd"
)

func main() {
	cmd.Execute()
}
