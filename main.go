package main

import "github.com/devcompass/compass-cli/cmd"

func main() {
	cmd.Execute()
}
