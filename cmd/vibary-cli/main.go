package main

import "vibary/cmd/vibary-cli/cmd"

func main() {
	cmd.Execute()
}
