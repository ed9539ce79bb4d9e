package main

import "github.com/moneta-cli/moneta/cmd"

func main() {
	cmd.Execute()
}
