package main

import "github.com/yhkl-dev/EaseCLI/cmd"

func main() {
	cmd.Execute()
}
