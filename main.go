package main

import "github.com/rooftally/rooftally/cmd"

func main() {
	cmd.Execute()
}
