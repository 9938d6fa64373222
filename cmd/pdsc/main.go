package main

import "github.com/OpenTraceLab/OpenTracePack/cmd/pdsc/cmd"

func main() {
	cmd.Execute()
}
