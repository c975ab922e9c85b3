package main

import "github.com/OpenTraceLab/xc2netlist/cmd/xc2netlist/cmd"

func main() {
	cmd.Execute()
}
