package main

import "github.com/hsupple6/CircuitWiz-sub002/cmd/circuitwiz/cmd"

func main() {
	cmd.Execute()
}
