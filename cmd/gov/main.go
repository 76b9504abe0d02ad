package main

import (
	"oceandao.io/gov/cmd/gov/cmd"
)

func main() {
	cmd.Execute()
}
