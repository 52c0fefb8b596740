package main

import "github.com/andrescamacho/starfleet-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
