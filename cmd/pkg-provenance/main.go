package main

import "pkg-provenance/internal/cli"

func main() {
	cli.Execute()
}
