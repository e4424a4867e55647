package main

import "github.com/examklar/examklar/internal/cli"

func main() {
	cli.Run()
}
