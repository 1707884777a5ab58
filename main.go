package main

import "github.com/grovevcs/grove/cli"

func main() {
	cli.Execute()
}
