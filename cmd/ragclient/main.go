package main

import "ragclient/internal/cli"

func main() {
	cli.Main()
}
