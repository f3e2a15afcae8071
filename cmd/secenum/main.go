package main

import "github.com/harvexz/secenum/pkg/cli"

func main() {
	cli.Execute()
}
