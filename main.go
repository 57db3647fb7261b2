package main

import "github.com/pairsentry/pairsentry/cmd"

func main() {
	cmd.Execute()
}
