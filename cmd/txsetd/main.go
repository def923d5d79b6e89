package main

import "github.com/catena-ledger/txsetd/internal/cli"

func main() {
	cli.Execute()
}
