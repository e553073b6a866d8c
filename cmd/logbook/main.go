package main

import (
	"github.com/Station-Manager/logbook/cmd/logbook/cmd"
)

func main() {
	cmd.Execute()
}
