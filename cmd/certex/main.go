package main

import (
	"github.com/langcert/certex/cmd/certex/cmd"
)

func main() {
	cmd.Execute()
}
