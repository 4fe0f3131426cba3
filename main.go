package main

import (
	"github.com/ledgerscope/txdecoder/cmd"
)

func main() {
	cmd.Execute()
}
