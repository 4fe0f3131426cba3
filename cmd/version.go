package cmd

import (
	"fmt"

	"github.com/ledgerscope/txdecoder/internal/version"
	"github.com/spf13/cobra"
)

var runVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and commit of the binary",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("txdecoder %s (commit %s)\n", version.GetVersion(), version.GetCommit())
	},
}
