package cmd

import (
	"fmt"
	"os"

	gntraits "github.com/gnames/gntraits/pkg"
	"github.com/spf13/cobra"
)

type funcFlag func(cmd *cobra.Command)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", gntraits.Version, gntraits.Build)
		os.Exit(0)
	}
}
