package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the scholar-directory version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("scholar-directory %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
