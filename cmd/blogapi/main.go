// Command blogapi runs the blog REST API and its maintenance tasks.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "blogapi",
	Short:         "Blog REST API: signup, login and post management",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "blogapi: %v\n", err)
		os.Exit(1)
	}
}
