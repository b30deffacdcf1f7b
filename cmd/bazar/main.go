package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "bazar",
		Short:         "Bazar dot com shop backend",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(makeAdminCmd())
	rootCmd.AddCommand(issueTokenCmd())
	rootCmd.AddCommand(reconcilePaymentsCmd())
	rootCmd.AddCommand(reindexProductsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
