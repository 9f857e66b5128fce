package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "bakery",
	Short: "Bakery storefront server",
	Long: `Runs the bakery storefront: catalog, signed cookie cart, inquiry
checkout and the staff admin API.

Configuration is read from the environment (COOKIE_SIGNING_SECRET,
DATABASE_URL, PORT, ADMIN_USER, ADMIN_PASS, EMAIL_*).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
