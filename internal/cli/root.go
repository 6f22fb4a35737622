// Package cli provides the command-line interface for Hibari.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hibari-bot/hibari/internal/cli/commands"
	"github.com/hibari-bot/hibari/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "hibari",
	Short: "Hibari - mirai-api-http client",
	Long: `Hibari connects bot accounts to a mirai-api-http backend.
It keeps one supervised WebSocket session per account, routes API
calls over HTTP or the socket, and dispatches incoming events.`,
	Version: version.Version,
}

func init() {
	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(commands.NewAccountsCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is ~/.hibari/hibari.yaml)")
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
