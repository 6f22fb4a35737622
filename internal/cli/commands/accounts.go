package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/hibari-bot/hibari/internal/config"
)

// NewAccountsCommand creates the accounts subcommand.
func NewAccountsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "accounts",
		Short:   "List configured accounts",
		Example: "  hibari accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			applyConfigFlag(cmd)
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			// Table Output
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Account", "Backend", "Transport"})
			table.SetBorder(false)
			table.SetAutoWrapText(false)

			for _, acc := range cfg.Accounts {
				info := cfg.ClientInfo(acc)
				transport := "http+ws"
				if info.OnlyWS {
					transport = "ws"
				}
				table.Append([]string{
					fmt.Sprintf("%d", info.Account),
					fmt.Sprintf("%s:%d", info.Host, info.Port),
					transport,
				})
			}
			table.Render()
			return nil
		},
	}
}
