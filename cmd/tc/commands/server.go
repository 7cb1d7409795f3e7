package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewServerCommand creates the server command
func NewServerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Display server information",
		Long:  "Display version and status information about the TeamCity server",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			info, err := client.Server().Info(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get server info: %w", err)
			}

			handled, err := renderStructured(info)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")
			_ = table.Append("Version", orNotAvailable(info.Version))
			_ = table.Append("Build", orNotAvailable(info.BuildNumber))
			_ = table.Append("Started", orNotAvailable(info.StartTime))
			_ = table.Append("Current Time", orNotAvailable(info.CurrentTime))
			_ = table.Append("Web URL", orNotAvailable(info.WebURL))

			return table.Render()
		},
	}
}
