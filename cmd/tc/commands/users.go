package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/teamcity-go/teamcity-client/pkg/teamcity"
)

// NewUsersCommand creates the users command group
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage server users",
	}

	cmd.AddCommand(newUsersListCommand())
	cmd.AddCommand(newUsersGetCommand())

	return cmd
}

func newUsersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			users, err := client.Users().List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			handled, err := renderStructured(users)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Username", "Name", "Email")

			for _, user := range users {
				_ = table.Append(
					strconv.FormatInt(user.ID, 10),
					orNotAvailable(user.Username),
					orNotAvailable(user.Name),
					orNotAvailable(user.Email),
				)
			}

			return table.Render()
		},
	}
}

func newUsersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get [USERNAME]",
		Short: "Show a user",
		Long:  "Show a user by username, or the current user when no username is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			username := ""
			if len(args) > 0 {
				username = args[0]
			}

			user, err := client.Users().Get(context.Background(), username)
			if err != nil {
				return fmt.Errorf("failed to get user: %w", err)
			}

			handled, err := renderStructured(user)
			if handled {
				return err
			}

			return renderUserTable(user)
		},
	}
}

func renderUserTable(user *teamcity.User) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")
	_ = table.Append("ID", strconv.FormatInt(user.ID, 10))
	_ = table.Append("Username", orNotAvailable(user.Username))
	_ = table.Append("Name", orNotAvailable(user.Name))
	_ = table.Append("Email", orNotAvailable(user.Email))
	_ = table.Append("Last Login", orNotAvailable(user.LastLogin))

	return table.Render()
}
