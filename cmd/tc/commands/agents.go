package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewAgentsCommand creates the agents command group
func NewAgentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agents",
		Short: "Manage build agents",
	}

	cmd.AddCommand(newAgentsListCommand())
	cmd.AddCommand(newAgentsGetCommand())

	return cmd
}

func newAgentsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List build agents",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			agents, err := client.Agents().List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list agents: %w", err)
			}

			handled, err := renderStructured(agents)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Name", "Connected", "Enabled", "Authorized")

			for _, agent := range agents {
				_ = table.Append(
					strconv.FormatInt(agent.ID, 10),
					orNotAvailable(agent.Name),
					strconv.FormatBool(agent.Connected),
					strconv.FormatBool(agent.Enabled),
					strconv.FormatBool(agent.Authorized),
				)
			}

			return table.Render()
		},
	}
}

func newAgentsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get AGENT_ID",
		Short: "Show a build agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			agentID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid agent ID %q: %w", args[0], err)
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			agent, err := client.Agents().Get(context.Background(), agentID)
			if err != nil {
				return fmt.Errorf("failed to get agent: %w", err)
			}

			handled, err := renderStructured(agent)
			if handled {
				return err
			}

			pool := NotAvailable
			if agent.Pool != nil {
				pool = agent.Pool.Name
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")
			_ = table.Append("ID", strconv.FormatInt(agent.ID, 10))
			_ = table.Append("Name", orNotAvailable(agent.Name))
			_ = table.Append("Connected", strconv.FormatBool(agent.Connected))
			_ = table.Append("Enabled", strconv.FormatBool(agent.Enabled))
			_ = table.Append("Authorized", strconv.FormatBool(agent.Authorized))
			_ = table.Append("Pool", pool)

			return table.Render()
		},
	}
}
