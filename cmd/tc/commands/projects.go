package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewProjectsCommand creates the projects command group
func NewProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage projects",
		Long:  "List projects and their build configurations",
	}

	cmd.AddCommand(newProjectsListCommand())
	cmd.AddCommand(newProjectsGetCommand())
	cmd.AddCommand(newProjectsBuildTypesCommand())

	return cmd
}

func newProjectsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			projects, err := client.Projects().List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list projects: %w", err)
			}

			handled, err := renderStructured(projects)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Name", "Parent", "Archived")

			for _, project := range projects {
				_ = table.Append(
					project.ID,
					orNotAvailable(project.Name),
					orNotAvailable(project.ParentProjectID),
					strconv.FormatBool(project.Archived),
				)
			}

			return table.Render()
		},
	}
}

func newProjectsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PROJECT_ID",
		Short: "Show a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			project, err := client.Projects().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get project: %w", err)
			}

			handled, err := renderStructured(project)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")
			_ = table.Append("ID", project.ID)
			_ = table.Append("Name", orNotAvailable(project.Name))
			_ = table.Append("Description", orNotAvailable(project.Description))
			_ = table.Append("Parent", orNotAvailable(project.ParentProjectID))
			_ = table.Append("Archived", strconv.FormatBool(project.Archived))
			_ = table.Append("Web URL", orNotAvailable(project.WebURL))

			return table.Render()
		},
	}
}

func newProjectsBuildTypesCommand() *cobra.Command {
	var details bool

	cmd := &cobra.Command{
		Use:   "build-types PROJECT_ID",
		Short: "List a project's build configurations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			buildTypes, err := client.Projects().BuildTypes(context.Background(), args[0], details)
			if err != nil {
				return fmt.Errorf("failed to list build configurations: %w", err)
			}

			handled, err := renderStructured(buildTypes)
			if handled {
				return err
			}

			if len(buildTypes) == 0 {
				fmt.Println("No build configurations found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Name", "Paused")

			for _, buildType := range buildTypes {
				_ = table.Append(buildType.ID, orNotAvailable(buildType.Name), strconv.FormatBool(buildType.Paused))
			}

			return table.Render()
		},
	}

	cmd.Flags().BoolVar(&details, "details", false, "fetch the full record of each configuration")

	return cmd
}
