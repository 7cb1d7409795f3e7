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

// NewBuildsCommand creates the builds command group
func NewBuildsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "builds",
		Short: "Manage builds",
		Long:  "List, inspect, and cancel builds",
	}

	cmd.AddCommand(newBuildsListCommand())
	cmd.AddCommand(newBuildsGetCommand())
	cmd.AddCommand(newBuildsLatestCommand())
	cmd.AddCommand(newBuildsLogCommand())
	cmd.AddCommand(newBuildsParamsCommand())
	cmd.AddCommand(newBuildsArtifactsCommand())
	cmd.AddCommand(newBuildsCancelCommand())

	return cmd
}

func newBuildsListCommand() *cobra.Command {
	var (
		buildTypeID string
		count       int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List builds",
		Long:  "List recent builds, optionally filtered by build configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			builds, err := client.Builds().List(context.Background(), &teamcity.BuildListOptions{
				BuildTypeID: buildTypeID,
				Count:       count,
			})
			if err != nil {
				return fmt.Errorf("failed to list builds: %w", err)
			}

			handled, err := renderStructured(builds)
			if handled {
				return err
			}

			return renderBuildTable(builds)
		},
	}

	cmd.Flags().StringVarP(&buildTypeID, "build-type", "b", "", "build configuration ID")
	cmd.Flags().IntVarP(&count, "count", "n", 50, "maximum number of builds")

	return cmd
}

func newBuildsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get BUILD_ID",
		Short: "Show a build",
		Long:  "Show the full record of a single build",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buildID, err := parseBuildID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			build, err := client.Builds().Get(context.Background(), buildID)
			if err != nil {
				return fmt.Errorf("failed to get build: %w", err)
			}

			handled, err := renderStructured(build)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")
			_ = table.Append("ID", strconv.FormatInt(build.ID, 10))
			_ = table.Append("Number", orNotAvailable(build.Number))
			_ = table.Append("Build Type", orNotAvailable(build.BuildTypeID))
			_ = table.Append("Status", orNotAvailable(build.Status))
			_ = table.Append("State", orNotAvailable(build.State))
			_ = table.Append("Branch", orNotAvailable(build.BranchName))
			_ = table.Append("Status Text", orNotAvailable(build.StatusText))
			_ = table.Append("Started", orNotAvailable(build.StartDate))
			_ = table.Append("Finished", orNotAvailable(build.FinishDate))

			return table.Render()
		},
	}
}

func newBuildsLatestCommand() *cobra.Command {
	var successful bool

	cmd := &cobra.Command{
		Use:   "latest BUILD_TYPE_ID",
		Short: "Show the latest build of a configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			build, err := client.Builds().Latest(context.Background(), args[0], successful)
			if err != nil {
				return fmt.Errorf("failed to get latest build: %w", err)
			}

			handled, err := renderStructured(build)
			if handled {
				return err
			}

			fmt.Printf("Build #%s (id %d): %s\n", build.Number, build.ID, build.Status)

			return nil
		},
	}

	cmd.Flags().BoolVar(&successful, "successful", false, "only consider successful builds")

	return cmd
}

func newBuildsLogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "log BUILD_ID",
		Short: "Print a build's log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buildID, err := parseBuildID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			log, err := client.Builds().Log(context.Background(), buildID)
			if err != nil {
				return fmt.Errorf("failed to download build log: %w", err)
			}

			fmt.Print(log)

			return nil
		},
	}
}

func newBuildsParamsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "params BUILD_ID",
		Short: "List a build's resulting parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buildID, err := parseBuildID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			props, err := client.Builds().ActualParameters(context.Background(), buildID)
			if err != nil {
				return fmt.Errorf("failed to list build parameters: %w", err)
			}

			handled, err := renderStructured(props)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Name", "Value")

			for _, prop := range props.Properties {
				_ = table.Append(prop.Name, prop.Value)
			}

			return table.Render()
		},
	}
}

func newBuildsArtifactsCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "artifacts BUILD_ID",
		Short: "List a build's artifacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buildID, err := parseBuildID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			files, err := client.Artifacts().List(context.Background(), buildID, path)
			if err != nil {
				return fmt.Errorf("failed to list artifacts: %w", err)
			}

			handled, err := renderStructured(files)
			if handled {
				return err
			}

			if len(files) == 0 {
				fmt.Println("No artifacts found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Name", "Size")

			for _, file := range files {
				_ = table.Append(file.Name, strconv.FormatInt(file.Size, 10))
			}

			return table.Render()
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "artifact subdirectory")

	return cmd
}

func newBuildsCancelCommand() *cobra.Command {
	var (
		comment string
		requeue bool
	)

	cmd := &cobra.Command{
		Use:   "cancel BUILD_ID",
		Short: "Cancel a running build",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buildID, err := parseBuildID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			build, err := client.Builds().Cancel(context.Background(), buildID, comment, requeue)
			if err != nil {
				return fmt.Errorf("failed to cancel build: %w", err)
			}

			fmt.Printf("Canceled build %d\n", build.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&comment, "comment", "canceled via tc", "cancellation comment")
	cmd.Flags().BoolVar(&requeue, "requeue", false, "re-add the build into the queue")

	return cmd
}

func renderBuildTable(builds []teamcity.Build) error {
	if len(builds) == 0 {
		fmt.Println("No builds found")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Number", "Build Type", "Status", "State", "Branch")

	for _, build := range builds {
		_ = table.Append(
			strconv.FormatInt(build.ID, 10),
			orNotAvailable(build.Number),
			orNotAvailable(build.BuildTypeID),
			orNotAvailable(build.Status),
			orNotAvailable(build.State),
			orNotAvailable(build.BranchName),
		)
	}

	return table.Render()
}

func parseBuildID(arg string) (int64, error) {
	buildID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid build ID %q: %w", arg, err)
	}

	return buildID, nil
}
