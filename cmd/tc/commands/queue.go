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

// NewQueueCommand creates the queue command group
func NewQueueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Manage the build queue",
		Long:  "List, trigger, and cancel queued builds",
	}

	cmd.AddCommand(newQueueListCommand())
	cmd.AddCommand(newQueueTriggerCommand())
	cmd.AddCommand(newQueueCancelCommand())

	return cmd
}

func newQueueListCommand() *cobra.Command {
	var buildTypeID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List queued builds",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			builds, err := client.Queue().List(context.Background(), &teamcity.BuildListOptions{
				BuildTypeID: buildTypeID,
			})
			if err != nil {
				return fmt.Errorf("failed to list queued builds: %w", err)
			}

			handled, err := renderStructured(builds)
			if handled {
				return err
			}

			if len(builds) == 0 {
				fmt.Println("Queue is empty")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Build Type", "Branch", "Wait Reason")

			for _, build := range builds {
				_ = table.Append(
					strconv.FormatInt(build.ID, 10),
					orNotAvailable(build.BuildTypeID),
					orNotAvailable(build.BranchName),
					orNotAvailable(build.WaitReason),
				)
			}

			return table.Render()
		},
	}

	cmd.Flags().StringVarP(&buildTypeID, "build-type", "b", "", "build configuration ID")

	return cmd
}

func newQueueTriggerCommand() *cobra.Command {
	var (
		branch   string
		comment  string
		params   map[string]string
		personal bool
	)

	cmd := &cobra.Command{
		Use:   "trigger BUILD_TYPE_ID",
		Short: "Trigger a build",
		Long:  "Add a build of the given configuration to the queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			request := &teamcity.TriggerRequest{
				BuildType:  teamcity.BuildTypeLocator{ID: args[0]},
				BranchName: branch,
				Personal:   personal,
			}

			if comment != "" {
				request.Comment = &teamcity.Comment{Text: comment}
			}

			if len(params) > 0 {
				props := &teamcity.Properties{}
				for name, value := range params {
					props.Properties = append(props.Properties, teamcity.Property{Name: name, Value: value})
				}
				props.Count = len(props.Properties)
				request.Properties = props
			}

			build, err := client.Queue().Trigger(context.Background(), request)
			if err != nil {
				return fmt.Errorf("failed to trigger build: %w", err)
			}

			handled, err := renderStructured(build)
			if handled {
				return err
			}

			fmt.Printf("Queued build %d for %s\n", build.ID, args[0])
			if build.WebURL != "" {
				fmt.Printf("Web URL: %s\n", build.WebURL)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&branch, "branch", "", "branch to build")
	cmd.Flags().StringVar(&comment, "comment", "", "build comment")
	cmd.Flags().StringToStringVar(&params, "param", nil, "build parameters (name=value)")
	cmd.Flags().BoolVar(&personal, "personal", false, "queue as a personal build")

	return cmd
}

func newQueueCancelCommand() *cobra.Command {
	var comment string

	cmd := &cobra.Command{
		Use:   "cancel BUILD_ID",
		Short: "Remove a build from the queue",
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

			build, err := client.Queue().Cancel(context.Background(), buildID, comment)
			if err != nil {
				return fmt.Errorf("failed to cancel queued build: %w", err)
			}

			fmt.Printf("Removed build %d from the queue\n", build.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&comment, "comment", "canceled via tc", "cancellation comment")

	return cmd
}
