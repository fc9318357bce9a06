package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pratik-mahalle/freelancehub/pkg/client"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(newProjectListCmd())
	cmd.AddCommand(newProjectCreateCmd())

	return cmd
}

func newProjectListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := apiClient.Projects().List(context.Background(), &client.ListOptions{Status: status})
			if err != nil {
				return fmt.Errorf("failed to list projects: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(projects)
			}

			t := NewTable("ID", "NAME", "STATUS", "END", "BUDGET")
			for _, p := range projects {
				t.AddRow(p.ID, truncate(p.Name, 40), formatStatus(p.Status), p.EndDate, p.Budget)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (comma separated)")

	return cmd
}

func newProjectCreateCmd() *cobra.Command {
	var req client.CreateProjectRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Name == "" {
				req.Name = promptInput("Name: ")
			}

			created, err := apiClient.Projects().Create(context.Background(), req)
			if err != nil {
				return explainPlanLimit(fmt.Errorf("failed to create project: %w", err))
			}

			if getOutputFormat() != "table" {
				return printOutput(created)
			}
			fmt.Printf("Created project %s (%s)\n", created.Name, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "project name")
	cmd.Flags().StringVar(&req.ClientID, "client", "", "client id")
	cmd.Flags().StringVar(&req.StartDate, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.EndDate, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.Budget, "budget", "", "budget amount")

	return cmd
}
