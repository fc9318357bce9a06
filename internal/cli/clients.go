package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pratik-mahalle/freelancehub/pkg/client"
)

func newClientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage clients",
	}

	cmd.AddCommand(newClientListCmd())
	cmd.AddCommand(newClientCreateCmd())
	cmd.AddCommand(newClientDeleteCmd())

	return cmd
}

func newClientListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			clients, err := apiClient.Clients().List(context.Background(), &client.ListOptions{Limit: limit})
			if err != nil {
				return fmt.Errorf("failed to list clients: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(clients)
			}

			t := NewTable("ID", "NAME", "COMPANY", "EMAIL")
			for _, c := range clients {
				t.AddRow(c.ID, truncate(c.Name, 40), truncate(c.Company, 30), c.Email)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of clients")

	return cmd
}

func newClientCreateCmd() *cobra.Command {
	var req client.CreateClientRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Name == "" {
				req.Name = promptInput("Name: ")
			}

			created, err := apiClient.Clients().Create(context.Background(), req)
			if err != nil {
				return explainPlanLimit(fmt.Errorf("failed to create client: %w", err))
			}

			if getOutputFormat() != "table" {
				return printOutput(created)
			}
			fmt.Printf("Created client %s (%s)\n", created.Name, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "client name")
	cmd.Flags().StringVar(&req.Email, "email", "", "contact email")
	cmd.Flags().StringVar(&req.Company, "company", "", "company")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone number")

	return cmd
}

func newClientDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient.Clients().Delete(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete client: %w", err)
			}
			fmt.Printf("Client %s deleted\n", args[0])
			return nil
		},
	}
}
