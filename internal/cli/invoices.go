package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pratik-mahalle/freelancehub/pkg/client"
)

func newInvoiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Manage invoices",
	}

	cmd.AddCommand(newInvoiceListCmd())
	cmd.AddCommand(newInvoiceCreateCmd())
	cmd.AddCommand(newInvoiceTransitionCmd("send", "Mark a draft invoice as sent", (*client.InvoiceService).Send))
	cmd.AddCommand(newInvoiceTransitionCmd("pay", "Mark an invoice as paid", (*client.InvoiceService).Pay))

	return cmd
}

func newInvoiceListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices",
		RunE: func(cmd *cobra.Command, args []string) error {
			invoices, err := apiClient.Invoices().List(context.Background(), &client.InvoiceListOptions{
				ListOptions: client.ListOptions{Status: status},
			})
			if err != nil {
				return fmt.Errorf("failed to list invoices: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(invoices)
			}

			t := NewTable("ID", "NUMBER", "STATUS", "TOTAL", "ISSUED", "DUE")
			for _, inv := range invoices {
				t.AddRow(inv.ID, inv.Number, formatStatus(inv.Status), inv.Total+" "+inv.Currency, inv.IssueDate, inv.DueDate)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (comma separated)")

	return cmd
}

func newInvoiceCreateCmd() *cobra.Command {
	var req client.CreateInvoiceRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a draft invoice",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Number == "" {
				req.Number = promptInput("Invoice number: ")
			}
			if req.Total == "" {
				req.Total = promptInput("Total: ")
			}

			created, err := apiClient.Invoices().Create(context.Background(), req)
			if err != nil {
				return explainPlanLimit(fmt.Errorf("failed to create invoice: %w", err))
			}

			if getOutputFormat() != "table" {
				return printOutput(created)
			}
			fmt.Printf("Created invoice %s for %s %s (%s)\n", created.Number, created.Total, created.Currency, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Number, "number", "", "invoice number")
	cmd.Flags().StringVar(&req.Total, "total", "", "total amount")
	cmd.Flags().StringVar(&req.Currency, "currency", "", "ISO currency code (default USD)")
	cmd.Flags().StringVar(&req.ClientID, "client", "", "client id")
	cmd.Flags().StringVar(&req.ProjectID, "project", "", "project id")
	cmd.Flags().StringVar(&req.DueDate, "due", "", "due date (YYYY-MM-DD)")

	return cmd
}

func newInvoiceTransitionCmd(use, short string, fn func(*client.InvoiceService, context.Context, string) (*client.Invoice, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := fn(apiClient.Invoices(), context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to %s invoice: %w", use, err)
			}
			if getOutputFormat() != "table" {
				return printOutput(inv)
			}
			fmt.Printf("Invoice %s is now %s\n", inv.Number, inv.Status)
			return nil
		},
	}
}
