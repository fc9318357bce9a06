package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show plan, trial and account summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			ent, err := apiClient.Entitlement(ctx)
			if err != nil {
				return fmt.Errorf("failed to load entitlement: %w", err)
			}

			if getOutputFormat() != "table" {
				summary := map[string]interface{}{"entitlement": ent}
				if clients, err := apiClient.Clients().List(ctx, nil); err == nil {
					summary["clients"] = len(clients)
				}
				if projects, err := apiClient.Projects().List(ctx, nil); err == nil {
					summary["projects"] = len(projects)
				}
				return printOutput(summary)
			}

			fmt.Println("FreelanceHub Account")
			fmt.Println(strings.Repeat("=", 40))
			fmt.Printf("  Plan:          %s (%s)\n", ent.Plan, formatStatus(ent.Status))
			switch {
			case ent.HasActiveSubscription:
				fmt.Println("  Subscription:  active")
			case ent.IsExpired:
				fmt.Println("  Trial:         expired, upgrade to keep creating records")
			default:
				fmt.Printf("  Trial:         %d days remaining\n", ent.DaysRemaining)
			}
			fmt.Printf("  Limits:        %s clients, %s projects, %s GB storage\n",
				formatLimit(ent.Limits.MaxClients), formatLimit(ent.Limits.MaxProjects), formatLimit(ent.Limits.MaxStorageGB))

			clients, err := apiClient.Clients().List(ctx, nil)
			if err != nil {
				fmt.Printf("  Clients:       (error: %v)\n", err)
			} else {
				fmt.Printf("  Clients:       %d\n", len(clients))
			}

			projects, err := apiClient.Projects().List(ctx, nil)
			if err != nil {
				fmt.Printf("  Projects:      (error: %v)\n", err)
			} else {
				active := 0
				for _, p := range projects {
					if p.Status == "active" {
						active++
					}
				}
				fmt.Printf("  Projects:      %d active (%d total)\n", active, len(projects))
			}

			return nil
		},
	}
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check API liveness and gateway readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			ready, err := apiClient.Ready(context.Background())
			if err != nil {
				return fmt.Errorf("server not ready: %w", err)
			}
			if getOutputFormat() != "table" {
				return printOutput(ready)
			}
			fmt.Printf("%s (gateway: %s)\n", ready.Status, ready.Gateway)
			return nil
		},
	}
}
