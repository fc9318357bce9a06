package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pratik-mahalle/freelancehub/pkg/client"
)

func newTimeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "time",
		Short: "Track time",
	}

	cmd.AddCommand(newTimeListCmd())
	cmd.AddCommand(newTimeLogCmd())

	return cmd
}

func newTimeListCmd() *cobra.Command {
	var projectID string
	var days int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent time entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			since := time.Now().UTC().AddDate(0, 0, -days)
			entries, err := apiClient.TimeEntries().List(context.Background(), projectID, &since)
			if err != nil {
				return fmt.Errorf("failed to list time entries: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(entries)
			}

			total := 0
			t := NewTable("STARTED", "MINUTES", "BILLABLE", "PROJECT", "DESCRIPTION")
			for _, e := range entries {
				total += e.DurationMinutes
				t.AddRow(e.StartTime.Local().Format("2006-01-02 15:04"), strconv.Itoa(e.DurationMinutes),
					strconv.FormatBool(e.Billable), e.ProjectID, truncate(e.Description, 40))
			}
			t.Render()
			fmt.Printf("\n%d entries, %.1f hours\n", len(entries), float64(total)/60)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "only entries for this project")
	cmd.Flags().IntVar(&days, "days", 7, "look back this many days")

	return cmd
}

func newTimeLogCmd() *cobra.Command {
	var req client.CreateTimeEntryRequest
	var duration time.Duration
	var started string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a block of work",
		RunE: func(cmd *cobra.Command, args []string) error {
			if duration <= 0 {
				return fmt.Errorf("--duration must be positive")
			}
			req.DurationMinutes = int(duration.Minutes())
			req.StartTime = time.Now().UTC().Add(-duration)
			if started != "" {
				t, err := time.Parse(time.RFC3339, started)
				if err != nil {
					return fmt.Errorf("invalid --start: %w", err)
				}
				req.StartTime = t.UTC()
			}

			entry, err := apiClient.TimeEntries().Create(context.Background(), req)
			if err != nil {
				return explainPlanLimit(fmt.Errorf("failed to log time: %w", err))
			}

			if getOutputFormat() != "table" {
				return printOutput(entry)
			}
			fmt.Printf("Logged %d minutes (%s)\n", entry.DurationMinutes, entry.ID)
			return nil
		},
	}

	cmd.Flags().DurationVar(&duration, "duration", 0, "time spent, e.g. 1h30m")
	cmd.Flags().StringVar(&started, "start", "", "start time (RFC3339, default now minus duration)")
	cmd.Flags().StringVar(&req.ProjectID, "project", "", "project id")
	cmd.Flags().StringVar(&req.Description, "description", "", "what you worked on")
	cmd.Flags().BoolVar(&req.Billable, "billable", true, "billable to the client")

	return cmd
}
