package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newInsightsCmd() *cobra.Command {
	var summary bool

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show dashboard insights",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if summary {
				s, err := apiClient.InsightSummary(ctx)
				if err != nil {
					return fmt.Errorf("failed to summarize insights: %w", err)
				}
				if getOutputFormat() != "table" {
					return printOutput(s)
				}
				fmt.Println(s.Summary)
				fmt.Printf("(source: %s)\n", s.Source)
				return nil
			}

			insights, err := apiClient.Insights(ctx)
			if err != nil {
				return fmt.Errorf("failed to load insights: %w", err)
			}
			if getOutputFormat() != "table" {
				return printOutput(insights)
			}
			if len(insights) == 0 {
				fmt.Println("Not enough activity yet.")
				return nil
			}

			t := NewTable("INSIGHT", "VALUE", "TREND", "PRIORITY", "DETAIL")
			for _, in := range insights {
				t.AddRow(in.Title, in.Value, formatTrend(in.Trend), formatPriority(in.Priority), truncate(in.Description, 60))
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&summary, "summary", false, "print a narrative summary instead of the cards")

	return cmd
}
