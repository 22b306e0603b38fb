package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Subscription plan commands",
	}

	cmd.AddCommand(newPlanListCmd())
	cmd.AddCommand(newPlanUpgradeCmd())

	return cmd
}

func newPlanListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			plans, err := apiClient.Billing().Plans(ctx)
			if err != nil {
				return fmt.Errorf("failed to list plans: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(plans)
			}

			t := NewTable("PLAN", "PRICE", "NOTES", "TASKS", "HABITS", "PROJECTS", "AI/DAY")
			for _, p := range plans {
				price := "free"
				if p.Price > 0 {
					price = fmt.Sprintf("$%d COP", p.Price)
				}
				t.AddRow(
					p.Name,
					price,
					formatCap(p.Limits.MaxNotes),
					formatCap(p.Limits.MaxTasks),
					formatCap(p.Limits.MaxHabits),
					formatCap(p.Limits.MaxProjects),
					formatCap(p.Limits.AIAnalysisPerDay),
				)
			}
			t.Render()
			return nil
		},
	}
}

func newPlanUpgradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade",
		Short: "Show how to upgrade to premium",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			info, err := apiClient.Billing().PaymentInfo(ctx)
			if err != nil {
				return fmt.Errorf("failed to get payment info: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(info)
			}

			fmt.Printf("Method:  %s\n", info.Method)
			fmt.Printf("Number:  %s\n", info.NequiNumber)
			fmt.Printf("Amount:  $%d %s\n", info.Amount, info.Currency)
			fmt.Println()
			fmt.Println(info.Instructions)
			fmt.Println()
			fmt.Println("After paying, report it with: aury payment notify --reference <ref>")
			return nil
		},
	}
}
