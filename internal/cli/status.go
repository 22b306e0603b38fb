package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aurybot/aury-backend/pkg/client"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show account summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			format := getOutputFormat()
			if format != "table" {
				summary := map[string]interface{}{}

				user, err := apiClient.GetCurrentUser(ctx)
				if err == nil {
					summary["plan"] = user.Plan
				}
				notes, err := apiClient.Notes().List(ctx, nil)
				if err == nil {
					summary["notes"] = notes.TotalItems
				}
				tasks, err := apiClient.Tasks().List(ctx, &client.TaskListOptions{Status: "pending"})
				if err == nil {
					summary["pending_tasks"] = tasks.TotalItems
				}
				habits, err := apiClient.Habits().List(ctx, nil)
				if err == nil {
					summary["habits"] = habits.TotalItems
				}
				return printOutput(summary)
			}

			fmt.Println("Aury")
			fmt.Println(strings.Repeat("=", 40))

			// Account
			user, err := apiClient.GetCurrentUser(ctx)
			if err != nil {
				fmt.Printf("  Account:       (error: %v)\n", err)
			} else {
				fmt.Printf("  Account:       %s (%s plan)\n", user.Email, user.Plan)
				if user.PremiumExpiresAt != nil {
					fmt.Printf("  Premium until: %s\n", user.PremiumExpiresAt.Format("2006-01-02"))
				}
			}

			// Notes
			notes, err := apiClient.Notes().List(ctx, nil)
			if err != nil {
				fmt.Printf("  Notes:         (error: %v)\n", err)
			} else {
				fmt.Printf("  Notes:         %d\n", notes.TotalItems)
			}

			// Tasks
			tasks, err := apiClient.Tasks().List(ctx, &client.TaskListOptions{Status: "pending"})
			if err != nil {
				fmt.Printf("  Tasks:         (error: %v)\n", err)
			} else {
				overdue := 0
				now := time.Now()
				for _, t := range tasks.Data {
					if t.DueDate != nil && t.DueDate.Before(now) {
						overdue++
					}
				}
				fmt.Printf("  Tasks:         %d pending", tasks.TotalItems)
				if overdue > 0 {
					fmt.Printf(" (%d overdue)", overdue)
				}
				fmt.Println()
			}

			// Habits
			habits, err := apiClient.Habits().List(ctx, nil)
			if err != nil {
				fmt.Printf("  Habits:        (error: %v)\n", err)
			} else {
				best := 0
				for _, h := range habits.Data {
					if h.Streak > best {
						best = h.Streak
					}
				}
				fmt.Printf("  Habits:        %d tracked", habits.TotalItems)
				if best > 0 {
					fmt.Printf(" (best streak %d)", best)
				}
				fmt.Println()
			}

			return nil
		},
	}
}
