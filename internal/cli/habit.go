package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aurybot/aury-backend/pkg/client"
)

func newHabitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Manage habits",
	}

	cmd.AddCommand(newHabitListCmd())
	cmd.AddCommand(newHabitCreateCmd())
	cmd.AddCommand(newHabitCompleteCmd())
	cmd.AddCommand(newHabitDeleteCmd())

	return cmd
}

func newHabitListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			result, err := apiClient.Habits().List(ctx, nil)
			if err != nil {
				return fmt.Errorf("failed to list habits: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(result.Data)
			}

			t := NewTable("ID", "NAME", "FREQUENCY", "STREAK", "BEST")
			for _, h := range result.Data {
				t.AddRow(
					truncate(h.ID, 8),
					truncate(h.Name, 30),
					h.Frequency,
					strconv.Itoa(h.Streak),
					strconv.Itoa(h.BestStreak),
				)
			}
			t.Render()
			fmt.Printf("\nShowing %d of %d habits\n", len(result.Data), result.TotalItems)
			return nil
		},
	}
}

func newHabitCreateCmd() *cobra.Command {
	var name, description, frequency string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a habit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				name = promptInput("Name: ")
			}

			ctx := context.Background()
			habit, err := apiClient.Habits().Create(ctx, client.CreateHabitRequest{
				Name:        name,
				Description: description,
				Frequency:   frequency,
			})
			if err != nil {
				return fmt.Errorf("failed to create habit: %w", err)
			}

			fmt.Printf("Habit created: %s\n", habit.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "habit name")
	cmd.Flags().StringVar(&description, "description", "", "habit description")
	cmd.Flags().StringVar(&frequency, "frequency", "", "frequency (daily, weekly)")

	return cmd
}

func newHabitCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <habit-id>",
		Short: "Mark a habit done for today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			habit, err := apiClient.Habits().Complete(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to complete habit: %w", err)
			}
			fmt.Printf("%s done. Streak: %d (best %d)\n", habit.Name, habit.Streak, habit.BestStreak)
			return nil
		},
	}
}

func newHabitDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <habit-id>",
		Short: "Delete a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := apiClient.Habits().Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete habit: %w", err)
			}
			fmt.Println("Habit deleted successfully")
			return nil
		},
	}
}
