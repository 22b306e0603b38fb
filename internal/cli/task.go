package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aurybot/aury-backend/pkg/client"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(newTaskListCmd())
	cmd.AddCommand(newTaskCreateCmd())
	cmd.AddCommand(newTaskCompleteCmd())
	cmd.AddCommand(newTaskDeleteCmd())

	return cmd
}

func newTaskListCmd() *cobra.Command {
	var status, category, priority string
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			result, err := apiClient.Tasks().List(ctx, &client.TaskListOptions{
				Page:     page,
				PageSize: pageSize,
				Status:   status,
				Category: category,
				Priority: priority,
			})
			if err != nil {
				return fmt.Errorf("failed to list tasks: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(result.Data)
			}

			t := NewTable("ID", "TITLE", "STATUS", "PRIORITY", "DUE")
			for _, task := range result.Data {
				due := ""
				if task.DueDate != nil {
					due = task.DueDate.Format("2006-01-02 15:04")
				}
				t.AddRow(
					truncate(task.ID, 8),
					truncate(task.Title, 40),
					formatStatus(task.Status),
					formatPriority(task.Priority),
					due,
				)
			}
			t.Render()
			fmt.Printf("\nShowing %d of %d tasks\n", len(result.Data), result.TotalItems)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (pending, in_progress, completed)")
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().StringVar(&priority, "priority", "", "filter by priority (low, medium, high)")
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "items per page")

	return cmd
}

func newTaskCreateCmd() *cobra.Command {
	var title, description, priority, category, dueDate string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" {
				title = promptInput("Title: ")
			}

			ctx := context.Background()
			task, err := apiClient.Tasks().Create(ctx, client.CreateTaskRequest{
				Title:       title,
				Description: description,
				Priority:    priority,
				Category:    category,
				DueDate:     dueDate,
			})
			if err != nil {
				return fmt.Errorf("failed to create task: %w", err)
			}

			fmt.Printf("Task created: %s\n", task.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "task title")
	cmd.Flags().StringVar(&description, "description", "", "task description")
	cmd.Flags().StringVar(&priority, "priority", "", "priority (low, medium, high)")
	cmd.Flags().StringVar(&category, "category", "", "task category")
	cmd.Flags().StringVar(&dueDate, "due", "", "due date (RFC3339, e.g. 2026-09-15T10:00:00Z)")

	return cmd
}

func newTaskCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <task-id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			task, err := apiClient.Tasks().Complete(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to complete task: %w", err)
			}
			fmt.Printf("Task completed: %s\n", task.Title)
			return nil
		},
	}
}

func newTaskDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := apiClient.Tasks().Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete task: %w", err)
			}
			fmt.Println("Task deleted successfully")
			return nil
		},
	}
}
