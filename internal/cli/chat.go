package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newChatCmd() *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Talk to the assistant",
		Long: `Send a message to the assistant. With no arguments an
interactive session starts; type 'exit' to leave.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if clear {
				if err := apiClient.Assistant().ClearContext(ctx); err != nil {
					return fmt.Errorf("failed to clear context: %w", err)
				}
				fmt.Println("Context cleared")
				return nil
			}

			if len(args) > 0 {
				return sendChatMessage(ctx, strings.Join(args, " "))
			}

			// Interactive session
			fmt.Println("Chatting with Aury. Type 'exit' to leave.")
			for {
				line := promptInput("> ")
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					return nil
				}
				if err := sendChatMessage(ctx, line); err != nil {
					fmt.Println("Error:", err)
				}
			}
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "forget the conversation history")

	return cmd
}

func sendChatMessage(ctx context.Context, message string) error {
	result, err := apiClient.Assistant().Chat(ctx, message)
	if err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}

	fmt.Println(result.Response)
	for _, action := range result.Actions {
		if action.Type == "task_created" && action.Task != nil {
			fmt.Printf("  [task created: %s]\n", action.Task.Title)
		}
	}
	return nil
}
