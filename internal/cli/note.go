package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aurybot/aury-backend/pkg/client"
)

func newNoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage notes",
	}

	cmd.AddCommand(newNoteListCmd())
	cmd.AddCommand(newNoteGetCmd())
	cmd.AddCommand(newNoteCreateCmd())
	cmd.AddCommand(newNoteAnalyzeCmd())
	cmd.AddCommand(newNoteDeleteCmd())

	return cmd
}

func newNoteListCmd() *cobra.Command {
	var category, search string
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			result, err := apiClient.Notes().List(ctx, &client.NoteListOptions{
				Page:     page,
				PageSize: pageSize,
				Category: category,
				Search:   search,
			})
			if err != nil {
				return fmt.Errorf("failed to list notes: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(result.Data)
			}

			t := NewTable("ID", "TITLE", "CATEGORY", "TAGS", "UPDATED")
			for _, n := range result.Data {
				t.AddRow(
					truncate(n.ID, 8),
					truncate(n.Title, 40),
					n.Category,
					truncate(strings.Join(n.Tags, ","), 20),
					n.UpdatedAt.Format("2006-01-02"),
				)
			}
			t.Render()
			fmt.Printf("\nShowing %d of %d notes\n", len(result.Data), result.TotalItems)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().StringVar(&search, "search", "", "search in title and content")
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "items per page")

	return cmd
}

func newNoteGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <note-id>",
		Short: "Get note details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			note, err := apiClient.Notes().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get note: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(note)
			}

			fmt.Printf("Title:    %s\n", note.Title)
			if note.Category != "" {
				fmt.Printf("Category: %s\n", note.Category)
			}
			if len(note.Tags) > 0 {
				fmt.Printf("Tags:     %s\n", strings.Join(note.Tags, ", "))
			}
			fmt.Printf("Updated:  %s\n", note.UpdatedAt.Format("2006-01-02 15:04"))
			fmt.Println()
			fmt.Println(note.Content)
			if note.AISummary != "" {
				fmt.Println()
				fmt.Printf("Summary:  %s\n", note.AISummary)
			}
			return nil
		},
	}
}

func newNoteCreateCmd() *cobra.Command {
	var title, content, category string
	var tags []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note",
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" {
				title = promptInput("Title: ")
			}
			if content == "" {
				content = promptInput("Content: ")
			}

			ctx := context.Background()
			note, err := apiClient.Notes().Create(ctx, client.CreateNoteRequest{
				Title:    title,
				Content:  content,
				Category: category,
				Tags:     tags,
			})
			if err != nil {
				return fmt.Errorf("failed to create note: %w", err)
			}

			fmt.Printf("Note created: %s\n", note.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "note title")
	cmd.Flags().StringVar(&content, "content", "", "note content")
	cmd.Flags().StringVar(&category, "category", "", "note category")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag (repeatable)")

	return cmd
}

func newNoteAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <note-id>",
		Short: "Summarize a note with the assistant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			note, err := apiClient.Notes().Analyze(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to analyze note: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(note)
			}

			fmt.Printf("Summary: %s\n", note.AISummary)
			if len(note.ExtractedTasks) > 0 {
				fmt.Println("Extracted tasks:")
				for _, t := range note.ExtractedTasks {
					fmt.Printf("  - %s\n", t)
				}
			}
			return nil
		},
	}
}

func newNoteDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <note-id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := apiClient.Notes().Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete note: %w", err)
			}
			fmt.Println("Note deleted successfully")
			return nil
		},
	}
}
