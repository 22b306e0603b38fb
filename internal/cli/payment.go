package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aurybot/aury-backend/pkg/client"
)

func newPaymentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Payment reporting and review",
	}

	cmd.AddCommand(newPaymentNotifyCmd())
	cmd.AddCommand(newPaymentListCmd())
	cmd.AddCommand(newPaymentPendingCmd())
	cmd.AddCommand(newPaymentReviewCmd())

	return cmd
}

func newPaymentNotifyCmd() *cobra.Command {
	var reference string
	var amount int64

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Report a completed transfer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if reference == "" {
				reference = promptInput("Transfer reference: ")
			}

			ctx := context.Background()
			payment, err := apiClient.Billing().Notify(ctx, client.PaymentNotifyRequest{
				Reference: reference,
				Amount:    amount,
			})
			if err != nil {
				return fmt.Errorf("failed to report payment: %w", err)
			}

			fmt.Printf("Payment reported: %s (status %s)\n", payment.ID, payment.Status)
			fmt.Println("Your plan will be upgraded once the transfer is verified.")
			return nil
		},
	}

	cmd.Flags().StringVar(&reference, "reference", "", "transfer reference")
	cmd.Flags().Int64Var(&amount, "amount", 0, "amount transferred (COP)")

	return cmd
}

func newPaymentListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your reported payments",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			payments, err := apiClient.Billing().Payments(ctx)
			if err != nil {
				return fmt.Errorf("failed to list payments: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(payments)
			}

			t := NewTable("ID", "REFERENCE", "AMOUNT", "STATUS", "REPORTED")
			for _, p := range payments {
				t.AddRow(
					truncate(p.ID, 8),
					p.Reference,
					strconv.FormatInt(p.Amount, 10),
					formatStatus(p.Status),
					p.CreatedAt.Format("2006-01-02"),
				)
			}
			t.Render()
			return nil
		},
	}
}

func newPaymentPendingCmd() *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "pending",
		Short: "List payments awaiting review (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			result, err := apiClient.Billing().PendingPayments(ctx, page, pageSize)
			if err != nil {
				return fmt.Errorf("failed to list pending payments: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(result.Data)
			}

			t := NewTable("ID", "USER", "REFERENCE", "AMOUNT", "REPORTED")
			for _, p := range result.Data {
				t.AddRow(
					truncate(p.ID, 8),
					truncate(p.UserID, 8),
					p.Reference,
					strconv.FormatInt(p.Amount, 10),
					p.CreatedAt.Format("2006-01-02 15:04"),
				)
			}
			t.Render()
			fmt.Printf("\nShowing %d of %d pending payments\n", len(result.Data), result.TotalItems)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "items per page")

	return cmd
}

func newPaymentReviewCmd() *cobra.Command {
	var approve, reject bool

	cmd := &cobra.Command{
		Use:   "review <payment-id>",
		Short: "Approve or reject a pending payment (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if approve == reject {
				return fmt.Errorf("pass exactly one of --approve or --reject")
			}

			ctx := context.Background()
			payment, err := apiClient.Billing().Review(ctx, args[0], approve)
			if err != nil {
				return fmt.Errorf("failed to review payment: %w", err)
			}

			fmt.Printf("Payment %s: %s\n", payment.ID, payment.Status)
			return nil
		},
	}

	cmd.Flags().BoolVar(&approve, "approve", false, "approve the payment")
	cmd.Flags().BoolVar(&reject, "reject", false, "reject the payment")

	return cmd
}
