package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ppiankov/ledgerpen/internal/api"
	"github.com/ppiankov/ledgerpen/internal/cache"
	"github.com/ppiankov/ledgerpen/internal/model"
	"github.com/ppiankov/ledgerpen/internal/store"
	"github.com/spf13/cobra"
)

var (
	billsBaseURL string
	billsNoCache bool
	billAmount   float64
	billCurrency string
	billDueDate  string
	billMerchant string
)

// billsCmd groups the bill subcommands
var billsCmd = &cobra.Command{
	Use:   "bills",
	Short: "Manage bills against the Ledgerpen backend",
	Long: `Bills talks to the Ledgerpen backend through the same optimistic
mutation engine the interactive client uses: the local collection is updated
first, then reconciled with the server's response or rolled back on failure.

Example:
  ledgerpen bills list
  ledgerpen bills add "Electricity" --amount 89.50 --due 2026-09-01
  ledgerpen bills pay <id>
  ledgerpen bills remove <id>`,
}

var billsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bills",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newBillStore()
		if err != nil {
			return err
		}

		ctx, cancel := billContext()
		defer cancel()

		if err := s.Load(ctx); err != nil {
			return fmt.Errorf("load bills: %w", err)
		}

		bills := s.Bills()
		if len(bills) == 0 {
			fmt.Println("No bills.")
			return nil
		}

		for _, b := range bills {
			status := string(b.Status)
			if b.Status == model.BillStatusPaid && b.PaidDate != nil {
				status = fmt.Sprintf("paid %s", b.PaidDate.Format("2006-01-02"))
			}
			fmt.Printf("%-36s  %-20s  %8.2f %s  due %s  [%s]\n",
				b.ID, b.Name, b.Amount, b.Currency,
				b.DueDate.Format("2006-01-02"), status)
		}
		return nil
	},
}

var billsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a bill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		due, err := time.Parse("2006-01-02", billDueDate)
		if err != nil {
			return fmt.Errorf("parse --due: %w", err)
		}

		s, err := newBillStore()
		if err != nil {
			return err
		}

		ctx, cancel := billContext()
		defer cancel()

		if err := s.Load(ctx); err != nil {
			return fmt.Errorf("load bills: %w", err)
		}

		created, err := s.Create(ctx, model.Bill{
			Name:         args[0],
			MerchantName: billMerchant,
			Amount:       billAmount,
			Currency:     billCurrency,
			DueDate:      due,
		})
		if err != nil {
			return err
		}

		fmt.Printf("✓ Added bill %s (%s)\n", created.Name, created.ID)
		return nil
	},
}

var billsPayCmd = &cobra.Command{
	Use:   "pay <id>",
	Short: "Mark a bill as paid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newBillStore()
		if err != nil {
			return err
		}

		ctx, cancel := billContext()
		defer cancel()

		if err := s.Load(ctx); err != nil {
			return fmt.Errorf("load bills: %w", err)
		}

		paid, err := s.MarkAsPaid(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("✓ Marked %s as paid\n", paid.Name)
		return nil
	},
}

var billsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a bill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newBillStore()
		if err != nil {
			return err
		}

		ctx, cancel := billContext()
		defer cancel()

		if err := s.Load(ctx); err != nil {
			return fmt.Errorf("load bills: %w", err)
		}

		if err := s.Delete(ctx, args[0]); err != nil {
			return err
		}

		fmt.Printf("✓ Deleted bill %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(billsCmd)
	billsCmd.AddCommand(billsListCmd)
	billsCmd.AddCommand(billsAddCmd)
	billsCmd.AddCommand(billsPayCmd)
	billsCmd.AddCommand(billsRemoveCmd)

	billsCmd.PersistentFlags().StringVar(&billsBaseURL, "base-url", "", "backend base URL (default from config)")
	billsCmd.PersistentFlags().BoolVar(&billsNoCache, "no-cache", false, "disable the local list cache")

	billsAddCmd.Flags().Float64Var(&billAmount, "amount", 0, "bill amount")
	billsAddCmd.Flags().StringVar(&billCurrency, "currency", "USD", "bill currency")
	billsAddCmd.Flags().StringVar(&billDueDate, "due", "", "due date (YYYY-MM-DD)")
	billsAddCmd.Flags().StringVar(&billMerchant, "merchant", "", "merchant name")
	_ = billsAddCmd.MarkFlagRequired("due")
}

// newBillStore assembles the backend client, cache, and store
func newBillStore() (*store.BillStore, error) {
	cfg := model.DefaultConfig()
	if billsBaseURL != "" {
		cfg.HTTP.BaseURL = billsBaseURL
	}

	var c cache.Cache
	if cfg.Cache.Enabled && !billsNoCache {
		dir := cfg.Cache.Dir
		if dir == "" {
			userCache, err := os.UserCacheDir()
			if err != nil {
				return nil, fmt.Errorf("find cache directory: %w", err)
			}
			dir = filepath.Join(userCache, "ledgerpen")
		}
		c = cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
	}

	client := api.NewClient(cfg.HTTP)
	return store.NewBillStore(client, consoleNotifier{}, c, cfg.Cache.MemoryTTL), nil
}

func billContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// consoleNotifier prints mutation outcomes to stderr, standing in for the
// toast notifications of a graphical client.
type consoleNotifier struct{}

func (consoleNotifier) Success(msg string) {
	if verbose {
		fmt.Fprintf(os.Stderr, "%s\n", msg)
	}
}

func (consoleNotifier) Error(msg string) {
	fmt.Fprintf(os.Stderr, "✗ %s\n", msg)
}
