package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var trimFile string

var trimCmd = &cobra.Command{
	Use:   "trim",
	Short: "Trim a candidate transaction set of invalid or insolvent transactions",
	Long: `Load a TxSet fixture, run TrimInvalid against it, and report every
transaction removed: per-transaction failures are dropped individually, but
an account found insolvent after its non-whitelisted fees are deducted has
its entire transaction list removed, preserving sequence-number continuity
for whatever remains.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fixture, err := loadFixture(trimFile)
		if err != nil {
			return err
		}
		frame, app, err := buildFrame(fixture)
		if err != nil {
			return err
		}

		trimmed, err := frame.TrimInvalid(context.Background(), app)
		if err != nil {
			return fmt.Errorf("trimInvalid: %w", err)
		}

		fmt.Printf("remaining: %d\n", frame.Size())
		fmt.Printf("trimmed: %d\n", len(trimmed))
		for _, tx := range trimmed {
			fmt.Printf("  - source=%s seq=%d fullHash=%s\n", tx.SourceID(), tx.SeqNum(), tx.FullHash())
		}
		return nil
	},
}

func init() {
	trimCmd.Flags().StringVar(&trimFile, "file", "", "path to a txset fixture JSON file")
	trimCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(trimCmd)
}
