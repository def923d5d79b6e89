package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var surgeFile string

var surgeCmd = &cobra.Command{
	Use:   "surge",
	Short: "Apply surge pricing and print the resulting apply order",
	Long: `Load a TxSet fixture and run SurgePricingFilter against its target
ledger's max set size and whitelist, then SortForApply to produce the
deterministic-yet-unpredictable apply order for whatever transactions
survived the filter.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fixture, err := loadFixture(surgeFile)
		if err != nil {
			return err
		}
		frame, app, err := buildFrame(fixture)
		if err != nil {
			return err
		}

		before := frame.Size()
		frame.SurgePricingFilter(app.LedgerManager(), app)
		fmt.Printf("before: %d  after: %d  max: %d\n", before, frame.Size(), app.LedgerManager().MaxTxSetSize())

		applyOrder := frame.SortForApply()
		fmt.Println("apply order:")
		for i, tx := range applyOrder {
			fmt.Printf("  %d: source=%s seq=%d fullHash=%s\n", i, tx.SourceID(), tx.SeqNum(), tx.FullHash())
		}
		return nil
	},
}

func init() {
	surgeCmd.Flags().StringVar(&surgeFile, "file", "", "path to a txset fixture JSON file")
	surgeCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(surgeCmd)
}
