package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var validateFile string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a candidate transaction set against its target ledger",
	Long: `Load a TxSet fixture (previous ledger hash, candidate transactions,
target ledger header, and account balances) and run CheckValid against it,
reporting whether the set is canonical, within size, correctly parented,
and solvent.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fixture, err := loadFixture(validateFile)
		if err != nil {
			return err
		}
		frame, app, err := buildFrame(fixture)
		if err != nil {
			return err
		}

		frame.SortForHash()
		ok, err := frame.CheckValid(context.Background(), app)
		if err != nil {
			return fmt.Errorf("checkValid: %w", err)
		}

		fmt.Printf("contentsHash: %s\n", frame.ContentsHash())
		fmt.Printf("size: %d\n", frame.Size())
		if ok {
			fmt.Println("valid: true")
			return nil
		}
		fmt.Println("valid: false")
		cmd.SilenceUsage = true
		return fmt.Errorf("transaction set rejected")
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateFile, "file", "", "path to a txset fixture JSON file")
	validateCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(validateCmd)
}
