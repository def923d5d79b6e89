package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/catena-ledger/txsetd/internal/core/txset"
	"github.com/spf13/cobra"
)

var hashFile string

var hashCmd = &cobra.Command{
	Use:   "hash",
	Short: "Canonicalize a transaction set and print its content hash",
	Long: `Load a TxSet fixture, sort it into canonical (full-hash ascending)
order, print its content hash, and emit the canonical wire encoding.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fixture, err := loadFixture(hashFile)
		if err != nil {
			return err
		}
		frame, _, err := buildFrame(fixture)
		if err != nil {
			return err
		}

		frame.SortForHash()
		fmt.Printf("contentsHash: %s\n", frame.ContentsHash())

		wire, err := frame.ToWire()
		if err != nil {
			return fmt.Errorf("toWire: %w", err)
		}
		encoded, err := txset.EncodeWire(wire)
		if err != nil {
			return fmt.Errorf("encodeWire: %w", err)
		}
		fmt.Printf("wireBytes: %s\n", hex.EncodeToString(encoded))
		return nil
	},
}

func init() {
	hashCmd.Flags().StringVar(&hashFile, "file", "", "path to a txset fixture JSON file")
	hashCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(hashCmd)
}
