package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/catena-ledger/txsetd/internal/core/pool"
	"github.com/catena-ledger/txsetd/internal/core/txset"
	"github.com/spf13/cobra"
)

var poolFile string

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Admit a fixture's transactions into a candidate pool and build a Frame",
	Long: `Load a TxSet fixture, admit each of its transactions into a fresh
pool.Pool ranked by fee level, then build a Frame from whatever the pool
is holding the way a consensus round would before surge pricing and
trimming run against it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fixture, err := loadFixture(poolFile)
		if err != nil {
			return err
		}
		_, app, err := buildFrame(fixture)
		if err != nil {
			return err
		}

		p := pool.New(poolConfig())
		lm := app.LedgerManager()
		for i, ftx := range fixture.Transactions {
			source, err := parseAccountID(ftx.Source)
			if err != nil {
				return fmt.Errorf("transaction %d: %w", i, err)
			}
			envelope, err := hex.DecodeString(ftx.Envelope)
			if err != nil {
				return fmt.Errorf("transaction %d: invalid envelope: %w", i, err)
			}
			tx := txset.NewBaseTransaction(source, txset.SequenceNumber(ftx.Seq), ftx.Fee, envelope)
			tx.Whitelisted = ftx.Whitelisted
			tx.Valid = ftx.Valid

			feeLevel := uint64(tx.FeeRatio(lm))
			admitted := p.Add(tx, feeLevel)
			fmt.Printf("  %d: source=%s seq=%d feeLevel=%d admitted=%v\n", i, tx.SourceID(), tx.SeqNum(), feeLevel, admitted)
		}

		fmt.Printf("pool size: %d\n", p.Size())

		frame := p.BuildFrame(lm)
		frame.SortForHash()
		fmt.Printf("frame size: %d  contentsHash: %s\n", frame.Size(), frame.ContentsHash())
		return nil
	},
}

func init() {
	poolCmd.Flags().StringVar(&poolFile, "file", "", "path to a txset fixture JSON file")
	poolCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(poolCmd)
}
