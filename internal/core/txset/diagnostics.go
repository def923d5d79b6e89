package txset

import (
	"io"
	"log"
	"os"
)

// diagLogger is the package-level debug logger, matching this module's
// standard-library log.Logger convention elsewhere. Writes to stderr by
// default; a host application calls SetDiagnosticsOutput to redirect or
// silence it.
var diagLogger = log.New(os.Stderr, "txset: ", log.LstdFlags)

// SetDiagnosticsOutput redirects diagnostic logging emitted by checkOrTrim.
// Passing io.Discard silences it.
func SetDiagnosticsOutput(w io.Writer) {
	diagLogger.SetOutput(w)
}

// logInvalidTx emits a debug-level diagnostic for a transaction rejected by
// checkOrTrim: the parent ledger hash prefix, the offending transaction's
// full hash, envelope length and envelope bytes (hex), and the last accepted
// sequence number for its account.
func logInvalidTx(previousLedgerHash Hash, tx Transaction, lastSeq SequenceNumber) {
	diagLogger.Printf(
		"invalid tx: parent=%x source=%s fullHash=%s envelopeLen=%d envelope=%x lastSeq=%d",
		previousLedgerHash[:4],
		tx.SourceID(),
		tx.FullHash(),
		len(tx.Envelope()),
		tx.Envelope(),
		lastSeq,
	)
}

// logInsufficientBalance emits a debug-level diagnostic when an account's
// transactions are rejected or trimmed for insolvency.
func logInsufficientBalance(previousLedgerHash Hash, account AccountID, count int) {
	diagLogger.Printf(
		"insufficient balance: parent=%x source=%s txCount=%d",
		previousLedgerHash[:4],
		account,
		count,
	)
}
