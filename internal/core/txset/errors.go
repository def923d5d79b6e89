package txset

import "errors"

// ErrNotCanonical is returned when checkOrTrim is asked to validate a set
// whose transactions are not in ascending full-hash order.
var ErrNotCanonical = errors.New("txset: transactions not in canonical order")

// ErrWrongParent is the diagnostic CheckValid logs when a set's
// previousLedgerHash does not match the ledger it is being checked against;
// CheckValid reports that case as (false, nil), not as this error.
var ErrWrongParent = errors.New("txset: previousLedgerHash does not match target ledger")

// ErrTooLarge is the diagnostic CheckValid logs when a set exceeds the
// target ledger's maximum transaction set size; CheckValid reports that
// case as (false, nil), not as this error.
var ErrTooLarge = errors.New("txset: transaction count exceeds ledger maximum")

// ErrScopeClosed is returned by a ReadScope operation performed after Close.
var ErrScopeClosed = errors.New("txset: read scope already closed")
