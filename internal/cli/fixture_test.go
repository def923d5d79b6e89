package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleFixture = `{
  "previous_ledger_hash": "0101010101010101010101010101010101010101010101010101010101010101",
  "ledger": {
    "hash": "0101010101010101010101010101010101010101010101010101010101010101",
    "max_tx_set_size": 10,
    "base_fee_drops": 10,
    "ledger_index": 5
  },
  "transactions": [
    {
      "source": "0102030405060708090001020304050607080900",
      "seq": 1,
      "fee": 10,
      "envelope": "616263",
      "valid": true
    }
  ],
  "accounts": {
    "0102030405060708090001020304050607080900": {
      "balance": 1000000,
      "minimum_balance": 0
    }
  }
}`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "fixture.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFixtureParsesJSON(t *testing.T) {
	path := writeFixture(t, sampleFixture)

	f, err := loadFixture(path)
	require.NoError(t, err)
	require.Len(t, f.Transactions, 1)
	require.Equal(t, uint32(10), f.Ledger.MaxTxSetSize)
	require.Equal(t, int64(10), f.Transactions[0].Fee)
}

func TestBuildFrameMaterializesFrameAndContext(t *testing.T) {
	path := writeFixture(t, sampleFixture)
	f, err := loadFixture(path)
	require.NoError(t, err)

	frame, app, err := buildFrame(f)
	require.NoError(t, err)
	require.Equal(t, 1, frame.Size())
	require.Equal(t, uint32(10), app.LedgerManager().MaxTxSetSize())
}

func TestParseHashRejectsInvalidLength(t *testing.T) {
	_, err := parseHash("abcd")
	require.Error(t, err)
}

func TestParseAccountIDRejectsInvalidLength(t *testing.T) {
	_, err := parseAccountID("abcd")
	require.Error(t, err)
}
