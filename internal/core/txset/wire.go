package txset

import (
	"github.com/ugorji/go/codec"
)

// WireSet is the external, bit-exact wire representation of a Frame:
// the parent ledger hash plus a length-prefixed array of transaction
// envelopes, in whatever order the frame held them when serialized.
type WireSet struct {
	PreviousLedgerHash [32]byte `codec:"previous_ledger_hash"`
	Envelopes          [][]byte `codec:"envelopes"`
}

var wireHandle codec.CborHandle

// ToWire serializes the set's current order (no implicit sorting — callers
// that require canonical output call SortForHash first).
func (f *Frame) ToWire() (WireSet, error) {
	ws := WireSet{
		PreviousLedgerHash: [32]byte(f.previousLedgerHash),
		Envelopes:          make([][]byte, len(f.transactions)),
	}
	for i, tx := range f.transactions {
		ws.Envelopes[i] = tx.Envelope()
	}
	return ws, nil
}

// EncodeWire encodes a WireSet to its canonical binary form.
func EncodeWire(ws WireSet) ([]byte, error) {
	var buf []byte
	enc := codec.NewEncoderBytes(&buf, &wireHandle)
	if err := enc.Encode(ws); err != nil {
		return nil, err
	}
	return buf, nil
}

// DecodeWire decodes a WireSet from its canonical binary form.
func DecodeWire(data []byte) (WireSet, error) {
	var ws WireSet
	dec := codec.NewDecoderBytes(data, &wireHandle)
	if err := dec.Decode(&ws); err != nil {
		return WireSet{}, err
	}
	return ws, nil
}

// FromWire reconstructs a Frame from a decoded WireSet, materializing each
// transaction from its envelope via factory. The resulting frame is not
// guaranteed canonical until SortForHash runs.
func FromWire(networkID uint32, ws WireSet, factory TransactionFactory) (*Frame, error) {
	f := NewFrame(Hash(ws.PreviousLedgerHash))
	for _, env := range ws.Envelopes {
		tx, err := factory.MakeFromWire(networkID, env)
		if err != nil {
			return nil, err
		}
		f.Add(tx)
	}
	return f, nil
}
