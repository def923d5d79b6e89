// Copyright (c) 2024-2025. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package amendment

// Rules provides a read-only view of which amendments are enabled for
// transaction processing and validation. It is typically loaded from
// the Amendments entry in a specific ledger.
type Rules struct {
	// enabled is the set of enabled amendment IDs
	enabled map[[32]byte]bool
}

// NewRules creates a new Rules instance with the given enabled amendments.
func NewRules(enabledIDs [][32]byte) *Rules {
	r := &Rules{
		enabled: make(map[[32]byte]bool, len(enabledIDs)),
	}
	for _, id := range enabledIDs {
		r.enabled[id] = true
	}
	return r
}

// Enabled returns true if the amendment with the given ID is enabled.
// This is the primary method used during transaction processing.
func (r *Rules) Enabled(featureID [32]byte) bool {
	return r.enabled[featureID]
}
