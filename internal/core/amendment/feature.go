// Copyright (c) 2024-2025. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package amendment provides the feature-gating mechanism this module's
// ledger layer uses to toggle optional behavior: a feature is identified by
// the SHA-512/half of its name, and a Rules value reports whether a given
// feature ID is currently enabled.
package amendment

import (
	"crypto/sha512"
)

// SHA512Half computes the SHA-512 hash and returns the first 32 bytes (256 bits).
// This is the standard hash function used for XRP Ledger identifiers.
func SHA512Half(data []byte) [32]byte {
	hash := sha512.Sum512(data)
	var result [32]byte
	copy(result[:], hash[:32])
	return result
}

// FeatureID computes the feature ID from a feature name.
func FeatureID(name string) [32]byte {
	return SHA512Half([]byte(name))
}
