// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ids

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// LedgerID is an opaque byte sequence identifying which network instance an
// entity ID is meaningful on. It scopes checksums so that an ID copied from
// one network fails validation on another.
type LedgerID []byte

// Ledger ID definitions for the well-known networks
var (
	LedgerIDMainnet    = LedgerID{0x00}
	LedgerIDTestnet    = LedgerID{0x01}
	LedgerIDPreviewnet = LedgerID{0x02}
)

// LedgerIDFromString parses a ledger ID from a well-known network name or a
// hex string
func LedgerIDFromString(s string) (LedgerID, error) {
	switch s {
	case "mainnet":
		return LedgerIDMainnet, nil
	case "testnet":
		return LedgerIDTestnet, nil
	case "previewnet":
		return LedgerIDPreviewnet, nil
	}
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid ledger ID %q: %w", s, err)
	}
	return LedgerID(data), nil
}

func (l LedgerID) String() string {
	switch {
	case l.Equal(LedgerIDMainnet):
		return "mainnet"
	case l.Equal(LedgerIDTestnet):
		return "testnet"
	case l.Equal(LedgerIDPreviewnet):
		return "previewnet"
	}
	return hex.EncodeToString(l)
}

// Equal reports whether two ledger IDs have the same bytes
func (l LedgerID) Equal(other LedgerID) bool {
	return bytes.Equal(l, other)
}
