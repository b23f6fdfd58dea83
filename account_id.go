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

package goledger

import "github.com/blinklabs-io/goledger/ids"

// AccountID identifies an account on the ledger. The checksum, when present,
// records what the user typed and is validated lazily against the client's
// ledger.
type AccountID struct {
	ids.EntityID
	Checksum *ids.Checksum
}

// AccountIDFromString parses an account ID of the form "shard.realm.num"
// with an optional "-abcde" checksum suffix
func AccountIDFromString(s string) (AccountID, error) {
	entityID, checksum, err := ids.ParseEntityID(s)
	if err != nil {
		return AccountID{}, err
	}
	return AccountID{
		EntityID: entityID,
		Checksum: checksum,
	}, nil
}

// validateChecksum verifies the parsed checksum, if any, against the given
// ledger. An account ID constructed without a checksum always passes.
func (a AccountID) validateChecksum(ledger ids.LedgerID) error {
	if a.Checksum == nil {
		return nil
	}
	return ids.ValidateChecksum(a.EntityID, *a.Checksum, ledger)
}
