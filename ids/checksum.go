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
	"fmt"
)

// Checksum is a 5-letter string deterministically derived from an entity ID
// and a ledger ID. It catches entity IDs pasted from a different network
// before any request is made.
type Checksum string

// ParseChecksum validates that the given string is exactly 5 lowercase ASCII
// letters
func ParseChecksum(s string) (Checksum, error) {
	if len(s) != 5 {
		return "", fmt.Errorf("%w, got %q", ErrMalformedChecksum, s)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return "", fmt.Errorf("%w, got %q", ErrMalformedChecksum, s)
		}
	}
	return Checksum(s), nil
}

func (c Checksum) String() string {
	return string(c)
}

// ComputeChecksum derives the checksum for the given entity ID on the given
// ledger. The digits of the <shard>.<realm>.<num> string (with 10 standing in
// for the separator) are folded into weighted sums which are combined with a
// weighted hash of the ledger ID bytes and permuted into 5 base-26 letters.
func ComputeChecksum(id EntityID, ledger LedgerID) Checksum {
	const (
		// weights digit positions by powers of 31, coprime to digits6
		weight  = 31
		digits3 = 26 * 26 * 26
		digits6 = digits3 * digits3
		// smallest prime greater than a million, used for the final permutation
		finalPrime = 1_000_003
	)
	addr := id.String()
	// weighted sum of all digits (mod 26^3) plus alternating sums (mod 11)
	var s, sumEven, sumOdd uint64
	for i := 0; i < len(addr); i++ {
		var d uint64
		if addr[i] == '.' {
			d = 10
		} else {
			d = uint64(addr[i] - '0')
		}
		s = (weight*s + d) % digits3
		if i%2 == 0 {
			sumEven = (sumEven + d) % 11
		} else {
			sumOdd = (sumOdd + d) % 11
		}
	}
	// weighted hash of the ledger ID bytes padded with six zero bytes
	var sh uint64
	h := make([]byte, 0, len(ledger)+6)
	h = append(h, ledger...)
	h = append(h, 0, 0, 0, 0, 0, 0)
	for _, b := range h {
		sh = (weight*sh + uint64(b)) % digits6
	}
	c := uint64(len(addr) % 5)
	c = c*11 + sumEven
	c = c*11 + sumOdd
	c = c*digits3 + s + sh
	c %= digits6
	c = (c * finalPrime) % digits6
	var out [5]byte
	for i := 4; i >= 0; i-- {
		out[i] = 'a' + byte(c%26)
		c /= 26
	}
	return Checksum(out[:])
}

// ChecksumMismatchError is returned when the checksum attached to an entity ID
// does not match the checksum expected for the target ledger
type ChecksumMismatchError struct {
	Shard            uint64
	Realm            uint64
	Num              uint64
	PresentChecksum  Checksum
	ExpectedChecksum Checksum
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf(
		"checksum mismatch for entity ID %d.%d.%d: expected %q, got %q",
		e.Shard,
		e.Realm,
		e.Num,
		e.ExpectedChecksum,
		e.PresentChecksum,
	)
}

// ValidateChecksum compares the given checksum against the one expected for
// the entity ID on the given ledger. It performs no I/O.
func ValidateChecksum(
	id EntityID,
	present Checksum,
	ledger LedgerID,
) error {
	expected := ComputeChecksum(id, ledger)
	if present == expected {
		return nil
	}
	return &ChecksumMismatchError{
		Shard:            id.Shard,
		Realm:            id.Realm,
		Num:              id.Num,
		PresentChecksum:  present,
		ExpectedChecksum: expected,
	}
}
