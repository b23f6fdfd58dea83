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

// Package ids provides the entity identifier type shared by all on-ledger
// objects, along with the ledger-scoped checksum used to detect entity IDs
// being used against the wrong network.
package ids

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrMalformedID is returned when an entity ID string does not have the
	// form <shard>.<realm>.<num> with unsigned integer parts
	ErrMalformedID = errors.New(
		"malformed entity ID: expected <shard>.<realm>.<num>",
	)
	// ErrMalformedChecksum is returned when a checksum segment is present but
	// is not exactly 5 lowercase letters
	ErrMalformedChecksum = errors.New(
		"malformed checksum: expected exactly 5 lowercase letters",
	)
)

// EntityID identifies an entity (account, file, topic, token, schedule, or
// contract) on the ledger. It is a plain value type; two IDs are equal when
// their shard, realm, and num are equal.
type EntityID struct {
	Shard uint64
	Realm uint64
	Num   uint64
}

// NewEntityID returns the entity ID for the given shard, realm, and num
func NewEntityID(shard uint64, realm uint64, num uint64) EntityID {
	return EntityID{Shard: shard, Realm: realm, Num: num}
}

func (id EntityID) String() string {
	return strconv.FormatUint(id.Shard, 10) +
		"." +
		strconv.FormatUint(id.Realm, 10) +
		"." +
		strconv.FormatUint(id.Num, 10)
}

// StringWithChecksum formats the entity ID as <shard>.<realm>.<num>-<checksum>
// using the checksum for the given ledger
func (id EntityID) StringWithChecksum(ledger LedgerID) string {
	return id.String() + "-" + string(ComputeChecksum(id, ledger))
}

// ParseEntityID parses an entity ID in either the <shard>.<realm>.<num> or
// <shard>.<realm>.<num>-<checksum> form. The returned checksum is nil when the
// input carried none. The checksum is only checked for shape here, not for
// correctness against any ledger.
func ParseEntityID(s string) (EntityID, *Checksum, error) {
	idPart := s
	var checksum *Checksum
	if idx := strings.LastIndexByte(s, '-'); idx >= 0 {
		cs, err := ParseChecksum(s[idx+1:])
		if err != nil {
			return EntityID{}, nil, err
		}
		checksum = &cs
		idPart = s[:idx]
	}
	parts := strings.Split(idPart, ".")
	if len(parts) != 3 {
		return EntityID{}, nil, fmt.Errorf("%w, got %q", ErrMalformedID, s)
	}
	shard, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return EntityID{}, nil, fmt.Errorf("%w, got %q", ErrMalformedID, s)
	}
	realm, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return EntityID{}, nil, fmt.Errorf("%w, got %q", ErrMalformedID, s)
	}
	num, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return EntityID{}, nil, fmt.Errorf("%w, got %q", ErrMalformedID, s)
	}
	return EntityID{Shard: shard, Realm: realm, Num: num}, checksum, nil
}
