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

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/blinklabs-io/goledger/ids"
)

// TransactionID identifies a transaction by its payer account and valid-start
// timestamp. The network rejects duplicate IDs, so generated valid-start
// times are strictly monotonic within a process.
type TransactionID struct {
	AccountID  ids.EntityID
	ValidStart time.Time
}

// lastTransactionNanos holds the valid-start of the most recently generated
// transaction ID, as Unix nanoseconds
var lastTransactionNanos atomic.Int64

// NewTransactionID generates a transaction ID for the given payer account
// with a fresh valid-start timestamp. Concurrent calls never produce the
// same timestamp.
func NewTransactionID(accountID ids.EntityID) TransactionID {
	for {
		last := lastTransactionNanos.Load()
		now := time.Now().UnixNano()
		if now <= last {
			now = last + 1
		}
		if lastTransactionNanos.CompareAndSwap(last, now) {
			return TransactionID{
				AccountID:  accountID,
				ValidStart: time.Unix(0, now).UTC(),
			}
		}
	}
}

func (t TransactionID) String() string {
	return fmt.Sprintf(
		"%s@%d.%09d",
		t.AccountID,
		t.ValidStart.Unix(),
		t.ValidStart.Nanosecond(),
	)
}

// ParseTransactionID parses the "shard.realm.num@seconds.nanos" form
// produced by String
func ParseTransactionID(s string) (TransactionID, error) {
	accountPart, timePart, found := strings.Cut(s, "@")
	if !found {
		return TransactionID{}, fmt.Errorf(
			"expected transaction ID of the form account@seconds.nanos, got %q",
			s,
		)
	}
	accountID, checksum, err := ids.ParseEntityID(accountPart)
	if err != nil {
		return TransactionID{}, err
	}
	if checksum != nil {
		return TransactionID{}, fmt.Errorf(
			"transaction ID account must not carry a checksum, got %q",
			s,
		)
	}
	secondsPart, nanosPart, found := strings.Cut(timePart, ".")
	if !found {
		return TransactionID{}, fmt.Errorf(
			"expected valid-start of the form seconds.nanos, got %q",
			timePart,
		)
	}
	seconds, err := strconv.ParseInt(secondsPart, 10, 64)
	if err != nil {
		return TransactionID{}, fmt.Errorf(
			"invalid valid-start seconds: %w",
			err,
		)
	}
	nanos, err := strconv.ParseInt(nanosPart, 10, 64)
	if err != nil || nanos < 0 || nanos > 999_999_999 {
		return TransactionID{}, fmt.Errorf(
			"invalid valid-start nanos in %q",
			timePart,
		)
	}
	return TransactionID{
		AccountID:  accountID,
		ValidStart: time.Unix(seconds, nanos).UTC(),
	}, nil
}
