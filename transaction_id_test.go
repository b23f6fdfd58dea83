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
	"sync"
	"testing"

	"github.com/blinklabs-io/goledger/ids"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransactionIDMonotonic(t *testing.T) {
	account := ids.EntityID{Shard: 0, Realm: 0, Num: 100}
	var last TransactionID
	for i := 0; i < 1000; i++ {
		id := NewTransactionID(account)
		if i > 0 {
			assert.True(
				t,
				id.ValidStart.After(last.ValidStart),
				"valid-start times must be strictly increasing",
			)
		}
		last = id
	}
}

func TestNewTransactionIDConcurrent(t *testing.T) {
	account := ids.EntityID{Shard: 0, Realm: 0, Num: 100}
	const workers = 8
	const perWorker = 200
	var wg sync.WaitGroup
	results := make([][]TransactionID, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				results[w] = append(results[w], NewTransactionID(account))
			}
		}(w)
	}
	wg.Wait()
	seen := map[int64]struct{}{}
	for _, worker := range results {
		for _, id := range worker {
			nanos := id.ValidStart.UnixNano()
			_, dup := seen[nanos]
			assert.False(t, dup, "duplicate valid-start generated")
			seen[nanos] = struct{}{}
		}
	}
}

func TestTransactionIDStringRoundTrip(t *testing.T) {
	id := NewTransactionID(ids.EntityID{Shard: 1, Realm: 2, Num: 300})
	parsed, err := ParseTransactionID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id.AccountID, parsed.AccountID)
	assert.True(t, id.ValidStart.Equal(parsed.ValidStart))
}

func TestParseTransactionIDInvalid(t *testing.T) {
	testDefs := []string{
		"",
		"0.0.100",
		"0.0.100@",
		"0.0.100@12345",
		"0.0.100@12345.",
		"0.0.100@12345.abc",
		"0.0.100@12345.9999999999",
		"0.0@12345.000000001",
		"abc@12345.000000001",
	}
	for _, testDef := range testDefs {
		_, err := ParseTransactionID(testDef)
		assert.Error(t, err, "expected error parsing %q", testDef)
	}
}
