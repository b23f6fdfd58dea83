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

package ids_test

import (
	"testing"

	"github.com/blinklabs-io/goledger/ids"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEntityID(t *testing.T) {
	testDefs := []struct {
		input       string
		expectedID  ids.EntityID
		expectedCk  string
		expectedErr error
	}{
		{
			input:      "0.0.123",
			expectedID: ids.EntityID{Shard: 0, Realm: 0, Num: 123},
		},
		{
			input:      "1.2.3",
			expectedID: ids.EntityID{Shard: 1, Realm: 2, Num: 3},
		},
		{
			input:      "0.0.123-vfmkw",
			expectedID: ids.EntityID{Shard: 0, Realm: 0, Num: 123},
			expectedCk: "vfmkw",
		},
		{
			input:      "0.0.18446744073709551615",
			expectedID: ids.EntityID{Num: 18446744073709551615},
		},
		{
			input:       "0.0",
			expectedErr: ids.ErrMalformedID,
		},
		{
			input:       "0.0.x",
			expectedErr: ids.ErrMalformedID,
		},
		{
			input:       "0.-1.5",
			expectedErr: ids.ErrMalformedID,
		},
		{
			input:       "0.0.123-abc",
			expectedErr: ids.ErrMalformedChecksum,
		},
		{
			input:       "0.0.123-ABCDE",
			expectedErr: ids.ErrMalformedChecksum,
		},
		{
			input:       "0.0.123-abcdef",
			expectedErr: ids.ErrMalformedChecksum,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.input, func(t *testing.T) {
			id, checksum, err := ids.ParseEntityID(testDef.input)
			if testDef.expectedErr != nil {
				assert.ErrorIs(t, err, testDef.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testDef.expectedID, id)
			if testDef.expectedCk == "" {
				assert.Nil(t, checksum)
			} else {
				require.NotNil(t, checksum)
				assert.Equal(t, testDef.expectedCk, checksum.String())
			}
		})
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	id := ids.EntityID{Shard: 1, Realm: 20, Num: 31415}
	checksum, err := ids.ParseChecksum("abcde")
	require.NoError(t, err)
	formatted := id.String() + "-" + checksum.String()
	parsedID, parsedChecksum, err := ids.ParseEntityID(formatted)
	require.NoError(t, err)
	assert.Equal(t, id, parsedID)
	require.NotNil(t, parsedChecksum)
	assert.Equal(t, checksum, *parsedChecksum)
}
