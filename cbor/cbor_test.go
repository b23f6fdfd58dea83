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

package cbor_test

import (
	"testing"

	"github.com/blinklabs-io/goledger/cbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnvelope struct {
	cbor.StructAsArray
	Name    string
	Payload []byte
}

func TestEncodeDeterministic(t *testing.T) {
	data := map[string]uint64{"b": 2, "a": 1, "c": 3}
	first, err := cbor.Encode(data)
	require.NoError(t, err)
	second, err := cbor.Encode(data)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEnvelopeRoundTrip(t *testing.T) {
	orig := testEnvelope{
		Name:    "submit",
		Payload: []byte{0x01, 0x02, 0x03},
	}
	data, err := cbor.Encode(orig)
	require.NoError(t, err)
	var decoded testEnvelope
	n, err := cbor.Decode(data, &decoded)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, orig, decoded)
}

func TestDecodeTruncated(t *testing.T) {
	data, err := cbor.Encode(testEnvelope{Name: "submit"})
	require.NoError(t, err)
	var decoded testEnvelope
	_, err = cbor.Decode(data[:len(data)-1], &decoded)
	assert.Error(t, err)
}
