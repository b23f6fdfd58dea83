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
	"testing"

	"github.com/blinklabs-io/goledger/ids"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkByName(t *testing.T) {
	network := NetworkByName("mainnet")
	assert.Equal(t, NetworkMainnet.Name, network.Name)
	assert.True(t, network.LedgerID.Equal(ids.LedgerIDMainnet))
	network = NetworkByName("bogus")
	assert.Equal(t, NetworkInvalid.Name, network.Name)
}

func TestNewClientByNetworkName(t *testing.T) {
	client, err := NewClient(WithNetworkName("testnet"))
	require.NoError(t, err)
	defer func() {
		_ = client.Close()
	}()
	assert.Equal(t, "testnet", client.Network().Name)
	assert.True(t, client.LedgerID().Equal(ids.LedgerIDTestnet))
	assert.Nil(t, client.OperatorAccountID())
}

func TestNewClientUnknownNetworkName(t *testing.T) {
	_, err := NewClient(WithNetworkName("bogus"))
	assert.ErrorContains(t, err, "unknown network name")
}

func TestNewClientNoNetwork(t *testing.T) {
	_, err := NewClient()
	assert.ErrorContains(t, err, "no nodes")
}

func TestNewClientEmptyNetwork(t *testing.T) {
	_, err := NewClient(WithNetwork(Network{Name: "empty"}))
	assert.ErrorContains(t, err, "no nodes")
}

func TestClientCloseIdempotent(t *testing.T) {
	client, err := NewClient(WithNetwork(testNetwork()))
	require.NoError(t, err)
	require.NoError(t, client.Close())
	require.NoError(t, client.Close())
}
