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

// Network definitions
var (
	NetworkMainnet = Network{
		Name:     "mainnet",
		LedgerID: ids.LedgerIDMainnet,
		Nodes: map[ids.EntityID]string{
			{Shard: 0, Realm: 0, Num: 3}: "node3.mainnet.goledger.dev:50511",
			{Shard: 0, Realm: 0, Num: 4}: "node4.mainnet.goledger.dev:50511",
			{Shard: 0, Realm: 0, Num: 5}: "node5.mainnet.goledger.dev:50511",
			{Shard: 0, Realm: 0, Num: 6}: "node6.mainnet.goledger.dev:50511",
			{Shard: 0, Realm: 0, Num: 7}: "node7.mainnet.goledger.dev:50511",
			{Shard: 0, Realm: 0, Num: 8}: "node8.mainnet.goledger.dev:50511",
		},
	}
	NetworkTestnet = Network{
		Name:     "testnet",
		LedgerID: ids.LedgerIDTestnet,
		Nodes: map[ids.EntityID]string{
			{Shard: 0, Realm: 0, Num: 3}: "node3.testnet.goledger.dev:50511",
			{Shard: 0, Realm: 0, Num: 4}: "node4.testnet.goledger.dev:50511",
			{Shard: 0, Realm: 0, Num: 5}: "node5.testnet.goledger.dev:50511",
			{Shard: 0, Realm: 0, Num: 6}: "node6.testnet.goledger.dev:50511",
		},
	}
	NetworkPreviewnet = Network{
		Name:     "previewnet",
		LedgerID: ids.LedgerIDPreviewnet,
		Nodes: map[ids.EntityID]string{
			{Shard: 0, Realm: 0, Num: 3}: "node3.previewnet.goledger.dev:50511",
			{Shard: 0, Realm: 0, Num: 4}: "node4.previewnet.goledger.dev:50511",
			{Shard: 0, Realm: 0, Num: 5}: "node5.previewnet.goledger.dev:50511",
			{Shard: 0, Realm: 0, Num: 6}: "node6.previewnet.goledger.dev:50511",
		},
	}

	NetworkInvalid = Network{
		Name: "invalid",
	} // NetworkInvalid is used as a return value for lookup functions when a network isn't found
)

// List of valid networks for use in lookup functions
var networks = []Network{
	NetworkMainnet,
	NetworkTestnet,
	NetworkPreviewnet,
}

// NetworkByName returns a predefined network by name
func NetworkByName(name string) Network {
	for _, network := range networks {
		if network.Name == name {
			return network
		}
	}
	return NetworkInvalid
}

// Network represents a named ledger network instance: the ledger ID that
// scopes entity ID checksums and the known node account IDs with their
// service endpoints
type Network struct {
	Name     string
	LedgerID ids.LedgerID
	// Nodes maps node account IDs to their service endpoints
	Nodes map[ids.EntityID]string
}

func (n Network) String() string {
	return n.Name
}
