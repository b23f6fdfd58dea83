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

import "github.com/blinklabs-io/goledger/cbor"

// TransactionReceipt records the consensus outcome of a transaction. For
// topic message submissions it also carries the assigned sequence number.
type TransactionReceipt struct {
	Status              Status
	TopicSequenceNumber uint64
}

// Wire forms for receipt queries
type (
	wireReceiptRequest struct {
		cbor.StructAsArray
		TransactionID string
	}
	wireReceipt struct {
		cbor.StructAsArray
		Status              uint32
		TopicSequenceNumber uint64
	}
)
