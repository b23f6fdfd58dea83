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
	"context"
	"errors"
	"time"

	"github.com/blinklabs-io/goledger/backoff"
	"github.com/blinklabs-io/goledger/cbor"
	"github.com/jonboulle/clockwork"
)

// Poll interval while waiting for a receipt to become available
const defaultReceiptPollInterval = 250 * time.Millisecond

// TransactionReceiptQuery polls a node for a transaction's receipt. A
// receipt that is not yet available is retried at a fixed interval until the
// execution's time budget runs out.
type TransactionReceiptQuery struct {
	query
	transactionID *TransactionID
}

// NewTransactionReceiptQuery returns an empty receipt query
func NewTransactionReceiptQuery() *TransactionReceiptQuery {
	return &TransactionReceiptQuery{}
}

// SetTransactionID sets the transaction to fetch the receipt of
func (q *TransactionReceiptQuery) SetTransactionID(id TransactionID) {
	q.transactionID = &id
}

func (q *TransactionReceiptQuery) operation() string {
	return "getTransactionReceipt"
}

func (q *TransactionReceiptQuery) requestPayload() ([]byte, error) {
	if q.transactionID == nil {
		return nil, errors.New("no transaction ID set")
	}
	return cbor.Encode(&wireReceiptRequest{
		TransactionID: q.transactionID.String(),
	})
}

// shouldRetryStatus keeps polling when the node has not yet seen the receipt
func (q *TransactionReceiptQuery) shouldRetryStatus(status Status) bool {
	switch status {
	case StatusUnknown, StatusReceiptNotFound:
		return true
	}
	return false
}

// shouldRetryPayload keeps polling when a receipt was returned but the
// transaction has not reached a final status yet
func (q *TransactionReceiptQuery) shouldRetryPayload(payload []byte) bool {
	var receipt wireReceipt
	if _, err := cbor.Decode(payload, &receipt); err != nil {
		return false
	}
	switch Status(receipt.Status) {
	case StatusUnknown, StatusReceiptNotFound:
		return true
	}
	return false
}

// retryPolicy polls at a fixed interval rather than backing off
// exponentially, since an unavailable receipt is expected shortly after
// submission
func (q *TransactionReceiptQuery) retryPolicy(
	clock clockwork.Clock,
) *backoff.ExponentialBackoff {
	b := &backoff.ExponentialBackoff{
		InitialInterval: defaultReceiptPollInterval,
		Multiplier:      1,
		MaxInterval:     defaultReceiptPollInterval,
		MaxElapsedTime:  backoff.DefaultMaxElapsedTime,
		Clock:           clock,
	}
	b.Reset()
	return b
}

// Execute polls for the receipt and returns it once available
func (q *TransactionReceiptQuery) Execute(
	ctx context.Context,
	client *Client,
) (*TransactionReceipt, error) {
	_, payload, err := client.executeAny(ctx, q)
	if err != nil {
		return nil, err
	}
	var receipt wireReceipt
	if _, err := cbor.Decode(payload, &receipt); err != nil {
		return nil, err
	}
	return &TransactionReceipt{
		Status:              Status(receipt.Status),
		TopicSequenceNumber: receipt.TopicSequenceNumber,
	}, nil
}
