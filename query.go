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

	"github.com/blinklabs-io/goledger/backoff"
	"github.com/blinklabs-io/goledger/cbor"
	"github.com/blinklabs-io/goledger/ids"
	"github.com/jonboulle/clockwork"
)

// query carries the execution state shared by all query types
type query struct {
	nodeAccountIDs []ids.EntityID
}

// SetNodeAccountIDs restricts the query to an explicit set of nodes. When
// unset, execution samples healthy nodes from the client's network.
func (q *query) SetNodeAccountIDs(nodeIDs []ids.EntityID) {
	q.nodeAccountIDs = append([]ids.EntityID{}, nodeIDs...)
}

func (q *query) candidateNodeIDs() []ids.EntityID {
	return q.nodeAccountIDs
}

func (q *query) executionTransactionID() *TransactionID {
	return nil
}

func (q *query) validateChecksums(ledger ids.LedgerID) error {
	return nil
}

func (q *query) shouldRetryStatus(status Status) bool {
	return false
}

func (q *query) shouldRetryPayload(payload []byte) bool {
	return false
}

func (q *query) retryPolicy(
	clock clockwork.Clock,
) *backoff.ExponentialBackoff {
	return nil
}

// AccountBalanceQuery fetches an account's current balance from a single
// node. Balance queries are free and require no signature.
type AccountBalanceQuery struct {
	query
	accountID *AccountID
}

// AccountBalance is the result of an AccountBalanceQuery
type AccountBalance struct {
	Balance uint64
}

// NewAccountBalanceQuery returns an empty balance query
func NewAccountBalanceQuery() *AccountBalanceQuery {
	return &AccountBalanceQuery{}
}

// SetAccountID sets the account to fetch the balance of
func (q *AccountBalanceQuery) SetAccountID(accountID AccountID) {
	q.accountID = &accountID
}

func (q *AccountBalanceQuery) operation() string {
	return "cryptoGetBalance"
}

type (
	wireBalanceRequest struct {
		cbor.StructAsArray
		AccountID string
	}
	wireBalanceResponse struct {
		cbor.StructAsArray
		Balance uint64
	}
)

func (q *AccountBalanceQuery) requestPayload() ([]byte, error) {
	if q.accountID == nil {
		return nil, errors.New("no account ID set")
	}
	return cbor.Encode(&wireBalanceRequest{
		AccountID: q.accountID.EntityID.String(),
	})
}

func (q *AccountBalanceQuery) validateChecksums(ledger ids.LedgerID) error {
	if q.accountID == nil {
		return nil
	}
	return q.accountID.validateChecksum(ledger)
}

// Execute submits the query and returns the account's balance
func (q *AccountBalanceQuery) Execute(
	ctx context.Context,
	client *Client,
) (*AccountBalance, error) {
	_, payload, err := client.executeAny(ctx, q)
	if err != nil {
		return nil, err
	}
	var response wireBalanceResponse
	if _, err := cbor.Decode(payload, &response); err != nil {
		return nil, err
	}
	return &AccountBalance{Balance: response.Balance}, nil
}
