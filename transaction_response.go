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

	"github.com/blinklabs-io/goledger/ids"
)

// TransactionResponse is returned when a node accepts a transaction for
// consensus handling. Acceptance is not success; poll GetReceipt for the
// final outcome.
type TransactionResponse struct {
	TransactionID TransactionID
	NodeAccountID ids.EntityID
	Hash          []byte
}

// GetReceipt polls the accepting node for the transaction's receipt and
// returns it once available. A receipt with a non-success status is returned
// along with a ReceiptStatusError.
func (r *TransactionResponse) GetReceipt(
	ctx context.Context,
	client *Client,
) (*TransactionReceipt, error) {
	q := NewTransactionReceiptQuery()
	q.SetTransactionID(r.TransactionID)
	// pin the query to the node that accepted the transaction
	q.SetNodeAccountIDs([]ids.EntityID{r.NodeAccountID})
	receipt, err := q.Execute(ctx, client)
	if err != nil {
		return nil, err
	}
	if receipt.Status != StatusSuccess {
		return receipt, &ReceiptStatusError{
			Status:        receipt.Status,
			TransactionID: r.TransactionID,
		}
	}
	return receipt, nil
}
