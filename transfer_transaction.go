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
	"errors"

	"github.com/blinklabs-io/goledger/cbor"
	"github.com/blinklabs-io/goledger/ids"
	"github.com/jinzhu/copier"
)

// Transfer is a single signed balance adjustment within a transfer
// transaction
type Transfer struct {
	AccountID AccountID
	Amount    int64
}

// TransferTransaction moves value between accounts. The debits and credits
// across all transfers must balance to zero.
type TransferTransaction struct {
	Transaction
	transfers []Transfer
}

// NewTransferTransaction returns an empty transfer transaction
func NewTransferTransaction() *TransferTransaction {
	t := &TransferTransaction{}
	t.Transaction = newTransaction(t)
	return t
}

// AddTransfer adds a balance adjustment for an account. Adjustments for the
// same account are merged.
func (t *TransferTransaction) AddTransfer(
	accountID AccountID,
	amount int64,
) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}
	for i, transfer := range t.transfers {
		if transfer.AccountID.EntityID == accountID.EntityID {
			t.transfers[i].Amount += amount
			return nil
		}
	}
	t.transfers = append(t.transfers, Transfer{
		AccountID: accountID,
		Amount:    amount,
	})
	return nil
}

// Transfers returns a deep copy of the accumulated balance adjustments
func (t *TransferTransaction) Transfers() []Transfer {
	var ret []Transfer
	if err := copier.CopyWithOption(
		&ret,
		t.transfers,
		copier.Option{DeepCopy: true},
	); err != nil {
		return nil
	}
	return ret
}

func (t *TransferTransaction) operationName() string {
	return "cryptoTransfer"
}

type wireTransfer struct {
	cbor.StructAsArray
	AccountID string
	Amount    int64
}

func (t *TransferTransaction) bodyData() (any, error) {
	var sum int64
	wire := make([]wireTransfer, 0, len(t.transfers))
	for _, transfer := range t.transfers {
		sum += transfer.Amount
		wire = append(wire, wireTransfer{
			AccountID: transfer.AccountID.EntityID.String(),
			Amount:    transfer.Amount,
		})
	}
	if sum != 0 {
		return nil, errors.New("transfers do not balance to zero")
	}
	return wire, nil
}

func (t *TransferTransaction) validateChecksums(ledger ids.LedgerID) error {
	for _, transfer := range t.transfers {
		if err := transfer.AccountID.validateChecksum(ledger); err != nil {
			return err
		}
	}
	return nil
}
