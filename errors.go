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
	"fmt"

	"github.com/blinklabs-io/goledger/ids"
)

var (
	// ErrNoPayerAccount is returned by freeze when neither an explicit
	// transaction ID nor a client operator supplies the payer account
	ErrNoPayerAccount = errors.New(
		"no payer account: set a transaction ID or configure a client operator",
	)
	// ErrAlreadyFrozen is returned when freezing a transaction twice
	ErrAlreadyFrozen = errors.New("transaction is already frozen")
	// ErrTransactionNotFrozen is returned by operations that require a frozen
	// transaction, such as signing or execution
	ErrTransactionNotFrozen = errors.New("transaction is not frozen")
	// ErrTransactionIsFrozen is returned by setters once a transaction has
	// been frozen
	ErrTransactionIsFrozen = errors.New(
		"transaction is frozen and cannot be modified",
	)
	// ErrNoNodeAccountIDs is returned by freeze when no node account IDs are
	// available, either explicitly or from the client's network
	ErrNoNodeAccountIDs = errors.New("no node account IDs available")
)

// StatusError is returned when a node rejects a request with a terminal
// status
type StatusError struct {
	Status        Status
	TransactionID *TransactionID
	NodeAccountID ids.EntityID
}

func (e *StatusError) Error() string {
	if e.TransactionID != nil {
		return fmt.Sprintf(
			"request failed with status %s for transaction %s (node %s)",
			e.Status,
			e.TransactionID,
			e.NodeAccountID,
		)
	}
	return fmt.Sprintf(
		"request failed with status %s (node %s)",
		e.Status,
		e.NodeAccountID,
	)
}

// TimedOutError is returned when an execution gives up after exhausting its
// time budget. Err holds the last attempt's error, if any.
type TimedOutError struct {
	Err error
}

func (e *TimedOutError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"request timed out, last attempt error: %s",
			e.Err,
		)
	}
	return "request timed out"
}

func (e *TimedOutError) Unwrap() error {
	return e.Err
}

// ReceiptStatusError is returned when a transaction reached consensus but its
// receipt carries a non-success status
type ReceiptStatusError struct {
	Status        Status
	TransactionID TransactionID
}

func (e *ReceiptStatusError) Error() string {
	return fmt.Sprintf(
		"receipt for transaction %s contains status %s",
		e.TransactionID,
		e.Status,
	)
}
