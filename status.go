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

import "fmt"

// Status is the status code carried in a node's response envelope and in
// transaction receipts
type Status uint32

const (
	StatusOK Status = 0

	// Pre-check failures reported when a node refuses a request
	StatusInvalidTransaction       Status = 1
	StatusPayerAccountNotFound     Status = 2
	StatusInvalidNodeAccount       Status = 3
	StatusTransactionExpired       Status = 4
	StatusInvalidTransactionStart  Status = 5
	StatusInvalidSignature         Status = 6
	StatusMemoTooLong              Status = 7
	StatusInsufficientTxFee        Status = 8
	StatusInsufficientPayerBalance Status = 9
	StatusDuplicateTransaction     Status = 10
	StatusBusy                     Status = 11
	StatusNotSupported             Status = 12
	StatusPlatformNotActive        Status = 13
	StatusInvalidAccountID         Status = 14
	StatusInvalidTopicID           Status = 15

	// Receipt statuses
	StatusUnknown         Status = 21
	StatusSuccess         Status = 22
	StatusReceiptNotFound Status = 23
	StatusRecordNotFound  Status = 24
)

func (s Status) String() string {
	tmp := map[Status]string{
		StatusOK:                       "OK",
		StatusInvalidTransaction:       "InvalidTransaction",
		StatusPayerAccountNotFound:     "PayerAccountNotFound",
		StatusInvalidNodeAccount:       "InvalidNodeAccount",
		StatusTransactionExpired:       "TransactionExpired",
		StatusInvalidTransactionStart:  "InvalidTransactionStart",
		StatusInvalidSignature:         "InvalidSignature",
		StatusMemoTooLong:              "MemoTooLong",
		StatusInsufficientTxFee:        "InsufficientTxFee",
		StatusInsufficientPayerBalance: "InsufficientPayerBalance",
		StatusDuplicateTransaction:     "DuplicateTransaction",
		StatusBusy:                     "Busy",
		StatusNotSupported:             "NotSupported",
		StatusPlatformNotActive:        "PlatformNotActive",
		StatusInvalidAccountID:         "InvalidAccountID",
		StatusInvalidTopicID:           "InvalidTopicID",
		StatusUnknown:                  "Unknown",
		StatusSuccess:                  "Success",
		StatusReceiptNotFound:          "ReceiptNotFound",
		StatusRecordNotFound:           "RecordNotFound",
	}
	ret, ok := tmp[s]
	if !ok {
		return fmt.Sprintf("Unrecognized(%d)", uint32(s))
	}
	return ret
}
