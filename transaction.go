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
	"github.com/blinklabs-io/goledger/ids"
	"github.com/blinklabs-io/goledger/keys"
	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/blake2b"
)

const defaultValidDuration = 2 * time.Minute

// transactionBody is implemented by each concrete transaction type. It
// supplies the operation-specific portion of the frozen body.
type transactionBody interface {
	operationName() string
	bodyData() (any, error)
	validateChecksums(ledger ids.LedgerID) error
}

// transactionBodyEnvelope is the canonical serialized form covered by
// signatures
type transactionBodyEnvelope struct {
	cbor.StructAsArray
	TransactionID        string
	NodeAccountIDs       []string
	MaxTransactionFee    uint64
	ValidDurationSeconds int64
	Memo                 string
	Operation            string
	Data                 cbor.RawMessage
}

type signaturePair struct {
	publicKey keys.PublicKey
	signature []byte
}

// Transaction carries the lifecycle state shared by all transaction types:
// common fields settable before freezing, the frozen body bytes, and the
// accumulated signatures. Embedded by concrete transaction types.
type Transaction struct {
	body              transactionBody
	memo              string
	maxTransactionFee uint64
	validDuration     time.Duration
	nodeAccountIDs    []ids.EntityID
	transactionID     *TransactionID
	frozen            bool
	bodyBytes         []byte
	hash              []byte
	signatures        []signaturePair
}

func newTransaction(body transactionBody) Transaction {
	return Transaction{
		body:          body,
		validDuration: defaultValidDuration,
	}
}

func (t *Transaction) requireNotFrozen() error {
	if t.frozen {
		return ErrTransactionIsFrozen
	}
	return nil
}

func (t *Transaction) requireFrozen() error {
	if !t.frozen {
		return ErrTransactionNotFrozen
	}
	return nil
}

// SetMemo attaches a short free-form note to the transaction
func (t *Transaction) SetMemo(memo string) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}
	t.memo = memo
	return nil
}

// SetMaxTransactionFee caps the fee the payer is willing to be charged
func (t *Transaction) SetMaxTransactionFee(fee uint64) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}
	t.maxTransactionFee = fee
	return nil
}

// SetTransactionValidDuration sets how long past the valid-start time the
// network will accept the transaction. Defaults to 2 minutes.
func (t *Transaction) SetTransactionValidDuration(d time.Duration) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}
	t.validDuration = d
	return nil
}

// SetNodeAccountIDs restricts submission to an explicit set of nodes. When
// unset, freezing samples healthy nodes from the client's network.
func (t *Transaction) SetNodeAccountIDs(nodeIDs []ids.EntityID) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}
	t.nodeAccountIDs = append([]ids.EntityID{}, nodeIDs...)
	return nil
}

// SetTransactionID sets an explicit transaction ID, overriding the payer
// account that would otherwise come from the client operator
func (t *Transaction) SetTransactionID(id TransactionID) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}
	t.transactionID = &id
	return nil
}

// TransactionID returns the transaction's ID, or nil before it is assigned
func (t *Transaction) TransactionID() *TransactionID {
	return t.transactionID
}

// NodeAccountIDs returns the node accounts the transaction may be submitted
// to
func (t *Transaction) NodeAccountIDs() []ids.EntityID {
	return append([]ids.EntityID{}, t.nodeAccountIDs...)
}

// Freeze locks the transaction's contents without consulting a client. A
// transaction ID and node account IDs must have been set explicitly.
func (t *Transaction) Freeze() error {
	return t.FreezeWith(nil)
}

// FreezeWith locks the transaction's contents, filling the transaction ID
// from the client's operator and the node list from the client's healthy
// nodes when they were not set explicitly. After freezing, the body bytes and
// hash are fixed and only signatures may be added.
func (t *Transaction) FreezeWith(client *Client) error {
	if t.frozen {
		return ErrAlreadyFrozen
	}
	if t.body == nil {
		return errors.New("transaction has no body")
	}
	if t.transactionID == nil {
		if client == nil || client.operatorAccountID == nil {
			return ErrNoPayerAccount
		}
		id := NewTransactionID(*client.operatorAccountID)
		t.transactionID = &id
	}
	if len(t.nodeAccountIDs) == 0 {
		if client == nil {
			return ErrNoNodeAccountIDs
		}
		t.nodeAccountIDs = client.pool.healthyNodes()
		if len(t.nodeAccountIDs) == 0 {
			return ErrNoNodeAccountIDs
		}
	}
	data, err := t.body.bodyData()
	if err != nil {
		return err
	}
	dataBytes, err := cbor.Encode(data)
	if err != nil {
		return err
	}
	nodeIDs := make([]string, 0, len(t.nodeAccountIDs))
	for _, nodeID := range t.nodeAccountIDs {
		nodeIDs = append(nodeIDs, nodeID.String())
	}
	envelope := transactionBodyEnvelope{
		TransactionID:        t.transactionID.String(),
		NodeAccountIDs:       nodeIDs,
		MaxTransactionFee:    t.maxTransactionFee,
		ValidDurationSeconds: int64(t.validDuration.Seconds()),
		Memo:                 t.memo,
		Operation:            t.body.operationName(),
		Data:                 dataBytes,
	}
	bodyBytes, err := cbor.Encode(&envelope)
	if err != nil {
		return err
	}
	hash := blake2b.Sum256(bodyBytes)
	t.bodyBytes = bodyBytes
	t.hash = hash[:]
	t.frozen = true
	return nil
}

// IsFrozen reports whether the transaction's contents are locked
func (t *Transaction) IsFrozen() bool {
	return t.frozen
}

// Sign signs the frozen body with a private key. Signing with the same key
// twice replaces the previous signature.
func (t *Transaction) Sign(privateKey keys.PrivateKey) error {
	return t.SignWith(
		privateKey.PublicKey(),
		func(message []byte) []byte {
			return privateKey.Sign(message)
		},
	)
}

// SignWith signs the frozen body using an external signer function, for keys
// held outside the process
func (t *Transaction) SignWith(
	publicKey keys.PublicKey,
	signer func(message []byte) []byte,
) error {
	if err := t.requireFrozen(); err != nil {
		return err
	}
	t.addSignaturePair(publicKey, signer(t.bodyBytes))
	return nil
}

// AddSignature attaches a signature produced elsewhere over the frozen body
// bytes
func (t *Transaction) AddSignature(
	publicKey keys.PublicKey,
	signature []byte,
) error {
	if err := t.requireFrozen(); err != nil {
		return err
	}
	t.addSignaturePair(publicKey, signature)
	return nil
}

// SignWithOperator freezes the transaction with the client if needed, then
// signs with the client's operator key
func (t *Transaction) SignWithOperator(client *Client) error {
	if client == nil || client.operatorKey == nil {
		return errors.New("client has no operator configured")
	}
	if !t.frozen {
		if err := t.FreezeWith(client); err != nil {
			return err
		}
	}
	return t.Sign(*client.operatorKey)
}

func (t *Transaction) addSignaturePair(
	publicKey keys.PublicKey,
	signature []byte,
) {
	for i, pair := range t.signatures {
		if pair.publicKey.Equal(publicKey) {
			t.signatures[i].signature = signature
			return
		}
	}
	t.signatures = append(t.signatures, signaturePair{
		publicKey: publicKey,
		signature: signature,
	})
}

// Signatures returns the public keys that have signed the transaction
func (t *Transaction) Signatures() []keys.PublicKey {
	ret := make([]keys.PublicKey, 0, len(t.signatures))
	for _, pair := range t.signatures {
		ret = append(ret, pair.publicKey)
	}
	return ret
}

// Hash returns the blake2b-256 hash of the frozen body bytes, or nil before
// freezing
func (t *Transaction) Hash() []byte {
	return append([]byte{}, t.hash...)
}

// Wire forms for signed transaction submission
type (
	wireSignaturePair struct {
		cbor.StructAsArray
		PublicKey []byte
		Signature []byte
	}
	signedTransaction struct {
		cbor.StructAsArray
		Body       []byte
		Signatures []wireSignaturePair
	}
)

// executable implementation shared by all transaction types

func (t *Transaction) operation() string {
	return t.body.operationName()
}

func (t *Transaction) candidateNodeIDs() []ids.EntityID {
	return t.nodeAccountIDs
}

func (t *Transaction) executionTransactionID() *TransactionID {
	return t.transactionID
}

func (t *Transaction) requestPayload() ([]byte, error) {
	pairs := make([]wireSignaturePair, 0, len(t.signatures))
	for _, pair := range t.signatures {
		pairs = append(pairs, wireSignaturePair{
			PublicKey: pair.publicKey.Bytes(),
			Signature: pair.signature,
		})
	}
	return cbor.Encode(&signedTransaction{
		Body:       t.bodyBytes,
		Signatures: pairs,
	})
}

func (t *Transaction) validateChecksums(ledger ids.LedgerID) error {
	return t.body.validateChecksums(ledger)
}

func (t *Transaction) shouldRetryStatus(status Status) bool {
	return false
}

func (t *Transaction) shouldRetryPayload(payload []byte) bool {
	return false
}

func (t *Transaction) retryPolicy(
	clock clockwork.Clock,
) *backoff.ExponentialBackoff {
	return nil
}

// Execute submits the frozen, signed transaction to the network and returns
// once a node accepts it. Acceptance means the transaction entered consensus
// handling; use the response's GetReceipt to learn the final outcome.
func (t *Transaction) Execute(
	ctx context.Context,
	client *Client,
) (*TransactionResponse, error) {
	if err := t.requireFrozen(); err != nil {
		return nil, err
	}
	nodeID, _, err := client.executeAny(ctx, t)
	if err != nil {
		return nil, err
	}
	return &TransactionResponse{
		TransactionID: *t.transactionID,
		NodeAccountID: nodeID,
		Hash:          t.Hash(),
	}, nil
}
