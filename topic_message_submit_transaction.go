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
)

// TopicID identifies a consensus topic on the ledger
type TopicID struct {
	ids.EntityID
	Checksum *ids.Checksum
}

// TopicIDFromString parses a topic ID of the form "shard.realm.num" with an
// optional "-abcde" checksum suffix
func TopicIDFromString(s string) (TopicID, error) {
	entityID, checksum, err := ids.ParseEntityID(s)
	if err != nil {
		return TopicID{}, err
	}
	return TopicID{
		EntityID: entityID,
		Checksum: checksum,
	}, nil
}

func (t TopicID) validateChecksum(ledger ids.LedgerID) error {
	if t.Checksum == nil {
		return nil
	}
	return ids.ValidateChecksum(t.EntityID, *t.Checksum, ledger)
}

// TopicMessageSubmitTransaction publishes a message to a consensus topic.
// The receipt for a successful submission carries the sequence number the
// message was assigned.
type TopicMessageSubmitTransaction struct {
	Transaction
	topicID *TopicID
	message []byte
}

// NewTopicMessageSubmitTransaction returns an empty topic message submission
func NewTopicMessageSubmitTransaction() *TopicMessageSubmitTransaction {
	t := &TopicMessageSubmitTransaction{}
	t.Transaction = newTransaction(t)
	return t
}

// SetTopicID sets the topic to publish to
func (t *TopicMessageSubmitTransaction) SetTopicID(topicID TopicID) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}
	t.topicID = &topicID
	return nil
}

// SetMessage sets the message payload
func (t *TopicMessageSubmitTransaction) SetMessage(message []byte) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}
	t.message = append([]byte{}, message...)
	return nil
}

func (t *TopicMessageSubmitTransaction) operationName() string {
	return "consensusSubmitMessage"
}

type wireTopicMessage struct {
	cbor.StructAsArray
	TopicID string
	Message []byte
}

func (t *TopicMessageSubmitTransaction) bodyData() (any, error) {
	if t.topicID == nil {
		return nil, errors.New("no topic ID set")
	}
	return &wireTopicMessage{
		TopicID: t.topicID.EntityID.String(),
		Message: t.message,
	}, nil
}

func (t *TopicMessageSubmitTransaction) validateChecksums(
	ledger ids.LedgerID,
) error {
	if t.topicID == nil {
		return nil
	}
	return t.topicID.validateChecksum(ledger)
}
