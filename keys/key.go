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

package keys

import (
	"fmt"

	"github.com/blinklabs-io/goledger/cbor"
	"github.com/blinklabs-io/goledger/ids"
)

// ContractAuthFunc reports whether the current call is authorized by the given
// contract. Contract-keyed authorization is decided outside this package, so
// satisfaction checks take it as an oracle. A nil func authorizes nothing.
type ContractAuthFunc func(contractID ids.EntityID) bool

// SignatureSet is the set of public keys that have provided a valid signature
type SignatureSet map[string]struct{}

// NewSignatureSet returns a SignatureSet containing the given public keys
func NewSignatureSet(pubKeys ...PublicKey) SignatureSet {
	s := make(SignatureSet, len(pubKeys))
	for _, pubKey := range pubKeys {
		s.Add(pubKey)
	}
	return s
}

// Add adds a public key to the set
func (s SignatureSet) Add(pubKey PublicKey) {
	s[pubKey.String()] = struct{}{}
}

// Contains reports whether the set contains the given public key
func (s SignatureSet) Contains(pubKey PublicKey) bool {
	_, ok := s[pubKey.String()]
	return ok
}

// Key is any method that can be used to authorize an operation on the ledger.
// It is a closed set of variants: KeySingle, KeyContractID,
// KeyDelegatableContractID, and KeyList. Keys are immutable value types with
// structural equality.
type Key interface {
	// IsSatisfiedBy reports whether the provided signatures (and contract
	// authorization oracle) satisfy this key
	IsSatisfiedBy(sigs SignatureSet, auth ContractAuthFunc) bool
	isKey()
}

// KeySingle is satisfied by a signature from exactly one public key
type KeySingle struct {
	Key PublicKey
}

func (k KeySingle) isKey() {}

func (k KeySingle) IsSatisfiedBy(
	sigs SignatureSet,
	_ ContractAuthFunc,
) bool {
	return sigs.Contains(k.Key)
}

// KeyContractID is satisfied when the call is authorized by the given contract
type KeyContractID struct {
	ContractID ids.EntityID
}

func (k KeyContractID) isKey() {}

func (k KeyContractID) IsSatisfiedBy(
	_ SignatureSet,
	auth ContractAuthFunc,
) bool {
	return auth != nil && auth(k.ContractID)
}

// KeyDelegatableContractID is like KeyContractID but also grants authorization
// through delegate calls made by the contract
type KeyDelegatableContractID struct {
	ContractID ids.EntityID
}

func (k KeyDelegatableContractID) isKey() {}

func (k KeyDelegatableContractID) IsSatisfiedBy(
	_ SignatureSet,
	auth ContractAuthFunc,
) bool {
	return auth != nil && auth(k.ContractID)
}

// KeyList is an ordered list of keys. With a non-zero Threshold it is
// satisfied when at least Threshold member keys are satisfied; with a zero
// Threshold every member is required. Members may themselves be KeyLists.
type KeyList struct {
	Keys      []Key
	Threshold uint32
}

func (k KeyList) isKey() {}

func (k KeyList) IsSatisfiedBy(
	sigs SignatureSet,
	auth ContractAuthFunc,
) bool {
	required := len(k.Keys)
	if k.Threshold > 0 {
		required = int(k.Threshold)
	}
	satisfied := 0
	for _, member := range k.Keys {
		if member.IsSatisfiedBy(sigs, auth) {
			satisfied++
			if satisfied >= required {
				return true
			}
		}
	}
	return satisfied >= required
}

// Variant tags for the wire encoding of keys
const (
	keyKindSingle                uint8 = 1
	keyKindContractID            uint8 = 2
	keyKindDelegatableContractID uint8 = 3
	keyKindList                  uint8 = 4
)

type keyEnvelope struct {
	cbor.StructAsArray
	Kind uint8
	Body cbor.RawMessage
}

type entityIDBody struct {
	cbor.StructAsArray
	Shard uint64
	Realm uint64
	Num   uint64
}

type keyListBody struct {
	cbor.StructAsArray
	Threshold uint32
	Keys      []cbor.RawMessage
}

// MarshalKey serializes a key into its variant-tagged wire form. Member order
// in key lists is preserved.
func MarshalKey(k Key) ([]byte, error) {
	var kind uint8
	var body any
	switch key := k.(type) {
	case KeySingle:
		kind = keyKindSingle
		body = key.Key.Bytes()
	case KeyContractID:
		kind = keyKindContractID
		body = entityIDBody{
			Shard: key.ContractID.Shard,
			Realm: key.ContractID.Realm,
			Num:   key.ContractID.Num,
		}
	case KeyDelegatableContractID:
		kind = keyKindDelegatableContractID
		body = entityIDBody{
			Shard: key.ContractID.Shard,
			Realm: key.ContractID.Realm,
			Num:   key.ContractID.Num,
		}
	case KeyList:
		members := make([]cbor.RawMessage, 0, len(key.Keys))
		for _, member := range key.Keys {
			data, err := MarshalKey(member)
			if err != nil {
				return nil, err
			}
			members = append(members, data)
		}
		kind = keyKindList
		body = keyListBody{
			Threshold: key.Threshold,
			Keys:      members,
		}
	default:
		return nil, fmt.Errorf("unknown key variant: %T", k)
	}
	bodyData, err := cbor.Encode(body)
	if err != nil {
		return nil, err
	}
	return cbor.Encode(
		keyEnvelope{
			Kind: kind,
			Body: bodyData,
		},
	)
}

// UnmarshalKey deserializes a key from its variant-tagged wire form
func UnmarshalKey(data []byte) (Key, error) {
	var env keyEnvelope
	if _, err := cbor.Decode(data, &env); err != nil {
		return nil, err
	}
	switch env.Kind {
	case keyKindSingle:
		var keyBytes []byte
		if _, err := cbor.Decode(env.Body, &keyBytes); err != nil {
			return nil, err
		}
		pubKey, err := PublicKeyFromBytes(keyBytes)
		if err != nil {
			return nil, err
		}
		return KeySingle{Key: pubKey}, nil
	case keyKindContractID, keyKindDelegatableContractID:
		var body entityIDBody
		if _, err := cbor.Decode(env.Body, &body); err != nil {
			return nil, err
		}
		contractID := ids.EntityID{
			Shard: body.Shard,
			Realm: body.Realm,
			Num:   body.Num,
		}
		if env.Kind == keyKindDelegatableContractID {
			return KeyDelegatableContractID{ContractID: contractID}, nil
		}
		return KeyContractID{ContractID: contractID}, nil
	case keyKindList:
		var body keyListBody
		if _, err := cbor.Decode(env.Body, &body); err != nil {
			return nil, err
		}
		members := make([]Key, 0, len(body.Keys))
		for _, memberData := range body.Keys {
			member, err := UnmarshalKey(memberData)
			if err != nil {
				return nil, err
			}
			members = append(members, member)
		}
		return KeyList{
			Keys:      members,
			Threshold: body.Threshold,
		}, nil
	default:
		return nil, fmt.Errorf("unknown key variant tag: %d", env.Kind)
	}
}
