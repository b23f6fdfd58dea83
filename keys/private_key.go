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

// Package keys implements the polymorphic authorization model for the ledger:
// single ed25519 keys, contract-derived keys, and (possibly nested) threshold
// key lists, along with their wire encoding.
package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// PrivateKey is an ed25519 private key used to sign frozen transactions
type PrivateKey struct {
	key ed25519.PrivateKey
}

// GeneratePrivateKey generates a new random private key
func GeneratePrivateKey() (PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return PrivateKey{}, err
	}
	return PrivateKey{key: priv}, nil
}

// PrivateKeyFromBytes creates a private key from either a 32-byte seed or a
// 64-byte expanded key
func PrivateKeyFromBytes(data []byte) (PrivateKey, error) {
	switch len(data) {
	case ed25519.SeedSize:
		return PrivateKey{key: ed25519.NewKeyFromSeed(data)}, nil
	case ed25519.PrivateKeySize:
		return PrivateKey{
			key: ed25519.PrivateKey(append([]byte{}, data...)),
		}, nil
	default:
		return PrivateKey{}, fmt.Errorf(
			"invalid private key length: %d",
			len(data),
		)
	}
}

// PrivateKeyFromString creates a private key from a hex string
func PrivateKeyFromString(s string) (PrivateKey, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return PrivateKey{}, fmt.Errorf("invalid private key: %w", err)
	}
	return PrivateKeyFromBytes(data)
}

// Sign signs the provided message
func (k PrivateKey) Sign(message []byte) []byte {
	return ed25519.Sign(k.key, message)
}

// PublicKey returns the public key corresponding to this private key
func (k PrivateKey) PublicKey() PublicKey {
	return PublicKey{
		key: append(
			ed25519.PublicKey{},
			k.key.Public().(ed25519.PublicKey)...,
		),
	}
}

// Bytes returns the 32-byte seed form of the private key
func (k PrivateKey) Bytes() []byte {
	return append([]byte{}, k.key.Seed()...)
}

func (k PrivateKey) String() string {
	return hex.EncodeToString(k.key.Seed())
}
