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
	"crypto/ed25519"
	"encoding/hex"
	"fmt"

	"filippo.io/edwards25519"
)

// PublicKey is an ed25519 public key. It identifies a signer in a
// transaction's signature map and in Key variants.
type PublicKey struct {
	key ed25519.PublicKey
}

// PublicKeyFromBytes creates a public key from its 32-byte encoding. The
// encoding must be a canonical curve point.
func PublicKeyFromBytes(data []byte) (PublicKey, error) {
	if len(data) != ed25519.PublicKeySize {
		return PublicKey{}, fmt.Errorf(
			"invalid public key length: %d",
			len(data),
		)
	}
	if _, err := new(edwards25519.Point).SetBytes(data); err != nil {
		return PublicKey{}, fmt.Errorf("invalid public key: %w", err)
	}
	return PublicKey{
		key: append(ed25519.PublicKey{}, data...),
	}, nil
}

// PublicKeyFromString creates a public key from a hex string
func PublicKeyFromString(s string) (PublicKey, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return PublicKey{}, fmt.Errorf("invalid public key: %w", err)
	}
	return PublicKeyFromBytes(data)
}

// Verify reports whether the signature over the message was produced by the
// private key corresponding to this public key
func (k PublicKey) Verify(message []byte, signature []byte) bool {
	return ed25519.Verify(k.key, message, signature)
}

// Bytes returns the 32-byte encoding of the public key
func (k PublicKey) Bytes() []byte {
	return append([]byte{}, k.key...)
}

func (k PublicKey) String() string {
	return hex.EncodeToString(k.key)
}

// Equal reports whether two public keys are the same key
func (k PublicKey) Equal(other PublicKey) bool {
	return k.key.Equal(other.key)
}
