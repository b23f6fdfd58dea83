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
	"encoding/binary"
	"fmt"
	"io"
	"net"
)

// Maximum accepted response payload size
const maxResponseLength = 1 << 20

// Transport delivers a serialized request envelope to a node endpoint and
// returns the serialized response envelope. Implementations must be safe for
// concurrent use.
type Transport interface {
	Submit(
		ctx context.Context,
		endpoint string,
		request []byte,
	) ([]byte, error)
	Close() error
}

// dialTransport is the default Transport. It opens a fresh TCP connection per
// attempt and frames messages with a 4-byte big-endian length prefix.
type dialTransport struct {
	dialer net.Dialer
}

func newDialTransport() *dialTransport {
	return &dialTransport{}
}

func (t *dialTransport) Submit(
	ctx context.Context,
	endpoint string,
	request []byte,
) ([]byte, error) {
	conn, err := t.dialer.DialContext(ctx, "tcp", endpoint)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", endpoint, err)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, err
		}
	}
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(request)))
	if _, err := conn.Write(length[:]); err != nil {
		return nil, fmt.Errorf("write request: %w", err)
	}
	if _, err := conn.Write(request); err != nil {
		return nil, fmt.Errorf("write request: %w", err)
	}
	if _, err := io.ReadFull(conn, length[:]); err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	respLen := binary.BigEndian.Uint32(length[:])
	if respLen > maxResponseLength {
		return nil, fmt.Errorf(
			"response length %d exceeds maximum %d",
			respLen,
			maxResponseLength,
		)
	}
	response := make([]byte, respLen)
	if _, err := io.ReadFull(conn, response); err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return response, nil
}

// Close is a no-op since connections are scoped to single attempts
func (t *dialTransport) Close() error {
	return nil
}
