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

// Package goledger implements a client for permissioned ledger networks. It
// covers the transaction lifecycle from construction through freezing,
// signing, and submission, queries with automatic retry against healthy
// nodes, and checksum-validated entity IDs.
package goledger

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/blinklabs-io/goledger/backoff"
	"github.com/blinklabs-io/goledger/ids"
	"github.com/blinklabs-io/goledger/keys"
	"github.com/jonboulle/clockwork"
)

const defaultAttemptTimeout = 10 * time.Second

// Client submits transactions and queries to a ledger network, tracking node
// health and retrying failed attempts. It is safe for concurrent use.
type Client struct {
	network               Network
	networkName           string
	pool                  *nodePool
	transport             Transport
	operatorAccountID     *ids.EntityID
	operatorKey           *keys.PrivateKey
	autoValidateChecksums bool
	requestTimeout        time.Duration
	attemptTimeout        time.Duration
	maxNodeFailures       int
	minReadmitPeriod      time.Duration
	maxReadmitPeriod      time.Duration
	logger                *slog.Logger
	clock                 clockwork.Clock
	onceClose             sync.Once
}

// NewClient returns a Client configured for a network. A network must be
// supplied via WithNetwork or WithNetworkName.
func NewClient(options ...ClientOptionFunc) (*Client, error) {
	c := &Client{
		attemptTimeout:   defaultAttemptTimeout,
		maxNodeFailures:  defaultMaxNodeFailures,
		minReadmitPeriod: defaultMinReadmitPeriod,
		maxReadmitPeriod: defaultMaxReadmitPeriod,
	}
	for _, option := range options {
		if option != nil {
			option(c)
		}
	}
	if c.networkName != "" {
		network := NetworkByName(c.networkName)
		if network.Name == NetworkInvalid.Name {
			return nil, fmt.Errorf("unknown network name: %s", c.networkName)
		}
		c.network = network
	}
	if len(c.network.Nodes) == 0 {
		return nil, fmt.Errorf(
			"network %q has no nodes",
			c.network.Name,
		)
	}
	if c.clock == nil {
		c.clock = clockwork.NewRealClock()
	}
	if c.transport == nil {
		c.transport = newDialTransport()
	}
	if c.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		c.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if c.requestTimeout == 0 {
		c.requestTimeout = backoff.DefaultMaxElapsedTime
	}
	c.pool = newNodePool(
		c.network.Nodes,
		c.clock,
		c.maxNodeFailures,
		c.minReadmitPeriod,
		c.maxReadmitPeriod,
	)
	return c, nil
}

// Close releases the client's transport. It is safe to call multiple times.
func (c *Client) Close() error {
	var err error
	c.onceClose.Do(func() {
		err = c.transport.Close()
	})
	return err
}

// Network returns the network the client operates against
func (c *Client) Network() Network {
	return c.network
}

// LedgerID returns the ledger ID that scopes entity ID checksums for this
// client's network
func (c *Client) LedgerID() ids.LedgerID {
	return c.network.LedgerID
}

// OperatorAccountID returns the configured operator account, or nil if no
// operator was set
func (c *Client) OperatorAccountID() *ids.EntityID {
	return c.operatorAccountID
}
