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
	"log/slog"
	"time"

	"github.com/blinklabs-io/goledger/ids"
	"github.com/blinklabs-io/goledger/keys"
	"github.com/jonboulle/clockwork"
)

// ClientOptionFunc is a type that represents functional options for the
// Client
type ClientOptionFunc func(*Client)

// WithNetwork specifies the network to operate against
func WithNetwork(network Network) ClientOptionFunc {
	return func(c *Client) {
		c.network = network
	}
}

// WithNetworkName specifies the network to operate against by name, such as
// "mainnet" or "testnet"
func WithNetworkName(networkName string) ClientOptionFunc {
	return func(c *Client) {
		c.networkName = networkName
	}
}

// WithOperator specifies the default payer account and its signing key.
// Transactions frozen without an explicit transaction ID draw their payer
// from the operator, and SignWithOperator signs with its key.
func WithOperator(
	accountID ids.EntityID,
	operatorKey keys.PrivateKey,
) ClientOptionFunc {
	return func(c *Client) {
		c.operatorAccountID = &accountID
		c.operatorKey = &operatorKey
	}
}

// WithTransport specifies the transport used to submit requests to nodes.
// Defaults to a TCP transport with length-prefixed framing.
func WithTransport(transport Transport) ClientOptionFunc {
	return func(c *Client) {
		c.transport = transport
	}
}

// WithLogger specifies the logger. Defaults to a logger that discards all
// output.
func WithLogger(logger *slog.Logger) ClientOptionFunc {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithAutoValidateChecksums enables validation of entity ID checksums against
// the client's ledger before any request is submitted
func WithAutoValidateChecksums(autoValidate bool) ClientOptionFunc {
	return func(c *Client) {
		c.autoValidateChecksums = autoValidate
	}
}

// WithRequestTimeout specifies the total time budget for a single execution,
// spanning all attempts and backoff waits. Defaults to the backoff package's
// maximum elapsed time.
func WithRequestTimeout(timeout time.Duration) ClientOptionFunc {
	return func(c *Client) {
		c.requestTimeout = timeout
	}
}

// WithAttemptTimeout specifies the time budget for a single attempt against
// a single node. Defaults to 10 seconds.
func WithAttemptTimeout(timeout time.Duration) ClientOptionFunc {
	return func(c *Client) {
		c.attemptTimeout = timeout
	}
}

// WithMaxNodeFailures specifies how many consecutive failures sideline a
// node. Defaults to 3.
func WithMaxNodeFailures(maxFailures int) ClientOptionFunc {
	return func(c *Client) {
		c.maxNodeFailures = maxFailures
	}
}

// WithNodeReadmitPeriods specifies the minimum and maximum periods a
// sidelined node is kept out of rotation. The period starts at the minimum
// and doubles on each subsequent sideline, bounded by the maximum.
func WithNodeReadmitPeriods(
	minPeriod time.Duration,
	maxPeriod time.Duration,
) ClientOptionFunc {
	return func(c *Client) {
		c.minReadmitPeriod = minPeriod
		c.maxReadmitPeriod = maxPeriod
	}
}

// withClock overrides the clock used for timeouts, backoff, and node health
// bookkeeping. Used in tests.
func withClock(clock clockwork.Clock) ClientOptionFunc {
	return func(c *Client) {
		c.clock = clock
	}
}
