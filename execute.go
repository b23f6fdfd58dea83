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
	"fmt"
	"math/rand"

	"github.com/blinklabs-io/goledger/backoff"
	"github.com/blinklabs-io/goledger/cbor"
	"github.com/blinklabs-io/goledger/ids"
	"github.com/jonboulle/clockwork"
)

// executable is implemented by transactions and queries. It supplies what
// the execution engine needs: the request payload, the candidate nodes, and
// the retry policy.
type executable interface {
	operation() string
	candidateNodeIDs() []ids.EntityID
	executionTransactionID() *TransactionID
	requestPayload() ([]byte, error)
	validateChecksums(ledger ids.LedgerID) error
	shouldRetryStatus(status Status) bool
	shouldRetryPayload(payload []byte) bool
	retryPolicy(clock clockwork.Clock) *backoff.ExponentialBackoff
}

// Wire envelopes exchanged with nodes
type (
	requestEnvelope struct {
		cbor.StructAsArray
		Operation string
		Payload   []byte
	}
	responseEnvelope struct {
		cbor.StructAsArray
		Status  uint32
		Payload []byte
	}
)

type attemptOutcome int

const (
	outcomeSuccess attemptOutcome = iota
	outcomeRetrySameNode
	outcomeRetryNextNode
	outcomeTerminal
)

var errBackoffExhausted = errors.New("backoff exhausted")

// classifyStatus maps a response status to the engine's handling of it. A
// busy or inactive node keeps the request but is retried after a backoff
// wait; any other non-success status is terminal.
func classifyStatus(status Status) attemptOutcome {
	switch status {
	case StatusOK, StatusSuccess:
		return outcomeSuccess
	case StatusBusy, StatusPlatformNotActive:
		return outcomeRetrySameNode
	}
	return outcomeTerminal
}

// executeAny runs the retry loop for an executable: pick candidate nodes,
// attempt each in turn, back off between attempts against the same node, and
// give up with a TimedOutError once the time budget is spent. It returns the
// node that produced the successful response along with the response
// payload.
func (c *Client) executeAny(
	ctx context.Context,
	e executable,
) (ids.EntityID, []byte, error) {
	if c.autoValidateChecksums {
		if err := e.validateChecksums(c.LedgerID()); err != nil {
			return ids.EntityID{}, nil, err
		}
	}
	timeout := c.requestTimeout
	if timeout <= 0 {
		timeout = backoff.DefaultMaxElapsedTime
	}
	deadline := c.clock.Now().Add(timeout)
	boff := e.retryPolicy(c.clock)
	if boff == nil {
		boff = backoff.NewExponentialBackoff()
		boff.Clock = c.clock
		boff.MaxElapsedTime = timeout
		boff.Reset()
	}
	candidates := c.pickCandidates(e.candidateNodeIDs())
	idx := 0
	var lastErr error
	for {
		if err := ctx.Err(); err != nil {
			return ids.EntityID{}, nil, &TimedOutError{Err: err}
		}
		if !c.clock.Now().Before(deadline) {
			return ids.EntityID{}, nil, &TimedOutError{Err: lastErr}
		}
		if len(candidates) == 0 {
			if err := c.waitBackoff(ctx, boff); err != nil {
				return ids.EntityID{}, nil, &TimedOutError{Err: lastErr}
			}
			candidates = c.pickCandidates(e.candidateNodeIDs())
			continue
		}
		nodeID := candidates[idx%len(candidates)]
		payload, outcome, err := c.attempt(ctx, e, nodeID)
		switch outcome {
		case outcomeSuccess:
			return nodeID, payload, nil
		case outcomeTerminal:
			return ids.EntityID{}, nil, err
		case outcomeRetrySameNode:
			lastErr = err
			if werr := c.waitBackoff(ctx, boff); werr != nil {
				return ids.EntityID{}, nil, &TimedOutError{Err: lastErr}
			}
		case outcomeRetryNextNode:
			lastErr = err
			idx++
			if idx >= len(candidates) {
				// every candidate failed; wait, then re-sample in case a
				// sidelined node has been readmitted
				idx = 0
				if werr := c.waitBackoff(ctx, boff); werr != nil {
					return ids.EntityID{}, nil, &TimedOutError{Err: lastErr}
				}
				candidates = c.pickCandidates(e.candidateNodeIDs())
			} else {
				// a fresh node does not inherit the previous node's backoff
				boff.Reset()
			}
		}
	}
}

// attempt submits the request to a single node and classifies the result
func (c *Client) attempt(
	ctx context.Context,
	e executable,
	nodeID ids.EntityID,
) ([]byte, attemptOutcome, error) {
	endpoint, ok := c.pool.address(nodeID)
	if !ok {
		return nil, outcomeTerminal, &StatusError{
			Status:        StatusInvalidNodeAccount,
			TransactionID: e.executionTransactionID(),
			NodeAccountID: nodeID,
		}
	}
	payload, err := e.requestPayload()
	if err != nil {
		return nil, outcomeTerminal, err
	}
	request, err := cbor.Encode(&requestEnvelope{
		Operation: e.operation(),
		Payload:   payload,
	})
	if err != nil {
		return nil, outcomeTerminal, err
	}
	attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()
	response, err := c.transport.Submit(attemptCtx, endpoint, request)
	if err != nil {
		if ctx.Err() != nil {
			return nil, outcomeTerminal, &TimedOutError{Err: err}
		}
		c.pool.markUnhealthy(nodeID)
		c.logger.Warn(
			fmt.Sprintf("attempt against node failed: %s", err),
			"component", "client",
			"operation", e.operation(),
			"node", nodeID.String(),
			"endpoint", endpoint,
		)
		return nil, outcomeRetryNextNode, err
	}
	var envelope responseEnvelope
	if _, err := cbor.Decode(response, &envelope); err != nil {
		c.pool.markUnhealthy(nodeID)
		c.logger.Warn(
			fmt.Sprintf("malformed response from node: %s", err),
			"component", "client",
			"operation", e.operation(),
			"node", nodeID.String(),
		)
		return nil, outcomeRetryNextNode, err
	}
	c.pool.markHealthy(nodeID)
	status := Status(envelope.Status)
	outcome := classifyStatus(status)
	if outcome == outcomeSuccess {
		if e.shouldRetryPayload(envelope.Payload) {
			return nil, outcomeRetrySameNode, nil
		}
		return envelope.Payload, outcomeSuccess, nil
	}
	statusErr := &StatusError{
		Status:        status,
		TransactionID: e.executionTransactionID(),
		NodeAccountID: nodeID,
	}
	if outcome == outcomeTerminal && e.shouldRetryStatus(status) {
		return nil, outcomeRetrySameNode, statusErr
	}
	return nil, outcome, statusErr
}

// pickCandidates selects the nodes to attempt. Explicit node lists are
// filtered to healthy nodes, falling back to the full list when all are
// sidelined. Without an explicit list, a third of the network's healthy
// nodes are sampled at random.
func (c *Client) pickCandidates(explicit []ids.EntityID) []ids.EntityID {
	if len(explicit) > 0 {
		var healthy []ids.EntityID
		for _, id := range explicit {
			if c.pool.isHealthy(id) {
				healthy = append(healthy, id)
			}
		}
		if len(healthy) == 0 {
			return append([]ids.EntityID{}, explicit...)
		}
		return healthy
	}
	healthy := c.pool.healthyNodes()
	if len(healthy) == 0 {
		return nil
	}
	rand.Shuffle(len(healthy), func(i, j int) {
		healthy[i], healthy[j] = healthy[j], healthy[i]
	})
	sample := (len(healthy) + 2) / 3
	return healthy[:sample]
}

// waitBackoff sleeps for the next backoff interval, honoring context
// cancellation
func (c *Client) waitBackoff(
	ctx context.Context,
	boff *backoff.ExponentialBackoff,
) error {
	d, ok := boff.Next()
	if !ok {
		return errBackoffExhausted
	}
	c.logger.Debug(
		fmt.Sprintf("waiting %s before next attempt", d),
		"component", "client",
	)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.clock.After(d):
		return nil
	}
}
