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
	"testing"
	"time"

	"github.com/blinklabs-io/goledger/ids"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPool(clock clockwork.Clock) *nodePool {
	return newNodePool(
		testNetwork().Nodes,
		clock,
		defaultMaxNodeFailures,
		defaultMinReadmitPeriod,
		defaultMaxReadmitPeriod,
	)
}

func TestPoolSidelinesAfterRepeatedFailures(t *testing.T) {
	clock := clockwork.NewFakeClock()
	pool := testPool(clock)
	nodeID := ids.EntityID{Shard: 0, Realm: 0, Num: 3}
	// below the threshold the node stays in rotation
	pool.markUnhealthy(nodeID)
	pool.markUnhealthy(nodeID)
	assert.True(t, pool.isHealthy(nodeID))
	pool.markUnhealthy(nodeID)
	assert.False(t, pool.isHealthy(nodeID))
	assert.Len(t, pool.healthyNodes(), 2)
	// the node is readmitted after the minimum period
	clock.Advance(defaultMinReadmitPeriod)
	assert.True(t, pool.isHealthy(nodeID))
	assert.Len(t, pool.healthyNodes(), 3)
}

func TestPoolReadmitPeriodDoubles(t *testing.T) {
	clock := clockwork.NewFakeClock()
	pool := testPool(clock)
	nodeID := ids.EntityID{Shard: 0, Realm: 0, Num: 3}
	for i := 0; i < defaultMaxNodeFailures; i++ {
		pool.markUnhealthy(nodeID)
	}
	clock.Advance(defaultMinReadmitPeriod)
	require.True(t, pool.isHealthy(nodeID))
	// a second sideline lasts twice as long
	for i := 0; i < defaultMaxNodeFailures; i++ {
		pool.markUnhealthy(nodeID)
	}
	clock.Advance(defaultMinReadmitPeriod)
	assert.False(t, pool.isHealthy(nodeID))
	clock.Advance(defaultMinReadmitPeriod)
	assert.True(t, pool.isHealthy(nodeID))
}

func TestPoolMarkHealthyResets(t *testing.T) {
	clock := clockwork.NewFakeClock()
	pool := testPool(clock)
	nodeID := ids.EntityID{Shard: 0, Realm: 0, Num: 3}
	for i := 0; i < defaultMaxNodeFailures; i++ {
		pool.markUnhealthy(nodeID)
	}
	require.False(t, pool.isHealthy(nodeID))
	pool.markHealthy(nodeID)
	assert.True(t, pool.isHealthy(nodeID))
	// the readmit period starts over at the minimum after a success
	for i := 0; i < defaultMaxNodeFailures; i++ {
		pool.markUnhealthy(nodeID)
	}
	clock.Advance(defaultMinReadmitPeriod)
	assert.True(t, pool.isHealthy(nodeID))
}

func TestPoolHealthyNodesStableOrder(t *testing.T) {
	clock := clockwork.NewFakeClock()
	pool := testPool(clock)
	expected := []ids.EntityID{
		{Shard: 0, Realm: 0, Num: 3},
		{Shard: 0, Realm: 0, Num: 4},
		{Shard: 0, Realm: 0, Num: 5},
	}
	assert.Equal(t, expected, pool.healthyNodes())
}

func TestPoolUnknownNode(t *testing.T) {
	clock := clockwork.NewFakeClock()
	pool := testPool(clock)
	unknown := ids.EntityID{Shard: 0, Realm: 0, Num: 999}
	assert.False(t, pool.isHealthy(unknown))
	_, ok := pool.address(unknown)
	assert.False(t, ok)
	// marking an unknown node is a no-op
	pool.markUnhealthy(unknown)
	pool.markHealthy(unknown)
	assert.Len(t, pool.healthyNodes(), 3)
}

func TestPoolReadmitPeriodCapped(t *testing.T) {
	clock := clockwork.NewFakeClock()
	pool := newNodePool(
		testNetwork().Nodes,
		clock,
		1,
		8*time.Second,
		16*time.Second,
	)
	nodeID := ids.EntityID{Shard: 0, Realm: 0, Num: 3}
	// drive the readmit period to its cap
	for i := 0; i < 5; i++ {
		pool.markUnhealthy(nodeID)
		clock.Advance(time.Hour)
	}
	pool.markUnhealthy(nodeID)
	clock.Advance(16 * time.Second)
	assert.True(t, pool.isHealthy(nodeID))
}
