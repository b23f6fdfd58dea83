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
	"sort"
	"sync"
	"time"

	"github.com/blinklabs-io/goledger/ids"
	"github.com/jonboulle/clockwork"
)

const (
	defaultMaxNodeFailures  = 3
	defaultMinReadmitPeriod = 8 * time.Second
	defaultMaxReadmitPeriod = 1 * time.Hour
)

// nodePool tracks per-node health for a client's network. A node that fails
// repeatedly is sidelined for a readmit period that doubles on each sideline,
// bounded by the configured maximum.
type nodePool struct {
	sync.Mutex
	clock            clockwork.Clock
	nodes            map[ids.EntityID]*nodeEntry
	order            []ids.EntityID
	maxFailures      int
	minReadmitPeriod time.Duration
	maxReadmitPeriod time.Duration
}

type nodeEntry struct {
	address             string
	consecutiveFailures int
	readmitAt           time.Time
	readmitPeriod       time.Duration
}

func newNodePool(
	nodes map[ids.EntityID]string,
	clock clockwork.Clock,
	maxFailures int,
	minReadmitPeriod time.Duration,
	maxReadmitPeriod time.Duration,
) *nodePool {
	p := &nodePool{
		clock:            clock,
		nodes:            make(map[ids.EntityID]*nodeEntry, len(nodes)),
		maxFailures:      maxFailures,
		minReadmitPeriod: minReadmitPeriod,
		maxReadmitPeriod: maxReadmitPeriod,
	}
	for id, address := range nodes {
		p.nodes[id] = &nodeEntry{address: address}
		p.order = append(p.order, id)
	}
	// deterministic iteration order for tests and sampling
	sort.Slice(p.order, func(i, j int) bool {
		a, b := p.order[i], p.order[j]
		if a.Shard != b.Shard {
			return a.Shard < b.Shard
		}
		if a.Realm != b.Realm {
			return a.Realm < b.Realm
		}
		return a.Num < b.Num
	})
	return p
}

// markUnhealthy records a failed attempt against a node. Once the node
// reaches the failure threshold it is sidelined until its readmit time.
func (p *nodePool) markUnhealthy(id ids.EntityID) {
	p.Lock()
	defer p.Unlock()
	entry, ok := p.nodes[id]
	if !ok {
		return
	}
	entry.consecutiveFailures++
	if entry.consecutiveFailures < p.maxFailures {
		return
	}
	if entry.readmitPeriod == 0 {
		entry.readmitPeriod = p.minReadmitPeriod
	} else {
		entry.readmitPeriod *= 2
		if entry.readmitPeriod > p.maxReadmitPeriod {
			entry.readmitPeriod = p.maxReadmitPeriod
		}
	}
	entry.readmitAt = p.clock.Now().Add(entry.readmitPeriod)
	entry.consecutiveFailures = 0
}

// markHealthy clears a node's failure history after a successful attempt
func (p *nodePool) markHealthy(id ids.EntityID) {
	p.Lock()
	defer p.Unlock()
	entry, ok := p.nodes[id]
	if !ok {
		return
	}
	entry.consecutiveFailures = 0
	entry.readmitAt = time.Time{}
	entry.readmitPeriod = 0
}

func (p *nodePool) isHealthy(id ids.EntityID) bool {
	p.Lock()
	defer p.Unlock()
	entry, ok := p.nodes[id]
	if !ok {
		return false
	}
	return p.entryHealthy(entry)
}

// healthyNodes returns the IDs of all nodes not currently sidelined, in
// stable order
func (p *nodePool) healthyNodes() []ids.EntityID {
	p.Lock()
	defer p.Unlock()
	var ret []ids.EntityID
	for _, id := range p.order {
		if p.entryHealthy(p.nodes[id]) {
			ret = append(ret, id)
		}
	}
	return ret
}

// entryHealthy assumes the pool lock is held
func (p *nodePool) entryHealthy(entry *nodeEntry) bool {
	if entry.readmitAt.IsZero() {
		return true
	}
	return !p.clock.Now().Before(entry.readmitAt)
}

// address returns the service endpoint for a node account ID
func (p *nodePool) address(id ids.EntityID) (string, bool) {
	p.Lock()
	defer p.Unlock()
	entry, ok := p.nodes[id]
	if !ok {
		return "", false
	}
	return entry.address, true
}
