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

// Package backoff provides the exponential backoff generator used to pace
// retries when submitting requests to the network.
package backoff

import (
	"math/rand"
	"time"

	"github.com/jonboulle/clockwork"
)

// Default backoff parameters. These are part of the observable retry behavior
// and must not change between releases.
const (
	DefaultInitialInterval     = 500 * time.Millisecond
	DefaultRandomizationFactor = 0.5
	DefaultMultiplier          = 1.5
	DefaultMaxInterval         = 60 * time.Second
	DefaultMaxElapsedTime      = 15 * time.Minute
)

// ExponentialBackoff generates a growing sequence of jittered wait intervals.
// The base interval starts at InitialInterval, grows by Multiplier on each
// call to Next, and is capped at MaxInterval; the returned wait is drawn
// uniformly from [interval*(1-r), interval*(1+r)] for RandomizationFactor r.
// It is not safe for concurrent use; each execution owns its own instance.
type ExponentialBackoff struct {
	InitialInterval     time.Duration
	RandomizationFactor float64
	Multiplier          float64
	MaxInterval         time.Duration
	// MaxElapsedTime caps the total wall time since the last Reset. Zero
	// means no limit.
	MaxElapsedTime time.Duration
	// Clock is used to measure elapsed time. Defaults to the real clock.
	Clock clockwork.Clock

	currentInterval time.Duration
	startTime       time.Time
	rand            *rand.Rand
}

// NewExponentialBackoff returns an ExponentialBackoff with the default
// parameters, ready for use
func NewExponentialBackoff() *ExponentialBackoff {
	b := &ExponentialBackoff{
		InitialInterval:     DefaultInitialInterval,
		RandomizationFactor: DefaultRandomizationFactor,
		Multiplier:          DefaultMultiplier,
		MaxInterval:         DefaultMaxInterval,
		MaxElapsedTime:      DefaultMaxElapsedTime,
	}
	b.Reset()
	return b
}

// Reset restarts the elapsed-time window and returns the current interval to
// its initial value. It is used when switching to a different target node,
// since a fresh node should not inherit another node's failure history.
func (b *ExponentialBackoff) Reset() {
	if b.Clock == nil {
		b.Clock = clockwork.NewRealClock()
	}
	b.currentInterval = b.InitialInterval
	b.startTime = b.Clock.Now()
}

// Next returns the next wait interval and advances the base interval. The
// second return value is false once the elapsed time, including the projected
// wait, would exceed MaxElapsedTime, signaling that the caller should stop
// retrying.
func (b *ExponentialBackoff) Next() (time.Duration, bool) {
	if b.startTime.IsZero() {
		b.Reset()
	}
	next := b.jitter(b.currentInterval)
	if b.MaxElapsedTime > 0 {
		elapsed := b.Clock.Since(b.startTime)
		if elapsed+next > b.MaxElapsedTime {
			return 0, false
		}
	}
	interval := time.Duration(
		float64(b.currentInterval) * b.Multiplier,
	)
	if interval > b.MaxInterval {
		interval = b.MaxInterval
	}
	b.currentInterval = interval
	return next, true
}

// jitter spreads the interval uniformly across
// [interval*(1-r), interval*(1+r)]
func (b *ExponentialBackoff) jitter(interval time.Duration) time.Duration {
	if b.RandomizationFactor <= 0 {
		return interval
	}
	if b.rand == nil {
		b.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	delta := b.RandomizationFactor * float64(interval)
	minInterval := float64(interval) - delta
	// the extra nanosecond makes the upper bound reachable
	return time.Duration(minInterval + b.rand.Float64()*(2*delta+1))
}
