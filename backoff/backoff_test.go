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

package backoff_test

import (
	"testing"
	"time"

	"github.com/blinklabs-io/goledger/backoff"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	b := backoff.NewExponentialBackoff()
	assert.Equal(t, 500*time.Millisecond, b.InitialInterval)
	assert.Equal(t, 0.5, b.RandomizationFactor)
	assert.Equal(t, 1.5, b.Multiplier)
	assert.Equal(t, 60*time.Second, b.MaxInterval)
	assert.Equal(t, 15*time.Minute, b.MaxElapsedTime)
}

func TestNextBounds(t *testing.T) {
	clock := clockwork.NewFakeClock()
	b := backoff.NewExponentialBackoff()
	b.Clock = clock
	b.Reset()
	expectedInterval := b.InitialInterval
	for i := 0; i < 20; i++ {
		next, ok := b.Next()
		require.True(t, ok)
		minWait := time.Duration(
			float64(expectedInterval) * (1 - b.RandomizationFactor),
		)
		maxWait := time.Duration(
			float64(expectedInterval)*(1+b.RandomizationFactor),
		) + time.Nanosecond
		assert.GreaterOrEqual(t, next, minWait)
		assert.LessOrEqual(t, next, maxWait)
		expectedInterval = time.Duration(
			float64(expectedInterval) * b.Multiplier,
		)
		if expectedInterval > b.MaxInterval {
			expectedInterval = b.MaxInterval
		}
	}
	// base interval saturates at MaxInterval after enough calls
	assert.Equal(t, b.MaxInterval, expectedInterval)
}

func TestNextSaturatesAtMaxInterval(t *testing.T) {
	clock := clockwork.NewFakeClock()
	b := &backoff.ExponentialBackoff{
		InitialInterval: 100 * time.Millisecond,
		Multiplier:      2,
		MaxInterval:     400 * time.Millisecond,
		Clock:           clock,
	}
	b.Reset()
	var waits []time.Duration
	for i := 0; i < 6; i++ {
		next, ok := b.Next()
		require.True(t, ok)
		waits = append(waits, next)
	}
	// with no randomization the waits are the base intervals themselves
	assert.Equal(
		t,
		[]time.Duration{
			100 * time.Millisecond,
			200 * time.Millisecond,
			400 * time.Millisecond,
			400 * time.Millisecond,
			400 * time.Millisecond,
			400 * time.Millisecond,
		},
		waits,
	)
}

func TestNextTerminatesAtMaxElapsedTime(t *testing.T) {
	clock := clockwork.NewFakeClock()
	b := &backoff.ExponentialBackoff{
		InitialInterval: 500 * time.Millisecond,
		Multiplier:      1.5,
		MaxInterval:     60 * time.Second,
		MaxElapsedTime:  2 * time.Second,
		Clock:           clock,
	}
	b.Reset()
	calls := 0
	for {
		next, ok := b.Next()
		if !ok {
			break
		}
		calls++
		require.LessOrEqual(t, calls, 10, "backoff should have terminated")
		clock.Advance(next)
	}
	// 0.5 + 0.75 = 1.25, the projected third wait of 1.125 crosses the 2s
	// ceiling
	assert.Equal(t, 2, calls)
}

func TestReset(t *testing.T) {
	clock := clockwork.NewFakeClock()
	b := &backoff.ExponentialBackoff{
		InitialInterval: 100 * time.Millisecond,
		Multiplier:      2,
		MaxInterval:     10 * time.Second,
		MaxElapsedTime:  1 * time.Second,
		Clock:           clock,
	}
	b.Reset()
	for i := 0; i < 3; i++ {
		next, ok := b.Next()
		require.True(t, ok)
		clock.Advance(next)
	}
	b.Reset()
	next, ok := b.Next()
	require.True(t, ok)
	assert.Equal(t, 100*time.Millisecond, next)
}

func TestNextNeverGrowsBetweenResets(t *testing.T) {
	clock := clockwork.NewFakeClock()
	b := &backoff.ExponentialBackoff{
		InitialInterval:     50 * time.Millisecond,
		RandomizationFactor: 0.5,
		Multiplier:          1.5,
		MaxInterval:         1 * time.Second,
		Clock:               clock,
	}
	b.Reset()
	lowerBound := time.Duration(float64(b.InitialInterval) * 0.5)
	upperBound := time.Duration(float64(b.MaxInterval)*1.5) + time.Nanosecond
	for i := 0; i < 50; i++ {
		next, ok := b.Next()
		require.True(t, ok)
		assert.GreaterOrEqual(t, next, lowerBound)
		assert.LessOrEqual(t, next, upperBound)
	}
}
