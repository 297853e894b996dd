// go-ldp
// Copyright (c) 2025 The go-ldp Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-ldp.
//
// go-ldp is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-ldp is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-ldp; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package mock

import (
	"sync"
	"time"
)

// Clock supplies the time primitives of a mock driver.
type Clock interface {
	Tick() time.Duration
	Sleep(d time.Duration)
}

// ManualClock only moves when Sleep or Advance is called, which makes
// receive deadlines deterministic in tests.
type ManualClock struct {
	now time.Duration
	mu  sync.Mutex
}

// NewManualClock returns a clock starting at zero.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// Tick returns the current manual time
func (c *ManualClock) Tick() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Sleep advances the clock by d without blocking
func (c *ManualClock) Sleep(d time.Duration) {
	c.Advance(d)
}

// Advance moves the clock forward
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += d
}

// SystemClock uses the real monotonic clock.
type SystemClock struct {
	start time.Time
}

// NewSystemClock returns a clock starting now.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Tick returns the time elapsed since the clock was created
func (c *SystemClock) Tick() time.Duration {
	return time.Since(c.start)
}

// Sleep blocks for d
func (*SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
