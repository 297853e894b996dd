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

package tp

import "sync/atomic"

// Stats is a snapshot of the link counters of a session.
type Stats struct {
	FramesSent      uint64
	FramesReceived  uint64
	SendErrors      uint64
	ProcessCalls    uint64
	Timeouts        uint64
	ChecksumErrors  uint64
	MalformedFrames uint64
	ReadErrors      uint64
	DiscardedBytes  uint64
}

// counters are updated by the session goroutine and may be read from any other.
type counters struct {
	framesSent      atomic.Uint64
	framesReceived  atomic.Uint64
	sendErrors      atomic.Uint64
	processCalls    atomic.Uint64
	timeouts        atomic.Uint64
	checksumErrors  atomic.Uint64
	malformedFrames atomic.Uint64
	readErrors      atomic.Uint64
	discardedBytes  atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		FramesSent:      c.framesSent.Load(),
		FramesReceived:  c.framesReceived.Load(),
		SendErrors:      c.sendErrors.Load(),
		ProcessCalls:    c.processCalls.Load(),
		Timeouts:        c.timeouts.Load(),
		ChecksumErrors:  c.checksumErrors.Load(),
		MalformedFrames: c.malformedFrames.Load(),
		ReadErrors:      c.readErrors.Load(),
		DiscardedBytes:  c.discardedBytes.Load(),
	}
}
