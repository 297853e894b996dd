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

import (
	"fmt"

	"github.com/engdoreis/go-ldp/internal/frame"
)

// State is a state of the frame acquisition machine.
type State int

// Receive states. StateIdle is the only initial state; the last four are terminal.
const (
	StateIdle State = iota
	StateWaitSync
	StateReadAddress
	StateReadLength
	StateReadPayload
	StateReadChecksum
	StateValidate
	StateSuccess
	StateTimedOut
	StateChecksumMismatch
	StateMalformed
)

var stateNames = [...]string{
	StateIdle:             "idle",
	StateWaitSync:         "wait-sync",
	StateReadAddress:      "read-address",
	StateReadLength:       "read-length",
	StateReadPayload:      "read-payload",
	StateReadChecksum:     "read-checksum",
	StateValidate:         "validate",
	StateSuccess:          "success",
	StateTimedOut:         "timed-out",
	StateChecksumMismatch: "checksum-mismatch",
	StateMalformed:        "malformed",
}

// String returns the state name
func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether the machine stops in s.
func (s State) Terminal() bool {
	return s >= StateSuccess
}

// transition returns the state that follows s once the bytes in assembled
// have been collected. assembled always starts at the sync byte.
func transition(s State, assembled []byte, maxPayload int) State {
	switch s {
	case StateIdle:
		return StateWaitSync

	case StateWaitSync:
		if len(assembled) == 1 && assembled[0] == frame.Sync {
			return StateReadAddress
		}
		return StateWaitSync

	case StateReadAddress:
		if len(assembled) < 2 {
			return StateReadAddress
		}
		return StateReadLength

	case StateReadLength:
		if len(assembled) < frame.HeaderLength {
			return StateReadLength
		}
		length := frame.PayloadLength(assembled)
		if length > maxPayload {
			return StateMalformed
		}
		if length == 0 {
			return StateReadChecksum
		}
		return StateReadPayload

	case StateReadPayload:
		if len(assembled) < frame.HeaderLength+frame.PayloadLength(assembled) {
			return StateReadPayload
		}
		return StateReadChecksum

	case StateReadChecksum:
		if len(assembled) < frame.EncodedLength(frame.PayloadLength(assembled)) {
			return StateReadChecksum
		}
		return StateValidate

	case StateValidate:
		if frame.Verify(assembled) {
			return StateSuccess
		}
		return StateChecksumMismatch

	default:
		return s
	}
}

// link assembles one frame in place inside a fixed buffer.
type link struct {
	buf        []byte
	state      State
	n          int
	maxPayload int
	discarded  int
}

func newLink(buf []byte) *link {
	return &link{buf: buf, maxPayload: len(buf) - frame.Overhead}
}

// reset drops any partial frame and returns to StateIdle.
func (l *link) reset() {
	l.state = StateIdle
	l.n = 0
	l.discarded = 0
}

// start leaves StateIdle.
func (l *link) start() {
	l.state = transition(l.state, nil, l.maxPayload)
}

// pending returns the part of the buffer the current field still needs.
// It is empty when the machine is not waiting for input.
func (l *link) pending() []byte {
	var end int
	switch l.state {
	case StateWaitSync:
		end = 1
	case StateReadAddress:
		end = 2
	case StateReadLength:
		end = frame.HeaderLength
	case StateReadPayload:
		end = frame.HeaderLength + frame.PayloadLength(l.buf)
	case StateReadChecksum:
		end = frame.EncodedLength(frame.PayloadLength(l.buf))
	default:
		return nil
	}
	return l.buf[l.n:end]
}

// advance records that n bytes were written into pending() and applies the
// resulting transition.
func (l *link) advance(n int) State {
	if n <= 0 || l.state.Terminal() {
		return l.state
	}
	l.n += n
	next := transition(l.state, l.buf[:l.n], l.maxPayload)
	if next == StateWaitSync {
		// Not a sync byte: drop it and keep hunting.
		l.discarded += l.n
		l.n = 0
	}
	l.state = next
	return l.state
}

// validate runs the StateValidate transition.
func (l *link) validate() State {
	if l.state == StateValidate {
		l.state = transition(l.state, l.buf[:l.n], l.maxPayload)
	}
	return l.state
}

// expire abandons the frame in progress.
func (l *link) expire() State {
	if !l.state.Terminal() {
		l.state = StateTimedOut
	}
	return l.state
}

// received returns the address and payload of a successfully received frame.
func (l *link) received() (address byte, payload []byte) {
	length := frame.PayloadLength(l.buf)
	return l.buf[1], l.buf[frame.HeaderLength : frame.HeaderLength+length]
}
