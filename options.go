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

package ldp

import (
	"errors"
	"fmt"
	"time"

	"github.com/engdoreis/go-ldp/internal/frame"
	"go.uber.org/zap"
)

// DefaultMaxBodySize is the default ceiling for the body of a single frame.
const DefaultMaxBodySize = 128

var (
	errBadTimeout  = errors.New("timeout must be positive")
	errBadBodySize = errors.New("body size out of range")
)

// Option is a functional option for configuring a Session
type Option func(*Session) error

// WithTimeout sets the receive deadline of a single Process call. A
// synchronous call may block for up to SyncAttempts times this value.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Session) error {
		if timeout <= 0 {
			return fmt.Errorf("%w: %v", errBadTimeout, timeout)
		}
		s.timeout = timeout
		return nil
	}
}

// WithAddress sets the peer address written into outgoing frames
func WithAddress(address byte) Option {
	return func(s *Session) error {
		s.address = address
		return nil
	}
}

// WithMaxBodySize sets the largest body the session can send or receive.
// It determines how much of the memory region New needs.
func WithMaxBodySize(size int) Option {
	return func(s *Session) error {
		if size < 0 || size > frame.MaxPayloadLength-HeaderLength {
			return fmt.Errorf("%w: %d", errBadBodySize, size)
		}
		s.maxBody = size
		return nil
	}
}

// WithLogger sets the logger used by the session and its link
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) error {
		if logger == nil {
			logger = zap.NewNop()
		}
		s.log = logger
		return nil
	}
}
