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

// Package transport defines the driver contract consumed by the link layer.
//
// A Driver opens named ports and supplies the time primitives the link
// state machine needs to enforce its receive deadline. Concrete drivers
// live in sub-packages (uart for serial ports, mock for tests).
package transport

import (
	"time"
)

// Port is an open byte stream.
type Port interface {
	// Read copies available bytes into p without blocking.
	// It returns 0, nil when nothing is available.
	Read(p []byte) (int, error)

	// Write sends p and returns the number of bytes written
	Write(p []byte) (int, error)

	// Flush discards any pending input
	Flush() error

	// Close releases the port
	Close() error
}

// Driver opens ports and provides the clock used for receive deadlines.
type Driver interface {
	// Open opens the named port
	Open(name string) (Port, error)

	// Tick returns a monotonic timestamp
	Tick() time.Duration

	// Sleep pauses the caller for d
	Sleep(d time.Duration)
}
