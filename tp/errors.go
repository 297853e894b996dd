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
	"errors"
	"fmt"
)

// Transport session errors
var (
	ErrRegionTooSmall = errors.New("memory region too small")
	ErrOpenFailed     = errors.New("driver failed to open port")
	ErrClosed         = errors.New("session closed")
	ErrShortWrite     = errors.New("short write")
	ErrNilDriver      = errors.New("driver is nil")
)

// Error records a failed transport operation and the port it ran against.
type Error struct {
	Err  error
	Op   string
	Port string
}

func (e *Error) Error() string {
	if e.Port == "" {
		return fmt.Sprintf("tp %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("tp %s %s: %v", e.Op, e.Port, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
