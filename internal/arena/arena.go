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

// Package arena carves fixed sub-regions out of a caller supplied buffer.
//
// Every region handed out is capped with a full slice expression, so a
// region can never be extended into its neighbour or past the end of the
// original buffer.
package arena

import (
	"errors"
	"fmt"
)

// ErrExhausted is returned when a request does not fit into the remaining space.
var ErrExhausted = errors.New("arena: region exhausted")

// Arena hands out consecutive regions of a single buffer.
type Arena struct {
	buf []byte
	off int
}

// New wraps buf. The arena never allocates or grows.
func New(buf []byte) *Arena {
	return &Arena{buf: buf}
}

// Len returns the size of the wrapped buffer.
func (a *Arena) Len() int {
	return len(a.buf)
}

// Remaining returns the number of bytes not yet carved.
func (a *Arena) Remaining() int {
	return len(a.buf) - a.off
}

// Carve returns the next n bytes, zeroed.
func (a *Arena) Carve(n int) ([]byte, error) {
	if n < 0 || n > a.Remaining() {
		return nil, fmt.Errorf("%w: need %d bytes, %d remaining", ErrExhausted, n, a.Remaining())
	}
	region := a.buf[a.off : a.off+n : a.off+n]
	clear(region)
	a.off += n
	return region, nil
}

// Rest carves everything that is left.
func (a *Arena) Rest() []byte {
	region, _ := a.Carve(a.Remaining())
	return region
}
