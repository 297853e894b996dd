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
)

// HeaderLength is the size of the device protocol header: kind, id and status.
const HeaderLength = 3

// Kind classifies a device protocol frame.
type Kind byte

// Frame kinds, in wire encoding.
const (
	KindEvent Kind = iota
	KindCommand
	KindResponse

	numKinds = 3
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindEvent:
		return "event"
	case KindCommand:
		return "command"
	case KindResponse:
		return "response"
	default:
		return fmt.Sprintf("kind(%d)", byte(k))
	}
}

// Valid reports whether k is one of the three known kinds.
func (k Kind) Valid() bool {
	return k < numKinds
}

var errShortHeader = errors.New("ldp: payload shorter than header")

// Frame is one decoded device protocol message. Body aliases the receive
// buffer and must be copied by handlers that keep it past their return.
type Frame struct {
	Body   []byte
	Kind   Kind
	ID     byte
	Status StatusCode
}

// EncodeHeader writes the three header bytes into dst.
func EncodeHeader(dst []byte, kind Kind, id byte, status StatusCode) error {
	if len(dst) < HeaderLength {
		return fmt.Errorf("%w: need %d bytes, have %d", StatusParameter, HeaderLength, len(dst))
	}
	dst[0] = byte(kind)
	dst[1] = id
	dst[2] = byte(status)
	return nil
}

// DecodeHeader splits a transport payload into header and body. The body
// aliases b.
func DecodeHeader(b []byte) (Frame, error) {
	if len(b) < HeaderLength {
		return Frame{}, fmt.Errorf("%w: %d bytes", errShortHeader, len(b))
	}
	return Frame{
		Kind:   Kind(b[0]),
		ID:     b[1],
		Status: StatusCode(b[2]),
		Body:   b[HeaderLength:],
	}, nil
}
