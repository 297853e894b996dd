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

// Package demo holds the demonstration record set and a server that answers it.
package demo

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Command and event identifiers
const (
	Cmd1 = 0x01
	Cmd2 = 0x02

	Evt1 = 0x01
	Evt2 = 0x02
)

// Record sizes on the wire
const (
	Cmd1Size = 4
	Cmd2Size = 4
)

var errShortRecord = errors.New("demo: record too short")

// Command1 is the body of Cmd1, its response and Evt1.
type Command1 struct {
	Field1 uint16
	Field2 uint16
}

// MarshalBinary encodes the record little-endian
func (c Command1) MarshalBinary() ([]byte, error) {
	b := make([]byte, Cmd1Size)
	binary.LittleEndian.PutUint16(b[0:], c.Field1)
	binary.LittleEndian.PutUint16(b[2:], c.Field2)
	return b, nil
}

// UnmarshalBinary decodes a little-endian record
func (c *Command1) UnmarshalBinary(b []byte) error {
	if len(b) < Cmd1Size {
		return fmt.Errorf("%w: cmd1 needs %d bytes, got %d", errShortRecord, Cmd1Size, len(b))
	}
	c.Field1 = binary.LittleEndian.Uint16(b[0:])
	c.Field2 = binary.LittleEndian.Uint16(b[2:])
	return nil
}

// Command2 is the body of the Cmd2 response and of Evt2.
type Command2 struct {
	Field3 uint16
	Field1 uint8
	Field2 uint8
}

// Reference is the record the server answers Cmd2 and Evt1 with.
var Reference = Command2{Field1: 155, Field2: 127, Field3: 35645}

// MarshalBinary encodes the record little-endian
func (c Command2) MarshalBinary() ([]byte, error) {
	b := make([]byte, Cmd2Size)
	b[0] = c.Field1
	b[1] = c.Field2
	binary.LittleEndian.PutUint16(b[2:], c.Field3)
	return b, nil
}

// UnmarshalBinary decodes a little-endian record
func (c *Command2) UnmarshalBinary(b []byte) error {
	if len(b) < Cmd2Size {
		return fmt.Errorf("%w: cmd2 needs %d bytes, got %d", errShortRecord, Cmd2Size, len(b))
	}
	c.Field1 = b[0]
	c.Field2 = b[1]
	c.Field3 = binary.LittleEndian.Uint16(b[2:])
	return nil
}
