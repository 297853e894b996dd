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

// Package frame provides the wire codec and checksum for transport protocol frames.
package frame

// Frame markers
const (
	Sync = 0x02 // Start of every frame (STX)
)

// Frame layout sizes
const (
	HeaderLength     = 4 // sync + address + length(2)
	ChecksumLength   = 2
	Overhead         = HeaderLength + ChecksumLength
	MaxPayloadLength = 0xFFFF // Largest value the length field can carry
)

// Field offsets within an encoded frame
const (
	offsetSync    = 0
	offsetAddress = 1
	offsetLength  = 2
	offsetPayload = HeaderLength
)
