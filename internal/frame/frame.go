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

package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrPayloadTooLarge  = errors.New("frame: payload too large")
	ErrChecksumMismatch = errors.New("frame: checksum mismatch")
	ErrMalformed        = errors.New("frame: malformed")
)

// Frame is one decoded transport frame. Payload aliases the decoded buffer.
type Frame struct {
	Payload []byte
	Address byte
}

// EncodedLength returns the wire size of a frame carrying payloadLen bytes.
func EncodedLength(payloadLen int) int {
	return Overhead + payloadLen
}

// PayloadLength reads the length field of a frame header.
// The caller must supply at least HeaderLength bytes.
func PayloadLength(header []byte) int {
	return int(binary.LittleEndian.Uint16(header[offsetLength:]))
}

// EncodeTo writes one frame into dst and returns the number of bytes used.
// The payload must fit into dst together with the frame overhead.
func EncodeTo(dst []byte, address byte, payload []byte) (int, error) {
	if len(payload) > MaxPayloadLength || EncodedLength(len(payload)) > len(dst) {
		return 0, fmt.Errorf("%w: %d bytes, room for %d", ErrPayloadTooLarge, len(payload), len(dst)-Overhead)
	}

	dst[offsetSync] = Sync
	dst[offsetAddress] = address
	binary.LittleEndian.PutUint16(dst[offsetLength:], uint16(len(payload)))
	copy(dst[offsetPayload:], payload)

	end := offsetPayload + len(payload)
	binary.LittleEndian.PutUint16(dst[end:], Checksum(dst[offsetAddress:end]))
	return end + ChecksumLength, nil
}

// Encode allocates and returns one frame. Payloads longer than maxPayload are rejected.
func Encode(address byte, payload []byte, maxPayload int) ([]byte, error) {
	if len(payload) > maxPayload {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrPayloadTooLarge, len(payload), maxPayload)
	}
	buf := make([]byte, EncodedLength(len(payload)))
	n, err := EncodeTo(buf, address, payload)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// Decode parses one complete frame. The checksum is verified before the
// length field is trusted, so corruption in the length is reported as a
// checksum mismatch rather than a size error.
func Decode(b []byte) (Frame, error) {
	if len(b) < Overhead {
		return Frame{}, fmt.Errorf("%w: %d bytes is shorter than a frame", ErrMalformed, len(b))
	}
	if b[offsetSync] != Sync {
		return Frame{}, fmt.Errorf("%w: missing sync marker (got 0x%02X)", ErrMalformed, b[offsetSync])
	}
	if !Verify(b) {
		return Frame{}, ErrChecksumMismatch
	}

	length := PayloadLength(b)
	if EncodedLength(length) != len(b) {
		return Frame{}, fmt.Errorf("%w: length field %d does not match %d payload bytes",
			ErrMalformed, length, len(b)-Overhead)
	}

	return Frame{
		Address: b[offsetAddress],
		Payload: b[offsetPayload : offsetPayload+length],
	}, nil
}
