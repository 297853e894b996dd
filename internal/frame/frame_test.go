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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	got, err := Encode(0x01, []byte{0xAA, 0xBB}, 16)
	require.NoError(t, err)
	assert.Equal(t, []byte{Sync, 0x01, 0x02, 0x00, 0xAA, 0xBB, 0x30, 0xB2}, got)
}

func TestEncode_PayloadTooLarge(t *testing.T) {
	t.Parallel()

	_, err := Encode(0x01, make([]byte, 17), 16)
	require.ErrorIs(t, err, ErrPayloadTooLarge)

	_, err = EncodeTo(make([]byte, Overhead+3), 0x01, make([]byte, 4))
	require.ErrorIs(t, err, ErrPayloadTooLarge)
}

func TestEncodeTo_ExactFit(t *testing.T) {
	t.Parallel()

	dst := make([]byte, Overhead+3)
	n, err := EncodeTo(dst, 0x10, []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, len(dst), n)
	assert.True(t, Verify(dst))
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	payloads := [][]byte{
		{},
		{0x00},
		{0x02, 0x02, 0x02}, // sync values inside the payload
		bytes.Repeat([]byte{0xA5}, 128),
		bytes.Repeat([]byte{0xFF}, 255),
	}
	for _, address := range []byte{0x00, 0x01, 0x7F, 0xFF} {
		for _, payload := range payloads {
			encoded, err := Encode(address, payload, 255)
			require.NoError(t, err)

			decoded, err := Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, address, decoded.Address)
			assert.Equal(t, payload, decoded.Payload)
		}
	}
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	valid, err := Encode(0x01, []byte{0xAA, 0xBB}, 16)
	require.NoError(t, err)

	tests := []struct {
		wantErr error
		name    string
		data    []byte
	}{
		{
			name:    "nil input",
			data:    nil,
			wantErr: ErrMalformed,
		},
		{
			name:    "truncated",
			data:    valid[:5],
			wantErr: ErrMalformed,
		},
		{
			name:    "missing sync",
			data:    append([]byte{0x55}, valid[1:]...),
			wantErr: ErrMalformed,
		},
		{
			name:    "trailing garbage",
			data:    append(append([]byte{}, valid...), 0x00),
			wantErr: ErrChecksumMismatch,
		},
		{
			name:    "bad checksum",
			data:    []byte{Sync, 0x01, 0x02, 0x00, 0xAA, 0xBB, 0x00, 0x00},
			wantErr: ErrChecksumMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode(tt.data)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// TestDecode_LengthMismatch builds a frame whose checksum is valid but whose
// length field disagrees with the number of bytes supplied.
func TestDecode_LengthMismatch(t *testing.T) {
	t.Parallel()

	data := []byte{Sync, 0x01, 0x05, 0x00, 0xAA, 0xBB, 0x00, 0x00}
	crc := Checksum(data[1:6])
	data[6] = byte(crc)
	data[7] = byte(crc >> 8)

	_, err := Decode(data)
	require.ErrorIs(t, err, ErrMalformed)
}

// TestDecode_BitFlips flips every bit of the length and payload fields and
// expects a checksum mismatch each time.
func TestDecode_BitFlips(t *testing.T) {
	t.Parallel()

	encoded, err := Encode(0x22, []byte("hello, link"), 64)
	require.NoError(t, err)

	for i := offsetLength; i < len(encoded)-ChecksumLength; i++ {
		for bit := 0; bit < 8; bit++ {
			corrupted := append([]byte{}, encoded...)
			corrupted[i] ^= 1 << bit
			_, err := Decode(corrupted)
			assert.ErrorIs(t, err, ErrChecksumMismatch, "byte %d bit %d", i, bit)
		}
	}
}

func TestDecode_Garbage(t *testing.T) {
	t.Parallel()

	// Must never panic, whatever the input.
	for n := 0; n < 64; n++ {
		buf := make([]byte, n)
		for i := range buf {
			buf[i] = byte(i*31 + n)
		}
		if n > 0 {
			buf[0] = Sync
		}
		assert.NotPanics(t, func() { _, _ = Decode(buf) })
	}
}
