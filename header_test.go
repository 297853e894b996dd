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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeader_RoundTrip(t *testing.T) {
	t.Parallel()

	buf := make([]byte, HeaderLength+2)
	require.NoError(t, EncodeHeader(buf, KindResponse, 0x07, StatusNotSupported))
	copy(buf[HeaderLength:], []byte{0xCA, 0xFE})

	assert.Equal(t, []byte{0x02, 0x07, 0xFE, 0xCA, 0xFE}, buf)

	f, err := DecodeHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, KindResponse, f.Kind)
	assert.Equal(t, byte(0x07), f.ID)
	assert.Equal(t, StatusNotSupported, f.Status)
	assert.Equal(t, []byte{0xCA, 0xFE}, f.Body)
}

func TestHeader_Errors(t *testing.T) {
	t.Parallel()

	err := EncodeHeader(make([]byte, 2), KindEvent, 1, StatusOk)
	require.ErrorIs(t, err, StatusParameter)

	_, err = DecodeHeader([]byte{0x01, 0x02})
	require.ErrorIs(t, err, errShortHeader)

	f, err := DecodeHeader([]byte{0x00, 0x09, 0x00})
	require.NoError(t, err)
	assert.Empty(t, f.Body)
	assert.Equal(t, KindEvent, f.Kind)
}

func TestKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, byte(0), byte(KindEvent))
	assert.Equal(t, byte(1), byte(KindCommand))
	assert.Equal(t, byte(2), byte(KindResponse))
	assert.Equal(t, "command", KindCommand.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
	assert.True(t, KindResponse.Valid())
	assert.False(t, Kind(3).Valid())
}
