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

package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena_Carve(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 16)
	for i := range buf {
		buf[i] = 0xEE
	}
	a := New(buf)

	first, err := a.Carve(4)
	require.NoError(t, err)
	assert.Len(t, first, 4)
	assert.Equal(t, 4, cap(first))
	assert.Equal(t, []byte{0, 0, 0, 0}, first)
	assert.Equal(t, 12, a.Remaining())

	second, err := a.Carve(8)
	require.NoError(t, err)
	assert.Equal(t, 8, cap(second))

	rest := a.Rest()
	assert.Len(t, rest, 4)
	assert.Equal(t, 0, a.Remaining())
	assert.Equal(t, 16, a.Len())
}

func TestArena_Exhausted(t *testing.T) {
	t.Parallel()

	a := New(make([]byte, 8))
	_, err := a.Carve(9)
	require.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, 8, a.Remaining(), "failed carve must not consume space")

	_, err = a.Carve(-1)
	require.ErrorIs(t, err, ErrExhausted)
}

func TestArena_RegionsCannotOverlap(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 8)
	a := New(buf[:6])

	first, err := a.Carve(3)
	require.NoError(t, err)
	first = append(first, 0x11) // must reallocate rather than write into the next region
	assert.Len(t, first, 4)

	second, err := a.Carve(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0}, second)
	assert.Equal(t, []byte{0, 0}, buf[6:], "bytes past the wrapped slice stay untouched")
}
