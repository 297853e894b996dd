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

package mock

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPort_ReadWrite(t *testing.T) {
	t.Parallel()

	port := NewPort()
	port.Inject([]byte{1, 2, 3, 4})
	port.ReadChunk = 3

	buf := make([]byte, 8)
	n, err := port.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 1, port.Pending())

	n, err = port.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = port.Read(buf)
	require.NoError(t, err)
	assert.Zero(t, n, "empty port must not block")
	assert.Equal(t, 3, port.Reads())
}

func TestPort_Link(t *testing.T) {
	t.Parallel()

	a, b := NewPort(), NewPort()
	Link(a, b)

	var seen []byte
	a.OnWrite = func(p []byte) { seen = p }

	n, err := a.Write([]byte{0xAA, 0xBB})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte{0xAA, 0xBB}, seen)
	assert.Equal(t, [][]byte{{0xAA, 0xBB}}, a.Written())
	assert.Equal(t, 2, b.Pending())
	assert.Zero(t, a.Pending())
}

func TestPort_FlushAndClose(t *testing.T) {
	t.Parallel()

	port := NewPort()
	port.Inject([]byte{1, 2})
	require.NoError(t, port.Flush())
	assert.Zero(t, port.Pending())
	assert.Equal(t, 1, port.Flushes())

	require.NoError(t, port.Close())
	assert.True(t, port.Closed())
	_, err := port.Read(make([]byte, 1))
	require.ErrorIs(t, err, ErrClosed)
	_, err = port.Write([]byte{1})
	require.ErrorIs(t, err, ErrClosed)
}

func TestPort_WriteFailures(t *testing.T) {
	t.Parallel()

	port := NewPort()
	port.WriteErr = errors.New("line down")
	_, err := port.Write([]byte{1})
	require.Error(t, err)

	port.WriteErr = nil
	port.ShortWrite = true
	n, err := port.Write([]byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestDriver(t *testing.T) {
	t.Parallel()

	driver := NewDriver(nil)
	port, err := driver.Open("loop0")
	require.NoError(t, err)
	assert.Same(t, driver.Port(), port)
	assert.Equal(t, []string{"loop0"}, driver.Opens())

	driver.OpenErr = errors.New("no such device")
	_, err = driver.Open("loop1")
	require.Error(t, err)
	assert.Len(t, driver.Opens(), 2)
}

func TestManualClock(t *testing.T) {
	t.Parallel()

	clock := NewManualClock()
	assert.Zero(t, clock.Tick())
	clock.Sleep(5 * time.Millisecond)
	clock.Advance(time.Second)
	assert.Equal(t, time.Second+5*time.Millisecond, clock.Tick())
}
