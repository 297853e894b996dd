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

package demo

import (
	"context"
	"testing"
	"time"

	"github.com/engdoreis/go-ldp"
	"github.com/engdoreis/go-ldp/internal/frame"
	"github.com/engdoreis/go-ldp/transport/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, clock mock.Clock) (*ldp.Session, *mock.Driver) {
	t.Helper()

	drv := mock.NewDriver(clock)
	s, err := ldp.New(drv, "demo", make([]byte, ldp.RequiredRegionSize(16)),
		ldp.WithMaxBodySize(16), ldp.WithTimeout(5*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, drv
}

func lastWritten(t *testing.T, drv *mock.Driver) ldp.Frame {
	t.Helper()

	written := drv.Port().Written()
	require.NotEmpty(t, written)
	f, err := frame.Decode(written[len(written)-1])
	require.NoError(t, err)
	h, err := ldp.DecodeHeader(f.Payload)
	require.NoError(t, err)
	return h
}

func TestServer_HandleCommand(t *testing.T) {
	t.Parallel()

	cmd1, _ := Command1{Field1: 10, Field2: 20}.MarshalBinary()
	want1, _ := Command1{Field1: 11, Field2: 22}.MarshalBinary()
	ref, _ := Reference.MarshalBinary()

	tests := []struct {
		name       string
		id         byte
		body       []byte
		wantStatus ldp.StatusCode
		wantBody   []byte
	}{
		{name: "cmd1", id: Cmd1, body: cmd1, wantStatus: ldp.StatusOk, wantBody: want1},
		{name: "cmd1 short body", id: Cmd1, body: []byte{1}, wantStatus: ldp.StatusParameter},
		{name: "cmd2", id: Cmd2, wantStatus: ldp.StatusOk, wantBody: ref},
		{name: "unknown", id: 0x7F, wantStatus: ldp.StatusNotSupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, drv := newSession(t, nil)
			srv := NewServer(nil)
			srv.HandleCommand(s, 0, &ldp.Frame{Kind: ldp.KindCommand, ID: tt.id, Body: tt.body})

			got := lastWritten(t, drv)
			assert.Equal(t, ldp.KindResponse, got.Kind)
			assert.Equal(t, tt.id, got.ID)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, len(tt.wantBody), len(got.Body))
			if len(tt.wantBody) > 0 {
				assert.Equal(t, tt.wantBody, got.Body)
			}
			assert.Equal(t, 1, srv.Commands())
		})
	}
}

func TestServer_HandleEvent(t *testing.T) {
	t.Parallel()

	s, drv := newSession(t, nil)
	srv := NewServer(nil)

	srv.HandleEvent(s, 0, &ldp.Frame{Kind: ldp.KindEvent, ID: 0x55})
	assert.Empty(t, drv.Port().Written())

	srv.HandleEvent(s, 0, &ldp.Frame{Kind: ldp.KindEvent, ID: Evt1})
	got := lastWritten(t, drv)
	assert.Equal(t, ldp.KindEvent, got.Kind)
	assert.Equal(t, byte(Evt2), got.ID)
	ref, _ := Reference.MarshalBinary()
	assert.Equal(t, ref, got.Body)
	assert.Equal(t, 2, srv.Events())
}

func TestServer_ServeStopsWhenIdle(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t, mock.NewSystemClock())
	srv := NewServer(nil)
	require.NoError(t, srv.Register(s))

	start := time.Now()
	require.NoError(t, srv.Serve(context.Background(), s, 30*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestServer_ServeStopsOnContext(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t, mock.NewSystemClock())
	srv := NewServer(nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, srv.Serve(ctx, s, 0), context.DeadlineExceeded)
}
