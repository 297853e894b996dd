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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode_WireValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code StatusCode
		wire byte
	}{
		{name: "ok", code: StatusOk, wire: 0x00},
		{name: "not available", code: StatusNotAvailable, wire: 0x01},
		{name: "timeout", code: StatusTimeout, wire: 0x02},
		{name: "protocol", code: StatusProtocol, wire: 0x03},
		{name: "not open", code: StatusNotOpen, wire: 0x04},
		{name: "parameter", code: StatusParameter, wire: 0x05},
		{name: "not supported", code: StatusNotSupported, wire: 0xFE},
		{name: "general", code: StatusGeneral, wire: 0xFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wire, byte(tt.code))
			assert.Equal(t, tt.name, tt.code.String()[:len(tt.name)])
		})
	}
}

func TestStatusCode_Err(t *testing.T) {
	t.Parallel()

	require.NoError(t, StatusOk.Err())
	err := StatusTimeout.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, StatusTimeout)
	assert.Equal(t, "ldp: timeout", err.Error())
	assert.Equal(t, "status 0x42", StatusCode(0x42).String())
}

func TestStatusOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		name string
		want StatusCode
	}{
		{name: "nil", err: nil, want: StatusOk},
		{name: "bare code", err: StatusNotOpen, want: StatusNotOpen},
		{name: "wrapped code", err: fmt.Errorf("call: %w", StatusProtocol), want: StatusProtocol},
		{name: "foreign error", err: errors.New("boom"), want: StatusGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}
