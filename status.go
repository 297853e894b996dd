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

// StatusCode is the outcome of a device protocol operation. It travels on
// the wire in the status byte of every frame and doubles as the error type
// returned by Session methods, so callers can match it with errors.Is.
type StatusCode byte

// Status codes, in wire encoding.
const (
	StatusOk           StatusCode = 0x00
	StatusNotAvailable StatusCode = 0x01
	StatusTimeout      StatusCode = 0x02
	StatusProtocol     StatusCode = 0x03
	StatusNotOpen      StatusCode = 0x04
	StatusParameter    StatusCode = 0x05
	StatusNotSupported StatusCode = 0xFE
	StatusGeneral      StatusCode = 0xFF
)

var statusText = map[StatusCode]string{
	StatusOk:           "ok",
	StatusNotAvailable: "not available",
	StatusTimeout:      "timeout",
	StatusProtocol:     "protocol error",
	StatusNotOpen:      "not open",
	StatusParameter:    "parameter error",
	StatusNotSupported: "not supported",
	StatusGeneral:      "general error",
}

// String returns a human readable name for the status
func (c StatusCode) String() string {
	if s, ok := statusText[c]; ok {
		return s
	}
	return fmt.Sprintf("status 0x%02X", byte(c))
}

// Error implements the error interface
func (c StatusCode) Error() string {
	return "ldp: " + c.String()
}

// Err returns nil for StatusOk and the code itself otherwise.
func (c StatusCode) Err() error {
	if c == StatusOk {
		return nil
	}
	return c
}

// StatusOf maps an error back to a status code. Nil is StatusOk and errors
// that carry no status are StatusGeneral.
func StatusOf(err error) StatusCode {
	if err == nil {
		return StatusOk
	}
	var code StatusCode
	if errors.As(err, &code) {
		return code
	}
	return StatusGeneral
}
