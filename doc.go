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

/*
Package ldp implements a small command, response and event protocol for
talking to devices over a serial byte stream.

The stack has two layers. The transport protocol (package tp) frames raw
bytes into addressed packets protected by a CRC-16 and enforces a receive
deadline. The device protocol in this package adds a three byte header
(kind, id, status) and turns packets into typed exchanges:

  - Commands are answered by responses that carry the same id.
  - Events are unsolicited and never answered.
  - Every frame carries a StatusCode; responses use it to report the
    outcome of the command.

Features:
  - Synchronous calls with a bounded number of receive attempts
  - Asynchronous commands whose responses reach a registered handler
  - Events that are dispatched even while a synchronous call is waiting
  - All frame buffers carved from one caller supplied memory region
  - Pluggable drivers: a UART driver and an in-memory mock are included

Basic Usage:

	import (
	    "github.com/engdoreis/go-ldp"
	    "github.com/engdoreis/go-ldp/transport/uart"
	)

	driver, err := uart.New(uart.WithBaudRate(115200))
	if err != nil {
	    return err
	}

	region := make([]byte, ldp.RequiredRegionSize(ldp.DefaultMaxBodySize))
	session, err := ldp.New(driver, "/dev/ttyUSB0", region)
	if err != nil {
	    return err
	}
	defer session.Close()

	out := make([]byte, 4)
	n, err := session.Call(0x01, []byte{0x00, 0x00, 0x14, 0x00}, out)
	if err != nil {
	    return err
	}
	fmt.Printf("% X\n", out[:n])

Serving Requests:

Handlers are registered per frame kind and run on the goroutine that polls
the session:

	session.RegisterCommandHandler(ldp.HandlerFunc(
	    func(s *ldp.Session, _ byte, f *ldp.Frame) {
	        _ = s.SendResponse(f.ID, ldp.StatusOk, f.Body)
	    }))
	return session.Serve(ctx)

Reply Gate:

A synchronous call sets the reply gate, which holds back every frame but
events. The first frame that arrives opens it again, whatever it is.
Events are dispatched even while the gate is set; a command or response
that opens the gate without matching is not dispatched at all. Frames arriving later in the same call reach their
handlers as usual. Peers should therefore avoid sending unsolicited
commands while a call is outstanding.

Error Handling:

Failures are reported as StatusCode values, wrapped with context:

	_, err := session.Call(id, body, out)
	switch {
	case errors.Is(err, ldp.StatusProtocol):
	    // no matching response
	case errors.Is(err, ldp.StatusParameter):
	    // body too large
	}

Thread Safety:

A Session must be used from a single goroutine. Stats is the only method
that may be called concurrently.
*/
package ldp
