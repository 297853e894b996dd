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
	"time"

	"github.com/engdoreis/go-ldp"
	"github.com/engdoreis/go-ldp/internal/retry"
)

// CallCommand1 sends Cmd1 and waits for the incremented record.
func CallCommand1(ctx context.Context, s *ldp.Session, in Command1) (Command1, error) {
	body, _ := in.MarshalBinary()
	out := make([]byte, Cmd1Size)

	n, err := s.CallContext(ctx, Cmd1, body, out)
	if err != nil {
		return Command1{}, err
	}
	var reply Command1
	if err := reply.UnmarshalBinary(out[:n]); err != nil {
		return Command1{}, err
	}
	return reply, nil
}

// SendCommand1 sends Cmd1 without waiting for the response.
func SendCommand1(s *ldp.Session, in Command1) error {
	body, _ := in.MarshalBinary()
	return s.SendAsync(Cmd1, body)
}

// CallCommand2 sends Cmd2 and waits for the reference record.
func CallCommand2(ctx context.Context, s *ldp.Session) (Command2, error) {
	out := make([]byte, Cmd2Size)

	n, err := s.CallContext(ctx, Cmd2, nil, out)
	if err != nil {
		return Command2{}, err
	}
	var reply Command2
	if err := reply.UnmarshalBinary(out[:n]); err != nil {
		return Command2{}, err
	}
	return reply, nil
}

// SendCommand2 sends Cmd2 without waiting for the response.
func SendCommand2(s *ldp.Session) error {
	return s.SendAsync(Cmd2, nil)
}

// Event1 emits Evt1 carrying a Cmd1 record
func Event1(s *ldp.Session, in Command1) error {
	body, _ := in.MarshalBinary()
	return s.EmitEvent(Evt1, body)
}

// Event2 emits Evt2 carrying a Cmd2 record
func Event2(s *ldp.Session, in Command2) error {
	body, _ := in.MarshalBinary()
	return s.EmitEvent(Evt2, body)
}

// AwaitEvent2 polls s until an Evt2 arrives, ctx ends or timeout passes.
// It installs its own event handler on s, replacing any registered one.
func AwaitEvent2(ctx context.Context, s *ldp.Session, timeout time.Duration) (Command2, error) {
	var (
		got       Command2
		seen      bool
		decodeErr error
	)
	err := s.RegisterEventHandler(ldp.HandlerFunc(func(_ *ldp.Session, _ byte, f *ldp.Frame) {
		if f.ID != Evt2 || seen {
			return
		}
		seen = true
		decodeErr = got.UnmarshalBinary(f.Body)
	}))
	if err != nil {
		return Command2{}, err
	}

	return retry.Until(ctx, timeout, 0, func() (Command2, bool, error) {
		if err := s.Run(); err != nil {
			return Command2{}, false, err
		}
		if !seen {
			return Command2{}, true, nil
		}
		return got, false, decodeErr
	})
}
