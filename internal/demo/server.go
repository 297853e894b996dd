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
	"sync/atomic"
	"time"

	"github.com/engdoreis/go-ldp"
	"go.uber.org/zap"
)

// Server answers the demonstration commands and events.
//
//   - Cmd1 is answered with each field incremented (Field1+1, Field2+2).
//   - Cmd2 is answered with the Reference record.
//   - Evt1 is answered with an Evt2 event carrying the Reference record.
//
// Unknown commands get StatusNotSupported and undecodable bodies
// StatusParameter. Unknown events are ignored.
type Server struct {
	log          *zap.Logger
	lastActivity time.Time
	commands     atomic.Int64
	events       atomic.Int64
}

// NewServer creates a demo server. A nil logger disables logging.
func NewServer(logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{log: logger, lastActivity: time.Now()}
}

// Register installs the server's command and event handlers on s
func (srv *Server) Register(s *ldp.Session) error {
	if err := s.RegisterCommandHandler(ldp.HandlerFunc(srv.HandleCommand)); err != nil {
		return err
	}
	return s.RegisterEventHandler(ldp.HandlerFunc(srv.HandleEvent))
}

// HandleCommand answers one command
func (srv *Server) HandleCommand(s *ldp.Session, address byte, f *ldp.Frame) {
	srv.commands.Add(1)
	srv.lastActivity = time.Now()

	var (
		status = ldp.StatusOk
		body   []byte
	)
	switch f.ID {
	case Cmd1:
		var in Command1
		if err := in.UnmarshalBinary(f.Body); err != nil {
			status = ldp.StatusParameter
			break
		}
		body, _ = Command1{Field1: in.Field1 + 1, Field2: in.Field2 + 2}.MarshalBinary()
	case Cmd2:
		body, _ = Reference.MarshalBinary()
	default:
		status = ldp.StatusNotSupported
	}

	srv.log.Debug("answering command",
		zap.Uint8("address", address),
		zap.Uint8("id", f.ID),
		zap.Stringer("status", status))
	if err := s.SendResponse(f.ID, status, body); err != nil {
		srv.log.Warn("failed to send response", zap.Uint8("id", f.ID), zap.Error(err))
	}
}

// HandleEvent reacts to one event
func (srv *Server) HandleEvent(s *ldp.Session, address byte, f *ldp.Frame) {
	srv.events.Add(1)
	srv.lastActivity = time.Now()

	if f.ID != Evt1 {
		srv.log.Debug("ignoring event", zap.Uint8("address", address), zap.Uint8("id", f.ID))
		return
	}
	if err := Event2(s, Reference); err != nil {
		srv.log.Warn("failed to emit event", zap.Uint8("id", Evt2), zap.Error(err))
	}
}

// Commands returns how many commands were handled
func (srv *Server) Commands() int {
	return int(srv.commands.Load())
}

// Events returns how many events were handled
func (srv *Server) Events() int {
	return int(srv.events.Load())
}

// Serve polls s until ctx is done or, when idle is positive, until no
// command or event has arrived for idle. It returns nil when it stops
// because the link went idle.
func (srv *Server) Serve(ctx context.Context, s *ldp.Session, idle time.Duration) error {
	srv.lastActivity = time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if idle > 0 && time.Since(srv.lastActivity) > idle {
			srv.log.Info("link idle, stopping",
				zap.Duration("idle", idle),
				zap.Int("commands", srv.Commands()),
				zap.Int("events", srv.Events()))
			return nil
		}
		if err := s.Run(); err != nil {
			return err
		}
	}
}
