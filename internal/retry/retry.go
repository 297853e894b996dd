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

// Package retry runs the bounded retry loops used by the protocol layers.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrRetriesExhausted is returned when every attempt asked for another one.
	ErrRetriesExhausted = errors.New("retries exhausted")
	// ErrTimeout is returned by Until when the deadline passes.
	ErrTimeout = errors.New("retry timeout")
)

// Operation is a single attempt. It returns the result, whether another
// attempt is wanted, and an error that ends the loop at once.
type Operation[T any] func() (T, bool, error)

// Config bounds WithRetry.
type Config struct {
	// OnRetry runs before every attempt after the first and receives that
	// attempt's number, counted from 1. An error ends the loop.
	OnRetry func(attempt int) error
	// Attempts is the total number of attempts. Values below 1 mean 1.
	Attempts int
}

// WithRetry runs op up to cfg.Attempts times. ctx is checked before every
// attempt and its error is returned unwrapped.
func WithRetry[T any](ctx context.Context, cfg Config, op Operation[T]) (T, error) {
	var zero T
	attempts := max(cfg.Attempts, 1)

	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 && cfg.OnRetry != nil {
			if err := cfg.OnRetry(attempt); err != nil {
				return zero, err
			}
		}

		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, again, err := op()
		if err != nil {
			return zero, err
		}
		if !again {
			return result, nil
		}
	}

	return zero, fmt.Errorf("%w after %d attempts", ErrRetriesExhausted, attempts)
}

// Until repeats op, pausing poll between attempts, until it is done, fails,
// ctx ends or timeout passes. Used to wait for something to arrive on a link.
func Until[T any](ctx context.Context, timeout, poll time.Duration, op Operation[T]) (T, error) {
	var zero T
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, again, err := op()
		if err != nil {
			return zero, err
		}
		if !again {
			return result, nil
		}

		if poll > 0 {
			time.Sleep(poll)
		}
	}

	return zero, ErrTimeout
}
