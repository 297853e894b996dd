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

// Package metrics exports session statistics to Prometheus.
package metrics

import (
	"net/http"

	"github.com/engdoreis/go-ldp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRegistry creates a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler returns the HTTP handler serving reg.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// StatsSource is anything that can report session statistics.
// *ldp.Session implements it.
type StatsSource interface {
	Stats() ldp.Stats
}

type counter struct {
	desc  *prometheus.Desc
	value func(ldp.Stats) uint64
}

// Collector reads a session's counters on every scrape. The session keeps
// the counts; the collector never resets them.
type Collector struct {
	source   StatsSource
	port     string
	counters []counter
}

var _ prometheus.Collector = (*Collector)(nil)

func newCounter(name, help string, value func(ldp.Stats) uint64) counter {
	return counter{
		desc:  prometheus.NewDesc("ldp_"+name, help, []string{"port"}, nil),
		value: value,
	}
}

// NewCollector creates a collector for source, labelled with port.
func NewCollector(source StatsSource, port string) *Collector {
	return &Collector{
		source: source,
		port:   port,
		counters: []counter{
			newCounter("frames_sent_total", "Transport frames written.",
				func(s ldp.Stats) uint64 { return s.FramesSent }),
			newCounter("frames_received_total", "Valid transport frames received.",
				func(s ldp.Stats) uint64 { return s.FramesReceived }),
			newCounter("send_errors_total", "Transport frames that could not be written.",
				func(s ldp.Stats) uint64 { return s.SendErrors }),
			newCounter("process_calls_total", "Receive attempts.",
				func(s ldp.Stats) uint64 { return s.ProcessCalls }),
			newCounter("receive_timeouts_total", "Receive attempts that hit the deadline.",
				func(s ldp.Stats) uint64 { return s.Timeouts }),
			newCounter("checksum_errors_total", "Frames dropped for a checksum mismatch.",
				func(s ldp.Stats) uint64 { return s.ChecksumErrors }),
			newCounter("malformed_frames_total", "Frames dropped for an invalid length.",
				func(s ldp.Stats) uint64 { return s.MalformedFrames }),
			newCounter("read_errors_total", "Driver read failures.",
				func(s ldp.Stats) uint64 { return s.ReadErrors }),
			newCounter("discarded_bytes_total", "Bytes skipped while hunting for a sync marker.",
				func(s ldp.Stats) uint64 { return s.DiscardedBytes }),
			newCounter("calls_total", "Synchronous calls started.",
				func(s ldp.Stats) uint64 { return s.Calls }),
			newCounter("call_failures_total", "Synchronous calls that did not return StatusOk.",
				func(s ldp.Stats) uint64 { return s.CallFailures }),
			newCounter("dispatched_total", "Frames handed to a registered handler.",
				func(s ldp.Stats) uint64 { return s.Dispatched }),
			newCounter("dropped_frames_total", "Frames too short or of unknown kind.",
				func(s ldp.Stats) uint64 { return s.Dropped }),
		},
	}
}

// Describe implements prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, m := range c.counters {
		ch <- m.desc
	}
}

// Collect implements prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.source.Stats()
	for _, m := range c.counters {
		ch <- prometheus.MustNewConstMetric(m.desc, prometheus.CounterValue, float64(m.value(stats)), c.port)
	}
}
