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

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/engdoreis/go-ldp"
	"github.com/engdoreis/go-ldp/detection"
	"github.com/engdoreis/go-ldp/internal/demo"
	"github.com/engdoreis/go-ldp/metrics"
	"github.com/engdoreis/go-ldp/transport/uart"
)

// Command flags
var (
	idle     time.Duration
	async    bool
	field1   uint16
	field2   uint16
	waitFor  time.Duration
	usbOnly  bool
	showPath bool
)

func init() {
	serveCmd.Flags().DurationVar(&idle, "idle", time.Second, "Stop after this long without traffic (0 runs until interrupted)")

	callCmd.Flags().BoolVar(&async, "async", false, "Send without waiting for the response")
	callCmd.Flags().Uint16Var(&field1, "field1", 0, "Field1 of the cmd1 record")
	callCmd.Flags().Uint16Var(&field2, "field2", 0, "Field2 of the cmd1 record")

	eventCmd.Flags().Uint16Var(&field1, "field1", 0, "Field1 of the Evt1 record")
	eventCmd.Flags().Uint16Var(&field2, "field2", 0, "Field2 of the Evt1 record")
	eventCmd.Flags().DurationVar(&waitFor, "wait", 2*time.Second, "How long to wait for Evt2")

	portsCmd.Flags().BoolVar(&usbOnly, "usb-only", false, "Only list USB serial adapters")
	portsCmd.Flags().BoolVar(&showPath, "path-only", false, "Print paths only")
}

// resolvePort returns the configured port, or the first USB adapter found.
func resolvePort(ctx context.Context) (string, error) {
	if cfg.Link.Port != "" {
		return cfg.Link.Port, nil
	}

	opts := detection.DefaultOptions()
	opts.USBOnly = true
	ports, err := detection.ListPorts(ctx, opts)
	if err != nil {
		return "", fmt.Errorf("no --port given and auto-detection failed: %w", err)
	}

	logger.Info("auto-detected serial port",
		zap.String("port", ports[0].Path),
		zap.String("vid_pid", ports[0].VIDPID))
	return ports[0].Path, nil
}

// openSession opens an LDP session on the configured serial port.
func openSession(ctx context.Context) (*ldp.Session, error) {
	port, err := resolvePort(ctx)
	if err != nil {
		return nil, err
	}

	driver, err := uart.New(
		uart.WithBaudRate(cfg.Link.Baud),
		uart.WithPollInterval(cfg.Link.PollInterval),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create UART driver: %w", err)
	}

	s, err := ldp.New(driver, port, make([]byte, cfg.Region()),
		ldp.WithTimeout(cfg.Link.Timeout),
		ldp.WithAddress(cfg.Link.Address),
		ldp.WithMaxBodySize(cfg.Link.MaxBody),
		ldp.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open session on %s: %w", port, err)
	}
	return s, nil
}

func closeSession(s *ldp.Session) {
	if err := s.Close(); err != nil {
		logger.Warn("failed to close session", zap.Error(err))
	}
}

func printYAML(cmd *cobra.Command, v any) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return enc.Close()
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Answer the demonstration commands and events",
	Long: `Serve answers Cmd1 with each field incremented, Cmd2 with the reference
record, and Evt1 with an Evt2 event. It stops once the link has been idle
for --idle, or on interrupt.

When metrics.addr is set, session counters are exported for Prometheus.`,
	Example: `  ldpctl serve --port /dev/ttyUSB0 --idle 0 --metrics-addr :9105`,
	Args:    cobra.NoArgs,
	RunE:    runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer closeSession(s)

	srv := demo.NewServer(logger)
	if err := srv.Register(s); err != nil {
		return err
	}

	if cfg.Metrics.Addr != "" {
		stop, err := startMetrics(s)
		if err != nil {
			return err
		}
		defer stop()
	}

	err = srv.Serve(ctx, s, idle)
	cmd.Printf("served %d commands and %d events\n", srv.Commands(), srv.Events())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// startMetrics serves the session counters and returns a function that stops the server.
func startMetrics(s *ldp.Session) (func(), error) {
	reg := metrics.NewRegistry()
	if err := reg.Register(metrics.NewCollector(s, s.PortName())); err != nil {
		return nil, fmt.Errorf("failed to register collector: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, metrics.Handler(reg))
	httpSrv := &http.Server{
		Addr:              cfg.Metrics.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("metrics server listening",
			zap.String("addr", cfg.Metrics.Addr),
			zap.String("path", cfg.Metrics.Path))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(ctx); err != nil {
			logger.Warn("metrics server shutdown failed", zap.Error(err))
		}
	}, nil
}

var callCmd = &cobra.Command{
	Use:       "call cmd1|cmd2",
	Short:     "Send a demonstration command",
	Long:      `Call sends Cmd1 or Cmd2 and prints the decoded response, or returns after sending with --async.`,
	Example:   "  ldpctl call cmd1 --field1 0 --field2 20\n  ldpctl call cmd2 --async",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"cmd1", "cmd2"},
	RunE:      runCall,
}

func runCall(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer closeSession(s)

	in := demo.Command1{Field1: field1, Field2: field2}
	switch args[0] {
	case "cmd1":
		if async {
			return demo.SendCommand1(s, in)
		}
		out, err := demo.CallCommand1(ctx, s, in)
		if err != nil {
			return fmt.Errorf("cmd1 failed: %w", err)
		}
		return printYAML(cmd, out)
	default:
		if async {
			return demo.SendCommand2(s)
		}
		out, err := demo.CallCommand2(ctx, s)
		if err != nil {
			return fmt.Errorf("cmd2 failed: %w", err)
		}
		return printYAML(cmd, out)
	}
}

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Emit Evt1 and wait for Evt2",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer closeSession(s)

		if err := demo.Event1(s, demo.Command1{Field1: field1, Field2: field2}); err != nil {
			return fmt.Errorf("failed to emit event: %w", err)
		}
		out, err := demo.AwaitEvent2(cmd.Context(), s, waitFor)
		if err != nil {
			return fmt.Errorf("no Evt2 within %v: %w", waitFor, err)
		}
		return printYAML(cmd, out)
	},
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts := detection.DefaultOptions()
		opts.USBOnly = usbOnly
		ports, err := detection.ListPorts(cmd.Context(), opts)
		if err != nil {
			return err
		}

		if showPath {
			for _, p := range ports {
				cmd.Println(p.Path)
			}
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "PATH\tVID:PID\tMANUFACTURER\tPRODUCT\tSERIAL")
		for _, p := range ports {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.Path, dash(p.VIDPID), dash(p.Manufacturer),
				dash(p.Product), dash(p.SerialNumber))
		}
		return w.Flush()
	},
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printYAML(cmd, cfg)
	},
}
