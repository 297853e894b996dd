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

// Ldpctl talks LDP over a serial port.
//
// It can run the demonstration server, issue the demonstration commands
// and events against a peer, and list the serial ports a link could be
// opened on.
//
// Configuration is read from ./ldpctl.yaml (or --config, or $LDP_CONFIG),
// then LDP_* environment variables, then flags. See 'ldpctl --help'.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/engdoreis/go-ldp/internal/config"
	"github.com/engdoreis/go-ldp/internal/logging"
)

// Set at build time with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  = zap.NewNop()
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = logger.Sync()

	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ldpctl",
	Short: "Talk LDP over a serial link",
	Long: `Ldpctl drives the Link Data Protocol over a framed serial link.

Commands:
  serve   answer the demonstration commands and events until the link goes idle
  call    send a demonstration command and print the response
  event   emit Evt1 and wait for the peer's Evt2
  ports   list serial ports
  config  print the effective configuration`,
	Version: version,
	Example: `  # Answer requests on the first USB serial adapter
  ldpctl serve

  # Ask the peer on /dev/ttyUSB0 to increment a record
  ldpctl call cmd1 --port /dev/ttyUSB0 --field1 10 --field2 20

  # List USB serial adapters
  ldpctl ports --usb-only`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default ./ldpctl.yaml or $"+config.ConfigEnvVar+")")
	flags.String("port", "", "Serial port path (e.g. /dev/ttyUSB0 or COM3). Empty selects the first USB adapter.")
	flags.Int("baud", 0, "Line speed")
	flags.Duration("timeout", 0, "Receive deadline per attempt")
	flags.Uint8("address", 0, "Peer address for outgoing frames")
	flags.Int("max-body", 0, "Largest message body in bytes")
	flags.String("log-level", "", "Log level: debug, info, warn, error (default $"+logging.LogLevelEnvVar+" or warn)")
	flags.String("log-format", "", "Log format: console or json")
	flags.String("log-file", "", "Also write logs to this rotating file")
	flags.String("metrics-addr", "", "Serve Prometheus metrics on this address (serve only)")

	rootCmd.AddCommand(serveCmd, callCmd, eventCmd, portsCmd, configCmd, versionCmd)
}

// loadConfig resolves configuration and builds the logger before any subcommand runs.
func loadConfig(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err = logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("ldpctl %s (commit: %s)\n", version, commit)
	},
}
