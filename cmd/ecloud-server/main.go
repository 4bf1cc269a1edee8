// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/luxfi/ecloud/internal/config"
	"github.com/luxfi/ecloud/internal/coordinator"
	"github.com/luxfi/ecloud/internal/logging"
	"github.com/luxfi/ecloud/internal/metrics"
	"github.com/luxfi/ecloud/internal/transport/grpcadapter"
)

var (
	flagPort          uint16
	flagNumPorts      uint16
	flagMinLogLevel   string
	flagPushBasePort  uint16
	flagPushAPIPort   uint16
	flagPushWorkers   int
	flagNoAdminHTTP   bool
	flagAdminHTTPAddr string
)

var rootCmd = &cobra.Command{
	Use:   "ecloud-server",
	Short: "Tick-synchronization barrier coordinator for co-simulation vehicle clients",
	Long: `ecloud-server arbitrates tick rounds between a Simulation API and its
vehicle clients: it fans out each tick, collects replies into round-complete
notifications, and exposes an edge-waypoint relay.`,
	RunE: runServer,
}

func init() {
	rootCmd.Flags().Uint16Var(&flagPort, "port", 50051, "inbound listen port")
	rootCmd.Flags().Uint16Var(&flagNumPorts, "num_ports", 1, "number of sibling listen ports, stride 2, starting at --port")
	rootCmd.Flags().StringVar(&flagMinLogLevel, "minloglevel", "info", "log severity threshold (debug, info, warn, error)")
	rootCmd.Flags().Uint16Var(&flagPushBasePort, "push-base-port", 50101, "base push port for vehicle clients (vehicle i is at base+i)")
	rootCmd.Flags().Uint16Var(&flagPushAPIPort, "push-api-port", 50061, "push port on the simulator's host")
	rootCmd.Flags().IntVar(&flagPushWorkers, "push-workers", 32, "bounded push worker pool size")
	rootCmd.Flags().BoolVar(&flagNoAdminHTTP, "no-admin-http", false, "disable the /healthz and /metrics HTTP surface")
	rootCmd.Flags().StringVar(&flagAdminHTTPAddr, "admin-http-addr", ":8080", "listen address for /healthz and /metrics")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewBuilder().
		WithPort(flagPort).
		WithNumPorts(flagNumPorts).
		WithMinLogLevel(flagMinLogLevel).
		WithPushBasePort(flagPushBasePort).
		WithSimulatorPushPort(flagPushAPIPort).
		WithPushWorkerPoolSize(flagPushWorkers).
		Build()
	if err != nil {
		return fmt.Errorf("ecloud-server: invalid configuration: %w", err)
	}

	log := logging.NewZap(cfg.MinLogLevel)
	registry := prometheus.NewRegistry()
	mx, err := metrics.New("ecloud", registry)
	if err != nil {
		return fmt.Errorf("ecloud-server: register metrics: %w", err)
	}

	coord := coordinator.New(cfg, log, mx, grpcadapter.Dial)

	simulatorAddr := fmt.Sprintf(":%d", cfg.SimulatorPushPort)
	if simulatorPusher, err := grpcadapter.Dial(simulatorAddr); err != nil {
		log.Warn("could not pre-dial simulator push endpoint", "addr", simulatorAddr, "error", err)
	} else {
		coord.SetSimulatorPusher(simulatorPusher)
	}

	closer, err := grpcadapter.Serve(cfg, log, coord)
	if err != nil {
		return fmt.Errorf("ecloud-server: serve: %w", err)
	}
	defer closer.Close()

	if !flagNoAdminHTTP {
		go serveAdminHTTP(flagAdminHTTPAddr, log, coord, registry)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info("received signal, exiting", "signal", sig.String())
	// Exit at once with the signal number; deferred cleanup does not run.
	if s, ok := sig.(syscall.Signal); ok {
		os.Exit(int(s))
	}
	return nil
}

// serveAdminHTTP exposes /healthz (backed by the coordinator's
// health.Checkable) and /metrics (Prometheus text exposition) — named in
// SPEC_FULL.md §6 as operability surface outside the core RPC protocol.
func serveAdminHTTP(addr string, log logging.Logger, coord *coordinator.Coordinator, gatherer prometheus.Gatherer) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		report, err := coord.Health(r.Context())
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(report)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	log.Info("admin http listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error("admin http exited", "error", err)
	}
}
