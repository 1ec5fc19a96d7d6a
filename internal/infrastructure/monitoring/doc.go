/*
Package monitoring provides Prometheus metrics for the worker supervisor.

# Overview

The shell owns a single worker process. These metrics record how often it
was spawned, whether spawning worked, how it ended, and whether one is
running right now.

# Metrics

  - shell_worker_spawns_total{result}   spawn attempts, result=success|failure
  - shell_worker_stops_total            termination signals sent
  - shell_worker_exits_total{outcome}   observed exits, outcome=clean|error
  - shell_worker_running                1 while a worker is tracked

# Usage

	registry := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(registry)

	sup := supervisor.New(supervisor.WithMetrics(metrics))

Passing a nil Registerer uses prometheus.DefaultRegisterer.
*/
package monitoring
