/*
Package observability bridges the engine's lifecycle callbacks to Prometheus.

Attach Metrics to a runner through its Hooks() and phase and hook activity
shows up as counters and histograms, without the core knowing anything about
metrics.
*/
package observability
