// Package metrics provides counters and timings for link-check runs.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	checker := linkcheck.NewChecker(opts, cache, linkcheck.WithRecorder(recorder))
//
// PrometheusRecorder registers its collectors on a caller-supplied registry.
// The CLI writes that registry to a node_exporter textfile with WriteTextfile
// when --metrics-file is set.
package metrics
