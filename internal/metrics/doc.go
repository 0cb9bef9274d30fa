// Package metrics records build and stage metrics.
//
// Components depend on the Recorder interface. NoopRecorder is the default so
// callers never nil-check; PrometheusRecorder is swapped in when the build is
// asked to export metrics, and WriteTextfile dumps its registry in the text
// exposition format for a node-exporter textfile collector.
package metrics
