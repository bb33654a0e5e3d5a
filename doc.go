// Package duralign turns per-frame symbol log-probabilities into a monotonic
// frame→symbol alignment and per-symbol frame durations.
//
// What is duralign?
//
//	A small library plus a batch tool that brings together:
//		• matrix/    - dense row-major float64 matrices
//		• core/      - a weighted directed graph over integer vertex ids
//		• gridgraph/ - the frames × symbols cost grid as a right/down DAG
//		• dijkstra/  - single-source shortest paths over core.Digraph
//		• monotone/  - the right/down dynamic program over a cost matrix
//		• align/     - cost gathering, path decoding and the two duration strategies
//
// and, for the command-line tool under cmd/duralign:
//
//	internal/npy      - NumPy .npy reading and writing
//	internal/dataset  - manifest, score files and duration outputs
//	internal/config   - YAML configuration with validation
//	internal/store    - BadgerDB result cache
//	internal/observe  - OpenTelemetry metrics, Prometheus endpoint and logging
//	internal/batch    - the bounded worker pool
//
// Quick ASCII example (frames down, target positions across):
//
//	(0,0)─(0,1) (0,2)
//	        │
//	(1,0) (1,1)─(1,2)
//	              │
//	(2,0) (2,1) (2,2)
//
// is the path 0→1→4→5→8; frame 1 ends at position 2, so the last visit
// decides its owner.
//
//	go get github.com/katalvlaran/duralign
package duralign
