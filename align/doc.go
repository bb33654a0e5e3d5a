// Package align extracts a monotonic frame→symbol alignment from a per-frame
// log-probability matrix and turns it into per-symbol durations.
//
// What:
//
//   - CostMatrix gathers C[i][j] = -S[i][T[j]] from scores S (frames × vocab)
//     and the target symbol ids T.
//   - A Solver finds the cheapest monotone path through C, from cell (0,0) to
//     cell (frames-1, targetLen-1). SolverDP runs the monotone dynamic program;
//     SolverDijkstra builds the grid graph and runs dijkstra.Dijkstra.
//   - ReconstructPath turns a predecessor slice into the ordered node ids.
//   - Decode walks the path once and yields MelText (frame → position),
//     TextMel (position → best frame) and BestScore.
//   - Durations counts frames per position; RepairDurations fills isolated
//     zero durations from a neighbour; MidpointDurations is the alternative
//     split on the midpoints between best frames.
//   - Aligner chains all of it for one Item.
//
// Pipeline:
//
//	scores, target
//	  └─ CostMatrix ─ Solver ─ ReconstructPath ─ Decode ─┬─ Durations → RepairDurations
//	                                                     └─ MidpointDurations
//
// Every stage allocates its own output and never mutates its input, except
// RepairDurations, which repairs the slice it is given in place.
//
// Invariants checked by the tests:
//
//   - the path is monotone and touches every frame and every position;
//   - sum(Durations) == frames before and after repair;
//   - sum(MidpointDurations) == frames;
//   - Decode is deterministic.
//
// Complexity:
//
//   - SolverDP:       O(frames·targetLen) time and memory.
//   - SolverDijkstra: O(V log V) with V = frames·targetLen, plus the adjacency.
//   - Decode, durations: O(frames + targetLen).
//
// Errors:
//
//   - *InvalidInputError (errors.Is ErrInvalidInput): empty scores or target,
//     out-of-vocabulary symbol id, non-finite score, negative cost given to
//     SolverDijkstra.
//   - *UnreachableTerminalError (errors.Is ErrUnreachableTerminal): no finite
//     monotone path reaches the terminal cell.
//   - ErrInvariant: a decoded path skipped a frame or a position.
//
// Positions that stay at zero duration after repair are not errors.
package align
