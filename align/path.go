package align

import "fmt"

// NoPredecessor marks the source and unreachable nodes in a predecessor slice.
// It matches dijkstra.NoPredecessor and monotone.NoPredecessor.
const NoPredecessor = -1

// ReconstructPath follows prev from terminal back to source and returns the
// node ids in forward order, source first and terminal last.
//
// Errors:
//   - *UnreachableTerminalError if the chain hits NoPredecessor before source.
//   - ErrInvariant if source or terminal is outside prev, or the chain is
//     longer than len(prev) (a cycle).
//
// Complexity: O(path length).
func ReconstructPath(prev []int, source, terminal int) ([]int, error) {
	n := len(prev)
	if source < 0 || source >= n || terminal < 0 || terminal >= n {
		return nil, fmt.Errorf("%w: source %d / terminal %d outside %d nodes", ErrInvariant, source, terminal, n)
	}

	var rev []int
	for v := terminal; v != source; v = prev[v] {
		if v == NoPredecessor {
			return nil, &UnreachableTerminalError{Source: source, Terminal: terminal}
		}
		if v < 0 || v >= n || len(rev) > n {
			return nil, fmt.Errorf("%w: predecessor chain broken at %d", ErrInvariant, v)
		}
		rev = append(rev, v)
	}
	rev = append(rev, source)

	path := make([]int, len(rev))
	for k, v := range rev {
		path[len(rev)-1-k] = v
	}

	return anchor(path, source, terminal), nil
}

// anchor makes path start with source and end with terminal without
// duplicating either one. Applying it twice is the same as applying it once.
func anchor(path []int, source, terminal int) []int {
	if len(path) == 0 || path[0] != source {
		path = append([]int{source}, path...)
	}
	if path[len(path)-1] != terminal {
		path = append(path, terminal)
	}

	return path
}
