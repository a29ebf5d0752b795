package network

import "math"

// shortestPath finds a minimum-cost path from source to sink using a
// worklist-based Bellman-Ford search: arc costs may be negative (once
// an arc has inverted), but the network never contains a negative
// cycle reachable from source, since flow is only ever pushed forward
// along simple source-to-sink paths.
//
// Arcs that originate at the sink are never relaxed from: the sink can
// only be an endpoint of a simple path, never an interior node, so an
// arc leaving it can never appear on a valid path without revisiting
// the sink. Those arcs stay in the arena and the sink's connection list
// for bookkeeping, but the search simply never expands the sink.
func (net *Network) shortestPath() ([]int, error) {
	numNodes := len(net.nodes)
	dist := make([]float64, numNodes)
	pred := make([]int, numNodes)
	for i := range dist {
		dist[i] = math.Inf(1)
		pred[i] = -1
	}
	dist[sourceID] = 0

	worklist := []int{sourceID}
	iteration := 0
	for len(worklist) > 0 && iteration < numNodes {
		next := make([]int, 0, len(worklist))
		seen := make(map[int]bool, len(worklist))

		for _, u := range worklist {
			for _, arcID := range net.nodes[u].connections {
				a := &net.arcs[arcID]
				v := a.end
				if candidate := dist[u] + a.cost; candidate < dist[v] {
					dist[v] = candidate
					pred[v] = u
					if v != sinkID && !seen[v] {
						seen[v] = true
						next = append(next, v)
					}
				}
			}
		}

		worklist = next
		iteration++
	}

	if len(worklist) > 0 {
		panic(invariantViolation("shortest path search did not converge within the node count"))
	}

	if pred[sinkID] == -1 {
		return nil, ErrInfeasible
	}

	return reconstructPath(pred, sourceID, sinkID), nil
}

// reconstructPath walks pred backward from sink to source and reverses
// the result into a forward path.
func reconstructPath(pred []int, source, sink int) []int {
	path := []int{sink}
	for cur := sink; cur != source; {
		prev := pred[cur]
		if prev == -1 {
			panic(invariantViolation("path reconstruction could not reach source"))
		}
		path = append(path, prev)
		cur = prev
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
