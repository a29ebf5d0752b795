// Package network implements a bounded-degree worker-to-task assignment
// solver over a min-cost flow network.
//
// The network has a fixed source (node id 0) and sink (node id 1). Tasks
// and workers are added as nodes; arcs carry per-unit cost and flow
// bounds. Solving runs a two-phase augmenting-path search: phase one
// drives just enough flow to satisfy every task's minimum headcount,
// phase two fills remaining capacity with the highest-affinity workers
// available. The residual network is represented by inverting arcs in
// place rather than allocating separate reverse edges.
package network
