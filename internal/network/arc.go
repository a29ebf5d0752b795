package network

// arc connects two nodes in the network. It tracks the id of the node
// where it currently starts and ends, the per-unit cost of pushing flow
// down it, the lower and upper bounds on the flow it must/can carry, and
// the flow currently pushed. The lower bound represents the flow that
// must be present at the moment execution can move from the
// "satisfy minimum assignment" phase into the "assign all remaining
// workers" phase.
//
// Arcs are stored by value inside Network.arcs and referenced only by
// their index into that slice; an arc never moves once created, even
// though the node it starts at changes when it inverts.
type arc struct {
	start, end       int
	cost             float64
	minFlow, maxFlow int
	currentFlow      int
}

func newArc(start, end int, cost float64, minFlow, maxFlow int) arc {
	return arc{start: start, end: end, cost: cost, minFlow: minFlow, maxFlow: maxFlow}
}

// pushFlow increments the arc's current flow by one unit and inverts the
// arc if that brings it to the threshold flow for the current phase:
// minFlow while minFlowSatisfied is false, maxFlow once it is true. It
// reports whether an inversion happened, so the caller can update the
// owning nodes' connection lists.
func (a *arc) pushFlow(minFlowSatisfied bool) bool {
	a.currentFlow++
	threshold := a.minFlow
	if minFlowSatisfied {
		threshold = a.maxFlow
	}
	if a.currentFlow == threshold {
		a.invert()
		return true
	}
	return false
}

// invert flips the arc's direction to keep the residual network
// up to date: negate cost, reset current flow, swap start and end.
// Flow bound fields are left untouched here and are never changed;
// updateForPhaseTransition sets the current flow to minFlow after
// inverting when an arc crosses into the second phase.
func (a *arc) invert() {
	a.cost = -a.cost
	a.currentFlow = 0
	a.start, a.end = a.end, a.start
}

// updateForPhaseTransition adapts the arc for the second phase of the
// solve. If the arc is already saturated (minFlow == maxFlow) there is
// nothing to do. Otherwise it inverts the arc and sets its current flow
// to minFlow, exposing maxFlow-minFlow units of additional capacity. It
// reports whether it inverted the arc.
func (a *arc) updateForPhaseTransition() bool {
	if a.minFlow == a.maxFlow {
		return false
	}
	a.invert()
	a.currentFlow = a.minFlow
	return true
}
