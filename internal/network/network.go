package network

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const (
	sourceID = 0
	sinkID   = 1
)

// Affinity names a task and the score a worker brings to it. The score
// is stored directly as the cost of the worker -> task arc and the
// solver minimizes cost, so lower scores are preferred: the solve picks
// the assignment with the lowest summed score. TotalScore reports that
// sum, recovered as the negation of the summed cost of the arcs that
// end up pointing away from tasks.
type Affinity struct {
	Task  string
	Score float64
}

// Network is a bounded-degree flow network connecting a fixed source
// (node id 0) and sink (node id 1) through task and worker nodes. Nodes
// and arcs are stored in append-only slices and referenced only by
// their stable integer index; nothing is ever reordered or removed from
// either slice, even though arcs invert in place as flow is pushed.
type Network struct {
	id uuid.UUID

	nodes []node
	arcs  []arc

	taskNodeIDs []int
	taskNames   map[string]int
	workerNames map[string]int
	nodeNames   map[int]string

	sumOfMinima int
	sumOfMaxima int
	numWorkers  int

	minFlowSatisfied bool
	iterations       int

	solved bool
}

// New builds an empty network with a freshly generated session id.
func New() *Network {
	return NewWithID(uuid.New())
}

// NewWithID builds an empty network stamped with the given id, so a
// caller that already has a correlation id (e.g. from an inbound
// request) can keep using it through to the solver's logs and metrics.
func NewWithID(id uuid.UUID) *Network {
	n := &Network{id: id, nodeNames: make(map[int]string)}
	n.nodes = append(n.nodes, node{}, node{}) // 0 = source, 1 = sink
	return n
}

// ID returns the network's session id.
func (net *Network) ID() uuid.UUID {
	return net.id
}

// addArc appends a new arc to the arena and registers it as originating
// at start.
func (net *Network) addArc(start, end int, cost float64, minFlow, maxFlow int) int {
	id := len(net.arcs)
	net.arcs = append(net.arcs, newArc(start, end, cost, minFlow, maxFlow))
	net.nodes[start].addConnection(id)
	return id
}

// AddTask registers a task that needs between minWorkers and maxWorkers
// assigned to it. It returns the task's node id.
//
// A task arc runs between the task node and the sink with bounds
// (minWorkers, maxWorkers). If minWorkers is zero the task has nothing
// to satisfy in the first phase, so the arc is created already inverted
// (sink -> task) — PhaseControl un-inverts it, as it does every
// sink-incident arc whose maximum exceeds its minimum, once the first
// phase ends, which for an all-zero-minimum network happens
// immediately. A task with a zero maximum as well keeps its arc at the
// sink and never receives a worker.
func (net *Network) AddTask(name string, minWorkers, maxWorkers int) (int, error) {
	if minWorkers < 0 || maxWorkers < minWorkers {
		return 0, withField(ErrInvalidBounds, name)
	}
	if name != "" {
		if _, exists := net.taskNames[name]; exists {
			return 0, withField(ErrDuplicateName, name)
		}
	}

	taskID := len(net.nodes)
	net.nodes = append(net.nodes, node{})
	net.taskNodeIDs = append(net.taskNodeIDs, taskID)
	net.sumOfMinima += minWorkers
	net.sumOfMaxima += maxWorkers

	if minWorkers > 0 {
		net.addArc(taskID, sinkID, 0, minWorkers, maxWorkers)
	} else {
		net.addArc(sinkID, taskID, 0, minWorkers, maxWorkers)
	}

	if name != "" {
		if net.taskNames == nil {
			net.taskNames = make(map[string]int)
		}
		net.taskNames[name] = taskID
		net.nodeNames[taskID] = name
	}
	return taskID, nil
}

// AddWorker registers a worker able to take on any one of the tasks
// named in affinities, with the given affinity score for each. It
// returns the worker's node id.
//
// A source -> worker arc with bounds (1, 1) represents the requirement
// that every worker be assigned to exactly one task; a worker -> task
// arc with bounds (1, 1) and cost equal to the affinity score represents
// that possible assignment.
func (net *Network) AddWorker(name string, affinities []Affinity) (int, error) {
	if name != "" {
		if _, exists := net.workerNames[name]; exists {
			return 0, withField(ErrDuplicateName, name)
		}
	}
	for _, a := range affinities {
		if _, ok := net.taskNames[a.Task]; !ok {
			return 0, withField(ErrUnknownTask, a.Task)
		}
	}

	workerID := len(net.nodes)
	net.nodes = append(net.nodes, node{})
	net.addArc(sourceID, workerID, 0, 1, 1)
	for _, a := range affinities {
		net.addArc(workerID, net.taskNames[a.Task], a.Score, 1, 1)
	}
	net.numWorkers++

	if name != "" {
		if net.workerNames == nil {
			net.workerNames = make(map[string]int)
		}
		net.workerNames[name] = workerID
		net.nodeNames[workerID] = name
	}
	return workerID, nil
}

// SolveOptions configures a call to Solve.
type SolveOptions struct {
	// Context is checked for cancellation between augmenting
	// iterations; the in-flight unit-flow push is never interrupted
	// mid-way. A nil Context behaves like context.Background().
	Context context.Context

	// Progress, if non-nil, is invoked synchronously after each
	// augmenting iteration with the fraction of workers assigned so
	// far (iterations / total worker count).
	Progress ProgressFunc
}

// ProgressFunc reports solve progress as a fraction in [0, 1].
type ProgressFunc func(fraction float64)

// DefaultSolveOptions returns options with a background context and no
// progress callback.
func DefaultSolveOptions() SolveOptions {
	return SolveOptions{Context: context.Background()}
}

// WithContext sets the context checked between iterations.
func (o SolveOptions) WithContext(ctx context.Context) SolveOptions {
	o.Context = ctx
	return o
}

// WithProgress sets the progress callback.
func (o SolveOptions) WithProgress(p ProgressFunc) SolveOptions {
	o.Progress = p
	return o
}

// Solve runs the two-phase minimum-cost augmenting-path search: phase
// one satisfies each task's minimum headcount, phase two fills capacity
// up to each task's maximum with whichever workers remain, always
// preferring the path of lowest total cost. It returns
// ErrInsufficientWorkers or ErrInsufficientCapacity if the worker count
// makes the configuration infeasible on its face, or ErrInfeasible if
// counts were plausible but no augmenting path could route every
// worker. Calling Solve again on an already-solved network is a no-op:
// the source has no remaining outgoing arcs, so the augmenting loop
// simply does not execute.
func (net *Network) Solve(opts SolveOptions) error {
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	if !net.solved {
		if err := net.checkCountsFeasible(); err != nil {
			return err
		}
		net.solved = true
		if net.sumOfMinima == 0 {
			net.transitionToPhaseTwo()
		}
	}

	for net.nodes[sourceID].numConnections() > 0 {
		if err := opts.Context.Err(); err != nil {
			return err
		}

		path, err := net.shortestPath()
		if err != nil {
			return ErrInfeasible
		}

		net.pushFlowAlongPath(path)
		net.iterations++

		if !net.minFlowSatisfied && net.iterations == net.sumOfMinima {
			net.transitionToPhaseTwo()
		}

		if opts.Progress != nil && net.numWorkers > 0 {
			opts.Progress(float64(net.iterations) / float64(net.numWorkers))
		}
	}

	return nil
}

// pushFlowAlongPath pushes one unit of flow across every arc on path,
// moving each arc's id between node connection lists whenever pushing
// that unit inverts the arc.
func (net *Network) pushFlowAlongPath(path []int) {
	for i := 0; i < len(path)-1; i++ {
		u, v := path[i], path[i+1]
		arcID, ok := net.FindConnectingArc(u, v)
		if !ok {
			panic(invariantViolation(fmt.Sprintf("no arc found between nodes %d and %d on augmenting path", u, v)))
		}
		a := &net.arcs[arcID]
		if a.pushFlow(net.minFlowSatisfied) {
			net.nodes[u].removeConnection(arcID)
			net.nodes[a.start].addConnection(arcID)
		}
	}
}

// FindConnectingArc reports the id of the arc that currently originates
// at u and ends at v, if one exists.
func (net *Network) FindConnectingArc(u, v int) (int, bool) {
	for _, arcID := range net.nodes[u].connections {
		if net.arcs[arcID].end == v {
			return arcID, true
		}
	}
	return 0, false
}

// PathCost sums the cost of the arcs connecting each consecutive pair of
// node ids in path, without mutating the network. It returns an error
// if any consecutive pair is not currently connected by an arc.
func (net *Network) PathCost(path []int) (float64, error) {
	var total float64
	for i := 0; i < len(path)-1; i++ {
		arcID, ok := net.FindConnectingArc(path[i], path[i+1])
		if !ok {
			return 0, fmt.Errorf("no arc between nodes %d and %d", path[i], path[i+1])
		}
		total += net.arcs[arcID].cost
	}
	return total, nil
}

// WorkerAssignments returns, for every named task, the names of the
// workers currently assigned to it. Tasks and workers added without a
// name are omitted, since they have nothing to key the map by; use
// node ids directly via TaskAssignments for that case.
func (net *Network) WorkerAssignments() map[string][]string {
	result := make(map[string][]string, len(net.taskNodeIDs))
	for _, taskID := range net.taskNodeIDs {
		taskName, named := net.nodeNames[taskID]
		if !named {
			continue
		}
		var workers []string
		for _, arcID := range net.nodes[taskID].connections {
			end := net.arcs[arcID].end
			if end == sinkID {
				continue
			}
			if workerName, ok := net.nodeNames[end]; ok {
				workers = append(workers, workerName)
			}
		}
		result[taskName] = workers
	}
	return result
}

// TaskAssignments returns, for every task node id, the node ids of the
// workers currently assigned to it. It works regardless of whether
// tasks or workers were given names.
func (net *Network) TaskAssignments() map[int][]int {
	result := make(map[int][]int, len(net.taskNodeIDs))
	for _, taskID := range net.taskNodeIDs {
		var workers []int
		for _, arcID := range net.nodes[taskID].connections {
			end := net.arcs[arcID].end
			if end == sinkID {
				continue
			}
			workers = append(workers, end)
		}
		result[taskID] = workers
	}
	return result
}

// TotalScore sums the affinity scores of every assignment made during
// Solve. It is the negation of the summed cost of arcs that currently
// originate at a task node and end somewhere other than the sink,
// since a worker -> task arc's cost (the affinity) is negated each time
// it inverts, and an assigned worker's arc has inverted an odd number of
// times (later augmenting paths may unassign and reassign a worker) by
// the time Solve returns, so it points from the task with negated cost.
func (net *Network) TotalScore() float64 {
	var total float64
	for _, taskID := range net.taskNodeIDs {
		for _, arcID := range net.nodes[taskID].connections {
			a := &net.arcs[arcID]
			if a.end != sinkID {
				total += -a.cost
			}
		}
	}
	return total
}

// NumNodes returns the number of nodes currently in the arena,
// including source and sink.
func (net *Network) NumNodes() int {
	return len(net.nodes)
}

// NumArcs returns the number of arcs currently in the arena.
func (net *Network) NumArcs() int {
	return len(net.arcs)
}
