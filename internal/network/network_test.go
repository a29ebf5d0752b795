package network

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushFlowDownPathInvertsTheTraversedArc(t *testing.T) {
	net := New()
	net.addArc(sourceID, sinkID, 16.8, 1, 1)

	net.pushFlowAlongPath([]int{sourceID, sinkID})

	assert.Equal(t, 0, net.nodes[sourceID].numConnections())
	assert.Equal(t, 1, net.nodes[sinkID].numConnections())
	assert.Equal(t, -16.8, net.arcs[0].cost)
	assert.Equal(t, sinkID, net.arcs[0].start)
	assert.Equal(t, sourceID, net.arcs[0].end)
}

// basicTwoTaskNetwork reproduces the original Rust suite's
// test_shortest_path fixture: two tasks each requiring exactly one
// worker, two workers with differing affinity for each.
func basicTwoTaskNetwork(t *testing.T) *Network {
	net := New()
	_, err := net.AddTask("Task 1", 1, 1)
	require.NoError(t, err)
	_, err = net.AddTask("Task 2", 1, 1)
	require.NoError(t, err)

	_, err = net.AddWorker("Worker 1", []Affinity{
		{Task: "Task 1", Score: 2.5},
		{Task: "Task 2", Score: 3.0},
	})
	require.NoError(t, err)

	_, err = net.AddWorker("Worker 2", []Affinity{
		{Task: "Task 1", Score: 2.6},
		{Task: "Task 2", Score: 1.9},
	})
	require.NoError(t, err)

	return net
}

func TestShortestPathFindsTheCheapestAugmentingPath(t *testing.T) {
	net := basicTwoTaskNetwork(t)

	require.Equal(t, 6, net.NumNodes())
	require.Equal(t, 8, net.NumArcs())

	path, err := net.shortestPath()
	require.NoError(t, err)
	require.Len(t, path, 4)
	assert.Equal(t, sourceID, path[0])
	assert.Equal(t, sinkID, path[len(path)-1])

	cost, err := net.PathCost(path)
	require.NoError(t, err)
	assert.InDelta(t, 1.9, cost, 1e-9)

	net.pushFlowAlongPath(path)

	reversed := make([]int, len(path))
	for i, v := range path {
		reversed[len(path)-1-i] = v
	}
	for i := 0; i < len(reversed)-1; i++ {
		_, ok := net.FindConnectingArc(reversed[i], reversed[i+1])
		assert.True(t, ok, "arc between %d and %d was not inverted", reversed[i+1], reversed[i])
	}
}

func TestSolveBasicTwoTaskNetwork(t *testing.T) {
	net := basicTwoTaskNetwork(t)

	err := net.Solve(DefaultSolveOptions())
	require.NoError(t, err)

	assert.InDelta(t, 4.4, net.TotalScore(), 1e-9)

	assignments := net.WorkerAssignments()
	assert.ElementsMatch(t, []string{"Worker 1"}, assignments["Task 1"])
	assert.ElementsMatch(t, []string{"Worker 2"}, assignments["Task 2"])
}

// tenWorkersFiveTasksNetwork reproduces the original Rust suite's
// test_min_cost_augmentation fixture verbatim, including its literal
// affinity matrix.
func tenWorkersFiveTasksNetwork(t *testing.T) *Network {
	net := New()

	taskBounds := [][2]int{{1, 2}, {2, 2}, {0, 2}, {2, 3}, {1, 2}}
	taskNames := make([]string, len(taskBounds))
	for i, b := range taskBounds {
		name := taskNameFor(i)
		taskNames[i] = name
		_, err := net.AddTask(name, b[0], b[1])
		require.NoError(t, err)
	}

	affinityMatrix := [][]float64{
		{3.0, 4.0, 1.5, 1.5, 5.0},
		{4.0, 3.0, 6.0, 2.0, 1.0},
		{2.0, 5.0, 4.0, 1.0, 3.0},
		{3.0, 5.0, 1.0, 4.0, 0.0},
		{1.0, 4.0, 2.0, 3.0, 5.0},
		{5.0, 3.0, 1.0, 4.0, 2.0},
		{1.0, 3.0, 5.0, 4.0, 2.0},
		{4.0, 3.0, 5.0, 1.0, 2.0},
		{5.0, 2.0, 3.0, 4.0, 1.0},
		{2.0, 5.0, 1.0, 3.0, 4.0},
	}

	for i, row := range affinityMatrix {
		affinities := make([]Affinity, len(row))
		for j, score := range row {
			affinities[j] = Affinity{Task: taskNames[j], Score: score}
		}
		_, err := net.AddWorker(workerNameFor(i), affinities)
		require.NoError(t, err)
	}

	return net
}

func taskNameFor(i int) string   { return "Task " + strconv.Itoa(i+1) }
func workerNameFor(i int) string { return "Worker " + strconv.Itoa(i+1) }

func TestSolveTenWorkersFiveTasks(t *testing.T) {
	net := tenWorkersFiveTasksNetwork(t)

	require.Equal(t, 17, net.NumNodes())
	require.Equal(t, 65, net.NumArcs())
	require.Equal(t, 10, net.nodes[sourceID].numConnections())
	require.Equal(t, 1, net.nodes[sinkID].numConnections())

	err := net.Solve(DefaultSolveOptions())
	require.NoError(t, err)

	assert.Equal(t, 0, net.nodes[sourceID].numConnections())
	assert.Equal(t, 4, net.nodes[sinkID].numConnections())

	total := net.TotalScore()
	assert.Less(t, math.Abs(total-12.5)/12.5, 5e-10)
}

func TestSolveReturnsInsufficientWorkersWhenBelowSumOfMinima(t *testing.T) {
	net := New()
	_, err := net.AddTask("Task 1", 2, 2)
	require.NoError(t, err)
	_, err = net.AddWorker("Worker 1", []Affinity{{Task: "Task 1", Score: 1.0}})
	require.NoError(t, err)

	err = net.Solve(DefaultSolveOptions())
	assert.ErrorIs(t, err, ErrInsufficientWorkers)
}

func TestSolveReturnsInsufficientCapacityWhenAboveSumOfMaxima(t *testing.T) {
	net := New()
	_, err := net.AddTask("Task 1", 1, 1)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err = net.AddWorker(workerNameFor(i), []Affinity{{Task: "Task 1", Score: 1.0}})
		require.NoError(t, err)
	}

	err = net.Solve(DefaultSolveOptions())
	assert.ErrorIs(t, err, ErrInsufficientCapacity)
}

func TestSolveReturnsInfeasibleWhenAWorkerCannotReachAnUnmetTask(t *testing.T) {
	net := New()
	_, err := net.AddTask("Task 1", 1, 1)
	require.NoError(t, err)
	_, err = net.AddTask("Task 2", 1, 1)
	require.NoError(t, err)

	// Both workers can only reach Task 1, so Task 2's minimum is
	// unreachable even though the raw counts look plausible.
	_, err = net.AddWorker("Worker 1", []Affinity{{Task: "Task 1", Score: 1.0}})
	require.NoError(t, err)
	_, err = net.AddWorker("Worker 2", []Affinity{{Task: "Task 1", Score: 2.0}})
	require.NoError(t, err)

	err = net.Solve(DefaultSolveOptions())
	assert.ErrorIs(t, err, ErrInfeasible)
}

func TestTaskWithZeroMinimumAndZeroMaximumNeverReceivesAWorker(t *testing.T) {
	net := New()
	_, err := net.AddTask("Idle Task", 0, 0)
	require.NoError(t, err)
	_, err = net.AddTask("Real Task", 0, 1)
	require.NoError(t, err)

	_, err = net.AddWorker("Worker 1", []Affinity{
		{Task: "Idle Task", Score: 0.1},
		{Task: "Real Task", Score: 1.0},
	})
	require.NoError(t, err)

	err = net.Solve(DefaultSolveOptions())
	require.NoError(t, err)

	assignments := net.WorkerAssignments()
	assert.Empty(t, assignments["Idle Task"])
	assert.ElementsMatch(t, []string{"Worker 1"}, assignments["Real Task"])
}

func TestAddTaskRejectsMinimumAboveMaximum(t *testing.T) {
	net := New()
	_, err := net.AddTask("Task 1", 3, 1)
	assert.ErrorIs(t, err, ErrInvalidBounds)
}

func TestAddWorkerRejectsUnknownTask(t *testing.T) {
	net := New()
	_, err := net.AddWorker("Worker 1", []Affinity{{Task: "Nonexistent", Score: 1.0}})
	assert.ErrorIs(t, err, ErrUnknownTask)
}

func TestAddTaskRejectsDuplicateName(t *testing.T) {
	net := New()
	_, err := net.AddTask("Task 1", 0, 1)
	require.NoError(t, err)
	_, err = net.AddTask("Task 1", 0, 1)
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestSolveIsANoOpOnASecondCall(t *testing.T) {
	net := basicTwoTaskNetwork(t)

	require.NoError(t, net.Solve(DefaultSolveOptions()))
	scoreAfterFirstSolve := net.TotalScore()

	require.NoError(t, net.Solve(DefaultSolveOptions()))
	assert.Equal(t, scoreAfterFirstSolve, net.TotalScore())
}

func TestSolveReportsProgressPerIteration(t *testing.T) {
	net := basicTwoTaskNetwork(t)

	var fractions []float64
	opts := DefaultSolveOptions().WithProgress(func(fraction float64) {
		fractions = append(fractions, fraction)
	})

	require.NoError(t, net.Solve(opts))

	require.Len(t, fractions, 2)
	assert.InDelta(t, 0.5, fractions[0], 1e-9)
	assert.InDelta(t, 1.0, fractions[1], 1e-9)
}
