package pathfind

import (
	"container/heap"

	"github.com/Cavendish02/AI-Factory-Robots/core/model"
)

// searchNode is a frontier entry. seq is the tie-break counter: equal
// priorities pop in insertion order, which keeps the search deterministic.
type searchNode struct {
	cell     model.Cell
	priority int
	seq      int
	index    int
}

type nodeHeap []*searchNode

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].seq < h[j].seq
}
func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *nodeHeap) Push(x any) {
	n := x.(*searchNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

// frontier is a priority queue ordered by (priority, insertion sequence).
type frontier struct {
	heap nodeHeap
	seq  int
}

func newFrontier() *frontier {
	f := &frontier{}
	heap.Init(&f.heap)
	return f
}

func (f *frontier) Len() int { return f.heap.Len() }

func (f *frontier) push(c model.Cell, priority int) {
	f.seq++
	heap.Push(&f.heap, &searchNode{cell: c, priority: priority, seq: f.seq})
}

func (f *frontier) pop() model.Cell {
	return heap.Pop(&f.heap).(*searchNode).cell
}
