package huffman

import "container/heap"

// node is one entry of the tree arena. Leaves own a symbol; internal nodes
// reference their children by arena index.
type node struct {
	freq        uint64
	left, right int
	symbol      byte
	leaf        bool
}

// nodeHeap is a min-heap of arena indices ordered by (freq, index). Leaves
// are appended in ascending symbol order and internal nodes in merge order,
// so the arena index is the tie-break.
type nodeHeap struct {
	arena []node
	items []int
}

func (h *nodeHeap) Len() int { return len(h.items) }

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if h.arena[a].freq != h.arena[b].freq {
		return h.arena[a].freq < h.arena[b].freq
	}
	return a < b
}

func (h *nodeHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *nodeHeap) Push(x any) { h.items = append(h.items, x.(int)) }

func (h *nodeHeap) Pop() any {
	n := len(h.items)
	x := h.items[n-1]
	h.items = h.items[:n-1]
	return x
}

// buildTree runs the greedy min-merge over freqs and returns the arena and
// the root index. The root is -1 when freqs is empty. The first popped node
// of every merge becomes the left child.
func buildTree(freqs *Frequencies) ([]node, int) {
	symbols := freqs.Symbols()
	if len(symbols) == 0 {
		return nil, -1
	}

	h := &nodeHeap{
		arena: make([]node, 0, 2*len(symbols)-1),
		items: make([]int, 0, len(symbols)),
	}
	for _, s := range symbols {
		h.arena = append(h.arena, node{freq: freqs[s], left: -1, right: -1, symbol: s, leaf: true})
		h.items = append(h.items, len(h.arena)-1)
	}
	heap.Init(h)

	for i := 1; i < len(symbols); i++ {
		left := heap.Pop(h).(int)
		right := heap.Pop(h).(int)
		h.arena = append(h.arena, node{
			freq:  h.arena[left].freq + h.arena[right].freq,
			left:  left,
			right: right,
		})
		heap.Push(h, len(h.arena)-1)
	}

	return h.arena, heap.Pop(h).(int)
}

// Lengths maps every byte value to its code length in bits. Zero marks a
// byte value that does not occur.
type Lengths [256]uint8

// CodeLengths builds the Huffman tree for freqs and returns the depth of each
// leaf. A single-symbol alphabet gets length 1.
func CodeLengths(freqs *Frequencies) Lengths {
	var lengths Lengths

	arena, root := buildTree(freqs)
	if root < 0 {
		return lengths
	}
	if arena[root].leaf {
		lengths[arena[root].symbol] = 1
		return lengths
	}

	type entry struct {
		index int
		depth uint8
	}
	stack := make([]entry, 0, 64)
	stack = append(stack, entry{root, 0})
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &arena[e.index]
		if n.leaf {
			lengths[n.symbol] = e.depth
			continue
		}
		stack = append(stack, entry{n.right, e.depth + 1}, entry{n.left, e.depth + 1})
	}

	return lengths
}
