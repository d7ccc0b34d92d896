package neat

import (
	"fmt"
	"sort"
)

// RequiredForOutput returns the nodes needed to compute the outputs: every
// output, every node reachable backward from an output through the given
// connections (traversal stops at inputs), and the inputs consumed by any of
// them. Cycles are allowed.
func RequiredForOutput(inputs, outputs []int, connections []ConnectionKey) map[int]bool {
	inputSet := make(map[int]bool, len(inputs))
	for _, k := range inputs {
		inputSet[k] = true
	}
	incoming := make(map[int][]int)
	for _, c := range connections {
		incoming[c.OutNodeID] = append(incoming[c.OutNodeID], c.InNodeID)
	}

	required := make(map[int]bool, len(outputs))
	stack := make([]int, 0, len(outputs))
	for _, k := range outputs {
		if !required[k] {
			required[k] = true
			stack = append(stack, k)
		}
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if inputSet[n] {
			continue
		}
		for _, src := range incoming[n] {
			if required[src] {
				continue
			}
			required[src] = true
			stack = append(stack, src)
		}
	}
	return required
}

// FeedForwardLayers groups the nodes that can be evaluated in parallel. A
// node lands in the first layer where every source of its incoming
// connections is an input or belongs to an earlier layer. Nodes not required
// by an output, or not reachable from the inputs, are left out. Each layer is
// sorted by node key.
//
// A genome whose required nodes form a dependency cycle cannot be layered;
// ErrCycle is returned for it.
func FeedForwardLayers(inputs, outputs []int, connections []ConnectionKey) ([][]int, error) {
	required := RequiredForOutput(inputs, outputs, connections)
	sources := make(map[int][]int)
	for _, c := range connections {
		sources[c.OutNodeID] = append(sources[c.OutNodeID], c.InNodeID)
	}

	placed := make(map[int]bool, len(inputs))
	for _, k := range inputs {
		placed[k] = true
	}

	var layers [][]int
	for {
		// Candidates: required nodes fed by at least one placed node.
		candidates := make(map[int]bool)
		for _, c := range connections {
			if placed[c.InNodeID] && !placed[c.OutNodeID] && required[c.OutNodeID] {
				candidates[c.OutNodeID] = true
			}
		}

		var layer []int
		for n := range candidates {
			ready := true
			for _, src := range sources[n] {
				if !placed[src] {
					ready = false
					break
				}
			}
			if ready {
				layer = append(layer, n)
			}
		}
		if len(layer) == 0 {
			break
		}
		sort.Ints(layer)
		for _, n := range layer {
			placed[n] = true
		}
		layers = append(layers, layer)
	}

	if cycle := findCycle(required, placed, sources); cycle != nil {
		return nil, fmt.Errorf("%w: nodes %v cannot be layered", ErrCycle, cycle)
	}
	return layers, nil
}

// findCycle looks for a cycle among the required nodes that were not placed
// and returns its members in visiting order, or nil.
func findCycle(required, placed map[int]bool, sources map[int][]int) []int {
	var pending []int
	for n := range required {
		if !placed[n] {
			pending = append(pending, n)
		}
	}
	sort.Ints(pending)

	const (
		unvisited = iota
		onStack
		done
	)
	state := make(map[int]int, len(pending))
	var path []int
	var visit func(n int) []int
	visit = func(n int) []int {
		state[n] = onStack
		path = append(path, n)
		for _, src := range sources[n] {
			if placed[src] || !required[src] {
				continue
			}
			switch state[src] {
			case onStack:
				for i, p := range path {
					if p == src {
						return append([]int(nil), path[i:]...)
					}
				}
			case unvisited:
				if c := visit(src); c != nil {
					return c
				}
			}
		}
		path = path[:len(path)-1]
		state[n] = done
		return nil
	}
	for _, n := range pending {
		if state[n] == unvisited {
			if c := visit(n); c != nil {
				return c
			}
		}
	}
	return nil
}
