package nn

import (
	"fmt"

	"github.com/baldhumanity/modneat-go/neat"
)

// FeedForwardNetwork is an acyclic phenotype evaluated layer by layer. After
// every forward sweep each incoming weight is updated with the ABCD rule,
// using the pre- and post-synaptic values of that same sweep.
type FeedForwardNetwork struct {
	InputKeys  []int
	OutputKeys []int

	topo    *topology
	layers  [][]int
	weights *weightState
	values  []float64
	scratch []float64
}

// CreateFeedForwardNetwork builds a plastic feed-forward network from a genome.
// The genome's enabled connections must be acyclic among the nodes required
// for the outputs.
func CreateFeedForwardNetwork(g *neat.Genome, config *neat.Config) (*FeedForwardNetwork, error) {
	if g == nil || config == nil {
		return nil, fmt.Errorf("genome and config are required")
	}
	gc := &config.Genome
	layers, err := neat.FeedForwardLayers(gc.InputKeys, gc.OutputKeys, g.EnabledConnectionKeys())
	if err != nil {
		return nil, fmt.Errorf("failed to layer genome %d: %w", g.Key, err)
	}

	scheduled := make(map[int]bool, len(gc.InputKeys))
	for _, k := range gc.InputKeys {
		scheduled[k] = true
	}
	var order []int
	for _, layer := range layers {
		for _, k := range layer {
			scheduled[k] = true
			order = append(order, k)
		}
	}

	topo, err := compile(g, config, order, func(src int) bool { return scheduled[src] })
	if err != nil {
		return nil, fmt.Errorf("failed to compile genome %d: %w", g.Key, err)
	}

	net := &FeedForwardNetwork{
		InputKeys:  topo.inputKeys,
		OutputKeys: topo.outputKeys,
		topo:       topo,
		layers:     layers,
		weights:    newWeightState(topo),
		values:     make([]float64, topo.numSlots()),
		scratch:    make([]float64, 0, topo.maxFan),
	}
	config.Log().Debug("compiled phenotype",
		"kind", KindFeedForward.String(), "genome", g.Key,
		"nodes", len(topo.nodes), "links", len(topo.initial), "layers", len(layers))
	return net, nil
}

// Activate computes the network's output for a given slice of input values
// and then applies the plasticity update to every compiled connection.
func (net *FeedForwardNetwork) Activate(inputs []float64) ([]float64, error) {
	if err := net.topo.checkArity(inputs); err != nil {
		return nil, err
	}
	for i, s := range net.topo.inputSlots {
		net.values[s] = inputs[i]
	}

	nodes := net.topo.nodes
	for i := range nodes {
		n := &nodes[i]
		var v float64
		v, net.scratch = n.activate(net.values, net.weights, net.scratch)
		net.values[n.slot] = v
	}

	// Plasticity runs only once every node of this sweep has its value.
	for i := range nodes {
		n := &nodes[i]
		post := net.values[n.slot]
		for j := range n.Links {
			l := &n.Links[j]
			net.weights.add(l, net.topo.params(l).Delta(net.values[l.sourceSlot], post))
		}
	}

	out := net.topo.outputs(net.values)
	net.topo.trace(KindFeedForward, out)
	return out, nil
}

// Reset restores the compiled weights and zeroes all node values.
func (net *FeedForwardNetwork) Reset() {
	net.weights.reset()
	zero(net.values)
}

// Layers returns the evaluation layers the network was compiled with.
func (net *FeedForwardNetwork) Layers() [][]int {
	out := make([][]int, len(net.layers))
	for i, l := range net.layers {
		out[i] = append([]int(nil), l...)
	}
	return out
}

// Weight returns the current weight of the compiled connection source -> target.
func (net *FeedForwardNetwork) Weight(source, target int) (float64, bool) {
	return net.weights.lookup(source, target)
}

// Weights returns a snapshot of all compiled weights.
func (net *FeedForwardNetwork) Weights() map[neat.ConnectionKey]float64 {
	return net.weights.snapshot()
}

// ApplyWeightDelta adds delta to the weight of the compiled connection source -> target.
func (net *FeedForwardNetwork) ApplyWeightDelta(source, target int, delta float64) error {
	return net.weights.apply(source, target, delta)
}
