package neat

import (
	"fmt"
	"math/rand"
	"sort"
)

// Genome is the genotype a phenotype is compiled from. It consists of node
// genes, connection genes and a single global plasticity-parameter record.
type Genome struct {
	Key         int                               // Unique identifier for this genome.
	Nodes       map[int]*NodeGene                 // Map node ID -> NodeGene
	Connections map[ConnectionKey]*ConnectionGene // Map connection key -> ConnectionGene
	Fitness     float64                           // Fitness score of the genome.

	// Global holds the coefficients shared by all connections when the
	// plasticity-parameter scope is global.
	Global PlasticityParams

	Config *GenomeConfig
}

// NewGenome creates a new, empty Genome with the specified key and config reference.
func NewGenome(key int, config *GenomeConfig) *Genome {
	return &Genome{
		Key:         key,
		Nodes:       make(map[int]*NodeGene),
		Connections: make(map[ConnectionKey]*ConnectionGene),
		Config:      config,
	}
}

// AddNode stores a node gene, replacing any gene with the same key.
func (g *Genome) AddNode(ng *NodeGene) *NodeGene {
	g.Nodes[ng.Key] = ng
	return ng
}

// AddConnection stores an enabled connection gene from in to out with the given weight.
func (g *Genome) AddConnection(in, out int, weight float64) *ConnectionGene {
	key := ConnectionKey{InNodeID: in, OutNodeID: out}
	cg := &ConnectionGene{Key: key, Weight: weight, Enabled: true}
	g.Connections[key] = cg
	return cg
}

// Copy creates a deep copy of the genome. The config reference is shared.
func (g *Genome) Copy() *Genome {
	c := NewGenome(g.Key, g.Config)
	c.Fitness = g.Fitness
	c.Global = g.Global
	for k, ng := range g.Nodes {
		c.Nodes[k] = ng.Copy()
	}
	for k, cg := range g.Connections {
		c.Connections[k] = cg.Copy()
	}
	return c
}

// ConnectionKeys returns all connection keys ordered by target, then source.
func (g *Genome) ConnectionKeys() []ConnectionKey {
	keys := make([]ConnectionKey, 0, len(g.Connections))
	for k := range g.Connections {
		keys = append(keys, k)
	}
	sortConnectionKeys(keys)
	return keys
}

// EnabledConnectionKeys returns the keys of enabled connections ordered by target, then source.
func (g *Genome) EnabledConnectionKeys() []ConnectionKey {
	keys := make([]ConnectionKey, 0, len(g.Connections))
	for k, cg := range g.Connections {
		if cg.Enabled {
			keys = append(keys, k)
		}
	}
	sortConnectionKeys(keys)
	return keys
}

func sortConnectionKeys(keys []ConnectionKey) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].OutNodeID != keys[j].OutNodeID {
			return keys[i].OutNodeID < keys[j].OutNodeID
		}
		return keys[i].InNodeID < keys[j].InNodeID
	})
}

// String summarizes the genome for logs.
func (g *Genome) String() string {
	return fmt.Sprintf("Genome(Key: %d, Nodes: %d, Connections: %d, Fitness: %.4f)",
		g.Key, len(g.Nodes), len(g.Connections), g.Fitness)
}

// ConfigureNew initializes a new genome based on the configuration: output
// and hidden nodes, the global plasticity record, and the initial
// connections. Call SeedLocalParams afterwards for local-scope runs.
func (g *Genome) ConfigureNew(rng *rand.Rand) error {
	for _, nodeKey := range g.Config.OutputKeys {
		g.Nodes[nodeKey] = NewNodeGene(nodeKey, g.Config, rng)
	}
	for i := 0; i < g.Config.NumHidden; i++ {
		nodeKey := g.Config.GetNewNodeKey()
		if _, exists := g.Nodes[nodeKey]; exists {
			return fmt.Errorf("attempted to create duplicate node key: %d", nodeKey)
		}
		g.Nodes[nodeKey] = NewNodeGene(nodeKey, g.Config, rng)
	}

	g.Global = NewPlasticityParams(g.Config, rng)

	connType, fraction, err := parseInitialConnection(g.Config.InitialConnection)
	if err != nil {
		return err
	}
	for _, key := range g.initialConnections(connType, fraction, rng) {
		g.Connections[key] = NewConnectionGene(key, g.Config, rng)
	}
	return nil
}

// SeedLocalParams gives every connection without local coefficients a fresh
// record drawn from the plasticity init settings.
func (g *Genome) SeedLocalParams(rng *rand.Rand) {
	for _, key := range g.ConnectionKeys() {
		cg := g.Connections[key]
		if cg.Plasticity == nil {
			p := NewPlasticityParams(g.Config, rng)
			cg.Plasticity = &p
		}
	}
}

// initialConnections lists the connections of the initial_connection scheme.
// Self-connections on hidden/output nodes are only added for recurrent genomes.
func (g *Genome) initialConnections(connType string, fraction float64, rng *rand.Rand) []ConnectionKey {
	inputKeys := g.Config.InputKeys
	outputKeys := g.Config.OutputKeys
	outputSet := make(map[int]bool, len(outputKeys))
	for _, ok := range outputKeys {
		outputSet[ok] = true
	}
	hiddenKeys := []int{}
	for nk := range g.Nodes {
		if !outputSet[nk] {
			hiddenKeys = append(hiddenKeys, nk)
		}
	}
	sort.Ints(hiddenKeys)

	var keys []ConnectionKey
	connect := func(in, out int) {
		keys = append(keys, ConnectionKey{InNodeID: in, OutNodeID: out})
	}

	switch connType {
	case "unconnected":
	case "fs_neat", "fs_neat_nohidden":
		// Each output is connected to one randomly chosen input.
		ik := inputKeys[rng.Intn(len(inputKeys))]
		for _, ok := range outputKeys {
			connect(ik, ok)
		}
	case "fs_neat_hidden":
		ik := inputKeys[rng.Intn(len(inputKeys))]
		for _, hk := range hiddenKeys {
			connect(ik, hk)
		}
		for _, ok := range outputKeys {
			connect(ik, ok)
		}
	case "full", "full_nodirect", "full_direct", "partial", "partial_nodirect", "partial_direct":
		direct := connType == "full_direct" || connType == "partial_direct" || len(hiddenKeys) == 0
		for _, ik := range inputKeys {
			for _, hk := range hiddenKeys {
				connect(ik, hk)
			}
		}
		for _, hk := range hiddenKeys {
			for _, ok := range outputKeys {
				connect(hk, ok)
			}
		}
		if direct {
			for _, ik := range inputKeys {
				for _, ok := range outputKeys {
					connect(ik, ok)
				}
			}
		}
		if !g.Config.FeedForward {
			for _, hk := range hiddenKeys {
				connect(hk, hk)
			}
			for _, ok := range outputKeys {
				connect(ok, ok)
			}
		}
		if fraction < 1.0 {
			rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
			keys = keys[:int(fraction*float64(len(keys))+0.5)]
		}
	}
	sortConnectionKeys(keys)
	return keys
}
