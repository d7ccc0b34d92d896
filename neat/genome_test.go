package neat

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureNewFullDirect(t *testing.T) {
	config := NewConfig(2, 1)
	config.Genome.NumHidden = 1
	config.Genome.FeedForward = true
	config.Genome.InitialConnection = "full_direct"

	g := NewGenome(1, &config.Genome)
	require.NoError(t, g.ConfigureNew(rand.New(rand.NewSource(1))))

	assert.Len(t, g.Nodes, 2)
	assert.Contains(t, g.Nodes, 0)
	assert.Contains(t, g.Nodes, 1)
	assert.Equal(t, connKeys(
		[2]int{-2, 0}, [2]int{-1, 0}, [2]int{1, 0},
		[2]int{-2, 1}, [2]int{-1, 1},
	), g.ConnectionKeys())

	for _, cg := range g.Connections {
		assert.True(t, cg.Enabled)
		assert.Nil(t, cg.Plasticity)
	}
	for _, ng := range g.Nodes {
		assert.Equal(t, "sigmoid", ng.Activation)
		assert.Equal(t, "sum", ng.Aggregation)
		assert.GreaterOrEqual(t, ng.Modulatory, 0.0)
		assert.LessOrEqual(t, ng.Modulatory, 1.0)
	}
}

func TestConfigureNewRecurrentSelfLoops(t *testing.T) {
	config := NewConfig(1, 1)
	config.Genome.InitialConnection = "full"

	g := NewGenome(1, &config.Genome)
	require.NoError(t, g.ConfigureNew(rand.New(rand.NewSource(1))))

	// No hidden nodes, so "full" connects directly; recurrent genomes get self-loops.
	assert.Equal(t, connKeys([2]int{-1, 0}, [2]int{0, 0}), g.ConnectionKeys())
}

func TestConfigureNewPartial(t *testing.T) {
	config := NewConfig(4, 2)
	config.Genome.FeedForward = true
	config.Genome.InitialConnection = "partial_direct 0.5"

	g := NewGenome(1, &config.Genome)
	require.NoError(t, g.ConfigureNew(rand.New(rand.NewSource(5))))
	assert.Len(t, g.Connections, 4)
}

func TestConfigureNewDeterministic(t *testing.T) {
	config := NewConfig(3, 2)
	config.Genome.InitialConnection = "full_direct"
	config.Genome.EtaInitStdev = 0.5

	a := NewGenome(1, &config.Genome)
	require.NoError(t, a.ConfigureNew(rand.New(rand.NewSource(42))))
	b := NewGenome(1, &config.Genome)
	require.NoError(t, b.ConfigureNew(rand.New(rand.NewSource(42))))

	assert.Equal(t, a.Global, b.Global)
	for k, cg := range a.Connections {
		assert.Equal(t, cg.Weight, b.Connections[k].Weight)
	}
}

func TestSeedLocalParams(t *testing.T) {
	config := NewConfig(1, 1)
	config.Genome.InitialConnection = "full"
	config.Genome.EtaInitMean = 0.3

	g := NewGenome(1, &config.Genome)
	require.NoError(t, g.ConfigureNew(rand.New(rand.NewSource(1))))
	kept := &PlasticityParams{Eta: 0.9}
	g.Connections[ConnectionKey{InNodeID: 0, OutNodeID: 0}].Plasticity = kept

	g.SeedLocalParams(rand.New(rand.NewSource(2)))
	for k, cg := range g.Connections {
		require.NotNil(t, cg.Plasticity, k.String())
		assert.GreaterOrEqual(t, cg.Plasticity.Eta, config.Genome.PlasticityMinValue)
		assert.LessOrEqual(t, cg.Plasticity.Eta, config.Genome.PlasticityMaxValue)
	}
	assert.Same(t, kept, g.Connections[ConnectionKey{InNodeID: 0, OutNodeID: 0}].Plasticity)
}

func TestGenomeCopyIsDeep(t *testing.T) {
	config := NewConfig(1, 1)
	g := NewGenome(1, &config.Genome)
	g.AddNode(&NodeGene{Key: 0, Activation: "identity", Aggregation: "sum"})
	g.AddConnection(-1, 0, 1.0).Plasticity = &PlasticityParams{Eta: 1}

	c := g.Copy()
	c.Connections[ConnectionKey{InNodeID: -1, OutNodeID: 0}].Weight = 5
	c.Connections[ConnectionKey{InNodeID: -1, OutNodeID: 0}].Plasticity.Eta = 7
	c.Nodes[0].Bias = 3

	orig := g.Connections[ConnectionKey{InNodeID: -1, OutNodeID: 0}]
	assert.Equal(t, 1.0, orig.Weight)
	assert.Equal(t, 1.0, orig.Plasticity.Eta)
	assert.Equal(t, 0.0, g.Nodes[0].Bias)
}

func TestEnabledConnectionKeys(t *testing.T) {
	config := NewConfig(2, 1)
	g := NewGenome(1, &config.Genome)
	g.AddConnection(-2, 0, 1.0)
	g.AddConnection(-1, 0, 1.0).Enabled = false
	g.AddConnection(0, 0, 1.0)

	assert.Equal(t, connKeys([2]int{-2, 0}, [2]int{0, 0}), g.EnabledConnectionKeys())
	assert.Len(t, g.ConnectionKeys(), 3)
}
