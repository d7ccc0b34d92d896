package nn

import (
	"math/rand"

	"github.com/baldhumanity/modneat-go/neat"
)

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func testConfig(numInputs, numOutputs int) *neat.Config {
	return neat.NewConfig(numInputs, numOutputs)
}

func testGenome(config *neat.Config) *neat.Genome {
	return neat.NewGenome(1, &config.Genome)
}

// addNode adds an identity/sum node with response 1.
func addNode(g *neat.Genome, key int, bias, modulatory float64) *neat.NodeGene {
	return g.AddNode(&neat.NodeGene{
		Key:         key,
		Bias:        bias,
		Response:    1.0,
		Activation:  "identity",
		Aggregation: "sum",
		Modulatory:  modulatory,
	})
}

// chainGenome builds -1 -> 1 -> 0 with unit weights.
func chainGenome(config *neat.Config) *neat.Genome {
	g := testGenome(config)
	addNode(g, 0, 0, 0)
	addNode(g, 1, 0, 0)
	g.AddConnection(-1, 1, 1.0)
	g.AddConnection(1, 0, 1.0)
	return g
}

// gatedGenome has hidden node 1 emitting only a modulatory signal onto
// output 0, which is also fed directly from the input.
func gatedGenome(config *neat.Config) *neat.Genome {
	g := testGenome(config)
	addNode(g, 0, 0, 0)
	addNode(g, 1, 0, 1)
	g.AddConnection(-1, 1, 1.0)
	g.AddConnection(-1, 0, 0.5)
	g.AddConnection(1, 0, 1.0)
	return g
}
