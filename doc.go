// Package modneat compiles NEAT genomes into plastic neural-network phenotypes.
//
// A phenotype is built once from a genome snapshot and then stepped forward
// with Activate. Every step also applies a local Hebbian (ABCD) weight update,
// optionally gated by a neuromodulatory signal, so the network keeps learning
// during its lifetime. Reset restores the weights the phenotype was compiled with.
//
// Three topologies are supported:
//   - nn.FeedForwardNetwork: acyclic, layer ordered, same-step plasticity.
//   - nn.RecurrentNetwork: double-buffered one-step recurrence with plain Hebbian plasticity.
//   - nn.ModulatedNetwork: recurrent with a modulatory pathway gating plasticity.
//
// This implementation follows the neat-python genome layout and the modneat
// extensions for plastic and modulated networks.
//
// Basic usage:
//
//	config, err := neat.LoadConfig("path/to/config")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//
//	genome := neat.NewGenome(1, &config.Genome)
//	genome.ConfigureNew(rand.New(rand.NewSource(1)))
//
//	net, err := nn.CreateRecurrentNetwork(genome, config)
//	if err != nil {
//		log.Fatalf("Error compiling genome: %v", err)
//	}
//
//	for _, in := range inputs {
//		out, err := net.Activate(in)
//		if err != nil {
//			log.Fatalf("Error activating network: %v", err)
//		}
//		fmt.Println(out)
//	}
package modneat
