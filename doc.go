// Package flappy trains a flock of birds to fly through scrolling pipes by
// neuroevolution.
//
// Every bird carries a small fixed-topology feed-forward network (5-5-5-1,
// sigmoid activations) that reads five normalised sensors each tick and
// decides whether to flap. A generation ends when every bird has crashed;
// the population is then ranked by ticks survived, the elite and a few lucky
// weaker birds become parents, and the rest of the flock is rebuilt by
// uniform crossover of parent weights followed by point mutation.
//
// The engine is headless. A renderer drives it one tick at a time and reads
// back AgentView projections.
//
// Basic usage:
//
//	config, err := flappy.LoadConfig("path/to/flappy.ini")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//
//	sim, err := flappy.NewSimulation(config, rand.New(rand.NewSource(1)))
//	if err != nil {
//		log.Fatalf("Error creating simulation: %v", err)
//	}
//
//	for sim.Population.Generation <= 100 {
//		winner, err := sim.RunGeneration(config.Simulation.FitnessThreshold)
//		if err != nil {
//			log.Fatalf("Error running generation: %v", err)
//		}
//		if winner != nil {
//			fmt.Println("Threshold reached!")
//			break
//		}
//	}
package flappy
