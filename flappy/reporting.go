package flappy

import (
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/stat"
)

// GenerationStats summarises the scores of one finished generation.
type GenerationStats struct {
	Generation int
	Best       int
	Mean       float64
	Stdev      float64
	Parents    int // Agents carried into the next generation
	Children   int // Agents bred for the next generation
}

// Reporter receives progress notifications from a Population.
type Reporter interface {
	StartGeneration(p *Population)
	EndGeneration(p *Population, stats GenerationStats)
	Extinction(p *Population)
}

// StdOutReporter prints progress lines to Out (os.Stdout when nil).
type StdOutReporter struct {
	Out io.Writer
}

func (r *StdOutReporter) writer() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

// StartGeneration prints the generation banner.
func (r *StdOutReporter) StartGeneration(p *Population) {
	fmt.Fprintf(r.writer(), "****** Run %s generation %d ******\n", p.RunID, p.Generation)
}

// EndGeneration prints the score summary of the generation that just ended.
func (r *StdOutReporter) EndGeneration(p *Population, s GenerationStats) {
	w := r.writer()
	fmt.Fprintf(w, " Best score: %d (overall %d)\n", s.Best, p.BestScore)
	fmt.Fprintf(w, " Mean score: %.2f, stdev: %.2f\n", s.Mean, s.Stdev)
	fmt.Fprintf(w, " Parents: %d, children: %d\n", s.Parents, s.Children)
}

// Extinction prints a warning when selection kept nobody.
func (r *StdOutReporter) Extinction(p *Population) {
	fmt.Fprintf(r.writer(), "Warning: no parents selected in generation %d, keeping current agents.\n", p.Generation)
}

// scoreStats computes best, mean and sample standard deviation of agent scores.
func scoreStats(agents []*Agent) (best int, mean, stdev float64) {
	if len(agents) == 0 {
		return 0, 0, 0
	}
	scores := make([]float64, len(agents))
	best = agents[0].Body.Score
	for i, a := range agents {
		scores[i] = float64(a.Body.Score)
		if a.Body.Score > best {
			best = a.Body.Score
		}
	}
	mean, stdev = stat.MeanStdDev(scores, nil)
	if len(scores) < 2 {
		stdev = 0
	}
	return best, mean, stdev
}
