package engine

import (
	"math/rand"
	"sort"

	"github.com/piwi3910/BeamDetail/internal/model"
)

// GeneticConfig holds parameters for the genetic cutting optimizer.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	EliteCount     int
	Seed           int64
}

// DefaultGeneticConfig returns sensible default parameters. The fixed seed
// makes repeated runs produce the same plan.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 50,
		Generations:    100,
		MutationRate:   0.15,
		TournamentSize: 3,
		EliteCount:     2,
		Seed:           42,
	}
}

// scaled grows the search for larger piece counts.
func (c GeneticConfig) scaled(pieces int) GeneticConfig {
	if pieces > 20 && c.Generations < 150 {
		c.Generations = 150
	}
	if pieces > 50 {
		if c.Generations < 200 {
			c.Generations = 200
		}
		if c.PopulationSize < 80 {
			c.PopulationSize = 80
		}
	}
	return c
}

// chromosome is a candidate cutting order: a permutation of piece indices.
type chromosome struct {
	order   []int
	fitness float64
}

// geneticCutter searches for the cutting order that needs the fewest stock
// bars of one (grade, diameter) group.
type geneticCutter struct {
	planner  *CutPlanner
	config   GeneticConfig
	grade    string
	diameter float64
	pieces   []Piece
	rng      *rand.Rand
}

func newGeneticCutter(planner *CutPlanner, config GeneticConfig, grade string, diameter float64, pieces []Piece) *geneticCutter {
	return &geneticCutter{
		planner:  planner,
		config:   config,
		grade:    grade,
		diameter: diameter,
		pieces:   pieces,
		rng:      rand.New(rand.NewSource(config.Seed)),
	}
}

// optimize runs the genetic algorithm and returns the best group found. The
// population is seeded with the first-fit-decreasing order and the best
// individuals always survive, so the result is never worse than it.
func (g *geneticCutter) optimize() CutGroup {
	if len(g.pieces) < 2 || g.config.PopulationSize < 1 {
		return g.planner.cutGroup(g.grade, g.diameter, g.pieces)
	}

	population := g.initPopulation()
	for i := range population {
		population[i].fitness = g.evaluate(population[i])
	}

	for gen := 0; gen < g.config.Generations; gen++ {
		sortByFitness(population)

		newPop := make([]chromosome, 0, g.config.PopulationSize)

		eliteCount := g.config.EliteCount
		if eliteCount < 1 {
			eliteCount = 1
		}
		if eliteCount > len(population) {
			eliteCount = len(population)
		}
		for i := 0; i < eliteCount; i++ {
			newPop = append(newPop, copyChromosome(population[i]))
		}

		for len(newPop) < g.config.PopulationSize {
			parent1 := g.tournamentSelect(population)
			parent2 := g.tournamentSelect(population)

			child := g.orderCrossover(parent1, parent2)
			g.mutate(&child)

			child.fitness = g.evaluate(child)
			newPop = append(newPop, child)
		}

		population = newPop
	}

	sortByFitness(population)
	return g.decode(population[0])
}

func sortByFitness(population []chromosome) {
	sort.SliceStable(population, func(i, j int) bool {
		return population[i].fitness > population[j].fitness
	})
}

// initPopulation creates random orders plus the longest-first order.
func (g *geneticCutter) initPopulation() []chromosome {
	n := len(g.pieces)
	population := make([]chromosome, g.config.PopulationSize)
	for i := range population {
		population[i] = chromosome{order: g.rng.Perm(n)}
	}
	population[0] = g.decreasingChromosome()
	return population
}

func (g *geneticCutter) decreasingChromosome() chromosome {
	order := make([]int, len(g.pieces))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return g.pieces[order[i]].Length > g.pieces[order[j]].Length
	})
	return chromosome{order: order}
}

// evaluate scores a cutting order. Every stock bar saved outweighs any
// difference in how the offcuts are spread; among equal bar counts, plans
// that leave fuller bars and one longer remnant score higher.
func (g *geneticCutter) evaluate(c chromosome) float64 {
	group := g.decode(c)
	if len(group.Bars) == 0 {
		return 0
	}
	fill := 0.0
	for _, b := range group.Bars {
		r := b.Used / group.StockLength
		fill += r * r
	}
	fill /= float64(len(group.Bars))
	return -float64(len(group.Bars)+len(group.Unplaced)) + fill
}

// decode cuts the pieces in chromosome order.
func (g *geneticCutter) decode(c chromosome) CutGroup {
	ordered := make([]Piece, len(c.order))
	for i, idx := range c.order {
		ordered[i] = g.pieces[idx]
	}
	return g.planner.place(g.grade, g.diameter, ordered)
}

// tournamentSelect picks the best individual from a random tournament.
func (g *geneticCutter) tournamentSelect(population []chromosome) chromosome {
	best := population[g.rng.Intn(len(population))]
	for i := 1; i < g.config.TournamentSize; i++ {
		candidate := population[g.rng.Intn(len(population))]
		if candidate.fitness > best.fitness {
			best = candidate
		}
	}
	return copyChromosome(best)
}

// orderCrossover implements Order Crossover (OX1) for permutation chromosomes.
// It preserves the relative order of genes from both parents.
func (g *geneticCutter) orderCrossover(parent1, parent2 chromosome) chromosome {
	n := len(parent1.order)
	if n <= 2 {
		return copyChromosome(parent1)
	}

	point1 := g.rng.Intn(n)
	point2 := g.rng.Intn(n)
	if point1 > point2 {
		point1, point2 = point2, point1
	}

	child := chromosome{order: make([]int, n)}

	inSegment := make(map[int]bool)
	for i := point1; i <= point2; i++ {
		child.order[i] = parent1.order[i]
		inSegment[parent1.order[i]] = true
	}

	childIdx := (point2 + 1) % n
	for _, idx := range parent2.order {
		if !inSegment[idx] {
			child.order[childIdx] = idx
			childIdx = (childIdx + 1) % n
		}
	}

	return child
}

// mutate applies swap and inversion mutations.
func (g *geneticCutter) mutate(c *chromosome) {
	n := len(c.order)
	if n < 2 {
		return
	}

	if g.rng.Float64() < g.config.MutationRate {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		c.order[i], c.order[j] = c.order[j], c.order[i]
	}

	// Inversion is less frequent
	if g.rng.Float64() < g.config.MutationRate*0.5 {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		if i > j {
			i, j = j, i
		}
		for i < j {
			c.order[i], c.order[j] = c.order[j], c.order[i]
			i++
			j--
		}
	}
}

func copyChromosome(c chromosome) chromosome {
	order := make([]int, len(c.order))
	copy(order, c.order)
	return chromosome{order: order, fitness: c.fitness}
}

// PlanGenetic cuts every piece like Plan, but searches the cutting order of
// each group with a genetic algorithm.
func (c *CutPlanner) PlanGenetic(records []model.BarRecord, elements int, config GeneticConfig) CutPlan {
	if elements < 1 {
		elements = 1
	}
	plan := CutPlan{Kerf: c.Kerf}
	for _, g := range groupByGrade(records) {
		pieces := expand(g.records, elements)
		ga := newGeneticCutter(c, config.scaled(len(pieces)), g.grade, g.diameter, pieces)
		plan.Groups = append(plan.Groups, ga.optimize())
	}
	return plan
}
