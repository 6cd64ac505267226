package detect

import (
	"math/rand"
	"sort"

	"github.com/ananya/fraudlens/backend/internal/domain"
)

// weightedGraph is the in-memory undirected view the community detector
// operates on: claimant nodes, relational edges, weight per edge label. It is
// also the shape of the aggregated super-node graphs produced between Louvain
// levels, which is why it carries self-loops.
type weightedGraph struct {
	ids       []string
	adj       []map[int]float64
	selfLoop  []float64
	degree    []float64
	totalWeight float64 // m: sum of edge weights plus self-loops
}

// buildWeightedGraph collapses relational edges into one undirected edge per
// unordered claimant pair. When a pair is connected by several labels the
// strongest one wins, so a family tie is never diluted by an address overlap.
func buildWeightedGraph(edges []domain.RelationalEdge) *weightedGraph {
	index := make(map[string]int)
	var ids []string
	nodeOf := func(id string) int {
		if i, ok := index[id]; ok {
			return i
		}
		i := len(ids)
		index[id] = i
		ids = append(ids, id)
		return i
	}

	type pair struct{ a, b int }
	weights := make(map[pair]float64)
	for _, e := range edges {
		w := e.Label.Weight()
		if w == 0 || e.SourceID == e.TargetID {
			continue
		}
		a, b := nodeOf(e.SourceID), nodeOf(e.TargetID)
		if a > b {
			a, b = b, a
		}
		p := pair{a, b}
		if w > weights[p] {
			weights[p] = w
		}
	}

	g := &weightedGraph{
		ids:      ids,
		adj:      make([]map[int]float64, len(ids)),
		selfLoop: make([]float64, len(ids)),
		degree:   make([]float64, len(ids)),
	}
	for i := range g.adj {
		g.adj[i] = make(map[int]float64)
	}
	for p, w := range weights {
		g.adj[p.a][p.b] += w
		g.adj[p.b][p.a] += w
	}
	g.recomputeDegrees()
	return g
}

func (g *weightedGraph) recomputeDegrees() {
	g.totalWeight = 0
	for i := range g.adj {
		d := 2 * g.selfLoop[i]
		for _, w := range g.adj[i] {
			d += w
		}
		g.degree[i] = d
		g.totalWeight += g.selfLoop[i]
	}
	for i := range g.adj {
		for j, w := range g.adj[i] {
			if i < j {
				g.totalWeight += w
			}
		}
	}
}

// localMove runs one Louvain level: repeated single-node moves to the
// neighbouring community with the greatest modularity gain, ties broken by
// the lowest community index, until a full sweep makes no move. The visit
// order is a seeded shuffle so results are reproducible for a fixed seed.
func localMove(g *weightedGraph, rng *rand.Rand) (community []int, moved bool) {
	n := len(g.ids)
	community = make([]int, n)
	sumTot := make([]float64, n)
	for i := 0; i < n; i++ {
		community[i] = i
		sumTot[i] = g.degree[i]
	}

	order := rng.Perm(n)
	m2 := 2 * g.totalWeight
	if m2 == 0 {
		return community, false
	}

	for {
		movedInSweep := false
		for _, i := range order {
			ci := community[i]
			ki := g.degree[i]

			// Weight from i to each neighbouring community.
			neigh := map[int]float64{ci: 0}
			for j, w := range g.adj[i] {
				neigh[community[j]] += w
			}

			sumTot[ci] -= ki

			best := ci
			bestGain := neigh[ci] - sumTot[ci]*ki/m2
			candidates := make([]int, 0, len(neigh))
			for c := range neigh {
				candidates = append(candidates, c)
			}
			sort.Ints(candidates)
			for _, c := range candidates {
				if c == ci {
					continue
				}
				gain := neigh[c] - sumTot[c]*ki/m2
				if gain > bestGain || (gain == bestGain && c < best) {
					best = c
					bestGain = gain
				}
			}

			sumTot[best] += ki
			if best != ci {
				community[i] = best
				movedInSweep = true
				moved = true
			}
		}
		if !movedInSweep {
			break
		}
	}
	return community, moved
}

// aggregate collapses each community into a super-node. Intra-community
// weight becomes a self-loop; inter-community weights are summed. The super
// node inherits the lexicographically smallest member id purely so the next
// level stays deterministic.
func aggregate(g *weightedGraph, community []int) (*weightedGraph, []int) {
	// Compact community labels in order of first appearance over node index.
	relabel := make(map[int]int)
	var count int
	mapped := make([]int, len(community))
	for i, c := range community {
		if _, ok := relabel[c]; !ok {
			relabel[c] = count
			count++
		}
		mapped[i] = relabel[c]
	}

	next := &weightedGraph{
		ids:      make([]string, count),
		adj:      make([]map[int]float64, count),
		selfLoop: make([]float64, count),
		degree:   make([]float64, count),
	}
	for i := range next.adj {
		next.adj[i] = make(map[int]float64)
	}
	for i, c := range mapped {
		if next.ids[c] == "" || g.ids[i] < next.ids[c] {
			next.ids[c] = g.ids[i]
		}
		next.selfLoop[c] += g.selfLoop[i]
	}
	for i := range g.adj {
		ci := mapped[i]
		for j, w := range g.adj[i] {
			if i >= j {
				continue
			}
			cj := mapped[j]
			if ci == cj {
				next.selfLoop[ci] += w
			} else {
				next.adj[ci][cj] += w
				next.adj[cj][ci] += w
			}
		}
	}
	next.recomputeDegrees()
	return next, mapped
}
