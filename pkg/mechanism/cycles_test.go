package mechanism

import (
	"sort"
	"testing"

	"github.com/clearmatch/clearmatch/pkg/market"
)

// buildGraph constructs a pointer graph from edge maps, 0 meaning no edge.
func buildGraph(agents, objects int, agentNext, objectNext map[int]int) *pointerGraph {
	g := newPointerGraph(agents, objects)
	g.reset()
	for a, o := range agentNext {
		g.agentNext[a] = market.Some(market.ID(o))
	}
	for o, a := range objectNext {
		g.objectNext[o] = market.Some(market.ID(a))
	}
	return g
}

// pairSet flattens cycles into sorted "agent->object" pairings for easy
// comparison.
func pairSet(cycles []cycle) []market.Pair {
	var out []market.Pair
	for _, c := range cycles {
		for i, a := range c.agents {
			out = append(out, market.Pair{Agent: a, Object: c.objects[i]})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Agent != out[j].Agent {
			return out[i].Agent < out[j].Agent
		}
		return out[i].Object < out[j].Object
	})
	return out
}

func TestCyclesSelfPair(t *testing.T) {
	// a1 -> o1 -> a1 is the smallest possible cycle.
	g := buildGraph(1, 1, map[int]int{1: 1}, map[int]int{1: 1})
	cycles := g.cycles()
	if len(cycles) != 1 {
		t.Fatalf("got %d cycles, want 1", len(cycles))
	}
	got := pairSet(cycles)
	if len(got) != 1 || got[0] != (market.Pair{Agent: 1, Object: 1}) {
		t.Errorf("pairs = %v", got)
	}
}

func TestCyclesSwap(t *testing.T) {
	// a1 -> o2 -> a2 -> o1 -> a1: the two agents trade.
	g := buildGraph(2, 2, map[int]int{1: 2, 2: 1}, map[int]int{1: 1, 2: 2})
	cycles := g.cycles()
	if len(cycles) != 1 {
		t.Fatalf("got %d cycles, want 1", len(cycles))
	}
	want := []market.Pair{{Agent: 1, Object: 2}, {Agent: 2, Object: 1}}
	got := pairSet(cycles)
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("pairs = %v, want %v", got, want)
	}
}

func TestCyclesAlternation(t *testing.T) {
	// Every returned cycle must start at an agent and alternate strictly:
	// agents[i] points at objects[i], objects[i] at agents[i+1 mod n].
	g := buildGraph(3, 3,
		map[int]int{1: 2, 2: 3, 3: 1},
		map[int]int{1: 1, 2: 2, 3: 3},
	)
	cycles := g.cycles()
	if len(cycles) != 1 {
		t.Fatalf("got %d cycles, want 1", len(cycles))
	}
	c := cycles[0]
	if len(c.agents) != 3 || len(c.objects) != len(c.agents) {
		t.Fatalf("cycle shape %d/%d", len(c.agents), len(c.objects))
	}
	for i, a := range c.agents {
		if o, _ := g.agentNext[a].Get(); o != c.objects[i] {
			t.Errorf("agents[%d]=%d does not point at objects[%d]=%d", i, a, i, c.objects[i])
		}
		next, _ := g.objectNext[c.objects[i]].Get()
		if next != c.agents[(i+1)%len(c.agents)] {
			t.Errorf("objects[%d]=%d points at %d, want %d", i, c.objects[i], next, c.agents[(i+1)%len(c.agents)])
		}
	}
}

func TestCyclesChainFeedingIn(t *testing.T) {
	// a1 points at o1 but o1 points at a2, which forms a self pair with
	// o2. a1 is on a chain into the cycle, not on the cycle.
	g := buildGraph(2, 2,
		map[int]int{1: 1, 2: 2},
		map[int]int{1: 2, 2: 2},
	)
	cycles := g.cycles()
	got := pairSet(cycles)
	if len(got) != 1 || got[0] != (market.Pair{Agent: 2, Object: 2}) {
		t.Errorf("pairs = %v, want only agent 2 / object 2", got)
	}
}

func TestCyclesSharedTargetObject(t *testing.T) {
	// Both agents point at o1; o1 points back at a2 only. The cycle is
	// (a2, o1); a1 must be left out even though its edge touches the
	// cycle. The walk from a1 closes on a gray object.
	g := buildGraph(2, 1,
		map[int]int{1: 1, 2: 1},
		map[int]int{1: 2},
	)
	cycles := g.cycles()
	got := pairSet(cycles)
	if len(got) != 1 || got[0] != (market.Pair{Agent: 2, Object: 1}) {
		t.Errorf("pairs = %v, want only agent 2 / object 1", got)
	}
}

func TestCyclesDisjoint(t *testing.T) {
	// Two independent swaps plus one dangling agent resolve in one pass.
	g := buildGraph(5, 5,
		map[int]int{1: 2, 2: 1, 3: 4, 4: 3, 5: 1},
		map[int]int{1: 1, 2: 2, 3: 3, 4: 4},
	)
	cycles := g.cycles()
	if len(cycles) != 2 {
		t.Fatalf("got %d cycles, want 2", len(cycles))
	}
	got := pairSet(cycles)
	want := []market.Pair{
		{Agent: 1, Object: 2}, {Agent: 2, Object: 1},
		{Agent: 3, Object: 4}, {Agent: 4, Object: 3},
	}
	if len(got) != len(want) {
		t.Fatalf("pairs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pairs[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCyclesEmptyGraph(t *testing.T) {
	g := newPointerGraph(3, 3)
	g.reset()
	if cycles := g.cycles(); len(cycles) != 0 {
		t.Errorf("empty graph produced %d cycles", len(cycles))
	}
}

func TestCyclesDeadEndObject(t *testing.T) {
	// a1 -> o1, o1 has no edge: no cycle.
	g := buildGraph(1, 1, map[int]int{1: 1}, nil)
	if cycles := g.cycles(); len(cycles) != 0 {
		t.Errorf("dead-end walk produced %d cycles", len(cycles))
	}
}

func TestCyclesVertexDisjointCoverage(t *testing.T) {
	// A long chain feeding a long cycle: only cycle members may appear,
	// and each exactly once.
	g := buildGraph(6, 6,
		map[int]int{1: 1, 2: 2, 3: 3, 4: 4, 5: 5, 6: 6},
		map[int]int{1: 2, 2: 3, 3: 4, 4: 5, 5: 6, 6: 3},
	)
	// Walks: a1->o1->a2->o2->a3->o3->a4...->o6->a3. The cycle is
	// a3..a6 with o3..o6; a1, a2 feed in.
	cycles := g.cycles()
	if len(cycles) != 1 {
		t.Fatalf("got %d cycles, want 1", len(cycles))
	}
	got := pairSet(cycles)
	if len(got) != 4 {
		t.Fatalf("cycle has %d pairs, want 4: %v", len(got), got)
	}
	seen := map[market.ID]bool{}
	for _, p := range got {
		if p.Agent < 3 {
			t.Errorf("chain agent %d must not be on the cycle", p.Agent)
		}
		if seen[p.Agent] {
			t.Errorf("agent %d appears twice", p.Agent)
		}
		seen[p.Agent] = true
	}
}
