package mechanism

import "github.com/clearmatch/clearmatch/pkg/market"

// pointerGraph is the functional graph built each round: every active
// agent and object has at most one outgoing edge, and edges alternate
// agent->object and object->agent. A node with no edge has exited.
type pointerGraph struct {
	agentNext  []market.Ref // indexed by agent ID; the object it points at
	objectNext []market.Ref // indexed by object ID; the agent it points at
}

func newPointerGraph(agents, objects int) *pointerGraph {
	return &pointerGraph{
		agentNext:  make([]market.Ref, agents+1),
		objectNext: make([]market.Ref, objects+1),
	}
}

func (g *pointerGraph) reset() {
	for i := range g.agentNext {
		g.agentNext[i] = market.None
	}
	for i := range g.objectNext {
		g.objectNext[i] = market.None
	}
}

// cycle is one trading cycle, rotated so it begins at an agent node:
// agents[i] points at objects[i], and objects[i] points at
// agents[(i+1) % len(agents)]. Each agent is paired with the object it
// points at.
type cycle struct {
	agents  []market.ID
	objects []market.ID
}

// Walk colors for cycle detection.
const (
	colorWhite = iota // not yet visited
	colorGray         // on the current successor walk
	colorBlack        // fully processed
)

// cycles returns all simple cycles of the graph. Because every node has
// out-degree <= 1, each cycle is found in linear time by following
// successor pointers with visited marking: a walk either dies at a node
// without an edge, reaches territory already processed, or closes on a
// gray node, which starts a cycle. Cycles are vertex-disjoint, so nodes
// are visited at most twice overall.
func (g *pointerGraph) cycles() []cycle {
	agentColor := make([]int, len(g.agentNext))
	objectColor := make([]int, len(g.objectNext))
	agentPos := make([]int, len(g.agentNext))
	objectPos := make([]int, len(g.objectNext))

	var found []cycle

	for start := 1; start < len(g.agentNext); start++ {
		if agentColor[start] != colorWhite || !g.agentNext[start].IsSome() {
			continue
		}

		// One alternating walk: path[i] is the i-th agent on the walk,
		// pathObj[i] the object it points at.
		var path, pathObj []market.ID

		a := market.ID(start)
		for {
			agentColor[a] = colorGray
			agentPos[a] = len(path)

			o, ok := g.agentNext[a].Get()
			if !ok {
				break // exited agent, walk dies
			}
			path = append(path, a)
			pathObj = append(pathObj, o)

			if objectColor[o] == colorGray {
				// Closed on an object seen earlier in the walk. The agent
				// that first pointed at o is outside the cycle (o points
				// elsewhere); the cycle begins at o's successor, one walk
				// position later.
				found = append(found, g.sliceCycle(path, pathObj, objectPos[o]+1))
				break
			}
			if objectColor[o] == colorBlack {
				break
			}
			objectColor[o] = colorGray
			objectPos[o] = len(path) - 1

			next, ok := g.objectNext[o].Get()
			if !ok {
				objectColor[o] = colorBlack
				break
			}
			if agentColor[next] == colorGray {
				found = append(found, g.sliceCycle(path, pathObj, agentPos[next]))
				break
			}
			if agentColor[next] == colorBlack {
				break
			}
			a = next
		}

		// Everything touched by this walk is settled: either it is part of
		// a recorded cycle or it leads into one (or into a dead end).
		for _, id := range path {
			agentColor[id] = colorBlack
		}
		for _, id := range pathObj {
			objectColor[id] = colorBlack
		}
		agentColor[a] = colorBlack
	}

	return found
}

// sliceCycle extracts the cycle that starts at walk position from.
func (g *pointerGraph) sliceCycle(path, pathObj []market.ID, from int) cycle {
	n := len(path) - from
	c := cycle{
		agents:  make([]market.ID, n),
		objects: make([]market.ID, n),
	}
	copy(c.agents, path[from:])
	copy(c.objects, pathObj[from:])
	return c
}
