package market

import "sort"

// Pair is one committed agent-object pairing.
type Pair struct {
	Agent  ID `json:"agent"`
	Object ID `json:"object"`
}

// Matching is the object-agent assignment produced by a mechanism. It is
// created empty and only ever grows: once a pairing is committed it is
// final. Loads per member are tracked so callers can check the capacity
// bounds at any time.
type Matching struct {
	agents  int
	objects int

	cells      []bool // objects x agents, row-major by object
	agentLoad  []int
	objectLoad []int
	pairs      []Pair // commit order
}

// NewMatching creates an empty matching for a market with the given side
// sizes.
func NewMatching(agents, objects int) *Matching {
	return &Matching{
		agents:     agents,
		objects:    objects,
		cells:      make([]bool, agents*objects),
		agentLoad:  make([]int, agents),
		objectLoad: make([]int, objects),
	}
}

// Assign commits the pairing (a, o). Committing the same pairing twice is
// a no-op; pairings are never removed.
func (m *Matching) Assign(a, o ID) {
	i := m.cell(a, o)
	if m.cells[i] {
		return
	}
	m.cells[i] = true
	m.agentLoad[a-1]++
	m.objectLoad[o-1]++
	m.pairs = append(m.pairs, Pair{Agent: a, Object: o})
}

// Matched reports whether agent a is assigned object o.
func (m *Matching) Matched(a, o ID) bool {
	return m.cells[m.cell(a, o)]
}

// AgentLoad returns the number of objects assigned to agent a.
func (m *Matching) AgentLoad(a ID) int {
	return m.agentLoad[a-1]
}

// ObjectLoad returns the number of agents assigned to object o.
func (m *Matching) ObjectLoad(o ID) int {
	return m.objectLoad[o-1]
}

// Agents returns the number of agents the matching covers.
func (m *Matching) Agents() int {
	return m.agents
}

// Objects returns the number of objects the matching covers.
func (m *Matching) Objects() int {
	return m.objects
}

// Len returns the number of committed pairings.
func (m *Matching) Len() int {
	return len(m.pairs)
}

// Pairs returns the committed pairings sorted by agent then object.
func (m *Matching) Pairs() []Pair {
	out := make([]Pair, len(m.pairs))
	copy(out, m.pairs)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Agent != out[j].Agent {
			return out[i].Agent < out[j].Agent
		}
		return out[i].Object < out[j].Object
	})
	return out
}

// ObjectsOf returns the objects assigned to agent a, ascending.
func (m *Matching) ObjectsOf(a ID) []ID {
	var out []ID
	for o := 1; o <= m.objects; o++ {
		if m.Matched(a, ID(o)) {
			out = append(out, ID(o))
		}
	}
	return out
}

// Relation returns the matching as an object x agent boolean relation.
// The returned slices are copies.
func (m *Matching) Relation() [][]bool {
	rel := make([][]bool, m.objects)
	for o := 0; o < m.objects; o++ {
		row := make([]bool, m.agents)
		copy(row, m.cells[o*m.agents:(o+1)*m.agents])
		rel[o] = row
	}
	return rel
}

// Transposed returns a copy of the matching with agent and object roles
// exchanged. Used to map a matching solved on a role-swapped market back
// into the caller's orientation.
func (m *Matching) Transposed() *Matching {
	out := NewMatching(m.objects, m.agents)
	for _, p := range m.pairs {
		out.Assign(p.Object, p.Agent)
	}
	return out
}

func (m *Matching) cell(a, o ID) int {
	return (int(o)-1)*m.agents + int(a) - 1
}
