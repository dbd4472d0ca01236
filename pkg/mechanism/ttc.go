package mechanism

import "github.com/clearmatch/clearmatch/pkg/market"

// TTC runs two-sided top trading cycles on mkt and returns the resulting
// matching. accept is the objects' acceptance of agents; if nil it is
// derived from the objects' preference lists. When Options.SwapRoles is
// set the mechanism runs with the sides exchanged (accept, if supplied,
// must then be oriented for the swapped market) and the matching is
// transposed back before returning.
//
// The result is Pareto-efficient for the side playing the agent role.
func TTC(mkt *market.Market, accept *market.Acceptability, opts Options) (*Result, error) {
	if err := mkt.Validate(); err != nil {
		return nil, err
	}
	swapped := false
	if opts.SwapRoles {
		mkt = mkt.Swapped()
		swapped = true
	}
	if accept == nil {
		accept = market.AcceptabilityFromPrefs(&mkt.Objects, mkt.Agents.Size())
	}

	s := newTTCState(mkt)
	logger := opts.logger()

	res := &Result{}
	for s.activeAgents > 0 && s.activeObjects > 0 {
		s.graph.reset()
		s.advanceAgents(accept)
		s.advanceObjects()

		cycles := s.graph.cycles()
		for _, c := range cycles {
			s.commit(c)
		}

		res.Stats.Rounds++
		res.Stats.Cycles += len(cycles)
		logger.Debug("ttc round",
			"round", res.Stats.Rounds,
			"cycles", len(cycles),
			"active_agents", s.activeAgents,
			"active_objects", s.activeObjects)
	}

	res.Matching = s.matching
	if swapped {
		res.Matching = res.Matching.Transposed()
	}
	res.Stats.Pairings = res.Matching.Len()
	return res, nil
}

// ttcState is the mutable round state of one two-sided run. Preference
// positions only ever advance and capacities only ever decrease; exits are
// permanent.
type ttcState struct {
	mkt *market.Market

	agentCap  []int // remaining capacity, indexed by ID
	objectCap []int
	agentPos  []int // next preference index to examine
	objectPos []int
	agentOut  []bool // exited: capacity exhausted or list exhausted
	objectOut []bool

	activeAgents  int
	activeObjects int

	graph    *pointerGraph
	matching *market.Matching
}

func newTTCState(mkt *market.Market) *ttcState {
	na, no := mkt.Agents.Size(), mkt.Objects.Size()
	s := &ttcState{
		mkt:       mkt,
		agentCap:  make([]int, na+1),
		objectCap: make([]int, no+1),
		agentPos:  make([]int, na+1),
		objectPos: make([]int, no+1),
		agentOut:  make([]bool, na+1),
		objectOut: make([]bool, no+1),
		graph:     newPointerGraph(na, no),
		matching:  market.NewMatching(na, no),
	}
	for i, c := range mkt.Agents.Capacities {
		s.agentCap[i+1] = c
		if c > 0 {
			s.activeAgents++
		} else {
			s.agentOut[i+1] = true
		}
	}
	for i, c := range mkt.Objects.Capacities {
		s.objectCap[i+1] = c
		if c > 0 {
			s.activeObjects++
		} else {
			s.objectOut[i+1] = true
		}
	}
	return s
}

// advanceAgents recomputes every active agent's edge: its pointer skips
// entries that are full, exited, or that reject the agent, and stops at
// the first live target. Skipped entries are never revisited; all skip
// conditions are monotone. An agent that exhausts its list exits without
// an edge.
func (s *ttcState) advanceAgents(accept *market.Acceptability) {
	for a := market.ID(1); int(a) <= s.mkt.Agents.Size(); a++ {
		if s.agentOut[a] {
			continue
		}
		prefs := s.mkt.Agents.Prefs[a-1]
		pos := s.agentPos[a]
		for pos < len(prefs) {
			o := prefs[pos]
			if !s.objectOut[o] && s.objectCap[o] > 0 && accept.Accepts(o, a) {
				break
			}
			pos++
		}
		s.agentPos[a] = pos
		if pos >= len(prefs) {
			s.exitAgent(a)
			continue
		}
		s.graph.agentNext[a] = market.Some(prefs[pos])
	}
}

// advanceObjects mirrors advanceAgents for the object side: objects point
// at their most preferred agent with remaining vacancy.
func (s *ttcState) advanceObjects() {
	for o := market.ID(1); int(o) <= s.mkt.Objects.Size(); o++ {
		if s.objectOut[o] {
			continue
		}
		prefs := s.mkt.Objects.Prefs[o-1]
		pos := s.objectPos[o]
		for pos < len(prefs) {
			a := prefs[pos]
			if !s.agentOut[a] && s.agentCap[a] > 0 {
				break
			}
			pos++
		}
		s.objectPos[o] = pos
		if pos >= len(prefs) {
			s.exitObject(o)
			continue
		}
		s.graph.objectNext[o] = market.Some(prefs[pos])
	}
}

// commit resolves one trading cycle: each agent is paired with the object
// it points at. Both capacities drop by one and the agent's pointer moves
// past the match so the pairing cannot recur. Object pointers are not
// forced forward: their skip conditions retire consumed agents naturally,
// which keeps multi-seat agents claimable.
func (s *ttcState) commit(c cycle) {
	for i, a := range c.agents {
		o := c.objects[i]
		s.matching.Assign(a, o)
		s.agentCap[a]--
		s.objectCap[o]--
		s.agentPos[a]++
		if s.agentCap[a] == 0 {
			s.exitAgent(a)
		}
		if s.objectCap[o] == 0 {
			s.exitObject(o)
		}
	}
}

func (s *ttcState) exitAgent(a market.ID) {
	if !s.agentOut[a] {
		s.agentOut[a] = true
		s.activeAgents--
		s.graph.agentNext[a] = market.None
	}
}

func (s *ttcState) exitObject(o market.ID) {
	if !s.objectOut[o] {
		s.objectOut[o] = true
		s.activeObjects--
		s.graph.objectNext[o] = market.None
	}
}
