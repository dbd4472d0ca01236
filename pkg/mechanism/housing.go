package mechanism

import (
	"github.com/clearmatch/clearmatch/pkg/errors"
	"github.com/clearmatch/clearmatch/pkg/market"
)

// HousingTTC runs one-sided top trading cycles on mkt: agents trade
// indivisible objects (houses) under a fixed priority order, starting from
// an optional initial ownership. own may be nil, in which case every
// object starts unowned ("non-existing tenants"); otherwise own is
// mutated in place as objects change hands.
//
// Every capacity on both sides must be exactly 1. The priority must be a
// permutation of the agents.
//
// Each agent gets exactly one priority step. During its step the whole
// market's pointer graph is rebuilt — unowned objects point at the
// priority agent, owned objects at their owner — and all cycles resolve,
// so a single step can satisfy several agents at once, including agents
// whose own step is still to come. The sequence is walked once, not to a
// global fixed point.
func HousingTTC(mkt *market.Market, prio market.Priority, own *market.Ownership, opts Options) (*Result, error) {
	if err := mkt.Validate(); err != nil {
		return nil, err
	}
	if opts.SwapRoles {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"one-sided top trading cycles has no respondent side to swap with")
	}
	na, no := mkt.Agents.Size(), mkt.Objects.Size()
	if err := unitCapacities(mkt); err != nil {
		return nil, err
	}
	if err := prio.Validate(na); err != nil {
		return nil, err
	}
	if own == nil {
		own = market.NewOwnership(na, no)
	} else if own.Agents() != na || own.Objects() != no {
		return nil, errors.New(errors.ErrCodeDimensionMismatch,
			"ownership covers %d agents and %d objects, market has %d and %d",
			own.Agents(), own.Objects(), na, no)
	}

	s := newTTCState(mkt)
	logger := opts.logger()

	res := &Result{}
	for _, prior := range prio {
		s.graph.reset()
		s.advanceHousingAgents()
		s.pointObjects(own, prior)

		cycles := s.graph.cycles()
		for _, c := range cycles {
			s.commitHousing(c, own)
		}

		res.Stats.Rounds++
		res.Stats.Cycles += len(cycles)
		logger.Debug("housing ttc step",
			"priority_agent", prior,
			"cycles", len(cycles),
			"active_agents", s.activeAgents)
	}

	res.Matching = s.matching
	res.Stats.Pairings = res.Matching.Len()
	return res, nil
}

// unitCapacities checks the one-sided precondition: every agent and object
// capacity equals exactly 1.
func unitCapacities(mkt *market.Market) error {
	for i, c := range mkt.Agents.Capacities {
		if c != 1 {
			return errors.New(errors.ErrCodeInvalidCapacity,
				"one-sided top trading cycles requires unit capacities: agent %d has %d", i+1, c)
		}
	}
	for i, c := range mkt.Objects.Capacities {
		if c != 1 {
			return errors.New(errors.ErrCodeInvalidCapacity,
				"one-sided top trading cycles requires unit capacities: object %d has %d", i+1, c)
		}
	}
	return nil
}

// advanceHousingAgents recomputes agent edges. Identical to the two-sided
// advance except there is no acceptability table: objects have no say of
// their own in a one-sided market.
func (s *ttcState) advanceHousingAgents() {
	for a := market.ID(1); int(a) <= s.mkt.Agents.Size(); a++ {
		if s.agentOut[a] {
			continue
		}
		prefs := s.mkt.Agents.Prefs[a-1]
		pos := s.agentPos[a]
		for pos < len(prefs) {
			o := prefs[pos]
			if !s.objectOut[o] && s.objectCap[o] > 0 {
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

// pointObjects sets the object edges for one priority step: an owned
// object points at its owner, an unowned one at the priority agent. An
// edge to an already-exited agent is harmless — the walk simply dies
// there — and when the priority agent itself has exited, unowned objects
// get no edge at all.
func (s *ttcState) pointObjects(own *market.Ownership, prior market.ID) {
	for o := market.ID(1); int(o) <= s.mkt.Objects.Size(); o++ {
		if s.objectOut[o] {
			continue
		}
		if owner, ok := own.Owner(o).Get(); ok {
			s.graph.objectNext[o] = market.Some(owner)
			continue
		}
		if !s.agentOut[prior] {
			s.graph.objectNext[o] = market.Some(prior)
		}
	}
}

// commitHousing resolves one trading cycle and transfers ownership with
// each pairing: the agent's previous house is released and it becomes the
// owner of the house it received.
func (s *ttcState) commitHousing(c cycle, own *market.Ownership) {
	for i, a := range c.agents {
		o := c.objects[i]
		s.matching.Assign(a, o)
		own.Transfer(a, o)
		s.agentCap[a]--
		s.objectCap[o]--
		s.agentPos[a]++
		s.exitAgent(a)
		s.exitObject(o)
	}
}
