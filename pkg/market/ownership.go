package market

import "github.com/clearmatch/clearmatch/pkg/errors"

// Ownership is the agent-object possession relation used by one-sided top
// trading cycles. Each object is owned by at most one agent and each agent
// possesses at most one object; both directions are kept in sync so either
// lookup is O(1).
type Ownership struct {
	ownerOf      []Ref // indexed by object ID
	possessionOf []Ref // indexed by agent ID
}

// NewOwnership creates a fully-unowned relation for a market with the
// given side sizes.
func NewOwnership(agents, objects int) *Ownership {
	return &Ownership{
		ownerOf:      make([]Ref, objects+1),
		possessionOf: make([]Ref, agents+1),
	}
}

// OwnershipFromRelation builds an Ownership from an agent x object boolean
// relation, validating its shape: the dimensions must match the market and
// each row and column may contain at most one true cell.
func OwnershipFromRelation(rel [][]bool, agents, objects int) (*Ownership, error) {
	if len(rel) != agents {
		return nil, errors.New(errors.ErrCodeDimensionMismatch,
			"ownership has %d rows, market has %d agents", len(rel), agents)
	}
	own := NewOwnership(agents, objects)
	for i, row := range rel {
		if len(row) != objects {
			return nil, errors.New(errors.ErrCodeDimensionMismatch,
				"ownership row %d has %d columns, market has %d objects", i+1, len(row), objects)
		}
		a := ID(i + 1)
		for j, owned := range row {
			if !owned {
				continue
			}
			o := ID(j + 1)
			if own.possessionOf[a].IsSome() {
				return nil, errors.New(errors.ErrCodeOwnershipConflict,
					"agent %d owns more than one object", a)
			}
			if prev, ok := own.ownerOf[o].Get(); ok {
				return nil, errors.New(errors.ErrCodeOwnershipConflict,
					"object %d is owned by both agent %d and agent %d", o, prev, a)
			}
			own.ownerOf[o] = Some(a)
			own.possessionOf[a] = Some(o)
		}
	}
	return own, nil
}

// Agents returns the number of agents the relation covers.
func (own *Ownership) Agents() int {
	return len(own.possessionOf) - 1
}

// Objects returns the number of objects the relation covers.
func (own *Ownership) Objects() int {
	return len(own.ownerOf) - 1
}

// Owner returns the agent owning object o, if any.
func (own *Ownership) Owner(o ID) Ref {
	return own.ownerOf[o]
}

// Possession returns the object possessed by agent a, if any.
func (own *Ownership) Possession(a ID) Ref {
	return own.possessionOf[a]
}

// Transfer gives object o to agent a. The agent's previous possession is
// released (marked unowned) and o's previous owner, if different from a,
// loses its possession, all in one step so the degree-1 invariants hold
// between any two calls. The release guards tolerate any commit order
// within a trading cycle: a slot is only cleared if it still points at the
// party being displaced.
func (own *Ownership) Transfer(a, o ID) {
	if p, ok := own.possessionOf[a].Get(); ok {
		if holder, ok := own.ownerOf[p].Get(); ok && holder == a {
			own.ownerOf[p] = None
		}
	}
	if prev, ok := own.ownerOf[o].Get(); ok && prev != a {
		if q, ok := own.possessionOf[prev].Get(); ok && q == o {
			own.possessionOf[prev] = None
		}
	}
	own.ownerOf[o] = Some(a)
	own.possessionOf[a] = Some(o)
}
