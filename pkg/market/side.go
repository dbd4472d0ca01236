package market

import "github.com/clearmatch/clearmatch/pkg/errors"

// Side holds one side of a market: per-member capacities and preference
// lists over the opposite side. Capacities are non-negative integers;
// a capacity of zero means the member takes no partners.
type Side struct {
	Capacities []int
	Prefs      []PrefList
}

// Size returns the number of members on this side.
func (s *Side) Size() int {
	return len(s.Capacities)
}

// validate checks internal consistency against the opposite side's size.
func (s *Side) validate(name string, partners int) error {
	if len(s.Prefs) != len(s.Capacities) {
		return errors.New(errors.ErrCodeDimensionMismatch,
			"%s: %d preference lists for %d members", name, len(s.Prefs), len(s.Capacities))
	}
	for i, c := range s.Capacities {
		if c < 0 {
			return errors.New(errors.ErrCodeInvalidCapacity,
				"%s %d has negative capacity %d", name, i+1, c)
		}
	}
	for i, prefs := range s.Prefs {
		seen := make(map[ID]bool, len(prefs))
		for _, p := range prefs {
			if p < 1 || int(p) > partners {
				return errors.New(errors.ErrCodeInvalidMarket,
					"%s %d ranks unknown partner %d (opposite side has %d members)", name, i+1, p, partners)
			}
			if seen[p] {
				return errors.New(errors.ErrCodeInvalidMarket,
					"%s %d ranks partner %d twice", name, i+1, p)
			}
			seen[p] = true
		}
	}
	return nil
}

// Market is a two-sided market instance: agents demand objects. In the
// one-sided case the objects side still exists but holds no preferences
// of its own.
type Market struct {
	Agents  Side
	Objects Side
}

// Validate checks the market's structural invariants: matching list
// lengths, non-negative capacities, and preference entries that reference
// existing members of the opposite side. Mechanisms assume a validated
// market; Validate must be called before solving.
func (m *Market) Validate() error {
	if err := m.Agents.validate("agent", m.Objects.Size()); err != nil {
		return err
	}
	return m.Objects.validate("object", m.Agents.Size())
}

// Swapped returns a market with the two sides exchanged: objects play the
// agent role and vice versa. Used to select which side's preferences drive
// a mechanism; the caller is responsible for transposing the resulting
// matching back.
func (m *Market) Swapped() *Market {
	return &Market{Agents: m.Objects, Objects: m.Agents}
}

// Acceptability records, for a two-sided market, which agents each object
// is willing to take. An object accepts an agent iff the agent appears in
// the object's preference list.
type Acceptability struct {
	accepts [][]bool // [object-1][agent-1]
}

// AcceptabilityFromPrefs derives the acceptability table from the objects'
// declared preference lists.
func AcceptabilityFromPrefs(objects *Side, agents int) *Acceptability {
	t := &Acceptability{accepts: make([][]bool, objects.Size())}
	for o := range t.accepts {
		row := make([]bool, agents)
		for _, a := range objects.Prefs[o] {
			if a >= 1 && int(a) <= agents {
				row[a-1] = true
			}
		}
		t.accepts[o] = row
	}
	return t
}

// Accepts reports whether object o is willing to take agent a.
func (t *Acceptability) Accepts(o, a ID) bool {
	return t.accepts[o-1][a-1]
}

// Objects returns the number of objects covered by the table.
func (t *Acceptability) Objects() int {
	return len(t.accepts)
}
