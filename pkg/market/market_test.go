package market

import (
	"testing"

	"github.com/clearmatch/clearmatch/pkg/errors"
)

func twoByTwo() *Market {
	return &Market{
		Agents: Side{
			Capacities: []int{1, 1},
			Prefs:      []PrefList{{2, 1}, {1, 2}},
		},
		Objects: Side{
			Capacities: []int{1, 1},
			Prefs:      []PrefList{{2, 1}, {1, 2}},
		},
	}
}

func TestMarketValidate(t *testing.T) {
	if err := twoByTwo().Validate(); err != nil {
		t.Fatalf("valid market rejected: %v", err)
	}
}

func TestMarketValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Market)
		code   errors.Code
	}{
		{
			"negative capacity",
			func(m *Market) { m.Agents.Capacities[0] = -1 },
			errors.ErrCodeInvalidCapacity,
		},
		{
			"pref list count mismatch",
			func(m *Market) { m.Objects.Prefs = m.Objects.Prefs[:1] },
			errors.ErrCodeDimensionMismatch,
		},
		{
			"unknown partner",
			func(m *Market) { m.Agents.Prefs[0] = PrefList{3} },
			errors.ErrCodeInvalidMarket,
		},
		{
			"duplicate partner",
			func(m *Market) { m.Agents.Prefs[0] = PrefList{2, 2} },
			errors.ErrCodeInvalidMarket,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := twoByTwo()
			tt.mutate(m)
			err := m.Validate()
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestAcceptabilityFromPrefs(t *testing.T) {
	objects := Side{
		Capacities: []int{1, 1},
		Prefs:      []PrefList{{2}, {1, 2}}, // object 1 rejects agent 1
	}
	acc := AcceptabilityFromPrefs(&objects, 2)

	if acc.Accepts(1, 1) {
		t.Error("object 1 should not accept agent 1 (absent from its list)")
	}
	if !acc.Accepts(1, 2) || !acc.Accepts(2, 1) || !acc.Accepts(2, 2) {
		t.Error("listed agents should be accepted")
	}
}

func TestSwapped(t *testing.T) {
	m := &Market{
		Agents:  Side{Capacities: []int{1, 1, 1}},
		Objects: Side{Capacities: []int{2}},
	}
	s := m.Swapped()
	if s.Agents.Size() != 1 || s.Objects.Size() != 3 {
		t.Errorf("Swapped sizes = %d/%d, want 1/3", s.Agents.Size(), s.Objects.Size())
	}
}

func TestMatching(t *testing.T) {
	m := NewMatching(2, 3)
	m.Assign(1, 2)
	m.Assign(2, 3)
	m.Assign(1, 2) // duplicate commit is a no-op

	if m.Len() != 2 {
		t.Errorf("Len = %d, want 2", m.Len())
	}
	if !m.Matched(1, 2) || !m.Matched(2, 3) || m.Matched(1, 1) {
		t.Error("Matched disagrees with commits")
	}
	if m.AgentLoad(1) != 1 || m.ObjectLoad(2) != 1 || m.ObjectLoad(1) != 0 {
		t.Error("load counters disagree with commits")
	}

	pairs := m.Pairs()
	if len(pairs) != 2 || pairs[0] != (Pair{Agent: 1, Object: 2}) || pairs[1] != (Pair{Agent: 2, Object: 3}) {
		t.Errorf("Pairs = %v", pairs)
	}

	rel := m.Relation()
	if len(rel) != 3 || len(rel[0]) != 2 {
		t.Fatalf("Relation dims = %dx%d, want 3x2", len(rel), len(rel[0]))
	}
	if !rel[1][0] || !rel[2][1] {
		t.Error("Relation cells disagree with commits")
	}

	tr := m.Transposed()
	if !tr.Matched(2, 1) || !tr.Matched(3, 2) {
		t.Error("Transposed did not swap roles")
	}
}

func TestRef(t *testing.T) {
	if None.IsSome() {
		t.Error("None must be empty")
	}
	if id, ok := Some(7).Get(); !ok || id != 7 {
		t.Errorf("Some(7).Get() = %d, %v", id, ok)
	}
	if None.String() != "none" || Some(3).String() != "3" {
		t.Errorf("String() = %q / %q", None.String(), Some(3).String())
	}
}
