package market

import "github.com/clearmatch/clearmatch/pkg/errors"

// Priority is a fixed processing order over agents, used by one-sided top
// trading cycles. It must be a permutation: every agent appears exactly
// once.
type Priority []ID

// Validate checks that the priority is a permutation of 1..agents.
func (p Priority) Validate(agents int) error {
	if len(p) != agents {
		return errors.New(errors.ErrCodeDimensionMismatch,
			"priority lists %d agents, market has %d", len(p), agents)
	}
	seen := make([]bool, agents+1)
	for _, a := range p {
		if a < 1 || int(a) > agents {
			return errors.New(errors.ErrCodeInvalidPriority,
				"priority references unknown agent %d", a)
		}
		if seen[a] {
			return errors.New(errors.ErrCodeInvalidPriority,
				"agent %d appears twice in the priority order", a)
		}
		seen[a] = true
	}
	return nil
}

// DefaultPriority returns the identity order 1..agents.
func DefaultPriority(agents int) Priority {
	p := make(Priority, agents)
	for i := range p {
		p[i] = ID(i + 1)
	}
	return p
}
