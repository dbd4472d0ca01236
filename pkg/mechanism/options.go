package mechanism

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/clearmatch/clearmatch/pkg/market"
)

// Options configures a solve. The zero value is ready to use.
type Options struct {
	// SwapRoles makes the objects side play the pointing (TTC) or
	// proposing (DA) role. Resolved once at entry: the mechanism runs on
	// the swapped market and the returned matching is transposed back, so
	// callers always receive an agent-object matching in their own
	// orientation.
	SwapRoles bool

	// Logger receives per-round debug lines. Defaults to a discard logger.
	Logger *log.Logger
}

func (o *Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.NewWithOptions(io.Discard, log.Options{})
}

// Stats reports what a solve did. Proposals is only meaningful for
// deferred acceptance, Rounds and Cycles for the TTC variants.
type Stats struct {
	Rounds    int `json:"rounds"`
	Cycles    int `json:"cycles,omitempty"`
	Proposals int `json:"proposals,omitempty"`
	Pairings  int `json:"pairings"`
}

// Result bundles the matching with its run statistics.
type Result struct {
	Matching *market.Matching
	Stats    Stats
}
