package mechanism

import "github.com/clearmatch/clearmatch/pkg/market"

// DeferredAcceptance runs Gale-Shapley deferred acceptance on mkt. Agents
// propose and objects respond; with Options.SwapRoles the objects side
// proposes instead and the matching is transposed back.
//
// Proposers have unit demand: a proposer with capacity zero never
// proposes, any positive capacity seeks exactly one match. Respondents
// hold up to their capacity in tentative proposers, always keeping the
// best ones they have seen; a respondent finds a proposer acceptable only
// if the proposer appears on its preference list.
//
// The result is stable — no proposer and respondent mutually prefer each
// other to what they got — and proposer-optimal among stable matchings.
// Termination is structural: every rejection advances a proposer's
// pointer, so total proposals never exceed the summed preference-list
// lengths.
func DeferredAcceptance(mkt *market.Market, opts Options) (*Result, error) {
	if err := mkt.Validate(); err != nil {
		return nil, err
	}
	swapped := false
	if opts.SwapRoles {
		mkt = mkt.Swapped()
		swapped = true
	}

	np, nr := mkt.Agents.Size(), mkt.Objects.Size()
	logger := opts.logger()

	// Respondent state: O(1) rank lookups and the tentatively held
	// proposers, at most capacity many.
	ranks := make([]market.RankIndex, nr+1)
	held := make([][]market.ID, nr+1)
	for r := 1; r <= nr; r++ {
		ranks[r] = market.NewRankIndex(mkt.Objects.Prefs[r-1], np)
	}

	// Proposer state: a monotone pointer into its own list plus flags.
	// matched proposers keep their pointer on the respondent holding them
	// so a later bump resumes from the following entry.
	next := make([]int, np+1)
	matched := make([]bool, np+1)
	retired := make([]bool, np+1)
	for p := 1; p <= np; p++ {
		if mkt.Agents.Capacities[p-1] == 0 {
			retired[p] = true
		}
	}

	res := &Result{}
	for {
		anySingle := false
		for p := market.ID(1); int(p) <= np; p++ {
			if matched[p] || retired[p] {
				continue
			}
			anySingle = true

			prefs := mkt.Agents.Prefs[p-1]
			if next[p] >= len(prefs) {
				// End of list: the proposer prefers staying unmatched to
				// anything it has not tried.
				retired[p] = true
				continue
			}
			r := prefs[next[p]]
			res.Stats.Proposals++

			switch {
			case !ranks[r].Acceptable(p):
				next[p]++
			case mkt.Objects.Capacities[r-1] == 0:
				next[p]++
			case len(held[r]) < mkt.Objects.Capacities[r-1]:
				held[r] = append(held[r], p)
				matched[p] = true
			default:
				w := worstHeld(held[r], ranks[r])
				if ranks[r].Rank(p) < ranks[r].Rank(held[r][w]) {
					bumped := held[r][w]
					held[r][w] = p
					matched[p] = true
					matched[bumped] = false
					next[bumped]++
				} else {
					next[p]++
				}
			}
		}
		if !anySingle {
			break
		}
		res.Stats.Rounds++
		logger.Debug("da round", "round", res.Stats.Rounds, "proposals", res.Stats.Proposals)
	}

	m := market.NewMatching(np, nr)
	for r := 1; r <= nr; r++ {
		for _, p := range held[r] {
			m.Assign(p, market.ID(r))
		}
	}
	if swapped {
		m = m.Transposed()
	}
	res.Matching = m
	res.Stats.Pairings = m.Len()
	return res, nil
}

// worstHeld returns the index of the lowest-ranked held proposer.
// Respondent capacities are small, so a linear scan beats bookkeeping.
func worstHeld(held []market.ID, ranks market.RankIndex) int {
	worst := 0
	for i := 1; i < len(held); i++ {
		if ranks.Rank(held[i]) > ranks.Rank(held[worst]) {
			worst = i
		}
	}
	return worst
}
