// Package mechanism implements the matching mechanisms: top trading cycles
// for two-sided and one-sided markets, and Gale-Shapley deferred acceptance.
//
// # Mechanisms
//
// Three entry points, all taking a validated [market.Market] and returning
// a [market.Matching] plus run statistics:
//
//   - [TTC]: two-sided top trading cycles (school choice). Rounds of
//     {build pointer graph, resolve cycles, commit} until no active agents
//     or objects remain. Pareto-efficient for the side playing the agent
//     role.
//   - [HousingTTC]: one-sided top trading cycles (housing reassignment),
//     driven by a fixed priority order over agents, with or without
//     initial ownership. Requires unit capacities.
//   - [DeferredAcceptance]: iterative propose/reject producing a stable
//     matching, proposer-optimal among stable matchings.
//
// # Determinism and termination
//
// All mechanisms are single-threaded and fully deterministic. Preference
// pointers only ever advance, so total pointer movement is bounded by the
// sum of preference-list lengths; no iteration caps are used or needed.
//
// # Role selection
//
// Options.SwapRoles selects which side's container plays the pointing or
// proposing role. The swap is resolved once at entry and the returned
// matching is always oriented as the caller's market.
package mechanism
