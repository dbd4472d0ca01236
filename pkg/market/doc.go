// Package market defines the data model shared by all matching mechanisms:
// the two sides of a market (capacities and ordinal preference lists), the
// auxiliary structures that some mechanisms require (acceptability tables,
// priority orderings, initial ownership), and the Matching relation that
// mechanisms produce.
//
// # Identifiers
//
// Members of a side are identified by 1-based [ID] values. Input documents
// use 0 as a terminator meaning "prefer to remain unmatched"; that sentinel
// is resolved at the boundary (see [TrimSentinel]) and never appears inside
// the model. Optional references use the [Ref] type instead of a magic
// zero value.
//
// # Mutability
//
// Side records, priorities and acceptability tables are read-only inputs
// once validated. Ownership and Matching are mutated by the mechanisms:
// Ownership through [Ownership.Transfer] as objects change hands, Matching
// through [Matching.Assign], which only ever grows the relation.
package market
