// Package marketio decodes market definitions and encodes solved results.
//
// # Input Format
//
// A market definition is a JSON or TOML document with two sides. Each side
// declares per-member capacities and ordered preference lists over the
// opposite side, most preferred first. IDs are 1-based; a 0 entry is the
// "prefer to remain unmatched" sentinel and everything after it is
// dropped. JSON form:
//
//	{
//	  "agents": {
//	    "capacities": [1, 1],
//	    "preferences": [[2, 1], [1, 2]]
//	  },
//	  "objects": {
//	    "capacities": [1, 1],
//	    "preferences": [[2, 1], [1, 2]]
//	  },
//	  "priority": [1, 2],
//	  "ownership": [[true, false], [false, true]]
//	}
//
// Optional fields:
//   - capacities: defaults to 1 per member when omitted
//   - priority: processing order for one-sided top trading cycles;
//     defaults to ID order
//   - ownership: initial agent x object possession relation, at most one
//     true cell per row and per column
//
// The equivalent TOML uses [agents] and [objects] tables with the same
// keys. [ReadFile] picks the decoder from the file extension (.json,
// .toml); [ReadJSON] and [ReadTOML] decode from any io.Reader.
//
// Decoding and [Document.ToMarket] surface structured errors from
// pkg/errors (INVALID_FORMAT, DIMENSION_MISMATCH, OWNERSHIP_CONFLICT, ...)
// before any mechanism runs.
//
// # Output Format
//
// [NewResultDocument] captures a solved matching as the committed pairs,
// the object x agent boolean relation, and the run statistics. [WriteDOT]
// emits the matching as a bipartite Graphviz graph for rendering.
package marketio
