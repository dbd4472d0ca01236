package market

import "fmt"

// ID identifies a member of one side of a market. IDs are 1-based: the
// agents of a market with n agents are 1..n, and likewise for objects.
type ID int

// Ref is an optional reference to a member of a side. The zero value is
// the empty reference. Using Ref instead of a numeric sentinel keeps
// "no target" distinct from any real ID.
type Ref struct {
	id ID
	ok bool
}

// None is the empty reference.
var None = Ref{}

// Some returns a reference to id.
func Some(id ID) Ref {
	return Ref{id: id, ok: true}
}

// Get returns the referenced ID and whether the reference is non-empty.
func (r Ref) Get() (ID, bool) {
	return r.id, r.ok
}

// IsSome reports whether the reference is non-empty.
func (r Ref) IsSome() bool {
	return r.ok
}

// String returns "none" for the empty reference, the ID otherwise.
func (r Ref) String() string {
	if !r.ok {
		return "none"
	}
	return fmt.Sprintf("%d", r.id)
}
