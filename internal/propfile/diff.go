package propfile

import "orderedprops/properties"

// ChangeKind describes how a key differs between two snapshots.
type ChangeKind string

const (
	Added   ChangeKind = "added"
	Changed ChangeKind = "changed"
	Removed ChangeKind = "removed"
)

// Change is a single key difference reported by Diff.
type Change struct {
	Kind     ChangeKind `json:"kind"`
	Key      string     `json:"key"`
	OldValue string     `json:"old_value,omitempty"`
	NewValue string     `json:"new_value,omitempty"`
}

// Diff compares two snapshots. Removed keys come first, in the order they
// had in before; added and changed keys follow in the order of after.
func Diff(before, after *properties.Store) []Change {
	var changes []Change
	for key, old := range before.All() {
		if _, ok := after.Get(key); !ok {
			changes = append(changes, Change{Kind: Removed, Key: key, OldValue: old})
		}
	}
	for key, value := range after.All() {
		old, ok := before.Get(key)
		switch {
		case !ok:
			changes = append(changes, Change{Kind: Added, Key: key, NewValue: value})
		case old != value:
			changes = append(changes, Change{Kind: Changed, Key: key, OldValue: old, NewValue: value})
		}
	}
	return changes
}
