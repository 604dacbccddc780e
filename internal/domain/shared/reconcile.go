package shared

import "github.com/google/uuid"

// ReconcileIDs computes the disjoint connect and disconnect sets needed
// to move a relation from current to desired. Identical inputs yield two
// empty sets, so applying the result is idempotent. Duplicates in either
// input are collapsed.
func ReconcileIDs(current, desired []uuid.UUID) (connect, disconnect []uuid.UUID) {
	currentSet := make(map[uuid.UUID]struct{}, len(current))
	for _, id := range current {
		currentSet[id] = struct{}{}
	}

	desiredSet := make(map[uuid.UUID]struct{}, len(desired))
	for _, id := range desired {
		if _, seen := desiredSet[id]; seen {
			continue
		}
		desiredSet[id] = struct{}{}
		if _, ok := currentSet[id]; !ok {
			connect = append(connect, id)
		}
	}

	for _, id := range current {
		if _, ok := desiredSet[id]; !ok {
			disconnect = append(disconnect, id)
		}
	}

	return connect, disconnect
}

// UniqueIDs collapses duplicates while preserving order.
func UniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
