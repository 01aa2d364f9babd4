package collection

// Pure reducers applying a successful remote response to the cached items.
// Each returns a fresh slice so previously published snapshots stay intact.

// prepend puts the new entity at the head of the items.
func prepend[E Entity](items []E, created E) []E {
	out := make([]E, 0, len(items)+1)
	out = append(out, created)
	return append(out, items...)
}

// replaceByID swaps the element with the matching id for the server's
// representation. Items without a match are returned unchanged (still copied).
func replaceByID[E Entity](items []E, id string, updated E) []E {
	out := make([]E, len(items))
	copy(out, items)
	for i, item := range out {
		if item.EntityID() == id {
			out[i] = updated
			break
		}
	}
	return out
}

// removeByID drops the element with the matching id.
func removeByID[E Entity](items []E, id string) []E {
	out := make([]E, 0, len(items))
	for _, item := range items {
		if item.EntityID() != id {
			out = append(out, item)
		}
	}
	return out
}

// reselect re-points a selection at the fresh copy of its entity after a
// wholesale replace, or clears it when the id is gone from the new page.
func reselect[E Entity](items []E, id string) *E {
	for _, item := range items {
		if item.EntityID() == id {
			selected := item
			return &selected
		}
	}
	return nil
}
