package ecs

// intersect returns a snapshot of the entities present in every listed store.
// A missing store yields nil.
func intersect(w *World, ids ...uint32) []Entity {
	if w == nil || len(ids) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(ids))
	for _, id := range ids {
		s := w.store(id, false)
		if s == nil {
			return nil
		}
		sets = append(sets, s)
	}
	out := sets[0].Entities()
	for _, s := range sets[1:] {
		kept := out[:0]
		for _, e := range out {
			if s.Has(e) {
				kept = append(kept, e)
			}
		}
		out = kept
	}
	return out
}
